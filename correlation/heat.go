package correlation

import (
	"math"

	"github.com/alfonsoamt/Flash-Drum/maths"
	"github.com/alfonsoamt/Flash-Drum/types"
)

// HeatOfVaporization 汽化热 kJ/mol, T >= Tc 无定义
func HeatOfVaporization(t float64, c types.HeatVap) (float64, error) {
	if !(t > 0) || t >= c.Tc {
		return 0, types.Errorf("correlation.heat_of_vaporization", types.KindDomain, "温度 %g K 超出 (0, Tc=%g)", t, c.Tc)
	}
	tr := t / c.Tc
	return c.C1 * math.Pow(1-tr, c.C2+c.C3*tr+c.C4*tr*tr) / 1e6, nil
}

// LiquidHeatCapacity 液相热容 kJ/(mol·K)
func LiquidHeatCapacity(t float64, c types.LiquidCp) (float64, error) {
	if math.IsNaN(t) {
		return 0, types.Errorf("correlation.liquid_heat_capacity", types.KindDomain, "温度无效")
	}
	return (c.C1 + t*(c.C2+t*(c.C3+t*(c.C4+t*c.C5)))) / 1e6, nil
}

// IdealGasHeatCapacity 理想气体热容 kJ/(mol·K)
func IdealGasHeatCapacity(t float64, c types.IdealGasCp) (float64, error) {
	if !(t > 0) {
		return 0, types.Errorf("correlation.ideal_gas_heat_capacity", types.KindDomain, "温度 %g K 无效", t)
	}
	return (c.C1 + c.C2*sinhTerm(c.C3/t) + c.C4*coshTerm(c.C5/t)) / 1e6, nil
}

// sinhTerm (x/sinh x)^2, x→0 极限为 1
func sinhTerm(x float64) float64 {
	if x == 0 {
		return 1
	}
	v := x / math.Sinh(x)
	return v * v
}

// coshTerm (x/cosh x)^2
func coshTerm(x float64) float64 {
	v := x / math.Cosh(x)
	return v * v
}

// MeanHeatCapacity [t1, t2] 上的平均热容, t1 == t2 时直接取 fn(t1)
func MeanHeatCapacity[C any](fn func(float64, C) (float64, error), t1, t2 float64, c C) (float64, error) {
	return maths.Mean(func(t float64) (float64, error) { return fn(t, c) }, t1, t2)
}
