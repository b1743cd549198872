// Package correlation 纯组分物性关联式 (DIPPR 形式, 输入 SI 系数, 输出 kPa / kJ)
package correlation

import (
	"math"

	"github.com/alfonsoamt/Flash-Drum/maths"
	"github.com/alfonsoamt/Flash-Drum/types"
)

// lnVaporPressure ln(Psat/Pa)
func lnVaporPressure(t float64, c types.Antoine) (float64, error) {
	if !(t > 0) || math.IsInf(t, 0) {
		return 0, types.Errorf("correlation.vapor_pressure", types.KindDomain, "温度 %g K 无效", t)
	}
	return c.C1 + c.C2/t + c.C3*math.Log(t) + c.C4*math.Pow(t, c.C5), nil
}

// VaporPressure 扩展安托因方程 饱和蒸气压 kPa
func VaporPressure(t float64, c types.Antoine) (float64, error) {
	ln, err := lnVaporPressure(t, c)
	if err != nil {
		return 0, err
	}
	return math.Exp(ln) / 1000, nil
}

// InverseVaporPressure 给定压力 kPa 反算饱和温度 K
// 在 [100, 800] K 内求根, 初值 298.15 K.
func InverseVaporPressure(p float64, c types.Antoine, solver maths.Solver) (float64, error) {
	if !(p > 0) {
		return 0, types.Errorf("correlation.inverse_vapor_pressure", types.KindDomain, "压力 %g kPa 无效", p)
	}
	target := math.Log(p * 1000)
	t, err := solver.RootGuess(func(t float64) (float64, error) {
		ln, err := lnVaporPressure(t, c)
		return ln - target, err
	}, types.InverseLower, types.InverseUpper, types.InverseGuess)
	if err != nil {
		if types.IsKind(err, types.KindDomain) {
			return 0, err
		}
		return 0, &types.OpError{Op: "correlation.inverse_vapor_pressure", Kind: types.KindConvergence, Err: err}
	}
	return t, nil
}
