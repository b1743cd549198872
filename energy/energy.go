// Package energy 闪蒸能量衡算: 相对 Tref 的摩尔焓与热负荷.
//
// 平均热容取操作压力下泡点到露点区间的积分平均值, 各组分只计算一次.
package energy

import (
	"github.com/alfonsoamt/Flash-Drum/correlation"
	"github.com/alfonsoamt/Flash-Drum/equilibrium"
	"github.com/alfonsoamt/Flash-Drum/maths"
	"github.com/alfonsoamt/Flash-Drum/types"
)

// Means 组分平均热容 kJ/(mol·K)
type Means struct {
	Liquid   float64
	IdealGas float64
}

// Engine 单次求解的能量衡算
type Engine struct {
	table    types.Table
	solver   maths.Solver
	pressure float64              // 操作压力 kPa
	window   equilibrium.Envelope // 平均热容温度区间
	means    map[string]Means
	boiling  map[string]float64
}

// New 创建能量衡算, window 为操作压力下的泡露点
func New(table types.Table, solver maths.Solver, p float64, window equilibrium.Envelope) *Engine {
	return &Engine{
		table:    table,
		solver:   solver,
		pressure: p,
		window:   window,
		means:    make(map[string]Means),
		boiling:  make(map[string]float64),
	}
}

// Means 组分平均热容
func (e *Engine) Means(name string) (Means, error) {
	if m, ok := e.means[name]; ok {
		return m, nil
	}
	c, err := e.table.Get(name)
	if err != nil {
		return Means{}, err
	}
	cl, err := correlation.MeanHeatCapacity(correlation.LiquidHeatCapacity, e.window.Bubble, e.window.Dew, c.LiquidCp)
	if err != nil {
		return Means{}, err
	}
	cg, err := correlation.MeanHeatCapacity(correlation.IdealGasHeatCapacity, e.window.Bubble, e.window.Dew, c.IdealGasCp)
	if err != nil {
		return Means{}, err
	}
	m := Means{Liquid: cl, IdealGas: cg}
	e.means[name] = m
	return m, nil
}

// Boiling 组分在操作压力下的沸点
func (e *Engine) Boiling(name string) (float64, error) {
	if t, ok := e.boiling[name]; ok {
		return t, nil
	}
	c, err := e.table.Get(name)
	if err != nil {
		return 0, err
	}
	t, err := correlation.InverseVaporPressure(e.pressure, c.Antoine, e.solver)
	if err != nil {
		return 0, err
	}
	e.boiling[name] = t
	return t, nil
}

// sum Σ frac_i·term(name, m)
func (e *Engine) sum(frac types.Composition, term func(name string, c types.Compound, m Means) (float64, error)) (float64, error) {
	var h float64
	for _, name := range frac.Keys() {
		fi := frac[name]
		if fi == 0 {
			continue
		}
		m, err := e.Means(name)
		if err != nil {
			return 0, err
		}
		v, err := term(name, e.table[name], m)
		if err != nil {
			return 0, err
		}
		h += fi * v
	}
	return h, nil
}

// LiquidEnthalpy 液相焓 Σx·Cp_L(T-Tref)
func (e *Engine) LiquidEnthalpy(t float64, x types.Composition) (float64, error) {
	return e.sum(x, func(_ string, _ types.Compound, m Means) (float64, error) {
		return m.Liquid * (t - types.Tref), nil
	})
}

// SaturatedEnthalpy 饱和汽相焓 Σy·[Cp_L(T-Tref) + ΔHvap(T)]
func (e *Engine) SaturatedEnthalpy(t float64, y types.Composition) (float64, error) {
	return e.sum(y, func(_ string, c types.Compound, m Means) (float64, error) {
		hv, err := correlation.HeatOfVaporization(t, c.HeatVap)
		if err != nil {
			return 0, err
		}
		return m.Liquid*(t-types.Tref) + hv, nil
	})
}

// SuperheatedEnthalpy 过热汽相焓 Σy·[Cp_L(Tb-Tref) + ΔHvap(Tb) + Cp_ig(T-Tb)]
// Tb 为组分在操作压力下的沸点.
func (e *Engine) SuperheatedEnthalpy(t float64, y types.Composition) (float64, error) {
	return e.sum(y, func(name string, c types.Compound, m Means) (float64, error) {
		tb, err := e.Boiling(name)
		if err != nil {
			return 0, err
		}
		hv, err := correlation.HeatOfVaporization(tb, c.HeatVap)
		if err != nil {
			return 0, err
		}
		return m.Liquid*(tb-types.Tref) + hv + m.IdealGas*(t-tb), nil
	})
}

// VaporEnthalpy 罐内汽相焓, 露点及以上按过热计算
func (e *Engine) VaporEnthalpy(t float64, y types.Composition) (float64, error) {
	if t >= e.window.Dew {
		return e.SuperheatedEnthalpy(t, y)
	}
	return e.SaturatedEnthalpy(t, y)
}

// FeedEnthalpy 进料焓, phase 由进料压力下的泡露点判定
func (e *Engine) FeedEnthalpy(phase types.Phase, t float64, z types.Composition) (float64, error) {
	switch phase {
	case types.PhaseLiquid:
		return e.LiquidEnthalpy(t, z)
	case types.PhaseVapor:
		return e.SuperheatedEnthalpy(t, z)
	}
	return e.SaturatedEnthalpy(t, z)
}

// HeatDuty 热负荷 Q = V·hV + L·hL - F·hF
func HeatDuty(v, hv, l, hl, f, hf float64) float64 {
	return v*hv + l*hl - f*hf
}
