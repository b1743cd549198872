// Package equilibrium 理想体系(拉乌尔定律)汽液平衡: 泡露点与 Rachford-Rice 闪蒸.
package equilibrium

import (
	"math"

	"github.com/alfonsoamt/Flash-Drum/correlation"
	"github.com/alfonsoamt/Flash-Drum/maths"
	"github.com/alfonsoamt/Flash-Drum/types"
)

// IdealK 拉乌尔定律平衡常数 K = Psat(T)/P
func IdealK(t, p float64, c types.Antoine) (float64, error) {
	if !(p > 0) {
		return 0, types.Errorf("equilibrium.ideal_k", types.KindDomain, "压力 %g kPa 无效", p)
	}
	psat, err := correlation.VaporPressure(t, c)
	if err != nil {
		return 0, err
	}
	return psat / p, nil
}

// Envelope 给定压力下的泡点与露点温度 K
type Envelope struct {
	Bubble float64
	Dew    float64
}

// Equilibrium 平衡求解器
// 只读取物性表, 不保存求解状态.
type Equilibrium struct {
	Table  types.Table
	Solver maths.Solver
}

// New 创建平衡求解器
func New(table types.Table, solver maths.Solver) *Equilibrium {
	return &Equilibrium{Table: table, Solver: solver}
}

// check 校验组成与物性表
func (e *Equilibrium) check(op string, z types.Composition) error {
	if len(z) == 0 {
		return types.Errorf(op, types.KindInvalidComposition, "组成为空")
	}
	if err := e.Table.Check(z); err != nil {
		return types.Wrap(op, err)
	}
	return nil
}

// KValues 各组分 K 值
func (e *Equilibrium) KValues(t, p float64, z types.Composition) (map[string]float64, error) {
	k := make(map[string]float64, len(z))
	for _, name := range z.Keys() {
		c, err := e.Table.Get(name)
		if err != nil {
			return nil, err
		}
		if k[name], err = IdealK(t, p, c.Antoine); err != nil {
			return nil, err
		}
	}
	return k, nil
}

// psatSum Σ z_i·Psat_i^sign
func (e *Equilibrium) psatSum(t float64, z types.Composition, inverse bool) (float64, error) {
	var sum float64
	for _, name := range z.Keys() {
		zi := z[name]
		if zi == 0 {
			continue
		}
		psat, err := correlation.VaporPressure(t, e.Table[name].Antoine)
		if err != nil {
			return 0, err
		}
		if inverse {
			sum += zi / psat
		} else {
			sum += zi * psat
		}
	}
	return sum, nil
}

// BubbleT 泡点温度: Σ z_i·K_i(T,P) = 1, T ∈ (0, 800] K
func (e *Equilibrium) BubbleT(p float64, z types.Composition) (float64, error) {
	const op = "equilibrium.bubble_t"
	if err := e.check(op, z); err != nil {
		return 0, err
	}
	if !(p > 0) {
		return 0, types.Errorf(op, types.KindDomain, "压力 %g kPa 无效", p)
	}
	t, err := e.Solver.Root(func(t float64) (float64, error) {
		sum, err := e.psatSum(t, z, false)
		return sum/p - 1, err
	}, math.Max(types.BubbleTLower, types.MinTemperature), types.BubbleTUpper)
	if err != nil {
		return 0, types.Wrap(op, err)
	}
	return t, nil
}

// DewT 露点温度: Σ z_i/K_i(T,P) = 1, T ∈ [200, 800] K
func (e *Equilibrium) DewT(p float64, z types.Composition) (float64, error) {
	const op = "equilibrium.dew_t"
	if err := e.check(op, z); err != nil {
		return 0, err
	}
	if !(p > 0) {
		return 0, types.Errorf(op, types.KindDomain, "压力 %g kPa 无效", p)
	}
	t, err := e.Solver.Root(func(t float64) (float64, error) {
		sum, err := e.psatSum(t, z, true)
		return sum*p - 1, err
	}, types.DewTLower, types.DewTUpper)
	if err != nil {
		return 0, types.Wrap(op, err)
	}
	return t, nil
}

// Envelope 泡点与露点
func (e *Equilibrium) Envelope(p float64, z types.Composition) (Envelope, error) {
	b, err := e.BubbleT(p, z)
	if err != nil {
		return Envelope{}, err
	}
	d, err := e.DewT(p, z)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Bubble: b, Dew: d}, nil
}

// BubbleP 泡点压力 P = Σ z_i·Psat_i(T)
func (e *Equilibrium) BubbleP(t float64, z types.Composition) (float64, error) {
	const op = "equilibrium.bubble_p"
	if err := e.check(op, z); err != nil {
		return 0, err
	}
	sum, err := e.psatSum(t, z, false)
	if err != nil {
		return 0, types.Wrap(op, err)
	}
	return sum, nil
}

// DewP 露点压力 P = (Σ z_i/Psat_i(T))^-1
func (e *Equilibrium) DewP(t float64, z types.Composition) (float64, error) {
	const op = "equilibrium.dew_p"
	if err := e.check(op, z); err != nil {
		return 0, err
	}
	sum, err := e.psatSum(t, z, true)
	if err != nil {
		return 0, types.Wrap(op, err)
	}
	return 1 / sum, nil
}
