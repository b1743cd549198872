package equilibrium

import (
	"github.com/alfonsoamt/Flash-Drum/types"
)

// Residual Rachford-Rice 残差 Σ z_i(1-K_i)/(1+ψ(K_i-1))
func Residual(psi float64, z types.Composition, k map[string]float64) float64 {
	var sum float64
	for _, name := range z.Keys() {
		ki := k[name]
		sum += z[name] * (1 - ki) / (1 + psi*(ki-1))
	}
	return sum
}

// RachfordRice 给定 T, P 求汽化率 ψ 与各组分 K 值
// T 不高于泡点时 ψ=0, 不低于露点时 ψ=1, 仅两相区内求根.
func (e *Equilibrium) RachfordRice(t, p float64, z types.Composition) (float64, map[string]float64, error) {
	const op = "equilibrium.rachford_rice"
	env, err := e.Envelope(p, z)
	if err != nil {
		return 0, nil, types.Wrap(op, err)
	}
	k, err := e.KValues(t, p, z)
	if err != nil {
		return 0, nil, types.Wrap(op, err)
	}
	switch {
	case t <= env.Bubble:
		return 0, k, nil
	case t >= env.Dew:
		return 1, k, nil
	}
	psi, err := e.SolvePsi(z, k)
	if err != nil {
		return 0, nil, types.Wrap(op, err)
	}
	return psi, k, nil
}

// SolvePsi 已知 K 值求 ψ ∈ [0, 1]
// 端点残差已越过零点时取端点值.
func (e *Equilibrium) SolvePsi(z types.Composition, k map[string]float64) (float64, error) {
	if Residual(0, z, k) >= 0 {
		return 0, nil
	}
	if Residual(1, z, k) <= 0 {
		return 1, nil
	}
	return e.Solver.Root(func(psi float64) (float64, error) {
		return Residual(psi, z, k), nil
	}, 0, 1)
}

// Split 由 ψ 和 K 计算液相组成 x 与汽相组成 y
func Split(psi float64, z types.Composition, k map[string]float64) (x, y types.Composition) {
	x = make(types.Composition, len(z))
	y = make(types.Composition, len(z))
	for _, name := range z.Keys() {
		x[name] = z[name] / (1 + psi*(k[name]-1))
		y[name] = x[name] * k[name]
	}
	return x, y
}
