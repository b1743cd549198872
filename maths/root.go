package maths

import (
	"math"

	"github.com/alfonsoamt/Flash-Drum/types"
)

// Func 可能失败的标量函数
type Func func(x float64) (float64, error)

// Solver 有界求解参数
// 值类型, 按调用传递, 不持有状态.
type Solver struct {
	Tol     float64 // 相对收敛容差
	MaxIter int     // 最大迭代次数
}

// NewSolver 默认参数
func NewSolver() Solver {
	return Solver{Tol: types.Tolerance, MaxIter: types.MaxIterations}
}

// withDefaults 补齐零值参数
func (s Solver) withDefaults() Solver {
	if s.Tol <= 0 {
		s.Tol = types.Tolerance
	}
	if s.MaxIter <= 0 {
		s.MaxIter = types.MaxIterations
	}
	return s
}

// Root 在 [lo, hi] 内求 f(x)=0, 初值取区间中点
func (s Solver) Root(f Func, lo, hi float64) (float64, error) {
	return s.RootGuess(f, lo, hi, 0.5*(lo+hi))
}

// RootGuess 在 [lo, hi] 内求 f(x)=0
// 数值导数牛顿步, 越界或收缩过慢时退回二分, 始终保持变号区间.
func (s Solver) RootGuess(f Func, lo, hi, x0 float64) (float64, error) {
	s = s.withDefaults()
	if lo > hi {
		lo, hi = hi, lo
	}
	flo, err := f(lo)
	if err != nil {
		return 0, err
	}
	if flo == 0 {
		return lo, nil
	}
	fhi, err := f(hi)
	if err != nil {
		return 0, err
	}
	if fhi == 0 {
		return hi, nil
	}
	if math.IsNaN(flo) || math.IsNaN(fhi) || (flo > 0) == (fhi > 0) {
		return 0, types.Errorf("maths.root", types.KindNoEquilibrium,
			"区间 [%g, %g] 无变号: f=%g, %g", lo, hi, flo, fhi)
	}
	// neg 处 f<0, pos 处 f>0
	neg, pos := lo, hi
	if flo > 0 {
		neg, pos = hi, lo
	}
	x := x0
	if !(x > lo && x < hi) {
		x = 0.5 * (lo + hi)
	}
	fx, err := f(x)
	if err != nil {
		return 0, err
	}
	dxOld := hi - lo
	for iter := 0; iter < s.MaxIter; iter++ {
		if fx == 0 {
			return x, nil
		}
		if fx < 0 {
			neg = x
		} else {
			pos = x
		}
		h := s.Tol * math.Max(math.Abs(x), 1)
		if math.Abs(pos-neg) <= 2*h {
			return 0.5 * (pos + neg), nil
		}
		a, b := math.Min(neg, pos), math.Max(neg, pos)
		// 数值导数
		xn := math.NaN()
		step := h
		if x+step > hi {
			step = -h
		}
		if fh, err := f(x + step); err == nil {
			d := (fh - fx) / step
			if d != 0 && !math.IsNaN(d) && !math.IsInf(d, 0) {
				xn = x - fx/d
			}
		}
		// 二分保护
		if math.IsNaN(xn) || xn <= a || xn >= b || math.Abs(xn-x) > 0.5*dxOld {
			xn = 0.5 * (a + b)
		}
		dx := math.Abs(xn - x)
		dxOld = dx
		x = xn
		if fx, err = f(x); err != nil {
			return 0, err
		}
		if dx <= h {
			return x, nil
		}
	}
	return 0, types.Errorf("maths.root", types.KindConvergence, "%d 次迭代未收敛, x=%g", s.MaxIter, x)
}
