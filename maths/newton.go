package maths

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/alfonsoamt/Flash-Drum/types"
)

// System 方程组残差 r = F(x)
type System func(x, r []float64) error

// Bounds 变量边界与残差尺度
type Bounds struct {
	Lower []float64 // 下界
	Upper []float64 // 上界
	Scale []float64 // 残差尺度(可空), 范数计算时 r_i/Scale_i
}

func (b Bounds) clamp(x []float64) {
	for i := range x {
		if b.Lower != nil {
			x[i] = math.Max(x[i], b.Lower[i])
		}
		if b.Upper != nil {
			x[i] = math.Min(x[i], b.Upper[i])
		}
	}
}

func (b Bounds) norm(r []float64) float64 {
	var sum float64
	for i, v := range r {
		if b.Scale != nil && b.Scale[i] > 0 {
			v /= b.Scale[i]
		}
		sum += v * v
	}
	return math.Sqrt(sum)
}

// Newton 阻尼 Newton-Raphson 求解 F(x)=0
// 雅可比矩阵用前向差分近似, 每步回溯减小阻尼因子直到残差下降, 变量始终截断在边界内.
func (s Solver) Newton(f System, x0 []float64, bounds Bounds) ([]float64, error) {
	s = s.withDefaults()
	n := len(x0)
	x := append([]float64(nil), x0...)
	bounds.clamp(x)
	r := make([]float64, n)
	if err := f(x, r); err != nil {
		return nil, err
	}
	res := bounds.norm(r)

	jac := mat.NewDense(n, n, nil)
	xh := make([]float64, n)
	rh := make([]float64, n)
	xt := make([]float64, n)
	rt := make([]float64, n)
	for iter := 0; iter < s.MaxIter; iter++ {
		if res == 0 {
			return x, nil
		}
		// 数值雅可比
		for j := 0; j < n; j++ {
			copy(xh, x)
			h := math.Sqrt(s.Tol) * math.Max(math.Abs(x[j]), 1)
			if bounds.Upper != nil && x[j]+h > bounds.Upper[j] {
				h = -h
			}
			xh[j] += h
			if err := f(xh, rh); err != nil {
				return nil, err
			}
			for i := 0; i < n; i++ {
				jac.Set(i, j, (rh[i]-r[i])/h)
			}
		}
		// 求解 J dx = -r
		neg := mat.NewVecDense(n, nil)
		for i := range r {
			neg.SetVec(i, -r[i])
		}
		var dx mat.VecDense
		if err := dx.SolveVec(jac, neg); err != nil {
			var cond mat.Condition
			if !errors.As(err, &cond) || math.IsInf(float64(cond), 1) {
				return nil, types.Errorf("maths.newton", types.KindConvergence, "雅可比矩阵奇异: %v", err)
			}
		}
		// 回溯阻尼
		damping := 1.0
		for {
			for i := range x {
				xt[i] = x[i] + damping*dx.AtVec(i)
			}
			bounds.clamp(xt)
			if err := f(xt, rt); err != nil {
				return nil, err
			}
			if bounds.norm(rt) < res || damping <= types.MinDamping {
				break
			}
			damping *= 0.5
		}
		// 收敛检查
		var change float64
		for i := range x {
			change = math.Max(change, math.Abs(xt[i]-x[i])/math.Max(math.Abs(x[i]), 1))
		}
		copy(x, xt)
		copy(r, rt)
		res = bounds.norm(r)
		if change < s.Tol {
			if res > math.Sqrt(s.Tol) {
				return nil, types.Errorf("maths.newton", types.KindConvergence, "停滞于边界, 残差=%.3e", res)
			}
			return x, nil
		}
	}
	return nil, types.Errorf("maths.newton", types.KindConvergence, "%d 次迭代未收敛, 残差=%.3e", s.MaxIter, res)
}
