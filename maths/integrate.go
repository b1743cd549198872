package maths

import (
	"gonum.org/v1/gonum/integrate/quad"
)

// QuadPoints 高斯-勒让德积分点数
const QuadPoints = 24

// Integrate 计算 [a, b] 上的定积分
// 被积函数的第一个错误会中止结果.
func Integrate(f Func, a, b float64) (float64, error) {
	if a == b {
		return 0, nil
	}
	sign := 1.0
	if a > b {
		a, b, sign = b, a, -1
	}
	var ferr error
	v := quad.Fixed(func(x float64) float64 {
		y, err := f(x)
		if err != nil && ferr == nil {
			ferr = err
		}
		return y
	}, a, b, QuadPoints, quad.Legendre{}, 0)
	if ferr != nil {
		return 0, ferr
	}
	return sign * v, nil
}

// Mean 区间平均值 ∫f/(b-a), 区间退化时取端点值
func Mean(f Func, a, b float64) (float64, error) {
	if a == b {
		return f(a)
	}
	v, err := Integrate(f, a, b)
	if err != nil {
		return 0, err
	}
	return v / (b - a), nil
}
