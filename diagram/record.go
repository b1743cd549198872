// Package diagram 二元体系相图: T-xy(定压) 与 P-xy(定温) 泡露点包络线.
package diagram

import (
	"encoding/json"
	"io"

	"github.com/alfonsoamt/Flash-Drum/equilibrium"
	"github.com/alfonsoamt/Flash-Drum/types"
)

// 相图类型
const (
	KindTxy = "txy"
	KindPxy = "pxy"
)

// 采样点数范围
const (
	MinPoints = 3
	MaxPoints = 101
)

// Point 包络线上一点
// Txy 中 Bubble/Dew 为温度 K, Pxy 中为压力 kPa.
type Point struct {
	X1     float64 `json:"x1"`
	Bubble float64 `json:"bubble"`
	Dew    float64 `json:"dew"`
}

// Record 相图数据
type Record struct {
	Kind   string  `json:"kind"`
	Light  string  `json:"light"` // 横坐标组分
	Heavy  string  `json:"heavy"`
	Fixed  float64 `json:"fixed"` // Txy 为压力 kPa, Pxy 为温度 K
	Points []Point `json:"points"`
}

// Txy 定压 p 下的泡点与露点温度随 x1 变化
func Txy(eq *equilibrium.Equilibrium, light, heavy string, p float64, n int) (*Record, error) {
	r := &Record{Kind: KindTxy, Light: light, Heavy: heavy, Fixed: p}
	err := r.sample("diagram.txy", eq, n, func(z types.Composition) (float64, float64, error) {
		b, err := eq.BubbleT(p, z)
		if err != nil {
			return 0, 0, err
		}
		d, err := eq.DewT(p, z)
		return b, d, err
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Pxy 定温 t 下的泡点与露点压力随 x1 变化
func Pxy(eq *equilibrium.Equilibrium, light, heavy string, t float64, n int) (*Record, error) {
	r := &Record{Kind: KindPxy, Light: light, Heavy: heavy, Fixed: t}
	err := r.sample("diagram.pxy", eq, n, func(z types.Composition) (float64, float64, error) {
		b, err := eq.BubbleP(t, z)
		if err != nil {
			return 0, 0, err
		}
		d, err := eq.DewP(t, z)
		return b, d, err
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// sample 在 x1 ∈ [0, 1] 上等距取 n 点
func (r *Record) sample(op string, eq *equilibrium.Equilibrium, n int, fn func(types.Composition) (float64, float64, error)) error {
	if n < MinPoints || n > MaxPoints {
		return types.Errorf(op, types.KindDomain, "采样点数 %d 超出 [%d, %d]", n, MinPoints, MaxPoints)
	}
	if r.Light == r.Heavy {
		return types.Errorf(op, types.KindInvalidComposition, "需要两个不同组分, 实际 %q", r.Light)
	}
	if _, err := eq.Table.Get(r.Light); err != nil {
		return types.Wrap(op, err)
	}
	if _, err := eq.Table.Get(r.Heavy); err != nil {
		return types.Wrap(op, err)
	}
	r.Points = make([]Point, n)
	for i := range r.Points {
		x := float64(i) / float64(n-1)
		b, d, err := fn(types.Composition{r.Light: x, r.Heavy: 1 - x})
		if err != nil {
			return types.Wrap(op, err)
		}
		r.Points[i] = Point{X1: x, Bubble: b, Dew: d}
	}
	return nil
}

// Quantity 纵坐标名称与单位
func (r *Record) Quantity() (name, unit string) {
	if r.Kind == KindPxy {
		return "P", "kPa"
	}
	return "T", "K"
}

// Render 以 JSON 输出
func (r *Record) Render(w io.Writer) error { return json.NewEncoder(w).Encode(r) }
