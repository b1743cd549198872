package types

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
)

// Composition 摩尔组成 组分名 -> 摩尔分数
type Composition map[string]float64

// Keys 按名称排序的组分列表
func (c Composition) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Values 按 Keys 顺序的分数
func (c Composition) Values() []float64 {
	keys := c.Keys()
	v := make([]float64, len(keys))
	for i, k := range keys {
		v[i] = c[k]
	}
	return v
}

// Sum 分数之和
func (c Composition) Sum() float64 { return floats.Sum(c.Values()) }

// Clone 深拷贝
func (c Composition) Clone() Composition {
	if c == nil {
		return nil
	}
	out := make(Composition, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Zero 同组分全零组成
func (c Composition) Zero() Composition {
	out := make(Composition, len(c))
	for k := range c {
		out[k] = 0
	}
	return out
}

// Normalize 归一化, 返回新组成
func (c Composition) Normalize() (Composition, error) {
	if len(c) == 0 {
		return nil, Errorf("composition.normalize", KindInvalidComposition, "组成为空")
	}
	for _, k := range c.Keys() {
		v := c[k]
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return nil, Errorf("composition.normalize", KindInvalidComposition, "组分 %s 分数无效: %v", k, v)
		}
	}
	sum := c.Sum()
	if sum <= 0 {
		return nil, Errorf("composition.normalize", KindInvalidComposition, "分数之和为零")
	}
	v := c.Values()
	floats.Scale(1/sum, v)
	out := make(Composition, len(c))
	for i, k := range c.Keys() {
		out[k] = v[i]
	}
	return out, nil
}

// Stream 物流
// 字段只通过 Set 方法修改, Set 方法返回自身便于链式构造.
type Stream struct {
	name        string
	temperature float64     // K
	pressure    float64     // kPa
	molarFlow   float64     // mol/h
	composition Composition // 摩尔组成
	enthalpy    float64     // kJ/mol
}

// NewStream 创建物流
func NewStream(name string) *Stream {
	return &Stream{name: name, composition: Composition{}}
}

func (s *Stream) Name() string             { return s.name }
func (s *Stream) Temperature() float64     { return s.temperature }
func (s *Stream) Pressure() float64        { return s.pressure }
func (s *Stream) MolarFlow() float64       { return s.molarFlow }
func (s *Stream) Enthalpy() float64        { return s.enthalpy }
func (s *Stream) Composition() Composition { return s.composition.Clone() }

// Fraction 单组分分数, 不存在为 0
func (s *Stream) Fraction(name string) float64 { return s.composition[name] }

func (s *Stream) SetName(name string) *Stream      { s.name = name; return s }
func (s *Stream) SetTemperature(t float64) *Stream { s.temperature = t; return s }
func (s *Stream) SetPressure(p float64) *Stream    { s.pressure = p; return s }
func (s *Stream) SetMolarFlow(f float64) *Stream   { s.molarFlow = f; return s }
func (s *Stream) SetEnthalpy(h float64) *Stream    { s.enthalpy = h; return s }

// SetComposition 设置组成(拷贝)
func (s *Stream) SetComposition(c Composition) *Stream {
	s.composition = c.Clone()
	if s.composition == nil {
		s.composition = Composition{}
	}
	return s
}

// SetFraction 设置单组分分数
func (s *Stream) SetFraction(name string, v float64) *Stream {
	if s.composition == nil {
		s.composition = Composition{}
	}
	s.composition[name] = v
	return s
}

// Normalize 组成归一化
func (s *Stream) Normalize() error {
	c, err := s.composition.Normalize()
	if err != nil {
		return err
	}
	s.composition = c
	return nil
}

// Clone 深拷贝
func (s *Stream) Clone() *Stream {
	out := *s
	out.composition = s.composition.Clone()
	return &out
}

// Reset 清零状态量, 保留名称与组分列表
func (s *Stream) Reset() {
	s.temperature, s.pressure, s.molarFlow, s.enthalpy = 0, 0, 0, 0
	s.composition = s.composition.Zero()
}
