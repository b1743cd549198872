// Package flash 理想体系闪蒸罐: 等温与绝热闪蒸.
package flash

import (
	"io"
	"log/slog"

	"github.com/alfonsoamt/Flash-Drum/equilibrium"
	"github.com/alfonsoamt/Flash-Drum/maths"
	"github.com/alfonsoamt/Flash-Drum/types"
)

// 物流默认名称
const (
	FeedName   = "FEED"
	VaporName  = "VAPOR"
	LiquidName = "LIQUID"
)

// Drum 闪蒸罐
// 持有进料与两股出料, 非并发安全, 每个 goroutine 使用独立实例.
type Drum struct {
	solver maths.Solver
	log    *slog.Logger

	feed   *types.Stream
	vapor  *types.Stream
	liquid *types.Stream

	mode  types.Mode
	state types.State
	psi   float64

	heat        float64
	hasHeat     bool
	temperature float64
	hasTemp     bool
	pressure    float64
	hasPress    bool

	err error // 绝热无解原因
}

// Option 闪蒸罐选项
type Option func(*Drum)

// WithSolver 指定求解参数
func WithSolver(s maths.Solver) Option {
	return func(d *Drum) { d.solver = s }
}

// WithLogger 指定日志
func WithLogger(l *slog.Logger) Option {
	return func(d *Drum) {
		if l != nil {
			d.log = l
		}
	}
}

// NewDrum 初始化
func NewDrum(opts ...Option) *Drum {
	d := &Drum{
		solver: maths.NewSolver(),
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		feed:   types.NewStream(FeedName),
		vapor:  types.NewStream(VaporName),
		liquid: types.NewStream(LiquidName),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// SetFeed 设置进料
// 组成在此归一化, 进料被复制, 出料按进料组分清零.
func (d *Drum) SetFeed(s *types.Stream) error {
	const op = "flash.set_feed"
	if s == nil {
		return types.Errorf(op, types.KindInvalidComposition, "进料为空")
	}
	switch {
	case !(s.Temperature() > 0):
		return types.Errorf(op, types.KindDomain, "进料温度 %g K 无效", s.Temperature())
	case !(s.Pressure() > 0):
		return types.Errorf(op, types.KindDomain, "进料压力 %g kPa 无效", s.Pressure())
	case !(s.MolarFlow() >= 0):
		return types.Errorf(op, types.KindDomain, "进料流量 %g 无效", s.MolarFlow())
	}
	feed := s.Clone()
	if err := feed.Normalize(); err != nil {
		return types.Wrap(op, err)
	}
	if feed.Name() == "" {
		feed.SetName(FeedName)
	}
	feed.SetEnthalpy(0)

	d.feed = feed
	d.vapor = feed.Clone().SetName(VaporName)
	d.vapor.Reset()
	d.liquid = feed.Clone().SetName(LiquidName)
	d.liquid.Reset()
	d.mode = types.ModeIsothermal
	d.state = types.StateFeedSet
	d.psi = 0
	d.heat, d.hasHeat = 0, false
	d.temperature, d.hasTemp = 0, false
	d.pressure, d.hasPress = 0, false
	d.err = nil
	return nil
}

// ready 已设置进料
func (d *Drum) ready(op string) error {
	if d.state == types.StateUninitialized {
		return &types.OpError{Op: op, Kind: types.KindNoFeed, Err: types.ErrNoFeed}
	}
	return nil
}

// equilibrium 本次求解使用的平衡求解器
func (d *Drum) equilibrium(table types.Table) *equilibrium.Equilibrium {
	return equilibrium.New(table, d.solver)
}

// BubbleT 进料组成在压力 p 下的泡点
func (d *Drum) BubbleT(p float64, table types.Table) (float64, error) {
	if err := d.ready("flash.bubble_t"); err != nil {
		return 0, err
	}
	return d.equilibrium(table).BubbleT(p, d.feed.Composition())
}

// DewT 进料组成在压力 p 下的露点
func (d *Drum) DewT(p float64, table types.Table) (float64, error) {
	if err := d.ready("flash.dew_t"); err != nil {
		return 0, err
	}
	return d.equilibrium(table).DewT(p, d.feed.Composition())
}

// BubbleP 进料组成在温度 t 下的泡点压力
func (d *Drum) BubbleP(t float64, table types.Table) (float64, error) {
	if err := d.ready("flash.bubble_p"); err != nil {
		return 0, err
	}
	return d.equilibrium(table).BubbleP(t, d.feed.Composition())
}

// DewP 进料组成在温度 t 下的露点压力
func (d *Drum) DewP(t float64, table types.Table) (float64, error) {
	if err := d.ready("flash.dew_p"); err != nil {
		return 0, err
	}
	return d.equilibrium(table).DewP(t, d.feed.Composition())
}

// outlet 罐内结果, 求解成功后一次性提交
type outlet struct {
	mode        types.Mode
	state       types.State
	psi         float64
	t, p        float64
	x, y        types.Composition
	hf, hv, hl  float64
	heat        float64
	energy      bool
	temperature bool
	err         error
}

// commit 写入求解结果
func (d *Drum) commit(o outlet) {
	f := d.feed.MolarFlow()
	v, l, sp := o.psi*f, (1-o.psi)*f, o.p
	// 无解时出料全部清零
	if o.state == types.StateUnsolvable {
		v, l, sp = 0, 0, 0
	}
	d.vapor.SetTemperature(o.t).SetPressure(sp).SetMolarFlow(v).SetComposition(o.y).SetEnthalpy(o.hv)
	d.liquid.SetTemperature(o.t).SetPressure(sp).SetMolarFlow(l).SetComposition(o.x).SetEnthalpy(o.hl)
	d.feed.SetEnthalpy(o.hf)
	d.mode = o.mode
	d.state = o.state
	d.psi = o.psi
	d.heat, d.hasHeat = o.heat, o.energy
	d.temperature, d.hasTemp = o.t, o.temperature
	d.pressure, d.hasPress = o.p, true
	d.err = o.err
}

// Feed 进料副本
func (d *Drum) Feed() *types.Stream { return d.feed.Clone() }

// Vapor 汽相出料副本
func (d *Drum) Vapor() *types.Stream { return d.vapor.Clone() }

// Liquid 液相出料副本
func (d *Drum) Liquid() *types.Stream { return d.liquid.Clone() }

// Mode 计算模式
func (d *Drum) Mode() types.Mode { return d.mode }

// State 状态
func (d *Drum) State() types.State { return d.state }

// Psi 汽化率 V/F
func (d *Drum) Psi() float64 { return d.psi }

// Heat 热负荷 kJ/h, 未做能量衡算时 ok 为 false
func (d *Drum) Heat() (q float64, ok bool) { return d.heat, d.hasHeat }

// Temperature 操作温度 K
func (d *Drum) Temperature() (t float64, ok bool) { return d.temperature, d.hasTemp }

// Pressure 操作压力 kPa
func (d *Drum) Pressure() (p float64, ok bool) { return d.pressure, d.hasPress }

// Err 绝热无解时返回 ErrUnsolvableAdiabatic
func (d *Drum) Err() error { return d.err }
