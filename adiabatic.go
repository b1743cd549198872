package flash

import (
	"math"

	"github.com/alfonsoamt/Flash-Drum/energy"
	"github.com/alfonsoamt/Flash-Drum/equilibrium"
	"github.com/alfonsoamt/Flash-Drum/maths"
	"github.com/alfonsoamt/Flash-Drum/types"
)

// Adiabatic 绝热闪蒸 (Q = 0)
// 进料须在进料压力下不高于泡点, 否则进入无解状态: 出料清零, Err 返回原因, 方法本身返回 nil.
// 罐压下进料仍低于泡点时不汽化. 其余情况联立 Rachford-Rice 与能量衡算求 ψ 和 T.
func (d *Drum) Adiabatic(p float64, table types.Table) error {
	const op = "flash.adiabatic"
	if err := d.ready(op); err != nil {
		return err
	}
	if !(p > 0) {
		return types.Errorf(op, types.KindDomain, "操作压力 %g kPa 无效", p)
	}
	z := d.feed.Composition()
	tf := d.feed.Temperature()
	eq := d.equilibrium(table)
	feedBubble, err := eq.BubbleT(d.feed.Pressure(), z)
	if err != nil {
		return types.Wrap(op, err)
	}
	if tf > feedBubble {
		d.commit(outlet{
			mode:   types.ModeAdiabaticUnsolved,
			state:  types.StateUnsolvable,
			p:      p,
			x:      z.Zero(),
			y:      z.Zero(),
			energy: true,
			err: types.Errorf(op, types.KindUnsolvableAdiabatic,
				"进料温度 %.2f K 高于进料泡点 %.2f K", tf, feedBubble),
		})
		d.log.Warn("flash.unsolvable", "Tf", tf, "bubble", feedBubble, "P", p)
		return nil
	}

	env, err := eq.Envelope(p, z)
	if err != nil {
		return types.Wrap(op, err)
	}
	en := energy.New(table, d.solver, p, env)
	hf, err := en.LiquidEnthalpy(tf, z)
	if err != nil {
		return types.Wrap(op, err)
	}
	o := outlet{mode: types.ModeAdiabatic, state: types.StateSolved, p: p, hf: hf, energy: true, temperature: true}

	if tf <= env.Bubble {
		o.t, o.psi, o.x, o.y, o.hl = tf, 0, z.Clone(), z.Zero(), hf
		d.commit(o)
		d.log.Info("flash.adiabatic", "T", tf, "P", p, "psi", 0.0, "vaporized", false)
		return nil
	}

	residual := func(v, r []float64) error {
		psi, t := v[0], v[1]
		k, err := eq.KValues(t, p, z)
		if err != nil {
			return err
		}
		x, y := equilibrium.Split(psi, z, k)
		hl, err := en.LiquidEnthalpy(t, x)
		if err != nil {
			return err
		}
		hv, err := en.SaturatedEnthalpy(t, y)
		if err != nil {
			return err
		}
		r[0] = equilibrium.Residual(psi, z, k)
		r[1] = psi*hv + (1-psi)*hl - hf
		return nil
	}
	sol, err := d.solver.Newton(residual, []float64{0.5, 0.5 * (env.Bubble + env.Dew)}, maths.Bounds{
		Lower: []float64{0, env.Bubble},
		Upper: []float64{1, env.Dew},
		Scale: []float64{1, math.Max(math.Abs(hf), 1)},
	})
	if err != nil {
		return types.Wrap(op, err)
	}
	o.psi, o.t = sol[0], sol[1]
	k, err := eq.KValues(o.t, p, z)
	if err != nil {
		return types.Wrap(op, err)
	}
	o.x, o.y = equilibrium.Split(o.psi, z, k)
	if o.hl, err = en.LiquidEnthalpy(o.t, o.x); err != nil {
		return types.Wrap(op, err)
	}
	if o.hv, err = en.SaturatedEnthalpy(o.t, o.y); err != nil {
		return types.Wrap(op, err)
	}
	// 按出料焓重算, 反映能量衡算闭合程度
	f := d.feed.MolarFlow()
	o.heat = energy.HeatDuty(o.psi*f, o.hv, (1-o.psi)*f, o.hl, f, o.hf)

	d.commit(o)
	d.log.Info("flash.adiabatic", "T", o.t, "P", p, "psi", o.psi, "Q", o.heat,
		"bubble", env.Bubble, "dew", env.Dew)
	return nil
}
