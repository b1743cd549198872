package flash

import (
	"github.com/alfonsoamt/Flash-Drum/energy"
	"github.com/alfonsoamt/Flash-Drum/equilibrium"
	"github.com/alfonsoamt/Flash-Drum/types"
)

// Isothermal 等温闪蒸
// 罐内温度低于泡点全液相, 高于露点全汽相, 其间解 Rachford-Rice.
// withEnergy 为 true 时计算各物流焓与热负荷.
func (d *Drum) Isothermal(t, p float64, table types.Table, withEnergy bool) error {
	const op = "flash.isothermal"
	if err := d.ready(op); err != nil {
		return err
	}
	if !(t > 0) || !(p > 0) {
		return types.Errorf(op, types.KindDomain, "操作条件无效 T=%g K, P=%g kPa", t, p)
	}
	z := d.feed.Composition()
	eq := d.equilibrium(table)
	feedEnv, err := eq.Envelope(d.feed.Pressure(), z)
	if err != nil {
		return types.Wrap(op, err)
	}
	env, err := eq.Envelope(p, z)
	if err != nil {
		return types.Wrap(op, err)
	}

	o := outlet{mode: types.ModeIsothermal, state: types.StateSolved, t: t, p: p, temperature: true, energy: withEnergy}
	phase := types.Classify(t, env.Bubble, env.Dew)
	switch phase {
	case types.PhaseLiquid:
		o.psi, o.x, o.y = 0, z.Clone(), z.Zero()
	case types.PhaseVapor:
		o.psi, o.x, o.y = 1, z.Zero(), z.Clone()
	default:
		k, err := eq.KValues(t, p, z)
		if err != nil {
			return types.Wrap(op, err)
		}
		if o.psi, err = eq.SolvePsi(z, k); err != nil {
			return types.Wrap(op, err)
		}
		o.x, o.y = equilibrium.Split(o.psi, z, k)
	}

	if withEnergy {
		en := energy.New(table, d.solver, p, env)
		feedPhase := types.Classify(d.feed.Temperature(), feedEnv.Bubble, feedEnv.Dew)
		if o.hf, err = en.FeedEnthalpy(feedPhase, d.feed.Temperature(), z); err != nil {
			return types.Wrap(op, err)
		}
		if o.hl, err = en.LiquidEnthalpy(t, o.x); err != nil {
			return types.Wrap(op, err)
		}
		if o.hv, err = en.VaporEnthalpy(t, o.y); err != nil {
			return types.Wrap(op, err)
		}
		f := d.feed.MolarFlow()
		o.heat = energy.HeatDuty(o.psi*f, o.hv, (1-o.psi)*f, o.hl, f, o.hf)
	}

	d.commit(o)
	d.log.Debug("flash.isothermal",
		"T", t, "P", p, "phase", phase.String(), "psi", o.psi,
		"bubble", env.Bubble, "dew", env.Dew)
	if withEnergy {
		d.log.Info("flash.isothermal", "T", t, "P", p, "psi", o.psi, "Q", o.heat)
	}
	return nil
}
