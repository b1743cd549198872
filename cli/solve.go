package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	flash "github.com/alfonsoamt/Flash-Drum"
	"github.com/alfonsoamt/Flash-Drum/equilibrium"
	"github.com/alfonsoamt/Flash-Drum/load"
	"github.com/alfonsoamt/Flash-Drum/logger"
	"github.com/alfonsoamt/Flash-Drum/maths"
	"github.com/alfonsoamt/Flash-Drum/types"
)

// feedFlags 进料参数
type feedFlags struct {
	props       string
	name        string
	temperature float64
	pressure    float64
	flow        float64
	comp        map[string]string
}

func (f *feedFlags) register(c *cobra.Command) {
	c.Flags().StringVarP(&f.props, "properties", "P", "", "物性表 CSV (必填)")
	c.Flags().StringVar(&f.name, "feed-name", flash.FeedName, "进料名称")
	c.Flags().Float64Var(&f.temperature, "feed-t", 0, "进料温度 K")
	c.Flags().Float64Var(&f.pressure, "feed-p", 0, "进料压力 kPa")
	c.Flags().Float64Var(&f.flow, "flow", 100, "进料流量 mol/h")
	c.Flags().StringToStringVarP(&f.comp, "comp", "z", nil, "进料组成, 如 benzene=0.5,toluene=0.5")
	_ = c.MarkFlagRequired("properties")
	_ = c.MarkFlagRequired("comp")
}

// parseComposition 解析 name=value 组成
func parseComposition(m map[string]string) (types.Composition, error) {
	if len(m) == 0 {
		return nil, &types.OpError{Op: "cli.composition", Kind: types.KindInvalidCase, Err: fmt.Errorf("comp: 组成为空")}
	}
	c := make(types.Composition, len(m))
	for name, raw := range m {
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, &types.OpError{Op: "cli.composition", Kind: types.KindInvalidCase, Err: fmt.Errorf("comp: %s=%q: %w", name, raw, err)}
		}
		c[strings.TrimSpace(name)] = v
	}
	return c, nil
}

// table 加载物性表并检查组分
func (f *feedFlags) table(z types.Composition) (types.Table, error) {
	table, err := load.LoadFile(f.props)
	if err != nil {
		return nil, err
	}
	if err := table.Check(z); err != nil {
		return nil, err
	}
	return table, nil
}

// toCase 由命令行参数构造工况
func (f *feedFlags) toCase(c *cobra.Command, mode string) (load.Case, error) {
	z, err := parseComposition(f.comp)
	if err != nil {
		return load.Case{}, err
	}
	table, err := f.table(z)
	if err != nil {
		return load.Case{}, err
	}
	feed := types.NewStream(f.name).
		SetPressure(f.pressure).
		SetMolarFlow(f.flow).
		SetComposition(z)
	cs := load.Case{
		Properties: f.props,
		Table:      table,
		Feed:       feed,
		Mode:       mode,
		Solver:     maths.NewSolver(),
	}
	if c.Flags().Changed("feed-t") {
		feed.SetTemperature(f.temperature)
	} else if mode == load.ModeAdiabatic {
		cs.FeedAtBub = true
	} else {
		return load.Case{}, &types.OpError{Op: "cli.case", Kind: types.KindInvalidCase, Err: fmt.Errorf("feed-t: 等温闪蒸需要进料温度")}
	}
	return cs, nil
}

// solve 校验并求解工况
func solve(c load.Case) (*flash.Drum, error) {
	if err := validateCase(c); err != nil {
		return nil, err
	}
	if c.FeedAtBub {
		eq := equilibrium.New(c.Table, c.Solver)
		tb, err := eq.BubbleT(c.Feed.Pressure(), c.Feed.Composition())
		if err != nil {
			return nil, err
		}
		c.Feed.SetTemperature(tb)
		logger.L().Debug("cli.feed_at_bubble", "T", tb, "P", c.Feed.Pressure())
	}
	d := flash.NewDrum(flash.WithSolver(c.Solver), flash.WithLogger(logger.L()))
	if err := d.SetFeed(c.Feed); err != nil {
		return nil, err
	}
	switch c.Mode {
	case load.ModeAdiabatic:
		if err := d.Adiabatic(c.Pressure, c.Table); err != nil {
			return nil, err
		}
	default:
		if err := d.Isothermal(c.Temperature, c.Pressure, c.Table, c.Energy); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func isothermalCmd() *cobra.Command {
	var (
		feed   feedFlags
		out    outputFlags
		t, p   float64
		energy bool
	)
	c := &cobra.Command{
		Use:   "isothermal",
		Short: "等温闪蒸 (给定罐温与罐压)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cs, err := feed.toCase(cmd, load.ModeIsothermal)
			if err != nil {
				return err
			}
			cs.Temperature, cs.Pressure, cs.Energy = t, p, energy
			d, err := solve(cs)
			if err != nil {
				return err
			}
			return out.emit(cmd.OutOrStdout(), d, cs)
		},
	}
	feed.register(c)
	out.register(c)
	c.Flags().Float64VarP(&t, "temperature", "t", 0, "罐温 K")
	c.Flags().Float64VarP(&p, "pressure", "p", 0, "罐压 kPa")
	c.Flags().BoolVarP(&energy, "energy", "e", false, "同时计算热负荷")
	_ = c.MarkFlagRequired("temperature")
	_ = c.MarkFlagRequired("pressure")
	return c
}

func adiabaticCmd() *cobra.Command {
	var (
		feed feedFlags
		out  outputFlags
		p    float64
	)
	c := &cobra.Command{
		Use:   "adiabatic",
		Short: "绝热闪蒸 (给定罐压, 未给进料温度时取进料泡点)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cs, err := feed.toCase(cmd, load.ModeAdiabatic)
			if err != nil {
				return err
			}
			cs.Pressure, cs.Energy = p, true
			d, err := solve(cs)
			if err != nil {
				return err
			}
			return out.emit(cmd.OutOrStdout(), d, cs)
		},
	}
	feed.register(c)
	out.register(c)
	c.Flags().Float64VarP(&p, "pressure", "p", 0, "罐压 kPa")
	_ = c.MarkFlagRequired("pressure")
	return c
}

func runCmd() *cobra.Command {
	var (
		out    outputFlags
		t, p   float64
		energy bool
	)
	c := &cobra.Command{
		Use:   "run <case.yaml>",
		Short: "按工况文件计算",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cs, err := load.LoadCase(args[0])
			if err != nil {
				return err
			}
			// 命令行覆盖工况文件
			if cmd.Flags().Changed("temperature") {
				cs.Temperature = t
			}
			if cmd.Flags().Changed("pressure") {
				cs.Pressure = p
			}
			if cmd.Flags().Changed("energy") {
				cs.Energy = energy
			}
			logger.L().Info("cli.run", "case", cs.Path, "mode", cs.Mode)
			d, err := solve(cs)
			if err != nil {
				return err
			}
			return out.emit(cmd.OutOrStdout(), d, cs)
		},
	}
	out.register(c)
	c.Flags().Float64VarP(&t, "temperature", "t", 0, "覆盖罐温 K")
	c.Flags().Float64VarP(&p, "pressure", "p", 0, "覆盖罐压 kPa")
	c.Flags().BoolVarP(&energy, "energy", "e", false, "覆盖能量衡算开关")
	return c
}
