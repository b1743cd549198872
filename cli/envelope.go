package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alfonsoamt/Flash-Drum/equilibrium"
	"github.com/alfonsoamt/Flash-Drum/maths"
	"github.com/alfonsoamt/Flash-Drum/types"
)

// Point 泡露点计算结果
type Point struct {
	Kind        string             `json:"kind"`
	Temperature float64            `json:"temperature"`
	Pressure    float64            `json:"pressure"`
	Composition types.Composition  `json:"composition"`
	K           map[string]float64 `json:"k"`
}

// pointCmd 泡点与露点命令, 给定压力求温度或给定温度求压力
func pointCmd(kind string) *cobra.Command {
	var (
		props  string
		comp   map[string]string
		t, p   float64
		format string
	)
	short := map[string]string{"bubble": "泡点温度或泡点压力", "dew": "露点温度或露点压力"}[kind]
	c := &cobra.Command{
		Use:   kind,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			byP, byT := cmd.Flags().Changed("pressure"), cmd.Flags().Changed("temperature")
			if byP == byT {
				return &types.OpError{Op: "cli." + kind, Kind: types.KindInvalidCase, Err: fmt.Errorf("需要且只能给定 --pressure 或 --temperature 之一")}
			}
			z, err := parseComposition(comp)
			if err != nil {
				return err
			}
			if z, err = z.Normalize(); err != nil {
				return err
			}
			ff := feedFlags{props: props}
			table, err := ff.table(z)
			if err != nil {
				return err
			}
			eq := equilibrium.New(table, maths.NewSolver())

			pt := Point{Kind: kind, Composition: z}
			if byP {
				if err := checkRange("pressure", p, MinPressure, MaxPressure); err != nil {
					return err
				}
				pt.Pressure = p
				fn := eq.BubbleT
				if kind == "dew" {
					fn = eq.DewT
				}
				if pt.Temperature, err = fn(p, z); err != nil {
					return err
				}
			} else {
				if err := checkRange("temperature", t, MinTemperature, MaxTemperature); err != nil {
					return err
				}
				pt.Temperature = t
				fn := eq.BubbleP
				if kind == "dew" {
					fn = eq.DewP
				}
				if pt.Pressure, err = fn(t, z); err != nil {
					return err
				}
			}
			if pt.K, err = eq.KValues(pt.Temperature, pt.Pressure, z); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if strings.EqualFold(format, FormatJSON) {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(pt)
			}
			th := DefaultTheme()
			var b strings.Builder
			b.WriteString(th.Title.Render(strings.ToUpper(kind)+" POINT") + "\n\n")
			fmt.Fprintf(&b, "T = %.4f K\nP = %.4f kPa\n", pt.Temperature, pt.Pressure)
			for _, name := range z.Keys() {
				fmt.Fprintf(&b, "\n%-16s z = %.4f  K = %.4f", name, z[name], pt.K[name])
			}
			fmt.Fprintln(w, th.Card.Render(b.String()))
			return nil
		},
	}
	c.Flags().StringVarP(&props, "properties", "P", "", "物性表 CSV (必填)")
	c.Flags().StringToStringVarP(&comp, "comp", "z", nil, "组成, 如 benzene=0.5,toluene=0.5")
	c.Flags().Float64VarP(&p, "pressure", "p", 0, "压力 kPa, 求温度")
	c.Flags().Float64VarP(&t, "temperature", "t", 0, "温度 K, 求压力")
	c.Flags().StringVarP(&format, "format", "o", FormatPretty, "输出格式: pretty|json")
	_ = c.MarkFlagRequired("properties")
	_ = c.MarkFlagRequired("comp")
	return c
}

func bubbleCmd() *cobra.Command { return pointCmd("bubble") }

func dewCmd() *cobra.Command { return pointCmd("dew") }
