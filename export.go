package flash

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/alfonsoamt/Flash-Drum/types"
)

// streamResult 物流导出字段
func streamResult(s *types.Stream) map[string]any {
	return map[string]any{
		"Name":        s.Name(),
		"Temperature": s.Temperature(),
		"Pressure":    s.Pressure(),
		"MolarFlow":   s.MolarFlow(),
		"Composition": map[string]float64(s.Composition()),
		"Enthalpy":    s.Enthalpy(),
	}
}

// optional 缺省值导出为 nil
func optional(v float64, ok bool) any {
	if !ok {
		return nil
	}
	return v
}

// Results 导出结果为普通嵌套 map, 可直接编码为 JSON
func (d *Drum) Results() map[string]any {
	return map[string]any{
		"Drum": map[string]any{
			"Mode":        d.mode.String(),
			"State":       d.state.String(),
			"Heat":        optional(d.Heat()),
			"Psi":         d.psi,
			"Temperature": optional(d.Temperature()),
			"Pressure":    optional(d.Pressure()),
		},
		"Feed":   streamResult(d.feed),
		"Vapor":  streamResult(d.vapor),
		"Liquid": streamResult(d.liquid),
	}
}

// String 物流结果表
func (d *Drum) String() string {
	var b strings.Builder
	rule := strings.Repeat("-", 72) + "\n"
	b.WriteString(rule)
	fmt.Fprintf(&b, "FLASH DRUM: %s\n", strings.ToUpper(d.mode.String()))
	b.WriteString(rule)

	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Streams:\t%s\t%s\t%s\n", d.feed.Name(), d.vapor.Name(), d.liquid.Name())
	fmt.Fprintf(w, "T [K]\t%.2f\t%.2f\t%.2f\n", d.feed.Temperature(), d.vapor.Temperature(), d.liquid.Temperature())
	fmt.Fprintf(w, "P [kPa]\t%g\t%g\t%g\n", d.feed.Pressure(), d.vapor.Pressure(), d.liquid.Pressure())
	fmt.Fprintf(w, "Flow [mol/h]\t%.3f\t%.3f\t%.3f\n", d.feed.MolarFlow(), d.vapor.MolarFlow(), d.liquid.MolarFlow())
	for _, name := range d.feed.Composition().Keys() {
		fmt.Fprintf(w, "%s\tz = %.3f\ty = %.3f\tx = %.3f\n", name,
			d.feed.Fraction(name), d.vapor.Fraction(name), d.liquid.Fraction(name))
	}
	q, energy := d.Heat()
	if energy {
		fmt.Fprintf(w, "h [kJ/mol]\t%.3f\t%.3f\t%.3f\n", d.feed.Enthalpy(), d.vapor.Enthalpy(), d.liquid.Enthalpy())
	}
	w.Flush()
	if energy {
		b.WriteString(rule)
		// 舍入后为零的残差不输出 -0
		if q > -0.5 && q < 0.5 {
			q = 0
		}
		fmt.Fprintf(&b, "HEAT: Q = %.0f kJ/h\n", q)
	}
	b.WriteString(rule)
	return b.String()
}
