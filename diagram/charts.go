package diagram

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// Charts 交互式相图页面
type Charts struct {
	*Record
}

// line 构建包络线图
func (c *Charts) line() *charts.Line {
	name, unit := c.Quantity()
	fixed := fmt.Sprintf("P = %g kPa", c.Fixed)
	if c.Kind == KindPxy {
		fixed = fmt.Sprintf("T = %g K", c.Fixed)
	}
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("%s-xy %s / %s", name, c.Light, c.Heavy),
			Subtitle: fixed,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Orient: "vertical",
			Right:  "10",
			Top:    "20",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "value",
			Name: "x, y " + c.Light,
			Min:  0,
			Max:  1,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type:  "value",
			Name:  fmt.Sprintf("%s [%s]", name, unit),
			Scale: opts.Bool(true),
		}),
	)
	bubble := make([]opts.LineData, len(c.Points))
	dew := make([]opts.LineData, len(c.Points))
	for i, p := range c.Points {
		bubble[i] = opts.LineData{Value: []float64{p.X1, p.Bubble}}
		// 露点线横坐标为汽相组成
		dew[i] = opts.LineData{Value: []float64{p.X1, p.Dew}}
	}
	smooth := charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true), ShowSymbol: opts.Bool(false)})
	line.AddSeries("bubble", bubble, smooth)
	line.AddSeries("dew", dew, smooth)
	return line
}

// Render 输出 HTML 页面
func (c *Charts) Render(w io.Writer) error {
	page := components.NewPage()
	page.AddCharts(c.line())
	return page.Render(w)
}

// Handler 发布到网页面
func (c *Charts) Handler(w http.ResponseWriter, _ *http.Request) {
	if err := c.Render(w); err != nil {
		slog.Error("diagram.render", "kind", c.Kind, "err", err)
	}
}
