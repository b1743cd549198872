package diagram

import (
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/alfonsoamt/Flash-Drum/types"
)

// 图片默认尺寸
const (
	ImageWidth  = 6 * vg.Inch
	ImageHeight = 4 * vg.Inch
)

// Plot 静态相图
func (r *Record) Plot() (*plot.Plot, error) {
	name, unit := r.Quantity()
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s-xy %s / %s", name, r.Light, r.Heavy)
	p.X.Label.Text = "x, y " + r.Light
	p.Y.Label.Text = fmt.Sprintf("%s [%s]", name, unit)
	p.X.Min, p.X.Max = 0, 1

	bubble := make(plotter.XYs, len(r.Points))
	dew := make(plotter.XYs, len(r.Points))
	for i, pt := range r.Points {
		bubble[i] = plotter.XY{X: pt.X1, Y: pt.Bubble}
		dew[i] = plotter.XY{X: pt.X1, Y: pt.Dew}
	}
	if err := plotutil.AddLinePoints(p, "bubble", bubble, "dew", dew); err != nil {
		return nil, err
	}
	p.Add(plotter.NewGrid())
	return p, nil
}

// WriteImage 以 png / svg / pdf 等格式输出
func (r *Record) WriteImage(w io.Writer, format string) error {
	p, err := r.Plot()
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(ImageWidth, ImageHeight, format)
	if err != nil {
		return types.Errorf("diagram.image", types.KindDomain, "格式 %q: %v", format, err)
	}
	_, err = wt.WriteTo(w)
	return err
}
