package cli

import (
	"fmt"

	"github.com/alfonsoamt/Flash-Drum/load"
	"github.com/alfonsoamt/Flash-Drum/types"
)

// 输入范围
const (
	MinPressure    = 10.0   // kPa
	MaxPressure    = 1100.0 // kPa
	MinTemperature = 250.0  // K
	MaxTemperature = 800.0  // K
	MinFlow        = 0.01   // mol/h
	MaxFlow        = 1e6    // mol/h
)

func checkRange(field string, v, lo, hi float64) error {
	if !(v >= lo && v <= hi) {
		return &types.OpError{
			Op:   "cli.validate",
			Kind: types.KindInvalidCase,
			Err:  fmt.Errorf("%s: %g 超出 [%g, %g]", field, v, lo, hi),
		}
	}
	return nil
}

// validateCase 检查工况是否在允许范围内
func validateCase(c load.Case) error {
	checks := []struct {
		field      string
		v, lo, hi  float64
		applicable bool
	}{
		{"feed.pressure", c.Feed.Pressure(), MinPressure, MaxPressure, true},
		{"feed.flow", c.Feed.MolarFlow(), MinFlow, MaxFlow, true},
		{"feed.temperature", c.Feed.Temperature(), MinTemperature, MaxTemperature, !c.FeedAtBub},
		{"drum.pressure", c.Pressure, MinPressure, MaxPressure, true},
		{"drum.temperature", c.Temperature, MinTemperature, MaxTemperature, c.Mode == load.ModeIsothermal},
	}
	for _, ck := range checks {
		if !ck.applicable {
			continue
		}
		if err := checkRange(ck.field, ck.v, ck.lo, ck.hi); err != nil {
			return err
		}
	}
	if c.Mode == load.ModeAdiabatic && c.Pressure > c.Feed.Pressure() {
		return &types.OpError{
			Op:   "cli.validate",
			Kind: types.KindInvalidCase,
			Err:  fmt.Errorf("drum.pressure: 绝热闪蒸罐压 %g kPa 高于进料压力 %g kPa", c.Pressure, c.Feed.Pressure()),
		}
	}
	return nil
}
