package load

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/alfonsoamt/Flash-Drum/maths"
	"github.com/alfonsoamt/Flash-Drum/types"
)

// 闪蒸模式
const (
	ModeIsothermal = "isothermal"
	ModeAdiabatic  = "adiabatic"
)

// YAMLCase 工况文件
type YAMLCase struct {
	Properties string     `yaml:"properties"`
	Feed       YAMLFeed   `yaml:"feed"`
	Mode       string     `yaml:"mode"`
	Drum       YAMLDrum   `yaml:"drum"`
	Solver     YAMLSolver `yaml:"solver"`
}

// YAMLFeed 进料
type YAMLFeed struct {
	Name        string             `yaml:"name"`
	Temperature *float64           `yaml:"temperature"`
	Pressure    float64            `yaml:"pressure"`
	Flow        float64            `yaml:"flow"`
	Composition map[string]float64 `yaml:"composition"`
}

// YAMLDrum 闪蒸罐操作条件
type YAMLDrum struct {
	Temperature float64 `yaml:"temperature"`
	Pressure    float64 `yaml:"pressure"`
	Energy      bool    `yaml:"energy"`
}

// YAMLSolver 求解参数
type YAMLSolver struct {
	Tolerance     float64 `yaml:"tolerance"`
	MaxIterations int     `yaml:"max_iterations"`
}

// Case 闪蒸工况
type Case struct {
	Path        string
	Properties  string // 物性表路径, 已相对工况文件解析
	Table       types.Table
	Feed        *types.Stream
	FeedAtBub   bool // 未给定进料温度, 取进料压力下泡点
	Mode        string
	Temperature float64
	Pressure    float64
	Energy      bool
	Solver      maths.Solver
}

// LoadCase 读取工况文件并加载其物性表
func LoadCase(path string) (Case, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Case{}, &types.OpError{Op: "load.case", Kind: types.KindInvalidCase, Path: path, Err: err}
	}
	var dto YAMLCase
	if err := yaml.Unmarshal(b, &dto); err != nil {
		return Case{}, &types.OpError{Op: "load.case", Kind: types.KindInvalidCase, Path: path, Err: err}
	}
	c, err := MapCase(path, dto)
	if err != nil {
		return Case{}, err
	}
	if c.Table, err = LoadFile(c.Properties); err != nil {
		return Case{}, err
	}
	if err := c.Table.Check(c.Feed.Composition()); err != nil {
		return Case{}, invalidField(path, "feed.composition", err.Error())
	}
	return c, nil
}

// MapCase 校验并转换工况, 不读取物性表
func MapCase(path string, yc YAMLCase) (Case, error) {
	if strings.TrimSpace(yc.Properties) == "" {
		return Case{}, invalidField(path, "properties", "需要物性表路径")
	}
	props := yc.Properties
	if !filepath.IsAbs(props) {
		props = filepath.Join(filepath.Dir(path), props)
	}

	mode := strings.ToLower(strings.TrimSpace(yc.Mode))
	if mode == "" {
		mode = ModeIsothermal
	}
	if mode != ModeIsothermal && mode != ModeAdiabatic {
		return Case{}, invalidField(path, "mode", fmt.Sprintf("未知模式 %q", yc.Mode))
	}

	if len(yc.Feed.Composition) == 0 {
		return Case{}, invalidField(path, "feed.composition", "组成为空")
	}
	if !(yc.Feed.Pressure > 0) {
		return Case{}, invalidField(path, "feed.pressure", "必须大于 0")
	}
	if yc.Feed.Flow < 0 {
		return Case{}, invalidField(path, "feed.flow", "不能为负")
	}
	if !(yc.Drum.Pressure > 0) {
		return Case{}, invalidField(path, "drum.pressure", "必须大于 0")
	}

	name := yc.Feed.Name
	if name == "" {
		name = "FEED"
	}
	feed := types.NewStream(name).
		SetPressure(yc.Feed.Pressure).
		SetMolarFlow(yc.Feed.Flow).
		SetComposition(types.Composition(yc.Feed.Composition))

	c := Case{
		Path:       path,
		Properties: props,
		Feed:       feed,
		Mode:       mode,
		Pressure:   yc.Drum.Pressure,
		Energy:     yc.Drum.Energy,
		Solver:     maths.Solver{Tol: yc.Solver.Tolerance, MaxIter: yc.Solver.MaxIterations},
	}
	if c.Solver.Tol <= 0 {
		c.Solver.Tol = types.Tolerance
	}
	if c.Solver.MaxIter <= 0 {
		c.Solver.MaxIter = types.MaxIterations
	}

	switch {
	case yc.Feed.Temperature != nil:
		if !(*yc.Feed.Temperature > 0) {
			return Case{}, invalidField(path, "feed.temperature", "必须大于 0")
		}
		feed.SetTemperature(*yc.Feed.Temperature)
	case mode == ModeAdiabatic:
		c.FeedAtBub = true
	default:
		return Case{}, invalidField(path, "feed.temperature", "等温闪蒸需要进料温度")
	}

	if mode == ModeIsothermal {
		if !(yc.Drum.Temperature > 0) {
			return Case{}, invalidField(path, "drum.temperature", "必须大于 0")
		}
		c.Temperature = yc.Drum.Temperature
	}
	return c, nil
}

func invalidField(path, field, msg string) error {
	return &types.OpError{
		Op:   "load.case",
		Kind: types.KindInvalidCase,
		Path: path,
		Err:  fmt.Errorf("%s: %s", field, msg),
	}
}
