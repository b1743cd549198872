package energy

import (
	"errors"
	"testing"

	"github.com/alfonsoamt/Flash-Drum/equilibrium"
	"github.com/alfonsoamt/Flash-Drum/load"
	"github.com/alfonsoamt/Flash-Drum/maths"
	"github.com/alfonsoamt/Flash-Drum/types"
	"github.com/cpmech/gosl/chk"
)

// newEngine 操作压力 p 下的能量衡算
func newEngine(t *testing.T, p float64, z types.Composition) (*Engine, *equilibrium.Equilibrium) {
	t.Helper()
	table, err := load.LoadFile("../load/testdata/compounds.csv")
	if err != nil {
		t.Fatalf("加载物性表失败: %v", err)
	}
	eq := equilibrium.New(table, maths.NewSolver())
	env, err := eq.Envelope(p, z)
	if err != nil {
		t.Fatal(err)
	}
	return New(table, maths.NewSolver(), p, env), eq
}

// TestTwoPhaseDrum 苯/甲苯 405 K, 250 kPa
func TestTwoPhaseDrum(t *testing.T) {
	z := types.Composition{"benzene": 0.5, "toluene": 0.5}
	e, eq := newEngine(t, 250, z)
	psi, k, err := eq.RachfordRice(405, 250, z)
	if err != nil {
		t.Fatal(err)
	}
	x, y := equilibrium.Split(psi, z, k)

	hf, err := e.FeedEnthalpy(types.PhaseLiquid, 380, z)
	if err != nil {
		t.Fatal(err)
	}
	hl, err := e.LiquidEnthalpy(405, x)
	if err != nil {
		t.Fatal(err)
	}
	hv, err := e.VaporEnthalpy(405, y)
	if err != nil {
		t.Fatal(err)
	}
	chk.Float64(t, "hF", 1e-3, hf, 14.6344)
	chk.Float64(t, "hL", 1e-3, hl, 19.5595)
	chk.Float64(t, "hV", 1e-3, hv, 48.7388)

	q := HeatDuty(100*psi, hv, 100*(1-psi), hl, 100, hf)
	chk.Float64(t, "Q", 0.05, q, 3063.53)
}

// TestSuperheatedDrum 露点以上汽相按过热计算
func TestSuperheatedDrum(t *testing.T) {
	z := types.Composition{"chlorobenzene": 0.3, "styrene": 0.5, "p-xylene": 0.2}
	e, _ := newEngine(t, 200, z)
	hv, err := e.VaporEnthalpy(460, z)
	if err != nil {
		t.Fatal(err)
	}
	chk.Float64(t, "hV", 1e-3, hv, 68.1767)
	sh, _ := e.SuperheatedEnthalpy(460, z)
	chk.Float64(t, "same form", 1e-15, hv, sh)

	hf, err := e.FeedEnthalpy(types.PhaseLiquid, 435, z)
	if err != nil {
		t.Fatal(err)
	}
	chk.Float64(t, "hF", 1e-3, hf, 29.4635)
}

// TestFeedEnthalpyForms 三种进料热状态分别对应的焓形式
func TestFeedEnthalpyForms(t *testing.T) {
	z := types.Composition{"benzene": 0.5, "toluene": 0.5}
	e, _ := newEngine(t, 250, z)
	liquid, _ := e.LiquidEnthalpy(402, z)
	sat, _ := e.SaturatedEnthalpy(402, z)
	super, _ := e.SuperheatedEnthalpy(430, z)
	cases := []struct {
		phase types.Phase
		t     float64
		want  float64
	}{
		{types.PhaseLiquid, 402, liquid},
		{types.PhaseTwoPhase, 402, sat},
		{types.PhaseVapor, 430, super},
	}
	for _, tc := range cases {
		h, err := e.FeedEnthalpy(tc.phase, tc.t, z)
		if err != nil {
			t.Fatalf("%v: %v", tc.phase, err)
		}
		chk.Float64(t, tc.phase.String(), 1e-15, h, tc.want)
	}
	if !(liquid < sat && sat < super) {
		t.Errorf("焓未随热状态递增: %g %g %g", liquid, sat, super)
	}
}

func TestEnergyErrors(t *testing.T) {
	z := types.Composition{"benzene": 1}
	e, _ := newEngine(t, 250, z)
	// 超过临界温度, 汽化热无定义
	if _, err := e.SaturatedEnthalpy(600, z); !errors.Is(err, types.ErrDomain) {
		t.Errorf("期望 ErrDomain, 实际 %v", err)
	}
	if _, err := e.LiquidEnthalpy(300, types.Composition{"water": 1}); !errors.Is(err, types.ErrUnknownCompound) {
		t.Errorf("期望 ErrUnknownCompound, 实际 %v", err)
	}
	// 零分率组分不参与计算
	h, err := e.SaturatedEnthalpy(400, types.Composition{"benzene": 1, "toluene": 0})
	if err != nil {
		t.Fatal(err)
	}
	want, _ := e.SaturatedEnthalpy(400, z)
	chk.Float64(t, "zero fraction", 1e-15, h, want)
}
