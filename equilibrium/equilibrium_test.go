package equilibrium

import (
	"errors"
	"testing"

	"github.com/alfonsoamt/Flash-Drum/load"
	"github.com/alfonsoamt/Flash-Drum/maths"
	"github.com/alfonsoamt/Flash-Drum/types"
	"github.com/cpmech/gosl/chk"
)

func newEquilibrium(t *testing.T) *Equilibrium {
	t.Helper()
	table, err := load.LoadFile("../load/testdata/compounds.csv")
	if err != nil {
		t.Fatalf("加载物性表失败: %v", err)
	}
	return New(table, maths.NewSolver())
}

var benzeneToluene = types.Composition{"benzene": 0.5, "toluene": 0.5}

func TestEnvelope(t *testing.T) {
	e := newEquilibrium(t)
	cases := []struct {
		p, bubble, dew float64
	}{
		{101.325, 365.3023, 371.9774},
		{250, 399.2513, 405.7138},
		{300, 407.0024, 413.4150},
	}
	for _, tc := range cases {
		env, err := e.Envelope(tc.p, benzeneToluene)
		if err != nil {
			t.Fatalf("P=%g: %v", tc.p, err)
		}
		chk.Float64(t, "bubble", 1e-3, env.Bubble, tc.bubble)
		chk.Float64(t, "dew", 1e-3, env.Dew, tc.dew)
		if env.Bubble > env.Dew {
			t.Errorf("P=%g: 泡点 %g 高于露点 %g", tc.p, env.Bubble, env.Dew)
		}
	}
}

// TestBubbleRoundTrip BubbleP(BubbleT(P)) = P, DewP(DewT(P)) = P
func TestBubbleRoundTrip(t *testing.T) {
	e := newEquilibrium(t)
	z := types.Composition{"chlorobenzene": 0.2, "styrene": 0.3, "p-xylene": 0.5}
	for _, p := range []float64{50, 101.325, 200, 900} {
		tb, err := e.BubbleT(p, z)
		if err != nil {
			t.Fatal(err)
		}
		pb, err := e.BubbleP(tb, z)
		if err != nil {
			t.Fatal(err)
		}
		chk.Float64(t, "bubble P", 1e-6*p, pb, p)

		td, err := e.DewT(p, z)
		if err != nil {
			t.Fatal(err)
		}
		pd, err := e.DewP(td, z)
		if err != nil {
			t.Fatal(err)
		}
		chk.Float64(t, "dew P", 1e-6*p, pd, p)
	}
}

// TestPureCompound 纯组分泡点等于露点等于沸点
func TestPureCompound(t *testing.T) {
	e := newEquilibrium(t)
	z := types.Composition{"benzene": 1}
	env, err := e.Envelope(250, z)
	if err != nil {
		t.Fatal(err)
	}
	chk.Float64(t, "bubble", 1e-3, env.Bubble, 385.778)
	chk.Float64(t, "dew", 1e-5, env.Dew, env.Bubble)
}

func TestRachfordRice(t *testing.T) {
	e := newEquilibrium(t)
	psi, k, err := e.RachfordRice(405, 250, benzeneToluene)
	if err != nil {
		t.Fatal(err)
	}
	chk.Float64(t, "psi", 1e-3, psi, 0.8811)
	x, y := Split(psi, benzeneToluene, k)
	chk.Float64(t, "x benzene", 1e-3, x["benzene"], 0.3314)
	chk.Float64(t, "y benzene", 1e-3, y["benzene"], 0.5228)
	chk.Float64(t, "Σx", 1e-7, x.Sum(), 1)
	chk.Float64(t, "Σy", 1e-7, y.Sum(), 1)
	// 组分物料守恒 z = ψy + (1-ψ)x
	for _, name := range benzeneToluene.Keys() {
		chk.Float64(t, name, 1e-12, psi*y[name]+(1-psi)*x[name], benzeneToluene[name])
	}
}

// TestRachfordRiceBoundary 泡点及以下 ψ=0, 露点及以上 ψ=1
func TestRachfordRiceBoundary(t *testing.T) {
	e := newEquilibrium(t)
	env, err := e.Envelope(250, benzeneToluene)
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		t, psi float64
	}{
		{env.Bubble - 20, 0},
		{env.Bubble, 0},
		{env.Dew, 1},
		{env.Dew + 50, 1},
	}
	for _, tc := range cases {
		psi, _, err := e.RachfordRice(tc.t, 250, benzeneToluene)
		if err != nil {
			t.Fatalf("T=%g: %v", tc.t, err)
		}
		if psi != tc.psi {
			t.Errorf("T=%g: 期望 ψ=%g, 实际 %g", tc.t, tc.psi, psi)
		}
	}
}

func TestEquilibriumErrors(t *testing.T) {
	e := newEquilibrium(t)
	if _, err := e.BubbleT(100, types.Composition{}); !errors.Is(err, types.ErrInvalidComposition) {
		t.Errorf("空组成: 期望 ErrInvalidComposition, 实际 %v", err)
	}
	if _, err := e.DewT(100, types.Composition{"water": 1}); !errors.Is(err, types.ErrUnknownCompound) {
		t.Errorf("未知组分: 期望 ErrUnknownCompound, 实际 %v", err)
	}
	if _, err := e.BubbleT(-1, benzeneToluene); !errors.Is(err, types.ErrDomain) {
		t.Errorf("负压力: 期望 ErrDomain, 实际 %v", err)
	}
	// 800 K 下蒸气压仍不足, 无泡点
	if _, err := e.BubbleT(1e8, benzeneToluene); !errors.Is(err, types.ErrNoEquilibrium) {
		t.Errorf("超高压: 期望 ErrNoEquilibrium, 实际 %v", err)
	}
	if _, err := IdealK(400, 0, types.Antoine{}); !errors.Is(err, types.ErrDomain) {
		t.Errorf("P=0: 期望 ErrDomain, 实际 %v", err)
	}
}
