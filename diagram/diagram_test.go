package diagram

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alfonsoamt/Flash-Drum/equilibrium"
	"github.com/alfonsoamt/Flash-Drum/load"
	"github.com/alfonsoamt/Flash-Drum/maths"
	"github.com/alfonsoamt/Flash-Drum/types"
	"github.com/cpmech/gosl/chk"
)

func newEquilibrium(t *testing.T) *equilibrium.Equilibrium {
	t.Helper()
	table, err := load.LoadFile("../load/testdata/compounds.csv")
	if err != nil {
		t.Fatalf("加载物性表失败: %v", err)
	}
	return equilibrium.New(table, maths.NewSolver())
}

func TestTxy(t *testing.T) {
	r, err := Txy(newEquilibrium(t), "benzene", "toluene", 101.325, 11)
	if err != nil {
		t.Fatal(err)
	}
	if len(r.Points) != 11 {
		t.Fatalf("点数错误: %d", len(r.Points))
	}
	first, mid, last := r.Points[0], r.Points[5], r.Points[10]
	chk.Float64(t, "x1=0", 1e-3, first.Bubble, 383.829)
	chk.Float64(t, "x1=1", 1e-3, last.Bubble, 353.279)
	chk.Float64(t, "x1=0 dew", 1e-5, first.Dew, first.Bubble)
	chk.Float64(t, "x1=0.5", 1e-3, mid.Bubble, 365.3023)
	chk.Float64(t, "x1=0.5 dew", 1e-3, mid.Dew, 371.9774)
	for i, p := range r.Points {
		if p.Bubble > p.Dew+1e-6 {
			t.Errorf("点 %d: 泡点 %g 高于露点 %g", i, p.Bubble, p.Dew)
		}
		if i > 0 && p.Bubble >= r.Points[i-1].Bubble {
			t.Errorf("点 %d: 泡点应随轻组分增加而降低", i)
		}
	}
}

func TestPxy(t *testing.T) {
	r, err := Pxy(newEquilibrium(t), "benzene", "toluene", 380, 5)
	if err != nil {
		t.Fatal(err)
	}
	for i, p := range r.Points {
		if p.Bubble < p.Dew-1e-9 {
			t.Errorf("点 %d: 泡点压力 %g 低于露点压力 %g", i, p.Bubble, p.Dew)
		}
	}
	chk.Float64(t, "pure toluene", 1e-9, r.Points[0].Bubble, r.Points[0].Dew)
	if name, unit := r.Quantity(); name != "P" || unit != "kPa" {
		t.Errorf("纵坐标错误: %s %s", name, unit)
	}
}

func TestRecordErrors(t *testing.T) {
	eq := newEquilibrium(t)
	if _, err := Txy(eq, "benzene", "toluene", 100, 2); !errors.Is(err, types.ErrDomain) {
		t.Errorf("n=2: 期望 ErrDomain, 实际 %v", err)
	}
	if _, err := Pxy(eq, "benzene", "toluene", 380, 102); !errors.Is(err, types.ErrDomain) {
		t.Errorf("n=102: 期望 ErrDomain, 实际 %v", err)
	}
	if _, err := Txy(eq, "benzene", "benzene", 100, 5); !errors.Is(err, types.ErrInvalidComposition) {
		t.Errorf("同组分: 期望 ErrInvalidComposition, 实际 %v", err)
	}
	if _, err := Txy(eq, "benzene", "water", 100, 5); !errors.Is(err, types.ErrUnknownCompound) {
		t.Errorf("未知组分: 期望 ErrUnknownCompound, 实际 %v", err)
	}
}

func TestRender(t *testing.T) {
	r, err := Txy(newEquilibrium(t), "benzene", "toluene", 101.325, 3)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := r.Render(&buf); err != nil {
		t.Fatal(err)
	}
	var back Record
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatal(err)
	}
	if back.Kind != KindTxy || len(back.Points) != 3 || back.Fixed != 101.325 {
		t.Errorf("JSON 内容错误: %+v", back)
	}

	buf.Reset()
	if err := r.WriteImage(&buf, "svg"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "<svg") {
		t.Error("SVG 输出无效")
	}
	buf.Reset()
	if err := r.WriteImage(&buf, "png"); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Error("PNG 输出无效")
	}
	if err := r.WriteImage(&buf, "bmp"); err == nil {
		t.Error("不支持的格式应报错")
	}
}

func TestChartsHandler(t *testing.T) {
	r, err := Pxy(newEquilibrium(t), "benzene", "toluene", 380, 5)
	if err != nil {
		t.Fatal(err)
	}
	c := &Charts{Record: r}
	rec := httptest.NewRecorder()
	c.Handler(rec, httptest.NewRequest("GET", "/pxy", nil))
	body := rec.Body.String()
	if !strings.Contains(body, "echarts") || !strings.Contains(body, "benzene") {
		t.Errorf("页面内容不完整: %.200s", body)
	}
}
