package store

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/alfonsoamt/Flash-Drum/types"
)

func sampleResults() map[string]any {
	return map[string]any{
		"Drum": map[string]any{"Mode": "Isothermal", "Psi": 0.88, "Heat": 3063.5},
		"Feed": map[string]any{"Name": "FEED", "Composition": map[string]float64{"benzene": 0.5, "toluene": 0.5}},
	}
}

func TestSave_CreatesJSONFile(t *testing.T) {
	tmp := t.TempDir()
	start := time.Date(2026, 2, 3, 10, 11, 12, 0, time.UTC)
	s := NewJSONStore(tmp)

	path, run, err := s.Save(Artifact{Name: "Benzene Toluene", StartedAt: start, Results: sampleResults()})
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}
	want := filepath.Join(tmp, "runs", "20260203T101112Z_benzene-toluene.json")
	if path != want {
		t.Fatalf("expected %s, got %s", want, path)
	}
	if _, err := uuid.Parse(run.ID); err != nil {
		t.Fatalf("run ID is not a uuid: %q", run.ID)
	}

	loaded, err := s.Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if loaded.ID != run.ID || loaded.Name != "Benzene Toluene" || !loaded.StartedAt.Equal(start) {
		t.Fatalf("unexpected artifact: %+v", loaded)
	}
	drum := loaded.Results["Drum"].(map[string]any)
	if drum["Mode"] != "Isothermal" || drum["Psi"] != 0.88 {
		t.Fatalf("unexpected drum: %v", drum)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("tmp file left behind")
	}
}

func TestSave_WritesIndex(t *testing.T) {
	tmp := t.TempDir()
	now := time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC)
	s := NewJSONStore(tmp, WithIndex(true), WithNow(func() time.Time { return now }), WithRunsDir("out"))

	for _, name := range []string{"a", ""} {
		if _, _, err := s.Save(Artifact{Name: name, Results: sampleResults()}); err != nil {
			t.Fatalf("Save error: %v", err)
		}
	}
	if _, err := os.Stat(filepath.Join(tmp, "out", "20261016T080000Z_run.json")); err != nil {
		t.Fatalf("expected default slug file: %v", err)
	}
	f, err := os.Open(filepath.Join(tmp, "out", "index.jsonl"))
	if err != nil {
		t.Fatalf("open index: %v", err)
	}
	defer f.Close()
	var lines int
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var entry map[string]any
		if err := json.Unmarshal(sc.Bytes(), &entry); err != nil {
			t.Fatalf("bad index line: %v", err)
		}
		if entry["mode"] != "Isothermal" {
			t.Fatalf("expected mode in index, got %v", entry)
		}
		lines++
	}
	if lines != 2 {
		t.Fatalf("expected 2 index lines, got %d", lines)
	}
}

func TestSave_Errors(t *testing.T) {
	tmp := t.TempDir()
	// runs 为普通文件, 无法创建目录
	if err := os.WriteFile(filepath.Join(tmp, "runs"), nil, 0o600); err != nil {
		t.Fatal(err)
	}
	if _, _, err := NewJSONStore(tmp).Save(Artifact{Name: "x"}); !errors.Is(err, types.ErrStorage) {
		t.Fatalf("expected ErrStorage, got %v", err)
	}
	if _, err := NewJSONStore(tmp).Load(filepath.Join(tmp, "missing.json")); !errors.Is(err, types.ErrStorage) {
		t.Fatalf("expected ErrStorage, got %v", err)
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Benzene Toluene": "benzene-toluene",
		"  p-xylene  ":    "p-xylene",
		"a__b..c":         "a-b-c",
		"---":             "",
		"流程":              "",
	}
	for in, want := range cases {
		if got := slugify(in); got != want {
			t.Errorf("slugify(%q) = %q, want %q", in, got, want)
		}
	}
}
