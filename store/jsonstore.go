// Package store 将闪蒸结果保存为 JSON 文件.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alfonsoamt/Flash-Drum/types"
)

const defaultRunsDir = "runs"

// Artifact 一次求解的结果文件
type Artifact struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Case      string         `json:"case,omitempty"`
	StartedAt time.Time      `json:"started_at"`
	Results   map[string]any `json:"results"`
}

// JSONStore 结果目录 <root>/runs/<时间>_<名称>.json
type JSONStore struct {
	rootDir    string
	runsDir    string
	writeIndex bool
	now        func() time.Time
	newID      func() string
}

// Option 存储选项
type Option func(*JSONStore)

// WithIndex 同时追加 runs/index.jsonl 索引
func WithIndex(enabled bool) Option {
	return func(s *JSONStore) { s.writeIndex = enabled }
}

// WithNow 指定时钟
func WithNow(now func() time.Time) Option {
	return func(s *JSONStore) { s.now = now }
}

// WithRunsDir 指定结果子目录
func WithRunsDir(dir string) Option {
	return func(s *JSONStore) {
		if strings.TrimSpace(dir) != "" {
			s.runsDir = dir
		}
	}
}

// NewJSONStore 创建结果存储
func NewJSONStore(root string, opts ...Option) *JSONStore {
	s := &JSONStore{
		rootDir: root,
		runsDir: defaultRunsDir,
		now:     time.Now,
		newID:   func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir 结果目录
func (s *JSONStore) Dir() string { return filepath.Join(s.rootDir, s.runsDir) }

// Save 写入结果, 返回文件路径与运行 ID
func (s *JSONStore) Save(run Artifact) (string, Artifact, error) {
	dir := s.Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", run, &types.OpError{Op: "store.mkdir", Kind: types.KindStorage, Path: dir, Err: err}
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = s.now()
	}
	run.StartedAt = run.StartedAt.UTC()
	if run.ID == "" {
		run.ID = s.newID()
	}
	slug := slugify(run.Name)
	if slug == "" {
		slug = "run"
	}
	filename := fmt.Sprintf("%s_%s.json", run.StartedAt.Format("20060102T150405Z"), slug)
	path := filepath.Join(dir, filename)

	b, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return "", run, &types.OpError{Op: "store.marshal", Kind: types.KindStorage, Path: path, Err: err}
	}
	// 先写临时文件再改名
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return "", run, &types.OpError{Op: "store.write", Kind: types.KindStorage, Path: tmp, Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", run, &types.OpError{Op: "store.rename", Kind: types.KindStorage, Path: path, Err: err}
	}
	if s.writeIndex {
		if err := s.appendIndex(dir, filename, run); err != nil {
			return path, run, &types.OpError{Op: "store.index", Kind: types.KindStorage, Path: dir, Err: err}
		}
	}
	return path, run, nil
}

// Load 读取结果文件
func (s *JSONStore) Load(path string) (Artifact, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Artifact{}, &types.OpError{Op: "store.load", Kind: types.KindStorage, Path: path, Err: err}
	}
	var run Artifact
	if err := json.Unmarshal(b, &run); err != nil {
		return Artifact{}, &types.OpError{Op: "store.load", Kind: types.KindStorage, Path: path, Err: err}
	}
	return run, nil
}

func (s *JSONStore) appendIndex(dir, filename string, run Artifact) error {
	type idx struct {
		ID        string    `json:"id"`
		File      string    `json:"file"`
		Name      string    `json:"name"`
		Mode      any       `json:"mode"`
		StartedAt time.Time `json:"started_at"`
	}
	var mode any
	if drum, ok := run.Results["Drum"].(map[string]any); ok {
		mode = drum["Mode"]
	}
	line, err := json.Marshal(idx{ID: run.ID, File: filename, Name: run.Name, Mode: mode, StartedAt: run.StartedAt})
	if err != nil {
		return err
	}
	f, err := os.OpenFile(filepath.Join(dir, "index.jsonl"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.Write(append(line, '\n'))
	return err
}

// slugify 生成安全的文件名片段
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	b.Grow(len(s))
	lastDash := true
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteByte('-')
			lastDash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
