package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	flash "github.com/alfonsoamt/Flash-Drum"
	"github.com/alfonsoamt/Flash-Drum/load"
	"github.com/alfonsoamt/Flash-Drum/logger"
	"github.com/alfonsoamt/Flash-Drum/store"
	"github.com/alfonsoamt/Flash-Drum/types"
)

// 输出格式
const (
	FormatPretty = "pretty"
	FormatJSON   = "json"
)

// Theme 报告样式
type Theme struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Warn     lipgloss.Style
	Card     lipgloss.Style
}

// DefaultTheme 默认样式
func DefaultTheme() Theme {
	return Theme{
		Title:    lipgloss.NewStyle().Bold(true),
		Subtitle: lipgloss.NewStyle().Faint(true),
		Warn:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		Card: lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")),
	}
}

// outputFlags 输出参数
type outputFlags struct {
	format string
	query  string
	save   string
	index  bool
}

func (o *outputFlags) register(c *cobra.Command) {
	c.Flags().StringVarP(&o.format, "format", "o", FormatPretty, "输出格式: pretty|json")
	c.Flags().StringVarP(&o.query, "query", "q", "", "JSONPath 查询结果, 如 $.Drum.Psi")
	c.Flags().StringVar(&o.save, "save", "", "结果保存目录")
	c.Flags().BoolVar(&o.index, "index", false, "保存时追加 index.jsonl")
}

// emit 输出求解结果
func (o *outputFlags) emit(w io.Writer, d *flash.Drum, cs load.Case) error {
	format := strings.ToLower(strings.TrimSpace(o.format))
	if format != FormatPretty && format != FormatJSON {
		return &types.OpError{Op: "cli.output", Kind: types.KindInvalidCase, Err: fmt.Errorf("format: 未知格式 %q", o.format)}
	}
	results := d.Results()

	var saved string
	if o.save != "" {
		s := store.NewJSONStore(o.save, store.WithIndex(o.index))
		path, run, err := s.Save(store.Artifact{Name: d.Mode().String(), Case: cs.Path, Results: results})
		if err != nil {
			return err
		}
		logger.L().Info("cli.saved", "path", path, "id", run.ID)
		saved = fmt.Sprintf("已保存 %s (%s)", path, run.ID)
	}

	if o.query != "" {
		v, err := query(o.query, results)
		if err != nil {
			return err
		}
		return printValue(w, v)
	}

	if format == FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
	printReport(w, DefaultTheme(), d, saved)
	return nil
}

// query 对结果执行 JSONPath
func query(expr string, results map[string]any) (any, error) {
	// 先经 JSON 往返, 使 jsonpath 只面对通用类型
	b, err := json.Marshal(results)
	if err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	v, err := jsonpath.Get(strings.TrimSpace(expr), doc)
	if err != nil {
		return nil, &types.OpError{Op: "cli.query", Kind: types.KindInvalidCase, Err: fmt.Errorf("query %q: %w", expr, err)}
	}
	return v, nil
}

// printValue 标量直接输出, 其余输出 JSON
func printValue(w io.Writer, v any) error {
	switch t := v.(type) {
	case string:
		_, err := fmt.Fprintln(w, t)
		return err
	case float64, bool, nil:
		_, err := fmt.Fprintln(w, t)
		return err
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

// printReport lipgloss 卡片报告
func printReport(w io.Writer, th Theme, d *flash.Drum, saved string) {
	var b strings.Builder
	b.WriteString(th.Title.Render("Flash Drum · "+d.Mode().String()) + "\n")
	b.WriteString(th.Subtitle.Render("state: "+d.State().String()) + "\n\n")
	b.WriteString(strings.TrimRight(d.String(), "\n"))
	if err := d.Err(); err != nil {
		b.WriteString("\n\n" + th.Warn.Render(err.Error()))
	}
	if saved != "" {
		b.WriteString("\n\n" + th.Subtitle.Render(saved))
	}
	fmt.Fprintln(w, th.Card.Render(b.String()))
}
