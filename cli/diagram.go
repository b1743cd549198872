package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/alfonsoamt/Flash-Drum/diagram"
	"github.com/alfonsoamt/Flash-Drum/equilibrium"
	"github.com/alfonsoamt/Flash-Drum/load"
	"github.com/alfonsoamt/Flash-Drum/logger"
	"github.com/alfonsoamt/Flash-Drum/maths"
	"github.com/alfonsoamt/Flash-Drum/types"
	"github.com/alfonsoamt/Flash-Drum/utils"
)

// 相图输出格式
const (
	FormatHTML = "html"
	FormatPNG  = "png"
	FormatSVG  = "svg"
	FormatPDF  = "pdf"
)

// DefaultPoints 默认采样点数
const DefaultPoints = 21

// diagramRequest 相图参数
type diagramRequest struct {
	Kind   string
	Light  string
	Heavy  string
	Fixed  float64
	Points int
}

func (r diagramRequest) validate() error {
	if r.Light == "" || r.Heavy == "" {
		return types.Errorf("cli.diagram", types.KindInvalidCase, "需要 light 与 heavy 两个组分")
	}
	switch r.Kind {
	case diagram.KindTxy:
		return checkRange("pressure", r.Fixed, MinPressure, MaxPressure)
	case diagram.KindPxy:
		return checkRange("temperature", r.Fixed, MinTemperature, MaxTemperature)
	}
	return types.Errorf("cli.diagram", types.KindInvalidCase, "未知相图 %q", r.Kind)
}

// build 计算相图
func (r diagramRequest) build(eq *equilibrium.Equilibrium) (*diagram.Record, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}
	if r.Kind == diagram.KindPxy {
		return diagram.Pxy(eq, r.Light, r.Heavy, r.Fixed, r.Points)
	}
	return diagram.Txy(eq, r.Light, r.Heavy, r.Fixed, r.Points)
}

// renderDiagram 按格式输出相图
func renderDiagram(w io.Writer, rec *diagram.Record, format string) error {
	switch format {
	case FormatJSON:
		return rec.Render(w)
	case FormatHTML:
		return (&diagram.Charts{Record: rec}).Render(w)
	case FormatPNG, FormatSVG, FormatPDF:
		return rec.WriteImage(w, format)
	}
	return types.Errorf("cli.diagram", types.KindInvalidCase, "未知格式 %q", format)
}

// formatOf 由文件扩展名推断格式
func formatOf(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "htm" {
		return FormatHTML
	}
	return ext
}

func diagramCmd() *cobra.Command {
	var (
		props  string
		req    diagramRequest
		out    string
		format string
	)
	c := &cobra.Command{
		Use:       "diagram <txy|pxy>",
		Short:     "二元体系 T-xy / P-xy 相图",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{diagram.KindTxy, diagram.KindPxy},
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Kind = strings.ToLower(args[0])
			table, err := load.LoadFile(props)
			if err != nil {
				return err
			}
			rec, err := req.build(equilibrium.New(table, maths.NewSolver()))
			if err != nil {
				return err
			}
			f := strings.ToLower(format)
			if f == "" {
				f = FormatJSON
				if out != "" {
					f = formatOf(out)
				}
			}
			// 先渲染到内存, 失败时不留下残缺文件
			var buf bytes.Buffer
			if err := renderDiagram(&buf, rec, f); err != nil {
				return err
			}
			if out == "" {
				_, err := buf.WriteTo(cmd.OutOrStdout())
				return err
			}
			if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
				return &types.OpError{Op: "cli.diagram", Kind: types.KindStorage, Path: out, Err: err}
			}
			logger.L().Info("cli.diagram", "kind", rec.Kind, "points", len(rec.Points), "out", out)
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	c.Flags().StringVarP(&props, "properties", "P", "", "物性表 CSV (必填)")
	c.Flags().StringVar(&req.Light, "light", "", "横坐标组分")
	c.Flags().StringVar(&req.Heavy, "heavy", "", "第二组分")
	c.Flags().Float64Var(&req.Fixed, "fixed", 101.325, "txy 的压力 kPa 或 pxy 的温度 K")
	c.Flags().IntVarP(&req.Points, "points", "n", DefaultPoints, "采样点数 3..101")
	c.Flags().StringVar(&out, "out", "", "输出文件, 扩展名决定格式")
	c.Flags().StringVarP(&format, "format", "o", "", "json|html|png|svg|pdf")
	_ = c.MarkFlagRequired("properties")
	return c
}

// server 相图网页服务
type server struct {
	eq    *equilibrium.Equilibrium
	cache *utils.Cache[*diagram.Record]
}

func newServer(table types.Table, limit int) *server {
	return &server{
		eq:    equilibrium.New(table, maths.NewSolver()),
		cache: utils.NewCache[*diagram.Record](limit),
	}
}

func (s *server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /"+diagram.KindTxy, s.handle(diagram.KindTxy))
	mux.HandleFunc("GET /"+diagram.KindPxy, s.handle(diagram.KindPxy))
	mux.HandleFunc("GET /compounds", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintln(w, strings.Join(s.eq.Table.Names(), "\n"))
	})
	return mux
}

var contentTypes = map[string]string{
	FormatHTML: "text/html; charset=utf-8",
	FormatJSON: "application/json",
	FormatPNG:  "image/png",
	FormatSVG:  "image/svg+xml",
	FormatPDF:  "application/pdf",
}

// handle 查询参数 light, heavy, fixed, n, format
func (s *server) handle(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		for _, name := range []string{"light", "heavy", "fixed", "n", "format"} {
			if len(q[name]) > 1 {
				http.Error(w, fmt.Sprintf("%s: 参数重复", name), http.StatusBadRequest)
				return
			}
		}
		req := diagramRequest{Kind: kind, Light: q.Get("light"), Heavy: q.Get("heavy"), Points: DefaultPoints}
		var err error
		if req.Fixed, err = strconv.ParseFloat(q.Get("fixed"), 64); err != nil {
			http.Error(w, "fixed: "+err.Error(), http.StatusBadRequest)
			return
		}
		if n := q.Get("n"); n != "" {
			if req.Points, err = strconv.Atoi(n); err != nil {
				http.Error(w, "n: "+err.Error(), http.StatusBadRequest)
				return
			}
		}
		format := strings.ToLower(q.Get("format"))
		if format == "" {
			format = FormatHTML
		}
		ct, ok := contentTypes[format]
		if !ok {
			http.Error(w, fmt.Sprintf("未知格式 %q", format), http.StatusBadRequest)
			return
		}

		key, err := utils.Key(req)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		rec, err := s.cache.Do(key, func() (*diagram.Record, error) { return req.build(s.eq) })
		if err != nil {
			status := http.StatusBadRequest
			if types.IsKind(err, types.KindNoEquilibrium) || types.IsKind(err, types.KindConvergence) {
				status = http.StatusUnprocessableEntity
			}
			http.Error(w, err.Error(), status)
			return
		}
		var buf bytes.Buffer
		if err := renderDiagram(&buf, rec, format); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", ct)
		_, _ = buf.WriteTo(w)
		logger.L().Debug("cli.serve", "kind", kind, "light", req.Light, "heavy", req.Heavy, "fixed", req.Fixed, "cached", s.cache.Len())
	}
}

func serveCmd() *cobra.Command {
	var (
		props string
		addr  string
		limit int
	)
	c := &cobra.Command{
		Use:   "serve",
		Short: "网页发布相图 (/txy, /pxy, /compounds)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table, err := load.LoadFile(props)
			if err != nil {
				return err
			}
			srv := &http.Server{
				Addr:              addr,
				Handler:           newServer(table, limit).routes(),
				ReadHeaderTimeout: 5 * time.Second,
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			errc := make(chan error, 1)
			go func() { errc <- srv.ListenAndServe() }()
			logger.L().Info("cli.serve", "addr", addr)
			fmt.Fprintf(cmd.OutOrStdout(), "http://%s/txy?light=...&heavy=...&fixed=101.325\n", addr)

			select {
			case err := <-errc:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}
			shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdown)
		},
	}
	c.Flags().StringVarP(&props, "properties", "P", "", "物性表 CSV (必填)")
	c.Flags().StringVar(&addr, "addr", "127.0.0.1:8081", "监听地址")
	c.Flags().IntVar(&limit, "cache", 64, "相图缓存条目数")
	_ = c.MarkFlagRequired("properties")
	return c
}
