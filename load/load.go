// Package load 读取物性表(CSV)与闪蒸工况文件(YAML).
package load

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alfonsoamt/Flash-Drum/types"
)

// FieldNum 物性表每行字段数
// name, Tc, CpL C1..C5, Antoine C1..C5, ΔHvap C1..C4, Cp_ig C1..C5
const FieldNum = 21

// LoadString 从字符串加载物性表
func LoadString(s string) (types.Table, error) {
	return LoadTable(strings.NewReader(s))
}

// LoadFile 从文件加载物性表
func LoadFile(path string) (types.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &types.OpError{Op: "load.table", Kind: types.KindInvalidTable, Path: path, Err: err}
	}
	defer f.Close()
	table, err := LoadTable(f)
	if err != nil {
		var oe *types.OpError
		if errors.As(err, &oe) && oe.Path == "" {
			oe.Path = path
		}
		return nil, err
	}
	return table, nil
}

// LoadTable 读取物性表
// 以 # 开头的行为注释, 首行可为表头. 任一行格式错误则整体失败.
func LoadTable(r io.Reader) (types.Table, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = FieldNum
	cr.TrimLeadingSpace = true

	table := make(types.Table)
	first := true
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, types.Errorf("load.table", types.KindInvalidTable, "%v", err)
		}
		line, _ := cr.FieldPos(0)
		if first {
			first = false
			if isHeader(rec) {
				continue
			}
		}
		c, err := parseCompound(rec)
		if err != nil {
			return nil, types.Errorf("load.table", types.KindInvalidTable, "第 %d 行: %v", line, err)
		}
		if _, ok := table[c.Name]; ok {
			return nil, types.Errorf("load.table", types.KindInvalidTable, "第 %d 行: 组分 %q 重复", line, c.Name)
		}
		table[c.Name] = c
	}
	if len(table) == 0 {
		return nil, types.Errorf("load.table", types.KindInvalidTable, "物性表为空")
	}
	return table, nil
}

// isHeader 表头行除名称外不含任何数值
func isHeader(rec []string) bool {
	for _, f := range rec[1:] {
		if _, err := strconv.ParseFloat(strings.TrimSpace(f), 64); err == nil {
			return false
		}
	}
	return true
}

// parseCompound 解析一行
func parseCompound(rec []string) (types.Compound, error) {
	name := strings.TrimSpace(rec[0])
	if name == "" {
		return types.Compound{}, fmt.Errorf("组分名为空")
	}
	v := make([]float64, FieldNum-1)
	for i := range v {
		f, err := strconv.ParseFloat(strings.TrimSpace(rec[i+1]), 64)
		if err != nil {
			return types.Compound{}, fmt.Errorf("字段 %d 无效 '%s'", i+2, rec[i+1])
		}
		v[i] = f
	}
	if !(v[0] > 0) {
		return types.Compound{}, fmt.Errorf("临界温度 %g 无效", v[0])
	}
	return types.Compound{
		Name:       name,
		LiquidCp:   types.LiquidCp{C1: v[1], C2: v[2], C3: v[3], C4: v[4], C5: v[5]},
		Antoine:    types.Antoine{C1: v[6], C2: v[7], C3: v[8], C4: v[9], C5: v[10]},
		HeatVap:    types.HeatVap{Tc: v[0], C1: v[11], C2: v[12], C3: v[13], C4: v[14]},
		IdealGasCp: types.IdealGasCp{C1: v[15], C2: v[16], C3: v[17], C4: v[18], C5: v[19]},
	}, nil
}
