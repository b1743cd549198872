package types

// Antoine 扩展安托因方程系数 (DIPPR 101, Pa)
type Antoine struct{ C1, C2, C3, C4, C5 float64 }

// HeatVap 汽化热关联式系数 (DIPPR 106, J/kmol)
type HeatVap struct {
	Tc             float64 // 临界温度 K
	C1, C2, C3, C4 float64
}

// LiquidCp 液相热容多项式系数 (DIPPR 100, J/kmol·K)
type LiquidCp struct{ C1, C2, C3, C4, C5 float64 }

// IdealGasCp 理想气体热容系数 (DIPPR 107 Aly-Lee, J/kmol·K)
type IdealGasCp struct{ C1, C2, C3, C4, C5 float64 }

// Compound 单组分关联式系数集
type Compound struct {
	Name       string
	Antoine    Antoine
	HeatVap    HeatVap
	LiquidCp   LiquidCp
	IdealGasCp IdealGasCp
}

// Table 物性表 组分名 -> 系数集
// 加载完成后只读, 可并发读取.
type Table map[string]Compound

// Get 查找组分
func (t Table) Get(name string) (Compound, error) {
	c, ok := t[name]
	if !ok {
		return Compound{}, Errorf("table.get", KindUnknownCompound, "%q", name)
	}
	return c, nil
}

// Check 确认组成中的组分都在表中
func (t Table) Check(c Composition) error {
	for _, k := range c.Keys() {
		if _, err := t.Get(k); err != nil {
			return err
		}
	}
	return nil
}

// Names 排序后的组分名
func (t Table) Names() []string {
	c := make(Composition, len(t))
	for k := range t {
		c[k] = 0
	}
	return c.Keys()
}
