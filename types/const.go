package types

// 参考状态常量定义
const (
	Tref = 298.15 // 焓值参考温度 K
)

// 默认求解参数常量定义
const (
	Tolerance     = 1e-9 // 收敛容差(相对)
	MaxIterations = 200  // 最大迭代次数
	MinDamping    = 1e-4 // 最小阻尼因子
)

// 求根区间常量定义 K
const (
	BubbleTLower   = 0.0   // 泡点温度下限(开区间)
	BubbleTUpper   = 800.0 // 泡点温度上限
	DewTLower      = 200.0 // 露点温度下限
	DewTUpper      = 800.0 // 露点温度上限
	InverseLower   = 100.0 // 反算沸点下限
	InverseUpper   = 800.0 // 反算沸点上限
	InverseGuess   = 298.15
	MinTemperature = 1e-3 // 开区间下限取值
)
