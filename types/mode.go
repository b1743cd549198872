package types

// Mode 闪蒸计算模式
type Mode uint8

const (
	ModeIsothermal        Mode = iota // 等温
	ModeAdiabatic                     // 绝热
	ModeAdiabaticUnsolved             // 绝热无解
)

func (m Mode) String() string {
	switch m {
	case ModeIsothermal:
		return "Isothermal"
	case ModeAdiabatic:
		return "Adiabatic"
	case ModeAdiabaticUnsolved:
		return "Adiabatic: NO SOLVED!"
	}
	return "Unknown"
}

// State 闪蒸罐状态
type State uint8

const (
	StateUninitialized State = iota // 未设置进料
	StateFeedSet                    // 已设置进料
	StateSolved                     // 已求解
	StateUnsolvable                 // 无解(绝热)
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "Uninitialized"
	case StateFeedSet:
		return "FeedSet"
	case StateSolved:
		return "Solved"
	case StateUnsolvable:
		return "Unsolvable"
	}
	return "Unknown"
}

// Phase 热状态(进料或罐内)
type Phase uint8

const (
	PhaseLiquid   Phase = iota // 过冷液体
	PhaseVapor                 // 过热蒸汽
	PhaseTwoPhase              // 汽液两相
)

func (p Phase) String() string {
	switch p {
	case PhaseLiquid:
		return "liquid"
	case PhaseVapor:
		return "vapor"
	case PhaseTwoPhase:
		return "mixture"
	}
	return "unknown"
}

// Classify 按泡露点划分热状态, 边界归属单相
func Classify(t, bubble, dew float64) Phase {
	switch {
	case t <= bubble:
		return PhaseLiquid
	case t >= dew:
		return PhaseVapor
	}
	return PhaseTwoPhase
}
