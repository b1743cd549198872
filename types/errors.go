package types

import (
	"errors"
	"fmt"
)

// 错误分类哨兵
var (
	ErrDomain              = errors.New("关联式超出适用范围")
	ErrNoEquilibrium       = errors.New("区间内无平衡解")
	ErrConvergence         = errors.New("迭代未收敛")
	ErrInvalidComposition  = errors.New("组成无效")
	ErrUnsolvableAdiabatic = errors.New("绝热闪蒸无物理解")
	ErrNoFeed              = errors.New("未设置进料")
	ErrUnknownCompound     = errors.New("未知组分")
	ErrInvalidTable        = errors.New("物性表格式错误")
	ErrInvalidCase         = errors.New("算例配置错误")
	ErrStorage             = errors.New("结果存储失败")
)

// Kind 错误类别
type Kind string

const (
	KindDomain              Kind = "domain"
	KindNoEquilibrium       Kind = "no_equilibrium"
	KindConvergence         Kind = "convergence"
	KindInvalidComposition  Kind = "invalid_composition"
	KindUnsolvableAdiabatic Kind = "unsolvable_adiabatic"
	KindNoFeed              Kind = "no_feed"
	KindUnknownCompound     Kind = "unknown_compound"
	KindInvalidTable        Kind = "invalid_table"
	KindInvalidCase         Kind = "invalid_case"
	KindStorage             Kind = "storage"
)

var kindErr = map[Kind]error{
	KindDomain:              ErrDomain,
	KindNoEquilibrium:       ErrNoEquilibrium,
	KindConvergence:         ErrConvergence,
	KindInvalidComposition:  ErrInvalidComposition,
	KindUnsolvableAdiabatic: ErrUnsolvableAdiabatic,
	KindNoFeed:              ErrNoFeed,
	KindUnknownCompound:     ErrUnknownCompound,
	KindInvalidTable:        ErrInvalidTable,
	KindInvalidCase:         ErrInvalidCase,
	KindStorage:             ErrStorage,
}

// OpError 带操作上下文的错误
type OpError struct {
	Op   string // 出错操作
	Kind Kind   // 错误类别
	Path string // 相关文件(可选)
	Err  error  // 底层错误
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}
	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is 同类别哨兵匹配
func (e *OpError) Is(target error) bool {
	if e == nil {
		return false
	}
	return kindErr[e.Kind] == target
}

// Errorf 构造错误,格式化信息作为底层错误
func Errorf(op string, kind Kind, format string, args ...any) error {
	return &OpError{Op: op, Kind: kind, Err: fmt.Errorf(format, args...)}
}

// Wrap 包装底层错误, 已是 OpError 时保留原类别
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var oe *OpError
	if errors.As(err, &oe) {
		return &OpError{Op: op, Kind: oe.Kind, Err: err}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// IsKind 判断错误类别
func IsKind(err error, kind Kind) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	return false
}
