package xpolicy

import "errors"

// 命名模式解析错误
var (
	// ErrEmptyPattern 命名模式为空
	ErrEmptyPattern = errors.New("xpolicy: empty file name pattern")

	// ErrUnclosedBrace %d{...} 的大括号未闭合
	ErrUnclosedBrace = errors.New("xpolicy: unclosed brace in file name pattern")

	// ErrUnknownToken 未知的 % 转换符
	ErrUnknownToken = errors.New("xpolicy: unknown conversion token in file name pattern")
)

// 策略配置错误
var (
	// ErrInvalidSize 大小表达式无法解析或不为正
	ErrInvalidSize = errors.New("xpolicy: invalid size expression")

	// ErrInvalidWindow 固定窗口的序号区间非法
	ErrInvalidWindow = errors.New("xpolicy: invalid fixed window index range")

	// ErrMissingIndexToken 固定窗口策略的命名模式缺少 %i
	ErrMissingIndexToken = errors.New("xpolicy: file name pattern has no %i token")

	// ErrMissingDateToken 时间策略的命名模式缺少 %d
	ErrMissingDateToken = errors.New("xpolicy: file name pattern has no %d token")

	// ErrStaticFileRequired 固定窗口轮转需要静态活动文件
	ErrStaticFileRequired = errors.New("xpolicy: fixed window rolling requires a static active file")

	// ErrNotStarted 策略未启动
	ErrNotStarted = errors.New("xpolicy: policy is not started")
)
