package xappender

import "strconv"

//go:generate mockgen -source=policy.go -destination=policy_mock_test.go -package=xappender

// TriggeringPolicy 决定"是否需要在写入本条记录之前轮转"。
//
// 策略的生命周期由调用方管理：必须在写入器 Start 之前启动。
// IsTriggeringEvent 在触发锁内被调用，实现无需自带互斥，
// 但返回 true 时必须同步推进自身状态（如时间窗口边界），
// 保证同一触发不会被重复报告。
type TriggeringPolicy interface {
	// Start 启动策略。
	Start() error

	// Stop 停止策略，必须幂等。
	Stop() error

	// IsStarted 报告策略是否处于已启动状态。
	IsStarted() bool

	// IsTriggeringEvent 判断"当前活动文件 + 本条记录"是否构成触发。
	IsTriggeringEvent(activeFile string, record []byte) bool
}

// RollingPolicy 负责轮转的物理工作：计算活动文件名，执行重命名/压缩/清理。
//
// Rollover 失败时应使用 %w 包装 [ErrRolloverFailure]；写入核心会把失败
// 推迟处理而不是中断写入。ActiveFileName 是文件命名的唯一事实来源：
// 无论 Rollover 成功与否，写入核心都以它的返回值重开输出流。
type RollingPolicy interface {
	// Start 启动策略。
	Start() error

	// Stop 停止策略，必须幂等。
	Stop() error

	// Rollover 执行一次物理轮转。
	Rollover() error

	// ActiveFileName 返回当前活动文件路径。
	ActiveFileName() string

	// CompressionMode 返回轮转产物的压缩方式。
	CompressionMode() CompressionMode
}

// 可选能力接口。同一具体策略类型可以同时满足 TriggeringPolicy 和
// RollingPolicy（双职责策略），以及下列任意能力；写入核心在装配时
// 按能力集合逐一探测，而不是依赖类型继承。

// LengthCounterProvider 表示触发策略持有字节计数器（基于大小的触发）。
type LengthCounterProvider interface {
	// LengthCounter 返回策略持有的计数器，可返回 nil 表示不需要计数。
	LengthCounter() *LengthCounter
}

// PatternProvider 表示策略暴露命名模式，仅用于启动时的冲突检测。
type PatternProvider interface {
	// NamingPattern 返回命名模式，可返回 nil 表示不参与冲突检测。
	NamingPattern() NamingPattern
}

// StaticFileAware 表示滚动策略接受写入器的静态文件路径。
// 写入器在启动校验时注入（prudent 模式下注入空串表示清除）。
type StaticFileAware interface {
	SetStaticFile(path string)
}

// NamingPattern 是命名模式在冲突检测中的最小外观。
// 具体实现见 xpolicy.Pattern。
type NamingPattern interface {
	// ToRegex 返回模式的正则形式（未锚定）。
	ToRegex() string

	// Equal 判断两个模式是否结构相同。
	Equal(other NamingPattern) bool

	// Hash 返回规范形式的稳定散列，作为 Registry 的快速路径索引。
	Hash() uint64

	// String 返回模式的原始文本。
	String() string
}

// CompressionMode 表示轮转产物的压缩方式。
type CompressionMode int

const (
	// CompressionNone 不压缩。
	CompressionNone CompressionMode = iota
	// CompressionGZIP gzip 压缩（产物后缀 .gz）。
	CompressionGZIP
	// CompressionZIP zip 压缩（产物后缀 .zip）。
	CompressionZIP
)

// String 返回压缩方式的可读字符串表示。
func (m CompressionMode) String() string {
	switch m {
	case CompressionNone:
		return "none"
	case CompressionGZIP:
		return "gzip"
	case CompressionZIP:
		return "zip"
	default:
		return "CompressionMode(" + strconv.Itoa(int(m)) + ")"
	}
}
