package xappender

import "errors"

// 配置错误：启动校验失败，写入器保持未启动
var (
	// ErrNoTriggeringPolicy 未设置触发策略
	ErrNoTriggeringPolicy = errors.New("xappender: no triggering policy set")

	// ErrTriggeringPolicyNotStarted 触发策略尚未启动（策略的生命周期由调用方负责）
	ErrTriggeringPolicyNotStarted = errors.New("xappender: triggering policy not started")

	// ErrNoRollingPolicy 未设置滚动策略
	ErrNoRollingPolicy = errors.New("xappender: no rolling policy set")

	// ErrCollision 命名模式与同一 Registry 中已启动的写入器结构相同
	ErrCollision = errors.New("xappender: file name pattern collision")

	// ErrFileCollision 静态文件路径本身匹配命名模式的正则形式，文件归属产生歧义
	ErrFileCollision = errors.New("xappender: file property collides with file name pattern")

	// ErrPrudentCompression prudent 模式下不支持压缩
	ErrPrudentCompression = errors.New("xappender: compression is not supported in prudent mode")

	// ErrNoActiveFile 滚动策略未能给出活动文件名
	ErrNoActiveFile = errors.New("xappender: rolling policy produced no active file name")
)

// 运行期错误
var (
	// ErrNotStarted 写入器未启动
	ErrNotStarted = errors.New("xappender: appender is not started")

	// ErrOpenFailed 打开/重开活动文件失败
	ErrOpenFailed = errors.New("xappender: open active file failed")

	// ErrRolloverFailure 物理轮转失败（轮转被推迟，写入器保持可用）。
	// 滚动策略实现应使用 %w 包装此错误，便于调用方分类恢复行为。
	ErrRolloverFailure = errors.New("xappender: rollover failure")

	// ErrNoOpenStream 当前没有已打开的输出流（上次重开失败后的写入会得到此错误）
	ErrNoOpenStream = errors.New("xappender: no open output stream")
)
