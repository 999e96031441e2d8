package xappender

import (
	"github.com/omeyang/xroll/pkg/observability/xstatus"
	"go.opentelemetry.io/otel/metric"
)

// Option 配置 RollingFileAppender。所有选项只在 Start 之前生效。
type Option func(*RollingFileAppender)

// WithRegistry 把写入器挂入冲突注册表。共享同一命名空间（通常是同一
// 进程内的同一套日志目录）的写入器应传入同一个 Registry；未设置时
// 写入器不参与冲突检测。
func WithRegistry(r *Registry) Option {
	return func(a *RollingFileAppender) {
		a.registry = r
	}
}

// WithStatusRecorder 设置诊断记录器。启动校验、轮转推迟、重开失败等
// 事件都会写入其中。未设置时写入器自建一个私有记录器。
func WithStatusRecorder(rec *xstatus.Recorder) Option {
	return func(a *RollingFileAppender) {
		if rec != nil {
			a.status = rec
		}
	}
}

// WithRollingPolicy 设置滚动策略，等价于构造后调用 SetRollingPolicy。
func WithRollingPolicy(p RollingPolicy) Option {
	return func(a *RollingFileAppender) {
		a.SetRollingPolicy(p)
	}
}

// WithTriggeringPolicy 设置触发策略，等价于构造后调用 SetTriggeringPolicy。
func WithTriggeringPolicy(p TriggeringPolicy) Option {
	return func(a *RollingFileAppender) {
		a.SetTriggeringPolicy(p)
	}
}

// WithFile 设置静态活动文件路径。设置后活动文件名固定不随轮转变化，
// 轮转产物名仍由滚动策略的命名模式决定。prudent 模式与静态文件互斥，
// 启动时静态文件会被清除并记一条警告。
func WithFile(path string) Option {
	return func(a *RollingFileAppender) {
		a.file = path
	}
}

// WithAppend 设置追加模式。滚动写入器只支持追加，传入 false 时
// 启动阶段会强制改回 true 并记一条警告。默认 true。
func WithAppend(enabled bool) Option {
	return func(a *RollingFileAppender) {
		a.appendMode = enabled
	}
}

// WithPrudent 启用 prudent 模式：不固定文件句柄，允许多个进程安全地
// 追加同一活动文件。代价是每条记录一次打开/关闭，且不支持压缩与
// 静态文件。
func WithPrudent(enabled bool) Option {
	return func(a *RollingFileAppender) {
		a.prudent = enabled
	}
}

// WithStreamWriter 替换底层输出流实现。默认使用 [FileWriter]。
func WithStreamWriter(w StreamWriter) Option {
	return func(a *RollingFileAppender) {
		if w != nil {
			a.writer = w
		}
	}
}

// WithWriterOptions 定制默认 [FileWriter] 的缓冲与权限。
// 与 WithStreamWriter 同时使用时本选项被忽略。
func WithWriterOptions(opts ...FileWriterOption) Option {
	return func(a *RollingFileAppender) {
		a.writerOpts = append(a.writerOpts, opts...)
	}
}

// WithReopenOnMove 启用活动文件搬移监测：活动文件被外部重命名或删除时
// 在下一次追加前自动重开。用于与外部 logrotate 类工具共存。
func WithReopenOnMove(enabled bool) Option {
	return func(a *RollingFileAppender) {
		a.reopenOnMove = enabled
	}
}

// WithMeterProvider 设置 OTel MeterProvider。未设置时使用全局 Provider。
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(a *RollingFileAppender) {
		a.meterProvider = mp
	}
}
