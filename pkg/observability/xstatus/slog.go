package xstatus

import (
	"context"
	"log/slog"
)

// slogListener 将诊断条目桥接到 log/slog。
type slogListener struct {
	logger *slog.Logger
}

// NewSlogListener 创建 slog 桥接监听器。
// logger 为 nil 时使用 slog.Default()。
//
// 注意：logger 的输出目标不能是产生诊断的写入器本身，否则会递归写入。
func NewSlogListener(logger *slog.Logger) Listener {
	if logger == nil {
		logger = slog.Default()
	}
	return &slogListener{logger: logger}
}

// OnStatus 实现 Listener 接口。
func (l *slogListener) OnStatus(s Status) {
	attrs := []slog.Attr{
		slog.String("origin", s.Origin),
		slog.Time("status_time", s.Time),
	}
	if s.Err != nil {
		attrs = append(attrs, slog.String("error", s.Err.Error()))
	}

	var level slog.Level
	switch s.Level {
	case LevelWarn:
		level = slog.LevelWarn
	case LevelError:
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	l.logger.LogAttrs(context.Background(), level, s.Message, attrs...)
}
