package xstatus

import (
	"strconv"
	"time"
)

// Level 表示诊断级别。
type Level int

const (
	// LevelInfo 表示正常的生命周期事件。
	LevelInfo Level = iota
	// LevelWarn 表示可恢复的异常（如轮转失败被推迟）。
	LevelWarn
	// LevelError 表示导致功能降级的故障（如启动校验失败）。
	LevelError
)

// String 返回级别的可读字符串表示。
func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "Level(" + strconv.Itoa(int(l)) + ")"
	}
}

// Status 表示一条诊断条目。
type Status struct {
	// Level 诊断级别。
	Level Level
	// Origin 产生诊断的组件标识（通常是写入器名称）。
	Origin string
	// Message 诊断消息。
	Message string
	// Err 关联的错误，可为 nil。
	Err error
	// Time 诊断产生时间。
	Time time.Time
}

// Listener 接收实时分发的诊断条目。
//
// 回调在 Recorder.Add 的调用 goroutine 上同步执行，
// 实现不得向产生诊断的写入器回写数据。
type Listener interface {
	OnStatus(s Status)
}

// ListenerFunc 是 Listener 的函数适配器。
type ListenerFunc func(s Status)

// OnStatus 实现 Listener 接口。
func (f ListenerFunc) OnStatus(s Status) { f(s) }
