package xstatus

import (
	"sync"
	"time"
)

// DefaultLimit 默认保留的诊断条目数。
const DefaultLimit = 256

// Recorder 收集诊断条目并分发给监听器。
//
// 缓冲有界：超过上限时丢弃最旧的条目，dropped 计数保留丢弃总数。
// 监听器回调在 Add 的调用 goroutine 上同步执行。
type Recorder struct {
	mu        sync.Mutex
	entries   []Status
	limit     int
	dropped   int
	errors    int
	listeners []Listener

	// nowFn 仅用于测试注入时间
	nowFn func() time.Time
}

// Option 配置 Recorder。
type Option func(*Recorder)

// WithLimit 设置缓冲条目上限。非正值会被忽略，使用默认值。
func WithLimit(n int) Option {
	return func(r *Recorder) {
		if n > 0 {
			r.limit = n
		}
	}
}

// WithListener 挂接一个监听器。nil 会被静默忽略。
func WithListener(l Listener) Option {
	return func(r *Recorder) {
		if l != nil {
			r.listeners = append(r.listeners, l)
		}
	}
}

// NewRecorder 创建诊断收集器。
func NewRecorder(opts ...Option) *Recorder {
	r := &Recorder{
		limit: DefaultLimit,
		nowFn: time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Add 记录一条诊断并同步分发给所有监听器。
// Time 为零值时自动填充当前时间。nil Recorder 上调用是安全的空操作，
// 使诊断收集成为调用方的可选能力。
func (r *Recorder) Add(s Status) {
	if r == nil {
		return
	}

	r.mu.Lock()
	if s.Time.IsZero() {
		s.Time = r.nowFn()
	}
	if s.Level == LevelError {
		r.errors++
	}
	r.entries = append(r.entries, s)
	if len(r.entries) > r.limit {
		over := len(r.entries) - r.limit
		r.entries = append(r.entries[:0], r.entries[over:]...)
		r.dropped += over
	}
	listeners := r.listeners
	r.mu.Unlock()

	// 分发在锁外执行，监听器中再调用 Recorder 方法不会死锁
	for _, l := range listeners {
		l.OnStatus(s)
	}
}

// Info 记录一条 Info 级诊断。
func (r *Recorder) Info(origin, msg string) {
	r.Add(Status{Level: LevelInfo, Origin: origin, Message: msg})
}

// Warn 记录一条 Warn 级诊断。
func (r *Recorder) Warn(origin, msg string) {
	r.Add(Status{Level: LevelWarn, Origin: origin, Message: msg})
}

// Error 记录一条 Error 级诊断，err 可为 nil。
func (r *Recorder) Error(origin, msg string, err error) {
	r.Add(Status{Level: LevelError, Origin: origin, Message: msg, Err: err})
}

// All 返回当前缓冲内所有诊断条目的副本。
func (r *Recorder) All() []Status {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Status, len(r.entries))
	copy(out, r.entries)
	return out
}

// ErrorCount 返回累计记录的 Error 级诊断数（含已被丢弃的条目）。
func (r *Recorder) ErrorCount() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.errors
}

// Dropped 返回因缓冲上限被丢弃的条目总数。
func (r *Recorder) Dropped() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dropped
}
