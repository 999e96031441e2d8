package xappender

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"sync"
	"sync/atomic"

	"go.opentelemetry.io/otel/metric"

	"github.com/omeyang/xroll/pkg/observability/xstatus"
)

// RollingFileAppender 是滚动文件写入核心：向当前活动文件追加字节记录，
// 在触发策略命中时按滚动策略完成轮转。
//
// 名称是写入器在冲突注册表中的标识。匿名写入器（name 为空）可以正常
// 工作，但启动成功后不会注册自身的命名模式，无法被后续写入器检测到。
//
// 配置期方法（SetFile / SetRollingPolicy / SetTriggeringPolicy 及各
// Option）不做并发保护，必须在 Start 之前于单 goroutine 内完成；
// Start 之后 Append / Rollover / Stop 可以并发调用。
type RollingFileAppender struct {
	name string

	// 配置（Start 前写定）
	registry      *Registry
	status        *xstatus.Recorder
	file          string
	appendMode    bool
	prudent       bool
	reopenOnMove  bool
	writerOpts    []FileWriterOption
	meterProvider metric.MeterProvider

	rolling    RollingPolicy
	triggering TriggeringPolicy

	// 运行态
	triggerMu  sync.Mutex // 触发锁：串行化"判定触发 + 轮转"
	writer     StreamWriter
	counter    *LengthCounter
	watcher    *moveWatcher
	metrics    *appenderMetrics
	activeFile atomic.Value // string
	started    atomic.Bool
}

// New 创建写入器。name 可为空（不参与冲突注册）。
func New(name string, opts ...Option) *RollingFileAppender {
	a := &RollingFileAppender{
		name:       name,
		appendMode: true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	if a.status == nil {
		a.status = xstatus.NewRecorder()
	}
	return a
}

// Name 返回写入器标识。
func (a *RollingFileAppender) Name() string { return a.name }

// IsStarted 报告写入器是否处于已启动状态。
func (a *RollingFileAppender) IsStarted() bool { return a.started.Load() }

// Status 返回写入器的诊断记录器。
func (a *RollingFileAppender) Status() *xstatus.Recorder { return a.status }

// ActiveFile 返回当前活动文件路径。未启动时返回空串。
func (a *RollingFileAppender) ActiveFile() string {
	if v, ok := a.activeFile.Load().(string); ok {
		return v
	}
	return ""
}

// SetFile 设置静态活动文件路径。已启动的写入器上调用无效并记警告。
func (a *RollingFileAppender) SetFile(path string) {
	if a.started.Load() {
		a.status.Warn(a.origin(), "file property cannot change on a started appender, ignoring "+path)
		return
	}
	a.file = path
}

// SetRollingPolicy 设置滚动策略。
//
// 策略同时实现 TriggeringPolicy 时（双职责策略）会被一并安装为
// 触发策略。覆盖已有策略时只记一条警告，不再报错：策略替换属于
// 配置组装期的正常重绑定。
func (a *RollingFileAppender) SetRollingPolicy(p RollingPolicy) {
	if p == nil {
		return
	}
	if a.rolling != nil && a.rolling != p {
		a.status.Warn(a.origin(), "replacing previously set rolling policy")
	}
	a.rolling = p
	if tp, ok := p.(TriggeringPolicy); ok {
		if a.triggering != nil && a.triggering != tp {
			a.status.Warn(a.origin(), "replacing previously set triggering policy with dual-role rolling policy")
		}
		a.triggering = tp
	}
}

// SetTriggeringPolicy 设置触发策略。
// 策略同时实现 RollingPolicy 时会被一并安装为滚动策略。
func (a *RollingFileAppender) SetTriggeringPolicy(p TriggeringPolicy) {
	if p == nil {
		return
	}
	if a.triggering != nil && a.triggering != p {
		a.status.Warn(a.origin(), "replacing previously set triggering policy")
	}
	a.triggering = p
	if rp, ok := p.(RollingPolicy); ok {
		if a.rolling != nil && a.rolling != rp {
			a.status.Warn(a.origin(), "replacing previously set rolling policy with dual-role triggering policy")
		}
		a.rolling = rp
	}
}

// Start 校验配置并打开活动文件。任何一步失败都返回带类型的错误，
// 同时写入诊断记录器，写入器保持未启动。重复 Start 返回 nil。
func (a *RollingFileAppender) Start() error {
	if a.started.Load() {
		return nil
	}

	if a.triggering == nil {
		return a.startFailed("no triggering policy set", ErrNoTriggeringPolicy)
	}
	if !a.triggering.IsStarted() {
		return a.startFailed("triggering policy is not started", ErrTriggeringPolicyNotStarted)
	}

	pattern := a.pendingPattern()
	if pattern != nil {
		owner, ok := a.registry.CheckAndRegister(a.name, pattern)
		if !ok {
			err := fmt.Errorf("%w: pattern %q is already claimed by appender %q",
				ErrCollision, pattern.String(), owner)
			return a.startFailed("file name pattern collision with "+owner, err)
		}
		// 比对与登记是同一个临界区，并发启动时模式只会被一方占住；
		// 后续校验再失败就把条目收回去
		defer func() {
			if !a.started.Load() {
				a.registry.Remove(a.name)
			}
		}()
	}

	if !a.appendMode {
		a.status.Warn(a.origin(), "append mode is mandated for rolling file appenders, forcing append=true")
		a.appendMode = true
	}

	if a.rolling == nil {
		return a.startFailed("no rolling policy set", ErrNoRollingPolicy)
	}

	if a.file != "" && pattern != nil {
		if re, err := regexp.Compile("^" + pattern.ToRegex() + "$"); err == nil && re.MatchString(a.file) {
			wrapped := fmt.Errorf("%w: file %q matches pattern %q", ErrFileCollision, a.file, pattern.String())
			return a.startFailed("file property collides with file name pattern", wrapped)
		}
	}

	if a.prudent {
		if a.file != "" {
			a.status.Warn(a.origin(), "file property is not allowed in prudent mode, clearing "+a.file)
			a.file = ""
		}
		if a.rolling.CompressionMode() != CompressionNone {
			return a.startFailed("compression is not supported in prudent mode", ErrPrudentCompression)
		}
	}
	if sfa, ok := a.rolling.(StaticFileAware); ok {
		sfa.SetStaticFile(a.file)
	}

	active := a.rolling.ActiveFileName()
	if active == "" {
		return a.startFailed("rolling policy produced no active file name", ErrNoActiveFile)
	}
	a.activeFile.Store(active)

	if lcp, ok := a.triggering.(LengthCounterProvider); ok {
		a.counter = lcp.LengthCounter()
	}

	if a.metrics == nil {
		m, err := newAppenderMetrics(a.meterProvider)
		if err != nil {
			// 指标是可选能力，创建失败只降级不阻断
			a.status.Add(xstatus.Status{
				Level: xstatus.LevelWarn, Origin: a.origin(),
				Message: "metrics disabled", Err: err,
			})
		}
		a.metrics = m
	}

	if a.writer == nil {
		opts := a.writerOpts
		if a.prudent {
			opts = append(opts, WithPrudentWrites(true))
		}
		a.writer = NewFileWriter(opts...)
	}

	a.writer.Lock()
	err := a.writer.OpenFile(active)
	a.writer.Unlock()
	if err != nil {
		return a.startFailed("open active file "+active+" failed",
			fmt.Errorf("%w: %s: %w", ErrOpenFailed, active, err))
	}
	a.initCounter(active)

	if a.reopenOnMove {
		w, werr := newMoveWatcher(active)
		if werr != nil {
			a.status.Add(xstatus.Status{
				Level: xstatus.LevelWarn, Origin: a.origin(),
				Message: "move watching disabled", Err: werr,
			})
		}
		a.watcher = w
	}

	a.started.Store(true)
	a.status.Info(a.origin(), "started, active file "+active)
	return nil
}

// Append 向活动文件追加一条记录。
//
// 触发判定与轮转在触发锁内完成，物理写入在流锁内完成；轮转失败被
// 推迟处理（记警告，不中断写入），重开活动文件失败则降级为写入报
// [ErrNoOpenStream]，直到某次轮转重开成功。
func (a *RollingFileAppender) Append(record []byte) error {
	if !a.started.Load() {
		return ErrNotStarted
	}

	a.triggerMu.Lock()
	if a.watcher.consumeMoved() {
		a.reopenAfterMove()
	}
	if a.triggering.IsTriggeringEvent(a.ActiveFile(), record) {
		a.writer.Lock()
		err := a.rolloverLocked()
		a.writer.Unlock()
		if err != nil && !errors.Is(err, ErrRolloverFailure) {
			// 推迟的轮转已在 rolloverLocked 内记诊断；这里只关心重开失败
			a.status.Add(xstatus.Status{
				Level: xstatus.LevelError, Origin: a.origin(),
				Message: "reopen after rollover failed", Err: err,
			})
		}
	}
	a.triggerMu.Unlock()

	a.writer.Lock()
	n, err := a.writer.Write(record)
	a.writer.Unlock()

	if n > 0 {
		a.counter.Add(int64(n))
		a.metrics.recordAppendBytes(a.name, int64(n))
	}
	if err != nil {
		return fmt.Errorf("xappender: append to %s failed: %w", a.ActiveFile(), err)
	}
	return nil
}

// Rollover 无条件执行一次轮转，供运维路径（如收到信号时）调用。
// 与并发的 Append 通过流锁互斥。
func (a *RollingFileAppender) Rollover() error {
	if !a.started.Load() {
		return ErrNotStarted
	}
	a.writer.Lock()
	defer a.writer.Unlock()
	return a.rolloverLocked()
}

// rolloverLocked 执行轮转协议：关流、物理轮转、重算活动文件名、重开。
// 调用方必须持有流锁。
//
// 物理轮转失败不是致命错误：活动文件原样保留，输出流重开后继续追加，
// 触发条件仍然成立，下一次触发会重试轮转。重开失败才会让写入器进入
// 降级态。
func (a *RollingFileAppender) rolloverLocked() error {
	if err := a.writer.CloseStream(); err != nil {
		a.status.Add(xstatus.Status{
			Level: xstatus.LevelWarn, Origin: a.origin(),
			Message: "close before rollover failed", Err: err,
		})
	}

	var deferredErr error
	if err := a.rolling.Rollover(); err != nil {
		deferredErr = err
		a.status.Add(xstatus.Status{
			Level: xstatus.LevelWarn, Origin: a.origin(),
			Message: "rollover deferred, continuing on current file", Err: err,
		})
	}
	a.metrics.recordRollover(a.name, deferredErr != nil)

	active := a.rolling.ActiveFileName()
	if active == "" {
		active = a.ActiveFile()
		a.status.Warn(a.origin(), "rolling policy produced no active file name after rollover, keeping "+active)
	}
	a.activeFile.Store(active)
	a.watcher.setTarget(active)

	if err := a.writer.OpenFile(active); err != nil {
		a.metrics.recordReopenError(a.name)
		return fmt.Errorf("%w: %s: %w", ErrOpenFailed, active, err)
	}
	a.initCounter(active)

	if deferredErr != nil {
		if errors.Is(deferredErr, ErrRolloverFailure) {
			return deferredErr
		}
		return fmt.Errorf("%w: %w", ErrRolloverFailure, deferredErr)
	}
	return nil
}

// reopenAfterMove 在活动文件被外部搬走后重开输出流。
// 调用方必须持有触发锁。
func (a *RollingFileAppender) reopenAfterMove() {
	active := a.ActiveFile()
	a.writer.Lock()
	err := a.writer.OpenFile(active)
	a.writer.Unlock()
	if err != nil {
		a.metrics.recordReopenError(a.name)
		a.status.Add(xstatus.Status{
			Level: xstatus.LevelError, Origin: a.origin(),
			Message: "reopen after external move failed", Err: err,
		})
		return
	}
	a.initCounter(active)
	a.status.Info(a.origin(), "active file was moved externally, reopened "+active)
}

// Stop 关闭输出流并注销冲突注册。幂等：从未启动或已停止时为空操作。
func (a *RollingFileAppender) Stop() error {
	if !a.started.CompareAndSwap(true, false) {
		return nil
	}

	var errs []error
	// watcher 指针只在 Start 写入，这里不清空：越过了 started 检查的
	// Append（触发锁）和运维轮转（流锁）都还会读它。关闭后的 watcher
	// 各方法均安全。
	a.triggerMu.Lock()
	if err := a.watcher.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close watcher: %w", err))
	}
	a.triggerMu.Unlock()

	a.writer.Lock()
	if err := a.writer.CloseStream(); err != nil {
		errs = append(errs, fmt.Errorf("close stream: %w", err))
	}
	a.writer.Unlock()

	if err := a.triggering.Stop(); err != nil {
		errs = append(errs, fmt.Errorf("stop triggering policy: %w", err))
	}
	// 双职责策略只停一次
	if rp, sameObject := any(a.rolling).(TriggeringPolicy); !sameObject || rp != a.triggering {
		if err := a.rolling.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("stop rolling policy: %w", err))
		}
	}

	a.registry.Remove(a.name)
	a.status.Info(a.origin(), "stopped")
	return errors.Join(errs...)
}

// pendingPattern 取将要生效的命名模式：优先触发策略，其次滚动策略。
func (a *RollingFileAppender) pendingPattern() NamingPattern {
	if pp, ok := a.triggering.(PatternProvider); ok {
		if p := pp.NamingPattern(); p != nil {
			return p
		}
	}
	if pp, ok := a.rolling.(PatternProvider); ok {
		if p := pp.NamingPattern(); p != nil {
			return p
		}
	}
	return nil
}

// initCounter 重置字节计数并按磁盘上的实际大小重新初始化。
// 重启后接着写同一文件、轮转被推迟等场景下，大小触发依赖这一步
// 才能保持准确。
func (a *RollingFileAppender) initCounter(active string) {
	if a.counter == nil {
		return
	}
	a.counter.Reset()
	if info, err := os.Stat(active); err == nil {
		a.counter.Add(info.Size())
	}
}

func (a *RollingFileAppender) startFailed(msg string, err error) error {
	a.status.Error(a.origin(), msg, err)
	return err
}

func (a *RollingFileAppender) origin() string {
	if a.name == "" {
		return "xappender"
	}
	return "xappender/" + a.name
}
