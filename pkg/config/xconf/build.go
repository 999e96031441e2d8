package xconf

import (
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/metric"

	"github.com/omeyang/xroll/pkg/observability/xstatus"
	"github.com/omeyang/xroll/pkg/rolling/xappender"
	"github.com/omeyang/xroll/pkg/rolling/xpolicy"
	"github.com/omeyang/xroll/pkg/rolling/xrotate"
)

// 固定窗口序号区间的默认值（min_index/max_index 都省略时生效）。
const (
	DefaultMinIndex = 1
	DefaultMaxIndex = 7
)

// Target 是装配好的单个写入目标。Kind 决定哪个字段有效。
type Target struct {
	// Name 写入器标识。
	Name string

	// Kind 写入器类型（KindPolicy / KindSimple）。
	Kind string

	// Appender 策略化写入器，Kind 为 KindPolicy 时有效。
	Appender *xappender.RollingFileAppender

	// Rotator 简单轮转器，Kind 为 KindSimple 时有效。
	Rotator xrotate.Rotator

	// 需要随 Set.Start 启动的策略。写入器的 Stop 会停掉它们。
	policies []policyLifecycle
}

type policyLifecycle interface {
	Start() error
	Stop() error
}

// Append 向目标写入一条记录。
func (t *Target) Append(record []byte) error {
	if t.Kind == KindSimple {
		_, err := t.Rotator.Write(record)
		return err
	}
	return t.Appender.Append(record)
}

// Rollover 对目标执行一次手动轮转。
func (t *Target) Rollover() error {
	if t.Kind == KindSimple {
		return t.Rotator.Rotate()
	}
	return t.Appender.Rollover()
}

// Set 是从一份配置装配出来的写入器集合，整体启动、整体停止。
// 集合内的 policy 写入器共享同一个冲突注册表和诊断记录器。
type Set struct {
	targets  []*Target
	byName   map[string]*Target
	registry *xappender.Registry
	status   *xstatus.Recorder
	started  bool
}

type buildOptions struct {
	registry      *xappender.Registry
	status        *xstatus.Recorder
	meterProvider metric.MeterProvider
}

// BuildOption 配置装配过程。
type BuildOption func(*buildOptions)

// WithRegistry 让集合使用外部的冲突注册表（默认每个 Set 自建一个）。
func WithRegistry(r *xappender.Registry) BuildOption {
	return func(o *buildOptions) {
		if r != nil {
			o.registry = r
		}
	}
}

// WithStatusRecorder 让集合使用外部的诊断记录器。
func WithStatusRecorder(rec *xstatus.Recorder) BuildOption {
	return func(o *buildOptions) {
		if rec != nil {
			o.status = rec
		}
	}
}

// WithMeterProvider 设置 policy 写入器的 OTel MeterProvider。
func WithMeterProvider(mp metric.MeterProvider) BuildOption {
	return func(o *buildOptions) {
		o.meterProvider = mp
	}
}

// Build 按配置装配写入器集合。装配只创建对象，Start 才打开文件、
// 注册冲突模式。
func Build(cfg *FileConfig, opts ...BuildOption) (*Set, error) {
	if cfg == nil {
		return nil, ErrNoAppenders
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := &buildOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	if o.registry == nil {
		o.registry = xappender.NewRegistry()
	}
	if o.status == nil {
		o.status = xstatus.NewRecorder()
	}

	set := &Set{
		byName:   make(map[string]*Target, len(cfg.Appenders)),
		registry: o.registry,
		status:   o.status,
	}
	for i := range cfg.Appenders {
		ac := &cfg.Appenders[i]
		var (
			target *Target
			err    error
		)
		switch ac.Kind {
		case KindPolicy:
			target, err = buildPolicyTarget(ac, o)
		case KindSimple:
			target, err = buildSimpleTarget(ac)
		}
		if err != nil {
			return nil, fmt.Errorf("xconf: appender %q: %w", ac.Name, err)
		}
		set.targets = append(set.targets, target)
		set.byName[target.Name] = target
	}
	return set, nil
}

func buildPolicyTarget(ac *AppenderConfig, o *buildOptions) (*Target, error) {
	pc := ac.Policy
	comp, err := parseCompression(pc.Compression)
	if err != nil {
		return nil, err
	}

	var (
		trigger xappender.TriggeringPolicy
		rolling xappender.RollingPolicy
	)
	if pc.TimeBased {
		tb, err := xpolicy.NewTimeBasedPolicy(pc.Pattern,
			xpolicy.WithMaxHistory(pc.MaxHistory),
			xpolicy.WithTimeBasedCompression(comp),
		)
		if err != nil {
			return nil, err
		}
		trigger, rolling = tb, tb
	} else {
		minIndex, maxIndex := pc.MinIndex, pc.MaxIndex
		if minIndex == 0 && maxIndex == 0 {
			minIndex, maxIndex = DefaultMinIndex, DefaultMaxIndex
		}
		fw, err := xpolicy.NewFixedWindowPolicy(pc.Pattern, minIndex, maxIndex,
			xpolicy.WithWindowCompression(comp))
		if err != nil {
			return nil, err
		}
		rolling = fw

		if pc.MaxSize != "" {
			trigger, err = xpolicy.NewSizeTriggerFromString(pc.MaxSize)
		} else {
			trigger, err = xpolicy.NewCronTrigger(pc.Cron)
		}
		if err != nil {
			return nil, err
		}
	}

	appenderOpts := []xappender.Option{
		xappender.WithRegistry(o.registry),
		xappender.WithStatusRecorder(o.status),
		xappender.WithTriggeringPolicy(trigger),
		xappender.WithRollingPolicy(rolling),
		xappender.WithFile(ac.File),
		xappender.WithPrudent(ac.Prudent),
		xappender.WithReopenOnMove(ac.ReopenOnMove),
	}
	if ac.BufferSize > 0 {
		appenderOpts = append(appenderOpts,
			xappender.WithWriterOptions(xappender.WithFileBufferSize(ac.BufferSize)))
	}
	if o.meterProvider != nil {
		appenderOpts = append(appenderOpts, xappender.WithMeterProvider(o.meterProvider))
	}

	target := &Target{
		Name:     ac.Name,
		Kind:     KindPolicy,
		Appender: xappender.New(ac.Name, appenderOpts...),
		policies: []policyLifecycle{trigger},
	}
	// 双职责策略只登记一次生命周期
	if any(rolling) != any(trigger) {
		target.policies = append(target.policies, rolling)
	}
	return target, nil
}

func buildSimpleTarget(ac *AppenderConfig) (*Target, error) {
	sc := ac.Simple
	var rotateOpts []xrotate.Option
	if sc.MaxSizeMB > 0 {
		rotateOpts = append(rotateOpts, xrotate.WithMaxSize(sc.MaxSizeMB))
	}
	if sc.MaxBackups > 0 {
		rotateOpts = append(rotateOpts, xrotate.WithMaxBackups(sc.MaxBackups))
	}
	if sc.MaxAgeDays > 0 {
		rotateOpts = append(rotateOpts, xrotate.WithMaxAge(sc.MaxAgeDays))
	}
	rotateOpts = append(rotateOpts,
		xrotate.WithCompress(sc.Compress),
		xrotate.WithLocalTime(sc.LocalTime),
	)

	r, err := xrotate.NewLumberjack(ac.File, rotateOpts...)
	if err != nil {
		return nil, err
	}
	return &Target{Name: ac.Name, Kind: KindSimple, Rotator: r}, nil
}

// Start 启动集合内的全部写入器：先启动策略，再启动写入器。
// 任何一个失败都会停掉已启动的部分并返回错误。
func (s *Set) Start() error {
	if s.started {
		return nil
	}
	var startedTargets []*Target
	for _, t := range s.targets {
		if err := startTarget(t); err != nil {
			for _, st := range startedTargets {
				_ = stopTarget(st)
			}
			return fmt.Errorf("xconf: start appender %q: %w", t.Name, err)
		}
		startedTargets = append(startedTargets, t)
	}
	s.started = true
	return nil
}

func startTarget(t *Target) error {
	if t.Kind == KindSimple {
		return nil
	}
	for _, p := range t.policies {
		if err := p.Start(); err != nil {
			return err
		}
	}
	return t.Appender.Start()
}

func stopTarget(t *Target) error {
	if t.Kind == KindSimple {
		return t.Rotator.Close()
	}
	return t.Appender.Stop()
}

// Stop 停止集合内的全部写入器，聚合所有错误。幂等。
func (s *Set) Stop() error {
	// 未启动的集合也要走一遍，释放 simple 轮转器持有的文件句柄
	s.started = false
	var errs []error
	for _, t := range s.targets {
		if err := stopTarget(t); err != nil && !errors.Is(err, xrotate.ErrClosed) {
			errs = append(errs, fmt.Errorf("stop %q: %w", t.Name, err))
		}
	}
	return errors.Join(errs...)
}

// Target 按名称查找写入目标，不存在时返回 nil。
func (s *Set) Target(name string) *Target { return s.byName[name] }

// Targets 返回全部写入目标，顺序与配置一致。
func (s *Set) Targets() []*Target { return s.targets }

// Status 返回集合共享的诊断记录器。
func (s *Set) Status() *xstatus.Recorder { return s.status }

// Registry 返回集合使用的冲突注册表。
func (s *Set) Registry() *xappender.Registry { return s.registry }
