package xpolicy

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/omeyang/xroll/pkg/rolling/xappender"
)

// periodKind 时间段粒度，由命名模式的时间布局推导。
type periodKind int

const (
	periodYear periodKind = iota
	periodMonth
	periodDay
	periodHour
	periodMinute
	periodSecond
)

// periodOf 从 Go 时间布局推导滚动粒度：布局中出现的最细时间成分决定
// 粒度，什么都不含时按天处理。
func periodOf(layout string) periodKind {
	switch {
	case strings.Contains(layout, "05"):
		return periodSecond
	case strings.Contains(layout, "04"):
		return periodMinute
	case strings.Contains(layout, "15") || strings.Contains(layout, "03"):
		return periodHour
	case strings.Contains(layout, "02") || strings.Contains(layout, "_2"):
		return periodDay
	case strings.Contains(layout, "01") || strings.Contains(layout, "Jan"):
		return periodMonth
	case strings.Contains(layout, "2006"):
		return periodYear
	default:
		return periodDay
	}
}

// truncateTo 把 t 对齐到所在时间段的起点。
func truncateTo(t time.Time, kind periodKind) time.Time {
	switch kind {
	case periodYear:
		return time.Date(t.Year(), 1, 1, 0, 0, 0, 0, t.Location())
	case periodMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	case periodDay:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	case periodHour:
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
	case periodMinute:
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location())
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, t.Location())
	}
}

// nextPeriod 返回 start 所在时间段之后下一个时间段的起点。
func nextPeriod(start time.Time, kind periodKind) time.Time {
	switch kind {
	case periodYear:
		return start.AddDate(1, 0, 0)
	case periodMonth:
		return start.AddDate(0, 1, 0)
	case periodDay:
		return start.AddDate(0, 0, 1)
	case periodHour:
		return start.Add(time.Hour)
	case periodMinute:
		return start.Add(time.Minute)
	default:
		return start.Add(time.Second)
	}
}

// TimeBasedPolicy 基于时间段的双职责策略：既判定"当前记录是否落入
// 新时间段"（触发面），也完成过期时间段的归档、压缩与历史清理
// （滚动面）。装入写入器时只需设置一次。
//
// 滚动粒度从命名模式里 %d 的时间布局推导：布局含秒则按秒滚，
// 含天则按天滚。时间段边界只在写入路径上检查，空闲时段不产生归档。
//
// 未设置静态活动文件时，活动文件直接使用当前时间段的最终名字，
// 轮转无需重命名；设置了静态文件时，轮转把静态文件改名为过期
// 时间段的归档名。
type TimeBasedPolicy struct {
	pattern     *Pattern
	kind        periodKind
	maxHistory  int
	compression xappender.CompressionMode
	started     atomic.Bool
	nowFn       func() time.Time

	// static 写入器注入的静态活动文件路径
	static string

	// mu 保护 current 与 elapsed。触发判定与运维轮转来自写入器的
	// 不同锁域，可能并发进入，时间段状态必须自洽。
	mu sync.Mutex
	// current 当前时间段起点，elapsed 待归档的过期时间段起点。
	current time.Time
	elapsed time.Time
}

// TimeBasedOption 配置 TimeBasedPolicy。
type TimeBasedOption func(*TimeBasedPolicy)

// WithMaxHistory 设置保留的归档时间段数量，0（默认）表示不清理。
func WithMaxHistory(n int) TimeBasedOption {
	return func(p *TimeBasedPolicy) {
		if n > 0 {
			p.maxHistory = n
		}
	}
}

// WithTimeBasedCompression 设置归档压缩方式，默认不压缩。
func WithTimeBasedCompression(mode xappender.CompressionMode) TimeBasedOption {
	return func(p *TimeBasedPolicy) {
		p.compression = mode
	}
}

// WithTimeSource 注入时间源，测试用。
func WithTimeSource(nowFn func() time.Time) TimeBasedOption {
	return func(p *TimeBasedPolicy) {
		if nowFn != nil {
			p.nowFn = nowFn
		}
	}
}

// NewTimeBasedPolicy 创建时间段策略。命名模式必须含 %d。
func NewTimeBasedPolicy(rawPattern string, opts ...TimeBasedOption) (*TimeBasedPolicy, error) {
	pattern, err := NewPattern(rawPattern)
	if err != nil {
		return nil, err
	}
	if !pattern.HasDateToken() {
		return nil, fmt.Errorf("%w: %q", ErrMissingDateToken, rawPattern)
	}

	p := &TimeBasedPolicy{
		pattern: pattern,
		kind:    periodOf(pattern.PrimaryLayout()),
		nowFn:   time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p, nil
}

// Start 启动策略并把当前时间段对齐到现在。
func (p *TimeBasedPolicy) Start() error {
	p.mu.Lock()
	p.current = truncateTo(p.nowFn(), p.kind)
	p.elapsed = time.Time{}
	p.mu.Unlock()
	p.started.Store(true)
	return nil
}

// Stop 停止策略，幂等。
func (p *TimeBasedPolicy) Stop() error {
	p.started.Store(false)
	return nil
}

// IsStarted 报告策略是否已启动。
func (p *TimeBasedPolicy) IsStarted() bool { return p.started.Load() }

// IsTriggeringEvent 判断当前时间是否落入新时间段。
// 返回 true 时记住过期时间段并推进当前时间段，同一边界只报告一次。
func (p *TimeBasedPolicy) IsTriggeringEvent(_ string, _ []byte) bool {
	now := p.nowFn()
	p.mu.Lock()
	defer p.mu.Unlock()
	if now.Before(nextPeriod(p.current, p.kind)) {
		return false
	}
	p.elapsed = p.current
	p.current = truncateTo(now, p.kind)
	return true
}

// ActiveFileName 返回当前活动文件路径：静态文件优先，否则按当前
// 时间段展开命名模式。
func (p *TimeBasedPolicy) ActiveFileName() string {
	if p.static != "" {
		return p.static
	}
	if !p.started.Load() {
		return ""
	}
	p.mu.Lock()
	current := p.current
	p.mu.Unlock()
	return p.pattern.Format(current, 0)
}

// activeNameFor 按给定的时间段起点计算活动文件名，静态文件优先。
func (p *TimeBasedPolicy) activeNameFor(current time.Time) string {
	if p.static != "" {
		return p.static
	}
	return p.pattern.Format(current, 0)
}

// CompressionMode 返回归档压缩方式。
func (p *TimeBasedPolicy) CompressionMode() xappender.CompressionMode { return p.compression }

// NamingPattern 返回命名模式，供冲突检测使用。
func (p *TimeBasedPolicy) NamingPattern() xappender.NamingPattern { return p.pattern }

// SetStaticFile 接受写入器注入的静态活动文件路径，空串表示清除
// （prudent 模式）。
func (p *TimeBasedPolicy) SetStaticFile(path string) { p.static = path }

// Rollover 归档过期时间段的文件并清理超出保留窗口的历史归档。
// 失败包装 [xappender.ErrRolloverFailure] 返回。
func (p *TimeBasedPolicy) Rollover() error {
	if !p.started.Load() {
		return fmt.Errorf("%w: %w", xappender.ErrRolloverFailure, ErrNotStarted)
	}

	p.mu.Lock()
	elapsedStart := p.elapsed
	if elapsedStart.IsZero() {
		// 没有过期时间段的运维轮转：归档当前时间段的内容
		elapsedStart = p.current
	}
	p.elapsed = time.Time{}
	current := p.current
	p.mu.Unlock()
	active := p.activeNameFor(current)

	elapsedName := p.pattern.Format(elapsedStart, 0)
	if p.static != "" && p.static != elapsedName {
		if _, err := os.Stat(p.static); err == nil {
			if err := renameWithRetry(p.static, elapsedName); err != nil {
				return fmt.Errorf("%w: archive %s: %w", xappender.ErrRolloverFailure, p.static, err)
			}
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("%w: stat %s: %w", xappender.ErrRolloverFailure, p.static, err)
		}
	}

	// 归档名与活动文件重合时（无静态文件的运维轮转）不压缩，文件仍在写
	if p.compression != xappender.CompressionNone && elapsedName != active {
		if _, err := os.Stat(elapsedName); err == nil {
			dst := elapsedName + archiveSuffix(p.compression)
			if err := compressFile(p.compression, elapsedName, dst); err != nil {
				return fmt.Errorf("%w: compress %s: %w", xappender.ErrRolloverFailure, elapsedName, err)
			}
		}
	}

	if err := p.pruneHistory(active, current); err != nil {
		return fmt.Errorf("%w: prune history: %w", xappender.ErrRolloverFailure, err)
	}
	return nil
}

// pruneHistory 删除超出保留窗口的历史归档。按修改时间从新到旧排序，
// 保留最近 maxHistory 个，活动文件永不删除。
func (p *TimeBasedPolicy) pruneHistory(active string, current time.Time) error {
	if p.maxHistory <= 0 {
		return nil
	}

	re, err := compileAnchored(p.pattern)
	if err != nil {
		return err
	}
	suffix := archiveSuffix(p.compression)

	dir := filepath.Dir(p.pattern.Format(current, 0))
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	type archive struct {
		path string
		mod  time.Time
	}
	var archives []archive
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if path == active {
			continue
		}
		candidate := path
		if suffix != "" {
			candidate = strings.TrimSuffix(path, suffix)
		}
		if !re.MatchString(candidate) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		archives = append(archives, archive{path: path, mod: info.ModTime()})
	}

	if len(archives) <= p.maxHistory {
		return nil
	}
	sort.Slice(archives, func(i, j int) bool {
		// 修改时间相同时按文件名倒序，零填充的时间布局下即时间倒序
		if archives[i].mod.Equal(archives[j].mod) {
			return archives[i].path > archives[j].path
		}
		return archives[i].mod.After(archives[j].mod)
	})
	for _, a := range archives[p.maxHistory:] {
		if err := os.Remove(a.path); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

var (
	_ xappender.TriggeringPolicy = (*TimeBasedPolicy)(nil)
	_ xappender.RollingPolicy    = (*TimeBasedPolicy)(nil)
	_ xappender.PatternProvider  = (*TimeBasedPolicy)(nil)
	_ xappender.StaticFileAware  = (*TimeBasedPolicy)(nil)
)
