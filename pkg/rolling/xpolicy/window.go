package xpolicy

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"

	retry "github.com/avast/retry-go/v5"

	"github.com/omeyang/xroll/pkg/rolling/xappender"
)

// MaxWindowSize 固定窗口允许的最大槽位数。窗口每次轮转要做 O(窗口大小)
// 次重命名，过大的窗口会把轮转拖成慢操作，超限时截断到此上限。
const MaxWindowSize = 20

// renameAttempts 归档重命名的重试次数。活动文件可能被外部短暂持有
// （扫描器、防病毒），小步重试即可跨过瞬时占用。
const renameAttempts = 3

// FixedWindowPolicy 固定窗口滚动策略：活动文件归档到 %i 的最小序号，
// 既有归档整体向更大序号滑动，超出最大序号的归档被删除。
// 序号越小归档越新。
//
// 固定窗口轮转依赖静态活动文件（写入器的 WithFile），否则无法知道
// 该归档哪个文件。策略本身只实现 RollingPolicy，需要搭配 SizeTrigger
// 或 CronTrigger 等触发策略使用。
type FixedWindowPolicy struct {
	pattern     *Pattern
	minIndex    int
	maxIndex    int
	compression xappender.CompressionMode
	started     atomic.Bool

	// static 写入器注入的静态活动文件路径
	static string
}

// FixedWindowOption 配置 FixedWindowPolicy。
type FixedWindowOption func(*FixedWindowPolicy)

// WithWindowCompression 设置归档压缩方式，默认不压缩。
func WithWindowCompression(mode xappender.CompressionMode) FixedWindowOption {
	return func(p *FixedWindowPolicy) {
		p.compression = mode
	}
}

// NewFixedWindowPolicy 创建固定窗口滚动策略。
// 命名模式必须含 %i；序号区间要求 0 <= minIndex <= maxIndex，
// 窗口大小超过 [MaxWindowSize] 时截断。
func NewFixedWindowPolicy(rawPattern string, minIndex, maxIndex int, opts ...FixedWindowOption) (*FixedWindowPolicy, error) {
	pattern, err := NewPattern(rawPattern)
	if err != nil {
		return nil, err
	}
	if !pattern.HasIndexToken() {
		return nil, fmt.Errorf("%w: %q", ErrMissingIndexToken, rawPattern)
	}
	if minIndex < 0 || maxIndex < minIndex {
		return nil, fmt.Errorf("%w: [%d, %d]", ErrInvalidWindow, minIndex, maxIndex)
	}
	if maxIndex-minIndex >= MaxWindowSize {
		maxIndex = minIndex + MaxWindowSize - 1
	}

	p := &FixedWindowPolicy{
		pattern:  pattern,
		minIndex: minIndex,
		maxIndex: maxIndex,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p, nil
}

// Start 启动策略。
func (p *FixedWindowPolicy) Start() error {
	p.started.Store(true)
	return nil
}

// Stop 停止策略，幂等。
func (p *FixedWindowPolicy) Stop() error {
	p.started.Store(false)
	return nil
}

// IsStarted 报告策略是否已启动。
func (p *FixedWindowPolicy) IsStarted() bool { return p.started.Load() }

// ActiveFileName 返回静态活动文件路径。固定窗口下活动文件名不变。
func (p *FixedWindowPolicy) ActiveFileName() string { return p.static }

// CompressionMode 返回归档压缩方式。
func (p *FixedWindowPolicy) CompressionMode() xappender.CompressionMode { return p.compression }

// NamingPattern 返回命名模式，供冲突检测使用。
func (p *FixedWindowPolicy) NamingPattern() xappender.NamingPattern { return p.pattern }

// SetStaticFile 接受写入器注入的静态活动文件路径。
func (p *FixedWindowPolicy) SetStaticFile(path string) { p.static = path }

// MinIndex 返回窗口最小序号。
func (p *FixedWindowPolicy) MinIndex() int { return p.minIndex }

// MaxIndex 返回窗口最大序号（可能已被截断）。
func (p *FixedWindowPolicy) MaxIndex() int { return p.maxIndex }

// Rollover 执行固定窗口轮转：淘汰窗口尾、滑动既有归档、
// 归档当前活动文件到最小序号。
//
// 任何失败都包装 [xappender.ErrRolloverFailure] 返回，写入核心据此
// 推迟轮转而不中断写入。活动文件不存在（本周期没有写入）时为成功的
// 空操作。
func (p *FixedWindowPolicy) Rollover() error {
	if !p.started.Load() {
		return fmt.Errorf("%w: %w", xappender.ErrRolloverFailure, ErrNotStarted)
	}
	if p.static == "" {
		return fmt.Errorf("%w: %w", xappender.ErrRolloverFailure, ErrStaticFileRequired)
	}

	now := time.Now()
	suffix := archiveSuffix(p.compression)

	// 淘汰窗口尾
	oldest := p.archiveName(now, p.maxIndex) + suffix
	if err := os.Remove(oldest); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: remove %s: %w", xappender.ErrRolloverFailure, oldest, err)
	}

	// 既有归档向更大序号滑动
	for i := p.maxIndex - 1; i >= p.minIndex; i-- {
		src := p.archiveName(now, i) + suffix
		if _, err := os.Stat(src); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("%w: stat %s: %w", xappender.ErrRolloverFailure, src, err)
		}
		dst := p.archiveName(now, i+1) + suffix
		if err := os.Rename(src, dst); err != nil {
			return fmt.Errorf("%w: shift %s: %w", xappender.ErrRolloverFailure, src, err)
		}
	}

	// 活动文件归档到最小序号
	if _, err := os.Stat(p.static); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("%w: stat %s: %w", xappender.ErrRolloverFailure, p.static, err)
	}
	target := p.archiveName(now, p.minIndex)
	if err := renameWithRetry(p.static, target); err != nil {
		return fmt.Errorf("%w: archive %s: %w", xappender.ErrRolloverFailure, p.static, err)
	}
	if p.compression != xappender.CompressionNone {
		if err := compressFile(p.compression, target, target+suffix); err != nil {
			return fmt.Errorf("%w: compress %s: %w", xappender.ErrRolloverFailure, target, err)
		}
	}
	return nil
}

func (p *FixedWindowPolicy) archiveName(t time.Time, index int) string {
	return p.pattern.Format(t, index)
}

// renameWithRetry 带短步重试的重命名。
func renameWithRetry(src, dst string) error {
	return retry.New(
		retry.Attempts(renameAttempts),
		retry.Delay(20*time.Millisecond),
		retry.LastErrorOnly(true),
	).Do(func() error {
		return os.Rename(src, dst)
	})
}

var (
	_ xappender.RollingPolicy   = (*FixedWindowPolicy)(nil)
	_ xappender.PatternProvider = (*FixedWindowPolicy)(nil)
	_ xappender.StaticFileAware = (*FixedWindowPolicy)(nil)
)
