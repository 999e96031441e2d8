package xpolicy

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/omeyang/xroll/pkg/rolling/xappender"
)

// SizeTrigger 基于活动文件的字节数触发轮转。
//
// 判定把待写记录的长度计算在内：若写入本条记录会使文件超过上限，
// 则先轮转再写入，活动文件因此从不超过上限。
type SizeTrigger struct {
	maxBytes int64
	counter  *xappender.LengthCounter
	started  atomic.Bool
}

// NewSizeTrigger 创建大小触发策略。maxBytes 必须为正。
func NewSizeTrigger(maxBytes int64) (*SizeTrigger, error) {
	if maxBytes <= 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidSize, maxBytes)
	}
	return &SizeTrigger{
		maxBytes: maxBytes,
		counter:  &xappender.LengthCounter{},
	}, nil
}

// NewSizeTriggerFromString 按 "10MB" 形式的大小表达式创建大小触发策略。
func NewSizeTriggerFromString(expr string) (*SizeTrigger, error) {
	n, err := ParseSize(expr)
	if err != nil {
		return nil, err
	}
	return NewSizeTrigger(n)
}

// MaxBytes 返回触发上限。
func (p *SizeTrigger) MaxBytes() int64 { return p.maxBytes }

// Start 启动策略。
func (p *SizeTrigger) Start() error {
	p.started.Store(true)
	return nil
}

// Stop 停止策略，幂等。
func (p *SizeTrigger) Stop() error {
	p.started.Store(false)
	return nil
}

// IsStarted 报告策略是否已启动。
func (p *SizeTrigger) IsStarted() bool { return p.started.Load() }

// IsTriggeringEvent 判断写入 record 是否会使活动文件超过上限。
func (p *SizeTrigger) IsTriggeringEvent(_ string, record []byte) bool {
	return p.counter.Size()+int64(len(record)) > p.maxBytes
}

// LengthCounter 返回字节计数器，由写入核心推进。
func (p *SizeTrigger) LengthCounter() *xappender.LengthCounter { return p.counter }

var (
	_ xappender.TriggeringPolicy      = (*SizeTrigger)(nil)
	_ xappender.LengthCounterProvider = (*SizeTrigger)(nil)
)

// sizeUnits 按后缀长度降序排列，保证 "KB" 不被 "B" 抢先匹配。
var sizeUnits = []struct {
	suffix string
	factor int64
}{
	{"GB", 1 << 30},
	{"MB", 1 << 20},
	{"KB", 1 << 10},
	{"B", 1},
}

// ParseSize 解析 "500"、"10KB"、"5MB"、"1GB" 形式的大小表达式。
// 单位不区分大小写，无单位时按字节计。
func ParseSize(expr string) (int64, error) {
	s := strings.ToUpper(strings.TrimSpace(expr))
	if s == "" {
		return 0, fmt.Errorf("%w: empty expression", ErrInvalidSize)
	}

	factor := int64(1)
	for _, u := range sizeUnits {
		if strings.HasSuffix(s, u.suffix) {
			factor = u.factor
			s = strings.TrimSpace(strings.TrimSuffix(s, u.suffix))
			break
		}
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSize, expr)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w: %q is not positive", ErrInvalidSize, expr)
	}
	if n > (1<<63-1)/factor {
		return 0, fmt.Errorf("%w: %q overflows", ErrInvalidSize, expr)
	}
	return n * factor, nil
}
