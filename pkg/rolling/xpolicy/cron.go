package xpolicy

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/omeyang/xroll/pkg/rolling/xappender"
)

// CronTrigger 按 cron 表达式的时刻边界触发轮转。
//
// 表达式使用标准五段式（分 时 日 月 周），支持 @hourly 等描述符。
// 触发判定在写入路径上进行：越过边界后的第一条记录触发轮转，
// 没有写入就没有轮转，空闲时段不会产生空归档。
type CronTrigger struct {
	schedule cron.Schedule
	started  atomic.Bool

	// next 下一个触发时刻。只在触发锁内读写，无需互斥。
	next time.Time

	nowFn func() time.Time
}

// CronTriggerOption 配置 CronTrigger。
type CronTriggerOption func(*CronTrigger)

// WithCronNow 注入时间源，测试用。
func WithCronNow(nowFn func() time.Time) CronTriggerOption {
	return func(p *CronTrigger) {
		if nowFn != nil {
			p.nowFn = nowFn
		}
	}
}

// NewCronTrigger 解析 cron 表达式并创建触发策略。
func NewCronTrigger(spec string, opts ...CronTriggerOption) (*CronTrigger, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("xpolicy: parse cron spec %q failed: %w", spec, err)
	}
	p := &CronTrigger{
		schedule: schedule,
		nowFn:    time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p, nil
}

// Start 启动策略并把下一个触发时刻校准到当前时间之后。
func (p *CronTrigger) Start() error {
	p.next = p.schedule.Next(p.nowFn())
	p.started.Store(true)
	return nil
}

// Stop 停止策略，幂等。
func (p *CronTrigger) Stop() error {
	p.started.Store(false)
	return nil
}

// IsStarted 报告策略是否已启动。
func (p *CronTrigger) IsStarted() bool { return p.started.Load() }

// IsTriggeringEvent 判断当前时间是否已越过下一个触发时刻。
// 返回 true 时同步推进到其后的触发时刻，同一边界只报告一次。
func (p *CronTrigger) IsTriggeringEvent(_ string, _ []byte) bool {
	now := p.nowFn()
	if now.Before(p.next) {
		return false
	}
	p.next = p.schedule.Next(now)
	return true
}

var _ xappender.TriggeringPolicy = (*CronTrigger)(nil)
