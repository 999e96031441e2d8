package xconf

import (
	"fmt"

	"github.com/omeyang/xroll/pkg/rolling/xappender"
)

// Format 定义配置文件格式。
type Format string

// 支持的配置格式。
const (
	// FormatYAML YAML 格式。
	FormatYAML Format = "yaml"

	// FormatJSON JSON 格式。
	FormatJSON Format = "json"
)

// 写入器 kind 取值。
const (
	// KindPolicy 策略化写入器（xappender + xpolicy）。
	KindPolicy = "policy"

	// KindSimple 简单轮转器（xrotate / lumberjack）。
	KindSimple = "simple"
)

// FileConfig 是配置文件的顶层结构。
type FileConfig struct {
	// Appenders 写入器声明列表。
	Appenders []AppenderConfig `koanf:"appenders"`
}

// AppenderConfig 声明一个写入器。
type AppenderConfig struct {
	// Name 写入器标识，必填且全局唯一。
	Name string `koanf:"name"`

	// Kind 写入器类型：policy 或 simple。
	Kind string `koanf:"kind"`

	// File 静态活动文件路径。simple 必填；policy 配合固定窗口必填，
	// 时间策略下可选。
	File string `koanf:"file"`

	// Prudent 多进程安全写入（仅 policy）。
	Prudent bool `koanf:"prudent"`

	// ReopenOnMove 活动文件被外部搬走后自动重开（仅 policy）。
	ReopenOnMove bool `koanf:"reopen_on_move"`

	// BufferSize 写缓冲字节数，0 表示不缓冲（仅 policy）。
	BufferSize int `koanf:"buffer_size"`

	// Policy 策略化写入器的策略配置。
	Policy *PolicyConfig `koanf:"policy"`

	// Simple 简单轮转器配置。
	Simple *SimpleConfig `koanf:"simple"`
}

// PolicyConfig 描述 policy 写入器的触发与滚动策略。
type PolicyConfig struct {
	// Pattern 命名模式。时间策略需含 %d，固定窗口需含 %i。
	Pattern string `koanf:"pattern"`

	// TimeBased 使用时间段双职责策略。与 max_size/cron/min_index/
	// max_index 互斥。
	TimeBased bool `koanf:"time_based"`

	// MaxHistory 时间策略保留的归档时间段数，0 表示不清理。
	MaxHistory int `koanf:"max_history"`

	// MaxSize 大小触发阈值，如 "10MB"。
	MaxSize string `koanf:"max_size"`

	// Cron cron 触发表达式，如 "0 * * * *"。
	Cron string `koanf:"cron"`

	// MinIndex / MaxIndex 固定窗口序号区间。
	MinIndex int `koanf:"min_index"`
	MaxIndex int `koanf:"max_index"`

	// Compression 归档压缩方式：none（默认）、gzip、zip。
	Compression string `koanf:"compression"`
}

// SimpleConfig 描述 simple 轮转器。零值字段使用 xrotate 默认值。
type SimpleConfig struct {
	MaxSizeMB  int  `koanf:"max_size_mb"`
	MaxBackups int  `koanf:"max_backups"`
	MaxAgeDays int  `koanf:"max_age_days"`
	Compress   bool `koanf:"compress"`
	LocalTime  bool `koanf:"local_time"`
}

// Validate 校验配置的结构性约束。装配期错误（如模式解析失败）
// 由 Build 报告。
func (c *FileConfig) Validate() error {
	if len(c.Appenders) == 0 {
		return ErrNoAppenders
	}
	seen := make(map[string]struct{}, len(c.Appenders))
	for i := range c.Appenders {
		a := &c.Appenders[i]
		if a.Name == "" {
			return fmt.Errorf("%w: appenders[%d]", ErrMissingName, i)
		}
		if _, dup := seen[a.Name]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateName, a.Name)
		}
		seen[a.Name] = struct{}{}

		switch a.Kind {
		case KindPolicy:
			if err := a.validatePolicy(); err != nil {
				return err
			}
		case KindSimple:
			if a.Simple == nil {
				return fmt.Errorf("%w: appender %q", ErrMissingSimple, a.Name)
			}
			if a.File == "" {
				return fmt.Errorf("%w: simple appender %q", ErrMissingFile, a.Name)
			}
		default:
			return fmt.Errorf("%w: %q (appender %q)", ErrUnknownKind, a.Kind, a.Name)
		}
	}
	return nil
}

func (a *AppenderConfig) validatePolicy() error {
	p := a.Policy
	if p == nil {
		return fmt.Errorf("%w: appender %q", ErrMissingPolicy, a.Name)
	}
	if _, err := parseCompression(p.Compression); err != nil {
		return fmt.Errorf("%w (appender %q)", err, a.Name)
	}
	if p.TimeBased {
		return nil
	}
	// 固定窗口：需要静态文件和恰好一个触发
	if a.File == "" {
		return fmt.Errorf("%w: fixed window appender %q", ErrMissingFile, a.Name)
	}
	if p.MaxSize == "" && p.Cron == "" {
		return fmt.Errorf("%w: appender %q", ErrMissingTrigger, a.Name)
	}
	if p.MaxSize != "" && p.Cron != "" {
		return fmt.Errorf("%w: appender %q", ErrConflictingTriggers, a.Name)
	}
	return nil
}

// parseCompression 解析压缩方式字符串。
func parseCompression(s string) (xappender.CompressionMode, error) {
	switch s {
	case "", "none":
		return xappender.CompressionNone, nil
	case "gzip", "gz":
		return xappender.CompressionGZIP, nil
	case "zip":
		return xappender.CompressionZIP, nil
	default:
		return xappender.CompressionNone, fmt.Errorf("%w: %q", ErrUnknownCompression, s)
	}
}
