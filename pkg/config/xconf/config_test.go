package xconf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/xroll/pkg/rolling/xappender"
)

func policyAppender(name string, mutate func(*AppenderConfig)) AppenderConfig {
	a := AppenderConfig{
		Name: name,
		Kind: KindPolicy,
		File: "/var/log/" + name + ".log",
		Policy: &PolicyConfig{
			Pattern: "/var/log/" + name + "-%i.log",
			MaxSize: "10MB",
		},
	}
	if mutate != nil {
		mutate(&a)
	}
	return a
}

// =============================================================================
// 校验测试
// =============================================================================

func TestFileConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     FileConfig
		wantErr error
	}{
		{
			name:    "没有写入器",
			cfg:     FileConfig{},
			wantErr: ErrNoAppenders,
		},
		{
			name:    "缺少 name",
			cfg:     FileConfig{Appenders: []AppenderConfig{policyAppender("", nil)}},
			wantErr: ErrMissingName,
		},
		{
			name: "名称重复",
			cfg: FileConfig{Appenders: []AppenderConfig{
				policyAppender("app", nil),
				policyAppender("app", nil),
			}},
			wantErr: ErrDuplicateName,
		},
		{
			name: "未知 kind",
			cfg: FileConfig{Appenders: []AppenderConfig{
				{Name: "app", Kind: "mystery"},
			}},
			wantErr: ErrUnknownKind,
		},
		{
			name: "policy 缺少策略段",
			cfg: FileConfig{Appenders: []AppenderConfig{
				{Name: "app", Kind: KindPolicy, File: "/var/log/app.log"},
			}},
			wantErr: ErrMissingPolicy,
		},
		{
			name: "固定窗口缺少 file",
			cfg: FileConfig{Appenders: []AppenderConfig{
				policyAppender("app", func(a *AppenderConfig) { a.File = "" }),
			}},
			wantErr: ErrMissingFile,
		},
		{
			name: "固定窗口缺少触发",
			cfg: FileConfig{Appenders: []AppenderConfig{
				policyAppender("app", func(a *AppenderConfig) { a.Policy.MaxSize = "" }),
			}},
			wantErr: ErrMissingTrigger,
		},
		{
			name: "max_size 与 cron 互斥",
			cfg: FileConfig{Appenders: []AppenderConfig{
				policyAppender("app", func(a *AppenderConfig) { a.Policy.Cron = "0 * * * *" }),
			}},
			wantErr: ErrConflictingTriggers,
		},
		{
			name: "未知压缩方式",
			cfg: FileConfig{Appenders: []AppenderConfig{
				policyAppender("app", func(a *AppenderConfig) { a.Policy.Compression = "brotli" }),
			}},
			wantErr: ErrUnknownCompression,
		},
		{
			name: "时间策略无需 file 和触发",
			cfg: FileConfig{Appenders: []AppenderConfig{
				{
					Name:   "app",
					Kind:   KindPolicy,
					Policy: &PolicyConfig{Pattern: "app-%d{2006-01-02}.log", TimeBased: true},
				},
			}},
		},
		{
			name: "simple 缺少配置段",
			cfg: FileConfig{Appenders: []AppenderConfig{
				{Name: "app", Kind: KindSimple, File: "/var/log/app.log"},
			}},
			wantErr: ErrMissingSimple,
		},
		{
			name: "simple 缺少 file",
			cfg: FileConfig{Appenders: []AppenderConfig{
				{Name: "app", Kind: KindSimple, Simple: &SimpleConfig{}},
			}},
			wantErr: ErrMissingFile,
		},
		{
			name: "合法的混合配置",
			cfg: FileConfig{Appenders: []AppenderConfig{
				policyAppender("app", nil),
				{Name: "audit", Kind: KindSimple, File: "/var/log/audit.log", Simple: &SimpleConfig{}},
			}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

// =============================================================================
// 压缩方式解析测试
// =============================================================================

func TestParseCompression(t *testing.T) {
	tests := []struct {
		input   string
		want    xappender.CompressionMode
		wantErr bool
	}{
		{input: "", want: xappender.CompressionNone},
		{input: "none", want: xappender.CompressionNone},
		{input: "gzip", want: xappender.CompressionGZIP},
		{input: "gz", want: xappender.CompressionGZIP},
		{input: "zip", want: xappender.CompressionZIP},
		{input: "GZIP", wantErr: true},
		{input: "brotli", wantErr: true},
	}
	for _, tt := range tests {
		t.Run("input="+tt.input, func(t *testing.T) {
			got, err := parseCompression(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownCompression)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
