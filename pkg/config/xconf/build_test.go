package xconf

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/xroll/pkg/observability/xstatus"
	"github.com/omeyang/xroll/pkg/rolling/xappender"
	"github.com/omeyang/xroll/pkg/rolling/xpolicy"
)

// =============================================================================
// 装配测试
// =============================================================================

func TestBuildNilConfig(t *testing.T) {
	_, err := Build(nil)
	assert.ErrorIs(t, err, ErrNoAppenders)
}

func TestBuildValidatesConfig(t *testing.T) {
	_, err := Build(&FileConfig{Appenders: []AppenderConfig{{Name: "a", Kind: "mystery"}}})
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestBuildConstructionErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		mutate  func(*AppenderConfig)
		wantErr error
	}{
		{
			name:    "固定窗口模式缺少 %i",
			mutate:  func(a *AppenderConfig) { a.Policy.Pattern = filepath.Join(dir, "app-static.log") },
			wantErr: xpolicy.ErrMissingIndexToken,
		},
		{
			name:    "非法的 max_size",
			mutate:  func(a *AppenderConfig) { a.Policy.MaxSize = "10 bananas" },
			wantErr: xpolicy.ErrInvalidSize,
		},
		{
			name: "非法的 cron 表达式",
			mutate: func(a *AppenderConfig) {
				a.Policy.MaxSize = ""
				a.Policy.Cron = "not a cron"
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &FileConfig{Appenders: []AppenderConfig{{
				Name: "app",
				Kind: KindPolicy,
				File: filepath.Join(dir, "app.log"),
				Policy: &PolicyConfig{
					Pattern: filepath.Join(dir, "app-%i.log"),
					MaxSize: "10MB",
				},
			}}}
			tt.mutate(&cfg.Appenders[0])

			_, err := Build(cfg)
			require.Error(t, err)
			assert.ErrorContains(t, err, `appender "app"`)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestBuildAppliesOptions(t *testing.T) {
	dir := t.TempDir()
	registry := xappender.NewRegistry()
	recorder := xstatus.NewRecorder()

	cfg, err := LoadBytes(fmt.Appendf(nil, `
appenders:
  - name: app
    kind: policy
    file: %s/app.log
    policy:
      pattern: %s/app-%%i.log
      max_size: 10MB
`, dir, dir), FormatYAML)
	require.NoError(t, err)

	set, err := Build(cfg, WithRegistry(registry), WithStatusRecorder(recorder), nil)
	require.NoError(t, err)
	assert.Same(t, registry, set.Registry())
	assert.Same(t, recorder, set.Status())

	// 不传选项时自建注册表和记录器
	set2, err := Build(cfg)
	require.NoError(t, err)
	assert.NotNil(t, set2.Registry())
	assert.NotNil(t, set2.Status())
	assert.NotSame(t, registry, set2.Registry())
}

// =============================================================================
// 集合启停端到端测试
// =============================================================================

func TestSetStartStopMixed(t *testing.T) {
	dir := t.TempDir()
	yamlCfg := fmt.Appendf(nil, `
appenders:
  - name: app
    kind: policy
    file: %[1]s/app.log
    policy:
      pattern: %[1]s/app-%%i.log
      max_size: 1KB
      min_index: 1
      max_index: 3
  - name: audit
    kind: simple
    file: %[1]s/audit.log
    simple:
      max_size_mb: 1
      max_backups: 2
`, dir)

	cfg, err := LoadBytes(yamlCfg, FormatYAML)
	require.NoError(t, err)

	set, err := Build(cfg)
	require.NoError(t, err)
	require.NoError(t, set.Start())

	require.NoError(t, set.Target("app").Append([]byte("policy line\n")))
	require.NoError(t, set.Target("audit").Append([]byte("simple line\n")))

	require.NoError(t, set.Stop())

	data, err := os.ReadFile(filepath.Join(dir, "app.log"))
	require.NoError(t, err)
	assert.Equal(t, "policy line\n", string(data))

	data, err = os.ReadFile(filepath.Join(dir, "audit.log"))
	require.NoError(t, err)
	assert.Equal(t, "simple line\n", string(data))

	t.Run("Start 幂等", func(t *testing.T) {
		set2, err := Build(cfg)
		require.NoError(t, err)
		require.NoError(t, set2.Start())
		assert.NoError(t, set2.Start())
		require.NoError(t, set2.Stop())
	})

	t.Run("Stop 幂等", func(t *testing.T) {
		assert.NoError(t, set.Stop())
	})
}

func TestSetManualRollover(t *testing.T) {
	dir := t.TempDir()
	cfg := &FileConfig{Appenders: []AppenderConfig{{
		Name: "app",
		Kind: KindPolicy,
		File: filepath.Join(dir, "app.log"),
		Policy: &PolicyConfig{
			// min_index/max_index 省略，用默认窗口 [1, 7]
			Pattern: filepath.Join(dir, "app-%i.log"),
			MaxSize: "10MB",
		},
	}}}

	set, err := Build(cfg)
	require.NoError(t, err)
	require.NoError(t, set.Start())
	defer set.Stop()

	target := set.Target("app")
	require.NoError(t, target.Append([]byte("before rollover\n")))
	require.NoError(t, target.Rollover())
	require.NoError(t, target.Append([]byte("after rollover\n")))

	archived, err := os.ReadFile(filepath.Join(dir, "app-1.log"))
	require.NoError(t, err)
	assert.Equal(t, "before rollover\n", string(archived))

	active, err := os.ReadFile(filepath.Join(dir, "app.log"))
	require.NoError(t, err)
	assert.Equal(t, "after rollover\n", string(active))
}

func TestSetTimeBased(t *testing.T) {
	dir := t.TempDir()
	cfg := &FileConfig{Appenders: []AppenderConfig{{
		Name: "daily",
		Kind: KindPolicy,
		File: filepath.Join(dir, "daily.log"),
		Policy: &PolicyConfig{
			Pattern:    filepath.Join(dir, "daily-%d{2006-01-02}.log"),
			TimeBased:  true,
			MaxHistory: 7,
		},
	}}}

	set, err := Build(cfg)
	require.NoError(t, err)
	require.NoError(t, set.Start())
	require.NoError(t, set.Target("daily").Append([]byte("hello\n")))
	require.NoError(t, set.Stop())

	data, err := os.ReadFile(filepath.Join(dir, "daily.log"))
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))
}

func TestSetStartCollisionRollsBack(t *testing.T) {
	dir := t.TempDir()
	pattern := filepath.Join(dir, "shared-%i.log")
	cfg := &FileConfig{Appenders: []AppenderConfig{
		{
			Name:   "first",
			Kind:   KindPolicy,
			File:   filepath.Join(dir, "first.log"),
			Policy: &PolicyConfig{Pattern: pattern, MaxSize: "10MB"},
		},
		{
			Name:   "second",
			Kind:   KindPolicy,
			File:   filepath.Join(dir, "second.log"),
			Policy: &PolicyConfig{Pattern: pattern, MaxSize: "10MB"},
		},
	}}

	set, err := Build(cfg)
	require.NoError(t, err)

	err = set.Start()
	require.Error(t, err)
	assert.ErrorIs(t, err, xappender.ErrCollision)
	assert.ErrorContains(t, err, `"second"`)

	// 回滚后注册表不残留已停写入器的模式
	assert.Equal(t, 0, set.Registry().Len())
}

// =============================================================================
// 查询接口测试
// =============================================================================

func TestSetAccessors(t *testing.T) {
	dir := t.TempDir()
	cfg := &FileConfig{Appenders: []AppenderConfig{
		{
			Name:   "app",
			Kind:   KindPolicy,
			File:   filepath.Join(dir, "app.log"),
			Policy: &PolicyConfig{Pattern: filepath.Join(dir, "app-%i.log"), MaxSize: "10MB"},
		},
		{Name: "audit", Kind: KindSimple, File: filepath.Join(dir, "audit.log"), Simple: &SimpleConfig{}},
	}}

	set, err := Build(cfg)
	require.NoError(t, err)
	defer set.Stop()

	targets := set.Targets()
	require.Len(t, targets, 2)
	assert.Equal(t, "app", targets[0].Name)
	assert.Equal(t, "audit", targets[1].Name)

	app := set.Target("app")
	require.NotNil(t, app)
	assert.Equal(t, KindPolicy, app.Kind)
	assert.NotNil(t, app.Appender)
	assert.Nil(t, app.Rotator)

	audit := set.Target("audit")
	require.NotNil(t, audit)
	assert.Equal(t, KindSimple, audit.Kind)
	assert.NotNil(t, audit.Rotator)

	assert.Nil(t, set.Target("missing"))
}
