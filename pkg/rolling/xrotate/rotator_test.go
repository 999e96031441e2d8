package xrotate

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// 接口兼容性测试
// =============================================================================

func TestRotatorInterface(t *testing.T) {
	var _ Rotator = (*lumberjackRotator)(nil)
}

// =============================================================================
// 构造与校验测试
// =============================================================================

func TestNewLumberjackDefaults(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "app.log")

	r, err := NewLumberjack(filename)
	require.NoError(t, err)
	defer r.Close()

	_, err = r.Write([]byte("hello\n"))
	require.NoError(t, err)

	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))
}

func TestNewLumberjackWithOptions(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "options.log")

	r, err := NewLumberjack(filename,
		WithMaxSize(50),
		WithMaxBackups(10),
		WithMaxAge(7),
		WithCompress(false),
		WithLocalTime(true),
	)
	require.NoError(t, err)
	defer r.Close()

	_, err = r.Write([]byte("test with options\n"))
	assert.NoError(t, err)
}

func TestNewLumberjackNilOptionIgnored(t *testing.T) {
	r, err := NewLumberjack(filepath.Join(t.TempDir(), "nil_opt.log"), nil, WithMaxSize(50), nil)
	require.NoError(t, err)
	defer r.Close()
}

func TestNewLumberjackValidation(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name     string
		filename string
		opts     []Option
		wantErr  error
	}{
		{"空文件名", "", nil, ErrEmptyFilename},
		{"MaxSize 为零", filepath.Join(dir, "a.log"), []Option{WithMaxSize(0)}, ErrInvalidMaxSize},
		{"MaxSize 超上限", filepath.Join(dir, "a.log"), []Option{WithMaxSize(20000)}, ErrInvalidMaxSize},
		{"MaxBackups 为负", filepath.Join(dir, "a.log"), []Option{WithMaxBackups(-1)}, ErrInvalidMaxBackups},
		{"MaxAge 为负", filepath.Join(dir, "a.log"), []Option{WithMaxAge(-1)}, ErrInvalidMaxAge},
		{"无清理策略", filepath.Join(dir, "a.log"), []Option{WithMaxBackups(0), WithMaxAge(0)}, ErrNoCleanupPolicy},
		{"路径遍历", filepath.Join(dir, "..", "escape.log"), nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLumberjack(tt.filename, tt.opts...)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

// =============================================================================
// 关闭契约测试
// =============================================================================

func TestClosedContract(t *testing.T) {
	r, err := NewLumberjack(filepath.Join(t.TempDir(), "closed.log"))
	require.NoError(t, err)

	_, err = r.Write([]byte("before close\n"))
	require.NoError(t, err)

	require.NoError(t, r.Close())

	_, err = r.Write([]byte("after close\n"))
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, r.Rotate(), ErrClosed)
	assert.ErrorIs(t, r.Close(), ErrClosed)
}

// =============================================================================
// 轮转行为测试
// =============================================================================

func TestManualRotate(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "rotate.log")

	r, err := NewLumberjack(filename, WithCompress(false))
	require.NoError(t, err)
	defer r.Close()

	_, err = r.Write([]byte("first generation\n"))
	require.NoError(t, err)
	require.NoError(t, r.Rotate())
	_, err = r.Write([]byte("second generation\n"))
	require.NoError(t, err)

	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "second generation\n", string(data))

	// 备份文件带时间戳后缀
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestConcurrentWrites(t *testing.T) {
	r, err := NewLumberjack(filepath.Join(t.TempDir(), "conc.log"))
	require.NoError(t, err)
	defer r.Close()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if _, err := r.Write([]byte("concurrent line\n")); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	wg.Wait()
}
