package xappender

import (
	"bufio"
	"fmt"
	"os"
	"sync"

	"github.com/omeyang/xroll/pkg/util/xfile"
)

// StreamWriter 是底层单文件写入器的契约：持有输出流，负责字节级写入
// 与文件开/关原语，并暴露供轮转协议使用的流锁。
//
// 调用约定：除 Lock/Unlock 外的所有方法都必须在持有流锁时调用。
// 写入核心是锁的唯一编排者——追加路径在流锁内写入，轮转协议在流锁内
// 完成"关闭-轮转-重开"的整个序列，两者天然互斥。
type StreamWriter interface {
	sync.Locker

	// OpenFile 打开 path 作为输出流。已有流会被先关闭。
	// 始终以追加模式打开：滚动写入器绝不允许截断既有文件。
	OpenFile(path string) error

	// CloseStream 关闭当前输出流。重复关闭是安全的空操作。
	CloseStream() error

	// Write 向当前输出流追加 p。没有已打开的流时返回 [ErrNoOpenStream]。
	Write(p []byte) (n int, err error)
}

// DefaultFilePerm 默认日志文件权限。
const DefaultFilePerm os.FileMode = 0600

// FileWriter 是 StreamWriter 的默认实现。
//
// 普通模式下持有专属文件句柄，可选 bufio 缓冲；prudent 模式下
// 每次写入都重新打开-追加-关闭，不固定句柄，以容忍其他进程对
// 活动文件的并发重命名。
type FileWriter struct {
	mu sync.Mutex

	path string
	file *os.File
	buf  *bufio.Writer

	bufferSize int
	perm       os.FileMode
	prudent    bool
}

// FileWriterOption 配置 FileWriter。
type FileWriterOption func(*FileWriter)

// WithFileBufferSize 设置写缓冲大小。0（默认）表示不缓冲，每次写入
// 直达文件，外部读取方能立即看到内容。
func WithFileBufferSize(n int) FileWriterOption {
	return func(w *FileWriter) {
		if n > 0 {
			w.bufferSize = n
		}
	}
}

// WithFilePerm 设置新建日志文件的权限位。默认 [DefaultFilePerm]。
func WithFilePerm(perm os.FileMode) FileWriterOption {
	return func(w *FileWriter) {
		if perm != 0 {
			w.perm = perm
		}
	}
}

// WithPrudentWrites 启用 prudent 写入：不固定句柄、每次写入独立打开。
// prudent 模式下缓冲配置被忽略。
func WithPrudentWrites(enabled bool) FileWriterOption {
	return func(w *FileWriter) {
		w.prudent = enabled
	}
}

// NewFileWriter 创建默认的单文件写入器。
func NewFileWriter(opts ...FileWriterOption) *FileWriter {
	w := &FileWriter{perm: DefaultFilePerm}
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}
	return w
}

// Lock 获取流锁。
func (w *FileWriter) Lock() { w.mu.Lock() }

// Unlock 释放流锁。
func (w *FileWriter) Unlock() { w.mu.Unlock() }

// OpenFile 打开 path 作为输出流。调用方必须持有流锁。
//
// 路径先经 xfile 净化并确保父目录存在。prudent 模式下只做一次
// 探测性打开以尽早暴露权限问题，不保留句柄。
func (w *FileWriter) OpenFile(path string) error {
	safePath, err := xfile.SanitizePath(path)
	if err != nil {
		return err
	}
	if err := xfile.EnsureDir(safePath); err != nil {
		return err
	}

	if err := w.closeLocked(); err != nil {
		return err
	}

	f, err := os.OpenFile(safePath, os.O_WRONLY|os.O_APPEND|os.O_CREATE, w.perm)
	if err != nil {
		return err
	}

	if w.prudent {
		// 不固定句柄，探测成功即关闭
		if err := f.Close(); err != nil {
			return err
		}
		w.path = safePath
		return nil
	}

	w.file = f
	w.path = safePath
	if w.bufferSize > 0 {
		w.buf = bufio.NewWriterSize(f, w.bufferSize)
	}
	return nil
}

// CloseStream 关闭当前输出流。调用方必须持有流锁。重复关闭是安全的。
func (w *FileWriter) CloseStream() error {
	return w.closeLocked()
}

func (w *FileWriter) closeLocked() error {
	if w.buf != nil {
		if err := w.buf.Flush(); err != nil {
			// 冲刷失败也要继续关闭句柄，避免泄漏
			w.buf = nil
			if w.file != nil {
				closeErr := w.file.Close()
				w.file = nil
				if closeErr != nil {
					return fmt.Errorf("flush: %w; close: %w", err, closeErr)
				}
			}
			return err
		}
		w.buf = nil
	}
	if w.file != nil {
		err := w.file.Close()
		w.file = nil
		return err
	}
	return nil
}

// Write 追加 p。调用方必须持有流锁。
func (w *FileWriter) Write(p []byte) (int, error) {
	if w.prudent {
		return w.prudentWrite(p)
	}
	if w.file == nil {
		return 0, ErrNoOpenStream
	}
	if w.buf != nil {
		return w.buf.Write(p)
	}
	return w.file.Write(p)
}

// prudentWrite 以"打开-追加-关闭"的方式写入一条记录。
// O_APPEND 由内核保证原子追加，多进程并发写同一文件不会交错损坏。
func (w *FileWriter) prudentWrite(p []byte) (int, error) {
	if w.path == "" {
		return 0, ErrNoOpenStream
	}
	f, err := os.OpenFile(w.path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, w.perm)
	if err != nil {
		return 0, err
	}
	n, err := f.Write(p)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	return n, err
}

// 编译时断言：FileWriter 满足 StreamWriter 契约
var _ StreamWriter = (*FileWriter)(nil)
