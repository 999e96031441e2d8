package xrotate

import "io"

// 编译时断言：Rotator 接口是 io.WriteCloser 的超集
var _ io.WriteCloser = (Rotator)(nil)

// Rotator 日志轮转器接口。
//
// 隐式实现 [io.WriteCloser]，可直接用于任何接受 io.Writer 的场景。
// 额外提供 Rotate 方法用于手动触发轮转（如响应 SIGHUP）。
//
// 实现约定：
//   - Write 必须并发安全
//   - Close 后调用 Write 或 Rotate 返回 [ErrClosed]
//   - Rotate 可以在任意时刻调用
type Rotator interface {
	// Write 写入日志数据，触发轮转条件时自动轮转。
	Write(p []byte) (n int, err error)

	// Close 关闭轮转器。重复调用返回 [ErrClosed]。
	Close() error

	// Rotate 手动触发一次轮转。
	Rotate() error
}
