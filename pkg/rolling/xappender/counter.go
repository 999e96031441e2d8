package xappender

import "sync/atomic"

// LengthCounter 是活动文件的字节计数器，供基于大小的触发策略使用。
//
// 计数器由触发策略持有，但只由写入核心推进：每次物理写入成功后累加
// 本次写入的字节数；重开活动文件时重置并按磁盘上的实际大小重新初始化，
// 保证大小触发在进程重启和轮转推迟之后仍然准确。
type LengthCounter struct {
	n atomic.Int64
}

// Add 累加 n 字节。n <= 0 时为空操作（零长度记录不计数）。
// nil 接收者上调用是安全的空操作。
func (c *LengthCounter) Add(n int64) {
	if c == nil || n <= 0 {
		return
	}
	c.n.Add(n)
}

// Size 返回当前累计字节数。nil 接收者返回 0。
func (c *LengthCounter) Size() int64 {
	if c == nil {
		return 0
	}
	return c.n.Load()
}

// Reset 将计数归零。nil 接收者上调用是安全的空操作。
func (c *LengthCounter) Reset() {
	if c == nil {
		return
	}
	c.n.Store(0)
}
