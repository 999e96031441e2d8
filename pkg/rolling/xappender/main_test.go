package xappender

import (
	"testing"

	"go.uber.org/goleak"
)

// TestMain 在所有测试完成后检测 goroutine 泄漏。
// 写入器的移动监视协程必须随 Stop 退出，任何残留都视为测试失败。
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
