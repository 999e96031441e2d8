package xpolicy

import (
	"fmt"
	"time"
)

// 演示命名模式的展开。
func ExamplePattern_Format() {
	p, err := NewPattern("logs/app-%d{2006-01-02}-%i.log")
	if err != nil {
		fmt.Println(err)
		return
	}
	at := time.Date(2026, 8, 29, 14, 0, 0, 0, time.UTC)
	fmt.Println(p.Format(at, 3))
	// Output:
	// logs/app-2026-08-29-3.log
}

// 演示大小表达式解析。
func ExampleParseSize() {
	n, err := ParseSize("10MB")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(n)
	// Output:
	// 10485760
}
