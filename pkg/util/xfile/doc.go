// Package xfile 提供日志文件路径相关的基础工具。
//
// 本包只做两件事：
//
//   - SanitizePath: 路径格式净化（空路径、空字节、相对路径穿越、显式目录路径）
//   - EnsureDir: 确保文件的父目录存在
//
// # 安全边界
//
// SanitizePath 只做格式校验，不做目录隔离：绝对路径（包括其中被
// filepath.Clean 正常解析的 ".."）是合法输入。本包面向可信环境下的
// 日志路径构建；对抗性场景应结合操作系统级别的目录权限控制。
//
// 路径穿越检测按路径段精确匹配：只有 ".." 作为独立段时才被拒绝，
// 形如 "app..2024.log" 的合法文件名不会被误伤。
//
// # 错误处理
//
// 预定义错误变量支持 [errors.Is] 判断：
//
//	_, err := xfile.SanitizePath("../etc/passwd")
//	if errors.Is(err, xfile.ErrPathTraversal) {
//	    // 处理路径穿越
//	}
package xfile
