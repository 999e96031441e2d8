package xfile

import (
	"fmt"
	"path/filepath"
	"strings"
)

// isSeparator 同时把 '/' 和 '\' 视为分隔符。
// Windows 接受两种分隔符；Linux 上以反斜杠分段的路径几乎总是跨平台
// 拼接错误，统一按分隔符处理可以避免绕过 ".." 段检测。
func isSeparator(c byte) bool {
	return c == '/' || c == '\\'
}

// hasDotDotSegment 检测路径中是否存在恰好为 ".." 的独立路径段。
// 不能用 strings.Contains：会误伤 "app..2024.log" 这类合法文件名。
func hasDotDotSegment(path string) bool {
	start := 0
	for i := 0; i <= len(path); i++ {
		if i < len(path) && !isSeparator(path[i]) {
			continue
		}
		if i-start == 2 && path[start] == '.' && path[start+1] == '.' {
			return true
		}
		start = i + 1
	}
	return false
}

// SanitizePath 对日志文件路径做格式净化。
//
// 检查项：
//   - 空路径、包含空字节的路径被拒绝
//   - 以 "/" 或 "\" 结尾的显式目录路径被拒绝
//   - 规范化后仍包含 ".." 独立段的路径被拒绝（相对路径穿越）
//
// 返回 filepath.Clean 之后的路径。绝对路径是合法输入，其中的 ".."
// 会被 Clean 正常解析，这不属于穿越（见包文档的安全边界说明）。
func SanitizePath(filename string) (string, error) {
	if filename == "" {
		return "", fmt.Errorf("filename is required: %w", ErrEmptyPath)
	}
	if strings.ContainsRune(filename, 0) {
		return "", fmt.Errorf("filename contains null byte: %w", ErrNullByte)
	}

	// 尾部分隔符检查必须先于 Clean，Clean 会移除尾部斜杠
	if n := len(filename); isSeparator(filename[n-1]) {
		return "", fmt.Errorf("path is a directory: %w", ErrInvalidPath)
	}

	cleaned := filepath.Clean(filename)
	if hasDotDotSegment(cleaned) {
		return "", fmt.Errorf("path traversal in filename: %w", ErrPathTraversal)
	}
	if base := filepath.Base(cleaned); base == "." || base == string(filepath.Separator) {
		return "", fmt.Errorf("no file name specified: %w", ErrInvalidPath)
	}
	return cleaned, nil
}
