package xfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultDirPerm 默认目录权限：所有者读写执行，组读执行，其他无权限。
// 符合 gosec G301 建议。
const DefaultDirPerm = 0750

// EnsureDir 确保文件的父目录存在，使用默认权限 0750 创建。
// 目录已存在时不报错，也不会修改已有目录的权限。
func EnsureDir(filename string) error {
	return EnsureDirWithPerm(filename, DefaultDirPerm)
}

// EnsureDirWithPerm 确保文件的父目录存在，使用指定权限创建。
//
// filename 是文件路径而非目录路径；perm 必须包含所有者执行位（0100），
// 否则创建出的目录无法遍历。
//
// 底层使用 os.MkdirAll，会跟随符号链接。不可信输入应先经 [SanitizePath] 校验。
func EnsureDirWithPerm(filename string, perm os.FileMode) error {
	if filename == "" {
		return fmt.Errorf("filename is required: %w", ErrEmptyPath)
	}
	if strings.ContainsRune(filename, 0) {
		return fmt.Errorf("filename contains null byte: %w", ErrNullByte)
	}
	if perm&0100 == 0 {
		return fmt.Errorf("directory permission %04o missing owner execute bit: %w", perm, ErrInvalidPerm)
	}
	dir := filepath.Dir(filename)
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, perm)
}
