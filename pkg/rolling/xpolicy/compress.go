package xpolicy

import (
	"archive/zip"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/omeyang/xroll/pkg/rolling/xappender"
)

// archiveSuffix 返回压缩方式对应的归档后缀。
func archiveSuffix(mode xappender.CompressionMode) string {
	switch mode {
	case xappender.CompressionGZIP:
		return ".gz"
	case xappender.CompressionZIP:
		return ".zip"
	default:
		return ""
	}
}

// compressFile 把 src 压缩为 dst 并删除 src。
// mode 为 None 时要求 src == dst，是空操作。
func compressFile(mode xappender.CompressionMode, src, dst string) error {
	switch mode {
	case xappender.CompressionNone:
		return nil
	case xappender.CompressionGZIP:
		return gzipFile(src, dst)
	case xappender.CompressionZIP:
		return zipFile(src, dst)
	default:
		return fmt.Errorf("xpolicy: unsupported compression mode %v", mode)
	}
}

func gzipFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}

	zw := gzip.NewWriter(out)
	zw.Name = filepath.Base(src)
	if _, err := io.Copy(zw, in); err != nil {
		_ = zw.Close()
		_ = out.Close()
		_ = os.Remove(dst)
		return err
	}
	if err := zw.Close(); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(dst)
		return err
	}
	return os.Remove(src)
}

func zipFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}

	zw := zip.NewWriter(out)
	header, err := zip.FileInfoHeader(info)
	if err == nil {
		header.Name = filepath.Base(src)
		header.Method = zip.Deflate
		var entry io.Writer
		if entry, err = zw.CreateHeader(header); err == nil {
			_, err = io.Copy(entry, in)
		}
	}
	if err != nil {
		_ = zw.Close()
		_ = out.Close()
		_ = os.Remove(dst)
		return err
	}
	if err := zw.Close(); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(dst)
		return err
	}
	return os.Remove(src)
}
