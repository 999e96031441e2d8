// xrollctl 是滚动文件写入器的命令行工具。
//
// 用法:
//
//	xrollctl <命令> [命令选项]
//
// 命令:
//
//	validate       校验并试装配配置文件
//	pipe           把标准输入逐行写入滚动文件
//	rollover       对配置中的写入器执行一次手动滚动
//	help           显示帮助信息
//
// pipe 命令说明:
//
//	两种模式二选一：
//	  配置模式: pipe -c conf.yaml [--appender NAME]
//	  快速模式: pipe --file app.log [--max-size 10MB]
//	快速模式按文件名派生归档模式（app-%i.log），使用固定窗口 + 大小触发。
//	收到 SIGINT/SIGTERM 或标准输入 EOF 后停止并落盘。
//
// 退出码:
//
//	0: 命令执行成功（validate: 配置可用）
//	1: 命令执行失败（validate: 配置不可用）
//	2: 参数错误（缺少必需参数、未知命令等）
//
// 示例:
//
//	xrollctl validate -c /etc/xroll/conf.yaml
//	tail -f /var/log/source.log | xrollctl pipe -c conf.yaml --appender app
//	journalctl -f -o cat | xrollctl pipe --file /var/log/app.log --max-size 50MB
//	xrollctl rollover -c conf.yaml --appender app
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

// 版本信息（可通过 -ldflags 注入，例如:
//
//	go build -ldflags "-X main.Version=1.0.0 -X main.GitCommit=$(git rev-parse --short HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// ）。
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

func main() {
	os.Exit(run())
}

// createApp 创建 CLI 应用。
func createApp() *cli.Command {
	return &cli.Command{
		Name:           "xrollctl",
		Usage:          "滚动文件写入器命令行工具",
		Version:        fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
		Commands:       createCommands(),
		DefaultCommand: "help",
		// 设计决策: 禁止 urfave/cli 直接调用 os.Exit，
		// 由 run() 统一处理退出码映射，确保与文档退出码契约一致。
		ExitErrHandler: func(_ context.Context, _ *cli.Command, err error) {
			// ExitCoder 错误（如未知命令）的消息需在此输出，
			// 替代 HandleExitCoder 的默认 os.Exit 行为。
			if _, ok := err.(cli.ExitCoder); ok {
				fmt.Fprintln(os.Stderr, err)
			}
		},
	}
}

func run() int {
	app := createApp()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	setupSignalHandler(cancel)

	if err := app.Run(ctx, os.Args); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			return exitErr.code
		}
		var usageErr *usageError
		if errors.As(err, &usageErr) {
			fmt.Fprintf(os.Stderr, "参数错误: %v\n", usageErr)
			return 2
		}
		// CLI 框架产生的参数错误（如未知 flag、未知命令）也返回退出码 2，
		// 与文档契约"参数错误 → 退出码 2"保持一致。
		if isCLIUsageError(err) {
			// ExitErrHandler 或 flag 解析器已向 stderr 输出错误详情，此处仅设置退出码
			return 2
		}
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		return 1
	}

	return 0
}
