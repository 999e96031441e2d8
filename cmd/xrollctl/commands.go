package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/omeyang/xroll/pkg/config/xconf"
	"github.com/omeyang/xroll/pkg/observability/xstatus"
)

// 快速模式的默认大小阈值。
const defaultQuickMaxSize = "100MB"

// pipe 单行记录的上限，超长行会被 bufio.Scanner 拒绝。
const maxLineBytes = 1 << 20

// exitError 表示需要非零退出码但已完成输出的场景。
// 命令内部已完成所有输出，main 只需设置退出码。
type exitError struct {
	code int
}

func (e *exitError) Error() string { return "" }

// usageError 表示参数错误，映射到退出码 2。
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

// isCLIUsageError 识别 urfave/cli 框架产生的参数错误。
// 框架对未知命令返回 ExitCoder，对 flag 解析失败返回普通 error，
// 两类都按参数错误对待。
func isCLIUsageError(err error) bool {
	if _, ok := err.(cli.ExitCoder); ok {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "flag provided but not defined") ||
		strings.Contains(msg, "invalid value") ||
		strings.Contains(msg, "No help topic")
}

// setupSignalHandler 设置信号处理。
// 设计决策: 第一次信号优雅取消，第二次信号强制退出（退出码 130 = 128 + SIGINT）。
// pipe 命令阻塞在标准输入读取时，用户可通过再次 Ctrl+C 强制退出。
func setupSignalHandler(cancel context.CancelFunc) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel() // 第一次信号: 优雅取消

		<-sigCh
		signal.Stop(sigCh) // 回收订阅
		os.Exit(130)       // 第二次信号: 强制退出
	}()
}

// 创建所有子命令。
func createCommands() []*cli.Command {
	return []*cli.Command{
		createValidateCommand(),
		createPipeCommand(),
		createRolloverCommand(),
	}
}

func configFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "配置文件路径（.yaml/.yml/.json）",
	}
}

func appenderFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "appender",
		Aliases: []string{"a"},
		Usage:   "目标写入器名称（默认取配置中的第一个）",
	}
}

// createValidateCommand 创建 validate 子命令。
func createValidateCommand() *cli.Command {
	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "校验并试装配配置文件",
		Flags:   []cli.Flag{configFlag()},
		Action: func(_ context.Context, cmd *cli.Command) error {
			return cmdValidate(cmd.String("config"), os.Stdout)
		},
	}
}

// createPipeCommand 创建 pipe 子命令。
func createPipeCommand() *cli.Command {
	return &cli.Command{
		Name:  "pipe",
		Usage: "把标准输入逐行写入滚动文件",
		Flags: []cli.Flag{
			configFlag(),
			appenderFlag(),
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "快速模式: 活动文件路径（与 --config 互斥）",
			},
			&cli.StringFlag{
				Name:  "max-size",
				Usage: "快速模式: 大小触发阈值",
				Value: defaultQuickMaxSize,
			},
			&cli.StringFlag{
				Name:  "compression",
				Usage: "快速模式: 归档压缩方式（none/gzip/zip）",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cmdPipe(ctx, pipeOptions{
				configPath:  cmd.String("config"),
				appender:    cmd.String("appender"),
				quickFile:   cmd.String("file"),
				maxSize:     cmd.String("max-size"),
				compression: cmd.String("compression"),
			}, os.Stdin, os.Stderr)
		},
	}
}

// createRolloverCommand 创建 rollover 子命令。
func createRolloverCommand() *cli.Command {
	return &cli.Command{
		Name:  "rollover",
		Usage: "对配置中的写入器执行一次手动滚动",
		Flags: []cli.Flag{configFlag(), appenderFlag()},
		Action: func(_ context.Context, cmd *cli.Command) error {
			return cmdRollover(cmd.String("config"), cmd.String("appender"), os.Stdout)
		},
	}
}

// cmdValidate 校验配置：加载、装配、启动、停止各走一遍，
// 并输出启动期间积累的诊断信息。
func cmdValidate(configPath string, out io.Writer) error {
	if configPath == "" {
		return &usageError{msg: "validate 需要 --config 参数"}
	}

	cfg, err := xconf.Load(configPath)
	if err != nil {
		fmt.Fprintf(out, "配置不可用: %v\n", err)
		return &exitError{code: 1}
	}

	recorder := xstatus.NewRecorder()
	set, err := xconf.Build(cfg, xconf.WithStatusRecorder(recorder))
	if err != nil {
		fmt.Fprintf(out, "装配失败: %v\n", err)
		return &exitError{code: 1}
	}

	startErr := set.Start()
	printDiagnostics(out, recorder)
	if startErr != nil {
		fmt.Fprintf(out, "启动失败: %v\n", startErr)
		return &exitError{code: 1}
	}

	for _, target := range set.Targets() {
		fmt.Fprintf(out, "OK %s (kind=%s)\n", target.Name, target.Kind)
	}
	if err := set.Stop(); err != nil {
		fmt.Fprintf(out, "停止失败: %v\n", err)
		return &exitError{code: 1}
	}
	return nil
}

type pipeOptions struct {
	configPath  string
	appender    string
	quickFile   string
	maxSize     string
	compression string
}

// cmdPipe 把标准输入逐行写入目标写入器，EOF 或收到取消信号后停止。
func cmdPipe(ctx context.Context, opts pipeOptions, in io.Reader, errOut io.Writer) error {
	cfg, err := pipeConfig(opts)
	if err != nil {
		return err
	}

	set, err := xconf.Build(cfg)
	if err != nil {
		return err
	}
	if err := set.Start(); err != nil {
		return err
	}
	defer func() { _ = set.Stop() }() //nolint:errcheck // defer cleanup: 正常路径已显式 Stop

	target, err := pickTarget(set, opts.appender)
	if err != nil {
		return err
	}

	var appended int64
	eg, egCtx := errgroup.WithContext(ctx)
	lines := make(chan []byte)

	// 读取 goroutine: 标准输入阻塞读取无法被 context 中断，
	// 取消后由第二次信号强制退出兜底。
	eg.Go(func() error {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
		for scanner.Scan() {
			line := append([]byte(nil), scanner.Bytes()...)
			select {
			case lines <- append(line, '\n'):
			case <-egCtx.Done():
				return egCtx.Err()
			}
		}
		return scanner.Err()
	})

	eg.Go(func() error {
		for {
			select {
			case line, ok := <-lines:
				if !ok {
					return nil
				}
				if err := target.Append(line); err != nil {
					return err
				}
				appended++
			case <-egCtx.Done():
				return egCtx.Err()
			}
		}
	})

	waitErr := eg.Wait()
	fmt.Fprintf(errOut, "已写入 %d 行 → %s\n", appended, target.Name)
	if stopErr := set.Stop(); stopErr != nil {
		return stopErr
	}
	// 信号取消是正常停止路径，不算失败
	if waitErr != nil && ctx.Err() == nil {
		return waitErr
	}
	return nil
}

// pipeConfig 按参数组合选择配置来源：配置文件或快速模式。
func pipeConfig(opts pipeOptions) (*xconf.FileConfig, error) {
	switch {
	case opts.configPath != "" && opts.quickFile != "":
		return nil, &usageError{msg: "--config 与 --file 互斥"}
	case opts.configPath != "":
		return xconf.Load(opts.configPath)
	case opts.quickFile != "":
		return quickConfig(opts), nil
	default:
		return nil, &usageError{msg: "pipe 需要 --config 或 --file 参数"}
	}
}

// quickConfig 由 --file 派生一份单写入器配置：固定窗口 + 大小触发，
// 归档模式按文件名插入序号（app.log → app-%i.log）。
func quickConfig(opts pipeOptions) *xconf.FileConfig {
	maxSize := opts.maxSize
	if maxSize == "" {
		maxSize = defaultQuickMaxSize
	}
	return &xconf.FileConfig{Appenders: []xconf.AppenderConfig{{
		Name: "pipe-" + uuid.NewString()[:8],
		Kind: xconf.KindPolicy,
		File: opts.quickFile,
		Policy: &xconf.PolicyConfig{
			Pattern:     deriveArchivePattern(opts.quickFile),
			MaxSize:     maxSize,
			Compression: opts.compression,
		},
	}}}
}

// deriveArchivePattern 在扩展名前插入 %i 序号（无扩展名时直接追加）。
func deriveArchivePattern(file string) string {
	ext := filepath.Ext(file)
	return strings.TrimSuffix(file, ext) + "-%i" + ext
}

// cmdRollover 对目标写入器执行一次手动滚动。
func cmdRollover(configPath, appender string, out io.Writer) error {
	if configPath == "" {
		return &usageError{msg: "rollover 需要 --config 参数"}
	}

	cfg, err := xconf.Load(configPath)
	if err != nil {
		return err
	}
	set, err := xconf.Build(cfg)
	if err != nil {
		return err
	}
	if err := set.Start(); err != nil {
		return err
	}
	defer func() { _ = set.Stop() }() //nolint:errcheck // defer cleanup: 正常路径已显式 Stop

	target, err := pickTarget(set, appender)
	if err != nil {
		return err
	}
	if err := target.Rollover(); err != nil {
		return err
	}
	fmt.Fprintf(out, "已滚动 %s\n", target.Name)
	return set.Stop()
}

// pickTarget 按名称选择写入目标，名称为空时取第一个。
func pickTarget(set *xconf.Set, name string) (*xconf.Target, error) {
	if name == "" {
		targets := set.Targets()
		if len(targets) == 0 {
			return nil, &usageError{msg: "配置中没有写入器"}
		}
		return targets[0], nil
	}
	target := set.Target(name)
	if target == nil {
		return nil, &usageError{msg: fmt.Sprintf("写入器 %q 不存在", name)}
	}
	return target, nil
}

// printDiagnostics 输出诊断记录器积累的状态条目。
func printDiagnostics(out io.Writer, recorder *xstatus.Recorder) {
	for _, st := range recorder.All() {
		if st.Err != nil {
			fmt.Fprintf(out, "[%s] %s: %s (%v)\n", st.Level, st.Origin, st.Message, st.Err)
			continue
		}
		fmt.Fprintf(out, "[%s] %s: %s\n", st.Level, st.Origin, st.Message)
	}
}
