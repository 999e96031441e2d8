// Package xappender 提供策略驱动的滚动文件写入核心。
//
// RollingFileAppender 在每条记录写入前询问触发策略（TriggeringPolicy）
// 是否需要轮转；需要时执行"关闭-物理轮转-重开"协议，把重命名/压缩/清理
// 等物理工作委托给滚动策略（RollingPolicy），自身只负责编排、锁纪律和
// 降级语义。具体策略实现见 xpolicy 包。
//
// # 锁纪律
//
// 两个互斥域，获取顺序固定，从结构上排除死锁：
//
//  1. 触发锁：只在追加路径上获取，保护"触发判定 + 可能的轮转"序列。
//     时间类触发器的语义是"截至本条记录窗口是否已过"，因此触发判定
//     必须严格先于写入，且同一时刻只允许一次轮转判定。
//  2. 流锁：由底层写入器（StreamWriter）暴露，保护关闭/轮转/重开和
//     所有物理写入。追加路径在触发锁内嵌套获取；管理接口 Rollover
//     直接获取流锁，不经过触发锁。
//
// 约束：持有流锁时绝不获取触发锁——轮转逻辑只触碰流锁保护的状态。
//
// # 降级语义
//
//   - 配置错误（缺策略、命名冲突、prudent 与压缩不兼容）：Start 返回
//     类型化错误并记录诊断，写入器保持未启动、可重试，无副作用。
//   - 轮转失败：推迟处理——不传播物理变更，写入器始终以追加模式重开，
//     绝不截断已有内容；记录告警后继续工作。
//   - 重开失败：记录诊断，写入器暂时无可用流，等待下次轮转或重启。
//
// 所有故障都不会中断宿主进程；最坏情况是丢失后续日志输出，
// 绝不会损坏已轮转的文件。
//
// # 冲突检测
//
// 两个写入器配置了结构相同的命名模式时，它们迟早会争抢同一物理文件。
// Registry 是显式传入的冲突注册表（生命周期 = 外围日志上下文）：写入器
// 启动时把自己的命名模式与已注册的模式比对，命中即拒绝启动；成功启动才
// 注册，Stop 时注销。共享同一命名空间的写入器必须共享同一个 Registry。
//
// # 基本用法
//
//	reg := xappender.NewRegistry()
//	a := xappender.New("app",
//	    xappender.WithRegistry(reg),
//	    xappender.WithFile("/var/log/app.log"),
//	)
//	a.SetRollingPolicy(policy)     // 双职责策略会同时装入两个角色
//	if err := a.Start(); err != nil {
//	    // 配置错误，写入器保持未启动
//	}
//	defer a.Stop()
//	a.Append([]byte("hello\n"))
package xappender
