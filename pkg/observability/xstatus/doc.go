// Package xstatus 提供写入器内部诊断信息的收集与分发。
//
// 滚动写入核心的设计约定是"配置错误不向上层抛出、运行期故障不中断宿主进程"，
// 因此启动校验、轮转失败、重开失败等事件都以诊断条目（Status）的形式记录，
// 而不是直接写日志——写入器本身往往就是日志输出目标，直接写日志会造成递归。
//
// # 组成
//
//   - Status: 一条诊断（级别、来源、消息、可选错误、时间）
//   - Recorder: 有界缓冲的诊断收集器，支持挂接 Listener 实时分发
//   - SlogListener: 将诊断桥接到 log/slog 的 Listener 实现
//
// # 并发安全
//
// Recorder 的所有方法并发安全。Listener 回调在 Add 的调用 goroutine 上
// 同步执行，回调实现不得再向同一写入器写入数据，否则会产生递归。
package xstatus
