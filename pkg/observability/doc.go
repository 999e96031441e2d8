// Package observability 提供可观测性相关的子包。
//
// 子包列表：
//   - xstatus: 写入器诊断状态记录，有界缓冲 + 监听器分发
//
// 设计原则：
//   - 写入器内部故障通过状态条目暴露，不打断写入路径
//   - 指标遵循 OpenTelemetry 语义规范
//   - 支持桥接到 log/slog 结构化日志
package observability
