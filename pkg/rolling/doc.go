// Package rolling 提供滚动文件写入相关的子包。
//
// 子包列表：
//   - xappender: 滚动文件写入器，触发检测、滚动协调、冲突检测
//   - xpolicy: 触发与滚动策略，大小/cron 触发、固定窗口、时间段策略
//   - xrotate: 简单按大小轮转的 io.WriteCloser，基于 lumberjack
//
// 选型建议：
//   - 只需要“文件太大就切”的场景用 xrotate
//   - 需要命名模式、时间段归档、压缩和保留策略的场景用 xappender + xpolicy
package rolling
