// Package xpolicy 提供 xappender 的标准策略实现。
//
// 命名模式：
//   - Pattern 解析 "app-%d{2006-01-02}-%i.log" 形式的命名模式，
//     支持 %d（时间段）、%i（窗口序号）与 %% 转义。
//
// 触发策略：
//   - SizeTrigger 基于活动文件字节数触发（判定含待写记录的长度）。
//   - CronTrigger 按 cron 表达式的时刻边界触发。
//
// 滚动策略：
//   - FixedWindowPolicy 固定窗口轮转：归档按 %i 序号滑动重命名，
//     序号越小越新，超出窗口上限的归档被删除。需要静态活动文件。
//   - TimeBasedPolicy 双职责策略：既按时间段边界触发，也完成归档与
//     历史清理，可独立充当触发策略与滚动策略。
//
// 归档可选 gzip 或 zip 压缩，压缩失败按轮转失败推迟处理。
package xpolicy
