// Package xrotate 提供开箱即用的按大小日志轮转。
//
// 与 xappender + xpolicy 的策略化写入核心相比，xrotate 是简单路径：
// 无命名模式、无冲突检测、无策略组合，只有"超过 N MB 就轮转、按数量
// 和天数清理备份"。大多数单文件日志场景用它就够了；需要时间段归档、
// 固定窗口或多进程 prudent 写入时再用 xappender。
//
// Rotator 实现 [io.WriteCloser]，可直接作为任何日志库的输出目标。
// 底层是 lumberjack v2。
package xrotate
