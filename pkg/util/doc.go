// Package util 提供通用工具相关的子包。
//
// 子包列表：
//   - xfile: 文件操作工具，目录创建、路径处理等
//
// 设计原则：
//   - 提供常用的文件和路径操作封装
//   - 安全处理路径遍历和符号链接
//   - 跨平台兼容
package util
