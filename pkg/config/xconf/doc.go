// Package xconf 提供声明式的写入器配置：从 YAML/JSON 文件描述一组
// 滚动写入器，装配成可整体启动/停止的集合。
//
// 配置结构（YAML 示例）：
//
//	appenders:
//	  - name: access
//	    kind: policy
//	    file: /var/log/app/access.log
//	    policy:
//	      pattern: /var/log/app/access-%i.log
//	      max_size: 10MB
//	      min_index: 1
//	      max_index: 5
//	      compression: gzip
//	  - name: audit
//	    kind: policy
//	    policy:
//	      pattern: /var/log/app/audit-%d{2006-01-02}.log
//	      time_based: true
//	      max_history: 30
//	  - name: debug
//	    kind: simple
//	    file: /var/log/app/debug.log
//	    simple:
//	      max_size_mb: 50
//	      max_backups: 3
//
// kind 为 policy 时装配 xappender + xpolicy 的策略化写入器，
// 为 simple 时装配 xrotate 的 lumberjack 轮转器。
// 同一配置文件内的 policy 写入器共享一个冲突注册表，
// 结构相同的命名模式在 Start 阶段被拒绝。
//
// 底层解析使用 koanf v2，格式按文件扩展名检测。
package xconf
