package xconf

import "errors"

// 配置加载和解析错误
var (
	// ErrEmptyPath 配置文件路径为空
	ErrEmptyPath = errors.New("xconf: empty config path")

	// ErrUnsupportedFormat 不支持的配置格式
	ErrUnsupportedFormat = errors.New("xconf: unsupported config format")

	// ErrLoadFailed 配置加载失败
	ErrLoadFailed = errors.New("xconf: failed to load config")

	// ErrParseFailed 配置解析失败
	ErrParseFailed = errors.New("xconf: failed to parse config")

	// ErrUnmarshalFailed 配置反序列化失败
	ErrUnmarshalFailed = errors.New("xconf: failed to unmarshal config")
)

// 配置校验错误
var (
	// ErrNoAppenders 配置里没有任何写入器
	ErrNoAppenders = errors.New("xconf: no appenders configured")

	// ErrMissingName 写入器缺少 name
	ErrMissingName = errors.New("xconf: appender name is required")

	// ErrDuplicateName 写入器名称重复
	ErrDuplicateName = errors.New("xconf: duplicate appender name")

	// ErrUnknownKind 未知的写入器 kind
	ErrUnknownKind = errors.New("xconf: unknown appender kind")

	// ErrMissingPolicy kind 为 policy 但缺少 policy 配置段
	ErrMissingPolicy = errors.New("xconf: policy section is required for kind \"policy\"")

	// ErrMissingSimple kind 为 simple 但缺少 simple 配置段
	ErrMissingSimple = errors.New("xconf: simple section is required for kind \"simple\"")

	// ErrMissingFile 该 kind 需要 file 字段
	ErrMissingFile = errors.New("xconf: file is required")

	// ErrMissingTrigger 固定窗口写入器缺少触发配置（max_size 或 cron）
	ErrMissingTrigger = errors.New("xconf: a trigger (max_size or cron) is required")

	// ErrConflictingTriggers max_size 与 cron 同时配置
	ErrConflictingTriggers = errors.New("xconf: max_size and cron are mutually exclusive")

	// ErrUnknownCompression 未知的压缩方式
	ErrUnknownCompression = errors.New("xconf: unknown compression mode")
)
