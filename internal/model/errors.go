package model

// ErrorKind 标记某个文件或目录被跳过的原因。
type ErrorKind string

const (
	// ErrorUnsupportedLanguage 表示找不到可用的规则集。
	ErrorUnsupportedLanguage ErrorKind = "unsupported_language"
	// ErrorFileRead 表示文件无法读取（权限、不存在、二进制内容等）。
	ErrorFileRead ErrorKind = "file_read"
	// ErrorTraversal 表示目录无法列出。
	ErrorTraversal ErrorKind = "traversal"
)

// ScanError 记录单个路径的失败信息。
// 设计为“错误不阻断全量扫描”：失败路径以零计数 + 错误标记的形式保留在报告中，
// 这样总计始终可以被审计。
type ScanError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}
