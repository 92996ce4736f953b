package model

import (
	"bytes"
	"encoding/json"
	"strings"
)

// TotalKey 是报告中保留给全局总计的键。
const TotalKey = "All Totals"

// Entry 表示报告中的一条记录：一个文件、一个失败的目录，或全局总计。
type Entry struct {
	Path     string     `json:"path"`
	Language string     `json:"language,omitempty"`
	Counts   LineCounts `json:"counts"`
	Error    *ScanError `json:"error,omitempty"`
}

// Failed 判断该记录是否带有错误标记。
func (e Entry) Failed() bool {
	return e.Error != nil
}

// Report 是按插入顺序保存的 “路径 -> 统计” 映射。
// 插入顺序即遍历顺序；全局总计保存在 TotalKey 下。
type Report struct {
	Root        string
	entries     []Entry
	index       map[string]int
	directories []Entry
}

// NewReport 创建一个空报告。
func NewReport(root string) *Report {
	return &Report{
		Root:  root,
		index: make(map[string]int),
	}
}

// Add 追加一条记录。路径会先做规范化；重复路径原位替换，保持最初的顺序。
// 路径恰好是 TotalKey 的普通记录改写为 "./" + TotalKey，总计只能由 SetTotal 写入。
func (r *Report) Add(entry Entry) {
	entry.Path = NormalizePath(entry.Path)
	if entry.Path == TotalKey {
		entry.Path = "./" + TotalKey
	}
	r.put(entry)
}

// SetTotal 写入全局总计记录。
func (r *Report) SetTotal(counts LineCounts) {
	r.put(Entry{Path: TotalKey, Counts: counts})
}

func (r *Report) put(entry Entry) {
	if idx, ok := r.index[entry.Path]; ok {
		r.entries[idx] = entry
		return
	}
	r.index[entry.Path] = len(r.entries)
	r.entries = append(r.entries, entry)
}

// Total 返回全局总计；尚未写入时返回零值。
func (r *Report) Total() LineCounts {
	entry, _ := r.Get(TotalKey)
	return entry.Counts
}

// Get 按路径查找记录。
func (r *Report) Get(path string) (Entry, bool) {
	idx, ok := r.index[NormalizePath(path)]
	if !ok {
		return Entry{}, false
	}
	return r.entries[idx], true
}

// Entries 返回全部记录的副本（包含总计）。
func (r *Report) Entries() []Entry {
	return append([]Entry(nil), r.entries...)
}

// Len 返回记录条数（包含总计）。
func (r *Report) Len() int {
	return len(r.entries)
}

// Errors 返回所有带错误标记的记录。
func (r *Report) Errors() []Entry {
	result := make([]Entry, 0)
	for _, entry := range r.entries {
		if entry.Failed() {
			result = append(result, entry)
		}
	}
	return result
}

// AddDirectory 记录某个目录的汇总值。目录汇总单独保存，不进入路径映射。
func (r *Report) AddDirectory(path string, counts LineCounts) {
	r.directories = append(r.directories, Entry{Path: NormalizePath(path), Counts: counts})
}

// Directories 返回目录汇总（后序：子目录先于父目录）。
func (r *Report) Directories() []Entry {
	return append([]Entry(nil), r.directories...)
}

// MarshalJSON 把记录编码为按遍历顺序排列的 JSON 对象，键为路径。
func (r *Report) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range r.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(entry.Path)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(entry)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// NormalizePath 规范化报告中的路径：
// 反斜杠统一为 “/”，开头连续的 “.//...” 折叠为单个 “./”。
func NormalizePath(path string) string {
	path = strings.ReplaceAll(path, "\\", "/")
	if strings.HasPrefix(path, ".//") {
		path = "./" + strings.TrimLeft(path[2:], "/")
	}
	return path
}
