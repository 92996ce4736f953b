package classifier

import (
	"fmt"
	"os"

	"codelines/internal/model"

	lru "github.com/hashicorp/golang-lru/v2"
)

// cacheKey 标识一次可复用的分析结果：同一路径、同一规则集、文件大小与修改时间都未变化。
type cacheKey struct {
	path    string
	ruleID  string
	size    int64
	modTime int64
}

// Cache 是按文件元数据失效的 LRU 结果缓存。
// 适用于 watch 这类反复扫描同一棵目录树的场景。
type Cache struct {
	entries *lru.Cache[cacheKey, model.LineCounts]
}

// NewCache 创建容量为 size 的缓存。
func NewCache(size int) (*Cache, error) {
	entries, err := lru.New[cacheKey, model.LineCounts](size)
	if err != nil {
		return nil, fmt.Errorf("create analysis cache: %w", err)
	}
	return &Cache{entries: entries}, nil
}

// AnalyzeFile 优先返回缓存结果；未命中时分析文件并写入缓存。
// 第二个返回值表示是否命中缓存。分析失败的结果不会被缓存。
func (c *Cache) AnalyzeFile(path string, ruleID string, rules Rules) (model.LineCounts, bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return model.LineCounts{}, false, &FileReadError{Path: path, Err: err}
	}

	key := cacheKey{
		path:    path,
		ruleID:  ruleID,
		size:    info.Size(),
		modTime: info.ModTime().UnixNano(),
	}
	if counts, ok := c.entries.Get(key); ok {
		return counts, true, nil
	}

	counts, err := AnalyzeFile(path, rules)
	if err != nil {
		return model.LineCounts{}, false, err
	}
	c.entries.Add(key, counts)
	return counts, false, nil
}

// Len 返回当前缓存条目数。
func (c *Cache) Len() int {
	return c.entries.Len()
}

// Purge 清空缓存。
func (c *Cache) Purge() {
	c.entries.Purge()
}
