package config

import (
	"fmt"
	"strings"
)

// Validate 检查配置取值范围，返回第一个失败项。
func (c *Config) Validate() error {
	switch strings.ToLower(c.Format) {
	case "table", "json", "auto":
	default:
		return fmt.Errorf("format must be one of table, json, auto, got %q", c.Format)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0, got %d", c.Workers)
	}
	if c.CacheSize <= 0 {
		return fmt.Errorf("cache_size must be greater than 0, got %d", c.CacheSize)
	}

	seen := make(map[string]struct{}, len(c.Languages))
	for i, def := range c.Languages {
		id := strings.ToLower(strings.TrimSpace(def.ID))
		if id == "" {
			return fmt.Errorf("languages[%d]: id is required", i)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("languages[%d]: duplicate id %q", i, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}
