// Package config 加载 codelines 的运行配置。
// 优先级：命令行参数 > 环境变量（含 .env） > 配置文件 > 默认值。
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"codelines/internal/languages"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultFile 是未显式指定配置文件时尝试读取的路径。
const DefaultFile = ".codelines.yaml"

// Config 是完整的运行配置。
type Config struct {
	Language   string                 `yaml:"language"`
	Format     string                 `yaml:"format"`
	Output     string                 `yaml:"output"`
	Workers    int                    `yaml:"workers"`
	CacheSize  int                    `yaml:"cache_size"`
	IgnoreDirs []string               `yaml:"ignore_dirs"`
	Languages  []languages.Definition `yaml:"languages,omitempty"`
}

// Default 返回只包含默认值的配置。
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

// Load 读取配置。
// path 为空时依次尝试 CODELINES_CONFIG 和 DefaultFile；DefaultFile 不存在不算错误。
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	explicit := true
	if strings.TrimSpace(path) == "" {
		path = strings.TrimSpace(os.Getenv("CODELINES_CONFIG"))
	}
	if path == "" {
		path = DefaultFile
		explicit = false
	}

	cfg := &Config{}
	if err := cfg.readFile(path); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		logger().Debug("no config file", "path", path)
	} else {
		logger().Debug("config file loaded", "path", path)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// readFile 严格解码 YAML 文件，未知字段会被拒绝。
func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(c); err != nil {
		// 空文件或只有注释的文件没有任何文档。
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	return nil
}

// applyEnv 用环境变量覆盖配置文件中的值。
func (c *Config) applyEnv() error {
	if v := strings.TrimSpace(os.Getenv("CODELINES_LANGUAGE")); v != "" {
		c.Language = v
	}
	if v := strings.TrimSpace(os.Getenv("CODELINES_FORMAT")); v != "" {
		c.Format = v
	}
	if v := strings.TrimSpace(os.Getenv("CODELINES_OUTPUT")); v != "" {
		c.Output = v
	}

	var err error
	if c.Workers, err = envInt("CODELINES_WORKERS", c.Workers); err != nil {
		return err
	}
	if c.CacheSize, err = envInt("CODELINES_CACHE_SIZE", c.CacheSize); err != nil {
		return err
	}
	return nil
}

// setDefaults 为未设置的字段填充显式默认值。
func (c *Config) setDefaults() {
	if c.Format == "" {
		c.Format = "auto"
	}
	if c.Workers == 0 {
		c.Workers = 1
	}
	if c.CacheSize == 0 {
		c.CacheSize = 4096
	}
	if c.IgnoreDirs == nil {
		c.IgnoreDirs = []string{".git", ".hg", ".svn", "node_modules", "vendor"}
	}
}

func envInt(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, raw)
	}
	return v, nil
}
