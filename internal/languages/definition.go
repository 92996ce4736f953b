package languages

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Definition 描述一个由配置文件声明的自定义规则集。
type Definition struct {
	ID           string   `yaml:"id"`
	Name         string   `yaml:"name"`
	Extensions   []string `yaml:"extensions"`
	LineComments []string `yaml:"line_comments"`
	BlockStart   string   `yaml:"block_start"`
	BlockEnd     string   `yaml:"block_end"`
	Import       string   `yaml:"import"`
	Declaration  string   `yaml:"declaration"`
	Loop         string   `yaml:"loop"`
}

// Compile 把配置中的定义编译为 PatternRules。
func Compile(def Definition) (*PatternRules, error) {
	id := strings.ToLower(strings.TrimSpace(def.ID))
	if id == "" {
		return nil, errors.New("language id is required")
	}
	if (def.BlockStart == "") != (def.BlockEnd == "") {
		return nil, fmt.Errorf("language %s: block_start and block_end must be set together", id)
	}

	name := strings.TrimSpace(def.Name)
	if name == "" {
		name = id
	}

	rules := &PatternRules{
		id:           id,
		name:         name,
		lineComments: nonEmpty(def.LineComments),
		blockStart:   def.BlockStart,
		blockEnd:     def.BlockEnd,
	}

	for _, ext := range def.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		rules.extensions = append(rules.extensions, ext)
	}

	var err error
	if rules.imports, err = compileOptional(def.Import); err != nil {
		return nil, fmt.Errorf("language %s: import pattern: %w", id, err)
	}
	if rules.declarations, err = compileOptional(def.Declaration); err != nil {
		return nil, fmt.Errorf("language %s: declaration pattern: %w", id, err)
	}
	if rules.loops, err = compileOptional(def.Loop); err != nil {
		return nil, fmt.Errorf("language %s: loop pattern: %w", id, err)
	}

	return rules, nil
}

// RegisterDefinitions 编译并注册一组自定义定义。
func (r *Registry) RegisterDefinitions(defs []Definition) error {
	for _, def := range defs {
		rules, err := Compile(def)
		if err != nil {
			return err
		}
		if err := r.Register(rules); err != nil {
			return err
		}
	}
	return nil
}

func compileOptional(pattern string) (*regexp.Regexp, error) {
	if strings.TrimSpace(pattern) == "" {
		return nil, nil
	}
	return regexp.Compile(pattern)
}

func nonEmpty(values []string) []string {
	result := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			result = append(result, strings.TrimSpace(v))
		}
	}
	return result
}
