package languages

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// ErrUnsupportedLanguage 表示找不到匹配的规则集。
var ErrUnsupportedLanguage = errors.New("unsupported language")

// LanguageDescriptor 用于对外展示语言及后缀信息。
type LanguageDescriptor struct {
	ID         string
	Name       string
	Extensions []string
}

// Registry 管理规则集注册与 标识/后缀 映射。
// 新语言通过 Register 注册新的规则集实现，分类器本身不做任何语言分支。
type Registry struct {
	ruleSets []RuleSet
	byID     map[string]RuleSet
	byExt    map[string]RuleSet
}

// NewRegistry 创建并注册所有内置规则集。
func NewRegistry() *Registry {
	registry := &Registry{
		byID:  make(map[string]RuleSet),
		byExt: make(map[string]RuleSet),
	}

	for _, rules := range builtinRuleSets() {
		if err := registry.Register(rules); err != nil {
			panic(fmt.Sprintf("register builtin rule set %s: %v", rules.ID(), err))
		}
	}

	return registry
}

// Register 注册一个规则集。标识或后缀与已有规则集冲突时返回错误。
func (r *Registry) Register(rules RuleSet) error {
	id := strings.ToLower(strings.TrimSpace(rules.ID()))
	if id == "" {
		return errors.New("rule set id is empty")
	}
	if _, exists := r.byID[id]; exists {
		return fmt.Errorf("rule set %q already registered", id)
	}

	extensions := make([]string, 0, len(rules.Extensions()))
	for _, ext := range rules.Extensions() {
		ext = strings.ToLower(ext)
		if owner, exists := r.byExt[ext]; exists {
			return fmt.Errorf("extension %s already claimed by %s", ext, owner.ID())
		}
		extensions = append(extensions, ext)
	}

	r.ruleSets = append(r.ruleSets, rules)
	r.byID[id] = rules
	for _, ext := range extensions {
		r.byExt[ext] = rules
	}
	return nil
}

// Lookup 按标识查找规则集（大小写不敏感）。
func (r *Registry) Lookup(id string) (RuleSet, error) {
	rules, ok := r.byID[strings.ToLower(strings.TrimSpace(id))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, id)
	}
	return rules, nil
}

// ForFile 根据文件后缀查找规则集。
func (r *Registry) ForFile(path string) (RuleSet, error) {
	ext := strings.ToLower(filepath.Ext(path))
	rules, ok := r.byExt[ext]
	if !ok {
		if ext == "" {
			return nil, fmt.Errorf("%w: no file extension", ErrUnsupportedLanguage)
		}
		return nil, fmt.Errorf("%w: extension %s", ErrUnsupportedLanguage, ext)
	}
	return rules, nil
}

// Languages 返回已注册规则集清单，按标识排序。
func (r *Registry) Languages() []LanguageDescriptor {
	result := make([]LanguageDescriptor, 0, len(r.ruleSets))
	for _, rules := range r.ruleSets {
		extensions := rules.Extensions()
		sort.Strings(extensions)
		result = append(result, LanguageDescriptor{
			ID:         rules.ID(),
			Name:       rules.Name(),
			Extensions: extensions,
		})
	}

	sort.Slice(result, func(i int, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}
