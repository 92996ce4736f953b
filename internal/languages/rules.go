package languages

import (
	"regexp"
	"strings"
)

// RuleSet 定义单语言的行级模式规则。
// 六个判定函数都是纯函数，行分类器只依赖它们，不关心具体语言。
type RuleSet interface {
	// ID 返回规则集标识（小写，如 javascript），用于 --language 查找。
	ID() string
	// Name 返回展示用语言名称。
	Name() string
	// Extensions 返回该语言支持的后缀列表（包含点号，如 .js）。
	Extensions() []string

	SingleLineComment(line string) bool
	// BlockCommentStart 仅在本行打开块注释且没有在同一行关闭时返回 true。
	BlockCommentStart(line string) bool
	// BlockCommentEnd 在本行以块注释结束符收尾时返回 true，
	// 同一行打开并关闭的注释也由它兜底。
	BlockCommentEnd(line string) bool
	Import(line string) bool
	Declaration(line string) bool
	Loop(line string) bool
}

// PatternRules 是基于前缀/后缀标记和正则表达式的通用规则集实现。
// 所有判定都作用在去掉首尾空白后的行上。
type PatternRules struct {
	id           string
	name         string
	extensions   []string
	lineComments []string
	blockStart   string
	blockEnd     string
	imports      *regexp.Regexp
	declarations *regexp.Regexp
	loops        *regexp.Regexp
}

// ID 返回规则集标识。
func (r *PatternRules) ID() string {
	return r.id
}

// Name 返回语言名称。
func (r *PatternRules) Name() string {
	return r.name
}

// Extensions 返回后缀列表副本。
func (r *PatternRules) Extensions() []string {
	return append([]string(nil), r.extensions...)
}

// SingleLineComment 判断本行是否以单行注释前缀开头。
func (r *PatternRules) SingleLineComment(line string) bool {
	trimmed := strings.TrimSpace(line)
	for _, prefix := range r.lineComments {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	return false
}

// BlockCommentStart 判断本行是否打开了一个跨行块注释。
func (r *PatternRules) BlockCommentStart(line string) bool {
	if r.blockStart == "" {
		return false
	}
	trimmed := strings.TrimSpace(line)
	return strings.HasPrefix(trimmed, r.blockStart) && !strings.HasSuffix(trimmed, r.blockEnd)
}

// BlockCommentEnd 判断本行是否以块注释结束符收尾。
func (r *PatternRules) BlockCommentEnd(line string) bool {
	if r.blockEnd == "" {
		return false
	}
	return strings.HasSuffix(strings.TrimSpace(line), r.blockEnd)
}

// Import 判断本行是否为导入语句。
func (r *PatternRules) Import(line string) bool {
	return matchTrimmed(r.imports, line)
}

// Declaration 判断本行是否为变量/常量声明。
func (r *PatternRules) Declaration(line string) bool {
	return matchTrimmed(r.declarations, line)
}

// Loop 判断本行是否为循环语句。
func (r *PatternRules) Loop(line string) bool {
	return matchTrimmed(r.loops, line)
}

// matchTrimmed 在去掉首尾空白的行上执行正则；未配置的模式永远不命中。
func matchTrimmed(pattern *regexp.Regexp, line string) bool {
	if pattern == nil {
		return false
	}
	return pattern.MatchString(strings.TrimSpace(line))
}
