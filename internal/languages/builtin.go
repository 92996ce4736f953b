package languages

import "regexp"

// DefaultID 是默认规则集的标识：C 系注释 + JavaScript 关键字模式。
const DefaultID = "default"

// default 保留不带单词边界的前缀匹配，constructor、format(...) 这类行也会被打上标签。
var (
	defaultImports      = regexp.MustCompile(`^import|=require\(|= require\(`)
	defaultDeclarations = regexp.MustCompile(`^(const|let|var)`)
	defaultLoops        = regexp.MustCompile(`^for|^while|\.forEach\(|\.forEach \(`)
)

// javascript 与 typescript 使用带单词边界的版本。
var (
	javaScriptImports      = regexp.MustCompile(`^import\b|=\s?require\(`)
	javaScriptDeclarations = regexp.MustCompile(`^(const|let|var)\b`)
	javaScriptLoops        = regexp.MustCompile(`^(for|while)\b|\.forEach\s?\(`)
)

// cFamily 生成使用 // 与 /* */ 注释的规则集。
func cFamily(id string, name string, extensions []string, imports, declarations, loops *regexp.Regexp) *PatternRules {
	return &PatternRules{
		id:           id,
		name:         name,
		extensions:   extensions,
		lineComments: []string{"//"},
		blockStart:   "/*",
		blockEnd:     "*/",
		imports:      imports,
		declarations: declarations,
		loops:        loops,
	}
}

// builtinRuleSets 返回全部内置规则集。
// default 没有后缀，只能通过 --language 显式选择。
func builtinRuleSets() []*PatternRules {
	return []*PatternRules{
		cFamily(DefaultID, "Default", nil,
			defaultImports, defaultDeclarations, defaultLoops),
		cFamily("javascript", "JavaScript", []string{".js", ".mjs", ".cjs", ".jsx"},
			javaScriptImports, javaScriptDeclarations, javaScriptLoops),
		cFamily("typescript", "TypeScript", []string{".ts", ".mts", ".cts", ".tsx"},
			regexp.MustCompile(`^import\b|^export\s.*\bfrom\s|=\s?require\(`),
			regexp.MustCompile(`^(export\s+)?(declare\s+)?(const|let|var|type|interface|enum)\b`),
			javaScriptLoops),
		cFamily("go", "Go", []string{".go"},
			regexp.MustCompile(`^import\b`),
			regexp.MustCompile(`^(var|const|type)\b|^\w+(,\s*\w+)*\s*:=`),
			regexp.MustCompile(`^for\b`)),
		cFamily("java", "Java", []string{".java"},
			regexp.MustCompile(`^import\s`),
			regexp.MustCompile(`^(final\s+)?(var|int|long|short|byte|char|float|double|boolean|String)(\[\])*\s+\w+`),
			regexp.MustCompile(`^(for|while|do)\b`)),
		cFamily("cpp", "C/C++", []string{".c", ".h", ".cc", ".cpp", ".cxx", ".hpp", ".hh", ".hxx"},
			regexp.MustCompile(`^#\s*include\b|^import\b|^using\s+namespace\b`),
			regexp.MustCompile(`^(static\s+)?(const\s+)?(unsigned\s+)?(auto|int|long|short|char|float|double|bool|size_t)\b[\s*&]+\w+`),
			regexp.MustCompile(`^(for|while|do)\b`)),
		cFamily("rust", "Rust", []string{".rs"},
			regexp.MustCompile(`^(pub\s+)?(use\b|extern\s+crate\b|mod\s+\w+;)`),
			regexp.MustCompile(`^(let|const|static)\b`),
			regexp.MustCompile(`^(for|while|loop)\b`)),
		{
			id:           "python",
			name:         "Python",
			extensions:   []string{".py", ".pyw"},
			lineComments: []string{"#"},
			imports:      regexp.MustCompile(`^(import|from)\s`),
			declarations: regexp.MustCompile(`^[A-Za-z_]\w*\s*(:\s*[^=]+)?=[^=]`),
			loops:        regexp.MustCompile(`^(async\s+)?(for|while)\b`),
		},
		{
			id:           "ruby",
			name:         "Ruby",
			extensions:   []string{".rb", ".rake"},
			lineComments: []string{"#"},
			blockStart:   "=begin",
			blockEnd:     "=end",
			imports:      regexp.MustCompile(`^(require|require_relative|load)\b`),
			declarations: regexp.MustCompile(`^@{0,2}[A-Za-z_]\w*\s*=[^=~]`),
			loops:        regexp.MustCompile(`^(for|while|until|loop)\b|\.each(_with_index)?\b`),
		},
		{
			id:           "sql",
			name:         "SQL",
			extensions:   []string{".sql"},
			lineComments: []string{"--"},
			blockStart:   "/*",
			blockEnd:     "*/",
			declarations: regexp.MustCompile(`(?i)^(create|declare)\b`),
			loops:        regexp.MustCompile(`(?i)^(while|loop)\b`),
		},
	}
}
