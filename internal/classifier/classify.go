// Package classifier 实现逐行分类状态机与单文件分析。
//
// 分类器只依赖 Rules 的六个判定函数，跨行状态（是否处于块注释中）
// 通过 State 显式传入和返回，不保存任何全局状态，因此多个文件可以并发分类。
package classifier

import "strings"

// Rules 是分类器所需的最小规则接口。
// languages.RuleSet 满足该接口。
type Rules interface {
	SingleLineComment(line string) bool
	BlockCommentStart(line string) bool
	BlockCommentEnd(line string) bool
	Import(line string) bool
	Declaration(line string) bool
	Loop(line string) bool
}

// Kind 表示一行的分类结果。
type Kind int

const (
	Blank Kind = iota
	CommentStart
	CommentEnd
	CommentLine
	Code
)

var kindNames = [...]string{
	Blank:        "blank",
	CommentStart: "comment-start",
	CommentEnd:   "comment-end",
	CommentLine:  "comment",
	Code:         "code",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// IsComment 判断该分类是否计入注释行。
func (k Kind) IsComment() bool {
	return k == CommentStart || k == CommentEnd || k == CommentLine
}

// Tags 是代码行上的附加标签位集合，多个标签可以同时存在。
type Tags uint8

const (
	TagImport Tags = 1 << iota
	TagDeclaration
	TagLoop
)

// Has 判断是否包含指定标签。
func (t Tags) Has(tag Tags) bool {
	return t&tag != 0
}

func (t Tags) String() string {
	names := make([]string, 0, 3)
	if t.Has(TagImport) {
		names = append(names, "import")
	}
	if t.Has(TagDeclaration) {
		names = append(names, "declaration")
	}
	if t.Has(TagLoop) {
		names = append(names, "loop")
	}
	return strings.Join(names, ",")
}

// State 是跨行延续的分类状态。
type State struct {
	InBlockComment bool
}

// Result 是单行分类结果。Tags 仅在 Kind 为 Code 时可能非零。
type Result struct {
	Kind Kind
	Tags Tags
}

// Classify 对一行进行分类并返回新的状态。
//
// 判定顺序严格固定，先命中者生效：
//  1. 空白行且不在块注释中 -> Blank
//  2. 打开块注释（且未在同行关闭） -> CommentStart，进入块注释
//  3. 以块注释结束符收尾 -> CommentEnd，离开块注释（同行开闭的注释也在这里命中）
//  4. 单行注释或仍在块注释中 -> CommentLine（块注释内的空白行也落在这里）
//  5. 其余 -> Code，三个标签各自独立判定
func Classify(line string, state State, rules Rules) (Result, State) {
	if !state.InBlockComment && strings.TrimSpace(line) == "" {
		return Result{Kind: Blank}, state
	}

	if rules.BlockCommentStart(line) {
		return Result{Kind: CommentStart}, State{InBlockComment: true}
	}

	if rules.BlockCommentEnd(line) {
		return Result{Kind: CommentEnd}, State{InBlockComment: false}
	}

	if state.InBlockComment || rules.SingleLineComment(line) {
		return Result{Kind: CommentLine}, state
	}

	var tags Tags
	if rules.Import(line) {
		tags |= TagImport
	}
	if rules.Declaration(line) {
		tags |= TagDeclaration
	}
	if rules.Loop(line) {
		tags |= TagLoop
	}
	return Result{Kind: Code, Tags: tags}, state
}
