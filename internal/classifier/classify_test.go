package classifier

import (
	"strings"
	"testing"

	"codelines/internal/languages"
	"codelines/internal/model"

	"github.com/google/go-cmp/cmp"
)

// defaultRules 是测试辅助函数，返回内置 default 规则集。
func defaultRules(t *testing.T) Rules {
	t.Helper()

	rules, err := languages.NewRegistry().Lookup(languages.DefaultID)
	if err != nil {
		t.Fatalf("lookup default rules failed: %v", err)
	}
	return rules
}

// analyzeLines 把多行文本交给 Analyze 并返回统计结果。
func analyzeLines(t *testing.T, rules Rules, lines ...string) model.LineCounts {
	t.Helper()

	counts, err := Analyze(strings.NewReader(strings.Join(lines, "\n")), rules)
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if !counts.Consistent() {
		t.Fatalf("inconsistent counts: %+v", counts)
	}
	return counts
}

// stubRules 让每个判定都可以单独控制，用于验证判定顺序。
type stubRules struct {
	lineComment, blockStart, blockEnd bool
	imports, declaration, loop        bool
}

func (s stubRules) SingleLineComment(string) bool { return s.lineComment }
func (s stubRules) BlockCommentStart(string) bool { return s.blockStart }
func (s stubRules) BlockCommentEnd(string) bool   { return s.blockEnd }
func (s stubRules) Import(string) bool            { return s.imports }
func (s stubRules) Declaration(string) bool       { return s.declaration }
func (s stubRules) Loop(string) bool              { return s.loop }

// TestAnalyzeMixedFile 验证注释、空行、块注释与带标签代码行的综合场景。
func TestAnalyzeMixedFile(t *testing.T) {
	counts := analyzeLines(t, defaultRules(t),
		"// header",
		"",
		"import foo = require('bar')",
		"/* block",
		"still comment",
		"end */",
		"let x = 1;",
	)

	want := model.LineCounts{Blank: 1, Comments: 4, Code: 2, Imports: 1, Declarations: 1, Total: 7}
	if diff := cmp.Diff(want, counts); diff != "" {
		t.Fatalf("unexpected counts (-want +got):\n%s", diff)
	}
}

// TestAnalyzeBOMPrefixedHeader 验证第一行开头的 BOM 不影响注释与关键字判定。
func TestAnalyzeBOMPrefixedHeader(t *testing.T) {
	rules := defaultRules(t)

	counts := analyzeLines(t, rules, "\ufeff/*", " * Copyright", " * License", " */", "let x = 1;")
	want := model.LineCounts{Comments: 4, Code: 1, Declarations: 1, Total: 5}
	if diff := cmp.Diff(want, counts); diff != "" {
		t.Fatalf("unexpected counts (-want +got):\n%s", diff)
	}

	counts = analyzeLines(t, rules, "\ufeff// header", "let x = 1;")
	want = model.LineCounts{Comments: 1, Code: 1, Declarations: 1, Total: 2}
	if diff := cmp.Diff(want, counts); diff != "" {
		t.Fatalf("unexpected counts (-want +got):\n%s", diff)
	}

	// 只剩 BOM 的第一行是空行。
	counts = analyzeLines(t, rules, "\ufeff", "let x = 1;")
	want = model.LineCounts{Blank: 1, Code: 1, Declarations: 1, Total: 2}
	if diff := cmp.Diff(want, counts); diff != "" {
		t.Fatalf("unexpected counts (-want +got):\n%s", diff)
	}
}

// TestAnalyzeEmptyFile 验证空文件不产生任何行。
func TestAnalyzeEmptyFile(t *testing.T) {
	counts, err := Analyze(strings.NewReader(""), defaultRules(t))
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if !counts.IsZero() {
		t.Fatalf("expected zero counts, got %+v", counts)
	}
}

// TestWhitespaceLineIsBlank 验证块注释外的纯空白行总是 Blank，且不改变状态。
func TestWhitespaceLineIsBlank(t *testing.T) {
	rules := defaultRules(t)

	for _, line := range []string{"", " ", "\t\t", "  \t "} {
		result, state := Classify(line, State{}, rules)
		if result.Kind != Blank || state.InBlockComment {
			t.Fatalf("Classify(%q) = %v/%+v, want blank outside block", line, result.Kind, state)
		}
	}
}

// TestBlankInsideBlockIsComment 验证块注释内部的空白行计为注释而不是空行。
func TestBlankInsideBlockIsComment(t *testing.T) {
	rules := defaultRules(t)

	result, state := Classify("   ", State{InBlockComment: true}, rules)
	if result.Kind != CommentLine || !state.InBlockComment {
		t.Fatalf("unexpected result %v/%+v", result.Kind, state)
	}

	counts := analyzeLines(t, rules, "/*", "", "  ", "*/")
	if counts.Comments != 4 || counts.Blank != 0 {
		t.Fatalf("unexpected counts: %+v", counts)
	}
}

// TestSameLineBlockComment 验证同一行打开并关闭的块注释只计一次注释，且不进入块注释状态。
func TestSameLineBlockComment(t *testing.T) {
	rules := defaultRules(t)

	result, state := Classify("/* full comment */", State{}, rules)
	if result.Kind != CommentEnd {
		t.Fatalf("expected comment-end, got %v", result.Kind)
	}
	if state.InBlockComment {
		t.Fatalf("block comment state must stay false")
	}

	counts := analyzeLines(t, rules, "/* full comment */", "let y = 2;")
	want := model.LineCounts{Comments: 1, Code: 1, Declarations: 1, Total: 2}
	if diff := cmp.Diff(want, counts); diff != "" {
		t.Fatalf("unexpected counts (-want +got):\n%s", diff)
	}
}

// TestLineCommentInsideBlock 验证块注释内的 // 行只计一次注释。
func TestLineCommentInsideBlock(t *testing.T) {
	rules := defaultRules(t)

	result, state := Classify("// nested", State{InBlockComment: true}, rules)
	if result.Kind != CommentLine || !state.InBlockComment {
		t.Fatalf("unexpected result %v/%+v", result.Kind, state)
	}

	counts := analyzeLines(t, rules, "/* open", "// nested", "close */")
	if counts.Comments != 3 || counts.Total != 3 {
		t.Fatalf("unexpected counts: %+v", counts)
	}
}

// TestCodeLineWithSeveralTags 验证一行代码可以同时命中多个标签，且只计一次代码行。
func TestCodeLineWithSeveralTags(t *testing.T) {
	rules := defaultRules(t)

	result, _ := Classify("const fs = require('fs');", State{}, rules)
	if result.Kind != Code || !result.Tags.Has(TagImport) || !result.Tags.Has(TagDeclaration) {
		t.Fatalf("unexpected result %+v", result)
	}
	if result.Tags.String() != "import,declaration" {
		t.Fatalf("unexpected tag string %q", result.Tags.String())
	}

	counts := analyzeLines(t, rules, "const fs = require('fs');", "for (;;) {}", "}")
	want := model.LineCounts{Code: 3, Imports: 1, Declarations: 1, Loops: 1, Total: 3}
	if diff := cmp.Diff(want, counts); diff != "" {
		t.Fatalf("unexpected counts (-want +got):\n%s", diff)
	}
}

// TestClassifyPrecedence 验证判定顺序：打开块注释优先于结束，结束优先于单行注释。
func TestClassifyPrecedence(t *testing.T) {
	cases := []struct {
		name  string
		rules stubRules
		state State
		want  Result
		next  State
	}{
		{
			name:  "start wins over everything",
			rules: stubRules{lineComment: true, blockStart: true, blockEnd: true, imports: true},
			want:  Result{Kind: CommentStart},
			next:  State{InBlockComment: true},
		},
		{
			name:  "end wins over line comment",
			rules: stubRules{lineComment: true, blockEnd: true},
			state: State{InBlockComment: true},
			want:  Result{Kind: CommentEnd},
		},
		{
			name:  "line comment",
			rules: stubRules{lineComment: true, loop: true},
			want:  Result{Kind: CommentLine},
		},
		{
			name:  "inside block ignores tags",
			rules: stubRules{imports: true},
			state: State{InBlockComment: true},
			want:  Result{Kind: CommentLine},
			next:  State{InBlockComment: true},
		},
		{
			name:  "code evaluates every tag",
			rules: stubRules{imports: true, declaration: true, loop: true},
			want:  Result{Kind: Code, Tags: TagImport | TagDeclaration | TagLoop},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, next := Classify("x", tc.state, tc.rules)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("unexpected result (-want +got):\n%s", diff)
			}
			if next != tc.next {
				t.Fatalf("unexpected state %+v, want %+v", next, tc.next)
			}
		})
	}
}

// TestWalkLineNumbers 验证 Walk 的行号、CRLF 处理以及末尾换行不产生额外行。
func TestWalkLineNumbers(t *testing.T) {
	type seen struct {
		No   int
		Line string
		Kind Kind
	}

	var got []seen
	err := Walk(strings.NewReader("a = 1\r\n\r\n// c\n"), defaultRules(t), func(lineNo int, line string, result Result) error {
		got = append(got, seen{No: lineNo, Line: line, Kind: result.Kind})
		return nil
	})
	if err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	want := []seen{
		{No: 1, Line: "a = 1", Kind: Code},
		{No: 2, Line: "", Kind: Blank},
		{No: 3, Line: "// c", Kind: CommentLine},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected lines (-want +got):\n%s", diff)
	}
}

// TestAnalyzeIsIdempotent 验证同一内容重复分析结果一致。
func TestAnalyzeIsIdempotent(t *testing.T) {
	rules := defaultRules(t)
	content := "/* a\nb */\nwhile (x) {}\n\n"

	first, err := Analyze(strings.NewReader(content), rules)
	if err != nil {
		t.Fatalf("first analyze failed: %v", err)
	}
	second, err := Analyze(strings.NewReader(content), rules)
	if err != nil {
		t.Fatalf("second analyze failed: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("results differ (-first +second):\n%s", diff)
	}
}

// TestKindString 验证分类名称。
func TestKindString(t *testing.T) {
	if Code.String() != "code" || CommentEnd.String() != "comment-end" || Kind(42).String() != "unknown" {
		t.Fatalf("unexpected kind names")
	}
	if Blank.IsComment() || Code.IsComment() || !CommentStart.IsComment() {
		t.Fatalf("unexpected IsComment result")
	}
}
