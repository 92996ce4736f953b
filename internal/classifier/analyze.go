package classifier

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"codelines/internal/model"
)

// ErrBinaryContent 表示文件内容包含 NUL 字节，不是可分类的文本。
var ErrBinaryContent = errors.New("binary content")

// FileReadError 表示文件无法打开或读取。
type FileReadError struct {
	Path string
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *FileReadError) Unwrap() error {
	return e.Err
}

// LineFunc 在 Walk 中对每一行调用，lineNo 从 1 开始。
type LineFunc func(lineNo int, line string, result Result) error

// byteOrderMark 是 UTF-8 BOM，只在第一行开头出现。
const byteOrderMark = "\ufeff"

// Walk 流式读取文本并逐行分类。
// 行以 \n 切分并去掉末尾的 \r；文件末尾的换行不会产生额外的空行，空输入没有任何行。
// 第一行开头的 BOM 在分类前去掉。
func Walk(reader io.Reader, rules Rules, fn LineFunc) error {
	bufferedReader := bufio.NewReader(reader)
	state := State{}
	lineNo := 0

	for {
		line, err := bufferedReader.ReadString('\n')
		// 没有任何剩余数据时，说明读取结束。
		if errors.Is(err, io.EOF) && len(line) == 0 {
			return nil
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}

		if strings.IndexByte(line, 0) >= 0 {
			return ErrBinaryContent
		}

		lineNo++
		current := normalizeLine(line)
		if lineNo == 1 {
			current = strings.TrimPrefix(current, byteOrderMark)
		}

		var result Result
		result, state = Classify(current, state, rules)
		if fnErr := fn(lineNo, current, result); fnErr != nil {
			return fnErr
		}

		// 最后一行可能没有 \n，处理后再退出。
		if errors.Is(err, io.EOF) {
			return nil
		}
	}
}

// Analyze 读取全部行并汇总为 LineCounts。
func Analyze(reader io.Reader, rules Rules) (model.LineCounts, error) {
	var tally Tally

	err := Walk(reader, rules, func(_ int, _ string, result Result) error {
		tally.Record(result)
		return nil
	})
	if err != nil {
		return model.LineCounts{}, err
	}
	return tally.Counts(), nil
}

// AnalyzeFile 打开并分析单个文件，所有 IO 失败都包装为 *FileReadError。
func AnalyzeFile(path string, rules Rules) (model.LineCounts, error) {
	file, err := os.Open(path)
	if err != nil {
		return model.LineCounts{}, &FileReadError{Path: path, Err: err}
	}

	counts, analyzeErr := Analyze(file, rules)
	closeErr := file.Close()

	if analyzeErr != nil {
		return model.LineCounts{}, &FileReadError{Path: path, Err: analyzeErr}
	}
	if closeErr != nil {
		return model.LineCounts{}, &FileReadError{Path: path, Err: closeErr}
	}
	return counts, nil
}

// Tally 把逐行分类结果折叠为 LineCounts。
type Tally struct {
	counts model.LineCounts
}

// Record 根据单行分类结果累加计数：三类行互斥，标签各自独立累加。
func (t *Tally) Record(result Result) {
	switch {
	case result.Kind == Blank:
		t.counts.Blank++
	case result.Kind.IsComment():
		t.counts.Comments++
	default:
		t.counts.Code++
		if result.Tags.Has(TagImport) {
			t.counts.Imports++
		}
		if result.Tags.Has(TagDeclaration) {
			t.counts.Declarations++
		}
		if result.Tags.Has(TagLoop) {
			t.counts.Loops++
		}
	}
}

// Counts 返回当前统计值，Total 按 Blank + Comments + Code 重新计算。
func (t *Tally) Counts() model.LineCounts {
	counts := t.counts
	counts.Total = counts.Blank + counts.Comments + counts.Code
	return counts
}

// normalizeLine 去除行尾的换行符，兼容 \r\n 与 \n。
func normalizeLine(line string) string {
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line
}
