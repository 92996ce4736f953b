package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"codelines/internal/classifier"
)

// LineTable 以表格形式逐行输出分类明细，供 classify 命令使用。
type LineTable struct {
	tw     *tabwriter.Writer
	header bool
}

// NewLineTable 创建逐行明细输出器。
func NewLineTable(writer io.Writer) *LineTable {
	return &LineTable{tw: tabwriter.NewWriter(writer, 0, 4, 2, ' ', 0)}
}

// Write 输出一行分类结果，签名与 classifier.LineFunc 一致。
func (t *LineTable) Write(lineNo int, line string, result classifier.Result) error {
	if !t.header {
		if _, err := fmt.Fprintln(t.tw, "LINE\tKIND\tTAGS\tTEXT"); err != nil {
			return err
		}
		t.header = true
	}

	tags := result.Tags.String()
	if tags == "" {
		tags = "-"
	}
	_, err := fmt.Fprintf(t.tw, "%d\t%s\t%s\t%s\n", lineNo, result.Kind, tags, line)
	return err
}

// Flush 刷新缓冲区。
func (t *LineTable) Flush() error {
	return t.tw.Flush()
}
