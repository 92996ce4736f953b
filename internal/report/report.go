// Package report 提供 codelines 的输出能力。
// 当前实现支持 table 控制台格式和 JSON 格式（含文件导出），以及逐行分类明细。
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"codelines/internal/model"
)

// 支持的输出格式。
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatAuto  = "auto"
)

// document 是 JSON 输出的顶层结构。
type document struct {
	ScannedPath string        `json:"scanned_path"`
	Results     *model.Report `json:"results"`
	Directories []model.Entry `json:"directories,omitempty"`
}

// TableOptions 控制表格输出内容。
type TableOptions struct {
	// Directories 为 true 时额外输出每个目录的汇总。
	Directories bool
}

// PrintTable 使用表格展示扫描结果。
func PrintTable(writer io.Writer, result *model.Report, options TableOptions) error {
	tw := tabwriter.NewWriter(writer, 0, 4, 2, ' ', 0)

	if _, err := fmt.Fprintf(tw, "SCANNED PATH\t%s\n\n", result.Root); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(tw, "FILE\tLANGUAGE\tTOTAL\tCODE\tCOMMENTS\tBLANK\tIMPORTS\tDECLARATIONS\tLOOPS"); err != nil {
		return err
	}
	for _, item := range result.Entries() {
		if item.Path == model.TotalKey || item.Failed() {
			continue
		}
		if err := writeCountsRow(tw, item.Path, item.Language, item.Counts); err != nil {
			return err
		}
	}

	if options.Directories {
		if _, err := fmt.Fprintln(tw, "\nDIRECTORY\t\tTOTAL\tCODE\tCOMMENTS\tBLANK\tIMPORTS\tDECLARATIONS\tLOOPS"); err != nil {
			return err
		}
		for _, item := range result.Directories() {
			if err := writeCountsRow(tw, item.Path, "", item.Counts); err != nil {
				return err
			}
		}
	}

	if _, err := fmt.Fprintln(tw); err != nil {
		return err
	}
	if err := writeCountsRow(tw, model.TotalKey, "", result.Total()); err != nil {
		return err
	}

	if failed := result.Errors(); len(failed) > 0 {
		if _, err := fmt.Fprintln(tw, "\nSKIPPED PATH\tKIND\tMESSAGE"); err != nil {
			return err
		}
		for _, item := range failed {
			if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\n", item.Path, item.Error.Kind, item.Error.Message); err != nil {
				return err
			}
		}
	}

	return tw.Flush()
}

func writeCountsRow(tw io.Writer, name string, language string, counts model.LineCounts) error {
	_, err := fmt.Fprintf(
		tw,
		"%s\t%s\t%d\t%d\t%d\t%d\t%d\t%d\t%d\n",
		name,
		language,
		counts.Total,
		counts.Code,
		counts.Comments,
		counts.Blank,
		counts.Imports,
		counts.Declarations,
		counts.Loops,
	)
	return err
}

// PrintJSON 把扫描结果按易读 JSON 输出到任意 writer。
func PrintJSON(writer io.Writer, result *model.Report) error {
	content, err := marshalDocument(result)
	if err != nil {
		return err
	}

	if _, err := writer.Write(append(content, '\n')); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

// WriteJSONFile 将 JSON 结果导出到指定路径。
// 如果目录不存在会自动创建。
func WriteJSONFile(path string, result *model.Report) error {
	content, err := marshalDocument(result)
	if err != nil {
		return err
	}

	directory := filepath.Dir(path)
	if directory != "." && directory != "" {
		if mkErr := os.MkdirAll(directory, 0o755); mkErr != nil {
			return fmt.Errorf("create output directory: %w", mkErr)
		}
	}

	if writeErr := os.WriteFile(path, content, 0o644); writeErr != nil {
		return fmt.Errorf("write output file: %w", writeErr)
	}
	return nil
}

func marshalDocument(result *model.Report) ([]byte, error) {
	content, err := json.MarshalIndent(document{
		ScannedPath: result.Root,
		Results:     result,
		Directories: result.Directories(),
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal json: %w", err)
	}
	return content, nil
}
