package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// IsTerminal 判断 writer 是否为交互式终端。
func IsTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

// ResolveFormat 校验格式并把 auto 解析为具体格式：终端输出表格，否则输出 JSON。
func ResolveFormat(format string, writer io.Writer) (string, error) {
	switch normalized := strings.ToLower(strings.TrimSpace(format)); normalized {
	case FormatTable, FormatJSON:
		return normalized, nil
	case FormatAuto, "":
		if IsTerminal(writer) {
			return FormatTable, nil
		}
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported format %q, allowed values: table, json, auto", format)
	}
}

// ClearScreen 在终端上清屏并把光标移到左上角；非终端不输出任何内容。
func ClearScreen(writer io.Writer) {
	if IsTerminal(writer) {
		_, _ = io.WriteString(writer, "\033[H\033[2J")
	}
}
