package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"codelines/internal/classifier"
	"codelines/internal/model"

	"github.com/stretchr/testify/require"
)

func sampleReport() *model.Report {
	result := model.NewReport("/repo")
	result.Add(model.Entry{
		Path:     "./src/app.js",
		Language: "JavaScript",
		Counts:   model.LineCounts{Blank: 1, Comments: 2, Code: 3, Imports: 1, Declarations: 2, Loops: 1, Total: 6},
	})
	result.Add(model.Entry{
		Path:  "./README",
		Error: &model.ScanError{Kind: model.ErrorUnsupportedLanguage, Message: "unsupported language: no file extension"},
	})
	result.AddDirectory("./src", model.LineCounts{Blank: 1, Comments: 2, Code: 3, Imports: 1, Declarations: 2, Loops: 1, Total: 6})
	result.SetTotal(model.LineCounts{Blank: 1, Comments: 2, Code: 3, Imports: 1, Declarations: 2, Loops: 1, Total: 6})
	return result
}

func TestPrintTable(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, PrintTable(&out, sampleReport(), TableOptions{}))

	text := out.String()
	require.Contains(t, text, "SCANNED PATH")
	require.Contains(t, text, "./src/app.js")
	require.Contains(t, text, "DECLARATIONS")
	require.Contains(t, text, model.TotalKey)
	require.Contains(t, text, "SKIPPED PATH")
	require.Contains(t, text, "unsupported_language")
	require.NotContains(t, text, "DIRECTORY")

	out.Reset()
	require.NoError(t, PrintTable(&out, sampleReport(), TableOptions{Directories: true}))
	require.Contains(t, out.String(), "DIRECTORY")
	require.Contains(t, out.String(), "./src ")
}

func TestPrintJSON(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, PrintJSON(&out, sampleReport()))

	var decoded struct {
		ScannedPath string                 `json:"scanned_path"`
		Results     map[string]model.Entry `json:"results"`
		Directories []model.Entry          `json:"directories"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	require.Equal(t, "/repo", decoded.ScannedPath)
	require.Len(t, decoded.Results, 3)
	require.Equal(t, int64(6), decoded.Results[model.TotalKey].Counts.Total)
	require.Equal(t, model.ErrorUnsupportedLanguage, decoded.Results["./README"].Error.Kind)
	require.Len(t, decoded.Directories, 1)

	// 路径键保持遍历顺序。
	text := out.String()
	require.Less(t, strings.Index(text, `"./src/app.js"`), strings.Index(text, `"./README"`))
}

func TestWriteJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out", "result.json")
	require.NoError(t, WriteJSONFile(path, sampleReport()))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, json.Valid(content))
	require.Contains(t, string(content), model.TotalKey)
}

func TestResolveFormat(t *testing.T) {
	var out bytes.Buffer

	format, err := ResolveFormat("auto", &out)
	require.NoError(t, err)
	require.Equal(t, FormatJSON, format)

	format, err = ResolveFormat(" TABLE ", &out)
	require.NoError(t, err)
	require.Equal(t, FormatTable, format)

	_, err = ResolveFormat("xml", &out)
	require.Error(t, err)

	require.False(t, IsTerminal(&out))
}

func TestLineTable(t *testing.T) {
	var out bytes.Buffer
	table := NewLineTable(&out)

	require.NoError(t, table.Write(1, "// c", classifier.Result{Kind: classifier.CommentLine}))
	require.NoError(t, table.Write(2, "let a = require('a')", classifier.Result{
		Kind: classifier.Code,
		Tags: classifier.TagImport | classifier.TagDeclaration,
	}))
	require.NoError(t, table.Flush())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	require.True(t, strings.HasPrefix(lines[0], "LINE"))
	require.Contains(t, lines[1], "comment")
	require.Contains(t, lines[2], "import,declaration")
}
