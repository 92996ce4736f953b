package scanner

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"codelines/internal/languages"
	"codelines/internal/model"
)

// dirNode 记录一个目录在遍历时看到的条目顺序，折叠阶段按同样顺序写入报告。
type dirNode struct {
	displayPath string
	isFile      bool
	err         error
	items       []treeItem
}

// treeItem 要么指向一个文件任务，要么指向子目录。
type treeItem struct {
	file  int
	child *dirNode
}

// walker 在单个 goroutine 中递归遍历目录并投递文件任务。
type walker struct {
	service   *Service
	ctx       context.Context
	tasks     chan scanTask
	next      int
	forced    languages.RuleSet
	forcedErr error
}

// singleFile 在用户直接给定文件路径时创建任务。
func (w *walker) singleFile(absolutePath string, displayPath string) *dirNode {
	node := &dirNode{displayPath: displayPath, isFile: true}
	node.items = append(node.items, treeItem{file: w.enqueue(absolutePath, displayPath)})
	return node
}

// walkDirectory 按字典序递归遍历目录。
// 目录无法列出时在节点上记录错误，已经读到的条目仍然继续处理。
func (w *walker) walkDirectory(absolutePath string, displayPath string) *dirNode {
	node := &dirNode{displayPath: displayPath}
	if w.ctx.Err() != nil {
		return node
	}

	entries, err := os.ReadDir(absolutePath)
	if err != nil {
		node.err = &TraversalError{Path: displayPath, Err: err}
		logger().Warn("directory listing failed", "path", displayPath, "error", err)
	}

	for _, entry := range entries {
		if w.ctx.Err() != nil {
			return node
		}

		childAbsolute := filepath.Join(absolutePath, entry.Name())
		childDisplay := joinDisplay(displayPath, entry.Name())

		isDir := entry.IsDir()
		if entry.Type()&fs.ModeSymlink != 0 {
			info, statErr := os.Stat(childAbsolute)
			if statErr == nil && info.IsDir() {
				logger().Debug("skip symlinked directory", "path", childDisplay)
				continue
			}
		} else if !isDir && !entry.Type().IsRegular() {
			logger().Debug("skip irregular file", "path", childDisplay, "mode", entry.Type().String())
			continue
		}

		if isDir {
			if _, ignored := w.service.ignore[entry.Name()]; ignored {
				logger().Debug("skip ignored directory", "path", childDisplay)
				continue
			}
			node.items = append(node.items, treeItem{child: w.walkDirectory(childAbsolute, childDisplay)})
			continue
		}

		node.items = append(node.items, treeItem{file: w.enqueue(childAbsolute, childDisplay)})
	}

	return node
}

// enqueue 为文件选择规则集并投递任务，返回任务序号。
func (w *walker) enqueue(absolutePath string, displayPath string) int {
	task := scanTask{
		index:        w.next,
		absolutePath: absolutePath,
		displayPath:  displayPath,
	}
	w.next++

	if w.forced != nil || w.forcedErr != nil {
		task.rules, task.lookupErr = w.forced, w.forcedErr
	} else {
		task.rules, task.lookupErr = w.service.registry.ForFile(absolutePath)
	}

	w.tasks <- task
	return task.index
}

// foldDirectory 按遍历顺序把文件记录写入报告，并返回目录汇总。
func foldDirectory(report *model.Report, node *dirNode, entries map[int]model.Entry) model.LineCounts {
	var total model.LineCounts

	if node.err != nil {
		report.Add(model.Entry{Path: node.displayPath, Error: toScanError(node.err)})
	}

	for _, item := range node.items {
		if item.child != nil {
			total.Add(foldDirectory(report, item.child, entries))
			continue
		}
		total.Add(foldFile(report, item.file, entries))
	}

	report.AddDirectory(node.displayPath, total)
	return total
}

// foldFile 写入单个文件记录；失败的文件只贡献零计数。
func foldFile(report *model.Report, index int, entries map[int]model.Entry) model.LineCounts {
	entry := entries[index]
	report.Add(entry)
	if entry.Failed() {
		return model.LineCounts{}
	}
	return entry.Counts
}

// joinDisplay 以用户输入的根路径为前缀拼接展示路径。
func joinDisplay(dir string, name string) string {
	if strings.HasSuffix(dir, "/") {
		return dir + name
	}
	return dir + "/" + name
}
