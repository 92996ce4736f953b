// Package scanner 提供目录树扫描与汇总能力。
// 该层负责目录遍历、任务分发、并发执行和结果折叠，不负责行分类细节。
package scanner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"codelines/internal/classifier"
	"codelines/internal/languages"
	"codelines/internal/model"
)

// Options 是扫描服务的可配置参数。
type Options struct {
	// Workers 是并发分析文件的 worker 数量，<= 0 时按 1 处理（顺序执行）。
	Workers int
	// Language 非空时所有文件都使用该规则集，否则按后缀匹配。
	Language string
	// IgnoreDirs 中的目录名在遍历时整体跳过。
	IgnoreDirs []string
	// Cache 非空时复用未变化文件的分析结果。
	Cache *classifier.Cache
}

// Service 是扫描服务对象。
type Service struct {
	registry *languages.Registry
	options  Options
	ignore   map[string]struct{}
}

// scanTask 表示一个待分析文件任务。
type scanTask struct {
	index        int
	absolutePath string
	displayPath  string
	rules        languages.RuleSet
	lookupErr    error
}

// workerResult 表示 worker 的执行产物。
type workerResult struct {
	index int
	entry model.Entry
}

// NewService 创建扫描服务。
func NewService(registry *languages.Registry, options Options) *Service {
	if options.Workers <= 0 {
		options.Workers = 1
	}

	ignore := make(map[string]struct{}, len(options.IgnoreDirs))
	for _, name := range options.IgnoreDirs {
		if name = strings.TrimSpace(name); name != "" {
			ignore[name] = struct{}{}
		}
	}

	return &Service{
		registry: registry,
		options:  options,
		ignore:   ignore,
	}
}

// ScanPath 扫描目录或单文件并生成报告。
//
// 单个文件或目录的失败不会中断扫描，而是以零计数 + 错误标记记录在报告中；
// 只有扫描根路径本身无效或 ctx 被取消时才返回错误。
func (s *Service) ScanPath(ctx context.Context, targetPath string) (*model.Report, error) {
	trimmedPath := strings.TrimSpace(targetPath)
	if trimmedPath == "" {
		return nil, errors.New("scan path is empty")
	}

	absoluteTarget, err := filepath.Abs(trimmedPath)
	if err != nil {
		return nil, fmt.Errorf("resolve absolute path: %w", err)
	}

	info, err := os.Stat(absoluteTarget)
	if err != nil {
		return nil, fmt.Errorf("stat path: %w", err)
	}

	logger().Debug("scan started", "path", absoluteTarget, "workers", s.options.Workers, "language", s.options.Language)

	walk := &walker{
		service: s,
		ctx:     ctx,
		tasks:   make(chan scanTask, s.options.Workers*4),
	}
	if s.options.Language != "" {
		walk.forced, walk.forcedErr = s.registry.Lookup(s.options.Language)
	}

	results := make(chan workerResult, s.options.Workers*4)
	rootChan := make(chan *dirNode, 1)

	var workerGroup sync.WaitGroup
	for i := 0; i < s.options.Workers; i++ {
		workerGroup.Add(1)
		go func() {
			defer workerGroup.Done()
			s.runWorker(ctx, walk.tasks, results)
		}()
	}

	go func() {
		defer close(walk.tasks)
		displayRoot := filepath.ToSlash(trimmedPath)
		if info.IsDir() {
			rootChan <- walk.walkDirectory(absoluteTarget, displayRoot)
			return
		}
		rootChan <- walk.singleFile(absoluteTarget, displayRoot)
	}()

	go func() {
		workerGroup.Wait()
		close(results)
	}()

	// 唯一的收集者：报告与总计只在当前 goroutine 中写入。
	entries := make(map[int]model.Entry)
	for item := range results {
		entries[item.index] = item.entry
	}

	root := <-rootChan
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := model.NewReport(absoluteTarget)
	var total model.LineCounts
	if root.isFile {
		total = foldFile(report, root.items[0].file, entries)
	} else {
		total = foldDirectory(report, root, entries)
	}
	report.SetTotal(total)

	logger().Debug("scan finished", "path", absoluteTarget, "entries", report.Len(), "total", total.Total)
	return report, nil
}

// runWorker 执行真实的文件读取和行分类。
func (s *Service) runWorker(ctx context.Context, tasks <-chan scanTask, results chan<- workerResult) {
	for task := range tasks {
		// 取消后继续消费队列，保证遍历 goroutine 不会阻塞。
		if ctx.Err() != nil {
			continue
		}
		results <- workerResult{index: task.index, entry: s.analyze(task)}
	}
}

// analyze 分析单个文件并生成报告记录。
func (s *Service) analyze(task scanTask) model.Entry {
	entry := model.Entry{Path: task.displayPath}

	if task.lookupErr != nil {
		entry.Error = toScanError(task.lookupErr)
		logger().Debug("file skipped", "path", task.displayPath, "error", task.lookupErr)
		return entry
	}
	entry.Language = task.rules.Name()

	var (
		counts model.LineCounts
		cached bool
		err    error
	)
	if s.options.Cache != nil {
		counts, cached, err = s.options.Cache.AnalyzeFile(task.absolutePath, task.rules.ID(), task.rules)
	} else {
		counts, err = classifier.AnalyzeFile(task.absolutePath, task.rules)
	}
	if err != nil {
		entry.Error = toScanError(err)
		logger().Warn("file analysis failed", "path", task.displayPath, "error", err)
		return entry
	}

	entry.Counts = counts
	logger().Debug("file analyzed", "path", task.displayPath, "language", entry.Language, "total", counts.Total, "cached", cached)
	return entry
}
