package cmd

import (
	"context"
	"fmt"
	"io"
	"reflect"
	"time"

	"codelines/internal/classifier"
	"codelines/internal/model"
	"codelines/internal/report"
	"codelines/internal/scanner"

	"github.com/spf13/cobra"
)

// newWatchCmd 创建 watch 子命令：按固定间隔重新扫描，结果变化时重绘表格。
// 未变化的文件命中 LRU 缓存，不会重复读取。
func newWatchCmd(state *app) *cobra.Command {
	var (
		interval time.Duration
		language string
		workers  int
	)

	watchCmd := &cobra.Command{
		Use:   "watch [path]",
		Short: "持续扫描目录，统计变化时刷新输出（Ctrl-C 退出）",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if interval <= 0 {
				return fmt.Errorf("interval must be positive, got %s", interval)
			}
			if !cmd.Flags().Changed("language") {
				language = state.cfg.Language
			}
			if !cmd.Flags().Changed("workers") {
				workers = state.cfg.Workers
			}

			cache, err := classifier.NewCache(state.cfg.CacheSize)
			if err != nil {
				return err
			}

			target := "./"
			if len(args) == 1 {
				target = args[0]
			}

			service := scanner.NewService(state.registry, scanner.Options{
				Workers:    workers,
				Language:   language,
				IgnoreDirs: state.cfg.IgnoreDirs,
				Cache:      cache,
			})
			return runWatch(cmd.Context(), service, target, interval, cmd.OutOrStdout())
		},
	}

	watchCmd.Flags().DurationVar(&interval, "interval", 2*time.Second, "重新扫描的间隔")
	watchCmd.Flags().StringVar(&language, "language", "", "对所有文件强制使用的规则集，默认按后缀识别")
	watchCmd.Flags().IntVar(&workers, "workers", 1, "并发 worker 数量")

	return watchCmd
}

// runWatch 循环扫描直到 ctx 结束；ctx 结束视为正常退出。
func runWatch(ctx context.Context, service *scanner.Service, target string, interval time.Duration, out io.Writer) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var previous []model.Entry
	for {
		result, err := service.ScanPath(ctx, target)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		if entries := result.Entries(); previous == nil || !reflect.DeepEqual(entries, previous) {
			report.ClearScreen(out)
			if err := report.PrintTable(out, result, report.TableOptions{}); err != nil {
				return err
			}
			if _, err := fmt.Fprintf(out, "\nwatching %s every %s, updated %s\n", target, interval, time.Now().Format(time.TimeOnly)); err != nil {
				return err
			}
			previous = entries
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
