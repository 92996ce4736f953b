package cmd

import (
	"errors"
	"fmt"
	"strings"

	"codelines/internal/report"
	"codelines/internal/scanner"

	"github.com/spf13/cobra"
)

// scanOptions 存放 scan 命令的可配置参数。
// 未在命令行显式设置的参数取配置文件/环境变量中的值。
type scanOptions struct {
	format      string
	output      string
	language    string
	workers     int
	directories bool
}

// newScanCmd 创建 scan 子命令。
// 示例：
//
//	codelines scan
//	codelines scan ./project --format json --output result.json
//	codelines scan ./legacy --language default --dirs
func newScanCmd(state *app) *cobra.Command {
	options := scanOptions{}

	scanCmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "扫描目录或文件并输出逐文件明细与总计",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			options.applyConfig(cmd, state)

			format, err := report.ResolveFormat(options.format, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if options.workers <= 0 {
				return errors.New("workers must be greater than 0")
			}

			target := "./"
			if len(args) == 1 {
				target = args[0]
			}

			service := scanner.NewService(state.registry, scanner.Options{
				Workers:    options.workers,
				Language:   options.language,
				IgnoreDirs: state.cfg.IgnoreDirs,
			})
			result, err := service.ScanPath(cmd.Context(), target)
			if err != nil {
				return err
			}

			switch format {
			case report.FormatTable:
				if err := report.PrintTable(cmd.OutOrStdout(), result, report.TableOptions{Directories: options.directories}); err != nil {
					return err
				}
			case report.FormatJSON:
				if err := report.PrintJSON(cmd.OutOrStdout(), result); err != nil {
					return err
				}
			}

			outputPath := strings.TrimSpace(options.output)
			if outputPath == "" {
				return nil
			}
			if err := report.WriteJSONFile(outputPath, result); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "JSON exported to %s\n", outputPath)
			return nil
		},
	}

	scanCmd.Flags().StringVar(&options.format, "format", "", "输出格式: table、json 或 auto（终端输出表格，否则 JSON）")
	scanCmd.Flags().StringVar(&options.output, "output", "", "额外导出 JSON 文件的路径")
	scanCmd.Flags().StringVar(&options.language, "language", "", "对所有文件强制使用的规则集，默认按后缀识别")
	scanCmd.Flags().IntVar(&options.workers, "workers", 0, "并发 worker 数量，默认 1（顺序扫描）")
	scanCmd.Flags().BoolVar(&options.directories, "dirs", false, "表格中额外输出每个目录的汇总")

	return scanCmd
}

// applyConfig 用配置值填充未在命令行显式设置的参数。
func (o *scanOptions) applyConfig(cmd *cobra.Command, state *app) {
	flags := cmd.Flags()
	if !flags.Changed("format") {
		o.format = state.cfg.Format
	}
	if !flags.Changed("output") {
		o.output = state.cfg.Output
	}
	if !flags.Changed("language") {
		o.language = state.cfg.Language
	}
	if !flags.Changed("workers") {
		o.workers = state.cfg.Workers
	}
}
