package cmd

import (
	"fmt"
	"os"

	"codelines/internal/classifier"
	"codelines/internal/languages"
	"codelines/internal/report"

	"github.com/spf13/cobra"
)

// newClassifyCmd 创建 classify 子命令，逐行输出分类结果，便于排查规则集。
// 示例：codelines classify src/app.js --language default
func newClassifyCmd(state *app) *cobra.Command {
	var language string

	classifyCmd := &cobra.Command{
		Use:   "classify <file>",
		Short: "逐行输出单个文件的分类结果",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("language") {
				language = state.cfg.Language
			}

			var (
				rules languages.RuleSet
				err   error
			)
			if language != "" {
				rules, err = state.registry.Lookup(language)
			} else {
				rules, err = state.registry.ForFile(args[0])
			}
			if err != nil {
				return err
			}

			file, err := os.Open(args[0])
			if err != nil {
				return &classifier.FileReadError{Path: args[0], Err: err}
			}
			defer file.Close()

			table := report.NewLineTable(cmd.OutOrStdout())
			var tally classifier.Tally
			walkErr := classifier.Walk(file, rules, func(lineNo int, line string, result classifier.Result) error {
				tally.Record(result)
				return table.Write(lineNo, line, result)
			})
			if walkErr != nil {
				return &classifier.FileReadError{Path: args[0], Err: walkErr}
			}
			if err := table.Flush(); err != nil {
				return err
			}

			counts := tally.Counts()
			_, err = fmt.Fprintf(
				cmd.OutOrStdout(),
				"\n%s (%s): total=%d code=%d comments=%d blank=%d imports=%d declarations=%d loops=%d\n",
				args[0], rules.Name(),
				counts.Total, counts.Code, counts.Comments, counts.Blank,
				counts.Imports, counts.Declarations, counts.Loops,
			)
			return err
		},
	}

	classifyCmd.Flags().StringVar(&language, "language", "", "使用的规则集，默认按后缀识别")
	return classifyCmd
}
