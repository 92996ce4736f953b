// Package cmd 提供 codelines 的命令行入口与子命令编排。
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"codelines/internal/config"
	"codelines/internal/languages"

	"github.com/spf13/cobra"
)

// app 在 PersistentPreRunE 中完成初始化，供所有子命令共享。
type app struct {
	configPath string
	verbose    bool

	cfg      *config.Config
	registry *languages.Registry
}

// Execute 组装根命令并执行。
// version 参数由 main 包注入，便于在 CI/CD 中打包不同版本。
func Execute(version string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return newRootCmd(version).ExecuteContext(ctx)
}

// newRootCmd 创建根命令并注册全部子命令。
func newRootCmd(version string) *cobra.Command {
	state := &app{}

	rootCmd := &cobra.Command{
		Use:   "codelines",
		Short: "按行分类统计源码：空行、注释、代码及 import/声明/循环标签",
		Long: "codelines 逐行扫描单个文件或整棵目录树，\n" +
			"把每一行归入 blank/comment/code，并为代码行标注 import、声明、循环标签，\n" +
			"最终输出逐文件明细与全局总计。",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return state.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&state.configPath, "config", "", "配置文件路径，默认读取 "+config.DefaultFile)
	rootCmd.PersistentFlags().BoolVarP(&state.verbose, "verbose", "v", false, "输出 debug 日志")

	rootCmd.AddCommand(newVersionCmd(version))
	rootCmd.AddCommand(newLanguageCmd(state))
	rootCmd.AddCommand(newScanCmd(state))
	rootCmd.AddCommand(newClassifyCmd(state))
	rootCmd.AddCommand(newWatchCmd(state))

	return rootCmd
}

// setup 配置日志、加载配置并注册自定义规则集。
func (a *app) setup(cmd *cobra.Command) error {
	level := slog.LevelInfo
	if a.verbose {
		level = slog.LevelDebug
	}
	configureLogging(cmd, level)

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	registry := languages.NewRegistry()
	if err := registry.RegisterDefinitions(cfg.Languages); err != nil {
		return fmt.Errorf("register custom languages: %w", err)
	}

	a.cfg = cfg
	a.registry = registry
	slog.Debug("configuration ready", "languages", len(registry.Languages()), "workers", cfg.Workers)
	return nil
}

func configureLogging(cmd *cobra.Command, level slog.Level) {
	handler := slog.NewTextHandler(
		cmd.ErrOrStderr(),
		&slog.HandlerOptions{
			Level: level,
		},
	)
	logger := slog.New(handler)
	slog.SetDefault(logger)
}
