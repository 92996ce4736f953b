package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// newLanguageCmd 创建 language 子命令。
// 命令用于展示当前已注册的规则集（含配置文件中的自定义语言）以及对应文件后缀。
func newLanguageCmd(state *app) *cobra.Command {
	return &cobra.Command{
		Use:   "language",
		Short: "展示已注册规则集及后缀",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

			if _, err := fmt.Fprintln(writer, "ID\tLANGUAGE\tEXTENSIONS"); err != nil {
				return err
			}

			for _, item := range state.registry.Languages() {
				extensions := strings.Join(item.Extensions, ", ")
				if extensions == "" {
					extensions = "-"
				}
				if _, err := fmt.Fprintf(writer, "%s\t%s\t%s\n", item.ID, item.Name, extensions); err != nil {
					return err
				}
			}

			return writer.Flush()
		},
	}
}
