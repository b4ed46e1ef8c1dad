package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mj1618/activate-window/internal/output"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List open windows in search order",
	Long: `List open windows with their id, title, WM_CLASS, user time and workspace,
in the order "activate --direct" would search them.`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().String("sort-order", "", "Sort order (default from config)")
	listCmd.Flags().Bool("current-desktop-first", false, "List windows on the active workspace first")
}

func runList(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Close()

	engine, provider, err := newEngine(log)
	if err != nil {
		return err
	}
	defer provider.Close()

	if order, _ := cmd.Flags().GetString("sort-order"); order != "" {
		if _, err := engine.SetSortOrder(order); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("current-desktop-first") {
		v, _ := cmd.Flags().GetBool("current-desktop-first")
		engine.SetCurrentDesktopFirst(v)
	}

	windows, err := engine.Windows(cmd.Context())
	if err != nil {
		return err
	}
	s := engine.Settings()
	return output.Print(output.NewListResult(engine.Backend(), s.SortOrder, s.CurrentDesktopFirst, windows))
}
