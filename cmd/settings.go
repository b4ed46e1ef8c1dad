package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mj1618/activate-window/internal/model"
	"github.com/mj1618/activate-window/internal/output"
)

var setSortOrderCmd = &cobra.Command{
	Use:       "set-sort-order <order>",
	Short:     "Change the order in which the service searches windows",
	Long:      "Change the running service's sort order and print the previous one.\n\nOrders: " + sortOrderNames() + ".",
	Args:      cobra.ExactArgs(1),
	ValidArgs: strings.Split(sortOrderNames(), ", "),
	RunE:      runSetSortOrder,
}

var setCurrentDesktopFirstCmd = &cobra.Command{
	Use:   "set-current-desktop-first <true|false>",
	Short: "Prefer windows on the current workspace",
	Long:  "Change whether the running service searches windows on the active workspace first, and print the previous value.",
	Args:  cobra.ExactArgs(1),
	RunE:  runSetCurrentDesktopFirst,
}

func init() {
	rootCmd.AddCommand(setSortOrderCmd)
	rootCmd.AddCommand(setCurrentDesktopFirstCmd)
}

func sortOrderNames() string {
	var names []string
	for _, o := range model.SortOrders() {
		names = append(names, o.String())
	}
	return strings.Join(names, ", ")
}

func runSetSortOrder(cmd *cobra.Command, args []string) error {
	client, conn, err := newClient()
	if err != nil {
		return err
	}
	defer conn.Close()

	old, err := client.SetSortOrder(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return output.Print(output.SettingResult{Setting: "sort_order", Old: old, New: args[0]})
}

func runSetCurrentDesktopFirst(cmd *cobra.Command, args []string) error {
	v, err := strconv.ParseBool(args[0])
	if err != nil {
		return fmt.Errorf("invalid value %q: expected true or false", args[0])
	}

	client, conn, err := newClient()
	if err != nil {
		return err
	}
	defer conn.Close()

	old, err := client.SetCurrentDesktopFirst(cmd.Context(), v)
	if err != nil {
		return err
	}
	return output.Print(output.SettingResult{Setting: "current_desktop_first", Old: old, New: v})
}
