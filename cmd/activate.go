package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mj1618/activate-window/internal/activate"
	"github.com/mj1618/activate-window/internal/output"
)

var activateCmd = &cobra.Command{
	Use:   "activate",
	Short: "Raise the first window matching a title, class, or id",
	Long: `Ask the running service to raise the first window that matches.

Exactly one matching flag is required. Title matching is case-sensitive and
never matches windows without a title. With --direct the window system is
queried in-process using the configured sort order instead.

Exits non-zero when no window matched.`,
	Example: `  activate-window activate --class firefox
  activate-window activate --suffix " - Mozilla Thunderbird"
  activate-window activate --id 0x3a00007`,
	RunE: runActivate,
}

func init() {
	rootCmd.AddCommand(activateCmd)
	for _, f := range matcherFlags {
		activateCmd.Flags().String(f.flag, "", f.usage)
	}
	activateCmd.Flags().Uint64("id", 0, "Match the window identifier (decimal or 0x hex)")
	activateCmd.Flags().Bool("direct", false, "Query the window system directly instead of the service")
}

func runActivate(cmd *cobra.Command, args []string) error {
	m, err := matcherFromFlags(cmd)
	if err != nil {
		return err
	}

	direct, _ := cmd.Flags().GetBool("direct")
	var found bool
	if direct {
		found, err = activateDirect(cmd.Context(), m)
	} else {
		found, err = activateViaService(cmd.Context(), m)
	}
	if err != nil {
		return err
	}

	if err := output.Print(output.ActivateResult{
		Found:    found,
		Strategy: m.Strategy.String(),
		Value:    m.Value(),
	}); err != nil {
		return err
	}
	if !found {
		return errNoMatch
	}
	return nil
}

func activateViaService(ctx context.Context, m activate.Matcher) (bool, error) {
	client, conn, err := newClient()
	if err != nil {
		return false, err
	}
	defer conn.Close()
	return client.Activate(ctx, m)
}

func activateDirect(ctx context.Context, m activate.Matcher) (bool, error) {
	log, err := newLogger()
	if err != nil {
		return false, err
	}
	defer log.Close()

	engine, provider, err := newEngine(log)
	if err != nil {
		return false, err
	}
	defer provider.Close()
	return engine.Activate(ctx, m)
}
