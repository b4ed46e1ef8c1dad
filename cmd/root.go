package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mj1618/activate-window/internal/config"
	"github.com/mj1618/activate-window/internal/logger"
	"github.com/mj1618/activate-window/internal/output"
	"github.com/mj1618/activate-window/internal/version"

	// Window system backends register themselves with the platform package.
	_ "github.com/mj1618/activate-window/internal/platform/fake"
	_ "github.com/mj1618/activate-window/internal/platform/hyprland"
	_ "github.com/mj1618/activate-window/internal/platform/x11"
)

var rootCmd = &cobra.Command{
	Use:   "activate-window",
	Short: "Find and raise open windows by title, class, or id",
	Long: `Find an open window by its title or WM_CLASS and bring it to the front.

Run "activate-window serve" once per session to export the D-Bus service,
then bind keys to "activate-window activate ..." or call the service
directly with gdbus/busctl.`,
	SilenceUsage: true,
}

// appConfig is loaded before any subcommand runs.
var appConfig config.Config

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("format", "yaml", "Output format: yaml, json")
	rootCmd.PersistentFlags().Bool("pretty", false, "Pretty-print JSON output")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default $XDG_CONFIG_HOME/activate-window/config.toml)")
	rootCmd.PersistentFlags().String("backend", "", "Window system backend: auto, x11, hyprland, fake")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		configPath, _ := rootCmd.PersistentFlags().GetString("config")
		c, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if backend, _ := rootCmd.PersistentFlags().GetString("backend"); backend != "" {
			c.Backend = backend
		}
		if debug, _ := rootCmd.PersistentFlags().GetBool("debug"); debug {
			c.Log.Level = "debug"
		}
		appConfig = c

		format, _ := rootCmd.PersistentFlags().GetString("format")
		f, err := output.ParseFormat(format)
		if err != nil {
			return err
		}
		output.OutputFormat = f
		output.PrettyOutput, _ = rootCmd.PersistentFlags().GetBool("pretty")
		return nil
	}
}

// newLogger builds the logger described by the loaded config.
func newLogger() (*logger.Logger, error) {
	level, err := logger.ParseLevel(appConfig.Log.Level)
	if err != nil {
		return nil, err
	}
	opts := []logger.Option{logger.WithConsole()}
	if appConfig.Log.File != "" {
		opts = append(opts, logger.WithFile(appConfig.Log.File))
	}
	opts = append(opts, logger.WithLevel(level))
	return logger.NewLogger(opts...)
}
