package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/godbus/dbus/v5"
	"github.com/spf13/cobra"

	"github.com/mj1618/activate-window/internal/dbusservice"
	"github.com/mj1618/activate-window/internal/version"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Export the window activation service on the D-Bus session bus",
	Long: `Export the activation methods on the session bus until interrupted.

The object implements activateByTitle, activateByPrefix, activateBySuffix,
activateBySubstring, activateByWmClass, activateByWmClassInstance,
activateById, setSortOrder and setCurrentDesktopFirst.

Settings changed over the bus last until the service stops.

Examples:
  activate-window serve
  gdbus call --session --dest de.lucaswerkmeister.ActivateWindowByTitle \
    --object-path /de/lucaswerkmeister/ActivateWindowByTitle \
    --method de.lucaswerkmeister.ActivateWindowByTitle.activateBySubstring 'Firefox'`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Close()

	log.Info("Starting activate-window",
		"version", version.Version,
		"pid", os.Getpid(),
		"os", runtime.GOOS,
		"backend", appConfig.Backend,
		"sort_order", appConfig.SortOrder,
		"current_desktop_first", appConfig.CurrentDesktopFirst)

	engine, provider, err := newEngine(log)
	if err != nil {
		log.Error("Failed to initialize window system", err, "backend", appConfig.Backend)
		return err
	}
	defer provider.Close()
	log.Info("Window system initialized", "backend", engine.Backend())

	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return fmt.Errorf("connect to session bus: %w", err)
	}
	defer conn.Close()

	svc := dbusservice.New(conn, busNames(), engine, log)
	if err := svc.Start(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info("Shutting down")
	return svc.Stop()
}
