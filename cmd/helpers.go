package cmd

import (
	"errors"
	"fmt"

	"github.com/godbus/dbus/v5"
	"github.com/spf13/cobra"

	"github.com/mj1618/activate-window/internal/activate"
	"github.com/mj1618/activate-window/internal/dbusservice"
	"github.com/mj1618/activate-window/internal/logger"
	"github.com/mj1618/activate-window/internal/platform"
)

// errNoMatch makes `activate` exit non-zero when nothing matched.
var errNoMatch = errors.New("no matching window")

// busNames returns the D-Bus names from the loaded config.
func busNames() dbusservice.Names {
	return dbusservice.Names{
		Bus:       appConfig.DBus.Name,
		Path:      appConfig.DBus.Path,
		Interface: appConfig.DBus.Interface,
	}
}

// newEngine opens the configured backend and wraps it in an engine seeded
// with the configured settings. The caller closes the provider.
func newEngine(log *logger.Logger) (*activate.Engine, *platform.Provider, error) {
	provider, err := platform.NewProvider(appConfig.Backend)
	if err != nil {
		return nil, nil, err
	}
	engine, err := activate.New(provider.Host, log, activate.WithSettings(appConfig.Settings()))
	if err != nil {
		provider.Close()
		return nil, nil, err
	}
	return engine, provider, nil
}

// newClient connects to the session bus. The caller closes the connection.
func newClient() (*dbusservice.Client, *dbus.Conn, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, nil, fmt.Errorf("connect to session bus: %w", err)
	}
	return dbusservice.NewClient(conn, busNames()), conn, nil
}

// matcherFlags lists the activate flags in strategy order.
var matcherFlags = []struct {
	flag     string
	strategy activate.Strategy
	usage    string
}{
	{"title", activate.ByTitle, "Match the full window title exactly"},
	{"prefix", activate.ByPrefix, "Match windows whose title starts with this text"},
	{"suffix", activate.BySuffix, "Match windows whose title ends with this text"},
	{"substring", activate.BySubstring, "Match windows whose title contains this text"},
	{"class", activate.ByWMClass, "Match the WM_CLASS class name exactly"},
	{"instance", activate.ByWMClassInstance, "Match the WM_CLASS instance name exactly"},
}

// matcherFromFlags builds the matcher for the single strategy flag set on cmd.
func matcherFromFlags(cmd *cobra.Command) (activate.Matcher, error) {
	var matchers []activate.Matcher
	for _, f := range matcherFlags {
		if !cmd.Flags().Changed(f.flag) {
			continue
		}
		v, _ := cmd.Flags().GetString(f.flag)
		matchers = append(matchers, activate.Matcher{Strategy: f.strategy, Text: v})
	}
	if cmd.Flags().Changed("id") {
		id, _ := cmd.Flags().GetUint64("id")
		matchers = append(matchers, activate.ID(id))
	}

	switch len(matchers) {
	case 0:
		return activate.Matcher{}, fmt.Errorf("specify one of --title, --prefix, --suffix, --substring, --class, --instance, or --id")
	case 1:
		return matchers[0], nil
	default:
		return activate.Matcher{}, fmt.Errorf("specify only one matching flag")
	}
}
