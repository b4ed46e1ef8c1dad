package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/mj1618/activate-window/internal/activate"
	"github.com/mj1618/activate-window/internal/model"
)

const (
	DefaultBusName   = "de.lucaswerkmeister.ActivateWindowByTitle"
	DefaultPath      = "/de/lucaswerkmeister/ActivateWindowByTitle"
	DefaultInterface = "de.lucaswerkmeister.ActivateWindowByTitle"
)

// Config holds application configuration.
type Config struct {
	Backend             string     `mapstructure:"backend"`
	SortOrder           string     `mapstructure:"sort_order"`
	CurrentDesktopFirst bool       `mapstructure:"current_desktop_first"`
	DBus                DBusConfig `mapstructure:"dbus"`
	Log                 LogConfig  `mapstructure:"log"`
}

// DBusConfig names the exported object on the session bus.
type DBusConfig struct {
	Name      string `mapstructure:"name"`
	Path      string `mapstructure:"path"`
	Interface string `mapstructure:"interface"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Settings returns the initial engine settings. Load has already validated
// the sort order.
func (c Config) Settings() activate.Settings {
	return activate.Settings{
		SortOrder:           model.SortOrder(c.SortOrder),
		CurrentDesktopFirst: c.CurrentDesktopFirst,
	}
}

// Load reads configuration from path (or the default location when empty)
// and the environment. Env var overrides use prefix ACTIVATE_WINDOW_, e.g.
// ACTIVATE_WINDOW_SORT_ORDER or ACTIVATE_WINDOW_DBUS_NAME. A missing file at
// the default location is not an error; a missing file that was named
// explicitly is.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("backend", "auto")
	v.SetDefault("sort_order", string(model.SortDefault))
	v.SetDefault("current_desktop_first", false)
	v.SetDefault("dbus.name", DefaultBusName)
	v.SetDefault("dbus.path", DefaultPath)
	v.SetDefault("dbus.interface", DefaultInterface)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")

	v.SetConfigType("toml")

	if path == "" {
		path = os.Getenv("ACTIVATE_WINDOW_CONFIG")
	}
	explicit := path != ""
	if explicit {
		v.SetConfigFile(path)
	} else {
		dir, err := os.UserConfigDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(dir, "activate-window"))
		}
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("ACTIVATE_WINDOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		missing := errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
		if explicit || !missing {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if _, err := model.ParseSortOrder(c.SortOrder); err != nil {
		return Config{}, fmt.Errorf("config sort_order: %w", err)
	}
	return c, nil
}
