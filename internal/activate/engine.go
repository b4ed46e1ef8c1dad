// Package activate finds the first window matching a predicate and asks the
// host to raise it.
package activate

import (
	"context"
	"fmt"
	"sync"

	"github.com/mj1618/activate-window/internal/enumerate"
	"github.com/mj1618/activate-window/internal/logger"
	"github.com/mj1618/activate-window/internal/model"
	"github.com/mj1618/activate-window/internal/platform"
)

// Settings controls window ordering. It lives as long as the Engine.
type Settings struct {
	SortOrder           model.SortOrder
	CurrentDesktopFirst bool
}

// DefaultSettings returns host order with no workspace bias.
func DefaultSettings() Settings {
	return Settings{SortOrder: model.SortDefault}
}

// Engine matches and activates windows on one host. All methods are safe for
// concurrent use; each call runs to completion before the next starts.
type Engine struct {
	mu       sync.Mutex
	host     platform.Host
	log      *logger.Logger
	settings Settings
}

type Option func(*Engine) error

// WithSettings sets the initial settings.
func WithSettings(s Settings) Option {
	return func(e *Engine) error {
		if _, err := model.ParseSortOrder(string(s.SortOrder)); err != nil {
			return err
		}
		e.settings = s
		return nil
	}
}

// New creates an engine with default settings unless overridden.
func New(host platform.Host, log *logger.Logger, opts ...Option) (*Engine, error) {
	if log == nil {
		log = logger.Nop()
	}
	e := &Engine{
		host:     host,
		log:      log,
		settings: DefaultSettings(),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Activate walks the ordered window list and activates the first window m
// matches. It reports whether one was found. An error means the window list
// could not be read; a failed activation request is logged, not returned.
func (e *Engine) Activate(ctx context.Context, m Matcher) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	windows, err := enumerate.Windows(ctx, e.host, e.settings.SortOrder, e.settings.CurrentDesktopFirst)
	if err != nil {
		return false, err
	}

	for w := range windows {
		if !m.Match(w) {
			continue
		}
		e.raise(ctx, w)
		e.log.Debug("Window activated",
			"strategy", m.Strategy.String(),
			"value", m.Value(),
			"id", w.ID)
		return true, nil
	}

	e.log.Debug("No matching window",
		"strategy", m.Strategy.String(),
		"value", m.Value())
	return false, nil
}

// raise requests activation without waiting for the host to confirm focus.
func (e *Engine) raise(ctx context.Context, w model.Window) {
	ts := e.host.CurrentTime()
	var err error
	if w.Workspace.Valid {
		err = e.host.ActivateWorkspace(ctx, w.Workspace, w, ts)
	} else {
		err = e.host.ActivateWindow(ctx, w, ts)
	}
	if err != nil {
		e.log.Error("Activation request failed", err,
			"backend", e.host.Name(),
			"id", w.ID)
	}
}

func (e *Engine) ActivateByTitle(ctx context.Context, title string) (bool, error) {
	return e.Activate(ctx, Title(title))
}

func (e *Engine) ActivateByPrefix(ctx context.Context, prefix string) (bool, error) {
	return e.Activate(ctx, Prefix(prefix))
}

func (e *Engine) ActivateBySuffix(ctx context.Context, suffix string) (bool, error) {
	return e.Activate(ctx, Suffix(suffix))
}

func (e *Engine) ActivateBySubstring(ctx context.Context, substring string) (bool, error) {
	return e.Activate(ctx, Substring(substring))
}

func (e *Engine) ActivateByWMClass(ctx context.Context, name string) (bool, error) {
	return e.Activate(ctx, WMClass(name))
}

func (e *Engine) ActivateByWMClassInstance(ctx context.Context, instance string) (bool, error) {
	return e.Activate(ctx, WMClassInstance(instance))
}

func (e *Engine) ActivateByID(ctx context.Context, id uint64) (bool, error) {
	return e.Activate(ctx, ID(id))
}

// SetSortOrder replaces the sort order and returns the previous one. An
// unrecognized name returns an error wrapping model.ErrInvalidSortOrder and
// leaves the setting unchanged.
func (e *Engine) SetSortOrder(name string) (string, error) {
	order, err := model.ParseSortOrder(name)
	if err != nil {
		return "", err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	old := e.settings.SortOrder
	e.settings.SortOrder = order
	e.log.Info("Sort order changed", "old", old.String(), "new", order.String())
	return old.String(), nil
}

// SetCurrentDesktopFirst replaces the flag and returns the previous value.
func (e *Engine) SetCurrentDesktopFirst(v bool) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	old := e.settings.CurrentDesktopFirst
	e.settings.CurrentDesktopFirst = v
	e.log.Info("Current desktop first changed", "old", old, "new", v)
	return old
}

// Settings returns a snapshot of the current settings.
func (e *Engine) Settings() Settings {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.settings
}

// Windows returns the window list in the order Activate would visit it.
func (e *Engine) Windows(ctx context.Context) ([]model.Window, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	windows, err := enumerate.List(ctx, e.host, e.settings.SortOrder, e.settings.CurrentDesktopFirst)
	if err != nil {
		return nil, fmt.Errorf("enumerate windows: %w", err)
	}
	return windows, nil
}

// Backend returns the host backend name.
func (e *Engine) Backend() string {
	return e.host.Name()
}
