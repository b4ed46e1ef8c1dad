package platform

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"
)

// Provider bundles the host backend selected for this session.
type Provider struct {
	Host Host
}

// Close releases the backend.
func (p *Provider) Close() error {
	if p == nil || p.Host == nil {
		return nil
	}
	return p.Host.Close()
}

// BackendAuto selects a backend from the session environment.
const BackendAuto = "auto"

// ErrUnsupported is returned when no backend matches the running session.
var ErrUnsupported = errors.New("no supported window system found; set DISPLAY (X11) or run under Hyprland")

// ErrUnknownBackend is returned when a backend name was never registered.
var ErrUnknownBackend = errors.New("unknown backend")

// NewHostFunc constructs a Host.
type NewHostFunc func() (Host, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]NewHostFunc{}
)

// Register makes a backend available under name. Backend packages call it
// from init().
func Register(name string, fn NewHostFunc) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = fn
}

// Backends returns the registered backend names, sorted.
func Backends() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewProvider returns a Provider for the named backend, or for the detected
// session when name is "auto" or empty.
func NewProvider(name string) (*Provider, error) {
	if name == "" || name == BackendAuto {
		detected, err := DetectBackend(os.Getenv)
		if err != nil {
			return nil, err
		}
		name = detected
	}

	registryMu.RLock()
	fn, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownBackend, name, Backends())
	}

	host, err := fn()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s backend: %w", name, err)
	}
	return &Provider{Host: host}, nil
}

// DetectBackend picks a backend name from the session environment.
// Hyprland wins over X11 because XWayland also sets DISPLAY.
func DetectBackend(getenv func(string) string) (string, error) {
	if getenv("HYPRLAND_INSTANCE_SIGNATURE") != "" {
		return "hyprland", nil
	}
	if getenv("DISPLAY") != "" {
		return "x11", nil
	}
	return "", ErrUnsupported
}
