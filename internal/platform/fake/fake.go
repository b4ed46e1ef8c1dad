// Package fake provides an in-memory window system for tests and dry runs.
package fake

import (
	"context"
	"sync"

	"github.com/mj1618/activate-window/internal/model"
	"github.com/mj1618/activate-window/internal/platform"
)

func init() {
	platform.Register("fake", func() (platform.Host, error) {
		return New(), nil
	})
}

// Activation records one activation request.
type Activation struct {
	Window       model.Window
	Workspace    model.Workspace
	ViaWorkspace bool
	Timestamp    uint32
}

// Host is an in-memory platform.Host.
type Host struct {
	mu          sync.Mutex
	windows     []model.Window
	active      model.Workspace
	now         uint32
	activations []Activation
	listCalls   int

	// ListErr and ActivateErr, when set, are returned by the matching calls.
	ListErr     error
	ActivateErr error
}

// New returns an empty host on workspace 0.
func New(windows ...model.Window) *Host {
	return &Host{
		windows: append([]model.Window(nil), windows...),
		active:  model.WorkspaceOf(0),
	}
}

// SetWindows replaces the window list.
func (h *Host) SetWindows(windows ...model.Window) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.windows = append([]model.Window(nil), windows...)
}

// SetActiveWorkspace changes the displayed workspace.
func (h *Host) SetActiveWorkspace(ws model.Workspace) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.active = ws
}

// SetTime sets the value returned by CurrentTime.
func (h *Host) SetTime(ts uint32) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.now = ts
}

// Activations returns every activation request seen so far.
func (h *Host) Activations() []Activation {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Activation(nil), h.activations...)
}

// ListCalls returns how many times Windows was called.
func (h *Host) ListCalls() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.listCalls
}

func (h *Host) Windows(ctx context.Context) ([]model.Window, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.listCalls++
	if h.ListErr != nil {
		return nil, h.ListErr
	}
	return append([]model.Window(nil), h.windows...), nil
}

func (h *Host) ActiveWorkspace(ctx context.Context) (model.Workspace, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.ListErr != nil {
		return model.Workspace{}, h.ListErr
	}
	return h.active, nil
}

func (h *Host) CurrentTime() uint32 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.now
}

func (h *Host) ActivateWindow(ctx context.Context, w model.Window, timestamp uint32) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.activations = append(h.activations, Activation{Window: w, Timestamp: timestamp})
	return h.ActivateErr
}

func (h *Host) ActivateWorkspace(ctx context.Context, ws model.Workspace, w model.Window, timestamp uint32) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.activations = append(h.activations, Activation{
		Window:       w,
		Workspace:    ws,
		ViaWorkspace: true,
		Timestamp:    timestamp,
	})
	if h.ActivateErr == nil {
		h.active = ws
	}
	return h.ActivateErr
}

func (h *Host) Name() string { return "fake" }

func (h *Host) Close() error { return nil }
