package platform

import (
	"context"

	"github.com/mj1618/activate-window/internal/model"
)

// WindowSource reads the live window set from the host.
type WindowSource interface {
	// Windows returns the currently open windows in host-defined order.
	Windows(ctx context.Context) ([]model.Window, error)

	// ActiveWorkspace returns the workspace currently displayed.
	ActiveWorkspace(ctx context.Context) (model.Workspace, error)
}

// Describer is implemented by hosts where reading a window's properties
// costs a round trip. The enumerator uses it to read windows only as they
// are consumed, when the order allows that.
type Describer interface {
	// WindowIDs returns the identifiers of the open windows in host order.
	WindowIDs(ctx context.Context) ([]uint64, error)

	// Describe reads one window. It returns ok=false when the window has
	// gone away since it was listed.
	Describe(ctx context.Context, id uint64) (w model.Window, ok bool, err error)
}

// Activator raises and focuses windows.
type Activator interface {
	// CurrentTime returns the timestamp to attach to activation requests.
	CurrentTime() uint32

	// ActivateWindow focuses w in place.
	ActivateWindow(ctx context.Context, w model.Window, timestamp uint32) error

	// ActivateWorkspace switches to ws and focuses w on it.
	ActivateWorkspace(ctx context.Context, ws model.Workspace, w model.Window, timestamp uint32) error
}

// Host is a complete window-system backend.
type Host interface {
	WindowSource
	Activator

	// Name returns the backend name for logging.
	Name() string

	// Close releases the connection to the window system.
	Close() error
}
