// Package hyprland implements the window system backend for the Hyprland
// compositor using hyprctl.
package hyprland

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/mj1618/activate-window/internal/model"
	"github.com/mj1618/activate-window/internal/platform"
)

func init() {
	platform.Register("hyprland", func() (platform.Host, error) {
		return New()
	})
}

// Runner executes hyprctl with args and returns its combined output.
type Runner func(ctx context.Context, args ...string) ([]byte, error)

func execRunner(ctx context.Context, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, "hyprctl", args...).CombinedOutput()
}

// Host is a Hyprland backend.
type Host struct {
	run Runner
}

// New checks that hyprctl is installed.
func New() (*Host, error) {
	if _, err := exec.LookPath("hyprctl"); err != nil {
		return nil, fmt.Errorf("hyprctl not found in PATH: %w", err)
	}
	return &Host{run: execRunner}, nil
}

// NewWithRunner returns a Host that calls run instead of hyprctl.
func NewWithRunner(run Runner) *Host {
	return &Host{run: run}
}

func (h *Host) Name() string { return "hyprland" }

func (h *Host) Close() error { return nil }

type workspaceRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type client struct {
	Address        string       `json:"address"`
	Mapped         bool         `json:"mapped"`
	Workspace      workspaceRef `json:"workspace"`
	Class          string       `json:"class"`
	Title          string       `json:"title"`
	InitialClass   string       `json:"initialClass"`
	InitialTitle   string       `json:"initialTitle"`
	FocusHistoryID int          `json:"focusHistoryID"`
}

func (h *Host) Windows(ctx context.Context) ([]model.Window, error) {
	out, err := h.run(ctx, "clients", "-j")
	if err != nil {
		return nil, fmt.Errorf("hyprctl clients: %w: %s", err, bytes.TrimSpace(out))
	}
	return parseClients(out)
}

// parseClients converts hyprctl client JSON into windows. Hyprland has no
// user time, so focus history is inverted into one: the most recently
// focused client (focusHistoryID 0) gets the largest value.
func parseClients(data []byte) ([]model.Window, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var clients []client
	if err := json.Unmarshal(data, &clients); err != nil {
		return nil, fmt.Errorf("failed to parse hyprctl output: %w", err)
	}

	maxHistory := 0
	for _, c := range clients {
		if c.FocusHistoryID > maxHistory {
			maxHistory = c.FocusHistoryID
		}
	}

	windows := make([]model.Window, 0, len(clients))
	for _, c := range clients {
		if !c.Mapped {
			continue
		}
		id, err := parseAddress(c.Address)
		if err != nil {
			return nil, err
		}
		w := model.Window{
			ID:              id,
			WMClass:         c.Class,
			WMClassInstance: c.InitialClass,
			Workspace:       model.WorkspaceOf(c.Workspace.ID),
		}
		switch {
		case c.Title != "":
			w.Title = model.StringPtr(c.Title)
		case c.InitialTitle != "":
			w.Title = model.StringPtr(c.InitialTitle)
		}
		if c.FocusHistoryID >= 0 {
			w.UserTime = uint32(maxHistory - c.FocusHistoryID + 1)
		}
		windows = append(windows, w)
	}
	return windows, nil
}

func parseAddress(addr string) (uint64, error) {
	id, err := strconv.ParseUint(strings.TrimPrefix(addr, "0x"), 16, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid client address %q: %w", addr, err)
	}
	return id, nil
}

func (h *Host) ActiveWorkspace(ctx context.Context) (model.Workspace, error) {
	out, err := h.run(ctx, "activeworkspace", "-j")
	if err != nil {
		return model.Workspace{}, fmt.Errorf("hyprctl activeworkspace: %w: %s", err, bytes.TrimSpace(out))
	}
	var ws workspaceRef
	if err := json.Unmarshal(out, &ws); err != nil {
		return model.Workspace{}, fmt.Errorf("failed to parse hyprctl output: %w", err)
	}
	return model.WorkspaceOf(ws.ID), nil
}

// CurrentTime is always 0; Hyprland dispatchers take no timestamp.
func (h *Host) CurrentTime() uint32 { return 0 }

func (h *Host) ActivateWindow(ctx context.Context, w model.Window, timestamp uint32) error {
	return h.dispatch(ctx, "focuswindow", fmt.Sprintf("address:0x%x", w.ID))
}

// ActivateWorkspace switches to ws before focusing w. Special workspaces
// (scratchpads) have negative ids, which the workspace dispatcher reads as
// relative offsets; focuswindow alone brings those into view.
func (h *Host) ActivateWorkspace(ctx context.Context, ws model.Workspace, w model.Window, timestamp uint32) error {
	if ws.ID > 0 {
		if err := h.dispatch(ctx, "workspace", strconv.FormatInt(ws.ID, 10)); err != nil {
			return err
		}
	}
	return h.ActivateWindow(ctx, w, timestamp)
}

// dispatch runs a hyprctl dispatcher. hyprctl exits 0 on dispatcher errors
// and reports them on stdout, so anything other than "ok" is a failure.
func (h *Host) dispatch(ctx context.Context, args ...string) error {
	out, err := h.run(ctx, append([]string{"dispatch"}, args...)...)
	if err != nil {
		return fmt.Errorf("hyprctl dispatch %s: %w", strings.Join(args, " "), err)
	}
	if msg := strings.TrimSpace(string(out)); msg != "ok" {
		return fmt.Errorf("hyprctl dispatch %s: %s", strings.Join(args, " "), msg)
	}
	return nil
}
