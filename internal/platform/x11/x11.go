// Package x11 implements the window system backend for EWMH-compliant X11
// window managers.
package x11

import (
	"context"
	"fmt"
	"sync"

	"github.com/robotn/xgb/xproto"
	"github.com/robotn/xgbutil"
	"github.com/robotn/xgbutil/ewmh"
	"github.com/robotn/xgbutil/icccm"

	"github.com/mj1618/activate-window/internal/model"
	"github.com/mj1618/activate-window/internal/platform"
)

func init() {
	platform.Register("x11", func() (platform.Host, error) {
		return New()
	})
}

// allDesktops is the _NET_WM_DESKTOP value for windows shown on every desktop.
const allDesktops = 0xFFFFFFFF

// sourcePager marks activation requests as coming from a pager, which
// window managers honor without focus-stealing prevention.
const sourcePager = 2

// Host talks to the X server over one connection. xgbutil is not safe for
// concurrent requests, so calls are serialized.
type Host struct {
	mu sync.Mutex
	xu *xgbutil.XUtil
}

// New connects to the display named by $DISPLAY.
func New() (*Host, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect to X server: %w", err)
	}
	if _, err := ewmh.SupportingWmCheckGet(xu, xu.RootWin()); err != nil {
		xu.Conn().Close()
		return nil, fmt.Errorf("window manager is not EWMH compliant: %w", err)
	}
	return &Host{xu: xu}, nil
}

func (h *Host) Name() string { return "x11" }

func (h *Host) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.xu.Conn().Close()
	return nil
}

func (h *Host) Windows(ctx context.Context) ([]model.Window, error) {
	ids, err := h.WindowIDs(ctx)
	if err != nil {
		return nil, err
	}

	windows := make([]model.Window, 0, len(ids))
	for _, id := range ids {
		w, ok, err := h.Describe(ctx, id)
		if err != nil {
			return nil, err
		}
		if ok {
			windows = append(windows, w)
		}
	}
	return windows, nil
}

// WindowIDs reads _NET_CLIENT_LIST, which is in mapping order.
func (h *Host) WindowIDs(ctx context.Context) ([]uint64, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, err := ewmh.ClientListGet(h.xu)
	if err != nil {
		return nil, fmt.Errorf("read _NET_CLIENT_LIST: %w", err)
	}
	ids := make([]uint64, len(clients))
	for i, win := range clients {
		ids[i] = uint64(win)
	}
	return ids, nil
}

// Describe reads the properties of one client. Missing properties are left
// empty; a window destroyed since listing has no WM_CLASS and no name and
// is reported as gone.
func (h *Host) Describe(ctx context.Context, id uint64) (model.Window, bool, error) {
	if err := ctx.Err(); err != nil {
		return model.Window{}, false, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	win := xproto.Window(id)
	w := model.Window{ID: id}
	found := false

	if name, err := ewmh.WmNameGet(h.xu, win); err == nil {
		w.Title = &name
		found = true
	} else if name, err := icccm.WmNameGet(h.xu, win); err == nil {
		w.Title = &name
		found = true
	}

	if class, err := icccm.WmClassGet(h.xu, win); err == nil && class != nil {
		w.WMClass = class.Class
		w.WMClassInstance = class.Instance
		found = true
	}

	if t, err := ewmh.WmUserTimeGet(h.xu, win); err == nil {
		w.UserTime = uint32(t)
	}

	if desk, err := ewmh.WmDesktopGet(h.xu, win); err == nil {
		found = true
		current := uint(allDesktops)
		if desk == allDesktops {
			if c, err := ewmh.CurrentDesktopGet(h.xu); err == nil {
				current = c
			}
		}
		w.Workspace = desktopWorkspace(desk, current)
	}
	return w, found, nil
}

// desktopWorkspace maps a _NET_WM_DESKTOP value to a workspace handle.
// Windows shown on every desktop belong to the current one.
func desktopWorkspace(desk, current uint) model.Workspace {
	if desk == allDesktops {
		desk = current
	}
	if desk == allDesktops {
		return model.Workspace{}
	}
	return model.WorkspaceOf(int64(desk))
}

func (h *Host) ActiveWorkspace(ctx context.Context) (model.Workspace, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	desk, err := ewmh.CurrentDesktopGet(h.xu)
	if err != nil {
		return model.Workspace{}, fmt.Errorf("read _NET_CURRENT_DESKTOP: %w", err)
	}
	return model.WorkspaceOf(int64(desk)), nil
}

func (h *Host) CurrentTime() uint32 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return uint32(h.xu.TimeGet())
}

func (h *Host) ActivateWindow(ctx context.Context, w model.Window, timestamp uint32) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.activate(w, timestamp)
}

func (h *Host) ActivateWorkspace(ctx context.Context, ws model.Workspace, w model.Window, timestamp uint32) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := ewmh.CurrentDesktopReqExtra(h.xu, int(ws.ID), xproto.Timestamp(timestamp)); err != nil {
		return fmt.Errorf("switch to desktop %d: %w", ws.ID, err)
	}
	return h.activate(w, timestamp)
}

func (h *Host) activate(w model.Window, timestamp uint32) error {
	active, err := ewmh.ActiveWindowGet(h.xu)
	if err != nil {
		active = 0
	}
	win := xproto.Window(w.ID)
	if err := ewmh.ActiveWindowReqExtra(h.xu, win, sourcePager, xproto.Timestamp(timestamp), active); err != nil {
		return fmt.Errorf("activate window 0x%x: %w", w.ID, err)
	}
	h.xu.Sync()
	return nil
}
