package dbusservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/godbus/dbus/v5"

	"github.com/mj1618/activate-window/internal/activate"
	"github.com/mj1618/activate-window/internal/model"
)

// caller is the part of dbus.BusObject the client needs.
type caller interface {
	CallWithContext(ctx context.Context, method string, flags dbus.Flags, args ...interface{}) *dbus.Call
}

// Client calls a running service.
type Client struct {
	obj   caller
	iface string
}

// NewClient returns a client for the service named by names on conn.
func NewClient(conn *dbus.Conn, names Names) *Client {
	return &Client{
		obj:   conn.Object(names.Bus, dbus.ObjectPath(names.Path)),
		iface: names.Interface,
	}
}

func (c *Client) call(ctx context.Context, member string, arg interface{}, ret interface{}) error {
	call := c.obj.CallWithContext(ctx, c.iface+"."+member, 0, arg)
	if err := call.Store(ret); err != nil {
		return translateError(member, err)
	}
	return nil
}

// translateError maps remote InvalidArgs back to model.ErrInvalidSortOrder.
func translateError(member string, err error) error {
	name := ""
	var dErr dbus.Error
	var dErrPtr *dbus.Error
	switch {
	case errors.As(err, &dErr):
		name = dErr.Name
	case errors.As(err, &dErrPtr):
		name = dErrPtr.Name
	}
	if name == errInvalidArgs && member == "setSortOrder" {
		return fmt.Errorf("%s: %w: %v", member, model.ErrInvalidSortOrder, err)
	}
	return fmt.Errorf("%s: %w", member, err)
}

// Activate calls the member matching m's strategy.
func (c *Client) Activate(ctx context.Context, m activate.Matcher) (bool, error) {
	var member string
	var arg interface{} = m.Text
	switch m.Strategy {
	case activate.ByTitle:
		member = "activateByTitle"
	case activate.ByPrefix:
		member = "activateByPrefix"
	case activate.BySuffix:
		member = "activateBySuffix"
	case activate.BySubstring:
		member = "activateBySubstring"
	case activate.ByWMClass:
		member = "activateByWmClass"
	case activate.ByWMClassInstance:
		member = "activateByWmClassInstance"
	case activate.ByID:
		member = "activateById"
		arg = m.ID
	default:
		return false, fmt.Errorf("unknown strategy %d", m.Strategy)
	}

	var found bool
	if err := c.call(ctx, member, arg, &found); err != nil {
		return false, err
	}
	return found, nil
}

// SetSortOrder swaps the service's sort order and returns the previous one.
func (c *Client) SetSortOrder(ctx context.Context, order string) (string, error) {
	var old string
	if err := c.call(ctx, "setSortOrder", order, &old); err != nil {
		return "", err
	}
	return old, nil
}

// SetCurrentDesktopFirst swaps the flag and returns the previous value.
func (c *Client) SetCurrentDesktopFirst(ctx context.Context, v bool) (bool, error) {
	var old bool
	if err := c.call(ctx, "setCurrentDesktopFirst", v, &old); err != nil {
		return false, err
	}
	return old, nil
}
