// Package dbusservice exports the activation engine on the D-Bus session bus
// and provides a client for it.
package dbusservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"

	"github.com/mj1618/activate-window/internal/activate"
	"github.com/mj1618/activate-window/internal/logger"
	"github.com/mj1618/activate-window/internal/model"
)

const (
	errInvalidArgs = "org.freedesktop.DBus.Error.InvalidArgs"
	errFailed      = "org.freedesktop.DBus.Error.Failed"
)

// ErrNameTaken is returned by Start when another process owns the bus name.
var ErrNameTaken = errors.New("bus name already owned")

// Service is the engine exported on one bus connection.
type Service struct {
	conn    *dbus.Conn
	names   Names
	handler *handler
	log     *logger.Logger
	started bool
}

// New prepares a service; nothing is exported until Start.
func New(conn *dbus.Conn, names Names, engine *activate.Engine, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		conn:    conn,
		names:   names,
		handler: &handler{engine: engine, log: log},
		log:     log,
	}
}

// Start exports the object and claims the well-known name.
func (s *Service) Start() error {
	path := dbus.ObjectPath(s.names.Path)
	if !path.IsValid() {
		return fmt.Errorf("invalid object path %q", s.names.Path)
	}

	if err := s.conn.ExportWithMap(s.handler, methodMap(), path, s.names.Interface); err != nil {
		return fmt.Errorf("export %s: %w", s.names.Interface, err)
	}
	if err := s.conn.Export(introspect.NewIntrospectable(Node(s.names)), path, "org.freedesktop.DBus.Introspectable"); err != nil {
		s.unexport()
		return fmt.Errorf("export introspection: %w", err)
	}

	reply, err := s.conn.RequestName(s.names.Bus, dbus.NameFlagDoNotQueue)
	if err != nil {
		s.unexport()
		return fmt.Errorf("request name %s: %w", s.names.Bus, err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		s.unexport()
		return fmt.Errorf("%w: %s", ErrNameTaken, s.names.Bus)
	}

	s.started = true
	s.log.Info("D-Bus service started",
		"name", s.names.Bus,
		"path", s.names.Path,
		"interface", s.names.Interface)
	return nil
}

// Stop releases the name and removes the exported object.
func (s *Service) Stop() error {
	if !s.started {
		return nil
	}
	s.started = false
	s.unexport()
	if _, err := s.conn.ReleaseName(s.names.Bus); err != nil {
		return fmt.Errorf("release name %s: %w", s.names.Bus, err)
	}
	s.log.Info("D-Bus service stopped", "name", s.names.Bus)
	return nil
}

func (s *Service) unexport() {
	path := dbus.ObjectPath(s.names.Path)
	_ = s.conn.Export(nil, path, s.names.Interface)
	_ = s.conn.Export(nil, path, "org.freedesktop.DBus.Introspectable")
}

// handler carries the exported methods. Every exported method on this type
// becomes a D-Bus member, so helpers stay unexported.
type handler struct {
	engine *activate.Engine
	log    *logger.Logger
}

func (h *handler) activate(m activate.Matcher) (bool, *dbus.Error) {
	found, err := h.engine.Activate(context.Background(), m)
	if err != nil {
		h.log.Error("Activation call failed", err,
			"strategy", m.Strategy.String(),
			"value", m.Value())
		return false, dbus.NewError(errFailed, []interface{}{err.Error()})
	}
	h.log.Debug("Activation call",
		"strategy", m.Strategy.String(),
		"value", m.Value(),
		"found", found)
	return found, nil
}

func (h *handler) ActivateByTitle(title string) (bool, *dbus.Error) {
	return h.activate(activate.Title(title))
}

func (h *handler) ActivateByPrefix(prefix string) (bool, *dbus.Error) {
	return h.activate(activate.Prefix(prefix))
}

func (h *handler) ActivateBySuffix(suffix string) (bool, *dbus.Error) {
	return h.activate(activate.Suffix(suffix))
}

func (h *handler) ActivateBySubstring(substring string) (bool, *dbus.Error) {
	return h.activate(activate.Substring(substring))
}

func (h *handler) ActivateByWmClass(name string) (bool, *dbus.Error) {
	return h.activate(activate.WMClass(name))
}

func (h *handler) ActivateByWmClassInstance(instance string) (bool, *dbus.Error) {
	return h.activate(activate.WMClassInstance(instance))
}

func (h *handler) ActivateById(id uint64) (bool, *dbus.Error) {
	return h.activate(activate.ID(id))
}

func (h *handler) SetSortOrder(order string) (string, *dbus.Error) {
	old, err := h.engine.SetSortOrder(order)
	if err != nil {
		if errors.Is(err, model.ErrInvalidSortOrder) {
			return "", dbus.NewError(errInvalidArgs, []interface{}{err.Error()})
		}
		return "", dbus.NewError(errFailed, []interface{}{err.Error()})
	}
	return old, nil
}

func (h *handler) SetCurrentDesktopFirst(v bool) (bool, *dbus.Error) {
	return h.engine.SetCurrentDesktopFirst(v), nil
}
