package dbusservice

import (
	"github.com/godbus/dbus/v5/introspect"
)

// Names locates the service on the bus.
type Names struct {
	Bus       string
	Path      string
	Interface string
}

type method struct {
	goName string
	name   string
	args   []introspect.Arg
}

func in(name, sig string) introspect.Arg  { return introspect.Arg{Name: name, Type: sig, Direction: "in"} }
func out(name, sig string) introspect.Arg { return introspect.Arg{Name: name, Type: sig, Direction: "out"} }

// methods is the exported interface. goName must match a method on
// *handler; name is the D-Bus member name callers use.
var methods = []method{
	{"ActivateByTitle", "activateByTitle", []introspect.Arg{in("fullTitle", "s"), out("found", "b")}},
	{"ActivateByPrefix", "activateByPrefix", []introspect.Arg{in("prefix", "s"), out("found", "b")}},
	{"ActivateBySuffix", "activateBySuffix", []introspect.Arg{in("suffix", "s"), out("found", "b")}},
	{"ActivateBySubstring", "activateBySubstring", []introspect.Arg{in("substring", "s"), out("found", "b")}},
	{"ActivateByWmClass", "activateByWmClass", []introspect.Arg{in("name", "s"), out("found", "b")}},
	{"ActivateByWmClassInstance", "activateByWmClassInstance", []introspect.Arg{in("instance", "s"), out("found", "b")}},
	{"ActivateById", "activateById", []introspect.Arg{in("id", "t"), out("found", "b")}},
	{"SetSortOrder", "setSortOrder", []introspect.Arg{in("newSortOrder", "s"), out("oldSortOrder", "s")}},
	{"SetCurrentDesktopFirst", "setCurrentDesktopFirst", []introspect.Arg{in("newValue", "b"), out("oldValue", "b")}},
}

// methodMap maps Go method names to D-Bus member names for ExportWithMap.
func methodMap() map[string]string {
	m := make(map[string]string, len(methods))
	for _, meth := range methods {
		m[meth.goName] = meth.name
	}
	return m
}

// Node returns the introspection data for the object at names.Path.
func Node(names Names) *introspect.Node {
	iface := introspect.Interface{Name: names.Interface}
	for _, meth := range methods {
		iface.Methods = append(iface.Methods, introspect.Method{Name: meth.name, Args: meth.args})
	}
	return &introspect.Node{
		Name:       names.Path,
		Interfaces: []introspect.Interface{introspect.IntrospectData, iface},
	}
}
