package model

// Workspace identifies a host workspace (an X11 desktop, a Hyprland
// workspace). The zero value means the window belongs to no workspace.
type Workspace struct {
	ID    int64
	Valid bool
}

// WorkspaceOf returns a valid Workspace handle for id.
func WorkspaceOf(id int64) Workspace {
	return Workspace{ID: id, Valid: true}
}

// Window is a snapshot of one open window as reported by the host.
type Window struct {
	ID              uint64    `json:"id"`
	Title           *string   `json:"title"`
	WMClass         string    `json:"wm_class"`
	WMClassInstance string    `json:"wm_class_instance"`
	UserTime        uint32    `json:"user_time"`
	Workspace       Workspace `json:"-"`
}

// TitleText returns the title and whether the window has one.
func (w Window) TitleText() (string, bool) {
	if w.Title == nil {
		return "", false
	}
	return *w.Title, true
}

// StringPtr is a convenience for building windows with a title.
func StringPtr(s string) *string {
	return &s
}
