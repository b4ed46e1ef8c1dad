package activate

import (
	"context"
	"errors"
	"testing"

	"github.com/mj1618/activate-window/internal/model"
	"github.com/mj1618/activate-window/internal/platform/fake"
)

func titled(id uint64, title string) model.Window {
	return model.Window{ID: id, Title: model.StringPtr(title)}
}

func newEngine(t *testing.T, host *fake.Host, opts ...Option) *Engine {
	t.Helper()
	e, err := New(host, nil, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func mustActivate(t *testing.T, e *Engine, m Matcher) bool {
	t.Helper()
	found, err := e.Activate(context.Background(), m)
	if err != nil {
		t.Fatal(err)
	}
	return found
}

func TestEngine_ActivateByTitle(t *testing.T) {
	host := fake.New(titled(1, "Bar"), titled(2, "Foo"))
	e := newEngine(t, host)

	if !mustActivate(t, e, Title("Foo")) {
		t.Fatal("expected Foo to be found")
	}
	acts := host.Activations()
	if len(acts) != 1 || acts[0].Window.ID != 2 {
		t.Fatalf("expected window 2 activated, got %+v", acts)
	}

	if mustActivate(t, e, Title("foo")) {
		t.Error("case-mismatched title should not match")
	}
	if len(host.Activations()) != 1 {
		t.Error("not-found call must not activate anything")
	}
}

func TestEngine_AllOperations(t *testing.T) {
	ctx := context.Background()
	host := fake.New(
		model.Window{ID: 10, Title: model.StringPtr("Mozilla Firefox"), WMClass: "firefox", WMClassInstance: "Navigator"},
	)
	e := newEngine(t, host)

	ops := []struct {
		name string
		fn   func() (bool, error)
	}{
		{"title", func() (bool, error) { return e.ActivateByTitle(ctx, "Mozilla Firefox") }},
		{"prefix", func() (bool, error) { return e.ActivateByPrefix(ctx, "Mozilla") }},
		{"suffix", func() (bool, error) { return e.ActivateBySuffix(ctx, "Firefox") }},
		{"substring", func() (bool, error) { return e.ActivateBySubstring(ctx, "a F") }},
		{"wm_class", func() (bool, error) { return e.ActivateByWMClass(ctx, "firefox") }},
		{"wm_class_instance", func() (bool, error) { return e.ActivateByWMClassInstance(ctx, "Navigator") }},
		{"id", func() (bool, error) { return e.ActivateByID(ctx, 10) }},
	}
	for _, op := range ops {
		found, err := op.fn()
		if err != nil {
			t.Fatalf("%s: %v", op.name, err)
		}
		if !found {
			t.Errorf("%s: expected a match", op.name)
		}
	}
	if n := len(host.Activations()); n != len(ops) {
		t.Errorf("expected %d activations, got %d", len(ops), n)
	}
}

func TestEngine_Idempotent(t *testing.T) {
	host := fake.New(titled(1, "Mail"), titled(2, "Mail"))
	e := newEngine(t, host)

	first := mustActivate(t, e, Substring("Mail"))
	second := mustActivate(t, e, Substring("Mail"))
	if !first || !second {
		t.Fatal("expected both calls to find a window")
	}
	acts := host.Activations()
	if acts[0].Window.ID != acts[1].Window.ID {
		t.Errorf("activated %d then %d", acts[0].Window.ID, acts[1].Window.ID)
	}
}

func TestEngine_FirstMatchOnly(t *testing.T) {
	host := fake.New(titled(1, "Other"), titled(2, "Terminal 1"), titled(3, "Terminal 2"))
	e := newEngine(t, host)

	if !mustActivate(t, e, Substring("Terminal")) {
		t.Fatal("expected a match")
	}
	acts := host.Activations()
	if len(acts) != 1 {
		t.Fatalf("expected exactly one activation, got %d", len(acts))
	}
	if acts[0].Window.ID != 2 {
		t.Errorf("activated %d, want 2", acts[0].Window.ID)
	}
}

func TestEngine_UserTimeOrdering(t *testing.T) {
	windows := []model.Window{
		{ID: 1, Title: model.StringPtr("a"), UserTime: 3},
		{ID: 2, Title: model.StringPtr("b"), UserTime: 1},
		{ID: 3, Title: model.StringPtr("c"), UserTime: 2},
	}
	tests := []struct {
		order string
		want  uint64
	}{
		{"lowest_user_time", 2},
		{"highest_user_time", 1},
		{"lowest_window_id", 1},
		{"highest_window_id", 3},
		{"default", 1},
	}
	for _, tt := range tests {
		host := fake.New(windows...)
		e := newEngine(t, host)
		if _, err := e.SetSortOrder(tt.order); err != nil {
			t.Fatal(err)
		}
		if !mustActivate(t, e, Substring("")) {
			t.Fatalf("%s: expected a match", tt.order)
		}
		if got := host.Activations()[0].Window.ID; got != tt.want {
			t.Errorf("%s: activated %d, want %d", tt.order, got, tt.want)
		}
	}
}

func TestEngine_CurrentDesktopFirst(t *testing.T) {
	other := model.Window{ID: 1, Title: model.StringPtr("Editor"), UserTime: 100, Workspace: model.WorkspaceOf(2)}
	current := model.Window{ID: 2, Title: model.StringPtr("Editor"), UserTime: 1, Workspace: model.WorkspaceOf(0)}

	for _, order := range model.SortOrders() {
		host := fake.New(other, current)
		host.SetActiveWorkspace(model.WorkspaceOf(0))
		e := newEngine(t, host, WithSettings(Settings{SortOrder: order, CurrentDesktopFirst: true}))

		if !mustActivate(t, e, Title("Editor")) {
			t.Fatalf("%s: expected a match", order)
		}
		if got := host.Activations()[0].Window.ID; got != 2 {
			t.Errorf("%s: activated %d, want the window on the active workspace", order, got)
		}
	}
}

func TestEngine_ActivationViaWorkspace(t *testing.T) {
	onWorkspace := model.Window{ID: 1, Title: model.StringPtr("a"), Workspace: model.WorkspaceOf(3)}
	sticky := model.Window{ID: 2, Title: model.StringPtr("b")}
	host := fake.New(onWorkspace, sticky)
	host.SetTime(1234)
	e := newEngine(t, host)

	mustActivate(t, e, ID(1))
	mustActivate(t, e, ID(2))

	acts := host.Activations()
	if !acts[0].ViaWorkspace || acts[0].Workspace != model.WorkspaceOf(3) {
		t.Errorf("expected workspace activation, got %+v", acts[0])
	}
	if acts[1].ViaWorkspace {
		t.Errorf("window without workspace should be activated directly, got %+v", acts[1])
	}
	for _, a := range acts {
		if a.Timestamp != 1234 {
			t.Errorf("timestamp = %d, want 1234", a.Timestamp)
		}
	}
}

func TestEngine_EmptyWindowSet(t *testing.T) {
	host := fake.New()
	e := newEngine(t, host)
	for _, m := range []Matcher{Title(""), Prefix(""), Suffix(""), Substring(""), WMClass(""), WMClassInstance(""), ID(0)} {
		if mustActivate(t, e, m) {
			t.Errorf("%s: expected no match on empty window set", m.Strategy)
		}
	}
	if len(host.Activations()) != 0 {
		t.Error("expected no side effects")
	}
}

func TestEngine_ActivationErrorStillFound(t *testing.T) {
	host := fake.New(titled(1, "a"))
	host.ActivateErr = errors.New("window vanished")
	e := newEngine(t, host)

	found, err := e.ActivateByTitle(context.Background(), "a")
	if err != nil {
		t.Fatalf("activation failure should not surface: %v", err)
	}
	if !found {
		t.Error("expected found=true")
	}
}

func TestEngine_ListErrorSurfaces(t *testing.T) {
	host := fake.New()
	host.ListErr = errors.New("display closed")
	e := newEngine(t, host)

	_, err := e.ActivateByTitle(context.Background(), "a")
	if !errors.Is(err, host.ListErr) {
		t.Errorf("expected list error, got %v", err)
	}
}

func TestEngine_SetSortOrder(t *testing.T) {
	e := newEngine(t, fake.New())

	if _, err := e.SetSortOrder("bogus"); !errors.Is(err, model.ErrInvalidSortOrder) {
		t.Fatalf("expected ErrInvalidSortOrder, got %v", err)
	}
	old, err := e.SetSortOrder("lowest_window_id")
	if err != nil {
		t.Fatal(err)
	}
	if old != "default" {
		t.Errorf("old = %q, want default (bogus must not have been stored)", old)
	}
	old, err = e.SetSortOrder("highest_window_id")
	if err != nil {
		t.Fatal(err)
	}
	if old != "lowest_window_id" {
		t.Errorf("old = %q, want lowest_window_id", old)
	}
	if e.Settings().SortOrder != model.SortHighestWindowID {
		t.Errorf("settings = %+v", e.Settings())
	}
}

func TestEngine_SetCurrentDesktopFirst(t *testing.T) {
	e := newEngine(t, fake.New())
	if old := e.SetCurrentDesktopFirst(true); old {
		t.Error("default should be false")
	}
	if old := e.SetCurrentDesktopFirst(true); !old {
		t.Error("expected previous value true")
	}
	if old := e.SetCurrentDesktopFirst(false); !old {
		t.Error("expected previous value true")
	}
	if e.Settings().CurrentDesktopFirst {
		t.Error("expected flag cleared")
	}
}

func TestEngine_InstancesAreIndependent(t *testing.T) {
	a := newEngine(t, fake.New())
	b := newEngine(t, fake.New())
	if _, err := a.SetSortOrder("highest_user_time"); err != nil {
		t.Fatal(err)
	}
	if b.Settings().SortOrder != model.SortDefault {
		t.Errorf("engine b saw %q", b.Settings().SortOrder)
	}
}

func TestNew_RejectsInvalidSettings(t *testing.T) {
	_, err := New(fake.New(), nil, WithSettings(Settings{SortOrder: "sideways"}))
	if !errors.Is(err, model.ErrInvalidSortOrder) {
		t.Errorf("expected ErrInvalidSortOrder, got %v", err)
	}
}

func TestEngine_Windows(t *testing.T) {
	host := fake.New(titled(2, "b"), titled(1, "a"))
	e := newEngine(t, host, WithSettings(Settings{SortOrder: model.SortLowestWindowID}))
	windows, err := e.Windows(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(windows) != 2 || windows[0].ID != 1 {
		t.Errorf("unexpected order: %+v", windows)
	}
	if e.Backend() != "fake" {
		t.Errorf("backend = %q", e.Backend())
	}
}
