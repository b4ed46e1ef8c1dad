package cmd

import (
	"testing"

	"github.com/spf13/cobra"

	"github.com/mj1618/activate-window/internal/activate"
)

// newMatcherCmd returns a command carrying the activate matching flags.
func newMatcherCmd() *cobra.Command {
	c := &cobra.Command{Use: "test"}
	for _, f := range matcherFlags {
		c.Flags().String(f.flag, "", f.usage)
	}
	c.Flags().Uint64("id", 0, "")
	return c
}

func TestMatcherFromFlags(t *testing.T) {
	tests := []struct {
		name    string
		set     map[string]string
		want    activate.Matcher
		wantErr bool
	}{
		{name: "none", wantErr: true},
		{name: "title", set: map[string]string{"title": "Mail"}, want: activate.Title("Mail")},
		{name: "empty title", set: map[string]string{"title": ""}, want: activate.Title("")},
		{name: "prefix", set: map[string]string{"prefix": "Fire"}, want: activate.Prefix("Fire")},
		{name: "suffix", set: map[string]string{"suffix": "- Vim"}, want: activate.Suffix("- Vim")},
		{name: "substring", set: map[string]string{"substring": "chat"}, want: activate.Substring("chat")},
		{name: "class", set: map[string]string{"class": "Firefox"}, want: activate.WMClass("Firefox")},
		{name: "instance", set: map[string]string{"instance": "Navigator"}, want: activate.WMClassInstance("Navigator")},
		{name: "decimal id", set: map[string]string{"id": "42"}, want: activate.ID(42)},
		{name: "hex id", set: map[string]string{"id": "0x3a00007"}, want: activate.ID(0x3a00007)},
		{name: "two flags", set: map[string]string{"title": "a", "prefix": "b"}, wantErr: true},
		{name: "text and id", set: map[string]string{"class": "a", "id": "1"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newMatcherCmd()
			for k, v := range tt.set {
				if err := c.Flags().Set(k, v); err != nil {
					t.Fatalf("set %s: %v", k, err)
				}
			}
			got, err := matcherFromFlags(c)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBusNames_FromConfig(t *testing.T) {
	saved := appConfig
	defer func() { appConfig = saved }()

	appConfig.DBus.Name = "org.example.Activate"
	appConfig.DBus.Path = "/org/example/Activate"
	appConfig.DBus.Interface = "org.example.Activate"

	n := busNames()
	if n.Bus != "org.example.Activate" || n.Path != "/org/example/Activate" || n.Interface != "org.example.Activate" {
		t.Errorf("unexpected names: %+v", n)
	}
}
