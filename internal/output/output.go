package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mj1618/activate-window/internal/model"
)

// Format represents the output format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// OutputFormat is the current output format, set by the root command's --format flag.
var OutputFormat Format = FormatYAML

// PrettyOutput enables pretty-printing for JSON output.
var PrettyOutput bool

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatYAML, FormatJSON:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unsupported format: %s (use yaml or json)", s)
	}
}

// WindowRow is one window in `list` output.
type WindowRow struct {
	ID              uint64  `yaml:"id"                json:"id"`
	XID             string  `yaml:"xid"               json:"xid"`
	Title           *string `yaml:"title"             json:"title"`
	WMClass         string  `yaml:"wm_class"          json:"wm_class"`
	WMClassInstance string  `yaml:"wm_class_instance" json:"wm_class_instance"`
	UserTime        uint32  `yaml:"user_time"         json:"user_time"`
	Workspace       *int64  `yaml:"workspace"         json:"workspace"`
}

// NewWindowRow converts a window for printing. Workspace is nil for windows
// on no workspace.
func NewWindowRow(w model.Window) WindowRow {
	row := WindowRow{
		ID:              w.ID,
		XID:             fmt.Sprintf("0x%x", w.ID),
		Title:           w.Title,
		WMClass:         w.WMClass,
		WMClassInstance: w.WMClassInstance,
		UserTime:        w.UserTime,
	}
	if w.Workspace.Valid {
		id := w.Workspace.ID
		row.Workspace = &id
	}
	return row
}

// ListResult is the output of `list`.
type ListResult struct {
	Backend             string      `yaml:"backend"               json:"backend"`
	SortOrder           string      `yaml:"sort_order"            json:"sort_order"`
	CurrentDesktopFirst bool        `yaml:"current_desktop_first" json:"current_desktop_first"`
	Windows             []WindowRow `yaml:"windows"               json:"windows"`
}

// NewListResult builds a ListResult, always with a non-nil window list.
func NewListResult(backend string, order model.SortOrder, currentDesktopFirst bool, windows []model.Window) ListResult {
	rows := make([]WindowRow, 0, len(windows))
	for _, w := range windows {
		rows = append(rows, NewWindowRow(w))
	}
	return ListResult{
		Backend:             backend,
		SortOrder:           order.String(),
		CurrentDesktopFirst: currentDesktopFirst,
		Windows:             rows,
	}
}

// ActivateResult is the output of `activate`.
type ActivateResult struct {
	Found    bool   `yaml:"found"    json:"found"`
	Strategy string `yaml:"strategy" json:"strategy"`
	Value    string `yaml:"value"    json:"value"`
}

// SettingResult is the output of the setter commands.
type SettingResult struct {
	Setting string      `yaml:"setting" json:"setting"`
	Old     interface{} `yaml:"old"     json:"old"`
	New     interface{} `yaml:"new"     json:"new"`
}

// Print serializes v to stdout in the current output format.
func Print(v interface{}) error {
	return Fprint(os.Stdout, v)
}

// Fprint serializes v to w in the current output format.
func Fprint(w io.Writer, v interface{}) error {
	switch OutputFormat {
	case FormatJSON:
		return writeJSON(w, v, PrettyOutput)
	case FormatYAML:
		return writeYAML(w, v)
	default:
		return fmt.Errorf("unsupported output format: %s", OutputFormat)
	}
}

func writeJSON(w io.Writer, v interface{}, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("json encode: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	return enc.Close()
}

// YAMLString renders v as YAML, for transports that return text.
func YAMLString(v interface{}) (string, error) {
	b, err := yaml.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("yaml encode: %w", err)
	}
	return string(b), nil
}
