package activate

import (
	"strconv"
	"strings"

	"github.com/mj1618/activate-window/internal/model"
)

// Strategy names one way of matching a window.
type Strategy int

const (
	ByTitle Strategy = iota
	ByPrefix
	BySuffix
	BySubstring
	ByWMClass
	ByWMClassInstance
	ByID
)

var strategyNames = map[Strategy]string{
	ByTitle:           "title",
	ByPrefix:          "prefix",
	BySuffix:          "suffix",
	BySubstring:       "substring",
	ByWMClass:         "wm_class",
	ByWMClassInstance: "wm_class_instance",
	ByID:              "id",
}

func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return "unknown"
}

// Matcher is a window predicate. Text is used by every strategy except
// ByID, which uses ID.
//
// There is deliberately no regular-expression strategy: patterns come from
// untrusted callers and every predicate here runs in linear time.
type Matcher struct {
	Strategy Strategy
	Text     string
	ID       uint64
}

func Title(s string) Matcher           { return Matcher{Strategy: ByTitle, Text: s} }
func Prefix(s string) Matcher          { return Matcher{Strategy: ByPrefix, Text: s} }
func Suffix(s string) Matcher          { return Matcher{Strategy: BySuffix, Text: s} }
func Substring(s string) Matcher       { return Matcher{Strategy: BySubstring, Text: s} }
func WMClass(s string) Matcher         { return Matcher{Strategy: ByWMClass, Text: s} }
func WMClassInstance(s string) Matcher { return Matcher{Strategy: ByWMClassInstance, Text: s} }
func ID(id uint64) Matcher             { return Matcher{Strategy: ByID, ID: id} }

// Value returns the matcher argument as text, for logs and output.
func (m Matcher) Value() string {
	if m.Strategy == ByID {
		return strconv.FormatUint(m.ID, 10)
	}
	return m.Text
}

// Match reports whether w satisfies the matcher. Title strategies never
// match a window without a title.
func (m Matcher) Match(w model.Window) bool {
	switch m.Strategy {
	case ByWMClass:
		return w.WMClass == m.Text
	case ByWMClassInstance:
		return w.WMClassInstance == m.Text
	case ByID:
		return w.ID == m.ID
	}

	title, ok := w.TitleText()
	if !ok {
		return false
	}
	switch m.Strategy {
	case ByTitle:
		return title == m.Text
	case ByPrefix:
		return strings.HasPrefix(title, m.Text)
	case BySuffix:
		return strings.HasSuffix(title, m.Text)
	case BySubstring:
		return strings.Contains(title, m.Text)
	default:
		return false
	}
}
