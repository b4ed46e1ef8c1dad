// Package enumerate orders the host's live window list for matching.
package enumerate

import (
	"cmp"
	"context"
	"fmt"
	"iter"
	"slices"

	"github.com/mj1618/activate-window/internal/model"
	"github.com/mj1618/activate-window/internal/platform"
)

// Windows observes the host's current window set and returns it as a lazy,
// single-use sequence ordered by order. When currentDesktopFirst is set,
// windows on the active workspace come before all others. Ranging over the
// sequence a second time yields nothing; call Windows again to re-observe
// the host.
//
// For the host-defined order, a platform.Describer source has each window
// read only when the sequence reaches it.
//
// Windows panics if order is not a recognized sort order; callers validate
// with model.ParseSortOrder before storing one.
func Windows(ctx context.Context, src platform.WindowSource, order model.SortOrder, currentDesktopFirst bool) (iter.Seq[model.Window], error) {
	less := comparator(order)

	var (
		raw     iter.Seq2[model.Window, error]
		windows []model.Window
	)
	if d, ok := src.(platform.Describer); ok && less == nil {
		ids, err := d.WindowIDs(ctx)
		if err != nil {
			return nil, fmt.Errorf("list windows: %w", err)
		}
		raw = described(ctx, d, ids)
	} else {
		var err error
		windows, err = src.Windows(ctx)
		if err != nil {
			return nil, fmt.Errorf("list windows: %w", err)
		}
		raw = values(windows)
	}

	var active model.Workspace
	if currentDesktopFirst {
		var err error
		active, err = src.ActiveWorkspace(ctx)
		if err != nil {
			return nil, fmt.Errorf("active workspace: %w", err)
		}
	}

	switch {
	case less != nil:
		return once(sorted(windows, less, active, currentDesktopFirst)), nil
	case currentDesktopFirst:
		return once(partitioned(raw, active)), nil
	default:
		return once(skipErrors(raw)), nil
	}
}

// List is Windows collected into a slice.
func List(ctx context.Context, src platform.WindowSource, order model.SortOrder, currentDesktopFirst bool) ([]model.Window, error) {
	seq, err := Windows(ctx, src, order, currentDesktopFirst)
	if err != nil {
		return nil, err
	}
	return slices.Collect(seq), nil
}

// once makes seq single-use.
func once(seq iter.Seq[model.Window]) iter.Seq[model.Window] {
	used := false
	return func(yield func(model.Window) bool) {
		if used {
			return
		}
		used = true
		seq(yield)
	}
}

func values(windows []model.Window) iter.Seq2[model.Window, error] {
	return func(yield func(model.Window, error) bool) {
		for _, w := range windows {
			if !yield(w, nil) {
				return
			}
		}
	}
}

// described reads each window as it is reached. Windows that vanished since
// listing are skipped; a read error ends the sequence.
func described(ctx context.Context, d platform.Describer, ids []uint64) iter.Seq2[model.Window, error] {
	return func(yield func(model.Window, error) bool) {
		for _, id := range ids {
			w, ok, err := d.Describe(ctx, id)
			if err != nil {
				yield(model.Window{}, err)
				return
			}
			if !ok {
				continue
			}
			if !yield(w, nil) {
				return
			}
		}
	}
}

// skipErrors drops the error half of raw. A read error after enumeration
// has begun cannot be reported through the sequence, so it ends it early.
func skipErrors(raw iter.Seq2[model.Window, error]) iter.Seq[model.Window] {
	return func(yield func(model.Window) bool) {
		for w, err := range raw {
			if err != nil || !yield(w) {
				return
			}
		}
	}
}

// partitioned yields windows on active first, holding back the rest until
// the first partition is exhausted.
func partitioned(raw iter.Seq2[model.Window, error], active model.Workspace) iter.Seq[model.Window] {
	return func(yield func(model.Window) bool) {
		var rest []model.Window
		for w, err := range raw {
			if err != nil {
				break
			}
			if w.Workspace != active {
				rest = append(rest, w)
				continue
			}
			if !yield(w) {
				return
			}
		}
		for _, w := range rest {
			if !yield(w) {
				return
			}
		}
	}
}

func sorted(windows []model.Window, less func(a, b model.Window) int, active model.Workspace, currentDesktopFirst bool) iter.Seq[model.Window] {
	return func(yield func(model.Window) bool) {
		ordered := slices.Clone(windows)
		slices.SortStableFunc(ordered, func(a, b model.Window) int {
			if currentDesktopFirst {
				aActive, bActive := a.Workspace == active, b.Workspace == active
				if aActive != bActive {
					if aActive {
						return -1
					}
					return 1
				}
			}
			return less(a, b)
		})
		for _, w := range ordered {
			if !yield(w) {
				return
			}
		}
	}
}

// comparator returns nil for the host-defined order.
func comparator(order model.SortOrder) func(a, b model.Window) int {
	switch order {
	case model.SortDefault:
		return nil
	case model.SortLowestUserTime:
		return func(a, b model.Window) int { return cmp.Compare(a.UserTime, b.UserTime) }
	case model.SortHighestUserTime:
		return func(a, b model.Window) int { return cmp.Compare(b.UserTime, a.UserTime) }
	case model.SortLowestWindowID:
		return func(a, b model.Window) int { return cmp.Compare(a.ID, b.ID) }
	case model.SortHighestWindowID:
		return func(a, b model.Window) int { return cmp.Compare(b.ID, a.ID) }
	default:
		panic(fmt.Sprintf("enumerate: internal inconsistency: unrecognized sort order %q", string(order)))
	}
}
