package model

import (
	"errors"
	"fmt"
	"strings"
)

// SortOrder selects how windows are ordered before matching.
type SortOrder string

const (
	SortDefault         SortOrder = "default"
	SortLowestUserTime  SortOrder = "lowest_user_time"
	SortHighestUserTime SortOrder = "highest_user_time"
	SortLowestWindowID  SortOrder = "lowest_window_id"
	SortHighestWindowID SortOrder = "highest_window_id"
)

// ErrInvalidSortOrder is returned when a sort order name is not recognized.
var ErrInvalidSortOrder = errors.New("invalid sort order")

var sortOrders = []SortOrder{
	SortDefault,
	SortLowestUserTime,
	SortHighestUserTime,
	SortLowestWindowID,
	SortHighestWindowID,
}

// SortOrders returns every recognized sort order.
func SortOrders() []SortOrder {
	out := make([]SortOrder, len(sortOrders))
	copy(out, sortOrders)
	return out
}

// Valid reports whether o is one of the recognized sort orders.
func (o SortOrder) Valid() bool {
	for _, known := range sortOrders {
		if o == known {
			return true
		}
	}
	return false
}

func (o SortOrder) String() string {
	return string(o)
}

// ParseSortOrder converts a name to a SortOrder. Matching is exact:
// "Default" is rejected.
func ParseSortOrder(s string) (SortOrder, error) {
	o := SortOrder(s)
	if !o.Valid() {
		names := make([]string, len(sortOrders))
		for i, known := range sortOrders {
			names[i] = string(known)
		}
		return "", fmt.Errorf("%w: %q (expected one of %s)", ErrInvalidSortOrder, s, strings.Join(names, ", "))
	}
	return o, nil
}
