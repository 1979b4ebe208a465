package listview

import (
	"slices"

	"venueadmin/internal/domain/tablesettings"
)

// Pin sides.
const (
	PinLeft  = "left"
	PinRight = "right"
)

// HeaderCell is one laid-out column header.
type HeaderCell struct {
	Key       string
	Label     string
	Sortable  bool
	Sort      string // "asc", "desc" or ""
	Pin       string
	Width     int
	ClassName string
}

// OrderColumns lays columns out according to settings.
//
// Keys listed in ColumnOrder come first in that order; keys the table does
// not know are ignored and columns missing from the order are appended in
// declaration order. Pinned columns are then grouped: left pins, the
// unpinned centre, right pins. Relative order inside each group is kept.
// PRE: column keys are unique
// POST: Returns a permutation of columns; the input slice is not mutated
func OrderColumns[T any](columns []Column[T], settings tablesettings.TableSettings) []Column[T] {
	byKey := make(map[string]int, len(columns))
	for i, c := range columns {
		byKey[c.Key] = i
	}

	ordered := make([]Column[T], 0, len(columns))
	used := make([]bool, len(columns))
	for _, key := range settings.ColumnOrder {
		i, ok := byKey[key]
		if !ok || used[i] {
			continue
		}
		used[i] = true
		ordered = append(ordered, columns[i])
	}
	for i, c := range columns {
		if !used[i] {
			ordered = append(ordered, c)
		}
	}

	if settings.PinnedColumns == nil {
		return ordered
	}
	left := make([]Column[T], 0)
	centre := make([]Column[T], 0, len(ordered))
	right := make([]Column[T], 0)
	for _, c := range ordered {
		switch settings.PinSide(c.Key) {
		case PinLeft:
			left = append(left, c)
		case PinRight:
			right = append(right, c)
		default:
			centre = append(centre, c)
		}
	}
	return slices.Concat(left, centre, right)
}

// headers builds header cells for already ordered columns.
func headers[T any](columns []Column[T], settings tablesettings.TableSettings) []HeaderCell {
	out := make([]HeaderCell, len(columns))
	for i, c := range columns {
		h := HeaderCell{
			Key:       c.Key,
			Label:     c.Label,
			Sortable:  c.Sortable,
			Pin:       settings.PinSide(c.Key),
			Width:     settings.ColumnSizes[c.Key],
			ClassName: c.ClassName,
		}
		if rule, ok := settings.SortFor(c.Key); ok && c.Sortable {
			h.Sort = "asc"
			if rule.Desc {
				h.Sort = "desc"
			}
		}
		out[i] = h
	}
	return out
}
