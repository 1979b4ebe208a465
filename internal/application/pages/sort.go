package pages

import (
	"cmp"
	"slices"
	"strings"

	"venueadmin/internal/application/listview"
	"venueadmin/internal/domain/tablesettings"
)

// sortItems stable-sorts items by the rules in priority order. Rules naming
// unknown or non-sortable columns are skipped.
func sortItems[T any](items []T, columns []listview.Column[T], rules []tablesettings.SortRule) {
	type keyed struct {
		col  listview.Column[T]
		desc bool
	}
	var keys []keyed
	for _, rule := range rules {
		i := slices.IndexFunc(columns, func(c listview.Column[T]) bool { return c.Key == rule.ID })
		if i < 0 || !columns[i].Sortable {
			continue
		}
		keys = append(keys, keyed{col: columns[i], desc: rule.Desc})
	}
	if len(keys) == 0 {
		return
	}
	slices.SortStableFunc(items, func(a, b T) int {
		for _, k := range keys {
			c := compareCells(k.col.ValueFor(a), k.col.ValueFor(b))
			if k.desc {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return 0
	})
}

// compareCells orders empty values first, then by kind: numbers numerically,
// booleans false before true, text case-insensitively.
func compareCells(a, b listview.CellValue) int {
	_, aEmpty := a.(listview.EmptyValue)
	_, bEmpty := b.(listview.EmptyValue)
	switch {
	case aEmpty && bEmpty:
		return 0
	case aEmpty:
		return -1
	case bEmpty:
		return 1
	}
	if an, ok := a.(listview.NumberValue); ok {
		if bn, ok := b.(listview.NumberValue); ok {
			if !an.IsFloat && !bn.IsFloat {
				return cmp.Compare(an.Int, bn.Int)
			}
			return cmp.Compare(numberOf(an), numberOf(bn))
		}
	}
	if ab, ok := a.(listview.BoolValue); ok {
		if bb, ok := b.(listview.BoolValue); ok {
			return cmp.Compare(boolRank(bool(ab)), boolRank(bool(bb)))
		}
	}
	return strings.Compare(strings.ToLower(a.Format()), strings.ToLower(b.Format()))
}

func numberOf(n listview.NumberValue) float64 {
	if n.IsFloat {
		return n.Float
	}
	return float64(n.Int)
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}
