package tablesettings

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// KeyPrefix is the fixed prefix of every persisted settings key.
const KeyPrefix = "table_settings"

// DefaultVersion is the cache-format version tag. Bumping it orphans all
// previously persisted settings.
const DefaultVersion = 1

// Domain errors
var (
	ErrEmptyEntity    = errors.New("entity name is required")
	ErrInvalidEntity  = errors.New("entity name may only contain letters, digits, '-' and '_'")
	ErrInvalidSize    = errors.New("column size must be positive")
	ErrEmptyColumnKey = errors.New("column key cannot be empty")
)

// SortRule is one entry of a multi-column sort.
type SortRule struct {
	ID   string `json:"id" yaml:"id"`
	Desc bool   `json:"desc" yaml:"desc"`
}

// PinnedColumns lists the column keys pinned to either edge of a table.
type PinnedColumns struct {
	Left  []string `json:"left,omitzero" yaml:"left,omitempty"`
	Right []string `json:"right,omitzero" yaml:"right,omitempty"`
}

// TableSettings holds the persisted view preferences for one list entity.
//
// Every top-level field is optional: a nil field means "not set" and is left
// untouched by Merge. An empty but non-nil field is a deliberate value (for
// example a cleared sort) and replaces whatever was there before.
type TableSettings struct {
	ColumnOrder   []string       `json:"columnOrder,omitzero" yaml:"columnOrder,omitempty"`
	ColumnSizes   map[string]int `json:"columnSizes,omitzero" yaml:"columnSizes,omitempty"`
	PinnedColumns *PinnedColumns `json:"pinnedColumns,omitzero" yaml:"pinnedColumns,omitempty"`
	SortingState  []SortRule     `json:"sortingState,omitzero" yaml:"sortingState,omitempty"`
}

// IsZero reports whether no field is set.
// INVARIANT: s is not mutated
func (s TableSettings) IsZero() bool {
	return s.ColumnOrder == nil && s.ColumnSizes == nil && s.PinnedColumns == nil && s.SortingState == nil
}

// Merge returns a copy of s with every field that is set in patch replacing
// the corresponding field of s. The merge is shallow: a new ColumnSizes map
// replaces the previous map instead of being merged key by key.
// PRE: none
// POST: Returns a new value; neither s nor patch is mutated
func (s TableSettings) Merge(patch TableSettings) TableSettings {
	out := s.Clone()
	if patch.ColumnOrder != nil {
		out.ColumnOrder = slices.Clone(patch.ColumnOrder)
	}
	if patch.ColumnSizes != nil {
		out.ColumnSizes = maps.Clone(patch.ColumnSizes)
	}
	if patch.PinnedColumns != nil {
		pinned := patch.PinnedColumns.clone()
		out.PinnedColumns = &pinned
	}
	if patch.SortingState != nil {
		out.SortingState = slices.Clone(patch.SortingState)
	}
	return out
}

// Clone returns a deep copy so callers can hand settings out without sharing
// the cache's backing arrays.
func (s TableSettings) Clone() TableSettings {
	out := TableSettings{
		ColumnOrder:  slices.Clone(s.ColumnOrder),
		ColumnSizes:  maps.Clone(s.ColumnSizes),
		SortingState: slices.Clone(s.SortingState),
	}
	if s.PinnedColumns != nil {
		pinned := s.PinnedColumns.clone()
		out.PinnedColumns = &pinned
	}
	return out
}

func (p PinnedColumns) clone() PinnedColumns {
	return PinnedColumns{Left: slices.Clone(p.Left), Right: slices.Clone(p.Right)}
}

// Validate checks the settings for values no table could honour.
// PRE: none
// POST: Returns nil if all sizes are positive and all keys non-empty
func (s TableSettings) Validate() error {
	for _, key := range s.ColumnOrder {
		if key == "" {
			return ErrEmptyColumnKey
		}
	}
	for key, width := range s.ColumnSizes {
		if key == "" {
			return ErrEmptyColumnKey
		}
		if width <= 0 {
			return fmt.Errorf("%w: %s=%d", ErrInvalidSize, key, width)
		}
	}
	for _, rule := range s.SortingState {
		if rule.ID == "" {
			return ErrEmptyColumnKey
		}
	}
	return nil
}

// SortFor returns the sort rule for a column key, if any.
func (s TableSettings) SortFor(key string) (SortRule, bool) {
	for _, rule := range s.SortingState {
		if rule.ID == key {
			return rule, true
		}
	}
	return SortRule{}, false
}

// PinSide returns "left", "right" or "" for a column key.
func (s TableSettings) PinSide(key string) string {
	if s.PinnedColumns == nil {
		return ""
	}
	if slices.Contains(s.PinnedColumns.Left, key) {
		return "left"
	}
	if slices.Contains(s.PinnedColumns.Right, key) {
		return "right"
	}
	return ""
}

// ValidateEntity checks that an entity name is safe to embed in a storage key
// and a file name.
func ValidateEntity(entity string) error {
	if entity == "" {
		return ErrEmptyEntity
	}
	for _, r := range entity {
		ok := r == '-' || r == '_' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if !ok {
			return ErrInvalidEntity
		}
	}
	return nil
}

// StorageKey builds the persisted key "<prefix>_<entity>_v<version>".
func StorageKey(entity string, version int) string {
	var b strings.Builder
	b.WriteString(KeyPrefix)
	b.WriteByte('_')
	b.WriteString(entity)
	fmt.Fprintf(&b, "_v%d", version)
	return b.String()
}
