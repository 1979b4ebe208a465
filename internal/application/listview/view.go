// Package listview turns a page of items plus column and action descriptors
// into a backend-neutral View that the HTML, terminal and CSV writers share.
// Composing a view performs no I/O.
package listview

import (
	"venueadmin/internal/domain/tablesettings"
)

// Variant selects the layout.
type Variant string

// Layout variants.
const (
	VariantTable Variant = "table"
	VariantGrid  Variant = "grid"
)

// GridColumns is the number of columns a default grid card shows.
const GridColumns = 3

// EmptyKind tells the two empty states apart.
type EmptyKind string

// Empty state kinds.
const (
	EmptyNoResults         EmptyKind = "no_results"
	EmptyNothingRegistered EmptyKind = "nothing_registered"
)

// EmptyState is rendered instead of rows when there is nothing to show.
type EmptyState struct {
	Kind       EmptyKind     `json:"kind"`
	SearchTerm string        `json:"searchTerm,omitempty"`
	Create     *CreateAction `json:"create,omitempty"`
}

// Title is the headline of the empty state.
func (e EmptyState) Title() string {
	if e.Kind == EmptyNoResults {
		return "No results found"
	}
	return "Nothing registered yet"
}

// Message explains the empty state.
func (e EmptyState) Message() string {
	if e.Kind == EmptyNoResults {
		return "No items match \"" + e.SearchTerm + "\". Try a different search."
	}
	return "There are no items yet."
}

// ActionButton is an action bound to one item.
type ActionButton struct {
	Name      string
	Label     string
	Icon      string
	Variant   ActionVariant
	ClassName string
	Confirm   string
}

// Row is one table row.
type Row struct {
	ID      string
	Cells   []Cell
	Actions []ActionButton
}

// Field is a labelled value on a grid card.
type Field struct {
	Label string
	Cell  Cell
}

// Card is one grid card. Title and Subtitle are optional and only filled by
// custom card renderers.
type Card struct {
	ID       string
	Title    string
	Subtitle string
	Fields   []Field
	Actions  []ActionButton
}

// View is the composed output of Render.
type View struct {
	Variant Variant
	Columns []HeaderCell
	Rows    []Row
	Cards   []Card
	Empty   *EmptyState
}

// IsEmpty reports whether the empty state should be shown.
func (v View) IsEmpty() bool { return v.Empty != nil }

// Options tunes Render.
type Options[T any] struct {
	Variant      Variant
	SearchTerm   string
	CreateAction *CreateAction
	Card         CardRenderer[T]
	// ActionFilter decides per item whether an action is offered. It is the
	// composer's hook for Action.Show; nil offers every action.
	ActionFilter func(action Action[T], item T) bool
	Settings     tablesettings.TableSettings
}

// ShowFilter is an ActionFilter that honours each action's Show predicate.
func ShowFilter[T any](action Action[T], item T) bool {
	return action.Visible(item)
}

// Render composes a view for one page of data.
//
// An empty page yields an empty state chosen solely by the search term:
// a non-empty term means "no results", otherwise "nothing registered" with
// the optional create action. Row and card identity always comes from
// getItemID.
// PRE: getItemID is non-nil; column keys are unique
// POST: Exactly one of Rows, Cards or Empty is populated
func Render[T any](data []T, columns []Column[T], actions []Action[T], getItemID func(T) string, opts Options[T]) View {
	variant := opts.Variant
	if variant != VariantGrid {
		variant = VariantTable
	}
	ordered := OrderColumns(columns, opts.Settings)
	view := View{
		Variant: variant,
		Columns: headers(ordered, opts.Settings),
	}

	if len(data) == 0 {
		empty := &EmptyState{Kind: EmptyNothingRegistered, Create: opts.CreateAction}
		if opts.SearchTerm != "" {
			empty = &EmptyState{Kind: EmptyNoResults, SearchTerm: opts.SearchTerm}
		}
		view.Empty = empty
		return view
	}

	if variant == VariantGrid {
		view.Cards = make([]Card, 0, len(data))
		for _, item := range data {
			view.Cards = append(view.Cards, cardFor(item, ordered, actions, getItemID, opts))
		}
		return view
	}

	view.Rows = make([]Row, 0, len(data))
	for _, item := range data {
		cells := make([]Cell, len(ordered))
		for i, c := range ordered {
			cells[i] = c.CellFor(item)
		}
		view.Rows = append(view.Rows, Row{
			ID:      getItemID(item),
			Cells:   cells,
			Actions: buttons(actions, item, opts.ActionFilter),
		})
	}
	return view
}

func cardFor[T any](item T, columns []Column[T], actions []Action[T], getItemID func(T) string, opts Options[T]) Card {
	var card Card
	if opts.Card != nil {
		card = opts.Card.RenderCard(item)
	} else {
		n := min(GridColumns, len(columns))
		card.Fields = make([]Field, n)
		for i, c := range columns[:n] {
			card.Fields[i] = Field{Label: c.Label, Cell: c.CellFor(item)}
		}
	}
	card.ID = getItemID(item)
	card.Actions = buttons(actions, item, opts.ActionFilter)
	return card
}

// buttons keeps declaration order.
func buttons[T any](actions []Action[T], item T, filter func(Action[T], T) bool) []ActionButton {
	out := make([]ActionButton, 0, len(actions))
	for _, a := range actions {
		if filter != nil && !filter(a, item) {
			continue
		}
		variant := a.Variant
		if variant == "" {
			variant = ActionDefault
		}
		out = append(out, ActionButton{
			Name:      a.Name,
			Label:     a.Label,
			Icon:      a.Icon,
			Variant:   variant,
			ClassName: a.ClassName,
			Confirm:   a.Confirm,
		})
	}
	return out
}
