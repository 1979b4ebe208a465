package listview

import (
	"context"
	"html/template"
)

// Cell is the rendered content of one table cell. HTML, when set, is used by
// the HTML backend instead of Text; Text is always used for CSV and terminal
// output.
type Cell struct {
	Text string
	HTML template.HTML
}

// CellRenderer customises how a column renders an item.
type CellRenderer[T any] interface {
	RenderCell(item T) Cell
}

// RenderFunc adapts a function to CellRenderer.
type RenderFunc[T any] func(item T) Cell

// RenderCell calls f.
func (f RenderFunc[T]) RenderCell(item T) Cell { return f(item) }

// TextFunc adapts a function returning plain text to CellRenderer.
type TextFunc[T any] func(item T) string

// RenderCell calls f and wraps the text.
func (f TextFunc[T]) RenderCell(item T) Cell { return Cell{Text: f(item)} }

// Column describes one column of a list.
//
// Cells are produced by Render when set; otherwise the value comes from Value,
// or from looking up Key on the item, and is formatted through CellValue.
type Column[T any] struct {
	Key       string
	Label     string
	Sortable  bool
	ClassName string
	Value     func(item T) any
	Render    CellRenderer[T]
}

// CellFor renders the cell for item.
func (c Column[T]) CellFor(item T) Cell {
	if c.Render != nil {
		return c.Render.RenderCell(item)
	}
	return Cell{Text: c.ValueFor(item).Format()}
}

// ValueFor resolves the raw value of the column without its renderer.
func (c Column[T]) ValueFor(item T) CellValue {
	if c.Value != nil {
		return ResolveValue(c.Value(item))
	}
	return ResolveValue(Lookup(item, c.Key))
}

// ActionVariant is the visual weight of an action button.
type ActionVariant string

// Action variants.
const (
	ActionDefault     ActionVariant = "default"
	ActionOutline     ActionVariant = "outline"
	ActionDestructive ActionVariant = "destructive"
)

// Action is a per-item button. Name identifies it in URLs. Show is a
// visibility predicate for the composer; renderers never call it.
type Action[T any] struct {
	Name      string
	Label     string
	Icon      string
	Variant   ActionVariant
	ClassName string
	Confirm   string
	OnClick   func(ctx context.Context, item T) error
	Show      func(item T) bool
}

// Visible reports whether the action's Show predicate admits item.
func (a Action[T]) Visible(item T) bool {
	return a.Show == nil || a.Show(item)
}

// CreateAction is the button offered by the "nothing registered" empty state.
type CreateAction struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// CardRenderer replaces the default grid card body.
type CardRenderer[T any] interface {
	RenderCard(item T) Card
}

// CardFunc adapts a function to CardRenderer.
type CardFunc[T any] func(item T) Card

// RenderCard calls f.
func (f CardFunc[T]) RenderCard(item T) Card { return f(item) }
