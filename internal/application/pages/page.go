// Package pages composes the admin list pages. A Definition describes one
// entity's columns, actions, search predicate and create form; Register
// type-erases it into a Page that loads the full dataset, filters it by the
// search term, sorts it, paginates it and renders one page.
package pages

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"slices"
	"strings"

	"venueadmin/internal/application/listutil"
	"venueadmin/internal/application/listview"
	"venueadmin/internal/domain/tablesettings"
)

// Registration errors.
var (
	ErrInvalidDefinition = errors.New("invalid page definition")
	ErrDuplicateColumn   = errors.New("duplicate column key")
	ErrDuplicateAction   = errors.New("duplicate action name")
	ErrActionHandler     = errors.New("action has no handler")
	ErrDuplicatePage     = errors.New("page already registered")
	ErrCreateUnsupported = errors.New("this list has no create form")
)

// Option is one choice of a select form field.
type Option struct {
	Value string
	Label string
}

// FormField describes one input of a create form.
type FormField struct {
	Name     string
	Label    string
	Type     string // text, email, password, number, money, date, datetime-local, textarea, select, multiselect
	Required bool
	Options  []Option
	Help     string
}

// Request is everything a page needs to compose one list view.
type Request struct {
	Params   listutil.ListParams
	Settings tablesettings.TableSettings
}

// Result is one composed list page.
type Result struct {
	Entity         string
	Title          string
	View           listview.View
	State          listutil.PageState
	PageNumbers    []int
	ShowPagination bool
	Params         listutil.ListParams
	// Items is the page slice in its typed form, for JSON responses.
	Items any
}

// Meta describes a page for navigation and request parsing.
type Meta struct {
	Entity      string
	Title       string
	Singular    string
	SortColumns []string
	FilterKeys  []string
	CanCreate   bool
}

// Page is a registered, type-erased list page.
type Page interface {
	Meta() Meta
	List(ctx context.Context, req Request) (Result, error)
	ExportCSV(ctx context.Context, w io.Writer, req Request) error
	Dispatch(ctx context.Context, id, action string) error
	Form(ctx context.Context) ([]FormField, error)
	Create(ctx context.Context, values url.Values) (string, error)
}

// Definition describes the list page of one entity.
type Definition[T any] struct {
	Entity   string // URL segment and settings entity, e.g. "bookings"
	Title    string
	Singular string
	Columns  []listview.Column[T]
	Actions  []listview.Action[T]
	ID       func(T) string

	// Load returns every item matching the structured filters.
	Load func(ctx context.Context, filters map[string]string) ([]T, error)
	// Get returns one item for action dispatch.
	Get func(ctx context.Context, id string) (T, error)
	// Matches is the search predicate. Nil matches the term against the
	// text of every column.
	Matches    func(item T, term string) bool
	FilterKeys []string
	Card       listview.CardRenderer[T]

	// Fields returns the create form; Create handles its submission. Both
	// are nil for read-only lists.
	Fields func(ctx context.Context) ([]FormField, error)
	Create func(ctx context.Context, values url.Values) (string, error)
}

type page[T any] struct {
	def Definition[T]
}

// Register validates def and adds it to the registry.
// PRE: none
// POST: On success the page is reachable through r.Get(def.Entity)
// INVARIANT: column keys and action names are unique within a page
// INVARIANT: every action has an OnClick
func Register[T any](r *Registry, def Definition[T]) error {
	if err := tablesettings.ValidateEntity(def.Entity); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDefinition, err)
	}
	if def.ID == nil || def.Load == nil || def.Get == nil || len(def.Columns) == 0 {
		return fmt.Errorf("%w: %s needs ID, Load, Get and at least one column", ErrInvalidDefinition, def.Entity)
	}
	seen := make(map[string]bool, len(def.Columns))
	for _, c := range def.Columns {
		if c.Key == "" || seen[c.Key] {
			return fmt.Errorf("%w: %s.%q", ErrDuplicateColumn, def.Entity, c.Key)
		}
		seen[c.Key] = true
	}
	names := make(map[string]bool, len(def.Actions))
	for _, a := range def.Actions {
		if a.Name == "" || names[a.Name] {
			return fmt.Errorf("%w: %s.%q", ErrDuplicateAction, def.Entity, a.Name)
		}
		if a.OnClick == nil {
			return fmt.Errorf("%w: %s.%q", ErrActionHandler, def.Entity, a.Name)
		}
		names[a.Name] = true
	}
	return r.add(def.Entity, &page[T]{def: def})
}

func (p *page[T]) Meta() Meta {
	var sortable []string
	for _, c := range p.def.Columns {
		if c.Sortable {
			sortable = append(sortable, c.Key)
		}
	}
	return Meta{
		Entity:      p.def.Entity,
		Title:       p.def.Title,
		Singular:    p.def.Singular,
		SortColumns: sortable,
		FilterKeys:  p.def.FilterKeys,
		CanCreate:   p.def.Create != nil,
	}
}

// filtered loads, searches and sorts the full dataset.
func (p *page[T]) filtered(ctx context.Context, req Request) ([]T, error) {
	items, err := p.def.Load(ctx, req.Params.Filters)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", p.def.Entity, err)
	}
	if term := req.Params.Search; term != "" {
		match := p.def.Matches
		if match == nil {
			match = p.matchColumns
		}
		items = slices.DeleteFunc(items, func(item T) bool { return !match(item, term) })
	}
	sortItems(items, p.def.Columns, p.sortRules(req))
	return items, nil
}

// sortRules prefers an explicit request sort over the persisted sort state.
func (p *page[T]) sortRules(req Request) []tablesettings.SortRule {
	if req.Params.Sort != "" {
		return []tablesettings.SortRule{{ID: req.Params.Sort, Desc: req.Params.Desc()}}
	}
	return req.Settings.SortingState
}

func (p *page[T]) matchColumns(item T, term string) bool {
	term = strings.ToLower(term)
	for _, c := range p.def.Columns {
		if strings.Contains(strings.ToLower(c.CellFor(item).Text), term) {
			return true
		}
	}
	return false
}

func (p *page[T]) List(ctx context.Context, req Request) (Result, error) {
	items, err := p.filtered(ctx, req)
	if err != nil {
		return Result{}, err
	}
	pg := listutil.NewPaginator(items, listutil.Options{
		InitialPage: req.Params.Page,
		PageSize:    req.Params.PerPage,
	})
	pageItems := pg.Items()

	variant := listview.VariantTable
	if req.Params.View == listutil.ViewGrid {
		variant = listview.VariantGrid
	}
	var create *listview.CreateAction
	if p.def.Create != nil {
		create = &listview.CreateAction{Label: "New " + p.def.Singular, Href: "/" + p.def.Entity + "/new"}
	}
	view := listview.Render(pageItems, p.def.Columns, p.def.Actions, p.def.ID, listview.Options[T]{
		Variant:      variant,
		SearchTerm:   req.Params.Search,
		CreateAction: create,
		Card:         p.def.Card,
		ActionFilter: listview.ShowFilter[T],
		Settings:     req.Settings,
	})

	params := req.Params
	state := pg.State()
	params.Page = state.CurrentPage
	return Result{
		Entity:         p.def.Entity,
		Title:          p.def.Title,
		View:           view,
		State:          state,
		PageNumbers:    pg.PageNumbers(),
		ShowPagination: pg.ShowPagination(),
		Params:         params,
		Items:          pageItems,
	}, nil
}

func (p *page[T]) ExportCSV(ctx context.Context, w io.Writer, req Request) error {
	items, err := p.filtered(ctx, req)
	if err != nil {
		return err
	}
	return listview.WriteCSV(w, items, p.def.Columns, req.Settings)
}

func (p *page[T]) Dispatch(ctx context.Context, id, action string) error {
	item, err := p.def.Get(ctx, id)
	if err != nil {
		return err
	}
	return listview.Dispatch(ctx, p.def.Actions, action, item, listview.ShowFilter[T])
}

func (p *page[T]) Form(ctx context.Context) ([]FormField, error) {
	if p.def.Fields == nil {
		return nil, ErrCreateUnsupported
	}
	return p.def.Fields(ctx)
}

func (p *page[T]) Create(ctx context.Context, values url.Values) (string, error) {
	if p.def.Create == nil {
		return "", ErrCreateUnsupported
	}
	return p.def.Create(ctx, values)
}
