package pages

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venueadmin/internal/application/listutil"
	"venueadmin/internal/application/listview"
	"venueadmin/internal/domain/tablesettings"
)

type widget struct {
	ID     string
	Name   string
	Size   int
	Locked bool
}

func widgets(n int) []widget {
	out := make([]widget, n)
	for i := range out {
		out[i] = widget{ID: fmt.Sprintf("w%02d", i+1), Name: fmt.Sprintf("Item %02d", i+1), Size: (i * 7) % 5}
	}
	return out
}

func widgetDefinition(items []widget, clicked *[]string) Definition[widget] {
	return Definition[widget]{
		Entity:   "widgets",
		Title:    "Widgets",
		Singular: "widget",
		ID:       func(w widget) string { return w.ID },
		Columns: []listview.Column[widget]{
			{Key: "name", Label: "Name", Sortable: true},
			{Key: "size", Label: "Size", Sortable: true},
			{Key: "locked", Label: "Locked"},
		},
		Actions: []listview.Action[widget]{
			{Name: "lock", Label: "Lock",
				Show:    func(w widget) bool { return !w.Locked },
				OnClick: func(_ context.Context, w widget) error { *clicked = append(*clicked, w.ID); return nil }},
		},
		Load: func(context.Context, map[string]string) ([]widget, error) {
			return append([]widget(nil), items...), nil
		},
		Get: func(_ context.Context, id string) (widget, error) {
			for _, w := range items {
				if w.ID == id {
					return w, nil
				}
			}
			return widget{}, sql.ErrNoRows
		},
		Create: func(context.Context, url.Values) (string, error) { return "new", nil },
	}
}

func widgetPage(t *testing.T, items []widget) (Page, *[]string) {
	t.Helper()
	var clicked []string
	r := NewRegistry()
	require.NoError(t, Register(r, widgetDefinition(items, &clicked)))
	p, ok := r.Get("widgets")
	require.True(t, ok)
	return p, &clicked
}

func params(page, perPage int) listutil.ListParams {
	var p listutil.ListParams
	p.Page = page
	p.PerPage = perPage
	return p
}

func rowIDs(v listview.View) []string {
	ids := make([]string, 0, len(v.Rows))
	for _, r := range v.Rows {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestRegister_Validation(t *testing.T) {
	var clicked []string
	base := widgetDefinition(nil, &clicked)

	bad := base
	bad.Entity = "bad entity!"
	assert.ErrorIs(t, Register(NewRegistry(), bad), ErrInvalidDefinition)

	noLoad := base
	noLoad.Load = nil
	assert.ErrorIs(t, Register(NewRegistry(), noLoad), ErrInvalidDefinition)

	dupCol := base
	dupCol.Columns = append(append([]listview.Column[widget]{}, base.Columns...), listview.Column[widget]{Key: "name"})
	assert.ErrorIs(t, Register(NewRegistry(), dupCol), ErrDuplicateColumn)

	dupAction := base
	dupAction.Actions = append(append([]listview.Action[widget]{}, base.Actions...), listview.Action[widget]{Name: "lock"})
	assert.ErrorIs(t, Register(NewRegistry(), dupAction), ErrDuplicateAction)

	noHandler := base
	noHandler.Actions = append(append([]listview.Action[widget]{}, base.Actions...), listview.Action[widget]{Name: "unlock"})
	assert.ErrorIs(t, Register(NewRegistry(), noHandler), ErrActionHandler)

	r := NewRegistry()
	require.NoError(t, Register(r, base))
	assert.ErrorIs(t, Register(r, base), ErrDuplicatePage)
}

func TestPage_Meta(t *testing.T) {
	p, _ := widgetPage(t, nil)
	meta := p.Meta()
	assert.Equal(t, "widgets", meta.Entity)
	assert.Equal(t, []string{"name", "size"}, meta.SortColumns)
	assert.True(t, meta.CanCreate)
}

func TestPage_ListPaginates(t *testing.T) {
	p, _ := widgetPage(t, widgets(23))
	ctx := context.Background()

	res, err := p.List(ctx, Request{Params: params(3, 10)})
	require.NoError(t, err)
	assert.Equal(t, []string{"w21", "w22", "w23"}, rowIDs(res.View))
	assert.Equal(t, 3, res.State.CurrentPage)
	assert.Equal(t, 3, res.State.TotalPages)
	assert.Equal(t, 23, res.State.TotalItems)
	assert.False(t, res.State.HasNextPage)
	assert.True(t, res.ShowPagination)
	assert.Equal(t, []int{1, 2, 3}, res.PageNumbers)
	assert.Len(t, res.Items, 3)

	res, err = p.List(ctx, Request{Params: params(9, 10)})
	require.NoError(t, err)
	assert.Equal(t, 3, res.State.CurrentPage, "out-of-range page is clamped")
	assert.Equal(t, 3, res.Params.Page)
}

func TestPage_ListSearch(t *testing.T) {
	p, _ := widgetPage(t, widgets(23))
	ctx := context.Background()

	req := Request{Params: params(1, 50)}
	req.Params.Search = "item 0"
	res, err := p.List(ctx, req)
	require.NoError(t, err)
	assert.Len(t, res.View.Rows, 9)

	req.Params.Search = "zzz"
	res, err = p.List(ctx, req)
	require.NoError(t, err)
	require.True(t, res.View.IsEmpty())
	assert.Equal(t, listview.EmptyNoResults, res.View.Empty.Kind)
	assert.Equal(t, "zzz", res.View.Empty.SearchTerm)
	assert.Nil(t, res.View.Empty.Create)
}

func TestPage_ListEmptyOffersCreate(t *testing.T) {
	p, _ := widgetPage(t, nil)
	res, err := p.List(context.Background(), Request{Params: params(1, 10)})
	require.NoError(t, err)
	require.True(t, res.View.IsEmpty())
	assert.Equal(t, listview.EmptyNothingRegistered, res.View.Empty.Kind)
	require.NotNil(t, res.View.Empty.Create)
	assert.Equal(t, "/widgets/new", res.View.Empty.Create.Href)
	assert.Equal(t, "New widget", res.View.Empty.Create.Label)
	assert.False(t, res.ShowPagination)
}

func TestPage_SortPrecedence(t *testing.T) {
	items := []widget{
		{ID: "a", Name: "Bravo", Size: 1},
		{ID: "b", Name: "alpha", Size: 3},
		{ID: "c", Name: "Charlie", Size: 3},
	}
	p, _ := widgetPage(t, items)
	ctx := context.Background()
	settings := tablesettings.TableSettings{SortingState: []tablesettings.SortRule{
		{ID: "size", Desc: true},
		{ID: "name"},
	}}

	res, err := p.List(ctx, Request{Params: params(1, 10), Settings: settings})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c", "a"}, rowIDs(res.View), "persisted multi-column sort")

	req := Request{Params: params(1, 10), Settings: settings}
	req.Params.Sort = "name"
	req.Params.Dir = "desc"
	res, err = p.List(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, rowIDs(res.View), "request sort wins")

	req.Params.Sort = ""
	req.Settings = tablesettings.TableSettings{SortingState: []tablesettings.SortRule{{ID: "locked"}}}
	res, err = p.List(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, rowIDs(res.View), "non-sortable column keeps load order")
}

func TestPage_GridView(t *testing.T) {
	p, _ := widgetPage(t, widgets(4))
	req := Request{Params: params(1, 10)}
	req.Params.View = listutil.ViewGrid
	res, err := p.List(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, listview.VariantGrid, res.View.Variant)
	assert.Len(t, res.View.Cards, 4)
	assert.Empty(t, res.View.Rows)
}

func TestPage_ExportCSV(t *testing.T) {
	p, _ := widgetPage(t, widgets(23))
	req := Request{Params: params(1, 5)}
	req.Params.Search = "item 1"

	var buf bytes.Buffer
	require.NoError(t, p.ExportCSV(context.Background(), &buf, req))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 11, "header plus every match regardless of page size")
	assert.Equal(t, "Name,Size,Locked", strings.TrimSpace(lines[0]))
	assert.True(t, strings.HasPrefix(lines[1], "Item 10,"))
}

func TestPage_Dispatch(t *testing.T) {
	items := widgets(2)
	items[1].Locked = true
	p, clicked := widgetPage(t, items)
	ctx := context.Background()

	require.NoError(t, p.Dispatch(ctx, "w01", "lock"))
	assert.Equal(t, []string{"w01"}, *clicked)

	assert.ErrorIs(t, p.Dispatch(ctx, "w02", "lock"), listview.ErrActionHidden)
	assert.ErrorIs(t, p.Dispatch(ctx, "w01", "explode"), listview.ErrUnknownAction)
	assert.ErrorIs(t, p.Dispatch(ctx, "missing", "lock"), sql.ErrNoRows)
	assert.Len(t, *clicked, 1)
}

func TestPage_ReadOnlyForm(t *testing.T) {
	var clicked []string
	def := widgetDefinition(nil, &clicked)
	def.Create = nil
	r := NewRegistry()
	require.NoError(t, Register(r, def))
	p, _ := r.Get("widgets")

	assert.False(t, p.Meta().CanCreate)
	_, err := p.Form(context.Background())
	assert.ErrorIs(t, err, ErrCreateUnsupported)
	_, err = p.Create(context.Background(), nil)
	assert.ErrorIs(t, err, ErrCreateUnsupported)

	res, err := p.List(context.Background(), Request{Params: params(1, 10)})
	require.NoError(t, err)
	assert.Nil(t, res.View.Empty.Create)
}
