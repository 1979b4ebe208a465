package listutil

import (
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// View names accepted in the "view" query parameter.
const (
	ViewTable = "table"
	ViewGrid  = "grid"
)

// PageParams carries pagination parameters parsed from a request.
type PageParams struct {
	Page    int // 1-indexed page number
	PerPage int // rows per page
}

// SortParams carries sorting parameters parsed from a request.
type SortParams struct {
	Sort string // column key, empty when absent or not sortable
	Dir  string // "asc" or "desc"
}

// Desc reports whether the sort is descending.
func (s SortParams) Desc() bool {
	return s.Dir == "desc"
}

// FilterParams carries search and filter parameters.
type FilterParams struct {
	Search  string            // free-text search query
	Filters map[string]string // exact-match filters (e.g. status=active)
}

// ListParams combines all list view parameters.
type ListParams struct {
	PageParams
	SortParams
	FilterParams
	View string // ViewTable or ViewGrid
}

// ParseOptions restricts which request values are accepted.
type ParseOptions struct {
	DefaultPerPage int
	PerPageOptions []int
	SortColumns    []string
	FilterKeys     []string
}

// DefaultPerPage is the default number of rows per page.
const DefaultPerPage = 20

// PerPageOptions are the allowed rows-per-page values when none are configured.
var PerPageOptions = []int{10, 20, 50, 100}

func (o ParseOptions) withDefaults() ParseOptions {
	if len(o.PerPageOptions) == 0 {
		o.PerPageOptions = PerPageOptions
	}
	if o.DefaultPerPage <= 0 {
		o.DefaultPerPage = DefaultPerPage
	}
	return o
}

// ParsePageParams extracts page and per_page from URL query values.
// PRE: none
// POST: Page >= 1; PerPage is one of the options or the default
func ParsePageParams(q url.Values, opts ParseOptions) PageParams {
	opts = opts.withDefaults()
	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(q.Get("per_page"))
	if !slices.Contains(opts.PerPageOptions, perPage) {
		perPage = opts.DefaultPerPage
	}
	return PageParams{Page: page, PerPage: perPage}
}

// ParseSortParams extracts sort and dir from URL query values.
// PRE: none
// POST: Dir is always "asc" or "desc"; Sort is empty or an allowed column
func ParseSortParams(q url.Values, allowedColumns []string) SortParams {
	sort := q.Get("sort")
	dir := strings.ToLower(q.Get("dir"))
	if !slices.Contains(allowedColumns, sort) {
		sort = ""
	}
	if dir != "asc" && dir != "desc" {
		dir = "asc"
	}
	return SortParams{Sort: sort, Dir: dir}
}

// ParseFilterParams extracts search and named filters from URL query values.
// PRE: filterKeys lists the allowed filter parameter names
// POST: returns FilterParams with only recognised keys
func ParseFilterParams(q url.Values, filterKeys []string) FilterParams {
	fp := FilterParams{
		Search:  strings.TrimSpace(q.Get("q")),
		Filters: make(map[string]string),
	}
	for _, key := range filterKeys {
		if v := q.Get(key); v != "" {
			fp.Filters[key] = v
		}
	}
	return fp
}

// ParseListParams parses all list parameters from URL query values.
func ParseListParams(q url.Values, opts ParseOptions) ListParams {
	view := ViewTable
	if q.Get("view") == ViewGrid {
		view = ViewGrid
	}
	return ListParams{
		PageParams:   ParsePageParams(q, opts),
		SortParams:   ParseSortParams(q, opts.SortColumns),
		FilterParams: ParseFilterParams(q, opts.FilterKeys),
		View:         view,
	}
}

// Query rebuilds URL values for links that change one parameter while
// keeping the rest of the list state.
func (p ListParams) Query() url.Values {
	q := url.Values{}
	if p.Search != "" {
		q.Set("q", p.Search)
	}
	for k, v := range p.Filters {
		q.Set(k, v)
	}
	if p.Sort != "" {
		q.Set("sort", p.Sort)
		q.Set("dir", p.Dir)
	}
	if p.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(p.PerPage))
	}
	if p.Page > 1 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.View == ViewGrid {
		q.Set("view", ViewGrid)
	}
	return q
}
