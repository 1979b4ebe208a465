package listutil

import (
	"net/url"
	"testing"
)

// TestParsePageParams covers defaults, valid values and fallbacks.
func TestParsePageParams(t *testing.T) {
	opts := ParseOptions{DefaultPerPage: 20, PerPageOptions: []int{10, 20, 50}}
	tests := []struct {
		name        string
		q           url.Values
		wantPage    int
		wantPerPage int
	}{
		{"defaults", url.Values{}, 1, 20},
		{"valid", url.Values{"page": {"3"}, "per_page": {"50"}}, 3, 50},
		{"per_page not an option", url.Values{"per_page": {"25"}}, 1, 20},
		{"negative page", url.Values{"page": {"-1"}}, 1, 20},
		{"garbage", url.Values{"page": {"two"}, "per_page": {"ten"}}, 1, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ParsePageParams(tt.q, opts)
			if p.Page != tt.wantPage || p.PerPage != tt.wantPerPage {
				t.Errorf("got page=%d per_page=%d, want %d/%d", p.Page, p.PerPage, tt.wantPage, tt.wantPerPage)
			}
		})
	}
}

// TestParsePageParams_ZeroOptions verifies package defaults apply.
func TestParsePageParams_ZeroOptions(t *testing.T) {
	p := ParsePageParams(url.Values{"per_page": {"100"}}, ParseOptions{})
	if p.PerPage != 100 {
		t.Errorf("expected per_page 100 from default options, got %d", p.PerPage)
	}
}

// TestParseSortParams verifies allowed columns and direction normalisation.
func TestParseSortParams(t *testing.T) {
	cols := []string{"name", "email"}
	s := ParseSortParams(url.Values{"sort": {"name"}, "dir": {"DESC"}}, cols)
	if s.Sort != "name" || !s.Desc() {
		t.Errorf("got %+v, want name desc", s)
	}
	s = ParseSortParams(url.Values{"sort": {"password_hash"}, "dir": {"sideways"}}, cols)
	if s.Sort != "" || s.Dir != "asc" {
		t.Errorf("got %+v, want empty asc", s)
	}
}

// TestParseListParams verifies search, filters and view are parsed together.
func TestParseListParams(t *testing.T) {
	q := url.Values{"q": {"  arena "}, "status": {"active"}, "secret": {"x"}, "view": {"grid"}}
	p := ParseListParams(q, ParseOptions{FilterKeys: []string{"status"}})
	if p.Search != "arena" {
		t.Errorf("Search = %q, want arena", p.Search)
	}
	if len(p.Filters) != 1 || p.Filters["status"] != "active" {
		t.Errorf("Filters = %v, want only status", p.Filters)
	}
	if p.View != ViewGrid {
		t.Errorf("View = %q, want grid", p.View)
	}

	back := p.Query()
	if back.Get("q") != "arena" || back.Get("view") != "grid" || back.Get("status") != "active" {
		t.Errorf("Query() = %v", back)
	}
	if back.Has("page") {
		t.Errorf("Query() should omit page 1, got %v", back)
	}
}
