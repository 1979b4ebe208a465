package listutil

// Options configures a Paginator. Zero values take defaults: InitialPage 1,
// PageSize DefaultPerPage, TotalItems len(items).
type Options struct {
	InitialPage int
	PageSize    int
	TotalItems  int
}

// PageState is the derived navigation state of a Paginator.
// StartIndex and EndIndex are 1-based display bounds; both are 0 when the
// collection is empty.
type PageState struct {
	CurrentPage     int  `json:"currentPage"`
	PageSize        int  `json:"pageSize"`
	TotalItems      int  `json:"totalItems"`
	TotalPages      int  `json:"totalPages"`
	StartIndex      int  `json:"startIndex"`
	EndIndex        int  `json:"endIndex"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

// Paginator slices an in-memory collection into pages.
// INVARIANT: 1 <= page <= max(totalPages, 1) and size > 0
type Paginator[T any] struct {
	items []T
	total int
	size  int
	page  int
}

// NewPaginator builds a paginator over items. An out-of-range InitialPage is
// clamped; a non-positive PageSize falls back to DefaultPerPage.
// PRE: none
// POST: The returned paginator satisfies its invariant
func NewPaginator[T any](items []T, opts Options) *Paginator[T] {
	p := &Paginator[T]{items: items, size: opts.PageSize, total: opts.TotalItems}
	if p.size <= 0 {
		p.size = DefaultPerPage
	}
	if p.total <= 0 {
		p.total = len(items)
	}
	p.page = p.clamp(opts.InitialPage)
	return p
}

// TotalPages is ceil(TotalItems / PageSize), 0 for an empty collection.
func (p *Paginator[T]) TotalPages() int {
	if p.total == 0 {
		return 0
	}
	return (p.total-1)/p.size + 1
}

func (p *Paginator[T]) clamp(n int) int {
	last := max(p.TotalPages(), 1)
	return min(max(n, 1), last)
}

// GoToPage moves to page n, clamped to the valid range.
// POST: CurrentPage is within [1, max(TotalPages, 1)]
func (p *Paginator[T]) GoToPage(n int) {
	p.page = p.clamp(n)
}

// NextPage advances one page. No-op on the last page.
func (p *Paginator[T]) NextPage() {
	if p.page < p.TotalPages() {
		p.page++
	}
}

// PreviousPage goes back one page. No-op on the first page.
func (p *Paginator[T]) PreviousPage() {
	if p.page > 1 {
		p.page--
	}
}

// SetPageSize changes the page density and returns to the first page.
// A non-positive size is ignored.
// POST: CurrentPage is 1 when size > 0
func (p *Paginator[T]) SetPageSize(size int) {
	if size <= 0 {
		return
	}
	p.size = size
	p.page = 1
}

// State returns a snapshot of the navigation state.
// INVARIANT: StartIndex <= EndIndex <= TotalItems
func (p *Paginator[T]) State() PageState {
	totalPages := p.TotalPages()
	s := PageState{
		CurrentPage:     p.page,
		PageSize:        p.size,
		TotalItems:      p.total,
		TotalPages:      totalPages,
		HasNextPage:     p.page < totalPages,
		HasPreviousPage: p.page > 1,
	}
	if p.total > 0 {
		offset := (p.page - 1) * p.size
		s.StartIndex = offset + 1
		s.EndIndex = offset + min(p.size, p.total-offset)
	}
	return s
}

// Items returns the current page slice, recomputed on every call. The slice
// is bounded by the backing collection when TotalItems overrides its length.
func (p *Paginator[T]) Items() []T {
	s := p.State()
	if s.TotalItems == 0 {
		return nil
	}
	start := min(s.StartIndex-1, len(p.items))
	end := min(s.EndIndex, len(p.items))
	return p.items[start:end]
}

// Offset returns the 0-based index of the first item on the current page.
func (p *Paginator[T]) Offset() int {
	return (p.page - 1) * p.size
}

// PageNumbers returns the page buttons to display: at most 5 pages centred
// on the current page.
func (p *Paginator[T]) PageNumbers() []int {
	return pageWindow(p.page, max(p.TotalPages(), 1), 5)
}

// ShowPagination reports whether more than one page exists.
func (p *Paginator[T]) ShowPagination() bool {
	return p.total > p.size
}

func pageWindow(current, last, buttons int) []int {
	start := max(current-buttons/2, 1)
	end := start + buttons - 1
	if end > last {
		end = last
		start = max(end-buttons+1, 1)
	}
	pages := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		pages = append(pages, i)
	}
	return pages
}
