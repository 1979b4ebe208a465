package pages

import "fmt"

// Registry holds the list pages in registration order.
type Registry struct {
	pages map[string]Page
	order []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{pages: make(map[string]Page)}
}

func (r *Registry) add(entity string, p Page) error {
	if _, ok := r.pages[entity]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicatePage, entity)
	}
	r.pages[entity] = p
	r.order = append(r.order, entity)
	return nil
}

// Get returns the page registered for entity.
func (r *Registry) Get(entity string) (Page, bool) {
	p, ok := r.pages[entity]
	return p, ok
}

// Pages returns every page in registration order.
func (r *Registry) Pages() []Page {
	out := make([]Page, 0, len(r.order))
	for _, entity := range r.order {
		out = append(out, r.pages[entity])
	}
	return out
}
