package venue

import (
	"context"

	domain "venueadmin/internal/domain/venue"
)

// Store persists Venue state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Venue, error)
	Save(ctx context.Context, value domain.Venue) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]domain.Venue, error)
	Count(ctx context.Context, filter ListFilter) (int, error)
}

// ListFilter carries filtering parameters for List operations.
// A zero Limit returns every matching row.
type ListFilter struct {
	Limit      int
	Offset     int
	Sport      string
	ActiveOnly bool
	Search     string
	Sort       string
	Dir        string
}
