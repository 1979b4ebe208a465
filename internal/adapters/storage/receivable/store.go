package receivable

import (
	"context"

	domain "venueadmin/internal/domain/receivable"
)

// Store persists Receivable state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Receivable, error)
	Save(ctx context.Context, value domain.Receivable) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]domain.Receivable, error)
	Count(ctx context.Context, filter ListFilter) (int, error)
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	Limit    int
	Offset   int
	ClientID string
	Unpaid   bool
	Sort     string
	Dir      string
}
