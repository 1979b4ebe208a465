package client

import (
	"context"

	domain "venueadmin/internal/domain/client"
)

// Store persists Client state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Client, error)
	Save(ctx context.Context, value domain.Client) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]domain.Client, error)
	Count(ctx context.Context, filter ListFilter) (int, error)
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	Limit  int
	Offset int
	Status string
	Search string
	Sort   string
	Dir    string
}
