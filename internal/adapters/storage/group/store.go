package group

import (
	"context"

	domain "venueadmin/internal/domain/group"
)

// Store persists Group state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Group, error)
	Save(ctx context.Context, value domain.Group) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Group, error)
}
