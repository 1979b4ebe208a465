package booking

import (
	"context"
	"time"

	domain "venueadmin/internal/domain/booking"
)

// Store persists Booking state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Booking, error)
	Save(ctx context.Context, value domain.Booking) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]domain.Booking, error)
	Count(ctx context.Context, filter ListFilter) (int, error)
	ListOverlapping(ctx context.Context, venueID string, start, end time.Time, excludeID string) ([]domain.Booking, error)
}

// ListFilter carries filtering parameters for List operations.
// From/To select bookings starting in [From, To) when non-zero.
type ListFilter struct {
	Limit    int
	Offset   int
	VenueID  string
	ClientID string
	Status   string
	From     time.Time
	To       time.Time
	Sort     string
	Dir      string
}
