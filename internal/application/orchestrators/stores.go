package orchestrators

import (
	"context"
	"time"

	"github.com/google/uuid"

	"venueadmin/internal/adapters/storage/booking"
	"venueadmin/internal/adapters/storage/user"
	domainBooking "venueadmin/internal/domain/booking"
	domainClient "venueadmin/internal/domain/client"
	domainGroup "venueadmin/internal/domain/group"
	domainReceivable "venueadmin/internal/domain/receivable"
	domainUser "venueadmin/internal/domain/user"
	domainVenue "venueadmin/internal/domain/venue"
)

// VenueStore defines the venue persistence the orchestrators need.
type VenueStore interface {
	GetByID(ctx context.Context, id string) (domainVenue.Venue, error)
	Save(ctx context.Context, v domainVenue.Venue) error
	Delete(ctx context.Context, id string) error
}

// ClientStore defines the client persistence the orchestrators need.
type ClientStore interface {
	GetByID(ctx context.Context, id string) (domainClient.Client, error)
	Save(ctx context.Context, c domainClient.Client) error
	Delete(ctx context.Context, id string) error
}

// BookingStore defines the booking persistence the orchestrators need.
type BookingStore interface {
	GetByID(ctx context.Context, id string) (domainBooking.Booking, error)
	Save(ctx context.Context, b domainBooking.Booking) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context, filter booking.ListFilter) (int, error)
	ListOverlapping(ctx context.Context, venueID string, start, end time.Time, excludeID string) ([]domainBooking.Booking, error)
}

// ReceivableStore defines the receivable persistence the orchestrators need.
type ReceivableStore interface {
	GetByID(ctx context.Context, id string) (domainReceivable.Receivable, error)
	Save(ctx context.Context, r domainReceivable.Receivable) error
	Delete(ctx context.Context, id string) error
}

// UserStore defines the user persistence the orchestrators need.
type UserStore interface {
	GetByID(ctx context.Context, id string) (domainUser.User, error)
	GetByEmail(ctx context.Context, email string) (domainUser.User, error)
	Save(ctx context.Context, u domainUser.User) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context, filter user.ListFilter) (int, error)
}

// GroupStore defines the group persistence the orchestrators need.
type GroupStore interface {
	GetByID(ctx context.Context, id string) (domainGroup.Group, error)
	Save(ctx context.Context, g domainGroup.Group) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domainGroup.Group, error)
}

// ValidationError marks a failure caused by the input or the current state
// of the entities involved, as opposed to a storage failure.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string { return e.Err.Error() }

// Unwrap exposes the domain error to errors.Is.
func (e *ValidationError) Unwrap() error { return e.Err }

// Invalid wraps err in a ValidationError. A nil err stays nil.
func Invalid(err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Err: err}
}

// Clock supplies IDs and timestamps. The zero value uses uuid and time.Now.
type Clock struct {
	GenerateID func() string
	Now        func() time.Time
}

func (c Clock) id() string {
	if c.GenerateID != nil {
		return c.GenerateID()
	}
	return uuid.New().String()
}

func (c Clock) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}
