package booking

import (
	"errors"
	"time"
)

// Slot bounds and field limits.
const (
	MinDuration    = 30 * time.Minute
	MaxDuration    = 8 * time.Hour
	MaxNotesLength = 500
)

// Time formats used by forms and the JSON API.
const (
	DateFormat     = "2006-01-02"
	DateTimeFormat = "2006-01-02T15:04"
)

// Status constants
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// ActiveStatuses are the statuses that occupy a venue slot.
var ActiveStatuses = []string{StatusPending, StatusConfirmed, StatusCompleted}

// Domain errors
var (
	ErrMissingVenue     = errors.New("booking venue is required")
	ErrMissingClient    = errors.New("booking client is required")
	ErrEndBeforeStart   = errors.New("booking must end after it starts")
	ErrTooShort         = errors.New("booking must last at least 30 minutes")
	ErrTooLong          = errors.New("booking cannot last more than 8 hours")
	ErrNegativePrice    = errors.New("booking price cannot be negative")
	ErrNotesTooLong     = errors.New("notes cannot exceed 500 characters")
	ErrInvalidStatus    = errors.New("status must be one of: pending, confirmed, cancelled, completed")
	ErrAlreadyCancelled = errors.New("booking is already cancelled")
	ErrAlreadyConfirmed = errors.New("booking is already confirmed")
	ErrNotPending       = errors.New("only pending bookings can be confirmed")
	ErrCannotReschedule = errors.New("cancelled or completed bookings cannot be rescheduled")
	ErrSlotUnavailable  = errors.New("venue is already booked for this time")
	ErrCompletedBooking = errors.New("completed bookings cannot be cancelled")
)

// Booking reserves a venue for a client over a time range.
type Booking struct {
	ID         string
	VenueID    string
	ClientID   string
	StartsAt   time.Time
	EndsAt     time.Time
	Status     string
	PriceCents int64
	Notes      string
	CreatedAt  time.Time
}

// Validate checks if the Booking has valid data.
// PRE: Booking struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: EndsAt is after StartsAt and the duration is within slot bounds
func (b *Booking) Validate() error {
	if b.VenueID == "" {
		return ErrMissingVenue
	}
	if b.ClientID == "" {
		return ErrMissingClient
	}
	if err := validateRange(b.StartsAt, b.EndsAt); err != nil {
		return err
	}
	if b.PriceCents < 0 {
		return ErrNegativePrice
	}
	if len(b.Notes) > MaxNotesLength {
		return ErrNotesTooLong
	}
	switch b.Status {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
	default:
		return ErrInvalidStatus
	}
	return nil
}

func validateRange(start, end time.Time) error {
	if !end.After(start) {
		return ErrEndBeforeStart
	}
	d := end.Sub(start)
	if d < MinDuration {
		return ErrTooShort
	}
	if d > MaxDuration {
		return ErrTooLong
	}
	return nil
}

// Duration returns the booked length.
func (b Booking) Duration() time.Duration {
	return b.EndsAt.Sub(b.StartsAt)
}

// OccupiesSlot reports whether the booking blocks its venue.
func (b Booking) OccupiesSlot() bool {
	return b.Status != StatusCancelled
}

// Overlaps reports whether two bookings share any instant on the same venue.
// Touching ranges (one ends exactly when the other starts) do not overlap.
func (b Booking) Overlaps(other Booking) bool {
	if b.VenueID != other.VenueID {
		return false
	}
	return b.StartsAt.Before(other.EndsAt) && other.StartsAt.Before(b.EndsAt)
}

// Confirm moves a pending booking to confirmed.
// PRE: Status is pending
// POST: Status is confirmed
func (b *Booking) Confirm() error {
	switch b.Status {
	case StatusConfirmed:
		return ErrAlreadyConfirmed
	case StatusPending:
		b.Status = StatusConfirmed
		return nil
	default:
		return ErrNotPending
	}
}

// Cancel releases the slot.
// PRE: Status is pending or confirmed
// POST: Status is cancelled
func (b *Booking) Cancel() error {
	switch b.Status {
	case StatusCancelled:
		return ErrAlreadyCancelled
	case StatusCompleted:
		return ErrCompletedBooking
	}
	b.Status = StatusCancelled
	return nil
}

// Reschedule moves the booking to a new time range, keeping its status.
// PRE: Status is pending or confirmed; the new range is within slot bounds
// POST: StartsAt/EndsAt updated
func (b *Booking) Reschedule(start, end time.Time) error {
	if b.Status == StatusCancelled || b.Status == StatusCompleted {
		return ErrCannotReschedule
	}
	if err := validateRange(start, end); err != nil {
		return err
	}
	b.StartsAt = start
	b.EndsAt = end
	return nil
}
