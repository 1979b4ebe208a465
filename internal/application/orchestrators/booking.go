package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"venueadmin/internal/domain/booking"
)

// Booking preconditions checked against related entities.
var (
	ErrVenueInactive  = errors.New("venue is not active")
	ErrClientInactive = errors.New("client is not active")
)

// CreateBookingInput carries input for the orchestrator. A nil PriceCents
// charges the venue's hourly rate pro rata.
type CreateBookingInput struct {
	VenueID    string
	ClientID   string
	StartsAt   time.Time
	EndsAt     time.Time
	PriceCents *int64
	Notes      string
}

// CreateBookingDeps holds dependencies for CreateBooking.
type CreateBookingDeps struct {
	BookingStore BookingStore
	VenueStore   VenueStore
	ClientStore  ClientStore
	Clock        Clock
}

// ExecuteCreateBooking books a venue slot for a client.
// PRE: Venue and client exist and are active; the range is within slot bounds
// POST: Booking persisted with Status=pending; returns the ID
// INVARIANT: No two slot-occupying bookings on a venue overlap
func ExecuteCreateBooking(ctx context.Context, input CreateBookingInput, deps CreateBookingDeps) (string, error) {
	v, err := deps.VenueStore.GetByID(ctx, input.VenueID)
	if err != nil {
		return "", err
	}
	if !v.Active {
		return "", Invalid(ErrVenueInactive)
	}
	c, err := deps.ClientStore.GetByID(ctx, input.ClientID)
	if err != nil {
		return "", err
	}
	if !c.IsActive() {
		return "", Invalid(ErrClientInactive)
	}

	b := booking.Booking{
		ID:        deps.Clock.id(),
		VenueID:   input.VenueID,
		ClientID:  input.ClientID,
		StartsAt:  input.StartsAt.UTC(),
		EndsAt:    input.EndsAt.UTC(),
		Status:    booking.StatusPending,
		Notes:     strings.TrimSpace(input.Notes),
		CreatedAt: deps.Clock.now(),
	}
	if input.PriceCents != nil {
		b.PriceCents = *input.PriceCents
	} else {
		b.PriceCents = v.HourlyRateCents * int64(b.Duration()/time.Minute) / 60
	}
	if err := b.Validate(); err != nil {
		return "", Invalid(err)
	}
	if err := ensureSlotFree(ctx, deps.BookingStore, b); err != nil {
		return "", err
	}
	if err := deps.BookingStore.Save(ctx, b); err != nil {
		return "", err
	}
	return b.ID, nil
}

func ensureSlotFree(ctx context.Context, store BookingStore, b booking.Booking) error {
	clashes, err := store.ListOverlapping(ctx, b.VenueID, b.StartsAt, b.EndsAt, b.ID)
	if err != nil {
		return fmt.Errorf("check overlapping bookings: %w", err)
	}
	if len(clashes) > 0 {
		return Invalid(booking.ErrSlotUnavailable)
	}
	return nil
}

// BookingTransitionDeps holds dependencies for status transitions.
type BookingTransitionDeps struct {
	BookingStore BookingStore
}

// ExecuteConfirmBooking moves a pending booking to confirmed.
// PRE: Booking exists with Status=pending
// POST: Status=confirmed
func ExecuteConfirmBooking(ctx context.Context, id string, deps BookingTransitionDeps) error {
	return transitionBooking(ctx, id, deps, (*booking.Booking).Confirm)
}

// ExecuteCancelBooking cancels a booking and frees its slot.
// PRE: Booking exists and is neither cancelled nor completed
// POST: Status=cancelled
func ExecuteCancelBooking(ctx context.Context, id string, deps BookingTransitionDeps) error {
	return transitionBooking(ctx, id, deps, (*booking.Booking).Cancel)
}

func transitionBooking(ctx context.Context, id string, deps BookingTransitionDeps, apply func(*booking.Booking) error) error {
	b, err := deps.BookingStore.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := apply(&b); err != nil {
		return Invalid(err)
	}
	return deps.BookingStore.Save(ctx, b)
}

// RescheduleBookingInput carries the new time range of a moved booking.
type RescheduleBookingInput struct {
	ID       string
	StartsAt time.Time
	EndsAt   time.Time
}

// ExecuteRescheduleBooking moves a booking to a new slot on the same venue.
// PRE: Booking is pending or confirmed; the new slot is free
// POST: StartsAt/EndsAt updated, Status unchanged
// INVARIANT: The booking does not clash with itself
func ExecuteRescheduleBooking(ctx context.Context, input RescheduleBookingInput, deps BookingTransitionDeps) (booking.Booking, error) {
	b, err := deps.BookingStore.GetByID(ctx, input.ID)
	if err != nil {
		return booking.Booking{}, err
	}
	if err := b.Reschedule(input.StartsAt.UTC(), input.EndsAt.UTC()); err != nil {
		return booking.Booking{}, Invalid(err)
	}
	if err := ensureSlotFree(ctx, deps.BookingStore, b); err != nil {
		return booking.Booking{}, err
	}
	if err := deps.BookingStore.Save(ctx, b); err != nil {
		return booking.Booking{}, err
	}
	return b, nil
}

// ExecuteDeleteBooking removes a cancelled booking.
// PRE: Booking is cancelled
// POST: Booking deleted
func ExecuteDeleteBooking(ctx context.Context, id string, deps BookingTransitionDeps) error {
	b, err := deps.BookingStore.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if b.Status != booking.StatusCancelled {
		return Invalid(errors.New("only cancelled bookings can be deleted"))
	}
	return deps.BookingStore.Delete(ctx, id)
}
