package orchestrators

import (
	"context"
	"errors"
	"strings"

	"venueadmin/internal/adapters/storage/booking"
	"venueadmin/internal/domain/venue"
)

// ErrVenueInUse is returned when deleting a venue that still has bookings.
var ErrVenueInUse = errors.New("venue has bookings; deactivate it instead")

// CreateVenueInput carries input for the orchestrator.
type CreateVenueInput struct {
	Name            string
	Sport           string
	Capacity        int
	HourlyRateCents int64
	Description     string
}

// CreateVenueDeps holds dependencies for CreateVenue.
type CreateVenueDeps struct {
	VenueStore VenueStore
	Clock      Clock
}

// ExecuteCreateVenue registers a new active venue.
// PRE: Input passes venue validation
// POST: Venue persisted with a generated ID; returns the ID
func ExecuteCreateVenue(ctx context.Context, input CreateVenueInput, deps CreateVenueDeps) (string, error) {
	v := venue.Venue{
		ID:              deps.Clock.id(),
		Name:            strings.TrimSpace(input.Name),
		Sport:           input.Sport,
		Capacity:        input.Capacity,
		HourlyRateCents: input.HourlyRateCents,
		Description:     input.Description,
		Active:          true,
		CreatedAt:       deps.Clock.now(),
	}
	if err := v.Validate(); err != nil {
		return "", Invalid(err)
	}
	if err := deps.VenueStore.Save(ctx, v); err != nil {
		return "", err
	}
	return v.ID, nil
}

// SetActiveInput toggles the active flag of an entity.
type SetActiveInput struct {
	ID     string
	Active bool
}

// SetVenueActiveDeps holds dependencies for SetVenueActive.
type SetVenueActiveDeps struct {
	VenueStore VenueStore
}

// ExecuteSetVenueActive activates or deactivates a venue.
// PRE: Venue exists and is not already in the requested state
// POST: Venue.Active == input.Active
func ExecuteSetVenueActive(ctx context.Context, input SetActiveInput, deps SetVenueActiveDeps) error {
	v, err := deps.VenueStore.GetByID(ctx, input.ID)
	if err != nil {
		return err
	}
	if input.Active {
		err = v.Activate()
	} else {
		err = v.Deactivate()
	}
	if err != nil {
		return Invalid(err)
	}
	return deps.VenueStore.Save(ctx, v)
}

// DeleteVenueDeps holds dependencies for DeleteVenue.
type DeleteVenueDeps struct {
	VenueStore   VenueStore
	BookingStore BookingStore
}

// ExecuteDeleteVenue removes a venue that was never booked.
// PRE: No booking references the venue
// POST: Venue deleted
func ExecuteDeleteVenue(ctx context.Context, id string, deps DeleteVenueDeps) error {
	if _, err := deps.VenueStore.GetByID(ctx, id); err != nil {
		return err
	}
	n, err := deps.BookingStore.Count(ctx, booking.ListFilter{VenueID: id})
	if err != nil {
		return err
	}
	if n > 0 {
		return Invalid(ErrVenueInUse)
	}
	return deps.VenueStore.Delete(ctx, id)
}
