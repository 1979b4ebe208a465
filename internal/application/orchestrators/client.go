package orchestrators

import (
	"context"
	"errors"
	"strings"

	"venueadmin/internal/adapters/storage/booking"
	"venueadmin/internal/domain/client"
)

// ErrClientHasBookings is returned when deleting a client with booking history.
var ErrClientHasBookings = errors.New("client has bookings; deactivate it instead")

// CreateClientInput carries input for the orchestrator.
type CreateClientInput struct {
	Name     string
	Email    string
	Phone    string
	Document string
}

// CreateClientDeps holds dependencies for CreateClient.
type CreateClientDeps struct {
	ClientStore ClientStore
	Clock       Clock
}

// ExecuteCreateClient registers a new active client.
// PRE: Input passes client validation
// POST: Client persisted with Status=active; returns the ID
func ExecuteCreateClient(ctx context.Context, input CreateClientInput, deps CreateClientDeps) (string, error) {
	c := client.Client{
		ID:        deps.Clock.id(),
		Name:      strings.TrimSpace(input.Name),
		Email:     strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:     strings.TrimSpace(input.Phone),
		Document:  strings.TrimSpace(input.Document),
		Status:    client.StatusActive,
		CreatedAt: deps.Clock.now(),
	}
	if err := c.Validate(); err != nil {
		return "", Invalid(err)
	}
	if err := deps.ClientStore.Save(ctx, c); err != nil {
		return "", err
	}
	return c.ID, nil
}

// SetClientActiveDeps holds dependencies for SetClientActive.
type SetClientActiveDeps struct {
	ClientStore ClientStore
}

// ExecuteSetClientActive activates or deactivates a client.
func ExecuteSetClientActive(ctx context.Context, input SetActiveInput, deps SetClientActiveDeps) error {
	c, err := deps.ClientStore.GetByID(ctx, input.ID)
	if err != nil {
		return err
	}
	if input.Active {
		err = c.Activate()
	} else {
		err = c.Deactivate()
	}
	if err != nil {
		return Invalid(err)
	}
	return deps.ClientStore.Save(ctx, c)
}

// DeleteClientDeps holds dependencies for DeleteClient.
type DeleteClientDeps struct {
	ClientStore  ClientStore
	BookingStore BookingStore
}

// ExecuteDeleteClient removes a client without bookings.
// PRE: No booking references the client
// POST: Client deleted
func ExecuteDeleteClient(ctx context.Context, id string, deps DeleteClientDeps) error {
	if _, err := deps.ClientStore.GetByID(ctx, id); err != nil {
		return err
	}
	n, err := deps.BookingStore.Count(ctx, booking.ListFilter{ClientID: id})
	if err != nil {
		return err
	}
	if n > 0 {
		return Invalid(ErrClientHasBookings)
	}
	return deps.ClientStore.Delete(ctx, id)
}
