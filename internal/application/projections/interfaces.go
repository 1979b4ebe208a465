package projections

import (
	"context"

	"venueadmin/internal/adapters/storage/booking"
	"venueadmin/internal/adapters/storage/client"
	"venueadmin/internal/adapters/storage/receivable"
	"venueadmin/internal/adapters/storage/user"
	"venueadmin/internal/adapters/storage/venue"
	domainBooking "venueadmin/internal/domain/booking"
	domainClient "venueadmin/internal/domain/client"
	domainGroup "venueadmin/internal/domain/group"
	domainReceivable "venueadmin/internal/domain/receivable"
	domainUser "venueadmin/internal/domain/user"
	domainVenue "venueadmin/internal/domain/venue"
)

// VenueStore interface for venue queries.
type VenueStore interface {
	GetByID(ctx context.Context, id string) (domainVenue.Venue, error)
	List(ctx context.Context, filter venue.ListFilter) ([]domainVenue.Venue, error)
	Count(ctx context.Context, filter venue.ListFilter) (int, error)
}

// ClientStore interface for client queries.
type ClientStore interface {
	GetByID(ctx context.Context, id string) (domainClient.Client, error)
	List(ctx context.Context, filter client.ListFilter) ([]domainClient.Client, error)
	Count(ctx context.Context, filter client.ListFilter) (int, error)
}

// BookingStore interface for booking queries.
type BookingStore interface {
	List(ctx context.Context, filter booking.ListFilter) ([]domainBooking.Booking, error)
	Count(ctx context.Context, filter booking.ListFilter) (int, error)
}

// ReceivableStore interface for receivable queries.
type ReceivableStore interface {
	List(ctx context.Context, filter receivable.ListFilter) ([]domainReceivable.Receivable, error)
}

// UserStore interface for user queries.
type UserStore interface {
	List(ctx context.Context, filter user.ListFilter) ([]domainUser.User, error)
	Count(ctx context.Context, filter user.ListFilter) (int, error)
}

// GroupStore interface for group queries.
type GroupStore interface {
	List(ctx context.Context) ([]domainGroup.Group, error)
}

// venueNames maps venue IDs to names.
func venueNames(ctx context.Context, store VenueStore) (map[string]string, error) {
	venues, err := store.List(ctx, venue.ListFilter{})
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(venues))
	for _, v := range venues {
		names[v.ID] = v.Name
	}
	return names, nil
}

// clientNames maps client IDs to names.
func clientNames(ctx context.Context, store ClientStore) (map[string]string, error) {
	clients, err := store.List(ctx, client.ListFilter{})
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(clients))
	for _, c := range clients {
		names[c.ID] = c.Name
	}
	return names, nil
}
