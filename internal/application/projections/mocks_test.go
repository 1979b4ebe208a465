package projections

import (
	"context"
	"database/sql"
	"fmt"

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

type mockVenueStore struct {
	venues []domainVenue.Venue
}

func (m *mockVenueStore) GetByID(_ context.Context, id string) (domainVenue.Venue, error) {
	for _, v := range m.venues {
		if v.ID == id {
			return v, nil
		}
	}
	return domainVenue.Venue{}, fmt.Errorf("venue not found: %w", sql.ErrNoRows)
}

func (m *mockVenueStore) List(_ context.Context, _ venue.ListFilter) ([]domainVenue.Venue, error) {
	return m.venues, nil
}

func (m *mockVenueStore) Count(_ context.Context, filter venue.ListFilter) (int, error) {
	n := 0
	for _, v := range m.venues {
		if !filter.ActiveOnly || v.Active {
			n++
		}
	}
	return n, nil
}

type mockClientStore struct {
	clients []domainClient.Client
}

func (m *mockClientStore) GetByID(_ context.Context, id string) (domainClient.Client, error) {
	for _, c := range m.clients {
		if c.ID == id {
			return c, nil
		}
	}
	return domainClient.Client{}, fmt.Errorf("client not found: %w", sql.ErrNoRows)
}

func (m *mockClientStore) List(_ context.Context, _ client.ListFilter) ([]domainClient.Client, error) {
	return m.clients, nil
}

func (m *mockClientStore) Count(_ context.Context, filter client.ListFilter) (int, error) {
	n := 0
	for _, c := range m.clients {
		if filter.Status == "" || c.Status == filter.Status {
			n++
		}
	}
	return n, nil
}

type mockBookingStore struct {
	bookings []domainBooking.Booking
	err      error
}

func (m *mockBookingStore) List(_ context.Context, filter booking.ListFilter) ([]domainBooking.Booking, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []domainBooking.Booking
	for _, b := range m.bookings {
		if filter.VenueID != "" && b.VenueID != filter.VenueID {
			continue
		}
		if !filter.From.IsZero() && b.StartsAt.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && !b.StartsAt.Before(filter.To) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (m *mockBookingStore) Count(ctx context.Context, filter booking.ListFilter) (int, error) {
	out, err := m.List(ctx, filter)
	return len(out), err
}

type mockReceivableStore struct {
	receivables []domainReceivable.Receivable
}

func (m *mockReceivableStore) List(_ context.Context, _ receivable.ListFilter) ([]domainReceivable.Receivable, error) {
	return m.receivables, nil
}

type mockUserStore struct {
	users []domainUser.User
}

func (m *mockUserStore) List(_ context.Context, _ user.ListFilter) ([]domainUser.User, error) {
	return m.users, nil
}

func (m *mockUserStore) Count(_ context.Context, _ user.ListFilter) (int, error) {
	return len(m.users), nil
}

type mockGroupStore struct {
	groups []domainGroup.Group
}

func (m *mockGroupStore) List(_ context.Context) ([]domainGroup.Group, error) {
	return m.groups, nil
}
