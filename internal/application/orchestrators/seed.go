package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"venueadmin/internal/domain/booking"
	"venueadmin/internal/domain/group"
	"venueadmin/internal/domain/venue"
)

// SeedDeps holds dependencies for SeedDemoData.
type SeedDeps struct {
	VenueStore      VenueStore
	ClientStore     ClientStore
	BookingStore    BookingStore
	ReceivableStore ReceivableStore
	UserStore       UserStore
	GroupStore      GroupStore
	Clock           Clock
}

// SeedResult reports what was created.
type SeedResult struct {
	Skipped     bool
	Groups      int
	Users       int
	Venues      int
	Clients     int
	Bookings    int
	Receivables int
}

// DemoPassword is the password of every seeded user.
const DemoPassword = "changeme123"

// ExecuteSeedDemoData populates an empty database with demo records.
// PRE: Stores are initialized
// POST: Demo data exists; a second run is a no-op (Skipped=true)
func ExecuteSeedDemoData(ctx context.Context, deps SeedDeps) (SeedResult, error) {
	groups, err := deps.GroupStore.List(ctx)
	if err != nil {
		return SeedResult{}, err
	}
	if len(groups) > 0 {
		return SeedResult{Skipped: true}, nil
	}
	var result SeedResult

	adminID, err := ExecuteCreateGroup(ctx, CreateGroupInput{
		Name:        "Administrators",
		Description: "Full access",
		Permissions: group.AllPermissions,
	}, CreateGroupDeps{GroupStore: deps.GroupStore, Clock: deps.Clock})
	if err != nil {
		return result, fmt.Errorf("seed group: %w", err)
	}
	deskID, err := ExecuteCreateGroup(ctx, CreateGroupInput{
		Name:        "Front desk",
		Description: "Bookings and clients",
		Permissions: []string{group.PermBookingsWrite, group.PermClientsWrite, group.PermVenuesRead, group.PermReceivablesRead},
	}, CreateGroupDeps{GroupStore: deps.GroupStore, Clock: deps.Clock})
	if err != nil {
		return result, fmt.Errorf("seed group: %w", err)
	}
	result.Groups = 2

	userDeps := CreateUserDeps{UserStore: deps.UserStore, GroupStore: deps.GroupStore, Clock: deps.Clock}
	for _, u := range []CreateUserInput{
		{Name: "Admin", Email: "admin@example.com", Password: DemoPassword, GroupID: adminID},
		{Name: "Desk", Email: "desk@example.com", Password: DemoPassword, GroupID: deskID},
	} {
		if _, err := ExecuteCreateUser(ctx, u, userDeps); err != nil {
			return result, fmt.Errorf("seed user %s: %w", u.Email, err)
		}
		result.Users++
	}

	venueDeps := CreateVenueDeps{VenueStore: deps.VenueStore, Clock: deps.Clock}
	var venueIDs []string
	for _, v := range []CreateVenueInput{
		{Name: "Central Arena", Sport: venue.SportFutsal, Capacity: 12, HourlyRateCents: 18000, Description: "Indoor court with **wooden floor**."},
		{Name: "Beach Court 1", Sport: venue.SportVolleyball, Capacity: 4, HourlyRateCents: 9000},
		{Name: "Padel Court A", Sport: venue.SportPadel, Capacity: 4, HourlyRateCents: 12000},
		{Name: "Society Field", Sport: venue.SportSoccer, Capacity: 14, HourlyRateCents: 25000},
	} {
		id, err := ExecuteCreateVenue(ctx, v, venueDeps)
		if err != nil {
			return result, fmt.Errorf("seed venue %s: %w", v.Name, err)
		}
		venueIDs = append(venueIDs, id)
		result.Venues++
	}

	clientDeps := CreateClientDeps{ClientStore: deps.ClientStore, Clock: deps.Clock}
	var clientIDs []string
	for _, c := range []CreateClientInput{
		{Name: "Ana Souza", Email: "ana@example.com", Phone: "+55 81 99999-0001"},
		{Name: "Bruno Lima", Email: "bruno@example.com", Phone: "+55 81 99999-0002"},
		{Name: "Carla Mendes", Email: "carla@example.com"},
		{Name: "Tuesday Futsal Team", Email: "team@example.com", Document: "12.345.678/0001-90"},
	} {
		id, err := ExecuteCreateClient(ctx, c, clientDeps)
		if err != nil {
			return result, fmt.Errorf("seed client %s: %w", c.Name, err)
		}
		clientIDs = append(clientIDs, id)
		result.Clients++
	}

	now := deps.Clock.now().UTC()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	bookingDeps := CreateBookingDeps{
		BookingStore: deps.BookingStore,
		VenueStore:   deps.VenueStore,
		ClientStore:  deps.ClientStore,
		Clock:        deps.Clock,
	}
	receivableDeps := CreateReceivableDeps{
		ReceivableStore: deps.ReceivableStore,
		ClientStore:     deps.ClientStore,
		Clock:           deps.Clock,
	}
	// Spread bookings over the previous and next week, one per venue per day.
	for offset := -7; offset <= 7; offset++ {
		for i, venueID := range venueIDs {
			start := day.AddDate(0, 0, offset).Add(time.Duration(17+i) * time.Hour)
			clientID := clientIDs[(offset+7+i)%len(clientIDs)]
			id, err := ExecuteCreateBooking(ctx, CreateBookingInput{
				VenueID:  venueID,
				ClientID: clientID,
				StartsAt: start,
				EndsAt:   start.Add(time.Hour),
			}, bookingDeps)
			if err != nil {
				return result, fmt.Errorf("seed booking: %w", err)
			}
			result.Bookings++

			b, err := deps.BookingStore.GetByID(ctx, id)
			if err != nil {
				return result, err
			}
			if offset < 0 {
				b.Status = booking.StatusCompleted
			} else if (offset+i)%3 == 0 {
				b.Status = booking.StatusConfirmed
			}
			if err := deps.BookingStore.Save(ctx, b); err != nil {
				return result, err
			}
			if offset%2 == 0 {
				if _, err := CreateBookingReceivable(ctx, b, receivableDeps); err != nil {
					return result, fmt.Errorf("seed receivable: %w", err)
				}
				result.Receivables++
			}
		}
	}

	slog.Info("seed_complete", "venues", result.Venues, "clients", result.Clients, "bookings", result.Bookings, "receivables", result.Receivables)
	return result, nil
}
