package projections

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"venueadmin/internal/adapters/storage/booking"
	"venueadmin/internal/adapters/storage/client"
	"venueadmin/internal/adapters/storage/receivable"
	"venueadmin/internal/adapters/storage/venue"
	domainBooking "venueadmin/internal/domain/booking"
	domainClient "venueadmin/internal/domain/client"
	domainReceivable "venueadmin/internal/domain/receivable"
)

// GetReportQuery carries input for the dashboard report.
type GetReportQuery struct {
	Now time.Time
}

// GetReportDeps holds dependencies for the dashboard report.
type GetReportDeps struct {
	VenueStore      VenueStore
	ClientStore     ClientStore
	BookingStore    BookingStore
	ReceivableStore ReceivableStore
}

// ReceivableTotal sums receivables sharing a derived status.
type ReceivableTotal struct {
	Status      string `json:"status"`
	Count       int    `json:"count"`
	AmountCents int64  `json:"amountCents"`
}

// VenueUsage counts active bookings on one venue.
type VenueUsage struct {
	VenueID   string        `json:"venueId"`
	VenueName string        `json:"venue"`
	Bookings  int           `json:"bookings"`
	Booked    time.Duration `json:"bookedNanos"`
}

// ReportResult is the dashboard summary.
type ReportResult struct {
	ActiveVenues     int               `json:"activeVenues"`
	ActiveClients    int               `json:"activeClients"`
	BookingsToday    int               `json:"bookingsToday"`
	UpcomingBookings int               `json:"upcomingBookings"`
	Receivables      []ReceivableTotal `json:"receivables"`
	VenueUsage       []VenueUsage      `json:"venueUsage"`
}

// QueryGetReport builds the dashboard report.
// PRE: deps are non-nil
// POST: Receivables has one entry per status in open, overdue, paid order;
// VenueUsage is sorted by booking count descending, then venue name
// INVARIANT: cancelled bookings are never counted
func QueryGetReport(ctx context.Context, query GetReportQuery, deps GetReportDeps) (ReportResult, error) {
	now := query.Now
	if now.IsZero() {
		now = time.Now()
	}
	var result ReportResult

	activeVenues, err := deps.VenueStore.Count(ctx, venue.ListFilter{ActiveOnly: true})
	if err != nil {
		return ReportResult{}, fmt.Errorf("count venues: %w", err)
	}
	result.ActiveVenues = activeVenues

	activeClients, err := deps.ClientStore.Count(ctx, client.ListFilter{Status: domainClient.StatusActive})
	if err != nil {
		return ReportResult{}, fmt.Errorf("count clients: %w", err)
	}
	result.ActiveClients = activeClients

	bookings, err := deps.BookingStore.List(ctx, booking.ListFilter{})
	if err != nil {
		return ReportResult{}, fmt.Errorf("list bookings: %w", err)
	}
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)
	usage := make(map[string]*VenueUsage)
	for _, b := range bookings {
		if !b.OccupiesSlot() {
			continue
		}
		if !b.StartsAt.Before(dayStart) && b.StartsAt.Before(dayEnd) {
			result.BookingsToday++
		}
		if b.StartsAt.After(now) && b.Status != domainBooking.StatusCompleted {
			result.UpcomingBookings++
		}
		u, ok := usage[b.VenueID]
		if !ok {
			u = &VenueUsage{VenueID: b.VenueID}
			usage[b.VenueID] = u
		}
		u.Bookings++
		u.Booked += b.Duration()
	}

	names, err := venueNames(ctx, deps.VenueStore)
	if err != nil {
		return ReportResult{}, fmt.Errorf("list venues: %w", err)
	}
	for _, u := range usage {
		u.VenueName = names[u.VenueID]
		result.VenueUsage = append(result.VenueUsage, *u)
	}
	slices.SortFunc(result.VenueUsage, func(a, b VenueUsage) int {
		if c := cmp.Compare(b.Bookings, a.Bookings); c != 0 {
			return c
		}
		return cmp.Compare(a.VenueName, b.VenueName)
	})

	receivables, err := deps.ReceivableStore.List(ctx, receivable.ListFilter{})
	if err != nil {
		return ReportResult{}, fmt.Errorf("list receivables: %w", err)
	}
	totals := map[string]*ReceivableTotal{}
	order := []string{domainReceivable.StatusOpen, domainReceivable.StatusOverdue, domainReceivable.StatusPaid}
	for _, status := range order {
		totals[status] = &ReceivableTotal{Status: status}
	}
	for _, r := range receivables {
		t := totals[r.StatusAt(now)]
		t.Count++
		t.AmountCents += r.AmountCents
	}
	for _, status := range order {
		result.Receivables = append(result.Receivables, *totals[status])
	}
	return result, nil
}
