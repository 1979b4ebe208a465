package projections

import (
	"context"
	"fmt"
	"time"

	"venueadmin/internal/adapters/storage/booking"
	domainBooking "venueadmin/internal/domain/booking"
)

// GetBookingListQuery carries query parameters. Zero values match everything.
type GetBookingListQuery struct {
	VenueID  string
	ClientID string
	Status   string
	From     time.Time
	To       time.Time
}

// BookingRow is a booking joined with its venue and client names.
type BookingRow struct {
	ID         string        `json:"id"`
	VenueID    string        `json:"venueId"`
	VenueName  string        `json:"venue"`
	ClientID   string        `json:"clientId"`
	ClientName string        `json:"client"`
	StartsAt   time.Time     `json:"startsAt"`
	EndsAt     time.Time     `json:"endsAt"`
	Duration   time.Duration `json:"-"`
	Status     string        `json:"status"`
	PriceCents int64         `json:"priceCents"`
	Notes      string        `json:"notes,omitempty"`
}

// GetBookingListResult carries the query result.
type GetBookingListResult struct {
	Bookings []BookingRow
}

// GetBookingListDeps holds dependencies for GetBookingList.
type GetBookingListDeps struct {
	BookingStore BookingStore
	VenueStore   VenueStore
	ClientStore  ClientStore
}

// QueryGetBookingList returns every booking matching the query, ordered by
// start time, with display names resolved.
// PRE: deps are non-nil
// POST: Rows keep store order; unknown venue/client IDs resolve to ""
func QueryGetBookingList(ctx context.Context, query GetBookingListQuery, deps GetBookingListDeps) (GetBookingListResult, error) {
	bookings, err := deps.BookingStore.List(ctx, booking.ListFilter{
		VenueID:  query.VenueID,
		ClientID: query.ClientID,
		Status:   query.Status,
		From:     query.From,
		To:       query.To,
	})
	if err != nil {
		return GetBookingListResult{}, fmt.Errorf("list bookings: %w", err)
	}
	venues, err := venueNames(ctx, deps.VenueStore)
	if err != nil {
		return GetBookingListResult{}, fmt.Errorf("list venues: %w", err)
	}
	clients, err := clientNames(ctx, deps.ClientStore)
	if err != nil {
		return GetBookingListResult{}, fmt.Errorf("list clients: %w", err)
	}

	rows := make([]BookingRow, 0, len(bookings))
	for _, b := range bookings {
		rows = append(rows, bookingRow(b, venues, clients))
	}
	return GetBookingListResult{Bookings: rows}, nil
}

func bookingRow(b domainBooking.Booking, venues, clients map[string]string) BookingRow {
	return BookingRow{
		ID:         b.ID,
		VenueID:    b.VenueID,
		VenueName:  venues[b.VenueID],
		ClientID:   b.ClientID,
		ClientName: clients[b.ClientID],
		StartsAt:   b.StartsAt,
		EndsAt:     b.EndsAt,
		Duration:   b.Duration(),
		Status:     b.Status,
		PriceCents: b.PriceCents,
		Notes:      b.Notes,
	}
}

// GetBookingsInRangeQuery selects the bookings a schedule view shows.
type GetBookingsInRangeQuery struct {
	From             time.Time
	To               time.Time
	VenueID          string
	IncludeCancelled bool
}

// QueryGetBookingsInRange returns bookings starting in [From, To).
// PRE: From is before To
// POST: Cancelled bookings are dropped unless IncludeCancelled is set
func QueryGetBookingsInRange(ctx context.Context, query GetBookingsInRangeQuery, deps GetBookingListDeps) (GetBookingListResult, error) {
	if !query.From.Before(query.To) {
		return GetBookingListResult{}, domainBooking.ErrEndBeforeStart
	}
	result, err := QueryGetBookingList(ctx, GetBookingListQuery{
		VenueID: query.VenueID,
		From:    query.From,
		To:      query.To,
	}, deps)
	if err != nil {
		return GetBookingListResult{}, err
	}
	if query.IncludeCancelled {
		return result, nil
	}
	kept := result.Bookings[:0]
	for _, row := range result.Bookings {
		if row.Status != domainBooking.StatusCancelled {
			kept = append(kept, row)
		}
	}
	return GetBookingListResult{Bookings: kept}, nil
}
