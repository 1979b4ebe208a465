package web

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"venueadmin/internal/application/orchestrators"
	"venueadmin/internal/application/projections"
	"venueadmin/internal/domain/booking"
)

// defaultRange is the calendar span when ?to is omitted.
const defaultRange = 7 * 24 * time.Hour

type bookingResponse struct {
	ID         string    `json:"id"`
	VenueID    string    `json:"venueId"`
	ClientID   string    `json:"clientId"`
	StartsAt   time.Time `json:"startsAt"`
	EndsAt     time.Time `json:"endsAt"`
	Status     string    `json:"status"`
	PriceCents int64     `json:"priceCents"`
}

type rescheduleRequest struct {
	StartsAt time.Time `json:"startsAt"`
	EndsAt   time.Time `json:"endsAt"`
}

// handleBookingsInRange serves GET /api/bookings?from=YYYY-MM-DD&to=YYYY-MM-DD
// for the calendar. from defaults to today and to to a week after from.
func (h *handlers) handleBookingsInRange(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	loc := h.app.location()

	now := h.app.now().In(loc)
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	if raw := q.Get("from"); raw != "" {
		t, err := time.ParseInLocation(booking.DateFormat, raw, loc)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "from must be YYYY-MM-DD"})
			return
		}
		from = t
	}
	to := from.Add(defaultRange)
	if raw := q.Get("to"); raw != "" {
		t, err := time.ParseInLocation(booking.DateFormat, raw, loc)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "to must be YYYY-MM-DD"})
			return
		}
		to = t
	}
	includeCancelled, _ := strconv.ParseBool(q.Get("include_cancelled"))

	res, err := projections.QueryGetBookingsInRange(r.Context(), projections.GetBookingsInRangeQuery{
		From:             from,
		To:               to,
		VenueID:          q.Get("venue"),
		IncludeCancelled: includeCancelled,
	}, projections.GetBookingListDeps{
		BookingStore: h.app.Stores.Bookings,
		VenueStore:   h.app.Stores.Venues,
		ClientStore:  h.app.Stores.Clients,
	})
	if errors.Is(err, booking.ErrEndBeforeStart) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "to must be after from"})
		return
	}
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"from":     from,
		"to":       to,
		"bookings": res.Bookings,
	})
}

// handleRescheduleBooking serves PATCH /api/bookings/{id}/schedule, the
// calendar's drag-and-drop target.
func (h *handlers) handleRescheduleBooking(w http.ResponseWriter, r *http.Request) {
	var req rescheduleRequest
	if err := strictDecode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	b, err := orchestrators.ExecuteRescheduleBooking(r.Context(), orchestrators.RescheduleBookingInput{
		ID:       r.PathValue("id"),
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
	}, orchestrators.BookingTransitionDeps{BookingStore: h.app.Stores.Bookings})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bookingResponse{
		ID:         b.ID,
		VenueID:    b.VenueID,
		ClientID:   b.ClientID,
		StartsAt:   b.StartsAt,
		EndsAt:     b.EndsAt,
		Status:     b.Status,
		PriceCents: b.PriceCents,
	})
}
