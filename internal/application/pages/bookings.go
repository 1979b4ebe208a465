package pages

import (
	"context"
	"net/url"
	"strings"

	clientStore "venueadmin/internal/adapters/storage/client"
	venueStore "venueadmin/internal/adapters/storage/venue"
	"venueadmin/internal/application/listview"
	"venueadmin/internal/application/orchestrators"
	"venueadmin/internal/application/projections"
	"venueadmin/internal/domain/booking"
	"venueadmin/internal/domain/client"
)

func registerBookings(r *Registry, deps Deps, f formatter) error {
	listDeps := projections.GetBookingListDeps{
		BookingStore: deps.Bookings,
		VenueStore:   deps.Venues,
		ClientStore:  deps.Clients,
	}
	transition := orchestrators.BookingTransitionDeps{BookingStore: deps.Bookings}
	bill := orchestrators.CreateReceivableDeps{
		ReceivableStore: deps.Receivables,
		ClientStore:     deps.Clients,
		BookingStore:    deps.Bookings,
		Clock:           deps.Clock,
	}

	load := func(ctx context.Context, filters map[string]string) ([]projections.BookingRow, error) {
		res, err := projections.QueryGetBookingList(ctx, projections.GetBookingListQuery{
			VenueID: filters["venue"],
			Status:  filters["status"],
		}, listDeps)
		return res.Bookings, err
	}

	return Register(r, Definition[projections.BookingRow]{
		Entity:   "bookings",
		Title:    "Bookings",
		Singular: "booking",
		ID:       func(b projections.BookingRow) string { return b.ID },
		Columns: []listview.Column[projections.BookingRow]{
			{Key: "startsAt", Label: "Starts", Sortable: true,
				Value:  func(b projections.BookingRow) any { return unixValue(b.StartsAt) },
				Render: listview.RenderFunc[projections.BookingRow](func(b projections.BookingRow) listview.Cell { return f.dateTime(b.StartsAt) })},
			{Key: "venue", Label: "Venue", Sortable: true, Value: func(b projections.BookingRow) any { return b.VenueName }},
			{Key: "client", Label: "Client", Sortable: true, Value: func(b projections.BookingRow) any { return b.ClientName }},
			{Key: "duration", Label: "Duration", Sortable: true,
				Value:  func(b projections.BookingRow) any { return b.Duration },
				Render: listview.RenderFunc[projections.BookingRow](func(b projections.BookingRow) listview.Cell { return duration(b.Duration) })},
			{Key: "status", Label: "Status", Sortable: true,
				Value:  func(b projections.BookingRow) any { return b.Status },
				Render: listview.RenderFunc[projections.BookingRow](func(b projections.BookingRow) listview.Cell { return badge(b.Status) })},
			{Key: "price", Label: "Price", Sortable: true, ClassName: "num",
				Value:  func(b projections.BookingRow) any { return b.PriceCents },
				Render: listview.RenderFunc[projections.BookingRow](func(b projections.BookingRow) listview.Cell { return f.cents(b.PriceCents) })},
			{Key: "notes", Label: "Notes", Value: func(b projections.BookingRow) any { return b.Notes }},
		},
		Actions: []listview.Action[projections.BookingRow]{
			{Name: "confirm", Label: "Confirm", Icon: "check",
				Show: func(b projections.BookingRow) bool { return b.Status == booking.StatusPending },
				OnClick: func(ctx context.Context, b projections.BookingRow) error {
					return orchestrators.ExecuteConfirmBooking(ctx, b.ID, transition)
				}},
			{Name: "bill", Label: "Bill", Icon: "receipt", Variant: listview.ActionOutline,
				Show: func(b projections.BookingRow) bool {
					return b.Status != booking.StatusCancelled && b.PriceCents > 0
				},
				OnClick: func(ctx context.Context, b projections.BookingRow) error {
					full, err := deps.Bookings.GetByID(ctx, b.ID)
					if err != nil {
						return err
					}
					_, err = orchestrators.CreateBookingReceivable(ctx, full, bill)
					return err
				}},
			{Name: "cancel", Label: "Cancel", Icon: "x", Variant: listview.ActionDestructive, Confirm: "Cancel this booking?",
				Show: func(b projections.BookingRow) bool {
					return b.Status == booking.StatusPending || b.Status == booking.StatusConfirmed
				},
				OnClick: func(ctx context.Context, b projections.BookingRow) error {
					return orchestrators.ExecuteCancelBooking(ctx, b.ID, transition)
				}},
			{Name: "delete", Label: "Delete", Icon: "trash", Variant: listview.ActionDestructive, Confirm: "Delete this booking permanently?",
				Show: func(b projections.BookingRow) bool { return b.Status == booking.StatusCancelled },
				OnClick: func(ctx context.Context, b projections.BookingRow) error {
					return orchestrators.ExecuteDeleteBooking(ctx, b.ID, transition)
				}},
		},
		Load: load,
		Get: func(ctx context.Context, id string) (projections.BookingRow, error) {
			b, err := deps.Bookings.GetByID(ctx, id)
			if err != nil {
				return projections.BookingRow{}, err
			}
			v, _ := deps.Venues.GetByID(ctx, b.VenueID)
			c, _ := deps.Clients.GetByID(ctx, b.ClientID)
			return projections.BookingRow{
				ID: b.ID, VenueID: b.VenueID, VenueName: v.Name, ClientID: b.ClientID, ClientName: c.Name,
				StartsAt: b.StartsAt, EndsAt: b.EndsAt, Duration: b.Duration(), Status: b.Status,
				PriceCents: b.PriceCents, Notes: b.Notes,
			}, nil
		},
		Matches: func(b projections.BookingRow, term string) bool {
			term = strings.ToLower(term)
			return strings.Contains(strings.ToLower(b.VenueName), term) ||
				strings.Contains(strings.ToLower(b.ClientName), term) ||
				strings.Contains(strings.ToLower(b.Notes), term)
		},
		FilterKeys: []string{"status", "venue"},
		Card: listview.CardFunc[projections.BookingRow](func(b projections.BookingRow) listview.Card {
			return listview.Card{
				Title:    b.VenueName,
				Subtitle: f.dateTime(b.StartsAt).Text + " · " + duration(b.Duration).Text,
				Fields: []listview.Field{
					{Label: "Client", Cell: listview.Cell{Text: b.ClientName}},
					{Label: "Status", Cell: badge(b.Status)},
					{Label: "Price", Cell: f.cents(b.PriceCents)},
				},
			}
		}),
		Fields: func(ctx context.Context) ([]FormField, error) {
			venues, err := deps.Venues.List(ctx, venueStore.ListFilter{ActiveOnly: true})
			if err != nil {
				return nil, err
			}
			clients, err := deps.Clients.List(ctx, clientStore.ListFilter{Status: client.StatusActive})
			if err != nil {
				return nil, err
			}
			venueOpts := make([]Option, 0, len(venues))
			for _, v := range venues {
				venueOpts = append(venueOpts, Option{Value: v.ID, Label: v.Name})
			}
			clientOpts := make([]Option, 0, len(clients))
			for _, c := range clients {
				clientOpts = append(clientOpts, Option{Value: c.ID, Label: c.Name})
			}
			return []FormField{
				{Name: "venue", Label: "Venue", Type: "select", Required: true, Options: venueOpts},
				{Name: "client", Label: "Client", Type: "select", Required: true, Options: clientOpts},
				{Name: "startsAt", Label: "Starts", Type: "datetime-local", Required: true},
				{Name: "endsAt", Label: "Ends", Type: "datetime-local", Required: true},
				{Name: "price", Label: "Price", Type: "money", Help: "Leave empty to charge the venue's hourly rate"},
				{Name: "notes", Label: "Notes", Type: "textarea"},
			}, nil
		},
		Create: func(ctx context.Context, values url.Values) (string, error) {
			start, err := formDateTime(values, "startsAt", f.location)
			if err != nil {
				return "", err
			}
			end, err := formDateTime(values, "endsAt", f.location)
			if err != nil {
				return "", err
			}
			input := orchestrators.CreateBookingInput{
				VenueID:  values.Get("venue"),
				ClientID: values.Get("client"),
				StartsAt: start,
				EndsAt:   end,
				Notes:    values.Get("notes"),
			}
			if strings.TrimSpace(values.Get("price")) != "" {
				cents, err := formCents(values, "price")
				if err != nil {
					return "", err
				}
				input.PriceCents = &cents
			}
			return orchestrators.ExecuteCreateBooking(ctx, input, orchestrators.CreateBookingDeps{
				BookingStore: deps.Bookings,
				VenueStore:   deps.Venues,
				ClientStore:  deps.Clients,
				Clock:        deps.Clock,
			})
		},
	})
}
