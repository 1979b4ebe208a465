package pages

import (
	"bytes"
	"context"
	"html/template"
	"net/url"
	"strconv"

	"github.com/yuin/goldmark"

	venueStore "venueadmin/internal/adapters/storage/venue"
	"venueadmin/internal/application/listview"
	"venueadmin/internal/application/orchestrators"
	"venueadmin/internal/domain/venue"
)

// mdRenderer renders venue descriptions. Raw HTML in the source is escaped.
var mdRenderer = goldmark.New()

func markdown(src string) listview.Cell {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(src), &buf); err != nil {
		return listview.Cell{Text: src}
	}
	return listview.Cell{Text: src, HTML: template.HTML(buf.String())} // #nosec G203 -- goldmark escapes raw HTML
}

func registerVenues(r *Registry, deps Deps, f formatter) error {
	setActive := orchestrators.SetVenueActiveDeps{VenueStore: deps.Venues}
	remove := orchestrators.DeleteVenueDeps{VenueStore: deps.Venues, BookingStore: deps.Bookings}

	return Register(r, Definition[venue.Venue]{
		Entity:   "venues",
		Title:    "Venues",
		Singular: "venue",
		ID:       func(v venue.Venue) string { return v.ID },
		Columns: []listview.Column[venue.Venue]{
			{Key: "name", Label: "Name", Sortable: true},
			{Key: "sport", Label: "Sport", Sortable: true},
			{Key: "capacity", Label: "Capacity", Sortable: true, ClassName: "num"},
			{Key: "hourlyRate", Label: "Hourly rate", Sortable: true, ClassName: "num",
				Value:  func(v venue.Venue) any { return v.HourlyRateCents },
				Render: listview.RenderFunc[venue.Venue](func(v venue.Venue) listview.Cell { return f.cents(v.HourlyRateCents) })},
			{Key: "active", Label: "Active", Sortable: true,
				Render: listview.RenderFunc[venue.Venue](func(v venue.Venue) listview.Cell { return yesNo(v.Active) })},
			{Key: "description", Label: "Description",
				Render: listview.RenderFunc[venue.Venue](func(v venue.Venue) listview.Cell { return markdown(v.Description) })},
		},
		Actions: []listview.Action[venue.Venue]{
			{Name: "deactivate", Label: "Deactivate", Icon: "pause", Variant: listview.ActionOutline,
				Show: func(v venue.Venue) bool { return v.Active },
				OnClick: func(ctx context.Context, v venue.Venue) error {
					return orchestrators.ExecuteSetVenueActive(ctx, orchestrators.SetActiveInput{ID: v.ID, Active: false}, setActive)
				}},
			{Name: "activate", Label: "Activate", Icon: "play", Variant: listview.ActionOutline,
				Show: func(v venue.Venue) bool { return !v.Active },
				OnClick: func(ctx context.Context, v venue.Venue) error {
					return orchestrators.ExecuteSetVenueActive(ctx, orchestrators.SetActiveInput{ID: v.ID, Active: true}, setActive)
				}},
			{Name: "delete", Label: "Delete", Icon: "trash", Variant: listview.ActionDestructive, Confirm: "Delete this venue?",
				OnClick: func(ctx context.Context, v venue.Venue) error {
					return orchestrators.ExecuteDeleteVenue(ctx, v.ID, remove)
				}},
		},
		Load: func(ctx context.Context, filters map[string]string) ([]venue.Venue, error) {
			active, _ := strconv.ParseBool(filters["active"])
			return deps.Venues.List(ctx, venueStore.ListFilter{Sport: filters["sport"], ActiveOnly: active})
		},
		Get:        deps.Venues.GetByID,
		FilterKeys: []string{"sport", "active"},
		Fields: func(context.Context) ([]FormField, error) {
			sports := make([]Option, 0, len(venue.ValidSports))
			for _, s := range venue.ValidSports {
				sports = append(sports, Option{Value: s, Label: s})
			}
			return []FormField{
				{Name: "name", Label: "Name", Type: "text", Required: true},
				{Name: "sport", Label: "Sport", Type: "select", Required: true, Options: sports},
				{Name: "capacity", Label: "Capacity", Type: "number", Required: true},
				{Name: "hourlyRate", Label: "Hourly rate", Type: "money"},
				{Name: "description", Label: "Description", Type: "textarea", Help: "Markdown is supported"},
			}, nil
		},
		Create: func(ctx context.Context, values url.Values) (string, error) {
			capacity, err := formInt(values, "capacity")
			if err != nil {
				return "", err
			}
			rate, err := formCents(values, "hourlyRate")
			if err != nil {
				return "", err
			}
			return orchestrators.ExecuteCreateVenue(ctx, orchestrators.CreateVenueInput{
				Name:            values.Get("name"),
				Sport:           values.Get("sport"),
				Capacity:        capacity,
				HourlyRateCents: rate,
				Description:     values.Get("description"),
			}, orchestrators.CreateVenueDeps{VenueStore: deps.Venues, Clock: deps.Clock})
		},
	})
}
