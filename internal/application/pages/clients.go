package pages

import (
	"context"
	"net/url"

	clientStore "venueadmin/internal/adapters/storage/client"
	"venueadmin/internal/application/listview"
	"venueadmin/internal/application/orchestrators"
	"venueadmin/internal/domain/client"
)

func registerClients(r *Registry, deps Deps, f formatter) error {
	setActive := orchestrators.SetClientActiveDeps{ClientStore: deps.Clients}
	remove := orchestrators.DeleteClientDeps{ClientStore: deps.Clients, BookingStore: deps.Bookings}

	return Register(r, Definition[client.Client]{
		Entity:   "clients",
		Title:    "Clients",
		Singular: "client",
		ID:       func(c client.Client) string { return c.ID },
		Columns: []listview.Column[client.Client]{
			{Key: "name", Label: "Name", Sortable: true},
			{Key: "email", Label: "Email", Sortable: true},
			{Key: "phone", Label: "Phone"},
			{Key: "document", Label: "Document"},
			{Key: "status", Label: "Status", Sortable: true,
				Render: listview.RenderFunc[client.Client](func(c client.Client) listview.Cell { return badge(c.Status) })},
			{Key: "createdAt", Label: "Since", Sortable: true,
				Value:  func(c client.Client) any { return unixValue(c.CreatedAt) },
				Render: listview.RenderFunc[client.Client](func(c client.Client) listview.Cell { return f.date(c.CreatedAt) })},
		},
		Actions: []listview.Action[client.Client]{
			{Name: "deactivate", Label: "Deactivate", Icon: "pause", Variant: listview.ActionOutline,
				Show: func(c client.Client) bool { return c.Status == client.StatusActive },
				OnClick: func(ctx context.Context, c client.Client) error {
					return orchestrators.ExecuteSetClientActive(ctx, orchestrators.SetActiveInput{ID: c.ID, Active: false}, setActive)
				}},
			{Name: "activate", Label: "Activate", Icon: "play", Variant: listview.ActionOutline,
				Show: func(c client.Client) bool { return c.Status == client.StatusInactive },
				OnClick: func(ctx context.Context, c client.Client) error {
					return orchestrators.ExecuteSetClientActive(ctx, orchestrators.SetActiveInput{ID: c.ID, Active: true}, setActive)
				}},
			{Name: "delete", Label: "Delete", Icon: "trash", Variant: listview.ActionDestructive, Confirm: "Delete this client?",
				OnClick: func(ctx context.Context, c client.Client) error {
					return orchestrators.ExecuteDeleteClient(ctx, c.ID, remove)
				}},
		},
		Load: func(ctx context.Context, filters map[string]string) ([]client.Client, error) {
			return deps.Clients.List(ctx, clientStore.ListFilter{Status: filters["status"]})
		},
		Get:        deps.Clients.GetByID,
		FilterKeys: []string{"status"},
		Fields: func(context.Context) ([]FormField, error) {
			return []FormField{
				{Name: "name", Label: "Name", Type: "text", Required: true},
				{Name: "email", Label: "Email", Type: "email", Required: true},
				{Name: "phone", Label: "Phone", Type: "text"},
				{Name: "document", Label: "Document", Type: "text", Help: "CPF or CNPJ"},
			}, nil
		},
		Create: func(ctx context.Context, values url.Values) (string, error) {
			return orchestrators.ExecuteCreateClient(ctx, orchestrators.CreateClientInput{
				Name:     values.Get("name"),
				Email:    values.Get("email"),
				Phone:    values.Get("phone"),
				Document: values.Get("document"),
			}, orchestrators.CreateClientDeps{ClientStore: deps.Clients, Clock: deps.Clock})
		},
	})
}
