package pages

import (
	"context"
	"net/url"
	"slices"
	"strings"

	clientStore "venueadmin/internal/adapters/storage/client"
	"venueadmin/internal/application/listview"
	"venueadmin/internal/application/orchestrators"
	"venueadmin/internal/application/projections"
	"venueadmin/internal/domain/client"
	"venueadmin/internal/domain/receivable"
)

func registerReceivables(r *Registry, deps Deps, f formatter) error {
	listDeps := projections.GetReceivableListDeps{ReceivableStore: deps.Receivables, ClientStore: deps.Clients}
	paid := orchestrators.MarkReceivablePaidDeps{ReceivableStore: deps.Receivables, Clock: deps.Clock}
	remind := orchestrators.SendReminderDeps{
		ReceivableStore: deps.Receivables,
		ClientStore:     deps.Clients,
		Sender:          deps.Sender,
		Money:           deps.Money,
		From:            deps.EmailFrom,
		Clock:           deps.Clock,
	}
	unpaid := func(row projections.ReceivableRow) bool { return row.Status != receivable.StatusPaid }

	load := func(ctx context.Context, filters map[string]string) ([]projections.ReceivableRow, error) {
		res, err := projections.QueryGetReceivableList(ctx, projections.GetReceivableListQuery{
			ClientID: filters["client"],
			Status:   filters["status"],
			Now:      deps.now(),
		}, listDeps)
		return res.Receivables, err
	}

	return Register(r, Definition[projections.ReceivableRow]{
		Entity:   "receivables",
		Title:    "Receivables",
		Singular: "receivable",
		ID:       func(row projections.ReceivableRow) string { return row.ID },
		Columns: []listview.Column[projections.ReceivableRow]{
			{Key: "dueDate", Label: "Due", Sortable: true,
				Value:  func(row projections.ReceivableRow) any { return unixValue(row.DueDate) },
				Render: listview.RenderFunc[projections.ReceivableRow](func(row projections.ReceivableRow) listview.Cell { return f.date(row.DueDate) })},
			{Key: "client", Label: "Client", Sortable: true, Value: func(row projections.ReceivableRow) any { return row.ClientName }},
			{Key: "description", Label: "Description", Sortable: true},
			{Key: "amount", Label: "Amount", Sortable: true, ClassName: "num",
				Value:  func(row projections.ReceivableRow) any { return row.AmountCents },
				Render: listview.RenderFunc[projections.ReceivableRow](func(row projections.ReceivableRow) listview.Cell { return f.cents(row.AmountCents) })},
			{Key: "status", Label: "Status", Sortable: true,
				Render: listview.RenderFunc[projections.ReceivableRow](func(row projections.ReceivableRow) listview.Cell { return badge(row.Status) })},
			{Key: "paidAt", Label: "Paid on", Sortable: true,
				Value: func(row projections.ReceivableRow) any {
					if row.PaidAt == nil {
						return nil
					}
					return row.PaidAt.Unix()
				},
				Render: listview.RenderFunc[projections.ReceivableRow](func(row projections.ReceivableRow) listview.Cell {
					if row.PaidAt == nil {
						return listview.Cell{}
					}
					return f.date(*row.PaidAt)
				})},
		},
		Actions: []listview.Action[projections.ReceivableRow]{
			{Name: "mark_paid", Label: "Mark paid", Icon: "check", Show: unpaid,
				OnClick: func(ctx context.Context, row projections.ReceivableRow) error {
					return orchestrators.ExecuteMarkReceivablePaid(ctx, row.ID, paid)
				}},
			{Name: "remind", Label: "Send reminder", Icon: "mail", Variant: listview.ActionOutline, Show: unpaid,
				OnClick: func(ctx context.Context, row projections.ReceivableRow) error {
					_, err := orchestrators.ExecuteSendReceivableReminder(ctx, row.ID, remind)
					return err
				}},
			{Name: "delete", Label: "Delete", Icon: "trash", Variant: listview.ActionDestructive, Confirm: "Delete this receivable?",
				OnClick: func(ctx context.Context, row projections.ReceivableRow) error {
					return orchestrators.ExecuteDeleteReceivable(ctx, row.ID, paid)
				}},
		},
		Load: load,
		Get: func(ctx context.Context, id string) (projections.ReceivableRow, error) {
			rec, err := deps.Receivables.GetByID(ctx, id)
			if err != nil {
				return projections.ReceivableRow{}, err
			}
			c, _ := deps.Clients.GetByID(ctx, rec.ClientID)
			return projections.ReceivableRow{
				ID: rec.ID, ClientID: rec.ClientID, ClientName: c.Name, BookingID: rec.BookingID,
				Description: rec.Description, AmountCents: rec.AmountCents, DueDate: rec.DueDate,
				PaidAt: rec.PaidAt, Status: rec.StatusAt(deps.now()),
			}, nil
		},
		Matches: func(row projections.ReceivableRow, term string) bool {
			term = strings.ToLower(term)
			return slices.ContainsFunc([]string{row.ClientName, row.Description}, func(s string) bool {
				return strings.Contains(strings.ToLower(s), term)
			})
		},
		FilterKeys: []string{"status", "client"},
		Fields: func(ctx context.Context) ([]FormField, error) {
			clients, err := deps.Clients.List(ctx, clientStore.ListFilter{Status: client.StatusActive})
			if err != nil {
				return nil, err
			}
			opts := make([]Option, 0, len(clients))
			for _, c := range clients {
				opts = append(opts, Option{Value: c.ID, Label: c.Name})
			}
			return []FormField{
				{Name: "clientId", Label: "Client", Type: "select", Required: true, Options: opts},
				{Name: "description", Label: "Description", Type: "text", Required: true},
				{Name: "amount", Label: "Amount", Type: "money", Required: true},
				{Name: "dueDate", Label: "Due date", Type: "date", Required: true},
			}, nil
		},
		Create: func(ctx context.Context, values url.Values) (string, error) {
			amount, err := formCents(values, "amount")
			if err != nil {
				return "", err
			}
			due, err := formDate(values, "dueDate", f.location)
			if err != nil {
				return "", err
			}
			return orchestrators.ExecuteCreateReceivable(ctx, orchestrators.CreateReceivableInput{
				ClientID:    values.Get("clientId"),
				Description: values.Get("description"),
				AmountCents: amount,
				DueDate:     due,
			}, orchestrators.CreateReceivableDeps{
				ReceivableStore: deps.Receivables,
				ClientStore:     deps.Clients,
				Clock:           deps.Clock,
			})
		},
	})
}
