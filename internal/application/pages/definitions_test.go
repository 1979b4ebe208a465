package pages

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"venueadmin/internal/adapters/email"
	"venueadmin/internal/adapters/storage"
	bookingStore "venueadmin/internal/adapters/storage/booking"
	clientStore "venueadmin/internal/adapters/storage/client"
	groupStore "venueadmin/internal/adapters/storage/group"
	receivableStore "venueadmin/internal/adapters/storage/receivable"
	userStore "venueadmin/internal/adapters/storage/user"
	venueStore "venueadmin/internal/adapters/storage/venue"
	"venueadmin/internal/application/listview"
	"venueadmin/internal/application/money"
	"venueadmin/internal/application/orchestrators"
	"venueadmin/internal/application/projections"
	"venueadmin/internal/domain/booking"
)

var testNow = time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)

type seededPages struct {
	registry *Registry
	deps     Deps
	sender   *email.NoopSender
}

func newSeededPages(t *testing.T) seededPages {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, storage.InitDB(db))

	n := 0
	sender := email.NewNoopSender()
	deps := Deps{
		Venues:      venueStore.NewSQLiteStore(db),
		Clients:     clientStore.NewSQLiteStore(db),
		Bookings:    bookingStore.NewSQLiteStore(db),
		Receivables: receivableStore.NewSQLiteStore(db),
		Users:       userStore.NewSQLiteStore(db),
		Groups:      groupStore.NewSQLiteStore(db),
		Sender:      sender,
		EmailFrom:   "billing@example.com",
		Money:       money.NewFormatter("pt-BR", "R$"),
		Clock: orchestrators.Clock{
			GenerateID: func() string { n++; return fmt.Sprintf("id-%03d", n) },
			Now:        func() time.Time { return testNow },
		},
	}
	_, err = orchestrators.ExecuteSeedDemoData(context.Background(), orchestrators.SeedDeps{
		VenueStore:      deps.Venues,
		ClientStore:     deps.Clients,
		BookingStore:    deps.Bookings,
		ReceivableStore: deps.Receivables,
		UserStore:       deps.Users,
		GroupStore:      deps.Groups,
		Clock:           deps.Clock,
	})
	require.NoError(t, err)

	r, err := New(deps)
	require.NoError(t, err)
	return seededPages{registry: r, deps: deps, sender: sender}
}

func (s seededPages) page(t *testing.T, entity string) Page {
	t.Helper()
	p, ok := s.registry.Get(entity)
	require.True(t, ok, entity)
	return p
}

func listAll(t *testing.T, p Page, filters map[string]string, search string) Result {
	t.Helper()
	req := Request{Params: params(1, 100)}
	req.Params.Filters = filters
	req.Params.Search = search
	res, err := p.List(context.Background(), req)
	require.NoError(t, err)
	return res
}

func TestNew_RegistersPagesInOrder(t *testing.T) {
	s := newSeededPages(t)
	var entities []string
	for _, p := range s.registry.Pages() {
		entities = append(entities, p.Meta().Entity)
	}
	assert.Equal(t, []string{"bookings", "clients", "venues", "receivables", "users", "groups"}, entities)
}

func TestBookingsPage(t *testing.T) {
	s := newSeededPages(t)
	p := s.page(t, "bookings")
	ctx := context.Background()

	assert.Len(t, listAll(t, p, nil, "").View.Rows, 60)
	assert.Len(t, listAll(t, p, map[string]string{"status": booking.StatusCompleted}, "").View.Rows, 28)
	assert.Len(t, listAll(t, p, nil, "central").View.Rows, 15)

	pending := listAll(t, p, map[string]string{"status": booking.StatusPending}, "")
	require.NotEmpty(t, pending.View.Rows)
	row := pending.View.Rows[0]
	var names []string
	for _, a := range row.Actions {
		names = append(names, a.Name)
	}
	assert.Equal(t, []string{"confirm", "bill", "cancel"}, names)

	require.NoError(t, p.Dispatch(ctx, row.ID, "confirm"))
	b, err := s.deps.Bookings.GetByID(ctx, row.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.StatusConfirmed, b.Status)

	assert.ErrorIs(t, p.Dispatch(ctx, row.ID, "delete"), listview.ErrActionHidden)
	require.NoError(t, p.Dispatch(ctx, row.ID, "cancel"))
	require.NoError(t, p.Dispatch(ctx, row.ID, "delete"))
	_, err = s.deps.Bookings.GetByID(ctx, row.ID)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestBookingsPage_CreateFromForm(t *testing.T) {
	s := newSeededPages(t)
	p := s.page(t, "bookings")
	ctx := context.Background()

	fields, err := p.Form(ctx)
	require.NoError(t, err)
	require.Equal(t, "venue", fields[0].Name)
	require.Len(t, fields[0].Options, 4)
	venueID := fields[0].Options[0].Value
	clientID := fields[1].Options[0].Value

	id, err := p.Create(ctx, url.Values{
		"venue":    {venueID},
		"client":   {clientID},
		"startsAt": {"2026-06-01T08:00"},
		"endsAt":   {"2026-06-01T09:30"},
		"price":    {"150,50"},
	})
	require.NoError(t, err)
	b, err := s.deps.Bookings.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(15050), b.PriceCents)
	assert.Equal(t, 90*time.Minute, b.Duration())

	_, err = p.Create(ctx, url.Values{"venue": {venueID}, "client": {clientID}, "startsAt": {"tomorrow"}})
	var verr *orchestrators.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestBookingsPage_Cells(t *testing.T) {
	s := newSeededPages(t)
	req := Request{Params: params(1, 100)}
	req.Params.Search = "central"
	req.Params.Sort = "startsAt"
	res, err := s.page(t, "bookings").List(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, res.View.Rows)

	first := res.View.Rows[0].Cells
	assert.Equal(t, "2026-04-27 17:00", first[0].Text)
	assert.Equal(t, "Central Arena", first[1].Text)
	assert.Equal(t, "1h", first[3].Text)
	assert.Equal(t, "R$ 180,00", first[5].Text)
	assert.Contains(t, string(first[4].HTML), `class="badge badge-completed"`)

	rows, ok := res.Items.([]projections.BookingRow)
	require.True(t, ok)
	assert.Len(t, rows, 15)
}

func TestReceivablesPage(t *testing.T) {
	s := newSeededPages(t)
	p := s.page(t, "receivables")
	ctx := context.Background()

	assert.Len(t, listAll(t, p, nil, "").View.Rows, 28)
	overdue := listAll(t, p, map[string]string{"status": "overdue"}, "")
	assert.Len(t, overdue.View.Rows, 12)
	assert.Len(t, listAll(t, p, map[string]string{"status": "open"}, "").View.Rows, 16)

	id := overdue.View.Rows[0].ID
	require.NoError(t, p.Dispatch(ctx, id, "remind"))
	sent := s.sender.Sent()
	require.Len(t, sent, 1)
	assert.True(t, strings.HasPrefix(sent[0].Subject, "Overdue payment:"))
	assert.Equal(t, "billing@example.com", sent[0].From)

	require.NoError(t, p.Dispatch(ctx, id, "mark_paid"))
	assert.ErrorIs(t, p.Dispatch(ctx, id, "remind"), listview.ErrActionHidden)
	assert.Len(t, listAll(t, p, map[string]string{"status": "paid"}, "").View.Rows, 1)
}

func TestVenuesPage(t *testing.T) {
	s := newSeededPages(t)
	p := s.page(t, "venues")
	ctx := context.Background()

	res := listAll(t, p, nil, "central")
	require.Len(t, res.View.Rows, 1)
	row := res.View.Rows[0]
	assert.Contains(t, string(row.Cells[5].HTML), "<strong>wooden floor</strong>")
	assert.Equal(t, "R$ 180,00", row.Cells[3].Text)

	assert.ErrorIs(t, p.Dispatch(ctx, row.ID, "delete"), orchestrators.ErrVenueInUse)
	require.NoError(t, p.Dispatch(ctx, row.ID, "deactivate"))
	assert.Len(t, listAll(t, p, map[string]string{"active": "true"}, "").View.Rows, 3)

	_, err := p.Create(ctx, url.Values{"name": {"Court"}, "sport": {"tennis"}, "capacity": {"many"}})
	var verr *orchestrators.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestClientsUsersGroupsPages(t *testing.T) {
	s := newSeededPages(t)
	ctx := context.Background()

	clients := s.page(t, "clients")
	id, err := clients.Create(ctx, url.Values{"name": {"Dora"}, "email": {"dora@example.com"}})
	require.NoError(t, err)
	require.NoError(t, clients.Dispatch(ctx, id, "deactivate"))
	assert.Len(t, listAll(t, clients, map[string]string{"status": "inactive"}, "").View.Rows, 1)
	require.NoError(t, clients.Dispatch(ctx, id, "delete"))

	users := s.page(t, "users")
	res := listAll(t, users, nil, "admin")
	require.Len(t, res.View.Rows, 1)
	assert.Equal(t, "Administrators", res.View.Rows[0].Cells[2].Text)

	groups := s.page(t, "groups")
	gres := listAll(t, groups, nil, "")
	require.Len(t, gres.View.Rows, 2)
	assert.Error(t, groups.Dispatch(ctx, gres.View.Rows[0].ID, "delete"), "group with members")

	fields, err := groups.Form(ctx)
	require.NoError(t, err)
	assert.Equal(t, "multiselect", fields[2].Type)
	_, err = groups.Create(ctx, url.Values{"name": {"Auditors"}, "permissions": {"reports.read", "bookings.read"}})
	require.NoError(t, err)
}
