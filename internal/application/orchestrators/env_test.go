package orchestrators

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"venueadmin/internal/adapters/storage"
	bookingStore "venueadmin/internal/adapters/storage/booking"
	clientStore "venueadmin/internal/adapters/storage/client"
	groupStore "venueadmin/internal/adapters/storage/group"
	receivableStore "venueadmin/internal/adapters/storage/receivable"
	userStore "venueadmin/internal/adapters/storage/user"
	venueStore "venueadmin/internal/adapters/storage/venue"
)

var testNow = time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)

type testEnv struct {
	venues      *venueStore.SQLiteStore
	clients     *clientStore.SQLiteStore
	bookings    *bookingStore.SQLiteStore
	receivables *receivableStore.SQLiteStore
	users       *userStore.SQLiteStore
	groups      *groupStore.SQLiteStore
	clock       Clock
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, storage.InitDB(db))

	n := 0
	return &testEnv{
		venues:      venueStore.NewSQLiteStore(db),
		clients:     clientStore.NewSQLiteStore(db),
		bookings:    bookingStore.NewSQLiteStore(db),
		receivables: receivableStore.NewSQLiteStore(db),
		users:       userStore.NewSQLiteStore(db),
		groups:      groupStore.NewSQLiteStore(db),
		clock: Clock{
			GenerateID: func() string { n++; return fmt.Sprintf("id-%03d", n) },
			Now:        func() time.Time { return testNow },
		},
	}
}

func (e *testEnv) bookingDeps() CreateBookingDeps {
	return CreateBookingDeps{BookingStore: e.bookings, VenueStore: e.venues, ClientStore: e.clients, Clock: e.clock}
}

// venueAndClient seeds one active venue (R$100/h) and one active client.
func (e *testEnv) venueAndClient(t *testing.T) (string, string) {
	t.Helper()
	ctx := context.Background()
	venueID, err := ExecuteCreateVenue(ctx, CreateVenueInput{Name: "Arena", Sport: "futsal", Capacity: 10, HourlyRateCents: 10000},
		CreateVenueDeps{VenueStore: e.venues, Clock: e.clock})
	require.NoError(t, err)
	clientID, err := ExecuteCreateClient(ctx, CreateClientInput{Name: "Ana", Email: "Ana@Example.com"},
		CreateClientDeps{ClientStore: e.clients, Clock: e.clock})
	require.NoError(t, err)
	return venueID, clientID
}
