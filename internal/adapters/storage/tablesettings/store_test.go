package tablesettings_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	_ "modernc.org/sqlite"

	"venueadmin/internal/adapters/storage"
	"venueadmin/internal/adapters/storage/tablesettings"
)

// runStoreContract exercises the behaviour every backend must share.
func runStoreContract(t *testing.T, store tablesettings.Store) {
	t.Helper()
	ctx := context.Background()
	const key = "table_settings_bookings_v1"

	_, err := store.Get(ctx, key)
	require.ErrorIs(t, err, tablesettings.ErrNotFound)

	require.NoError(t, store.Set(ctx, key, []byte(`{"columnOrder":["client"]}`)))
	got, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.JSONEq(t, `{"columnOrder":["client"]}`, string(got))

	require.NoError(t, store.Set(ctx, key, []byte(`{"columnSizes":{"client":120}}`)))
	got, err = store.Get(ctx, key)
	require.NoError(t, err)
	assert.JSONEq(t, `{"columnSizes":{"client":120}}`, string(got))

	require.NoError(t, store.Delete(ctx, key))
	_, err = store.Get(ctx, key)
	require.ErrorIs(t, err, tablesettings.ErrNotFound)

	require.NoError(t, store.Delete(ctx, key), "deleting a missing key")
}

func TestMemoryStore(t *testing.T) {
	store := tablesettings.NewMemoryStore()
	runStoreContract(t, store)
	assert.Equal(t, 2, store.Writes())
}

func TestSQLiteStore(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, storage.InitDB(db))

	runStoreContract(t, tablesettings.NewSQLiteStore(db))
}

func TestFileStore(t *testing.T) {
	store, err := tablesettings.NewFileStore(t.TempDir())
	require.NoError(t, err)
	runStoreContract(t, store)
}

// TestFileStore_KeyCannotEscapeDir verifies path components in keys are stripped.
func TestFileStore_KeyCannotEscapeDir(t *testing.T) {
	dir := t.TempDir()
	store, err := tablesettings.NewFileStore(dir)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "../outside", []byte(`{}`)))
	got, err := store.Get(ctx, "outside")
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(got))
}

func TestRedisStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping Redis container test in short mode")
	}
	ctx := context.Background()
	redisC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	if err != nil {
		t.Skipf("redis container unavailable: %v", err)
	}
	t.Cleanup(func() { _ = redisC.Terminate(ctx) })

	endpoint, err := redisC.Endpoint(ctx, "")
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: endpoint})
	t.Cleanup(func() { client.Close() })

	runStoreContract(t, tablesettings.NewRedisStore(client, "venueadmin:"))
}
