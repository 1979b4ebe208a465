package user_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"venueadmin/internal/adapters/storage"
	userstore "venueadmin/internal/adapters/storage/user"
	domain "venueadmin/internal/domain/user"
)

func newStore(t *testing.T) *userstore.SQLiteStore {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, storage.InitDB(db))
	for _, id := range []string{"admins", "desk"} {
		_, err := db.Exec(`INSERT INTO user_group (id, name) VALUES (?, ?)`, id, id)
		require.NoError(t, err)
	}
	return userstore.NewSQLiteStore(db)
}

func TestSQLiteStore_SaveGetDelete(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	created := time.Date(2026, 2, 1, 9, 30, 0, 0, time.UTC)

	u := domain.User{ID: "u1", Name: "Admin", Email: "admin@example.com", GroupID: "admins", Active: true, CreatedAt: created}
	require.NoError(t, u.SetPassword("changeme123"))
	require.NoError(t, store.Save(ctx, u))

	got, err := store.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", got.Email)
	assert.True(t, got.Active)
	assert.True(t, created.Equal(got.CreatedAt))
	assert.NoError(t, got.CheckPassword("changeme123"), "hash survives the round trip")

	byEmail, err := store.GetByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", byEmail.ID)

	u.Active = false
	u.GroupID = "desk"
	require.NoError(t, store.Save(ctx, u))
	got, err = store.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, got.Active)
	assert.Equal(t, "desk", got.GroupID)

	require.NoError(t, store.Delete(ctx, "u1"))
	_, err = store.GetByID(ctx, "u1")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	_, err = store.GetByEmail(ctx, "admin@example.com")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestSQLiteStore_UniqueEmail(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, domain.User{ID: "u1", Name: "Ana", Email: "ana@example.com", GroupID: "desk", Active: true}))
	assert.Error(t, store.Save(ctx, domain.User{ID: "u2", Name: "Ana Two", Email: "ana@example.com", GroupID: "desk", Active: true}))
}

func TestSQLiteStore_FilterAndCount(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	users := []domain.User{
		{ID: "u1", Name: "Carla", Email: "carla@example.com", GroupID: "desk", Active: true},
		{ID: "u2", Name: "Admin", Email: "admin@example.com", GroupID: "admins", Active: true},
		{ID: "u3", Name: "Bruno", Email: "bruno@example.com", GroupID: "desk", Active: false},
	}
	for _, u := range users {
		require.NoError(t, store.Save(ctx, u))
	}

	got, err := store.List(ctx, userstore.ListFilter{})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"u2", "u3", "u1"}, []string{got[0].ID, got[1].ID, got[2].ID}, "ordered by name")

	got, err = store.List(ctx, userstore.ListFilter{GroupID: "desk", ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "u1", got[0].ID)

	got, err = store.List(ctx, userstore.ListFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "u3", got[0].ID)

	n, err := store.Count(ctx, userstore.ListFilter{Search: "BRUNO"})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = store.Count(ctx, userstore.ListFilter{GroupID: "desk"})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
