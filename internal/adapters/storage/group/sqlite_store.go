package group

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"venueadmin/internal/adapters/storage"
	domain "venueadmin/internal/domain/group"
)

// SQLiteStore implements Store using SQLite.
// Permissions are stored as a comma-separated list.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new group SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Group by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error wrapping sql.ErrNoRows
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Group, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, name, description, permissions FROM user_group WHERE id = ?", id)
	g, err := scanGroup(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Group{}, fmt.Errorf("group not found: %w", err)
	}
	return g, err
}

// Save persists a Group to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, g domain.Group) error {
	perms := strings.Join(domain.NormalizePermissions(g.Permissions), ",")
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO user_group (id, name, description, permissions) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name=excluded.name, description=excluded.description, permissions=excluded.permissions`,
		g.ID, g.Name, g.Description, perms)
	return err
}

// Delete removes a Group from the database.
// PRE: no user references the group
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM user_group WHERE id = ?", id)
	return err
}

// List returns all groups ordered by name.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Group, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, description, permissions FROM user_group ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Group
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, g)
	}
	return results, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanGroup(row scanner) (domain.Group, error) {
	var g domain.Group
	var perms string
	if err := row.Scan(&g.ID, &g.Name, &g.Description, &perms); err != nil {
		return domain.Group{}, err
	}
	if perms != "" {
		g.Permissions = strings.Split(perms, ",")
	}
	return g, nil
}
