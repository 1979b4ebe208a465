package client

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"venueadmin/internal/adapters/storage"
	domain "venueadmin/internal/domain/client"
)

const clientColumns = "id, name, email, phone, document, status, created_at"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new client SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Client by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error wrapping sql.ErrNoRows
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Client, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+clientColumns+" FROM client WHERE id = ?", id)
	c, err := scanClient(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Client{}, fmt.Errorf("client not found: %w", err)
	}
	return c, err
}

// Save persists a Client to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, c domain.Client) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO client (`+clientColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name=excluded.name, email=excluded.email, phone=excluded.phone,
		   document=excluded.document, status=excluded.status`,
		c.ID, c.Name, c.Email, c.Phone, c.Document, c.Status, storage.FormatTime(c.CreatedAt))
	return err
}

// Delete removes a Client from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM client WHERE id = ?", id)
	return err
}

func listWhereClause(filter ListFilter) (string, []any) {
	where := " WHERE 1=1"
	var args []any
	if filter.Status != "" {
		where += " AND status = ?"
		args = append(args, filter.Status)
	}
	if filter.Search != "" {
		where += " AND (name LIKE ? OR email LIKE ? OR document LIKE ?)"
		term := "%" + filter.Search + "%"
		args = append(args, term, term, term)
	}
	return where, args
}

func sortClause(filter ListFilter) string {
	allowed := map[string]string{
		"name": "name", "email": "email", "status": "status", "createdAt": "created_at",
	}
	col, ok := allowed[filter.Sort]
	if !ok {
		return " ORDER BY name ASC"
	}
	return " ORDER BY " + col + " " + storage.SortDirection(filter.Dir)
}

// Count returns the number of clients matching the filter.
func (s *SQLiteStore) Count(ctx context.Context, filter ListFilter) (int, error) {
	where, args := listWhereClause(filter)
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM client"+where, args...).Scan(&count)
	return count, err
}

// List retrieves clients matching the filter.
// PRE: filter has valid parameters
// POST: Returns matching entities in sort order
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Client, error) {
	where, args := listWhereClause(filter)
	query := "SELECT " + clientColumns + " FROM client" + where + sortClause(filter)
	if filter.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, filter.Limit, filter.Offset)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, c)
	}
	return results, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanClient(row scanner) (domain.Client, error) {
	var c domain.Client
	var createdAt string
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Document, &c.Status, &createdAt); err != nil {
		return domain.Client{}, err
	}
	c.CreatedAt = storage.ParseTime(createdAt, "client", "created_at", c.ID)
	return c, nil
}
