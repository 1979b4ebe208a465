package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"venueadmin/internal/adapters/storage"
	domain "venueadmin/internal/domain/user"
)

const userColumns = "id, name, email, password_hash, group_id, active, created_at"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new user SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a User by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error wrapping sql.ErrNoRows
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.User, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM app_user WHERE id = ?", id)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, fmt.Errorf("user not found: %w", err)
	}
	return u, err
}

// GetByEmail retrieves a User by email.
// PRE: email is non-empty
// POST: Returns the entity or an error wrapping sql.ErrNoRows
func (s *SQLiteStore) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM app_user WHERE email = ?", email)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, fmt.Errorf("user not found: %w", err)
	}
	return u, err
}

// Save persists a User to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, u domain.User) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO app_user (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name=excluded.name, email=excluded.email, password_hash=excluded.password_hash,
		   group_id=excluded.group_id, active=excluded.active`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.GroupID, storage.BoolToInt(u.Active),
		storage.FormatTime(u.CreatedAt))
	return err
}

// Delete removes a User from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM app_user WHERE id = ?", id)
	return err
}

func listWhereClause(filter ListFilter) (string, []any) {
	where := " WHERE 1=1"
	var args []any
	if filter.GroupID != "" {
		where += " AND group_id = ?"
		args = append(args, filter.GroupID)
	}
	if filter.ActiveOnly {
		where += " AND active = 1"
	}
	if filter.Search != "" {
		where += " AND (name LIKE ? OR email LIKE ?)"
		term := "%" + filter.Search + "%"
		args = append(args, term, term)
	}
	return where, args
}

// Count returns the number of users matching the filter.
func (s *SQLiteStore) Count(ctx context.Context, filter ListFilter) (int, error) {
	where, args := listWhereClause(filter)
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM app_user"+where, args...).Scan(&count)
	return count, err
}

// List retrieves users matching the filter, ordered by name.
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.User, error) {
	where, args := listWhereClause(filter)
	query := "SELECT " + userColumns + " FROM app_user" + where + " ORDER BY name ASC"
	if filter.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, filter.Limit, filter.Offset)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, u)
	}
	return results, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (domain.User, error) {
	var u domain.User
	var active int
	var createdAt string
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.GroupID, &active, &createdAt); err != nil {
		return domain.User{}, err
	}
	u.Active = active != 0
	u.CreatedAt = storage.ParseTime(createdAt, "app_user", "created_at", u.ID)
	return u, nil
}
