package venue

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"venueadmin/internal/adapters/storage"
	domain "venueadmin/internal/domain/venue"
)

const venueColumns = "id, name, sport, capacity, hourly_rate_cents, description, active, created_at"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new venue SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Venue by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error wrapping sql.ErrNoRows
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Venue, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+venueColumns+" FROM venue WHERE id = ?", id)
	v, err := scanVenue(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Venue{}, fmt.Errorf("venue not found: %w", err)
	}
	return v, err
}

// Save persists a Venue to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, v domain.Venue) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO venue (`+venueColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name=excluded.name, sport=excluded.sport, capacity=excluded.capacity,
		   hourly_rate_cents=excluded.hourly_rate_cents, description=excluded.description,
		   active=excluded.active`,
		v.ID, v.Name, v.Sport, v.Capacity, v.HourlyRateCents, v.Description,
		storage.BoolToInt(v.Active), storage.FormatTime(v.CreatedAt))
	return err
}

// Delete removes a Venue from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM venue WHERE id = ?", id)
	return err
}

// listWhereClause builds the WHERE clause and args for List/Count queries.
func listWhereClause(filter ListFilter) (string, []any) {
	where := " WHERE 1=1"
	var args []any
	if filter.Sport != "" {
		where += " AND sport = ?"
		args = append(args, filter.Sport)
	}
	if filter.ActiveOnly {
		where += " AND active = 1"
	}
	if filter.Search != "" {
		where += " AND name LIKE ?"
		args = append(args, "%"+filter.Search+"%")
	}
	return where, args
}

// sortClause returns a safe ORDER BY clause. Only allowed columns are accepted.
func sortClause(filter ListFilter) string {
	allowed := map[string]string{
		"name": "name", "sport": "sport", "capacity": "capacity",
		"hourlyRate": "hourly_rate_cents", "createdAt": "created_at",
	}
	col, ok := allowed[filter.Sort]
	if !ok {
		return " ORDER BY name ASC"
	}
	return " ORDER BY " + col + " " + storage.SortDirection(filter.Dir)
}

// Count returns the number of venues matching the filter.
// PRE: filter has valid parameters
// POST: Returns count >= 0
func (s *SQLiteStore) Count(ctx context.Context, filter ListFilter) (int, error) {
	where, args := listWhereClause(filter)
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM venue"+where, args...).Scan(&count)
	return count, err
}

// List retrieves venues matching the filter.
// PRE: filter has valid parameters
// POST: Returns matching entities in sort order
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Venue, error) {
	where, args := listWhereClause(filter)
	query := "SELECT " + venueColumns + " FROM venue" + where + sortClause(filter)
	if filter.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Venue
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, v)
	}
	return results, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanVenue(row scanner) (domain.Venue, error) {
	var v domain.Venue
	var active int
	var createdAt string
	if err := row.Scan(&v.ID, &v.Name, &v.Sport, &v.Capacity, &v.HourlyRateCents,
		&v.Description, &active, &createdAt); err != nil {
		return domain.Venue{}, err
	}
	v.Active = active != 0
	v.CreatedAt = storage.ParseTime(createdAt, "venue", "created_at", v.ID)
	return v, nil
}
