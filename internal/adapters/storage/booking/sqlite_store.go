package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"venueadmin/internal/adapters/storage"
	domain "venueadmin/internal/domain/booking"
)

const bookingColumns = "id, venue_id, client_id, starts_at, ends_at, status, price_cents, notes, created_at"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new booking SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Booking by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error wrapping sql.ErrNoRows
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Booking, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+bookingColumns+" FROM booking WHERE id = ?", id)
	b, err := scanBooking(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Booking{}, fmt.Errorf("booking not found: %w", err)
	}
	return b, err
}

// Save persists a Booking to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, b domain.Booking) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO booking (`+bookingColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   venue_id=excluded.venue_id, client_id=excluded.client_id,
		   starts_at=excluded.starts_at, ends_at=excluded.ends_at, status=excluded.status,
		   price_cents=excluded.price_cents, notes=excluded.notes`,
		b.ID, b.VenueID, b.ClientID, storage.FormatTime(b.StartsAt), storage.FormatTime(b.EndsAt),
		b.Status, b.PriceCents, b.Notes, storage.FormatTime(b.CreatedAt))
	return err
}

// Delete removes a Booking from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM booking WHERE id = ?", id)
	return err
}

func listWhereClause(filter ListFilter) (string, []any) {
	where := " WHERE 1=1"
	var args []any
	if filter.VenueID != "" {
		where += " AND venue_id = ?"
		args = append(args, filter.VenueID)
	}
	if filter.ClientID != "" {
		where += " AND client_id = ?"
		args = append(args, filter.ClientID)
	}
	if filter.Status != "" {
		where += " AND status = ?"
		args = append(args, filter.Status)
	}
	if !filter.From.IsZero() {
		where += " AND starts_at >= ?"
		args = append(args, storage.FormatTime(filter.From))
	}
	if !filter.To.IsZero() {
		where += " AND starts_at < ?"
		args = append(args, storage.FormatTime(filter.To))
	}
	return where, args
}

func sortClause(filter ListFilter) string {
	allowed := map[string]string{
		"startsAt": "starts_at", "endsAt": "ends_at", "status": "status",
		"price": "price_cents", "createdAt": "created_at",
	}
	col, ok := allowed[filter.Sort]
	if !ok {
		return " ORDER BY starts_at ASC"
	}
	return " ORDER BY " + col + " " + storage.SortDirection(filter.Dir)
}

// Count returns the number of bookings matching the filter.
func (s *SQLiteStore) Count(ctx context.Context, filter ListFilter) (int, error) {
	where, args := listWhereClause(filter)
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM booking"+where, args...).Scan(&count)
	return count, err
}

// List retrieves bookings matching the filter.
// PRE: filter has valid parameters
// POST: Returns matching entities in sort order
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Booking, error) {
	where, args := listWhereClause(filter)
	query := "SELECT " + bookingColumns + " FROM booking" + where + sortClause(filter)
	if filter.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, filter.Limit, filter.Offset)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

// ListOverlapping returns slot-occupying bookings on venueID that intersect
// [start, end). excludeID skips the booking being moved.
// PRE: start is before end
// POST: Returned bookings are never cancelled
func (s *SQLiteStore) ListOverlapping(ctx context.Context, venueID string, start, end time.Time, excludeID string) ([]domain.Booking, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+bookingColumns+` FROM booking
		 WHERE venue_id = ? AND status != ? AND id != ?
		   AND starts_at < ? AND ends_at > ?
		 ORDER BY starts_at`,
		venueID, domain.StatusCancelled, excludeID,
		storage.FormatTime(end), storage.FormatTime(start))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBooking(row scanner) (domain.Booking, error) {
	var b domain.Booking
	var startsAt, endsAt, createdAt string
	if err := row.Scan(&b.ID, &b.VenueID, &b.ClientID, &startsAt, &endsAt,
		&b.Status, &b.PriceCents, &b.Notes, &createdAt); err != nil {
		return domain.Booking{}, err
	}
	b.StartsAt = storage.ParseTime(startsAt, "booking", "starts_at", b.ID)
	b.EndsAt = storage.ParseTime(endsAt, "booking", "ends_at", b.ID)
	b.CreatedAt = storage.ParseTime(createdAt, "booking", "created_at", b.ID)
	return b, nil
}

func scanBookings(rows *sql.Rows) ([]domain.Booking, error) {
	var results []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, b)
	}
	return results, rows.Err()
}
