package receivable

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"venueadmin/internal/adapters/storage"
	domain "venueadmin/internal/domain/receivable"
)

const receivableColumns = "id, client_id, booking_id, description, amount_cents, due_date, paid_at, created_at"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new receivable SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Receivable by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error wrapping sql.ErrNoRows
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Receivable, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+receivableColumns+" FROM receivable WHERE id = ?", id)
	r, err := scanReceivable(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Receivable{}, fmt.Errorf("receivable not found: %w", err)
	}
	return r, err
}

// Save persists a Receivable to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, r domain.Receivable) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO receivable (`+receivableColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   client_id=excluded.client_id, booking_id=excluded.booking_id,
		   description=excluded.description, amount_cents=excluded.amount_cents,
		   due_date=excluded.due_date, paid_at=excluded.paid_at`,
		r.ID, r.ClientID, storage.NullableString(r.BookingID), r.Description, r.AmountCents,
		storage.FormatTime(r.DueDate), storage.NullableTime(r.PaidAt), storage.FormatTime(r.CreatedAt))
	return err
}

// Delete removes a Receivable from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM receivable WHERE id = ?", id)
	return err
}

func listWhereClause(filter ListFilter) (string, []any) {
	where := " WHERE 1=1"
	var args []any
	if filter.ClientID != "" {
		where += " AND client_id = ?"
		args = append(args, filter.ClientID)
	}
	if filter.Unpaid {
		where += " AND paid_at IS NULL"
	}
	return where, args
}

func sortClause(filter ListFilter) string {
	allowed := map[string]string{
		"dueDate": "due_date", "amount": "amount_cents", "description": "description",
		"createdAt": "created_at",
	}
	col, ok := allowed[filter.Sort]
	if !ok {
		return " ORDER BY due_date ASC"
	}
	return " ORDER BY " + col + " " + storage.SortDirection(filter.Dir)
}

// Count returns the number of receivables matching the filter.
func (s *SQLiteStore) Count(ctx context.Context, filter ListFilter) (int, error) {
	where, args := listWhereClause(filter)
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM receivable"+where, args...).Scan(&count)
	return count, err
}

// List retrieves receivables matching the filter.
// PRE: filter has valid parameters
// POST: Returns matching entities in sort order
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Receivable, error) {
	where, args := listWhereClause(filter)
	query := "SELECT " + receivableColumns + " FROM receivable" + where + sortClause(filter)
	if filter.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, filter.Limit, filter.Offset)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Receivable
	for rows.Next() {
		r, err := scanReceivable(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReceivable(row scanner) (domain.Receivable, error) {
	var r domain.Receivable
	var bookingID, paidAt sql.NullString
	var dueDate, createdAt string
	if err := row.Scan(&r.ID, &r.ClientID, &bookingID, &r.Description, &r.AmountCents,
		&dueDate, &paidAt, &createdAt); err != nil {
		return domain.Receivable{}, err
	}
	r.BookingID = bookingID.String
	r.DueDate = storage.ParseTime(dueDate, "receivable", "due_date", r.ID)
	r.PaidAt = storage.ParseNullableTime(paidAt, "receivable", "paid_at", r.ID)
	r.CreatedAt = storage.ParseTime(createdAt, "receivable", "created_at", r.ID)
	return r, nil
}
