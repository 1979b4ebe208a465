package receivable

import (
	"errors"
	"strings"
	"time"
)

// MaxDescriptionLength bounds the free-text description.
const MaxDescriptionLength = 200

// Derived status values.
const (
	StatusOpen    = "open"
	StatusOverdue = "overdue"
	StatusPaid    = "paid"
)

// Domain errors
var (
	ErrMissingClient    = errors.New("receivable client is required")
	ErrEmptyDescription = errors.New("receivable description cannot be empty")
	ErrDescriptionLong  = errors.New("description cannot exceed 200 characters")
	ErrNonPositive      = errors.New("amount must be greater than zero")
	ErrMissingDueDate   = errors.New("due date is required")
	ErrAlreadyPaid      = errors.New("receivable is already paid")
)

// Receivable is an amount a client owes, usually for a booking.
type Receivable struct {
	ID          string
	ClientID    string
	BookingID   string
	Description string
	AmountCents int64
	DueDate     time.Time
	PaidAt      *time.Time
	CreatedAt   time.Time
}

// Validate checks if the Receivable has valid data.
// PRE: Receivable struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (r *Receivable) Validate() error {
	if r.ClientID == "" {
		return ErrMissingClient
	}
	if strings.TrimSpace(r.Description) == "" {
		return ErrEmptyDescription
	}
	if len(r.Description) > MaxDescriptionLength {
		return ErrDescriptionLong
	}
	if r.AmountCents <= 0 {
		return ErrNonPositive
	}
	if r.DueDate.IsZero() {
		return ErrMissingDueDate
	}
	return nil
}

// IsPaid returns true once a payment has been recorded.
func (r Receivable) IsPaid() bool {
	return r.PaidAt != nil
}

// StatusAt derives the status at the given instant. A receivable becomes
// overdue the day after its due date.
// INVARIANT: r is not mutated
func (r Receivable) StatusAt(now time.Time) string {
	if r.IsPaid() {
		return StatusPaid
	}
	due := time.Date(r.DueDate.Year(), r.DueDate.Month(), r.DueDate.Day(), 0, 0, 0, 0, now.Location())
	if !now.Before(due.AddDate(0, 0, 1)) {
		return StatusOverdue
	}
	return StatusOpen
}

// MarkPaid records a payment.
// PRE: Receivable is not paid
// POST: PaidAt is set to paidAt
func (r *Receivable) MarkPaid(paidAt time.Time) error {
	if r.IsPaid() {
		return ErrAlreadyPaid
	}
	r.PaidAt = &paidAt
	return nil
}
