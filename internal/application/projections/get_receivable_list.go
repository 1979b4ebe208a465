package projections

import (
	"context"
	"fmt"
	"time"

	"venueadmin/internal/adapters/storage/receivable"
)

// GetReceivableListQuery carries query parameters.
type GetReceivableListQuery struct {
	ClientID string
	Status   string // open, overdue, paid or "" for all
	Now      time.Time
}

// ReceivableRow is a receivable with its client name and derived status.
type ReceivableRow struct {
	ID          string     `json:"id"`
	ClientID    string     `json:"clientId"`
	ClientName  string     `json:"client"`
	BookingID   string     `json:"bookingId,omitempty"`
	Description string     `json:"description"`
	AmountCents int64      `json:"amountCents"`
	DueDate     time.Time  `json:"dueDate"`
	PaidAt      *time.Time `json:"paidAt,omitempty"`
	Status      string     `json:"status"`
}

// GetReceivableListResult carries the query result.
type GetReceivableListResult struct {
	Receivables []ReceivableRow
}

// GetReceivableListDeps holds dependencies for GetReceivableList.
type GetReceivableListDeps struct {
	ReceivableStore ReceivableStore
	ClientStore     ClientStore
}

// QueryGetReceivableList returns receivables ordered by due date.
// PRE: query.Now is set (zero means time.Now)
// POST: Status is derived at query.Now
func QueryGetReceivableList(ctx context.Context, query GetReceivableListQuery, deps GetReceivableListDeps) (GetReceivableListResult, error) {
	now := query.Now
	if now.IsZero() {
		now = time.Now()
	}
	items, err := deps.ReceivableStore.List(ctx, receivable.ListFilter{ClientID: query.ClientID})
	if err != nil {
		return GetReceivableListResult{}, fmt.Errorf("list receivables: %w", err)
	}
	clients, err := clientNames(ctx, deps.ClientStore)
	if err != nil {
		return GetReceivableListResult{}, fmt.Errorf("list clients: %w", err)
	}

	rows := make([]ReceivableRow, 0, len(items))
	for _, r := range items {
		status := r.StatusAt(now)
		if query.Status != "" && status != query.Status {
			continue
		}
		rows = append(rows, ReceivableRow{
			ID:          r.ID,
			ClientID:    r.ClientID,
			ClientName:  clients[r.ClientID],
			BookingID:   r.BookingID,
			Description: r.Description,
			AmountCents: r.AmountCents,
			DueDate:     r.DueDate,
			PaidAt:      r.PaidAt,
			Status:      status,
		})
	}
	return GetReceivableListResult{Receivables: rows}, nil
}
