package orchestrators

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"venueadmin/internal/adapters/email"
	"venueadmin/internal/application/money"
	"venueadmin/internal/domain/booking"
	"venueadmin/internal/domain/receivable"
)

// ErrNothingToRemind is returned when a reminder is requested for a paid receivable.
var ErrNothingToRemind = errors.New("receivable is already paid")

// mdRenderer converts reminder bodies. Raw HTML in the source is escaped.
var mdRenderer = goldmark.New(goldmark.WithRendererOptions(goldmarkHTML.WithHardWraps()))

// CreateReceivableInput carries input for the orchestrator.
type CreateReceivableInput struct {
	ClientID    string
	BookingID   string
	Description string
	AmountCents int64
	DueDate     time.Time
}

// CreateReceivableDeps holds dependencies for CreateReceivable.
type CreateReceivableDeps struct {
	ReceivableStore ReceivableStore
	ClientStore     ClientStore
	BookingStore    BookingStore // optional: nil skips the booking check
	Clock           Clock
}

// ExecuteCreateReceivable records an amount owed by a client.
// PRE: Client exists; BookingID, when set, belongs to the same client
// POST: Receivable persisted unpaid; returns the ID
func ExecuteCreateReceivable(ctx context.Context, input CreateReceivableInput, deps CreateReceivableDeps) (string, error) {
	if _, err := deps.ClientStore.GetByID(ctx, input.ClientID); err != nil {
		return "", err
	}
	if input.BookingID != "" && deps.BookingStore != nil {
		b, err := deps.BookingStore.GetByID(ctx, input.BookingID)
		if err != nil {
			return "", err
		}
		if b.ClientID != input.ClientID {
			return "", Invalid(errors.New("booking belongs to another client"))
		}
	}
	r := receivable.Receivable{
		ID:          deps.Clock.id(),
		ClientID:    input.ClientID,
		BookingID:   input.BookingID,
		Description: strings.TrimSpace(input.Description),
		AmountCents: input.AmountCents,
		DueDate:     input.DueDate,
		CreatedAt:   deps.Clock.now(),
	}
	if err := r.Validate(); err != nil {
		return "", Invalid(err)
	}
	if err := deps.ReceivableStore.Save(ctx, r); err != nil {
		return "", err
	}
	return r.ID, nil
}

// CreateBookingReceivable bills a booking's price to its client, due on the
// booking day.
func CreateBookingReceivable(ctx context.Context, b booking.Booking, deps CreateReceivableDeps) (string, error) {
	return ExecuteCreateReceivable(ctx, CreateReceivableInput{
		ClientID:    b.ClientID,
		BookingID:   b.ID,
		Description: "Booking " + b.StartsAt.Format(booking.DateTimeFormat),
		AmountCents: b.PriceCents,
		DueDate:     b.StartsAt,
	}, deps)
}

// MarkReceivablePaidDeps holds dependencies for MarkReceivablePaid.
type MarkReceivablePaidDeps struct {
	ReceivableStore ReceivableStore
	Clock           Clock
}

// ExecuteMarkReceivablePaid records a payment now.
// PRE: Receivable exists and is unpaid
// POST: PaidAt is set
func ExecuteMarkReceivablePaid(ctx context.Context, id string, deps MarkReceivablePaidDeps) error {
	r, err := deps.ReceivableStore.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := r.MarkPaid(deps.Clock.now()); err != nil {
		return Invalid(err)
	}
	return deps.ReceivableStore.Save(ctx, r)
}

// ExecuteDeleteReceivable removes a receivable.
func ExecuteDeleteReceivable(ctx context.Context, id string, deps MarkReceivablePaidDeps) error {
	if _, err := deps.ReceivableStore.GetByID(ctx, id); err != nil {
		return err
	}
	return deps.ReceivableStore.Delete(ctx, id)
}

// SendReminderDeps holds dependencies for SendReceivableReminder.
type SendReminderDeps struct {
	ReceivableStore ReceivableStore
	ClientStore     ClientStore
	Sender          email.Sender
	Money           money.Formatter
	From            string
	Clock           Clock
}

// ExecuteSendReceivableReminder emails the client a payment reminder.
// PRE: Receivable is unpaid; client has an email address
// POST: One email sent; returns the provider message ID
func ExecuteSendReceivableReminder(ctx context.Context, id string, deps SendReminderDeps) (string, error) {
	r, err := deps.ReceivableStore.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if r.IsPaid() {
		return "", Invalid(ErrNothingToRemind)
	}
	c, err := deps.ClientStore.GetByID(ctx, r.ClientID)
	if err != nil {
		return "", err
	}

	status := r.StatusAt(deps.Clock.now())
	body := reminderMarkdown(c.Name, r, deps.Money, status)
	var html bytes.Buffer
	if err := mdRenderer.Convert([]byte(body), &html); err != nil {
		return "", fmt.Errorf("render reminder: %w", err)
	}

	subject := "Payment reminder: " + r.Description
	if status == receivable.StatusOverdue {
		subject = "Overdue payment: " + r.Description
	}
	res, err := deps.Sender.Send(ctx, email.SendRequest{
		To:      []string{c.Email},
		From:    deps.From,
		Subject: subject,
		HTML:    html.String(),
		Text:    body,
		Tags:    map[string]string{"kind": "receivable_reminder"},
	})
	if err != nil {
		return "", err
	}
	slog.Info("receivable_reminder_sent", "receivable_id", r.ID, "client_id", c.ID, "message_id", res.MessageID)
	return res.MessageID, nil
}

func reminderMarkdown(name string, r receivable.Receivable, m money.Formatter, status string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", name)
	if status == receivable.StatusOverdue {
		b.WriteString("The following amount is **overdue**:\n\n")
	} else {
		b.WriteString("This is a reminder of an upcoming payment:\n\n")
	}
	fmt.Fprintf(&b, "- **%s**\n", r.Description)
	fmt.Fprintf(&b, "- Amount: %s\n", m.Format(r.AmountCents))
	fmt.Fprintf(&b, "- Due: %s\n\n", r.DueDate.Format(booking.DateFormat))
	b.WriteString("Please disregard this message if you have already paid.\n")
	return b.String()
}
