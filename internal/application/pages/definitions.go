package pages

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"venueadmin/internal/adapters/email"
	bookingStore "venueadmin/internal/adapters/storage/booking"
	clientStore "venueadmin/internal/adapters/storage/client"
	groupStore "venueadmin/internal/adapters/storage/group"
	receivableStore "venueadmin/internal/adapters/storage/receivable"
	userStore "venueadmin/internal/adapters/storage/user"
	venueStore "venueadmin/internal/adapters/storage/venue"
	"venueadmin/internal/application/money"
	"venueadmin/internal/application/orchestrators"
	"venueadmin/internal/domain/booking"
)

// Deps holds everything the built-in pages need.
type Deps struct {
	Venues      venueStore.Store
	Clients     clientStore.Store
	Bookings    bookingStore.Store
	Receivables receivableStore.Store
	Users       userStore.Store
	Groups      groupStore.Store

	Sender    email.Sender
	EmailFrom string
	Money     money.Formatter
	Location  *time.Location // display and form time zone; nil means UTC
	Clock     orchestrators.Clock
}

// New registers the built-in pages in navigation order.
// PRE: every store in deps is non-nil
// POST: Returns a registry with bookings, clients, venues, receivables,
// users and groups
func New(deps Deps) (*Registry, error) {
	if deps.Location == nil {
		deps.Location = time.UTC
	}
	if deps.Money == (money.Formatter{}) {
		deps.Money = money.NewFormatter("en", "")
	}
	r := NewRegistry()
	f := formatter{money: deps.Money, location: deps.Location}
	for _, register := range []func(*Registry, Deps, formatter) error{
		registerBookings,
		registerClients,
		registerVenues,
		registerReceivables,
		registerUsers,
		registerGroups,
	} {
		if err := register(r, deps, f); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (d Deps) now() time.Time {
	if d.Clock.Now != nil {
		return d.Clock.Now()
	}
	return time.Now()
}

// Form parsing helpers. Every failure is a validation error.

func formInt(values url.Values, name string) (int, error) {
	raw := strings.TrimSpace(values.Get(name))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, orchestrators.Invalid(fmt.Errorf("%s must be a whole number", name))
	}
	return n, nil
}

// formCents accepts "150", "150.5", "150,50" and "1.234,56".
func formCents(values url.Values, name string) (int64, error) {
	raw := strings.TrimSpace(values.Get(name))
	if raw == "" {
		return 0, nil
	}
	if strings.Contains(raw, ",") {
		raw = strings.ReplaceAll(raw, ".", "")
		raw = strings.ReplaceAll(raw, ",", ".")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f < 0 || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, orchestrators.Invalid(fmt.Errorf("%s must be a non-negative amount", name))
	}
	return int64(math.Round(f * 100)), nil
}

func formTime(values url.Values, name, layout string, loc *time.Location) (time.Time, error) {
	raw := strings.TrimSpace(values.Get(name))
	if raw == "" {
		return time.Time{}, orchestrators.Invalid(fmt.Errorf("%s is required", name))
	}
	t, err := time.ParseInLocation(layout, raw, loc)
	if err != nil {
		return time.Time{}, orchestrators.Invalid(fmt.Errorf("%s must match %s", name, layout))
	}
	return t, nil
}

func formDateTime(values url.Values, name string, loc *time.Location) (time.Time, error) {
	return formTime(values, name, booking.DateTimeFormat, loc)
}

func formDate(values url.Values, name string, loc *time.Location) (time.Time, error) {
	return formTime(values, name, booking.DateFormat, loc)
}
