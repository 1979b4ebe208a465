package venue

import (
	"errors"
	"slices"
	"strings"
	"time"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength        = 100
	MaxDescriptionLength = 4000
	MaxCapacity          = 10000
)

// Sports offered by venues.
const (
	SportSoccer     = "soccer"
	SportFutsal     = "futsal"
	SportTennis     = "tennis"
	SportPadel      = "padel"
	SportVolleyball = "volleyball"
	SportBasketball = "basketball"
)

// ValidSports contains all valid sport values.
var ValidSports = []string{SportSoccer, SportFutsal, SportTennis, SportPadel, SportVolleyball, SportBasketball}

// Domain errors
var (
	ErrEmptyName       = errors.New("venue name cannot be empty")
	ErrNameTooLong     = errors.New("venue name cannot exceed 100 characters")
	ErrInvalidSport    = errors.New("sport must be one of: soccer, futsal, tennis, padel, volleyball, basketball")
	ErrInvalidCapacity = errors.New("capacity must be between 1 and 10000")
	ErrNegativeRate    = errors.New("hourly rate cannot be negative")
	ErrDescriptionLong = errors.New("description cannot exceed 4000 characters")
	ErrAlreadyActive   = errors.New("venue is already active")
	ErrAlreadyInactive = errors.New("venue is already inactive")
)

// Venue is a bookable court or field.
type Venue struct {
	ID              string
	Name            string
	Sport           string
	Capacity        int
	HourlyRateCents int64
	Description     string // markdown
	Active          bool
	CreatedAt       time.Time
}

// Validate checks if the Venue has valid data.
// PRE: Venue struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (v *Venue) Validate() error {
	if strings.TrimSpace(v.Name) == "" {
		return ErrEmptyName
	}
	if len(v.Name) > MaxNameLength {
		return ErrNameTooLong
	}
	if !slices.Contains(ValidSports, v.Sport) {
		return ErrInvalidSport
	}
	if v.Capacity < 1 || v.Capacity > MaxCapacity {
		return ErrInvalidCapacity
	}
	if v.HourlyRateCents < 0 {
		return ErrNegativeRate
	}
	if len(v.Description) > MaxDescriptionLength {
		return ErrDescriptionLong
	}
	return nil
}

// Activate makes the venue bookable again.
// PRE: Venue is inactive
// POST: Active is true
func (v *Venue) Activate() error {
	if v.Active {
		return ErrAlreadyActive
	}
	v.Active = true
	return nil
}

// Deactivate takes the venue out of the booking rotation.
// PRE: Venue is active
// POST: Active is false
func (v *Venue) Deactivate() error {
	if !v.Active {
		return ErrAlreadyInactive
	}
	v.Active = false
	return nil
}
