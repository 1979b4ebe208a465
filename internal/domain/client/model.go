package client

import (
	"errors"
	"strings"
	"time"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength     = 100
	MaxPhoneLength    = 30
	MaxDocumentLength = 30
)

// Business rule constants
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Domain errors
var (
	ErrEmptyName       = errors.New("client name cannot be empty")
	ErrNameTooLong     = errors.New("client name cannot exceed 100 characters")
	ErrInvalidEmail    = errors.New("client email must be valid")
	ErrPhoneTooLong    = errors.New("phone cannot exceed 30 characters")
	ErrDocumentTooLong = errors.New("document cannot exceed 30 characters")
	ErrInvalidStatus   = errors.New("status must be 'active' or 'inactive'")
	ErrAlreadyActive   = errors.New("client is already active")
	ErrAlreadyInactive = errors.New("client is already inactive")
)

// Client is a person or team that books venues.
type Client struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Document  string
	Status    string
	CreatedAt time.Time
}

// Validate checks if the Client has valid data.
// PRE: Client struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: Email must contain '@', Name must not be empty
func (c *Client) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if len(c.Name) > MaxNameLength {
		return ErrNameTooLong
	}
	if !strings.Contains(c.Email, "@") {
		return ErrInvalidEmail
	}
	if len(c.Phone) > MaxPhoneLength {
		return ErrPhoneTooLong
	}
	if len(c.Document) > MaxDocumentLength {
		return ErrDocumentTooLong
	}
	if c.Status != StatusActive && c.Status != StatusInactive {
		return ErrInvalidStatus
	}
	return nil
}

// IsActive returns true if the client may book venues.
func (c *Client) IsActive() bool {
	return c.Status == StatusActive
}

// Activate sets the client status to active.
// PRE: Client is inactive
// POST: Status is active
func (c *Client) Activate() error {
	if c.Status == StatusActive {
		return ErrAlreadyActive
	}
	c.Status = StatusActive
	return nil
}

// Deactivate sets the client status to inactive.
// PRE: Client is active
// POST: Status is inactive
func (c *Client) Deactivate() error {
	if c.Status == StatusInactive {
		return ErrAlreadyInactive
	}
	c.Status = StatusInactive
	return nil
}
