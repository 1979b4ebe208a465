package user

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Field limits.
const (
	MaxNameLength     = 100
	MaxEmailLength    = 254
	MinPasswordLength = 8
)

// Domain errors
var (
	ErrEmptyName        = errors.New("user name cannot be empty")
	ErrNameTooLong      = errors.New("user name cannot exceed 100 characters")
	ErrEmptyEmail       = errors.New("email cannot be empty")
	ErrInvalidEmail     = errors.New("email must contain '@'")
	ErrEmailTooLong     = errors.New("email cannot exceed 254 characters")
	ErrMissingGroup     = errors.New("user group is required")
	ErrEmptyPassword    = errors.New("password cannot be empty")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrWrongPassword    = errors.New("incorrect password")
	ErrAlreadyActive    = errors.New("user is already active")
	ErrAlreadyInactive  = errors.New("user is already inactive")
)

// User is a staff member with access to the admin.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	GroupID      string
	Active       bool
	CreatedAt    time.Time
}

// Validate checks if the User has valid data.
// PRE: User struct is populated
// POST: Returns nil if valid, error otherwise
func (u *User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return ErrEmptyName
	}
	if len(u.Name) > MaxNameLength {
		return ErrNameTooLong
	}
	if strings.TrimSpace(u.Email) == "" {
		return ErrEmptyEmail
	}
	if len(u.Email) > MaxEmailLength {
		return ErrEmailTooLong
	}
	if !strings.Contains(u.Email, "@") {
		return ErrInvalidEmail
	}
	if u.GroupID == "" {
		return ErrMissingGroup
	}
	return nil
}

// SetPassword hashes and stores a new password.
// PRE: password has at least MinPasswordLength characters
// POST: PasswordHash holds a bcrypt hash of password
func (u *User) SetPassword(password string) error {
	if password == "" {
		return ErrEmptyPassword
	}
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword compares a candidate password with the stored hash.
// INVARIANT: u is not mutated
func (u *User) CheckPassword(password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return ErrWrongPassword
	}
	return nil
}

// Activate re-enables the user.
// PRE: User is inactive
// POST: Active is true
func (u *User) Activate() error {
	if u.Active {
		return ErrAlreadyActive
	}
	u.Active = true
	return nil
}

// Deactivate disables the user without deleting history.
// PRE: User is active
// POST: Active is false
func (u *User) Deactivate() error {
	if !u.Active {
		return ErrAlreadyInactive
	}
	u.Active = false
	return nil
}
