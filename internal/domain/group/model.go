package group

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// MaxNameLength bounds the group name.
const MaxNameLength = 60

// Permission values. Each module has a read and a write permission.
const (
	PermBookingsRead     = "bookings.read"
	PermBookingsWrite    = "bookings.write"
	PermClientsRead      = "clients.read"
	PermClientsWrite     = "clients.write"
	PermVenuesRead       = "venues.read"
	PermVenuesWrite      = "venues.write"
	PermReceivablesRead  = "receivables.read"
	PermReceivablesWrite = "receivables.write"
	PermUsersRead        = "users.read"
	PermUsersWrite       = "users.write"
	PermReportsRead      = "reports.read"
)

// AllPermissions lists every known permission in display order.
var AllPermissions = []string{
	PermBookingsRead, PermBookingsWrite,
	PermClientsRead, PermClientsWrite,
	PermVenuesRead, PermVenuesWrite,
	PermReceivablesRead, PermReceivablesWrite,
	PermUsersRead, PermUsersWrite,
	PermReportsRead,
}

// Domain errors
var (
	ErrEmptyName         = errors.New("group name cannot be empty")
	ErrNameTooLong       = errors.New("group name cannot exceed 60 characters")
	ErrUnknownPermission = errors.New("unknown permission")
)

// Group bundles permissions assigned to users.
type Group struct {
	ID          string
	Name        string
	Description string
	Permissions []string
}

// Validate checks the name and that every permission is known.
// PRE: Group struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (g *Group) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return ErrEmptyName
	}
	if len(g.Name) > MaxNameLength {
		return ErrNameTooLong
	}
	for _, p := range g.Permissions {
		if !slices.Contains(AllPermissions, p) {
			return fmt.Errorf("%w: %q", ErrUnknownPermission, p)
		}
	}
	return nil
}

// HasPermission reports whether the group grants perm. A write permission
// implies the read permission of the same module.
// INVARIANT: g is not mutated
func (g Group) HasPermission(perm string) bool {
	if slices.Contains(g.Permissions, perm) {
		return true
	}
	if module, ok := strings.CutSuffix(perm, ".read"); ok {
		return slices.Contains(g.Permissions, module+".write")
	}
	return false
}

// NormalizePermissions sorts permissions into display order and drops duplicates.
func NormalizePermissions(perms []string) []string {
	out := make([]string, 0, len(perms))
	for _, p := range AllPermissions {
		if slices.Contains(perms, p) {
			out = append(out, p)
		}
	}
	for _, p := range perms {
		if !slices.Contains(AllPermissions, p) && !slices.Contains(out, p) {
			out = append(out, p)
		}
	}
	return out
}
