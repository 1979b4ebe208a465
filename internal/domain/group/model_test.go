package group_test

import (
	"errors"
	"reflect"
	"testing"

	"venueadmin/internal/domain/group"
)

// TestHasPermission verifies write implies read within a module.
func TestHasPermission(t *testing.T) {
	g := group.Group{Name: "Front desk", Permissions: []string{group.PermBookingsWrite, group.PermClientsRead}}
	cases := map[string]bool{
		group.PermBookingsWrite:   true,
		group.PermBookingsRead:    true,
		group.PermClientsRead:     true,
		group.PermClientsWrite:    false,
		group.PermReceivablesRead: false,
	}
	for perm, want := range cases {
		if got := g.HasPermission(perm); got != want {
			t.Errorf("HasPermission(%q) = %v, want %v", perm, got, want)
		}
	}
}

// TestGroupValidation rejects unknown permissions.
func TestGroupValidation(t *testing.T) {
	g := group.Group{Name: "Ops", Permissions: []string{"bookings.delete"}}
	if err := g.Validate(); !errors.Is(err, group.ErrUnknownPermission) {
		t.Errorf("Validate() error = %v, want ErrUnknownPermission", err)
	}
	g = group.Group{Name: " "}
	if err := g.Validate(); !errors.Is(err, group.ErrEmptyName) {
		t.Errorf("Validate() error = %v, want ErrEmptyName", err)
	}
}

// TestNormalizePermissions verifies display ordering and de-duplication.
func TestNormalizePermissions(t *testing.T) {
	got := group.NormalizePermissions([]string{group.PermUsersRead, group.PermBookingsRead, group.PermUsersRead})
	want := []string{group.PermBookingsRead, group.PermUsersRead}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizePermissions() = %v, want %v", got, want)
	}
}
