package orchestrators

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"venueadmin/internal/adapters/storage/user"
	"venueadmin/internal/domain/group"
	domainUser "venueadmin/internal/domain/user"
)

// Account errors.
var (
	ErrEmailTaken  = errors.New("a user with this email already exists")
	ErrGroupInUse  = errors.New("group still has users")
	ErrGroupExists = errors.New("a group with this name already exists")
)

// CreateUserInput carries input for the orchestrator.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	GroupID  string
}

// CreateUserDeps holds dependencies for CreateUser.
type CreateUserDeps struct {
	UserStore  UserStore
	GroupStore GroupStore
	Clock      Clock
}

// ExecuteCreateUser creates an active staff user.
// PRE: Group exists; email is unused; password has at least 8 characters
// POST: User persisted with a bcrypt password hash; returns the ID
// INVARIANT: Emails are unique (checked here and by the store)
func ExecuteCreateUser(ctx context.Context, input CreateUserInput, deps CreateUserDeps) (string, error) {
	u := domainUser.User{
		ID:        deps.Clock.id(),
		Name:      strings.TrimSpace(input.Name),
		Email:     strings.ToLower(strings.TrimSpace(input.Email)),
		GroupID:   input.GroupID,
		Active:    true,
		CreatedAt: deps.Clock.now(),
	}
	if err := u.Validate(); err != nil {
		return "", Invalid(err)
	}
	if _, err := deps.GroupStore.GetByID(ctx, input.GroupID); err != nil {
		return "", err
	}
	_, err := deps.UserStore.GetByEmail(ctx, u.Email)
	if err == nil {
		return "", Invalid(ErrEmailTaken)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", err
	}
	if err := u.SetPassword(input.Password); err != nil {
		return "", Invalid(err)
	}
	if err := deps.UserStore.Save(ctx, u); err != nil {
		return "", err
	}
	return u.ID, nil
}

// SetUserActiveDeps holds dependencies for SetUserActive.
type SetUserActiveDeps struct {
	UserStore UserStore
}

// ExecuteSetUserActive enables or disables a user.
func ExecuteSetUserActive(ctx context.Context, input SetActiveInput, deps SetUserActiveDeps) error {
	u, err := deps.UserStore.GetByID(ctx, input.ID)
	if err != nil {
		return err
	}
	if input.Active {
		err = u.Activate()
	} else {
		err = u.Deactivate()
	}
	if err != nil {
		return Invalid(err)
	}
	return deps.UserStore.Save(ctx, u)
}

// ExecuteDeleteUser removes a user.
func ExecuteDeleteUser(ctx context.Context, id string, deps SetUserActiveDeps) error {
	if _, err := deps.UserStore.GetByID(ctx, id); err != nil {
		return err
	}
	return deps.UserStore.Delete(ctx, id)
}

// CreateGroupInput carries input for the orchestrator.
type CreateGroupInput struct {
	Name        string
	Description string
	Permissions []string
}

// CreateGroupDeps holds dependencies for CreateGroup.
type CreateGroupDeps struct {
	GroupStore GroupStore
	Clock      Clock
}

// ExecuteCreateGroup creates a permission group.
// PRE: Name is unique; every permission is known
// POST: Group persisted with normalized permissions; returns the ID
func ExecuteCreateGroup(ctx context.Context, input CreateGroupInput, deps CreateGroupDeps) (string, error) {
	g := group.Group{
		ID:          deps.Clock.id(),
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Permissions: group.NormalizePermissions(input.Permissions),
	}
	if err := g.Validate(); err != nil {
		return "", Invalid(err)
	}
	existing, err := deps.GroupStore.List(ctx)
	if err != nil {
		return "", err
	}
	for _, other := range existing {
		if strings.EqualFold(other.Name, g.Name) {
			return "", Invalid(ErrGroupExists)
		}
	}
	if err := deps.GroupStore.Save(ctx, g); err != nil {
		return "", err
	}
	return g.ID, nil
}

// DeleteGroupDeps holds dependencies for DeleteGroup.
type DeleteGroupDeps struct {
	GroupStore GroupStore
	UserStore  UserStore
}

// ExecuteDeleteGroup removes a group with no members.
// PRE: No user belongs to the group
// POST: Group deleted
func ExecuteDeleteGroup(ctx context.Context, id string, deps DeleteGroupDeps) error {
	if _, err := deps.GroupStore.GetByID(ctx, id); err != nil {
		return err
	}
	n, err := deps.UserStore.Count(ctx, user.ListFilter{GroupID: id})
	if err != nil {
		return err
	}
	if n > 0 {
		return Invalid(ErrGroupInUse)
	}
	return deps.GroupStore.Delete(ctx, id)
}
