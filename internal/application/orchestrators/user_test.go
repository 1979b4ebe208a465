package orchestrators

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venueadmin/internal/domain/group"
	"venueadmin/internal/domain/user"
)

func TestUsersAndGroups(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	groupDeps := CreateGroupDeps{GroupStore: env.groups, Clock: env.clock}

	groupID, err := ExecuteCreateGroup(ctx, CreateGroupInput{
		Name:        "Desk",
		Permissions: []string{group.PermClientsWrite, group.PermBookingsRead, group.PermBookingsRead},
	}, groupDeps)
	require.NoError(t, err)
	g, err := env.groups.GetByID(ctx, groupID)
	require.NoError(t, err)
	assert.Equal(t, []string{group.PermBookingsRead, group.PermClientsWrite}, g.Permissions)

	_, err = ExecuteCreateGroup(ctx, CreateGroupInput{Name: "desk"}, groupDeps)
	assert.ErrorIs(t, err, ErrGroupExists)
	_, err = ExecuteCreateGroup(ctx, CreateGroupInput{Name: "Bad", Permissions: []string{"root"}}, groupDeps)
	assert.ErrorIs(t, err, group.ErrUnknownPermission)

	userDeps := CreateUserDeps{UserStore: env.users, GroupStore: env.groups, Clock: env.clock}
	userID, err := ExecuteCreateUser(ctx, CreateUserInput{Name: "Carla", Email: " Carla@Example.com ", Password: "s3cretpass", GroupID: groupID}, userDeps)
	require.NoError(t, err)
	u, err := env.users.GetByID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "carla@example.com", u.Email)
	assert.NoError(t, u.CheckPassword("s3cretpass"))

	_, err = ExecuteCreateUser(ctx, CreateUserInput{Name: "Dup", Email: "carla@example.com", Password: "s3cretpass", GroupID: groupID}, userDeps)
	assert.ErrorIs(t, err, ErrEmailTaken)
	_, err = ExecuteCreateUser(ctx, CreateUserInput{Name: "Short", Email: "s@example.com", Password: "short", GroupID: groupID}, userDeps)
	assert.ErrorIs(t, err, user.ErrPasswordTooShort)

	setDeps := SetUserActiveDeps{UserStore: env.users}
	require.NoError(t, ExecuteSetUserActive(ctx, SetActiveInput{ID: userID, Active: false}, setDeps))
	assert.ErrorIs(t, ExecuteSetUserActive(ctx, SetActiveInput{ID: userID, Active: false}, setDeps), user.ErrAlreadyInactive)

	deleteGroup := DeleteGroupDeps{GroupStore: env.groups, UserStore: env.users}
	assert.ErrorIs(t, ExecuteDeleteGroup(ctx, groupID, deleteGroup), ErrGroupInUse)
	require.NoError(t, ExecuteDeleteUser(ctx, userID, setDeps))
	require.NoError(t, ExecuteDeleteGroup(ctx, groupID, deleteGroup))
}

func TestExecuteSeedDemoData_Idempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	deps := SeedDeps{
		VenueStore:      env.venues,
		ClientStore:     env.clients,
		BookingStore:    env.bookings,
		ReceivableStore: env.receivables,
		UserStore:       env.users,
		GroupStore:      env.groups,
		Clock:           env.clock,
	}

	result, err := ExecuteSeedDemoData(ctx, deps)
	require.NoError(t, err)
	assert.False(t, result.Skipped)
	assert.Equal(t, 4, result.Venues)
	assert.Equal(t, 60, result.Bookings)
	assert.Equal(t, 28, result.Receivables)

	again, err := ExecuteSeedDemoData(ctx, deps)
	require.NoError(t, err)
	assert.True(t, again.Skipped)
}
