package projections

import (
	"context"
	"fmt"
	"time"

	"venueadmin/internal/adapters/storage/user"
)

// UserRow is a user with the name of its group. The password hash never
// leaves the store layer.
type UserRow struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	GroupID   string    `json:"groupId"`
	GroupName string    `json:"group"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

// GetUserListQuery carries query parameters.
type GetUserListQuery struct {
	GroupID    string
	ActiveOnly bool
}

// GetUserListResult carries the query result.
type GetUserListResult struct {
	Users []UserRow
}

// GetUserListDeps holds dependencies for GetUserList.
type GetUserListDeps struct {
	UserStore  UserStore
	GroupStore GroupStore
}

// QueryGetUserList returns users ordered by name.
func QueryGetUserList(ctx context.Context, query GetUserListQuery, deps GetUserListDeps) (GetUserListResult, error) {
	users, err := deps.UserStore.List(ctx, user.ListFilter{GroupID: query.GroupID, ActiveOnly: query.ActiveOnly})
	if err != nil {
		return GetUserListResult{}, fmt.Errorf("list users: %w", err)
	}
	groups, err := deps.GroupStore.List(ctx)
	if err != nil {
		return GetUserListResult{}, fmt.Errorf("list groups: %w", err)
	}
	groupNames := make(map[string]string, len(groups))
	for _, g := range groups {
		groupNames[g.ID] = g.Name
	}

	rows := make([]UserRow, 0, len(users))
	for _, u := range users {
		rows = append(rows, UserRow{
			ID:        u.ID,
			Name:      u.Name,
			Email:     u.Email,
			GroupID:   u.GroupID,
			GroupName: groupNames[u.GroupID],
			Active:    u.Active,
			CreatedAt: u.CreatedAt,
		})
	}
	return GetUserListResult{Users: rows}, nil
}
