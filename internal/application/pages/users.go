package pages

import (
	"context"
	"net/url"

	"venueadmin/internal/application/listview"
	"venueadmin/internal/application/orchestrators"
	"venueadmin/internal/application/projections"
)

func registerUsers(r *Registry, deps Deps, f formatter) error {
	listDeps := projections.GetUserListDeps{UserStore: deps.Users, GroupStore: deps.Groups}
	setActive := orchestrators.SetUserActiveDeps{UserStore: deps.Users}

	load := func(ctx context.Context, filters map[string]string) ([]projections.UserRow, error) {
		res, err := projections.QueryGetUserList(ctx, projections.GetUserListQuery{GroupID: filters["group"]}, listDeps)
		return res.Users, err
	}

	return Register(r, Definition[projections.UserRow]{
		Entity:   "users",
		Title:    "Users",
		Singular: "user",
		ID:       func(u projections.UserRow) string { return u.ID },
		Columns: []listview.Column[projections.UserRow]{
			{Key: "name", Label: "Name", Sortable: true},
			{Key: "email", Label: "Email", Sortable: true},
			{Key: "group", Label: "Group", Sortable: true, Value: func(u projections.UserRow) any { return u.GroupName }},
			{Key: "active", Label: "Active", Sortable: true,
				Render: listview.RenderFunc[projections.UserRow](func(u projections.UserRow) listview.Cell { return yesNo(u.Active) })},
			{Key: "createdAt", Label: "Since", Sortable: true,
				Value:  func(u projections.UserRow) any { return unixValue(u.CreatedAt) },
				Render: listview.RenderFunc[projections.UserRow](func(u projections.UserRow) listview.Cell { return f.date(u.CreatedAt) })},
		},
		Actions: []listview.Action[projections.UserRow]{
			{Name: "deactivate", Label: "Deactivate", Icon: "pause", Variant: listview.ActionOutline,
				Show: func(u projections.UserRow) bool { return u.Active },
				OnClick: func(ctx context.Context, u projections.UserRow) error {
					return orchestrators.ExecuteSetUserActive(ctx, orchestrators.SetActiveInput{ID: u.ID, Active: false}, setActive)
				}},
			{Name: "activate", Label: "Activate", Icon: "play", Variant: listview.ActionOutline,
				Show: func(u projections.UserRow) bool { return !u.Active },
				OnClick: func(ctx context.Context, u projections.UserRow) error {
					return orchestrators.ExecuteSetUserActive(ctx, orchestrators.SetActiveInput{ID: u.ID, Active: true}, setActive)
				}},
			{Name: "delete", Label: "Delete", Icon: "trash", Variant: listview.ActionDestructive, Confirm: "Delete this user?",
				OnClick: func(ctx context.Context, u projections.UserRow) error {
					return orchestrators.ExecuteDeleteUser(ctx, u.ID, setActive)
				}},
		},
		Load: load,
		Get: func(ctx context.Context, id string) (projections.UserRow, error) {
			u, err := deps.Users.GetByID(ctx, id)
			if err != nil {
				return projections.UserRow{}, err
			}
			g, _ := deps.Groups.GetByID(ctx, u.GroupID)
			return projections.UserRow{
				ID: u.ID, Name: u.Name, Email: u.Email, GroupID: u.GroupID, GroupName: g.Name,
				Active: u.Active, CreatedAt: u.CreatedAt,
			}, nil
		},
		FilterKeys: []string{"group"},
		Fields: func(ctx context.Context) ([]FormField, error) {
			groups, err := deps.Groups.List(ctx)
			if err != nil {
				return nil, err
			}
			opts := make([]Option, 0, len(groups))
			for _, g := range groups {
				opts = append(opts, Option{Value: g.ID, Label: g.Name})
			}
			return []FormField{
				{Name: "name", Label: "Name", Type: "text", Required: true},
				{Name: "email", Label: "Email", Type: "email", Required: true},
				{Name: "groupId", Label: "Group", Type: "select", Required: true, Options: opts},
				{Name: "password", Label: "Password", Type: "password", Required: true, Help: "At least 8 characters"},
			}, nil
		},
		Create: func(ctx context.Context, values url.Values) (string, error) {
			return orchestrators.ExecuteCreateUser(ctx, orchestrators.CreateUserInput{
				Name:     values.Get("name"),
				Email:    values.Get("email"),
				Password: values.Get("password"),
				GroupID:  values.Get("groupId"),
			}, orchestrators.CreateUserDeps{UserStore: deps.Users, GroupStore: deps.Groups, Clock: deps.Clock})
		},
	})
}
