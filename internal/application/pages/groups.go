package pages

import (
	"context"
	"net/url"
	"strings"

	"venueadmin/internal/application/listview"
	"venueadmin/internal/application/orchestrators"
	"venueadmin/internal/domain/group"
)

func registerGroups(r *Registry, deps Deps, _ formatter) error {
	remove := orchestrators.DeleteGroupDeps{GroupStore: deps.Groups, UserStore: deps.Users}

	return Register(r, Definition[group.Group]{
		Entity:   "groups",
		Title:    "Groups",
		Singular: "group",
		ID:       func(g group.Group) string { return g.ID },
		Columns: []listview.Column[group.Group]{
			{Key: "name", Label: "Name", Sortable: true},
			{Key: "description", Label: "Description"},
			{Key: "permissions", Label: "Permissions",
				Value: func(g group.Group) any { return strings.Join(g.Permissions, ", ") }},
		},
		Actions: []listview.Action[group.Group]{
			{Name: "delete", Label: "Delete", Icon: "trash", Variant: listview.ActionDestructive, Confirm: "Delete this group?",
				OnClick: func(ctx context.Context, g group.Group) error {
					return orchestrators.ExecuteDeleteGroup(ctx, g.ID, remove)
				}},
		},
		Load: func(ctx context.Context, _ map[string]string) ([]group.Group, error) {
			return deps.Groups.List(ctx)
		},
		Get: deps.Groups.GetByID,
		Fields: func(context.Context) ([]FormField, error) {
			perms := make([]Option, 0, len(group.AllPermissions))
			for _, p := range group.AllPermissions {
				perms = append(perms, Option{Value: p, Label: p})
			}
			return []FormField{
				{Name: "name", Label: "Name", Type: "text", Required: true},
				{Name: "description", Label: "Description", Type: "text"},
				{Name: "permissions", Label: "Permissions", Type: "multiselect", Options: perms},
			}, nil
		},
		Create: func(ctx context.Context, values url.Values) (string, error) {
			return orchestrators.ExecuteCreateGroup(ctx, orchestrators.CreateGroupInput{
				Name:        values.Get("name"),
				Description: values.Get("description"),
				Permissions: values["permissions"],
			}, orchestrators.CreateGroupDeps{GroupStore: deps.Groups, Clock: deps.Clock})
		},
	})
}
