package listview

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnknownAction is returned when no action matches the requested name.
var ErrUnknownAction = errors.New("unknown action")

// ErrActionHidden is returned when the action exists but is not offered for
// the item.
var ErrActionHidden = errors.New("action not available for this item")

// Dispatch runs the OnClick of the action called name. Visibility is checked
// with filter, the same hook Render uses, so a hidden button cannot be
// triggered by a crafted request.
// PRE: action names are unique
// POST: Returns the OnClick error unchanged
func Dispatch[T any](ctx context.Context, actions []Action[T], name string, item T, filter func(Action[T], T) bool) error {
	for _, a := range actions {
		if a.Name != name {
			continue
		}
		if filter != nil && !filter(a, item) {
			return fmt.Errorf("%w: %s", ErrActionHidden, name)
		}
		if a.OnClick == nil {
			return fmt.Errorf("%w: %s has no handler", ErrUnknownAction, name)
		}
		return a.OnClick(ctx, item)
	}
	return fmt.Errorf("%w: %s", ErrUnknownAction, name)
}
