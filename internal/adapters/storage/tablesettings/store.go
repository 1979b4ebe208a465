// Package tablesettings holds the key-value backends behind the table
// settings cache. Values are opaque JSON documents keyed by
// "table_settings_<entity>_v<version>".
package tablesettings

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("table settings not found")

// Store is a string-keyed blob store.
type Store interface {
	// Get returns the stored value or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set creates or replaces the value for key.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
