package tablesettings_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venueadmin/internal/domain/tablesettings"
)

// TestMerge_ShallowReplacesTopLevelFields verifies a new map replaces the old one wholesale.
func TestMerge_ShallowReplacesTopLevelFields(t *testing.T) {
	base := tablesettings.TableSettings{
		ColumnSizes:  map[string]int{"a": 10},
		SortingState: []tablesettings.SortRule{{ID: "name"}},
	}

	merged := base.Merge(tablesettings.TableSettings{ColumnSizes: map[string]int{"b": 20}})

	assert.Equal(t, map[string]int{"b": 20}, merged.ColumnSizes)
	assert.Equal(t, []tablesettings.SortRule{{ID: "name"}}, merged.SortingState)
}

// TestMerge_KeepsUnsetFields verifies nil patch fields leave the base untouched.
func TestMerge_KeepsUnsetFields(t *testing.T) {
	base := tablesettings.TableSettings{ColumnOrder: []string{"a", "b"}}
	merged := base.Merge(tablesettings.TableSettings{})
	assert.Equal(t, []string{"a", "b"}, merged.ColumnOrder)
}

// TestMerge_EmptySliceClearsField verifies an explicit empty value replaces a previous one.
func TestMerge_EmptySliceClearsField(t *testing.T) {
	base := tablesettings.TableSettings{SortingState: []tablesettings.SortRule{{ID: "name", Desc: true}}}
	merged := base.Merge(tablesettings.TableSettings{SortingState: []tablesettings.SortRule{}})
	assert.NotNil(t, merged.SortingState)
	assert.Empty(t, merged.SortingState)
}

// TestMerge_DoesNotAlias verifies mutating the merge result leaves the inputs intact.
func TestMerge_DoesNotAlias(t *testing.T) {
	patch := tablesettings.TableSettings{ColumnSizes: map[string]int{"a": 10}}
	merged := tablesettings.TableSettings{}.Merge(patch)
	merged.ColumnSizes["a"] = 99
	assert.Equal(t, 10, patch.ColumnSizes["a"])
}

// TestJSONLayout verifies the persisted JSON shape and that absent fields stay absent.
func TestJSONLayout(t *testing.T) {
	s := tablesettings.TableSettings{
		ColumnOrder:   []string{"name", "email"},
		PinnedColumns: &tablesettings.PinnedColumns{Left: []string{"name"}},
	}
	raw, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"columnOrder":["name","email"],"pinnedColumns":{"left":["name"]}}`, string(raw))

	var back tablesettings.TableSettings
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Nil(t, back.ColumnSizes)
	assert.Nil(t, back.SortingState)
	assert.Equal(t, "left", back.PinSide("name"))
	assert.Equal(t, "", back.PinSide("email"))
}

// TestStorageKey verifies the key layout includes prefix, entity and version tag.
func TestStorageKey(t *testing.T) {
	assert.Equal(t, "table_settings_users_v1", tablesettings.StorageKey("users", 1))
	assert.Equal(t, "table_settings_users_v2", tablesettings.StorageKey("users", 2))
}

// TestValidateEntity verifies entity names are restricted to key-safe characters.
func TestValidateEntity(t *testing.T) {
	assert.NoError(t, tablesettings.ValidateEntity("receivables"))
	assert.NoError(t, tablesettings.ValidateEntity("booking_rows-2"))
	assert.ErrorIs(t, tablesettings.ValidateEntity(""), tablesettings.ErrEmptyEntity)
	assert.ErrorIs(t, tablesettings.ValidateEntity("../etc"), tablesettings.ErrInvalidEntity)
}

// TestValidate verifies non-positive sizes and empty keys are rejected.
func TestValidate(t *testing.T) {
	assert.NoError(t, tablesettings.TableSettings{ColumnSizes: map[string]int{"a": 120}}.Validate())
	assert.ErrorIs(t, tablesettings.TableSettings{ColumnSizes: map[string]int{"a": 0}}.Validate(), tablesettings.ErrInvalidSize)
	assert.ErrorIs(t, tablesettings.TableSettings{ColumnOrder: []string{""}}.Validate(), tablesettings.ErrEmptyColumnKey)
	assert.ErrorIs(t, tablesettings.TableSettings{SortingState: []tablesettings.SortRule{{}}}.Validate(), tablesettings.ErrEmptyColumnKey)
}
