package storage

import (
	"database/sql"
	"log/slog"
	"time"
)

// TimeLayout is the text layout used for every timestamp column.
const TimeLayout = "2006-01-02T15:04:05Z07:00"

// FormatTime renders t for storage in UTC.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// ParseTime parses a stored timestamp, logging a warning on failure.
func ParseTime(raw, table, field, id string) time.Time {
	t, err := time.Parse(TimeLayout, raw)
	if err != nil {
		slog.Warn("storage_parse_time_failed", "table", table, "field", field, "id", id, "raw", raw, "error", err)
	}
	return t
}

// NullableString maps "" to SQL NULL.
func NullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// NullableTime maps a nil or zero time to SQL NULL.
func NullableTime(t *time.Time) any {
	if t == nil || t.IsZero() {
		return nil
	}
	return FormatTime(*t)
}

// ParseNullableTime returns nil for NULL columns.
func ParseNullableTime(ns sql.NullString, table, field, id string) *time.Time {
	if !ns.Valid || ns.String == "" {
		return nil
	}
	t := ParseTime(ns.String, table, field, id)
	return &t
}

// BoolToInt converts a bool to the 0/1 integer SQLite stores.
func BoolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// SortDirection normalises a requested direction to ASC or DESC.
func SortDirection(dir string) string {
	if dir == "desc" {
		return "DESC"
	}
	return "ASC"
}
