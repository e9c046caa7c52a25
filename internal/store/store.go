package store

import (
	"errors"

	"gorm.io/gorm"
)

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// Store implements the persistence contract for the four entity types over a
// *gorm.DB. The backend behind the gorm handle (SQLite file or hosted
// Postgres) is chosen at connection time; nothing here depends on which.
//
// All failures are surfaced to the caller unchanged; there are no retries and
// no partial writes.
type Store struct {
	db *gorm.DB
}

// New wraps an open database handle.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// fieldAliases maps the camelCase field names external callers may send to
// the stored snake_case columns. Unknown keys pass through unchanged.
var fieldAliases = map[string]string{
	"dueDate":       "due_date",
	"timeSlot":      "time_slot",
	"time":          "time_slot",
	"isInPerson":    "is_in_person",
	"projectId":     "project_id",
	"commerceId":    "commerce_id",
	"parentId":      "parent_id",
	"googleEventId": "google_event_id",
}

// NormalizeFields translates camelCase aliases into column names, coerces
// boolean-like values for is_in_person into a native bool, and turns
// empty-string reference values into explicit NULLs.
func NormalizeFields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for key, value := range fields {
		col := key
		if mapped, ok := fieldAliases[key]; ok {
			col = mapped
		}
		switch col {
		case "is_in_person":
			value = coerceBool(value)
		case "parent_id", "project_id", "commerce_id":
			// "" means detach, never a literal empty key.
			if str, ok := value.(string); ok && str == "" {
				value = nil
			}
		}
		out[col] = value
	}
	return out
}

func coerceBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case float64: // JSON numbers decode as float64
		return b != 0
	case int:
		return b != 0
	case string:
		return b == "1" || b == "true"
	default:
		return false
	}
}

func stringField(fields map[string]any, key string) string {
	if v, ok := fields[key].(string); ok {
		return v
	}
	return ""
}

func stringPtrField(fields map[string]any, key string) *string {
	if v, ok := fields[key].(string); ok && v != "" {
		return &v
	}
	return nil
}
