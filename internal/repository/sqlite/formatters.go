package sqlite

import (
	"database/sql"
	"time"
)

// timeLayout is fixed width so stored timestamps sort lexically in time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// FormatTimeForDB formats a time as a fixed-width UTC string
func FormatTimeForDB(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// FormatTimePtrForDB formats a *time.Time, returning nil for a nil pointer
func FormatTimePtrForDB(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return FormatTimeForDB(*t)
}

// ParseTimeFromDB parses a timestamp written by FormatTimeForDB
func ParseTimeFromDB(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// ParseNullTimeFromDB parses a nullable timestamp column
func ParseNullTimeFromDB(s sql.NullString) (*time.Time, error) {
	if !s.Valid {
		return nil, nil
	}
	t, err := ParseTimeFromDB(s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func nullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
