package repository

import (
	"database/sql"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// parseNullableTime turns a nullable TEXT column back into a *time.Time.
// NULL, empty, and unparsable values all come back as nil.
func parseNullableTime(s sql.NullString, layout string) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(layout, s.String)
	if err != nil {
		return nil
	}
	return &t
}

// nullableTimeToString is the write-side counterpart: nil stores SQL NULL.
func nullableTimeToString(t *time.Time, layout string) any {
	if t == nil {
		return nil
	}
	return t.Format(layout)
}

// SQLite has no BOOLEAN type; booleans are stored as 0/1 integers.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func intToBool(i int) bool {
	return i != 0
}

// joinModuleIDs packs a session's module list into one TEXT column. Module
// IDs never contain commas; catalog validation enforces the character set.
func joinModuleIDs(ids []string) string {
	return strings.Join(ids, ",")
}

func splitModuleIDs(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
