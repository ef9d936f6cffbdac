package ledger

import (
	"strings"
	"time"
)

// ValidDate reports whether s is a well-formed ISO calendar date.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// ValidateUpsert checks an upsert against the store invariants. Counts are
// rejected, never clamped: clamping belongs to the confirmation path.
func ValidateUpsert(userID string, up Upsert) error {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(up.SubjectID) == "" {
		return ErrInvalidInput
	}
	if !ValidDate(up.Date) {
		return ErrInvalidDate
	}
	if up.LecturesTotal < 0 {
		return ErrInvalidCount
	}
	if up.LecturesPresent < 0 || up.LecturesPresent > up.LecturesTotal {
		return ErrInvalidCount
	}
	return nil
}
