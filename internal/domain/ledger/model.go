package ledger

import "time"

// DateLayout is the wire and storage format for attendance dates.
// ISO dates compare correctly as strings, which keeps range queries simple.
const DateLayout = "2006-01-02"

// Status marks whether the lectures on a date were attended.
type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
)

// Entry is one attendance record for a (user, subject, date) key. At most
// one entry exists per key; a zero lecture total is never stored.
type Entry struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	SubjectID       string    `json:"subject_id"`
	Date            string    `json:"date"`
	LecturesTotal   int       `json:"lectures_total"`
	LecturesPresent int       `json:"lectures_present"`
	CreatedAt       time.Time `json:"created_at"`
}

// Upsert describes one insert-or-overwrite against the ledger.
type Upsert struct {
	SubjectID       string
	Date            string
	LecturesTotal   int
	LecturesPresent int
}

// QueryOptions filters ledger queries. Zero values mean "no filter";
// From and To are inclusive ISO dates.
type QueryOptions struct {
	SubjectID string
	From      string
	To        string
}

// PresentCount resolves the attended lecture count for a status:
// present means every lecture that day was attended, absent means none.
func PresentCount(lecturesTotal int, status Status) int {
	if status == StatusAbsent {
		return 0
	}
	return lecturesTotal
}
