package subject

import "time"

// DefaultTotalLectures is the fallback target lecture count for a term.
const DefaultTotalLectures = 40

// Subject represents one fixed subject tracked over a term. Subjects are
// created at setup time and mutated only through administrative settings.
type Subject struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	TotalLectures int       `json:"total_lectures"`
	CreatedAt     time.Time `json:"created_at"`
}
