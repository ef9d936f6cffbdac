package activity

import "time"

// Type identifies the kind of ledger mutation that was recorded.
type Type string

const (
	TypeEntryUpserted  Type = "entry_upserted"
	TypeEntryDeleted   Type = "entry_deleted"
	TypeBatchCommitted Type = "batch_committed"
)

// Entry is one audit row describing a ledger mutation.
type Entry struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	SubjectID *string   `json:"subject_id,omitempty"`
	Type      Type      `json:"type"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"created_at"`
}
