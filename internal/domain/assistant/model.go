package assistant

// ActionPreviewAttendance is the only action kind the parser recognizes.
const ActionPreviewAttendance = "preview_attendance"

// Bounds for a single proposed day, clamped at confirm time.
const (
	MinLecturesPerDay = 1
	MaxLecturesPerDay = 3
)

// ProposedEdit is one edit suggested by the oracle. Fields are carried as
// parsed, not yet validated against business rules; the Confirmation
// Executor resolves, clamps, and defaults them before anything is applied.
type ProposedEdit struct {
	SubjectID     string `json:"subject_id"`
	Date          string `json:"date"`
	LecturesTotal int    `json:"lectures_total"`
	Status        string `json:"status"`
}

// Proposal is the session-scoped batch awaiting confirmation.
type Proposal struct {
	Edits []ProposedEdit
}

// TurnResult is the outcome of one chat turn.
type TurnResult struct {
	Response           string         `json:"response_text"`
	HasAction          bool           `json:"has_action"`
	ActionKind         string         `json:"action_kind,omitempty"`
	ProposedEdits      []ProposedEdit `json:"proposed_edits,omitempty"`
	RateLimitRemaining int            `json:"rate_limit_remaining"`
}

// ConfirmResult reports a committed proposal. AppliedCount may be less than
// ProposedCount when items referencing unknown subjects were skipped.
type ConfirmResult struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	AppliedCount  int    `json:"applied_count"`
	ProposedCount int    `json:"proposed_count"`
}
