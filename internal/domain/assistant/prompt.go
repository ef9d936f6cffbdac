package assistant

import (
	"fmt"
	"strings"

	"github.com/attendease/attendease/internal/domain/stats"
)

// buildPrompt assembles the oracle prompt: the edit protocol, the user's
// current standing per subject, and the message. Subject IDs are included
// so the oracle can reference them in proposed edits.
func buildPrompt(dash *stats.Dashboard, today, message string) string {
	var b strings.Builder

	b.WriteString("You are an attendance assistant for a student. ")
	b.WriteString("Answer questions about their attendance, and when they ask you to mark ")
	b.WriteString("or change attendance, propose the edits for confirmation.\n\n")

	b.WriteString("To propose edits, include exactly one fenced JSON block of this form:\n")
	b.WriteString("```json\n")
	b.WriteString(`{"action": "preview_attendance", "message": "<short summary>", "edits": [`)
	b.WriteString(`{"subject_id": "<id>", "date": "YYYY-MM-DD", "lectures_total": 1, "status": "present"}]}`)
	b.WriteString("\n```\n")
	b.WriteString("Rules: lectures_total is between 1 and 3; status is \"present\" or \"absent\"; ")
	b.WriteString("dates must not be in the future. Never claim an edit has been applied; ")
	b.WriteString("the student confirms first. If no edit is requested, reply in plain text only.\n\n")

	fmt.Fprintf(&b, "Today is %s.\n\nSubjects and current attendance:\n", today)
	for _, subj := range dash.Subjects {
		fmt.Fprintf(&b, "- %s (id %s): %d/%d lectures, %.1f%%, %d of %d remaining\n",
			subj.Name, subj.SubjectID,
			subj.Stats.Attended, subj.Stats.TotalMarked, subj.Stats.Percentage,
			subj.Stats.Remaining, subj.Stats.TotalLectures)
	}
	fmt.Fprintf(&b, "Overall: %d/%d (%.1f%%)\n\n", dash.TotalAttended, dash.TotalMarked, dash.OverallPercentage)

	fmt.Fprintf(&b, "Student message: %s\n", message)

	return b.String()
}
