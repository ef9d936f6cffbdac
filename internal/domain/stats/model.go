package stats

// SubjectStats aggregates one user's ledger entries for a subject.
type SubjectStats struct {
	SubjectID     string  `json:"subject_id"`
	Name          string  `json:"name"`
	Attended      int     `json:"attended"`
	TotalMarked   int     `json:"total_marked"`
	TotalLectures int     `json:"total_lectures"`
	Remaining     int     `json:"remaining"`
	Percentage    float64 `json:"percentage"`
}

// OverallStats sums attendance across every subject.
type OverallStats struct {
	Total      int     `json:"total"`
	Present    int     `json:"present"`
	Percentage float64 `json:"percentage"`
}

// Window is an inclusive ISO date range.
type Window struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// WindowedSubject is one subject's attendance inside a window. Every known
// subject appears, zero-valued when it has no entries in the window.
type WindowedSubject struct {
	SubjectID string `json:"subject_id"`
	Name      string `json:"name"`
	Attended  int    `json:"attended"`
	Total     int    `json:"total"`
}

// WeeklyReport is the composed payload behind the weekly report mail.
type WeeklyReport struct {
	Window            Window            `json:"window"`
	Subjects          []WindowedSubject `json:"subjects"`
	WeeklyAttended    int               `json:"weekly_attended"`
	WeeklyTotal       int               `json:"weekly_total"`
	WeeklyPercentage  float64           `json:"weekly_percentage"`
	OverallPercentage float64           `json:"overall_percentage"`
	Message           string            `json:"message"`
}

// DashboardSubject pairs a subject's term stats with today's marked state.
type DashboardSubject struct {
	SubjectID    string       `json:"subject_id"`
	Name         string       `json:"name"`
	Stats        SubjectStats `json:"stats"`
	MarkedToday  bool         `json:"marked_today"`
	TodayTotal   int          `json:"today_total"`
	TodayPresent int          `json:"today_present"`
}

// Dashboard is the single-call read model for the main view.
type Dashboard struct {
	Subjects          []DashboardSubject `json:"subjects"`
	TotalAttended     int                `json:"total_attended"`
	TotalMarked       int                `json:"total_marked"`
	OverallPercentage float64            `json:"overall_percentage"`
	Today             string             `json:"today"`
}
