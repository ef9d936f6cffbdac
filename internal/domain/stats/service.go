package stats

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/attendease/attendease/internal/domain/ledger"
	"github.com/attendease/attendease/internal/domain/subject"
	"github.com/attendease/attendease/internal/repository"
)

// Service derives attendance statistics from ledger entries. It never
// mutates state; aggregates are recomputed on every read.
type Service struct {
	subjects subject.Repository
	entries  ledger.Repository
	logger   *slog.Logger
	now      func() time.Time
}

// NewService creates a new stats service.
func NewService(subjects subject.Repository, entries ledger.Repository, logger *slog.Logger) *Service {
	return &Service{
		subjects: subjects,
		entries:  entries,
		logger:   logger,
		now:      time.Now,
	}
}

// SetClock overrides the time source, for tests.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// SubjectStats aggregates a user's entries for one subject.
func (s *Service) SubjectStats(ctx context.Context, userID, subjectID string) (*SubjectStats, error) {
	subj, err := s.subjects.Get(ctx, subjectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, subject.ErrSubjectNotFound
		}
		return nil, fmt.Errorf("getting subject: %w", err)
	}

	entries, err := s.entries.Query(ctx, userID, ledger.QueryOptions{SubjectID: subjectID})
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}

	return s.foldSubject(subj, entries), nil
}

// OverallStats sums attendance across all subjects.
func (s *Service) OverallStats(ctx context.Context, userID string) (*OverallStats, error) {
	entries, err := s.entries.Query(ctx, userID, ledger.QueryOptions{})
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}

	var present, total int
	for _, e := range entries {
		present += e.LecturesPresent
		total += e.LecturesTotal
	}

	return &OverallStats{
		Total:      total,
		Present:    present,
		Percentage: percentage(present, total),
	}, nil
}

// WindowedStats breaks attendance down per subject over an inclusive date
// range. Every known subject is present in the result, zero-valued when it
// has no entries in the window.
func (s *Service) WindowedStats(ctx context.Context, userID, from, to string) ([]WindowedSubject, error) {
	if !ledger.ValidDate(from) || !ledger.ValidDate(to) {
		return nil, ledger.ErrInvalidDate
	}

	subjects, err := s.subjects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing subjects: %w", err)
	}

	entries, err := s.entries.Query(ctx, userID, ledger.QueryOptions{From: from, To: to})
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}

	bySubject := make(map[string]*WindowedSubject, len(subjects))
	result := make([]WindowedSubject, len(subjects))
	for i, subj := range subjects {
		result[i] = WindowedSubject{SubjectID: subj.ID, Name: subj.Name}
		bySubject[subj.ID] = &result[i]
	}

	for _, e := range entries {
		ws, ok := bySubject[e.SubjectID]
		if !ok {
			continue
		}
		ws.Attended += e.LecturesPresent
		ws.Total += e.LecturesTotal
	}

	return result, nil
}

// WeeklyReport composes the report for the fixed weekly window.
func (s *Service) WeeklyReport(ctx context.Context, userID string) (*WeeklyReport, error) {
	window := WeeklyWindow(s.now())

	subjects, err := s.WindowedStats(ctx, userID, window.From, window.To)
	if err != nil {
		return nil, err
	}

	overall, err := s.OverallStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	var attended, total int
	for _, ws := range subjects {
		attended += ws.Attended
		total += ws.Total
	}
	weeklyPct := percentage(attended, total)

	return &WeeklyReport{
		Window:            window,
		Subjects:          subjects,
		WeeklyAttended:    attended,
		WeeklyTotal:       total,
		WeeklyPercentage:  weeklyPct,
		OverallPercentage: overall.Percentage,
		Message:           reportMessage(weeklyPct),
	}, nil
}

// Dashboard assembles per-subject term stats plus today's marked state.
func (s *Service) Dashboard(ctx context.Context, userID string) (*Dashboard, error) {
	subjects, err := s.subjects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing subjects: %w", err)
	}

	entries, err := s.entries.Query(ctx, userID, ledger.QueryOptions{})
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}

	today := s.now().Format(ledger.DateLayout)
	entriesBySubject := make(map[string][]ledger.Entry)
	for _, e := range entries {
		entriesBySubject[e.SubjectID] = append(entriesBySubject[e.SubjectID], e)
	}

	dash := &Dashboard{Today: today}
	for _, subj := range subjects {
		subjEntries := entriesBySubject[subj.ID]
		stats := s.foldSubject(&subj, subjEntries)

		ds := DashboardSubject{
			SubjectID: subj.ID,
			Name:      subj.Name,
			Stats:     *stats,
		}
		for _, e := range subjEntries {
			if e.Date == today {
				ds.MarkedToday = true
				ds.TodayTotal = e.LecturesTotal
				ds.TodayPresent = e.LecturesPresent
				break
			}
		}

		dash.Subjects = append(dash.Subjects, ds)
		dash.TotalAttended += stats.Attended
		dash.TotalMarked += stats.TotalMarked
	}
	dash.OverallPercentage = percentage(dash.TotalAttended, dash.TotalMarked)

	return dash, nil
}

func (s *Service) foldSubject(subj *subject.Subject, entries []ledger.Entry) *SubjectStats {
	var attended, marked int
	for _, e := range entries {
		attended += e.LecturesPresent
		marked += e.LecturesTotal
	}

	remaining := subj.TotalLectures - marked
	if remaining < 0 {
		remaining = 0
	}

	return &SubjectStats{
		SubjectID:     subj.ID,
		Name:          subj.Name,
		Attended:      attended,
		TotalMarked:   marked,
		TotalLectures: subj.TotalLectures,
		Remaining:     remaining,
		Percentage:    percentage(attended, marked),
	}
}

// percentage returns present/total*100 rounded to one decimal, 0 when
// nothing is marked.
func percentage(present, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(present)/float64(total)*1000) / 10
}

func reportMessage(weeklyPct float64) string {
	switch {
	case weeklyPct >= 90:
		return "Amazing work! You're crushing it this week!"
	case weeklyPct >= 75:
		return "Good job! Keep confident and consistent."
	case weeklyPct >= 60:
		return "Keep an eye on your attendance. Every lecture counts!"
	default:
		return "Critical: your attendance was low this week. Please catch up!"
	}
}
