package stats_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/attendease/attendease/internal/domain/ledger"
	"github.com/attendease/attendease/internal/domain/stats"
	"github.com/attendease/attendease/internal/domain/subject"
	"github.com/attendease/attendease/internal/repository"
	"github.com/attendease/attendease/internal/repository/mocks"
)

func fixedClock(date string) func() time.Time {
	ts, _ := time.Parse(ledger.DateLayout, date)
	return func() time.Time { return ts }
}

func TestWeeklyWindow_EndsYesterday(t *testing.T) {
	now, _ := time.Parse(ledger.DateLayout, "2026-08-28")
	window := stats.WeeklyWindow(now)
	require.Equal(t, "2026-08-21", window.From)
	require.Equal(t, "2026-08-27", window.To)
}

func TestSubjectStats_RoundsToOneDecimal(t *testing.T) {
	ctx := context.Background()
	subjects := &mocks.SubjectRepository{}
	entries := &mocks.AttendanceRepository{}

	subjects.On("Get", ctx, "s1").Return(&subject.Subject{ID: "s1", Name: "Math", TotalLectures: 40}, nil)
	entries.On("Query", ctx, "u1", ledger.QueryOptions{SubjectID: "s1"}).Return([]ledger.Entry{
		{SubjectID: "s1", LecturesTotal: 3, LecturesPresent: 2},
		{SubjectID: "s1", LecturesTotal: 3, LecturesPresent: 2},
	}, nil)

	svc := stats.NewService(subjects, entries, nil)
	got, err := svc.SubjectStats(ctx, "u1", "s1")
	require.NoError(t, err)
	require.Equal(t, 4, got.Attended)
	require.Equal(t, 6, got.TotalMarked)
	require.Equal(t, 34, got.Remaining)
	require.Equal(t, 66.7, got.Percentage)
}

func TestSubjectStats_UnknownSubject(t *testing.T) {
	ctx := context.Background()
	subjects := &mocks.SubjectRepository{}
	entries := &mocks.AttendanceRepository{}

	subjects.On("Get", ctx, "nope").Return(nil, repository.ErrNotFound)

	svc := stats.NewService(subjects, entries, nil)
	_, err := svc.SubjectStats(ctx, "u1", "nope")
	require.ErrorIs(t, err, subject.ErrSubjectNotFound)
}

func TestOverallStats_EmptyLedgerIsZero(t *testing.T) {
	ctx := context.Background()
	entries := &mocks.AttendanceRepository{}
	entries.On("Query", ctx, "u1", ledger.QueryOptions{}).Return([]ledger.Entry{}, nil)

	svc := stats.NewService(&mocks.SubjectRepository{}, entries, nil)
	got, err := svc.OverallStats(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, 0, got.Total)
	require.Equal(t, 0.0, got.Percentage)
}

func TestWindowedStats_IncludesSubjectsWithoutEntries(t *testing.T) {
	ctx := context.Background()
	subjects := &mocks.SubjectRepository{}
	entries := &mocks.AttendanceRepository{}

	subjects.On("List", ctx).Return([]subject.Subject{
		{ID: "s1", Name: "Math", TotalLectures: 40},
		{ID: "s2", Name: "Physics", TotalLectures: 40},
	}, nil)
	entries.On("Query", ctx, "u1", ledger.QueryOptions{From: "2026-08-21", To: "2026-08-27"}).Return([]ledger.Entry{
		{SubjectID: "s1", Date: "2026-08-22", LecturesTotal: 2, LecturesPresent: 1},
	}, nil)

	svc := stats.NewService(subjects, entries, nil)
	got, err := svc.WindowedStats(ctx, "u1", "2026-08-21", "2026-08-27")
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, 1, got[0].Attended)
	require.Equal(t, 2, got[0].Total)
	require.Equal(t, 0, got[1].Attended)
	require.Equal(t, 0, got[1].Total)
}

func TestWindowedStats_RejectsBadDates(t *testing.T) {
	svc := stats.NewService(&mocks.SubjectRepository{}, &mocks.AttendanceRepository{}, nil)
	_, err := svc.WindowedStats(context.Background(), "u1", "bad", "2026-08-27")
	require.ErrorIs(t, err, ledger.ErrInvalidDate)
}

func TestWeeklyReport_Messages(t *testing.T) {
	tests := []struct {
		name    string
		present int
		total   int
		message string
	}{
		{"excellent", 10, 10, "Amazing work! You're crushing it this week!"},
		{"good", 8, 10, "Good job! Keep confident and consistent."},
		{"warning", 6, 10, "Keep an eye on your attendance. Every lecture counts!"},
		{"critical", 3, 10, "Critical: your attendance was low this week. Please catch up!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			subjects := &mocks.SubjectRepository{}
			entries := &mocks.AttendanceRepository{}

			subjects.On("List", ctx).Return([]subject.Subject{{ID: "s1", Name: "Math", TotalLectures: 40}}, nil)
			entries.On("Query", ctx, "u1", ledger.QueryOptions{From: "2026-08-21", To: "2026-08-27"}).Return([]ledger.Entry{
				{SubjectID: "s1", Date: "2026-08-22", LecturesTotal: tt.total, LecturesPresent: tt.present},
			}, nil)
			entries.On("Query", ctx, "u1", ledger.QueryOptions{}).Return([]ledger.Entry{
				{SubjectID: "s1", Date: "2026-08-22", LecturesTotal: tt.total, LecturesPresent: tt.present},
			}, nil)

			svc := stats.NewService(subjects, entries, nil)
			svc.SetClock(fixedClock("2026-08-28"))

			report, err := svc.WeeklyReport(ctx, "u1")
			require.NoError(t, err)
			require.Equal(t, "2026-08-21", report.Window.From)
			require.Equal(t, "2026-08-27", report.Window.To)
			require.Equal(t, tt.present, report.WeeklyAttended)
			require.Equal(t, tt.message, report.Message)
		})
	}
}

func TestDashboard_MarksTodayState(t *testing.T) {
	ctx := context.Background()
	subjects := &mocks.SubjectRepository{}
	entries := &mocks.AttendanceRepository{}

	subjects.On("List", ctx).Return([]subject.Subject{
		{ID: "s1", Name: "Math", TotalLectures: 40},
		{ID: "s2", Name: "Physics", TotalLectures: 40},
	}, nil)
	entries.On("Query", ctx, "u1", ledger.QueryOptions{}).Return([]ledger.Entry{
		{SubjectID: "s1", Date: "2026-08-28", LecturesTotal: 2, LecturesPresent: 2},
		{SubjectID: "s1", Date: "2026-08-27", LecturesTotal: 1, LecturesPresent: 0},
	}, nil)

	svc := stats.NewService(subjects, entries, nil)
	svc.SetClock(fixedClock("2026-08-28"))

	dash, err := svc.Dashboard(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "2026-08-28", dash.Today)
	require.Len(t, dash.Subjects, 2)

	math := dash.Subjects[0]
	require.True(t, math.MarkedToday)
	require.Equal(t, 2, math.TodayTotal)
	require.Equal(t, 2, math.TodayPresent)
	require.Equal(t, 3, math.Stats.TotalMarked)

	physics := dash.Subjects[1]
	require.False(t, physics.MarkedToday)

	require.Equal(t, 2, dash.TotalAttended)
	require.Equal(t, 3, dash.TotalMarked)
	require.Equal(t, 66.7, dash.OverallPercentage)
}
