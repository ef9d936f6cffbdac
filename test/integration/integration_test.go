package integration_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/attendease/attendease/internal/domain/activity"
	"github.com/attendease/attendease/internal/domain/assistant"
	"github.com/attendease/attendease/internal/domain/ledger"
	"github.com/attendease/attendease/internal/domain/stats"
	"github.com/attendease/attendease/internal/domain/subject"
	"github.com/attendease/attendease/internal/pendingaction"
	"github.com/attendease/attendease/internal/ratelimit"
	"github.com/attendease/attendease/internal/sqlite"
)

type testEnv struct {
	db *sqlite.DB

	subjectSvc   *subject.Service
	ledgerSvc    *ledger.Service
	statsSvc     *stats.Service
	activitySvc  *activity.Service
	assistantSvc *assistant.Service
	oracle       *scriptedOracle

	subjects []subject.Subject
}

type scriptedOracle struct {
	reply string
}

func (o *scriptedOracle) Generate(context.Context, string) (string, error) {
	return o.reply, nil
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { _ = db.Close() })

	subjectRepo := sqlite.NewSubjectRepository(db)
	attendanceRepo := sqlite.NewAttendanceRepository(db)
	activityRepo := sqlite.NewActivityRepository(db)
	userRepo := sqlite.NewUserRepository(db)

	subjectSvc := subject.NewService(subjectRepo, nil)
	ledgerSvc := ledger.NewService(attendanceRepo, activityRepo, nil)
	statsSvc := stats.NewService(subjectRepo, attendanceRepo, nil)
	activitySvc := activity.NewService(activityRepo, nil)

	oracle := &scriptedOracle{}
	limiter := ratelimit.New(20, 24*time.Hour)
	pending := pendingaction.NewStore[assistant.Proposal](5 * time.Minute)
	assistantSvc := assistant.NewService(subjectSvc, ledgerSvc, statsSvc, oracle, limiter, pending, 500, nil)

	ctx := context.Background()
	require.NoError(t, subjectSvc.EnsureDefaults(ctx, []subject.Seed{
		{Name: "Mathematics", TotalLectures: 40},
		{Name: "Physics", TotalLectures: 40},
	}))
	require.NoError(t, userRepo.EnsureUser(ctx, "student", "student", "student@example.com"))

	subjects, err := subjectSvc.List(ctx)
	require.NoError(t, err)

	return &testEnv{
		db:           db,
		subjectSvc:   subjectSvc,
		ledgerSvc:    ledgerSvc,
		statsSvc:     statsSvc,
		activitySvc:  activitySvc,
		assistantSvc: assistantSvc,
		oracle:       oracle,
		subjects:     subjects,
	}
}

func TestIntegration_DirectMarkingWorkflow(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	math := env.subjects[0]

	yesterday := time.Now().AddDate(0, 0, -1).Format(ledger.DateLayout)
	entry, err := env.ledgerSvc.Upsert(ctx, "student", ledger.Upsert{
		SubjectID:       math.ID,
		Date:            yesterday,
		LecturesTotal:   2,
		LecturesPresent: 2,
	})
	require.NoError(t, err)
	require.NotNil(t, entry)

	// Remarking the same day overwrites rather than duplicating.
	_, err = env.ledgerSvc.Upsert(ctx, "student", ledger.Upsert{
		SubjectID:       math.ID,
		Date:            yesterday,
		LecturesTotal:   2,
		LecturesPresent: 0,
	})
	require.NoError(t, err)

	subjStats, err := env.statsSvc.SubjectStats(ctx, "student", math.ID)
	require.NoError(t, err)
	require.Equal(t, 0, subjStats.Attended)
	require.Equal(t, 2, subjStats.TotalMarked)
	require.Equal(t, 38, subjStats.Remaining)

	report, err := env.statsSvc.WeeklyReport(ctx, "student")
	require.NoError(t, err)
	require.Equal(t, 0, report.WeeklyAttended)
	require.Equal(t, 2, report.WeeklyTotal)

	// Zero total clears the day and the aggregates follow.
	_, err = env.ledgerSvc.Upsert(ctx, "student", ledger.Upsert{
		SubjectID:     math.ID,
		Date:          yesterday,
		LecturesTotal: 0,
	})
	require.NoError(t, err)

	overall, err := env.statsSvc.OverallStats(ctx, "student")
	require.NoError(t, err)
	require.Equal(t, 0, overall.Total)

	entries, err := env.activitySvc.Recent(ctx, "student", 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	require.Equal(t, activity.TypeEntryDeleted, entries[0].Type)
}

func TestIntegration_AssistantProposalWorkflow(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	math := env.subjects[0]
	physics := env.subjects[1]

	yesterday := time.Now().AddDate(0, 0, -1).Format(ledger.DateLayout)
	env.oracle.reply = fmt.Sprintf("Two subjects coming up.\n```json\n"+
		`{"action": "preview_attendance", "message": "Marking both.", "edits": [`+
		`{"subject_id": %q, "date": %q, "lectures_total": 2, "status": "present"},`+
		`{"subject_id": %q, "date": %q, "lectures_total": 1, "status": "absent"},`+
		`{"subject_id": "ghost", "date": %q, "lectures_total": 1, "status": "present"}]}`+
		"\n```", math.ID, yesterday, physics.ID, yesterday, yesterday)

	turn, err := env.assistantSvc.Turn(ctx, "student", "sess", "mark yesterday")
	require.NoError(t, err)
	require.True(t, turn.HasAction)
	require.Len(t, turn.ProposedEdits, 3)

	result, err := env.assistantSvc.Confirm(ctx, "student", "sess")
	require.NoError(t, err)
	require.Equal(t, 2, result.AppliedCount)
	require.Equal(t, 3, result.ProposedCount)

	mathEntry, err := env.ledgerSvc.Get(ctx, "student", math.ID, yesterday)
	require.NoError(t, err)
	require.Equal(t, 2, mathEntry.LecturesPresent)

	physicsEntry, err := env.ledgerSvc.Get(ctx, "student", physics.ID, yesterday)
	require.NoError(t, err)
	require.Equal(t, 0, physicsEntry.LecturesPresent)

	// Confirming the ghost edit skipped it without touching the batch.
	dash, err := env.statsSvc.Dashboard(ctx, "student")
	require.NoError(t, err)
	require.Equal(t, 3, dash.TotalMarked)
	require.Equal(t, 2, dash.TotalAttended)
}

func TestIntegration_SettingsReset(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	math := env.subjects[0]

	updated, err := env.subjectSvc.UpdateTotalLectures(ctx, math.ID, 60)
	require.NoError(t, err)
	require.Equal(t, 60, updated.TotalLectures)

	updated, err = env.subjectSvc.UpdateTotalLectures(ctx, math.ID, 0)
	require.NoError(t, err)
	require.Equal(t, subject.DefaultTotalLectures, updated.TotalLectures)
}
