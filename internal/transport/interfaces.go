package transport

import (
	"context"

	"github.com/attendease/attendease/internal/domain/activity"
	"github.com/attendease/attendease/internal/domain/assistant"
	"github.com/attendease/attendease/internal/domain/ledger"
	"github.com/attendease/attendease/internal/domain/stats"
	"github.com/attendease/attendease/internal/domain/subject"
)

// SubjectService exposes subject reads and settings updates.
type SubjectService interface {
	List(ctx context.Context) ([]subject.Subject, error)
	UpdateTotalLectures(ctx context.Context, id string, totalLectures int) (*subject.Subject, error)
}

// LedgerService exposes direct attendance edits and queries.
type LedgerService interface {
	Upsert(ctx context.Context, userID string, up ledger.Upsert) (*ledger.Entry, error)
	Query(ctx context.Context, userID string, opts ledger.QueryOptions) ([]ledger.Entry, error)
}

// StatsService exposes derived attendance aggregates.
type StatsService interface {
	SubjectStats(ctx context.Context, userID, subjectID string) (*stats.SubjectStats, error)
	OverallStats(ctx context.Context, userID string) (*stats.OverallStats, error)
	WindowedStats(ctx context.Context, userID, from, to string) ([]stats.WindowedSubject, error)
	WeeklyReport(ctx context.Context, userID string) (*stats.WeeklyReport, error)
	Dashboard(ctx context.Context, userID string) (*stats.Dashboard, error)
}

// AssistantService exposes the chat turn and confirmation flow.
type AssistantService interface {
	Turn(ctx context.Context, userID, sessionID, message string) (*assistant.TurnResult, error)
	Confirm(ctx context.Context, userID, sessionID string) (*assistant.ConfirmResult, error)
	Cancel(sessionID string)
}

// ActivityService exposes the audit log.
type ActivityService interface {
	Recent(ctx context.Context, userID string, limit int) ([]activity.Entry, error)
}
