package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/attendease/attendease/internal/domain/activity"
	"github.com/attendease/attendease/internal/repository"
	"github.com/google/uuid"
)

// ErrEntryNotFound indicates no entry exists for the requested key.
var ErrEntryNotFound = errors.New("attendance entry not found")

// Service owns the attendance ledger invariants: one entry per
// (user, subject, date), overwrite on conflict, delete on zero total.
type Service struct {
	repo       Repository
	activities activity.Repository
	logger     *slog.Logger
}

// NewService creates a new ledger service. The activity repository is
// optional; audit logging is skipped when it is nil.
func NewService(repo Repository, activities activity.Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, activities: activities, logger: logger}
}

// Upsert inserts or overwrites the entry for (user, subject, date). A zero
// lecture total deletes any existing entry and returns nil: "no lecture that
// day" is represented by absence, never by a zero row.
func (s *Service) Upsert(ctx context.Context, userID string, up Upsert) (*Entry, error) {
	if up.LecturesTotal == 0 {
		if err := s.deleteForKey(ctx, userID, up); err != nil {
			return nil, err
		}
		return nil, nil
	}

	if err := ValidateUpsert(userID, up); err != nil {
		return nil, err
	}

	entry := &Entry{
		ID:              uuid.NewString(),
		UserID:          userID,
		SubjectID:       up.SubjectID,
		Date:            up.Date,
		LecturesTotal:   up.LecturesTotal,
		LecturesPresent: up.LecturesPresent,
		CreatedAt:       time.Now(),
	}

	if err := s.repo.Upsert(ctx, entry); err != nil {
		return nil, fmt.Errorf("upserting entry: %w", err)
	}

	s.logActivity(ctx, userID, &up.SubjectID, activity.TypeEntryUpserted,
		fmt.Sprintf("marked %d/%d on %s", up.LecturesPresent, up.LecturesTotal, up.Date))

	return entry, nil
}

// Get returns the entry for an exact key.
func (s *Service) Get(ctx context.Context, userID, subjectID, date string) (*Entry, error) {
	entry, err := s.repo.Get(ctx, userID, subjectID, date)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("getting entry: %w", err)
	}
	return entry, nil
}

// Query returns entries matching the options, ordered by date descending.
func (s *Service) Query(ctx context.Context, userID string, opts QueryOptions) ([]Entry, error) {
	if opts.From != "" && !ValidDate(opts.From) {
		return nil, ErrInvalidDate
	}
	if opts.To != "" && !ValidDate(opts.To) {
		return nil, ErrInvalidDate
	}

	entries, err := s.repo.Query(ctx, userID, opts)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	return entries, nil
}

// ApplyBatch commits validated upserts in one transaction: either every
// entry lands or none does. Entries in the batch must have a positive total;
// deletion never travels through the batch path.
func (s *Service) ApplyBatch(ctx context.Context, userID string, ups []Upsert) (int, error) {
	entries := make([]*Entry, 0, len(ups))
	for _, up := range ups {
		if up.LecturesTotal < 1 {
			return 0, ErrInvalidCount
		}
		if err := ValidateUpsert(userID, up); err != nil {
			return 0, err
		}
		entries = append(entries, &Entry{
			ID:              uuid.NewString(),
			UserID:          userID,
			SubjectID:       up.SubjectID,
			Date:            up.Date,
			LecturesTotal:   up.LecturesTotal,
			LecturesPresent: up.LecturesPresent,
			CreatedAt:       time.Now(),
		})
	}

	if len(entries) == 0 {
		return 0, nil
	}

	if err := s.repo.ApplyBatch(ctx, entries); err != nil {
		return 0, fmt.Errorf("applying batch: %w", err)
	}

	s.logActivity(ctx, userID, nil, activity.TypeBatchCommitted,
		fmt.Sprintf("committed batch of %d entries", len(entries)))

	return len(entries), nil
}

func (s *Service) deleteForKey(ctx context.Context, userID string, up Upsert) error {
	if err := ValidateUpsert(userID, Upsert{SubjectID: up.SubjectID, Date: up.Date}); err != nil {
		return err
	}

	err := s.repo.Delete(ctx, userID, up.SubjectID, up.Date)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("deleting entry: %w", err)
	}

	s.logActivity(ctx, userID, &up.SubjectID, activity.TypeEntryDeleted,
		fmt.Sprintf("cleared entry on %s", up.Date))
	return nil
}

func (s *Service) logActivity(ctx context.Context, userID string, subjectID *string, typ activity.Type, summary string) {
	if s.activities == nil {
		return
	}
	err := s.activities.Log(ctx, &activity.Entry{
		UserID:    userID,
		SubjectID: subjectID,
		Type:      typ,
		Summary:   summary,
	})
	if err != nil && s.logger != nil {
		s.logger.Warn("activity log failed", "error", err)
	}
}
