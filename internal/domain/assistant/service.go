package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/attendease/attendease/internal/domain/ledger"
	"github.com/attendease/attendease/internal/oracle"
	"github.com/attendease/attendease/internal/pendingaction"
	"github.com/attendease/attendease/internal/ratelimit"
)

// Service orchestrates the AI-mediated edit flow: rate-limited chat turns
// against the oracle, proposal parsing, and the confirm/cancel state machine
// over the pending-action store.
type Service struct {
	subjects      Subjects
	ledger        Ledger
	stats         Stats
	oracle        oracle.Oracle
	limiter       *ratelimit.Limiter
	pending       *pendingaction.Store[Proposal]
	maxMessageLen int
	logger        *slog.Logger
	now           func() time.Time
}

// NewService creates a new assistant service.
func NewService(
	subjects Subjects,
	ledgerSvc Ledger,
	statsSvc Stats,
	gen oracle.Oracle,
	limiter *ratelimit.Limiter,
	pending *pendingaction.Store[Proposal],
	maxMessageLen int,
	logger *slog.Logger,
) *Service {
	return &Service{
		subjects:      subjects,
		ledger:        ledgerSvc,
		stats:         statsSvc,
		oracle:        gen,
		limiter:       limiter,
		pending:       pending,
		maxMessageLen: maxMessageLen,
		logger:        logger,
		now:           time.Now,
	}
}

// SetClock overrides the time source, for tests.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Turn runs one chat turn. The rate-limit slot is consumed before the oracle
// call and is not refunded when the call fails, bounding retry storms. When
// the reply carries a recognized proposal it is stored for the session,
// replacing any prior one.
func (s *Service) Turn(ctx context.Context, userID, sessionID, message string) (*TurnResult, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyMessage
	}
	if utf8.RuneCountInString(message) > s.maxMessageLen {
		return nil, ErrMessageTooLong
	}

	allowed, remaining := s.limiter.CheckAndConsume(userID)
	if !allowed {
		return nil, ErrQuotaExceeded
	}

	dash, err := s.stats.Dashboard(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("building oracle context: %w", err)
	}

	today := s.now().Format(ledger.DateLayout)
	reply, err := s.oracle.Generate(ctx, buildPrompt(dash, today, message))
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("oracle call failed", "user", userID, "error", err)
		}
		return nil, fmt.Errorf("%w: %v", ErrOracleUnavailable, err)
	}

	parsed := ParseOracleReply(reply)
	result := &TurnResult{
		Response:           parsed.Message,
		RateLimitRemaining: remaining,
	}

	if parsed.HasAction {
		s.pending.Put(sessionID, Proposal{Edits: parsed.Edits})
		result.HasAction = true
		result.ActionKind = parsed.Action
		result.ProposedEdits = parsed.Edits
	}

	return result, nil
}

// Confirm commits the session's pending proposal. Each edit is resolved and
// constrained: unknown subjects are skipped without aborting the batch,
// future dates are replaced by today, lecture totals are clamped to the
// per-day bounds, and unrecognized statuses default to present. Surviving
// items are applied in one transaction; a store failure rolls back all of
// them and leaves the session with no pending state either way.
func (s *Service) Confirm(ctx context.Context, userID, sessionID string) (*ConfirmResult, error) {
	proposal, ok := s.pending.Take(sessionID)
	if !ok {
		return nil, ErrExpiredState
	}

	subjects, err := s.subjects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolving subjects: %w", err)
	}
	known := make(map[string]bool, len(subjects))
	for _, subj := range subjects {
		known[subj.ID] = true
	}

	today := s.now().Format(ledger.DateLayout)

	ups := make([]ledger.Upsert, 0, len(proposal.Edits))
	for _, edit := range proposal.Edits {
		if !known[edit.SubjectID] {
			if s.logger != nil {
				s.logger.Info("skipping edit for unknown subject", "subject", edit.SubjectID)
			}
			continue
		}

		date := edit.Date
		if !ledger.ValidDate(date) || date > today {
			date = today
		}

		total := edit.LecturesTotal
		if total < MinLecturesPerDay {
			total = MinLecturesPerDay
		}
		if total > MaxLecturesPerDay {
			total = MaxLecturesPerDay
		}

		status := ledger.Status(edit.Status)
		if status != ledger.StatusPresent && status != ledger.StatusAbsent {
			status = ledger.StatusPresent
		}

		ups = append(ups, ledger.Upsert{
			SubjectID:       edit.SubjectID,
			Date:            date,
			LecturesTotal:   total,
			LecturesPresent: ledger.PresentCount(total, status),
		})
	}

	applied, err := s.ledger.ApplyBatch(ctx, userID, ups)
	if err != nil {
		return nil, fmt.Errorf("committing proposal: %w", err)
	}

	return &ConfirmResult{
		Success:       true,
		Message:       fmt.Sprintf("Applied %d of %d proposed edits.", applied, len(proposal.Edits)),
		AppliedCount:  applied,
		ProposedCount: len(proposal.Edits),
	}, nil
}

// Cancel discards any pending proposal for the session. It is unconditional
// and always succeeds.
func (s *Service) Cancel(sessionID string) {
	s.pending.Clear(sessionID)
}
