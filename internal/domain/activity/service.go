package activity

import (
	"context"
	"fmt"
	"log/slog"
)

// DefaultLimit bounds activity listings when no limit is given.
const DefaultLimit = 50

// Repository provides persistence for activity entries.
type Repository interface {
	Log(ctx context.Context, entry *Entry) error
	Recent(ctx context.Context, userID string, limit int) ([]Entry, error)
}

// Service exposes the audit log of ledger mutations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new activity service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Recent returns the most recent activity entries for a user.
func (s *Service) Recent(ctx context.Context, userID string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	entries, err := s.repo.Recent(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing activity: %w", err)
	}
	return entries, nil
}
