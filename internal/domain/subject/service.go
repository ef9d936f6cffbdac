package subject

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/attendease/attendease/internal/repository"
	"github.com/google/uuid"
)

// Seed describes a subject created during first-run setup.
type Seed struct {
	Name          string
	TotalLectures int
}

// Service handles subject operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new subject service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// EnsureDefaults seeds the given subjects when the store is empty.
func (s *Service) EnsureDefaults(ctx context.Context, seeds []Seed) error {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("counting subjects: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, seed := range seeds {
		total := seed.TotalLectures
		if total < 1 {
			total = DefaultTotalLectures
		}
		subj := &Subject{
			ID:            uuid.NewString(),
			Name:          seed.Name,
			TotalLectures: total,
			CreatedAt:     time.Now(),
		}
		if err := s.repo.Create(ctx, subj); err != nil {
			return fmt.Errorf("seeding subject %q: %w", seed.Name, err)
		}
	}

	if s.logger != nil {
		s.logger.Info("seeded default subjects", "count", len(seeds))
	}
	return nil
}

// Get fetches a subject by ID.
func (s *Service) Get(ctx context.Context, id string) (*Subject, error) {
	subj, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSubjectNotFound
		}
		return nil, fmt.Errorf("getting subject: %w", err)
	}
	return subj, nil
}

// List returns all subjects.
func (s *Service) List(ctx context.Context) ([]Subject, error) {
	subjects, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing subjects: %w", err)
	}
	return subjects, nil
}

// UpdateTotalLectures sets a subject's target lecture count for the term.
// Values below 1 reset to the default, matching the settings form behavior.
func (s *Service) UpdateTotalLectures(ctx context.Context, id string, totalLectures int) (*Subject, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrInvalidInput
	}
	if totalLectures < 1 {
		totalLectures = DefaultTotalLectures
	}

	if err := s.repo.UpdateTotalLectures(ctx, id, totalLectures); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSubjectNotFound
		}
		return nil, fmt.Errorf("updating subject: %w", err)
	}

	return s.Get(ctx, id)
}
