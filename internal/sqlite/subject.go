package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/attendease/attendease/internal/domain/subject"
	"github.com/attendease/attendease/internal/repository"
)

// SubjectRepository implements subject.Repository for SQLite
type SubjectRepository struct {
	db *DB
}

// NewSubjectRepository creates a new SubjectRepository
func NewSubjectRepository(db *DB) *SubjectRepository {
	return &SubjectRepository{db: db}
}

// Create inserts a new subject
func (r *SubjectRepository) Create(ctx context.Context, subj *subject.Subject) error {
	query := `INSERT INTO subjects (id, name, total_lectures, created_at) VALUES (?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query, subj.ID, subj.Name, subj.TotalLectures, subj.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return fmt.Errorf("failed to create subject: %w", err)
	}
	return nil
}

// Get retrieves a subject by ID
func (r *SubjectRepository) Get(ctx context.Context, id string) (*subject.Subject, error) {
	query := `SELECT id, name, total_lectures, created_at FROM subjects WHERE id = ?`

	var subj subject.Subject
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&subj.ID,
		&subj.Name,
		&subj.TotalLectures,
		&subj.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get subject: %w", err)
	}
	return &subj, nil
}

// List returns all subjects in creation order
func (r *SubjectRepository) List(ctx context.Context) ([]subject.Subject, error) {
	query := `SELECT id, name, total_lectures, created_at FROM subjects ORDER BY created_at, name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list subjects: %w", err)
	}
	defer rows.Close()

	var subjects []subject.Subject
	for rows.Next() {
		var subj subject.Subject
		if err := rows.Scan(&subj.ID, &subj.Name, &subj.TotalLectures, &subj.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan subject: %w", err)
		}
		subjects = append(subjects, subj)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subject rows: %w", err)
	}

	return subjects, nil
}

// Count returns the number of subjects
func (r *SubjectRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM subjects`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count subjects: %w", err)
	}
	return count, nil
}

// UpdateTotalLectures sets a subject's target lecture count
func (r *SubjectRepository) UpdateTotalLectures(ctx context.Context, id string, totalLectures int) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE subjects SET total_lectures = ? WHERE id = ?`, totalLectures, id)
	if err != nil {
		return fmt.Errorf("failed to update subject: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
