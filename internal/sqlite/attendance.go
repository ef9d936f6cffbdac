package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/attendease/attendease/internal/domain/ledger"
	"github.com/attendease/attendease/internal/repository"
)

// AttendanceRepository implements ledger.Repository for SQLite
type AttendanceRepository struct {
	db *DB
}

// NewAttendanceRepository creates a new AttendanceRepository
func NewAttendanceRepository(db *DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

const upsertQuery = `
	INSERT INTO attendance (user_id, subject_id, date, id, lectures_total, lectures_present, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(user_id, subject_id, date) DO UPDATE SET
		lectures_total = excluded.lectures_total,
		lectures_present = excluded.lectures_present
`

// Upsert inserts an entry or overwrites the counts of the existing entry
// for the same (user, subject, date) key.
func (r *AttendanceRepository) Upsert(ctx context.Context, entry *ledger.Entry) error {
	_, err := r.db.ExecContext(ctx, upsertQuery,
		entry.UserID,
		entry.SubjectID,
		entry.Date,
		entry.ID,
		entry.LecturesTotal,
		entry.LecturesPresent,
		entry.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to upsert entry: %w", err)
	}
	return nil
}

// Delete removes the entry for an exact key
func (r *AttendanceRepository) Delete(ctx context.Context, userID, subjectID, date string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM attendance WHERE user_id = ? AND subject_id = ? AND date = ?`,
		userID, subjectID, date)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
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

// Get retrieves the entry for an exact key
func (r *AttendanceRepository) Get(ctx context.Context, userID, subjectID, date string) (*ledger.Entry, error) {
	query := `
		SELECT id, user_id, subject_id, date, lectures_total, lectures_present, created_at
		FROM attendance
		WHERE user_id = ? AND subject_id = ? AND date = ?
	`

	var entry ledger.Entry
	err := r.db.QueryRowContext(ctx, query, userID, subjectID, date).Scan(
		&entry.ID,
		&entry.UserID,
		&entry.SubjectID,
		&entry.Date,
		&entry.LecturesTotal,
		&entry.LecturesPresent,
		&entry.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}
	return &entry, nil
}

// Query returns entries matching the options, newest date first
func (r *AttendanceRepository) Query(ctx context.Context, userID string, opts ledger.QueryOptions) ([]ledger.Entry, error) {
	query := `
		SELECT id, user_id, subject_id, date, lectures_total, lectures_present, created_at
		FROM attendance
		WHERE user_id = ?
	`
	args := []interface{}{userID}

	if opts.SubjectID != "" {
		query += " AND subject_id = ?"
		args = append(args, opts.SubjectID)
	}
	if opts.From != "" {
		query += " AND date >= ?"
		args = append(args, opts.From)
	}
	if opts.To != "" {
		query += " AND date <= ?"
		args = append(args, opts.To)
	}

	query += " ORDER BY date DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	var entries []ledger.Entry
	for rows.Next() {
		var entry ledger.Entry
		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.SubjectID,
			&entry.Date,
			&entry.LecturesTotal,
			&entry.LecturesPresent,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entry rows: %w", err)
	}

	return entries, nil
}

// ApplyBatch runs every upsert in one transaction. Any failure rolls back
// the whole batch.
func (r *AttendanceRepository) ApplyBatch(ctx context.Context, entries []*ledger.Entry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin batch: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, upsertQuery)
	if err != nil {
		return fmt.Errorf("failed to prepare batch upsert: %w", err)
	}
	defer stmt.Close()

	for _, entry := range entries {
		_, err := stmt.ExecContext(ctx,
			entry.UserID,
			entry.SubjectID,
			entry.Date,
			entry.ID,
			entry.LecturesTotal,
			entry.LecturesPresent,
			entry.CreatedAt,
		)
		if err != nil {
			if isForeignKeyViolation(err) {
				return repository.ErrForeignKeyViolation
			}
			return fmt.Errorf("failed to upsert batch entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit batch: %w", err)
	}
	return nil
}
