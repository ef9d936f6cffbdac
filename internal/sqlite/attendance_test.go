package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/attendease/attendease/internal/domain/ledger"
	"github.com/attendease/attendease/internal/repository"
)

func newEntry(userID, subjectID, date string, total, present int) *ledger.Entry {
	return &ledger.Entry{
		ID:              uuid.NewString(),
		UserID:          userID,
		SubjectID:       subjectID,
		Date:            date,
		LecturesTotal:   total,
		LecturesPresent: present,
		CreatedAt:       time.Now(),
	}
}

func TestAttendanceUpsert_OverwritesSameKey(t *testing.T) {
	ctx := context.Background()
	db := NewTestDB(t)
	seedUser(t, db, "u1")
	seedSubject(t, db, "s1", "Math")

	repo := NewAttendanceRepository(db)

	require.NoError(t, repo.Upsert(ctx, newEntry("u1", "s1", "2026-08-27", 2, 2)))
	require.NoError(t, repo.Upsert(ctx, newEntry("u1", "s1", "2026-08-27", 3, 0)))

	got, err := repo.Get(ctx, "u1", "s1", "2026-08-27")
	require.NoError(t, err)
	require.Equal(t, 3, got.LecturesTotal)
	require.Equal(t, 0, got.LecturesPresent)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM attendance").Scan(&count))
	require.Equal(t, 1, count)
}

func TestAttendanceUpsert_UnknownSubjectViolatesFK(t *testing.T) {
	ctx := context.Background()
	db := NewTestDB(t)
	seedUser(t, db, "u1")

	repo := NewAttendanceRepository(db)
	err := repo.Upsert(ctx, newEntry("u1", "ghost", "2026-08-27", 1, 1))
	require.ErrorIs(t, err, repository.ErrForeignKeyViolation)
}

func TestAttendanceDelete(t *testing.T) {
	ctx := context.Background()
	db := NewTestDB(t)
	seedUser(t, db, "u1")
	seedSubject(t, db, "s1", "Math")

	repo := NewAttendanceRepository(db)
	require.NoError(t, repo.Upsert(ctx, newEntry("u1", "s1", "2026-08-27", 2, 1)))

	require.NoError(t, repo.Delete(ctx, "u1", "s1", "2026-08-27"))
	_, err := repo.Get(ctx, "u1", "s1", "2026-08-27")
	require.ErrorIs(t, err, repository.ErrNotFound)

	err = repo.Delete(ctx, "u1", "s1", "2026-08-27")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAttendanceQuery_Filters(t *testing.T) {
	ctx := context.Background()
	db := NewTestDB(t)
	seedUser(t, db, "u1")
	seedUser(t, db, "u2")
	seedSubject(t, db, "s1", "Math")
	seedSubject(t, db, "s2", "Physics")

	repo := NewAttendanceRepository(db)
	require.NoError(t, repo.Upsert(ctx, newEntry("u1", "s1", "2026-08-25", 2, 2)))
	require.NoError(t, repo.Upsert(ctx, newEntry("u1", "s1", "2026-08-27", 2, 1)))
	require.NoError(t, repo.Upsert(ctx, newEntry("u1", "s2", "2026-08-26", 1, 0)))
	require.NoError(t, repo.Upsert(ctx, newEntry("u2", "s1", "2026-08-27", 3, 3)))

	all, err := repo.Query(ctx, "u1", ledger.QueryOptions{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	// Newest date first.
	require.Equal(t, "2026-08-27", all[0].Date)
	require.Equal(t, "2026-08-25", all[2].Date)

	bySubject, err := repo.Query(ctx, "u1", ledger.QueryOptions{SubjectID: "s1"})
	require.NoError(t, err)
	require.Len(t, bySubject, 2)

	ranged, err := repo.Query(ctx, "u1", ledger.QueryOptions{From: "2026-08-26", To: "2026-08-26"})
	require.NoError(t, err)
	require.Len(t, ranged, 1)
	require.Equal(t, "s2", ranged[0].SubjectID)
}

func TestAttendanceApplyBatch_Commits(t *testing.T) {
	ctx := context.Background()
	db := NewTestDB(t)
	seedUser(t, db, "u1")
	seedSubject(t, db, "s1", "Math")
	seedSubject(t, db, "s2", "Physics")

	repo := NewAttendanceRepository(db)
	err := repo.ApplyBatch(ctx, []*ledger.Entry{
		newEntry("u1", "s1", "2026-08-27", 2, 2),
		newEntry("u1", "s2", "2026-08-27", 1, 0),
	})
	require.NoError(t, err)

	entries, err := repo.Query(ctx, "u1", ledger.QueryOptions{})
	require.NoError(t, err)
	require.Len(t, entries, 2)
}

func TestAttendanceApplyBatch_RollsBackOnFailure(t *testing.T) {
	ctx := context.Background()
	db := NewTestDB(t)
	seedUser(t, db, "u1")
	seedSubject(t, db, "s1", "Math")

	repo := NewAttendanceRepository(db)
	err := repo.ApplyBatch(ctx, []*ledger.Entry{
		newEntry("u1", "s1", "2026-08-27", 2, 2),
		newEntry("u1", "ghost", "2026-08-27", 1, 1),
	})
	require.ErrorIs(t, err, repository.ErrForeignKeyViolation)

	// The valid first entry must not survive the failed batch.
	entries, err := repo.Query(ctx, "u1", ledger.QueryOptions{})
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestAttendanceApplyBatch_OverwritesExistingKeys(t *testing.T) {
	ctx := context.Background()
	db := NewTestDB(t)
	seedUser(t, db, "u1")
	seedSubject(t, db, "s1", "Math")

	repo := NewAttendanceRepository(db)
	require.NoError(t, repo.Upsert(ctx, newEntry("u1", "s1", "2026-08-27", 2, 2)))

	err := repo.ApplyBatch(ctx, []*ledger.Entry{
		newEntry("u1", "s1", "2026-08-27", 2, 0),
	})
	require.NoError(t, err)

	got, err := repo.Get(ctx, "u1", "s1", "2026-08-27")
	require.NoError(t, err)
	require.Equal(t, 0, got.LecturesPresent)
}
