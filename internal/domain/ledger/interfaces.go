package ledger

import "context"

// Repository provides persistence for attendance entries. Upsert overwrites
// any existing entry for the same (user, subject, date) key; ApplyBatch runs
// every upsert inside a single transaction.
type Repository interface {
	Upsert(ctx context.Context, entry *Entry) error
	Delete(ctx context.Context, userID, subjectID, date string) error
	Get(ctx context.Context, userID, subjectID, date string) (*Entry, error)
	Query(ctx context.Context, userID string, opts QueryOptions) ([]Entry, error)
	ApplyBatch(ctx context.Context, entries []*Entry) error
}
