package assistant

import (
	"context"

	"github.com/attendease/attendease/internal/domain/ledger"
	"github.com/attendease/attendease/internal/domain/stats"
	"github.com/attendease/attendease/internal/domain/subject"
)

// Subjects resolves the fixed subject set during confirmation.
type Subjects interface {
	List(ctx context.Context) ([]subject.Subject, error)
}

// Ledger applies a confirmed batch atomically.
type Ledger interface {
	ApplyBatch(ctx context.Context, userID string, ups []ledger.Upsert) (int, error)
}

// Stats builds the attendance context handed to the oracle.
type Stats interface {
	Dashboard(ctx context.Context, userID string) (*stats.Dashboard, error)
}
