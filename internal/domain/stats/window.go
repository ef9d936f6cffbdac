package stats

import (
	"time"

	"github.com/attendease/attendease/internal/domain/ledger"
)

// WeeklyWindow returns the 7 days ending yesterday, inclusive. Report
// periods are anchored on whole past days so the same calendar window is
// produced no matter what time of day the report runs.
func WeeklyWindow(now time.Time) Window {
	end := now.AddDate(0, 0, -1)
	start := end.AddDate(0, 0, -6)
	return Window{
		From: start.Format(ledger.DateLayout),
		To:   end.Format(ledger.DateLayout),
	}
}
