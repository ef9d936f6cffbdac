package pendingaction_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/attendease/attendease/internal/pendingaction"
)

func TestTake_ReturnsAndRemoves(t *testing.T) {
	store := pendingaction.NewStore[string](5 * time.Minute)

	store.Put("sess1", "payload")

	got, ok := store.Take("sess1")
	require.True(t, ok)
	require.Equal(t, "payload", got)

	_, ok = store.Take("sess1")
	require.False(t, ok)
}

func TestTake_MissingSession(t *testing.T) {
	store := pendingaction.NewStore[string](5 * time.Minute)

	_, ok := store.Take("nope")
	require.False(t, ok)
}

func TestPut_ReplacesPriorEntry(t *testing.T) {
	store := pendingaction.NewStore[string](5 * time.Minute)

	store.Put("sess1", "first")
	store.Put("sess1", "second")

	got, ok := store.Take("sess1")
	require.True(t, ok)
	require.Equal(t, "second", got)
}

func TestTake_ExpiredEntryIsAbsent(t *testing.T) {
	store := pendingaction.NewStore[string](5 * time.Minute)

	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	store.SetClock(func() time.Time { return now })
	store.Put("sess1", "payload")

	now = now.Add(5*time.Minute + time.Second)
	_, ok := store.Take("sess1")
	require.False(t, ok)

	// A second take after expiry stays absent.
	_, ok = store.Take("sess1")
	require.False(t, ok)
}

func TestClear_RemovesEntry(t *testing.T) {
	store := pendingaction.NewStore[string](5 * time.Minute)

	store.Put("sess1", "payload")
	store.Clear("sess1")

	_, ok := store.Take("sess1")
	require.False(t, ok)
}

func TestClear_MissingSessionIsNoop(t *testing.T) {
	store := pendingaction.NewStore[string](5 * time.Minute)
	store.Clear("nope")
}

func TestSessionsAreIsolated(t *testing.T) {
	store := pendingaction.NewStore[int](5 * time.Minute)

	store.Put("a", 1)
	store.Put("b", 2)

	got, ok := store.Take("a")
	require.True(t, ok)
	require.Equal(t, 1, got)

	got, ok = store.Take("b")
	require.True(t, ok)
	require.Equal(t, 2, got)
}
