package dedupe_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/skylens/flight-search/backend/internal/dedupe"
)

func TestObserveFirstAndRepeat(t *testing.T) {
	tracker := dedupe.NewTracker(10, time.Minute)
	require.True(t, tracker.Observe("alpha"))
	require.False(t, tracker.Observe("alpha"))
	require.True(t, tracker.Observe("beta"))
}

func TestObserveTTLExpiry(t *testing.T) {
	tracker := dedupe.NewTracker(10, 20*time.Millisecond)
	require.True(t, tracker.Observe("alpha"))
	time.Sleep(25 * time.Millisecond)
	require.True(t, tracker.Observe("alpha"))
}

func TestObserveCapacityEvictsOldest(t *testing.T) {
	tracker := dedupe.NewTracker(1, time.Minute)
	require.True(t, tracker.Observe("first"))
	require.True(t, tracker.Observe("second"))

	// "first" was evicted to make room, so it reads as new again.
	require.True(t, tracker.Observe("first"))
	require.False(t, tracker.Observe("first"))
}
