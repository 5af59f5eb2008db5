package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/skylens/flight-search/backend/internal/dedupe"
	"github.com/skylens/flight-search/backend/internal/models"
	"github.com/skylens/flight-search/backend/internal/report"
)

func TestProcessReport(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	tracker := dedupe.NewTracker(100, time.Hour)

	summary := report.Summary{
		SearchID:    "f6c9d7e2",
		Origin:      "JFK",
		Destination: "LAX",
		Date:        "2026-10-14",
		Succeeded:   false,
		Queried:     3,
		Failed:      2,
		Failures: []models.SourceOutcome{
			{SourceID: "slow", Status: models.StatusTimeout},
			{SourceID: "broken", Status: models.StatusError, Detail: "connection refused"},
		},
		Rejected:  map[string]int{"fake_data_pattern": 4},
		Timestamp: time.Now().UTC(),
	}
	data, err := json.Marshal(summary)
	require.NoError(t, err)

	require.NoError(t, processReport(log, tracker, data))

	// Redelivery of the same summary is absorbed, not an error.
	require.NoError(t, processReport(log, tracker, data))
}

func TestProcessReportRejectsMalformed(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	tracker := dedupe.NewTracker(100, time.Hour)

	require.Error(t, processReport(log, tracker, []byte(`not json`)))
	require.Error(t, processReport(log, tracker, []byte(`{"origin": "JFK"}`)))
}
