package report_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/skylens/flight-search/backend/internal/models"
	"github.com/skylens/flight-search/backend/internal/report"
	"github.com/skylens/flight-search/backend/internal/search"
)

func TestFromResult(t *testing.T) {
	res := &models.SearchResult{
		SearchID: "abc123",
		Request: models.SearchRequest{
			Origin:      "JFK",
			Destination: "LAX",
			Date:        time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC),
		},
		Flights: []models.CanonicalFlight{{FlightNumber: "AA100"}},
		Outcomes: []models.SourceOutcome{
			{SourceID: "a", Status: models.StatusOK, Records: 2},
			{SourceID: "b", Status: models.StatusNoData},
			{SourceID: "c", Status: models.StatusTimeout},
		},
		Metadata: models.SearchMetadata{
			SourcesQueried:  3,
			SourcesFailed:   1,
			RecordsRejected: map[string]int{"unknown_airline": 1},
		},
	}

	s := report.FromResult(res)
	require.Equal(t, "abc123", s.SearchID)
	require.Equal(t, "JFK", s.Origin)
	require.Equal(t, "LAX", s.Destination)
	require.Equal(t, "2026-10-14", s.Date)
	require.True(t, s.Succeeded)
	require.Equal(t, 1, s.Flights)
	require.Equal(t, 3, s.Queried)
	require.Equal(t, 1, s.Failed)
	require.False(t, s.Timestamp.IsZero())

	// Only failures appear in the failure list; ok and no-data do not.
	require.Len(t, s.Failures, 1)
	require.Equal(t, "c", s.Failures[0].SourceID)
	require.Equal(t, map[string]int{"unknown_airline": 1}, s.Rejected)
}

func TestFromFailure(t *testing.T) {
	failure := &search.NoRealDataError{
		SearchID: "def456",
		Request: models.SearchRequest{
			Origin:      "JFK",
			Destination: "LAX",
			Date:        time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC),
		},
		Outcomes: []models.SourceOutcome{
			{SourceID: "a", Status: models.StatusError, Detail: "boom"},
			{SourceID: "b", Status: models.StatusNoData},
		},
		Rejected: map[string]int{"fake_data_pattern": 2},
	}

	s := report.FromFailure(failure)
	require.Equal(t, "def456", s.SearchID)
	require.False(t, s.Succeeded)
	require.Zero(t, s.Flights)
	require.Equal(t, 2, s.Queried)
	require.Equal(t, 1, s.Failed)
	require.Len(t, s.Failures, 1)
	require.Equal(t, "a", s.Failures[0].SourceID)
	require.Equal(t, map[string]int{"fake_data_pattern": 2}, s.Rejected)
}
