package search

import (
	"sort"

	"github.com/skylens/flight-search/backend/internal/models"
)

// sortFlights orders canonical flights by ascending price, breaking ties by
// earlier departure and then by source-id order. This sort is the only thing
// that determines result ordering; nothing upstream may leak arrival order.
func sortFlights(flights []models.CanonicalFlight) {
	sort.SliceStable(flights, func(i, j int) bool {
		a, b := flights[i], flights[j]
		if a.Price.Amount != b.Price.Amount {
			return a.Price.Amount < b.Price.Amount
		}
		if !a.Departure.Equal(b.Departure) {
			return a.Departure.Before(b.Departure)
		}
		return firstSource(a) < firstSource(b)
	})
}

func firstSource(f models.CanonicalFlight) string {
	if len(f.Sources) == 0 {
		return ""
	}
	return f.Sources[0]
}

// summarizeOutcomes tallies outcome statuses for the result metadata.
func summarizeOutcomes(outcomes []models.SourceOutcome) (succeeded, failed int) {
	for _, o := range outcomes {
		switch o.Status {
		case models.StatusOK, models.StatusNoData:
			succeeded++
		default:
			failed++
		}
	}
	return succeeded, failed
}
