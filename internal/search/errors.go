package search

import (
	"errors"
	"fmt"

	"github.com/skylens/flight-search/backend/internal/models"
)

// ErrInvalidRequest marks a search request rejected before any source was
// queried. Callers match it with errors.Is.
var ErrInvalidRequest = errors.New("invalid search request")

// NoRealDataError is the only hard failure a completed search can produce:
// every source failed, returned nothing, or returned records that did not
// survive validation. It carries the per-source outcomes so the caller can
// report which sources failed and why. Synthetic data is never substituted.
type NoRealDataError struct {
	// SearchID is the id the engine assigned to the failed search, so
	// failure reports and engine logs correlate.
	SearchID string
	Request  models.SearchRequest
	Outcomes []models.SourceOutcome
	Rejected map[string]int
}

func (e *NoRealDataError) Error() string {
	return fmt.Sprintf("no real flight data available for %s-%s on %s",
		e.Request.Origin, e.Request.Destination, e.Request.Date.Format("2006-01-02"))
}
