package search

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/skylens/flight-search/backend/internal/models"
)

// aggregate fans one executor invocation out per catalog entry, at most
// Concurrency at a time. Partial failure is the normal case: every source
// resolves to an outcome and the slow or broken ones simply contribute no
// records. Outcomes land in slots indexed by catalog position, so the
// returned order follows the catalog and never the arrival order of
// concurrent responses.
func (e *Engine) aggregate(ctx context.Context, req models.SearchRequest) ([]models.RawFlight, []models.SourceOutcome) {
	outcomes := make([]models.SourceOutcome, len(e.catalog))

	var mu sync.Mutex
	var records []models.RawFlight

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.Concurrency)

	for i, d := range e.catalog {
		i, d := i, d
		g.Go(func() error {
			recs, outcome := e.querySource(gctx, d, req)
			outcomes[i] = outcome
			if len(recs) > 0 {
				mu.Lock()
				records = append(records, recs...)
				mu.Unlock()
			}
			return nil
		})
	}

	// Workers never return errors; Wait is a join.
	_ = g.Wait()

	return records, outcomes
}
