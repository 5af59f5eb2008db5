package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/skylens/flight-search/backend/internal/catalog"
	"github.com/skylens/flight-search/backend/internal/models"
)

type fetchResult struct {
	records []models.RawFlight
	err     error
}

// querySource invokes one source's fetch capability under the per-source
// timeout and classifies the result. The fetch runs in its own goroutine so
// a capability that ignores its context cannot hold up the search past the
// bound; an abandoned fetch finishes into a buffered channel and is dropped.
// Errors and panics become outcomes, never program faults.
func (e *Engine) querySource(ctx context.Context, d catalog.Descriptor, req models.SearchRequest) ([]models.RawFlight, models.SourceOutcome) {
	start := time.Now()

	qctx, cancel := context.WithTimeout(ctx, e.opts.SourceTimeout)
	defer cancel()

	ch := make(chan fetchResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- fetchResult{err: fmt.Errorf("source panicked: %v", r)}
			}
		}()
		records, err := d.Fetch(qctx, req)
		ch <- fetchResult{records: records, err: err}
	}()

	outcome := models.SourceOutcome{SourceID: d.ID}

	select {
	case <-qctx.Done():
		outcome.Status = models.StatusTimeout
		outcome.Elapsed = time.Since(start)
		return nil, outcome

	case res := <-ch:
		outcome.Elapsed = time.Since(start)
		switch {
		case errors.Is(res.err, context.DeadlineExceeded), errors.Is(res.err, context.Canceled):
			outcome.Status = models.StatusTimeout
		case res.err != nil:
			outcome.Status = models.StatusError
			outcome.Detail = res.err.Error()
		case len(res.records) == 0:
			outcome.Status = models.StatusNoData
		default:
			outcome.Status = models.StatusOK
			outcome.Records = len(res.records)
			return res.records, outcome
		}
		return nil, outcome
	}
}
