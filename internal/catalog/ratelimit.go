package catalog

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/skylens/flight-search/backend/internal/models"
)

// RateLimited decorates a fetch capability with a token-bucket limiter so a
// burst of searches cannot hammer one remote source. The wait is bounded by
// the caller's context; if the slot does not open before the per-source
// timeout the executor records a timeout outcome as usual.
func RateLimited(fetch FetchFunc, limit rate.Limit, burst int) FetchFunc {
	if limit <= 0 {
		return fetch
	}
	if burst < 1 {
		burst = 1
	}
	limiter := rate.NewLimiter(limit, burst)

	return func(ctx context.Context, req models.SearchRequest) ([]models.RawFlight, error) {
		if err := limiter.Wait(ctx); err != nil {
			return nil, err
		}
		return fetch(ctx, req)
	}
}
