// Package search implements the multi-source flight search engine: bounded
// concurrent fan-out over the source catalog, per-record authenticity
// validation, fingerprint-based merge, and result assembly under the
// no-fake-data policy.
package search

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/skylens/flight-search/backend/internal/catalog"
	"github.com/skylens/flight-search/backend/internal/models"
	"github.com/skylens/flight-search/backend/internal/validate"
)

// Options bound one search.
type Options struct {
	// Concurrency caps simultaneous source queries. The catalog holds 149+
	// sources; an unbounded fan-out would overwhelm both the process and
	// the remotes.
	Concurrency int
	// SourceTimeout bounds each individual source query.
	SourceTimeout time.Duration
	// Deadline bounds the whole search; zero means no overall deadline.
	// When it elapses, in-flight queries are abandoned as timeouts and
	// assembly proceeds with whatever validated so far.
	Deadline time.Duration
}

func (o Options) withDefaults() Options {
	if o.Concurrency <= 0 {
		o.Concurrency = 10
	}
	if o.SourceTimeout <= 0 {
		o.SourceTimeout = 10 * time.Second
	}
	return o
}

// Engine runs searches against a fixed catalog. Safe for concurrent use;
// searches share nothing but the immutable catalog and validator.
type Engine struct {
	catalog   catalog.Catalog
	validator *validate.Validator
	opts      Options
	log       *slog.Logger
}

// NewEngine assembles an engine. The validator embodies the no-fake-data
// policy; there is no switch to turn it off.
func NewEngine(cat catalog.Catalog, v *validate.Validator, opts Options, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Engine{
		catalog:   cat,
		validator: v,
		opts:      opts.withDefaults(),
		log:       logger,
	}
}

var iataCodeRe = regexp.MustCompile(`^[A-Z]{3}$`)

// Search runs one complete search. It returns ErrInvalidRequest before any
// source is queried for a malformed request, a *NoRealDataError when nothing
// real survived, and otherwise a result whose every flight is backed by at
// least one validated record from a real source.
func (e *Engine) Search(ctx context.Context, req models.SearchRequest) (*models.SearchResult, error) {
	start := time.Now()

	req.Origin = strings.ToUpper(strings.TrimSpace(req.Origin))
	req.Destination = strings.ToUpper(strings.TrimSpace(req.Destination))
	if err := checkRequest(req, start); err != nil {
		return nil, err
	}

	searchID := uuid.NewString()
	log := e.log.With(
		slog.String("search_id", searchID),
		slog.String("route", req.Origin+"-"+req.Destination),
	)

	if e.opts.Deadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.opts.Deadline)
		defer cancel()
	}

	records, outcomes := e.aggregate(ctx, req)

	rejected := make(map[string]int)
	accepted := records[:0:0]
	for _, rec := range records {
		verdict := e.validator.Check(rec)
		if verdict.Accepted {
			accepted = append(accepted, rec)
			continue
		}
		rejected[string(verdict.Reason)]++
		log.Debug("record rejected",
			slog.String("source", rec.SourceID),
			slog.String("flight", rec.FlightNumber),
			slog.String("reason", string(verdict.Reason)),
		)
	}

	flights := mergeFlights(accepted)
	if len(flights) == 0 {
		log.Warn("no real data survived",
			slog.Int("fetched", len(records)),
			slog.Int("sources", len(e.catalog)),
		)
		return nil, &NoRealDataError{SearchID: searchID, Request: req, Outcomes: outcomes, Rejected: rejected}
	}

	sortFlights(flights)
	succeeded, failed := summarizeOutcomes(outcomes)

	log.Info("search completed",
		slog.Int("flights", len(flights)),
		slog.Int("sources_ok", succeeded),
		slog.Int("sources_failed", failed),
		slog.Duration("elapsed", time.Since(start)),
	)

	return &models.SearchResult{
		SearchID: searchID,
		Request:  req,
		Flights:  flights,
		Outcomes: outcomes,
		Metadata: models.SearchMetadata{
			SourcesQueried:   len(e.catalog),
			SourcesSucceeded: succeeded,
			SourcesFailed:    failed,
			RecordsFetched:   len(records),
			RecordsRejected:  rejected,
			ElapsedMs:        time.Since(start).Milliseconds(),
		},
	}, nil
}

// checkRequest rejects malformed requests before any source query.
func checkRequest(req models.SearchRequest, now time.Time) error {
	if !iataCodeRe.MatchString(req.Origin) {
		return fmt.Errorf("%w: origin %q is not an IATA airport code", ErrInvalidRequest, req.Origin)
	}
	if !iataCodeRe.MatchString(req.Destination) {
		return fmt.Errorf("%w: destination %q is not an IATA airport code", ErrInvalidRequest, req.Destination)
	}
	if req.Origin == req.Destination {
		return fmt.Errorf("%w: origin and destination are identical", ErrInvalidRequest)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: travel date missing", ErrInvalidRequest)
	}
	// Calendar dates compare in UTC regardless of the host timezone; the
	// request date arrives as a UTC midnight.
	nowUTC := now.UTC()
	today := time.Date(nowUTC.Year(), nowUTC.Month(), nowUTC.Day(), 0, 0, 0, 0, time.UTC)
	if req.Date.UTC().Before(today) {
		return fmt.Errorf("%w: travel date %s is in the past", ErrInvalidRequest, req.Date.Format("2006-01-02"))
	}
	return nil
}
