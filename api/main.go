package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"github.com/skylens/flight-search/backend/internal/catalog"
	"github.com/skylens/flight-search/backend/internal/config"
	"github.com/skylens/flight-search/backend/internal/logger"
	"github.com/skylens/flight-search/backend/internal/models"
	"github.com/skylens/flight-search/backend/internal/report"
	"github.com/skylens/flight-search/backend/internal/search"
	"github.com/skylens/flight-search/backend/internal/sources"
	"github.com/skylens/flight-search/backend/internal/validate"
)

func main() {
	log := logger.New("api")
	cfg, err := config.LoadAPI()
	if err != nil {
		log.Error("load config", slog.Any("err", err))
		os.Exit(1)
	}

	cat, err := buildCatalog(cfg, log)
	if err != nil {
		log.Error("load source catalog", slog.Any("err", err))
		os.Exit(1)
	}
	if len(cat) == 0 {
		log.Error("source catalog is empty, nothing to search")
		os.Exit(1)
	}
	log.Info("source catalog loaded", slog.Int("sources", len(cat)))

	validator := validate.New(validate.Config{
		PriceFloor:        cfg.PriceFloor,
		PriceCeiling:      cfg.PriceCeiling,
		PlaceholderPrices: cfg.PlaceholderPrices,
		FakeMarkers:       cfg.FakeMarkers,
		MaxHorizon:        cfg.MaxHorizon,
	})

	engine := search.NewEngine(cat, validator, search.Options{
		Concurrency:   cfg.Concurrency,
		SourceTimeout: cfg.SourceTimeout,
		Deadline:      cfg.Deadline,
	}, log)

	var publisher *report.Publisher
	if cfg.ReportTopic != "" {
		publisher = report.NewPublisher(cfg.KafkaBrokers, cfg.ReportTopic, log)
		defer publisher.Close()
		log.Info("report publishing enabled", slog.String("topic", cfg.ReportTopic))
	}

	srv := &server{log: log, catalog: cat, engine: engine, publisher: publisher}
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", srv.handleHealth)
	r.Get("/sources", srv.handleSources)
	r.Get("/flights/search", srv.handleSearch)

	httpServer := &http.Server{
		Addr:              cfg.BindAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Deadline + 15*time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	go func() {
		log.Info("api server starting", slog.String("addr", cfg.BindAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", slog.Any("err", err))
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", slog.Any("err", err))
	}
}

// buildCatalog loads the source catalog and attaches fetch capabilities.
// Only api-kind entries are queryable from this deployment; site scrapers
// run elsewhere and register through their own catalogs.
func buildCatalog(cfg *config.API, log *slog.Logger) (catalog.Catalog, error) {
	return catalog.Load(cfg.CatalogPath, func(e catalog.Entry) catalog.FetchFunc {
		if e.Kind != catalog.KindAPI || e.BaseURL == "" {
			return nil
		}

		client, err := sources.New(sources.Config{
			SourceID: e.ID,
			BaseURL:  e.BaseURL,
			APIKey:   apiKeyFor(e.ID),
			Timeout:  cfg.SourceTimeout,
		}, log)
		if err != nil {
			log.Warn("skipping source", slog.String("source", e.ID), slog.Any("err", err))
			return nil
		}

		return catalog.RateLimited(client.Fetch, rate.Limit(cfg.SourceRateLimit), cfg.SourceRateBurst)
	})
}

// apiKeyFor reads the per-source credential, e.g. SOURCE_API_KEY_AMADEUS for
// source id "amadeus". Sources without a key are queried anonymously.
func apiKeyFor(sourceID string) string {
	name := "SOURCE_API_KEY_" + strings.ToUpper(strings.ReplaceAll(sourceID, "-", "_"))
	return os.Getenv(name)
}

type server struct {
	log       *slog.Logger
	catalog   catalog.Catalog
	engine    *search.Engine
	publisher *report.Publisher
}

type errorResponse struct {
	Error    string                 `json:"error"`
	Outcomes []models.SourceOutcome `json:"outcomes,omitempty"`
	Rejected map[string]int         `json:"records_rejected,omitempty"`
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"sources": len(s.catalog),
	})
}

func (s *server) handleSources(w http.ResponseWriter, r *http.Request) {
	ids := make([]string, 0, len(s.catalog))
	for _, d := range s.catalog {
		ids = append(ids, d.ID)
	}

	counts := s.catalog.Counts()
	writeJSON(w, http.StatusOK, map[string]any{
		"total":         len(s.catalog),
		"airline_sites": counts[catalog.KindAirlineSite],
		"travel_sites":  counts[catalog.KindTravelSite],
		"apis":          counts[catalog.KindAPI],
		"sources":       ids,
	})
}

func (s *server) handleSearch(w http.ResponseWriter, r *http.Request) {
	req, err := parseSearchRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	result, err := s.engine.Search(r.Context(), req)

	var noData *search.NoRealDataError
	switch {
	case errors.Is(err, search.ErrInvalidRequest):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	case errors.As(err, &noData):
		s.publish(report.FromFailure(noData))
		writeJSON(w, http.StatusNotFound, errorResponse{
			Error:    noData.Error(),
			Outcomes: noData.Outcomes,
			Rejected: noData.Rejected,
		})
		return
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	s.publish(report.FromResult(result))
	writeJSON(w, http.StatusOK, result)
}

// publish sends a summary in the background. Report delivery is best-effort
// and must never slow down or fail a search response.
func (s *server) publish(summary report.Summary) {
	if s.publisher == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.publisher.Publish(ctx, summary); err != nil {
			s.log.Warn("publish search report", slog.Any("err", err))
		}
	}()
}

func parseSearchRequest(r *http.Request) (models.SearchRequest, error) {
	q := r.URL.Query()

	req := models.SearchRequest{
		Origin:      strings.TrimSpace(q.Get("origin")),
		Destination: strings.TrimSpace(q.Get("destination")),
		CabinClass:  strings.TrimSpace(q.Get("cabin")),
	}

	rawDate := strings.TrimSpace(q.Get("date"))
	if rawDate == "" {
		return req, errors.New("date query parameter is required (YYYY-MM-DD)")
	}
	date, err := time.Parse("2006-01-02", rawDate)
	if err != nil {
		return req, errors.New("date must be formatted YYYY-MM-DD")
	}
	req.Date = date

	if raw := q.Get("passengers"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return req, errors.New("passengers must be a positive integer")
		}
		req.Passengers = n
	}

	return req, nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
