// Package sources builds fetch capabilities for API-kind catalog entries.
// Airline-site and travel-site scrapers live outside this repository and are
// injected as ready-made capabilities; this client covers the sources that
// expose a JSON search endpoint.
package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/skylens/flight-search/backend/internal/models"
)

// Config describes one JSON API source.
type Config struct {
	SourceID string
	BaseURL  string
	APIKey   string
	// Timeout bounds a single request at the transport level. The search
	// engine applies its own per-source deadline on top.
	Timeout time.Duration
}

// Client queries one flight-data API. Its Fetch method satisfies the
// catalog fetch capability signature.
type Client struct {
	http     *http.Client
	baseURL  string
	apiKey   string
	sourceID string
	log      *slog.Logger
}

// New instantiates a client for one API source.
func New(cfg Config, logger *slog.Logger) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("source %s: invalid base url %q", cfg.SourceID, cfg.BaseURL)
	}
	if cfg.SourceID == "" {
		return nil, fmt.Errorf("source with base url %q has no id", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Client{
		http:     &http.Client{Timeout: timeout},
		baseURL:  strings.TrimRight(base.String(), "/"),
		apiKey:   cfg.APIKey,
		sourceID: cfg.SourceID,
		log:      logger.With("source", cfg.SourceID),
	}, nil
}

// flightPayload is the wire shape of one flight in a search response.
type flightPayload struct {
	AirlineCode   string  `json:"airline_code"`
	AirlineName   string  `json:"airline_name"`
	FlightNumber  string  `json:"flight_number"`
	Origin        string  `json:"origin"`
	Destination   string  `json:"destination"`
	DepartureTime string  `json:"departure_time"`
	ArrivalTime   string  `json:"arrival_time"`
	Price         float64 `json:"price"`
	Currency      string  `json:"currency"`
	BookingURL    string  `json:"booking_url"`
}

// Fetch queries the source for one search and maps the response into raw
// records. It does not validate: authenticity checks are the pipeline's job.
func (c *Client) Fetch(ctx context.Context, req models.SearchRequest) ([]models.RawFlight, error) {
	q := url.Values{}
	q.Set("from", strings.ToUpper(req.Origin))
	q.Set("to", strings.ToUpper(req.Destination))
	q.Set("date", req.Date.Format("2006-01-02"))
	if req.Passengers > 0 {
		q.Set("adults", fmt.Sprintf("%d", req.Passengers))
	}
	if req.CabinClass != "" {
		q.Set("cabin", req.CabinClass)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/flights?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("X-Api-Key", c.apiKey)
	}

	res, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", c.sourceID, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return nil, fmt.Errorf("query %s: status %d: %s", c.sourceID, res.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed struct {
		Flights []flightPayload `json:"flights"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", c.sourceID, err)
	}

	records := make([]models.RawFlight, 0, len(parsed.Flights))
	for _, f := range parsed.Flights {
		records = append(records, models.RawFlight{
			SourceID:     c.sourceID,
			Airline:      f.AirlineCode,
			AirlineName:  f.AirlineName,
			FlightNumber: f.FlightNumber,
			Origin:       f.Origin,
			Destination:  f.Destination,
			Departure:    parseTimestamp(f.DepartureTime),
			Arrival:      parseTimestamp(f.ArrivalTime),
			Price:        models.Price{Amount: f.Price, Currency: f.Currency},
			BookingURL:   f.BookingURL,
		})
	}

	c.log.Debug("source responded", slog.Int("records", len(records)))
	return records, nil
}

// parseTimestamp accepts the timestamp formats the catalog's APIs have been
// seen to emit. An unparseable value yields the zero time; the validation
// pipeline rejects the record downstream.
func parseTimestamp(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}

	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04",
	}

	for _, f := range formats {
		if ts, err := time.Parse(f, raw); err == nil {
			return ts
		}
	}

	return time.Time{}
}
