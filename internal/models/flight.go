package models

import "time"

// Price is an offer price in a single currency.
type Price struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// SearchRequest describes one flight search.
type SearchRequest struct {
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	Date        time.Time `json:"date"`
	CabinClass  string    `json:"cabin_class,omitempty"`
	Passengers  int       `json:"passengers,omitempty"`
}

// RawFlight is one unvalidated record as reported by a single source.
// It lives only for the duration of one search.
type RawFlight struct {
	SourceID     string    `json:"source_id"`
	Airline      string    `json:"airline"`
	AirlineName  string    `json:"airline_name,omitempty"`
	FlightNumber string    `json:"flight_number"`
	Origin       string    `json:"origin"`
	Destination  string    `json:"destination"`
	Departure    time.Time `json:"departure"`
	Arrival      time.Time `json:"arrival"`
	Price        Price     `json:"price"`
	BookingURL   string    `json:"booking_url,omitempty"`
}

// CanonicalFlight is the merged view of one real-world flight across every
// source that reported it. The price is the cheapest offer seen.
type CanonicalFlight struct {
	Airline      string    `json:"airline"`
	FlightNumber string    `json:"flight_number"`
	Origin       string    `json:"origin"`
	Destination  string    `json:"destination"`
	Departure    time.Time `json:"departure"`
	Arrival      time.Time `json:"arrival"`
	Price        Price     `json:"price"`
	BookingURL   string    `json:"booking_url,omitempty"`
	Sources      []string  `json:"sources"`
}

// SourceStatus classifies how one source resolved during a search.
type SourceStatus string

const (
	StatusOK      SourceStatus = "ok"
	StatusTimeout SourceStatus = "timeout"
	StatusError   SourceStatus = "error"
	StatusNoData  SourceStatus = "no-data"
)

// SourceOutcome records how a single source behaved during one search.
type SourceOutcome struct {
	SourceID string        `json:"source_id"`
	Status   SourceStatus  `json:"status"`
	Detail   string        `json:"detail,omitempty"`
	Records  int           `json:"records"`
	Elapsed  time.Duration `json:"elapsed"`
}

// SearchMetadata carries search-wide diagnostics.
type SearchMetadata struct {
	SourcesQueried   int            `json:"sources_queried"`
	SourcesSucceeded int            `json:"sources_succeeded"`
	SourcesFailed    int            `json:"sources_failed"`
	RecordsFetched   int            `json:"records_fetched"`
	RecordsRejected  map[string]int `json:"records_rejected,omitempty"`
	ElapsedMs        int64          `json:"elapsed_ms"`
}

// SearchResult is the terminal artifact of one successful search.
// It is never persisted; every search starts from scratch.
type SearchResult struct {
	SearchID string            `json:"search_id"`
	Request  SearchRequest     `json:"request"`
	Flights  []CanonicalFlight `json:"flights"`
	Outcomes []SourceOutcome   `json:"outcomes"`
	Metadata SearchMetadata    `json:"metadata"`
}
