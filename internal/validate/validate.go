// Package validate decides whether a raw flight record is real. Records from
// any source pass through the same ordered rule pipeline; the first failing
// rule rejects the record with exactly one reason. Rejection is a diagnostic,
// never a fault.
package validate

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/skylens/flight-search/backend/internal/iata"
	"github.com/skylens/flight-search/backend/internal/models"
)

// Reason classifies why a record was rejected.
type Reason string

const (
	ReasonUnknownAirline        Reason = "unknown_airline"
	ReasonUnknownAirport        Reason = "unknown_airport"
	ReasonMalformedFlightNumber Reason = "malformed_flight_number"
	ReasonImplausiblePrice      Reason = "implausible_price"
	ReasonInvalidDate           Reason = "invalid_date"
	ReasonFakeDataPattern       Reason = "fake_data_pattern"
)

// Verdict is the outcome of validating one record.
type Verdict struct {
	Accepted bool
	Reason   Reason
}

// Config carries the reference sets and thresholds the rules run against.
// The numeric bounds and marker lists are deployment configuration, not
// constants; DefaultConfig gives the values the sources have historically
// needed.
type Config struct {
	Airlines iata.Set
	Airports iata.Set

	// PriceFloor and PriceCeiling bound the realistic fare band.
	PriceFloor   float64
	PriceCeiling float64
	// PlaceholderPrices are exact amounts known to be emitted by fake
	// generators (matched within one cent).
	PlaceholderPrices []float64

	// FakeMarkers are case-insensitive substrings whose presence in the
	// airline name, flight number or booking URL marks a record as fake.
	FakeMarkers []string

	// MaxHorizon is how far in the future a departure may plausibly be.
	MaxHorizon time.Duration
}

// DefaultConfig returns the baseline validation thresholds.
func DefaultConfig() Config {
	return Config{
		Airlines:          iata.Airlines(),
		Airports:          iata.Airports(),
		PriceFloor:        50,
		PriceCeiling:      10000,
		PlaceholderPrices: []float64{999.99, 1000.00, 123.45, 100.00},
		FakeMarkers: []string{
			"test", "fake", "dummy", "example", "sample", "mock",
			"generated", "placeholder", "demo", "xxx", "yyy",
		},
		MaxHorizon: 365 * 24 * time.Hour,
	}
}

var flightNumberRe = regexp.MustCompile(`^[0-9]{1,4}[A-Z]?$`)

// Validator applies the authenticity rules. Stateless and safe for
// concurrent use.
type Validator struct {
	cfg     Config
	markers []string
	now     func() time.Time
}

// New builds a Validator from cfg. Empty reference sets fall back to the
// defaults so a zero-value config section cannot accept everything.
func New(cfg Config) *Validator {
	if len(cfg.Airlines) == 0 {
		cfg.Airlines = iata.Airlines()
	}
	if len(cfg.Airports) == 0 {
		cfg.Airports = iata.Airports()
	}
	if cfg.MaxHorizon <= 0 {
		cfg.MaxHorizon = 365 * 24 * time.Hour
	}

	markers := make([]string, 0, len(cfg.FakeMarkers))
	for _, m := range cfg.FakeMarkers {
		m = strings.ToLower(strings.TrimSpace(m))
		if m != "" {
			markers = append(markers, m)
		}
	}

	return &Validator{cfg: cfg, markers: markers, now: time.Now}
}

// Check runs the rule pipeline over one record. Rules short-circuit: the
// verdict carries the first failure only. Order matters for diagnostic
// specificity, not correctness.
func (v *Validator) Check(f models.RawFlight) Verdict {
	if !v.cfg.Airlines.Has(f.Airline) {
		return rejected(ReasonUnknownAirline)
	}
	if !v.cfg.Airports.Has(f.Origin) || !v.cfg.Airports.Has(f.Destination) {
		return rejected(ReasonUnknownAirport)
	}
	if !v.validFlightNumber(f) {
		return rejected(ReasonMalformedFlightNumber)
	}
	if !v.plausiblePrice(f.Price.Amount) {
		return rejected(ReasonImplausiblePrice)
	}
	if !v.validDeparture(f.Departure) {
		return rejected(ReasonInvalidDate)
	}
	if v.containsFakeMarker(f) {
		return rejected(ReasonFakeDataPattern)
	}
	return Verdict{Accepted: true}
}

func rejected(r Reason) Verdict {
	return Verdict{Reason: r}
}

// validFlightNumber accepts 1-4 digits with an optional single trailing
// letter. A duplicated airline-code prefix ("AA100" for airline AA) is
// tolerated and stripped before matching.
func (v *Validator) validFlightNumber(f models.RawFlight) bool {
	num := strings.ToUpper(strings.TrimSpace(f.FlightNumber))
	if airline := strings.ToUpper(strings.TrimSpace(f.Airline)); airline != "" {
		num = strings.TrimPrefix(num, airline)
	}
	return flightNumberRe.MatchString(num)
}

func (v *Validator) plausiblePrice(amount float64) bool {
	if amount < v.cfg.PriceFloor || amount > v.cfg.PriceCeiling {
		return false
	}
	for _, p := range v.cfg.PlaceholderPrices {
		if math.Abs(amount-p) < 0.01 {
			return false
		}
	}
	return !repeatedDigitPrice(amount)
}

// repeatedDigitPrice catches generator patterns like 111.11 or 222.22.
func repeatedDigitPrice(amount float64) bool {
	s := strconv.FormatFloat(amount, 'f', 2, 64)
	digits := strings.ReplaceAll(s, ".", "")
	if len(digits) != 5 {
		return false
	}
	for i := 1; i < len(digits); i++ {
		if digits[i] != digits[0] {
			return false
		}
	}
	return true
}

func (v *Validator) validDeparture(dep time.Time) bool {
	if dep.IsZero() {
		return false
	}
	now := v.now()
	return dep.After(now) && !dep.After(now.Add(v.cfg.MaxHorizon))
}

func (v *Validator) containsFakeMarker(f models.RawFlight) bool {
	fields := []string{
		strings.ToLower(f.AirlineName),
		strings.ToLower(f.FlightNumber),
		strings.ToLower(f.BookingURL),
	}
	for _, field := range fields {
		if field == "" {
			continue
		}
		for _, m := range v.markers {
			if strings.Contains(field, m) {
				return true
			}
		}
	}
	return false
}
