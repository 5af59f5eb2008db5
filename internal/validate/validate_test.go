package validate_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/skylens/flight-search/backend/internal/models"
	"github.com/skylens/flight-search/backend/internal/validate"
)

func realFlight() models.RawFlight {
	return models.RawFlight{
		SourceID:     "amadeus",
		Airline:      "AA",
		AirlineName:  "American Airlines",
		FlightNumber: "AA100",
		Origin:       "JFK",
		Destination:  "LAX",
		Departure:    time.Now().Add(30 * 24 * time.Hour),
		Arrival:      time.Now().Add(30*24*time.Hour + 6*time.Hour),
		Price:        models.Price{Amount: 245.50, Currency: "USD"},
		BookingURL:   "https://www.aa.com/booking/100",
	}
}

func TestCheckAcceptsRealFlight(t *testing.T) {
	v := validate.New(validate.DefaultConfig())
	verdict := v.Check(realFlight())
	require.True(t, verdict.Accepted)
	require.Empty(t, verdict.Reason)
}

func TestCheckRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.RawFlight)
		want   validate.Reason
	}{
		{
			name:   "unknown airline",
			mutate: func(f *models.RawFlight) { f.Airline = "XX" },
			want:   validate.ReasonUnknownAirline,
		},
		{
			name:   "unknown origin",
			mutate: func(f *models.RawFlight) { f.Origin = "ZZZ" },
			want:   validate.ReasonUnknownAirport,
		},
		{
			name:   "unknown destination",
			mutate: func(f *models.RawFlight) { f.Destination = "QQQ" },
			want:   validate.ReasonUnknownAirport,
		},
		{
			name:   "five digit flight number",
			mutate: func(f *models.RawFlight) { f.FlightNumber = "AA12345" },
			want:   validate.ReasonMalformedFlightNumber,
		},
		{
			name:   "empty flight number",
			mutate: func(f *models.RawFlight) { f.FlightNumber = "" },
			want:   validate.ReasonMalformedFlightNumber,
		},
		{
			name:   "price below floor",
			mutate: func(f *models.RawFlight) { f.Price.Amount = 12 },
			want:   validate.ReasonImplausiblePrice,
		},
		{
			name:   "price above ceiling",
			mutate: func(f *models.RawFlight) { f.Price.Amount = 99999 },
			want:   validate.ReasonImplausiblePrice,
		},
		{
			name:   "placeholder price",
			mutate: func(f *models.RawFlight) { f.Price.Amount = 999.99 },
			want:   validate.ReasonImplausiblePrice,
		},
		{
			name:   "repeated digit price",
			mutate: func(f *models.RawFlight) { f.Price.Amount = 111.11 },
			want:   validate.ReasonImplausiblePrice,
		},
		{
			name:   "departure in the past",
			mutate: func(f *models.RawFlight) { f.Departure = time.Now().Add(-24 * time.Hour) },
			want:   validate.ReasonInvalidDate,
		},
		{
			name:   "departure beyond horizon",
			mutate: func(f *models.RawFlight) { f.Departure = time.Now().Add(2 * 365 * 24 * time.Hour) },
			want:   validate.ReasonInvalidDate,
		},
		{
			name:   "zero departure",
			mutate: func(f *models.RawFlight) { f.Departure = time.Time{} },
			want:   validate.ReasonInvalidDate,
		},
		{
			name:   "fake marker in airline name",
			mutate: func(f *models.RawFlight) { f.AirlineName = "Test Airways" },
			want:   validate.ReasonFakeDataPattern,
		},
		{
			name:   "fake marker in booking url",
			mutate: func(f *models.RawFlight) { f.BookingURL = "https://example.com/book" },
			want:   validate.ReasonFakeDataPattern,
		},
	}

	v := validate.New(validate.DefaultConfig())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := realFlight()
			tt.mutate(&f)
			verdict := v.Check(f)
			require.False(t, verdict.Accepted)
			require.Equal(t, tt.want, verdict.Reason)
		})
	}
}

func TestCheckReportsFirstFailureOnly(t *testing.T) {
	// A record failing multiple rules carries the earliest rule's reason.
	f := realFlight()
	f.Airline = "XX"
	f.Price.Amount = 1

	v := validate.New(validate.DefaultConfig())
	verdict := v.Check(f)
	require.Equal(t, validate.ReasonUnknownAirline, verdict.Reason)
}

func TestFlightNumberPrefixTolerated(t *testing.T) {
	v := validate.New(validate.DefaultConfig())

	for _, num := range []string{"100", "AA100", "aa100", "4801A"} {
		f := realFlight()
		f.FlightNumber = num
		require.True(t, v.Check(f).Accepted, "flight number %q", num)
	}
}

func TestNewFallsBackToDefaultSets(t *testing.T) {
	v := validate.New(validate.Config{
		PriceFloor:   50,
		PriceCeiling: 10000,
	})

	require.True(t, v.Check(realFlight()).Accepted)

	f := realFlight()
	f.Airline = "XX"
	require.False(t, v.Check(f).Accepted)
}

func TestCustomMarkerList(t *testing.T) {
	cfg := validate.DefaultConfig()
	cfg.FakeMarkers = []string{"bogus"}
	v := validate.New(cfg)

	f := realFlight()
	f.AirlineName = "Bogus Air"
	require.Equal(t, validate.ReasonFakeDataPattern, v.Check(f).Reason)

	// "test" is no longer a marker under the custom list.
	f = realFlight()
	f.AirlineName = "Test Airways"
	require.True(t, v.Check(f).Accepted)
}
