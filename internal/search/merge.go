package search

import (
	"sort"

	"github.com/skylens/flight-search/backend/internal/fingerprint"
	"github.com/skylens/flight-search/backend/internal/models"
)

// mergeGroup accumulates the records sharing one fingerprint.
type mergeGroup struct {
	rep      models.RawFlight
	minPrice models.Price
	sources  map[string]struct{}
}

// mergeFlights collapses validated records into one canonical flight per
// fingerprint. The canonical price is the minimum across contributors (show
// the cheapest real offer); the booking link comes from the representative
// record, chosen as the earliest departure with ties broken by source id.
// Every choice is made by comparator, never by arrival position, so any
// permutation of the input yields the same canonical set.
func mergeFlights(records []models.RawFlight) []models.CanonicalFlight {
	groups := make(map[fingerprint.Fingerprint]*mergeGroup)

	for _, rec := range records {
		fp := fingerprint.Of(rec)
		g, ok := groups[fp]
		if !ok {
			groups[fp] = &mergeGroup{
				rep:      rec,
				minPrice: rec.Price,
				sources:  map[string]struct{}{rec.SourceID: {}},
			}
			continue
		}

		g.sources[rec.SourceID] = struct{}{}
		if rec.Price.Amount < g.minPrice.Amount {
			g.minPrice = rec.Price
		}
		if earlierRecord(rec, g.rep) {
			g.rep = rec
		}
	}

	flights := make([]models.CanonicalFlight, 0, len(groups))
	for fp, g := range groups {
		sources := make([]string, 0, len(g.sources))
		for id := range g.sources {
			sources = append(sources, id)
		}
		sort.Strings(sources)

		flights = append(flights, models.CanonicalFlight{
			Airline:      fp.Airline,
			FlightNumber: fp.Airline + fp.Number,
			Origin:       fp.Origin,
			Destination:  fp.Destination,
			Departure:    g.rep.Departure,
			Arrival:      g.rep.Arrival,
			Price:        g.minPrice,
			BookingURL:   g.rep.BookingURL,
			Sources:      sources,
		})
	}

	return flights
}

// earlierRecord reports whether a should replace b as a group's
// representative: earlier departure wins, then lower source id.
func earlierRecord(a, b models.RawFlight) bool {
	if !a.Departure.Equal(b.Departure) {
		return a.Departure.Before(b.Departure)
	}
	return a.SourceID < b.SourceID
}
