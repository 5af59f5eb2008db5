// Package fingerprint derives the canonical identity key used to recognize
// the same real-world flight reported by multiple sources.
package fingerprint

import (
	"crypto/sha1"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/skylens/flight-search/backend/internal/models"
)

// Fingerprint identifies one real-world flight. Two records with equal
// fingerprints are treated as the same flight regardless of which source
// reported them. The departure is truncated to the hour to absorb sub-hour
// timestamp skew between sources.
//
// Known limitation: an airline operating the same flight number on the same
// route twice within one hour collides. Scheduled carriers do not do this in
// practice, so the collision is accepted rather than hidden.
type Fingerprint struct {
	Airline     string
	Number      string
	Origin      string
	Destination string
	Date        string
	Hour        int
}

// Of computes the fingerprint of a raw record. Pure and total: any
// syntactically well-formed record maps to a fingerprint without error.
func Of(f models.RawFlight) Fingerprint {
	dep := f.Departure.UTC()
	airline := strings.ToUpper(strings.TrimSpace(f.Airline))
	return Fingerprint{
		Airline:     airline,
		Number:      normalizeNumber(f.FlightNumber, airline),
		Origin:      strings.ToUpper(strings.TrimSpace(f.Origin)),
		Destination: strings.ToUpper(strings.TrimSpace(f.Destination)),
		Date:        dep.Format("2006-01-02"),
		Hour:        dep.Hour(),
	}
}

// Key returns a stable hex digest of the fingerprint, used in logs and
// report payloads where a compact opaque id is preferable to the tuple.
func (fp Fingerprint) Key() string {
	s := sha1.Sum([]byte(strings.Join([]string{
		fp.Airline,
		fp.Number,
		fp.Origin,
		fp.Destination,
		fp.Date,
		strconv.Itoa(fp.Hour),
	}, "|")))
	return hex.EncodeToString(s[:])
}

// normalizeNumber reduces a flight number to its digits with leading zeros
// stripped, so "AA0100", "AA100" and "100" compare equal. The airline-code
// prefix is removed before taking digits: codes like "B6" or "9E" contain a
// digit that is not part of the number.
func normalizeNumber(raw, airline string) string {
	raw = strings.ToUpper(strings.TrimSpace(raw))
	if airline != "" {
		raw = strings.TrimPrefix(raw, airline)
	}

	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := strings.TrimLeft(b.String(), "0")
	if digits == "" {
		return "0"
	}
	return digits
}
