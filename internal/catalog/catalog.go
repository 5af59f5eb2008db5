// Package catalog models the registry of flight-data sources. The engine
// treats every source uniformly: a descriptor with static metadata and an
// opaque fetch capability supplied by whoever built the catalog.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/skylens/flight-search/backend/internal/models"
)

// Kind tells what class of source a descriptor points at. The engine never
// branches on it; it exists for diagnostics and reporting.
type Kind string

const (
	KindAirlineSite Kind = "airline-site"
	KindTravelSite  Kind = "travel-site"
	KindAPI         Kind = "api"
)

// FetchFunc queries one source for one search. Implementations may ignore
// ctx; the executor enforces the timeout regardless.
type FetchFunc func(ctx context.Context, req models.SearchRequest) ([]models.RawFlight, error)

// Descriptor is one catalog entry. Immutable once built.
type Descriptor struct {
	ID     string
	Kind   Kind
	Region string
	Name   string
	Fetch  FetchFunc
}

// Catalog is an ordered set of descriptors. Order is significant: it is the
// deterministic tie-break ordering used downstream.
type Catalog []Descriptor

// Counts tallies descriptors per kind.
func (c Catalog) Counts() map[Kind]int {
	counts := make(map[Kind]int, 3)
	for _, d := range c {
		counts[d.Kind]++
	}
	return counts
}

// Entry is the on-disk form of a descriptor, without the fetch capability.
type Entry struct {
	ID      string `json:"id"`
	Kind    Kind   `json:"kind"`
	Region  string `json:"region"`
	Name    string `json:"name"`
	BaseURL string `json:"base_url"`
}

// Load reads a JSON catalog file and builds a Catalog, using build to turn
// each entry into a fetch capability. Entries for which build returns nil are
// skipped: the deployment has no way to query them.
func Load(path string, build func(Entry) FetchFunc) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	seen := make(map[string]struct{}, len(entries))
	out := make(Catalog, 0, len(entries))
	for i, e := range entries {
		if e.ID == "" {
			return nil, fmt.Errorf("catalog entry %d has no id", i)
		}
		if _, dup := seen[e.ID]; dup {
			return nil, fmt.Errorf("catalog entry %q appears twice", e.ID)
		}
		seen[e.ID] = struct{}{}

		switch e.Kind {
		case KindAirlineSite, KindTravelSite, KindAPI:
		default:
			return nil, fmt.Errorf("catalog entry %q has unknown kind %q", e.ID, e.Kind)
		}

		fetch := build(e)
		if fetch == nil {
			continue
		}
		out = append(out, Descriptor{
			ID:     e.ID,
			Kind:   e.Kind,
			Region: e.Region,
			Name:   e.Name,
			Fetch:  fetch,
		})
	}

	return out, nil
}
