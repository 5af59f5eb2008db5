// Package report publishes per-search outcome summaries to Kafka so external
// consumers can track which data sources are failing, without the search path
// ever depending on them.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/skylens/flight-search/backend/internal/models"
	"github.com/skylens/flight-search/backend/internal/search"
)

// Summary is the message published after every completed search, successful
// or not. Failures lists only the sources that did not resolve ok.
type Summary struct {
	SearchID    string                 `json:"search_id"`
	Origin      string                 `json:"origin"`
	Destination string                 `json:"destination"`
	Date        string                 `json:"date"`
	Succeeded   bool                   `json:"succeeded"`
	Flights     int                    `json:"flights"`
	Queried     int                    `json:"sources_queried"`
	Failed      int                    `json:"sources_failed"`
	Failures    []models.SourceOutcome `json:"failures,omitempty"`
	Rejected    map[string]int         `json:"records_rejected,omitempty"`
	Timestamp   time.Time              `json:"timestamp"`
}

// FromResult builds the summary for a successful search.
func FromResult(res *models.SearchResult) Summary {
	return Summary{
		SearchID:    res.SearchID,
		Origin:      res.Request.Origin,
		Destination: res.Request.Destination,
		Date:        res.Request.Date.Format("2006-01-02"),
		Succeeded:   true,
		Flights:     len(res.Flights),
		Queried:     res.Metadata.SourcesQueried,
		Failed:      res.Metadata.SourcesFailed,
		Failures:    failedOutcomes(res.Outcomes),
		Rejected:    res.Metadata.RecordsRejected,
		Timestamp:   time.Now().UTC(),
	}
}

// FromFailure builds the summary for a search that found no real data,
// keyed by the search id the engine assigned.
func FromFailure(failure *search.NoRealDataError) Summary {
	failures := failedOutcomes(failure.Outcomes)
	return Summary{
		SearchID:    failure.SearchID,
		Origin:      failure.Request.Origin,
		Destination: failure.Request.Destination,
		Date:        failure.Request.Date.Format("2006-01-02"),
		Succeeded:   false,
		Queried:     len(failure.Outcomes),
		Failed:      len(failures),
		Failures:    failures,
		Rejected:    failure.Rejected,
		Timestamp:   time.Now().UTC(),
	}
}

func failedOutcomes(outcomes []models.SourceOutcome) []models.SourceOutcome {
	var failed []models.SourceOutcome
	for _, o := range outcomes {
		if o.Status == models.StatusTimeout || o.Status == models.StatusError {
			failed = append(failed, o)
		}
	}
	return failed
}

// Publisher writes summaries to a Kafka topic. Publishing is best-effort:
// a broker outage must never fail a search.
type Publisher struct {
	writer *kafka.Writer
	log    *slog.Logger
}

// NewPublisher connects a publisher to the given brokers and topic.
func NewPublisher(brokers []string, topic string, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Publisher{
		writer: kafka.NewWriter(kafka.WriterConfig{
			Brokers:     brokers,
			Topic:       topic,
			MaxAttempts: 3,
		}),
		log: logger,
	}
}

// Publish sends one summary, keyed by search id so redelivered messages can
// be recognized downstream.
func (p *Publisher) Publish(ctx context.Context, s Summary) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(s.SearchID),
		Value: payload,
	})
	if err != nil {
		return fmt.Errorf("publish summary: %w", err)
	}

	p.log.Debug("summary published", slog.String("search_id", s.SearchID))
	return nil
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
