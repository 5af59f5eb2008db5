package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/skylens/flight-search/backend/internal/config"
	"github.com/skylens/flight-search/backend/internal/dedupe"
	"github.com/skylens/flight-search/backend/internal/logger"
	"github.com/skylens/flight-search/backend/internal/report"
)

func main() {
	log := logger.New("reporter")
	cfg, err := config.LoadReporter()
	if err != nil {
		log.Error("load config", slog.Any("err", err))
		os.Exit(1)
	}

	tracker := dedupe.NewTracker(cfg.SeenCapacity, cfg.SeenTTL)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.KafkaBrokers,
		Topic:          cfg.ReportTopic,
		GroupID:        cfg.KafkaConsumer,
		MinBytes:       1e3,
		MaxBytes:       10e6,
		CommitInterval: 0, // Disable auto-commit; manual commit only
	})
	defer reader.Close()

	dlqWriter := kafka.NewWriter(kafka.WriterConfig{
		Brokers:     cfg.KafkaBrokers,
		Topic:       cfg.ReportTopic + "_dlq",
		MaxAttempts: 3,
	})
	defer dlqWriter.Close()

	log.Info("reporter started",
		slog.String("topic", cfg.ReportTopic),
		slog.String("group", cfg.KafkaConsumer),
		slog.String("dlq_topic", cfg.ReportTopic+"_dlq"),
	)

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				log.Info("context canceled, stopping")
				return
			}
			log.Error("fetch message", slog.Any("err", err))
			continue
		}

		if err := processReport(log, tracker, msg.Value); err != nil {
			log.Warn("process report failed, sending to DLQ",
				slog.Any("err", err),
				slog.Int("partition", msg.Partition),
				slog.Int64("offset", msg.Offset),
			)

			dlqMsg := kafka.Message{
				Value: msg.Value,
				Headers: append(msg.Headers,
					kafka.Header{Key: "original_partition", Value: []byte(fmt.Sprintf("%d", msg.Partition))},
					kafka.Header{Key: "original_offset", Value: []byte(fmt.Sprintf("%d", msg.Offset))},
					kafka.Header{Key: "error", Value: []byte(err.Error())},
					kafka.Header{Key: "timestamp", Value: []byte(time.Now().UTC().Format(time.RFC3339))},
				),
			}

			// Retry DLQ write with exponential backoff
			dlqSuccess := false
			for attempt := 0; attempt < 5; attempt++ {
				if dlqErr := dlqWriter.WriteMessages(ctx, dlqMsg); dlqErr == nil {
					dlqSuccess = true
					break
				} else {
					backoff := time.Duration(1<<uint(attempt)) * time.Second
					log.Warn("DLQ write failed, retrying",
						slog.Any("err", dlqErr),
						slog.Int("attempt", attempt+1),
						slog.Duration("backoff", backoff),
					)
					select {
					case <-time.After(backoff):
					case <-ctx.Done():
						log.Info("context canceled during DLQ retry")
						return
					}
				}
			}

			// Only commit if DLQ write succeeded; otherwise skip commit and reprocess on restart
			if dlqSuccess {
				if err := reader.CommitMessages(ctx, msg); err != nil {
					log.Error("commit failed message to dlq", slog.Any("err", err))
				}
			} else {
				log.Error("DLQ write exhausted retries",
					slog.Int("partition", msg.Partition),
					slog.Int64("offset", msg.Offset),
				)
			}
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit message", slog.Any("err", err))
		}
	}
}

// processReport decodes one search summary and logs it. Kafka delivers
// at-least-once, so summaries already observed within the TTL window are
// skipped instead of being logged twice.
func processReport(log *slog.Logger, tracker *dedupe.Tracker, value []byte) error {
	var summary report.Summary
	if err := json.Unmarshal(value, &summary); err != nil {
		return err
	}

	if strings.TrimSpace(summary.SearchID) == "" {
		return errors.New("summary without search id")
	}

	if !tracker.Observe(summary.SearchID) {
		log.Debug("duplicate summary", slog.String("search_id", summary.SearchID))
		return nil
	}

	route := summary.Origin + "-" + summary.Destination
	if summary.Succeeded {
		log.Info("search completed",
			slog.String("search_id", summary.SearchID),
			slog.String("route", route),
			slog.String("date", summary.Date),
			slog.Int("flights", summary.Flights),
			slog.Int("sources_queried", summary.Queried),
			slog.Int("sources_failed", summary.Failed),
		)
	} else {
		log.Warn("search returned no real data",
			slog.String("search_id", summary.SearchID),
			slog.String("route", route),
			slog.String("date", summary.Date),
			slog.Int("sources_queried", summary.Queried),
			slog.Int("sources_failed", summary.Failed),
		)
	}

	for _, f := range summary.Failures {
		log.Warn("source failure",
			slog.String("search_id", summary.SearchID),
			slog.String("source", f.SourceID),
			slog.String("status", string(f.Status)),
			slog.String("detail", f.Detail),
		)
	}

	for reason, count := range summary.Rejected {
		log.Info("records rejected",
			slog.String("search_id", summary.SearchID),
			slog.String("reason", reason),
			slog.Int("count", count),
		)
	}

	return nil
}
