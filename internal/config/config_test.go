package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/skylens/flight-search/backend/internal/config"
)

func TestLoadSearchDefaults(t *testing.T) {
	t.Setenv("SEARCH_CONCURRENCY", "")
	t.Setenv("SEARCH_SOURCE_TIMEOUT", "")
	t.Setenv("SEARCH_DEADLINE", "")
	t.Setenv("SEARCH_PRICE_FLOOR", "")
	t.Setenv("SEARCH_PRICE_CEILING", "")
	t.Setenv("SEARCH_PLACEHOLDER_PRICES", "")
	t.Setenv("SEARCH_FAKE_MARKERS", "")
	t.Setenv("SEARCH_MAX_HORIZON", "")

	cfg, err := config.LoadSearch()
	require.NoError(t, err)

	require.Equal(t, 10, cfg.Concurrency)
	require.Equal(t, 10*time.Second, cfg.SourceTimeout)
	require.Equal(t, 45*time.Second, cfg.Deadline)
	require.Equal(t, 50.0, cfg.PriceFloor)
	require.Equal(t, 10000.0, cfg.PriceCeiling)
	require.Contains(t, cfg.PlaceholderPrices, 999.99)
	require.Contains(t, cfg.FakeMarkers, "dummy")
	require.Equal(t, 8760*time.Hour, cfg.MaxHorizon)
}

func TestLoadSearchOverrides(t *testing.T) {
	t.Setenv("SEARCH_CONCURRENCY", "25")
	t.Setenv("SEARCH_SOURCE_TIMEOUT", "3s")
	t.Setenv("SEARCH_DEADLINE", "20s")
	t.Setenv("SEARCH_PRICE_FLOOR", "10")
	t.Setenv("SEARCH_PRICE_CEILING", "5000")
	t.Setenv("SEARCH_PLACEHOLDER_PRICES", "111.11, 222.22")
	t.Setenv("SEARCH_FAKE_MARKERS", "bogus,synthetic")
	t.Setenv("SEARCH_MAX_HORIZON", "720h")

	cfg, err := config.LoadSearch()
	require.NoError(t, err)

	require.Equal(t, 25, cfg.Concurrency)
	require.Equal(t, 3*time.Second, cfg.SourceTimeout)
	require.Equal(t, 20*time.Second, cfg.Deadline)
	require.Equal(t, 10.0, cfg.PriceFloor)
	require.Equal(t, 5000.0, cfg.PriceCeiling)
	require.Equal(t, []float64{111.11, 222.22}, cfg.PlaceholderPrices)
	require.Equal(t, []string{"bogus", "synthetic"}, cfg.FakeMarkers)
	require.Equal(t, 720*time.Hour, cfg.MaxHorizon)
}

func TestLoadSearchRejectsInvertedPriceBand(t *testing.T) {
	t.Setenv("SEARCH_PRICE_FLOOR", "500")
	t.Setenv("SEARCH_PRICE_CEILING", "100")

	_, err := config.LoadSearch()
	require.Error(t, err)
	require.Contains(t, err.Error(), "SEARCH_PRICE_CEILING")
}

func TestLoadAPIDefaults(t *testing.T) {
	t.Setenv("API_BIND_ADDR", "")
	t.Setenv("CATALOG_PATH", "")
	t.Setenv("SOURCE_RATE_LIMIT", "")
	t.Setenv("SOURCE_RATE_BURST", "")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("REPORT_TOPIC", "")

	cfg, err := config.LoadAPI()
	require.NoError(t, err)

	require.Equal(t, "0.0.0.0:8080", cfg.BindAddr)
	require.Equal(t, "/config/sources.json", cfg.CatalogPath)
	require.Equal(t, 2.0, cfg.SourceRateLimit)
	require.Equal(t, 1, cfg.SourceRateBurst)
	require.Empty(t, cfg.KafkaBrokers)
	require.Empty(t, cfg.ReportTopic)
}

func TestLoadAPIRequiresBrokersForReporting(t *testing.T) {
	t.Setenv("REPORT_TOPIC", "search_reports")
	t.Setenv("KAFKA_BROKERS", "")

	_, err := config.LoadAPI()
	require.Error(t, err)
	require.Contains(t, err.Error(), "KAFKA_BROKERS")
}

func TestLoadReporter(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "broker-a:29092,broker-b:29093")
	t.Setenv("REPORT_TOPIC", "custom_reports")
	t.Setenv("REPORT_CONSUMER_GROUP", "custom-group")
	t.Setenv("REPORT_SEEN_CAPACITY", "50")
	t.Setenv("REPORT_SEEN_TTL", "30m")

	cfg, err := config.LoadReporter()
	require.NoError(t, err)

	require.Len(t, cfg.KafkaBrokers, 2)
	require.Equal(t, "broker-a:29092", cfg.KafkaBrokers[0])
	require.Equal(t, "custom_reports", cfg.ReportTopic)
	require.Equal(t, "custom-group", cfg.KafkaConsumer)
	require.Equal(t, 50, cfg.SeenCapacity)
	require.Equal(t, 30*time.Minute, cfg.SeenTTL)
}

func TestLoadReporterDefaults(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("REPORT_TOPIC", "")
	t.Setenv("REPORT_CONSUMER_GROUP", "")
	t.Setenv("REPORT_SEEN_CAPACITY", "")
	t.Setenv("REPORT_SEEN_TTL", "")

	cfg, err := config.LoadReporter()
	require.NoError(t, err)

	require.Equal(t, []string{"kafka:9092"}, cfg.KafkaBrokers)
	require.Equal(t, "search_reports", cfg.ReportTopic)
	require.Equal(t, "search-reporter", cfg.KafkaConsumer)
	require.Equal(t, 10000, cfg.SeenCapacity)
	require.Equal(t, time.Hour, cfg.SeenTTL)
}
