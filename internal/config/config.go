package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Search contains the engine parameters shared by every service that runs
// searches. All thresholds are deployment configuration, not constants.
type Search struct {
	Concurrency   int
	SourceTimeout time.Duration
	Deadline      time.Duration

	PriceFloor        float64
	PriceCeiling      float64
	PlaceholderPrices []float64
	FakeMarkers       []string
	MaxHorizon        time.Duration
}

// API describes the HTTP search service.
type API struct {
	Search
	BindAddr    string
	CatalogPath string

	// Per-source request rate (requests/second); zero disables limiting.
	SourceRateLimit float64
	SourceRateBurst int

	// Kafka report publishing; an empty topic disables it.
	KafkaBrokers []string
	ReportTopic  string
}

// Reporter configures the Kafka -> log report consumer.
type Reporter struct {
	KafkaBrokers  []string
	ReportTopic   string
	KafkaConsumer string
	SeenCapacity  int
	SeenTTL       time.Duration
}

// LoadSearch builds the shared engine config from environment variables.
func LoadSearch() (Search, error) {
	c := Search{
		Concurrency:       getInt("SEARCH_CONCURRENCY", 10),
		SourceTimeout:     getDuration("SEARCH_SOURCE_TIMEOUT", "10s"),
		Deadline:          getDuration("SEARCH_DEADLINE", "45s"),
		PriceFloor:        getFloat("SEARCH_PRICE_FLOOR", 50),
		PriceCeiling:      getFloat("SEARCH_PRICE_CEILING", 10000),
		PlaceholderPrices: getFloatList("SEARCH_PLACEHOLDER_PRICES", "999.99,1000.00,123.45,100.00"),
		FakeMarkers:       splitAndTrim(getEnv("SEARCH_FAKE_MARKERS", "test,fake,dummy,example,sample,mock,generated,placeholder,demo,xxx,yyy")),
		MaxHorizon:        getDuration("SEARCH_MAX_HORIZON", "8760h"),
	}

	if c.Concurrency <= 0 {
		return c, fmt.Errorf("SEARCH_CONCURRENCY must be positive")
	}
	if c.SourceTimeout <= 0 {
		return c, fmt.Errorf("SEARCH_SOURCE_TIMEOUT must be positive")
	}
	if c.Deadline < 0 {
		return c, fmt.Errorf("SEARCH_DEADLINE cannot be negative")
	}
	if c.PriceFloor < 0 {
		return c, fmt.Errorf("SEARCH_PRICE_FLOOR cannot be negative")
	}
	if c.PriceCeiling <= c.PriceFloor {
		return c, fmt.Errorf("SEARCH_PRICE_CEILING must exceed SEARCH_PRICE_FLOOR")
	}
	if c.MaxHorizon <= 0 {
		return c, fmt.Errorf("SEARCH_MAX_HORIZON must be positive")
	}

	return c, nil
}

// LoadAPI builds the API service config from environment variables.
func LoadAPI() (*API, error) {
	search, err := LoadSearch()
	if err != nil {
		return nil, err
	}

	c := &API{
		Search:          search,
		BindAddr:        getEnv("API_BIND_ADDR", "0.0.0.0:8080"),
		CatalogPath:     getEnv("CATALOG_PATH", "/config/sources.json"),
		SourceRateLimit: getFloat("SOURCE_RATE_LIMIT", 2),
		SourceRateBurst: getInt("SOURCE_RATE_BURST", 1),
		KafkaBrokers:    splitAndTrim(getEnv("KAFKA_BROKERS", "")),
		ReportTopic:     getEnv("REPORT_TOPIC", ""),
	}

	if c.SourceRateLimit < 0 {
		return nil, fmt.Errorf("SOURCE_RATE_LIMIT cannot be negative")
	}
	if c.ReportTopic != "" && len(c.KafkaBrokers) == 0 {
		return nil, fmt.Errorf("REPORT_TOPIC is set but KAFKA_BROKERS is empty")
	}

	return c, nil
}

// LoadReporter builds the reporter config from environment variables.
func LoadReporter() (*Reporter, error) {
	c := &Reporter{
		KafkaBrokers:  splitAndTrim(getEnv("KAFKA_BROKERS", "kafka:9092")),
		ReportTopic:   getEnv("REPORT_TOPIC", "search_reports"),
		KafkaConsumer: getEnv("REPORT_CONSUMER_GROUP", "search-reporter"),
		SeenCapacity:  getInt("REPORT_SEEN_CAPACITY", 10000),
		SeenTTL:       getDuration("REPORT_SEEN_TTL", "1h"),
	}

	if len(c.KafkaBrokers) == 0 {
		return nil, fmt.Errorf("KAFKA_BROKERS must contain at least one broker")
	}
	if c.ReportTopic == "" {
		return nil, fmt.Errorf("REPORT_TOPIC cannot be empty")
	}
	if c.SeenCapacity <= 0 {
		return nil, fmt.Errorf("REPORT_SEEN_CAPACITY must be positive")
	}

	return c, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key, fallback string) time.Duration {
	raw := getEnv(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil {
		fd, ferr := time.ParseDuration(fallback)
		if ferr != nil {
			panic(fmt.Sprintf("invalid fallback duration %q: %v", fallback, ferr))
		}
		return fd
	}
	return d
}

func getFloatList(key, fallback string) []float64 {
	parts := splitAndTrim(getEnv(key, fallback))
	out := make([]float64, 0, len(parts))
	for _, part := range parts {
		if parsed, err := strconv.ParseFloat(part, 64); err == nil {
			out = append(out, parsed)
		}
	}
	return out
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
