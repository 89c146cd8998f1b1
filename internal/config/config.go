// Package config loads service settings from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all settings shared by the harmonizer commands, populated
// from environment variables.
type Config struct {
	LogLevel  string
	LogFormat string

	// SyntheticEpoch is the calendar date assigned to the first day of a
	// scalar feed, which reports only time-of-day.
	SyntheticEpoch time.Time

	// NullRatioThreshold flags columns whose null fraction exceeds it.
	NullRatioThreshold float64
	// DropHighNullColumns actually removes flagged columns from the merged
	// artifact instead of only reporting them.
	DropHighNullColumns bool

	// Kafka sink configuration. Disabled unless KAFKA_ENABLED=true.
	KafkaEnabled bool
	KafkaBrokers []string
	KafkaTopic   string

	// Document store settings for the ingest command.
	MongoURI      string
	MongoDatabase string

	// PushgatewayURL, when set, pushes run metrics after each batch.
	PushgatewayURL string
	MetricsJob     string
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	epochStr := envOrDefault("SYNTHETIC_EPOCH", "2024-10-01")
	epoch, err := time.Parse("2006-01-02", epochStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SYNTHETIC_EPOCH %q: %w", epochStr, err)
	}

	threshold, err := parseRatio("NULL_RATIO_THRESHOLD", 0.7)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		LogLevel:  envOrDefault("LOG_LEVEL", "info"),
		LogFormat: envOrDefault("LOG_FORMAT", "json"),

		SyntheticEpoch:      epoch,
		NullRatioThreshold:  threshold,
		DropHighNullColumns: os.Getenv("DROP_HIGH_NULL_COLUMNS") == "true",

		KafkaEnabled: os.Getenv("KAFKA_ENABLED") == "true",
		KafkaBrokers: splitList(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:   envOrDefault("KAFKA_TOPIC", "harmonized-observations"),

		MongoURI:      envOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: envOrDefault("MONGO_DATABASE", "backup"),

		PushgatewayURL: os.Getenv("PUSHGATEWAY_URL"),
		MetricsJob:     envOrDefault("METRICS_JOB", "weather-harmonizer"),
	}

	if cfg.KafkaEnabled {
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
		}
		if cfg.KafkaTopic == "" {
			return nil, errors.New("KAFKA_ENABLED is true but KAFKA_TOPIC is empty")
		}
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseRatio(key string, def float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 || v > 1 {
		return 0, fmt.Errorf("invalid %s %q: must be a ratio in (0, 1]", key, s)
	}
	return v, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
