package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, time.Date(2024, time.October, 1, 0, 0, 0, 0, time.UTC), cfg.SyntheticEpoch)
	assert.Equal(t, 0.7, cfg.NullRatioThreshold)
	assert.False(t, cfg.DropHighNullColumns)
	assert.False(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "harmonized-observations", cfg.KafkaTopic)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "backup", cfg.MongoDatabase)
	assert.Empty(t, cfg.PushgatewayURL)
	assert.Equal(t, "weather-harmonizer", cfg.MetricsJob)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SYNTHETIC_EPOCH", "2025-01-15")
	t.Setenv("NULL_RATIO_THRESHOLD", "0.5")
	t.Setenv("DROP_HIGH_NULL_COLUMNS", "true")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092")
	t.Setenv("KAFKA_TOPIC", "observations")
	t.Setenv("MONGO_URI", "mongodb://db:27017")
	t.Setenv("MONGO_DATABASE", "weather")
	t.Setenv("PUSHGATEWAY_URL", "http://pushgateway:9091")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC), cfg.SyntheticEpoch)
	assert.Equal(t, 0.5, cfg.NullRatioThreshold)
	assert.True(t, cfg.DropHighNullColumns)
	assert.True(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "observations", cfg.KafkaTopic)
	assert.Equal(t, "mongodb://db:27017", cfg.MongoURI)
	assert.Equal(t, "weather", cfg.MongoDatabase)
	assert.Equal(t, "http://pushgateway:9091", cfg.PushgatewayURL)
}

func TestLoadInvalidEpoch(t *testing.T) {
	t.Setenv("SYNTHETIC_EPOCH", "01/10/2024")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SYNTHETIC_EPOCH")
}

func TestLoadInvalidThreshold(t *testing.T) {
	for _, bad := range []string{"abc", "0", "-0.5", "1.5"} {
		t.Run(bad, func(t *testing.T) {
			t.Setenv("NULL_RATIO_THRESHOLD", bad)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "NULL_RATIO_THRESHOLD")
		})
	}
}

func TestLoadKafkaValidation(t *testing.T) {
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", " , ")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KAFKA_BROKERS")
}
