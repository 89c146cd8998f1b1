// Package kafka publishes harmonized observations to a Kafka topic. The
// sink is optional: artifacts on disk stay the source of truth, the topic
// is a convenience for downstream consumers that prefer a stream.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/weather-harmonizer/internal/config"
	"github.com/couchcryptid/weather-harmonizer/internal/domain"
)

// Writer produces harmonized observation messages. It implements
// harmonize.Sink.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// PublishBatch serializes and publishes the rows in a single WriteMessages
// call.
func (w *Writer) PublishBatch(ctx context.Context, rows domain.Table) error {
	if len(rows) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(rows))
	for i := range rows {
		msg, err := serializeToMessage(rows[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return err
	}
	w.logger.Info("published harmonized rows", "count", len(rows))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals one observation, keyed by station_id so a
// station's readings land on one partition.
func serializeToMessage(rec domain.Record) (kafkago.Message, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize observation: %w", err)
	}

	var key []byte
	if id, ok := rec.String("station_id"); ok {
		key = []byte(id)
	}
	return kafkago.Message{Key: key, Value: data}, nil
}
