// Command harmonize merges the three upstream weather feeds into the
// canonical artifacts: a pretty-printed merged observation array, a
// newline-delimited inspection mirror, and the station directory.
//
// Usage:
//
//	harmonize \
//	  -belgique data/raw/belgique.jsonl \
//	  -france data/raw/france.jsonl \
//	  -infoclimat data/raw/info_climat.jsonl \
//	  -out-dir data/out
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	kafkaadapter "github.com/couchcryptid/weather-harmonizer/internal/adapter/kafka"
	"github.com/couchcryptid/weather-harmonizer/internal/config"
	"github.com/couchcryptid/weather-harmonizer/internal/harmonize"
	"github.com/couchcryptid/weather-harmonizer/internal/observability"
	"github.com/couchcryptid/weather-harmonizer/internal/source"
)

func main() {
	belgique := flag.String("belgique", "", "path to the Belgian scalar feed")
	france := flag.String("france", "", "path to the French scalar feed")
	infoclimat := flag.String("infoclimat", "", "path to the nested per-station feed")
	outDir := flag.String("out-dir", "data/out", "directory for output artifacts")
	flag.Parse()

	if *belgique == "" || *france == "" || *infoclimat == "" {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	scalar := source.NewScalarLoader(source.DefaultStations(), cfg.SyntheticEpoch, logger, metrics)
	nested := source.NewNestedLoader(logger, metrics)

	// The Kafka sink is feature-flagged; artifacts are always written.
	var sink harmonize.Sink
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		sink = writer
		logger.Info("kafka sink enabled", "topic", cfg.KafkaTopic)
	}

	h := harmonize.New(scalar, nested, sink, logger, metrics, cfg.NullRatioThreshold, cfg.DropHighNullColumns)

	specs := []harmonize.SourceSpec{
		{Path: *belgique, Tag: filepath.Base(*belgique), Kind: harmonize.KindScalar},
		{Path: *france, Tag: filepath.Base(*france), Kind: harmonize.KindScalar},
		{Path: *infoclimat, Tag: filepath.Base(*infoclimat), Kind: harmonize.KindNested},
	}
	outputs := harmonize.Outputs{
		MergedPath:     filepath.Join(*outDir, "merged_weather_data.json"),
		InspectionPath: filepath.Join(*outDir, "merged_weather_data_to_check.json"),
		StationsPath:   filepath.Join(*outDir, "stations_info.json"),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runErr := h.Run(ctx, specs, outputs)

	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}
	if cfg.PushgatewayURL != "" {
		if err := observability.PushMetrics(cfg.PushgatewayURL, cfg.MetricsJob); err != nil {
			logger.Warn("metrics push failed", "error", err)
		}
	}

	if runErr != nil {
		logger.Error("harmonization failed", "error", runErr)
		os.Exit(1)
	}
}
