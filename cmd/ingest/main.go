// Command ingest bulk-loads a harmonized artifact into the backup document
// store. The artifact is inserted verbatim; validation belongs to the
// check command, upstream of this one.
//
// Usage:
//
//	MONGO_URI=mongodb://localhost:27017 ingest \
//	  -file data/out/merged_weather_data.json \
//	  -collection weather_informations
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	mongoadapter "github.com/couchcryptid/weather-harmonizer/internal/adapter/mongo"
	"github.com/couchcryptid/weather-harmonizer/internal/config"
	"github.com/couchcryptid/weather-harmonizer/internal/observability"
)

func main() {
	file := flag.String("file", "", "path to the JSON array artifact")
	collection := flag.String("collection", "", "target collection name")
	skipFirst := flag.Bool("skip-first", false, "skip the first array element")
	timeout := flag.Duration("timeout", 30*time.Second, "overall operation timeout")
	flag.Parse()

	if *file == "" || *collection == "" {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger := observability.NewLogger(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	importer, err := mongoadapter.NewImporter(ctx, cfg.MongoURI, cfg.MongoDatabase, logger)
	if err != nil {
		logger.Error("document store connection failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := importer.Close(context.Background()); err != nil {
			logger.Error("document store disconnect error", "error", err)
		}
	}()

	count, err := importer.ImportFile(ctx, *file, *collection, *skipFirst)
	if err != nil {
		logger.Error("import failed", "file", *file, "error", err)
		os.Exit(1)
	}
	logger.Info("import complete", "file", *file, "collection", *collection, "documents", count)
}
