// Command check runs the data-quality battery over one or more
// observation files, raw or harmonized, and prints a text report for human
// review. It never mutates its inputs, and findings do not affect the exit
// code: the report is the result.
//
// Usage:
//
//	check data/raw/belgique.jsonl data/raw/info_climat.jsonl
//	check data/out/merged_weather_data_to_check.json
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/couchcryptid/weather-harmonizer/internal/config"
	"github.com/couchcryptid/weather-harmonizer/internal/observability"
	"github.com/couchcryptid/weather-harmonizer/internal/quality"
)

func main() {
	flag.Parse()
	files := flag.Args()
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "usage: check <file.jsonl> [<file.jsonl> ...]")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger := observability.NewLogger(cfg)

	checker := quality.New(cfg.NullRatioThreshold, logger)

	// An unreadable file skips to the next one; the batch always finishes.
	for _, file := range files {
		report, err := checker.CheckFile(file)
		if err != nil {
			logger.Error("check failed", "file", file, "error", err)
			continue
		}
		report.Render(os.Stdout)
	}
}
