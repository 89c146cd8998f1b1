package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/couchcryptid/weather-harmonizer/internal/domain"
	"github.com/couchcryptid/weather-harmonizer/internal/observability"
)

// sentinelTime marks the first reading of a station day in the scalar
// feeds. Every occurrence after the first record rolls the synthetic date
// forward by one day.
const sentinelTime = "00:04:00"

// ScalarLoader parses a flat newline-delimited feed that reports only a
// time-of-day per reading. It reconstructs daily boundaries by folding a
// synthetic calendar date over the lines, and stamps station identity from
// a configuration table keyed by source tag.
type ScalarLoader struct {
	stations StationTable
	epoch    time.Time
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// NewScalarLoader creates a loader for the flat feeds. The epoch is the
// synthetic date assigned to the first day of the file.
func NewScalarLoader(stations StationTable, epoch time.Time, logger *slog.Logger, metrics *observability.Metrics) *ScalarLoader {
	return &ScalarLoader{
		stations: stations,
		epoch:    epoch,
		logger:   logger,
		metrics:  metrics,
	}
}

// Load reads the whole file, skips the first line (schema header), and
// emits one observation per remaining line. Malformed lines are logged and
// skipped; only opening or reading the file can fail.
func (l *ScalarLoader) Load(path, sourceTag string) (domain.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scalar source %s: %w", sourceTag, err)
	}

	lines := splitLines(data)
	if len(lines) > 0 {
		lines = lines[1:] // first line is a schema/header line, never data
	}

	table, finalDate := l.foldLines(lines, sourceTag)
	l.logger.Info("scalar source loaded",
		"source", sourceTag,
		"rows", len(table),
		"last_date", finalDate.Format(DateLayout),
	)
	return table, nil
}

// foldLines threads the synthetic date through the lines as explicit fold
// state and returns it alongside the records, so the date counter is owned
// by one invocation and never shared.
func (l *ScalarLoader) foldLines(lines [][]byte, sourceTag string) (domain.Table, time.Time) {
	current := l.epoch
	var table domain.Table

	for i, line := range lines {
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		var rec domain.Record
		if err := json.Unmarshal(unwrapEnvelope(line), &rec); err != nil {
			l.logger.Warn("skipping malformed line",
				"source", sourceTag, "line", i+2, "error", err)
			l.metrics.LineParseErrors.WithLabelValues(sourceTag).Inc()
			continue
		}

		// The first occurrence of the sentinel opens day one; it must not
		// roll the date.
		if tod, _ := rec.String("Time"); tod == sentinelTime && len(table) > 0 {
			current = current.AddDate(0, 0, 1)
		}

		rec["source_file"] = sourceTag
		rec["date"] = current.Format(DateLayout)
		if station, ok := l.stations[sourceTag]; ok {
			station.Stamp(rec)
		}

		table = append(table, rec)
	}
	return table, current
}

func splitLines(data []byte) [][]byte {
	lines := bytes.Split(data, []byte("\n"))
	// A trailing newline yields one empty trailing element; drop it.
	if n := len(lines); n > 0 && len(bytes.TrimSpace(lines[n-1])) == 0 {
		lines = lines[:n-1]
	}
	return lines
}
