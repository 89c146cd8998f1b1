package source

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/couchcryptid/weather-harmonizer/internal/domain"
	"github.com/couchcryptid/weather-harmonizer/internal/observability"
)

// nestedEnvelope is the per-line payload of the nested feed: a station
// directory plus an hourly map from station id to readings.
type nestedEnvelope struct {
	Stations []stationMeta                `json:"stations"`
	Hourly   map[string][]json.RawMessage `json:"hourly"`
}

// stationMeta is a directory entry of the nested feed. Pointer fields keep
// "attribute missing" distinct from zero.
type stationMeta struct {
	ID        string   `json:"id"`
	Name      *string  `json:"name"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Elevation *float64 `json:"elevation"`
}

// NestedLoader parses the per-station hourly feed. Values are already
// metric; each (station, hourly record) pair flattens into one observation.
type NestedLoader struct {
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewNestedLoader creates a loader for the nested feed.
func NewNestedLoader(logger *slog.Logger, metrics *observability.Metrics) *NestedLoader {
	return &NestedLoader{logger: logger, metrics: metrics}
}

// Load reads the file line by line, flattening every envelope. Malformed
// lines are logged and skipped.
func (l *NestedLoader) Load(path, sourceTag string) (domain.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open nested source %s: %w", sourceTag, err)
	}
	defer f.Close()

	var table domain.Table
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		rows, err := ExpandHourly(unwrapEnvelope(line), l.logger)
		if err != nil {
			l.logger.Warn("skipping malformed line",
				"source", sourceTag, "line", lineNum, "error", err)
			l.metrics.LineParseErrors.WithLabelValues(sourceTag).Inc()
			continue
		}

		for _, rec := range rows {
			rec["source_file"] = sourceTag
			stampCanonicalTime(rec)
			table = append(table, rec)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read nested source %s: %w", sourceTag, err)
	}

	l.logger.Info("nested source loaded", "source", sourceTag, "rows", len(table))
	return table, nil
}

// ExpandHourly flattens one nested envelope into observation records,
// stamping station metadata by id lookup. Hourly entries that are
// JSON-encoded strings get a second decode pass; entries that fail that
// decode, or are not objects at all, are skipped. An unknown station id
// still yields records, with only station_id populated. The data-quality
// checker reuses this to inspect raw nested files the same way the loader
// reads them.
func ExpandHourly(payload []byte, logger *slog.Logger) (domain.Table, error) {
	var env nestedEnvelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}

	directory := make(map[string]stationMeta, len(env.Stations))
	for _, s := range env.Stations {
		directory[s.ID] = s
	}

	var table domain.Table
	for stationID, entries := range env.Hourly {
		meta, known := directory[stationID]
		for _, raw := range entries {
			rec, ok := decodeHourlyEntry(raw)
			if !ok {
				if logger != nil {
					logger.Debug("skipping undecodable hourly entry", "station_id", stationID)
				}
				continue
			}

			rec["station_id"] = stationID
			if known {
				stampMeta(rec, meta)
			}
			table = append(table, rec)
		}
	}
	return table, nil
}

// decodeHourlyEntry handles both plain objects and JSON-encoded strings.
func decodeHourlyEntry(raw json.RawMessage) (domain.Record, bool) {
	var rec domain.Record
	if err := json.Unmarshal(raw, &rec); err == nil {
		return rec, true
	}

	var encoded string
	if err := json.Unmarshal(raw, &encoded); err != nil {
		return nil, false
	}
	if err := json.Unmarshal([]byte(encoded), &rec); err != nil {
		return nil, false
	}
	return rec, true
}

// stampMeta copies the directory attributes that are actually present;
// missing attributes stay absent on the record.
func stampMeta(rec domain.Record, meta stationMeta) {
	if meta.Name != nil {
		rec["station_name"] = *meta.Name
	}
	if meta.Latitude != nil {
		rec["latitude"] = *meta.Latitude
	}
	if meta.Longitude != nil {
		rec["longitude"] = *meta.Longitude
	}
	if meta.Elevation != nil {
		rec["elevation"] = *meta.Elevation
	}
}

// stampCanonicalTime splits a combined UTC datetime field into the
// canonical date and Time fields. A malformed value leaves both unset.
func stampCanonicalTime(rec domain.Record) {
	dhUTC, ok := rec.String("dh_utc")
	if !ok || dhUTC == "" {
		return
	}
	t, err := time.Parse("2006-01-02 15:04:05", dhUTC)
	if err != nil {
		return
	}
	date, tod := splitDateTime(t)
	rec["date"] = date
	rec["Time"] = tod
}
