package quality

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/couchcryptid/weather-harmonizer/internal/domain"
	"github.com/couchcryptid/weather-harmonizer/internal/source"
)

// Checker runs the full battery of checks. It never mutates its input and
// never persists anything.
type Checker struct {
	nullThreshold float64
	logger        *slog.Logger
}

// New creates a Checker flagging columns whose null ratio exceeds the
// threshold.
func New(nullThreshold float64, logger *slog.Logger) *Checker {
	return &Checker{nullThreshold: nullThreshold, logger: logger}
}

// CheckFile loads one artifact (raw or harmonized, flat or nested) and
// checks it. Only an unreadable file is an error; every data anomaly is a
// report finding instead.
func (c *Checker) CheckFile(path string) (*Report, error) {
	table, err := c.loadFile(path)
	if err != nil {
		return nil, err
	}
	return c.CheckTable(path, table), nil
}

// CheckTable runs every check over an in-memory table. Checks are
// independent: a finding in one never prevents the others from running.
func (c *Checker) CheckTable(name string, t domain.Table) *Report {
	r := &Report{
		File:        name,
		Rows:        len(t),
		GeneratedAt: domain.Now(),
	}

	checks := []func(t domain.Table) *Section{
		c.checkRequiredFields,
		c.checkNullRatios,
		c.checkTypes,
		c.checkGeoRanges,
		c.checkDuplicateStations,
		c.checkPlausibility,
	}
	for _, check := range checks {
		r.Sections = append(r.Sections, check(t))
	}
	return r
}

// loadFile reads a newline-delimited or pretty-printed JSON file into a
// table, re-flattening nested per-station envelopes the same way the
// nested loader does so raw and harmonized inputs check uniformly.
func (c *Checker) loadFile(path string) (domain.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	// Harmonized artifacts are a single JSON array.
	var rows []domain.Record
	if err := json.Unmarshal(data, &rows); err == nil {
		return domain.Table(rows), nil
	}

	var table domain.Table
	for lineNum, line := range bytes.Split(data, []byte("\n")) {
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		payload := unwrapLine(line)

		if hasNestedShape(payload) {
			rows, err := source.ExpandHourly(payload, c.logger)
			if err != nil {
				c.logger.Warn("unreadable line", "file", path, "line", lineNum+1, "error", err)
				continue
			}
			table = append(table, rows...)
			continue
		}

		var rec domain.Record
		if err := json.Unmarshal(payload, &rec); err != nil {
			c.logger.Warn("unreadable line", "file", path, "line", lineNum+1, "error", err)
			continue
		}
		table = append(table, rec)
	}
	return table, nil
}

// unwrapLine returns the envelope payload when present, the line otherwise.
func unwrapLine(line []byte) []byte {
	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(line, &wrapper); err != nil {
		return line
	}
	if payload, ok := wrapper["_airbyte_data"]; ok {
		return payload
	}
	return line
}

// hasNestedShape reports whether the payload carries both the station
// directory and the hourly map.
func hasNestedShape(payload []byte) bool {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(payload, &probe); err != nil {
		return false
	}
	_, hourly := probe["hourly"]
	_, stations := probe["stations"]
	return hourly && stations
}
