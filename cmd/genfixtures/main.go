// Command genfixtures writes small sample files in all three upstream feed
// formats. The samples exercise the awkward parts of the real feeds: the
// schema header line, the sentinel-time day rollover, comma decimal
// separators, unit text in values, string-encoded hourly entries, and an
// hourly reference to a station missing from the directory.
//
// Usage:
//
//	genfixtures -out-dir data/raw
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

func main() {
	outDir := flag.String("out-dir", "data/raw", "directory for sample source files")
	flag.Parse()

	if err := run(*outDir); err != nil {
		log.Fatal(err)
	}
}

func run(outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	files := map[string][]string{
		"belgique.jsonl":    scalarLines("29,91 in", "59.4 °F", "92 %"),
		"france.jsonl":      scalarLines("29.88 in", "57.2 °F", "88 %"),
		"info_climat.jsonl": nestedLines(),
	}

	for name, lines := range files {
		path := filepath.Join(outDir, name)
		if err := writeLines(path, lines); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
		log.Printf("wrote %s: %d lines", path, len(lines))
	}
	return nil
}

// scalarLines builds a two-day flat feed: a header line, then readings
// where the second occurrence of the sentinel time rolls the day.
func scalarLines(pressure, temperature, humidity string) []string {
	lines := []string{
		`{"type":"CATALOG","stream":"observations"}`,
	}

	times := []string{
		// Day one. The leading sentinel must not roll the date.
		"00:04:00", "00:19:00", "00:34:00", "12:04:00", "23:49:00",
		// Day two.
		"00:04:00", "00:19:00", "11:34:00",
	}
	for _, tod := range times {
		rec := map[string]any{
			"Time":           tod,
			"Temperature":    temperature,
			"Dew Point":      "53.6 °F",
			"Humidity":       humidity,
			"Wind":           "WSW",
			"Speed":          "2.2 mph",
			"Gust":           "3.4 mph",
			"Pressure":       pressure,
			"Precip. Rate.":  "0.00 in",
			"Precip. Accum.": "0.00 in",
			"UV":             "0",
			"Solar":          "0 w/m²",
		}
		lines = append(lines, envelope(rec))
	}
	return lines
}

// nestedLines builds one envelope per day with a two-station directory, an
// hourly entry that is a JSON-encoded string, and an hourly reference to a
// station id absent from the directory.
func nestedLines() []string {
	base := time.Date(2024, time.October, 1, 0, 0, 0, 0, time.UTC)

	var lines []string
	for day := 0; day < 2; day++ {
		hourly := map[string]any{
			"000R3": hourlyEntries("000R3", base.AddDate(0, 0, day), 7.8, false),
			"07019": hourlyEntries("07019", base.AddDate(0, 0, day), 9.1, true),
			// No directory entry for this id: records keep station_id only.
			"UNKN1": hourlyEntries("UNKN1", base.AddDate(0, 0, day), 6.2, false)[:1],
		}
		env := map[string]any{
			"stations": []map[string]any{
				{"id": "000R3", "name": "Lille-Lesquin", "latitude": 50.57, "longitude": 3.0975, "elevation": 47},
				{"id": "07019", "name": "Dunkerque", "latitude": 51.05, "longitude": 2.34, "elevation": 11},
			},
			"hourly": hourly,
		}
		lines = append(lines, envelope(env))
	}
	return lines
}

// hourlyEntries emits three readings; asStrings re-encodes each one as a
// JSON string, which the real feed does intermittently.
func hourlyEntries(id string, day time.Time, baseTemp float64, asStrings bool) []any {
	var entries []any
	for hour := 0; hour < 3; hour++ {
		rec := map[string]any{
			"dh_utc":         day.Add(time.Duration(hour) * time.Hour).Format("2006-01-02 15:04:05"),
			"temperature":    baseTemp + float64(hour)*0.3,
			"humidite":       87 - hour,
			"pression":       1013.2,
			"vent_moyen":     12.4,
			"vent_rafales":   19.1,
			"vent_direction": 240,
			"id_station":     id,
		}
		if asStrings {
			data, err := json.Marshal(rec)
			if err != nil {
				log.Fatal(err)
			}
			entries = append(entries, string(data))
		} else {
			entries = append(entries, rec)
		}
	}
	return entries
}

func envelope(payload any) string {
	data, err := json.Marshal(map[string]any{"_airbyte_data": payload})
	if err != nil {
		log.Fatal(err)
	}
	return string(data)
}

func writeLines(path string, lines []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	for _, line := range lines {
		if _, err := fmt.Fprintln(f, line); err != nil {
			return err
		}
	}
	return f.Close()
}
