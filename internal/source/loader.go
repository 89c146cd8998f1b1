// Package source parses the three upstream feed formats into the uniform
// in-memory table the harmonizer works on. One loader invocation owns one
// file: the file is read fully into memory, every line is best-effort
// decoded, and per-line failures are logged and skipped without aborting
// the file.
package source

import (
	"encoding/json"
	"time"

	"github.com/couchcryptid/weather-harmonizer/internal/domain"
)

// envelopeField wraps the actual payload in one line of a source file.
const envelopeField = "_airbyte_data"

// DateLayout is the canonical DD-MM-YY date format of harmonized records.
const DateLayout = "02-01-06"

// TimeLayout is the canonical HH:MM:SS time-of-day format.
const TimeLayout = "15:04:05"

// Loader produces a sequence of observation records from one input file,
// stamping each record with the given source tag.
type Loader interface {
	Load(path, sourceTag string) (domain.Table, error)
}

// StationTable maps a source tag to the fixed station identity stamped onto
// every record of that source. Sources without an entry get no station
// stamp. Keeping this as data rather than per-source branches means a new
// feed only needs a new entry.
type StationTable map[string]domain.Station

// DefaultStations covers the two known scalar feeds.
func DefaultStations() StationTable {
	return StationTable{
		"belgique.jsonl": {
			ID:        "IICHTE19",
			Name:      "WeerstationBS",
			Latitude:  51.092,
			Longitude: 2.999,
			Elevation: 15,
		},
		"france.jsonl": {
			ID:        "ILAMAD25",
			Name:      "La Madeleine",
			Latitude:  50.659,
			Longitude: 3.07,
			Elevation: 23,
		},
	}
}

// unwrapEnvelope returns the payload bytes of one line: the envelope field
// when present, otherwise the line itself.
func unwrapEnvelope(line []byte) []byte {
	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(line, &wrapper); err != nil {
		return line
	}
	if payload, ok := wrapper[envelopeField]; ok {
		return payload
	}
	return line
}

// splitDateTime formats a parsed timestamp into the canonical date and
// time-of-day fields.
func splitDateTime(t time.Time) (date, tod string) {
	return t.Format(DateLayout), t.Format(TimeLayout)
}
