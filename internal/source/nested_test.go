package source

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/weather-harmonizer/internal/domain"
	"github.com/couchcryptid/weather-harmonizer/internal/observability"
)

const nestedLine = `{"_airbyte_data":{` +
	`"stations":[{"id":"000R3","name":"Lille-Lesquin","latitude":50.57,"longitude":3.0975,"elevation":47}],` +
	`"hourly":{` +
	`"000R3":[{"dh_utc":"2024-10-01 13:00:00","temperature":14.3,"id_station":"000R3"}],` +
	`"UNKN1":[{"dh_utc":"2024-10-01 13:00:00","temperature":9.9,"id_station":"UNKN1"}]` +
	`}}}`

func loadNested(t *testing.T, lines ...string) domain.Table {
	t.Helper()
	path := writeSourceFile(t, "info_climat.jsonl", lines...)
	loader := NewNestedLoader(discardLogger(), observability.NewMetricsForTesting())
	table, err := loader.Load(path, "info_climat.jsonl")
	require.NoError(t, err)
	return table
}

func findByStation(t *testing.T, table domain.Table, id string) domain.Record {
	t.Helper()
	for _, rec := range table {
		if rec["station_id"] == id {
			return rec
		}
	}
	t.Fatalf("no record for station %s", id)
	return nil
}

func TestNestedLoaderFlattens(t *testing.T) {
	table := loadNested(t, nestedLine)
	require.Len(t, table, 2)

	rec := findByStation(t, table, "000R3")
	assert.Equal(t, "Lille-Lesquin", rec["station_name"])
	assert.Equal(t, 50.57, rec["latitude"])
	assert.Equal(t, 3.0975, rec["longitude"])
	assert.Equal(t, 47.0, rec["elevation"])
	assert.Equal(t, 14.3, rec["temperature"])
	assert.Equal(t, "info_climat.jsonl", rec["source_file"])
}

func TestNestedLoaderUnknownStation(t *testing.T) {
	// An hourly id absent from the directory still yields records; only the
	// id itself gets stamped.
	table := loadNested(t, nestedLine)
	rec := findByStation(t, table, "UNKN1")

	assert.False(t, rec.Has("station_name"))
	assert.False(t, rec.Has("latitude"))
	assert.False(t, rec.Has("longitude"))
	assert.False(t, rec.Has("elevation"))
	assert.Equal(t, 9.9, rec["temperature"])
}

func TestNestedLoaderCanonicalTime(t *testing.T) {
	table := loadNested(t, nestedLine)
	rec := findByStation(t, table, "000R3")

	assert.Equal(t, "01-10-24", rec["date"])
	assert.Equal(t, "13:00:00", rec["Time"])
}

func TestNestedLoaderMalformedDatetime(t *testing.T) {
	line := `{"_airbyte_data":{"stations":[],"hourly":{` +
		`"X1":[{"dh_utc":"not a datetime","temperature":1.0}]}}}`
	table := loadNested(t, line)
	require.Len(t, table, 1)

	assert.False(t, table[0].Has("date"))
	assert.False(t, table[0].Has("Time"))
	assert.Equal(t, "not a datetime", table[0]["dh_utc"])
}

func TestNestedLoaderStringEncodedEntries(t *testing.T) {
	// Some hourly entries arrive as JSON-encoded strings; a string that does
	// not decode to an object is skipped.
	line := `{"_airbyte_data":{"stations":[],"hourly":{"X1":[` +
		`"{\"dh_utc\":\"2024-10-01 06:00:00\",\"temperature\":8.1}",` +
		`"not an object",` +
		`{"dh_utc":"2024-10-01 07:00:00","temperature":8.4}` +
		`]}}}`
	table := loadNested(t, line)
	require.Len(t, table, 2)

	temps := []any{table[0]["temperature"], table[1]["temperature"]}
	assert.ElementsMatch(t, []any{8.1, 8.4}, temps)
}

func TestNestedLoaderSkipsMalformedLines(t *testing.T) {
	table := loadNested(t, `{broken`, nestedLine)
	assert.Len(t, table, 2)
}

func TestNestedLoaderPartialDirectoryEntry(t *testing.T) {
	// A directory entry missing attributes stamps only what it has.
	line := `{"_airbyte_data":{` +
		`"stations":[{"id":"X1","name":"Partial"}],` +
		`"hourly":{"X1":[{"temperature":2.5}]}}}`
	table := loadNested(t, line)
	require.Len(t, table, 1)

	rec := table[0]
	assert.Equal(t, "Partial", rec["station_name"])
	assert.False(t, rec.Has("latitude"))
	assert.False(t, rec.Has("elevation"))
}

func TestNestedLoaderMissingFile(t *testing.T) {
	loader := NewNestedLoader(discardLogger(), observability.NewMetricsForTesting())
	_, err := loader.Load(filepath.Join(t.TempDir(), "absent.jsonl"), "absent.jsonl")
	assert.Error(t, err)
}
