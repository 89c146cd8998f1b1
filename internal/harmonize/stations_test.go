package harmonize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/weather-harmonizer/internal/domain"
)

func TestExtractStations(t *testing.T) {
	table := domain.Table{
		{"station_id": "IICHTE19", "station_name": "WeerstationBS", "latitude": 51.092, "longitude": 2.999, "temperature": 15.2},
		{"station_id": "IICHTE19", "station_name": "WeerstationBS", "latitude": 51.092, "longitude": 2.999, "temperature": 14.8},
		{"station_id": "ILAMAD25", "station_name": "La Madeleine", "latitude": 50.659, "longitude": 3.07},
	}
	directory := ExtractStations(table)

	require.Len(t, directory, 2)
	assert.Equal(t, domain.Record{
		"station_id":   "IICHTE19",
		"station_name": "WeerstationBS",
		"latitude":     51.092,
		"longitude":    2.999,
	}, directory[0])
	assert.Equal(t, "ILAMAD25", directory[1]["station_id"])

	// Non-identity columns never leak into the directory.
	assert.False(t, directory[0].Has("temperature"))
}

func TestExtractStationsSkipsNullID(t *testing.T) {
	table := domain.Table{
		{"station_id": nil, "station_name": "ghost"},
		{"station_name": "no id at all"},
		{"station_id": "X1"},
	}
	directory := ExtractStations(table)

	require.Len(t, directory, 1)
	assert.Equal(t, "X1", directory[0]["station_id"])
}

func TestExtractStationsFirstSeenWins(t *testing.T) {
	table := domain.Table{
		{"station_id": "X1", "station_name": "first"},
		{"station_id": "X1", "station_name": "second", "latitude": 50.0},
	}
	directory := ExtractStations(table)

	require.Len(t, directory, 1)
	assert.Equal(t, "first", directory[0]["station_name"])
	assert.False(t, directory[0].Has("latitude"))
}

func TestExtractStationsPartialIdentity(t *testing.T) {
	// An entry from the nested feed's unknown-station path carries only the
	// id; null and absent attributes are omitted, not emitted as null.
	table := domain.Table{
		{"station_id": "UNKN1", "station_name": nil},
	}
	directory := ExtractStations(table)

	require.Len(t, directory, 1)
	assert.Equal(t, domain.Record{"station_id": "UNKN1"}, directory[0])
}

func TestExtractStationsEmptyTable(t *testing.T) {
	assert.Empty(t, ExtractStations(domain.Table{}))
}
