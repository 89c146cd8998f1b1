package harmonize

import (
	"fmt"

	"github.com/couchcryptid/weather-harmonizer/internal/domain"
)

// stationColumns are the identity columns projected into the station
// directory. Elevation stays on the observation rows.
var stationColumns = []string{"station_id", "station_name", "latitude", "longitude"}

// ExtractStations derives the deduplicated station directory from the
// harmonized table: project the identity columns, drop rows with a null
// station_id, and keep the first-seen entry per station_id. Conflicting
// metadata reported by a later source for the same id is not reconciled;
// the first occurrence wins.
func ExtractStations(t domain.Table) domain.Table {
	seen := make(map[string]struct{})
	var directory domain.Table

	for _, rec := range t {
		if rec.IsNull("station_id") {
			continue
		}
		id := fmt.Sprintf("%v", rec["station_id"])
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}

		entry := make(domain.Record, len(stationColumns))
		for _, col := range stationColumns {
			if v, ok := rec[col]; ok && v != nil {
				entry[col] = v
			}
		}
		directory = append(directory, entry)
	}
	return directory
}
