// Package harmonize reconciles the loader outputs into one canonical
// schema and orchestrates the full harmonization run.
package harmonize

import (
	"sort"

	"github.com/couchcryptid/weather-harmonizer/internal/domain"
)

// MergeRule folds a legacy column into its canonical name. Rules are an
// explicit ordered list evaluated exactly once each; merge order is
// therefore deterministic.
type MergeRule struct {
	From string
	To   string
}

// DefaultMergeRules reconciles the English column names of the scalar
// feeds with the French canonical schema of the nested feed, plus the
// nested feed's own station id alias.
func DefaultMergeRules() []MergeRule {
	return []MergeRule{
		{From: "Humidity", To: "humidite"},
		{From: "Temperature", To: "temperature"},
		{From: "Dew Point", To: "point_de_rosee"},
		{From: "Pressure", To: "pression"},
		{From: "Wind", To: "vent_direction"},
		{From: "Speed", To: "vent_moyen"},
		{From: "Gust", To: "vent_rafales"},
		{From: "id_station", To: "station_id"},
	}
}

// MergeColumns applies each rule once: rows keep an existing non-null
// canonical value and fill null slots from the legacy column, then the
// legacy column is discarded.
func MergeColumns(t domain.Table, rules []MergeRule) {
	for _, rule := range rules {
		for _, rec := range t {
			v, ok := rec[rule.From]
			if !ok {
				continue
			}
			if rec.IsNull(rule.To) {
				rec[rule.To] = v
			}
			delete(rec, rule.From)
		}
	}
}

// DropEmptyColumns removes columns that are null across the whole table
// and returns their names, sorted.
func DropEmptyColumns(t domain.Table) []string {
	var dropped []string
	for _, col := range t.Columns() {
		if t.NullRatio(col) == 1 {
			dropped = append(dropped, col)
		}
	}
	t.DropColumns(dropped...)
	sort.Strings(dropped)
	return dropped
}

// HighNullColumns returns the columns whose null ratio exceeds the
// threshold, sorted. It reports only; dropping is a separate,
// caller-selected step.
func HighNullColumns(t domain.Table, threshold float64) []string {
	var cols []string
	for _, col := range t.Columns() {
		if t.NullRatio(col) > threshold {
			cols = append(cols, col)
		}
	}
	sort.Strings(cols)
	return cols
}
