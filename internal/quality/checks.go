package quality

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/couchcryptid/weather-harmonizer/internal/domain"
)

// requiredFields must exist and carry data after harmonization.
var requiredFields = []string{"station_id", "station_name", "latitude", "longitude"}

// stationTuple are the identity columns of the duplicate-station check.
var stationTuple = []string{"station_id", "station_name", "latitude", "longitude"}

// timeRe is the strict 24-hour HH:MM:SS pattern.
var timeRe = regexp.MustCompile(`^(?:[01]\d|2[0-3]):[0-5]\d:[0-5]\d$`)

// checkRequiredFields distinguishes a column that is absent entirely from
// one that is present but never populated.
func (c *Checker) checkRequiredFields(t domain.Table) *Section {
	s := &Section{Name: "required fields"}
	columns := columnSet(t)

	for _, field := range requiredFields {
		if _, ok := columns[field]; !ok {
			s.Flagf("column %q absent", field)
			continue
		}
		if len(t) > 0 && t.NullRatio(field) == 1 {
			s.Flagf("column %q present but entirely empty", field)
		}
	}
	if s.Clean() {
		s.Notef("all required fields present and populated")
	}
	return s
}

// checkNullRatios reports the null fraction of every column, flagging
// those above the threshold. Nothing is removed.
func (c *Checker) checkNullRatios(t domain.Table) *Section {
	s := &Section{Name: "null ratios"}

	type colRatio struct {
		col   string
		ratio float64
	}
	ratios := make([]colRatio, 0, len(t.Columns()))
	for _, col := range t.Columns() {
		ratios = append(ratios, colRatio{col, t.NullRatio(col)})
	}
	sort.SliceStable(ratios, func(i, j int) bool { return ratios[i].ratio > ratios[j].ratio })

	for _, cr := range ratios {
		s.Notef("%-24s %.2f", cr.col, cr.ratio)
		if cr.ratio > c.nullThreshold {
			s.Flagf("column %q exceeds null-ratio threshold: %.2f > %.2f", cr.col, cr.ratio, c.nullThreshold)
		}
	}
	return s
}

// checkTypes reports the inferred storage type of every column.
// Informational only.
func (c *Checker) checkTypes(t domain.Table) *Section {
	s := &Section{Name: "column types"}
	for _, col := range t.Columns() {
		s.Notef("%-24s %s", col, inferType(t, col))
	}
	return s
}

// inferType names the value type seen in a column: a single Go/JSON type,
// "mixed(...)" when rows disagree, "null" when never populated.
func inferType(t domain.Table, col string) string {
	seen := make(map[string]struct{})
	for _, rec := range t {
		v, ok := rec[col]
		if !ok || v == nil {
			continue
		}
		seen[typeName(v)] = struct{}{}
	}
	if len(seen) == 0 {
		return "null"
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	if len(names) == 1 {
		return names[0]
	}
	return "mixed(" + joinComma(names) + ")"
}

func typeName(v any) string {
	switch v.(type) {
	case float64:
		return "number"
	case string:
		return "string"
	case bool:
		return "bool"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func joinComma(items []string) string {
	out := ""
	for i, it := range items {
		if i > 0 {
			out += ","
		}
		out += it
	}
	return out
}

// checkGeoRanges counts rows whose coordinates fall outside the valid
// ranges: latitude [-90, 90], longitude [-180, 180], both inclusive. A
// present but non-numeric coordinate also counts as out of range.
func (c *Checker) checkGeoRanges(t domain.Table) *Section {
	s := &Section{Name: "geographic ranges"}
	columns := columnSet(t)

	bounds := []struct {
		col      string
		min, max float64
	}{
		{"latitude", -90, 90},
		{"longitude", -180, 180},
	}

	for _, b := range bounds {
		if _, ok := columns[b.col]; !ok {
			s.Notef("column %q absent, skipped", b.col)
			continue
		}
		invalid := 0
		for _, rec := range t {
			if rec.IsNull(b.col) {
				continue
			}
			v, ok := rec.Float(b.col)
			if !ok || v < b.min || v > b.max {
				invalid++
			}
		}
		if invalid > 0 {
			s.Flagf("%d row(s) with %s outside [%g, %g]", invalid, b.col, b.min, b.max)
		}
	}
	if s.Clean() {
		s.Notef("all coordinates within valid ranges")
	}
	return s
}

// checkDuplicateStations counts rows involved in exact-tuple duplicates
// over the station identity columns and shows a sample of the deduplicated
// set. An empty table reports zero duplicates.
func (c *Checker) checkDuplicateStations(t domain.Table) *Section {
	s := &Section{Name: "duplicate stations"}
	columns := columnSet(t)

	for _, col := range stationTuple {
		if _, ok := columns[col]; !ok && len(t) > 0 {
			s.Notef("column %q missing, duplicate check skipped", col)
			return s
		}
	}

	counts := make(map[string]int)
	var order []string
	for _, rec := range t {
		key := tupleKey(rec)
		if counts[key] == 0 {
			order = append(order, key)
		}
		counts[key]++
	}

	duplicated := 0
	for _, n := range counts {
		if n > 1 {
			duplicated += n
		}
	}

	if duplicated == 0 {
		s.Notef("no exact station duplicates (%d unique tuple(s))", len(order))
	} else {
		s.Flagf("%d row(s) involved in exact station duplicates", duplicated)
	}

	sample := order
	if len(sample) > 5 {
		sample = sample[:5]
	}
	for _, key := range sample {
		s.Notef("unique: %s", key)
	}
	return s
}

func tupleKey(rec domain.Record) string {
	key := ""
	for i, col := range stationTuple {
		if i > 0 {
			key += " | "
		}
		if rec.IsNull(col) {
			key += "<null>"
		} else {
			key += fmt.Sprintf("%v", rec[col])
		}
	}
	return key
}

// checkPlausibility verifies that non-null temperatures carry a numeric
// token and non-null times match HH:MM:SS. Invalid rows are printed in
// full for manual inspection.
func (c *Checker) checkPlausibility(t domain.Table) *Section {
	s := &Section{Name: "value plausibility"}
	columns := columnSet(t)

	c.checkTemperature(s, t, columns)
	c.checkTime(s, t, columns)
	return s
}

func (c *Checker) checkTemperature(s *Section, t domain.Table, columns map[string]struct{}) {
	col := temperatureColumn(columns)
	if col == "" {
		s.Notef("no temperature column, skipped")
		return
	}

	invalid := 0
	for _, rec := range t {
		if rec.IsNull(col) {
			continue
		}
		// Valid when numeric, or when the shared extraction rule can pull
		// a number out of the string form.
		if _, ok := domain.ExtractNumber(rec[col]); !ok {
			invalid++
			s.Flagf("unusable %s: %s", col, renderRow(rec))
		}
	}
	if invalid == 0 {
		s.Notef("all non-null %s values usable", col)
	}
}

// temperatureColumn picks the temperature field under either naming
// scheme: the raw feeds say "Temperature", harmonized artifacts
// "temperature".
func temperatureColumn(columns map[string]struct{}) string {
	for _, candidate := range []string{"Temperature", "temperature"} {
		if _, ok := columns[candidate]; ok {
			return candidate
		}
	}
	return ""
}

func (c *Checker) checkTime(s *Section, t domain.Table, columns map[string]struct{}) {
	if _, ok := columns["Time"]; !ok {
		s.Notef("column \"Time\" absent, skipped")
		return
	}

	invalid := 0
	for _, rec := range t {
		if rec.IsNull("Time") {
			continue
		}
		v, ok := rec.String("Time")
		if !ok || !timeRe.MatchString(strings.TrimSpace(v)) {
			invalid++
			s.Flagf("unusable Time: %s", renderRow(rec))
		}
	}
	if invalid == 0 {
		s.Notef("all non-null Time values match HH:MM:SS")
	}
}

func renderRow(rec domain.Record) string {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Sprintf("%v", rec)
	}
	return string(data)
}

func columnSet(t domain.Table) map[string]struct{} {
	set := make(map[string]struct{})
	for _, col := range t.Columns() {
		set[col] = struct{}{}
	}
	return set
}
