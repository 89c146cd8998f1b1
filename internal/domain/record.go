package domain

import "sort"

// Record is one station-timestamp observation: a mapping from field name to
// scalar value. An absent key and a nil value both mean "no value"; fields
// not present in a given source are absent, not zero.
type Record map[string]any

// Has reports whether the field exists, even with a nil value.
func (r Record) Has(field string) bool {
	_, ok := r[field]
	return ok
}

// IsNull reports whether the field is absent or nil.
func (r Record) IsNull(field string) bool {
	v, ok := r[field]
	return !ok || v == nil
}

// Float returns the field as a float64. JSON numbers always decode to
// float64, so no other numeric types are considered.
func (r Record) Float(field string) (float64, bool) {
	v, ok := r[field].(float64)
	return v, ok
}

// String returns the field as a string.
func (r Record) String(field string) (string, bool) {
	v, ok := r[field].(string)
	return v, ok
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Table is the row-wise union of loader outputs. Rows keep their source
// order; column operations mutate rows in place.
type Table []Record

// Columns returns the sorted union of field names across all rows.
func (t Table) Columns() []string {
	seen := make(map[string]struct{})
	for _, rec := range t {
		for k := range rec {
			seen[k] = struct{}{}
		}
	}
	cols := make([]string, 0, len(seen))
	for k := range seen {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	return cols
}

// NullRatio returns the fraction of rows where the column is null.
// An empty table has ratio 0.
func (t Table) NullRatio(column string) float64 {
	if len(t) == 0 {
		return 0
	}
	nulls := 0
	for _, rec := range t {
		if rec.IsNull(column) {
			nulls++
		}
	}
	return float64(nulls) / float64(len(t))
}

// DropColumns removes the named columns from every row. Missing columns are
// ignored.
func (t Table) DropColumns(columns ...string) {
	for _, rec := range t {
		for _, c := range columns {
			delete(rec, c)
		}
	}
}
