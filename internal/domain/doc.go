// Package domain models weather observations collected from three
// heterogeneous upstream feeds and harmonized into one canonical schema.
//
// # Data Sources
//
// Two scalar feeds (belgique.jsonl, france.jsonl) are Airbyte-style
// newline-delimited JSON dumps of personal weather stations. Each line wraps
// the payload in an "_airbyte_data" envelope; the first line of every file is
// a schema/header line and carries no data. The feeds report imperial values
// as free-form strings ("59.4 °F", "29,92 in") and only a time-of-day field,
// never a full timestamp. Daily boundaries are reconstructed from a sentinel
// time value: the station emits "00:04:00" as the first reading of each day,
// so every repeated occurrence of that sentinel advances a synthetic calendar
// date that starts at a fixed epoch (2024-10-01 by default).
//
// One nested feed (info_climat.jsonl) packs a station directory and a
// per-station hourly map into each line:
//
//	{"_airbyte_data": {"stations": [{"id", "name", "latitude", "longitude",
//	"elevation"}], "hourly": {"<station id>": [<record or record-string>]}}}
//
// Hourly entries are sometimes JSON-encoded strings and need a second decode
// pass. Values are already metric. A combined "dh_utc" datetime
// ("2006-01-02 15:04:05") is split into the canonical "date" (DD-MM-YY) and
// "Time" (HH:MM:SS) fields.
//
// # Records
//
// Observation fields are dynamic: any key may be missing in a given source,
// and upstream format drift adds and removes columns without notice. Records
// are therefore modeled as open key/value maps with an explicit null
// convention (absent key and nil value are both "no value") instead of a
// closed struct. [Table] adds the column-wise operations the harmonizer
// needs on top of that.
//
// # Unit Conversion
//
// Fixed constants, applied to the two scalar feeds only:
//
//	Fahrenheit → Celsius        (f - 32) × 5/9      round 2
//	inches Hg  → hectopascal    in × 33.066         round 2
//	mph        → km/h           mph × 1.412         round 2
//	inches     → millimeters    in × 25.4           round 3 (precipitation)
//	humidity                    numeric extraction only
//
// Raw values may use a comma as decimal separator, contain non-breaking
// spaces, or mix text with the number. [ExtractNumber] pulls the first
// signed numeric token out of any of these; conversion of an absent or
// unparseable value yields null, never an error.
package domain
