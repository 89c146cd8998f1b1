package domain

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// numberRe matches the first signed numeric token with an optional
// fractional part, e.g. "-3.2" in "feels like -3.2 °C".
var numberRe = regexp.MustCompile(`[-+]?\d+(?:\.\d+)?|[-+]?\.\d+`)

// ExtractNumber pulls a numeric value out of a raw field. Already-numeric
// values pass through unchanged. Strings are normalized first (comma decimal
// separator to dot, non-breaking spaces to plain spaces, trimmed) and then
// scanned for the first numeric token. Returns ok=false for "no value":
// nil, empty, or a string with no numeric token. Never panics on any input
// the JSON decoder can produce.
func ExtractNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		s := strings.ReplaceAll(v, ",", ".")
		s = strings.ReplaceAll(s, "\u00a0", " ")
		s = strings.TrimSpace(s)
		tok := numberRe.FindString(s)
		if tok == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// FahrenheitToCelsius converts °F to °C, rounded to 2 decimals.
func FahrenheitToCelsius(f float64) float64 {
	return round2((f - 32) * 5.0 / 9.0)
}

// InchesHgToHPa converts inches of mercury to hectopascal, rounded to 2
// decimals. The constant matches the upstream feed's calibration.
func InchesHgToHPa(inch float64) float64 {
	return round2(inch * 33.066)
}

// MphToKmh converts miles per hour to km/h, rounded to 2 decimals.
func MphToKmh(mph float64) float64 {
	return round2(mph * 1.412)
}

// InchesToMillimeters converts inches to millimeters, rounded to 3 decimals.
// Used for precipitation rate and accumulation.
func InchesToMillimeters(inch float64) float64 {
	return round3(inch * 25.4)
}

// metricConversions maps imperial source columns to their converters.
// A nil converter means numeric extraction only (humidity is already a
// percentage, just wrapped in unit text).
var metricConversions = []struct {
	column  string
	convert func(float64) float64
}{
	{"Temperature", FahrenheitToCelsius},
	{"Dew Point", FahrenheitToCelsius},
	{"Pressure", InchesHgToHPa},
	{"Speed", MphToKmh},
	{"Gust", MphToKmh},
	{"Humidity", nil},
	{"Precip. Rate.", InchesToMillimeters},
	{"Precip. Accum.", InchesToMillimeters},
}

// ConvertUnits rewrites the imperial measurement columns of a table to
// metric values in place. Absent fields stay absent; a field whose value
// yields no numeric token becomes null. A conversion failure never aborts
// the row.
func ConvertUnits(t Table) {
	for _, rec := range t {
		for _, mc := range metricConversions {
			v, ok := rec[mc.column]
			if !ok {
				continue
			}
			n, ok := ExtractNumber(v)
			if !ok {
				rec[mc.column] = nil
				continue
			}
			if mc.convert != nil {
				n = mc.convert(n)
			}
			rec[mc.column] = n
		}
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
