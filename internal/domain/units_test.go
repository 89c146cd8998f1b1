package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected float64
		ok       bool
	}{
		{"plain float", 12.5, 12.5, true},
		{"plain int", 7, 7.0, true},
		{"numeric string", "12.5", 12.5, true},
		{"comma decimal separator", "29,91", 29.91, true},
		{"value with unit text", "59.4 °F", 59.4, true},
		{"unit before value", "ca. 3.2 mph", 3.2, true},
		{"non-breaking space", "12,5 °C", 12.5, true},
		{"negative value", "-5", -5, true},
		{"negative decimal", "-3.2 °C", -3.2, true},
		{"explicit plus sign", "+4.1", 4.1, true},
		{"leading dot", ".5 in", 0.5, true},
		{"integer in text", "88 %", 88, true},
		{"empty string", "", 0, false},
		{"no numeric token", "calm", 0, false},
		{"nil", nil, 0, false},
		{"bool", true, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := ExtractNumber(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, v)
			}
		})
	}
}

func TestExtractNumberIdempotent(t *testing.T) {
	// Extracting from an already-numeric value returns it unchanged.
	for _, v := range []float64{-40, 0, 0.5, 98.6, 1013.25} {
		got, ok := ExtractNumber(v)
		assert.True(t, ok)
		assert.Equal(t, v, got)
	}
}

func TestFahrenheitToCelsius(t *testing.T) {
	tests := []struct {
		f        float64
		expected float64
	}{
		{32, 0},
		{212, 100},
		{-40, -40},
		{59.4, 15.22},
		{98.6, 37},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, FahrenheitToCelsius(tt.f))
	}
}

func TestConversionsMonotonic(t *testing.T) {
	inputs := []float64{-10, 0, 1, 29.91, 100}
	converters := map[string]func(float64) float64{
		"fahrenheit": FahrenheitToCelsius,
		"inches_hg":  InchesHgToHPa,
		"mph":        MphToKmh,
		"inches":     InchesToMillimeters,
	}
	for name, convert := range converters {
		t.Run(name, func(t *testing.T) {
			for i := 1; i < len(inputs); i++ {
				assert.Less(t, convert(inputs[i-1]), convert(inputs[i]))
			}
		})
	}
}

func TestConversionConstants(t *testing.T) {
	assert.Equal(t, 991.98, InchesHgToHPa(30))
	assert.Equal(t, 14.12, MphToKmh(10))
	assert.Equal(t, 25.4, InchesToMillimeters(1))
	assert.Equal(t, 0.254, InchesToMillimeters(0.01))
}

func TestConvertUnits(t *testing.T) {
	t.Run("string values with units", func(t *testing.T) {
		table := Table{{
			"Temperature":    "59.4 °F",
			"Dew Point":      "53.6 °F",
			"Pressure":       "29,91 in",
			"Speed":          "2.2 mph",
			"Gust":           "3.4 mph",
			"Humidity":       "92 %",
			"Precip. Rate.":  "0.01 in",
			"Precip. Accum.": "1 in",
		}}

		ConvertUnits(table)

		rec := table[0]
		assert.Equal(t, 15.22, rec["Temperature"])
		assert.Equal(t, 12.0, rec["Dew Point"])
		assert.Equal(t, 989.0, rec["Pressure"])
		assert.Equal(t, 3.11, rec["Speed"])
		assert.Equal(t, 4.8, rec["Gust"])
		assert.Equal(t, 92.0, rec["Humidity"])
		assert.Equal(t, 0.254, rec["Precip. Rate."])
		assert.Equal(t, 25.4, rec["Precip. Accum."])
	})

	t.Run("absent fields stay absent", func(t *testing.T) {
		table := Table{{"Time": "00:04:00"}}
		ConvertUnits(table)

		assert.False(t, table[0].Has("Temperature"))
		assert.False(t, table[0].Has("Pressure"))
	})

	t.Run("unparseable value becomes null", func(t *testing.T) {
		table := Table{{"Temperature": "n/a", "Humidity": ""}}
		ConvertUnits(table)

		assert.True(t, table[0].Has("Temperature"))
		assert.Nil(t, table[0]["Temperature"])
		assert.Nil(t, table[0]["Humidity"])
	})

	t.Run("already numeric value converts", func(t *testing.T) {
		table := Table{{"Temperature": 32.0}}
		ConvertUnits(table)
		assert.Equal(t, 0.0, table[0]["Temperature"])
	})

	t.Run("non-measurement fields untouched", func(t *testing.T) {
		table := Table{{"Time": "00:04:00", "Wind": "WSW", "Temperature": "32 °F"}}
		ConvertUnits(table)

		assert.Equal(t, "00:04:00", table[0]["Time"])
		assert.Equal(t, "WSW", table[0]["Wind"])
	})
}
