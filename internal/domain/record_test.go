package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordNulls(t *testing.T) {
	rec := Record{"a": 1.0, "b": nil}

	assert.True(t, rec.Has("a"))
	assert.True(t, rec.Has("b"))
	assert.False(t, rec.Has("c"))

	assert.False(t, rec.IsNull("a"))
	assert.True(t, rec.IsNull("b"))
	assert.True(t, rec.IsNull("c"))
}

func TestRecordClone(t *testing.T) {
	rec := Record{"a": 1.0}
	clone := rec.Clone()
	clone["a"] = 2.0

	assert.Equal(t, 1.0, rec["a"])
	assert.Equal(t, 2.0, clone["a"])
}

func TestTableColumns(t *testing.T) {
	table := Table{
		{"b": 1.0, "a": "x"},
		{"c": nil},
		{},
	}
	assert.Equal(t, []string{"a", "b", "c"}, table.Columns())
}

func TestTableNullRatio(t *testing.T) {
	table := Table{
		{"a": 1.0, "b": nil},
		{"a": nil},
		{"a": 2.0, "b": "x"},
		{"a": 3.0},
	}

	assert.Equal(t, 0.25, table.NullRatio("a"))
	assert.Equal(t, 0.75, table.NullRatio("b"))
	assert.Equal(t, 1.0, table.NullRatio("missing"))
	assert.Equal(t, 0.0, Table{}.NullRatio("a"))
}

func TestTableDropColumns(t *testing.T) {
	table := Table{
		{"a": 1.0, "b": 2.0},
		{"b": 3.0},
	}
	table.DropColumns("b", "missing")

	assert.Equal(t, []string{"a"}, table.Columns())
	assert.False(t, table[1].Has("b"))
}
