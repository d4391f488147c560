package graph

import (
	"strings"
	"testing"

	"github.com/oakbrad/dungeonchurch-oracle/pkg/errors"
)

func TestReadColorTable(t *testing.T) {
	const colorsJSON = `{
	  "adventures": "#ff7f0e",
	  "spells": "#1f77b4",
	  "misc": null
	}`

	table, err := ReadColorTable(strings.NewReader(colorsJSON))
	if err != nil {
		t.Fatalf("ReadColorTable: %v", err)
	}

	tests := []struct {
		collection string
		want       string
	}{
		{"adventures", "#ff7f0e"},
		{"spells", "#1f77b4"},
		{"misc", DefaultColor},    // explicit null falls back
		{"unknown", DefaultColor}, // absent falls back
	}
	for _, tt := range tests {
		if got := table.GetColor(tt.collection); got != tt.want {
			t.Errorf("GetColor(%q) = %q, want %q", tt.collection, got, tt.want)
		}
	}

	if table.Len() != 3 {
		t.Errorf("Len = %d, want 3", table.Len())
	}
}

func TestColorTableNilSafe(t *testing.T) {
	var table *ColorTable
	if got := table.GetColor("anything"); got != DefaultColor {
		t.Errorf("nil table GetColor = %q, want default", got)
	}
	if table.Len() != 0 {
		t.Error("nil table Len should be 0")
	}
}

func TestReadColorTableMalformed(t *testing.T) {
	_, err := ReadColorTable(strings.NewReader(`{"a": 5}`))
	if !errors.Is(err, errors.ErrCodeInvalidColorTable) {
		t.Errorf("err = %v, want INVALID_COLOR_TABLE", err)
	}
}
