package graph

import (
	"encoding/json"
	"io"
	"os"

	"github.com/oakbrad/dungeonchurch-oracle/pkg/errors"
)

// =============================================================================
// ColorTable - Collection Color Lookup
// =============================================================================

// ColorTable maps collection IDs to hex color strings. It is produced by the
// color-extraction pipeline and read-only here. Entries may be explicitly
// null, which is treated the same as absence.
type ColorTable struct {
	colors map[string]*string
}

// NewColorTable builds a color table from an in-memory mapping.
func NewColorTable(colors map[string]*string) *ColorTable {
	return &ColorTable{colors: colors}
}

// ReadColorTableFile reads a color table JSON file, a flat object mapping
// collection IDs to hex strings or null.
func ReadColorTableFile(path string) (*ColorTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open color table %s", path)
	}
	defer f.Close()
	return ReadColorTable(f)
}

// ReadColorTable decodes a color table from an io.Reader.
func ReadColorTable(r io.Reader) (*ColorTable, error) {
	var colors map[string]*string
	if err := json.NewDecoder(r).Decode(&colors); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidColorTable, err, "decode color table")
	}
	return &ColorTable{colors: colors}, nil
}

// GetColor returns the hex color for a collection, falling back to
// DefaultColor when the entry is absent or null. Lookup never errors.
func (t *ColorTable) GetColor(collectionID string) string {
	if t == nil {
		return DefaultColor
	}
	if c, ok := t.colors[collectionID]; ok && c != nil && *c != "" {
		return *c
	}
	return DefaultColor
}

// Len returns the number of explicit entries in the table.
func (t *ColorTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.colors)
}
