// Package catalog loads the module table that drives the daily rotation.
//
// The table's sequence order IS the rotation order. Once archive pages have
// been generated it must not be reordered, or historical pages will describe
// the wrong module for their date. Appending new modules at the end is safe.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"tianji-daily/internal/models"
)

// tableFile matches the on-disk shape: {"modules": [...]}
type tableFile struct {
	Modules []models.Module `json:"modules"`
}

// Catalog is the immutable, ordered module table. Construct one with Load
// and pass it into whatever needs it - no globals.
type Catalog struct {
	modules []models.Module
}

// Load reads and validates the module table. Any problem here is fatal to
// the caller: without a valid table nothing can be rendered.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read module table %s: %w", path, err)
	}

	var table tableFile
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("module table %s is not valid JSON: %w", path, err)
	}

	if len(table.Modules) == 0 {
		return nil, fmt.Errorf("module table %s contains no modules", path)
	}

	// required fields and duplicate ids are load errors, not render surprises
	seen := make(map[string]bool, len(table.Modules))
	for i := range table.Modules {
		m := &table.Modules[i]
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("module table %s entry %d: %w", path, i, err)
		}
		if seen[m.ID] {
			return nil, fmt.Errorf("module table %s has duplicate id %s", path, m.ID)
		}
		seen[m.ID] = true
	}

	return &Catalog{modules: table.Modules}, nil
}

// Len returns how many modules are in the table
func (c *Catalog) Len() int {
	return len(c.modules)
}

// At returns the module at a rotation index
func (c *Catalog) At(i int) models.Module {
	return c.modules[i]
}

// Modules returns a copy of the table so callers can't mutate the order
func (c *Catalog) Modules() []models.Module {
	out := make([]models.Module, len(c.modules))
	copy(out, c.modules)
	return out
}
