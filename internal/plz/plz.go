// Package plz loads the static German postal code table used for location
// resolution. The table is parsed and validated once at startup and is
// immutable afterwards, so it can be shared across concurrent requests
// without locks.
package plz

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
)

//go:embed plz_data.json
var embedded []byte

var codePattern = regexp.MustCompile(`^[0-9]{5}$`)

// Entry is one postal code with the coordinate of its district centre.
type Entry struct {
	Code string  `json:"plz"`
	City string  `json:"city"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

// Table is the read-only postal code lookup built at startup.
type Table struct {
	entries map[string]Entry
}

// Load parses the bundled table. The bundled data covers the central postal
// districts of the larger German cities; a full national table can be loaded
// with LoadFile instead.
func Load() (*Table, error) {
	return Parse(embedded)
}

// LoadFile parses a postal table from an external JSON file.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading postal table: %w", err)
	}
	return Parse(data)
}

// Parse validates raw table JSON. Malformed codes, out-of-range coordinates
// and duplicate entries are load errors, never tolerated per-request.
func Parse(data []byte) (*Table, error) {
	var raw []Entry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("error parsing postal table: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("postal table contains no entries")
	}

	entries := make(map[string]Entry, len(raw))
	for _, e := range raw {
		if !codePattern.MatchString(e.Code) {
			return nil, fmt.Errorf("postal table: malformed code %q", e.Code)
		}
		if e.Lat < -90 || e.Lat > 90 || e.Lng < -180 || e.Lng > 180 {
			return nil, fmt.Errorf("postal table: code %s has out-of-range coordinate (%v, %v)", e.Code, e.Lat, e.Lng)
		}
		if _, dup := entries[e.Code]; dup {
			return nil, fmt.Errorf("postal table: duplicate code %s", e.Code)
		}
		entries[e.Code] = e
	}

	return &Table{entries: entries}, nil
}

// Lookup returns the entry for an exact 5-digit code.
func (t *Table) Lookup(code string) (Entry, bool) {
	e, ok := t.entries[code]
	return e, ok
}

// Len reports the number of postal codes in the table.
func (t *Table) Len() int {
	return len(t.entries)
}

// Codes returns all postal codes in the table, in no particular order.
func (t *Table) Codes() []string {
	codes := make([]string, 0, len(t.entries))
	for c := range t.entries {
		codes = append(codes, c)
	}
	return codes
}
