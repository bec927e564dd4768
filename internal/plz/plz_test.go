package plz

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBundledTable(t *testing.T) {
	table, err := Load()
	require.NoError(t, err)
	require.NotNil(t, table)

	assert.Greater(t, table.Len(), 100, "bundled table should cover the larger cities")

	entry, ok := table.Lookup("10115")
	require.True(t, ok, "Berlin Mitte must be in the bundled table")
	assert.Equal(t, "Berlin", entry.City)
	assert.InDelta(t, 52.53, entry.Lat, 0.05)
	assert.InDelta(t, 13.38, entry.Lng, 0.05)
}

func TestLoadBundledTableCoordinatesInGermany(t *testing.T) {
	table, err := Load()
	require.NoError(t, err)

	for _, code := range table.Codes() {
		entry, ok := table.Lookup(code)
		require.True(t, ok)
		assert.GreaterOrEqual(t, entry.Lat, 47.0, "code %s", code)
		assert.LessOrEqual(t, entry.Lat, 55.1, "code %s", code)
		assert.GreaterOrEqual(t, entry.Lng, 5.8, "code %s", code)
		assert.LessOrEqual(t, entry.Lng, 15.1, "code %s", code)
	}
}

func TestParseRejectsBadTables(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{
			name:    "invalid json",
			data:    `{"plz": "10115"`,
			wantErr: "error parsing postal table",
		},
		{
			name:    "empty table",
			data:    `[]`,
			wantErr: "no entries",
		},
		{
			name:    "short code",
			data:    `[{"plz": "115", "city": "Berlin", "lat": 52.5, "lng": 13.4}]`,
			wantErr: `malformed code "115"`,
		},
		{
			name:    "non-numeric code",
			data:    `[{"plz": "1011A", "city": "Berlin", "lat": 52.5, "lng": 13.4}]`,
			wantErr: `malformed code "1011A"`,
		},
		{
			name:    "latitude out of range",
			data:    `[{"plz": "10115", "city": "Berlin", "lat": 152.5, "lng": 13.4}]`,
			wantErr: "out-of-range coordinate",
		},
		{
			name:    "longitude out of range",
			data:    `[{"plz": "10115", "city": "Berlin", "lat": 52.5, "lng": -200}]`,
			wantErr: "out-of-range coordinate",
		},
		{
			name: "duplicate code",
			data: `[{"plz": "10115", "city": "Berlin", "lat": 52.5, "lng": 13.4},
			        {"plz": "10115", "city": "Berlin", "lat": 52.6, "lng": 13.5}]`,
			wantErr: "duplicate code 10115",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := Parse([]byte(tt.data))
			require.Error(t, err)
			assert.Nil(t, table)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "table.json")
	data := `[{"plz": "86150", "city": "Augsburg", "lat": 48.368, "lng": 10.898}]`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	table, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())

	entry, ok := table.Lookup("86150")
	require.True(t, ok)
	assert.Equal(t, "Augsburg", entry.City)
}

func TestLoadFileMissing(t *testing.T) {
	table, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Nil(t, table)
	assert.Contains(t, err.Error(), "error reading postal table")
}

func TestLookupMiss(t *testing.T) {
	table, err := Load()
	require.NoError(t, err)

	_, ok := table.Lookup("99999")
	assert.False(t, ok)
}
