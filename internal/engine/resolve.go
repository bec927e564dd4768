package engine

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hinwise/smarttanken/internal/plz"
)

// Radius bounds in kilometres. The price provider caps its search radius at
// 25 km, so both endpoints share the same ceiling.
const (
	DefaultConsumerRadiusKm = 5.0
	DefaultIndexRadiusKm    = 15.0
	MaxRadiusKm             = 25.0
)

var plzPattern = regexp.MustCompile(`^[0-9]{1,5}$`)

// LocationQuery is the raw location part of a request: either a postal code
// or a coordinate pair, never both.
type LocationQuery struct {
	PLZ string
	Lat *float64
	Lng *float64
}

// ResolvedLocation is the outcome of location resolution: the search origin
// plus a label for response metadata.
type ResolvedLocation struct {
	Coordinate Coordinate
	Origin     string
	PLZ        string
}

// ResolveLocation turns a location query into a coordinate. Postal codes are
// resolved against the static table; coordinates are range-checked. Exactly
// one of the two forms must be supplied.
func ResolveLocation(table *plz.Table, q LocationQuery) (ResolvedLocation, error) {
	hasPLZ := q.PLZ != ""
	hasCoord := q.Lat != nil || q.Lng != nil

	if hasPLZ && hasCoord {
		return ResolvedLocation{}, fmt.Errorf("%w: provide either plz or lat/lng, not both", ErrInvalidLocationInput)
	}
	if !hasPLZ && !hasCoord {
		return ResolvedLocation{}, fmt.Errorf("%w: provide plz or lat/lng", ErrInvalidLocationInput)
	}

	if hasPLZ {
		code, err := normalizePLZ(q.PLZ)
		if err != nil {
			return ResolvedLocation{}, err
		}
		entry, ok := table.Lookup(code)
		if !ok {
			return ResolvedLocation{}, fmt.Errorf("%w: %s", ErrUnknownPostalCode, code)
		}
		return ResolvedLocation{
			Coordinate: Coordinate{Lat: entry.Lat, Lng: entry.Lng},
			Origin:     "PLZ " + code,
			PLZ:        code,
		}, nil
	}

	if q.Lat == nil || q.Lng == nil {
		return ResolvedLocation{}, fmt.Errorf("%w: lat and lng must be supplied together", ErrInvalidLocationInput)
	}
	coord := Coordinate{Lat: *q.Lat, Lng: *q.Lng}
	if err := coord.Validate(); err != nil {
		return ResolvedLocation{}, err
	}
	return ResolvedLocation{Coordinate: coord, Origin: "coordinates"}, nil
}

// normalizePLZ left-pads short numeric codes to five digits, matching how
// leading zeros get lost when codes travel through spreadsheets and query
// strings. Anything that is not 1-5 ASCII digits is rejected before lookup.
func normalizePLZ(code string) (string, error) {
	if !plzPattern.MatchString(code) {
		return "", fmt.Errorf("%w: postal code %q is not 1-5 digits", ErrInvalidLocationInput, code)
	}
	return strings.Repeat("0", 5-len(code)) + code, nil
}

// ValidateRadius checks a search radius in kilometres against a ceiling.
func ValidateRadius(radiusKm, maxKm float64) error {
	if radiusKm <= 0 {
		return fmt.Errorf("%w: %v km is not positive", ErrInvalidRadius, radiusKm)
	}
	if radiusKm > maxKm {
		return fmt.Errorf("%w: %v km exceeds the %v km maximum", ErrInvalidRadius, radiusKm, maxKm)
	}
	return nil
}
