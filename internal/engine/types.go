// Package engine implements the fuel price decision core: location
// resolution, proximity ranking, the intraday trend heuristic, the hassle
// score verdict, and the diesel logistics index. Everything in this package
// is a pure function of its inputs; network I/O lives in the gateway.
package engine

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// FuelType identifies one of the fuel grades published by the price provider.
type FuelType string

const (
	FuelE5     FuelType = "e5"
	FuelE10    FuelType = "e10"
	FuelDiesel FuelType = "diesel"
)

// ParseFuelType validates a user-supplied fuel type string.
func ParseFuelType(s string) (FuelType, error) {
	switch FuelType(s) {
	case FuelE5, FuelE10, FuelDiesel:
		return FuelType(s), nil
	}
	return "", fmt.Errorf("unknown fuel type %q (want e5, e10 or diesel)", s)
}

// Coordinate is a WGS84 latitude/longitude pair.
type Coordinate struct {
	Lat float64
	Lng float64
}

// Validate checks the coordinate against the WGS84 value ranges.
func (c Coordinate) Validate() error {
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("%w: latitude %v out of range [-90, 90]", ErrInvalidCoordinate, c.Lat)
	}
	if c.Lng < -180 || c.Lng > 180 {
		return fmt.Errorf("%w: longitude %v out of range [-180, 180]", ErrInvalidCoordinate, c.Lng)
	}
	return nil
}

// FuelObservation is one station's price for one fuel grade as reported by
// the gateway. Observations live for a single request.
type FuelObservation struct {
	StationID   string
	StationName string
	Brand       string
	Coordinate  Coordinate
	FuelType    FuelType
	Price       decimal.Decimal
	DistanceKm  float64
	IsOpen      bool
	ObservedAt  time.Time
}

// Verdict is the binary outcome of the hassle score policy.
type Verdict string

const (
	VerdictGo   Verdict = "GO"
	VerdictWait Verdict = "WAIT"
)

// TrendDirection is the heuristic price movement estimate.
type TrendDirection string

const (
	TrendRising  TrendDirection = "RISING"
	TrendFalling TrendDirection = "FALLING"
	TrendStable  TrendDirection = "STABLE"
)

// TrendEstimate pairs a direction with the named intraday window that
// produced it, so responses can label the estimate honestly.
type TrendEstimate struct {
	Direction TrendDirection
	Window    string
}

// HassleVerdict scores one ranked candidate against the baseline price.
type HassleVerdict struct {
	Station       FuelObservation
	SavingsAmount decimal.Decimal
	SavingsPct    decimal.Decimal
	HassleScore   float64
	Verdict       Verdict
}

// DieselIndexResult is the regional diesel market benchmark for B2B use.
type DieselIndexResult struct {
	Region       string
	AveragePrice decimal.Decimal
	LowestPrice  decimal.Decimal
	HighestPrice decimal.Decimal
	SampleSize   int
	SurchargePct decimal.Decimal
	Trend        TrendEstimate
}
