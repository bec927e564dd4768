package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dieselObs(id, price string, distanceKm float64) FuelObservation {
	o := obs(id, price, distanceKm)
	o.FuelType = FuelDiesel
	return o
}

func TestComputeDieselIndex(t *testing.T) {
	observations := []FuelObservation{
		dieselObs("a", "1.652", 3.2),
		dieselObs("b", "1.704", 8.1),
		dieselObs("c", "1.689", 12.4),
	}
	at := time.Date(2025, 6, 12, 14, 0, 0, 0, time.UTC)

	result, err := ComputeDieselIndex("PLZ 10115", observations, at)
	require.NoError(t, err)

	assert.Equal(t, "PLZ 10115", result.Region)
	assert.Equal(t, 3, result.SampleSize)
	requireDecimalEqual(t, "1.682", result.AveragePrice)
	requireDecimalEqual(t, "1.652", result.LowestPrice)
	requireDecimalEqual(t, "1.704", result.HighestPrice)
	requireDecimalEqual(t, "2.73", result.SurchargePct)
	assert.Equal(t, TrendFalling, result.Trend.Direction)
}

func TestComputeDieselIndexIgnoresOtherFuelsAndClosed(t *testing.T) {
	closed := dieselObs("closed", "1.40", 1.0)
	closed.IsOpen = false

	observations := []FuelObservation{
		dieselObs("a", "1.700", 1.0),
		obs("petrol", "1.900", 1.0), // e5, must not move the diesel index
		closed,
	}

	result, err := ComputeDieselIndex("coordinates", observations, time.Now())
	require.NoError(t, err)

	assert.Equal(t, 1, result.SampleSize)
	requireDecimalEqual(t, "1.700", result.AveragePrice)
}

func TestComputeDieselIndexSurchargeNeverNegative(t *testing.T) {
	result, err := ComputeDieselIndex("r", []FuelObservation{dieselObs("a", "1.40", 1.0)}, time.Now())
	require.NoError(t, err)

	requireDecimalEqual(t, "0", result.SurchargePct)
}

func TestComputeDieselIndexSurchargeCapped(t *testing.T) {
	result, err := ComputeDieselIndex("r", []FuelObservation{dieselObs("a", "3.50", 1.0)}, time.Now())
	require.NoError(t, err)

	// (3.50 - 1.50) / 0.10 * 1.5 would be 30%, the cap holds it at 25%.
	requireDecimalEqual(t, "25", result.SurchargePct)
}

func TestAveragePrice(t *testing.T) {
	observations := []FuelObservation{
		obs("a", "1.70", 1.0),
		obs("b", "1.75", 1.0),
	}

	requireDecimalEqual(t, "1.725", AveragePrice(observations))
	requireDecimalEqual(t, "0", AveragePrice(nil))
}

func TestComputeDieselIndexInsufficientData(t *testing.T) {
	closed := dieselObs("closed", "1.70", 1.0)
	closed.IsOpen = false

	at := time.Date(2025, 6, 12, 8, 0, 0, 0, time.UTC)
	result, err := ComputeDieselIndex("PLZ 86150", []FuelObservation{closed, obs("petrol", "1.80", 1.0)}, at)

	require.ErrorIs(t, err, ErrInsufficientData)

	// The zero-confidence shape still carries region and trend so the B2B
	// endpoint can render a complete response.
	assert.Equal(t, "PLZ 86150", result.Region)
	assert.Zero(t, result.SampleSize)
	assert.True(t, result.AveragePrice.IsZero())
	assert.True(t, result.SurchargePct.IsZero())
	assert.Equal(t, TrendRising, result.Trend.Direction)
}
