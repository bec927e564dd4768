package engine

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Surcharge model constants. The reference price is the baseline a typical
// carrier contract assumes; every 10 cents of average price above it adds
// 1.5% to the suggested surcharge, capped at a contractually plausible 25%.
var (
	surchargeReferencePrice = decimal.RequireFromString("1.50")
	surchargePriceStep      = decimal.RequireFromString("0.10")
	surchargePctPerStep     = decimal.RequireFromString("1.5")
	surchargeCapPct         = decimal.RequireFromString("25")
)

// ComputeDieselIndex benchmarks the regional diesel market from the given
// observations. With no qualifying sample it returns a zero-confidence
// result alongside ErrInsufficientData so callers can still render the
// response shape.
func ComputeDieselIndex(region string, observations []FuelObservation, at time.Time) (DieselIndexResult, error) {
	qualified := Qualify(observations, FuelDiesel)

	result := DieselIndexResult{
		Region: region,
		Trend:  EstimateTrend(at),
	}
	if len(qualified) == 0 {
		return result, fmt.Errorf("%w: no open diesel prices in range", ErrInsufficientData)
	}

	low := qualified[0].Price
	high := qualified[0].Price
	for _, obs := range qualified[1:] {
		low = decimal.Min(low, obs.Price)
		high = decimal.Max(high, obs.Price)
	}

	result.AveragePrice = AveragePrice(qualified)
	result.LowestPrice = low
	result.HighestPrice = high
	result.SampleSize = len(qualified)
	result.SurchargePct = suggestedSurcharge(result.AveragePrice)
	return result, nil
}

// AveragePrice is the arithmetic mean of the observations' prices, rounded
// to 3 decimals like provider prices. Zero observations yield zero.
func AveragePrice(observations []FuelObservation) decimal.Decimal {
	if len(observations) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, obs := range observations {
		sum = sum.Add(obs.Price)
	}
	return sum.Div(decimal.NewFromInt(int64(len(observations)))).Round(3)
}

// suggestedSurcharge derives the fuel surcharge percentage from the average
// price. Never negative, never above the cap.
func suggestedSurcharge(avg decimal.Decimal) decimal.Decimal {
	pct := avg.Sub(surchargeReferencePrice).Div(surchargePriceStep).Mul(surchargePctPerStep)
	if pct.IsNegative() {
		return decimal.Zero
	}
	if pct.GreaterThan(surchargeCapPct) {
		return surchargeCapPct
	}
	return pct.Round(2)
}
