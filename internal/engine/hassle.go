package engine

import "github.com/shopspring/decimal"

// Hassle score policy. The score is euros saved on a fill-up per kilometre
// of detour; below one euro per kilometre the detour is not worth the trip.
const (
	GoScoreThreshold       = 1.0
	MinimumDistanceFloorKm = 0.1
)

// DefaultTankSizeLiters is the fill-up volume behind every savings figure,
// sized for a typical German passenger car. A policy constant, not a request
// parameter.
var DefaultTankSizeLiters = decimal.NewFromInt(50)

var hundred = decimal.NewFromInt(100)

// BaselinePrice returns the highest price in the set: the worst alternative
// a driver would otherwise accept.
func BaselinePrice(observations []FuelObservation) decimal.Decimal {
	if len(observations) == 0 {
		return decimal.Zero
	}
	baseline := observations[0].Price
	for _, obs := range observations[1:] {
		if obs.Price.GreaterThan(baseline) {
			baseline = obs.Price
		}
	}
	return baseline
}

// Score rates one candidate against the baseline price. The distance floor
// keeps forecourt-adjacent stations from dividing by a rounding artifact.
func Score(candidate FuelObservation, baseline, tankLiters decimal.Decimal) HassleVerdict {
	savings := baseline.Sub(candidate.Price).Mul(tankLiters).Round(2)

	pct := decimal.Zero
	if baseline.IsPositive() {
		pct = baseline.Sub(candidate.Price).Div(baseline).Mul(hundred).Round(2)
	}

	distance := candidate.DistanceKm
	if distance < MinimumDistanceFloorKm {
		distance = MinimumDistanceFloorKm
	}
	score := savings.InexactFloat64() / distance

	verdict := VerdictWait
	if score >= GoScoreThreshold && savings.IsPositive() {
		verdict = VerdictGo
	}

	return HassleVerdict{
		Station:       candidate,
		SavingsAmount: savings,
		SavingsPct:    pct,
		HassleScore:   score,
		Verdict:       verdict,
	}
}

// BuildVerdicts scores every ranked candidate against the dearest of them.
// Ordering follows the input; an empty ranking produces no verdicts.
func BuildVerdicts(ranked []FuelObservation, tankLiters decimal.Decimal) []HassleVerdict {
	if len(ranked) == 0 {
		return nil
	}
	baseline := BaselinePrice(ranked)
	verdicts := make([]HassleVerdict, 0, len(ranked))
	for _, candidate := range ranked {
		verdicts = append(verdicts, Score(candidate, baseline, tankLiters))
	}
	return verdicts
}
