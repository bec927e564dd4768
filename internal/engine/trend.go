package engine

import "time"

// TrendMethod labels every trend estimate so consumers know it comes from a
// heuristic, not from historical price data.
const TrendMethod = "time-of-day heuristic"

// Intraday window bounds, inclusive hours in market-local time. German fuel
// prices follow a well-documented daily cycle: they climb toward a midday
// peak and then slide to an evening minimum, staying flat overnight.
const (
	morningClimbStartHour   = 6
	morningClimbEndHour     = 10
	middayPlateauHour       = 11
	eveningDeclineStartHour = 12
	eveningDeclineEndHour   = 21
)

// EstimateTrend maps a timestamp onto the intraday price cycle. The caller
// converts the time to the market's timezone first; the same local hour
// always yields the same estimate.
func EstimateTrend(at time.Time) TrendEstimate {
	hour := at.Hour()
	switch {
	case hour >= morningClimbStartHour && hour <= morningClimbEndHour:
		return TrendEstimate{Direction: TrendRising, Window: "morning climb"}
	case hour == middayPlateauHour:
		return TrendEstimate{Direction: TrendStable, Window: "midday plateau"}
	case hour >= eveningDeclineStartHour && hour <= eveningDeclineEndHour:
		return TrendEstimate{Direction: TrendFalling, Window: "evening decline"}
	default:
		return TrendEstimate{Direction: TrendStable, Window: "overnight trough"}
	}
}
