package engine

import "sort"

// ConsumerResultLimit caps the number of deals shown to a driver. Three is
// enough to choose from without turning the answer into a listing.
const ConsumerResultLimit = 3

// Qualify filters observations down to the set a verdict may be based on:
// open stations reporting a positive price for the requested fuel.
func Qualify(observations []FuelObservation, fuel FuelType) []FuelObservation {
	qualified := make([]FuelObservation, 0, len(observations))
	for _, obs := range observations {
		if obs.FuelType != fuel || !obs.IsOpen {
			continue
		}
		if !obs.Price.IsPositive() {
			continue
		}
		qualified = append(qualified, obs)
	}
	return qualified
}

// Rank orders the qualifying observations by price, cheapest first, and cuts
// the list to limit. Ties go to the closer station, then to the lower station
// ID so repeated requests rank identically. A non-positive limit keeps the
// whole qualifying set.
func Rank(observations []FuelObservation, fuel FuelType, limit int) []FuelObservation {
	ranked := Qualify(observations, fuel)
	sort.Slice(ranked, func(i, j int) bool {
		if !ranked[i].Price.Equal(ranked[j].Price) {
			return ranked[i].Price.LessThan(ranked[j].Price)
		}
		if ranked[i].DistanceKm != ranked[j].DistanceKm {
			return ranked[i].DistanceKm < ranked[j].DistanceKm
		}
		return ranked[i].StationID < ranked[j].StationID
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
