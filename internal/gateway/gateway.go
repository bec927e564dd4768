// Package gateway fetches live price observations from Tankerkönig and
// shapes them for the engine. It owns the short-lived response cache and the
// circuit breaker around the provider.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker"
	"github.com/tkrajina/gpxgo/gpx"

	"github.com/hinwise/smarttanken/internal/engine"
	"github.com/hinwise/smarttanken/internal/observability"
	"github.com/hinwise/smarttanken/pkg/tankerkoenig"
)

const (
	DefaultCacheTTL  = 5 * time.Minute
	cacheCleanupTime = 10 * time.Minute
	metersPerKm      = 1000.0

	// Cache keys round coordinates to a ~110 m grid so nearby queries for
	// the same block share an entry.
	cacheKeyDecimalPlaces = 3
)

// Sentinel errors for provider failures. Handlers map both to normalized
// empty responses rather than 5xx pages.
var (
	ErrProviderUnavailable = errors.New("price provider unavailable")
	ErrProviderTimeout     = errors.New("price provider timeout")
)

// StationLister is the part of the Tankerkönig client the gateway needs.
type StationLister interface {
	List(ctx context.Context, lat, lng, radiusKm float64, fuelType string) (*tankerkoenig.ListResponse, error)
}

// Gateway turns provider payloads into engine observations.
type Gateway struct {
	lister  StationLister
	cache   *cache.Cache
	breaker *gobreaker.CircuitBreaker
	clock   clockwork.Clock
	metrics *observability.Metrics
	log     *slog.Logger
}

// New creates a Gateway. A non-positive cacheTTL falls back to
// DefaultCacheTTL.
func New(lister StationLister, cacheTTL time.Duration, clock clockwork.Clock, metrics *observability.Metrics, logger *slog.Logger) *Gateway {
	if cacheTTL <= 0 {
		cacheTTL = DefaultCacheTTL
	}

	g := &Gateway{
		lister:  lister,
		cache:   cache.New(cacheTTL, cacheCleanupTime),
		clock:   clock,
		metrics: metrics,
		log:     logger,
	}
	g.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "tankerkoenig",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Provider breaker state change", "name", name, "from", from.String(), "to", to.String())
			if to == gobreaker.StateOpen {
				metrics.BreakerOpen.Set(1)
			} else {
				metrics.BreakerOpen.Set(0)
			}
		},
	})
	return g
}

// FetchObservations returns every station the provider knows around the
// origin, closed and unpriced ones included; filtering is the ranker's job.
// Distances come from our own haversine, not the provider's aggressively
// rounded dist field.
func (g *Gateway) FetchObservations(ctx context.Context, origin engine.Coordinate, radiusKm float64, fuel engine.FuelType) ([]engine.FuelObservation, error) {
	keyLat, keyLng := reduceLocationPrecision(origin.Lat, origin.Lng, cacheKeyDecimalPlaces)
	cacheKey := fmt.Sprintf("observations_%v_%v_%v_%s", keyLat, keyLng, radiusKm, fuel)

	if cachedData, found := g.cache.Get(cacheKey); found {
		g.log.Debug("Using cached observations", "key", cacheKey)
		g.metrics.ProviderCache.WithLabelValues("hit").Inc()
		return cloneObservations(cachedData.([]engine.FuelObservation)), nil
	}
	g.log.Debug("Fetching observations from provider, cached data not found", "key", cacheKey)
	g.metrics.ProviderCache.WithLabelValues("miss").Inc()

	start := g.clock.Now()
	result, err := g.breaker.Execute(func() (interface{}, error) {
		return g.lister.List(ctx, origin.Lat, origin.Lng, radiusKm, string(fuel))
	})
	g.metrics.ProviderDuration.Observe(g.clock.Since(start).Seconds())
	if err != nil {
		return nil, mapProviderError(err)
	}

	resp, ok := result.(*tankerkoenig.ListResponse)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected result type from circuit breaker", ErrProviderUnavailable)
	}

	observedAt := g.clock.Now()
	observations := make([]engine.FuelObservation, 0, len(resp.Stations))
	for _, station := range resp.Stations {
		distanceMeters := gpx.Distance2D(origin.Lat, origin.Lng, station.Lat, station.Lng, true)
		observations = append(observations, engine.FuelObservation{
			StationID:   station.ID,
			StationName: station.Name,
			Brand:       station.Brand,
			Coordinate:  engine.Coordinate{Lat: station.Lat, Lng: station.Lng},
			FuelType:    fuel,
			Price:       decimal.NewFromFloat(station.PriceFor(string(fuel))),
			DistanceKm:  roundKm(distanceMeters / metersPerKm),
			IsOpen:      station.IsOpen,
			ObservedAt:  observedAt,
		})
	}

	g.cache.Set(cacheKey, cloneObservations(observations), cache.DefaultExpiration)
	g.log.Debug("Observations fetched", "key", cacheKey, "stations", len(observations))
	return observations, nil
}

// mapProviderError folds transport, provider, and breaker failures into the
// two sentinels the handlers know about.
func mapProviderError(err error) error {
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return fmt.Errorf("%w: circuit breaker open", ErrProviderUnavailable)
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", ErrProviderTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrProviderTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
}

// cloneObservations copies the slice so callers never share backing arrays
// with the cache.
func cloneObservations(observations []engine.FuelObservation) []engine.FuelObservation {
	cloned := make([]engine.FuelObservation, len(observations))
	copy(cloned, observations)
	return cloned
}

func roundKm(km float64) float64 {
	return math.Round(km*100) / 100
}

func reduceLocationPrecision(lat, lng float64, decimalPlaces int) (roundedLat, roundedLng float64) {
	factor := math.Pow(10, float64(decimalPlaces))
	roundedLat = math.Round(lat*factor) / factor
	roundedLng = math.Round(lng*factor) / factor
	return
}
