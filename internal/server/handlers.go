package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/hinwise/smarttanken/internal/engine"
	"github.com/hinwise/smarttanken/internal/gateway"
)

const (
	outcomeOK            = "ok"
	outcomeEmpty         = "empty"
	outcomeClientError   = "client_error"
	outcomeProviderError = "provider_error"
)

func (s *Server) handleSmartFuel(w http.ResponseWriter, r *http.Request) {
	const endpoint = "smart_fuel"

	q, err := parseConsumerQuery(r)
	if err != nil {
		s.writeClientError(w, endpoint, err)
		return
	}

	loc, err := engine.ResolveLocation(s.table, engine.LocationQuery{PLZ: q.PLZ, Lat: q.Lat, Lng: q.Lng})
	if err != nil {
		s.writeClientError(w, endpoint, err)
		return
	}
	if err := engine.ValidateRadius(q.RadiusKm, engine.MaxRadiusKm); err != nil {
		s.writeClientError(w, endpoint, err)
		return
	}
	fuel, err := engine.ParseFuelType(q.FuelType)
	if err != nil {
		s.writeClientError(w, endpoint, err)
		return
	}

	now := s.clock.Now().In(s.market)
	metadata := smartFuelMetadata{
		SearchOrigin: loc.Origin,
		FuelType:     string(fuel),
		RadiusKm:     q.RadiusKm,
		Trend:        trendToDTO(engine.EstimateTrend(now)),
		Timestamp:    now,
	}

	observations, err := s.source.FetchObservations(r.Context(), loc.Coordinate, q.RadiusKm, fuel)
	if err != nil {
		s.logger.Error("Error fetching observations", "endpoint", endpoint, "origin", loc.Origin, "error", err)
		s.metrics.RequestsServed.WithLabelValues(endpoint, outcomeProviderError).Inc()
		writeJSON(w, http.StatusOK, smartFuelResponse{
			Metadata:  metadata,
			BestDeals: []dealDTO{},
			Message:   providerMessage(err),
		})
		return
	}

	qualifying := engine.Qualify(observations, fuel)
	ranked := engine.Rank(observations, fuel, engine.ConsumerResultLimit)
	verdicts := engine.BuildVerdicts(ranked, engine.DefaultTankSizeLiters)

	metadata.BaselinePrice = engine.BaselinePrice(ranked).InexactFloat64()
	metadata.RegionalAvg = engine.AveragePrice(qualifying).InexactFloat64()
	metadata.StationsConsidered = len(qualifying)

	deals := make([]dealDTO, 0, len(verdicts))
	for _, v := range verdicts {
		s.metrics.VerdictsIssued.WithLabelValues(string(v.Verdict)).Inc()
		deals = append(deals, dealToDTO(v))
	}

	resp := smartFuelResponse{Metadata: metadata, BestDeals: deals}
	outcome := outcomeOK
	if len(deals) == 0 {
		outcome = outcomeEmpty
		resp.Message = fmt.Sprintf("no open stations with %s prices within %v km", fuel, q.RadiusKm)
	}
	s.metrics.RequestsServed.WithLabelValues(endpoint, outcome).Inc()
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDieselIndex(w http.ResponseWriter, r *http.Request) {
	const endpoint = "diesel_index"

	q, err := parseIndexQuery(r)
	if err != nil {
		s.writeClientError(w, endpoint, err)
		return
	}

	loc, err := engine.ResolveLocation(s.table, engine.LocationQuery{PLZ: q.PLZ, Lat: q.Lat, Lng: q.Lng})
	if err != nil {
		s.writeClientError(w, endpoint, err)
		return
	}
	if err := engine.ValidateRadius(q.RadiusKm, engine.MaxRadiusKm); err != nil {
		s.writeClientError(w, endpoint, err)
		return
	}

	now := s.clock.Now().In(s.market)

	observations, err := s.source.FetchObservations(r.Context(), loc.Coordinate, q.RadiusKm, engine.FuelDiesel)
	if err != nil {
		s.logger.Error("Error fetching observations", "endpoint", endpoint, "origin", loc.Origin, "error", err)
		s.metrics.RequestsServed.WithLabelValues(endpoint, outcomeProviderError).Inc()
		empty := engine.DieselIndexResult{Region: loc.Origin, Trend: engine.EstimateTrend(now)}
		resp := indexToResponse(empty, q.RadiusKm, now)
		resp.Message = providerMessage(err)
		writeJSON(w, http.StatusOK, resp)
		return
	}

	result, err := engine.ComputeDieselIndex(loc.Origin, observations, now)
	resp := indexToResponse(result, q.RadiusKm, now)
	outcome := outcomeOK
	if err != nil {
		// ComputeDieselIndex only fails with ErrInsufficientData; the
		// zero-confidence shape still renders for B2B clients.
		outcome = outcomeEmpty
		resp.Message = fmt.Sprintf("no open diesel prices within %v km", q.RadiusKm)
	}
	s.metrics.RequestsServed.WithLabelValues(endpoint, outcome).Inc()
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"service":      "smarttanken",
		"description":  "German fuel price intelligence for drivers and small fleets",
		"postal_codes": s.table.Len(),
		"endpoints":    []string{"/smart-fuel", "/diesel-index", "/health", "/metrics"},
		"data_license": "Preisdaten: Tankerkönig-API, CC BY 4.0",
	})
}

func (s *Server) writeClientError(w http.ResponseWriter, endpoint string, err error) {
	s.metrics.RequestsServed.WithLabelValues(endpoint, outcomeClientError).Inc()
	status := http.StatusBadRequest
	if errors.Is(err, engine.ErrUnknownPostalCode) {
		status = http.StatusNotFound
	}
	writeError(w, status, err.Error())
}

func providerMessage(err error) string {
	if errors.Is(err, gateway.ErrProviderTimeout) {
		return "price provider timed out, try again shortly"
	}
	return "price provider unavailable, try again shortly"
}
