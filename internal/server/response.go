package server

import (
	"encoding/json"
	"math"
	"net/http"
	"time"

	"github.com/hinwise/smarttanken/internal/engine"
)

// trendDTO labels every trend value with the method that produced it.
type trendDTO struct {
	Direction string `json:"direction"`
	Window    string `json:"window"`
	Method    string `json:"method"`
}

func trendToDTO(t engine.TrendEstimate) trendDTO {
	return trendDTO{
		Direction: string(t.Direction),
		Window:    t.Window,
		Method:    engine.TrendMethod,
	}
}

type smartFuelMetadata struct {
	SearchOrigin       string    `json:"search_origin"`
	FuelType           string    `json:"fuel_type"`
	RadiusKm           float64   `json:"radius_km"`
	BaselinePrice      float64   `json:"baseline_price"`
	RegionalAvg        float64   `json:"regional_avg"`
	StationsConsidered int       `json:"stations_considered"`
	Trend              trendDTO  `json:"trend"`
	Timestamp          time.Time `json:"timestamp"`
}

type dealDTO struct {
	StationID   string  `json:"station_id"`
	Name        string  `json:"name"`
	Brand       string  `json:"brand"`
	Price       float64 `json:"price"`
	DistanceKm  float64 `json:"distance_km"`
	Savings     float64 `json:"savings"`
	SavingsPct  float64 `json:"savings_pct"`
	HassleScore float64 `json:"hassle_score"`
	Verdict     string  `json:"verdict"`
}

type smartFuelResponse struct {
	Metadata  smartFuelMetadata `json:"metadata"`
	BestDeals []dealDTO         `json:"best_deals"`
	Message   string            `json:"message,omitempty"`
}

func dealToDTO(v engine.HassleVerdict) dealDTO {
	return dealDTO{
		StationID:   v.Station.StationID,
		Name:        v.Station.StationName,
		Brand:       v.Station.Brand,
		Price:       v.Station.Price.InexactFloat64(),
		DistanceKm:  v.Station.DistanceKm,
		Savings:     v.SavingsAmount.InexactFloat64(),
		SavingsPct:  v.SavingsPct.InexactFloat64(),
		HassleScore: math.Round(v.HassleScore*100) / 100,
		Verdict:     string(v.Verdict),
	}
}

type indexMetadata struct {
	Region          string    `json:"region"`
	RadiusKm        float64   `json:"radius_km"`
	StationsScanned int       `json:"stations_scanned"`
	Timestamp       time.Time `json:"timestamp"`
}

type marketRates struct {
	AverageIndex float64 `json:"average_index"`
	Low          float64 `json:"low"`
	High         float64 `json:"high"`
}

type logisticsTools struct {
	SuggestedSurchargePct float64  `json:"suggested_surcharge_pct"`
	Trend                 trendDTO `json:"trend"`
}

type dieselIndexResponse struct {
	IndexMetadata  indexMetadata  `json:"index_metadata"`
	MarketRates    marketRates    `json:"market_rates"`
	LogisticsTools logisticsTools `json:"logistics_tools"`
	Message        string         `json:"message,omitempty"`
}

func indexToResponse(result engine.DieselIndexResult, radiusKm float64, at time.Time) dieselIndexResponse {
	return dieselIndexResponse{
		IndexMetadata: indexMetadata{
			Region:          result.Region,
			RadiusKm:        radiusKm,
			StationsScanned: result.SampleSize,
			Timestamp:       at,
		},
		MarketRates: marketRates{
			AverageIndex: result.AveragePrice.InexactFloat64(),
			Low:          result.LowestPrice.InexactFloat64(),
			High:         result.HighestPrice.InexactFloat64(),
		},
		LogisticsTools: logisticsTools{
			SuggestedSurchargePct: result.SurchargePct.InexactFloat64(),
			Trend:                 trendToDTO(result.Trend),
		},
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
