package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/hinwise/smarttanken/internal/engine"
)

var validate = validator.New()

// queryParams is the statically validated query of both price endpoints.
// Semantic checks (the plz/coordinate XOR, table lookup) stay in the engine;
// this layer only rejects values that cannot possibly be right.
type queryParams struct {
	PLZ      string   `validate:"omitempty,number,max=5"`
	Lat      *float64 `validate:"omitempty,gte=-90,lte=90"`
	Lng      *float64 `validate:"omitempty,gte=-180,lte=180"`
	FuelType string   `validate:"required,oneof=e5 e10 diesel"`
	RadiusKm float64  `validate:"gt=0,lte=25"`
}

func parseConsumerQuery(r *http.Request) (queryParams, error) {
	return parseQuery(r, engine.DefaultConsumerRadiusKm, true)
}

// parseIndexQuery fixes the fuel to diesel; a fuel_type parameter on the
// index endpoint is ignored, not an error.
func parseIndexQuery(r *http.Request) (queryParams, error) {
	return parseQuery(r, engine.DefaultIndexRadiusKm, false)
}

func parseQuery(r *http.Request, defaultRadiusKm float64, readFuel bool) (queryParams, error) {
	query := r.URL.Query()

	q := queryParams{
		PLZ:      query.Get("plz"),
		FuelType: string(engine.FuelDiesel),
		RadiusKm: defaultRadiusKm,
	}
	if readFuel {
		q.FuelType = string(engine.FuelE5)
		if v := query.Get("fuel_type"); v != "" {
			q.FuelType = v
		}
	}

	if v := query.Get("lat"); v != "" {
		lat, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return q, fmt.Errorf("%w: latitude %q is not a number", engine.ErrInvalidCoordinate, v)
		}
		q.Lat = &lat
	}
	if v := query.Get("lng"); v != "" {
		lng, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return q, fmt.Errorf("%w: longitude %q is not a number", engine.ErrInvalidCoordinate, v)
		}
		q.Lng = &lng
	}
	if v := query.Get("radius"); v != "" {
		radius, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return q, fmt.Errorf("%w: radius %q is not a number", engine.ErrInvalidRadius, v)
		}
		q.RadiusKm = radius
	}

	if err := validate.Struct(q); err != nil {
		return q, mapValidationError(err)
	}
	return q, nil
}

// mapValidationError folds validator failures into the error taxonomy the
// handlers translate to status codes.
func mapValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("%w: %v", engine.ErrInvalidLocationInput, err)
	}

	field := fieldErrs[0]
	switch field.Field() {
	case "PLZ":
		return fmt.Errorf("%w: postal code %q is not 1-5 digits", engine.ErrInvalidLocationInput, field.Value())
	case "Lat", "Lng":
		return fmt.Errorf("%w: %s out of range", engine.ErrInvalidCoordinate, strings.ToLower(field.Field()))
	case "RadiusKm":
		return fmt.Errorf("%w: radius must be in (0, %v] km", engine.ErrInvalidRadius, engine.MaxRadiusKm)
	case "FuelType":
		return fmt.Errorf("unknown fuel type %q (want e5, e10 or diesel)", field.Value())
	}
	return fmt.Errorf("%w: %s", engine.ErrInvalidLocationInput, field.Field())
}
