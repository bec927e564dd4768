package tankerkoenig

import (
	"fmt"
	"strconv"
)

// Price decodes a Tankerkönig price field. Prices arrive as a JSON number
// for fuels the station sells, as false for fuels it does not, and as null
// in some legacy payloads; false and null decode to zero.
type Price float64

func (p *Price) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "false" || s == "null" {
		*p = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("error parsing price %q: %w", s, err)
	}
	*p = Price(v)
	return nil
}

// ListResponse represents the provider's answer to a list.php query.
type ListResponse struct {
	OK       bool      `json:"ok"`
	License  string    `json:"license"`
	Data     string    `json:"data"`
	Status   string    `json:"status"`
	Message  string    `json:"message"`
	Stations []Station `json:"stations"`
}

// Station represents a single fuel station in a list response. Typed
// queries fill the unified Price field; all-type queries fill the per-fuel
// fields instead.
type Station struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Brand       string  `json:"brand"`
	Street      string  `json:"street"`
	HouseNumber string  `json:"houseNumber"`
	PostCode    int     `json:"postCode"`
	Place       string  `json:"place"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Dist        float64 `json:"dist"`
	Diesel      Price   `json:"diesel"`
	E5          Price   `json:"e5"`
	E10         Price   `json:"e10"`
	Price       Price   `json:"price"`
	IsOpen      bool    `json:"isOpen"`
}

// PriceFor returns the station's price for a fuel type, preferring the
// unified field and falling back to the per-fuel one. Unknown fuel types
// and missing prices yield zero.
func (s Station) PriceFor(fuelType string) float64 {
	if s.Price > 0 {
		return float64(s.Price)
	}
	switch fuelType {
	case "e5":
		return float64(s.E5)
	case "e10":
		return float64(s.E10)
	case "diesel":
		return float64(s.Diesel)
	}
	return 0
}
