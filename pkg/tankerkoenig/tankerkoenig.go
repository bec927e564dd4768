// Package tankerkoenig provides a client for the Tankerkönig creative
// commons API, the public price feed of the German Markttransparenzstelle
// für Kraftstoffe.
package tankerkoenig

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://creativecommons.tankerkoenig.de"
	DefaultTimeout = 10 * time.Second
)

// Client provides methods to fetch live station prices from Tankerkönig.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// New creates a Client against the public API with default settings.
func New(apiKey string) *Client {
	return NewWithBaseURL(apiKey, DefaultBaseURL, DefaultTimeout)
}

// NewWithBaseURL creates a Client against a specific endpoint. Tests point
// this at a local server.
func NewWithBaseURL(apiKey, baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// List fetches the stations around a coordinate, sorted by distance. A fuel
// type of e5, e10 or diesel makes the provider fill the unified price field
// per station; the radius is in kilometres and capped at 25 by the provider.
func (c *Client) List(ctx context.Context, lat, lng, radiusKm float64, fuelType string) (*ListResponse, error) {
	query := url.Values{}
	query.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	query.Set("lng", strconv.FormatFloat(lng, 'f', -1, 64))
	query.Set("rad", strconv.FormatFloat(radiusKm, 'f', -1, 64))
	query.Set("sort", "dist")
	query.Set("type", fuelType)
	query.Set("apikey", c.apiKey)

	endpoint := fmt.Sprintf("%s/json/list.php?%s", c.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error fetching data: %w", redactQuery(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}

	var listResponse ListResponse
	if err := json.Unmarshal(body, &listResponse); err != nil {
		return nil, fmt.Errorf("error unmarshaling JSON: %w", err)
	}
	if !listResponse.OK {
		return nil, fmt.Errorf("provider rejected request: %s", listResponse.Message)
	}

	return &listResponse, nil
}

// redactQuery strips the query string from transport errors. The query
// carries the API key, which must never reach logs or error text.
func redactQuery(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if u, parseErr := url.Parse(urlErr.URL); parseErr == nil {
			u.RawQuery = ""
			urlErr.URL = u.String()
		}
		return urlErr
	}
	return err
}
