package tankerkoenig

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listFixture = `{
	"ok": true,
	"license": "CC BY 4.0 - https://creativecommons.tankerkoenig.de",
	"data": "MTS-K",
	"status": "ok",
	"stations": [
		{
			"id": "51d4b671-a095-1aa0-e100-80009459e03a",
			"name": "JET Berlin Chausseestr.",
			"brand": "JET",
			"street": "Chausseestr.",
			"houseNumber": "61",
			"postCode": 10115,
			"place": "Berlin",
			"lat": 52.5362,
			"lng": 13.3784,
			"dist": 0.5,
			"price": 1.699,
			"isOpen": true
		},
		{
			"id": "4e0f6c11-4b37-4471-b4b2-5529bbd2cbb4",
			"name": "Aral Invalidenstr.",
			"brand": "ARAL",
			"street": "Invalidenstr.",
			"houseNumber": "115",
			"postCode": 10115,
			"place": "Berlin",
			"lat": 52.5301,
			"lng": 13.3852,
			"dist": 0.3,
			"price": false,
			"isOpen": false
		}
	]
}`

func testClient(baseURL string) *Client {
	return NewWithBaseURL("test-key", baseURL, 2*time.Second)
}

func TestClientList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/json/list.php", r.URL.Path)
		assert.Equal(t, "52.5323", r.URL.Query().Get("lat"))
		assert.Equal(t, "13.3846", r.URL.Query().Get("lng"))
		assert.Equal(t, "5", r.URL.Query().Get("rad"))
		assert.Equal(t, "dist", r.URL.Query().Get("sort"))
		assert.Equal(t, "e5", r.URL.Query().Get("type"))
		assert.Equal(t, "test-key", r.URL.Query().Get("apikey"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(listFixture))
	}))
	defer server.Close()

	resp, err := testClient(server.URL).List(context.Background(), 52.5323, 13.3846, 5, "e5")
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.True(t, resp.OK)
	require.Len(t, resp.Stations, 2)

	jet := resp.Stations[0]
	assert.Equal(t, "51d4b671-a095-1aa0-e100-80009459e03a", jet.ID)
	assert.Equal(t, "JET", jet.Brand)
	assert.Equal(t, 10115, jet.PostCode)
	assert.InDelta(t, 1.699, float64(jet.Price), 1e-9)
	assert.True(t, jet.IsOpen)

	// price: false decodes to zero for a fuel the station does not sell.
	aral := resp.Stations[1]
	assert.Zero(t, float64(aral.Price))
	assert.False(t, aral.IsOpen)
}

func TestClientListProviderRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok": false, "status": "error", "message": "apikey unbekannt"}`))
	}))
	defer server.Close()

	_, err := testClient(server.URL).List(context.Background(), 52.5323, 13.3846, 5, "e5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "apikey unbekannt")
}

func TestClientListServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := testClient(server.URL).List(context.Background(), 52.5323, 13.3846, 5, "e5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status code: 503")
}

func TestClientListMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok": true, "stations": [`))
	}))
	defer server.Close()

	_, err := testClient(server.URL).List(context.Background(), 52.5323, 13.3846, 5, "e5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error unmarshaling JSON")
}

func TestClientListTimeoutRedactsKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(listFixture))
	}))
	defer server.Close()

	client := NewWithBaseURL("super-secret", server.URL, 50*time.Millisecond)
	_, err := client.List(context.Background(), 52.5323, 13.3846, 5, "e5")

	require.Error(t, err)
	assert.NotContains(t, err.Error(), "super-secret")
	assert.NotContains(t, err.Error(), "apikey")
}

func TestPriceUnmarshal(t *testing.T) {
	var station Station
	payload := `{"id": "x", "diesel": 1.589, "e5": false, "e10": null}`
	require.NoError(t, json.Unmarshal([]byte(payload), &station))

	assert.InDelta(t, 1.589, float64(station.Diesel), 1e-9)
	assert.Zero(t, float64(station.E5))
	assert.Zero(t, float64(station.E10))

	err := json.Unmarshal([]byte(`{"diesel": "cheap"}`), &station)
	require.Error(t, err)
}

func TestStationPriceFor(t *testing.T) {
	typed := Station{Price: 1.699, E5: 1.999}
	assert.InDelta(t, 1.699, typed.PriceFor("e5"), 1e-9, "unified field wins for typed queries")

	untyped := Station{Diesel: 1.589, E5: 1.699, E10: 1.649}
	assert.InDelta(t, 1.699, untyped.PriceFor("e5"), 1e-9)
	assert.InDelta(t, 1.649, untyped.PriceFor("e10"), 1e-9)
	assert.InDelta(t, 1.589, untyped.PriceFor("diesel"), 1e-9)
	assert.Zero(t, untyped.PriceFor("lpg"))
}

func TestNewDefaults(t *testing.T) {
	client := New("key")

	assert.Equal(t, DefaultBaseURL, client.baseURL)
	assert.Equal(t, DefaultTimeout, client.httpClient.Timeout)
	assert.False(t, strings.HasSuffix(client.baseURL, "/"))
}
