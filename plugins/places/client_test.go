package places

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"googlemaps.github.io/maps"
)

// mockMapsServer mocks the Google Maps web service endpoints the SDK calls
func mockMapsServer() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/maps/api/geocode/json":
			fmt.Fprint(w, `{
				"status": "OK",
				"results": [{
					"formatted_address": "Berlin, Germany",
					"place_id": "ChIJAVkDPzdOqEcRcDteW0YgIQQ",
					"geometry": {"location": {"lat": 52.52000659999999, "lng": 13.404954}}
				}]
			}`)
		case "/maps/api/place/autocomplete/json":
			fmt.Fprint(w, `{
				"status": "OK",
				"predictions": [{
					"description": "Museum Island, Berlin, Germany",
					"place_id": "ChIJh0Y7VX1OqEcRhS-CV6s5Mj8",
					"structured_formatting": {"main_text": "Museum Island", "secondary_text": "Berlin, Germany"},
					"types": ["tourist_attraction"]
				}]
			}`)
		case "/maps/api/place/details/json":
			fmt.Fprint(w, `{
				"status": "OK",
				"result": {
					"place_id": "ChIJh0Y7VX1OqEcRhS-CV6s5Mj8",
					"name": "Museum Island",
					"formatted_address": "Museum Island, 10178 Berlin, Germany",
					"rating": 4.7,
					"types": ["tourist_attraction"],
					"geometry": {"location": {"lat": 52.5169328, "lng": 13.4010062}}
				}
			}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func newTestClient(t *testing.T) (*Client, *httptest.Server) {
	ts := mockMapsServer()
	client, err := NewClient("test-api-key", nil, nil, maps.WithBaseURL(ts.URL))
	assert.NoError(t, err)
	return client, ts
}

func TestNewClient(t *testing.T) {
	client, ts := newTestClient(t)
	defer ts.Close()

	assert.NotNil(t, client)
	assert.NotNil(t, client.MapsClient)
	assert.Nil(t, client.GeocodeTool)
}

func TestClient_Geocode(t *testing.T) {
	client, ts := newTestClient(t)
	defer ts.Close()

	results, err := client.Geocode(context.Background(), "Berlin")
	assert.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, "Berlin, Germany", results[0].FormattedAddress)
	assert.InDelta(t, 52.52, results[0].Lat, 0.01)
	assert.InDelta(t, 13.40, results[0].Lng, 0.01)
	assert.NotEmpty(t, results[0].PlaceID)
}

func TestClient_Autocomplete(t *testing.T) {
	client, ts := newTestClient(t)
	defer ts.Close()

	predictions, err := client.Autocomplete(context.Background(), "museum island", 52.52, 13.40, 5000)
	assert.NoError(t, err)
	assert.Len(t, predictions, 1)
	assert.Equal(t, "Museum Island", predictions[0].MainText)
	assert.Equal(t, "Berlin, Germany", predictions[0].SecondaryText)
	assert.Equal(t, "ChIJh0Y7VX1OqEcRhS-CV6s5Mj8", predictions[0].PlaceID)
}

func TestClient_Details(t *testing.T) {
	client, ts := newTestClient(t)
	defer ts.Close()

	details, err := client.Details(context.Background(), "ChIJh0Y7VX1OqEcRhS-CV6s5Mj8")
	assert.NoError(t, err)
	assert.Equal(t, "Museum Island", details.Name)
	assert.Equal(t, "Museum Island, 10178 Berlin, Germany", details.FormattedAddress)
	assert.InDelta(t, 4.7, float64(details.Rating), 0.01)
}

func TestTools_InputValidation(t *testing.T) {
	client, ts := newTestClient(t)
	defer ts.Close()

	_, err := (&GeocodeTool{client: client}).Execute(context.Background(), &GeocodeInput{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "address is required")

	_, err = (&SearchTool{client: client}).Execute(context.Background(), &SearchInput{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "query is required")

	_, err = (&DetailsTool{client: client}).Execute(context.Background(), &DetailsInput{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "place_id is required")
}
