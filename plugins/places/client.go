package places

import (
	"context"
	"fmt"

	"github.com/firebase/genkit/go/genkit"
	"googlemaps.github.io/maps"

	"github.com/sdr4n/toolshed/tools"
)

// Client handles Google Maps Platform requests
type Client struct {
	APIKey     string
	MapsClient *maps.Client

	GeocodeTool *GeocodeTool
	SearchTool  *SearchTool
	DetailsTool *DetailsTool
}

// NewClient creates a new places client and registers its tools.
// Extra options are forwarded to the maps SDK (tests use them to point the
// client at a mock server).
func NewClient(apiKey string, gk *genkit.Genkit, registry *tools.Registry, extra ...maps.ClientOption) (*Client, error) {
	opts := append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, extra...)
	mc, err := maps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}

	c := &Client{
		APIKey:     apiKey,
		MapsClient: mc,
	}

	c.initTools(gk, registry)

	return c, nil
}

// initTools registers all places tools
func (c *Client) initTools(gk *genkit.Genkit, registry *tools.Registry) {
	if gk == nil || registry == nil {
		return
	}

	c.GeocodeTool = NewGeocodeTool(c, gk, registry)
	c.SearchTool = NewSearchTool(c, gk, registry)
	c.DetailsTool = NewDetailsTool(c, gk, registry)
}

// GeocodeResult is a single geocoding match
type GeocodeResult struct {
	FormattedAddress string  `json:"formatted_address"`
	Lat              float64 `json:"lat"`
	Lng              float64 `json:"lng"`
	PlaceID          string  `json:"place_id"`
}

// Prediction is a single autocomplete prediction
type Prediction struct {
	Description   string   `json:"description"`
	PlaceID       string   `json:"place_id"`
	MainText      string   `json:"main_text"`
	SecondaryText string   `json:"secondary_text"`
	Types         []string `json:"types,omitempty"`
}

// PlaceDetails contains detailed information about a place
type PlaceDetails struct {
	PlaceID          string   `json:"place_id"`
	Name             string   `json:"name"`
	FormattedAddress string   `json:"formatted_address"`
	Lat              float64  `json:"lat"`
	Lng              float64  `json:"lng"`
	Rating           float32  `json:"rating,omitempty"`
	Types            []string `json:"types,omitempty"`
}

// Geocode resolves a free-form address to coordinates
func (c *Client) Geocode(ctx context.Context, address string) ([]GeocodeResult, error) {
	if c.MapsClient == nil {
		return nil, fmt.Errorf("maps client not initialized")
	}

	resp, err := c.MapsClient.Geocode(ctx, &maps.GeocodingRequest{Address: address})
	if err != nil {
		return nil, fmt.Errorf("geocode request failed: %w", err)
	}

	results := make([]GeocodeResult, len(resp))
	for i, r := range resp {
		results[i] = GeocodeResult{
			FormattedAddress: r.FormattedAddress,
			Lat:              r.Geometry.Location.Lat,
			Lng:              r.Geometry.Location.Lng,
			PlaceID:          r.PlaceID,
		}
	}
	return results, nil
}

// Autocomplete searches for places by free text, optionally biased around a
// location (radius in meters, ignored when lat/lng are zero)
func (c *Client) Autocomplete(ctx context.Context, input string, lat, lng float64, radius uint) ([]Prediction, error) {
	if c.MapsClient == nil {
		return nil, fmt.Errorf("maps client not initialized")
	}

	req := &maps.PlaceAutocompleteRequest{Input: input}
	if lat != 0 || lng != 0 {
		req.Location = &maps.LatLng{Lat: lat, Lng: lng}
		if radius > 0 {
			req.Radius = radius
		}
	}

	resp, err := c.MapsClient.PlaceAutocomplete(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("autocomplete request failed: %w", err)
	}

	predictions := make([]Prediction, len(resp.Predictions))
	for i, p := range resp.Predictions {
		predictions[i] = Prediction{
			Description:   p.Description,
			PlaceID:       p.PlaceID,
			MainText:      p.StructuredFormatting.MainText,
			SecondaryText: p.StructuredFormatting.SecondaryText,
			Types:         p.Types,
		}
	}
	return predictions, nil
}

// Details fetches detailed information for a place ID
func (c *Client) Details(ctx context.Context, placeID string) (*PlaceDetails, error) {
	if c.MapsClient == nil {
		return nil, fmt.Errorf("maps client not initialized")
	}

	resp, err := c.MapsClient.PlaceDetails(ctx, &maps.PlaceDetailsRequest{PlaceID: placeID})
	if err != nil {
		return nil, fmt.Errorf("place details request failed: %w", err)
	}

	return &PlaceDetails{
		PlaceID:          resp.PlaceID,
		Name:             resp.Name,
		FormattedAddress: resp.FormattedAddress,
		Lat:              resp.Geometry.Location.Lat,
		Lng:              resp.Geometry.Location.Lng,
		Rating:           resp.Rating,
		Types:            resp.Types,
	}, nil
}
