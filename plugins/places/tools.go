package places

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"

	"github.com/sdr4n/toolshed/log"
	toolspkg "github.com/sdr4n/toolshed/tools"
)

// --- Geocode Tool ---

type GeocodeInput struct {
	Address string `json:"address" description:"Free-form address or place name (e.g., '1600 Amphitheatre Parkway')"`
}

type GeocodeOutput struct {
	Results []GeocodeResult `json:"results"`
	Count   int             `json:"count"`
}

type GeocodeTool struct {
	client *Client
}

func NewGeocodeTool(client *Client, gk *genkit.Genkit, registry *toolspkg.Registry) *GeocodeTool {
	t := &GeocodeTool{client: client}
	if gk == nil || registry == nil {
		return t
	}

	err := registry.Register(genkit.DefineTool[*GeocodeInput, *GeocodeOutput](
		gk,
		"places_geocode",
		"Resolves an address or place name to geographic coordinates and a formatted address.",
		func(ctx *ai.ToolContext, input *GeocodeInput) (*GeocodeOutput, error) {
			return t.Execute(ctx, input)
		},
	), func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		b, _ := json.Marshal(args)
		var input GeocodeInput
		if err := json.Unmarshal(b, &input); err != nil {
			return nil, fmt.Errorf("failed to parse arguments: %w", err)
		}
		return t.Execute(ctx, &input)
	})
	if err != nil {
		log.Warnf(context.Background(), "[Places] %v", err)
	}
	return t
}

func (t *GeocodeTool) Execute(ctx context.Context, input *GeocodeInput) (*GeocodeOutput, error) {
	inputJSON, _ := json.Marshal(input)
	log.Debugf(ctx, "GeocodeTool executing with input: %s", string(inputJSON))

	if t.client == nil {
		return nil, fmt.Errorf("places client not initialized")
	}
	if input.Address == "" {
		return nil, fmt.Errorf("address is required")
	}

	results, err := t.client.Geocode(ctx, input.Address)
	if err != nil {
		log.Errorf(ctx, "GeocodeTool failed: %v", err)
		return nil, err
	}

	log.Debugf(ctx, "GeocodeTool completed successfully. Found %d results.", len(results))
	return &GeocodeOutput{Results: results, Count: len(results)}, nil
}

// --- Search Tool ---

type SearchInput struct {
	Query  string  `json:"query" description:"Free-text place search (e.g., 'coffee near the station')"`
	Lat    float64 `json:"lat,omitempty" description:"Latitude to bias results towards"`
	Lng    float64 `json:"lng,omitempty" description:"Longitude to bias results towards"`
	Radius int     `json:"radius,omitempty" description:"Bias radius in meters"`
}

type SearchOutput struct {
	Predictions []Prediction `json:"predictions"`
	Count       int          `json:"count"`
}

type SearchTool struct {
	client *Client
}

func NewSearchTool(client *Client, gk *genkit.Genkit, registry *toolspkg.Registry) *SearchTool {
	t := &SearchTool{client: client}
	if gk == nil || registry == nil {
		return t
	}

	err := registry.Register(genkit.DefineTool[*SearchInput, *SearchOutput](
		gk,
		"places_search",
		"Searches for places by free text, optionally biased around a location. Returns place IDs usable with places_details.",
		func(ctx *ai.ToolContext, input *SearchInput) (*SearchOutput, error) {
			return t.Execute(ctx, input)
		},
	), func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		b, _ := json.Marshal(args)
		var input SearchInput
		if err := json.Unmarshal(b, &input); err != nil {
			return nil, fmt.Errorf("failed to parse arguments: %w", err)
		}
		return t.Execute(ctx, &input)
	})
	if err != nil {
		log.Warnf(context.Background(), "[Places] %v", err)
	}
	return t
}

func (t *SearchTool) Execute(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	inputJSON, _ := json.Marshal(input)
	log.Debugf(ctx, "SearchTool executing with input: %s", string(inputJSON))

	if t.client == nil {
		return nil, fmt.Errorf("places client not initialized")
	}
	if input.Query == "" {
		return nil, fmt.Errorf("query is required")
	}

	radius := uint(0)
	if input.Radius > 0 {
		radius = uint(input.Radius)
	}

	predictions, err := t.client.Autocomplete(ctx, input.Query, input.Lat, input.Lng, radius)
	if err != nil {
		log.Errorf(ctx, "SearchTool failed: %v", err)
		return nil, err
	}

	log.Debugf(ctx, "SearchTool completed successfully. Found %d predictions.", len(predictions))
	return &SearchOutput{Predictions: predictions, Count: len(predictions)}, nil
}

// --- Details Tool ---

type DetailsInput struct {
	PlaceID string `json:"place_id" description:"Place ID from places_search or places_geocode"`
}

type DetailsTool struct {
	client *Client
}

func NewDetailsTool(client *Client, gk *genkit.Genkit, registry *toolspkg.Registry) *DetailsTool {
	t := &DetailsTool{client: client}
	if gk == nil || registry == nil {
		return t
	}

	err := registry.Register(genkit.DefineTool[*DetailsInput, *PlaceDetails](
		gk,
		"places_details",
		"Fetches details for a place by its place ID: name, address, coordinates, and rating.",
		func(ctx *ai.ToolContext, input *DetailsInput) (*PlaceDetails, error) {
			return t.Execute(ctx, input)
		},
	), func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		b, _ := json.Marshal(args)
		var input DetailsInput
		if err := json.Unmarshal(b, &input); err != nil {
			return nil, fmt.Errorf("failed to parse arguments: %w", err)
		}
		return t.Execute(ctx, &input)
	})
	if err != nil {
		log.Warnf(context.Background(), "[Places] %v", err)
	}
	return t
}

func (t *DetailsTool) Execute(ctx context.Context, input *DetailsInput) (*PlaceDetails, error) {
	inputJSON, _ := json.Marshal(input)
	log.Debugf(ctx, "DetailsTool executing with input: %s", string(inputJSON))

	if t.client == nil {
		return nil, fmt.Errorf("places client not initialized")
	}
	if input.PlaceID == "" {
		return nil, fmt.Errorf("place_id is required")
	}

	details, err := t.client.Details(ctx, input.PlaceID)
	if err != nil {
		log.Errorf(ctx, "DetailsTool failed: %v", err)
		return nil, err
	}

	log.Debugf(ctx, "DetailsTool completed successfully for %s", input.PlaceID)
	return details, nil
}
