package tavily

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"

	"github.com/sdr4n/toolshed/log"
	toolspkg "github.com/sdr4n/toolshed/tools"
)

// --- Search Tool ---

// SearchTool searches the web through Tavily
type SearchTool struct {
	client *Client
}

func NewSearchTool(client *Client, gk *genkit.Genkit, registry *toolspkg.Registry) *SearchTool {
	t := &SearchTool{client: client}
	if gk == nil || registry == nil {
		return t
	}

	err := registry.Register(genkit.DefineTool[*SearchRequest, *SearchResponse](
		gk,
		"tavily_search",
		"Searches the web for current information using Tavily. Useful for finding recent news, facts, or real-time data.",
		func(ctx *ai.ToolContext, input *SearchRequest) (*SearchResponse, error) {
			return t.Execute(ctx, input)
		},
	), func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		b, _ := json.Marshal(args)
		var input SearchRequest
		if err := json.Unmarshal(b, &input); err != nil {
			return nil, fmt.Errorf("failed to parse arguments: %w", err)
		}
		return t.Execute(ctx, &input)
	})
	if err != nil {
		log.Warnf(context.Background(), "[Tavily] %v", err)
	}
	return t
}

func (t *SearchTool) Execute(ctx context.Context, input *SearchRequest) (*SearchResponse, error) {
	inputJSON, _ := json.Marshal(input)
	log.Debugf(ctx, "[Tavily] SearchTool executing with input: %s", string(inputJSON))

	if t.client == nil {
		return nil, fmt.Errorf("tavily client not initialized")
	}
	if input.Query == "" {
		return nil, fmt.Errorf("query is required")
	}

	resp, err := t.client.Search(ctx, input)
	if err != nil {
		log.Errorf(ctx, "[Tavily] SearchTool failed: %v", err)
		return nil, err
	}

	log.Debugf(ctx, "[Tavily] SearchTool completed successfully. Found %d results", len(resp.Results))
	return resp, nil
}

// --- Extract Tool ---

// ExtractTool fetches clean page content through Tavily
type ExtractTool struct {
	client *Client
}

func NewExtractTool(client *Client, gk *genkit.Genkit, registry *toolspkg.Registry) *ExtractTool {
	t := &ExtractTool{client: client}
	if gk == nil || registry == nil {
		return t
	}

	err := registry.Register(genkit.DefineTool[*ExtractRequest, *ExtractResponse](
		gk,
		"tavily_extract",
		"Extracts clean content from web pages using Tavily. Removes ads, navigation, and other clutter. Useful when you have specific URLs you want to get content from.",
		func(ctx *ai.ToolContext, input *ExtractRequest) (*ExtractResponse, error) {
			return t.Execute(ctx, input)
		},
	), func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		b, _ := json.Marshal(args)
		var input ExtractRequest
		if err := json.Unmarshal(b, &input); err != nil {
			return nil, fmt.Errorf("failed to parse arguments: %w", err)
		}
		return t.Execute(ctx, &input)
	})
	if err != nil {
		log.Warnf(context.Background(), "[Tavily] %v", err)
	}
	return t
}

func (t *ExtractTool) Execute(ctx context.Context, input *ExtractRequest) (*ExtractResponse, error) {
	inputJSON, _ := json.Marshal(input)
	log.Debugf(ctx, "[Tavily] ExtractTool executing with input: %s", string(inputJSON))

	if t.client == nil {
		return nil, fmt.Errorf("tavily client not initialized")
	}
	if len(input.URLs) == 0 {
		return nil, fmt.Errorf("at least one URL is required")
	}

	resp, err := t.client.Extract(ctx, input)
	if err != nil {
		log.Errorf(ctx, "[Tavily] ExtractTool failed: %v", err)
		return nil, err
	}

	log.Debugf(ctx, "[Tavily] ExtractTool completed successfully. Extracted %d pages", len(resp.Results))
	return resp, nil
}
