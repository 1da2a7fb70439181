package tavily

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/firebase/genkit/go/genkit"

	"github.com/sdr4n/toolshed/log"
	"github.com/sdr4n/toolshed/tools"
)

// DefaultBaseURL is the production Tavily API endpoint
const DefaultBaseURL = "https://api.tavily.com"

// Client is the Tavily API client
type Client struct {
	BaseURL    string
	apiKey     string
	httpClient *http.Client

	SearchTool  *SearchTool
	ExtractTool *ExtractTool
}

// NewClient creates a new Tavily client and registers its tools
func NewClient(apiKey string, timeout int, gk *genkit.Genkit, registry *tools.Registry) *Client {
	if apiKey == "" {
		log.Warn(context.Background(), "Tavily API key is empty, Tavily tools will not work properly")
	}

	c := &Client{
		BaseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: time.Duration(timeout) * time.Second,
		},
	}

	c.initTools(gk, registry)

	return c
}

// initTools registers all Tavily tools
func (c *Client) initTools(gk *genkit.Genkit, registry *tools.Registry) {
	if gk == nil || registry == nil {
		return
	}

	c.SearchTool = NewSearchTool(c, gk, registry)
	c.ExtractTool = NewExtractTool(c, gk, registry)
}

// SearchRequest represents a Tavily search request
type SearchRequest struct {
	Query             string   `json:"query" description:"The search query to execute"`
	SearchDepth       string   `json:"search_depth,omitempty" description:"Search depth: basic or advanced (default: basic)"`
	MaxResults        int      `json:"max_results,omitempty" description:"Maximum number of results (1-20, default: 5)"`
	Topic             string   `json:"topic,omitempty" description:"Search category: general, news, or finance (default: general)"`
	TimeRange         string   `json:"time_range,omitempty" description:"Time range: day, week, month, or year"`
	IncludeAnswer     bool     `json:"include_answer,omitempty" description:"Include an LLM-generated answer"`
	IncludeRawContent bool     `json:"include_raw_content,omitempty" description:"Include raw content from search results"`
	IncludeDomains    []string `json:"include_domains,omitempty" description:"Domains to specifically include"`
	ExcludeDomains    []string `json:"exclude_domains,omitempty" description:"Domains to specifically exclude"`
}

// SearchResult represents a single search result
type SearchResult struct {
	Title      string  `json:"title"`
	URL        string  `json:"url"`
	Content    string  `json:"content"`
	Score      float64 `json:"score"`
	RawContent *string `json:"raw_content,omitempty"`
}

// SearchResponse represents the Tavily search response
type SearchResponse struct {
	Query        string         `json:"query"`
	Answer       string         `json:"answer,omitempty"`
	Results      []SearchResult `json:"results"`
	ResponseTime string         `json:"response_time"`
}

// ExtractRequest represents a Tavily extract request
type ExtractRequest struct {
	URLs []string `json:"urls" description:"List of URLs to extract content from"`
}

// ExtractResult is the extracted content of one URL
type ExtractResult struct {
	URL        string `json:"url"`
	RawContent string `json:"raw_content"`
}

// FailedResult describes a URL that could not be extracted
type FailedResult struct {
	URL   string `json:"url"`
	Error string `json:"error"`
}

// ExtractResponse represents the Tavily extract response
type ExtractResponse struct {
	Results       []ExtractResult `json:"results"`
	FailedResults []FailedResult  `json:"failed_results,omitempty"`
	ResponseTime  string          `json:"response_time"`
}

// post sends a JSON request to a Tavily endpoint and decodes the response
func (c *Client) post(ctx context.Context, endpoint string, payload, out interface{}) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.BaseURL+endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API returned status %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Search performs a Tavily web search
func (c *Client) Search(ctx context.Context, req *SearchRequest) (*SearchResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("request is required")
	}
	if req.Query == "" {
		return nil, fmt.Errorf("query is required")
	}

	// Set defaults
	if req.SearchDepth == "" {
		req.SearchDepth = "basic"
	}
	if req.MaxResults == 0 {
		req.MaxResults = 5
	}
	if req.Topic == "" {
		req.Topic = "general"
	}

	log.Debugf(ctx, "[Tavily] Sending search request: query=%s, depth=%s, max_results=%d", req.Query, req.SearchDepth, req.MaxResults)

	var searchResp SearchResponse
	if err := c.post(ctx, "/search", req, &searchResp); err != nil {
		return nil, err
	}

	log.Debugf(ctx, "[Tavily] Search completed successfully: %d results found", len(searchResp.Results))
	return &searchResp, nil
}

// Extract pulls clean page content for the given URLs
func (c *Client) Extract(ctx context.Context, req *ExtractRequest) (*ExtractResponse, error) {
	if req == nil || len(req.URLs) == 0 {
		return nil, fmt.Errorf("at least one URL is required")
	}

	log.Debugf(ctx, "[Tavily] Sending extract request for %d URLs", len(req.URLs))

	var extractResp ExtractResponse
	if err := c.post(ctx, "/extract", req, &extractResp); err != nil {
		return nil, err
	}

	log.Debugf(ctx, "[Tavily] Extract completed: %d succeeded, %d failed", len(extractResp.Results), len(extractResp.FailedResults))
	return &extractResp, nil
}
