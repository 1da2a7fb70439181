package jira

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/firebase/genkit/go/genkit"
	"gorm.io/gorm"

	"github.com/sdr4n/toolshed/log"
	"github.com/sdr4n/toolshed/orm"
	"github.com/sdr4n/toolshed/tools"
)

// Client handles Jira Cloud REST API (v3) requests
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	EmitEvents bool

	authHeader string

	// Optional response cache; nil disables caching
	DB       *gorm.DB
	CacheTTL time.Duration

	GetIssueTool     *GetIssueTool
	GetCommentsTool  *GetCommentsTool
	SearchIssuesTool *SearchIssuesTool
}

// NewClient creates a new Jira API client and registers its tools
func NewClient(baseURL, username, apiToken string, emitEvents bool, gk *genkit.Genkit, registry *tools.Registry, db *gorm.DB, cacheTTL time.Duration) *Client {
	c := &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		EmitEvents: emitEvents,
		authHeader: basicAuth(username, apiToken),
		DB:         db,
		CacheTTL:   cacheTTL,
	}

	// Initialize tools
	c.initTools(gk, registry)

	return c
}

// initTools registers all Jira tools
func (c *Client) initTools(gk *genkit.Genkit, registry *tools.Registry) {
	if gk == nil || registry == nil {
		return
	}

	c.GetIssueTool = NewGetIssueTool(c, gk, registry)
	c.GetCommentsTool = NewGetCommentsTool(c, gk, registry)
	c.SearchIssuesTool = NewSearchIssuesTool(c, gk, registry)
}

// basicAuth builds the Authorization header value for Jira Cloud API tokens
func basicAuth(username, apiToken string) string {
	encoded := base64.StdEncoding.EncodeToString([]byte(username + ":" + apiToken))
	return "Basic " + encoded
}

// Issue is the flattened view of a Jira issue returned to the model
type Issue struct {
	Key         string    `json:"key"`
	Title       string    `json:"title"`
	Description string    `json:"description"` // rendered HTML
	Status      string    `json:"status"`
	Link        string    `json:"link"`
	Comments    []Comment `json:"comments"`
}

// Comment is a single issue comment
type Comment struct {
	Author  string `json:"author"`
	Body    string `json:"body"`
	Created string `json:"created"`
}

// SearchResult is a single JQL search hit
type SearchResult struct {
	Key    string `json:"key"`
	Title  string `json:"title"`
	Status string `json:"status"`
	Link   string `json:"link"`
}

type issueResponse struct {
	Key    string `json:"key"`
	Fields struct {
		Summary string `json:"summary"`
		Status  struct {
			Name string `json:"name"`
		} `json:"status"`
	} `json:"fields"`
	RenderedFields struct {
		Description string `json:"description"`
	} `json:"renderedFields"`
}

type rawComment struct {
	Author struct {
		DisplayName string `json:"displayName"`
	} `json:"author"`
	Body         json.RawMessage `json:"body"`
	RenderedBody string          `json:"renderedBody"`
	Created      string          `json:"created"`
}

type commentsResponse struct {
	Comments []rawComment `json:"comments"`
}

type searchResponse struct {
	Issues []issueResponse `json:"issues"`
	Total  int             `json:"total"`
}

// get performs an authenticated GET against /rest/api/3/<endpoint> and
// decodes the JSON response into out
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	reqURL := fmt.Sprintf("%s/rest/api/3/%s", c.BaseURL, endpoint)
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", c.authHeader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("resource not found (status %s)", resp.Status)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("jira API returned status %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// GetIssue fetches an issue together with its comments. The description
// comes back as rendered HTML, matching what the issue view shows.
func (c *Client) GetIssue(ctx context.Context, issueKey string) (*Issue, error) {
	cacheKey := fmt.Sprintf("jira:issue:%s:%s", c.BaseURL, issueKey)
	if cached := c.fromCache(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	params := url.Values{}
	params.Set("fields", "summary,description,status")
	params.Set("expand", "renderedFields")

	var result issueResponse
	if err := c.get(ctx, "issue/"+issueKey, params, &result); err != nil {
		return nil, fmt.Errorf("failed to get issue %s: %w", issueKey, err)
	}

	comments, err := c.GetComments(ctx, issueKey)
	if err != nil {
		return nil, err
	}

	issue := &Issue{
		Key:         issueKey,
		Title:       result.Fields.Summary,
		Description: result.RenderedFields.Description,
		Status:      result.Fields.Status.Name,
		Link:        c.browseLink(issueKey),
		Comments:    comments,
	}

	c.toCache(ctx, cacheKey, issue)
	return issue, nil
}

// GetComments fetches comments for an issue
func (c *Client) GetComments(ctx context.Context, issueKey string) ([]Comment, error) {
	params := url.Values{}
	params.Set("expand", "renderedBody")

	var result commentsResponse
	if err := c.get(ctx, "issue/"+issueKey+"/comment", params, &result); err != nil {
		return nil, fmt.Errorf("failed to get comments for %s: %w", issueKey, err)
	}

	comments := make([]Comment, 0, len(result.Comments))
	for _, raw := range result.Comments {
		comments = append(comments, Comment{
			Author:  raw.Author.DisplayName,
			Body:    commentBody(raw),
			Created: raw.Created,
		})
	}
	return comments, nil
}

// SearchIssues runs a JQL query and returns the matching issues
func (c *Client) SearchIssues(ctx context.Context, jql string, maxResults int) ([]SearchResult, error) {
	if maxResults <= 0 {
		maxResults = 10
	}

	params := url.Values{}
	params.Set("jql", jql)
	params.Set("fields", "summary,status")
	params.Set("maxResults", strconv.Itoa(maxResults))

	var result searchResponse
	if err := c.get(ctx, "search", params, &result); err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	results := make([]SearchResult, 0, len(result.Issues))
	for _, issue := range result.Issues {
		results = append(results, SearchResult{
			Key:    issue.Key,
			Title:  issue.Fields.Summary,
			Status: issue.Fields.Status.Name,
			Link:   c.browseLink(issue.Key),
		})
	}
	return results, nil
}

func (c *Client) browseLink(issueKey string) string {
	return fmt.Sprintf("%s/browse/%s", c.BaseURL, issueKey)
}

// commentBody picks the readable form of a comment. API v3 returns the body
// as an Atlassian document node; renderedBody carries the HTML rendering.
func commentBody(raw rawComment) string {
	if raw.RenderedBody != "" {
		return raw.RenderedBody
	}
	var s string
	if err := json.Unmarshal(raw.Body, &s); err == nil {
		return s
	}
	return string(raw.Body)
}

// fromCache returns the cached issue for key, or nil
func (c *Client) fromCache(ctx context.Context, key string) *Issue {
	if c.DB == nil {
		return nil
	}
	entry, err := orm.GetCacheEntry(c.DB, key)
	if err != nil {
		return nil
	}
	var issue Issue
	if err := json.Unmarshal(entry.Value, &issue); err != nil {
		log.Warnf(ctx, "[Jira] Dropping unreadable cache entry %s: %v", key, err)
		return nil
	}
	log.Debugf(ctx, "[Jira] Cache hit for %s", key)
	return &issue
}

// toCache stores an issue, best-effort
func (c *Client) toCache(ctx context.Context, key string, issue *Issue) {
	if c.DB == nil {
		return
	}
	value, err := json.Marshal(issue)
	if err != nil {
		return
	}
	ttl := c.CacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if err := orm.SetCacheEntry(c.DB, key, value, ttl); err != nil {
		log.Warnf(ctx, "[Jira] Failed to cache %s: %v", key, err)
	}
}
