package jira

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"

	"github.com/sdr4n/toolshed/events"
	"github.com/sdr4n/toolshed/log"
	toolspkg "github.com/sdr4n/toolshed/tools"
)

// --- Get Issue Tool ---

type GetIssueInput struct {
	IssueKey string `json:"issue_key" description:"The key of the issue (e.g., 'PROJ-123')"`
}

type GetIssueTool struct {
	client *Client
}

func NewGetIssueTool(client *Client, gk *genkit.Genkit, registry *toolspkg.Registry) *GetIssueTool {
	t := &GetIssueTool{client: client}
	if gk == nil || registry == nil {
		return t
	}

	err := registry.Register(genkit.DefineTool[*GetIssueInput, *Issue](
		gk,
		"jira_get_issue",
		"Get a Jira issue by its key. The response includes the title, description as HTML, status, link to the issue, and comments.",
		func(ctx *ai.ToolContext, input *GetIssueInput) (*Issue, error) {
			return t.Execute(ctx, input)
		},
	), func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		b, _ := json.Marshal(args)
		var input GetIssueInput
		if err := json.Unmarshal(b, &input); err != nil {
			return nil, fmt.Errorf("failed to parse arguments: %w", err)
		}
		return t.Execute(ctx, &input)
	})
	if err != nil {
		log.Warnf(context.Background(), "[Jira] %v", err)
	}
	return t
}

func (t *GetIssueTool) Execute(ctx context.Context, input *GetIssueInput) (*Issue, error) {
	inputJSON, _ := json.Marshal(input)
	log.Debugf(ctx, "GetIssueTool executing with input: %s", string(inputJSON))

	if t.client == nil {
		return nil, fmt.Errorf("jira client not initialized")
	}
	if input.IssueKey == "" {
		return nil, fmt.Errorf("issue_key is required")
	}

	if t.client.EmitEvents {
		events.EmitStatus(ctx, fmt.Sprintf("Getting issue %s", input.IssueKey), false, false)
	}

	issue, err := t.client.GetIssue(ctx, input.IssueKey)
	if err != nil {
		log.Errorf(ctx, "GetIssueTool failed: %v", err)
		if t.client.EmitEvents {
			events.EmitStatus(ctx, fmt.Sprintf("Failed to get issue %s: %v", input.IssueKey, err), true, true)
		}
		return nil, err
	}

	if t.client.EmitEvents {
		// Surface the issue itself as a cited source
		events.EmitCitation(ctx, issue.Title, issue.Link, issue.Description, true)

		if len(issue.Comments) > 0 {
			events.EmitMessage(ctx, "Comments:\n\n"+FormatComments(issue.Comments))
		}

		events.EmitStatus(ctx, fmt.Sprintf("Got issue %s", input.IssueKey), true, false)
	}

	log.Debugf(ctx, "GetIssueTool completed successfully for %s (%d comments)", input.IssueKey, len(issue.Comments))
	return issue, nil
}

// FormatComments renders comments as markdown, one block per comment
func FormatComments(comments []Comment) string {
	blocks := make([]string, 0, len(comments))
	for _, comment := range comments {
		blocks = append(blocks, fmt.Sprintf("**%s** (%s): %s", comment.Author, comment.Created, comment.Body))
	}
	return strings.Join(blocks, "\n\n")
}

// --- Get Comments Tool ---

type GetCommentsInput struct {
	IssueKey string `json:"issue_key" description:"The key of the issue (e.g., 'PROJ-123')"`
}

type GetCommentsOutput struct {
	Comments []Comment `json:"comments"`
	Count    int       `json:"count"`
}

type GetCommentsTool struct {
	client *Client
}

func NewGetCommentsTool(client *Client, gk *genkit.Genkit, registry *toolspkg.Registry) *GetCommentsTool {
	t := &GetCommentsTool{client: client}
	if gk == nil || registry == nil {
		return t
	}

	err := registry.Register(genkit.DefineTool[*GetCommentsInput, *GetCommentsOutput](
		gk,
		"jira_get_comments",
		"Get the comments of a Jira issue. Each comment includes the author's display name, the body, and the creation timestamp.",
		func(ctx *ai.ToolContext, input *GetCommentsInput) (*GetCommentsOutput, error) {
			return t.Execute(ctx, input)
		},
	), func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		b, _ := json.Marshal(args)
		var input GetCommentsInput
		if err := json.Unmarshal(b, &input); err != nil {
			return nil, fmt.Errorf("failed to parse arguments: %w", err)
		}
		return t.Execute(ctx, &input)
	})
	if err != nil {
		log.Warnf(context.Background(), "[Jira] %v", err)
	}
	return t
}

func (t *GetCommentsTool) Execute(ctx context.Context, input *GetCommentsInput) (*GetCommentsOutput, error) {
	inputJSON, _ := json.Marshal(input)
	log.Debugf(ctx, "GetCommentsTool executing with input: %s", string(inputJSON))

	if t.client == nil {
		return nil, fmt.Errorf("jira client not initialized")
	}
	if input.IssueKey == "" {
		return nil, fmt.Errorf("issue_key is required")
	}

	comments, err := t.client.GetComments(ctx, input.IssueKey)
	if err != nil {
		log.Errorf(ctx, "GetCommentsTool failed: %v", err)
		return nil, err
	}

	log.Debugf(ctx, "GetCommentsTool completed successfully. Found %d comments.", len(comments))
	return &GetCommentsOutput{
		Comments: comments,
		Count:    len(comments),
	}, nil
}

// --- Search Issues Tool ---

type SearchIssuesInput struct {
	JQL        string `json:"jql" description:"JQL query (e.g., 'project = PROJ AND status = \"In Progress\"')"`
	MaxResults int    `json:"max_results,omitempty" description:"Maximum number of results (default: 10)"`
}

type SearchIssuesOutput struct {
	Issues []SearchResult `json:"issues"`
	Count  int            `json:"count"`
}

type SearchIssuesTool struct {
	client *Client
}

func NewSearchIssuesTool(client *Client, gk *genkit.Genkit, registry *toolspkg.Registry) *SearchIssuesTool {
	t := &SearchIssuesTool{client: client}
	if gk == nil || registry == nil {
		return t
	}

	err := registry.Register(genkit.DefineTool[*SearchIssuesInput, *SearchIssuesOutput](
		gk,
		"jira_search_issues",
		"Search Jira issues with a JQL query. Returns the key, title, status, and link of each matching issue.",
		func(ctx *ai.ToolContext, input *SearchIssuesInput) (*SearchIssuesOutput, error) {
			return t.Execute(ctx, input)
		},
	), func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		b, _ := json.Marshal(args)
		var input SearchIssuesInput
		if err := json.Unmarshal(b, &input); err != nil {
			return nil, fmt.Errorf("failed to parse arguments: %w", err)
		}
		return t.Execute(ctx, &input)
	})
	if err != nil {
		log.Warnf(context.Background(), "[Jira] %v", err)
	}
	return t
}

func (t *SearchIssuesTool) Execute(ctx context.Context, input *SearchIssuesInput) (*SearchIssuesOutput, error) {
	inputJSON, _ := json.Marshal(input)
	log.Debugf(ctx, "SearchIssuesTool executing with input: %s", string(inputJSON))

	if t.client == nil {
		return nil, fmt.Errorf("jira client not initialized")
	}
	if input.JQL == "" {
		return nil, fmt.Errorf("jql is required")
	}

	results, err := t.client.SearchIssues(ctx, input.JQL, input.MaxResults)
	if err != nil {
		log.Errorf(ctx, "SearchIssuesTool failed: %v", err)
		return nil, err
	}

	log.Debugf(ctx, "SearchIssuesTool completed successfully. Found %d issues.", len(results))
	return &SearchIssuesOutput{
		Issues: results,
		Count:  len(results),
	}, nil
}
