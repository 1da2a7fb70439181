package jira

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sdr4n/toolshed/events"
)

func TestGetIssueTool_Execute(t *testing.T) {
	ts := mockJiraServer(t)
	defer ts.Close()

	client := NewClient(ts.URL, testUser, testToken, false, nil, nil, nil, 0)
	tool := &GetIssueTool{client: client}

	issue, err := tool.Execute(context.Background(), &GetIssueInput{IssueKey: "PROJ-1"})
	assert.NoError(t, err)
	assert.Equal(t, "Fix login bug", issue.Title)
}

func TestGetIssueTool_MissingKey(t *testing.T) {
	tool := &GetIssueTool{client: NewClient("https://example.atlassian.net", testUser, testToken, false, nil, nil, nil, 0)}

	_, err := tool.Execute(context.Background(), &GetIssueInput{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "issue_key is required")
}

func TestGetIssueTool_NilClient(t *testing.T) {
	tool := &GetIssueTool{}

	_, err := tool.Execute(context.Background(), &GetIssueInput{IssueKey: "PROJ-1"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not initialized")
}

func TestGetIssueTool_EmitsEvents(t *testing.T) {
	ts := mockJiraServer(t)
	defer ts.Close()

	client := NewClient(ts.URL, testUser, testToken, true, nil, nil, nil, 0)
	tool := &GetIssueTool{client: client}

	var got []events.Event
	ctx := events.WithEmitter(context.Background(), events.Func(func(ctx context.Context, event events.Event) error {
		got = append(got, event)
		return nil
	}))

	_, err := tool.Execute(ctx, &GetIssueInput{IssueKey: "PROJ-1"})
	assert.NoError(t, err)

	// status start, citation, comments message, status done
	assert.Len(t, got, 4)
	assert.Equal(t, "status", got[0].Type)
	assert.Equal(t, "🔎 Getting issue PROJ-1", got[0].Data["description"])
	assert.Equal(t, "citation", got[1].Type)
	assert.Equal(t, "message", got[2].Type)
	assert.Contains(t, got[2].Data["content"], "**Alice**")
	assert.Equal(t, "status", got[3].Type)
	assert.Equal(t, "✅ Got issue PROJ-1", got[3].Data["description"])
}

func TestGetIssueTool_EmitsFailureStatus(t *testing.T) {
	ts := mockJiraServer(t)
	defer ts.Close()

	client := NewClient(ts.URL, testUser, testToken, true, nil, nil, nil, 0)
	tool := &GetIssueTool{client: client}

	var got []events.Event
	ctx := events.WithEmitter(context.Background(), events.Func(func(ctx context.Context, event events.Event) error {
		got = append(got, event)
		return nil
	}))

	_, err := tool.Execute(ctx, &GetIssueInput{IssueKey: "NOPE-404"})
	assert.Error(t, err)

	assert.Len(t, got, 2)
	assert.Equal(t, "status", got[1].Type)
	assert.Contains(t, got[1].Data["description"], "❌ Failed to get issue NOPE-404")
	assert.Equal(t, true, got[1].Data["done"])
}

func TestGetCommentsTool_Execute(t *testing.T) {
	ts := mockJiraServer(t)
	defer ts.Close()

	client := NewClient(ts.URL, testUser, testToken, false, nil, nil, nil, 0)
	tool := &GetCommentsTool{client: client}

	out, err := tool.Execute(context.Background(), &GetCommentsInput{IssueKey: "PROJ-1"})
	assert.NoError(t, err)
	assert.Equal(t, 2, out.Count)
	assert.Equal(t, "Alice", out.Comments[0].Author)
}

func TestSearchIssuesTool_Execute(t *testing.T) {
	ts := mockJiraServer(t)
	defer ts.Close()

	client := NewClient(ts.URL, testUser, testToken, false, nil, nil, nil, 0)
	tool := &SearchIssuesTool{client: client}

	out, err := tool.Execute(context.Background(), &SearchIssuesInput{JQL: "project = PROJ"})
	assert.NoError(t, err)
	assert.Equal(t, 2, out.Count)

	_, err = tool.Execute(context.Background(), &SearchIssuesInput{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "jql is required")
}

func TestFormatComments(t *testing.T) {
	formatted := FormatComments([]Comment{
		{Author: "Alice", Body: "first", Created: "2024-03-01"},
		{Author: "Bob", Body: "second", Created: "2024-03-02"},
	})
	assert.Equal(t, "**Alice** (2024-03-01): first\n\n**Bob** (2024-03-02): second", formatted)
}
