package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fixedDateTool pins 'now' so expressions resolve deterministically
func fixedDateTool() *DateTool {
	return &DateTool{
		Now: func() time.Time {
			return time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC) // a Friday
		},
	}
}

func TestDateTool_Tomorrow(t *testing.T) {
	tool := fixedDateTool()

	out, err := tool.Execute(context.Background(), &DateInput{
		Expression: "new Date(now + 86400000)",
	})
	assert.NoError(t, err)

	date, err := time.Parse(time.RFC3339, out.Date)
	assert.NoError(t, err)
	assert.Equal(t, 2024, date.UTC().Year())
	assert.Equal(t, time.March, date.UTC().Month())
	assert.Equal(t, 16, date.UTC().Day())
}

func TestDateTool_ISOStringResult(t *testing.T) {
	tool := fixedDateTool()

	out, err := tool.Execute(context.Background(), &DateInput{
		Expression: `"2024-12-24T18:00:00Z"`,
	})
	assert.NoError(t, err)
	assert.Equal(t, "2024-12-24T18:00:00Z", out.Date)
}

func TestDateTool_InvalidExpression(t *testing.T) {
	tool := fixedDateTool()

	_, err := tool.Execute(context.Background(), &DateInput{
		Expression: "this is not javascript",
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "js execution failed")
}

func TestDateTool_NonDateResult(t *testing.T) {
	tool := fixedDateTool()

	_, err := tool.Execute(context.Background(), &DateInput{
		Expression: "1 + 1",
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not a valid Date")
}

func TestDateTool_EmptyExpression(t *testing.T) {
	tool := fixedDateTool()

	_, err := tool.Execute(context.Background(), &DateInput{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "expression is required")
}
