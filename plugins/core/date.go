package core

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dop251/goja"
	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"

	"github.com/sdr4n/toolshed/log"
	toolspkg "github.com/sdr4n/toolshed/tools"
)

// DateInput defines the input for the date tool
type DateInput struct {
	Expression string `json:"expression" description:"JavaScript expression to calculate a date. Variable 'now' is available as current timestamp in milliseconds."`
}

// DateOutput is the resolved date
type DateOutput struct {
	Date string `json:"date"` // RFC 3339
}

// DateTool resolves relative date expressions ("next Friday", "in two
// weeks") that the model translates into JavaScript
type DateTool struct {
	Now func() time.Time
}

// NewDateTool creates a new DateTool and registers it
func NewDateTool(gk *genkit.Genkit, registry *toolspkg.Registry) *DateTool {
	t := &DateTool{
		Now: time.Now,
	}

	if gk == nil || registry == nil {
		return t
	}

	err := registry.Register(genkit.DefineTool[*DateInput, *DateOutput](
		gk,
		"date_expression",
		t.Description(),
		func(ctx *ai.ToolContext, input *DateInput) (*DateOutput, error) {
			return t.Execute(ctx, input)
		},
	), func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		b, _ := json.Marshal(args)
		var input DateInput
		if err := json.Unmarshal(b, &input); err != nil {
			return nil, fmt.Errorf("failed to parse arguments: %w", err)
		}
		return t.Execute(ctx, &input)
	})
	if err != nil {
		log.Warnf(context.Background(), "[Core] %v", err)
	}

	return t
}

func (t *DateTool) Name() string {
	return "date_expression"
}

func (t *DateTool) Description() string {
	return `Executes a JavaScript expression to calculate dates. Variable 'now' is available holding the current timestamp (milliseconds).
Return a Date object or ISO string. The last expression is the return value.
Examples:
- Tomorrow: "new Date(now + 86400000)"
- Next Friday: "var d = new Date(now); d.setDate(d.getDate() + (12 - d.getDay()) % 7); if(d.getDay() !== 5 || d <= now) d.setDate(d.getDate() + 7); d"`
}

func (t *DateTool) Execute(ctx context.Context, input *DateInput) (*DateOutput, error) {
	if input == nil || input.Expression == "" {
		return nil, fmt.Errorf("expression is required")
	}
	log.Debugf(ctx, "DateTool executing expression: %s", input.Expression)

	vm := goja.New()
	if err := vm.Set("now", t.Now().UnixMilli()); err != nil {
		return nil, fmt.Errorf("failed to set 'now': %w", err)
	}

	val, err := vm.RunString(input.Expression)
	if err != nil {
		log.Errorf(ctx, "DateTool expression failed: %v", err)
		return nil, fmt.Errorf("js execution failed: %w", err)
	}

	exported := val.Export()
	if exported == nil {
		return nil, fmt.Errorf("result is null or undefined")
	}

	// Goja converts JS Date objects to time.Time
	if date, ok := exported.(time.Time); ok {
		return &DateOutput{Date: date.Format(time.RFC3339)}, nil
	}

	// An ISO string result is also acceptable
	if str, ok := exported.(string); ok {
		if date, err := time.Parse(time.RFC3339, str); err == nil {
			return &DateOutput{Date: date.Format(time.RFC3339)}, nil
		}
	}

	return nil, fmt.Errorf("result is not a valid Date object or ISO string")
}
