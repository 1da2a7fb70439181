package events_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sdr4n/toolshed/events"
)

// capture collects every event delivered through the context emitter
func capture(ctx context.Context) (context.Context, *[]events.Event) {
	var got []events.Event
	ctx = events.WithEmitter(ctx, events.Func(func(ctx context.Context, event events.Event) error {
		got = append(got, event)
		return nil
	}))
	return ctx, &got
}

func TestEmitStatus(t *testing.T) {
	ctx, got := capture(context.Background())

	events.EmitStatus(ctx, "Getting issue PROJ-1", false, false)
	events.EmitStatus(ctx, "Got issue PROJ-1", true, false)
	events.EmitStatus(ctx, "Failed to get issue PROJ-1", true, true)

	assert.Len(t, *got, 3)

	assert.Equal(t, "status", (*got)[0].Type)
	assert.Equal(t, "🔎 Getting issue PROJ-1", (*got)[0].Data["description"])
	assert.Equal(t, "in_progress", (*got)[0].Data["status"])
	assert.Equal(t, false, (*got)[0].Data["done"])

	assert.Equal(t, "✅ Got issue PROJ-1", (*got)[1].Data["description"])
	assert.Equal(t, "complete", (*got)[1].Data["status"])
	assert.Equal(t, true, (*got)[1].Data["done"])

	assert.Equal(t, "❌ Failed to get issue PROJ-1", (*got)[2].Data["description"])
	assert.Equal(t, "complete", (*got)[2].Data["status"])
}

func TestEmitMessage(t *testing.T) {
	ctx, got := capture(context.Background())

	events.EmitMessage(ctx, "Comments:\n\n**alice** (2024-01-01): looks good")

	assert.Len(t, *got, 1)
	assert.Equal(t, "message", (*got)[0].Type)
	assert.Equal(t, "Comments:\n\n**alice** (2024-01-01): looks good", (*got)[0].Data["content"])
}

func TestEmitCitation(t *testing.T) {
	ctx, got := capture(context.Background())

	events.EmitCitation(ctx, "Fix login bug", "https://example.atlassian.net/browse/PROJ-1", "<p>details</p>", true)

	assert.Len(t, *got, 1)
	assert.Equal(t, "citation", (*got)[0].Type)
	assert.Equal(t, []string{"<p>details</p>"}, (*got)[0].Data["document"])

	metadata := (*got)[0].Data["metadata"].([]map[string]interface{})
	assert.Equal(t, "https://example.atlassian.net/browse/PROJ-1", metadata[0]["source"])
	assert.Equal(t, true, metadata[0]["html"])

	source := (*got)[0].Data["source"].(map[string]interface{})
	assert.Equal(t, "Fix login bug", source["name"])
}

func TestEmitWithoutEmitter(t *testing.T) {
	// No emitter in context: emission must be a silent no-op
	assert.NotPanics(t, func() {
		events.EmitStatus(context.Background(), "no host attached", true, false)
		events.EmitMessage(context.Background(), "nobody listening")
	})
}

func TestEmitErrorDoesNotPropagate(t *testing.T) {
	ctx := events.WithEmitter(context.Background(), events.Func(func(ctx context.Context, event events.Event) error {
		return errors.New("host went away")
	}))

	assert.NotPanics(t, func() {
		events.EmitStatus(ctx, "still fine", true, false)
	})
}

func TestFromContext(t *testing.T) {
	assert.Nil(t, events.FromContext(context.Background()))

	emitter := events.Func(func(ctx context.Context, event events.Event) error { return nil })
	ctx := events.WithEmitter(context.Background(), emitter)
	assert.NotNil(t, events.FromContext(ctx))
}
