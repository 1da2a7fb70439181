// Package events relays tool progress back to the host while a tool runs.
// The payload shapes follow the Open WebUI event envelope: a type plus a
// free-form data object. Emission is best-effort; a tool result never
// depends on an event making it through.
package events

import (
	"context"
	"fmt"

	"github.com/sdr4n/toolshed/log"
)

// Event is a single host event
type Event struct {
	Type string                 `json:"type"`
	Data map[string]interface{} `json:"data"`
}

// Emitter delivers events to the host
type Emitter interface {
	Emit(ctx context.Context, event Event) error
}

// Func adapts a plain function to the Emitter interface
type Func func(ctx context.Context, event Event) error

func (f Func) Emit(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// contextKey is a custom type for context keys to avoid collisions
type contextKey int

const emitterKey contextKey = iota

// WithEmitter attaches an emitter to the context for downstream tools
func WithEmitter(parent context.Context, emitter Emitter) context.Context {
	return context.WithValue(parent, emitterKey, emitter)
}

// FromContext returns the emitter attached to the context, or nil
func FromContext(ctx context.Context) Emitter {
	if ctx == nil {
		return nil
	}
	if emitter, ok := ctx.Value(emitterKey).(Emitter); ok {
		return emitter
	}
	return nil
}

// emit delivers an event through the context emitter, logging failures
func emit(ctx context.Context, event Event) {
	emitter := FromContext(ctx)
	if emitter == nil {
		return
	}
	if err := emitter.Emit(ctx, event); err != nil {
		log.Warnf(ctx, "Failed to emit %s event: %v", event.Type, err)
	}
}

// statusMarker prefixes the description with the progress marker the host
// renders inline: magnifier while running, check/cross when finished
func statusMarker(done, failed bool) string {
	if !done {
		return "🔎"
	}
	if failed {
		return "❌"
	}
	return "✅"
}

// EmitStatus reports tool progress to the host
func EmitStatus(ctx context.Context, description string, done, failed bool) {
	status := "in_progress"
	if done {
		status = "complete"
	}
	emit(ctx, Event{
		Type: "status",
		Data: map[string]interface{}{
			"description": fmt.Sprintf("%s %s", statusMarker(done, failed), description),
			"status":      status,
			"done":        done,
		},
	})
}

// EmitMessage appends content to the host conversation
func EmitMessage(ctx context.Context, content string) {
	emit(ctx, Event{
		Type: "message",
		Data: map[string]interface{}{
			"content": content,
		},
	})
}

// EmitCitation attaches a source document to the host response
func EmitCitation(ctx context.Context, name, url, content string, html bool) {
	emit(ctx, Event{
		Type: "citation",
		Data: map[string]interface{}{
			"document": []string{content},
			"metadata": []map[string]interface{}{
				{"source": url, "html": html},
			},
			"source": map[string]interface{}{"name": name},
		},
	})
}
