package codegen

import (
	"context"
	"sync"

	"github.com/autoscribeHQ/autoscribe/internal/events"
)

// Sink accepts a full-document replacement of rendered content. The
// renderer guarantees it is only called when the content actually
// changed.
type Sink interface {
	Publish(ctx context.Context, content string) error
}

// Renderer runs the emit/render half of the pipeline and publishes
// the result idempotently: re-rendering an unchanged log is a no-op,
// which keeps the live document from being rewritten on every tick.
type Renderer struct {
	tmpl *Template
	sink Sink

	mu        sync.Mutex
	published bool
	last      string
}

func NewRenderer(tmpl *Template, sink Sink) *Renderer {
	return &Renderer{tmpl: tmpl, sink: sink}
}

// Render produces the full document content for a raw event snapshot
// without publishing anything.
func (r *Renderer) Render(raw []events.Event) string {
	return r.tmpl.Render(Lines(events.Compact(raw)))
}

// Sync renders the snapshot and publishes the result if it differs
// from the last published content. It reports whether a publish
// happened.
func (r *Renderer) Sync(ctx context.Context, raw []events.Event) (bool, error) {
	content := r.Render(raw)

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.published && content == r.last {
		return false, nil
	}
	if err := r.sink.Publish(ctx, content); err != nil {
		return false, err
	}
	r.published = true
	r.last = content
	return true, nil
}

// Last returns the most recently published content.
func (r *Renderer) Last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}
