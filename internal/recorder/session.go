package recorder

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/autoscribeHQ/autoscribe/internal/codegen"
	"github.com/autoscribeHQ/autoscribe/internal/events"
)

// TickInterval is how often a live session re-runs the full
// compact/emit/render pass over the event log.
const TickInterval = 500 * time.Millisecond

var (
	ErrSessionActive = errors.New("recording session already active")
	ErrMissingURL    = errors.New("start URL is required")
	ErrNoSession     = errors.New("no active recording session")
)

// TaskEnqueuer hands a finished recording to the background queue for
// archival.
type TaskEnqueuer interface {
	EnqueueArchive(ctx context.Context, recordingID uuid.UUID) error
}

// ManagerOptions configures a Manager. Store and Tasks are optional:
// without a store finished recordings are simply not archived.
type ManagerOptions struct {
	Store        *Store
	Tasks        TaskEnqueuer
	Sink         codegen.Sink
	TemplatePath string
	TemplateName string
	Tick         time.Duration
}

// Manager owns at most one live recording session. All session
// control goes through it; the instrumentation binding and the
// navigation notification feed the live session's log through it as
// well, and are silently dropped when no session is active.
type Manager struct {
	opts ManagerOptions

	mu     sync.Mutex
	active *session
}

type session struct {
	id        uuid.UUID
	url       string
	startedAt time.Time

	log      *events.Log
	renderer *codegen.Renderer

	stopCh chan struct{}
	doneCh chan struct{}
}

// Status describes the current session for the control surface.
type Status struct {
	Active     bool       `json:"active"`
	ID         *uuid.UUID `json:"id,omitempty"`
	URL        string     `json:"url,omitempty"`
	StartedAt  *time.Time `json:"started_at,omitempty"`
	EventCount int        `json:"event_count"`
} //@name RecorderStatus

func NewManager(opts ManagerOptions) *Manager {
	if opts.Sink == nil {
		opts.Sink = codegen.NewBufferSink()
	}
	if opts.Tick <= 0 {
		opts.Tick = TickInterval
	}
	if opts.TemplateName == "" {
		opts.TemplateName = "default"
	}
	return &Manager{opts: opts}
}

// Start begins a recording session for url. It fails when a session
// is already active or when no URL is supplied.
func (m *Manager) Start(ctx context.Context, url string) (*Recording, error) {
	if url == "" {
		return nil, ErrMissingURL
	}

	tmpl, err := codegen.LoadTemplate(m.opts.TemplatePath, url)
	if err != nil {
		return nil, fmt.Errorf("load template: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active != nil {
		return nil, ErrSessionActive
	}

	rec := &Recording{
		ID:        uuid.New(),
		URL:       url,
		Status:    StatusRecording,
		Template:  m.opts.TemplateName,
		StartedAt: time.Now(),
	}
	if m.opts.Store != nil {
		if err := m.opts.Store.CreateRecording(ctx, rec); err != nil {
			return nil, fmt.Errorf("create recording: %w", err)
		}
	}

	s := &session{
		id:        rec.ID,
		url:       url,
		startedAt: rec.StartedAt,
		log:       events.NewLog(),
		renderer:  codegen.NewRenderer(tmpl, m.opts.Sink),
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
	m.active = s

	go s.run(m.opts.Tick)

	log.Printf("[RECORDER] session %s started for %s", rec.ID, url)
	return rec, nil
}

// Stop ends the active session. The coordinator runs one final pass
// before exiting, so the published document reflects the complete
// log; the finished recording is then persisted and queued for
// archival, and the in-memory log is discarded.
func (m *Manager) Stop(ctx context.Context) (*Recording, error) {
	m.mu.Lock()
	s := m.active
	m.active = nil
	m.mu.Unlock()

	if s == nil {
		return nil, ErrNoSession
	}

	close(s.stopCh)
	<-s.doneCh

	now := time.Now()
	rec := &Recording{
		ID:         s.id,
		URL:        s.url,
		Status:     StatusCompleted,
		Template:   m.opts.TemplateName,
		StartedAt:  s.startedAt,
		StoppedAt:  &now,
		EventCount: s.log.Len(),
		Script:     s.renderer.Last(),
	}

	if m.opts.Store != nil {
		if err := m.opts.Store.CompleteRecording(ctx, rec.ID, rec.Script, rec.EventCount); err != nil {
			return nil, fmt.Errorf("complete recording: %w", err)
		}
	}
	if m.opts.Tasks != nil {
		if err := m.opts.Tasks.EnqueueArchive(ctx, rec.ID); err != nil {
			// Archival is best-effort; the script is already on the row.
			log.Printf("[RECORDER] enqueue archive for %s: %v", rec.ID, err)
		}
	}

	log.Printf("[RECORDER] session %s stopped after %d events", rec.ID, rec.EventCount)
	return rec, nil
}

// HandleEvent appends one raw event to the live log. Events arriving
// outside a session are dropped without error: that race belongs to
// the session lifecycle, not to the caller.
func (m *Manager) HandleEvent(ev events.Event) {
	if s := m.current(); s != nil {
		s.log.Append(ev)
	}
}

// HandleBatch appends a batch of raw events in order.
func (m *Manager) HandleBatch(evs []events.Event) {
	if s := m.current(); s != nil {
		s.log.AppendBatch(evs)
	}
}

// PageLoaded records a completed navigation.
func (m *Manager) PageLoaded() {
	m.HandleEvent(events.Event{Kind: events.KindPageLoad})
}

// Script renders the current document content on demand from the live
// log, without publishing.
func (m *Manager) Script() (string, error) {
	s := m.current()
	if s == nil {
		return "", ErrNoSession
	}
	return s.renderer.Render(s.log.Snapshot()), nil
}

// Status reports the current session state.
func (m *Manager) Status() Status {
	s := m.current()
	if s == nil {
		return Status{}
	}
	id := s.id
	started := s.startedAt
	return Status{
		Active:     true,
		ID:         &id,
		URL:        s.url,
		StartedAt:  &started,
		EventCount: s.log.Len(),
	}
}

func (m *Manager) current() *session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// run is the session coordinator. It is the only goroutine that
// executes render passes, so passes are serialized by construction
// and can never overlap, however long one takes.
func (s *session) run(tick time.Duration) {
	defer close(s.doneCh)

	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.pass()
		case <-s.stopCh:
			s.pass()
			return
		}
	}
}

func (s *session) pass() {
	if _, err := s.renderer.Sync(context.Background(), s.log.Snapshot()); err != nil {
		log.Printf("[RECORDER] render pass for session %s: %v", s.id, err)
	}
}
