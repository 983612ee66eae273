package events

// Kind identifies the type of a captured interaction event
// @Description Type of a captured browser interaction event
type Kind string //@name EventKind

const (
	KindMouseDown Kind = "mousedown"
	KindMouseUp   Kind = "mouseup"
	KindClick     Kind = "click"
	KindKeypress  Kind = "keypress"
	KindPageLoad  Kind = "pageload"

	// KindFill never appears in a raw log; the compactor synthesizes it
	// from a run of keypress events.
	KindFill Kind = "fill"
)

// Event is a single interaction fact reported by the in-page
// instrumentation, or a semantic event synthesized by the compactor.
// @Description Raw or semantic browser interaction event
type Event struct {
	Kind   Kind   `json:"kind" example:"click"`
	Target string `json:"target,omitempty" example:"#submit"`

	// Key is set on keypress events only.
	Key string `json:"key,omitempty" example:"a"`

	// InputValue is the full value of the input field after the
	// keystroke, not the typed character. On fill events it is the
	// final observed value of the run.
	InputValue string `json:"input_value,omitempty" example:"hello"`
} //@name Event

// Batch is the payload shape posted by the instrumentation binding.
type Batch struct {
	Events []Event `json:"events"`
} //@name EventBatch
