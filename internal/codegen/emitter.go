package codegen

import (
	"fmt"

	"github.com/autoscribeHQ/autoscribe/internal/events"
)

// Line maps one semantic event to exactly one Playwright statement.
// Target, key, and input values are interpolated verbatim: a single
// quote inside a captured value produces a syntactically broken
// statement. Known limitation, see DESIGN.md.
func Line(ev events.Event) string {
	switch ev.Kind {
	case events.KindClick:
		return fmt.Sprintf("await page.click('%s');", ev.Target)
	case events.KindMouseDown:
		return fmt.Sprintf("await page.mouse.down('%s');", ev.Target)
	case events.KindMouseUp:
		return fmt.Sprintf("await page.mouse.up('%s');", ev.Target)
	case events.KindKeypress:
		return fmt.Sprintf("await page.press('%s', '%s');", ev.Target, ev.Key)
	case events.KindFill:
		return fmt.Sprintf("await page.fill('%s', '%s');", ev.Target, ev.InputValue)
	case events.KindPageLoad:
		return "await page.waitForLoadState();"
	default:
		// The compactor never produces anything else.
		return ""
	}
}

// Lines emits one statement per event, preserving order.
func Lines(evs []events.Event) []string {
	out := make([]string, 0, len(evs))
	for _, ev := range evs {
		out = append(out, Line(ev))
	}
	return out
}
