package events

import "unicode/utf8"

// Compact scans a raw event snapshot left to right and replaces runs
// of low-level events with single semantic events. At each position
// the detectors are tried in a fixed priority order: click sequence
// first, then fill sequence; the first match consumes its whole
// window. Events matching neither pass through unchanged. The order
// is a committed contract, kept for determinism.
//
// Compact is a pure function: it never mutates its input and holds no
// state between calls, so re-running it over a growing log is safe. A
// prefix snapshot may show an incomplete pattern (a bare mousedown)
// that gets absorbed into a synthesized click on a later run once the
// completing events have arrived.
func Compact(raw []Event) []Event {
	out := make([]Event, 0, len(raw))
	for i := 0; i < len(raw); {
		if ev, n := matchClickSequence(raw, i); n > 0 {
			out = append(out, ev)
			i += n
			continue
		}
		if ev, n := matchFillSequence(raw, i); n > 0 {
			out = append(out, ev)
			i += n
			continue
		}
		out = append(out, raw[i])
		i++
	}
	return out
}

// matchClickSequence matches a contiguous window of exactly
// [mousedown(t), mouseup(t), click(t)] with identical targets and
// collapses it into one synthesized click.
func matchClickSequence(raw []Event, i int) (Event, int) {
	if i+3 > len(raw) {
		return Event{}, 0
	}
	if raw[i].Kind != KindMouseDown || raw[i+1].Kind != KindMouseUp || raw[i+2].Kind != KindClick {
		return Event{}, 0
	}
	target := raw[i].Target
	if raw[i+1].Target != target || raw[i+2].Target != target {
		return Event{}, 0
	}
	return Event{Kind: KindClick, Target: target}, 3
}

// matchFillSequence matches a maximal run of consecutive keypress
// events on one target and collapses it into one synthesized fill
// carrying the final observed field value. The run only starts at a
// keypress whose key name is a single character; named keys such as
// "ArrowLeft" never open a run. Continuation events have no key length
// restriction.
func matchFillSequence(raw []Event, i int) (Event, int) {
	first := raw[i]
	if first.Kind != KindKeypress || utf8.RuneCountInString(first.Key) != 1 {
		return Event{}, 0
	}
	n := 1
	for i+n < len(raw) && raw[i+n].Kind == KindKeypress && raw[i+n].Target == first.Target {
		n++
	}
	last := raw[i+n-1]
	return Event{Kind: KindFill, Target: first.Target, InputValue: last.InputValue}, n
}
