package dma

import "math"

// rangeKind enumerates the supported range shapes. The set is closed:
// resolution logic switches over it exhaustively and external code cannot
// add shapes.
type rangeKind uint8

const (
	rangeSpan   rangeKind = iota // [start, end)
	rangeClosed                  // [start, end]
	rangeFrom                    // [start, length)
	rangeTo                      // [0, end)
	rangeFull                    // [0, length)
)

// rangeUnbounded marks an open end. A window of MaxInt words cannot exist
// in a real address space, but an owner reporting exactly this length would
// be indistinguishable from an open end.
const rangeUnbounded = math.MaxInt

// Range selects a sub-window of a buffer, in words. Construct one with
// Span, Closed, From, To or Full; the zero value behaves like Span(0, 0).
type Range struct {
	start int
	end   int
	kind  rangeKind
}

// Span selects the half-open window [start, end).
func Span(start, end int) Range {
	return Range{start: start, end: end, kind: rangeSpan}
}

// Closed selects the inclusive window [start, end].
func Closed(start, end int) Range {
	return Range{start: start, end: end, kind: rangeClosed}
}

// From selects [start, length), through the end of the buffer.
func From(start int) Range {
	return Range{start: start, kind: rangeFrom}
}

// To selects [0, end).
func To(end int) Range {
	return Range{end: end, kind: rangeTo}
}

// Full selects the whole buffer.
func Full() Range {
	return Range{kind: rangeFull}
}

// bounds normalizes r to a start and an exclusive end, with open ends
// reported as rangeUnbounded. A closed end at the sentinel has no half-open
// form; it saturates to the open end and resolve rejects it separately.
func (r Range) bounds() (start, end int) {
	switch r.kind {
	case rangeSpan:
		return r.start, r.end
	case rangeClosed:
		if r.end == rangeUnbounded {
			return r.start, rangeUnbounded
		}
		return r.start, r.end + 1
	case rangeFrom:
		return r.start, rangeUnbounded
	case rangeTo:
		return 0, r.end
	default: // rangeFull
		return 0, rangeUnbounded
	}
}

// resolve validates r against a window of n words. ok is false when the
// request is inverted or reaches past n; on success 0 <= start <= end <= n
// holds.
func (r Range) resolve(n int) (start, end int, ok bool) {
	if r.kind == rangeClosed && r.end == rangeUnbounded {
		// The inclusive end would overflow the exclusive form.
		return 0, 0, false
	}
	start, end = r.bounds()
	if end == rangeUnbounded {
		end = n
	}
	if start < 0 || start > end || end > n {
		return 0, 0, false
	}
	return start, end, true
}

// clamp saturates r against a window of n words. It cannot fail: both ends
// are clamped to n and the start is additionally clamped to the end, so a
// request wholly past the buffer collapses to a zero-length window at its
// edge. 0 <= start <= end <= n always holds for the result.
func (r Range) clamp(n int) (start, end int) {
	start, end = r.bounds()
	if start < 0 {
		start = 0
	}
	if end < 0 {
		end = 0
	}
	if end > n {
		end = n
	}
	if start > end {
		start = end
	}
	return start, end
}
