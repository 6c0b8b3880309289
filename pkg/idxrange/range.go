// Package idxrange provides a compact, copyable half-open index range
// usable directly to slice contiguous sequences. A Range holds a start
// (inclusive) and end (exclusive) and is comparable, so it can be used
// as a map key and compared with ==.
package idxrange

import "fmt"

// Range is a half-open interval [start, end) over unsigned indices.
//
// Construction does not validate start <= end; methods define their own
// behavior for inverted ranges (Len returns 0, IsEmpty returns true).
type Range struct {
	start uint64
	end   uint64
}

// New returns the range [start, end). The bounds are not validated;
// callers should ensure start <= end if that invariant matters for
// their use case.
func New(start, end uint64) Range {
	return Range{start: start, end: end}
}

// Start returns the lower bound of r (inclusive).
func (r Range) Start() uint64 { return r.start }

// End returns the upper bound of r (exclusive).
func (r Range) End() uint64 { return r.end }

// Bounds returns the start and end of r as a plain pair.
func (r Range) Bounds() (start, end uint64) {
	return r.start, r.end
}

// Len returns the number of indices in r, saturating at 0 when the
// range is inverted.
func (r Range) Len() uint64 {
	if r.end <= r.start {
		return 0
	}
	return r.end - r.start
}

// IsEmpty reports whether r contains no indices, i.e. start >= end.
func (r Range) IsEmpty() bool {
	return r.start >= r.end
}

// Contains reports whether index i is inside r.
func (r Range) Contains(i uint64) bool {
	return i >= r.start && i < r.end
}

// ClampTo returns r with both bounds independently capped at n. The
// result can safely slice a sequence of length n; it may be empty or
// inverted if r already was.
func (r Range) ClampTo(n uint64) Range {
	s := min(r.start, n)
	e := min(r.end, n)
	return Range{start: s, end: e}
}

// Intersect returns the overlap of r and other. ok is false when the
// ranges do not overlap; abutting ranges such as [0,2) and [2,4) do
// not overlap.
func (r Range) Intersect(other Range) (_ Range, ok bool) {
	s := max(r.start, other.start)
	e := min(r.end, other.end)
	if s >= e {
		return Range{}, false
	}
	return Range{start: s, end: e}, true
}

// Offset returns r shifted up by delta. The addition is unchecked and
// wraps on overflow; callers must ensure shifting is safe.
func (r Range) Offset(delta uint64) Range {
	return Range{start: r.start + delta, end: r.end + delta}
}

// Shrink grows start by startShrink and lowers end by endShrink, both
// saturating. If the result inverts, it is normalized to an empty
// range at the new start, so repeated shrinks of a degenerate range
// stay stable rather than drifting.
func (r Range) Shrink(startShrink, endShrink uint64) Range {
	s := satAdd(r.start, startShrink)
	e := satSub(r.end, endShrink)
	if s >= e {
		return Range{start: s, end: s}
	}
	return Range{start: s, end: e}
}

// Compare returns an integer comparing two ranges lexicographically on
// (start, end). The result is 0 if r == other, -1 if r < other, and
// +1 if r > other.
func (r Range) Compare(other Range) int {
	if r.start != other.start {
		if r.start < other.start {
			return -1
		}
		return 1
	}
	if r.end != other.end {
		if r.end < other.end {
			return -1
		}
		return 1
	}
	return 0
}

// Less reports whether r sorts before other.
func (r Range) Less(other Range) bool { return r.Compare(other) == -1 }

// String returns a deterministic diagnostic form exposing both bounds,
// e.g. "[2,5)". Not a stable contract.
func (r Range) String() string {
	return fmt.Sprintf("[%d,%d)", r.start, r.end)
}

func satAdd(a, b uint64) uint64 {
	c := a + b
	if c < a {
		return ^uint64(0)
	}
	return c
}

func satSub(a, b uint64) uint64 {
	if b > a {
		return 0
	}
	return a - b
}
