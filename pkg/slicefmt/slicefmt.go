// Package slicefmt renders slices as "[e0, e1, ..., eN]" using each
// element's own textual representation.
package slicefmt

import (
	"fmt"
	"strings"
)

// Slice is a display wrapper over a borrowed slice. It is a named
// slice type, so indexing, len and range work on it directly; the
// wrapper adds only the String method.
type Slice[T any] []T

// New wraps s for formatting. The wrapper shares s's backing array.
func New[T any](s []T) Slice[T] {
	return Slice[T](s)
}

// String renders the slice as "[e0, e1, ..., eN]". Each element is
// formatted with %v, so elements implementing fmt.Stringer render
// themselves. An empty or nil slice renders as "[]".
func (s Slice[T]) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range s {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%v", v)
	}
	sb.WriteByte(']')
	return sb.String()
}
