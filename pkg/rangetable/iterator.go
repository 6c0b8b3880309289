package rangetable

import "github.com/henderiw/idxrange/pkg/idxrange"

// Iterator walks claims in ascending Range order.
type Iterator[T1 any] struct {
	current int
	keys    []idxrange.Range
	claims  map[idxrange.Range]T1
}

func (r *Iterator[T1]) Value() Entry[T1] {
	rng := r.keys[r.current]
	return NewEntry(rng, r.claims[rng])
}

func (r *Iterator[T1]) Range() idxrange.Range {
	return r.keys[r.current]
}

func (r *Iterator[T1]) Next() bool {
	r.current++
	return r.current < len(r.keys)
}
