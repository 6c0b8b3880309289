package rangetable

import "github.com/henderiw/idxrange/pkg/idxrange"

type Entry[T1 any] interface {
	Range() idxrange.Range
	Data() T1
}

type entry[T1 any] struct {
	rng  idxrange.Range
	data T1
}

func (r entry[T1]) Range() idxrange.Range { return r.rng }
func (r entry[T1]) Data() T1              { return r.data }

func NewEntry[T1 any](rng idxrange.Range, d T1) Entry[T1] {
	return entry[T1]{
		rng:  rng,
		data: d,
	}
}

type Entries[T1 any] []Entry[T1]
