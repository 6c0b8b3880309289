// Package spantable tracks labeled spans over a bounded index space,
// e.g. annotated regions of a buffer. Spans carry a labels.Set and can
// be queried by label selector.
package spantable

import (
	"fmt"

	"k8s.io/apimachinery/pkg/labels"

	"github.com/henderiw/idxrange/pkg/idxrange"
	"github.com/henderiw/idxrange/pkg/rangetable"
)

type SpanTable interface {
	Get(r idxrange.Range) (labels.Set, error)
	Claim(r idxrange.Range, d labels.Set) error
	ClaimSize(size uint64, d labels.Set) (idxrange.Range, error)
	Release(r idxrange.Range) error
	Update(r idxrange.Range, d labels.Set) error

	Count() int
	Has(r idxrange.Range) bool

	IsFree(r idxrange.Range) bool
	FindFree(size uint64) (idxrange.Range, error)

	GetAll() map[idxrange.Range]labels.Set
	GetByLabel(selector labels.Selector) map[idxrange.Range]labels.Set
}

// New returns a span table over [0, size). Reserved spans are claimed
// up front and protected from Claim/Update by the validation fn; they
// can still be released explicitly.
func New(size uint64, reserved map[idxrange.Range]labels.Set) (SpanTable, error) {
	t, err := rangetable.New[labels.Set](
		size,
		reserved,
		func(r idxrange.Range) error {
			for rsv := range reserved {
				if _, ok := r.Intersect(rsv); ok {
					return fmt.Errorf("span %s overlaps reserved span %s", r, rsv)
				}
			}
			return nil
		},
	)
	if err != nil {
		return nil, err
	}
	return &spanTable{
		table: t,
		size:  size,
	}, nil
}

type spanTable struct {
	table rangetable.Table[labels.Set]
	size  uint64
}

func (r *spanTable) Get(rng idxrange.Range) (labels.Set, error) {
	return r.table.Get(rng)
}

func (r *spanTable) Claim(rng idxrange.Range, d labels.Set) error {
	if !r.table.IsFree(rng) {
		return fmt.Errorf("span %s is already claimed", rng)
	}
	return r.table.Claim(rng, d)
}

func (r *spanTable) ClaimSize(size uint64, d labels.Set) (idxrange.Range, error) {
	return r.table.ClaimSize(size, d)
}

func (r *spanTable) Release(rng idxrange.Range) error {
	return r.table.Release(rng)
}

func (r *spanTable) Update(rng idxrange.Range, d labels.Set) error {
	return r.table.Update(rng, d)
}

func (r *spanTable) Count() int {
	return r.table.Count()
}

func (r *spanTable) Has(rng idxrange.Range) bool {
	return r.table.Has(rng)
}

func (r *spanTable) IsFree(rng idxrange.Range) bool {
	return r.table.IsFree(rng)
}

func (r *spanTable) FindFree(size uint64) (idxrange.Range, error) {
	return r.table.FindFree(size)
}

func (r *spanTable) GetAll() map[idxrange.Range]labels.Set {
	return r.table.GetAll()
}

func (r *spanTable) GetByLabel(selector labels.Selector) map[idxrange.Range]labels.Set {
	spans := map[idxrange.Range]labels.Set{}

	iter := r.table.Iterate()

	for iter.Next() {
		if selector.Matches(iter.Value().Data()) {
			spans[iter.Range()] = iter.Value().Data()
		}
	}
	return spans
}
