// Package rangetable provides a concurrency-safe claim table over a
// bounded index space [0, size), where claims are whole half-open
// ranges rather than single indices.
package rangetable

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/henderiw/idxrange/pkg/idxrange"
)

type Table[T1 any] interface {
	Get(r idxrange.Range) (T1, error)
	Claim(r idxrange.Range, d T1) error
	ClaimSize(size uint64, d T1) (idxrange.Range, error)
	Release(r idxrange.Range) error
	Update(r idxrange.Range, d T1) error

	Iterate() *Iterator[T1]

	Count() int
	Claimed() uint64
	Has(r idxrange.Range) bool

	IsFree(r idxrange.Range) bool
	FindFree(size uint64) (idxrange.Range, error)

	GetAll() map[idxrange.Range]T1
}

type ValidationFn func(r idxrange.Range) error

func New[T1 any](size uint64, initClaims map[idxrange.Range]T1, v ValidationFn) (Table[T1], error) {
	r := &table[T1]{
		m:          new(sync.RWMutex),
		claims:     map[idxrange.Range]T1{},
		size:       size,
		validateFn: v,
	}

	var errm error
	for rng, d := range initClaims {
		if err := r.add(rng, d, true); err != nil {
			errm = errors.Join(errm, err)
		}
	}

	return r, errm
}

type table[T1 any] struct {
	m          *sync.RWMutex
	claims     map[idxrange.Range]T1
	size       uint64
	validateFn ValidationFn
}

func (r *table[T1]) validate(rng idxrange.Range, init bool) error {
	if rng.IsEmpty() {
		return fmt.Errorf("range %s is empty, cannot be claimed", rng)
	}
	if rng.ClampTo(r.size) != rng {
		return fmt.Errorf("range %s does not fit in space of size: %d", rng, r.size)
	}
	if r.validateFn != nil && !init {
		if err := r.validateFn(rng); err != nil {
			return err
		}
	}
	return nil
}

func (r *table[T1]) Get(rng idxrange.Range) (T1, error) {
	r.m.RLock()
	defer r.m.RUnlock()
	var d T1

	d, ok := r.claims[rng]
	if !ok {
		return d, fmt.Errorf("no match found for: %s", rng)
	}
	return d, nil
}

func (r *table[T1]) Claim(rng idxrange.Range, d T1) error {
	r.m.Lock()
	defer r.m.Unlock()

	return r.add(rng, d, false)
}

func (r *table[T1]) ClaimSize(size uint64, d T1) (idxrange.Range, error) {
	r.m.Lock()
	defer r.m.Unlock()

	rng, err := r.findFree(size)
	if err != nil {
		return idxrange.Range{}, err
	}
	// getting an error is unlikely as we have a lock
	if err := r.add(rng, d, false); err != nil {
		return idxrange.Range{}, err
	}
	return rng, nil
}

func (r *table[T1]) Release(rng idxrange.Range) error {
	r.m.Lock()
	defer r.m.Unlock()

	if _, ok := r.claims[rng]; !ok {
		return fmt.Errorf("claim %s not found", rng)
	}
	delete(r.claims, rng)
	return nil
}

func (r *table[T1]) Update(rng idxrange.Range, d T1) error {
	r.m.Lock()
	defer r.m.Unlock()

	if err := r.validate(rng, false); err != nil {
		return err
	}
	if _, ok := r.claims[rng]; !ok {
		return fmt.Errorf("claim %s not found", rng)
	}
	r.claims[rng] = d
	return nil
}

func (r *table[T1]) Iterate() *Iterator[T1] {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.iterate()
}

func (r *table[T1]) iterate() *Iterator[T1] {
	return &Iterator[T1]{current: -1, keys: r.sortedKeys(), claims: r.claims}
}

func (r *table[T1]) sortedKeys() []idxrange.Range {
	keys := make([]idxrange.Range, 0, len(r.claims))
	for key := range r.claims {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i int, j int) bool {
		return keys[i].Less(keys[j])
	})
	return keys
}

func (r *table[T1]) Count() int {
	r.m.RLock()
	defer r.m.RUnlock()

	return len(r.claims)
}

// Claimed returns the total number of indices covered by claims.
func (r *table[T1]) Claimed() uint64 {
	r.m.RLock()
	defer r.m.RUnlock()

	var total uint64
	for rng := range r.claims {
		total += rng.Len()
	}
	return total
}

func (r *table[T1]) Has(rng idxrange.Range) bool {
	r.m.RLock()
	defer r.m.RUnlock()

	_, ok := r.claims[rng]
	return ok
}

func (r *table[T1]) IsFree(rng idxrange.Range) bool {
	r.m.RLock()
	defer r.m.RUnlock()
	return r.isFree(rng)
}

func (r *table[T1]) isFree(rng idxrange.Range) bool {
	for claimed := range r.claims {
		if _, ok := rng.Intersect(claimed); ok {
			return false
		}
	}
	return true
}

func (r *table[T1]) FindFree(size uint64) (idxrange.Range, error) {
	r.m.RLock()
	defer r.m.RUnlock()
	return r.findFree(size)
}

// findFree returns the lowest free range of the requested size,
// scanning the gaps between claims in ascending order.
func (r *table[T1]) findFree(size uint64) (idxrange.Range, error) {
	if size == 0 {
		return idxrange.Range{}, fmt.Errorf("size %d is not claimable", size)
	}
	if size > r.size {
		return idxrange.Range{}, fmt.Errorf("size %d is bigger then max allowed entries: %d", size, r.size)
	}

	cursor := uint64(0)
	for _, claimed := range r.sortedKeys() {
		gap := idxrange.New(cursor, claimed.Start())
		if gap.Len() >= size {
			return idxrange.New(cursor, cursor+size), nil
		}
		if claimed.End() > cursor {
			cursor = claimed.End()
		}
	}
	gap := idxrange.New(cursor, r.size)
	if gap.Len() >= size {
		return idxrange.New(cursor, cursor+size), nil
	}
	return idxrange.Range{}, fmt.Errorf("could not find free range that fits size %d", size)
}

func (r *table[T1]) GetAll() map[idxrange.Range]T1 {
	r.m.RLock()
	defer r.m.RUnlock()

	claims := make(map[idxrange.Range]T1, len(r.claims))
	for rng, d := range r.claims {
		claims[rng] = d
	}
	return claims
}

func (r *table[T1]) add(rng idxrange.Range, d T1, init bool) error {
	if err := r.validate(rng, init); err != nil {
		return err
	}
	if !r.isFree(rng) {
		return fmt.Errorf("range %s overlaps an existing claim", rng)
	}
	r.claims[rng] = d
	return nil
}
