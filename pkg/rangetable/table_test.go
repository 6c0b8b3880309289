package rangetable

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/henderiw/idxrange/pkg/idxrange"
)

var initClaims = map[idxrange.Range]string{
	idxrange.New(0, 2):      "a",
	idxrange.New(5, 9):      "b",
	idxrange.New(990, 1000): "c",
}

func TestNew(t *testing.T) {
	cases := map[string]struct {
		size           uint64
		initClaims     map[idxrange.Range]string
		validation     ValidationFn
		expectedClaims int
		expectedErr    bool
	}{

		"NewWithoutInitClaims": {
			size:           1000,
			initClaims:     nil,
			expectedClaims: 0,
		},
		"NewWithInitClaims": {
			size:           1000,
			initClaims:     initClaims,
			validation:     func(r idxrange.Range) error { return nil },
			expectedClaims: 3,
		},
		"NewErrorOutOfSpace": {
			size:        100,
			initClaims:  initClaims,
			expectedErr: true,
		},
		"NewErrorEmptyRange": {
			size: 1000,
			initClaims: map[idxrange.Range]string{
				idxrange.New(4, 4): "empty",
			},
			expectedErr: true,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			r, err := New[string](tc.size, tc.initClaims, tc.validation)
			if tc.expectedErr {
				assert.Error(t, err)
				return
			} else {
				assert.NoError(t, err)
			}
			if r.Count() != tc.expectedClaims {
				t.Errorf("%s: -want %d, +got: %d\n", name, tc.expectedClaims, r.Count())
			}
		})
	}
}

func TestClaim(t *testing.T) {
	cases := map[string]struct {
		size             uint64
		initClaims       map[idxrange.Range]string
		newSuccessClaims map[idxrange.Range]string
		newFailedClaims  map[idxrange.Range]string
		expectedClaims   int
	}{

		"Normal": {
			size:       1000,
			initClaims: initClaims,
			newSuccessClaims: map[idxrange.Range]string{
				idxrange.New(2, 5):     "abutting both sides",
				idxrange.New(100, 200): "gap",
			},
			newFailedClaims: map[idxrange.Range]string{
				idxrange.New(1, 3):      "overlaps head claim",
				idxrange.New(8, 12):     "overlaps tail of b",
				idxrange.New(0, 1000):   "covers everything",
				idxrange.New(995, 1001): "out of space",
				idxrange.New(300, 300):  "empty",
				idxrange.New(400, 350):  "inverted",
			},
			expectedClaims: 5,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			r, err := New[string](tc.size, tc.initClaims, nil)
			assert.NoError(t, err)

			for rng, d := range tc.newSuccessClaims {
				err := r.Claim(rng, d)
				assert.NoError(t, err)
			}
			for rng, d := range tc.newFailedClaims {
				err := r.Claim(rng, d)
				assert.Error(t, err)
			}
			// check table
			for rng := range tc.initClaims {
				if !r.Has(rng) {
					t.Errorf("%s expecting initClaim: %s\n", name, rng)
				}
			}
			for rng := range tc.newSuccessClaims {
				if !r.Has(rng) {
					t.Errorf("%s expecting success claim: %s\n", name, rng)
				}
			}
			for rng := range tc.newFailedClaims {
				if r.Has(rng) {
					t.Errorf("%s not expecting failed claim: %s\n", name, rng)
				}
			}
			if r.Count() != tc.expectedClaims {
				t.Errorf("%s: -want %d, +got: %d\n", name, tc.expectedClaims, r.Count())
			}
		})
	}
}

func TestClaimValidation(t *testing.T) {
	reserved := idxrange.New(0, 10)
	r, err := New[string](100, map[idxrange.Range]string{reserved: "reserved"},
		func(rng idxrange.Range) error {
			if _, ok := rng.Intersect(reserved); ok {
				return errors.New("reserved space")
			}
			return nil
		},
	)
	assert.NoError(t, err)

	// init claims bypass the validation fn, new claims do not
	assert.Error(t, r.Claim(idxrange.New(0, 5), "x"))
	assert.NoError(t, r.Claim(idxrange.New(10, 20), "y"))
}

func TestClaimSizeFindFree(t *testing.T) {
	r, err := New[string](20, map[idxrange.Range]string{
		idxrange.New(0, 4):   "a",
		idxrange.New(6, 10):  "b",
		idxrange.New(14, 18): "c",
	}, nil)
	assert.NoError(t, err)

	// first fitting gap wins
	got, err := r.FindFree(2)
	assert.NoError(t, err)
	assert.Equal(t, idxrange.New(4, 6), got)

	got, err = r.FindFree(4)
	assert.NoError(t, err)
	assert.Equal(t, idxrange.New(10, 14), got)

	_, err = r.FindFree(5)
	assert.Error(t, err)

	// ClaimSize takes the gap it found
	got, err = r.ClaimSize(2, "d")
	assert.NoError(t, err)
	assert.Equal(t, idxrange.New(4, 6), got)
	assert.True(t, r.Has(idxrange.New(4, 6)))

	// that gap is gone now
	got, err = r.FindFree(2)
	assert.NoError(t, err)
	assert.Equal(t, idxrange.New(10, 12), got)

	_, err = r.FindFree(0)
	assert.Error(t, err)
	_, err = r.FindFree(21)
	assert.Error(t, err)
}

func TestReleaseUpdate(t *testing.T) {
	r, err := New[string](1000, initClaims, nil)
	assert.NoError(t, err)

	rng := idxrange.New(5, 9)
	assert.NoError(t, r.Update(rng, "b2"))
	d, err := r.Get(rng)
	assert.NoError(t, err)
	assert.Equal(t, "b2", d)

	// Release requires the exact claimed range, not a sub-range
	assert.Error(t, r.Release(idxrange.New(5, 7)))
	assert.NoError(t, r.Release(rng))
	assert.Error(t, r.Release(rng))
	assert.Error(t, r.Update(rng, "b3"))
	_, err = r.Get(rng)
	assert.Error(t, err)

	// released space is claimable again
	assert.NoError(t, r.Claim(rng, "b4"))
}

func TestIterateGetAll(t *testing.T) {
	r, err := New[string](1000, initClaims, nil)
	assert.NoError(t, err)

	var order []idxrange.Range
	iter := r.Iterate()
	for iter.Next() {
		order = append(order, iter.Range())
		assert.Equal(t, iter.Range(), iter.Value().Range())
	}
	expectedOrder := []idxrange.Range{
		idxrange.New(0, 2),
		idxrange.New(5, 9),
		idxrange.New(990, 1000),
	}
	if diff := cmp.Diff(expectedOrder, order, cmp.AllowUnexported(idxrange.Range{})); diff != "" {
		t.Errorf("iterate order mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff(initClaims, r.GetAll(), cmp.AllowUnexported(idxrange.Range{})); diff != "" {
		t.Errorf("getall mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, uint64(2+4+10), r.Claimed())
}
