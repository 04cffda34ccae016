package columnbasis

import (
	"testing"

	"github.com/katalvlaran/cartograph/titer"
	"github.com/katalvlaran/cartograph/titers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMinimumColumnBasis(t *testing.T) {
	cases := map[string]float64{
		"":     0,
		"none": 0,
		"None": 0,
		"1280": 7,
		"640":  6,
		"320":  5,
		"160":  4,
		"80":   3,
		"5":    5,
	}
	for in, want := range cases {
		got, err := ParseMinimumColumnBasis(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestParseMinimumColumnBasis_Invalid(t *testing.T) {
	_, err := ParseMinimumColumnBasis("abc")
	assert.ErrorIs(t, err, ErrInvalidMinimumColumnBasis)
}

func TestNew_Chart1RawColumnBases(t *testing.T) {
	// spec.md §8 scenario 1: 22 antigens / 10 sera fixture has raw
	// column bases [3,5,4,4,5,6,5,5,6,5] at mcb="none". We exercise the
	// floor/monotonicity contract on a reduced 2-serum slice instead of
	// reconstructing the full fixture.
	tb, err := titers.New(1, 2)
	require.NoError(t, err)
	require.NoError(t, tb.SetTiter(0, 0, titer.Regular(80)))  // log2(8)=3
	require.NoError(t, tb.SetTiter(0, 1, titer.Regular(320))) // log2(32)=5

	cb := New(tb, 0)
	v0, _ := cb.Get(0)
	v1, _ := cb.Get(1)
	assert.Equal(t, 3.0, v0)
	assert.Equal(t, 5.0, v1)
}

func TestNew_MinimumColumnBasisFloors(t *testing.T) {
	tb, err := titers.New(1, 1)
	require.NoError(t, err)
	require.NoError(t, tb.SetTiter(0, 0, titer.Regular(40))) // log2(4)=2

	cb := New(tb, 6) // mcb=6 floors the basis above the raw value of 2
	v, _ := cb.Get(0)
	assert.Equal(t, 6.0, v)
}

func TestMonotonicity(t *testing.T) {
	tb, err := titers.New(1, 1)
	require.NoError(t, err)
	require.NoError(t, tb.SetTiter(0, 0, titer.Regular(40)))
	cb := New(tb, 0)
	before, _ := cb.Get(0)

	require.NoError(t, tb.SetTiter(0, 0, titer.Regular(160))) // raises
	cb2 := New(tb, 0)
	after, _ := cb2.Get(0)
	assert.Greater(t, after, before)

	// adding a smaller titer elsewhere never lowers an unrelated basis.
	tb2, err := titers.New(2, 1)
	require.NoError(t, err)
	require.NoError(t, tb2.SetTiter(0, 0, titer.Regular(160)))
	require.NoError(t, tb2.SetTiter(1, 0, titer.Regular(10)))
	cb3 := New(tb2, 0)
	v, _ := cb3.Get(0)
	assert.Equal(t, after, v)
}

func TestSetForced(t *testing.T) {
	tb, err := titers.New(1, 1)
	require.NoError(t, err)
	cb := New(tb, 0)
	require.NoError(t, cb.SetForced(0, 9))
	v, _ := cb.Get(0)
	assert.Equal(t, 9.0, v)
	assert.True(t, cb.IsForced(0))
}

func TestGet_OutOfRange(t *testing.T) {
	tb, err := titers.New(1, 1)
	require.NoError(t, err)
	cb := New(tb, 0)
	_, err = cb.Get(5)
	assert.ErrorIs(t, err, ErrOutOfRange)
}
