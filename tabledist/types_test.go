package tabledist

import (
	"testing"

	"github.com/katalvlaran/cartograph/columnbasis"
	"github.com/katalvlaran/cartograph/titer"
	"github.com/katalvlaran/cartograph/titers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute_ThresholdTiterHandling(t *testing.T) {
	// spec.md §8 scenario 2: 2 antigens, 1 serum; titers 40 and <40; mcb=0.
	tb, err := titers.New(2, 1)
	require.NoError(t, err)
	require.NoError(t, tb.SetTiter(0, 0, titer.Regular(40)))
	require.NoError(t, tb.SetTiter(1, 0, titer.LessThan(40)))

	cb := columnbasis.New(tb, 0)
	basis, _ := cb.Get(0)
	assert.Equal(t, 2.0, basis) // log2(4) = 2

	td := Compute(tb, cb, Options{})
	require.Len(t, td.Regular, 1)
	require.Len(t, td.LessThan, 1)
	assert.Equal(t, 0.0, td.Regular[0].Distance)
	assert.Equal(t, 1.0, td.LessThan[0].Distance) // basis 2 - logged_with_thresholded(1) - avidity(0)
	assert.Equal(t, 2, td.LessThan[0].PointJ) // numAntigens(2) + serum(0)
}

func TestCompute_MoreThanDiscarded(t *testing.T) {
	tb, err := titers.New(1, 1)
	require.NoError(t, err)
	require.NoError(t, tb.SetTiter(0, 0, titer.MoreThan(40)))
	cb := columnbasis.New(tb, 0)

	td := Compute(tb, cb, Options{})
	assert.Empty(t, td.Regular)
	assert.Empty(t, td.LessThan)
}

func TestCompute_DodgyRoutingFlag(t *testing.T) {
	tb, err := titers.New(1, 1)
	require.NoError(t, err)
	require.NoError(t, tb.SetTiter(0, 0, titer.Dodgy(40)))
	cb := columnbasis.New(tb, 0)

	dropped := Compute(tb, cb, Options{})
	assert.Empty(t, dropped.Regular)

	routed := Compute(tb, cb, Options{DodgyIsRegular: true})
	assert.Len(t, routed.Regular, 1)
}

func TestCompute_DisconnectedExcluded(t *testing.T) {
	tb, err := titers.New(1, 1)
	require.NoError(t, err)
	require.NoError(t, tb.SetTiter(0, 0, titer.Regular(40)))
	cb := columnbasis.New(tb, 0)

	td := Compute(tb, cb, Options{Disconnected: map[int]bool{0: true}})
	assert.Empty(t, td.Regular)
	assert.Empty(t, td.LessThan)
}
