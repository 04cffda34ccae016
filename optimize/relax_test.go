package optimize

import (
	"testing"

	"github.com/katalvlaran/cartograph/columnbasis"
	"github.com/katalvlaran/cartograph/titer"
	"github.com/katalvlaran/cartograph/titers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fourAntigenThreeSeraTable builds a small, well-connected titer table:
// enough regular titers that every point clears the "too few numeric
// titers" threshold and the table has >= 3 connected points.
func fourAntigenThreeSeraTable(t *testing.T) (*titers.Titers, *columnbasis.ColumnBases) {
	t.Helper()
	tb, err := titers.New(4, 3)
	require.NoError(t, err)
	values := [4][3]int{
		{640, 320, 160},
		{320, 640, 80},
		{160, 80, 320},
		{80, 160, 640},
	}
	for ag := 0; ag < 4; ag++ {
		for sr := 0; sr < 3; sr++ {
			require.NoError(t, tb.SetTiter(ag, sr, titer.Regular(values[ag][sr])))
		}
	}
	cb := columnbasis.New(tb, 7.0)

	return tb, cb
}

func TestRelax_ProducesSortedNonIncreasingStress(t *testing.T) {
	tb, cb := fourAntigenThreeSeraTable(t)
	set, err := Relax(tb, cb, 7.0, 2, 4, RelaxOptions{Method: CGPCA, Seed: 1, NumThreads: 2})
	require.NoError(t, err)
	require.Equal(t, 4, set.Len())

	var prev float64
	for i := 0; i < set.Len(); i++ {
		p, err := set.At(i)
		require.NoError(t, err)
		v, err := p.FinalStress()
		require.NoError(t, err)
		if i > 0 {
			assert.GreaterOrEqual(t, v, prev)
		}
		prev = v
	}
}

func TestRelax_TooFewConnectedPoints(t *testing.T) {
	tb, cb := fourAntigenThreeSeraTable(t)
	disconnected := map[int]bool{0: true, 1: true, 2: true, 3: true, 4: true, 5: true}
	_, err := Relax(tb, cb, 7.0, 2, 2, RelaxOptions{Method: CGPCA, Seed: 1, Disconnected: disconnected})
	assert.ErrorIs(t, err, ErrTooFewConnectedPoints)
}

func TestRelax_DimensionAnnealingProducesTargetDims(t *testing.T) {
	tb, cb := fourAntigenThreeSeraTable(t)
	set, err := Relax(tb, cb, 7.0, 2, 2, RelaxOptions{
		Method: CGPCA, Seed: 2, NumThreads: 2, DimensionAnnealing: true,
	})
	require.NoError(t, err)
	p, err := set.At(0)
	require.NoError(t, err)
	assert.Equal(t, 2, p.NumDims())
}
