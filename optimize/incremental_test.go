package optimize

import (
	"testing"

	"github.com/katalvlaran/cartograph/projection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func placedProjection(t *testing.T, numPoints int, placed []int) *projection.Projection {
	t.Helper()
	p, err := projection.New(numPoints, 2, 7.0)
	require.NoError(t, err)
	for i, pt := range placed {
		require.NoError(t, p.Layout().Set(pt, 0, float64(i)))
		require.NoError(t, p.Layout().Set(pt, 1, float64(i)))
	}
	p.SetFinalStress(1.0)

	return p
}

func TestIncrementalRelax_KeepsSourceByDefault(t *testing.T) {
	tb, cb := fourAntigenThreeSeraTable(t)
	source := placedProjection(t, 7, []int{0, 1, 2, 3, 4})

	set, err := IncrementalRelax(tb, cb, source, 3, IncrementalOptions{
		Method: CGPCA, Seed: 5, KeepExistingUnmovable: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, set.Len()) // source + 3 clones
}

func TestIncrementalRelax_RemoveSource(t *testing.T) {
	tb, cb := fourAntigenThreeSeraTable(t)
	source := placedProjection(t, 7, []int{0, 1, 2, 3, 4})

	set, err := IncrementalRelax(tb, cb, source, 3, IncrementalOptions{
		Method: CGPCA, Seed: 6, RemoveSource: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, set.Len())
}

func TestIncrementalRelax_FineOptimizesTopK(t *testing.T) {
	tb, cb := fourAntigenThreeSeraTable(t)
	source := placedProjection(t, 7, []int{0, 1, 2, 3, 4})

	set, err := IncrementalRelax(tb, cb, source, 2, IncrementalOptions{
		Method: CGPCA, Seed: 7, RemoveSource: true, Fine: true,
	})
	require.NoError(t, err)
	p, err := set.At(0)
	require.NoError(t, err)
	v, err := p.FinalStress()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, v, 0.0)
}
