package optimize

import (
	"math"
	"testing"

	"github.com/katalvlaran/cartograph/layout"
	"github.com/katalvlaran/cartograph/tabledist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flatLayout builds a layout whose variance lives almost entirely along
// dimension 0, so truncating to 1 dimension should preserve it well.
func flatLayout(t *testing.T) *layout.Layout {
	t.Helper()
	l, err := layout.New(5, 3)
	require.NoError(t, err)
	xs := []float64{-2, -1, 0, 1, 2}
	for i, x := range xs {
		require.NoError(t, l.Set(i, 0, x))
		require.NoError(t, l.Set(i, 1, 0.001*x))
		require.NoError(t, l.Set(i, 2, -0.001*x))
	}

	return l
}

func TestDimensionAnneal_SVD_ReducesDims(t *testing.T) {
	l := flatLayout(t)
	td := tabledist.TableDistances{}
	projected, res, err := DimensionAnneal(l, td, Masks{}, CGPCA, PCASVD, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, projected.NumDims())
	assert.False(t, math.IsNaN(res.FinalStress))
}

func TestDimensionAnneal_JacobiMatchesSVDVariance(t *testing.T) {
	l := flatLayout(t)
	td := tabledist.TableDistances{}

	svdProjected, _, err := DimensionAnneal(l.Clone(), td, Masks{}, CGPCA, PCASVD, 1)
	require.NoError(t, err)
	jacobiProjected, _, err := DimensionAnneal(l.Clone(), td, Masks{}, CGPCA, PCAJacobi, 1)
	require.NoError(t, err)

	svdSpread := svdProjected.BoundingBoxSides()[0]
	jacobiSpread := jacobiProjected.BoundingBoxSides()[0]
	assert.InDelta(t, svdSpread, jacobiSpread, 0.5)
}

func TestDimensionAnneal_PreservesDisconnectedPoints(t *testing.T) {
	l := flatLayout(t)
	require.NoError(t, l.Disconnect(2))
	td := tabledist.TableDistances{}

	projected, _, err := DimensionAnneal(l, td, Masks{}, CGPCA, PCASVD, 2)
	require.NoError(t, err)
	assert.False(t, projected.PointHasCoordinates(2))
	assert.True(t, projected.PointHasCoordinates(0))
}

func TestDimensionAnneal_InvalidTargetDims(t *testing.T) {
	l := flatLayout(t)
	_, _, err := DimensionAnneal(l, tabledist.TableDistances{}, Masks{}, CGPCA, PCASVD, 5)
	assert.Error(t, err)
}
