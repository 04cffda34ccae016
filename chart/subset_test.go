package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/cartograph/layout"
	"github.com/katalvlaran/cartograph/projection"
	"github.com/katalvlaran/cartograph/titer"
)

func buildChartWithProjection(t *testing.T) *Chart {
	t.Helper()
	c := buildChart(t)

	p, err := projection.New(4, 1, 0)
	require.NoError(t, err)
	require.NoError(t, p.Modify(func(l *layout.Layout) error {
		require.NoError(t, l.Set(0, 0, 0.0))
		require.NoError(t, l.Set(1, 0, 1.0))
		require.NoError(t, l.Set(2, 0, 2.0))
		require.NoError(t, l.Set(3, 0, 3.0))

		return nil
	}))
	p.SetUnmovable(2, true)
	require.NoError(t, c.AddProjection(p))

	return c
}

func TestCloneIsIndependent(t *testing.T) {
	c := buildChartWithProjection(t)
	clone := c.Clone()

	clone.SetForcedColumnBasis(0, 42.0)
	_, ok := c.ForcedColumnBasis(0)
	assert.False(t, ok)

	tt, err := clone.titers.Titer(0, 0)
	require.NoError(t, err)
	assert.True(t, tt.Equal(titer.Regular(1280)))
}

func TestSubsetRemapsAntigensSeraAndProjections(t *testing.T) {
	c := buildChartWithProjection(t)

	sub, err := c.Subset([]int{1}, []int{0})
	require.NoError(t, err)
	assert.Equal(t, 2, sub.NumPoints())
	ag, err := sub.Antigen(0)
	require.NoError(t, err)
	assert.Equal(t, "ag1", ag.Name)
	sr, err := sub.Serum(0)
	require.NoError(t, err)
	assert.Equal(t, "sr0", sr.Name)

	tt, err := sub.titers.Titer(0, 0)
	require.NoError(t, err)
	assert.True(t, tt.Equal(titer.Regular(80))) // original (ag1, sr0)

	require.Equal(t, 1, sub.Projections().Len())
	p, err := sub.Projections().At(0)
	require.NoError(t, err)
	// original point 1 (antigen 1) -> new point 0; original point 2
	// (serum 0, index nAntigens+0=2) -> new point 1.
	v0, err := p.Layout().At(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v0)
	v1, err := p.Layout().At(1, 0)
	require.NoError(t, err)
	assert.Equal(t, 2.0, v1)
	assert.True(t, p.UnmovablePoints()[1])
}

func TestSubsetRejectsOutOfRangeIndex(t *testing.T) {
	c := buildChart(t)
	_, err := c.Subset([]int{5}, []int{0})
	require.Error(t, err)
}
