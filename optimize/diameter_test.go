package optimize

import (
	"testing"

	"github.com/katalvlaran/cartograph/layout"
	"github.com/katalvlaran/cartograph/tabledist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableMaxDistanceRandomizer_PositiveDiameter(t *testing.T) {
	tb, cb := fourAntigenThreeSeraTable(t)
	rnd, err := TableMaxDistanceRandomizer(tb, cb, 1)
	require.NoError(t, err)
	assert.Greater(t, rnd.Diameter(), 0.0)
}

func TestCurrentLayoutAreaRandomizer_ZeroAreaFails(t *testing.T) {
	l, err := layout.New(3, 2)
	require.NoError(t, err)
	_, err = CurrentLayoutAreaRandomizer(l, 2.0, 1)
	assert.ErrorIs(t, err, ErrInvalidDiameter)
}

func TestFromSampleOptimizationRandomizer_PositiveDiameter(t *testing.T) {
	tb, cb := fourAntigenThreeSeraTable(t)
	td := tabledist.Compute(tb, cb, tabledist.Options{})
	rnd, err := FromSampleOptimizationRandomizer(tb, cb, td, 2, 2.0, 3)
	require.NoError(t, err)
	assert.Greater(t, rnd.Diameter(), 0.0)
}
