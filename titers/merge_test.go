package titers

import (
	"testing"

	"github.com/katalvlaran/cartograph/titer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeCell_RegularOnly(t *testing.T) {
	// spec.md §8 scenario 3: layers 40 and 80 -> from_logged(mean(2,3)) = from_logged(2.5) = 57 (rounded).
	merged, diag := mergeCell([]titer.Titer{titer.Regular(40), titer.Regular(80)}, MoreThanToDontCare)
	assert.Equal(t, DiagRegularOnly, diag)
	v, ok := merged.Value()
	require.True(t, ok)
	assert.Equal(t, 57, v)
}

func TestMergeCell_LessThanAndRegular(t *testing.T) {
	// spec.md §8 scenario 4: <40, 160 -> <320 (max(<)=40 is not > max(regular)=160, so max(regular)*2).
	merged, diag := mergeCell([]titer.Titer{titer.LessThan(40), titer.Regular(160)}, MoreThanToDontCare)
	assert.Equal(t, DiagLessThanAndRegular, diag)
	assert.True(t, merged.IsLessThan())
	v, _ := merged.Value()
	assert.Equal(t, 320, v)
}

func TestMergeCell_LessThanStrictlyGreater(t *testing.T) {
	// max(<)=200 > max(regular)=40: smallest "<" value strictly greater than 40 is 200 itself here.
	merged, diag := mergeCell([]titer.Titer{titer.LessThan(200), titer.Regular(40)}, MoreThanToDontCare)
	assert.Equal(t, DiagLessThanAndRegular, diag)
	v, _ := merged.Value()
	assert.Equal(t, 200, v)
}

func TestMergeCell_Empty(t *testing.T) {
	merged, diag := mergeCell(nil, MoreThanToDontCare)
	assert.Equal(t, DiagAllDontCare, diag)
	assert.True(t, merged.IsDontCare())
}

func TestMergeCell_LessAndMoreThan(t *testing.T) {
	merged, diag := mergeCell([]titer.Titer{titer.LessThan(40), titer.MoreThan(80)}, MoreThanToDontCare)
	assert.Equal(t, DiagLessAndMoreThan, diag)
	assert.True(t, merged.IsDontCare())
}

func TestMergeCell_MoreThanOnlyPolicies(t *testing.T) {
	merged, diag := mergeCell([]titer.Titer{titer.MoreThan(80), titer.MoreThan(160)}, MoreThanAdjustToNext)
	assert.Equal(t, DiagMoreThanOnlyAdjustToNext, diag)
	v, _ := merged.Value()
	assert.Equal(t, 160, v)

	merged2, diag2 := mergeCell([]titer.Titer{titer.MoreThan(80), titer.MoreThan(160)}, MoreThanToDontCare)
	assert.Equal(t, DiagMoreThanOnlyToDontCare, diag2)
	assert.True(t, merged2.IsDontCare())
}

func TestMergeCell_SDTooBig(t *testing.T) {
	// logged(10/10)=0, logged(2560/10)=8: huge spread, sigma way above 1.0.
	_, diag := mergeCell([]titer.Titer{titer.Regular(10), titer.Regular(2560)}, MoreThanToDontCare)
	assert.Equal(t, DiagSDTooBig, diag)
}

func TestSetFromLayers_Idempotent(t *testing.T) {
	base, err := New(1, 1)
	require.NoError(t, err)

	layer1, err := New(1, 1)
	require.NoError(t, err)
	require.NoError(t, layer1.SetTiter(0, 0, titer.Regular(40)))

	layer2, err := New(1, 1)
	require.NoError(t, err)
	require.NoError(t, layer2.SetTiter(0, 0, titer.Regular(80)))

	require.NoError(t, base.AddLayer(layer1))
	require.NoError(t, base.AddLayer(layer2))

	_, diags, err := base.SetFromLayers()
	require.NoError(t, err)
	assert.Equal(t, DiagRegularOnly, diags[0][0])

	merged, err := base.Titer(0, 0)
	require.NoError(t, err)
	v, _ := merged.Value()
	assert.Equal(t, 57, v)

	// re-running SetFromLayers on the same stacked layers is deterministic.
	_, diags2, err := base.SetFromLayers()
	require.NoError(t, err)
	assert.Equal(t, diags, diags2)
}

func TestSetTiter_RefusedWhenLayered(t *testing.T) {
	base, err := New(1, 1)
	require.NoError(t, err)
	layer, err := New(1, 1)
	require.NoError(t, err)
	require.NoError(t, base.AddLayer(layer))

	err = base.SetTiter(0, 0, titer.Regular(40))
	assert.ErrorIs(t, err, ErrTitersCannotBeModified)
}
