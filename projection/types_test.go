package projection

import (
	"testing"

	"github.com/katalvlaran/cartograph/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_StartsEmptyAndIdentity(t *testing.T) {
	p, err := New(3, 2, 7)
	require.NoError(t, err)
	assert.Equal(t, 7.0, p.MinimumColumnBasis())
	assert.False(t, p.Layout().PointHasCoordinates(0))
	_, err = p.FinalStress()
	assert.ErrorIs(t, err, ErrStressNotComputed)
}

func TestSetFinalStress_ThenModify_Invalidates(t *testing.T) {
	p, err := New(2, 2, 0)
	require.NoError(t, err)
	p.SetFinalStress(1.5)
	v, err := p.FinalStress()
	require.NoError(t, err)
	assert.Equal(t, 1.5, v)

	err = p.Modify(func(l *layout.Layout) error { return l.Set(0, 0, 1) })
	require.NoError(t, err)
	_, err = p.FinalStress()
	assert.ErrorIs(t, err, ErrStressNotComputed)
}

func TestAvidityAdjust_DefaultsToOne(t *testing.T) {
	p, _ := New(2, 2, 0)
	assert.Equal(t, 1.0, p.AvidityAdjust(0))
	p.SetAvidityAdjust(0, 0.5)
	assert.Equal(t, 0.5, p.AvidityAdjust(0))
	assert.Equal(t, 1.0, p.AvidityAdjust(1))
}

func TestClone_IsIndependent(t *testing.T) {
	p, _ := New(2, 2, 0)
	p.SetUnmovable(0, true)
	clone := p.Clone()
	clone.SetUnmovable(1, true)
	assert.False(t, p.UnmovablePoints()[1])
	assert.True(t, clone.UnmovablePoints()[0])
}
