package optimize

import (
	"errors"
	"math"
	"testing"

	"github.com/katalvlaran/cartograph/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithZeroedDisconnected_RestoresNaNOnSuccess(t *testing.T) {
	l, err := layout.New(3, 2)
	require.NoError(t, err)
	require.NoError(t, l.Set(0, 0, 1))
	require.NoError(t, l.Set(0, 1, 1))
	// point 1 left disconnected (NaN)

	var sawZero bool
	err = withZeroedDisconnected(l, func() error {
		v, _ := l.At(1, 0)
		sawZero = v == 0
		return nil
	})
	require.NoError(t, err)
	assert.True(t, sawZero)
	assert.False(t, l.PointHasCoordinates(1))
}

func TestWithZeroedDisconnected_RestoresNaNOnError(t *testing.T) {
	l, err := layout.New(2, 1)
	require.NoError(t, err)
	boom := errors.New("boom")
	err = withZeroedDisconnected(l, func() error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.False(t, l.PointHasCoordinates(0))
}

func TestWithZeroedDisconnected_RestoresNaNOnPanic(t *testing.T) {
	l, err := layout.New(2, 1)
	require.NoError(t, err)
	defer func() {
		r := recover()
		assert.NotNil(t, r)
		v, _ := l.At(0, 0)
		assert.True(t, math.IsNaN(v))
	}()
	_ = withZeroedDisconnected(l, func() error { panic("kaboom") })
}
