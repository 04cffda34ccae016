package randomizer

import (
	"testing"

	"github.com/katalvlaran/cartograph/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlain_InvalidDiameter(t *testing.T) {
	_, err := NewPlain(0, 1)
	assert.ErrorIs(t, err, ErrInvalidDiameter)
	_, err = NewPlain(-1, 1)
	assert.ErrorIs(t, err, ErrInvalidDiameter)
}

func TestSample_WithinBox(t *testing.T) {
	r, err := NewPlain(10, 42)
	require.NoError(t, err)
	for i := 0; i < 1000; i++ {
		s := r.Sample(3)
		for _, v := range s {
			assert.GreaterOrEqual(t, v, -5.0)
			assert.LessOrEqual(t, v, 5.0)
		}
	}
}

func TestSample_ReproducibleForSameSeed(t *testing.T) {
	r1, err := NewPlain(10, 7)
	require.NoError(t, err)
	r2, err := NewPlain(10, 7)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		assert.Equal(t, r1.Sample(2), r2.Sample(2))
	}
}

func TestRandomizePoints_OnlyTouchesListed(t *testing.T) {
	l, err := layout.New(2, 2)
	require.NoError(t, err)
	require.NoError(t, l.Set(1, 0, 9))
	require.NoError(t, l.Set(1, 1, 9))

	r, err := NewPlain(4, 1)
	require.NoError(t, err)
	require.NoError(t, r.RandomizePoints(l, []int{0}))

	assert.True(t, l.PointHasCoordinates(0))
	v, _ := l.At(1, 0)
	assert.Equal(t, 9.0, v) // untouched
}

func TestSampleBorderConstrained_StaysInHalfPlane(t *testing.T) {
	r, err := NewPlain(10, 3)
	require.NoError(t, err)
	line := BorderLine{A: 1, B: 0, C: 0} // x >= 0
	for i := 0; i < 500; i++ {
		p := r.SampleBorderConstrained(line)
		assert.GreaterOrEqual(t, p[0], 0.0)
	}
}
