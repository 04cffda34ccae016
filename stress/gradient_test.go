package stress

import (
	"math"
	"testing"

	"github.com/katalvlaran/cartograph/tabledist"
	"github.com/stretchr/testify/assert"
)

func sampleStress() *Stress {
	td := tabledist.TableDistances{
		Regular: []tabledist.Entry{
			{PointI: 0, PointJ: 2, Distance: 3.0},
			{PointI: 1, PointJ: 2, Distance: 4.0},
		},
		LessThan: []tabledist.Entry{
			{PointI: 0, PointJ: 1, Distance: 1.0},
		},
	}

	return New(td, 3, 2, Masks{})
}

func TestGradient_FiniteDifference(t *testing.T) {
	s := sampleStress()
	p := []float64{0, 0, 5, 1, 1.5, 2.2}
	grad := make([]float64, len(p))
	s.Gradient(p, grad)

	const h = 1e-6
	for i := range p {
		up := append([]float64{}, p...)
		down := append([]float64{}, p...)
		up[i] += h
		down[i] -= h
		fd := (s.Value(up) - s.Value(down)) / (2 * h)
		assert.InDelta(t, fd, grad[i], 1e-4, "component %d", i)
	}
}

func TestStress_TranslationInvariant(t *testing.T) {
	s := sampleStress()
	p := []float64{0, 0, 5, 1, 1.5, 2.2}
	shifted := make([]float64, len(p))
	for i, v := range p {
		dim := i % 2
		if dim == 0 {
			shifted[i] = v + 10
		} else {
			shifted[i] = v - 3
		}
	}
	assert.InDelta(t, s.Value(p), s.Value(shifted), 1e-9)
}

func TestStress_RotationInvariant(t *testing.T) {
	s := sampleStress()
	p := []float64{0, 0, 5, 1, 1.5, 2.2}
	theta := math.Pi / 7
	cos, sin := math.Cos(theta), math.Sin(theta)
	rotated := make([]float64, len(p))
	for i := 0; i < len(p); i += 2 {
		x, y := p[i], p[i+1]
		rotated[i] = x*cos - y*sin
		rotated[i+1] = x*sin + y*cos
	}
	assert.InDelta(t, s.Value(p), s.Value(rotated), 1e-9)
}

func TestStress_ReflectionInvariant(t *testing.T) {
	s := sampleStress()
	p := []float64{0, 0, 5, 1, 1.5, 2.2}
	reflected := make([]float64, len(p))
	for i := 0; i < len(p); i += 2 {
		reflected[i] = -p[i]
		reflected[i+1] = p[i+1]
	}
	assert.InDelta(t, s.Value(p), s.Value(reflected), 1e-9)
}

func TestUnmovableMask_ZerosGradient(t *testing.T) {
	td := tabledist.TableDistances{Regular: []tabledist.Entry{{PointI: 0, PointJ: 1, Distance: 2}}}
	s := New(td, 2, 2, Masks{Unmovable: map[int]bool{0: true}})
	p := []float64{0, 0, 5, 5}
	grad := make([]float64, 4)
	s.Gradient(p, grad)
	assert.Equal(t, []float64{0, 0}, grad[0:2])
	assert.NotEqual(t, 0.0, grad[2])
}

func TestUnmovableLastDim_ZerosOnlyLastDim(t *testing.T) {
	td := tabledist.TableDistances{Regular: []tabledist.Entry{{PointI: 0, PointJ: 1, Distance: 2}}}
	s := New(td, 2, 2, Masks{UnmovableLastDim: map[int]bool{0: true}})
	p := []float64{0, 1, 5, 5}
	grad := make([]float64, 4)
	s.Gradient(p, grad)
	assert.Equal(t, 0.0, grad[1]) // last dim of point 0
	assert.NotEqual(t, 0.0, grad[0])
}

func TestLessThanPenalty_VanishesWhenFarEnough(t *testing.T) {
	// a less-than pair with target D: once map distance exceeds D+1 by a
	// wide margin, the sigmoid-soft penalty should be ~0.
	td := tabledist.TableDistances{LessThan: []tabledist.Entry{{PointI: 0, PointJ: 1, Distance: 2}}}
	s := New(td, 2, 1, Masks{})
	near := s.Value([]float64{0, 2.5})  // map distance 2.5, close to D+1=3
	far := s.Value([]float64{0, 20})    // map distance 20, far beyond D+1
	assert.Greater(t, near, far)
	assert.InDelta(t, 0, far, 1e-6)
}
