package serumcircle

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/cartograph/layout"
	"github.com/katalvlaran/cartograph/titer"
)

// buildSerumLayout places a serum at the origin and two antigens along
// the same axis at the distances used by spec.md §4.12's worked
// example: a protected antigen at 1.3 and a not-protected antigen at
// 2.5.
func buildSerumLayout(t *testing.T) *layout.Layout {
	t.Helper()
	l, err := layout.New(3, 1)
	require.NoError(t, err)
	require.NoError(t, l.Set(0, 0, 1.3)) // protected antigen
	require.NoError(t, l.Set(1, 0, 2.5)) // not-protected antigen
	require.NoError(t, l.Set(2, 0, 0.0)) // serum
	return l
}

func TestEmpiricalWorkedExample(t *testing.T) {
	l := buildSerumLayout(t)
	candidates := []Candidate{
		{AntigenPoint: 0, Titer: titer.Regular(320)},
		{AntigenPoint: 1, Titer: titer.Regular(40)},
	}

	result, err := Empirical(7, titer.Regular(1280), defaultFold, 2, candidates, l, EmpiricalOptions{})
	require.NoError(t, err)
	assert.Equal(t, FailNone, result.Failure)
	// The best-fit band (cost 0) spans [1.3, 2.4]; its average sits below
	// the enforced floor, so the floor wins.
	assert.InDelta(t, defaultMinEnforcedRadius, result.Radius, 1e-9)
}

func TestEmpiricalExcludesDisconnectedAntigens(t *testing.T) {
	l := buildSerumLayout(t)
	require.NoError(t, l.Disconnect(1))
	candidates := []Candidate{
		{AntigenPoint: 0, Titer: titer.Regular(320)},
		{AntigenPoint: 1, Titer: titer.Regular(40)},
	}

	result, err := Empirical(7, titer.Regular(1280), defaultFold, 2, candidates, l, EmpiricalOptions{})
	require.NoError(t, err)
	assert.Equal(t, FailNone, result.Failure)
	assert.Equal(t, []int{1}, result.ExcludedAntigens)
}

func TestEmpiricalFailsOnDisconnectedSerum(t *testing.T) {
	l := buildSerumLayout(t)
	require.NoError(t, l.Disconnect(2))

	result, err := Empirical(7, titer.Regular(1280), defaultFold, 2, nil, l, EmpiricalOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSerumCoverage))
	assert.Equal(t, FailSerumDisconnected, result.Failure)
}

func TestEmpiricalFailsWithNoUsableCandidates(t *testing.T) {
	l := buildSerumLayout(t)
	candidates := []Candidate{
		{AntigenPoint: 0, Titer: titer.DontCare},
	}

	result, err := Empirical(7, titer.Regular(1280), defaultFold, 2, candidates, l, EmpiricalOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSerumCoverage))
	assert.Equal(t, FailNotCalculated, result.Failure)
}

func TestEmpiricalRejectsNonRegularHomologousTiter(t *testing.T) {
	l := buildSerumLayout(t)
	_, err := Empirical(7, titer.Dodgy(1280), defaultFold, 2, nil, l, EmpiricalOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSerumCoverage))
}
