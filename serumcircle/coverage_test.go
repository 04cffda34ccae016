package serumcircle

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/cartograph/titer"
)

func TestCoverageSplitsWithinAndOutside(t *testing.T) {
	// threshold = logged(1280) - 2 = 7 - 2 = 5.
	candidates := []CoverageCandidate{
		{Antigen: 0, Titer: titer.Regular(320)},  // logged_for_column_bases = 5, within
		{Antigen: 1, Titer: titer.Regular(40)},   // logged_for_column_bases = 2, outside
		{Antigen: 2, Titer: titer.DontCare},      // excluded entirely
		{Antigen: 3, Titer: titer.MoreThan(1280)}, // logged_for_column_bases = log2(128.1) > 5, within
	}

	result, err := Coverage(titer.Regular(1280), defaultFold, candidates)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{0, 3}, result.Within)
	assert.ElementsMatch(t, []int{1}, result.Outside)
}

func TestCoverageRejectsNonRegularHomologousTiter(t *testing.T) {
	_, err := Coverage(titer.MoreThan(1280), defaultFold, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSerumCoverage))
}

func TestCoverageEmptyWithinIsNotAnError(t *testing.T) {
	candidates := []CoverageCandidate{
		{Antigen: 0, Titer: titer.Regular(10)},
	}
	result, err := Coverage(titer.Regular(1280), defaultFold, candidates)
	require.NoError(t, err)
	assert.Empty(t, result.Within)
	assert.Equal(t, []int{0}, result.Outside)
}
