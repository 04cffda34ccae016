package serumcircle

import (
	"github.com/katalvlaran/cartograph/logging"
	"github.com/katalvlaran/cartograph/titer"
)

// CoverageCandidate is one antigen considered by Coverage: its index
// and its (non-don't-care) titer against the serum.
type CoverageCandidate struct {
	Antigen int
	Titer   titer.Titer
}

// CoverageResult splits candidate antigens into those within and
// outside the homologous titer's fold-reduced threshold (spec.md §4.13).
type CoverageResult struct {
	Within  []int
	Outside []int
}

// Coverage implements spec.md §4.13's serum coverage: threshold =
// logged(homologousTiter) - fold; an antigen is Within if its
// logged_for_column_bases is >= threshold, Outside if it is in
// [0, threshold). Don't-care titers are excluded. An empty Within
// result is logged as a warning, not an error.
func Coverage(homologousTiter titer.Titer, fold float64, candidates []CoverageCandidate) (CoverageResult, error) {
	if _, err := validateHomologous(homologousTiter); err != nil {
		return CoverageResult{}, err
	}

	threshold := homologousTiter.Logged() - fold

	var out CoverageResult
	for _, c := range candidates {
		if c.Titer.IsDontCare() || !c.Titer.IsValid() {
			continue
		}
		v := c.Titer.LoggedForColumnBases()
		switch {
		case v >= threshold:
			out.Within = append(out.Within, c.Antigen)
		case v >= 0 && v < threshold:
			out.Outside = append(out.Outside, c.Antigen)
		}
	}

	if len(out.Within) == 0 && logging.Enabled(logging.LevelSerumCircle) {
		logging.Logger.Warn().
			Float64("threshold", threshold).
			Msg("serumcircle: coverage found no antigens within the protected radius")
	}

	return out, nil
}
