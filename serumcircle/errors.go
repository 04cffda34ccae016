package serumcircle

import "errors"

// ErrSerumCoverage wraps every validation failure surfaced by Theoretical,
// Empirical and Coverage (spec.md §7 SerumCoverageError): "homologous
// titer non-regular or too low". The specific FailureMode distinguishes
// the cause for callers that need it; this sentinel is what errors.Is
// matches against.
var ErrSerumCoverage = errors.New("serumcircle: homologous titer non-regular or too low")
