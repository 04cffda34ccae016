package ace

import "errors"

// Sentinel errors for the ace package, realizing spec.md §7's
// InvalidData error kind for malformed .ace documents.
var (
	// ErrInvalidDocument indicates a document whose top-level
	// "  version" key is missing or empty.
	ErrInvalidDocument = errors.New("ace: invalid document")

	// ErrUnsupportedVersion indicates a "  version" value other than
	// the one this package reads.
	ErrUnsupportedVersion = errors.New("ace: unsupported version")

	// ErrMalformedTiters indicates a "t" block with neither "d" nor "l"
	// present, a row or cell count that does not match the antigens or
	// sera, or a non-integer serum key; decode also returns it for a
	// non-integer point key in a projection's "f" object. A titer string
	// that fails titer.FromStr yields titer.ErrInvalidTiter instead.
	ErrMalformedTiters = errors.New("ace: malformed titers block")
)
