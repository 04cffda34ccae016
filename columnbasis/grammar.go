package columnbasis

import (
	"fmt"
	"strconv"
	"strings"
)

// namedMinimumColumnBases maps the handful of conventional titer
// strings from spec.md §6 to their log2(v/10) value, so that e.g.
// "1280" means "floor every column basis at log2(1280/10) = 7" rather
// than being parsed as the literal integer 1280.
var namedMinimumColumnBases = map[string]float64{
	"1280": 7,
	"640":  6,
	"320":  5,
	"160":  4,
	"80":   3,
}

// ParseMinimumColumnBasis implements spec.md §6's minimum_column_basis
// grammar: "none"/"" -> 0; one of the conventional titer strings maps
// to its log; any other bare integer is its own log value.
func ParseMinimumColumnBasis(s string) (float64, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" || strings.EqualFold(trimmed, "none") {
		return 0, nil
	}
	if v, ok := namedMinimumColumnBases[trimmed]; ok {
		return v, nil
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("columnbasis.ParseMinimumColumnBasis(%q): %w", s, ErrInvalidMinimumColumnBasis)
	}

	return v, nil
}

// FormatMinimumColumnBasis renders v in the same grammar
// ParseMinimumColumnBasis accepts: 0 as "none", one of the conventional
// titer logs as its titer string, anything else as a bare number. Used
// by the ace codec's projection "m" key on export.
func FormatMinimumColumnBasis(v float64) string {
	if v == 0 {
		return "none"
	}
	for titerStr, logged := range namedMinimumColumnBases {
		if logged == v {
			return titerStr
		}
	}

	return strconv.FormatFloat(v, 'g', -1, 64)
}
