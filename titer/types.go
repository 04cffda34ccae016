package titer

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind discriminates the five valid titer variants plus the sentinel
// invalid state produced by a failed Parse.
type Kind uint8

const (
	// KindInvalid marks a Titer that failed to parse; its zero value.
	KindInvalid Kind = iota
	// KindDontCare is "*": no measurement, excluded from table distances.
	KindDontCare
	// KindRegular is a plain numeric reading, e.g. "40".
	KindRegular
	// KindLessThan is a threshold reading, e.g. "<10".
	KindLessThan
	// KindMoreThan is a threshold reading, e.g. ">1280".
	KindMoreThan
	// KindDodgy is a flagged-uncertain reading, e.g. "~40".
	KindDodgy
)

// String renders the Kind's name, used only for diagnostics.
func (k Kind) String() string {
	switch k {
	case KindDontCare:
		return "dont_care"
	case KindRegular:
		return "regular"
	case KindLessThan:
		return "less_than"
	case KindMoreThan:
		return "more_than"
	case KindDodgy:
		return "dodgy"
	default:
		return "invalid"
	}
}

// Titer is an immutable qualitative HI/neutralization measurement.
// The zero value is KindInvalid and carries no meaning beyond "unset."
type Titer struct {
	kind  Kind
	value int // unsigned reading; meaningless for KindDontCare/KindInvalid
}

// Invalid is the canonical invalid Titer, returned by Parse on malformed input.
var Invalid = Titer{kind: KindInvalid}

// DontCare is the canonical "*" Titer.
var DontCare = Titer{kind: KindDontCare}

// Regular constructs a KindRegular Titer with the given non-negative value.
func Regular(v int) Titer { return Titer{kind: KindRegular, value: v} }

// LessThan constructs a KindLessThan Titer, e.g. LessThan(10) == "<10".
func LessThan(v int) Titer { return Titer{kind: KindLessThan, value: v} }

// MoreThan constructs a KindMoreThan Titer, e.g. MoreThan(1280) == ">1280".
func MoreThan(v int) Titer { return Titer{kind: KindMoreThan, value: v} }

// Dodgy constructs a KindDodgy Titer, e.g. Dodgy(40) == "~40".
func Dodgy(v int) Titer { return Titer{kind: KindDodgy, value: v} }

// Kind returns the Titer's variant.
func (t Titer) Kind() Kind { return t.kind }

// Value returns the raw integer reading and whether one is defined.
// DontCare and Invalid have no raw value.
func (t Titer) Value() (int, bool) {
	if t.kind == KindDontCare || t.kind == KindInvalid {
		return 0, false
	}

	return t.value, true
}

// IsRegular reports whether t is a plain numeric reading.
func (t Titer) IsRegular() bool { return t.kind == KindRegular }

// IsLessThan reports whether t is a "<" threshold reading.
func (t Titer) IsLessThan() bool { return t.kind == KindLessThan }

// IsMoreThan reports whether t is a ">" threshold reading.
func (t Titer) IsMoreThan() bool { return t.kind == KindMoreThan }

// IsDodgy reports whether t is a "~" flagged reading.
func (t Titer) IsDodgy() bool { return t.kind == KindDodgy }

// IsDontCare reports whether t is "*".
func (t Titer) IsDontCare() bool { return t.kind == KindDontCare }

// IsValid reports whether t parsed successfully (any kind but KindInvalid).
func (t Titer) IsValid() bool { return t.kind != KindInvalid }

// FromStr parses the titer textual grammar:
//
//	titer := "*" | digits | ("<" | ">" | "~") digits
//
// Anything else yields (Invalid, ErrInvalidTiter).
func FromStr(s string) (Titer, error) {
	if s == "*" {
		return DontCare, nil
	}
	if s == "" {
		return Invalid, fmt.Errorf("titer.FromStr(%q): %w", s, ErrInvalidTiter)
	}

	prefix := byte(0)
	digits := s
	switch s[0] {
	case '<', '>', '~':
		prefix = s[0]
		digits = s[1:]
	}

	if digits == "" || strings.ContainsAny(digits, "+-") {
		return Invalid, fmt.Errorf("titer.FromStr(%q): %w", s, ErrInvalidTiter)
	}
	v, err := strconv.Atoi(digits)
	if err != nil || v < 0 {
		return Invalid, fmt.Errorf("titer.FromStr(%q): %w", s, ErrInvalidTiter)
	}

	switch prefix {
	case '<':
		return LessThan(v), nil
	case '>':
		return MoreThan(v), nil
	case '~':
		return Dodgy(v), nil
	default:
		return Regular(v), nil
	}
}

// String renders t in the textual grammar accepted by FromStr.
func (t Titer) String() string {
	switch t.kind {
	case KindDontCare:
		return "*"
	case KindRegular:
		return strconv.Itoa(t.value)
	case KindLessThan:
		return "<" + strconv.Itoa(t.value)
	case KindMoreThan:
		return ">" + strconv.Itoa(t.value)
	case KindDodgy:
		return "~" + strconv.Itoa(t.value)
	default:
		return "INVALID"
	}
}

// Logged returns log2(value/10), the raw twofold-dilution log scale,
// ignoring the prefix. Returns NaN for DontCare/Invalid.
func (t Titer) Logged() float64 {
	v, ok := t.Value()
	if !ok {
		return math.NaN()
	}

	return math.Log2(float64(v) / 10.0)
}

// LoggedWithThresholded returns Logged() biased by -1 for "<" and +1 for
// ">", matching spec.md §3's table-distance convention. DontCare/Invalid
// yield NaN.
func (t Titer) LoggedWithThresholded() float64 {
	base := t.Logged()
	if math.IsNaN(base) {
		return base
	}
	switch t.kind {
	case KindLessThan:
		return base - 1
	case KindMoreThan:
		return base + 1
	default:
		return base
	}
}

// LoggedForColumnBases treats "<" as a regular reading (no bias),
// treats ">" as value+1 (one dilution step stronger), and returns -1 for
// Dodgy/DontCare (so they never raise a column basis). Invalid panics
// are avoided by also returning -1.
func (t Titer) LoggedForColumnBases() float64 {
	switch t.kind {
	case KindRegular, KindLessThan:
		return math.Log2(float64(t.value) / 10.0)
	case KindMoreThan:
		return t.Logged() + 1
	default:
		return -1
	}
}

// FromLogged constructs a KindRegular Titer whose value is
// 10 * 2^logged, rounded to the nearest integer.
func FromLogged(logged float64) Titer {
	return Regular(int(math.Round(10.0 * math.Exp2(logged))))
}

// MultiplyBy returns a new Titer with value rounded to the nearest
// integer after multiplying by k. DontCare and Invalid are unchanged;
// the threshold/dodgy prefix, if any, is preserved.
func (t Titer) MultiplyBy(k float64) Titer {
	if t.kind == KindDontCare || t.kind == KindInvalid {
		return t
	}

	return Titer{kind: t.kind, value: int(math.Round(float64(t.value) * k))}
}

// orderingValue returns the value used for numeric comparison: v for
// regular and dodgy, v-1 for "<", v+1 for ">". DontCare/Invalid have no
// ordering value; callers must special-case them first.
func (t Titer) orderingValue() int {
	switch t.kind {
	case KindLessThan:
		return t.value - 1
	case KindMoreThan:
		return t.value + 1
	default:
		return t.value
	}
}

// Equal reports value equality. DontCare equals only DontCare; Invalid
// equals only Invalid; other kinds compare by (kind, value).
func (t Titer) Equal(o Titer) bool {
	if t.kind != o.kind {
		return false
	}
	if t.kind == KindDontCare || t.kind == KindInvalid {
		return true
	}

	return t.value == o.value
}

// Less reports whether t orders strictly before o on the numeric scale
// described in spec.md §3 ("<v sorts as v-1, >v as v+1"). DontCare has
// no numeric order and always reports false against anything.
func (t Titer) Less(o Titer) bool {
	if t.kind == KindDontCare || t.kind == KindInvalid ||
		o.kind == KindDontCare || o.kind == KindInvalid {
		return false
	}

	return t.orderingValue() < o.orderingValue()
}
