package titer

import "errors"

// Sentinel errors for titer parsing and arithmetic.
var (
	// ErrInvalidTiter indicates that a textual form violates the titer grammar
	// (titer := "*" | digits | ("<" | ">" | "~") digits).
	ErrInvalidTiter = errors.New("titer: invalid titer text")

	// ErrNotRegular indicates that an operation requiring a Regular titer
	// (e.g. serum-circle homologous titer) was given some other kind.
	ErrNotRegular = errors.New("titer: titer is not regular")
)
