// Package logging holds the process-wide log-verbosity bitmap
// (spec.md §5/§9): the only global mutable state this module carries.
// It is configured once at startup via SetVerbosity and treated as
// read-only afterward by every other package. The layer-merge summary
// line from chart.SetFromLayers (Debug) and the serum-circle negative
// radius and empty-coverage warnings (Warn) log through the
// package-level Logger when their bit is set.
package logging
