// Package titers implements the antigen×serum titer matrix: a dense or
// sparse store of titer.Titer values, optionally layered across several
// source tables, with the layer-merge algorithm of spec.md §4.3.
//
// A Titers value starts in sparse per-antigen sorted-list storage and
// converts to dense row-major storage once at least 70% of cells are not
// DontCare. The conversion is one-way: a dense table never returns to
// sparse storage. Both representations are hidden behind the same
// public API.
package titers
