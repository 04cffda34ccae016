// Package columnbasis computes and stores per-serum column bases: the
// log-scale normalizer used to convert a titer into a table distance
// (spec.md §3 ColumnBases). Each basis is the strongest
// titer.LoggedForColumnBases reading against that serum, floored by a
// minimum_column_basis, and optionally overridden per serum by a
// forced value (e.g. loaded from an .ace chart's "C" key).
package columnbasis
