// Package chart owns the top-level antigenic cartography aggregate
// (spec.md §3 Chart): info, antigens, sera, a titer table, optional
// forced column bases, a sorted set of projections, and an opaque plot
// spec. It enforces the chart-level invariants (point-count agreement
// between antigens+sera and every projection's layout, layered charts
// needing at least two layers) and orchestrates
// titers.Titers.SetFromLayers across them.
package chart
