// Package projections implements the sorted collection of Projection
// values a Chart carries (spec.md §3 "Projections set"): clone, remove,
// insert, and a stable sort by final stress ascending, with ties broken
// by insertion order (spec.md §5 "Ordering guarantees").
package projections
