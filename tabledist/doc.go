// Package tabledist converts a titer.Titer matrix plus per-serum column
// bases into flat lists of target Euclidean distances ("table
// distances") between antigen and serum points, split into regular and
// less-than categories (spec.md §3 TableDistances).
//
// Point indices follow the glossary convention: antigen a is point a;
// serum s is point numAntigens+s.
package tabledist
