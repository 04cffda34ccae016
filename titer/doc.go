// Package titer defines the qualitative HI/neutralization measurement
// used throughout antigenic cartography: a tagged value that is either
// a regular numeric titer, a thresholded titer ("<" or ">"), a dodgy
// ("~") reading, a "don't care" cell, or an explicitly invalid parse.
//
// A Titer is immutable once constructed. Arithmetic and comparisons are
// defined on the log2 scale (Logged), matching the convention that HI
// titers are twofold dilution series.
package titer
