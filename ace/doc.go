// Package ace reads and writes the .ace chart interchange format
// (spec.md §6): a JSON document carrying a chart's info, antigens,
// sera, titer table (with optional source layers), forced column
// bases, projections, and plot spec.
//
// Reading tolerates the format's informal extensions to JSON: an
// emacs-indent hint as an object's first key, "#" line comments, and
// trailing commas in arrays/objects. Writing always emits canonical
// strict JSON.
package ace
