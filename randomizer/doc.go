// Package randomizer implements the uniform box sampler used to pick
// initial antigenic-map layouts (spec.md §4.5): LayoutRandomizerPlain
// draws coordinates uniformly in [-diameter/2, +diameter/2] per
// dimension from a seeded PRNG, reproducibly for a given seed.
//
// The diameter-selection factories named in spec.md §4.5
// (table_max_distance, current_layout_area, from_sample_optimization)
// live in the optimize package rather than here: the third factory
// requires running a rough optimization, which would make this package
// depend on optimize and optimize depend on this package. Keeping the
// sampler itself free of that dependency matches the teacher's
// builder package, whose WithSeed/cfg.rng contract is the model this
// package follows: same seed and diameter, same sequence of draws.
package randomizer
