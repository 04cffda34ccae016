// Package stress implements the antigenic-map objective function and its
// gradient (spec.md §4.4): the sum of squared residuals between table
// distances and realized map distances, with a sigmoid soft penalty for
// thresholded ("<") pairs that lets them be satisfied once the map
// distance exceeds the threshold by enough margin.
//
// A Stress value is built once from a tabledist.TableDistances and a
// point/dimension shape, then evaluated many times against different
// flat coordinate vectors by the optimize package's numerical kernels.
package stress
