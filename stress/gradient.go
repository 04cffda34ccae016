package stress

// Gradient fills grad (length NumPoints()*NumDims(), pre-sized by the
// caller) with ∂S/∂p for the flat coordinate vector p (spec.md §4.4).
// Unmovable points get a zero gradient in every dimension;
// UnmovableLastDim points get a zero gradient only in dimension
// NumDims()-1.
//
// Complexity: O(len(regular)+len(lessThan)) accumulations, each
// O(numDims).
func (s *Stress) Gradient(p, grad []float64) {
	for i := range grad {
		grad[i] = 0
	}

	accumulate := func(i, j int, coeff float64, diff []float64) {
		// coeff already carries the sign convention for ∂S/∂p_i; p_j's
		// contribution is the negation (diff flips sign).
		for d := 0; d < s.numDims; d++ {
			grad[i*s.numDims+d] += coeff * diff[d]
			grad[j*s.numDims+d] -= coeff * diff[d]
		}
	}

	for _, e := range s.regular {
		d, diff := s.pointDistance(p, e.PointI, e.PointJ)
		residual := e.Distance - d
		// ∂S/∂p_i = 2(D-d)/d * (p_j-p_i) = -2(D-d)/d * diff, where diff = p_i-p_j.
		coeff := -2.0 * residual / d
		accumulate(e.PointI, e.PointJ, coeff, diff)
	}

	for _, e := range s.lessThan {
		d, diff := s.pointDistance(p, e.PointI, e.PointJ)
		r := e.Distance - d + 1
		sig := sigmoid(sigmoidSteepness * r)
		// dS/dr = 2r*sig + 10*r^2*sig*(1-sig); dr/dp_i = (p_j-p_i)/d = -diff/d.
		dSdr := 2*r*sig + sigmoidSteepness*r*r*sig*(1-sig)
		coeff := -dSdr / d
		accumulate(e.PointI, e.PointJ, coeff, diff)
	}

	s.applyMasks(grad)
}

// applyMasks zeroes gradient components for unmovable points.
func (s *Stress) applyMasks(grad []float64) {
	for point := range s.unmovable {
		for d := 0; d < s.numDims; d++ {
			grad[point*s.numDims+d] = 0
		}
	}
	lastDim := s.numDims - 1
	for point := range s.unmovableLastDim {
		grad[point*s.numDims+lastDim] = 0
	}
}
