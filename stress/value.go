package stress

// Value computes S(p), the total stress (spec.md §4.4), given a flat
// coordinate vector of length NumPoints()*NumDims().
//
// Complexity: O(len(regular)+len(lessThan)) distance evaluations, each
// O(numDims).
func (s *Stress) Value(p []float64) float64 {
	total := 0.0
	for _, e := range s.regular {
		d, _ := s.pointDistance(p, e.PointI, e.PointJ)
		residual := e.Distance - d
		total += residual * residual
	}
	for _, e := range s.lessThan {
		d, _ := s.pointDistance(p, e.PointI, e.PointJ)
		residual := e.Distance - d + 1
		total += residual * residual * sigmoid(sigmoidSteepness*residual)
	}

	return total
}

// PointContribution sums only the terms whose PointI or PointJ equals
// point — the "per-point contribution" used by gridtest's displacement
// probe (spec.md §4.11).
func (s *Stress) PointContribution(p []float64, point int) float64 {
	total := 0.0
	for _, e := range s.regular {
		if e.PointI != point && e.PointJ != point {
			continue
		}
		d, _ := s.pointDistance(p, e.PointI, e.PointJ)
		residual := e.Distance - d
		total += residual * residual
	}
	for _, e := range s.lessThan {
		if e.PointI != point && e.PointJ != point {
			continue
		}
		d, _ := s.pointDistance(p, e.PointI, e.PointJ)
		residual := e.Distance - d + 1
		total += residual * residual * sigmoid(sigmoidSteepness*residual)
	}

	return total
}
