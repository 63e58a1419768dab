package analysis

// ElasticityProfile down-samples an elasticity-draw population to at most
// maxPoints values for display. Stride-based rather than random so the
// profile is stable across renders and doesn't distort the underlying
// distribution's shape.
func ElasticityProfile(elasticities []float64, maxPoints int) []float64 {
	if maxPoints <= 0 || len(elasticities) == 0 {
		return nil
	}
	if len(elasticities) <= maxPoints {
		return append([]float64(nil), elasticities...)
	}
	stride := len(elasticities) / maxPoints
	out := make([]float64, 0, maxPoints)
	for i := 0; i < len(elasticities) && len(out) < maxPoints; i += stride {
		out = append(out, elasticities[i])
	}
	return out
}
