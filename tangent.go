package anim

// monotoneTangents estimates a derivative at every knot of a 1-D series.
// Endpoints get zero tangents so the path approaches them flat. An interior
// knot gets the arithmetic mean of its neighbor slopes when both slopes
// share a sign, and exactly 0 otherwise: a local extremum or direction
// reversal must not be overshot by the interpolant.
//
// The abscissae must be strictly increasing and len(us) == len(vs) >= 2;
// the resampler guarantees both.
func monotoneTangents(us, vs []float64) []float64 {
	ms := make([]float64, len(us))
	for i := 1; i < len(us)-1; i++ {
		before := (vs[i] - vs[i-1]) / (us[i] - us[i-1])
		after := (vs[i+1] - vs[i]) / (us[i+1] - us[i])
		if before*after > 0 {
			ms[i] = (before + after) / 2
		}
	}
	return ms
}
