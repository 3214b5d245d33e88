package anim

import (
	"math"
	"time"

	"gonum.org/v1/gonum/interp"
)

// SampleTable pairs a path's original waypoints with its resampled series,
// per channel. It is the structure diagnostic renderers consume; the core
// computes it and renders nothing itself.
//
// In derivative mode the series hold rates instead of values: finite
// differences of the resampled series in the domain's canonical unit
// (per day or per frame) aligned to SampleMarkers, with the knot side
// linearly interpolated from those rates (NaN where a knot lies outside
// the rate span).
type SampleTable struct {
	KnotMarkers   []Marker
	Knots         ChannelSeries
	SampleMarkers []Marker
	Samples       ChannelSeries
	Derivative    bool
}

// ChannelColumn is one channel's paired knot and sample series.
type ChannelColumn struct {
	Name    string
	Knots   []float64
	Samples []float64
}

// Channels lists the table's channels in canonical order.
func (t *SampleTable) Channels() []ChannelColumn {
	return []ChannelColumn{
		{Name: "x", Knots: t.Knots.X, Samples: t.Samples.X},
		{Name: "y", Knots: t.Knots.Y, Samples: t.Samples.Y},
		{Name: "half_width", Knots: t.Knots.HalfWidth, Samples: t.Samples.HalfWidth},
		{Name: "half_height", Knots: t.Knots.HalfHeight, Samples: t.Samples.HalfHeight},
	}
}

// BuildTable resamples the path every dt and pairs the result with the
// original waypoints.
func (p *TimePath) BuildTable(dt time.Duration, derivative bool) (*SampleTable, error) {
	return p.buildTable(dt, derivative)
}

// BuildTable resamples the path at every frame and pairs the result with
// the original waypoints.
func (p *FramePath) BuildTable(derivative bool) (*SampleTable, error) {
	return p.buildTable(0, derivative)
}

func (p *path) buildTable(dt time.Duration, derivative bool) (*SampleTable, error) {
	ss, err := p.resample(dt)
	if err != nil {
		return nil, err
	}

	knotMarkers := make([]Marker, len(p.points))
	knots := ChannelSeries{
		X:          make([]float64, len(p.points)),
		Y:          make([]float64, len(p.points)),
		HalfWidth:  make([]float64, len(p.points)),
		HalfHeight: make([]float64, len(p.points)),
	}
	for i, w := range p.points {
		knotMarkers[i] = w.Marker
		knots.X[i] = w.X
		knots.Y[i] = w.Y
		knots.HalfWidth[i] = w.HalfWidth
		knots.HalfHeight[i] = w.HalfHeight
	}

	if !derivative {
		return &SampleTable{
			KnotMarkers:   knotMarkers,
			Knots:         knots,
			SampleMarkers: ss.markers,
			Samples:       ss.series,
		}, nil
	}

	first := p.points[0].Marker
	scale := p.domain.speedScale(dt)

	// Rates live between samples, assigned to the right edge of each step.
	rateU := make([]float64, len(ss.markers)-1)
	for i := 1; i < len(ss.markers); i++ {
		rateU[i-1] = p.domain.toNumeric(ss.markers[i], first)
	}
	knotU := make([]float64, len(p.points))
	for i, w := range p.points {
		knotU[i] = p.domain.toNumeric(w.Marker, first)
	}

	rates := ChannelSeries{
		X:          diffScaled(ss.series.X, scale),
		Y:          diffScaled(ss.series.Y, scale),
		HalfWidth:  diffScaled(ss.series.HalfWidth, scale),
		HalfHeight: diffScaled(ss.series.HalfHeight, scale),
	}
	knotRates := ChannelSeries{
		X:          linearAt(rateU, rates.X, knotU),
		Y:          linearAt(rateU, rates.Y, knotU),
		HalfWidth:  linearAt(rateU, rates.HalfWidth, knotU),
		HalfHeight: linearAt(rateU, rates.HalfHeight, knotU),
	}

	return &SampleTable{
		KnotMarkers:   knotMarkers,
		Knots:         knotRates,
		SampleMarkers: ss.markers[1:],
		Samples:       rates,
		Derivative:    true,
	}, nil
}

func diffScaled(vs []float64, scale float64) []float64 {
	out := make([]float64, len(vs)-1)
	for i := 1; i < len(vs); i++ {
		out[i-1] = (vs[i] - vs[i-1]) * scale
	}
	return out
}

// linearAt samples a piecewise-linear fit of (us, vs) at targets, NaN
// outside the fitted span.
func linearAt(us, vs, targets []float64) []float64 {
	out := make([]float64, len(targets))
	if len(us) < 2 {
		for i, u := range targets {
			if len(us) == 1 && u == us[0] {
				out[i] = vs[0]
			} else {
				out[i] = math.NaN()
			}
		}
		return out
	}
	var pl interp.PiecewiseLinear
	pl.Fit(us, vs)
	for i, u := range targets {
		if u < us[0] || u > us[len(us)-1] {
			out[i] = math.NaN()
			continue
		}
		out[i] = pl.Predict(u)
	}
	return out
}
