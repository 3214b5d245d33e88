package anim

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/interp"
)

// ChannelSeries holds one value sequence per interpolated channel, aligned
// with some marker sequence.
type ChannelSeries struct {
	X, Y       []float64
	HalfWidth  []float64
	HalfHeight []float64
}

// sampleSet is one resampling pass: the dense marker grid plus the four
// interpolated channels.
type sampleSet struct {
	markers []Marker
	series  ChannelSeries
}

// resample evaluates all four channels on the uniform half-open grid
// [first, last). Recomputed from the ledger on every call; nothing is
// cached.
func (p *path) resample(dt time.Duration) (*sampleSet, error) {
	if len(p.points) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 waypoints to compute a path, have %d", ErrValidation, len(p.points))
	}
	first := p.points[0].Marker
	last := p.points[len(p.points)-1].Marker
	marks, err := p.domain.sampleMarkers(first, last, dt)
	if err != nil {
		return nil, err
	}
	series, err := p.sampleAt(marks)
	if err != nil {
		return nil, err
	}
	p.log.Debug().Int("knots", len(p.points)).Int("samples", len(marks)).Msg("path resampled")
	return &sampleSet{markers: marks, series: series}, nil
}

// sampleAt evaluates the interpolated channels at arbitrary markers. Every
// marker must lie within the waypoint span; the path never extrapolates.
func (p *path) sampleAt(marks []Marker) (ChannelSeries, error) {
	if len(p.points) < 2 {
		return ChannelSeries{}, fmt.Errorf("%w: need at least 2 waypoints to compute a path, have %d", ErrValidation, len(p.points))
	}
	first := p.points[0].Marker
	last := p.points[len(p.points)-1].Marker
	for _, m := range marks {
		if p.domain.compare(m, first) < 0 || p.domain.compare(m, last) > 0 {
			return ChannelSeries{}, fmt.Errorf("%w: %s outside [%s, %s]", ErrDomain, m, first, last)
		}
	}

	// Project knots and samples with the same unit, relative to the same
	// reference, so sub-second markers cannot drift apart numerically.
	knotU := make([]float64, len(p.points))
	xs := make([]float64, len(p.points))
	ys := make([]float64, len(p.points))
	hws := make([]float64, len(p.points))
	hhs := make([]float64, len(p.points))
	for i, w := range p.points {
		knotU[i] = p.domain.toNumeric(w.Marker, first)
		xs[i] = w.X
		ys[i] = w.Y
		hws[i] = w.HalfWidth
		hhs[i] = w.HalfHeight
	}
	sampleU := make([]float64, len(marks))
	for i, m := range marks {
		sampleU[i] = p.domain.toNumeric(m, first)
	}

	return ChannelSeries{
		X:          evalHermite(knotU, xs, sampleU),
		Y:          evalHermite(knotU, ys, sampleU),
		HalfWidth:  evalHermite(knotU, hws, sampleU),
		HalfHeight: evalHermite(knotU, hhs, sampleU),
	}, nil
}

// evalHermite interpolates one channel: tangents from monotoneTangents,
// polynomial plumbing from gonum. The caller has already validated that
// us is strictly increasing with at least two knots and that every target
// lies inside [us[0], us[len-1]].
func evalHermite(us, vs, targets []float64) []float64 {
	var pc interp.PiecewiseCubic
	pc.FitWithDerivatives(us, vs, monotoneTangents(us, vs))
	out := make([]float64, len(targets))
	for i, u := range targets {
		out[i] = pc.Predict(u)
	}
	return out
}

// SampleAt evaluates the interpolated channels at the given instants.
// Instants outside the waypoint span fail with ErrDomain.
func (p *TimePath) SampleAt(times []time.Time) (ChannelSeries, error) {
	marks := make([]Marker, len(times))
	for i, t := range times {
		marks[i] = timeMarker(t)
	}
	return p.sampleAt(marks)
}

// SampleAt evaluates the interpolated channels at the given frame indices.
// Frames outside the waypoint span fail with ErrDomain.
func (p *FramePath) SampleAt(frames []int) (ChannelSeries, error) {
	marks := make([]Marker, len(frames))
	for i, f := range frames {
		marks[i] = frameMarker(f)
	}
	return p.sampleAt(marks)
}
