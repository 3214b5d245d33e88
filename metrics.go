package anim

import (
	"math"
	"time"
)

// Extent is the viewport rectangle at one sample:
// (left, right, bottom, top) = (x-hw, x+hw, y-hh, y+hh).
type Extent struct {
	Left, Right float64
	Bottom, Top float64
}

// Trajectory is a densely sampled camera path: one viewport extent and one
// speed value per output frame. Speeds[0] is always 0; time-domain speeds
// are degrees per day, frame-domain speeds degrees per frame.
type Trajectory struct {
	Markers []Marker
	Extents []Extent
	Speeds  []float64
}

// Len returns the number of samples.
func (t *Trajectory) Len() int { return len(t.Markers) }

// ComputePath resamples the path every dt and derives extents and speeds.
// The step must be positive. Idempotent: the ledger is never modified.
func (p *TimePath) ComputePath(dt time.Duration) (*Trajectory, error) {
	return p.compute(dt)
}

// ComputePath resamples the path at every frame and derives extents and
// speeds.
func (p *FramePath) ComputePath() (*Trajectory, error) {
	return p.compute(0)
}

func (p *path) compute(dt time.Duration) (*Trajectory, error) {
	ss, err := p.resample(dt)
	if err != nil {
		return nil, err
	}
	s := ss.series
	scale := p.domain.speedScale(dt)
	extents := make([]Extent, len(ss.markers))
	speeds := make([]float64, len(ss.markers))
	for i := range ss.markers {
		extents[i] = Extent{
			Left:   s.X[i] - s.HalfWidth[i],
			Right:  s.X[i] + s.HalfWidth[i],
			Bottom: s.Y[i] - s.HalfHeight[i],
			Top:    s.Y[i] + s.HalfHeight[i],
		}
		if i > 0 {
			speeds[i] = math.Hypot(s.X[i]-s.X[i-1], s.Y[i]-s.Y[i-1]) * scale
		}
	}
	return &Trajectory{Markers: ss.markers, Extents: extents, Speeds: speeds}, nil
}
