package script

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ludwigVonKoopa/anim"
)

// BuiltPath holds the path a script produced, whichever domain it runs in.
// Exactly one of Time and Frame is set.
type BuiltPath struct {
	Time  *anim.TimePath
	Frame *anim.FramePath
	Step  time.Duration // resampling step, zero for the frame domain
}

// pathOps is the mutator surface shared by both path flavors.
type pathOps interface {
	Last() anim.Waypoint
	Move(at anim.TimeSpec, x, y float64) error
	Resize(at anim.TimeSpec, halfWidth, halfHeight float64) error
	Focus(at anim.TimeSpec, x, y, halfWidth, halfHeight float64) error
	Hold(at anim.TimeSpec) error
	Zoom(at anim.TimeSpec, factor float64) error
	ZoomAt(at anim.TimeSpec, factor, x, y float64) error
}

// Build validates a script and replays its moves onto a fresh path
func Build(s *Script, log zerolog.Logger) (*BuiltPath, error) {
	view, err := viewFromSpec(s.View)
	if err != nil {
		return nil, err
	}

	built := &BuiltPath{}
	var ops pathOps

	switch s.Domain {
	case DomainTime:
		if s.Start.IsZero() {
			return nil, fmt.Errorf("%w: time script needs a start", anim.ErrValidation)
		}
		step, err := time.ParseDuration(s.Step)
		if err != nil {
			return nil, fmt.Errorf("%w: bad step %q: %v", anim.ErrValidation, s.Step, err)
		}
		if step <= 0 {
			return nil, fmt.Errorf("%w: step must be positive, got %s", anim.ErrValidation, step)
		}
		built.Time = anim.NewTimePath(s.Start, view)
		built.Time.SetLogger(log)
		built.Step = step
		ops = built.Time
	case DomainFrames:
		if s.Step != "" {
			return nil, fmt.Errorf("%w: step has no meaning for a frame script", anim.ErrValidation)
		}
		built.Frame = anim.NewFramePath(view)
		built.Frame.SetLogger(log)
		ops = built.Frame
	default:
		return nil, fmt.Errorf("%w: unknown domain %q", anim.ErrValidation, s.Domain)
	}

	for i := range s.Moves {
		if err := applyMove(ops, &s.Moves[i]); err != nil {
			return nil, fmt.Errorf("move %d: %w", i+1, err)
		}
	}

	return built, nil
}

func viewFromSpec(v ViewSpec) (anim.View, error) {
	if len(v.Center) != 2 {
		return anim.View{}, fmt.Errorf("%w: view center must be [x, y], got %d values", anim.ErrValidation, len(v.Center))
	}
	if v.HalfWidth <= 0 || v.HalfHeight <= 0 {
		return anim.View{}, fmt.Errorf("%w: view half-extents must be positive, got %g x %g", anim.ErrValidation, v.HalfWidth, v.HalfHeight)
	}
	return anim.View{X: v.Center[0], Y: v.Center[1], HalfWidth: v.HalfWidth, HalfHeight: v.HalfHeight}, nil
}

// markerSpec resolves the exactly-one-of at/after/frames rule.
func markerSpec(m *Move) (anim.TimeSpec, error) {
	set := 0
	if m.At != nil {
		set++
	}
	if m.After != "" {
		set++
	}
	if m.Frames != 0 {
		set++
	}
	if set != 1 {
		return anim.TimeSpec{}, fmt.Errorf("%w: a move names its marker exactly one way (at, after or frames)", anim.ErrValidation)
	}

	switch {
	case m.At != nil:
		return anim.At(*m.At), nil
	case m.After != "":
		d, err := time.ParseDuration(m.After)
		if err != nil {
			return anim.TimeSpec{}, fmt.Errorf("%w: bad after %q: %v", anim.ErrValidation, m.After, err)
		}
		return anim.After(d), nil
	default:
		return anim.Frames(m.Frames), nil
	}
}

func applyMove(p pathOps, m *Move) error {
	spec, err := markerSpec(m)
	if err != nil {
		return err
	}

	if m.Center != nil && len(m.Center) != 2 {
		return fmt.Errorf("%w: center must be [x, y], got %d values", anim.ErrValidation, len(m.Center))
	}
	if m.HalfWidth != nil && *m.HalfWidth <= 0 {
		return fmt.Errorf("%w: half_width must be positive, got %g", anim.ErrValidation, *m.HalfWidth)
	}
	if m.HalfHeight != nil && *m.HalfHeight <= 0 {
		return fmt.Errorf("%w: half_height must be positive, got %g", anim.ErrValidation, *m.HalfHeight)
	}
	if m.Zoom != nil && (m.HalfWidth != nil || m.HalfHeight != nil) {
		return fmt.Errorf("%w: zoom is exclusive with explicit half-extents", anim.ErrValidation)
	}

	hasCenter := m.Center != nil
	hasExtent := m.HalfWidth != nil || m.HalfHeight != nil

	switch {
	case m.Zoom != nil && hasCenter:
		return p.ZoomAt(spec, *m.Zoom, m.Center[0], m.Center[1])
	case m.Zoom != nil:
		return p.Zoom(spec, *m.Zoom)
	case hasCenter && hasExtent:
		hw, hh := inheritExtents(p, m)
		return p.Focus(spec, m.Center[0], m.Center[1], hw, hh)
	case hasExtent:
		hw, hh := inheritExtents(p, m)
		return p.Resize(spec, hw, hh)
	case hasCenter:
		return p.Move(spec, m.Center[0], m.Center[1])
	default:
		return p.Hold(spec)
	}
}

// inheritExtents fills whichever half-extent the move leaves unset from
// the previous waypoint.
func inheritExtents(p pathOps, m *Move) (hw, hh float64) {
	last := p.Last()
	hw, hh = last.HalfWidth, last.HalfHeight
	if m.HalfWidth != nil {
		hw = *m.HalfWidth
	}
	if m.HalfHeight != nil {
		hh = *m.HalfHeight
	}
	return hw, hh
}

// Domain reports which time domain the built path runs in.
func (b *BuiltPath) Domain() string {
	if b.Frame != nil {
		return DomainFrames
	}
	return DomainTime
}

// Waypoints returns the replayed waypoint ledger.
func (b *BuiltPath) Waypoints() []anim.Waypoint {
	if b.Frame != nil {
		return b.Frame.Waypoints()
	}
	return b.Time.Waypoints()
}

// SampleCount estimates how many samples ComputePath will emit.
func (b *BuiltPath) SampleCount() int {
	wps := b.Waypoints()
	first, last := wps[0].Marker, wps[len(wps)-1].Marker
	if b.Frame != nil {
		return last.Frame() - first.Frame()
	}
	span := last.Time().Sub(first.Time())
	n := int(span / b.Step)
	if span%b.Step != 0 {
		n++
	}
	return n
}

// ComputePath resamples the built path with the script's step.
func (b *BuiltPath) ComputePath() (*anim.Trajectory, error) {
	if b.Frame != nil {
		return b.Frame.ComputePath()
	}
	return b.Time.ComputePath(b.Step)
}

// BuildTable builds the knot/sample table for the built path.
func (b *BuiltPath) BuildTable(derivative bool) (*anim.SampleTable, error) {
	if b.Frame != nil {
		return b.Frame.BuildTable(derivative)
	}
	return b.Time.BuildTable(b.Step, derivative)
}
