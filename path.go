// Package anim turns a sparse list of camera waypoints into a dense,
// smooth per-frame trajectory: viewport rectangles plus camera speeds,
// interpolated with overshoot-free cubic Hermite splines.
package anim

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// View is a camera viewport: center coordinates plus half-extents.
type View struct {
	X, Y       float64
	HalfWidth  float64
	HalfHeight float64
}

// GlobalView is the whole-world viewport: centered on (180, 0), spanning
// 360 degrees of longitude and 180 of latitude.
func GlobalView() View {
	return View{X: 180, Y: 0, HalfWidth: 180, HalfHeight: 90}
}

// Waypoint is one recorded keyframe: where the camera is and when.
type Waypoint struct {
	Marker     Marker
	X, Y       float64
	HalfWidth  float64
	HalfHeight float64
}

func (w Waypoint) view() View {
	return View{X: w.X, Y: w.Y, HalfWidth: w.HalfWidth, HalfHeight: w.HalfHeight}
}

// path is the append-only waypoint ledger plus the time domain that gives
// its markers meaning. TimePath and FramePath share it.
type path struct {
	domain timeDomain
	points []Waypoint
	log    zerolog.Logger
}

// TimePath is a camera path over wall-clock time. Markers are absolute
// instants; mutators accept At and After increments.
type TimePath struct {
	path
}

// NewTimePath creates a time path holding one initial waypoint at t0.
func NewTimePath(t0 time.Time, view View) *TimePath {
	p := &TimePath{path: newPath(continuousDomain{})}
	p.points = append(p.points, waypointAt(timeMarker(t0), view))
	return p
}

// FramePath is a camera path over discrete frame indices. The initial
// waypoint sits at frame 0; mutators accept Frames increments.
type FramePath struct {
	path
}

// NewFramePath creates a frame path holding one initial waypoint at frame 0.
func NewFramePath(view View) *FramePath {
	p := &FramePath{path: newPath(frameDomain{})}
	p.points = append(p.points, waypointAt(frameMarker(0), view))
	return p
}

func newPath(d timeDomain) path {
	return path{domain: d, log: zerolog.Nop()}
}

func waypointAt(m Marker, v View) Waypoint {
	return Waypoint{Marker: m, X: v.X, Y: v.Y, HalfWidth: v.HalfWidth, HalfHeight: v.HalfHeight}
}

// SetLogger routes the path's debug events to log. The default is a no-op.
func (p *path) SetLogger(log zerolog.Logger) { p.log = log }

// Len returns the number of recorded waypoints.
func (p *path) Len() int { return len(p.points) }

// Last returns the most recent waypoint.
func (p *path) Last() Waypoint { return p.points[len(p.points)-1] }

// Waypoints returns a copy of the recorded waypoints in append order.
func (p *path) Waypoints() []Waypoint {
	out := make([]Waypoint, len(p.points))
	copy(out, p.points)
	return out
}

// Move appends a waypoint at a new center; half-extents are inherited.
func (p *path) Move(at TimeSpec, x, y float64) error {
	v := p.Last().view()
	v.X, v.Y = x, y
	return p.appendWaypoint(at, v)
}

// Resize appends a waypoint with new half-extents; the center is inherited.
func (p *path) Resize(at TimeSpec, halfWidth, halfHeight float64) error {
	v := p.Last().view()
	v.HalfWidth, v.HalfHeight = halfWidth, halfHeight
	return p.appendWaypoint(at, v)
}

// Focus appends a fully specified waypoint.
func (p *path) Focus(at TimeSpec, x, y, halfWidth, halfHeight float64) error {
	return p.appendWaypoint(at, View{X: x, Y: y, HalfWidth: halfWidth, HalfHeight: halfHeight})
}

// Hold appends a waypoint that advances time without moving the camera.
func (p *path) Hold(at TimeSpec) error {
	return p.appendWaypoint(at, p.Last().view())
}

// Zoom appends a waypoint whose half-extents are the previous ones divided
// by factor; the center is inherited. Factor must be positive.
func (p *path) Zoom(at TimeSpec, factor float64) error {
	last := p.Last()
	return p.ZoomAt(at, factor, last.X, last.Y)
}

// ZoomAt is Zoom with a new center.
func (p *path) ZoomAt(at TimeSpec, factor, x, y float64) error {
	if factor <= 0 {
		return fmt.Errorf("%w: zoom factor must be positive, got %g", ErrValidation, factor)
	}
	last := p.Last()
	v := View{X: x, Y: y, HalfWidth: last.HalfWidth / factor, HalfHeight: last.HalfHeight / factor}
	return p.appendWaypoint(at, v)
}

// appendWaypoint resolves the marker and appends. On any error the ledger
// is left untouched.
func (p *path) appendWaypoint(at TimeSpec, v View) error {
	last := p.Last()
	m, err := p.domain.advance(last.Marker, at)
	if err != nil {
		return err
	}
	if p.domain.compare(m, last.Marker) <= 0 {
		return fmt.Errorf("%w: %s is not after %s", ErrOrdering, m, last.Marker)
	}
	p.points = append(p.points, waypointAt(m, v))
	p.log.Debug().
		Stringer("marker", m).
		Float64("x", v.X).
		Float64("y", v.Y).
		Float64("half_width", v.HalfWidth).
		Float64("half_height", v.HalfHeight).
		Msg("waypoint appended")
	return nil
}
