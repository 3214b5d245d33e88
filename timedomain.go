package anim

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// Marker is one position on a path's time axis: an absolute instant for
// time paths, a frame index for frame paths. Markers are opaque to the
// waypoint ledger; ordering and arithmetic belong to the path's domain.
type Marker struct {
	when    time.Time
	frame   int
	isFrame bool
}

func timeMarker(t time.Time) Marker { return Marker{when: t} }
func frameMarker(n int) Marker      { return Marker{frame: n, isFrame: true} }

// Time returns the instant of a time-domain marker. Zero for frame markers.
func (m Marker) Time() time.Time { return m.when }

// Frame returns the frame index of a frame-domain marker. Zero for time markers.
func (m Marker) Frame() int { return m.frame }

// IsFrame reports whether the marker is a frame index rather than an instant.
func (m Marker) IsFrame() bool { return m.isFrame }

func (m Marker) String() string {
	if m.isFrame {
		return strconv.Itoa(m.frame)
	}
	return m.when.Format(time.RFC3339Nano)
}

// TimeSpec is a tagged time increment handed to path mutators. Build one
// with At, After or Frames; the path's domain decides which kinds it accepts.
type TimeSpec struct {
	kind   specKind
	at     time.Time
	offset time.Duration
	frames int
}

type specKind int

const (
	specAbsolute specKind = iota
	specDuration
	specFrames
)

// At places the next waypoint at an absolute instant (time paths only).
func At(t time.Time) TimeSpec { return TimeSpec{kind: specAbsolute, at: t} }

// After places the next waypoint a duration past the previous one
// (time paths only).
func After(d time.Duration) TimeSpec { return TimeSpec{kind: specDuration, offset: d} }

// Frames places the next waypoint a positive number of frames past the
// previous one (frame paths only).
func Frames(n int) TimeSpec { return TimeSpec{kind: specFrames, frames: n} }

func (s TimeSpec) String() string {
	switch s.kind {
	case specAbsolute:
		return s.at.Format(time.RFC3339Nano)
	case specDuration:
		return "+" + s.offset.String()
	default:
		return "+" + strconv.Itoa(s.frames) + "f"
	}
}

// timeDomain is the capability set a marker flavor supplies to the ledger
// and the resampler. Exactly two implementations exist, selected at path
// construction: continuous wall-clock time and discrete frame counts.
type timeDomain interface {
	// advance resolves the marker that spec places after prev.
	advance(prev Marker, spec TimeSpec) (Marker, error)
	// compare orders two markers: -1, 0 or +1.
	compare(a, b Marker) int
	// toNumeric projects a marker onto the interpolation axis, relative
	// to ref. Knots and samples must go through the same projection.
	toNumeric(m, ref Marker) float64
	// fromNumeric inverts toNumeric.
	fromNumeric(u float64, ref Marker) Marker
	// sampleMarkers generates the uniform half-open sample grid
	// [first, last) and validates the step for this domain.
	sampleMarkers(first, last Marker, dt time.Duration) ([]Marker, error)
	// speedScale converts a per-step displacement to the domain's
	// canonical rate unit.
	speedScale(dt time.Duration) float64
}

// continuousDomain: markers are time.Time, increments are absolute
// instants or durations, rates are degrees per day.
type continuousDomain struct{}

func (continuousDomain) advance(prev Marker, spec TimeSpec) (Marker, error) {
	switch spec.kind {
	case specAbsolute:
		return timeMarker(spec.at), nil
	case specDuration:
		return timeMarker(prev.when.Add(spec.offset)), nil
	default:
		return Marker{}, fmt.Errorf("%w: time path takes a timestamp or a duration, got frame offset %s", ErrTypeKind, spec)
	}
}

func (continuousDomain) compare(a, b Marker) int { return a.when.Compare(b.when) }

func (continuousDomain) toNumeric(m, ref Marker) float64 {
	return m.when.Sub(ref.when).Seconds()
}

func (continuousDomain) fromNumeric(u float64, ref Marker) Marker {
	return timeMarker(ref.when.Add(time.Duration(u * float64(time.Second))))
}

func (continuousDomain) sampleMarkers(first, last Marker, dt time.Duration) ([]Marker, error) {
	if dt <= 0 {
		return nil, fmt.Errorf("%w: resampling step must be positive, got %s", ErrValidation, dt)
	}
	span := last.when.Sub(first.when)
	n := int(span / dt)
	if span%dt != 0 {
		n++
	}
	marks := make([]Marker, n)
	for i := range marks {
		marks[i] = timeMarker(first.when.Add(time.Duration(i) * dt))
	}
	return marks, nil
}

func (continuousDomain) speedScale(dt time.Duration) float64 {
	return float64(24*time.Hour) / float64(dt)
}

// frameDomain: markers are frame indices starting at 0, increments are
// positive frame offsets, the step is fixed at one frame.
type frameDomain struct{}

func (frameDomain) advance(prev Marker, spec TimeSpec) (Marker, error) {
	if spec.kind != specFrames {
		return Marker{}, fmt.Errorf("%w: frame path takes a frame offset, got %s", ErrTypeKind, spec)
	}
	if spec.frames < 1 {
		return Marker{}, fmt.Errorf("%w: frame offset must be >= 1, got %d", ErrValidation, spec.frames)
	}
	return frameMarker(prev.frame + spec.frames), nil
}

func (frameDomain) compare(a, b Marker) int {
	switch {
	case a.frame < b.frame:
		return -1
	case a.frame > b.frame:
		return 1
	default:
		return 0
	}
}

func (frameDomain) toNumeric(m, ref Marker) float64 {
	return float64(m.frame - ref.frame)
}

func (frameDomain) fromNumeric(u float64, ref Marker) Marker {
	return frameMarker(ref.frame + int(math.Round(u)))
}

func (frameDomain) sampleMarkers(first, last Marker, _ time.Duration) ([]Marker, error) {
	marks := make([]Marker, last.frame-first.frame)
	for i := range marks {
		marks[i] = frameMarker(first.frame + i)
	}
	return marks, nil
}

func (frameDomain) speedScale(time.Duration) float64 { return 1 }
