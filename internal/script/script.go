package script

import "time"

// Domain names accepted by a script.
const (
	DomainTime   = "time"
	DomainFrames = "frames"
)

// Script is the on-disk description of a camera path
type Script struct {
	Version string    `yaml:"version"`
	Domain  string    `yaml:"domain"`
	Start   time.Time `yaml:"start,omitempty"` // required for the time domain
	Step    string    `yaml:"step,omitempty"`  // resampling step, time domain only
	View    ViewSpec  `yaml:"view"`
	Moves   []Move    `yaml:"moves"`
}

// ViewSpec is the initial viewport of the path
type ViewSpec struct {
	Center     []float64 `yaml:"center,flow"`
	HalfWidth  float64   `yaml:"half_width"`
	HalfHeight float64   `yaml:"half_height"`
}

// Move is a single waypoint instruction. Exactly one of At, After or
// Frames names the marker; view fields left unset inherit from the
// previous waypoint.
type Move struct {
	At     *time.Time `yaml:"at,omitempty"`
	After  string     `yaml:"after,omitempty"`
	Frames int        `yaml:"frames,omitempty"`

	Center     []float64 `yaml:"center,flow,omitempty"`
	HalfWidth  *float64  `yaml:"half_width,omitempty"`
	HalfHeight *float64  `yaml:"half_height,omitempty"`
	Zoom       *float64  `yaml:"zoom,omitempty"`
}
