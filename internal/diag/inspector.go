package diag

import (
	"github.com/ludwigVonKoopa/anim"
)

// Finding represents one suspicious sample in a computed trajectory
type Finding struct {
	Index   int    // Sample index, -1 when the whole trajectory is at fault
	Kind    string // "empty", "non_finite", "inverted_extent", "speed_spike"
	Message string
}

// Inspector is the interface for trajectory quality checks
type Inspector interface {
	Inspect(traj *anim.Trajectory) ([]Finding, error)
}
