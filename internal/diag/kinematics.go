package diag

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/ludwigVonKoopa/anim"
)

// KinematicsInspector flags non-finite values, degenerate extents and
// speed outliers in a computed trajectory
type KinematicsInspector struct {
	SpikeSigma float64 // Speed spike threshold in standard deviations
}

// NewKinematicsInspector creates a kinematics inspector with default settings
func NewKinematicsInspector() *KinematicsInspector {
	return &KinematicsInspector{
		SpikeSigma: 3.0, // Classic three-sigma rule
	}
}

// Inspect runs all kinematic checks over the trajectory
func (k *KinematicsInspector) Inspect(traj *anim.Trajectory) ([]Finding, error) {
	if traj == nil {
		return nil, fmt.Errorf("no trajectory to inspect")
	}

	findings := []Finding{}

	// Step 1: Empty output
	if traj.Len() == 0 {
		findings = append(findings, Finding{
			Index:   -1,
			Kind:    "empty",
			Message: "trajectory has no samples",
		})
		return findings, nil
	}

	// Step 2: Non-finite values and inverted extents
	for i := range traj.Extents {
		e := traj.Extents[i]
		switch {
		case !finite(e.Left) || !finite(e.Right) || !finite(e.Bottom) || !finite(e.Top):
			findings = append(findings, Finding{
				Index:   i,
				Kind:    "non_finite",
				Message: fmt.Sprintf("extent at %s is not finite", traj.Markers[i]),
			})
		case e.Left >= e.Right || e.Bottom >= e.Top:
			findings = append(findings, Finding{
				Index:   i,
				Kind:    "inverted_extent",
				Message: fmt.Sprintf("extent at %s is inverted: [%g, %g] x [%g, %g]", traj.Markers[i], e.Left, e.Right, e.Bottom, e.Top),
			})
		}
		if !finite(traj.Speeds[i]) {
			findings = append(findings, Finding{
				Index:   i,
				Kind:    "non_finite",
				Message: fmt.Sprintf("speed at %s is not finite", traj.Markers[i]),
			})
		}
	}

	// Step 3: Speed spikes above mean + k sigma
	speeds := make([]float64, 0, len(traj.Speeds))
	for _, s := range traj.Speeds {
		if finite(s) {
			speeds = append(speeds, s)
		}
	}
	if len(speeds) >= 3 {
		mean, std := stat.MeanStdDev(speeds, nil)
		if std > 0 {
			limit := mean + k.SpikeSigma*std
			for i, s := range traj.Speeds {
				if finite(s) && s > limit {
					findings = append(findings, Finding{
						Index:   i,
						Kind:    "speed_spike",
						Message: fmt.Sprintf("speed %.3f at %s exceeds mean %.3f + %.1f sigma", s, traj.Markers[i], mean, k.SpikeSigma),
					})
				}
			}
		}
	}

	return findings, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
