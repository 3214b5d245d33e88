package anim_test

import (
	"fmt"
	"time"

	"github.com/ludwigVonKoopa/anim"
)

func ExampleFramePath() {
	p := anim.NewFramePath(anim.View{X: 0, Y: 0, HalfWidth: 30, HalfHeight: 15})
	if err := p.Move(anim.Frames(10), 100, 0); err != nil {
		panic(err)
	}

	traj, err := p.ComputePath()
	if err != nil {
		panic(err)
	}
	for i := 0; i < traj.Len(); i += 3 {
		e := traj.Extents[i]
		fmt.Printf("frame %s: x=%.2f speed=%.2f\n", traj.Markers[i], (e.Left+e.Right)/2, traj.Speeds[i])
	}
	// Output:
	// frame 0: x=0.00 speed=0.00
	// frame 3: x=21.60 speed=11.20
	// frame 6: x=64.80 speed=14.80
	// frame 9: x=97.20 speed=7.60
}

func ExampleTimePath() {
	start := time.Date(2021, time.January, 3, 0, 0, 0, 0, time.UTC)

	p := anim.NewTimePath(start, anim.GlobalView())
	if err := p.Move(anim.After(24*time.Hour), 90, 10); err != nil {
		panic(err)
	}
	if err := p.Zoom(anim.After(24*time.Hour), 2); err != nil {
		panic(err)
	}

	traj, err := p.ComputePath(12 * time.Hour)
	if err != nil {
		panic(err)
	}

	fmt.Printf("%d samples\n", traj.Len())
	for _, i := range []int{0, traj.Len() - 1} {
		e := traj.Extents[i]
		fmt.Printf("%s: lon [%.1f, %.1f] lat [%.1f, %.1f]\n", traj.Markers[i], e.Left, e.Right, e.Bottom, e.Top)
	}
	// Output:
	// 4 samples
	// 2021-01-03T00:00:00Z: lon [0.0, 360.0] lat [-90.0, 90.0]
	// 2021-01-04T12:00:00Z: lon [-45.0, 225.0] lat [-57.5, 77.5]
}
