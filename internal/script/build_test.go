package script

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludwigVonKoopa/anim"
)

func TestBuildTimeScript(t *testing.T) {
	built, err := Build(sampleScript(), zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, DomainTime, built.Domain())
	require.NotNil(t, built.Time)
	assert.Nil(t, built.Frame)
	assert.Equal(t, 6*time.Hour, built.Step)

	wps := built.Waypoints()
	require.Len(t, wps, 4)

	// Move, then zoom 2x, then hold.
	assert.Equal(t, 120.0, wps[1].X)
	assert.Equal(t, 10.0, wps[1].Y)
	assert.Equal(t, 180.0, wps[1].HalfWidth)
	assert.Equal(t, 90.0, wps[2].HalfWidth)
	assert.Equal(t, 45.0, wps[2].HalfHeight)
	assert.Equal(t, wps[2].HalfWidth, wps[3].HalfWidth)
	assert.Equal(t, wps[2].X, wps[3].X)

	// 96 hours of path at a 6 hour step.
	assert.Equal(t, 16, built.SampleCount())
	traj, err := built.ComputePath()
	require.NoError(t, err)
	assert.Equal(t, 16, traj.Len())

	table, err := built.BuildTable(false)
	require.NoError(t, err)
	assert.Len(t, table.KnotMarkers, 4)
	assert.Len(t, table.SampleMarkers, 16)
}

func TestBuildFrameScript(t *testing.T) {
	s := &Script{
		Version: "1",
		Domain:  DomainFrames,
		View:    ViewSpec{Center: []float64{0, 0}, HalfWidth: 30, HalfHeight: 15},
		Moves: []Move{
			{Frames: 10, Center: []float64{100, 0}},
			{Frames: 5, Zoom: f64(2)},
		},
	}

	built, err := Build(s, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, DomainFrames, built.Domain())
	require.NotNil(t, built.Frame)
	assert.Nil(t, built.Time)

	wps := built.Waypoints()
	require.Len(t, wps, 3)
	assert.Equal(t, 10, wps[1].Marker.Frame())
	assert.Equal(t, 15, wps[2].Marker.Frame())
	assert.Equal(t, 15.0, wps[2].HalfWidth)

	assert.Equal(t, 15, built.SampleCount())
	traj, err := built.ComputePath()
	require.NoError(t, err)
	assert.Equal(t, 15, traj.Len())
}

func TestBuildInheritsMissingExtent(t *testing.T) {
	s := sampleScript()
	s.Moves = []Move{
		{After: "12h", HalfWidth: f64(90)},
	}

	built, err := Build(s, zerolog.Nop())
	require.NoError(t, err)

	wps := built.Waypoints()
	require.Len(t, wps, 2)
	assert.Equal(t, 90.0, wps[1].HalfWidth)
	assert.Equal(t, 90.0, wps[1].HalfHeight, "unset half_height inherits")
	assert.Equal(t, 180.0, wps[1].X, "unset center inherits")
}

func TestBuildRejectsBadScripts(t *testing.T) {
	start := time.Date(2021, time.January, 3, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mutate  func(*Script)
		wantErr error
	}{
		{
			name:    "unknown domain",
			mutate:  func(s *Script) { s.Domain = "days" },
			wantErr: anim.ErrValidation,
		},
		{
			name:    "time without start",
			mutate:  func(s *Script) { s.Start = time.Time{} },
			wantErr: anim.ErrValidation,
		},
		{
			name:    "unparseable step",
			mutate:  func(s *Script) { s.Step = "six hours" },
			wantErr: anim.ErrValidation,
		},
		{
			name:    "negative step",
			mutate:  func(s *Script) { s.Step = "-6h" },
			wantErr: anim.ErrValidation,
		},
		{
			name: "frame script with step",
			mutate: func(s *Script) {
				s.Domain = DomainFrames
				s.Moves = []Move{{Frames: 5}}
			},
			wantErr: anim.ErrValidation,
		},
		{
			name:    "center not a pair",
			mutate:  func(s *Script) { s.View.Center = []float64{180} },
			wantErr: anim.ErrValidation,
		},
		{
			name:    "zero view extent",
			mutate:  func(s *Script) { s.View.HalfWidth = 0 },
			wantErr: anim.ErrValidation,
		},
		{
			name: "move with two markers",
			mutate: func(s *Script) {
				s.Moves = []Move{{At: &start, After: "6h"}}
			},
			wantErr: anim.ErrValidation,
		},
		{
			name: "move with no marker",
			mutate: func(s *Script) {
				s.Moves = []Move{{Center: []float64{10, 10}}}
			},
			wantErr: anim.ErrValidation,
		},
		{
			name: "move center triple",
			mutate: func(s *Script) {
				s.Moves = []Move{{After: "6h", Center: []float64{1, 2, 3}}}
			},
			wantErr: anim.ErrValidation,
		},
		{
			name: "zoom with explicit half_width",
			mutate: func(s *Script) {
				s.Moves = []Move{{After: "6h", Zoom: f64(2), HalfWidth: f64(10)}}
			},
			wantErr: anim.ErrValidation,
		},
		{
			name: "zoom factor zero",
			mutate: func(s *Script) {
				s.Moves = []Move{{After: "6h", Zoom: f64(0)}}
			},
			wantErr: anim.ErrValidation,
		},
		{
			name: "negative half_height",
			mutate: func(s *Script) {
				s.Moves = []Move{{After: "6h", HalfHeight: f64(-5)}}
			},
			wantErr: anim.ErrValidation,
		},
		{
			name: "bad after duration",
			mutate: func(s *Script) {
				s.Moves = []Move{{After: "soon"}}
			},
			wantErr: anim.ErrValidation,
		},
		{
			name: "marker does not advance",
			mutate: func(s *Script) {
				s.Moves = []Move{{At: &start}}
			},
			wantErr: anim.ErrOrdering,
		},
		{
			name: "frame move in time script",
			mutate: func(s *Script) {
				s.Moves = []Move{{Frames: 10}}
			},
			wantErr: anim.ErrTypeKind,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := sampleScript()
			tt.mutate(s)

			_, err := Build(s, zerolog.Nop())
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
