package batch

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ludwigVonKoopa/anim"
	"github.com/ludwigVonKoopa/anim/internal/chart"
	"github.com/ludwigVonKoopa/anim/internal/config"
	"github.com/ludwigVonKoopa/anim/internal/diag"
	"github.com/ludwigVonKoopa/anim/internal/script"
	"github.com/ludwigVonKoopa/anim/internal/system"
)

// Result describes the artifacts one script produced
type Result struct {
	ScriptPath string
	CSVPath    string
	ChartPath  string
	Samples    int
	Findings   []diag.Finding
}

// Runner executes scripts concurrently and writes their artifacts
type Runner struct {
	Config *config.Config
	Log    zerolog.Logger
}

// NewRunner creates a runner over the given configuration
func NewRunner(cfg *config.Config, log zerolog.Logger) *Runner {
	return &Runner{Config: cfg, Log: log}
}

type job struct {
	path  string
	built *script.BuiltPath
}

// Run builds every script, preflights memory against the largest one,
// then computes and exports them concurrently. The first failing job
// cancels the rest.
func (r *Runner) Run(ctx context.Context, scripts []string) ([]Result, error) {
	if len(scripts) == 0 {
		return nil, fmt.Errorf("no scripts to run")
	}
	if err := os.MkdirAll(r.Config.OutDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	// Build everything up front so a bad script fails before any
	// artifact is written.
	jobs := make([]*job, len(scripts))
	maxSamples := 0
	for i, path := range scripts {
		s, err := script.ReadScript(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read script %s: %w", path, err)
		}
		built, err := script.Build(s, r.Log)
		if err != nil {
			return nil, fmt.Errorf("failed to build script %s: %w", path, err)
		}
		jobs[i] = &job{path: path, built: built}
		if n := built.SampleCount(); n > maxSamples {
			maxSamples = n
		}
	}

	if err := system.CheckMemoryBudget(maxSamples, r.Log); err != nil {
		return nil, err
	}

	workers := r.Config.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(jobs) {
		workers = len(jobs)
	}

	results := make([]Result, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var done atomic.Int32
	for i, jb := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := r.runOne(jb)
			if err != nil {
				return fmt.Errorf("%s: %w", jb.path, err)
			}
			results[i] = res

			n := done.Add(1)
			if !r.Config.Quiet {
				fmt.Printf("[>] Ready: %d/%d\n", n, len(jobs))
			}
			r.Log.Debug().Str("script", jb.path).Int("samples", res.Samples).Msg("script done")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *Runner) runOne(jb *job) (Result, error) {
	res := Result{ScriptPath: jb.path}

	traj, err := jb.built.ComputePath()
	if err != nil {
		return res, err
	}
	res.Samples = traj.Len()

	stem := strings.TrimSuffix(filepath.Base(jb.path), filepath.Ext(jb.path))

	if r.Config.WriteCSV {
		res.CSVPath = script.ArtifactPath(r.Config.OutDir, stem, "csv")
		if err := writeCSV(traj, res.CSVPath); err != nil {
			return res, err
		}
	}

	if r.Config.WriteChart {
		table, err := jb.built.BuildTable(r.Config.Derivative)
		if err != nil {
			return res, err
		}
		title := r.Config.ChartTitle
		if title == "" {
			title = stem
		}
		res.ChartPath = script.ArtifactPath(r.Config.OutDir, stem, "png")
		if err := chart.WritePNG(table, chart.Options{Title: title}, res.ChartPath); err != nil {
			return res, err
		}
	}

	if r.Config.RunChecks {
		insp, err := diag.NewInspector(r.Config.Inspector)
		if err != nil {
			return res, err
		}
		findings, err := insp.Inspect(traj)
		if err != nil {
			return res, err
		}
		res.Findings = findings
		for _, f := range findings {
			r.Log.Warn().
				Str("script", jb.path).
				Int("index", f.Index).
				Str("kind", f.Kind).
				Msg(f.Message)
		}
	}

	return res, nil
}

// writeCSV exports one row per sample: marker, extent bounds, speed
func writeCSV(traj *anim.Trajectory, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"marker", "left", "right", "bottom", "top", "speed"}); err != nil {
		return err
	}
	for i := range traj.Markers {
		e := traj.Extents[i]
		rec := []string{
			traj.Markers[i].String(),
			formatFloat(e.Left),
			formatFloat(e.Right),
			formatFloat(e.Bottom),
			formatFloat(e.Top),
			formatFloat(traj.Speeds[i]),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
