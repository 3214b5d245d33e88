package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ludwigVonKoopa/anim/internal/batch"
	"github.com/ludwigVonKoopa/anim/internal/config"
	"github.com/ludwigVonKoopa/anim/internal/script"
)

func main() {
	// Create the expected directories if they are missing
	dirs := []string{"input/scripts", "output"}
	for _, d := range dirs {
		os.MkdirAll(d, 0755)
	}

	scriptPtr := flag.String("script", "", "Script file, or a comma-separated list (default: latest script in input/scripts/)")
	scriptDirPtr := flag.String("script-dir", "input/scripts", "Directory scanned for the latest script when -script is empty")
	outDirPtr := flag.String("out-dir", "output", "Directory for CSV and chart artifacts")
	csvPtr := flag.Bool("csv", true, "Export each trajectory as CSV")
	chartPtr := flag.Bool("chart", false, "Render a PNG chart of each sample table")
	chartTitlePtr := flag.String("chart-title", "", "Chart title (default: script name)")
	derivativePtr := flag.Bool("derivative", false, "Chart per-channel rates instead of values")
	workersPtr := flag.Int("workers", runtime.NumCPU(), "Concurrent scripts")
	checkPtr := flag.Bool("check", false, "Run kinematic checks on each trajectory")
	inspectorPtr := flag.String("inspector", "", "Inspector variant for -check (default: kinematics)")
	quietPtr := flag.Bool("quiet", false, "Suppress progress output")
	verbosePtr := flag.Bool("verbose", false, "Debug logging")

	flag.Parse()

	level := zerolog.InfoLevel
	if *verbosePtr {
		level = zerolog.DebugLevel
	}
	if *quietPtr {
		level = zerolog.ErrorLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()

	var scripts []string
	if *scriptPtr == "" {
		latest, err := script.FindLatestScript(*scriptDirPtr)
		if err != nil {
			log.Fatalf("[-] Error: %v. Put a script in %s/", err, *scriptDirPtr)
		}
		scripts = []string{latest}
		if !*quietPtr {
			fmt.Printf("[*] Selected script: %s\n", latest)
		}
	} else {
		for _, p := range strings.Split(*scriptPtr, ",") {
			if p = strings.TrimSpace(p); p != "" {
				scripts = append(scripts, p)
			}
		}
	}

	cfg := &config.Config{
		ScriptDir:  *scriptDirPtr,
		OutDir:     *outDirPtr,
		WriteCSV:   *csvPtr,
		WriteChart: *chartPtr,
		Derivative: *derivativePtr,
		RunChecks:  *checkPtr,
		Workers:    *workersPtr,
		Quiet:      *quietPtr,
		Inspector:  *inspectorPtr,
		ChartTitle: *chartTitlePtr,
	}

	runner := batch.NewRunner(cfg, logger)
	results, err := runner.Run(context.Background(), scripts)
	if err != nil {
		log.Fatalf("[-] Run failed: %v", err)
	}

	findings := 0
	for _, res := range results {
		for _, f := range res.Findings {
			fmt.Printf("[!] %s: sample %d: %s\n", res.ScriptPath, f.Index, f.Message)
			findings++
		}

		if *quietPtr {
			continue
		}
		line := fmt.Sprintf("[+++] Done! %s: %d samples", res.ScriptPath, res.Samples)
		var artifacts []string
		if res.CSVPath != "" {
			artifacts = append(artifacts, res.CSVPath)
		}
		if res.ChartPath != "" {
			artifacts = append(artifacts, res.ChartPath)
		}
		if len(artifacts) > 0 {
			line += " -> " + strings.Join(artifacts, ", ")
		}
		fmt.Println(line)
	}

	if findings > 0 {
		fmt.Printf("[!] %d finding(s) flagged\n", findings)
		os.Exit(2)
	}
}
