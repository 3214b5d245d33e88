package script

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ArtifactPath creates a timestamped output filename next to dir
func ArtifactPath(dir, stem, ext string) string {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	return filepath.Join(dir, fmt.Sprintf("%s_%s.%s", stem, timestamp, ext))
}

// FindLatestScript finds the most recent script file in dir
func FindLatestScript(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read scripts directory: %w", err)
	}

	var scripts []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
			scripts = append(scripts, filepath.Join(dir, name))
		}
	}

	if len(scripts) == 0 {
		return "", fmt.Errorf("no script files found in %s", dir)
	}

	// Sort by modification time (newest first)
	sort.Slice(scripts, func(i, j int) bool {
		infoI, _ := os.Stat(scripts[i])
		infoJ, _ := os.Stat(scripts[j])
		return infoI.ModTime().After(infoJ.ModTime())
	})

	return scripts[0], nil
}
