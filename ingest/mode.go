package ingest

import (
	"path/filepath"
	"strings"
)

// runDirMarker marks a per-run directory nested under the mode directory
const runDirMarker = "run_"

var fileNameNoise = []string{"_monitor.csv", "monitor_", ".csv"}

// ModeFromPath derives the mode label of a monitor file.
//
//	<mode>/run_<n>/<file>  -> mode
//	<mode>/<file>          -> mode
//	<mode>_monitor.csv     -> mode
func ModeFromPath(path string) string {
	var parts []string
	for _, p := range strings.Split(filepath.ToSlash(filepath.Clean(path)), "/") {
		if p != "" && p != "." {
			parts = append(parts, p)
		}
	}

	n := len(parts)
	switch {
	case n >= 3 && strings.Contains(parts[n-2], runDirMarker):
		return parts[n-3]
	case n >= 2:
		return parts[n-2]
	}

	name := filepath.Base(path)
	for _, noise := range fileNameNoise {
		name = strings.ReplaceAll(name, noise, "")
	}
	return name
}
