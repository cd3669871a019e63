package ingest

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/214zzl995/perfcharts/log"
	"github.com/214zzl995/perfcharts/monitor"
)

var (
	// ErrNoFiles is returned when the pattern matches nothing
	ErrNoFiles = errors.New("no monitor files match pattern")
	// ErrNoData is returned when every matched file failed or was empty
	ErrNoData = errors.New("no monitor samples loaded")
)

// SampleReader implements parsing a data source and yielding samples tagged with mode
type SampleReader interface {
	Read(r io.Reader, mode, source string) ([]monitor.Sample, error)
}

// Discover expands a glob pattern (with ** support) into a sorted list of files
func Discover(pattern string) ([]string, error) {
	files, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	sort.Strings(files)
	return files, nil
}

// ReadFile reads a single monitor file with a sample reader. The mode is derived from the file path.
func ReadFile(fileName string, r SampleReader) ([]monitor.Sample, error) {
	fp, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	return r.Read(fp, ModeFromPath(fileName), fileName)
}

// Load discovers every file matching pattern and concatenates their samples in
// file order. Files that cannot be read are skipped with a warning.
func Load(pattern string) (*monitor.Dataset, error) {
	return LoadWith(pattern, NewCSVReader())
}

// LoadWith is Load with a custom sample reader
func LoadWith(pattern string, r SampleReader) (*monitor.Dataset, error) {
	files, err := Discover(pattern)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		log.Warn("No monitor files match %s", pattern)
		return nil, ErrNoFiles
	}

	ds := monitor.NewDataset()
	for _, file := range files {
		samples, err := ReadFile(file, r)
		if err != nil {
			log.Warn("Skipping %s: %s", file, err)
			continue
		}
		log.Info("Loaded %s (%d records)", file, len(samples))
		ds.Append(samples...)
	}

	if ds.Len() == 0 {
		return nil, ErrNoData
	}
	return ds, nil
}
