package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/spf13/cast"

	"github.com/214zzl995/perfcharts/monitor"
)

var errEmptyFile = errors.New("no header row")

// CSVReader parses comma separated monitor captures with a header row
type CSVReader struct {
	Schema *monitor.Schema
}

func NewCSVReader() *CSVReader {
	return &CSVReader{Schema: monitor.DefaultSchema}
}

type boundColumn struct {
	index int
	col   monitor.Column
}

// bind resolves which schema columns are present in the header
func (cr *CSVReader) bind(header []string) []boundColumn {
	var bound []boundColumn
	seen := map[string]bool{}
	for i, name := range header {
		name = strings.TrimSpace(name)
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		if seen[name] {
			continue
		}
		if col, ok := cr.Schema.Lookup(name); ok {
			bound = append(bound, boundColumn{index: i, col: col})
			seen[name] = true
		}
	}
	return bound
}

// Read parses all rows of r. Recognized columns missing from the header, short
// rows and unparseable cells leave the field at zero. A row wider than the
// header fails the whole read.
func (cr *CSVReader) Read(r io.Reader, mode, source string) ([]monitor.Sample, error) {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1
	csvr.TrimLeadingSpace = true
	csvr.ReuseRecord = true

	header, err := csvr.Read()
	if err == io.EOF {
		return nil, errEmptyFile
	}
	if err != nil {
		return nil, err
	}
	width := len(header)
	bound := cr.bind(header)

	var samples []monitor.Sample
	for {
		record, err := csvr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) > width {
			line, _ := csvr.FieldPos(0)
			return nil, fmt.Errorf("line %d: expected %d fields, saw %d", line, width, len(record))
		}

		s := monitor.Sample{Mode: mode, Source: source}
		for _, b := range bound {
			if b.index < len(record) {
				b.col.Set(&s, toFloat(record[b.index]))
			}
		}
		samples = append(samples, s)
	}
	return samples, nil
}

// toFloat coerces a cell to a number, mapping anything unparseable or
// non-finite to zero
func toFloat(cell string) float64 {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return 0
	}
	v, err := cast.ToFloat64E(cell)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
