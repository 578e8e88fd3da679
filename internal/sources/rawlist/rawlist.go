// internal/sources/rawlist/rawlist.go

// Package rawlist ingests candidate links the user already has: a TXT file
// with one link per line, a CSV whose first column holds the links, or a
// pasted block of text. No network is involved; shape validation happens
// downstream so bad entries still show up as Invalid results.
package rawlist

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"linkscout/internal/platform/errors"
)

// Load reads candidates from a TXT or CSV file, dispatching on the extension.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return CSVColumn(f)
	}
	return Lines(f), nil
}

// Lines returns the non-empty trimmed lines of r. Used both for TXT files
// and for pasted text blocks.
func Lines(r io.Reader) []string {
	var out []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// CSVColumn returns the first column of every record. A leading header row
// (first cell not starting with http) is skipped.
func CSVColumn(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // ragged rows are fine, only column 0 matters

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "reading csv")
	}

	var out []string
	for i, record := range records {
		if len(record) == 0 {
			continue
		}
		cell := strings.TrimSpace(record[0])
		if cell == "" {
			continue
		}
		if i == 0 && !strings.HasPrefix(cell, "http") {
			continue // header row
		}
		out = append(out, cell)
	}
	return out, nil
}
