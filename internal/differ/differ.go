// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/tfctl/csvdiff/internal/log"
	"github.com/tfctl/csvdiff/internal/source"
	"github.com/tfctl/csvdiff/internal/table"
)

// ErrUnknownColumn is returned when a requested column is missing from either
// table's header.
var ErrUnknownColumn = errors.New("unknown column")

// maxNameAttempts bounds the search for a free difference file name.
const maxNameAttempts = 1000

// Differ compares CSV files and writes difference files into OutDir.
type Differ struct {
	// Source resolves Locations into bytes. A zero Reader handles local files.
	Source *source.Reader
	// OutDir receives the difference files. It is created when missing.
	OutDir string
	// Out receives the console messages of CheckData. Defaults to os.Stdout.
	Out io.Writer
	// Now is the clock used for difference file names. Defaults to time.Now.
	Now func() time.Time
}

// Mismatch is one column-mode difference: row Row of the base table held
// Base while the new table's first row held New.
type Mismatch struct {
	Column string `json:"column" yaml:"column"`
	Row    int    `json:"row" yaml:"row"`
	Base   string `json:"base" yaml:"base"`
	New    string `json:"new" yaml:"new"`
}

// Result is the outcome of a comparison.
type Result struct {
	// Identical is true when the difference file holds no records.
	Identical bool `json:"identical" yaml:"identical"`
	// DiffFile is the path of the difference file written.
	DiffFile string `json:"diff_file" yaml:"diff_file"`
	// Lines are the new-file lines absent from the base file (line mode).
	Lines []string `json:"lines,omitempty" yaml:"lines,omitempty"`
	// LineNumbers are the 1-based positions of Lines in the new file.
	LineNumbers []int `json:"line_numbers,omitempty" yaml:"line_numbers,omitempty"`
	// Mismatches are the column-mode differences in write order.
	Mismatches []Mismatch `json:"mismatches,omitempty" yaml:"mismatches,omitempty"`
}

// ByColumn groups the mismatches by column name.
func (r *Result) ByColumn() map[string][]Mismatch {
	out := make(map[string][]Mismatch)
	for _, m := range r.Mismatches {
		out[m.Column] = append(out[m.Column], m)
	}
	return out
}

// New returns a Differ writing into outDir.
func New(reader *source.Reader, outDir string) *Differ {
	return &Differ{Source: reader, OutDir: outDir}
}

func (d *Differ) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

func (d *Differ) out() io.Writer {
	if d.Out != nil {
		return d.Out
	}
	return os.Stdout
}

func (d *Differ) read(ctx context.Context, loc source.Location) ([]byte, error) {
	r := d.Source
	if r == nil {
		r = &source.Reader{}
	}
	return r.ReadAll(ctx, loc)
}

func (d *Differ) readTable(ctx context.Context, loc source.Location) (*table.Table, error) {
	data, err := d.read(ctx, loc)
	if err != nil {
		return nil, err
	}
	t, err := table.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", loc, err)
	}
	return t, nil
}

// DiffFileName formats the difference file name for t:
// <YYYY-MM-DD><epoch-seconds>.csv with microsecond epoch precision.
func DiffFileName(t time.Time) string {
	return fmt.Sprintf("%s%d.%06d%s",
		t.Format("2006-01-02"), t.Unix(), t.Nanosecond()/int(time.Microsecond), source.Ext)
}

// createDiffFile exclusively creates a fresh difference file in OutDir. On a
// name collision the timestamp advances one microsecond and retries.
func (d *Differ) createDiffFile() (*os.File, error) {
	dir := d.OutDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:mnd
		return nil, fmt.Errorf("failed to create difference directory: %w", err)
	}

	ts := d.now()
	for range maxNameAttempts {
		path := filepath.Join(dir, DiffFileName(ts))
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644) //nolint:mnd
		if err == nil {
			log.Infof("Name of difference csv file: %s", filepath.Base(path))
			log.Infof("Path of difference csv file: %s", dir)
			return f, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("failed to create difference file: %w", err)
		}
		ts = ts.Add(time.Microsecond)
	}
	return nil, fmt.Errorf("failed to create difference file: no free name after %d attempts", maxNameAttempts)
}

// countRecords re-reads a difference file and counts its CSV records.
func countRecords(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to reread difference file: %w", err)
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	n := 0
	for {
		_, err := r.Read()
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if err != nil {
			return 0, fmt.Errorf("failed to parse difference file: %w", err)
		}
		n++
	}
}

// finish closes f, re-reads it and fills in the identical verdict.
func finish(f *os.File, res *Result) error {
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close difference file: %w", err)
	}

	n, err := countRecords(f.Name())
	if err != nil {
		return err
	}
	res.DiffFile = f.Name()
	res.Identical = n == 0

	if res.Identical {
		log.Infof("CSV Comparison: Both CSV Files are same. Difference csv file is empty.")
	} else {
		log.Infof("CSV Comparison: Both CSV Files are different. %d difference record(s) in %s", n, f.Name())
	}
	return nil
}
