// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/tfctl/csvdiff/internal/log"
	"github.com/tfctl/csvdiff/internal/source"
	"github.com/tfctl/csvdiff/internal/table"
)

// CompareColumns checks, column by column, every base row against the first
// row of the new table. Each base value that differs from that single new
// value yields a difference record "<column>,<new value>". It is not a
// row-aligned comparison: rows after the first in newLoc are never looked at.
// A new table without data rows compares as "" in every column.
func (d *Differ) CompareColumns(ctx context.Context, baseLoc, newLoc source.Location, columns []string) (*Result, error) {
	log.Debugf(">> CompareColumns(%s, %s, %v)", baseLoc, newLoc, columns)

	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: no columns to compare", ErrUnknownColumn)
	}

	base, err := d.readTable(ctx, baseLoc)
	if err != nil {
		return nil, fmt.Errorf("reference csv: %w", err)
	}
	next, err := d.readTable(ctx, newLoc)
	if err != nil {
		return nil, fmt.Errorf("new csv: %w", err)
	}
	log.Infof("Name of Reference csv file: %s", baseLoc.Name)
	log.Infof("Path of Reference csv file: %s", baseLoc.Dir)
	log.Infof("Name of Exported csv file: %s", newLoc.Name)
	log.Infof("Path of Exported csv file: %s", newLoc.Dir)

	for _, column := range columns {
		if !base.HasColumn(column) {
			return nil, fmt.Errorf("%w: %q not in %s", ErrUnknownColumn, column, baseLoc)
		}
		if !next.HasColumn(column) {
			return nil, fmt.Errorf("%w: %q not in %s", ErrUnknownColumn, column, newLoc)
		}
	}

	mismatches := FirstRowMismatches(base, next, columns)

	f, err := d.createDiffFile()
	if err != nil {
		return nil, err
	}
	if err := writeMismatches(f, mismatches); err != nil {
		_ = f.Close()
		return nil, err
	}

	res := &Result{Mismatches: mismatches}
	if err := finish(f, res); err != nil {
		return nil, err
	}
	return res, nil
}

// FirstRowMismatches compares each base row with the first row of next for
// every column, in column then row order. Rows of next past the first are
// never consulted, so this is not a row-aligned comparison.
func FirstRowMismatches(base, next *table.Table, columns []string) []Mismatch {
	first := table.Row{}
	if next.Len() > 0 {
		first = next.Rows[0]
	}

	var out []Mismatch
	for _, column := range columns {
		want := first[column]
		for i, row := range base.Rows {
			if row[column] == want {
				continue
			}
			log.Debugf("mismatch: column=%s, row=%d, base=%q, new=%q", column, i+1, row[column], want)
			out = append(out, Mismatch{
				Column: column,
				Row:    i + 1,
				Base:   row[column],
				New:    want,
			})
		}
	}
	return out
}

func writeMismatches(f *os.File, mismatches []Mismatch) error {
	w := csv.NewWriter(f)
	for _, m := range mismatches {
		if err := w.Write([]string{m.Column, m.New}); err != nil {
			return fmt.Errorf("failed to write difference file: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to write difference file: %w", err)
	}
	return nil
}
