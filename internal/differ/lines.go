// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"bytes"
	"context"
	"fmt"

	"github.com/tfctl/csvdiff/internal/log"
	"github.com/tfctl/csvdiff/internal/source"
)

// CompareLines writes every line of newLoc that does not occur verbatim in
// baseLoc to a fresh difference file. Lines only present in baseLoc are not
// reported. The difference file is created even when nothing differs.
func (d *Differ) CompareLines(ctx context.Context, baseLoc, newLoc source.Location) (*Result, error) {
	log.Debugf(">> CompareLines(%s, %s)", baseLoc, newLoc)

	baseData, err := d.read(ctx, baseLoc)
	if err != nil {
		return nil, fmt.Errorf("reference csv: %w", err)
	}
	newData, err := d.read(ctx, newLoc)
	if err != nil {
		return nil, fmt.Errorf("new csv: %w", err)
	}
	log.Infof("Name of Reference csv file: %s", baseLoc.Name)
	log.Infof("Path of Reference csv file: %s", baseLoc.Dir)
	log.Infof("Name of new csv file: %s", newLoc.Name)
	log.Infof("Path of new csv file: %s", newLoc.Dir)

	baseLines := make(map[string]struct{})
	for _, line := range SplitLines(baseData) {
		baseLines[line] = struct{}{}
	}

	f, err := d.createDiffFile()
	if err != nil {
		return nil, err
	}

	res := &Result{}
	for i, line := range SplitLines(newData) {
		if _, ok := baseLines[line]; ok {
			continue
		}
		if _, err := f.WriteString(line); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("failed to write difference file: %w", err)
		}
		res.Lines = append(res.Lines, line)
		res.LineNumbers = append(res.LineNumbers, i+1)
	}
	log.Debugf("lines written: %d", len(res.Lines))

	if err := finish(f, res); err != nil {
		return nil, err
	}
	return res, nil
}

// SplitLines splits data into lines that keep their "\n" terminator. CRLF
// and lone CR terminators are normalized to "\n" first so files exported on
// different platforms compare equal. A final line without a terminator is
// kept as is.
func SplitLines(data []byte) []string {
	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	data = bytes.ReplaceAll(data, []byte("\r"), []byte("\n"))

	var lines []string
	for len(data) > 0 {
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			lines = append(lines, string(data))
			break
		}
		lines = append(lines, string(data[:i+1]))
		data = data[i+1:]
	}
	return lines
}
