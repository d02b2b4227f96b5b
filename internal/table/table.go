// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package table

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/tfctl/csvdiff/internal/log"
)

// Sentinel is the spreadsheet hint line some exporters put ahead of the
// header.
const Sentinel = "sep=,"

// Row maps column name to value.
type Row map[string]string

// Table is a header plus its data rows in file order.
type Table struct {
	Header []string
	Rows   []Row
}

// Parse reads comma-separated data. The first record names the columns and a
// leading sep=, line is skipped. Short records yield "" for the missing
// columns; surplus fields are dropped. Quotes are read leniently: a bare quote
// in an unquoted field is kept as data.
func Parse(data []byte) (*Table, error) {
	data = skipSentinel(data)

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	t := &Table{}
	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return t, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	t.Header = header

	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv row %d: %w", len(t.Rows)+1, err)
		}

		row := make(Row, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			} else {
				row[col] = ""
			}
		}
		t.Rows = append(t.Rows, row)
	}

	log.Tracef("csv parsed: columns=%d, rows=%d", len(t.Header), len(t.Rows))
	return t, nil
}

// Len is the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// HasColumn reports whether name appears in the header.
func (t *Table) HasColumn(name string) bool {
	return slices.Contains(t.Header, name)
}

// skipSentinel drops a leading sep=, line (LF or CRLF terminated).
func skipSentinel(data []byte) []byte {
	line, rest, found := bytes.Cut(data, []byte("\n"))
	if !found {
		return data
	}
	if string(bytes.TrimSuffix(line, []byte("\r"))) == Sentinel {
		log.Debugf("skipping %q sentinel", Sentinel)
		return rest
	}
	return data
}
