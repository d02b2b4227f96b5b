// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"context"
	"fmt"

	"github.com/tfctl/csvdiff/internal/log"
	"github.com/tfctl/csvdiff/internal/source"
)

const (
	// MsgEmpty is printed for a CSV without data rows.
	MsgEmpty = "CSV file is empty."
	// MsgHasData is printed for a CSV with at least one data row.
	MsgHasData = "CSV file has data."
)

// CheckData reports whether loc holds at least one data row. An empty file
// is not an error: MsgEmpty is printed and (false, nil) returned. Only read
// and parse failures produce an error.
func (d *Differ) CheckData(ctx context.Context, loc source.Location) (bool, error) {
	t, err := d.readTable(ctx, loc)
	if err != nil {
		return false, err
	}
	log.Infof("file path: %s", loc.Dir)

	if t.Len() == 0 {
		fmt.Fprintln(d.out(), MsgEmpty)
		return false, nil
	}

	fmt.Fprintln(d.out(), MsgHasData)
	return true, nil
}
