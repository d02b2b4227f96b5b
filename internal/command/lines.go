// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/csvdiff/internal/meta"
)

// lineRow is one reported line of the lines command. Line is its position
// in NEW.
type lineRow struct {
	Line int    `json:"line"`
	Text string `json:"text"`
}

var linesKeys = []string{"line", "text"}

// linesCommandAction is the action handler for the "lines" subcommand. It
// writes every line of NEW missing from BASE to the difference file and
// reports those lines.
func linesCommandAction(ctx context.Context, cmd *cli.Command) error {
	baseLoc, newLoc, err := pairLocations(cmd)
	if err != nil {
		return err
	}

	d, err := newDiffer(ctx, cmd, baseLoc, newLoc)
	if err != nil {
		return err
	}

	res, err := d.CompareLines(ctx, baseLoc, newLoc)
	if err != nil {
		return err
	}

	rows := make([]lineRow, 0, len(res.Lines))
	for i, l := range res.Lines {
		rows = append(rows, lineRow{Line: res.LineNumbers[i], Text: strings.TrimRight(l, "\r\n")})
	}

	header := fmt.Sprintf("lines: %s -> %s", baseLoc, newLoc)
	return emitResult(cmd, res, header, linesKeys, rows)
}

func linesCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "lines",
		Usage:     "report lines of NEW missing from BASE",
		UsageText: "csvdiff lines BASE NEW [--base-dir DIR] [--new-dir DIR] [--out DIR]",
		Action:    linesCommandAction,
		Meta:      meta,
	}).Build()
}
