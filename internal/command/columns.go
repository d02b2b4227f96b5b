// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/csvdiff/internal/differ"
	"github.com/tfctl/csvdiff/internal/meta"
	"github.com/tfctl/csvdiff/internal/source"
	"github.com/tfctl/csvdiff/internal/table"
)

var columnsKeys = []string{"column", "row", "base", "new"}

// selectColumns is swapped in tests.
var selectColumns = func(header []string) ([]string, error) {
	return differ.SelectColumns(header)
}

// columnsCommandAction is the action handler for the "columns" subcommand.
// Every base row is compared with the first row of NEW in each selected
// column.
func columnsCommandAction(ctx context.Context, cmd *cli.Command) error {
	baseLoc, newLoc, err := pairLocations(cmd)
	if err != nil {
		return err
	}

	d, err := newDiffer(ctx, cmd, baseLoc, newLoc)
	if err != nil {
		return err
	}

	columns := cmd.StringSlice("columns")
	if cmd.Bool("pick") {
		if columns, err = pickColumns(ctx, d.Source, baseLoc); err != nil {
			return err
		}
	}
	if len(columns) == 0 {
		return errors.New("no columns given: use --columns or --pick")
	}

	res, err := d.CompareColumns(ctx, baseLoc, newLoc, columns)
	if err != nil {
		return err
	}

	header := fmt.Sprintf("columns %s: %s -> %s", strings.Join(columns, ","), baseLoc, newLoc)
	return emitResult(cmd, res, header, columnsKeys, res.Mismatches)
}

// pickColumns offers the base table's header in the interactive picker.
func pickColumns(ctx context.Context, r *source.Reader, loc source.Location) ([]string, error) {
	data, err := r.ReadAll(ctx, loc)
	if err != nil {
		return nil, fmt.Errorf("reference csv: %w", err)
	}

	t, err := table.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("reference csv: %w", err)
	}

	columns, err := selectColumns(t.Header)
	if err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return nil, errors.New("no columns selected")
	}
	return columns, nil
}

func columnsCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "columns",
		Usage:     "compare selected columns of BASE against the first row of NEW",
		UsageText: "csvdiff columns BASE NEW --columns COL[,COL...] [--pick] [--out DIR]",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "columns",
				Aliases: []string{"C"},
				Usage:   "comma-separated list of columns to compare",
				Sources: cli.NewValueSourceChain(configSources("columns", "columns", meta.Config.Source)...),
			},
			&cli.BoolFlag{
				Name:        "pick",
				Usage:       "choose the columns interactively",
				HideDefault: true,
			},
		},
		Action: columnsCommandAction,
		Meta:   meta,
	}).Build()
}
