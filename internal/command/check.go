// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/csvdiff/internal/differ"
	"github.com/tfctl/csvdiff/internal/meta"
	"github.com/tfctl/csvdiff/internal/source"
)

// checkCommandAction is the action handler for the "check" subcommand. An
// empty file is reported, not failed.
func checkCommandAction(ctx context.Context, cmd *cli.Command) error {
	if err := ArgsValidator(cmd, 1); err != nil {
		return err
	}
	loc := source.Location{Dir: cmd.String("dir"), Name: cmd.Args().First()}

	r, err := NewReader(ctx, cmd, loc)
	if err != nil {
		return err
	}

	d := differ.New(r, "")
	d.Out = cmd.Root().Writer
	_, err = d.CheckData(ctx, loc)
	return err
}

func checkCommandBuilder(meta meta.Meta) *cli.Command {
	src := meta.Config.Source
	return &cli.Command{
		Name:      "check",
		Usage:     "report whether NAME holds data rows",
		UsageText: "csvdiff check NAME [--dir DIR]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			NameSpacedValueChainFlagFromConfigFile("check", src, &cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Usage:   "directory or s3:// prefix holding the file",
				Sources: cli.NewValueSourceChain(cli.EnvVar("CSVDIFF_DIR")),
			}),
		}, NewS3Flags("check", src)...),
		Action: checkCommandAction,
	}
}
