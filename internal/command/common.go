// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/csvdiff/internal/aws"
	"github.com/tfctl/csvdiff/internal/config"
	"github.com/tfctl/csvdiff/internal/differ"
	"github.com/tfctl/csvdiff/internal/log"
	"github.com/tfctl/csvdiff/internal/meta"
	"github.com/tfctl/csvdiff/internal/output"
	"github.com/tfctl/csvdiff/internal/source"
)

// ErrDifferent is returned under --fail when the compared files differ.
var ErrDifferent = errors.New("csv files differ")

// defaultCacheHours is the purge horizon used when cache.clean is unset.
const defaultCacheHours = 24

// CommandBuilder constructs a comparison subcommand using a consistent
// pattern. The builder wires metadata, adds the report and compare flags, and
// sets the config namespace and validators up front.
type CommandBuilder struct {
	Name      string
	Usage     string
	UsageText string
	Flags     []cli.Flag
	Action    func(context.Context, *cli.Command) error
	Meta      meta.Meta
}

// Build returns a configured cli.Command from the builder.
func (b *CommandBuilder) Build() *cli.Command {
	src := b.Meta.Config.Source
	flags := append(b.Flags, NewCompareFlags(b.Name, src)...)
	return &cli.Command{
		Name:      b.Name,
		Usage:     b.Usage,
		UsageText: b.UsageText,
		Metadata: map[string]any{
			"meta": b.Meta,
		},
		Flags: append(flags, NewGlobalFlags(b.Name, src)...),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			config.Config.Namespace = b.Name
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: b.Action,
	}
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// reportOptions converts the report flags into output options.
func reportOptions(cmd *cli.Command) output.Options {
	return output.Options{
		Format:  cmd.String("output"),
		Filter:  cmd.String("filter"),
		Sort:    cmd.String("sort"),
		Titles:  cmd.Bool("titles"),
		Color:   cmd.Bool("color"),
		Padding: int(cmd.Int("padding")),
	}
}

// NewReader returns a source.Reader for locs. An S3 client is only built when
// one of them is remote.
func NewReader(ctx context.Context, cmd *cli.Command, locs ...source.Location) (*source.Reader, error) {
	hours, err := config.GetInt("cache.clean", defaultCacheHours)
	if err != nil {
		log.Warnf("cache.clean is not an int, using %d: %v", defaultCacheHours, err)
		hours = defaultCacheHours
	}
	r := &source.Reader{CacheHours: hours}

	if !slices.ContainsFunc(locs, source.Location.IsRemote) {
		return r, nil
	}

	cfg, err := aws.LoadAWSConfig(ctx, awsOptions(cmd)...)
	if err != nil {
		return nil, err
	}
	r.S3 = aws.NewS3(cfg, aws.WithEndpoint(cmd.String("s3-endpoint")))
	return r, nil
}

// awsOptions maps the S3 flags onto AWS config options.
func awsOptions(cmd *cli.Command) []aws.Option {
	var opts []aws.Option
	if p := cmd.String("profile"); p != "" {
		opts = append(opts, aws.WithProfile(p))
	}
	if region := cmd.String("region"); region != "" {
		opts = append(opts, aws.WithRegion(region))
	}
	if n := int(cmd.Int("max-attempts")); n > 0 {
		opts = append(opts, aws.WithMaxAttempts(n))
	}
	return opts
}

// newDiffer builds a Differ writing into --out and printing to the app's
// writer.
func newDiffer(ctx context.Context, cmd *cli.Command, locs ...source.Location) (*differ.Differ, error) {
	r, err := NewReader(ctx, cmd, locs...)
	if err != nil {
		return nil, err
	}
	d := differ.New(r, cmd.String("out"))
	d.Out = cmd.Root().Writer
	return d, nil
}

// pairLocations reads the BASE and NEW arguments of a comparison command.
func pairLocations(cmd *cli.Command) (base, next source.Location, err error) {
	if err = ArgsValidator(cmd, 2); err != nil { //nolint:mnd
		return
	}
	base = source.Location{Dir: cmd.String("base-dir"), Name: cmd.Args().Get(0)}
	next = source.Location{Dir: cmd.String("new-dir"), Name: cmd.Args().Get(1)}
	log.Debugf("locations: base=%s, new=%s", base, next)
	return
}

// emitResult renders a comparison result and applies --fail.
func emitResult(cmd *cli.Command, res *differ.Result, header string, keys []string, rows any) error {
	raw, err := os.ReadFile(res.DiffFile)
	if err != nil {
		return fmt.Errorf("failed to read difference file: %w", err)
	}

	ds, err := output.NewDataset(keys, rows, raw)
	if err != nil {
		return err
	}

	opts := reportOptions(cmd)
	if opts.Titles {
		opts.Header = header
		opts.Footer = Summary(res, len(raw))
	}

	if err := output.SliceDiceSpit(ds, opts, cmd.Root().Writer); err != nil {
		return err
	}

	if cmd.Bool("fail") && !res.Identical {
		return ErrDifferent
	}
	return nil
}

// Summary describes a result in one line, e.g.
// "different: 1,024 entries, 12 kB written to out/2026-10-16....csv".
func Summary(res *differ.Result, size int) string {
	verdict := "identical"
	if !res.Identical {
		verdict = "different"
	}

	n := len(res.Lines) + len(res.Mismatches)
	noun := "entries"
	if n == 1 {
		noun = "entry"
	}

	return fmt.Sprintf("%s: %s %s, %s written to %s",
		verdict, humanize.Comma(int64(n)), noun, humanize.Bytes(uint64(size)), res.DiffFile) //nolint:gosec
}
