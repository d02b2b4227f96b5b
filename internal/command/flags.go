// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"
)

// defaultPadding is the column gap of text output.
const defaultPadding = 2

// NewGlobalFlags returns the report flags shared by the comparison commands.
// params[0] is the command namespace and params[1] the config file; when both
// are given the flags also read their defaults from the config file.
func NewGlobalFlags(params ...string) (flags []cli.Flag) {
	var ns, path string
	if len(params) == 2 {
		ns, path = params[0], params[1]
	}

	flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Sources: cli.NewValueSourceChain(configSources(ns, "color", path)...),
			Value:   false,
		},
		NameSpacedValueChainFlagFromConfigFile(ns, path, &cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to results",
		}),
		NameSpacedValueChainFlagFromConfigFile(ns, path, &cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Value:   "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		}),
		&cli.IntFlag{
			Name:    "padding",
			Aliases: []string{"p"},
			Usage:   "column padding of text output",
			Sources: cli.NewValueSourceChain(configSources(ns, "padding", path)...),
			Value:   defaultPadding,
		},
		NameSpacedValueChainFlagFromConfigFile(ns, path, &cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of attributes to sort the results by",
		}),
		&cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Sources: cli.NewValueSourceChain(configSources(ns, "titles", path)...),
			Value:   false,
		},
	}

	return
}

// NewCompareFlags returns the flags of the two-file commands: where the base
// and new files live, where the difference file goes, and how S3 is reached.
func NewCompareFlags(ns, path string) []cli.Flag {
	flags := []cli.Flag{
		NameSpacedValueChainFlagFromConfigFile(ns, path, &cli.StringFlag{
			Name:    "base-dir",
			Aliases: []string{"b"},
			Usage:   "directory or s3:// prefix holding the reference file",
			Sources: cli.NewValueSourceChain(cli.EnvVar("CSVDIFF_BASE_DIR")),
		}),
		NameSpacedValueChainFlagFromConfigFile(ns, path, &cli.StringFlag{
			Name:    "new-dir",
			Aliases: []string{"n"},
			Usage:   "directory or s3:// prefix holding the new file",
			Sources: cli.NewValueSourceChain(cli.EnvVar("CSVDIFF_NEW_DIR")),
		}),
		NameSpacedValueChainFlagFromConfigFile(ns, path, &cli.StringFlag{
			Name:    "out",
			Usage:   "directory receiving the difference file",
			Sources: cli.NewValueSourceChain(cli.EnvVar("CSVDIFF_OUT")),
			Value:   ".",
		}),
		&cli.BoolFlag{
			Name:        "fail",
			Usage:       "exit with status 3 when the files differ",
			HideDefault: true,
		},
	}
	return append(flags, NewS3Flags(ns, path)...)
}

// NewS3Flags returns the flags controlling access to s3:// locations.
func NewS3Flags(ns, path string) []cli.Flag {
	return []cli.Flag{
		NameSpacedValueChainFlagFromConfigFile(ns, path, &cli.StringFlag{
			Name:    "profile",
			Usage:   "AWS shared config profile for s3:// locations",
			Sources: cli.NewValueSourceChain(cli.EnvVar("AWS_PROFILE")),
		}),
		&cli.IntFlag{
			Name:    "max-attempts",
			Usage:   "attempts per S3 request before giving up; 0 keeps the SDK default",
			Sources: cli.NewValueSourceChain(configSources(ns, "max-attempts", path)...),
		},
		NameSpacedValueChainFlagFromConfigFile(ns, path, &cli.StringFlag{
			Name:  "region",
			Usage: "AWS region for s3:// locations",
		}),
		NameSpacedValueChainFlagFromConfigFile(ns, path, &cli.StringFlag{
			Name:    "s3-endpoint",
			Usage:   "endpoint of an S3-compatible store",
			Sources: cli.NewValueSourceChain(cli.EnvVar("CSVDIFF_S3_ENDPOINT")),
		}),
	}
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources to the given flag's Sources chain. An empty path leaves the flag
// untouched.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	flag.Sources.Chain = append(flag.Sources.Chain, configSources(ns, flag.Name, path)...)
	return flag
}

// configSources returns the YAML sources for name, namespaced first.
func configSources(ns, name, path string) []cli.ValueSource {
	if path == "" {
		return nil
	}

	var srcs []cli.ValueSource
	if ns != "" {
		srcs = append(srcs, yaml.YAML(ns+"."+name, altsrc.StringSourcer(path)))
	}
	return append(srcs, yaml.YAML(name, altsrc.StringSourcer(path)))
}
