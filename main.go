// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/tfctl/csvdiff/internal/command"
	"github.com/tfctl/csvdiff/internal/config"
	"github.com/tfctl/csvdiff/internal/log"
	"github.com/tfctl/csvdiff/internal/version"
)

// Process exit codes.
const (
	exitOK        = 0
	exitInitError = 1
	exitRunError  = 2
	exitDifferent = 3
)

var ctx = context.Background()

// boolFlags never consume the following argument.
var boolFlags = map[string]bool{
	"c": true, "color": true,
	"t": true, "titles": true,
	"fail": true, "pick": true,
	"h": true, "help": true,
	"v": true, "version": true,
}

// repeatableFlags accumulate values and are never deduplicated.
var repeatableFlags = map[string]bool{
	"C": true, "columns": true,
}

func main() {
	os.Exit(realMain())
}

// handleVersion checks for --version/-v and returns whether it was handled.
func handleVersion(args []string) bool {
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return true
		}
	}
	return false
}

// handleNakedCommand appends --help if no command is provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "--help")
	}
	return args
}

// expandSet replaces an @set argument with the flags stored under
// <command>.<set> in the config. Without an @set, <command>.defaults is
// injected right after the command so explicit flags still win.
func expandSet(args []string, lookup func(string) ([]string, error)) []string {
	if len(args) < 2 { //nolint:mnd
		return args
	}

	idx := 2
	set := "defaults"
	for i := 2; i < len(args); i++ {
		if strings.HasPrefix(args[i], "@") {
			set = args[i][1:]
			idx = i
			args = append(args[:i:i], args[i+1:]...)
			break
		}
	}

	entries, err := lookup(args[1] + "." + set)
	if err != nil || len(entries) == 0 {
		return args
	}

	var expanded []string
	for _, entry := range entries {
		expanded = append(expanded, strings.Fields(entry)...)
	}
	log.Debugf("set expanded: set=%s, flags=%v", set, expanded)

	out := make([]string, 0, len(args)+len(expanded))
	out = append(out, args[:idx]...)
	out = append(out, expanded...)
	return append(out, args[idx:]...)
}

// deduplicateFlags drops earlier occurrences of a repeated flag so the last
// one wins. Positional arguments keep their order.
func deduplicateFlags(args []string) []string {
	if len(args) <= 2 { //nolint:mnd
		return args
	}

	type group struct {
		name string
		toks []string
	}

	var groups []group
	for i := 2; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			groups = append(groups, group{toks: args[i:]})
			break
		}
		if !strings.HasPrefix(a, "-") || a == "-" {
			groups = append(groups, group{toks: []string{a}})
			continue
		}

		name, _, hasValue := strings.Cut(strings.TrimLeft(a, "-"), "=")
		g := group{name: name, toks: []string{a}}
		if !hasValue && !boolFlags[name] && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			g.toks = append(g.toks, args[i+1])
			i++
		}
		if repeatableFlags[name] {
			g.name = ""
		}
		groups = append(groups, g)
	}

	last := make(map[string]int)
	for i, g := range groups {
		if g.name != "" {
			last[g.name] = i
		}
	}

	out := append([]string{}, args[:2]...)
	for i, g := range groups {
		if g.name == "" || last[g.name] == i {
			out = append(out, g.toks...)
		}
	}
	return out
}

// exitCode maps the result of a run to the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, command.ErrDifferent):
		return exitDifferent
	default:
		return exitRunError
	}
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(args []string) int {
	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app init err: err=%v", err)
		return exitInitError
	}

	err = app.Run(ctx, args)
	code := exitCode(err)
	if code == exitRunError {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app run err: err=%v", err)
	}
	return code
}

func realMain() int {
	log.InitLogger()

	args := os.Args
	log.Debugf("args captured: args=%v", args)

	if handleVersion(args) {
		return exitOK
	}

	args = handleNakedCommand(args)

	// If --help appears anywhere, skip command processing and let the CLI handle it.
	helpFound := false
	for _, a := range args {
		if a == "--help" || a == "-h" {
			helpFound = true
			break
		}
	}

	if !helpFound && args[1] != "completion" {
		args = expandSet(args, func(key string) ([]string, error) {
			return config.GetStringSlice(key)
		})
		args = deduplicateFlags(args)
		log.Debugf("args after set processing: args=%v", args)
	}

	return initAndRunApp(args)
}
