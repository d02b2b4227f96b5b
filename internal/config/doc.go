// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for csvdiff's user
// configuration. The configuration is a YAML document named by
// CSVDIFF_CFG_FILE or located in the user's configuration directory:
//   - Linux: $XDG_CONFIG_HOME/csvdiff.yaml or $HOME/.config/csvdiff.yaml
//   - macOS: $HOME/Library/Application Support/csvdiff.yaml
//   - Windows: %APPDATA%/csvdiff.yaml
//
// Actual resolution relies on os.UserConfigDir which follows platform
// conventions.
package config
