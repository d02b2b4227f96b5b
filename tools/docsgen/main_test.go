// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	out := t.TempDir()
	now := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)

	require.NoError(t, generate(filepath.Join("..", "..", "docs", "templates"), out, "1.2.3", now))

	for _, id := range []string{"lines", "columns", "check"} {
		md, err := os.ReadFile(filepath.Join(out, "commands", id+".md"))
		require.NoError(t, err)
		assert.Contains(t, string(md), "# csvdiff "+id)
		assert.Contains(t, string(md), "csvdiff 1.2.3, October 16, 2026")

		man, err := os.ReadFile(filepath.Join(out, "man", "share", "man1", "csvdiff-"+id+".1"))
		require.NoError(t, err)
		assert.Contains(t, string(man), ".SH SYNOPSIS")
	}

	columns, err := os.ReadFile(filepath.Join(out, "commands", "columns.md"))
	require.NoError(t, err)
	assert.Contains(t, string(columns), "`-C, --columns COLS`")
	assert.Contains(t, string(columns), "`-o, --output FORMAT`")

	check, err := os.ReadFile(filepath.Join(out, "commands", "check.md"))
	require.NoError(t, err)
	assert.NotContains(t, string(check), "--output", "check takes no report flags")
}

func TestGenerate_MissingTemplates(t *testing.T) {
	assert.Error(t, generate(t.TempDir(), t.TempDir(), "dev", time.Now()))
}
