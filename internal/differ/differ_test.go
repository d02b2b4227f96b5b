// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package differ

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/csvdiff/internal/source"
)

var fixedNow = time.Date(2026, 10, 16, 9, 30, 0, 123456789, time.UTC)

// newTestDiffer writes files into a temp input dir and returns a Differ with
// a frozen clock writing into a separate temp output dir.
func newTestDiffer(t *testing.T, files map[string]string) (*Differ, string) {
	t.Helper()

	inDir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(inDir, name+".csv"), []byte(content), 0o600))
	}

	d := New(&source.Reader{}, t.TempDir())
	d.Now = func() time.Time { return fixedNow }
	d.Out = &bytes.Buffer{}
	return d, inDir
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func TestDiffFileName(t *testing.T) {
	want := fmt.Sprintf("2026-10-16%d.123456.csv", fixedNow.Unix())
	assert.Equal(t, want, DiffFileName(fixedNow))
}

func TestCreateDiffFile_UniquePerInvocation(t *testing.T) {
	d, _ := newTestDiffer(t, nil)

	seen := map[string]bool{}
	for range 3 {
		f, err := d.createDiffFile()
		require.NoError(t, err)
		require.NoError(t, f.Close())
		assert.False(t, seen[f.Name()], "duplicate name %s", f.Name())
		seen[f.Name()] = true
	}

	second := filepath.Join(d.OutDir, DiffFileName(fixedNow.Add(time.Microsecond)))
	assert.True(t, seen[second], "collision advances the clock by a microsecond")
}

func TestCreateDiffFile_MakesOutDir(t *testing.T) {
	d, _ := newTestDiffer(t, nil)
	d.OutDir = filepath.Join(d.OutDir, "nested", "diffs")

	f, err := d.createDiffFile()
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.FileExists(t, f.Name())
}

func TestCountRecords(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		content string
		want    int
	}{
		{"", 0},
		{"\n\n", 0},
		{"a,b\n", 1},
		{"a,b\nc\n", 2},
		{"\"open quote\n", 1},
	}

	for i, tt := range tests {
		path := filepath.Join(dir, fmt.Sprintf("%d.csv", i))
		require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))
		n, err := countRecords(path)
		require.NoError(t, err)
		assert.Equal(t, tt.want, n, "content %q", tt.content)
	}
}

func TestResult_ByColumn(t *testing.T) {
	r := &Result{Mismatches: []Mismatch{
		{Column: "price", Row: 1},
		{Column: "qty", Row: 1},
		{Column: "price", Row: 3},
	}}

	got := r.ByColumn()
	assert.Len(t, got["price"], 2)
	assert.Len(t, got["qty"], 1)
	assert.Equal(t, 3, got["price"][1].Row)
}

func TestCheckData(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    bool
		wantMsg string
	}{
		{name: "header only", content: "sku,price\n", want: false, wantMsg: MsgEmpty},
		{name: "zero bytes", content: "", want: false, wantMsg: MsgEmpty},
		{name: "sentinel and header", content: "sep=,\nsku,price\n", want: false, wantMsg: MsgEmpty},
		{name: "has rows", content: "sku,price\nA1,10\n", want: true, wantMsg: MsgHasData},
		{name: "bare quote in value", content: "name,size\nTV,55\" screen\n", want: true, wantMsg: MsgHasData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, dir := newTestDiffer(t, map[string]string{"export": tt.content})

			got, err := d.CheckData(context.Background(), source.Location{Dir: dir, Name: "export"})
			require.NoError(t, err, "emptiness is never an error")
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantMsg+"\n", d.Out.(*bytes.Buffer).String())
		})
	}
}

func TestCheckData_Missing(t *testing.T) {
	d, dir := newTestDiffer(t, nil)

	_, err := d.CheckData(context.Background(), source.Location{Dir: dir, Name: "absent"})
	assert.ErrorIs(t, err, source.ErrNotFound)
	assert.Empty(t, d.Out.(*bytes.Buffer).String())
}
