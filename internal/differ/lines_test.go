// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package differ

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/csvdiff/internal/source"
)

func TestCompareLines(t *testing.T) {
	tests := []struct {
		name          string
		base          string
		next          string
		wantIdentical bool
		wantDiff      string
	}{
		{
			name:          "identical",
			base:          "sku,price\nA1,10\nB2,20\n",
			next:          "sku,price\nA1,10\nB2,20\n",
			wantIdentical: true,
			wantDiff:      "",
		},
		{
			name:          "one added line",
			base:          "sku,price\nA1,10\n",
			next:          "sku,price\nA1,10\nC3,30\n",
			wantIdentical: false,
			wantDiff:      "C3,30\n",
		},
		{
			name:          "removed line is not reported",
			base:          "sku,price\nA1,10\nB2,20\n",
			next:          "sku,price\nA1,10\n",
			wantIdentical: true,
			wantDiff:      "",
		},
		{
			name:          "order does not matter",
			base:          "sku,price\nA1,10\nB2,20\n",
			next:          "sku,price\nB2,20\nA1,10\n",
			wantIdentical: true,
		},
		{
			name:          "changed value shows the new line",
			base:          "sku,price\nA1,10\n",
			next:          "sku,price\nA1,11\n",
			wantIdentical: false,
			wantDiff:      "A1,11\n",
		},
		{
			name:          "duplicates written per occurrence",
			base:          "sku\n",
			next:          "sku\nZ\nZ\n",
			wantIdentical: false,
			wantDiff:      "Z\nZ\n",
		},
		{
			name:          "crlf matches lf",
			base:          "sku,price\r\nA1,10\r\n",
			next:          "sku,price\nA1,10\n",
			wantIdentical: true,
		},
		{
			name:          "missing final newline is a different line",
			base:          "sku\nA1\n",
			next:          "sku\nA1",
			wantIdentical: false,
			wantDiff:      "A1",
		},
		{
			name:          "added blank line holds no records",
			base:          "sku\nA1\n",
			next:          "sku\n\nA1\n",
			wantIdentical: true,
			wantDiff:      "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, dir := newTestDiffer(t, map[string]string{"base": tt.base, "new": tt.next})

			res, err := d.CompareLines(context.Background(),
				source.Location{Dir: dir, Name: "base"},
				source.Location{Dir: dir, Name: "new"})
			require.NoError(t, err)

			assert.Equal(t, tt.wantIdentical, res.Identical)
			assert.FileExists(t, res.DiffFile, "difference file is always created")
			assert.Equal(t, tt.wantDiff, readFile(t, res.DiffFile))
		})
	}
}

func TestCompareLines_RecordsNewFilePositions(t *testing.T) {
	d, dir := newTestDiffer(t, map[string]string{
		"base": "sku,price\nA1,10\nB2,20\n",
		"new":  "sku,price\nC3,30\nA1,10\nB2,20\nD4,40\n",
	})

	res, err := d.CompareLines(context.Background(),
		source.Location{Dir: dir, Name: "base"},
		source.Location{Dir: dir, Name: "new"})
	require.NoError(t, err)

	assert.Equal(t, []string{"C3,30\n", "D4,40\n"}, res.Lines)
	assert.Equal(t, []int{2, 5}, res.LineNumbers)
}

func TestCompareLines_MissingInput(t *testing.T) {
	d, dir := newTestDiffer(t, map[string]string{"base": "a\n"})

	_, err := d.CompareLines(context.Background(),
		source.Location{Dir: dir, Name: "base"},
		source.Location{Dir: dir, Name: "new"})
	assert.ErrorIs(t, err, source.ErrNotFound)
	assert.ErrorContains(t, err, "new csv")

	_, err = d.CompareLines(context.Background(),
		source.Location{Dir: dir, Name: "nope"},
		source.Location{Dir: dir, Name: "base"})
	assert.ErrorContains(t, err, "reference csv")
}

func TestCompareLines_DistinctFilesPerCall(t *testing.T) {
	d, dir := newTestDiffer(t, map[string]string{"base": "a\n", "new": "a\n"})
	base := source.Location{Dir: dir, Name: "base"}
	next := source.Location{Dir: dir, Name: "new"}

	first, err := d.CompareLines(context.Background(), base, next)
	require.NoError(t, err)
	second, err := d.CompareLines(context.Background(), base, next)
	require.NoError(t, err)

	assert.NotEqual(t, first.DiffFile, second.DiffFile)
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{"a\n", []string{"a\n"}},
		{"a\nb", []string{"a\n", "b"}},
		{"a\r\nb\r\n", []string{"a\n", "b\n"}},
		{"a\rb", []string{"a\n", "b"}},
		{"\n\n", []string{"\n", "\n"}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SplitLines([]byte(tt.in)), "input %q", tt.in)
	}
}
