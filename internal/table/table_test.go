// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantHeader []string
		wantRows   []Row
	}{
		{
			name:       "header and rows",
			input:      "sku,price\nA1,10\nB2,20\n",
			wantHeader: []string{"sku", "price"},
			wantRows:   []Row{{"sku": "A1", "price": "10"}, {"sku": "B2", "price": "20"}},
		},
		{
			name:       "sentinel skipped",
			input:      "sep=,\nsku,price\nA1,10\n",
			wantHeader: []string{"sku", "price"},
			wantRows:   []Row{{"sku": "A1", "price": "10"}},
		},
		{
			name:       "crlf sentinel skipped",
			input:      "sep=,\r\nsku,price\r\nA1,10\r\n",
			wantHeader: []string{"sku", "price"},
			wantRows:   []Row{{"sku": "A1", "price": "10"}},
		},
		{
			name:       "header only",
			input:      "sku,price\n",
			wantHeader: []string{"sku", "price"},
		},
		{
			name:  "empty",
			input: "",
		},
		{
			name:  "sentinel only",
			input: "sep=,\n",
		},
		{
			name:       "short and long records",
			input:      "a,b\n1\n1,2,3\n",
			wantHeader: []string{"a", "b"},
			wantRows:   []Row{{"a": "1", "b": ""}, {"a": "1", "b": "2"}},
		},
		{
			name:       "quoted fields",
			input:      "name,note\n\"Smith, J\",\"said \"\"hi\"\"\"\n",
			wantHeader: []string{"name", "note"},
			wantRows:   []Row{{"name": "Smith, J", "note": `said "hi"`}},
		},
		{
			name:       "bare quote in unquoted field",
			input:      "name,size\nTV,55\" screen\n",
			wantHeader: []string{"name", "size"},
			wantRows:   []Row{{"name": "TV", "size": `55" screen`}},
		},
		{
			name:       "blank lines ignored",
			input:      "a\n\n1\n\n",
			wantHeader: []string{"a"},
			wantRows:   []Row{{"a": "1"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.wantHeader, got.Header)
			assert.Equal(t, tt.wantRows, got.Rows)
			assert.Equal(t, len(tt.wantRows), got.Len())
		})
	}
}

func TestParse_UnterminatedQuoteRunsToEOF(t *testing.T) {
	got, err := Parse([]byte("a,b\n\"unterminated,2\n"))
	require.NoError(t, err)
	require.Equal(t, 1, got.Len())
	assert.Contains(t, got.Rows[0]["a"], "unterminated,2")
	assert.Equal(t, "", got.Rows[0]["b"])
}

func TestHasColumn(t *testing.T) {
	tbl, err := Parse([]byte("sku,price\n"))
	require.NoError(t, err)
	assert.True(t, tbl.HasColumn("price"))
	assert.False(t, tbl.HasColumn("qty"))
}
