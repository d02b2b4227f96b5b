// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"sort"
	"strings"
)

// sortKey is one parsed --sort field. A leading "-" sorts descending and a
// leading "!" makes string comparison case sensitive.
type sortKey struct {
	field         string
	ascending     bool
	caseSensitive bool
}

func parseSortSpec(spec string) []sortKey {
	var keys []sortKey
	for _, field := range strings.Split(spec, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		k := sortKey{ascending: true}
		if strings.HasPrefix(field, "-") {
			field = field[1:]
			k.ascending = false
		}
		if strings.HasPrefix(field, "!") {
			field = field[1:]
			k.caseSensitive = true
		}
		k.field = field
		keys = append(keys, k)
	}
	return keys
}

// compare returns -1, 0 or 1 for a against b under k.
func (k sortKey) compare(a, b interface{}) int {
	if an, ok := a.(float64); ok {
		if bn, ok := b.(float64); ok {
			switch {
			case an < bn:
				return -1
			case an > bn:
				return 1
			}
			return 0
		}
	}

	as, bs := InterfaceToString(a), InterfaceToString(b)
	if !k.caseSensitive {
		as, bs = strings.ToLower(as), strings.ToLower(bs)
	}
	return strings.Compare(as, bs)
}

// SortDataset stably sorts resultSet by the comma-separated fields in spec.
// An empty spec keeps the original order.
func SortDataset(resultSet []map[string]interface{}, spec string) {
	keys := parseSortSpec(spec)
	if len(keys) == 0 {
		return
	}

	sort.SliceStable(resultSet, func(one, two int) bool {
		for _, k := range keys {
			c := k.compare(resultSet[one][k.field], resultSet[two][k.field])
			if c == 0 {
				continue
			}
			if k.ascending {
				return c < 0
			}
			return c > 0
		}
		return false
	})
}
