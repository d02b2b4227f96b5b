// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"os"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/tfctl/csvdiff/internal/log"
)

// filterRegex splits a filter expression into key, operator (with optional
// negation) and target. Operators are one of = ^ ~ < > @ or /. Examples:
// "column=price", "new^12", "base!=", "row>3".
var filterRegex = regexp.MustCompile(`^([^!=^~<>@/]*)(!?[=^~<>@/])?(.*)$`)

// Filter is a single parsed --filter expression.
type Filter struct {
	Key     string `yaml:"key" json:"Key"`
	Negate  bool   `yaml:"negate" json:"Negate"`
	Operand string `yaml:"operand" json:"Operand"`
	Value   string `yaml:"value" json:"Value"`
}

// BuildFilters parses a filter specification string into a slice of Filter.
// Malformed entries are logged and skipped. CSVDIFF_FILTER_DELIM overrides
// the "," separator for values that contain commas.
func BuildFilters(spec string) []Filter {
	//nolint:prealloc
	var filters []Filter

	if spec == "" {
		return filters
	}

	delim := ","
	if d, ok := os.LookupEnv("CSVDIFF_FILTER_DELIM"); ok && d != "" {
		delim = d
	}

	for _, filterSpec := range strings.Split(spec, delim) {
		filterSpec = strings.TrimSpace(filterSpec)
		if filterSpec == "" {
			continue
		}

		parts := filterRegex.FindStringSubmatch(filterSpec)
		key := ""
		if parts != nil {
			key = strings.TrimSpace(parts[1])
		}
		if key == "" || parts[2] == "" {
			log.Errorf("invalid filter: %s", filterSpec)
			continue
		}

		operand := parts[2]
		negate := strings.HasPrefix(operand, "!")

		filters = append(filters, Filter{
			Key:     key,
			Negate:  negate,
			Operand: strings.TrimPrefix(operand, "!"),
			Value:   parts[3],
		})
	}

	return filters
}

// FilterDataset returns the rows of candidates (a JSON array of objects)
// that satisfy every filter in spec, projected onto keys.
func FilterDataset(candidates gjson.Result, keys []string, spec string) []map[string]interface{} {
	//nolint:prealloc
	var filtered []map[string]interface{}

	filters := BuildFilters(spec)
	for _, f := range filters {
		if !slices.Contains(keys, f.Key) {
			msg := fmt.Sprintf("filter key not found: %s", f.Key)
			log.Errorf("%s", msg)
			fmt.Fprintf(os.Stderr, "warning: %s\n", msg)
		}
	}

	for _, candidate := range candidates.Array() {
		if !applyFilters(candidate, keys, filters) {
			continue
		}

		result := make(map[string]interface{}, len(keys))
		for _, key := range keys {
			result[key] = candidate.Get(gjsonEscape(key)).Value()
		}
		filtered = append(filtered, result)
	}

	return filtered
}

// applyFilters returns true if candidate matches all filters. Filters on
// unknown keys are ignored.
func applyFilters(candidate gjson.Result, keys []string, filters []Filter) bool {
	for _, filter := range filters {
		if !slices.Contains(keys, filter.Key) {
			continue
		}

		value := candidate.Get(gjsonEscape(filter.Key))
		if !value.Exists() {
			return false
		}

		var ok bool
		switch value.Type {
		case gjson.Number:
			ok = checkNumericOperand(value.Float(), filter)
		default:
			ok = checkStringOperand(value.String(), filter)
		}
		if !ok {
			return false
		}
	}

	return true
}

// checkNumericOperand compares numerically for = < >; other operands fall
// back to string semantics.
func checkNumericOperand(value float64, filter Filter) bool {
	switch filter.Operand {
	case "=", "<", ">":
	default:
		return checkStringOperand(strconv.FormatFloat(value, 'f', -1, 64), filter)
	}

	tgt, err := strconv.ParseFloat(strings.TrimSpace(filter.Value), 64)
	if err != nil {
		log.Errorf("invalid numeric value: %s", filter.Value)
		return false
	}

	switch filter.Operand {
	case "=":
		return (value == tgt) == !filter.Negate
	case ">":
		return (value > tgt) == !filter.Negate
	default:
		return (value < tgt) == !filter.Negate
	}
}

// checkStringOperand evaluates a string comparison against value.
func checkStringOperand(value string, filter Filter) bool {
	switch filter.Operand {
	case "=":
		return value == filter.Value == !filter.Negate
	case "~":
		return strings.EqualFold(value, filter.Value) == !filter.Negate
	case "^":
		return strings.HasPrefix(value, filter.Value) == !filter.Negate
	case ">":
		return value > filter.Value == !filter.Negate
	case "<":
		return value < filter.Value == !filter.Negate
	case "@":
		return strings.Contains(value, filter.Value) == !filter.Negate
	case "/":
		matched, err := regexp.MatchString(filter.Value, value)
		if err != nil {
			log.Errorf("invalid regex: %s", filter.Value)
			return false
		}
		return matched == !filter.Negate
	default:
		log.Errorf("unsupported filtering operand: %s", filter.Operand)
		return false
	}
}

// gjsonEscape escapes gjson path metacharacters so CSV column names such as
// "unit.price" address a single key.
func gjsonEscape(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch r {
		case '.', '*', '?', '|', '#', '@', '\\', '!', '=', '<', '>', '%':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
