// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package differ compares a reference CSV with a new one, line by line or
// column by column, and records the differences in a difference file.
package differ
