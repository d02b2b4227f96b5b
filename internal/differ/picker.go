// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// SelectColumns lets the user tick columns of header interactively. It
// returns nil when the picker is abandoned.
func SelectColumns(header []string, opts ...tea.ProgramOption) ([]string, error) {
	p := tea.NewProgram(picker{items: header}, opts...)
	m, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("column picker: %w", err)
	}
	return m.(picker).chosen(), nil
}

type picker struct {
	items    []string
	cursor   int
	selected []int
	done     bool
}

func (m picker) Init() tea.Cmd { return nil }

func (m picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "esc", "ctrl+c":
		m.selected = nil
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case "a":
		if len(m.selected) == len(m.items) {
			m.selected = nil
		} else {
			m.selected = make([]int, 0, len(m.items))
			for i := range m.items {
				m.selected = append(m.selected, i)
			}
		}
	case " ":
		if i := slices.Index(m.selected, m.cursor); i >= 0 {
			m.selected = slices.Delete(m.selected, i, i+1)
		} else {
			m.selected = append(m.selected, m.cursor)
		}
	case "enter":
		if len(m.selected) > 0 {
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m picker) View() string {
	var b strings.Builder
	b.WriteString("Select columns to compare:\n\n")
	for i, name := range m.items {
		cursor := " "
		if m.cursor == i {
			cursor = ">"
		}
		mark := " "
		if slices.Contains(m.selected, i) {
			mark = "x"
		}
		fmt.Fprintf(&b, "%s [%s] %s\n", cursor, mark, name)
	}
	b.WriteString("\nSPACE: toggle, A: all, ENTER: go, Q/ESCAPE: quit\n")
	return b.String()
}

// chosen returns the ticked columns in header order.
func (m picker) chosen() []string {
	if !m.done {
		return nil
	}
	var out []string
	for i, name := range m.items {
		if slices.Contains(m.selected, i) {
			out = append(out, name)
		}
	}
	return out
}
