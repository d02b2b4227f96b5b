// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package differ

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func press(m picker, keys ...tea.KeyMsg) picker {
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(picker)
	}
	return m
}

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keySpace = tea.KeyMsg{Type: tea.KeySpace}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyAll   = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}}
)

func TestPicker_ToggleAndChoose(t *testing.T) {
	m := picker{items: []string{"sku", "price", "qty"}}

	m = press(m, keyDown, keyDown, keySpace, keyUp, keyUp, keySpace, keyEnter)

	assert.True(t, m.done)
	assert.Equal(t, []string{"sku", "qty"}, m.chosen(), "header order, not tick order")
}

func TestPicker_UntoggleAndCursorBounds(t *testing.T) {
	m := picker{items: []string{"sku", "price"}}

	m = press(m, keyUp, keySpace, keySpace)
	assert.Equal(t, 0, m.cursor)
	assert.Empty(t, m.selected)

	m = press(m, keyDown, keyDown, keyDown)
	assert.Equal(t, 1, m.cursor)
}

func TestPicker_EnterNeedsSelection(t *testing.T) {
	m := press(picker{items: []string{"sku"}}, keyEnter)
	assert.False(t, m.done)
	assert.Nil(t, m.chosen())
}

func TestPicker_SelectAll(t *testing.T) {
	m := press(picker{items: []string{"sku", "price"}}, keyAll, keyEnter)
	assert.Equal(t, []string{"sku", "price"}, m.chosen())

	m = press(picker{items: []string{"sku", "price"}}, keyAll, keyAll)
	assert.Empty(t, m.selected)
}

func TestPicker_Quit(t *testing.T) {
	m := picker{items: []string{"sku", "price"}}
	next, cmd := press(m, keySpace).Update(keyEsc)

	assert.NotNil(t, cmd)
	assert.Nil(t, next.(picker).chosen())
}

func TestPicker_View(t *testing.T) {
	m := press(picker{items: []string{"sku", "price"}}, keyDown, keySpace)
	view := m.View()

	assert.Contains(t, view, "  [ ] sku")
	assert.Contains(t, view, "> [x] price")
}
