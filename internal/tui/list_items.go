package tui

import (
	"fmt"

	"suitcase-cli/internal/model"

	"github.com/charmbracelet/bubbles/list"
)

type checklistItem struct {
	item model.Item
}

func (i checklistItem) FilterValue() string { return i.item.Name }

func (i checklistItem) Title() string {
	glyph := "[ ]"
	if i.item.Purchased {
		glyph = "[x]"
	}
	return fmt.Sprintf("%s %s", glyph, i.item.Name)
}

func (i checklistItem) Description() string {
	return fmt.Sprintf("%.2f  %s", i.item.Price, i.item.Description)
}

func toListItems(items []model.Item) []list.Item {
	out := make([]list.Item, 0, len(items))
	for _, it := range items {
		out = append(out, checklistItem{item: it})
	}
	return out
}

func newList(title string, items []list.Item) list.Model {
	l := list.New(items, newChecklistDelegate(), 0, 0)
	l.Title = title
	// The app renders its own footer and status line, so keep list chrome minimal.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetStatusBarItemName("item", "items")
	// Bubble list defaults to quitting on ESC; here ESC is "back/cancel".
	l.KeyMap.Quit.SetKeys("q")
	// Emacs-style navigation aliases.
	cursorUpKeys := append([]string{}, l.KeyMap.CursorUp.Keys()...)
	cursorUpKeys = append(cursorUpKeys, "ctrl+p")
	l.KeyMap.CursorUp.SetKeys(cursorUpKeys...)

	cursorDownKeys := append([]string{}, l.KeyMap.CursorDown.Keys()...)
	cursorDownKeys = append(cursorDownKeys, "ctrl+n")
	l.KeyMap.CursorDown.SetKeys(cursorDownKeys...)
	return l
}
