package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// checklistDelegate renders one item per row: check glyph, name, price.
// Purchased rows are muted so the remaining shopping stands out.
type checklistDelegate struct {
	normal    lipgloss.Style
	purchased lipgloss.Style
	selected  lipgloss.Style
}

func newChecklistDelegate() checklistDelegate {
	return checklistDelegate{
		normal:    lipgloss.NewStyle().Foreground(colorSurfaceFg),
		purchased: faintIfDark(lipgloss.NewStyle().Foreground(colorDoneFg)),
		selected: lipgloss.NewStyle().
			Foreground(colorSelectedFg).
			Background(colorSelectedBg).
			Bold(true),
	}
}

func (d checklistDelegate) Height() int  { return 1 }
func (d checklistDelegate) Spacing() int { return 0 }
func (d checklistDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d checklistDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	contentW := m.Width()
	if contentW < 4 {
		fmt.Fprint(w, "")
		return
	}

	ci, ok := item.(checklistItem)
	if !ok {
		fmt.Fprint(w, "")
		return
	}

	style := d.normal
	if ci.item.Purchased {
		style = d.purchased
	}
	if index == m.Index() {
		style = d.selected
	}

	price := fmt.Sprintf("%.2f", ci.item.Price)
	line := ci.Title()
	// Right-align the price when there is room for it.
	lineW := xansi.StringWidth(line)
	priceW := xansi.StringWidth(price)
	if lineW+priceW+2 <= contentW {
		line += strings.Repeat(" ", contentW-lineW-priceW) + price
	} else if lineW < contentW {
		line += strings.Repeat(" ", contentW-lineW)
	} else {
		line = xansi.Cut(line, 0, contentW)
	}

	fmt.Fprint(w, style.Render(line))
}
