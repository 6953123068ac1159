package tui

import (
	"strconv"
	"strings"

	"suitcase-cli/internal/model"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	fieldName = iota
	fieldPrice
	fieldDescription
	fieldImage
	fieldCount
)

// itemForm is the add/edit input form. For edits, the image field may be
// left blank to keep the stored photo.
type itemForm struct {
	editID int64 // 0 => add
	inputs []textinput.Model
	focus  int
	// Stored blob carried through an edit when no new image path is given.
	currentImage []byte
}

func newAddForm() itemForm {
	f := itemForm{inputs: make([]textinput.Model, fieldCount)}
	labels := [fieldCount]string{"Name", "Price", "Description", "Image path"}
	for i := range f.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = labels[i]
		f.inputs[i] = in
	}
	f.inputs[fieldName].Focus()
	return f
}

func newEditForm(it model.Item) itemForm {
	f := newAddForm()
	f.editID = it.ID
	f.currentImage = it.Image
	f.inputs[fieldName].SetValue(it.Name)
	f.inputs[fieldPrice].SetValue(strconv.FormatFloat(it.Price, 'f', -1, 64))
	f.inputs[fieldDescription].SetValue(it.Description)
	f.inputs[fieldImage].Placeholder = "Image path (blank keeps current photo)"
	return f
}

func (f *itemForm) next() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + 1) % fieldCount
	f.inputs[f.focus].Focus()
}

func (f *itemForm) prev() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus - 1 + fieldCount) % fieldCount
	f.inputs[f.focus].Focus()
}

func (f *itemForm) update(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, 0, fieldCount)
	for i := range f.inputs {
		var cmd tea.Cmd
		f.inputs[i], cmd = f.inputs[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (f itemForm) value(i int) string {
	return strings.TrimSpace(f.inputs[i].Value())
}

func (f itemForm) view(width int) string {
	title := "Add item"
	if f.editID != 0 {
		title = "Edit item"
	}

	label := styleMuted().Width(14)
	active := lipgloss.NewStyle().Foreground(colorAccent)
	labels := [fieldCount]string{"Name", "Price", "Description", "Image path"}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(title))
	b.WriteString("\n\n")
	for i := range f.inputs {
		l := label.Render(labels[i])
		if i == f.focus {
			l = active.Width(14).Render(labels[i])
		}
		b.WriteString(l)
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styleMuted().Render("tab/shift+tab: fields   enter: save   esc: cancel"))
	return lipgloss.NewStyle().Width(width).Render(b.String())
}
