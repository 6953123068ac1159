package tui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"suitcase-cli/internal/model"
	"suitcase-cli/internal/mutate"
	"suitcase-cli/internal/notify"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type view int

const (
	viewList view = iota
	viewForm
	viewDetail
	viewDelegate
)

type appModel struct {
	cmds *mutate.Commands

	width  int
	height int

	view view

	itemsList list.Model
	form      itemForm
	phone     textinput.Model

	// Identity of the record a detail/delegate view is pinned to. Row
	// positions go stale the moment the list changes; ids do not.
	detailID   int64
	delegateID int64

	status    string
	statusErr bool
}

// Run starts the interactive checklist over an already-loaded command layer.
func Run(cmds *mutate.Commands) error {
	applyColorProfilePreference()
	applyThemePreference()

	p := tea.NewProgram(newAppModel(cmds), tea.WithAltScreen(), tea.WithReportFocus())
	_, err := p.Run()
	return err
}

func newAppModel(cmds *mutate.Commands) appModel {
	m := appModel{
		cmds: cmds,
		view: viewList,
	}
	m.itemsList = newList("Items", toListItems(cmds.List().Items()))

	m.phone = textinput.New()
	m.phone.Prompt = ""
	m.phone.Placeholder = "Phone number"
	return m
}

func (m appModel) Init() tea.Cmd { return nil }

func (m *appModel) refreshList() {
	m.itemsList.SetItems(toListItems(m.cmds.List().Items()))
}

func (m *appModel) reload() {
	if err := m.cmds.Reload(context.Background()); err != nil {
		m.setErr(err)
		return
	}
	m.refreshList()
}

func (m *appModel) setErr(err error) {
	m.status = err.Error()
	m.statusErr = true
}

func (m *appModel) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m appModel) selectedItem() (model.Item, bool) {
	it, ok := m.itemsList.SelectedItem().(checklistItem)
	if !ok {
		return model.Item{}, false
	}
	return it.item, true
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.itemsList.SetSize(msg.Width, max(msg.Height-3, 1))
		return m, nil

	case tea.FocusMsg:
		// Same idea as reloading on resume: absorb anything another
		// invocation changed while the terminal was in the background.
		m.reload()
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case viewForm:
			return m.updateForm(msg)
		case viewDetail:
			return m.updateDetail(msg)
		case viewDelegate:
			return m.updateDelegate(msg)
		default:
			return m.updateList(msg)
		}
	}

	var cmd tea.Cmd
	m.itemsList, cmd = m.itemsList.Update(msg)
	return m, cmd
}

func (m appModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While the list filter input is active, every key belongs to it.
	if m.itemsList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.itemsList, cmd = m.itemsList.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "r":
		m.reload()
		m.setStatus("reloaded")
		return m, nil

	case "a":
		m.form = newAddForm()
		m.view = viewForm
		return m, nil

	case "e":
		it, ok := m.selectedItem()
		if !ok {
			return m, nil
		}
		m.form = newEditForm(it)
		m.view = viewForm
		return m, nil

	case "enter":
		it, ok := m.selectedItem()
		if !ok {
			return m, nil
		}
		m.detailID = it.ID
		m.view = viewDetail
		return m, nil

	case "s":
		it, ok := m.selectedItem()
		if !ok {
			return m, nil
		}
		m.delegateID = it.ID
		m.phone.SetValue("")
		m.phone.Focus()
		m.view = viewDelegate
		return m, nil

	case "d", "x":
		it, ok := m.selectedItem()
		if !ok {
			return m, nil
		}
		if err := m.cmds.Delete(context.Background(), it.ID); err != nil {
			m.setErr(err)
			return m, nil
		}
		m.refreshList()
		m.setStatus(fmt.Sprintf("deleted %q", it.Name))
		return m, nil

	case " ", "p":
		it, ok := m.selectedItem()
		if !ok {
			return m, nil
		}
		toggled, err := m.cmds.TogglePurchased(context.Background(), it.ID)
		if err != nil {
			m.setErr(err)
			return m, nil
		}
		m.refreshList()
		if toggled.Purchased {
			m.setStatus(fmt.Sprintf("%q marked as purchased", toggled.Name))
		} else {
			m.setStatus(fmt.Sprintf("%q marked as not purchased", toggled.Name))
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.itemsList, cmd = m.itemsList.Update(msg)
	return m, cmd
}

func (m appModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.view = viewList
		return m, nil
	case "tab", "down":
		m.form.next()
		return m, nil
	case "shift+tab", "up":
		m.form.prev()
		return m, nil
	case "enter":
		m.submitForm()
		return m, nil
	}
	cmd := m.form.update(msg)
	return m, cmd
}

func (m *appModel) submitForm() {
	name := m.form.value(fieldName)
	price := m.form.value(fieldPrice)
	description := m.form.value(fieldDescription)
	imagePath := m.form.value(fieldImage)

	image := m.form.currentImage
	if imagePath != "" {
		b, err := os.ReadFile(imagePath)
		if err != nil {
			m.setErr(err)
			return
		}
		image = b
	}

	ctx := context.Background()
	if m.form.editID == 0 {
		it, err := m.cmds.Add(ctx, name, price, description, image)
		if err != nil {
			m.setErr(err)
			return
		}
		m.setStatus(fmt.Sprintf("added %q", it.Name))
	} else {
		it, err := m.cmds.Update(ctx, m.form.editID, name, price, description, image)
		if err != nil {
			var nf mutate.NotFoundError
			if errors.As(err, &nf) {
				// Gone underneath us; resync rather than leaving a ghost row.
				m.reload()
			}
			m.setErr(err)
			return
		}
		m.setStatus(fmt.Sprintf("updated %q", it.Name))
	}
	m.refreshList()
	m.view = viewList
}

func (m appModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "enter":
		m.view = viewList
		return m, nil
	case "e":
		if it, ok := m.lookup(m.detailID); ok {
			m.form = newEditForm(it)
			m.view = viewForm
		}
		return m, nil
	}
	return m, nil
}

func (m appModel) updateDelegate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.view = viewList
		return m, nil
	case "enter":
		it, ok := m.lookup(m.delegateID)
		if !ok {
			m.setErr(mutate.NotFoundError{ID: m.delegateID})
			m.view = viewList
			return m, nil
		}
		var buf bytes.Buffer
		n := notify.WriterNotifier{W: &buf}
		if err := n.Send(context.Background(), m.phone.Value(), notify.ItemMessage(it.Snapshot())); err != nil {
			m.setErr(err)
			return m, nil
		}
		m.setStatus(strings.ReplaceAll(strings.TrimSpace(buf.String()), "\n", "  "))
		m.view = viewList
		return m, nil
	}
	var cmd tea.Cmd
	m.phone, cmd = m.phone.Update(msg)
	return m, cmd
}

// lookup resolves an id against the current projection.
func (m appModel) lookup(id int64) (model.Item, bool) {
	idx := m.cmds.List().IndexOf(id)
	if idx < 0 {
		return model.Item{}, false
	}
	it, err := m.cmds.List().At(idx)
	if err != nil {
		return model.Item{}, false
	}
	return it, true
}

func (m appModel) View() string {
	var body string
	switch m.view {
	case viewForm:
		body = m.form.view(m.width)
	case viewDetail:
		body = m.detailView()
	case viewDelegate:
		body = m.delegateView()
	default:
		if m.cmds.List().Len() == 0 {
			body = styleMuted().Render("\n  No items yet. Press 'a' to add one.")
		} else {
			body = m.itemsList.View()
		}
	}

	status := m.statusLine()
	footer := m.footer()
	return lipgloss.JoinVertical(lipgloss.Left, body, status, footer)
}

func (m appModel) detailView() string {
	it, ok := m.lookup(m.detailID)
	if !ok {
		return styleMuted().Render("item no longer exists")
	}

	state := "not purchased"
	stateStyle := styleMuted()
	if it.Purchased {
		state = "purchased"
		stateStyle = lipgloss.NewStyle().Foreground(colorDoneFg)
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(it.Name))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Price: %.2f   %s   photo: %d bytes\n", it.Price, stateStyle.Render(state), len(it.Image)))
	b.WriteString("\n")
	b.WriteString(renderMarkdown(it.Description, max(m.width-4, 10)))
	b.WriteString("\n\n")
	b.WriteString(styleMuted().Render("e: edit   esc: back"))
	return b.String()
}

func (m appModel) delegateView() string {
	it, ok := m.lookup(m.delegateID)
	if !ok {
		return styleMuted().Render("item no longer exists")
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Delegate " + it.Name))
	b.WriteString("\n\n")
	b.WriteString("Send to: ")
	b.WriteString(m.phone.View())
	b.WriteString("\n\n")
	b.WriteString(styleMuted().Render(notify.ItemMessage(it.Snapshot())))
	b.WriteString("\n\n")
	b.WriteString(styleMuted().Render("enter: compose   esc: cancel"))
	return b.String()
}

func (m appModel) statusLine() string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return lipgloss.NewStyle().Foreground(colorErrorFg).Render(m.status)
	}
	return styleMuted().Render(m.status)
}

func (m appModel) footer() string {
	return styleMuted().Render("a:add  e:edit  d:delete  space:toggle  enter:detail  s:delegate  r:reload  q:quit")
}
