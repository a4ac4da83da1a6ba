// Package tui is the interactive front end: a full-screen list whose key
// actions are turned into commands and applied to the task list.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/todo/internal/command"
	"github.com/Makepad-fr/todo/internal/model"
	"github.com/Makepad-fr/todo/internal/todo"
	"github.com/Makepad-fr/todo/internal/ui"
)

// Options configures Run.
type Options struct {
	In    io.Reader
	Out   io.Writer
	Theme ui.Theme

	// OnApply is called after each command that succeeded.
	OnApply func(command.Command[model.Text])
}

// Run shows tasks until the user quits and returns how many commands were
// applied. Saving is left to the caller.
func Run(tasks *todo.List[model.Text], opts Options) (int, error) {
	m := New(tasks, opts.Theme)
	m.onApply = opts.OnApply

	var popts []tea.ProgramOption
	popts = append(popts, tea.WithAltScreen())
	if opts.In != nil {
		popts = append(popts, tea.WithInput(opts.In))
	}
	if opts.Out != nil {
		popts = append(popts, tea.WithOutput(opts.Out))
	}

	final, err := tea.NewProgram(m, popts...).Run()
	if fm, ok := final.(Model); ok {
		return fm.applied, err
	}
	return m.applied, err
}

type mode int

const (
	browsing mode = iota
	adding
	editing
)

// listItem adapts a task to bubbles/list.Item. Pos is its display position
// in the task list, which stays correct while the view is filtered.
type listItem struct {
	Pos  command.Position
	Text string
}

func (i listItem) FilterValue() string { return i.Text }

var (
	addKey    = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	editKey   = key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit"))
	removeKey = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "remove"))
)

// Model implements tea.Model.
type Model struct {
	tasks *todo.List[model.Text]
	theme ui.Theme

	list list.Model
	ti   textinput.Model
	mode mode

	editPos command.Position
	status  string // last error or validation message

	applied int
	onApply func(command.Command[model.Text])
	width   int
	height  int
}

// New builds a model over tasks.
func New(tasks *todo.List[model.Text], theme ui.Theme) Model {
	l := list.New(nil, itemDelegate{theme: theme}, 0, 0)
	l.Title = tasks.Owner() + "'s To-Do List"
	l.SetShowHelp(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetStatusBarItemName("task", "tasks")
	l.Styles.Title = theme.Title
	l.Styles.HelpStyle = theme.Muted
	l.Styles.PaginationStyle = theme.Muted
	l.FilterInput.Prompt = "/ "
	l.AdditionalShortHelpKeys = func() []key.Binding { return []key.Binding{addKey, editKey, removeKey} }
	l.AdditionalFullHelpKeys = l.AdditionalShortHelpKeys

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200

	m := Model{tasks: tasks, theme: theme, list: l, ti: ti, width: 80, height: 24}
	m.resize()
	m.sync()
	return m
}

// Applied returns how many commands have been applied so far.
func (m Model) Applied() int { return m.applied }

// Status returns the message shown under the list, if any.
func (m Model) Status() string { return m.status }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
		m.resize()
		return m, nil
	}
	switch m.mode {
	case adding, editing:
		return m.updateInput(msg)
	}

	if km, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch km.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "a":
			m.mode = adding
			m.status = ""
			m.ti.SetValue("")
			m.ti.Placeholder = "New task..."
			m.resize()
			return m, m.ti.Focus()
		case "e":
			it, ok := m.list.SelectedItem().(listItem)
			if !ok {
				return m, nil
			}
			m.mode = editing
			m.status = ""
			m.editPos = it.Pos
			m.ti.SetValue(it.Text)
			m.ti.CursorEnd()
			m.ti.Placeholder = "Edit task..."
			m.resize()
			return m, m.ti.Focus()
		case "d":
			it, ok := m.list.SelectedItem().(listItem)
			if !ok {
				return m, nil
			}
			return m, m.apply(command.Remove[model.Text](it.Pos))
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "enter":
			text := model.NewText(m.ti.Value())
			if text.Empty() {
				m.status = "Task text cannot be empty"
				return m, nil
			}
			var c command.Command[model.Text]
			if m.mode == adding {
				c = command.Add(text)
			} else {
				c = command.Modify(m.editPos, text)
			}
			m.leaveInput()
			cmd := m.apply(c)
			if c.Kind() == command.KindAdd && m.status == "" {
				m.list.Select(len(m.list.Items()) - 1)
			}
			return m, cmd
		case "esc", "ctrl+c":
			m.leaveInput()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m *Model) leaveInput() {
	m.mode = browsing
	m.ti.SetValue("")
	m.ti.Blur()
	m.resize()
}

// apply runs c against the task list and refreshes the view. Failures are
// shown in the status line; the list is left as it was.
func (m *Model) apply(c command.Command[model.Text]) tea.Cmd {
	if err := m.tasks.Apply(c, io.Discard); err != nil {
		m.status = err.Error()
		return nil
	}
	m.status = ""
	m.applied++
	if m.onApply != nil {
		m.onApply(c)
	}
	return m.sync()
}

// sync rebuilds the view's items from the task list.
func (m *Model) sync() tea.Cmd {
	tasks := m.tasks.Tasks()
	items := make([]list.Item, len(tasks))
	for i, t := range tasks {
		items[i] = listItem{Pos: command.Position(i + 1), Text: t.String()}
	}
	idx := m.list.Index()
	cmd := m.list.SetItems(items)
	if idx >= len(items) {
		idx = len(items) - 1
	}
	if idx >= 0 {
		m.list.Select(idx)
	}
	return cmd
}

func (m *Model) resize() {
	h := m.height - 4
	if m.mode != browsing {
		h -= 4
	}
	if h < 1 {
		h = 1
	}
	m.list.SetSize(max(m.width-4, 1), h)
}

// View implements tea.Model.
func (m Model) View() string {
	content := m.list.View()
	if m.mode != browsing {
		title := "Add task"
		if m.mode == editing {
			title = fmt.Sprintf("Edit task %d", m.editPos)
		}
		bar := lipgloss.NewStyle().
			Border(m.theme.Border).
			BorderForeground(m.theme.BorderStyle.GetForeground()).
			Padding(0, 1)
		content += "\n" + bar.Render(m.theme.Accent.Render(title)+"\n"+m.ti.View())
	}
	if m.status != "" {
		content += "\n" + m.theme.Error.Render(m.status)
	}
	frame := lipgloss.NewStyle().
		Border(m.theme.Border).
		BorderForeground(m.theme.BorderStyle.GetForeground()).
		Padding(0, 1)
	return frame.Render(content)
}

// itemDelegate renders one task per line.
type itemDelegate struct {
	theme ui.Theme
}

func (d itemDelegate) Height() int                         { return 1 }
func (d itemDelegate) Spacing() int                        { return 0 }
func (d itemDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	prefix := "  "
	text := strings.ReplaceAll(it.Text, "\n", " ")
	if index == m.Index() {
		prefix = d.theme.Accent.Render("> ")
		text = d.theme.Title.Render(text)
	}
	fmt.Fprintf(w, "%s%s %s", prefix, d.theme.Index.Render(fmt.Sprintf("%3d.", it.Pos)), text)
}
