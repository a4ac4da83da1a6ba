// Package ui renders everything the CLI shows to the user: status lines and
// the task table.
package ui

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// maxTaskWidth caps how much of a task the table shows.
const maxTaskWidth = 80

// UI writes styled output to a pair of streams.
type UI struct {
	out, errOut io.Writer
	theme       Theme
	errTheme    Theme
}

// New returns a UI for out and errOut using the named theme. Each stream
// gets its own colour detection.
func New(out, errOut io.Writer, themeName string) (*UI, error) {
	t, err := ThemeByName(themeName, lipgloss.NewRenderer(out))
	if err != nil {
		return nil, err
	}
	et, err := ThemeByName(themeName, lipgloss.NewRenderer(errOut))
	if err != nil {
		return nil, err
	}
	return &UI{out: out, errOut: errOut, theme: t, errTheme: et}, nil
}

func (u *UI) Theme() Theme { return u.theme }

func (u *UI) OK(msg string) {
	fmt.Fprintln(u.out, u.theme.Success.Render(u.theme.SymOK+" "+msg))
}

func (u *UI) Fail(msg string) {
	fmt.Fprintln(u.errOut, u.errTheme.Error.Render(u.errTheme.SymFail+" "+msg))
}

// Hint prints a muted follow-up line under a failure.
func (u *UI) Hint(msg string) {
	fmt.Fprintln(u.errOut, u.errTheme.Muted.Render(msg))
}

// Render writes the task table to w. It has the shape of todo.Renderer.
func (u *UI) Render(w io.Writer, owner string, tasks []string) error {
	_, err := io.WriteString(w, u.theme.FormatList(owner, tasks)+"\n")
	return err
}

// FormatList renders owner's tasks, given in display order, as a
// numbered table. An empty list renders as a one-line notice.
func (t Theme) FormatList(owner string, tasks []string) string {
	if len(tasks) == 0 {
		return t.Muted.Render("No tasks to print for " + owner)
	}

	rows := make([][]string, len(tasks))
	for i, task := range tasks {
		rows[i] = []string{strconv.Itoa(i + 1), clip(task, maxTaskWidth)}
	}

	tbl := table.New().
		Border(t.Border).
		BorderStyle(t.BorderStyle).
		Headers("#", "Task").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			var s lipgloss.Style
			switch {
			case row == table.HeaderRow:
				s = t.Accent
			case col == 0:
				s = t.Index
			default:
				s = t.Title.UnsetBold()
			}
			s = s.Padding(0, 1)
			if col == 0 {
				s = s.Align(lipgloss.Right)
			}
			return s
		})

	header := t.Title.Render(owner + "'s To-Do List:")
	return header + "\n\n" + tbl.String()
}

// clip shortens s to at most n runes and flattens line breaks.
func clip(s string, n int) string {
	s = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
