package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Themes lists the names ThemeByName accepts.
var Themes = []string{"classic", "neon", "mono"}

// Theme bundles palette, symbols and table border.
type Theme struct {
	Name string

	Title, Muted, Accent, Success, Error, Index lipgloss.Style

	Border      lipgloss.Border
	BorderStyle lipgloss.Style

	SymOK, SymFail string
}

// ThemeByName builds the named theme for renderer r. Colours are dropped
// automatically when r's output is not a terminal.
func ThemeByName(name string, r *lipgloss.Renderer) (Theme, error) {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	switch strings.ToLower(name) {
	case "neon":
		return Theme{
			Name:        "neon",
			Title:       r.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
			Muted:       r.NewStyle().Faint(true),
			Accent:      r.NewStyle().Foreground(lipgloss.Color("14")),
			Success:     r.NewStyle().Foreground(lipgloss.Color("10")),
			Error:       r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			Index:       r.NewStyle().Foreground(lipgloss.Color("11")),
			Border:      lipgloss.RoundedBorder(),
			BorderStyle: r.NewStyle().Foreground(lipgloss.Color("13")),
			SymOK:       "✔",
			SymFail:     "✖",
		}, nil
	case "mono":
		plain := r.NewStyle()
		return Theme{
			Name:  "mono",
			Title: plain, Muted: plain, Accent: plain,
			Success: plain, Error: plain, Index: plain,
			Border:      lipgloss.ASCIIBorder(),
			BorderStyle: plain,
			SymOK:       "ok:",
			SymFail:     "error:",
		}, nil
	case "", "classic":
		return Theme{
			Name:        "classic",
			Title:       r.NewStyle().Bold(true),
			Muted:       r.NewStyle().Faint(true),
			Accent:      r.NewStyle().Foreground(lipgloss.Color("12")),
			Success:     r.NewStyle().Foreground(lipgloss.Color("42")),
			Error:       r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			Index:       r.NewStyle().Faint(true),
			Border:      lipgloss.NormalBorder(),
			BorderStyle: r.NewStyle().Foreground(lipgloss.Color("8")),
			SymOK:       "✔",
			SymFail:     "✖",
		}, nil
	}
	return Theme{}, fmt.Errorf("unknown theme %q", name)
}
