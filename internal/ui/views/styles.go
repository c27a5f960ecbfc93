package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Dim           lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	Scroll        lipgloss.Style
	Query         lipgloss.Style
	Header        lipgloss.Style
	Cell          lipgloss.Style
	Border        lipgloss.Style
	SelectionBg   lipgloss.Style
	PageCurrent   lipgloss.Style
	PageLink      lipgloss.Style
	PageDisabled  lipgloss.Style
	Sidebar       lipgloss.Style
	SidebarItem   lipgloss.Style
	SidebarActive lipgloss.Style
	StatusError   lipgloss.Style
	StatusLoading lipgloss.Style
	StatusSuccess lipgloss.Style
	Popup         lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Dim:  lipgloss.NewStyle().Faint(true),
		Help: lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(1, 2),
		Scroll:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Query:       lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Header:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).Padding(0, 1),
		Cell:        lipgloss.NewStyle().Padding(0, 1),
		Border:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		SelectionBg: lipgloss.NewStyle().Background(lipgloss.Color("238")).Padding(0, 1),
		PageCurrent: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("226")),
		PageLink:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		PageDisabled: lipgloss.NewStyle().
			Foreground(lipgloss.Color("238")),
		Sidebar: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(lipgloss.Color("241")).
			PaddingRight(1).
			MarginRight(1),
		SidebarItem:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		SidebarActive: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		Popup: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2).
			BorderForeground(lipgloss.Color("241")),
	}
}

// GetStatusColor returns the color for a book, user or transaction status
func GetStatusColor(status string) string {
	switch strings.ToUpper(status) {
	case "AVAILABLE", "ACTIVE", "RETURNED":
		return "78" // green
	case "ISSUED", "RESERVED", "RENEWED":
		return "214" // yellow
	case "OVERDUE", "LOST", "DAMAGED", "INACTIVE", "SUSPENDED":
		return "203" // red
	default:
		return "252"
	}
}
