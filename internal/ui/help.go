package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// helpSections groups the bindings shown on the help page
func helpSections(k keyMap) []struct {
	title    string
	bindings []key.Binding
} {
	return []struct {
		title    string
		bindings []key.Binding
	}{
		{"Results", []key.Binding{k.Up, k.Down, k.Open}},
		{"Pages", []key.Binding{k.PrevPage, k.NextPage, k.FirstPage, k.LastPage, k.Refresh}},
		{"Collections", []key.Binding{k.NextResource, k.PrevResource, k.ToggleSidebar, k.CollapseSidebar}},
		{"Other", []key.Binding{k.Help, k.Quit}},
	}
}

// RenderHelpContent generates the help page shown in the pager
func RenderHelpContent(k keyMap) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder

	help.WriteString(titleStyle.Render("Shelfwise Help"))
	help.WriteString("\n")

	help.WriteString(descStyle.Render("Type to search. Results refresh once you stop typing."))
	help.WriteString("\n")

	for _, section := range helpSections(k) {
		help.WriteString(sectionStyle.Render(section.title))
		help.WriteString("\n")
		for _, b := range section.bindings {
			h := b.Help()
			help.WriteString(fmt.Sprintf("  %s  %s\n", keyStyle.Render(fmt.Sprintf("%-10s", h.Key)), descStyle.Render(h.Desc)))
		}
	}

	return help.String()
}
