package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyMap holds every binding the search screen reacts to. Printable keys are
// left to the query input.
type keyMap struct {
	Up              key.Binding
	Down            key.Binding
	PrevPage        key.Binding
	NextPage        key.Binding
	FirstPage       key.Binding
	LastPage        key.Binding
	Open            key.Binding
	Refresh         key.Binding
	NextResource    key.Binding
	PrevResource    key.Binding
	ToggleSidebar   key.Binding
	CollapseSidebar key.Binding
	Help            key.Binding
	Quit            key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "previous row"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "next row"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("left", "pgup"),
			key.WithHelp("←/pgup", "previous page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("right", "pgdown"),
			key.WithHelp("→/pgdn", "next page"),
		),
		FirstPage: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("home", "first page"),
		),
		LastPage: key.NewBinding(
			key.WithKeys("end"),
			key.WithHelp("end", "last page"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "refresh"),
		),
		NextResource: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next collection"),
		),
		PrevResource: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous collection"),
		),
		ToggleSidebar: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "sidebar"),
		),
		CollapseSidebar: key.NewBinding(
			key.WithKeys("ctrl+b"),
			key.WithHelp("ctrl+b", "collapse sidebar"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevPage, k.NextPage, k.Open, k.NextResource, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Open},
		{k.PrevPage, k.NextPage, k.FirstPage, k.LastPage},
		{k.Refresh, k.NextResource, k.PrevResource},
		{k.ToggleSidebar, k.CollapseSidebar, k.Help, k.Quit},
	}
}
