// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the reader.
type KeyMap struct {
	// Focus mode
	NextLine  key.Binding
	PrevLine  key.Binding
	NextBlock key.Binding
	PrevBlock key.Binding
	Exit      key.Binding
	Toggle    key.Binding

	// Scrolling (focus mode off)
	ScrollDown   key.Binding
	ScrollUp     key.Binding
	HalfPageDown key.Binding
	HalfPageUp   key.Binding
	Top          key.Binding
	Bottom       key.Binding

	// General
	Help         key.Binding
	ToggleStatus key.Binding
	Quit         key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Focus mode
		NextLine: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "next line"),
		),
		PrevLine: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "previous line"),
		),
		NextBlock: key.NewBinding(
			key.WithKeys("}"),
			key.WithHelp("}", "next block"),
		),
		PrevBlock: key.NewBinding(
			key.WithKeys("{"),
			key.WithHelp("{", "previous block"),
		),
		Exit: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "exit focus"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("f9"),
			key.WithHelp("f9", "toggle focus"),
		),

		// Scrolling
		ScrollDown: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "scroll down"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "scroll up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d", "pgdown"),
			key.WithHelp("ctrl+d", "half page down"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u", "pgup"),
			key.WithHelp("ctrl+u", "half page up"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "bottom"),
		),

		// General
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		ToggleStatus: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "toggle status bar"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextLine, k.PrevLine, k.NextBlock, k.PrevBlock, k.Exit, k.Toggle},      // Focus
		{k.ScrollDown, k.ScrollUp, k.HalfPageDown, k.HalfPageUp, k.Top, k.Bottom}, // Scrolling
		{k.Help, k.ToggleStatus, k.Quit},                                          // General
	}
}
