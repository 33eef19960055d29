package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the key bindings for the scene.
type KeyMap struct {
	// Posting
	PostSimple             key.Binding
	PostBackground         key.Binding
	PostError              key.Binding
	PostProgress           key.Binding
	PostBackgroundProgress key.Binding
	Barrage                key.Binding
	Many                   key.Binding

	// Overlay
	Toggle    key.Binding
	Up        key.Binding
	Down      key.Binding
	PrevPage  key.Binding
	NextPage  key.Binding
	Activate  key.Binding
	Dismiss   key.Binding
	Cancel    key.Binding
	ClearTray key.Binding

	// Room
	CycleRoom key.Binding

	// Global
	Quit key.Binding
	Help key.Binding
}

// ShortHelp returns a short help message.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PostSimple, k.PostProgress, k.Toggle, k.Help, k.Quit}
}

// FullHelp returns a full help message.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PostSimple, k.PostBackground, k.PostError, k.PostProgress, k.PostBackgroundProgress},
		{k.Barrage, k.Many, k.Toggle, k.ClearTray},
		{k.Up, k.Down, k.PrevPage, k.NextPage},
		{k.Activate, k.Dismiss, k.Cancel, k.CycleRoom},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		PostSimple: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "simple"),
		),
		PostBackground: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "background"),
		),
		PostError: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "error"),
		),
		PostProgress: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "progress"),
		),
		PostBackgroundProgress: key.NewBinding(
			key.WithKeys("P"),
			key.WithHelp("P", "background progress"),
		),
		Barrage: key.NewBinding(
			key.WithKeys("B"),
			key.WithHelp("B", "barrage"),
		),
		Many: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "ten at once"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("tab", "o"),
			key.WithHelp("tab/o", "toggle overlay"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("[", "left"),
			key.WithHelp("[", "prev page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("]", "right"),
			key.WithHelp("]", "next page"),
		),
		Activate: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "activate"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("x", "d"),
			key.WithHelp("x", "dismiss"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "cancel task"),
		),
		ClearTray: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "clear tray"),
		),
		CycleRoom: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "room status"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}
