package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	next     key.Binding
	prev     key.Binding
	toggle   key.Binding
	like     key.Binding
	save     key.Binding
	open     key.Binding
	filter   key.Binding
	clearF   key.Binding
	clearT   key.Binding
	refresh  key.Binding
	switchTo key.Binding
	enter    key.Binding
	back     key.Binding
	help     key.Binding
	quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		next:     key.NewBinding(key.WithKeys("down", "j", "right", "l"), key.WithHelp("↓/j", "next")),
		prev:     key.NewBinding(key.WithKeys("up", "k", "left", "h"), key.WithHelp("↑/k", "prev")),
		toggle:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/pause")),
		like:     key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "like")),
		save:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
		open:     key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open")),
		filter:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filters")),
		clearF:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear formation")),
		clearT:   key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "clear play type")),
		refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		switchTo: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch view")),
		enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
		back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.next, k.prev, k.toggle, k.switchTo, k.help, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.next, k.prev, k.toggle},
		{k.like, k.save, k.open},
		{k.filter, k.clearF, k.clearT},
		{k.refresh, k.switchTo, k.quit},
	}
}

// dialogKeys is the help shown while the filter dialog is open.
func (k keyMap) dialogKeys() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "axis")),
		key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "choose")),
		k.enter,
		k.back,
	}
}
