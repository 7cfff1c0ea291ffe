package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Choose key.Binding
	Erase  key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Choose: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "choose"),
		),
		Erase: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("backspace", "erase digit"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q/esc", "abort"),
		),
	}
}
