package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	ForceQuit key.Binding
	Quit      key.Binding

	// Wizard
	Next     key.Binding
	Prev     key.Binding
	Finish   key.Binding
	Browse   key.Binding
	Complete key.Binding

	// Home
	Up      key.Binding
	Down    key.Binding
	Toggle  key.Binding
	Rescan  key.Binding
	Install key.Binding
	Launch  key.Binding
	Setup   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "Quit")),
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "Quit")),
		Next:      key.NewBinding(key.WithKeys("enter", "ctrl+n"), key.WithHelp("enter", "Next")),
		Prev:      key.NewBinding(key.WithKeys("esc", "ctrl+p"), key.WithHelp("esc", "Previous")),
		Finish:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "Finish")),
		Browse:    key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "Browse")),
		Complete:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "Complete")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "Up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "Down")),
		Toggle:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "Toggle mod")),
		Rescan:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "Rescan")),
		Install:   key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "Install loader")),
		Launch:    key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "Launch")),
		Setup:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "Setup")),
	}
}

// renderFooter renders the key hints for the given bindings
func renderFooter(styles Styles, bindings ...key.Binding) string {
	separator := styles.Separator.Render(" · ")

	var commands []string
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		help := b.Help()
		commands = append(commands, fmt.Sprintf("%s %s", styles.Key.Render(help.Key), help.Desc))
	}
	return strings.Join(commands, separator)
}
