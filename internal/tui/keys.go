package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Submit     key.Binding
	Ask        key.Binding
	Newline    key.Binding
	Details    key.Binding
	Clear      key.Binding
	Back       key.Binding
	Quit       key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
}

// Enter submits only when pressed without a modifier. alt+enter and ctrl+j
// are bound to the textarea's newline instead.
func defaultKeyMap() keyMap {
	return keyMap{
		Submit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "Ask")),
		Ask:        key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("Ctrl+S", "Ask button")),
		Newline:    key.NewBinding(key.WithKeys("alt+enter", "ctrl+j"), key.WithHelp("Alt+Enter", "New line")),
		Details:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("Tab", "Details")),
		Clear:      key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("Ctrl+L", "Clear")),
		Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("Esc", "Cancel / quit")),
		Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("Ctrl+C", "Quit")),
		ScrollUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("PgUp", "Scroll up")),
		ScrollDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("PgDn", "Scroll down")),
	}
}

func (k keyMap) legend() []key.Binding {
	return []key.Binding{k.Submit, k.Newline, k.Details, k.ScrollUp, k.ScrollDown, k.Clear, k.Back, k.Quit}
}
