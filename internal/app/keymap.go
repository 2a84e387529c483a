package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines global and area-specific bindings.
type KeyMap struct {
	Quit        key.Binding
	ToggleFocus key.Binding
	Search      key.Binding
	Submit      key.Binding
	Cancel      key.Binding
	RegexMode   key.Binding
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Top         key.Binding
	Bottom      key.Binding
	Toggle      key.Binding
	ExpandAll   key.Binding
	RemoveChip  key.Binding
	ClearChips  key.Binding
	Copy        key.Binding
	Refresh     key.Binding
	Help        key.Binding
}

func defaultKeyMap() KeyMap {
	return KeyMap{
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		ToggleFocus: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "tree/filters")),
		Search:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Submit:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add filter")),
		Cancel:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		RegexMode:   key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "regex mode")),
		Up:          key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/up", "move up")),
		Down:        key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/down", "move down")),
		Left:        key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/left", "previous filter")),
		Right:       key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l/right", "next filter")),
		PageUp:      key.NewBinding(key.WithKeys("ctrl+b", "pgup"), key.WithHelp("ctrl+b", "page up")),
		PageDown:    key.NewBinding(key.WithKeys("ctrl+f", "pgdown"), key.WithHelp("ctrl+f", "page down")),
		Top:         key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Bottom:      key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
		Toggle:      key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "expand/collapse")),
		ExpandAll:   key.NewBinding(key.WithKeys("E"), key.WithHelp("E", "expand all")),
		RemoveChip:  key.NewBinding(key.WithKeys("x", "backspace", "delete"), key.WithHelp("x", "remove filter")),
		ClearChips:  key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "clear filters")),
		Copy:        key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy value")),
		Refresh:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "compare again")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	}
}
