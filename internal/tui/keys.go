package tui

import "charm.land/bubbles/v2/key"

type keyMap struct {
	Up, Down, Left, Right key.Binding

	ExtendUp, ExtendDown, ExtendLeft, ExtendRight key.Binding

	Home, End      key.Binding
	PageUp, PageDn key.Binding

	SelectAll key.Binding
	PopRegion key.Binding
	Clear     key.Binding
	Copy      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),

		ExtendUp:    key.NewBinding(key.WithKeys("shift+up", "K"), key.WithHelp("shift+↑", "extend up")),
		ExtendDown:  key.NewBinding(key.WithKeys("shift+down", "J"), key.WithHelp("shift+↓", "extend down")),
		ExtendLeft:  key.NewBinding(key.WithKeys("shift+left", "H"), key.WithHelp("shift+←", "extend left")),
		ExtendRight: key.NewBinding(key.WithKeys("shift+right", "L"), key.WithHelp("shift+→", "extend right")),

		Home:   key.NewBinding(key.WithKeys("home", "0"), key.WithHelp("home", "first column")),
		End:    key.NewBinding(key.WithKeys("end", "$"), key.WithHelp("end", "last column")),
		PageUp: key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDn: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),

		SelectAll: key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "select all rows")),
		PopRegion: key.NewBinding(key.WithKeys("backspace"), key.WithHelp("bksp", "drop last region")),
		Clear:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		Copy:      key.NewBinding(key.WithKeys("y", "ctrl+shift+c"), key.WithHelp("y", "copy tsv")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Copy, k.Clear, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.ExtendUp, k.ExtendDown, k.ExtendLeft, k.ExtendRight},
		{k.Home, k.End, k.PageUp, k.PageDn},
		{k.SelectAll, k.PopRegion, k.Clear, k.Copy},
		{k.Help, k.Quit},
	}
}
