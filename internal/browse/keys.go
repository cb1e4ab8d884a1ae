package browse

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit      key.Binding
	Focus     key.Binding
	Prev      key.Binding
	Next      key.Binding
	First     key.Binding
	Last      key.Binding
	MoreRows  key.Binding
	FewerRows key.Binding
	Close     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:      key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
		Focus:     key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "search/pages")),
		Prev:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous")),
		Next:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next")),
		First:     key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "first")),
		Last:      key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "last")),
		MoreRows:  key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "page size")),
		FewerRows: key.NewBinding(key.WithKeys("-", "_")),
		Close:     key.NewBinding(key.WithKeys("q")),
	}
}
