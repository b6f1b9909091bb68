package gallery

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit     key.Binding
	Search   key.Binding
	Submit   key.Binding
	Back     key.Binding
	Prev     key.Binding
	Next     key.Binding
	Up       key.Binding
	Down     key.Binding
	Open     key.Binding
	Add      key.Binding
	Refresh  key.Binding
	Upload   key.Binding
	Close    key.Binding
	Help     key.Binding
	PageJump key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "back"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "h", "["),
			key.WithHelp("←", "previous page"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l", "]"),
			key.WithHelp("→", "next page"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k", "shift+tab"),
			key.WithHelp("↑", "previous card"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "tab"),
			key.WithHelp("↓", "next card"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add card"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Upload: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "upload"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		PageJump: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "go to page"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Prev, k.Next, k.Open, k.Add, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Search, k.Submit, k.Back, k.Refresh},
		{k.Prev, k.Next, k.PageJump},
		{k.Up, k.Down, k.Open},
		{k.Add, k.Upload, k.Close},
		{k.Help, k.Quit},
	}
}
