package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit     key.Binding
	Entry    key.Binding
	Records  key.Binding
	Charts   key.Binding
	NextPage key.Binding
	Submit   key.Binding
	Export   key.Binding
	Clear    key.Binding
	Next     key.Binding
	Prev     key.Binding
	Toggle   key.Binding
	Search   key.Binding
	Back     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Entry:    key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "entry")),
		Records:  key.NewBinding(key.WithKeys("f2"), key.WithHelp("f2", "records")),
		Charts:   key.NewBinding(key.WithKeys("f3"), key.WithHelp("f3", "charts")),
		NextPage: key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "next page")),
		Submit:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "add staff")),
		Export:   key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "export")),
		Clear:    key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "clear all")),
		Next:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		Prev:     key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
		Toggle:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle task")),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "done")),
	}
}

// pageKeys adapts the key map to help.KeyMap for the active page.
type pageKeys struct {
	keys keyMap
	page page
}

func (p pageKeys) ShortHelp() []key.Binding {
	switch p.page {
	case pageEntry:
		return []key.Binding{p.keys.Next, p.keys.Submit, p.keys.Records, p.keys.Charts, p.keys.Export, p.keys.Clear, p.keys.Quit}
	case pageRecords:
		return []key.Binding{p.keys.Search, p.keys.Back, p.keys.Entry, p.keys.Charts, p.keys.Export, p.keys.Clear, p.keys.Quit}
	default:
		return []key.Binding{p.keys.Entry, p.keys.Records, p.keys.Export, p.keys.Clear, p.keys.Quit}
	}
}

func (p pageKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{p.keys.Entry, p.keys.Records, p.keys.Charts, p.keys.NextPage},
		{p.keys.Next, p.keys.Prev, p.keys.Toggle, p.keys.Submit},
		{p.keys.Search, p.keys.Back, p.keys.Export, p.keys.Clear, p.keys.Quit},
	}
}
