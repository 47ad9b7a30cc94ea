package dashboard

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the list-mode bindings. It implements help.KeyMap.
type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	NextFilter key.Binding
	FilterAll  key.Binding
	FilterPend key.Binding
	FilterPass key.Binding
	FilterFail key.Binding
	New        key.Binding
	Pass       key.Binding
	Fail       key.Binding
	Reset      key.Binding
	Remove     key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		NextFilter: key.NewBinding(key.WithKeys("tab", "f"), key.WithHelp("tab/f", "next filter")),
		FilterAll:  key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "all")),
		FilterPend: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "pending")),
		FilterPass: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "pass")),
		FilterFail: key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "fail")),
		New:        key.NewBinding(key.WithKeys("n", "a"), key.WithHelp("n", "new test")),
		Pass:       key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "mark pass")),
		Fail:       key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "mark fail")),
		Reset:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Remove:     key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "remove")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextFilter, k.New, k.Pass, k.Fail, k.Reset, k.Remove, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextFilter},
		{k.FilterAll, k.FilterPend, k.FilterPass, k.FilterFail},
		{k.New, k.Pass, k.Fail, k.Reset, k.Remove},
		{k.Help, k.Quit},
	}
}

// formKeyMap holds the creation form bindings.
type formKeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Submit key.Binding
	Cancel key.Binding
}

func defaultFormKeyMap() formKeyMap {
	return formKeyMap{
		Next:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
		Submit: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

func (k formKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Submit, k.Cancel}
}

func (k formKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
