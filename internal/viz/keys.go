package viz

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the player bindings.
type KeyMap struct {
	Play     key.Binding
	Forward  key.Binding
	Back     key.Binding
	MassUp   key.Binding
	MassDown key.Binding
	Seek     key.Binding
	Reset    key.Binding
	Export   key.Binding
	Theme    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Play: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp("space", "play/pause"),
		),
		Forward: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "step"),
		),
		Back: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "back"),
		),
		MassUp: key.NewBinding(
			key.WithKeys("up", "k", "+"),
			key.WithHelp("↑/k", "mass up"),
		),
		MassDown: key.NewBinding(
			key.WithKeys("down", "j", "-"),
			key.WithHelp("↓/j", "mass down"),
		),
		Seek: key.NewBinding(
			key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("0-9", "seek"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r", "home"),
			key.WithHelp("r", "reset"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "theme"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Play, k.MassUp, k.MassDown, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Play, k.Forward, k.Back, k.Seek},
		{k.MassUp, k.MassDown, k.Reset},
		{k.Export, k.Theme, k.Help, k.Quit},
	}
}
