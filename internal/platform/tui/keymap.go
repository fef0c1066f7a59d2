package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-dino/internal/input"
)

// KeyMap defines the terminal key bindings.
type KeyMap struct {
	Jump    key.Binding
	Crouch  key.Binding
	Start   key.Binding
	Restart key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Jump, k.Crouch, k.Restart, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Jump, k.Crouch},
		{k.Start, k.Restart, k.Back, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Jump: key.NewBinding(
			key.WithKeys(" ", "up", "w"),
			key.WithHelp("space/↑", "jump"),
		),
		Crouch: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("↓/s", "crouch"),
		),
		Start: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "menu"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// keyNames translates terminal key names to input keys.
var keyNames = map[string]input.Key{
	" ":     input.KeySpace,
	"up":    input.KeyArrowUp,
	"w":     input.KeyW,
	"down":  input.KeyArrowDown,
	"s":     input.KeyS,
	"enter": input.KeyEnter,
	"esc":   input.KeyEscape,
	"r":     input.KeyR,
}

// Resolve maps a key message to the input key it stands for. Keys outside
// the game bindings report ok=false and are ignored.
func (k KeyMap) Resolve(msg tea.KeyMsg) (input.Key, bool) {
	if !key.Matches(msg, k.Jump, k.Crouch, k.Start, k.Restart, k.Back) {
		return "", false
	}
	ik, ok := keyNames[msg.String()]
	return ik, ok
}

// mouseButtons translates terminal mouse buttons to input buttons.
var mouseButtons = map[tea.MouseButton]input.MouseButton{
	tea.MouseButtonLeft:   input.MouseLeft,
	tea.MouseButtonMiddle: input.MouseMiddle,
	tea.MouseButtonRight:  input.MouseRight,
}
