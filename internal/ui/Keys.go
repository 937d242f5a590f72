package ui

import (
	"github.com/Mshel/stagesnake/internal/game"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type gameKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Quit  key.Binding
}

type menuKeyMap struct {
	Prev    key.Binding
	Next    key.Binding
	Confirm key.Binding
	Back    key.Binding
}

var gameKeys = gameKeyMap{
	Up:    key.NewBinding(key.WithKeys("up", "w"), key.WithHelp("↑/w", "up")),
	Down:  key.NewBinding(key.WithKeys("down", "s"), key.WithHelp("↓/s", "down")),
	Left:  key.NewBinding(key.WithKeys("left", "a"), key.WithHelp("←/a", "left")),
	Right: key.NewBinding(key.WithKeys("right", "d"), key.WithHelp("→/d", "right")),
	Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

var menuKeys = menuKeyMap{
	Prev:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous")),
	Next:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next")),
	Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
}

func (k gameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Quit}
}

func (k gameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func (k menuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Confirm, k.Back}
}

func (k menuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// directionFor maps a movement key to a heading. ok is false for any
// other key.
func directionFor(msg tea.KeyMsg) (game.Direction, bool) {
	switch {
	case key.Matches(msg, gameKeys.Up):
		return game.Up, true
	case key.Matches(msg, gameKeys.Down):
		return game.Down, true
	case key.Matches(msg, gameKeys.Left):
		return game.Left, true
	case key.Matches(msg, gameKeys.Right):
		return game.Right, true
	}
	return game.None, false
}

// cycle moves a selection index by delta, wrapping around n entries.
func cycle(index, delta, n int) int {
	if n <= 0 {
		return 0
	}
	return ((index+delta)%n + n) % n
}
