package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	introStart = iota
	introLeaderboard
	introQuit
)

var introButtons = []string{"Start Game", "Leaderboard", "Quit"}

// IntroModel holds the state for the main menu.
type IntroModel struct {
	selected int
	width    int
	height   int
}

func NewIntroModel(w, h int) IntroModel {
	return IntroModel{selected: introStart, width: w, height: h}
}

func (m IntroModel) Init() tea.Cmd { return nil }

func (m IntroModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, menuKeys.Prev):
			m.selected = cycle(m.selected, -1, len(introButtons))
		case key.Matches(msg, menuKeys.Next):
			m.selected = cycle(m.selected, 1, len(introButtons))
		case key.Matches(msg, menuKeys.Confirm):
			selected := m.selected
			return m, func() tea.Msg { return IntroSubmitMsg(selected) }
		}
	}
	return m, nil
}

var snakeAscii = `
 ███████  ███    ██   █████   ██   ██  ███████
 ██       ████   ██  ██   ██  ██  ██   ██
 ███████  ██ ██  ██  ███████  █████    █████
      ██  ██  ██ ██  ██   ██  ██  ██   ██
 ███████  ██   ████  ██   ██  ██   ██  ███████
`

var (
	asciiStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("87"))

	introButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("250")).
				Padding(0, 3).
				Margin(1, 2).
				Border(lipgloss.RoundedBorder())

	introSelectedButtonStyle = introButtonStyle.
					Background(lipgloss.Color("87")).
					Foreground(lipgloss.Color("0"))
)

func (m IntroModel) View() string {
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(asciiStyle.Render(snakeAscii))
	sb.WriteString("\n")

	buttons := make([]string, len(introButtons))
	for i, label := range introButtons {
		if i == m.selected {
			buttons[i] = introSelectedButtonStyle.Render(label)
		} else {
			buttons[i] = introButtonStyle.Render(label)
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		sb.String(),
		lipgloss.JoinHorizontal(lipgloss.Center, buttons...),
	)

	return lipgloss.Place(m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
}
