package ui

import (
	"strings"

	"github.com/Mshel/stagesnake/internal/game"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	focusedColor = lipgloss.Color("205")
	blurredColor = lipgloss.Color("240")
	focusedStyle = lipgloss.NewStyle().Foreground(focusedColor)
	blurredStyle = lipgloss.NewStyle().Foreground(blurredColor)
	helpStyle    = blurredStyle

	buttonStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder())

	submitButtonStyle = buttonStyle.
				BorderForeground(focusedColor).
				Padding(0, 1)

	blurredButtonStyle = buttonStyle.
				BorderForeground(blurredColor).
				Padding(0, 1)
)

const (
	focusName = iota
	focusStage
	focusSubmit
	focusCount
)

// SetupModel asks for a player name and the stage to start from.
type SetupModel struct {
	nameInput  textinput.Model
	stages     []string
	stageIndex int
	focusIndex int
	width      int
	height     int
}

func NewInitialSetupModel(gameManager *game.GameManager, w, h int) SetupModel {
	ti := textinput.New()
	ti.Placeholder = "Your snake's name"
	ti.Focus()
	ti.CharLimit = 20
	ti.PromptStyle = focusedStyle
	ti.TextStyle = focusedStyle

	stages := []string{}
	for _, scene := range gameManager.Scenes.Stages() {
		stages = append(stages, scene.Name)
	}

	return SetupModel{
		nameInput:  ti,
		stages:     stages,
		focusIndex: focusName,
		width:      w,
		height:     h,
	}
}

func (m SetupModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m SetupModel) setFocus(index int) SetupModel {
	m.focusIndex = cycle(index, 0, focusCount)
	if m.focusIndex == focusName {
		m.nameInput.Focus()
	} else {
		m.nameInput.Blur()
	}
	return m
}

func (m SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			return m, func() tea.Msg { return QuitGameMsg{} }
		case "tab":
			return m.setFocus(m.focusIndex + 1), nil
		case "shift+tab":
			return m.setFocus(m.focusIndex - 1), nil
		case "enter":
			if m.focusIndex != focusSubmit {
				return m.setFocus(m.focusIndex + 1), nil
			}
			if len(m.stages) == 0 {
				return m, nil
			}
			submit := SetupSubmitMsg{
				Name:  strings.TrimSpace(m.nameInput.Value()),
				Stage: m.stages[m.stageIndex],
			}
			return m, func() tea.Msg { return submit }
		}

		if m.focusIndex == focusStage {
			switch msg.String() {
			case "left", "h":
				m.stageIndex = cycle(m.stageIndex, -1, len(m.stages))
			case "right", "l":
				m.stageIndex = cycle(m.stageIndex, 1, len(m.stages))
			}
			return m, nil
		}

		if m.focusIndex == focusName {
			var cmd tea.Cmd
			m.nameInput, cmd = m.nameInput.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m SetupModel) View() string {
	center := func(s string) string {
		return lipgloss.NewStyle().Width(m.width).Align(lipgloss.Center).Render(s)
	}

	var b strings.Builder

	b.WriteString(center(m.nameInput.View()))
	b.WriteString("\n\n")

	stagePrompt := "Starting stage (use arrows)"
	if m.focusIndex == focusStage {
		b.WriteString(center(focusedStyle.Render(stagePrompt)))
	} else {
		b.WriteString(center(blurredStyle.Render(stagePrompt)))
	}
	b.WriteString("\n")

	if len(m.stages) == 0 {
		b.WriteString(center(blurredStyle.Render("no stages loaded")))
	} else {
		picked := "◀ " + m.stages[m.stageIndex] + " ▶"
		if m.focusIndex == focusStage {
			picked = focusedStyle.Bold(true).Render(picked)
		}
		b.WriteString(center(picked))
	}
	b.WriteString("\n\n")

	submitText := "Start"
	if m.focusIndex == focusSubmit {
		b.WriteString(center(submitButtonStyle.Render(submitText)))
	} else {
		b.WriteString(center(blurredButtonStyle.Render(submitText)))
	}
	b.WriteString("\n\n")

	b.WriteString(center(helpStyle.Render("(arrows to pick a stage, tab/shift+tab to navigate, enter to confirm, esc to go back)")))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
}
