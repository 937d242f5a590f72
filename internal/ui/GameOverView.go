package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Mshel/stagesnake/internal/game"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const leaderboardSize = 10

const (
	gameOverContinue = iota
	gameOverLeaderboard
	gameOverExit
)

var gameOverButtons = []string{"MENU", "LEADERBOARD", "EXIT"}

var (
	gameOverButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("250")).
				Padding(0, 3).
				Margin(1, 1).
				Bold(true)

	selectedButtonStyle = gameOverButtonStyle.
				Background(lipgloss.Color("4")).
				Foreground(lipgloss.Color("15"))

	leaderboardHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("236")).
				Padding(0, 1).
				Align(lipgloss.Center)

	leaderboardRowStyle = lipgloss.NewStyle().
				Padding(0, 1)

	leaderboardBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder(), false, false, true, false).
				BorderForeground(lipgloss.Color("8"))
)

// GameOverModel is shown for the Dead and Clear scenes.
type GameOverModel struct {
	GameManager     *game.GameManager
	SelectedButton  int
	ShowLeaderboard bool
	ScreenWidth     int
	ScreenHeight    int

	scores    []game.Score
	totalRuns int
}

func NewGameOverModel(gm *game.GameManager, w, h int) GameOverModel {
	return GameOverModel{GameManager: gm, ScreenWidth: w, ScreenHeight: h}
}

func (g GameOverModel) Init() tea.Cmd { return nil }

func (g GameOverModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		g.ScreenWidth = msg.Width
		g.ScreenHeight = msg.Height
	case tea.KeyMsg:
		if g.ShowLeaderboard {
			if key.Matches(msg, menuKeys.Back, menuKeys.Confirm) {
				g.ShowLeaderboard = false
			}
			return g, nil
		}

		switch {
		case key.Matches(msg, menuKeys.Prev):
			g.SelectedButton = max(0, g.SelectedButton-1)
		case key.Matches(msg, menuKeys.Next):
			g.SelectedButton = min(len(gameOverButtons)-1, g.SelectedButton+1)
		case key.Matches(msg, menuKeys.Confirm):
			switch g.SelectedButton {
			case gameOverContinue:
				if err := g.GameManager.Confirm(); err != nil {
					return g, func() tea.Msg { return GameErrorMsg{Err: err} }
				}
				return g, func() tea.Msg { return SceneChangedMsg{} }
			case gameOverLeaderboard:
				g.scores, g.totalRuns = loadLeaderboard(g.GameManager)
				g.ShowLeaderboard = true
			case gameOverExit:
				return g, tea.Quit
			}
		}
	}
	return g, nil
}

func (g GameOverModel) View() string {
	if g.ShowLeaderboard {
		return RenderLeaderboardScreen(g.scores, g.totalRuns, g.ScreenWidth, g.ScreenHeight, "Press ESC or ENTER to go back.")
	}

	titleText, titleColor := "💀 G A M E   O V E R 💀", "9"
	if g.GameManager.Scenes.Active().Kind == game.SceneClear {
		titleText, titleColor = "★ A L L   C L E A R ★", "10"
	}
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(titleColor)).
		Padding(2, 5).
		Align(lipgloss.Center).
		Render(titleText)

	run := g.GameManager.LastRun
	stats := fmt.Sprintf("\nFinal Stats:\nPlayer: %s\nReached: %s\nFeeds eaten: %d\n\n", run.PlayerName, run.Stage, run.Feeds)

	buttons := make([]string, len(gameOverButtons))
	for i, label := range gameOverButtons {
		if i == g.SelectedButton {
			buttons[i] = selectedButtonStyle.Render(label)
		} else {
			buttons[i] = gameOverButtonStyle.Render(label)
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Center, title, stats, lipgloss.JoinHorizontal(lipgloss.Center, buttons...))

	return lipgloss.Place(g.ScreenWidth, g.ScreenHeight,
		lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Border(lipgloss.ThickBorder()).Render(content),
	)
}

// loadLeaderboard returns the top runs and how many runs exist in total.
func loadLeaderboard(gm *game.GameManager) ([]game.Score, int) {
	if gm.Scores == nil {
		return nil, 0
	}
	scores, err := gm.Scores.GetHighScores(leaderboardSize, 0)
	if err != nil {
		log.Error("Failed to load leaderboard", "error", err)
		return nil, 0
	}
	total, err := gm.Scores.GetTotalScoreCount()
	if err != nil {
		log.Warn("Failed to count runs", "error", err)
		total = len(scores)
	}
	return scores, total
}

// RenderLeaderboardScreen draws the stored runs as a table.
func RenderLeaderboardScreen(scores []game.Score, totalRuns int, width, height int, instructions string) string {
	var tableContent strings.Builder

	nameWidth := 15
	stageWidth := 10
	feedsWidth := 7
	clearWidth := 7

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		leaderboardHeaderStyle.Width(4).Render("#"),
		leaderboardHeaderStyle.Width(nameWidth).Render("Player"),
		leaderboardHeaderStyle.Width(stageWidth).Render("Stage"),
		leaderboardHeaderStyle.Width(feedsWidth).Render("Feeds"),
		leaderboardHeaderStyle.Width(clearWidth).Render("Clear"),
	)
	tableContent.WriteString(header + "\n")

	if len(scores) == 0 {
		tableContent.WriteString(leaderboardRowStyle.Faint(true).Render("No runs recorded yet") + "\n")
	}

	for i, score := range scores {
		cleared := ""
		if score.Cleared {
			cleared = "★"
		}
		row := lipgloss.JoinHorizontal(lipgloss.Top,
			leaderboardRowStyle.Width(4).Render(strconv.Itoa(i+1)),
			leaderboardRowStyle.Foreground(lipgloss.Color(game.SnakeColor)).Width(nameWidth).Render(score.PlayerName),
			leaderboardRowStyle.Width(stageWidth).Render(score.Stage),
			leaderboardRowStyle.Width(feedsWidth).Render(strconv.Itoa(score.Feeds)),
			leaderboardRowStyle.Width(clearWidth).Render(cleared),
		)
		tableContent.WriteString(leaderboardBorderStyle.Render(row) + "\n")
	}

	if totalRuns > 0 {
		tableContent.WriteString(lipgloss.NewStyle().Faint(true).Render(fmt.Sprintf("%d runs recorded", totalRuns)) + "\n")
	}

	title := lipgloss.NewStyle().Bold(true).Padding(1, 0).Render("👑 LEADERBOARD 👑")
	instruction := lipgloss.NewStyle().Faint(true).Margin(1, 0).Render(instructions)

	finalContent := lipgloss.JoinVertical(lipgloss.Center,
		title,
		tableContent.String(),
		instruction,
	)

	return lipgloss.Place(width, height,
		lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Border(lipgloss.ThickBorder()).Render(finalContent),
	)
}
