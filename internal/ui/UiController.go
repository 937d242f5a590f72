package ui

import (
	"github.com/Mshel/stagesnake/internal/game"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

// Screen is the sub-screen shown while the Menu scene is active. Stage,
// Dead and Clear scenes each have a single view.
type Screen int

const (
	IntroScreen Screen = iota
	SetupScreen
	LeaderboardScreen
)

// Messages for state transitions
type IntroSubmitMsg int

type SetupSubmitMsg struct {
	Name  string
	Stage string
}

// QuitGameMsg returns to the intro menu.
type QuitGameMsg struct{}

type ControllerModel struct {
	CurrentScreen Screen
	GameManager   *game.GameManager

	IntroModel    tea.Model
	SetupModel    tea.Model
	GameModel     tea.Model
	GameOverModel tea.Model

	ScreenWidth  int
	ScreenHeight int

	leaderboard      []game.Score
	leaderboardTotal int
	gen              int
}

func NewControllerModel(gameManager *game.GameManager, screenWidth int, screenHeight int) ControllerModel {
	return ControllerModel{
		GameManager:   gameManager,
		CurrentScreen: IntroScreen,

		IntroModel: NewIntroModel(screenWidth, screenHeight),
		SetupModel: NewInitialSetupModel(gameManager, screenWidth, screenHeight),

		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
	}
}

func (m ControllerModel) Init() tea.Cmd {
	return m.IntroModel.Init()
}

func (m ControllerModel) View() string {
	switch m.GameManager.Scenes.Active().Kind {
	case game.SceneStage:
		if m.GameModel != nil {
			return m.GameModel.View()
		}
		return "Game Loading..."
	case game.SceneDead, game.SceneClear:
		if m.GameOverModel != nil {
			return m.GameOverModel.View()
		}
	}

	switch m.CurrentScreen {
	case IntroScreen:
		return m.IntroModel.View()
	case SetupScreen:
		return m.SetupModel.View()
	case LeaderboardScreen:
		return RenderLeaderboardScreen(m.leaderboard, m.leaderboardTotal, m.ScreenWidth, m.ScreenHeight, "Press ESC or ENTER to return to the menu.")
	default:
		return "Unknown Screen"
	}
}

func (m ControllerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	kind := m.GameManager.Scenes.Active().Kind

	// Typing a name must not quit the game.
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "ctrl+c" || (msg.String() == "q" && !(kind == game.SceneMenu && m.CurrentScreen == SetupScreen)) {
			return m, tea.Quit
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ScreenWidth = msg.Width
		m.ScreenHeight = msg.Height
		m.IntroModel, _ = m.IntroModel.Update(msg)
		m.SetupModel, _ = m.SetupModel.Update(msg)
		if m.GameModel != nil {
			m.GameModel, _ = m.GameModel.Update(msg)
		}
		if m.GameOverModel != nil {
			m.GameOverModel, _ = m.GameOverModel.Update(msg)
		}
		return m, nil

	case IntroSubmitMsg:
		switch int(msg) {
		case introStart:
			m.SetupModel = NewInitialSetupModel(m.GameManager, m.ScreenWidth, m.ScreenHeight)
			m.CurrentScreen = SetupScreen
			return m, m.SetupModel.Init()
		case introLeaderboard:
			m.leaderboard, m.leaderboardTotal = loadLeaderboard(m.GameManager)
			m.CurrentScreen = LeaderboardScreen
			return m, nil
		case introQuit:
			return m, tea.Quit
		}
		return m, nil

	case SetupSubmitMsg:
		if msg.Name != "" {
			m.GameManager.PlayerName = msg.Name
		}
		if err := m.GameManager.ChangeScene(msg.Stage); err != nil {
			return m, func() tea.Msg { return GameErrorMsg{Err: err} }
		}
		return m.enterScene()

	case SceneChangedMsg:
		return m.enterScene()

	case QuitGameMsg:
		m.CurrentScreen = IntroScreen
		return m, m.IntroModel.Init()

	case GameErrorMsg:
		log.Error("Game session failed", "player", m.GameManager.PlayerName, "error", msg.Err)
		return m, tea.Quit
	}

	switch kind {
	case game.SceneStage:
		if m.GameModel != nil {
			m.GameModel, cmd = m.GameModel.Update(msg)
		}
		return m, cmd
	case game.SceneDead, game.SceneClear:
		if m.GameOverModel != nil {
			m.GameOverModel, cmd = m.GameOverModel.Update(msg)
		}
		return m, cmd
	}

	switch m.CurrentScreen {
	case IntroScreen:
		m.IntroModel, cmd = m.IntroModel.Update(msg)
	case SetupScreen:
		m.SetupModel, cmd = m.SetupModel.Update(msg)
	case LeaderboardScreen:
		if msg, ok := msg.(tea.KeyMsg); ok && (msg.String() == "esc" || msg.String() == "enter") {
			m.CurrentScreen = IntroScreen
		}
	}
	return m, cmd
}

// enterScene builds the view for whatever scene the game manager is in now.
func (m ControllerModel) enterScene() (tea.Model, tea.Cmd) {
	switch m.GameManager.Scenes.Active().Kind {
	case game.SceneStage:
		m.gen++
		m.GameModel = NewGameModel(m.GameManager, m.gen, m.ScreenWidth, m.ScreenHeight)
		return m, m.GameModel.Init()
	case game.SceneDead, game.SceneClear:
		m.GameModel = nil
		m.GameOverModel = NewGameOverModel(m.GameManager, m.ScreenWidth, m.ScreenHeight)
		return m, m.GameOverModel.Init()
	default:
		m.GameModel = nil
		m.GameOverModel = nil
		m.CurrentScreen = IntroScreen
		return m, m.IntroModel.Init()
	}
}
