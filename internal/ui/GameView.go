package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/Mshel/stagesnake/internal/game"
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	voidColor    = "233"
	mapViewStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 0)

	statusPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("8")).
				Padding(1, 2)

	voidStyle = lipgloss.NewStyle().Background(lipgloss.Color(voidColor)).Render(game.FloorIcon)
)

const statusPanelWidth = 30

// frameMsg drives the stage loop. gen ties it to the GameViewModel that
// scheduled it so ticks from an abandoned run are dropped.
type frameMsg struct {
	gen int
}

// SceneChangedMsg tells the controller the active scene left the stage.
type SceneChangedMsg struct{}

// GameErrorMsg carries a failure the session cannot recover from.
type GameErrorMsg struct {
	Err error
}

// mapCanvas implements game.Canvas on a grid of styled cells whose
// top-left corner sits at the active map's console origin.
type mapCanvas struct {
	origin game.Vector2
	cells  [][]string
	styles map[string]lipgloss.Style
}

func newMapCanvas(active game.ActiveMap) *mapCanvas {
	w, h := max(0, active.Width()), max(0, active.Height())
	cells := make([][]string, h)
	for y := range cells {
		cells[y] = make([]string, w)
		for x := range cells[y] {
			cells[y][x] = voidStyle
		}
	}
	return &mapCanvas{
		origin: game.Vector2{X: active.MapMinX(), Y: active.MapMinY()},
		cells:  cells,
		styles: map[string]lipgloss.Style{},
	}
}

func (c *mapCanvas) Set(pos game.Vector2, glyph string, color string) {
	p := pos.Sub(c.origin)
	if p.Y < 0 || p.Y >= len(c.cells) || p.X < 0 || p.X >= len(c.cells[p.Y]) {
		return
	}
	style, ok := c.styles[color]
	if !ok {
		style = lipgloss.NewStyle().Background(lipgloss.Color(voidColor)).Foreground(lipgloss.Color(color))
		c.styles[color] = style
	}
	c.cells[p.Y][p.X] = style.Render(glyph)
}

func (c *mapCanvas) String() string {
	rows := make([]string, len(c.cells))
	for y, row := range c.cells {
		rows[y] = strings.Join(row, "")
	}
	return strings.Join(rows, "\n")
}

// GameViewModel renders the active stage and feeds it keyboard input on
// every frame.
type GameViewModel struct {
	ScreenWidth  int
	ScreenHeight int

	gameManager *game.GameManager
	gen         int
	pending     game.Direction
	help        help.Model
}

func NewGameModel(gm *game.GameManager, gen int, screenWidth int, screenHeight int) GameViewModel {
	return GameViewModel{
		gameManager:  gm,
		gen:          gen,
		pending:      game.None,
		help:         help.New(),
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
	}
}

func (m GameViewModel) Init() tea.Cmd {
	return m.nextFrame()
}

func (m GameViewModel) nextFrame() tea.Cmd {
	gen := m.gen
	return tea.Tick(game.GameTickDuration, func(time.Time) tea.Msg {
		return frameMsg{gen: gen}
	})
}

func (m GameViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ScreenWidth = msg.Width
		m.ScreenHeight = msg.Height
		return m, nil

	case tea.KeyMsg:
		if dir, ok := directionFor(msg); ok {
			m.pending = dir
		}
		return m, nil

	case frameMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		dir := m.pending
		m.pending = game.None

		if _, err := m.gameManager.Tick(dir); err != nil {
			return m, func() tea.Msg { return GameErrorMsg{Err: err} }
		}
		if m.gameManager.Scenes.Active().Kind != game.SceneStage {
			return m, func() tea.Msg { return SceneChangedMsg{} }
		}
		return m, m.nextFrame()
	}

	return m, nil
}

func (m GameViewModel) View() string {
	stage := m.gameManager.Stage
	if stage == nil {
		return lipgloss.Place(m.ScreenWidth, m.ScreenHeight, lipgloss.Center, lipgloss.Center, "Loading stage...")
	}

	canvas := newMapCanvas(stage.Active())
	stage.Render(canvas)

	board := lipgloss.JoinHorizontal(lipgloss.Top,
		mapViewStyle.Render(canvas.String()),
		statusPanelStyle.Width(statusPanelWidth).Render(m.renderStatusPanel(stage)),
	)
	return lipgloss.Place(m.ScreenWidth, m.ScreenHeight, lipgloss.Center, lipgloss.Center, board)
}

// renderStatusPanel draws the stage progress and the controls.
func (m GameViewModel) renderStatusPanel(stage *game.Stage) string {
	var statusContent strings.Builder
	active := stage.Active()
	snake := stage.Snake()

	statusContent.WriteString(lipgloss.NewStyle().Bold(true).Render("--- "+stage.Name+" ---") + "\n")
	nameStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(game.SnakeColor))
	statusContent.WriteString(fmt.Sprintf("%s%s\n", nameStyle.Render("● "), m.gameManager.PlayerName))

	statusContent.WriteString(fmt.Sprintf("Feeds: %d / %d\n", active.CurrentFeedCount, active.NeedFeedCount))
	statusContent.WriteString(fmt.Sprintf("Length: %d\n", snake.Len()))
	statusContent.WriteString(fmt.Sprintf("Direction: %s\n", game.HeadRune(snake.CurrentDirection)))
	statusContent.WriteString(fmt.Sprintf("Frame: %d\n", stage.Frames()))
	if m.gameManager.Autopilot != nil {
		statusContent.WriteString(lipgloss.NewStyle().Faint(true).Render("autopilot engaged") + "\n")
	}

	statusContent.WriteString("\n" + lipgloss.NewStyle().Bold(true).Render("--- Controls ---") + "\n")
	statusContent.WriteString(m.help.View(gameKeys))

	return statusContent.String()
}
