package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
)

// GameManager is one player's game: scene registry, map data, the live
// stage and the collaborators they use. It is built once per terminal
// session and only touched from that session's update loop.
type GameManager struct {
	Scenes    *SceneManager
	Data      *DataManager
	Sound     SoundPlayer
	Scores    ScoreRecorder
	Autopilot Autopilot

	PlayerName string
	Stage      *Stage
	LastRun    RunResult

	runFeeds int
	rng      *rand.Rand
}

type Option func(*GameManager)

func WithSound(s SoundPlayer) Option {
	return func(gm *GameManager) { gm.Sound = s }
}

func WithScores(r ScoreRecorder) Option {
	return func(gm *GameManager) { gm.Scores = r }
}

func WithStageAutopilot(a Autopilot) Option {
	return func(gm *GameManager) { gm.Autopilot = a }
}

func WithRand(rng *rand.Rand) Option {
	return func(gm *GameManager) { gm.rng = rng }
}

func NewGameManager(scenes *SceneManager, data *DataManager, opts ...Option) *GameManager {
	gm := &GameManager{
		Scenes:     scenes,
		Data:       data,
		Sound:      NopSound{},
		PlayerName: "anonymous",
	}
	for _, opt := range opts {
		opt(gm)
	}
	if gm.rng == nil {
		gm.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return gm
}

// ChangeScene activates a scene and runs its entry work.
func (gm *GameManager) ChangeScene(name string) error {
	scene, ok := gm.Scenes.Get(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrSceneNotFound, name)
	}

	switch scene.Kind {
	case SceneStage:
		if gm.Scenes.Active().Kind != SceneStage {
			gm.runFeeds = 0
		}
		info, err := gm.Data.GetMapData(scene.MapName)
		if err != nil {
			return err
		}
		opts := []StageOption{}
		if gm.Autopilot != nil {
			opts = append(opts, WithAutopilot(gm.Autopilot))
		}
		gm.Stage = NewStage(scene.Name, info, gm.Data, gm.Sound, gm.rng, opts...)
		gm.Stage.Start()
	case SceneDead:
		gm.Stage = nil
		gm.Sound.Play(EndingBackgroundMusic)
	case SceneClear:
		gm.Stage = nil
		gm.Sound.Play(ClearBackgroundMusic)
	case SceneMenu:
		gm.Stage = nil
	}

	if err := gm.Scenes.ChangeScene(name); err != nil {
		return err
	}
	log.Info("Scene entered", "scene", scene.Name, "kind", scene.Kind, "player", gm.PlayerName)
	return nil
}

// Tick runs one frame of the active stage and follows its outcome: death
// goes to the Dead scene, a clear goes to the stage's Next scene.
func (gm *GameManager) Tick(dir Direction) (StageEvent, error) {
	scene := gm.Scenes.Active()
	if scene.Kind != SceneStage || gm.Stage == nil {
		return EventNone, nil
	}

	event := gm.Stage.Update(dir)
	switch event {
	case EventDead:
		gm.runFeeds += gm.Data.Active().CurrentFeedCount
		gm.finishRun(scene, false)
		return event, gm.ChangeScene(DeadSceneName)
	case EventCleared:
		gm.runFeeds += gm.Data.Active().CurrentFeedCount
		next, ok := gm.Scenes.Get(scene.Next)
		if ok && next.Kind == SceneClear {
			gm.finishRun(scene, true)
		}
		return event, gm.ChangeScene(scene.Next)
	}
	return event, nil
}

// Confirm leaves the menu, death or clear screen for its Next scene.
func (gm *GameManager) Confirm() error {
	scene := gm.Scenes.Active()
	switch scene.Kind {
	case SceneMenu, SceneDead, SceneClear:
		return gm.ChangeScene(scene.Next)
	}
	return nil
}

func (gm *GameManager) finishRun(scene Scene, cleared bool) {
	gm.LastRun = RunResult{
		PlayerName: gm.PlayerName,
		Stage:      scene.Name,
		Feeds:      gm.runFeeds,
		Cleared:    cleared,
	}
	if gm.Scores == nil {
		return
	}
	if err := gm.Scores.SaveRun(gm.LastRun); err != nil {
		log.Error("Run persist failed", "player", gm.PlayerName, "error", err)
	}
}
