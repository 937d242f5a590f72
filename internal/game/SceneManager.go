package game

import (
	"fmt"

	"github.com/charmbracelet/log"
)

type SceneKind int

const (
	SceneMenu SceneKind = iota
	SceneStage
	SceneDead
	SceneClear
)

func (k SceneKind) String() string {
	switch k {
	case SceneMenu:
		return "menu"
	case SceneStage:
		return "stage"
	case SceneDead:
		return "dead"
	case SceneClear:
		return "clear"
	default:
		return fmt.Sprintf("SceneKind(%d)", int(k))
	}
}

const (
	MenuSceneName  = "Menu"
	DeadSceneName  = "Dead"
	ClearSceneName = "Clear"
)

// Scene is one registered game state. MapName is set for stages; Next names
// the scene that follows a clear (stages) or a confirm (dead, clear).
type Scene struct {
	Name    string
	Kind    SceneKind
	MapName string
	Next    string
}

// SceneManager is the registry of named scenes and the active one.
type SceneManager struct {
	scenes map[string]Scene
	order  []string
	active string
}

func NewSceneManager() *SceneManager {
	return &SceneManager{scenes: make(map[string]Scene)}
}

// DefaultScenes registers Menu, one stage per name in order, Dead and Clear.
// The first registered scene is active.
func DefaultScenes(stageNames []string) (*SceneManager, error) {
	sm := NewSceneManager()

	firstStage := ClearSceneName
	if len(stageNames) > 0 {
		firstStage = stageNames[0]
	}
	if err := sm.Register(Scene{Name: MenuSceneName, Kind: SceneMenu, Next: firstStage}); err != nil {
		return nil, err
	}

	for i, name := range stageNames {
		next := ClearSceneName
		if i+1 < len(stageNames) {
			next = stageNames[i+1]
		}
		if err := sm.Register(Scene{Name: name, Kind: SceneStage, MapName: name, Next: next}); err != nil {
			return nil, err
		}
	}

	if err := sm.Register(Scene{Name: DeadSceneName, Kind: SceneDead, Next: MenuSceneName}); err != nil {
		return nil, err
	}
	if err := sm.Register(Scene{Name: ClearSceneName, Kind: SceneClear, Next: MenuSceneName}); err != nil {
		return nil, err
	}

	return sm, nil
}

func (sm *SceneManager) Register(scene Scene) error {
	if _, exists := sm.scenes[scene.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateScene, scene.Name)
	}
	sm.scenes[scene.Name] = scene
	sm.order = append(sm.order, scene.Name)
	if sm.active == "" {
		sm.active = scene.Name
	}
	return nil
}

func (sm *SceneManager) Get(name string) (Scene, bool) {
	scene, ok := sm.scenes[name]
	return scene, ok
}

// Scenes returns the scenes in registration order.
func (sm *SceneManager) Scenes() []Scene {
	result := make([]Scene, 0, len(sm.order))
	for _, name := range sm.order {
		result = append(result, sm.scenes[name])
	}
	return result
}

// Stages returns the stage scenes in registration order.
func (sm *SceneManager) Stages() []Scene {
	result := []Scene{}
	for _, scene := range sm.Scenes() {
		if scene.Kind == SceneStage {
			result = append(result, scene)
		}
	}
	return result
}

func (sm *SceneManager) Active() Scene {
	return sm.scenes[sm.active]
}

func (sm *SceneManager) ChangeScene(name string) error {
	if _, ok := sm.scenes[name]; !ok {
		return fmt.Errorf("%w: %s", ErrSceneNotFound, name)
	}
	log.Debug("Scene changed", "from", sm.active, "to", name)
	sm.active = name
	return nil
}
