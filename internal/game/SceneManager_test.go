package game

import (
	"errors"
	"testing"
)

func TestDefaultScenesChain(t *testing.T) {
	sm, err := DefaultScenes([]string{"Stage1", "Stage2", "Stage3"})
	if err != nil {
		t.Fatalf("DefaultScenes: %v", err)
	}

	want := []Scene{
		{Name: MenuSceneName, Kind: SceneMenu, Next: "Stage1"},
		{Name: "Stage1", Kind: SceneStage, MapName: "Stage1", Next: "Stage2"},
		{Name: "Stage2", Kind: SceneStage, MapName: "Stage2", Next: "Stage3"},
		{Name: "Stage3", Kind: SceneStage, MapName: "Stage3", Next: ClearSceneName},
		{Name: DeadSceneName, Kind: SceneDead, Next: MenuSceneName},
		{Name: ClearSceneName, Kind: SceneClear, Next: MenuSceneName},
	}
	got := sm.Scenes()
	if len(got) != len(want) {
		t.Fatalf("scenes = %+v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("scene %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	if sm.Active().Name != MenuSceneName {
		t.Errorf("active = %s, want %s", sm.Active().Name, MenuSceneName)
	}
	if n := len(sm.Stages()); n != 3 {
		t.Errorf("Stages = %d, want 3", n)
	}
}

func TestDefaultScenesWithoutStages(t *testing.T) {
	sm, err := DefaultScenes(nil)
	if err != nil {
		t.Fatalf("DefaultScenes: %v", err)
	}
	if next := sm.Active().Next; next != ClearSceneName {
		t.Errorf("menu Next = %s, want %s", next, ClearSceneName)
	}
}

func TestSceneManagerRegistry(t *testing.T) {
	sm := NewSceneManager()

	if err := sm.Register(Scene{Name: "A", Kind: SceneMenu}); err != nil {
		t.Fatalf("Register A: %v", err)
	}
	if err := sm.Register(Scene{Name: "B", Kind: SceneDead}); err != nil {
		t.Fatalf("Register B: %v", err)
	}
	if err := sm.Register(Scene{Name: "A", Kind: SceneDead}); !errors.Is(err, ErrDuplicateScene) {
		t.Errorf("duplicate Register error = %v, want ErrDuplicateScene", err)
	}
	if scene, _ := sm.Get("A"); scene.Kind != SceneMenu {
		t.Error("duplicate Register replaced the scene")
	}

	if err := sm.ChangeScene("B"); err != nil {
		t.Fatalf("ChangeScene(B): %v", err)
	}
	if sm.Active().Name != "B" {
		t.Errorf("active = %s, want B", sm.Active().Name)
	}
	if err := sm.ChangeScene("C"); !errors.Is(err, ErrSceneNotFound) {
		t.Errorf("ChangeScene(C) error = %v, want ErrSceneNotFound", err)
	}
	if sm.Active().Name != "B" {
		t.Errorf("failed ChangeScene moved active to %s", sm.Active().Name)
	}
}

func TestSceneKindString(t *testing.T) {
	if SceneStage.String() != "stage" || SceneKind(42).String() != "SceneKind(42)" {
		t.Errorf("unexpected names: %s %s", SceneStage, SceneKind(42))
	}
}
