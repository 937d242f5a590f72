package game

import (
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// --- Test fixtures ---

const (
	// One floor cell right of the spawn; the first feed always lands there.
	oneStepMap = "Feed 1\nInterval 100\nBBBB\nBP B\nBBBB\n"
	// Spawn boxed in by walls.
	boxedMap = "Feed 3\nInterval 500\nBBB\nBPB\nBBB\n"
	// No walls, 5x5, spawn in the middle.
	openMap = "Feed 5\nInterval 100\n.....\n.....\n..P..\n.....\n.....\n"
)

func writeMap(t *testing.T, dir, name, content string) {
	t.Helper()
	mapDir := filepath.Join(dir, MapDataDir)
	if err := os.MkdirAll(mapDir, 0o755); err != nil {
		t.Fatalf("creating map dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(mapDir, name+MapFileExtension), []byte(content), 0o644); err != nil {
		t.Fatalf("writing map %s: %v", name, err)
	}
}

func mustParse(t *testing.T, content string) MapInfo {
	t.Helper()
	info, err := ParseMap(strings.NewReader(content))
	if err != nil {
		t.Fatalf("ParseMap: %v", err)
	}
	return info
}

// newTestStage activates info on a fresh data manager and starts a stage.
func newTestStage(t *testing.T, content string, opts ...StageOption) (*Stage, *recordingSound) {
	t.Helper()
	info := mustParse(t, content)
	data := NewDataManager(t.TempDir())
	data.Activate(info)
	sound := &recordingSound{}
	stage := NewStage("Test", info, data, sound, rand.New(rand.NewSource(1)), opts...)
	stage.Start()
	return stage, sound
}

type recordingSound struct {
	played []string
}

func (r *recordingSound) Play(name string) {
	r.played = append(r.played, name)
}

func (r *recordingSound) has(name string) bool {
	for _, p := range r.played {
		if p == name {
			return true
		}
	}
	return false
}

type memoryScores struct {
	runs []RunResult
}

func (m *memoryScores) SaveRun(run RunResult) error {
	m.runs = append(m.runs, run)
	return nil
}

func (m *memoryScores) GetHighScores(limit, offset int) ([]Score, error) {
	return nil, nil
}

func (m *memoryScores) GetTotalScoreCount() (int, error) {
	return len(m.runs), nil
}

func newTestGame(t *testing.T, stages map[string]string, order []string) (*GameManager, *memoryScores, *recordingSound) {
	t.Helper()
	dir := t.TempDir()
	for name, content := range stages {
		writeMap(t, dir, name, content)
	}

	scenes, err := DefaultScenes(order)
	if err != nil {
		t.Fatalf("DefaultScenes: %v", err)
	}
	data := NewDataManager(dir)
	if err := data.LoadScenes(scenes); err != nil {
		t.Fatalf("LoadScenes: %v", err)
	}

	scores := &memoryScores{}
	sound := &recordingSound{}
	gm := NewGameManager(scenes, data,
		WithScores(scores),
		WithSound(sound),
		WithRand(rand.New(rand.NewSource(7))),
	)
	gm.PlayerName = "tester"
	return gm, scores, sound
}

// --- GameManager flow ---

func TestGameManagerClearsEveryStage(t *testing.T) {
	gm, scores, sound := newTestGame(t,
		map[string]string{"Stage1": oneStepMap, "Stage2": oneStepMap},
		[]string{"Stage1", "Stage2"})

	if got := gm.Scenes.Active().Kind; got != SceneMenu {
		t.Fatalf("initial scene kind = %v, want menu", got)
	}
	if err := gm.Confirm(); err != nil {
		t.Fatalf("Confirm from menu: %v", err)
	}
	if got := gm.Scenes.Active().Name; got != "Stage1" {
		t.Fatalf("after menu confirm scene = %s, want Stage1", got)
	}

	event, err := gm.Tick(None)
	if err != nil || event != EventCleared {
		t.Fatalf("Tick on Stage1 = (%v, %v), want (cleared, nil)", event, err)
	}
	if got := gm.Scenes.Active().Name; got != "Stage2" {
		t.Fatalf("after Stage1 clear scene = %s, want Stage2", got)
	}
	if len(scores.runs) != 0 {
		t.Fatalf("run recorded before the last stage: %+v", scores.runs)
	}

	if _, err := gm.Tick(None); err != nil {
		t.Fatalf("Tick on Stage2: %v", err)
	}
	if got := gm.Scenes.Active().Kind; got != SceneClear {
		t.Fatalf("after Stage2 clear scene kind = %v, want clear", got)
	}
	if gm.Stage != nil {
		t.Error("stage should be dropped outside stage scenes")
	}

	want := RunResult{PlayerName: "tester", Stage: "Stage2", Feeds: 2, Cleared: true}
	if len(scores.runs) != 1 || scores.runs[0] != want {
		t.Fatalf("runs = %+v, want [%+v]", scores.runs, want)
	}
	if !sound.has(StageClearSound) || !sound.has(ClearBackgroundMusic) {
		t.Errorf("clear cues missing: %v", sound.played)
	}

	if err := gm.Confirm(); err != nil {
		t.Fatalf("Confirm from clear: %v", err)
	}
	if got := gm.Scenes.Active().Kind; got != SceneMenu {
		t.Errorf("after clear confirm scene kind = %v, want menu", got)
	}
}

func TestGameManagerDeathGoesToDeadScene(t *testing.T) {
	gm, scores, sound := newTestGame(t,
		map[string]string{"Stage1": oneStepMap},
		[]string{"Stage1"})

	if err := gm.ChangeScene("Stage1"); err != nil {
		t.Fatalf("ChangeScene: %v", err)
	}

	event, err := gm.Tick(Up)
	if err != nil || event != EventDead {
		t.Fatalf("Tick into wall = (%v, %v), want (dead, nil)", event, err)
	}
	if got := gm.Scenes.Active().Name; got != DeadSceneName {
		t.Fatalf("scene = %s, want %s", got, DeadSceneName)
	}

	want := RunResult{PlayerName: "tester", Stage: "Stage1", Feeds: 0, Cleared: false}
	if len(scores.runs) != 1 || scores.runs[0] != want {
		t.Fatalf("runs = %+v, want [%+v]", scores.runs, want)
	}
	if gm.LastRun != want {
		t.Errorf("LastRun = %+v, want %+v", gm.LastRun, want)
	}
	if !sound.has(DeadSound) || !sound.has(EndingBackgroundMusic) {
		t.Errorf("death cues missing: %v", sound.played)
	}

	if event, err := gm.Tick(Right); err != nil || event != EventNone {
		t.Errorf("Tick outside a stage = (%v, %v), want (none, nil)", event, err)
	}

	if err := gm.Confirm(); err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if got := gm.Scenes.Active().Name; got != MenuSceneName {
		t.Errorf("after dead confirm scene = %s, want %s", got, MenuSceneName)
	}
}

func TestGameManagerReentryResetsFeedCount(t *testing.T) {
	gm, _, _ := newTestGame(t,
		map[string]string{"Stage1": "Feed 2\nInterval 100\nBBBBB\nBP  B\nBBBBB\n"},
		[]string{"Stage1"})

	if err := gm.ChangeScene("Stage1"); err != nil {
		t.Fatalf("ChangeScene: %v", err)
	}
	// Force a feed right in front of the head.
	for _, f := range gm.Stage.Feeds() {
		f.Kill()
	}
	gm.Stage.removeDead()
	gm.Stage.add(NewFeed(Vector2{X: 2, Y: 1}.Console()))

	if event, _ := gm.Tick(None); event != EventAte {
		t.Fatalf("event = %v, want ate", event)
	}
	if got := gm.Data.Active().CurrentFeedCount; got != 1 {
		t.Fatalf("CurrentFeedCount = %d, want 1", got)
	}

	if err := gm.ChangeScene("Stage1"); err != nil {
		t.Fatalf("re-entering Stage1: %v", err)
	}
	if got := gm.Data.Active().CurrentFeedCount; got != 0 {
		t.Errorf("CurrentFeedCount after re-entry = %d, want 0", got)
	}
}

func TestGameManagerUnknownScene(t *testing.T) {
	gm, _, _ := newTestGame(t, map[string]string{"Stage1": oneStepMap}, []string{"Stage1"})

	err := gm.ChangeScene("Nowhere")
	if !errors.Is(err, ErrSceneNotFound) {
		t.Fatalf("ChangeScene(Nowhere) error = %v, want ErrSceneNotFound", err)
	}
	if got := gm.Scenes.Active().Kind; got != SceneMenu {
		t.Errorf("active scene changed to %v on failure", got)
	}
}

func TestGameManagerUsesAutopilot(t *testing.T) {
	gm, _, _ := newTestGame(t, map[string]string{"Stage1": oneStepMap}, []string{"Stage1"})
	gm.Autopilot = &GreedyAutopilot{}

	if err := gm.ChangeScene("Stage1"); err != nil {
		t.Fatalf("ChangeScene: %v", err)
	}
	// The keyboard asks for the wall; the autopilot takes the feed.
	event, err := gm.Tick(Up)
	if err != nil || event != EventCleared {
		t.Fatalf("Tick = (%v, %v), want (cleared, nil)", event, err)
	}
}
