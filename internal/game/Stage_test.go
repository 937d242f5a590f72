package game

import (
	"testing"
	"time"
)

type gridCanvas map[Vector2]string

func (g gridCanvas) Set(pos Vector2, glyph string, color string) {
	g[pos] = glyph
}

func local(x, y int) Vector2 {
	return Vector2{X: x, Y: y}.Console()
}

func TestStageStartBuildsObjects(t *testing.T) {
	stage, sound := newTestStage(t, oneStepMap)

	walls := 0
	for _, obj := range stage.Objects() {
		if _, ok := obj.(*Wall); ok {
			walls++
		}
	}
	if walls != 10 {
		t.Errorf("walls = %d, want 10", walls)
	}
	if stage.Snake().Position != local(1, 1) || stage.Snake().Len() != 1 {
		t.Errorf("snake at %v len %d, want %v len 1", stage.Snake().Position, stage.Snake().Len(), local(1, 1))
	}

	feeds := stage.Feeds()
	if len(feeds) != 1 || feeds[0].Position != local(2, 1) {
		t.Fatalf("feeds = %v, want one at %v", feeds, local(2, 1))
	}
	if !sound.has(StageBackgroundMusic) {
		t.Error("stage music not started")
	}
}

func TestStageWallKills(t *testing.T) {
	stage, sound := newTestStage(t, boxedMap)

	if len(stage.Feeds()) != 0 {
		t.Fatalf("boxed map has no free cell but got feeds %v", stage.Feeds())
	}
	if event := stage.Update(None); event != EventDead {
		t.Fatalf("event = %v, want dead", event)
	}
	if !sound.has(DeadSound) {
		t.Error("dead cue not played")
	}
	if event := stage.Update(Up); event != EventDead {
		t.Errorf("finished stage event = %v, want dead", event)
	}
	if stage.Frames() != 1 {
		t.Errorf("frames = %d, want 1 after finishing", stage.Frames())
	}
}

func TestStageBoundsKill(t *testing.T) {
	stage, _ := newTestStage(t, "Feed 1\nInterval 100\nP..\n")

	if event := stage.Update(Up); event != EventDead {
		t.Fatalf("leaving the top edge: event = %v, want dead", event)
	}
}

func TestStageEatsAndClears(t *testing.T) {
	stage, sound := newTestStage(t, oneStepMap)

	if event := stage.Update(None); event != EventCleared {
		t.Fatalf("event = %v, want cleared", event)
	}
	if stage.Active().CurrentFeedCount != 1 {
		t.Errorf("CurrentFeedCount = %d, want 1", stage.Active().CurrentFeedCount)
	}
	if len(stage.Feeds()) != 0 {
		t.Errorf("eaten feed still alive: %v", stage.Feeds())
	}
	if !sound.has(EatFeedSound) || !sound.has(StageClearSound) {
		t.Errorf("cues = %v", sound.played)
	}
}

func TestStageGrowthKeepsTail(t *testing.T) {
	stage, _ := newTestStage(t, "Feed 9\nInterval 100000\n.......\nP......\n.......\n")
	for _, f := range stage.Feeds() {
		f.Kill()
	}
	stage.removeDead()
	stage.add(NewFeed(local(1, 1)))

	if event := stage.Update(None); event != EventAte {
		t.Fatalf("event = %v, want ate", event)
	}
	if stage.Snake().Len() != 1 {
		t.Fatalf("length right after eating = %d, want 1", stage.Snake().Len())
	}
	stage.Update(None)
	if stage.Snake().Len() != 2 {
		t.Fatalf("length one step after eating = %d, want 2", stage.Snake().Len())
	}
	want := []Vector2{local(2, 1), local(1, 1)}
	for i, cell := range want {
		if stage.Snake().Body[i] != cell {
			t.Errorf("body[%d] = %v, want %v", i, stage.Snake().Body[i], cell)
		}
	}
}

func TestStageSelfCollision(t *testing.T) {
	stage, _ := newTestStage(t, openMap)
	snake := stage.Snake()
	snake.Body = []Vector2{local(2, 2), local(3, 2), local(3, 3), local(2, 3), local(1, 3)}
	snake.Position = local(2, 2)
	snake.CurrentDirection = Left

	if event := stage.Update(Down); event != EventDead {
		t.Fatalf("turning into the body: event = %v, want dead", event)
	}
}

func TestStageTailChasingIsAllowed(t *testing.T) {
	stage, _ := newTestStage(t, openMap)
	snake := stage.Snake()
	snake.Body = []Vector2{local(1, 1), local(2, 1), local(2, 2), local(1, 2)}
	snake.Position = local(1, 1)
	snake.CurrentDirection = Left

	if event := stage.Update(Down); event == EventDead {
		t.Fatal("moving into the cell the tail leaves should not kill")
	}
	if snake.Position != local(1, 2) {
		t.Errorf("head = %v, want %v", snake.Position, local(1, 2))
	}
}

func TestSnakeRejectsReverse(t *testing.T) {
	snake := NewSnake(local(2, 2))
	snake.UpdateDirection(Left)
	if snake.CurrentDirection != Left {
		t.Errorf("single cell snake should turn around, heading %v", snake.CurrentDirection)
	}

	snake.Body = append(snake.Body, local(3, 2))
	snake.UpdateDirection(Right)
	if snake.CurrentDirection != Left {
		t.Errorf("long snake reversed to %v", snake.CurrentDirection)
	}
	snake.UpdateDirection(None)
	if snake.CurrentDirection != Left {
		t.Errorf("None changed heading to %v", snake.CurrentDirection)
	}
	snake.UpdateDirection(Up)
	if snake.CurrentDirection != Up {
		t.Errorf("heading = %v, want up", snake.CurrentDirection)
	}
}

func TestStageFeedSpawnsOnlyWhereReachable(t *testing.T) {
	stage, _ := newTestStage(t, "Feed 3\nInterval 100\nBBBBBB\nBP B B\nBBBBBB\n")

	feeds := stage.Feeds()
	if len(feeds) != 1 || feeds[0].Position != local(2, 1) {
		t.Fatalf("feeds = %v, want one at %v", feeds, local(2, 1))
	}
	if stage.spawnFeed() {
		t.Error("spawned into the walled-off pocket")
	}
}

func TestStageSpawnInterval(t *testing.T) {
	stage, _ := newTestStage(t, "Feed 9\nInterval 300\n..........\n..........\nP.........\n",
		WithTick(100*time.Millisecond))
	for _, f := range stage.Feeds() {
		f.Kill()
	}
	stage.removeDead()

	stage.Snake().CurrentDirection = Up
	stage.Update(None)
	stage.Update(None)
	if got := len(stage.Feeds()); got != 0 {
		t.Fatalf("feeds after 200ms = %d, want 0", got)
	}
	stage.Update(Right)
	if got := len(stage.Feeds()); got != 1 {
		t.Errorf("feeds after 300ms = %d, want 1", got)
	}
}

func TestStageRender(t *testing.T) {
	stage, _ := newTestStage(t, oneStepMap)
	canvas := gridCanvas{}
	stage.Render(canvas)

	if canvas[local(0, 0)] != WallIcon {
		t.Errorf("corner = %q, want wall", canvas[local(0, 0)])
	}
	if canvas[local(1, 1)] != HeadRune(Right) {
		t.Errorf("head = %q, want %q", canvas[local(1, 1)], HeadRune(Right))
	}
	if canvas[local(2, 1)] != FeedIcon {
		t.Errorf("feed = %q, want %q", canvas[local(2, 1)], FeedIcon)
	}
}

func TestFloodFill(t *testing.T) {
	active := ActiveMap{MaxX: 3, MaxY: 3}
	blocked := func(v Vector2) bool { return v.Local().X == 1 }

	got := FloodFill(local(0, 0), active, blocked)
	if len(got) != 3 {
		t.Errorf("reachable = %d cells, want 3", len(got))
	}
	for cell := range got {
		if cell.Local().X != 0 {
			t.Errorf("reached %v across the wall", cell.Local())
		}
	}
}

func TestStageAutopilotCannotJumpWalls(t *testing.T) {
	for _, script := range []string{
		`function getNextDirection() return {Dx = 3, Dy = 0} end`,
		`function getNextDirection() return {Dx = 1, Dy = 1} end`,
	} {
		pilot, err := NewLuaAutopilot("jumper", script)
		if err != nil {
			t.Fatalf("NewLuaAutopilot: %v", err)
		}
		defer pilot.Close()

		stage, _ := newTestStage(t, "Feed 5\nInterval 100000\nBBBBBBB\nBP.B..B\nBBBBBBB\n", WithAutopilot(pilot))

		stage.Update(None)
		if stage.Snake().Position != local(2, 1) || stage.Snake().CurrentDirection != Right {
			t.Fatalf("%s: head %v heading %+v, want %v heading right",
				script, stage.Snake().Position.Local(), stage.Snake().CurrentDirection, Vector2{X: 2, Y: 1})
		}
		if event := stage.Update(None); event != EventDead {
			t.Errorf("%s: event at the wall = %v, want dead", script, event)
		}
	}
}

func TestSnakeIgnoresNonCardinalHeading(t *testing.T) {
	snake := NewSnake(local(2, 2))
	for _, dir := range []Direction{{Dx: 3, Dy: 0}, {Dx: 1, Dy: 1}, {Dx: 0, Dy: -2}} {
		snake.UpdateDirection(dir)
		if snake.CurrentDirection != Right {
			t.Errorf("UpdateDirection(%+v) changed heading to %+v", dir, snake.CurrentDirection)
		}
	}
	if HeadRune(snake.CurrentDirection) == "" {
		t.Error("heading has no head rune")
	}
}
