package game

import (
	"math/rand"
	"sort"
	"time"

	"github.com/charmbracelet/log"
)

type StageEvent int

const (
	EventNone StageEvent = iota
	EventAte
	EventDead
	EventCleared
)

// Stage is the live object set of a stage scene.
type Stage struct {
	Name string
	Info MapInfo

	data      *DataManager
	sound     SoundPlayer
	rng       *rand.Rand
	autopilot Autopilot
	tick      time.Duration

	snake      *Snake
	walls      map[Vector2]*Wall
	objects    []Object
	spawnTimer time.Duration
	frames     int
	event      StageEvent
}

type StageOption func(*Stage)

func WithAutopilot(a Autopilot) StageOption {
	return func(s *Stage) { s.autopilot = a }
}

func WithTick(d time.Duration) StageOption {
	return func(s *Stage) { s.tick = d }
}

// NewStage prepares a stage for info. data must already have info active.
func NewStage(name string, info MapInfo, data *DataManager, sound SoundPlayer, rng *rand.Rand, opts ...StageOption) *Stage {
	if sound == nil {
		sound = NopSound{}
	}
	s := &Stage{
		Name:  name,
		Info:  info,
		data:  data,
		sound: sound,
		rng:   rng,
		tick:  GameTickDuration,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start builds the walls, the snake and the first feed.
func (s *Stage) Start() {
	s.objects = nil
	s.walls = make(map[Vector2]*Wall, len(s.Info.WallPositions))
	s.spawnTimer = 0
	s.frames = 0
	s.event = EventNone

	for _, pos := range s.Info.WallPositions {
		wall := NewWall(pos)
		s.walls[pos] = wall
		s.add(wall)
	}

	s.snake = NewSnake(s.Info.PlayerPosition)
	s.add(s.snake)
	s.spawnFeed()

	s.sound.Play(StageBackgroundMusic)
	log.Debug("Stage started", "stage", s.Name, "need", s.Info.NeedFeedCount, "interval", s.Info.SpawnInterval)
}

func (s *Stage) add(obj Object) {
	obj.Start(s)
	s.objects = append(s.objects, obj)
}

// Update runs one frame. dir is the last requested heading, None to keep
// going straight. Once the stage reports EventDead or EventCleared further
// calls do nothing and return the same event.
func (s *Stage) Update(dir Direction) StageEvent {
	if s.Finished() {
		return s.event
	}
	s.event = EventNone

	if s.autopilot != nil {
		next, err := s.autopilot.NextDirection(s.View())
		if err != nil {
			log.Warn("Autopilot failed, keeping heading", "stage", s.Name, "error", err)
		} else {
			dir = next
		}
	}
	s.snake.UpdateDirection(dir)

	for _, obj := range append([]Object(nil), s.objects...) {
		if obj.Base().IsAlive() {
			obj.Update(s)
		}
	}

	if !s.Finished() {
		s.spawnTimer += s.tick
		if s.spawnTimer >= s.spawnInterval() {
			s.spawnTimer = 0
			s.spawnFeed()
		}
	}

	s.removeDead()
	s.frames++
	return s.event
}

// Render draws every live object in renderer order.
func (s *Stage) Render(c Canvas) {
	live := make([]Object, 0, len(s.objects))
	for _, obj := range s.objects {
		if obj.Base().IsAlive() {
			live = append(live, obj)
		}
	}
	sort.SliceStable(live, func(i, j int) bool {
		return order(live[i]) < order(live[j])
	})
	for _, obj := range live {
		obj.Render(c)
	}
}

func order(obj Object) int {
	if r := obj.Base().Renderer; r != nil {
		return r.Order
	}
	return 0
}

func (s *Stage) Finished() bool {
	return s.event == EventDead || s.event == EventCleared
}

func (s *Stage) Frames() int       { return s.frames }
func (s *Stage) Snake() *Snake     { return s.snake }
func (s *Stage) Active() ActiveMap { return s.data.Active() }

func (s *Stage) Objects() []Object {
	return append([]Object(nil), s.objects...)
}

func (s *Stage) Feeds() []*Feed {
	feeds := []*Feed{}
	for _, obj := range s.objects {
		if feed, ok := obj.(*Feed); ok && feed.IsAlive() {
			feeds = append(feeds, feed)
		}
	}
	return feeds
}

func (s *Stage) WallAt(pos Vector2) bool {
	_, ok := s.walls[pos]
	return ok
}

func (s *Stage) FeedAt(pos Vector2) *Feed {
	for _, feed := range s.Feeds() {
		if feed.Position == pos {
			return feed
		}
	}
	return nil
}

// Blocked reports whether a cell stops the snake: outside the map, a wall
// or a body cell other than the head.
func (s *Stage) Blocked(pos Vector2) bool {
	if !s.Active().InBounds(pos) || s.WallAt(pos) {
		return true
	}
	return pos != s.snake.Position && s.snake.Occupies(pos, false)
}

func (s *Stage) spawnInterval() time.Duration {
	if s.Info.SpawnInterval <= 0 {
		return DefaultSpawnMillis * time.Millisecond
	}
	return time.Duration(s.Info.SpawnInterval) * time.Millisecond
}

// spawnFeed places a feed on a random floor cell the snake can reach.
func (s *Stage) spawnFeed() bool {
	if len(s.Feeds()) >= MaxFeedsOnMap {
		return false
	}

	reachable := FloodFill(s.snake.Position, s.Active(), s.Blocked)
	candidates := []Vector2{}
	for _, cell := range s.Info.SpawnableCells() {
		if _, ok := reachable[cell]; !ok {
			continue
		}
		if cell == s.snake.Position || s.snake.Occupies(cell, false) || s.FeedAt(cell) != nil {
			continue
		}
		candidates = append(candidates, cell)
	}
	if len(candidates) == 0 {
		return false
	}

	s.add(NewFeed(candidates[s.rng.Intn(len(candidates))]))
	return true
}

func (s *Stage) eat(feed *Feed) {
	feed.Kill()
	s.snake.Grow(1)
	count, cleared := s.data.AddFeed()
	s.sound.Play(EatFeedSound)
	log.Debug("Feed eaten", "stage", s.Name, "count", count, "need", s.Info.NeedFeedCount)

	if cleared {
		s.event = EventCleared
		s.sound.Play(StageClearSound)
		return
	}
	s.event = EventAte
}

func (s *Stage) die() {
	s.event = EventDead
	s.sound.Play(DeadSound)
}

func (s *Stage) removeDead() {
	live := s.objects[:0]
	for _, obj := range s.objects {
		if obj.Base().IsAlive() {
			live = append(live, obj)
		}
	}
	for i := len(live); i < len(s.objects); i++ {
		s.objects[i] = nil
	}
	s.objects = live
}

// View is the autopilot's picture of the stage in grid-local coordinates.
func (s *Stage) View() AutopilotView {
	view := AutopilotView{
		Head:    s.snake.Position.Local(),
		Heading: s.snake.CurrentDirection,
		Length:  s.snake.Len(),
		Width:   s.Info.MaxX,
		Height:  s.Info.MaxY,
		blocked: func(local Vector2) bool { return s.Blocked(local.Console()) },
	}

	best := -1
	for _, feed := range s.Feeds() {
		d := GetManhattanDistance(s.snake.Position, feed.Position)
		if best < 0 || d < best {
			best = d
			view.Feed = feed.Position.Local()
			view.HasFeed = true
		}
	}
	return view
}
