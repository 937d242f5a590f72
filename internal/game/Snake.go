package game

// Snake is the player. Body[0] is the head and always equals Position.
type Snake struct {
	GameObject
	Body             []Vector2
	CurrentDirection Direction
	pendingGrowth    int
}

func NewSnake(spawnPoint Vector2) *Snake {
	return &Snake{
		GameObject:       GameObject{Name: "Snake", Position: spawnPoint},
		Body:             []Vector2{spawnPoint},
		CurrentDirection: Right,
	}
}

func (p *Snake) Base() *GameObject { return &p.GameObject }

func (p *Snake) Start(s *Stage) {
	p.Collider = &Collider{Kind: ColliderBody}
	p.Renderer = &Renderer{Icon: BodyIcon, Color: SnakeColor, Order: 2}
	p.alive = true
}

// UpdateDirection ignores turns straight back into the body and anything
// that is not a single cardinal step.
func (p *Snake) UpdateDirection(newDir Direction) {
	if !newDir.IsCardinal() {
		return
	}
	if len(p.Body) > 1 && newDir == p.CurrentDirection.Reverse() {
		return
	}
	p.CurrentDirection = newDir
}

func (p *Snake) GetNextCell() Vector2 {
	return p.CurrentDirection.Step(p.Position)
}

// Occupies reports whether pos is a body cell. When ignoreTail is set the
// last cell is skipped, since it moves away on a step without growth.
func (p *Snake) Occupies(pos Vector2, ignoreTail bool) bool {
	body := p.Body
	if ignoreTail && p.pendingGrowth == 0 && len(body) > 1 {
		body = body[:len(body)-1]
	}
	for _, cell := range body {
		if cell == pos {
			return true
		}
	}
	return false
}

func (p *Snake) Grow(n int) {
	p.pendingGrowth += n
}

func (p *Snake) Len() int {
	return len(p.Body)
}

// Update moves the snake one cell and resolves what it ran into.
func (p *Snake) Update(s *Stage) {
	next := p.GetNextCell()

	if !s.Active().InBounds(next) || s.WallAt(next) || p.Occupies(next, true) {
		s.die()
		return
	}

	p.Body = append([]Vector2{next}, p.Body...)
	if p.pendingGrowth > 0 {
		p.pendingGrowth--
	} else {
		p.Body = p.Body[:len(p.Body)-1]
	}
	p.Position = next

	if feed := s.FeedAt(next); feed != nil {
		s.eat(feed)
	}
}

func (p *Snake) Render(c Canvas) {
	if p.Renderer == nil {
		return
	}
	for i := len(p.Body) - 1; i > 0; i-- {
		c.Set(p.Body[i], p.Renderer.Icon, p.Renderer.Color)
	}
	c.Set(p.Position, headRunes[p.CurrentDirection], HeadColor)
}

var headRunes = map[Direction]string{
	Up:    "▲",
	Down:  "▼",
	Left:  "◀",
	Right: "▶",
}

func HeadRune(d Direction) string {
	return headRunes[d]
}
