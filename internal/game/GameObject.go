package game

// Canvas receives glyph writes at console positions.
type Canvas interface {
	Set(pos Vector2, glyph string, color string)
}

// Renderer draws the owner's icon. Lower orders are drawn first.
type Renderer struct {
	Icon  string
	Color string
	Order int
}

type ColliderKind int

const (
	ColliderWall ColliderKind = iota
	ColliderFeed
	ColliderBody
)

// Collider marks the owner's position as occupied.
type Collider struct {
	Kind ColliderKind
}

// GameObject is the shared part of every entity on a stage.
type GameObject struct {
	Name     string
	Position Vector2
	Renderer *Renderer
	Collider *Collider
	alive    bool
}

func (g *GameObject) IsAlive() bool {
	return g.alive
}

func (g *GameObject) Kill() {
	g.alive = false
}

// Object is an entity driven by the stage's frame loop.
type Object interface {
	Base() *GameObject
	Start(s *Stage)
	Update(s *Stage)
	Render(c Canvas)
}

func renderAt(c Canvas, pos Vector2, r *Renderer) {
	if r == nil {
		return
	}
	c.Set(pos, r.Icon, r.Color)
}

// Wall is a static blocking cell.
type Wall struct {
	GameObject
}

func NewWall(pos Vector2) *Wall {
	return &Wall{GameObject: GameObject{Name: "Wall", Position: pos}}
}

func (w *Wall) Base() *GameObject { return &w.GameObject }

func (w *Wall) Start(s *Stage) {
	w.Collider = &Collider{Kind: ColliderWall}
	w.Renderer = &Renderer{Icon: WallIcon, Color: WallColor, Order: 0}
	w.alive = true
}

func (w *Wall) Update(s *Stage) {}

func (w *Wall) Render(c Canvas) { renderAt(c, w.Position, w.Renderer) }

// Feed is eaten when the snake's head enters its cell.
type Feed struct {
	GameObject
}

func NewFeed(pos Vector2) *Feed {
	return &Feed{GameObject: GameObject{Name: "Feed", Position: pos}}
}

func (f *Feed) Base() *GameObject { return &f.GameObject }

func (f *Feed) Start(s *Stage) {
	f.Collider = &Collider{Kind: ColliderFeed}
	f.Renderer = &Renderer{Icon: FeedIcon, Color: FeedColor, Order: 1}
	f.alive = true
}

func (f *Feed) Update(s *Stage) {}

func (f *Feed) Render(c Canvas) { renderAt(c, f.Position, f.Renderer) }
