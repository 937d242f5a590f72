package game

// Vector2 is a console cell coordinate.
type Vector2 struct {
	X, Y int
}

func (v Vector2) Add(o Vector2) Vector2 {
	return Vector2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vector2) Sub(o Vector2) Vector2 {
	return Vector2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Local translates a console position into spawnable table indices.
func (v Vector2) Local() Vector2 {
	return Vector2{X: v.X - AnchorLeft, Y: v.Y - AnchorTop}
}

// Console is the inverse of Local.
func (v Vector2) Console() Vector2 {
	return Vector2{X: v.X + AnchorLeft, Y: v.Y + AnchorTop}
}

type Direction struct {
	Dx, Dy int
}

var (
	Up    = Direction{Dx: 0, Dy: -1}
	Down  = Direction{Dx: 0, Dy: 1}
	Left  = Direction{Dx: -1, Dy: 0}
	Right = Direction{Dx: 1, Dy: 0}
	None  = Direction{}
)

var Directions = []Direction{Right, Down, Left, Up}

func (d Direction) IsZero() bool {
	return d == None
}

func (d Direction) Reverse() Direction {
	return Direction{Dx: -d.Dx, Dy: -d.Dy}
}

// IsCardinal reports whether d is one of the four unit headings.
func (d Direction) IsCardinal() bool {
	for _, dir := range Directions {
		if d == dir {
			return true
		}
	}
	return false
}

func (d Direction) Step(from Vector2) Vector2 {
	return from.Add(Vector2{X: d.Dx, Y: d.Dy})
}

func GetManhattanDistance(a, b Vector2) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}
