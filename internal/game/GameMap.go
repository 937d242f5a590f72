package game

// MapInfo describes a stage's geometry and rules. It is not modified after
// loading; the slices are shared between copies.
type MapInfo struct {
	NeedFeedCount int
	SpawnInterval int // milliseconds
	MinX          int
	MinY          int
	MaxX          int
	MaxY          int

	PlayerPosition Vector2
	WallPositions  []Vector2
	// SpawnableTable is indexed [row][col] in grid-local coordinates.
	SpawnableTable [][]bool
}

// IsSpawnable reports whether the console position is an in-grid floor cell.
func (m MapInfo) IsSpawnable(pos Vector2) bool {
	local := pos.Local()
	if local.Y < 0 || local.Y >= len(m.SpawnableTable) {
		return false
	}
	row := m.SpawnableTable[local.Y]
	if local.X < 0 || local.X >= len(row) {
		return false
	}
	return row[local.X]
}

// SpawnableCells lists every floor cell in console coordinates, row major.
func (m MapInfo) SpawnableCells() []Vector2 {
	cells := []Vector2{}
	for row := range m.SpawnableTable {
		for col, free := range m.SpawnableTable[row] {
			if free {
				cells = append(cells, Vector2{X: col, Y: row}.Console())
			}
		}
	}
	return cells
}

// ActiveMap is the state of the map currently being played. Bounds are
// copied from MapInfo on activation; CurrentFeedCount counts feed eaten
// since then.
type ActiveMap struct {
	MinX, MinY       int
	MaxX, MaxY       int
	NeedFeedCount    int
	CurrentFeedCount int
}

func (a ActiveMap) MapMinX() int { return AnchorLeft + a.MinX }
func (a ActiveMap) MapMaxX() int { return AnchorLeft + a.MaxX }
func (a ActiveMap) MapMinY() int { return AnchorTop + a.MinY }
func (a ActiveMap) MapMaxY() int { return AnchorTop + a.MaxY }

func (a ActiveMap) Width() int  { return a.MapMaxX() - a.MapMinX() }
func (a ActiveMap) Height() int { return a.MapMaxY() - a.MapMinY() }

// InBounds reports whether a console position lies inside the map rectangle.
func (a ActiveMap) InBounds(pos Vector2) bool {
	return pos.X >= a.MapMinX() && pos.X < a.MapMaxX() &&
		pos.Y >= a.MapMinY() && pos.Y < a.MapMaxY()
}

func (a ActiveMap) Cleared() bool {
	return a.CurrentFeedCount >= a.NeedFeedCount
}
