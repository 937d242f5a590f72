package game

import (
	"errors"
	"fmt"
	"os"

	lua "github.com/yuin/gopher-lua"
)

// Autopilot steers the snake instead of the keyboard.
type Autopilot interface {
	NextDirection(view AutopilotView) (Direction, error)
}

// AutopilotView uses grid-local coordinates.
type AutopilotView struct {
	Head    Vector2
	Heading Direction
	Length  int
	Feed    Vector2
	HasFeed bool
	Width   int
	Height  int

	blocked func(Vector2) bool
}

func (v AutopilotView) IsBlocked(pos Vector2) bool {
	if v.blocked == nil {
		return pos.X < 0 || pos.Y < 0 || pos.X >= v.Width || pos.Y >= v.Height
	}
	return v.blocked(pos)
}

// GreedyAutopilotName selects GreedyAutopilot in ResolveAutopilot.
const GreedyAutopilotName = "greedy"

// ResolveAutopilot maps a command line value to an autopilot: empty for
// none, GreedyAutopilotName for the built-in one, anything else is a lua
// script path.
func ResolveAutopilot(name string) (Autopilot, error) {
	switch name {
	case "":
		return nil, nil
	case GreedyAutopilotName:
		return &GreedyAutopilot{}, nil
	}
	pilot, err := LoadLuaAutopilot(name)
	if err != nil {
		return nil, err
	}
	return pilot, nil
}

// LuaAutopilot runs a script defining
//
//	function getNextDirection(head, feed, heading) return {Dx=1, Dy=0} end
//
// feed is nil when there is no feed on the map. The script may call
// isBlocked(x, y).
type LuaAutopilot struct {
	Name  string
	state *lua.LState
}

func NewLuaAutopilot(name, source string) (*LuaAutopilot, error) {
	luaState := lua.NewState()
	if err := luaState.DoString(source); err != nil {
		luaState.Close()
		return nil, fmt.Errorf("could not parse lua autopilot %s: %w", name, err)
	}
	if luaState.GetGlobal("getNextDirection").Type() != lua.LTFunction {
		luaState.Close()
		return nil, fmt.Errorf("lua autopilot %s does not define getNextDirection", name)
	}
	return &LuaAutopilot{Name: name, state: luaState}, nil
}

func LoadLuaAutopilot(path string) (*LuaAutopilot, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading autopilot script: %w", err)
	}
	return NewLuaAutopilot(path, string(source))
}

func (a *LuaAutopilot) Close() {
	a.state.Close()
}

func (a *LuaAutopilot) NextDirection(view AutopilotView) (Direction, error) {
	L := a.state
	L.SetGlobal("isBlocked", L.NewFunction(func(L *lua.LState) int {
		x := L.CheckInt(1)
		y := L.CheckInt(2)
		L.Push(lua.LBool(view.IsBlocked(Vector2{X: x, Y: y})))
		return 1
	}))

	var feed lua.LValue = lua.LNil
	if view.HasFeed {
		feed = vectorTable(L, view.Feed)
	}
	heading := L.NewTable()
	heading.RawSetString("Dx", lua.LNumber(view.Heading.Dx))
	heading.RawSetString("Dy", lua.LNumber(view.Heading.Dy))

	err := L.CallByParam(lua.P{
		Fn:      L.GetGlobal("getNextDirection"),
		NRet:    1,
		Protect: true,
	}, vectorTable(L, view.Head), feed, heading)
	if err != nil {
		return None, fmt.Errorf("could not execute lua autopilot %s: %w", a.Name, err)
	}

	luaReturn := L.Get(-1)
	L.Pop(1)
	luaTable, ok := luaReturn.(*lua.LTable)
	if !ok {
		return None, errors.New("lua return value was type " + luaReturn.Type().String() + ", expected table")
	}
	dir := convertLuaDirectionTableToGoStruct(luaTable)
	if !dir.IsZero() && !dir.IsCardinal() {
		return None, fmt.Errorf("lua autopilot %s returned %+v, expected a single cardinal step", a.Name, dir)
	}
	return dir, nil
}

func vectorTable(L *lua.LState, v Vector2) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("X", lua.LNumber(v.X))
	t.RawSetString("Y", lua.LNumber(v.Y))
	return t
}

func convertLuaDirectionTableToGoStruct(luaTbl *lua.LTable) Direction {
	result := Direction{}
	luaTbl.ForEach(func(key, value lua.LValue) {
		if key.Type() != lua.LTString {
			return
		}

		switch lua.LVAsString(key) {
		case "Dy":
			result.Dy = int(lua.LVAsNumber(value))
		case "Dx":
			result.Dx = int(lua.LVAsNumber(value))
		}
	})
	return result
}

// GreedyAutopilot heads for the nearest feed, avoiding moves into pockets
// smaller than the snake can fit.
type GreedyAutopilot struct{}

func (g *GreedyAutopilot) NextDirection(view AutopilotView) (Direction, error) {
	type move struct {
		dir   Direction
		dist  int
		space int
	}

	need := max(1, view.Length)
	moves := []move{}
	for _, dir := range Directions {
		if dir == view.Heading.Reverse() {
			continue
		}
		next := dir.Step(view.Head)
		if view.IsBlocked(next) {
			continue
		}

		m := move{dir: dir, space: g.openSpace(view, next, need)}
		if view.HasFeed {
			m.dist = GetManhattanDistance(next, view.Feed)
		}
		moves = append(moves, m)
	}

	if len(moves) == 0 {
		return view.Heading, nil
	}

	best := moves[0]
	for _, m := range moves[1:] {
		bestSafe, mSafe := best.space >= need, m.space >= need
		switch {
		case mSafe && !bestSafe:
			best = m
		case mSafe == bestSafe && !mSafe && m.space > best.space:
			best = m
		case mSafe == bestSafe && mSafe && m.dist < best.dist:
			best = m
		}
	}
	return best.dir, nil
}

// openSpace counts reachable cells from start, stopping once limit is met.
func (g *GreedyAutopilot) openSpace(view AutopilotView, start Vector2, limit int) int {
	visited := map[Vector2]struct{}{start: {}}
	q := []Vector2{start}
	for len(q) > 0 && len(visited) < limit {
		cell := q[0]
		q = q[1:]
		for _, dir := range Directions {
			next := dir.Step(cell)
			if _, ok := visited[next]; ok || next == view.Head || view.IsBlocked(next) {
				continue
			}
			visited[next] = struct{}{}
			q = append(q, next)
		}
	}
	return len(visited)
}
