package game

// FloodFill collects every cell reachable from seed through 4-connected
// steps that stay inside the active map and are not blocked. The seed is
// included even when blocked.
func FloodFill(seed Vector2, active ActiveMap, blocked func(Vector2) bool) map[Vector2]struct{} {
	visited := map[Vector2]struct{}{seed: {}}
	q := []Vector2{seed}

	for len(q) > 0 {
		cell := q[0]
		q = q[1:]

		for _, dir := range Directions {
			next := dir.Step(cell)
			if !active.InBounds(next) {
				continue
			}
			if _, ok := visited[next]; ok {
				continue
			}
			if blocked(next) {
				continue
			}
			visited[next] = struct{}{}
			q = append(q, next)
		}
	}

	return visited
}
