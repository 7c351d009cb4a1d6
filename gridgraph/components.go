package gridgraph

// Components groups all non-wall cells into 8-connected regions, the same
// moves a search may take. Each component is a slice of row-major indices,
// in breadth-first discovery order starting from its top-left-most cell;
// components are listed in row-major order of those starting cells.
//
// Roles other than Wall are ignored, so the result describes the static
// board a search will run on, not its progress.
//
// Time:   O(R·C·8).
// Memory: O(R·C) for seen flags and output.
func (g *Grid) Components() [][]int {
	seen := make([]bool, g.rows*g.cols)
	var comps [][]int

	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			if g.cells[r][c].state == Wall {
				continue
			}
			i0 := g.index(r, c)
			if seen[i0] {
				continue
			}
			queue := []int{i0}
			seen[i0] = true

			for qi := 0; qi < len(queue); qi++ {
				u := g.Coordinate(queue[qi])
				for _, d := range conn8Offsets {
					vr, vc := u.Row+d[0], u.Col+d[1]
					if !g.InBounds(vr, vc) || g.cells[vr][vc].state == Wall {
						continue
					}
					vi := g.index(vr, vc)
					if !seen[vi] {
						seen[vi] = true
						queue = append(queue, vi)
					}
				}
			}
			comps = append(comps, queue)
		}
	}

	return comps
}

// ComponentSize returns the number of cells in the component of comps that
// holds c, or 0 if c is in none of them (a wall or out of bounds).
func (g *Grid) ComponentSize(comps [][]int, c Coord) int {
	if !g.InBounds(c.Row, c.Col) {
		return 0
	}
	want := g.index(c.Row, c.Col)
	for _, comp := range comps {
		for _, i := range comp {
			if i == want {
				return len(comp)
			}
		}
	}
	return 0
}

// Reachable reports whether b can be reached from a by 8-connected moves
// over non-wall cells. Cells outside the grid and walls reach nothing, not
// even themselves. A search over the same board ends Found exactly when
// Reachable(source, target) holds.
// Complexity: O(R·C) time and memory.
func (g *Grid) Reachable(a, b Coord) bool {
	if !g.InBounds(a.Row, a.Col) || !g.InBounds(b.Row, b.Col) {
		return false
	}
	if g.cells[a.Row][a.Col].state == Wall || g.cells[b.Row][b.Col].state == Wall {
		return false
	}
	if a == b {
		return true
	}

	goal := g.index(b.Row, b.Col)
	seen := make([]bool, g.rows*g.cols)
	start := g.index(a.Row, a.Col)
	seen[start] = true
	queue := []int{start}
	for qi := 0; qi < len(queue); qi++ {
		u := g.Coordinate(queue[qi])
		for _, d := range conn8Offsets {
			vr, vc := u.Row+d[0], u.Col+d[1]
			if !g.InBounds(vr, vc) || g.cells[vr][vc].state == Wall {
				continue
			}
			vi := g.index(vr, vc)
			if vi == goal {
				return true
			}
			if !seen[vi] {
				seen[vi] = true
				queue = append(queue, vi)
			}
		}
	}

	return false
}
