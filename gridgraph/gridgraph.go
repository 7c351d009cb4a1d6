package gridgraph

import (
	"fmt"
	"strings"
)

// Moore neighbour offsets as {dRow, dCol}, in row-major order.
var conn8Offsets = [][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}

// Layout glyphs understood by FromRows.
const (
	GlyphOpen   = '.'
	GlyphWall   = '#'
	GlyphSource = 'S'
	GlyphTarget = 'T'
)

// New constructs a rows×cols grid of Open cells.
// Returns ErrEmptyGrid if rows or cols is below one.
// Complexity: O(R×C) time and memory.
func New(rows, cols int) (*Grid, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyGrid, rows, cols)
	}
	cells := make([][]*Cell, rows)
	for r := 0; r < rows; r++ {
		cells[r] = make([]*Cell, cols)
		for c := 0; c < cols; c++ {
			cells[r][c] = &Cell{pos: Coord{Row: r, Col: c}, state: Open}
		}
	}

	return &Grid{
		rows:  rows,
		cols:  cols,
		cells: cells,
	}, nil
}

// FromRows builds a grid from an ASCII layout, one string per row:
// '.' open, '#' wall, 'S' source, 'T' target. Source and target are
// optional but may appear at most once each.
func FromRows(layout []string) (*Grid, error) {
	if len(layout) == 0 || len(layout[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	w := len(layout[0])
	for _, row := range layout {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
	}
	g, err := New(len(layout), w)
	if err != nil {
		return nil, err
	}

	for r, row := range layout {
		for c, ch := range []byte(row) {
			switch ch {
			case GlyphOpen:
			case GlyphWall:
				err = g.SetBlocked(r, c)
			case GlyphSource:
				err = g.SetSource(r, c)
			case GlyphTarget:
				err = g.SetTarget(r, c)
			default:
				err = fmt.Errorf("%w %q at %d,%d", ErrBadGlyph, ch, r, c)
			}
			if err != nil {
				return nil, err
			}
		}
	}

	return g, nil
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Columns returns the number of columns.
func (g *Grid) Columns() int { return g.cols }

// InBounds reports whether (row,col) lies within the grid.
// Complexity: O(1).
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// Cell returns the cell at (row,col), or ErrOutOfBounds.
func (g *Grid) Cell(row, col int) (*Cell, error) {
	if !g.InBounds(row, col) {
		return nil, fmt.Errorf("%w: %d,%d in %dx%d", ErrOutOfBounds, row, col, g.rows, g.cols)
	}
	return g.cells[row][col], nil
}

// At returns the cell at c, or ErrOutOfBounds.
func (g *Grid) At(c Coord) (*Cell, error) {
	return g.Cell(c.Row, c.Col)
}

// Source returns the source cell, or nil if it is not set yet.
func (g *Grid) Source() *Cell { return g.source }

// Target returns the target cell, or nil if it is not set yet.
func (g *Grid) Target() *Cell { return g.target }

// SetSource marks (row,col) as the source. It may be called once.
// Once both source and target are known the source's costs are seeded:
// g = 0 and h = distance to the target.
func (g *Grid) SetSource(row, col int) error {
	if g.source != nil {
		return ErrSourceSet
	}
	c, err := g.Cell(row, col)
	if err != nil {
		return err
	}
	if c.state == Wall {
		return fmt.Errorf("%w: source on wall %s", ErrRoleConflict, c.pos)
	}

	c.state = Source
	g.source = c
	if g.target != nil {
		if c == g.target {
			c.state = Target
		}
		g.seedSource()
	}

	return nil
}

// SetTarget marks (row,col) as the target. It may be called once.
// The target may share the source's cell, in which case the cell keeps the
// Target role.
func (g *Grid) SetTarget(row, col int) error {
	if g.target != nil {
		return ErrTargetSet
	}
	c, err := g.Cell(row, col)
	if err != nil {
		return err
	}
	if c.state == Wall {
		return fmt.Errorf("%w: target on wall %s", ErrRoleConflict, c.pos)
	}

	c.state = Target
	g.target = c
	if g.source != nil {
		g.seedSource()
	}

	return nil
}

func (g *Grid) seedSource() {
	g.source.SetDistanceToSource(0)
	g.source.SetDistanceToTarget(g.source.DistanceTo(g.target))
}

// SetBlocked turns an Open cell into a Wall. Blocking a wall again is a
// no-op; any other role is ErrRoleConflict.
func (g *Grid) SetBlocked(row, col int) error {
	return g.toggleWall(row, col, Wall)
}

// SetUnblocked turns a Wall back into an Open cell. Unblocking an open cell
// is a no-op; any other role is ErrRoleConflict.
func (g *Grid) SetUnblocked(row, col int) error {
	return g.toggleWall(row, col, Open)
}

func (g *Grid) toggleWall(row, col int, to State) error {
	if g.locked {
		return ErrLocked
	}
	c, err := g.Cell(row, col)
	if err != nil {
		return err
	}
	if c.state != Open && c.state != Wall {
		return fmt.Errorf("%w: %s is %s", ErrRoleConflict, c.pos, c.state)
	}
	c.state = to

	return nil
}

// Lock freezes the walls. A search locks its grid on construction; the
// grid stays locked until it is discarded.
func (g *Grid) Lock() { g.locked = true }

// Locked reports whether a search has taken the grid.
func (g *Grid) Locked() bool { return g.locked }

// IsSource reports whether c is the grid's source cell.
func (g *Grid) IsSource(c *Cell) bool { return g.source != nil && c.pos == g.source.pos }

// IsTarget reports whether c is the grid's target cell.
func (g *Grid) IsTarget(c *Cell) bool { return g.target != nil && c.pos == g.target.pos }

// Neighbors returns the cells around c that a search may still discover:
// the Moore neighbourhood clipped at the grid edges (no wraparound), in
// row-major order, keeping only Open cells and the target.
// Complexity: O(1).
func (g *Grid) Neighbors(c *Cell) []*Cell {
	out := make([]*Cell, 0, len(conn8Offsets))
	for _, d := range conn8Offsets {
		r, col := c.pos.Row+d[0], c.pos.Col+d[1]
		if !g.InBounds(r, col) {
			continue
		}
		n := g.cells[r][col]
		if n.state == Open || g.IsTarget(n) {
			out = append(out, n)
		}
	}

	return out
}

// Each calls fn for every cell in row-major order.
func (g *Grid) Each(fn func(c *Cell)) {
	for _, row := range g.cells {
		for _, c := range row {
			fn(c)
		}
	}
}

// Count returns how many cells currently hold state s.
func (g *Grid) Count(s State) int {
	n := 0
	g.Each(func(c *Cell) {
		if c.state == s {
			n++
		}
	})
	return n
}

// String renders one line per row, each cell in its String form.
func (g *Grid) String() string {
	var b strings.Builder
	for _, row := range g.cells {
		for i, c := range row {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(c.String())
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// index maps (row,col) to a row-major index: row*cols + col.
func (g *Grid) index(row, col int) int {
	return row*g.cols + col
}

// Coordinate converts a row-major index back to a Coord.
// Complexity: O(1).
func (g *Grid) Coordinate(idx int) Coord {
	return Coord{Row: idx / g.cols, Col: idx % g.cols}
}
