// Package gridgraph defines the coordinate key, role tags, cells and the
// grid container shared by the search engine and its presentation layer.
package gridgraph

import (
	"fmt"
	"math"
)

// Coord is a cell position. It is the identity of a cell: two cells are the
// same iff their coordinates are equal.
type Coord struct {
	Row, Col int
}

// String formats the coordinate as "row,col".
func (c Coord) String() string {
	return fmt.Sprintf("%d,%d", c.Row, c.Col)
}

// State is the role of a cell before and during a search.
type State int

const (
	// Open is a traversable cell nobody has looked at yet.
	Open State = iota
	// Wall is never traversable.
	Wall
	// Source is the single start cell.
	Source
	// Target is the single goal cell.
	Target
	// Visited is a cell already expanded (closed set).
	Visited
	// Neighbor is a discovered cell waiting in the open set.
	Neighbor
	// Path marks a cell on the reconstructed shortest path.
	Path
)

var stateNames = [...]string{
	Open:     "OPEN",
	Wall:     "WALL",
	Source:   "SRCE",
	Target:   "TRGT",
	Visited:  "VSTD",
	Neighbor: "NHBR",
	Path:     "PATH",
}

// String returns the four-letter tag of the state.
func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

// Cell is a single grid position with a role and two optional costs:
// g, the distance from the source along the best known path, and h, the
// estimated distance to the target.
type Cell struct {
	pos   Coord
	state State
	g, h  float64
	hasG  bool
	hasH  bool
}

// Coord returns the cell's position.
func (c *Cell) Coord() Coord { return c.pos }

// Row returns the cell's row index.
func (c *Cell) Row() int { return c.pos.Row }

// Col returns the cell's column index.
func (c *Cell) Col() int { return c.pos.Col }

// State returns the cell's current role.
func (c *Cell) State() State { return c.state }

// SetState changes the cell's role. The grid's role bookkeeping (source,
// target, walls) goes through Grid; searches use SetState to mark cells
// Visited, Neighbor or Path.
func (c *Cell) SetState(s State) { c.state = s }

// DistanceToSource returns g and whether it has been recorded.
func (c *Cell) DistanceToSource() (float64, bool) { return c.g, c.hasG }

// SetDistanceToSource records g.
func (c *Cell) SetDistanceToSource(g float64) {
	c.g, c.hasG = g, true
}

// DistanceToTarget returns h and whether it has been recorded.
func (c *Cell) DistanceToTarget() (float64, bool) { return c.h, c.hasH }

// SetDistanceToTarget records h.
func (c *Cell) SetDistanceToTarget(h float64) {
	c.h, c.hasH = h, true
}

// TotalDistance returns g+h, defined only when both are recorded.
func (c *Cell) TotalDistance() (float64, bool) {
	if !c.hasG || !c.hasH {
		return 0, false
	}
	return c.g + c.h, true
}

// DistanceTo returns the Euclidean distance between the two cells' coordinates.
func (c *Cell) DistanceTo(other *Cell) float64 {
	return Distance(c.pos, other.pos)
}

// Distance returns the plane Euclidean distance between two coordinates,
// computed as Sqrt(dr²+dc²). Hypot can differ in the last bit, which is
// enough to reorder near-equal keys in the open set.
func Distance(a, b Coord) float64 {
	dr, dc := float64(a.Row-b.Row), float64(a.Col-b.Col)
	return math.Sqrt(dr*dr + dc*dc)
}

// String renders the cell as "(row, col, STATE, g, h, f)" with two decimals,
// or "-" for a cost that is not recorded.
func (c *Cell) String() string {
	f, hasF := c.TotalDistance()
	return fmt.Sprintf("(%d, %d, %s, %s, %s, %s)",
		c.pos.Row, c.pos.Col, c.state,
		formatCost(c.g, c.hasG), formatCost(c.h, c.hasH), formatCost(f, hasF))
}

func formatCost(v float64, ok bool) string {
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%.2f", v)
}

// Grid owns a fixed Rows×Columns array of cells and the references to the
// single source and target. Dimensions never change after construction.
type Grid struct {
	rows, cols     int
	cells          [][]*Cell
	source, target *Cell
	locked         bool
}
