// Package gridgraph models the board an A* walk-through runs on: a fixed
// rectangle of cells, each carrying a role tag and the two cost fields a
// best-first search reads and writes.
//
// What:
//
//   - Grid owns a Rows×Columns array of *Cell, created once by New or FromRows.
//   - Every Cell is identified by its Coord; Coord is the key type used by
//     queues and predecessor maps, independent of the cell's mutable fields.
//   - At most one source and one target may be set, each exactly once.
//   - Neighbors yields the Moore neighbourhood (8 cells, clipped at the edges)
//     restricted to cells a search may still discover.
//   - Components, ComponentSize and Reachable group non-wall cells into
//     8-connected islands.
//
// Lifecycle:
//
//	The setup side assigns roles (source, target, walls) and then hands the
//	Grid to a search, which Locks it. After Lock only cell state and costs
//	change, through the search. A reset discards the Grid and builds a new one.
//
// Complexity:
//
//   - New, FromRows:       O(R×C) time and memory.
//   - Cell, Set*, Lock:    O(1).
//   - Neighbors:           O(1) (at most 8 cells).
//   - Components:          O(R×C×8) time, O(R×C) memory.
//
// Errors:
//
//   - ErrEmptyGrid:      rows or columns below one.
//   - ErrNonRectangular: FromRows rows of differing lengths.
//   - ErrBadGlyph:       FromRows met an unknown layout character.
//   - ErrOutOfBounds:    coordinates outside the grid.
//   - ErrSourceSet, ErrTargetSet: the role was already assigned.
//   - ErrRoleConflict:   the cell's current role forbids the change.
//   - ErrLocked:         walls changed after a search took the grid.
package gridgraph
