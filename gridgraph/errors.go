package gridgraph

import "errors"

var (
	// ErrEmptyGrid indicates a grid with no rows or no columns.
	ErrEmptyGrid = errors.New("gridgraph: grid must have at least one row and one column")
	// ErrNonRectangular indicates layout rows of differing lengths.
	ErrNonRectangular = errors.New("gridgraph: all rows must have the same length")
	// ErrBadGlyph indicates an unknown character in a layout row.
	ErrBadGlyph = errors.New("gridgraph: unknown layout glyph")
	// ErrOutOfBounds indicates coordinates outside the grid.
	ErrOutOfBounds = errors.New("gridgraph: coordinates out of bounds")
	// ErrSourceSet indicates the source was already assigned.
	ErrSourceSet = errors.New("gridgraph: source already set")
	// ErrTargetSet indicates the target was already assigned.
	ErrTargetSet = errors.New("gridgraph: target already set")
	// ErrRoleConflict indicates the cell's role does not allow the change.
	ErrRoleConflict = errors.New("gridgraph: cell role conflict")
	// ErrLocked indicates the grid is owned by a running search.
	ErrLocked = errors.New("gridgraph: grid is locked by a search")
)
