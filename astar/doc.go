// Package astar runs the A* shortest-path search over a gridgraph.Grid one
// expansion at a time, so a caller can render every step.
//
// What:
//
//   - New takes a Grid with source and target set, locks it, and seeds the
//     open set with the source.
//   - Step pops the cell with the lowest f = g + h, and either ends the search
//     (target popped, or open set empty) or expands the cell: it is closed
//     (Visited) and its eligible Moore neighbours are relaxed.
//   - Path returns the cells strictly between source and target, in walking
//     order, once the target has been popped.
//   - Run is the fast-forward loop: it calls Step until the search ends, the
//     context is cancelled, or the optional step budget runs out.
//
// Costs:
//
//	Edge cost and heuristic are both the plane Euclidean distance between
//	cell coordinates. The heuristic is admissible and consistent for an
//	8-connected grid. A cell's h is only ever tightened. On an open grid the
//	first pop of the target yields a shortest path; with walls, see
//	Rediscovery.
//
// Rediscovery:
//
//	Only Open cells and the target are eligible neighbours. Once a cell is in
//	the open set (Neighbor) it is not relaxed again from another expanded
//	cell; its g is the one recorded on first discovery. Textbook A* would
//	re-relax queued cells through any neighbour, so around walls the path
//	found can be longer than the shortest one. The target is the exception:
//	it keeps its role while queued, so a cheaper route to it still updates
//	its queue position.
//
// State machine:
//
//	Ready -> (Step)* -> Found | Exhausted. A terminated search returns
//	ErrTerminated from Step and Run. Exhaustion is a normal outcome, not an
//	error.
//
// Errors:
//
//   - ErrNilGrid, ErrNoSource, ErrNoTarget, ErrGridInUse: invalid New input.
//   - ErrOptionViolation: an invalid Option was supplied.
//   - ErrTerminated: Step or Run after Found or Exhausted.
//   - ErrNoPath:     Path before the search reached Found.
//   - ErrStepLimit:  Run stopped by WithMaxSteps.
//   - ErrClosedCellPopped: panic value when a closed cell comes off the open
//     set, which means the bookkeeping is corrupt.
//   - ErrCorruptOpenSet: panic value when the open set refuses a push or an
//     update, for the same reason.
//
// Thread safety:
//
//	A Search mutates the cells of its Grid in place and is not safe for
//	concurrent use.
package astar
