// Package gridstar is a step-by-step A* playground on a 2D grid: set a board
// size, pick a source and a target, block a few cells, then watch the search
// expand one cell at a time until it reaches the target or runs out of cells.
//
// Everything is organized under a few subpackages:
//
//	pqueue/      indexed min-priority queue with in-place key updates
//	gridgraph/   Coord, Cell roles (OPEN, WALL, SRCE, TRGT, VSTD, NHBR, PATH) and the Grid
//	astar/       the incremental search: Step, Run, Path
//	session/     setup and run phases with user-facing prompts
//	cmd/gridstar/ terminal driver
//
// Quick ASCII example (S source, T target, # wall, * path):
//
//	S . . . .
//	. * . . .
//	. . * . .
//	. . * # .
//	. . . * T
//
// Costs are Euclidean: a straight move costs 1 and a diagonal move costs √2,
// and the heuristic is the straight-line distance to the target.
//
//	go get github.com/katalvlaran/gridstar
package gridstar
