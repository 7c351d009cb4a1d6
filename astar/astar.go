package astar

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/katalvlaran/gridstar/gridgraph"
	"github.com/katalvlaran/gridstar/pqueue"
)

// Search holds the mutable state of one A* attempt over a borrowed Grid.
type Search struct {
	id       string
	grid     *gridgraph.Grid
	opts     Options
	log      *slog.Logger
	open     *pqueue.Queue[*gridgraph.Cell, gridgraph.Coord]
	cameFrom map[gridgraph.Coord]gridgraph.Coord
	state    State
	steps    int
	path     []*gridgraph.Cell
}

// New prepares a search over g, applying any number of functional Options.
//
// Preconditions (in order):
//  1. g is non-nil (ErrNilGrid).
//  2. Options are valid (ErrOptionViolation).
//  3. g has a source (ErrNoSource) and a target (ErrNoTarget).
//  4. g was not taken by an earlier search (ErrGridInUse).
//
// New locks g: walls can no longer change. The open set starts with the
// source alone, whose costs the grid seeded when source and target were set.
func New(g *gridgraph.Grid, opts ...Option) (*Search, error) {
	if g == nil {
		return nil, ErrNilGrid
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if g.Source() == nil {
		return nil, ErrNoSource
	}
	if g.Target() == nil {
		return nil, ErrNoTarget
	}
	if g.Locked() {
		return nil, ErrGridInUse
	}
	g.Lock()

	s := &Search{
		id:   uuid.Must(uuid.NewV7()).String(),
		grid: g,
		opts: o,
		open: pqueue.New(
			func(c *gridgraph.Cell) gridgraph.Coord { return c.Coord() },
			func(c *gridgraph.Cell) float64 {
				f, _ := c.TotalDistance()
				return f
			},
		),
		cameFrom: make(map[gridgraph.Coord]gridgraph.Coord),
		state:    StateReady,
	}
	s.log = o.Logger.With(slog.String("run_id", s.id))

	if err := s.open.Push(g.Source()); err != nil {
		panic(fmt.Errorf("%w: push %s: %w", ErrCorruptOpenSet, g.Source().Coord(), err))
	}
	s.log.Debug("astar.start",
		slog.String("source", g.Source().Coord().String()),
		slog.String("target", g.Target().Coord().String()),
		slog.Int("rows", g.Rows()),
		slog.Int("columns", g.Columns()),
	)

	return s, nil
}

// ID returns the unique identifier of this search run.
func (s *Search) ID() string { return s.id }

// Grid returns the grid the search runs on.
func (s *Search) Grid() *gridgraph.Grid { return s.grid }

// State returns the lifecycle stage.
func (s *Search) State() State { return s.state }

// Steps returns how many cells have been popped so far.
func (s *Search) Steps() int { return s.steps }

// OpenLen returns the size of the open set.
func (s *Search) OpenLen() int { return s.open.Len() }

// Step advances the search by exactly one pop. See StepResult for the three
// possible outcomes. Returns ErrTerminated once the search has ended.
//
// Work per call is bounded: one pop plus the relaxation of at most eight
// neighbours.
func (s *Search) Step() (StepResult, error) {
	if s.state != StateReady {
		return StepResult{}, fmt.Errorf("%w: search is %s", ErrTerminated, s.state)
	}

	current, err := s.open.Pop()
	if err != nil {
		return s.finish(StepResult{Outcome: OutcomeExhausted}), nil
	}
	s.steps++
	if current.State() == gridgraph.Visited {
		panic(fmt.Errorf("%w: %s", ErrClosedCellPopped, current.Coord()))
	}

	if s.grid.IsTarget(current) {
		s.markPath()
		return s.finish(StepResult{
			Outcome: OutcomeFound,
			Cell:    current,
			Path:    cloneCells(s.path),
		}), nil
	}

	if !s.grid.IsSource(current) {
		current.SetState(gridgraph.Visited)
	}
	s.opts.OnExpand(current)

	updated := s.relax(current)
	s.log.Debug("astar.step",
		slog.Int("step", s.steps),
		slog.String("cell", current.String()),
		slog.Int("updated", len(updated)),
		slog.Int("open", s.open.Len()),
	)

	return StepResult{
		Outcome: OutcomeExpanded,
		Cell:    current,
		Updated: updated,
	}, nil
}

// relax examines every eligible neighbour of current and lowers its costs
// when the route through current is strictly shorter than what it has:
//
//	g' = g(current) + |current, n|
//	h' = min(h(n), |n, target|)
//
// Relaxed cells are repositioned in the open set if queued, or pushed (and
// marked Neighbor unless they are the target) otherwise.
func (s *Search) relax(current *gridgraph.Cell) []*gridgraph.Cell {
	target := s.grid.Target()
	g, _ := current.DistanceToSource()

	var updated []*gridgraph.Cell
	for _, n := range s.grid.Neighbors(current) {
		candidate := g + current.DistanceTo(n)
		if known, ok := n.DistanceToSource(); ok && candidate >= known {
			continue
		}

		s.cameFrom[n.Coord()] = current.Coord()
		n.SetDistanceToSource(candidate)
		h := n.DistanceTo(target)
		if known, ok := n.DistanceToTarget(); ok && known < h {
			h = known
		}
		n.SetDistanceToTarget(h)
		updated = append(updated, n)

		if s.open.Contains(n) {
			f, _ := n.TotalDistance()
			if err := s.open.Update(n, f); err != nil {
				panic(fmt.Errorf("%w: update %s: %w", ErrCorruptOpenSet, n.Coord(), err))
			}
		} else {
			if !s.grid.IsTarget(n) {
				n.SetState(gridgraph.Neighbor)
			}
			if err := s.open.Push(n); err != nil {
				panic(fmt.Errorf("%w: push %s: %w", ErrCorruptOpenSet, n.Coord(), err))
			}
		}
		s.opts.OnRelax(current, n)
	}

	return updated
}

// markPath walks the predecessor chain back from the target and tags every
// cell strictly between target and source as gridgraph.Path.
func (s *Search) markPath() {
	src := s.grid.Source().Coord()
	at := s.grid.Target().Coord()
	var rev []*gridgraph.Cell
	for at != src {
		prev, ok := s.cameFrom[at]
		if !ok {
			panic(fmt.Errorf("astar: broken predecessor chain at %s", at))
		}
		if prev == src {
			break
		}
		c, _ := s.grid.At(prev)
		c.SetState(gridgraph.Path)
		rev = append(rev, c)
		at = prev
	}

	s.path = make([]*gridgraph.Cell, len(rev))
	for i, c := range rev {
		s.path[len(rev)-1-i] = c
	}
}

// finish records the terminal state, logs it and runs OnFinish.
func (s *Search) finish(res StepResult) StepResult {
	switch res.Outcome {
	case OutcomeFound:
		s.state = StateFound
		cost, _ := s.Cost()
		s.log.Info("astar.found",
			slog.Int("steps", s.steps),
			slog.Int("path_len", len(s.path)),
			slog.Float64("cost", cost),
		)
	case OutcomeExhausted:
		s.state = StateExhausted
		s.log.Info("astar.exhausted", slog.Int("steps", s.steps))
	}
	s.opts.OnFinish(res)

	return res
}

// Path returns the cells strictly between source and target, ordered from
// the source side to the target side. Each call returns a fresh slice with
// the same cells. Returns ErrNoPath unless the search ended Found.
// When source and target coincide the path is empty.
func (s *Search) Path() ([]*gridgraph.Cell, error) {
	if s.state != StateFound {
		return nil, fmt.Errorf("%w: search is %s", ErrNoPath, s.state)
	}
	return cloneCells(s.path), nil
}

func cloneCells(cells []*gridgraph.Cell) []*gridgraph.Cell {
	out := make([]*gridgraph.Cell, len(cells))
	copy(out, cells)
	return out
}

// Cost returns the length of the found path (the target's g).
// The second result is false unless the search ended Found.
func (s *Search) Cost() (float64, bool) {
	if s.state != StateFound {
		return 0, false
	}
	return s.grid.Target().DistanceToSource()
}

// Run steps until the search ends and returns the terminal StepResult.
// It returns ctx.Err() (wrapped) if ctx is cancelled between steps and
// ErrStepLimit once WithMaxSteps is exhausted; in both cases the search
// stays Ready and can be resumed.
func (s *Search) Run(ctx context.Context) (StepResult, error) {
	for {
		if err := ctx.Err(); err != nil {
			return StepResult{}, fmt.Errorf("astar: run interrupted after %d steps: %w", s.steps, err)
		}
		if s.opts.MaxSteps > 0 && s.steps >= s.opts.MaxSteps && s.state == StateReady {
			return StepResult{}, fmt.Errorf("%w: %d", ErrStepLimit, s.opts.MaxSteps)
		}
		res, err := s.Step()
		if err != nil {
			return StepResult{}, err
		}
		if res.Done() {
			return res, nil
		}
	}
}
