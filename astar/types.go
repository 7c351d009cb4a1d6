package astar

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/katalvlaran/gridstar/gridgraph"
)

// Sentinel errors for search construction and stepping.
var (
	// ErrNilGrid is returned if a nil grid is passed to New.
	ErrNilGrid = errors.New("astar: grid is nil")

	// ErrNoSource is returned if the grid has no source cell.
	ErrNoSource = errors.New("astar: grid must have a source cell")

	// ErrNoTarget is returned if the grid has no target cell.
	ErrNoTarget = errors.New("astar: grid must have a target cell")

	// ErrGridInUse is returned if the grid was already taken by a search.
	ErrGridInUse = errors.New("astar: grid already used by a search")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("astar: invalid option supplied")

	// ErrTerminated is returned by Step and Run once the search has ended.
	ErrTerminated = errors.New("astar: search already terminated")

	// ErrNoPath is returned by Path before the target has been reached.
	ErrNoPath = errors.New("astar: path not found")

	// ErrStepLimit is returned by Run when the step budget is spent.
	ErrStepLimit = errors.New("astar: step limit reached")

	// ErrClosedCellPopped is the panic value raised when an already closed
	// cell is popped from the open set.
	ErrClosedCellPopped = errors.New("astar: popped a cell that was already visited")

	// ErrCorruptOpenSet is the panic value raised when the open set rejects
	// a push or an update the search has already checked for.
	ErrCorruptOpenSet = errors.New("astar: open set out of sync with cell roles")
)

// State is the lifecycle stage of a Search.
type State int

const (
	// StateReady accepts further steps.
	StateReady State = iota
	// StateFound means the target was popped; Path is available.
	StateFound
	// StateExhausted means the open set ran dry; no path exists.
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateFound:
		return "found"
	case StateExhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Outcome tags the result of a single Step.
type Outcome int

const (
	// OutcomeExpanded means an ordinary cell was expanded.
	OutcomeExpanded Outcome = iota
	// OutcomeFound means the target was popped.
	OutcomeFound
	// OutcomeExhausted means the open set was empty.
	OutcomeExhausted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeExpanded:
		return "expanded"
	case OutcomeFound:
		return "found"
	case OutcomeExhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// StepResult reports what one Step did, with enough detail to repaint:
//
//   - Expanded:  Cell is the expanded cell, Updated the neighbours whose
//     costs changed (possibly empty).
//   - Found:     Cell is the target, Path the cells between source and
//     target (already marked gridgraph.Path).
//   - Exhausted: no cells.
type StepResult struct {
	Outcome Outcome
	Cell    *gridgraph.Cell
	Updated []*gridgraph.Cell
	Path    []*gridgraph.Cell
}

// Done reports whether the result ends the search.
func (r StepResult) Done() bool { return r.Outcome != OutcomeExpanded }

// Option configures a Search via functional arguments.
// Invalid values are recorded and surfaced as ErrOptionViolation by New.
type Option func(*Options)

// Options holds the parameters and hooks of a Search.
type Options struct {
	// Logger receives a debug record per step and an info record when the
	// search ends.
	Logger *slog.Logger

	// OnExpand is called with each expanded cell, after it is closed.
	OnExpand func(c *gridgraph.Cell)

	// OnRelax is called for every neighbour whose costs were lowered,
	// after it has been queued or repositioned.
	OnRelax func(from, to *gridgraph.Cell)

	// OnFinish is called once with the terminal StepResult.
	OnFinish func(res StepResult)

	// MaxSteps, if > 0, bounds the number of steps Run may take.
	// A value of 0 disables the limit.
	MaxSteps int

	err error
}

// DefaultOptions returns Options with sane defaults:
//   - a logger that discards everything
//   - no-op hooks
//   - no step limit.
func DefaultOptions() Options {
	return Options{
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		OnExpand: func(*gridgraph.Cell) {},
		OnRelax:  func(_, _ *gridgraph.Cell) {},
		OnFinish: func(StepResult) {},
	}
}

// WithLogger sets the logger used for step and outcome records.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithOnExpand registers a callback run on every expansion.
func WithOnExpand(fn func(c *gridgraph.Cell)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnExpand = fn
		}
	}
}

// WithOnRelax registers a callback run for every relaxed neighbour.
func WithOnRelax(fn func(from, to *gridgraph.Cell)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnRelax = fn
		}
	}
}

// WithOnFinish registers a callback run once when the search ends.
func WithOnFinish(fn func(res StepResult)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnFinish = fn
		}
	}
}

// WithMaxSteps bounds Run to n steps.
//
//	n > 0: at most n steps
//	n == 0: no limit
//	n < 0: invalid option -> ErrOptionViolation
func WithMaxSteps(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxSteps cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxSteps = n
	}
}
