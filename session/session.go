package session

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/gridstar/astar"
	"github.com/katalvlaran/gridstar/gridgraph"
)

// Session holds the board under construction, the pending role choices and,
// once running, the search.
type Session struct {
	opts    Options
	log     *slog.Logger
	phase   Phase
	prompt  string
	warning bool

	grid   *gridgraph.Grid
	source *gridgraph.Coord
	target *gridgraph.Coord
	search *astar.Search
	last   astar.StepResult
}

// New returns a Session waiting for the board size.
func New(opts ...Option) *Session {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	s := &Session{opts: o, log: o.Logger}
	s.enter(PhaseBoardSize, PromptBoardSize)

	return s
}

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Prompt returns the text to show the user.
func (s *Session) Prompt() string { return s.prompt }

// Warning reports whether Prompt is a warning about a rejected action.
func (s *Session) Warning() bool { return s.warning }

// Grid returns the board, or nil before Resize.
func (s *Session) Grid() *gridgraph.Grid { return s.grid }

// Search returns the running or finished search, or nil before
// ConfirmBlocked.
func (s *Session) Search() *astar.Search { return s.search }

// Last returns the result of the most recent Next or FastForward.
func (s *Session) Last() astar.StepResult { return s.last }

// SourceCandidate returns the chosen but unconfirmed source.
func (s *Session) SourceCandidate() (gridgraph.Coord, bool) { return deref(s.source) }

// TargetCandidate returns the chosen but unconfirmed target.
func (s *Session) TargetCandidate() (gridgraph.Coord, bool) { return deref(s.target) }

func deref(c *gridgraph.Coord) (gridgraph.Coord, bool) {
	if c == nil {
		return gridgraph.Coord{}, false
	}
	return *c, true
}

// Resize creates an empty rows×cols board and moves on to SourceSetup.
// An invalid size keeps the phase and returns the gridgraph error.
func (s *Session) Resize(rows, cols int) error {
	if err := s.expect(PhaseBoardSize, "Resize"); err != nil {
		return err
	}
	g, err := gridgraph.New(rows, cols)
	if err != nil {
		s.warn(fmt.Sprintf("Rows and columns must be at least 1. %s", PromptBoardSize))
		return err
	}
	s.grid = g
	s.enter(PhaseSourceSetup, PromptSource)

	return nil
}

// ChooseSource selects (row,col) as the source candidate, replacing any
// earlier choice.
func (s *Session) ChooseSource(row, col int) error {
	if err := s.expect(PhaseSourceSetup, "ChooseSource"); err != nil {
		return err
	}
	c, err := s.pick(row, col, PromptSource)
	if err != nil {
		return err
	}
	s.source = &c
	s.clearWarning(PromptSource)

	return nil
}

// ConfirmSource applies the source candidate to the board.
// Without a candidate it returns ErrSourceRequired and stays in SourceSetup.
func (s *Session) ConfirmSource() error {
	if err := s.expect(PhaseSourceSetup, "ConfirmSource"); err != nil {
		return err
	}
	if s.source == nil {
		s.warn("A source cell is required. " + PromptSource)
		return ErrSourceRequired
	}
	if err := s.grid.SetSource(s.source.Row, s.source.Col); err != nil {
		return err
	}
	s.enter(PhaseTargetSetup, PromptTarget)

	return nil
}

// ChooseTarget selects (row,col) as the target candidate. The source cell
// is rejected with ErrCellRejected.
func (s *Session) ChooseTarget(row, col int) error {
	if err := s.expect(PhaseTargetSetup, "ChooseTarget"); err != nil {
		return err
	}
	c, err := s.pick(row, col, PromptTarget)
	if err != nil {
		return err
	}
	if c == *s.source {
		s.warn("The source cannot be the target. " + PromptTarget)
		return fmt.Errorf("%w: %s is the source", ErrCellRejected, c)
	}
	s.target = &c
	s.clearWarning(PromptTarget)

	return nil
}

// ConfirmTarget applies the target candidate to the board.
// Without a candidate it returns ErrTargetRequired and stays in TargetSetup.
func (s *Session) ConfirmTarget() error {
	if err := s.expect(PhaseTargetSetup, "ConfirmTarget"); err != nil {
		return err
	}
	if s.target == nil {
		s.warn("A target cell is required. " + PromptTarget)
		return ErrTargetRequired
	}
	if err := s.grid.SetTarget(s.target.Row, s.target.Col); err != nil {
		return err
	}
	s.enter(PhaseBlockedSetup, PromptBlocked)

	return nil
}

// ToggleBlocked flips (row,col) between open and wall. Source and target
// cannot be blocked.
func (s *Session) ToggleBlocked(row, col int) error {
	if err := s.expect(PhaseBlockedSetup, "ToggleBlocked"); err != nil {
		return err
	}
	c, err := s.pick(row, col, PromptBlocked)
	if err != nil {
		return err
	}

	cell, _ := s.grid.At(c)
	switch {
	case s.grid.IsSource(cell):
		s.warn("The source cannot be blocked. " + PromptBlocked)
		return fmt.Errorf("%w: %s is the source", ErrCellRejected, c)
	case s.grid.IsTarget(cell):
		s.warn("The target cannot be blocked. " + PromptBlocked)
		return fmt.Errorf("%w: %s is the target", ErrCellRejected, c)
	case cell.State() == gridgraph.Wall:
		err = s.grid.SetUnblocked(row, col)
	default:
		err = s.grid.SetBlocked(row, col)
	}
	if err != nil {
		return err
	}
	s.clearWarning(PromptBlocked)

	return nil
}

// ConfirmBlocked freezes the walls and starts the search.
func (s *Session) ConfirmBlocked() error {
	if err := s.expect(PhaseBlockedSetup, "ConfirmBlocked"); err != nil {
		return err
	}
	opts := append([]astar.Option{astar.WithLogger(s.log)}, s.opts.SearchOptions...)
	search, err := astar.New(s.grid, opts...)
	if err != nil {
		return err
	}
	s.search = search
	s.log.Info("session.search",
		slog.String("run_id", search.ID()),
		slog.Int("walls", s.grid.Count(gridgraph.Wall)),
	)
	s.enter(PhaseRunning, PromptRunning)

	return nil
}

// Next performs one search step. A terminal step moves to Finished.
func (s *Session) Next() (astar.StepResult, error) {
	if err := s.expect(PhaseRunning, "Next"); err != nil {
		return astar.StepResult{}, err
	}
	res, err := s.search.Step()
	if err != nil {
		return astar.StepResult{}, err
	}
	s.settle(res)

	return res, nil
}

// FastForward steps until the search ends. If ctx is cancelled first, the
// session stays Running and the error is returned.
func (s *Session) FastForward(ctx context.Context) (astar.StepResult, error) {
	if err := s.expect(PhaseRunning, "FastForward"); err != nil {
		return astar.StepResult{}, err
	}
	res, err := s.search.Run(ctx)
	if err != nil {
		return astar.StepResult{}, err
	}
	s.settle(res)

	return res, nil
}

// Path returns the found path. See astar.Search.Path.
func (s *Session) Path() ([]*gridgraph.Cell, error) {
	if s.search == nil {
		return nil, fmt.Errorf("%w: Path in %s", ErrWrongPhase, s.phase)
	}
	return s.search.Path()
}

// Reset discards the board and the search and waits for a new size.
func (s *Session) Reset() {
	s.grid = nil
	s.source = nil
	s.target = nil
	s.search = nil
	s.last = astar.StepResult{}
	s.enter(PhaseBoardSize, PromptBoardSize)
}

func (s *Session) settle(res astar.StepResult) {
	s.last = res
	switch res.Outcome {
	case astar.OutcomeFound:
		s.enter(PhaseFinished, PromptFound)
	case astar.OutcomeExhausted:
		s.enter(PhaseFinished, PromptNoPath)
	}
}

// pick validates (row,col) against the board and warns with the phase
// prompt if it is outside.
func (s *Session) pick(row, col int, prompt string) (gridgraph.Coord, error) {
	if _, err := s.grid.Cell(row, col); err != nil {
		s.warn("That cell is outside the board. " + prompt)
		return gridgraph.Coord{}, err
	}
	return gridgraph.Coord{Row: row, Col: col}, nil
}

func (s *Session) expect(p Phase, op string) error {
	if s.phase != p {
		return fmt.Errorf("%w: %s in %s", ErrWrongPhase, op, s.phase)
	}
	return nil
}

func (s *Session) enter(p Phase, prompt string) {
	s.log.Debug("session.phase",
		slog.String("from", s.phase.String()),
		slog.String("to", p.String()),
	)
	s.phase = p
	s.prompt = prompt
	s.warning = false
}

func (s *Session) warn(prompt string) {
	s.prompt = prompt
	s.warning = true
}

func (s *Session) clearWarning(prompt string) {
	s.prompt = prompt
	s.warning = false
}
