package session

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/katalvlaran/gridstar/astar"
)

var (
	// ErrWrongPhase is returned for an action the current phase does not accept.
	ErrWrongPhase = errors.New("session: action not allowed in this phase")

	// ErrSourceRequired is returned by ConfirmSource before a source is chosen.
	ErrSourceRequired = errors.New("session: a source cell is required")

	// ErrTargetRequired is returned by ConfirmTarget before a target is chosen.
	ErrTargetRequired = errors.New("session: a target cell is required")

	// ErrCellRejected is returned when a chosen cell cannot take the role,
	// e.g. a target on the source or a wall on the target.
	ErrCellRejected = errors.New("session: cell cannot take this role")
)

// Phase is the stage a Session is in.
type Phase int

const (
	// PhaseClean is the zero Phase, before New finishes.
	PhaseClean Phase = iota
	// PhaseBoardSize waits for Resize.
	PhaseBoardSize
	// PhaseSourceSetup accepts ChooseSource and ConfirmSource.
	PhaseSourceSetup
	// PhaseTargetSetup accepts ChooseTarget and ConfirmTarget.
	PhaseTargetSetup
	// PhaseBlockedSetup accepts ToggleBlocked and ConfirmBlocked.
	PhaseBlockedSetup
	// PhaseRunning accepts Next and FastForward.
	PhaseRunning
	// PhaseFinished holds the final board until Reset.
	PhaseFinished
)

var phaseNames = [...]string{
	PhaseClean:        "clean",
	PhaseBoardSize:    "board-size",
	PhaseSourceSetup:  "source-setup",
	PhaseTargetSetup:  "target-setup",
	PhaseBlockedSetup: "blocked-setup",
	PhaseRunning:      "running",
	PhaseFinished:     "finished",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("Phase(%d)", int(p))
	}
	return phaseNames[p]
}

// Prompt texts shown for each phase.
const (
	PromptBoardSize = "Set the number of rows and columns for the board."
	PromptSource    = "Select a cell to be the source."
	PromptTarget    = "Select a cell to be the target."
	PromptBlocked   = "Select which cells should be blocked."
	PromptRunning   = "Find path with least steps using A* search algorithm. Press next to iterate."
	PromptFound     = "Path found."
	PromptNoPath    = "No path exists between source and target."
)

// Option configures a Session.
type Option func(*Options)

// Options holds Session settings.
type Options struct {
	// Logger receives phase transitions and is handed to every search.
	Logger *slog.Logger

	// SearchOptions are passed to astar.New when the search starts.
	SearchOptions []astar.Option
}

// DefaultOptions returns Options with a discarding logger and no search
// options.
func DefaultOptions() Options {
	return Options{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithLogger sets the session logger. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithSearchOptions appends options for the search started by ConfirmBlocked.
func WithSearchOptions(opts ...astar.Option) Option {
	return func(o *Options) {
		o.SearchOptions = append(o.SearchOptions, opts...)
	}
}
