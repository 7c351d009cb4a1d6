// Package session drives a board from an empty screen to a finished search,
// one user action at a time, without knowing how the board is drawn.
//
// A Session moves through fixed phases:
//
//	BoardSize → SourceSetup → TargetSetup → BlockedSetup → Running → Finished
//
// Each phase accepts only its own actions; anything else returns
// ErrWrongPhase and leaves the session untouched. Reset returns to
// BoardSize from any phase.
//
// Missing choices do not crash the session. ConfirmSource without a chosen
// source returns ErrSourceRequired and switches the prompt to a warning that
// a front end shows as-is. The same holds for the target and for cells that
// may not take a role (ErrCellRejected).
//
// Running wraps an astar.Search. Next performs one expansion; FastForward
// runs to the end or until its context is cancelled.
//
// A Session is not safe for concurrent use.
package session
