// Command gridstar steps through an A* search on a small grid in the
// terminal.
//
// Usage:
//
//	gridstar -rows 5 -cols 5 -source 0,0 -target 4,4 -walls "3,3;2,3" -step
//	gridstar -map board.txt -delay 200ms -costs
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/katalvlaran/gridstar/astar"
	"github.com/katalvlaran/gridstar/gridgraph"
	"github.com/katalvlaran/gridstar/internal/config"
	"github.com/katalvlaran/gridstar/internal/logging"
	"github.com/katalvlaran/gridstar/internal/render"
	"github.com/katalvlaran/gridstar/session"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Getenv, os.Stdin, os.Stdout, os.Stderr))
}

// run executes one gridstar invocation and returns the process exit code:
// 0 when a path is found, 1 on errors, 2 when no path exists.
func run(ctx context.Context, args []string, getenv func(string) string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := config.Load(args, getenv, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 1
	}
	logger := logging.New(cfg.Logging, stderr)

	layout, err := readLayout(cfg.Board)
	if err != nil {
		logger.Error("board", slog.Any("error", err))
		return 1
	}

	s := session.New(
		session.WithLogger(logger),
		session.WithSearchOptions(astar.WithMaxSteps(cfg.Run.MaxSteps)),
	)
	if err := setup(s, layout); err != nil {
		fmt.Fprintln(stdout, s.Prompt())
		logger.Error("setup", slog.Any("error", err))
		return 1
	}

	g := s.Grid()
	if src, dst := g.Source().Coord(), g.Target().Coord(); !g.Reachable(src, dst) {
		comps := g.Components()
		logger.Warn("target is not reachable from source; the search will exhaust",
			slog.Int("components", len(comps)),
			slog.Int("source_component", g.ComponentSize(comps, src)),
			slog.Int("target_component", g.ComponentSize(comps, dst)),
		)
	}
	if err := s.ConfirmBlocked(); err != nil {
		logger.Error("start", slog.Any("error", err))
		return 1
	}

	fmt.Fprintln(stdout, s.Prompt())
	fmt.Fprintln(stdout, render.Legend())
	fmt.Fprint(stdout, render.Board(g))

	d := driver{s: s, cfg: cfg.Run, out: stdout, in: bufio.NewReader(stdin)}
	if err := d.drive(ctx); err != nil {
		logger.Error("search", slog.Any("error", err))
		return 1
	}

	fmt.Fprintln(stdout)
	fmt.Fprint(stdout, render.Board(g))
	fmt.Fprintln(stdout, s.Prompt())
	path, err := s.Path()
	if err != nil {
		return 2
	}
	cost, _ := s.Search().Cost()
	fmt.Fprintf(stdout, "path: %s\ncost: %.2f\nsteps: %d\n", render.Path(path), cost, s.Search().Steps())

	return 0
}

// layout is a board description independent of where it came from.
type layout struct {
	rows, cols     int
	source, target gridgraph.Coord
	walls          []gridgraph.Coord
}

// readLayout returns the board from the map file if one is set, otherwise
// from the individual settings.
func readLayout(cfg config.BoardConfig) (layout, error) {
	if cfg.MapFile == "" {
		return layout{
			rows:   cfg.Rows,
			cols:   cfg.Columns,
			source: cfg.Source,
			target: cfg.Target,
			walls:  cfg.Walls,
		}, nil
	}

	data, err := os.ReadFile(cfg.MapFile)
	if err != nil {
		return layout{}, err
	}
	var rows []string
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimRight(line, "\r \t"); line != "" {
			rows = append(rows, line)
		}
	}
	g, err := gridgraph.FromRows(rows)
	if err != nil {
		return layout{}, fmt.Errorf("%s: %w", cfg.MapFile, err)
	}
	if g.Source() == nil || g.Target() == nil {
		return layout{}, fmt.Errorf("%s: map needs one S and one T", cfg.MapFile)
	}

	l := layout{
		rows:   g.Rows(),
		cols:   g.Columns(),
		source: g.Source().Coord(),
		target: g.Target().Coord(),
	}
	g.Each(func(c *gridgraph.Cell) {
		if c.State() == gridgraph.Wall {
			l.walls = append(l.walls, c.Coord())
		}
	})

	return l, nil
}

// setup replays l through the session's setup phases. A wall listed more
// than once is blocked once.
func setup(s *session.Session, l layout) error {
	if err := s.Resize(l.rows, l.cols); err != nil {
		return err
	}
	if err := s.ChooseSource(l.source.Row, l.source.Col); err != nil {
		return err
	}
	if err := s.ConfirmSource(); err != nil {
		return err
	}
	if err := s.ChooseTarget(l.target.Row, l.target.Col); err != nil {
		return err
	}
	if err := s.ConfirmTarget(); err != nil {
		return err
	}
	for _, w := range l.walls {
		if c, err := s.Grid().At(w); err == nil && c.State() == gridgraph.Wall {
			continue
		}
		if err := s.ToggleBlocked(w.Row, w.Col); err != nil {
			return err
		}
	}
	return nil
}

// driver advances a running session according to RunConfig.
type driver struct {
	s   *session.Session
	cfg config.RunConfig
	out io.Writer
	in  *bufio.Reader
}

func (d *driver) drive(ctx context.Context) error {
	if !d.cfg.Step && d.cfg.Delay == 0 && !d.cfg.Costs {
		_, err := d.s.FastForward(ctx)
		return err
	}

	for d.s.Phase() == session.PhaseRunning {
		if d.s.Search().Steps() >= d.cfg.MaxSteps && d.cfg.MaxSteps > 0 {
			return fmt.Errorf("%w: %d", astar.ErrStepLimit, d.cfg.MaxSteps)
		}
		if err := d.wait(ctx); err != nil {
			return err
		}
		res, err := d.s.Next()
		if err != nil {
			return err
		}
		d.show(res)
	}
	return nil
}

// wait blocks for Enter in step mode or for the configured delay.
func (d *driver) wait(ctx context.Context) error {
	if d.cfg.Step {
		fmt.Fprint(d.out, "[enter] next: ")
		line, err := d.in.ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("reading input: %w", err)
		}
		if strings.TrimSpace(line) == "q" {
			return context.Canceled
		}
		return ctx.Err()
	}
	if d.cfg.Delay <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d.cfg.Delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (d *driver) show(res astar.StepResult) {
	switch res.Outcome {
	case astar.OutcomeExpanded:
		fmt.Fprintf(d.out, "\nstep %d: expanded %s, %d updated\n", d.s.Search().Steps(), res.Cell.Coord(), len(res.Updated))
	case astar.OutcomeFound:
		fmt.Fprintf(d.out, "\nstep %d: reached target %s\n", d.s.Search().Steps(), res.Cell.Coord())
	case astar.OutcomeExhausted:
		fmt.Fprintf(d.out, "\nstep %d: open set exhausted\n", d.s.Search().Steps())
	}
	grid := d.s.Grid()
	if d.cfg.Costs {
		fmt.Fprint(d.out, render.Costs(grid))
		return
	}
	fmt.Fprint(d.out, render.Board(grid))
}
