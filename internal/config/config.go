// Package config collects the command-line settings of gridstar. Every flag
// falls back to a GRIDSTAR_* environment variable, which falls back to a
// built-in default.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/katalvlaran/gridstar/gridgraph"
)

// ErrBadCoord is returned for a coordinate that is not "row,col".
var ErrBadCoord = errors.New("config: coordinate must be row,col")

// Config aggregates the settings of one run.
type Config struct {
	Board   BoardConfig
	Run     RunConfig
	Logging LoggingConfig
}

// BoardConfig describes the board to search. MapFile, when set, replaces
// the other fields.
type BoardConfig struct {
	Rows    int
	Columns int
	Source  gridgraph.Coord
	Target  gridgraph.Coord
	Walls   []gridgraph.Coord
	MapFile string
}

// RunConfig controls how the search is driven.
type RunConfig struct {
	Step     bool
	Delay    time.Duration
	Costs    bool
	MaxSteps int
}

// LoggingConfig controls structured logging settings.
type LoggingConfig struct {
	Level         string
	Format        string // text|json
	IncludeCaller bool
}

const (
	defaultRows     = 5
	defaultColumns  = 5
	defaultSource   = "0,0"
	defaultTarget   = "4,4"
	defaultLogLevel = "info"
	defaultFormat   = "text"
)

// Load parses args (without the program name) over environment defaults
// looked up with getenv. Parse errors and bad values are returned; usage
// text goes to out.
func Load(args []string, getenv func(string) string, out io.Writer) (Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	fs := flag.NewFlagSet("gridstar", flag.ContinueOnError)
	fs.SetOutput(out)

	var (
		rows     = fs.Int("rows", intOrDefault(getenv, "GRIDSTAR_ROWS", defaultRows), "number of board rows")
		cols     = fs.Int("cols", intOrDefault(getenv, "GRIDSTAR_COLS", defaultColumns), "number of board columns")
		source   = fs.String("source", valueOrDefault(getenv, "GRIDSTAR_SOURCE", defaultSource), "source cell as row,col")
		target   = fs.String("target", valueOrDefault(getenv, "GRIDSTAR_TARGET", defaultTarget), "target cell as row,col")
		walls    = fs.String("walls", getenv("GRIDSTAR_WALLS"), "blocked cells as row,col;row,col")
		mapFile  = fs.String("map", getenv("GRIDSTAR_MAP"), "read the board from an ASCII map file (. # S T)")
		step     = fs.Bool("step", boolOrDefault(getenv, "GRIDSTAR_STEP", false), "wait for Enter before each step")
		delay    = fs.Duration("delay", durationOrDefault(getenv, "GRIDSTAR_DELAY", 0), "pause between steps when fast-forwarding")
		costs    = fs.Bool("costs", boolOrDefault(getenv, "GRIDSTAR_COSTS", false), "print estimated total distances after each step")
		maxSteps = fs.Int("max-steps", intOrDefault(getenv, "GRIDSTAR_MAX_STEPS", 0), "stop fast-forwarding after n steps; 0 for unlimited")
		verbose  = fs.Bool("verbose", boolOrDefault(getenv, "GRIDSTAR_VERBOSE", false), "enable debug logging")
		level    = fs.String("log-level", valueOrDefault(getenv, "GRIDSTAR_LOG_LEVEL", defaultLogLevel), "log level: debug|info|warn|error")
		format   = fs.String("log-format", valueOrDefault(getenv, "GRIDSTAR_LOG_FORMAT", defaultFormat), "log format: text|json")
		caller   = fs.Bool("log-caller", boolOrDefault(getenv, "GRIDSTAR_LOG_CALLER", false), "include source positions in logs")
	)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Config{
		Board: BoardConfig{
			Rows:    *rows,
			Columns: *cols,
			MapFile: *mapFile,
		},
		Run: RunConfig{
			Step:     *step,
			Delay:    *delay,
			Costs:    *costs,
			MaxSteps: *maxSteps,
		},
		Logging: LoggingConfig{
			Level:         *level,
			Format:        *format,
			IncludeCaller: *caller,
		},
	}
	if *verbose {
		cfg.Logging.Level = "debug"
	}
	if cfg.Run.MaxSteps < 0 {
		return Config{}, fmt.Errorf("config: max-steps cannot be negative (%d)", cfg.Run.MaxSteps)
	}
	if cfg.Board.MapFile != "" {
		return cfg, nil
	}

	var err error
	if cfg.Board.Source, err = ParseCoord(*source); err != nil {
		return Config{}, fmt.Errorf("invalid source: %w", err)
	}
	if cfg.Board.Target, err = ParseCoord(*target); err != nil {
		return Config{}, fmt.Errorf("invalid target: %w", err)
	}
	if cfg.Board.Walls, err = ParseCoords(*walls); err != nil {
		return Config{}, fmt.Errorf("invalid walls: %w", err)
	}

	return cfg, nil
}

// ParseCoord parses "row,col". Surrounding spaces are ignored.
func ParseCoord(s string) (gridgraph.Coord, error) {
	rs, cs, ok := strings.Cut(strings.TrimSpace(s), ",")
	if !ok {
		return gridgraph.Coord{}, fmt.Errorf("%w: %q", ErrBadCoord, s)
	}
	r, err := strconv.Atoi(strings.TrimSpace(rs))
	if err != nil {
		return gridgraph.Coord{}, fmt.Errorf("%w: %q", ErrBadCoord, s)
	}
	c, err := strconv.Atoi(strings.TrimSpace(cs))
	if err != nil {
		return gridgraph.Coord{}, fmt.Errorf("%w: %q", ErrBadCoord, s)
	}
	return gridgraph.Coord{Row: r, Col: c}, nil
}

// ParseCoords parses a ';'-separated list of coordinates. Empty entries are
// skipped, so "" yields no coordinates.
func ParseCoords(s string) ([]gridgraph.Coord, error) {
	var out []gridgraph.Coord
	for _, part := range strings.Split(s, ";") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		c, err := ParseCoord(part)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func valueOrDefault(getenv func(string) string, key, fallback string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return fallback
}

func boolOrDefault(getenv func(string) string, key string, fallback bool) bool {
	if v := getenv(key); v != "" {
		val, err := strconv.ParseBool(v)
		if err != nil {
			return fallback
		}
		return val
	}
	return fallback
}

func intOrDefault(getenv func(string) string, key string, fallback int) int {
	if v := getenv(key); v != "" {
		if val, err := strconv.Atoi(v); err == nil {
			return val
		}
	}
	return fallback
}

func durationOrDefault(getenv func(string) string, key string, fallback time.Duration) time.Duration {
	if v := getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
