package astar_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/gridstar/astar"
	"github.com/katalvlaran/gridstar/gridgraph"
)

const eps = 1e-9

// mustGrid builds a grid from an ASCII layout or fails the test.
func mustGrid(t testing.TB, layout ...string) *gridgraph.Grid {
	t.Helper()
	g, err := gridgraph.FromRows(layout)
	require.NoError(t, err)
	return g
}

// coords flattens cells to their coordinates for compact comparisons.
func coords(cells []*gridgraph.Cell) []gridgraph.Coord {
	out := make([]gridgraph.Coord, len(cells))
	for i, c := range cells {
		out[i] = c.Coord()
	}
	return out
}

// SearchSuite drives the walled 5×5 scenario: source (0,0), target (4,4),
// wall at (3,3).
type SearchSuite struct {
	suite.Suite
	grid   *gridgraph.Grid
	search *astar.Search
}

func (s *SearchSuite) SetupTest() {
	s.grid = mustGrid(s.T(),
		"S....",
		".....",
		".....",
		"...#.",
		"....T",
	)
	var err error
	s.search, err = astar.New(s.grid)
	s.Require().NoError(err)
}

func (s *SearchSuite) TestFirstStepExpandsSource() {
	res, err := s.search.Step()
	s.Require().NoError(err)

	s.Equal(astar.OutcomeExpanded, res.Outcome)
	s.Equal(gridgraph.Coord{Row: 0, Col: 0}, res.Cell.Coord())
	s.Equal(gridgraph.Source, res.Cell.State(), "source keeps its role")
	s.Equal([]gridgraph.Coord{{Row: 0, Col: 1}, {Row: 1, Col: 0}, {Row: 1, Col: 1}}, coords(res.Updated))

	for _, n := range res.Updated {
		s.Equal(gridgraph.Neighbor, n.State())
		g, ok := n.DistanceToSource()
		s.True(ok)
		s.InDelta(gridgraph.Distance(gridgraph.Coord{}, n.Coord()), g, eps)
	}
	s.Equal(3, s.search.OpenLen())
}

func (s *SearchSuite) TestSecondStepFollowsDiagonal() {
	_, err := s.search.Step()
	s.Require().NoError(err)

	res, err := s.search.Step()
	s.Require().NoError(err)
	s.Equal(gridgraph.Coord{Row: 1, Col: 1}, res.Cell.Coord())
	s.Equal(gridgraph.Visited, res.Cell.State())
	s.Equal([]gridgraph.Coord{
		{Row: 0, Col: 2}, {Row: 1, Col: 2}, {Row: 2, Col: 0}, {Row: 2, Col: 1}, {Row: 2, Col: 2},
	}, coords(res.Updated), "already queued neighbours are not rediscovered")
}

func (s *SearchSuite) TestRunToFound() {
	var res astar.StepResult
	for i := 0; i < 100 && !res.Done(); i++ {
		var err error
		res, err = s.search.Step()
		s.Require().NoError(err)
	}

	s.Require().Equal(astar.OutcomeFound, res.Outcome)
	s.Equal(astar.StateFound, s.search.State())
	s.Equal(12, s.search.Steps())
	s.Equal(gridgraph.Coord{Row: 4, Col: 4}, res.Cell.Coord())

	want := []gridgraph.Coord{{Row: 1, Col: 1}, {Row: 2, Col: 2}, {Row: 3, Col: 2}, {Row: 4, Col: 3}}
	s.Equal(want, coords(res.Path))
	for _, c := range res.Path {
		s.Equal(gridgraph.Path, c.State())
	}
	s.Equal(gridgraph.Source, s.grid.Source().State())
	s.Equal(gridgraph.Target, s.grid.Target().State())

	cost, ok := s.search.Cost()
	s.True(ok)
	s.InDelta(3*math.Sqrt2+2, cost, eps)
	s.Equal(6, s.grid.Count(gridgraph.Visited))
}

func (s *SearchSuite) TestPathIdempotent() {
	_, err := s.search.Run(context.Background())
	s.Require().NoError(err)

	p1, err := s.search.Path()
	s.Require().NoError(err)
	p2, err := s.search.Path()
	s.Require().NoError(err)

	s.Equal(coords(p1), coords(p2))
	for i := range p1 {
		s.Same(p1[i], p2[i])
	}
	p1[0] = nil
	p3, _ := s.search.Path()
	s.NotNil(p3[0], "callers get a fresh slice")
}

func (s *SearchSuite) TestPathBeforeFound() {
	_, err := s.search.Path()
	s.ErrorIs(err, astar.ErrNoPath)

	_, ok := s.search.Cost()
	s.False(ok)
}

func (s *SearchSuite) TestStepAfterTermination() {
	res, err := s.search.Run(context.Background())
	s.Require().NoError(err)
	s.Equal(astar.OutcomeFound, res.Outcome)

	_, err = s.search.Step()
	s.ErrorIs(err, astar.ErrTerminated)
	_, err = s.search.Run(context.Background())
	s.ErrorIs(err, astar.ErrTerminated)
}

func (s *SearchSuite) TestGridLocked() {
	s.True(s.grid.Locked())
	s.ErrorIs(s.grid.SetBlocked(0, 4), gridgraph.ErrLocked)

	_, err := astar.New(s.grid)
	s.ErrorIs(err, astar.ErrGridInUse)
}

func (s *SearchSuite) TestRunID() {
	s.NotEmpty(s.search.ID())

	other, err := astar.New(mustGrid(s.T(), "ST"))
	s.Require().NoError(err)
	s.NotEqual(s.search.ID(), other.ID())
}

func TestSearchSuite(t *testing.T) {
	suite.Run(t, new(SearchSuite))
}

func TestNew_Errors(t *testing.T) {
	_, err := astar.New(nil)
	assert.ErrorIs(t, err, astar.ErrNilGrid)

	_, err = astar.New(mustGrid(t, "..T"))
	assert.ErrorIs(t, err, astar.ErrNoSource)

	_, err = astar.New(mustGrid(t, "S.."))
	assert.ErrorIs(t, err, astar.ErrNoTarget)

	g := mustGrid(t, "S.T")
	_, err = astar.New(g, astar.WithMaxSteps(-1))
	assert.ErrorIs(t, err, astar.ErrOptionViolation)
	assert.False(t, g.Locked(), "a rejected search leaves the grid alone")
}

func TestSourceIsTarget(t *testing.T) {
	g, err := gridgraph.New(1, 1)
	require.NoError(t, err)
	require.NoError(t, g.SetSource(0, 0))
	require.NoError(t, g.SetTarget(0, 0))

	s, err := astar.New(g)
	require.NoError(t, err)

	res, err := s.Step()
	require.NoError(t, err)
	assert.Equal(t, astar.OutcomeFound, res.Outcome)
	assert.Equal(t, gridgraph.Target, res.Cell.State())
	assert.Empty(t, res.Path)

	path, err := s.Path()
	require.NoError(t, err)
	assert.Empty(t, path)

	cost, ok := s.Cost()
	assert.True(t, ok)
	assert.Zero(t, cost)
}

func TestWalledInSource(t *testing.T) {
	g := mustGrid(t,
		"S#..",
		"##..",
		"...T",
	)
	s, err := astar.New(g)
	require.NoError(t, err)

	res, err := s.Step()
	require.NoError(t, err)
	assert.Equal(t, astar.OutcomeExpanded, res.Outcome)
	assert.Empty(t, res.Updated)

	res, err = s.Step()
	require.NoError(t, err)
	assert.Equal(t, astar.OutcomeExhausted, res.Outcome)
	assert.Nil(t, res.Cell)
	assert.Equal(t, astar.StateExhausted, s.State())
	assert.Equal(t, 1, s.Steps())

	_, err = s.Path()
	assert.ErrorIs(t, err, astar.ErrNoPath)
}

func TestDisconnectedTarget(t *testing.T) {
	g := mustGrid(t,
		"S.#..",
		"..#.T",
		"..#..",
	)
	s, err := astar.New(g)
	require.NoError(t, err)

	res, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, astar.OutcomeExhausted, res.Outcome)
	assert.Equal(t, 6, s.Steps())
	assert.Equal(t, 5, g.Count(gridgraph.Visited), "the whole left component is closed")
	assert.Zero(t, g.Count(gridgraph.Neighbor))
	assert.Equal(t, gridgraph.Target, g.Target().State())
}

func TestOpenGridOptimal(t *testing.T) {
	cases := []struct {
		name   string
		layout []string
		cost   float64
	}{
		{"Diagonal5x5", []string{"S....", ".....", ".....", ".....", "....T"}, 4 * math.Sqrt2},
		{"Row", []string{"S...T"}, 4},
		{"Column", []string{"S", ".", "T"}, 2},
		{"Adjacent", []string{"ST"}, 1},
		{"KnightMove", []string{"S..", "..T"}, 1 + math.Sqrt2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := astar.New(mustGrid(t, tc.layout...))
			require.NoError(t, err)

			res, err := s.Run(context.Background())
			require.NoError(t, err)
			require.Equal(t, astar.OutcomeFound, res.Outcome)

			cost, ok := s.Cost()
			require.True(t, ok)
			assert.InDelta(t, tc.cost, cost, eps)
		})
	}
}

func TestDiagonalPathOnOpenGrid(t *testing.T) {
	s, err := astar.New(mustGrid(t, "S....", ".....", ".....", ".....", "....T"))
	require.NoError(t, err)
	_, err = s.Run(context.Background())
	require.NoError(t, err)

	path, err := s.Path()
	require.NoError(t, err)
	assert.Equal(t, []gridgraph.Coord{{Row: 1, Col: 1}, {Row: 2, Col: 2}, {Row: 3, Col: 3}}, coords(path))
}

// randomLayout places source and target in opposite corners and walls
// elsewhere with probability p.
func randomLayout(r *rand.Rand, rows, cols int, p float64) []string {
	layout := make([]string, rows)
	for i := 0; i < rows; i++ {
		row := make([]byte, cols)
		for j := range row {
			row[j] = gridgraph.GlyphOpen
			if r.Float64() < p {
				row[j] = gridgraph.GlyphWall
			}
		}
		layout[i] = string(row)
	}
	first := []byte(layout[0])
	first[0] = gridgraph.GlyphSource
	layout[0] = string(first)
	last := []byte(layout[rows-1])
	last[cols-1] = gridgraph.GlyphTarget
	layout[rows-1] = string(last)
	return layout
}

func TestRandomGridsAgreeWithReachable(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		rows, cols := 2+r.Intn(10), 2+r.Intn(10)
		g := mustGrid(t, randomLayout(r, rows, cols, 0.35)...)
		reachable := g.Reachable(g.Source().Coord(), g.Target().Coord())

		s, err := astar.New(g)
		require.NoError(t, err)
		res, err := s.Run(context.Background())
		require.NoError(t, err)

		if reachable {
			require.Equal(t, astar.OutcomeFound, res.Outcome, "grid %d", i)
			cost, _ := s.Cost()
			assert.GreaterOrEqual(t, cost+eps, g.Source().DistanceTo(g.Target()))
			assert.Equal(t, len(res.Path), g.Count(gridgraph.Path))
		} else {
			require.Equal(t, astar.OutcomeExhausted, res.Outcome, "grid %d", i)
			assert.Zero(t, g.Count(gridgraph.Neighbor), "open set drained")
		}
	}
}

func TestRun_ContextCancelled(t *testing.T) {
	s, err := astar.New(mustGrid(t, "S...T"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = s.Run(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, astar.StateReady, s.State())
	assert.Zero(t, s.Steps())
}

func TestRun_MaxSteps(t *testing.T) {
	s, err := astar.New(mustGrid(t, "S...T"), astar.WithMaxSteps(2))
	require.NoError(t, err)

	_, err = s.Run(context.Background())
	assert.ErrorIs(t, err, astar.ErrStepLimit)
	assert.Equal(t, 2, s.Steps())
	assert.Equal(t, astar.StateReady, s.State())

	// Step is not bounded by the limit.
	var res astar.StepResult
	for !res.Done() {
		res, err = s.Step()
		require.NoError(t, err)
	}
	assert.Equal(t, astar.OutcomeFound, res.Outcome)
}

func TestHooks(t *testing.T) {
	var (
		expanded []gridgraph.Coord
		relaxed  int
		finished []astar.Outcome
	)
	s, err := astar.New(mustGrid(t,
		"S....",
		".....",
		".....",
		"...#.",
		"....T",
	),
		astar.WithOnExpand(func(c *gridgraph.Cell) { expanded = append(expanded, c.Coord()) }),
		astar.WithOnRelax(func(from, to *gridgraph.Cell) {
			relaxed++
			assert.NotEqual(t, from.Coord(), to.Coord())
		}),
		astar.WithOnFinish(func(res astar.StepResult) { finished = append(finished, res.Outcome) }),
	)
	require.NoError(t, err)

	_, err = s.Run(context.Background())
	require.NoError(t, err)

	assert.Len(t, expanded, 11)
	assert.Equal(t, gridgraph.Coord{}, expanded[0])
	assert.Equal(t, 21, relaxed)
	assert.Equal(t, []astar.Outcome{astar.OutcomeFound}, finished)
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	s, err := astar.New(mustGrid(t, "S.T"), astar.WithLogger(logger))
	require.NoError(t, err)
	_, err = s.Run(context.Background())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "msg=astar.start")
	assert.Contains(t, out, "msg=astar.step")
	assert.Contains(t, out, "msg=astar.found")
	assert.Contains(t, out, "run_id="+s.ID())
}

func TestStateAndOutcomeStrings(t *testing.T) {
	assert.Equal(t, "ready", astar.StateReady.String())
	assert.Equal(t, "found", astar.StateFound.String())
	assert.Equal(t, "exhausted", astar.StateExhausted.String())
	assert.Equal(t, "State(9)", astar.State(9).String())

	assert.Equal(t, "expanded", astar.OutcomeExpanded.String())
	assert.Equal(t, "found", astar.OutcomeFound.String())
	assert.Equal(t, "exhausted", astar.OutcomeExhausted.String())
	assert.Equal(t, "Outcome(5)", astar.Outcome(5).String())
}

// TestExpansionOrder pins the exact pop sequence on a board where several
// open-set keys are equal up to the last bit of the distance computation.
func TestExpansionOrder(t *testing.T) {
	s, err := astar.New(mustGrid(t,
		"..#...##.",
		".......##",
		"#####.#.#",
		"....##...",
		"#S.......",
		"....#...#",
		"..#..#..#",
		".#....#..",
		"....#.T#.",
	))
	require.NoError(t, err)

	var popped []gridgraph.Coord
	var res astar.StepResult
	for !res.Done() {
		res, err = s.Step()
		require.NoError(t, err)
		if res.Cell != nil {
			popped = append(popped, res.Cell.Coord())
		}
	}

	require.Equal(t, astar.OutcomeFound, res.Outcome)
	assert.Equal(t, []gridgraph.Coord{
		{Row: 4, Col: 1}, {Row: 5, Col: 2}, {Row: 6, Col: 3}, {Row: 7, Col: 4}, {Row: 5, Col: 3},
		{Row: 7, Col: 5}, {Row: 8, Col: 5}, {Row: 4, Col: 2}, {Row: 6, Col: 4}, {Row: 8, Col: 6},
	}, popped)
	assert.Equal(t, []gridgraph.Coord{{Row: 5, Col: 2}, {Row: 6, Col: 3}, {Row: 7, Col: 4}, {Row: 7, Col: 5}}, coords(res.Path))
}

func TestStep_PanicsOnClosedCell(t *testing.T) {
	g := mustGrid(t, "S...T")
	s, err := astar.New(g)
	require.NoError(t, err)
	_, err = s.Step()
	require.NoError(t, err)

	queued, err := g.Cell(0, 1)
	require.NoError(t, err)
	queued.SetState(gridgraph.Visited)

	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.ErrorIs(t, err, astar.ErrClosedCellPopped)
	}()
	_, _ = s.Step()
}
