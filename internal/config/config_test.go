package config_test

import (
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridstar/gridgraph"
	"github.com/katalvlaran/gridstar/internal/config"
)

func env(kv map[string]string) func(string) string {
	return func(k string) string { return kv[k] }
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(nil, env(nil), io.Discard)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Board.Rows)
	assert.Equal(t, 5, cfg.Board.Columns)
	assert.Equal(t, gridgraph.Coord{Row: 0, Col: 0}, cfg.Board.Source)
	assert.Equal(t, gridgraph.Coord{Row: 4, Col: 4}, cfg.Board.Target)
	assert.Empty(t, cfg.Board.Walls)
	assert.False(t, cfg.Run.Step)
	assert.Zero(t, cfg.Run.Delay)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoad_EnvThenFlags(t *testing.T) {
	e := env(map[string]string{
		"GRIDSTAR_ROWS":       "8",
		"GRIDSTAR_COLS":       "9",
		"GRIDSTAR_WALLS":      "1,1;2,2",
		"GRIDSTAR_DELAY":      "50ms",
		"GRIDSTAR_LOG_FORMAT": "json",
		"GRIDSTAR_STEP":       "not-a-bool",
	})

	cfg, err := config.Load([]string{"-cols", "3", "-target", "7, 2", "-verbose"}, e, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Board.Rows)
	assert.Equal(t, 3, cfg.Board.Columns, "flags win over env")
	assert.Equal(t, gridgraph.Coord{Row: 7, Col: 2}, cfg.Board.Target)
	assert.Equal(t, []gridgraph.Coord{{Row: 1, Col: 1}, {Row: 2, Col: 2}}, cfg.Board.Walls)
	assert.Equal(t, 50*time.Millisecond, cfg.Run.Delay)
	assert.False(t, cfg.Run.Step, "unparsable env falls back to the default")
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_Errors(t *testing.T) {
	cases := []struct {
		name string
		args []string
	}{
		{"BadSource", []string{"-source", "1"}},
		{"BadTarget", []string{"-target", "a,b"}},
		{"BadWalls", []string{"-walls", "1,1;x"}},
		{"NegativeMaxSteps", []string{"-max-steps", "-1"}},
		{"UnknownFlag", []string{"-nope"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := config.Load(tc.args, env(nil), io.Discard)
			assert.Error(t, err)
		})
	}
}

func TestLoad_MapSkipsCoords(t *testing.T) {
	cfg, err := config.Load([]string{"-map", "board.txt", "-source", "junk"}, env(nil), io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "board.txt", cfg.Board.MapFile)
}

func TestParseCoord(t *testing.T) {
	c, err := config.ParseCoord(" 3 , 4 ")
	require.NoError(t, err)
	assert.Equal(t, gridgraph.Coord{Row: 3, Col: 4}, c)

	_, err = config.ParseCoord("3;4")
	assert.ErrorIs(t, err, config.ErrBadCoord)
}

func TestParseCoords(t *testing.T) {
	cs, err := config.ParseCoords("")
	require.NoError(t, err)
	assert.Empty(t, cs)

	cs, err = config.ParseCoords("0,1; ;2,3;")
	require.NoError(t, err)
	assert.Equal(t, []gridgraph.Coord{{Row: 0, Col: 1}, {Row: 2, Col: 3}}, cs)
}
