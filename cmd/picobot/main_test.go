package main

import (
	"bytes"
	"context"
	"encoding/json"
	"image/gif"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"picobot/internal/rooms"
	"picobot/internal/solutions"
	"picobot/pkg/grid"
	"picobot/pkg/sim"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("PICOBOT_MAX_STEPS", "")
	t.Setenv("PICOBOT_WORKERS", "")
	t.Setenv("PICOBOT_LOG_LEVEL", "")
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeTemp(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestVersionJSON(t *testing.T) {
	out, err := execute(t, "version", "--json")
	require.NoError(t, err)
	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, version, got["version"])
}

func TestRunUsesBundledSolution(t *testing.T) {
	out, err := execute(t, "run", "--room", "maze")
	require.NoError(t, err)
	assert.Contains(t, out, "builtin:maze-optimized")
	assert.Contains(t, out, "Success:")
	assert.Contains(t, out, "true")
	assert.Contains(t, out, "100.0%")
}

func TestRunJSON(t *testing.T) {
	out, err := execute(t, "run", "--json",
		"--room", "empty", "--room-opt", "h=5,w=5",
		"--rules", "builtin:empty-initial", "--start", "2,2", "--show")
	require.NoError(t, err)

	var got runOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, grid.Cell{Row: 2, Col: 2}, got.Start)
	assert.Equal(t, "true", got.Result["success"])
	assert.Equal(t, "9", got.Result["visited"])
	assert.NotEmpty(t, got.RunID)
	assert.Contains(t, got.Board, "P")
}

func TestRunHaltIsReportedNotAnError(t *testing.T) {
	path := writeTemp(t, "down.txt", "0 ***x -> S 0\n")
	out, err := execute(t, "run", "--room", "empty", "--room-opt", "h=5,w=5", "--rules", path, "--trace")
	require.NoError(t, err)
	assert.Contains(t, out, "Halt")
	assert.Contains(t, out, "no rule matches state 0")
	assert.Contains(t, out, "halted: no rule")
}

func TestRunRejectsWallStart(t *testing.T) {
	_, err := execute(t, "run", "--room", "empty", "--start", "0,0")
	require.ErrorIs(t, err, sim.ErrIllegalStart)
}

func TestRunSeedIsReproducible(t *testing.T) {
	a, err := execute(t, "run", "--room", "maze", "--seed", "11", "--json")
	require.NoError(t, err)
	b, err := execute(t, "run", "--room", "maze", "--seed", "11", "--json")
	require.NoError(t, err)

	var ra, rb runOutput
	require.NoError(t, json.Unmarshal([]byte(a), &ra))
	require.NoError(t, json.Unmarshal([]byte(b), &rb))
	assert.Equal(t, ra.Start, rb.Start)
	assert.Equal(t, ra.Result, rb.Result)
}

func TestUnknownRoom(t *testing.T) {
	_, err := execute(t, "run", "--room", "no-such-room")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "small-maze")
}

func TestRoomFile(t *testing.T) {
	path := writeTemp(t, "room.txt", "#####\n#...#\n#.#.#\n#...#\n#####\n")
	out, err := execute(t, "verify", "--room", path, "--rules", "builtin:maze-optimized")
	require.NoError(t, err)
	assert.Contains(t, out, "Passed:")
}

func TestVerifyPasses(t *testing.T) {
	out, err := execute(t, "verify", "--room", "small-maze", "--workers", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Tested:        31")
	assert.Contains(t, out, "Max steps:     67")
}

func TestVerifyFailureExitsWithErrVerifyFailed(t *testing.T) {
	out, err := execute(t, "verify", "--room", "small-maze", "--rules", "builtin:empty-optimized")
	require.ErrorIs(t, err, errVerifyFailed)
	assert.Contains(t, out, "Failures")
}

func TestVerifyJSONSample(t *testing.T) {
	out, err := execute(t, "verify", "--json", "--room", "maze", "--sample", "12", "--seed", "5")
	require.NoError(t, err)
	var got verifyOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "12", got.Result["tested"])
	assert.Equal(t, "true", got.Result["success"])
}

func TestVerifyParallelMatchesSerial(t *testing.T) {
	g := rooms.SmallMaze()
	for _, name := range []string{"maze-initial", "empty-initial"} {
		set, err := solutions.Load(name)
		require.NoError(t, err)

		serial, err := verifyParallel(context.Background(), g, set, 2000, g.OpenCells(), 1)
		require.NoError(t, err)
		parallel, err := verifyParallel(context.Background(), g, set, 2000, g.OpenCells(), 4)
		require.NoError(t, err)
		assert.Equal(t, serial, parallel, name)
	}
}

func TestVerifyParallelRejectsWallStart(t *testing.T) {
	g := rooms.SmallMaze()
	set, err := solutions.Load("maze-initial")
	require.NoError(t, err)
	starts := append(g.OpenCells(), grid.Cell{Row: 0, Col: 0})
	_, err = verifyParallel(context.Background(), g, set, 100, starts, 3)
	require.ErrorIs(t, err, sim.ErrIllegalStart)
}

func TestRulesLint(t *testing.T) {
	path := writeTemp(t, "lint.txt", "0 x*** -> N 0\n0 x*** -> E 0\n0 N*** -> N 1\n")
	out, err := execute(t, "rules", "lint", path)
	require.NoError(t, err)
	assert.Contains(t, out, "3 rules, 2 states")
	assert.Contains(t, out, "line 2: shadowed")
	assert.Contains(t, out, "line 3: move-into-wall")
	assert.Contains(t, out, "unhandled-state")
}

func TestRulesLintParseError(t *testing.T) {
	path := writeTemp(t, "bad.txt", "0 x*** -> N 0\n0 x** -> N 0\n")
	_, err := execute(t, "rules", "lint", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestRulesFmtWrite(t *testing.T) {
	path := writeTemp(t, "fmt.txt", "# header\n0   X***->n 0  # climb\n\n0 n*** -> x 1\n")
	_, err := execute(t, "rules", "fmt", "--write", path)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "0 x*** -> N 0\n0 N*** -> X 1\n", string(data))
}

func TestRulesList(t *testing.T) {
	out, err := execute(t, "rules", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "builtin:maze-optimized")
	assert.Contains(t, out, "12 rules, 4 states")
}

func TestRooms(t *testing.T) {
	out, err := execute(t, "rooms", "--validate")
	require.NoError(t, err)
	for _, name := range []string{"empty", "maze", "small-maze", "diamond", "stalactite"} {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "wall-follower complete: true")

	out, err = execute(t, "rooms", "stalactite", "--validate")
	require.NoError(t, err)
	assert.Contains(t, out, "wall follower complete: false")
	assert.Contains(t, out, "has no adjacent wall")
}

func TestAnimate(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "run.gif")
	out, err := execute(t, "animate", "--room", "empty", "--room-opt", "h=5,w=5",
		"--start", "2,2", "--scale", "3", "--out", outPath)
	require.NoError(t, err)
	assert.Contains(t, out, "100.0% coverage")

	f, err := os.Open(outPath)
	require.NoError(t, err)
	defer f.Close()
	anim, err := gif.DecodeAll(f)
	require.NoError(t, err)
	assert.Greater(t, len(anim.Image), 1)
	assert.Equal(t, 15, anim.Image[0].Bounds().Dx())
}

func TestConfigFile(t *testing.T) {
	cfg := writeTemp(t, "picobot.yaml", "sim:\n  max_steps: 3\n")
	out, err := execute(t, "run", "--config", cfg, "--room", "maze", "--json")
	require.NoError(t, err)
	var got runOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "3", got.Result["steps"])
	assert.Equal(t, "false", got.Result["success"])

	bad := writeTemp(t, "bad.yaml", "logging:\n  level: loud\n")
	_, err = execute(t, "version", "--config", bad)
	require.Error(t, err)
}

func TestParseCell(t *testing.T) {
	c, err := parseCell("3, 4")
	require.NoError(t, err)
	assert.Equal(t, grid.Cell{Row: 3, Col: 4}, c)

	for _, bad := range []string{"3", "a,1", "1,b"} {
		_, err := parseCell(bad)
		assert.Error(t, err, bad)
	}
}

func TestRunMatrix(t *testing.T) {
	jobs := []matrixJob{
		{room: "small-maze", solution: "maze-optimized"},
		{room: "small-maze", solution: "empty-optimized"},
		{room: "diamond", solution: "maze-initial"},
	}
	cells := runMatrix(jobs, 2, 3000)
	require.Len(t, cells, 3)

	assert.Equal(t, "diamond", cells[0].Room)
	assert.False(t, cells[0].Success)
	assert.Equal(t, 61, cells[0].Tested)

	assert.Equal(t, "empty-optimized", cells[1].Solution)
	assert.False(t, cells[1].Success)

	assert.Equal(t, "maze-optimized", cells[2].Solution)
	assert.True(t, cells[2].Success)
	assert.Equal(t, 31, cells[2].Passed)
	assert.Equal(t, 67, cells[2].MaxSteps)
}
