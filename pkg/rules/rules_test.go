package rules

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sweep = `
# Boustrophedon sweep of an empty room.
0 x*** -> N 0   # climb to the north wall
0 N*** -> X 1
1 *x** -> E 1
1 *E** -> W 2

2 **x* -> W 2
2 **W* -> S 1
`

func pattern(t *testing.T, s string) Pattern {
	t.Helper()
	p, err := ParsePattern(s)
	require.NoError(t, err)
	return p
}

func withoutLines(s Set) Set {
	out := make(Set, len(s))
	for i, r := range s {
		r.Line = 0
		out[i] = r
	}
	return out
}

func TestParseSweep(t *testing.T) {
	set, err := Parse(sweep)
	require.NoError(t, err)
	require.Len(t, set, 6)

	first := set[0]
	assert.Equal(t, 0, first.State)
	assert.Equal(t, "x***", first.Pattern.String())
	assert.Equal(t, North, first.Move)
	assert.Equal(t, 0, first.NewState)
	assert.Equal(t, 3, first.Line)

	assert.Equal(t, Stay, set[1].Move)
	assert.Equal(t, 9, set[5].Line)
	assert.Equal(t, 3, set.CountStates())
}

func TestParseNormalizesCase(t *testing.T) {
	set, err := Parse("7 nXw* -> s 12\n8 X*Ws->x 0")
	require.NoError(t, err)
	require.Len(t, set, 2)

	assert.Equal(t, "NxW*", set[0].Pattern.String())
	assert.Equal(t, South, set[0].Move)
	assert.Equal(t, 12, set[0].NewState)
	assert.Equal(t, "x*WS", set[1].Pattern.String())
	assert.Equal(t, Stay, set[1].Move)
}

func TestParseEmptyAndCommentOnly(t *testing.T) {
	set, err := Parse("\n   \n# nothing here\n")
	require.NoError(t, err)
	assert.Empty(t, set)
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		text string
		line int
	}{
		{"garbage", "0 x*** -> N 0\nhello world", 2},
		{"missing arrow", "0 x*** N 0", 1},
		{"short pattern", "0 x** -> N 0", 1},
		{"long pattern", "0 x**** -> N 0", 1},
		{"state too large", "100 x*** -> N 0", 1},
		{"new state too large", "\n\n0 x*** -> N 250", 3},
		{"bad direction", "0 x*** -> Q 0", 1},
		{"bad pattern char", "0 x?** -> N 0", 1},
		{"letter in wrong slot", "0 E*** -> N 0", 1},
		{"negative state", "-1 x*** -> N 0", 1},
		{"trailing junk", "0 x*** -> N 0 0", 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			set, err := Parse(tc.text)
			require.Error(t, err)
			assert.Nil(t, set, "a malformed rule set must not be partially accepted")
			assert.True(t, errors.Is(err, ErrInvalidRule))

			var ruleErr *InvalidRuleError
			require.ErrorAs(t, err, &ruleErr)
			assert.Equal(t, tc.line, ruleErr.Line)
			assert.NotEmpty(t, ruleErr.Text)
			assert.Contains(t, err.Error(), "line")
		})
	}
}

func TestRoundTrip(t *testing.T) {
	texts := []string{
		sweep,
		"0 NEWS -> X 0\n1 xxxx -> E 99",
		"12 n*x* -> w 3 # lower case\n3 **Ws -> N 12",
	}
	for _, text := range texts {
		parsed, err := Parse(text)
		require.NoError(t, err)

		again, err := Parse(parsed.Format())
		require.NoError(t, err)
		assert.Equal(t, withoutLines(parsed), withoutLines(again))
		assert.Equal(t, parsed.Format(), again.Format())
	}
}

func TestRuleString(t *testing.T) {
	r := Rule{State: 4, Pattern: Pattern{'N', '*', OpenMark, 'S'}, Move: West, NewState: 5}
	assert.Equal(t, "4 N*xS -> W 5", r.String())
}

func TestPatternMatches(t *testing.T) {
	assert.True(t, pattern(t, "x***").Matches(Pattern{'x', 'x', 'x', 'x'}))
	assert.True(t, pattern(t, "x***").Matches(Pattern{'x', 'E', 'W', 'S'}))
	assert.False(t, pattern(t, "x***").Matches(Pattern{'N', 'x', 'x', 'x'}))
	assert.True(t, pattern(t, "****").Matches(Pattern{'N', 'E', 'W', 'S'}))
	assert.False(t, pattern(t, "NxWx").Matches(Pattern{'N', 'x', 'W', 'S'}))
}

func TestMatchFirstWins(t *testing.T) {
	set := MustParse(`
0 **** -> N 1
0 xxxx -> S 2
0 x*** -> E 3
1 xxxx -> W 4
`)
	observed := Pattern{'x', 'x', 'x', 'x'}

	got, ok := set.Match(0, observed)
	require.True(t, ok)
	assert.Equal(t, set[0], got, "general rule listed first must shadow the exact one")

	reordered := Set{set[1], set[0], set[2]}
	got, ok = reordered.Match(0, observed)
	require.True(t, ok)
	assert.Equal(t, set[1], got, "exact rule listed first must win")

	got, ok = set.Match(1, observed)
	require.True(t, ok)
	assert.Equal(t, 4, got.NewState)
}

func TestMatchNone(t *testing.T) {
	set := MustParse("0 x*** -> N 0")
	_, ok := set.Match(0, Pattern{'N', 'x', 'x', 'x'})
	assert.False(t, ok)
	_, ok = set.Match(5, Pattern{'x', 'x', 'x', 'x'})
	assert.False(t, ok)
	_, ok = Set(nil).Match(0, Pattern{'x', 'x', 'x', 'x'})
	assert.False(t, ok)
}

func TestDirectionDelta(t *testing.T) {
	cases := map[Direction][2]int{
		North: {-1, 0},
		East:  {0, 1},
		West:  {0, -1},
		South: {1, 0},
		Stay:  {0, 0},
	}
	for d, want := range cases {
		dr, dc := d.Delta()
		assert.Equal(t, want, [2]int{dr, dc}, "direction %s", d)
		assert.True(t, d.Valid())
	}
	assert.False(t, Direction('Q').Valid())
}

func TestExpand(t *testing.T) {
	assert.Len(t, pattern(t, "****").Expand(), 16)
	assert.Equal(t, []Pattern{{'N', 'x', 'W', 'S'}}, pattern(t, "NxWS").Expand())

	got := pattern(t, "x*W*").Expand()
	assert.ElementsMatch(t, []Pattern{
		{'x', 'E', 'W', 'S'},
		{'x', 'E', 'W', 'x'},
		{'x', 'x', 'W', 'S'},
		{'x', 'x', 'W', 'x'},
	}, got)
}

func TestMustParsePanics(t *testing.T) {
	assert.Panics(t, func() { MustParse("nope") })
}
