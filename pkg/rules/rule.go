package rules

import (
	"fmt"
	"strings"
)

// Direction is a compass move or Stay.
type Direction byte

const (
	North Direction = 'N'
	East  Direction = 'E'
	West  Direction = 'W'
	South Direction = 'S'
	Stay  Direction = 'X'
)

// NEWS is the canonical slot order of a pattern. It must not be permuted.
var NEWS = [4]Direction{North, East, West, South}

// Delta returns the (row, col) offset of a move. Row grows southwards, so
// North decreases the row index.
func (d Direction) Delta() (int, int) {
	switch d {
	case North:
		return -1, 0
	case East:
		return 0, 1
	case West:
		return 0, -1
	case South:
		return 1, 0
	default:
		return 0, 0
	}
}

// Valid reports whether d is one of N, E, W, S or X.
func (d Direction) Valid() bool {
	switch d {
	case North, East, West, South, Stay:
		return true
	}
	return false
}

func (d Direction) String() string { return string(rune(d)) }

// Pattern slot markers besides the direction letters.
const (
	OpenMark = 'x'
	Wildcard = '*'
)

// Pattern holds one marker per NEWS slot: the slot's direction letter for a
// wall, OpenMark for open, or Wildcard.
type Pattern [4]byte

// Matches reports whether every non-wildcard slot equals the observed slot.
func (p Pattern) Matches(observed Pattern) bool {
	for i := range p {
		if p[i] == Wildcard {
			continue
		}
		if p[i] != observed[i] {
			return false
		}
	}
	return true
}

// Expand lists the concrete (wildcard-free) patterns p matches.
func (p Pattern) Expand() []Pattern {
	out := []Pattern{{}}
	for i, dir := range NEWS {
		var options []byte
		if p[i] == Wildcard {
			options = []byte{byte(dir), OpenMark}
		} else {
			options = []byte{p[i]}
		}
		next := make([]Pattern, 0, len(out)*len(options))
		for _, prefix := range out {
			for _, o := range options {
				q := prefix
				q[i] = o
				next = append(next, q)
			}
		}
		out = next
	}
	return out
}

// WallAt reports whether the pattern requires a wall towards d.
func (p Pattern) WallAt(d Direction) bool {
	for i, dir := range NEWS {
		if dir == d {
			return p[i] == byte(d)
		}
	}
	return false
}

func (p Pattern) String() string { return string(p[:]) }

// ParsePattern normalizes a 4-character NEWS pattern. Letters are
// case-insensitive; 'X' in a slot means open.
func ParsePattern(s string) (Pattern, error) {
	var p Pattern
	if len(s) != len(p) {
		return p, fmt.Errorf("pattern %q must have exactly 4 characters", s)
	}
	for i, dir := range NEWS {
		c := s[i]
		switch {
		case c == Wildcard:
			p[i] = Wildcard
		case c == 'x' || c == 'X':
			p[i] = OpenMark
		case strings.ToUpper(string(c)) == dir.String():
			p[i] = byte(dir)
		default:
			return p, fmt.Errorf("pattern character %q not allowed in the %s slot (use %s, x or *)", c, slotName(dir), dir)
		}
	}
	return p, nil
}

func slotName(d Direction) string {
	switch d {
	case North:
		return "North"
	case East:
		return "East"
	case West:
		return "West"
	default:
		return "South"
	}
}

// Rule fires in State when the observed surroundings match Pattern, moving in
// Move and switching to NewState.
type Rule struct {
	State    int
	Pattern  Pattern
	Move     Direction
	NewState int

	// Line is the 1-based source line, or 0 when built in code.
	Line int
}

// Matches reports whether the rule applies to the given state and surroundings.
func (r Rule) Matches(state int, observed Pattern) bool {
	return r.State == state && r.Pattern.Matches(observed)
}

// String renders the canonical rule text.
func (r Rule) String() string {
	return fmt.Sprintf("%d %s -> %s %d", r.State, r.Pattern, r.Move, r.NewState)
}

// Set is an ordered rule sequence. Order matters: matching is first-match-wins.
type Set []Rule

// Match returns the first rule matching state and observed, scanning in
// source order.
func (s Set) Match(state int, observed Pattern) (Rule, bool) {
	for _, r := range s {
		if r.Matches(state, observed) {
			return r, true
		}
	}
	return Rule{}, false
}

// CountStates returns how many distinct states the set references, as either
// a rule's state or its new state.
func (s Set) CountStates() int {
	seen := map[int]struct{}{}
	for _, r := range s {
		seen[r.State] = struct{}{}
		seen[r.NewState] = struct{}{}
	}
	return len(seen)
}

// Format renders the set one canonical rule per line.
func (s Set) Format() string {
	var b strings.Builder
	for _, r := range s {
		b.WriteString(r.String())
		b.WriteByte('\n')
	}
	return b.String()
}
