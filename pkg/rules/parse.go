package rules

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// MaxState is the largest legal state id.
const MaxState = 99

// CommentMarker starts a comment that runs to end of line.
const CommentMarker = '#'

// ErrInvalidRule is matched by every InvalidRuleError via errors.Is.
var ErrInvalidRule = errors.New("invalid rule")

// InvalidRuleError reports a rule line that could not be parsed.
type InvalidRuleError struct {
	Line   int
	Text   string
	Reason string
}

func (e *InvalidRuleError) Error() string {
	return fmt.Sprintf("invalid rule at line %d: %q: %s", e.Line, e.Text, e.Reason)
}

// Is lets errors.Is(err, ErrInvalidRule) match.
func (e *InvalidRuleError) Is(target error) bool { return target == ErrInvalidRule }

// STATE PATTERN -> DIRECTION NEWSTATE
var ruleLine = regexp.MustCompile(`(?i)^(\d+)\s+(\S{4})\s*->\s*([NEWSX])\s+(\d+)$`)

const syntaxHint = "expected STATE PATTERN -> DIRECTION NEWSTATE, e.g. 0 x*** -> N 0"

// Parse reads one rule per line, skipping blank lines and stripping comments.
// Any malformed line fails the whole parse.
func Parse(text string) (Set, error) {
	var set Set
	for i, raw := range strings.Split(text, "\n") {
		lineNo := i + 1
		line := raw
		if idx := strings.IndexByte(line, CommentMarker); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		r, err := parseLine(line)
		if err != nil {
			return nil, &InvalidRuleError{Line: lineNo, Text: line, Reason: err.Error()}
		}
		r.Line = lineNo
		set = append(set, r)
	}
	return set, nil
}

// MustParse is Parse for rule text known to be valid; it panics otherwise.
func MustParse(text string) Set {
	set, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return set
}

func parseLine(line string) (Rule, error) {
	m := ruleLine.FindStringSubmatch(line)
	if m == nil {
		return Rule{}, errors.New(syntaxHint)
	}
	state, err := parseState(m[1])
	if err != nil {
		return Rule{}, fmt.Errorf("state: %w", err)
	}
	pattern, err := ParsePattern(m[2])
	if err != nil {
		return Rule{}, err
	}
	next, err := parseState(m[4])
	if err != nil {
		return Rule{}, fmt.Errorf("new state: %w", err)
	}
	return Rule{
		State:    state,
		Pattern:  pattern,
		Move:     Direction(strings.ToUpper(m[3])[0]),
		NewState: next,
	}, nil
}

func parseState(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > MaxState {
		return 0, fmt.Errorf("%s must be between 0 and %d", s, MaxState)
	}
	return n, nil
}
