// Package solutions bundles hand-written rule programs for the stock rooms.
package solutions

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"picobot/pkg/rules"
)

//go:embed data/*.txt
var files embed.FS

// Get returns the rule text bundled under name.
func Get(name string) (string, bool) {
	b, err := files.ReadFile(path.Join("data", name+".txt"))
	if err != nil {
		return "", false
	}
	return string(b), true
}

// Names lists the bundled programs in sorted order.
func Names() []string {
	entries, err := files.ReadDir("data")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".txt"))
	}
	sort.Strings(names)
	return names
}

// Load parses the program bundled under name.
func Load(name string) (rules.Set, error) {
	text, ok := Get(name)
	if !ok {
		return nil, fmt.Errorf("unknown solution %q (have %s)", name, strings.Join(Names(), ", "))
	}
	return rules.Parse(text)
}

// BuiltinPrefix marks a rule reference that names a bundled program.
const BuiltinPrefix = "builtin:"

// Resolve loads ref, which is either BuiltinPrefix+name or a rule file path.
// An empty ref falls back to the bundled program named fallback. The second
// result is the reference actually used.
func Resolve(ref, fallback string) (rules.Set, string, error) {
	if ref == "" {
		if fallback == "" {
			return nil, "", errors.New("no rules given and the room has no bundled solution")
		}
		ref = BuiltinPrefix + fallback
	}
	if name, ok := strings.CutPrefix(ref, BuiltinPrefix); ok {
		set, err := Load(name)
		return set, ref, err
	}
	data, err := os.ReadFile(ref)
	if err != nil {
		return nil, "", fmt.Errorf("reading rules: %w", err)
	}
	set, err := rules.Parse(string(data))
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", ref, err)
	}
	return set, ref, nil
}
