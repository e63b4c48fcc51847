// Package exclude holds the set of directory names pruned from a traversal.
package exclude

import (
	"sort"
	"strings"
)

// DefaultNames are the directory names skipped when nothing else is configured.
var DefaultNames = []string{"target"}

// Set is a set of literal directory names. Matching is exact and case-sensitive,
// and applies to a single path segment, never to a full path.
type Set map[string]struct{}

// New builds a Set from names. Blank names are dropped.
func New(names ...string) Set {
	s := make(Set, len(names))
	s.Add(names...)
	return s
}

// Default returns a fresh Set of DefaultNames.
func Default() Set {
	return New(DefaultNames...)
}

// Add inserts names into the set, trimming surrounding whitespace.
func (s Set) Add(names ...string) {
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		s[name] = struct{}{}
	}
}

// Contains reports whether a directory with this base name is excluded.
// A nil Set contains nothing.
func (s Set) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// Names returns the excluded names in sorted order.
func (s Set) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseList splits comma-separated entries, as they arrive from environment
// variables, into individual names.
func ParseList(entries []string) []string {
	var names []string
	for _, entry := range entries {
		for _, name := range strings.Split(entry, ",") {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}
	}
	return names
}
