// File: pkg/combine/config.go
package combine

import (
	"errors"
	"fmt"
	"strings"

	"projtext/pkg/exclude"
)

// Mode selects how eligible files are laid out in the destination.
type Mode int

const (
	SingleFile Mode = iota // Every file in one destination file, with headers and separators.
	PerFile                // One destination file per source file, content only.
	PerModule              // Root files per file, everything else grouped by top-level directory.
)

// ErrUnknownMode is returned by ParseMode for names that match no Mode.
var ErrUnknownMode = errors.New("unknown mode")

var modeNames = map[Mode]string{
	SingleFile: "single",
	PerFile:    "per-file",
	PerModule:  "per-module",
}

// String returns the mode's flag-style name.
func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// MarshalYAML renders the mode by name in run reports.
func (m Mode) MarshalYAML() (interface{}, error) {
	return m.String(), nil
}

// ParseMode converts a mode name ("single", "per-file", "per-module") into a Mode.
func ParseMode(name string) (Mode, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for mode, modeName := range modeNames {
		if modeName == normalized {
			return mode, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, name)
}

// Options holds the configuration for a single aggregation run.
type Options struct {
	SourceRoot    string      // Directory to walk.
	Destination   string      // Output file (SingleFile) or output directory (PerFile, PerModule).
	Exclude       exclude.Set // Directory names pruned before descending, at any depth.
	Mode          Mode        // Output layout.
	AppendModules bool        // PerModule only: append to module files left by earlier runs instead of truncating them.
}

// Output naming and entry framing.
const (
	DefaultOutputName = "project_as_text" // Base name of the destination file or directory.
	OutputSuffix      = ".txt"            // Appended to every destination file name.

	singleSeparatorWidth = 20
	moduleSeparator      = "---"
)

// extensions is the allow-list of eligible file suffixes.
var extensions = []string{".ts", ".java", ".properties", ".xml", ".py", ".md", ".sql"}

// Extensions returns a copy of the eligible file suffixes.
func Extensions() []string {
	out := make([]string, len(extensions))
	copy(out, extensions)
	return out
}

// Eligible reports whether a file name ends with one of the allowed suffixes.
// Matching is case-sensitive.
func Eligible(name string) bool {
	for _, ext := range extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
