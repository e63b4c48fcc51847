package combine

import (
	"errors"
	"fmt"
)

// ErrNotDirectory is returned when the source root exists but is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// Reason classifies why a file was left out of the output.
type Reason string

const (
	ReasonDecode Reason = "decode" // Content is not valid UTF-8.
	ReasonIO     Reason = "io"     // Reading the source or writing its destination failed.
)

// Entry records one source file that made it into the output.
type Entry struct {
	Source string `yaml:"source"` // Path relative to the source root.
	Output string `yaml:"output"` // Destination file name the content went to.
	Bytes  int    `yaml:"bytes"`  // Size of the copied content.
}

// Failure records one source file (or unreadable directory) that was skipped.
type Failure struct {
	Source string `yaml:"source"`
	Reason Reason `yaml:"reason"`
	Err    error  `yaml:"-"`
}

// Error implements error so failures can be logged and wrapped directly.
func (f Failure) Error() string {
	if f.Err == nil {
		return fmt.Sprintf("%s: %s", f.Source, f.Reason)
	}
	return fmt.Sprintf("%s: %s: %v", f.Source, f.Reason, f.Err)
}

// Unwrap exposes the underlying error.
func (f Failure) Unwrap() error {
	return f.Err
}

// Result is the outcome of one Aggregate run.
type Result struct {
	Mode        Mode
	SourceRoot  string
	Destination string
	Written     []Entry   // In traversal order.
	Skipped     []Failure // In traversal order.
	Collisions  int       // Flat destination names written more than once in this run.
}

// Outputs returns the distinct destination names written, in first-write order.
func (r *Result) Outputs() []string {
	seen := make(map[string]bool, len(r.Written))
	var outputs []string
	for _, e := range r.Written {
		if !seen[e.Output] {
			seen[e.Output] = true
			outputs = append(outputs, e.Output)
		}
	}
	return outputs
}

// SkippedBy returns the failures with the given reason.
func (r *Result) SkippedBy(reason Reason) []Failure {
	var out []Failure
	for _, f := range r.Skipped {
		if f.Reason == reason {
			out = append(out, f)
		}
	}
	return out
}

func (r *Result) addWritten(source, output string, size int) {
	r.Written = append(r.Written, Entry{Source: source, Output: output, Bytes: size})
}

func (r *Result) addSkipped(source string, reason Reason, err error) {
	r.Skipped = append(r.Skipped, Failure{Source: source, Reason: reason, Err: err})
}
