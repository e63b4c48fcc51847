package combine

import (
	"fmt"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"projtext/pkg/version"
)

// report is the YAML shape of a Result.
type report struct {
	Generator   string          `yaml:"generator"`
	Mode        Mode            `yaml:"mode"`
	Source      string          `yaml:"source"`
	Destination string          `yaml:"destination"`
	Collisions  int             `yaml:"collisions"`
	Written     []Entry         `yaml:"written"`
	Skipped     []reportFailure `yaml:"skipped"`
}

type reportFailure struct {
	Source string `yaml:"source"`
	Reason Reason `yaml:"reason"`
	Error  string `yaml:"error,omitempty"`
}

// MarshalReport renders the result as a YAML document.
func (r *Result) MarshalReport() ([]byte, error) {
	rep := report{
		Generator:   version.Get().Generator(),
		Mode:        r.Mode,
		Source:      r.SourceRoot,
		Destination: r.Destination,
		Collisions:  r.Collisions,
		Written:     r.Written,
	}
	for _, f := range r.Skipped {
		rf := reportFailure{Source: f.Source, Reason: f.Reason}
		if f.Err != nil {
			rf.Error = f.Err.Error()
		}
		rep.Skipped = append(rep.Skipped, rf)
	}
	return yaml.Marshal(rep)
}

// WriteReport writes the YAML report for r to path.
func WriteReport(fs afero.Fs, path string, r *Result) error {
	data, err := r.MarshalReport()
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := afero.WriteFile(fs, path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return nil
}
