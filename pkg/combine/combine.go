// Package combine copies the text of a project's source files into plain-text
// snapshots: one combined file, one file per source file, or one file per
// top-level directory.
package combine

import (
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Aggregator runs aggregations against a filesystem.
type Aggregator struct {
	fs     afero.Fs
	logger *zap.Logger
}

// New returns an Aggregator reading and writing through fs.
// A nil fs means the OS filesystem and a nil logger discards all output.
func New(fs afero.Fs, logger *zap.Logger) *Aggregator {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{fs: fs, logger: logger}
}

// Run aggregates on the OS filesystem.
func Run(opts Options, logger *zap.Logger) (*Result, error) {
	return New(afero.NewOsFs(), logger).Aggregate(opts)
}

// LogSkipped reports every skipped file, then a one-line summary.
func (r *Result) LogSkipped(logger *zap.Logger) {
	for _, f := range r.Skipped {
		switch f.Reason {
		case ReasonDecode:
			logger.Warn("Skipping binary or incompatible file", zap.String("file", f.Source))
		default:
			logger.Warn("Error processing file", zap.String("file", f.Source), zap.Error(f.Err))
		}
	}
	logger.Info("Snapshot written",
		zap.String("destination", r.Destination),
		zap.Stringer("mode", r.Mode),
		zap.Int("filesWritten", len(r.Written)),
		zap.Int("filesSkipped", len(r.Skipped)),
		zap.Int("outputs", len(r.Outputs())),
		zap.Int("collisions", r.Collisions))
}
