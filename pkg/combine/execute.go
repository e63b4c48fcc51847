// File: pkg/combine/execute.go
package combine

import (
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// Aggregate walks opts.SourceRoot once and copies every eligible file into
// opts.Destination using the layout selected by opts.Mode.
//
// Unreadable and non-UTF-8 files are recorded in Result.Skipped and never stop
// the run. An error is returned only when the source root is unusable or the
// destination cannot be created, opened or flushed.
func (a *Aggregator) Aggregate(opts Options) (*Result, error) {
	startTime := time.Now()
	root, err := filepath.Abs(opts.SourceRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve source root: %w", err)
	}
	destination, err := filepath.Abs(opts.Destination)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve destination: %w", err)
	}
	a.logger.Info("Starting aggregation",
		zap.String("source", root),
		zap.String("destination", destination),
		zap.Stringer("mode", opts.Mode))

	info, err := a.fs.Stat(root)
	if err != nil {
		a.logger.Error("Failed to access source root", zap.String("source", root), zap.Error(err))
		return nil, fmt.Errorf("failed to access source root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source root %s: %w", root, ErrNotDirectory)
	}

	opts.SourceRoot = root
	opts.Destination = destination
	l, err := a.newLayout(opts)
	if err != nil {
		return nil, err
	}
	if err := l.open(); err != nil {
		return nil, err
	}

	result := &Result{Mode: opts.Mode, SourceRoot: root, Destination: destination}

	w := &walker{
		fs:      a.fs,
		logger:  a.logger,
		root:    root,
		exclude: opts.Exclude,
		visit: func(file sourceFile) {
			a.processFile(l, file, result)
		},
		failed: func(rel string, err error) {
			result.addSkipped(rel, ReasonIO, err)
		},
	}
	if opts.Mode != SingleFile {
		w.skip = destination
	}
	w.walk()

	if err := l.close(); err != nil {
		return result, err
	}
	result.Collisions = l.collisions()

	a.logger.Info("Aggregation completed",
		zap.Int("written", len(result.Written)),
		zap.Int("skipped", len(result.Skipped)),
		zap.Duration("elapsed", time.Since(startTime)))
	return result, nil
}
