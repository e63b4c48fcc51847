package combine

import (
	"bufio"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// layout decides where an eligible file's content goes.
// open prepares the destination, write emits one file and returns the name
// of the destination file it went to, close releases anything still open.
type layout interface {
	open() error
	write(file sourceFile, content string) (string, error)
	close() error
	collisions() int
}

func (a *Aggregator) newLayout(opts Options) (layout, error) {
	switch opts.Mode {
	case SingleFile:
		return &singleFileLayout{fs: a.fs, path: opts.Destination, logger: a.logger}, nil
	case PerFile:
		return newPerFileLayout(a.fs, opts.Destination, a.logger), nil
	case PerModule:
		return &perModuleLayout{
			root:    newPerFileLayout(a.fs, opts.Destination, a.logger),
			fs:      a.fs,
			dir:     opts.Destination,
			append:  opts.AppendModules,
			logger:  a.logger,
			started: make(map[string]bool),
		}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMode, opts.Mode)
	}
}

// singleFileLayout writes every file into one buffered destination stream.
type singleFileLayout struct {
	fs     afero.Fs
	path   string
	logger *zap.Logger

	file   afero.File
	writer *bufio.Writer
}

func (l *singleFileLayout) open() error {
	if err := ensureDirectory(l.fs, filepath.Dir(l.path), l.logger); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := l.fs.Create(l.path)
	if err != nil {
		l.logger.Error("Failed to create output file", zap.String("file", l.path), zap.Error(err))
		return fmt.Errorf("failed to create output file: %w", err)
	}
	l.file = f
	l.writer = bufio.NewWriter(f)
	return nil
}

func (l *singleFileLayout) write(file sourceFile, content string) (string, error) {
	output := filepath.Base(l.path)
	if _, err := l.writer.WriteString(singleFileEntry(file.Name, content)); err != nil {
		return output, fmt.Errorf("failed to write content: %w", err)
	}
	return output, nil
}

func (l *singleFileLayout) close() error {
	if l.file == nil {
		return nil
	}
	flushErr := l.writer.Flush()
	closeErr := l.file.Close()
	l.file = nil
	if flushErr != nil {
		l.logger.Error("Failed to flush output file", zap.String("file", l.path), zap.Error(flushErr))
		return fmt.Errorf("failed to flush output: %w", flushErr)
	}
	if closeErr != nil {
		l.logger.Error("Failed to close output file", zap.String("file", l.path), zap.Error(closeErr))
		return fmt.Errorf("failed to close output: %w", closeErr)
	}
	return nil
}

func (l *singleFileLayout) collisions() int { return 0 }

// perFileLayout writes each file verbatim to <dir>/<name>.txt.
// The directory is flat, so files sharing a base name overwrite each other;
// the later one wins and the collision is counted.
type perFileLayout struct {
	fs     afero.Fs
	dir    string
	logger *zap.Logger

	written  map[string]string // output name -> source it came from
	collided int
}

func newPerFileLayout(fs afero.Fs, dir string, logger *zap.Logger) *perFileLayout {
	return &perFileLayout{fs: fs, dir: dir, logger: logger, written: make(map[string]string)}
}

func (l *perFileLayout) open() error {
	if err := ensureDirectory(l.fs, l.dir, l.logger); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

func (l *perFileLayout) write(file sourceFile, content string) (string, error) {
	output := file.Name + OutputSuffix
	if err := writeToFile(l.fs, filepath.Join(l.dir, output), []byte(content), l.logger); err != nil {
		return output, err
	}
	if previous, ok := l.written[output]; ok {
		l.collided++
		l.logger.Warn("Output file overwritten by a file with the same name",
			zap.String("output", output),
			zap.String("previous", previous),
			zap.String("current", file.Rel))
	}
	l.written[output] = file.Rel
	return output, nil
}

func (l *perFileLayout) close() error { return nil }

func (l *perFileLayout) collisions() int { return l.collided }

// perModuleLayout sends files in the source root to a perFileLayout and
// appends everything below a top-level directory to <dir>/<module>.txt.
type perModuleLayout struct {
	root   *perFileLayout
	fs     afero.Fs
	dir    string
	append bool
	logger *zap.Logger

	started map[string]bool // module files already written during this run
}

func (l *perModuleLayout) open() error {
	return l.root.open()
}

func (l *perModuleLayout) write(file sourceFile, content string) (string, error) {
	if file.topLevel() {
		return l.root.write(file, content)
	}

	output := file.module() + OutputSuffix
	truncate := !l.append && !l.started[output]
	if err := appendToFile(l.fs, filepath.Join(l.dir, output), []byte(moduleEntry(file.Rel, content)), truncate, l.logger); err != nil {
		return output, err
	}
	l.started[output] = true
	return output, nil
}

func (l *perModuleLayout) close() error { return nil }

func (l *perModuleLayout) collisions() int { return l.root.collisions() }
