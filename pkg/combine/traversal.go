// File: pkg/combine/traversal.go
package combine

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"projtext/pkg/exclude"
)

// sourceFile is an eligible file found during traversal.
type sourceFile struct {
	Path string // Path as seen by the filesystem.
	Rel  string // Path relative to the source root.
	Name string // Base name.
}

// topLevel reports whether the file sits directly in the source root.
func (f sourceFile) topLevel() bool {
	return !strings.ContainsRune(f.Rel, filepath.Separator)
}

// module returns the first segment of the file's relative path.
func (f sourceFile) module() string {
	if i := strings.IndexRune(f.Rel, filepath.Separator); i >= 0 {
		return f.Rel[:i]
	}
	return f.Rel
}

// walker visits a source tree top-down. In every directory the eligible files
// are visited first, in name order, then the remaining subdirectories are
// descended in name order. Excluded directories are dropped before descent.
type walker struct {
	fs      afero.Fs
	logger  *zap.Logger
	root    string
	exclude exclude.Set
	skip    string // Directory never descended into, usually the destination.
	visit   func(sourceFile)
	failed  func(rel string, err error)
}

func (w *walker) walk() {
	w.walkDir(w.root)
}

func (w *walker) walkDir(dir string) {
	entries, err := afero.ReadDir(w.fs, dir)
	if err != nil {
		w.logger.Warn("Error accessing directory during traversal", zap.String("directory", dir), zap.Error(err))
		w.failed(w.rel(dir), err)
		return
	}

	var subdirs []string
	for _, info := range entries {
		name := info.Name()
		path := filepath.Join(dir, name)

		isDir := info.IsDir()
		if info.Mode()&os.ModeSymlink != 0 {
			// Symlinked directories are listed but never followed.
			if target, err := w.fs.Stat(path); err == nil && target.IsDir() {
				w.logger.Debug("Not following directory symlink", zap.String("path", path))
				continue
			}
		}

		if isDir {
			if w.exclude.Contains(name) {
				w.logger.Debug("Skipping excluded directory during traversal", zap.String("directory", path))
				continue
			}
			if w.skip != "" && path == w.skip {
				w.logger.Debug("Skipping destination directory during traversal", zap.String("directory", path))
				continue
			}
			subdirs = append(subdirs, path)
			continue
		}

		if !Eligible(name) {
			continue
		}
		w.visit(sourceFile{Path: path, Rel: w.rel(path), Name: name})
	}

	for _, sub := range subdirs {
		w.walkDir(sub)
	}
}

func (w *walker) rel(path string) string {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return path
	}
	return rel
}
