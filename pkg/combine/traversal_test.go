package combine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"projtext/pkg/exclude"
)

func collect(t *testing.T, fs afero.Fs, root string, excl exclude.Set) ([]string, []string) {
	t.Helper()
	var visited, failed []string
	w := &walker{
		fs:      fs,
		logger:  zap.NewNop(),
		root:    root,
		exclude: excl,
		visit: func(f sourceFile) {
			visited = append(visited, f.Rel)
		},
		failed: func(rel string, err error) {
			failed = append(failed, rel)
		},
	}
	w.walk()
	return visited, failed
}

func TestWalkerOrder(t *testing.T) {
	fs := newTree(t, map[string]string{
		"/src/b.py":       "",
		"/src/a.md":       "",
		"/src/z/1.py":     "",
		"/src/c/2.py":     "",
		"/src/c/d/3.sql":  "",
		"/src/c/0.ts":     "",
		"/src/readme.txt": "",
	})

	visited, failed := collect(t, fs, srcRoot, nil)

	assert.Equal(t, []string{
		"a.md",
		"b.py",
		filepath.Join("c", "0.ts"),
		filepath.Join("c", "2.py"),
		filepath.Join("c", "d", "3.sql"),
		filepath.Join("z", "1.py"),
	}, visited)
	assert.Empty(t, failed)
}

func TestSourceFileModule(t *testing.T) {
	tests := []struct {
		rel        string
		wantTop    bool
		wantModule string
	}{
		{"a.py", true, "a.py"},
		{filepath.Join("sub", "b.py"), false, "sub"},
		{filepath.Join("sub", "deep", "er", "c.py"), false, "sub"},
	}

	for _, tt := range tests {
		t.Run(tt.rel, func(t *testing.T) {
			f := sourceFile{Rel: tt.rel}
			assert.Equal(t, tt.wantTop, f.topLevel())
			assert.Equal(t, tt.wantModule, f.module())
		})
	}
}

// writeOSTree creates files under a real temporary directory.
func writeOSTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func TestWalkerSymlinks(t *testing.T) {
	root := writeOSTree(t, map[string]string{
		"real.py":      "real",
		"lib/inner.py": "inner",
	})
	if err := os.Symlink(filepath.Join(root, "real.py"), filepath.Join(root, "link.py")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	require.NoError(t, os.Symlink(filepath.Join(root, "lib"), filepath.Join(root, "liblink")))
	require.NoError(t, os.Symlink(filepath.Join(root, "missing.py"), filepath.Join(root, "dangling.py")))

	visited, failed := collect(t, afero.NewOsFs(), root, nil)

	assert.Equal(t, []string{
		"dangling.py",
		"link.py",
		"real.py",
		filepath.Join("lib", "inner.py"),
	}, visited, "file symlinks are visited, directory symlinks are not followed")
	assert.Empty(t, failed)

	result, err := Run(Options{SourceRoot: root, Destination: filepath.Join(root, "out"), Mode: PerFile}, nil)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(root, "out", "link.py.txt"))
	require.NoError(t, err)
	assert.Equal(t, "real", string(data))

	require.Len(t, result.SkippedBy(ReasonIO), 1, "a dangling symlink is an unreadable file")
	assert.Equal(t, "dangling.py", result.SkippedBy(ReasonIO)[0].Source)
}

func TestAggregateUnreadableFile(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}
	root := writeOSTree(t, map[string]string{
		"open.py":       "open",
		"locked.py":     "locked",
		"sub/after.sql": "after",
	})
	locked := filepath.Join(root, "locked.py")
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o644) })

	result, err := Run(Options{SourceRoot: root, Destination: filepath.Join(root, "out.txt"), Mode: SingleFile}, nil)
	require.NoError(t, err)

	require.Len(t, result.Skipped, 1)
	assert.Equal(t, "locked.py", result.Skipped[0].Source)
	assert.Equal(t, ReasonIO, result.Skipped[0].Reason)
	assert.ErrorIs(t, result.Skipped[0], os.ErrPermission)
	assert.Len(t, result.Written, 2)
}

func TestAggregateUnreadableDirectory(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}
	root := writeOSTree(t, map[string]string{
		"a.py":        "a",
		"locked/b.py": "b",
		"target/c.py": "c",
		"zzz/last.py": "last",
	})
	for _, dir := range []string{"locked", "target"} {
		path := filepath.Join(root, dir)
		require.NoError(t, os.Chmod(path, 0o000))
		t.Cleanup(func() { _ = os.Chmod(path, 0o755) })
	}

	result, err := Run(Options{
		SourceRoot:  root,
		Destination: filepath.Join(root, "project_as_text"),
		Exclude:     exclude.Default(),
		Mode:        PerModule,
	}, nil)
	require.NoError(t, err)

	require.Len(t, result.Skipped, 1, "the excluded directory is never opened")
	assert.Equal(t, "locked", result.Skipped[0].Source)
	assert.Equal(t, ReasonIO, result.Skipped[0].Reason)

	data, err := os.ReadFile(filepath.Join(root, "project_as_text", "zzz.txt"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("zzz", "last.py")+"\n\nlast\n---\n", string(data))
}

// deniedFs refuses to open the listed paths, as the OS does for a file or
// directory without read permission.
type deniedFs struct {
	afero.Fs
	denied map[string]bool
}

func (d *deniedFs) Open(name string) (afero.File, error) {
	if d.denied[name] {
		return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrPermission}
	}
	return d.Fs.Open(name)
}

func (d *deniedFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if d.denied[name] {
		return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrPermission}
	}
	return d.Fs.OpenFile(name, flag, perm)
}

func TestAggregateDeniedPathsAreSkipped(t *testing.T) {
	fs := &deniedFs{
		Fs: newTree(t, map[string]string{
			"/src/a.py":        "a",
			"/src/locked.py":   "locked",
			"/src/sealed/b.py": "b",
			"/src/target/c.py": "c",
			"/src/zzz/last.py": "last",
		}),
		denied: map[string]bool{
			"/src/locked.py": true,
			"/src/sealed":    true,
			"/src/target":    true,
		},
	}

	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)

	result, err := New(fs, logger).Aggregate(Options{
		SourceRoot:  srcRoot,
		Destination: outDir,
		Exclude:     exclude.Default(),
		Mode:        PerModule,
	})
	require.NoError(t, err)

	skipped := result.SkippedBy(ReasonIO)
	require.Len(t, skipped, 2, "the excluded directory is never opened")
	assert.Equal(t, "locked.py", skipped[0].Source)
	assert.Equal(t, "sealed", skipped[1].Source)
	for _, f := range skipped {
		assert.ErrorIs(t, f, os.ErrPermission)
	}

	assert.Equal(t, []string{"a.py.txt", "zzz.txt"}, result.Outputs())
	assert.Equal(t, "zzz/last.py\n\nlast\n---\n", readFile(t, fs, "/src/project_as_text/zzz.txt"))

	result.LogSkipped(logger)
	diagnostics := logs.FilterMessage("Error processing file")
	require.Equal(t, 2, diagnostics.Len())
	fields := diagnostics.All()[0].ContextMap()
	assert.Equal(t, "locked.py", fields["file"])
	assert.Contains(t, fields["error"], "permission denied")
}

func TestAggregateRelativeSourceRoot(t *testing.T) {
	root := writeOSTree(t, map[string]string{
		"a.py":                     "a",
		"project_as_text/stale.py": "left over",
	})
	root, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(root))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	destination := filepath.Join(root, "project_as_text")
	result, err := Run(Options{SourceRoot: ".", Destination: destination, Mode: PerModule}, nil)
	require.NoError(t, err)

	require.Len(t, result.Written, 1, "the destination is skipped however the root is spelled")
	assert.Equal(t, "a.py", result.Written[0].Source)
	assert.True(t, filepath.IsAbs(result.SourceRoot))
	assert.NoFileExists(t, filepath.Join(destination, "project_as_text.txt"))
}
