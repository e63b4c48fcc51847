// File: pkg/combine/helpers.go
package combine

import (
	"os"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// singleFileEntry frames one file for the single-file layout:
// "<name>.txt", a blank line, the content, then a dashed separator line.
func singleFileEntry(name, content string) string {
	var b strings.Builder
	b.Grow(len(name) + len(OutputSuffix) + len(content) + singleSeparatorWidth + 4)
	b.WriteString(name)
	b.WriteString(OutputSuffix)
	b.WriteString("\n\n")
	b.WriteString(content)
	b.WriteString("\n")
	b.WriteString(strings.Repeat("-", singleSeparatorWidth))
	b.WriteString("\n")
	return b.String()
}

// moduleEntry frames one file for a module file:
// the relative path, a blank line, the content, then "---".
func moduleEntry(rel, content string) string {
	return rel + "\n\n" + content + "\n" + moduleSeparator + "\n"
}

// ensureDirectory ensures a directory exists, creating it if necessary.
func ensureDirectory(fs afero.Fs, path string, logger *zap.Logger) error {
	if err := fs.MkdirAll(path, 0o755); err != nil {
		logger.Error("Failed to create directory", zap.String("path", path), zap.Error(err))
		return err
	}
	logger.Debug("Ensured directory exists", zap.String("path", path))
	return nil
}

// writeToFile replaces the file's content with data.
func writeToFile(fs afero.Fs, path string, data []byte, logger *zap.Logger) error {
	if err := afero.WriteFile(fs, path, data, 0o644); err != nil {
		logger.Error("Failed to write file", zap.String("path", path), zap.Error(err))
		return err
	}
	logger.Debug("Successfully wrote file", zap.String("path", path))
	return nil
}

// appendToFile adds data to the end of the file, creating it if needed.
// When truncate is set, existing content is dropped first and data is written
// from offset zero. O_APPEND is left out then: some afero filesystems seek to
// the old end before truncating.
func appendToFile(fs afero.Fs, path string, data []byte, truncate bool, logger *zap.Logger) (err error) {
	flags := os.O_CREATE | os.O_WRONLY | os.O_APPEND
	if truncate {
		flags = os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	}

	f, err := fs.OpenFile(path, flags, 0o644)
	if err != nil {
		logger.Error("Failed to open file for appending", zap.String("path", path), zap.Error(err))
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			logger.Error("Failed to close file", zap.String("path", path), zap.Error(cerr))
			err = cerr
		}
	}()

	if _, err := f.Write(data); err != nil {
		logger.Error("Failed to append to file", zap.String("path", path), zap.Error(err))
		return err
	}
	return nil
}
