package combine

import (
	"errors"
	"fmt"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// readSource reads an eligible file and decodes it as UTF-8 text.
func (a *Aggregator) readSource(file sourceFile) (string, error) {
	a.logger.Debug("Reading file content", zap.String("filePath", file.Path))

	data, err := afero.ReadFile(a.fs, file.Path)
	if err != nil {
		return "", fmt.Errorf("error reading file %s: %w", file.Path, err)
	}

	content, err := decodeText(data)
	if err != nil {
		return "", fmt.Errorf("error decoding file %s: %w", file.Path, err)
	}

	a.logger.Debug("Successfully read file content",
		zap.String("filePath", file.Path),
		zap.Int("contentSizeBytes", len(data)))
	return content, nil
}

// processFile copies one eligible file into the layout and records the outcome.
// Failures are contained here and never stop the traversal.
func (a *Aggregator) processFile(l layout, file sourceFile, result *Result) {
	content, err := a.readSource(file)
	if err != nil {
		reason := ReasonIO
		if errors.Is(err, ErrDecode) {
			reason = ReasonDecode
		}
		a.logger.Debug("Skipping file",
			zap.String("file", file.Path),
			zap.String("reason", string(reason)),
			zap.Error(err))
		result.addSkipped(file.Rel, reason, err)
		return
	}

	output, err := l.write(file, content)
	if err != nil {
		a.logger.Debug("Failed to write file content",
			zap.String("file", file.Path),
			zap.String("output", output),
			zap.Error(err))
		result.addSkipped(file.Rel, ReasonIO, err)
		return
	}

	result.addWritten(file.Rel, output, len(content))
	a.logger.Debug("Copied file", zap.String("file", file.Rel), zap.String("output", output))
}
