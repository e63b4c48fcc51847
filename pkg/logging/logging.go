package logging

import (
	"go.uber.org/zap"
)

// New builds the application logger. Debug selects zap's development
// config (console encoding, debug level); otherwise the production config
// (JSON, info level) is used. Both write to stderr.
func New(debug bool, appName, appVersion string) (*zap.Logger, error) {
	var cfg zap.Config

	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	// Add default fields
	cfg.InitialFields = map[string]interface{}{
		"appName":    appName,
		"appVersion": appVersion,
	}

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop(), err
	}
	return logger, nil
}

// Setup builds the logger with New and installs it as zap's global logger.
func Setup(debug bool, appName, appVersion string) (*zap.Logger, error) {
	logger, err := New(debug, appName, appVersion)
	if err != nil {
		return logger, err
	}
	zap.ReplaceGlobals(logger)
	return logger, nil
}
