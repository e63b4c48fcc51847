package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"projtext/pkg/combine"
	"projtext/pkg/exclude"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// settings is the configuration of one run after flags, PROJTEXT_* variables
// and defaults have been merged, in that order of precedence.
type settings struct {
	Source  string
	Exclude []string
	Report  string
	Tree    string
	Append  bool
}

func loadSettings(v *viper.Viper) (settings, error) {
	s := settings{
		Source:  v.GetString("source"),
		Exclude: exclude.ParseList(v.GetStringSlice("exclude")),
		Report:  v.GetString("report"),
		Tree:    v.GetString("tree"),
		Append:  v.GetBool("append"),
	}

	if s.Source == "" {
		wd, err := os.Getwd()
		if err != nil {
			return s, fmt.Errorf("failed to get current directory: %w", err)
		}
		s.Source = wd
	}

	abs, err := filepath.Abs(s.Source)
	if err != nil {
		return s, fmt.Errorf("failed to get absolute path: %w", err)
	}
	s.Source = abs
	return s, nil
}

// destinationFor places the output inside the source directory:
// project_as_text.txt for a single file, project_as_text/ otherwise.
func destinationFor(source string, mode combine.Mode) string {
	if mode == combine.SingleFile {
		return filepath.Join(source, combine.DefaultOutputName+combine.OutputSuffix)
	}
	return filepath.Join(source, combine.DefaultOutputName)
}

// runAggregate resolves settings, runs the aggregation and reports skipped files.
func runAggregate(v *viper.Viper, mode combine.Mode) error {
	s, err := loadSettings(v)
	if err != nil {
		logger.Error("Failed to resolve settings", zap.Error(err))
		return err
	}

	opts := combine.Options{
		SourceRoot:    s.Source,
		Destination:   destinationFor(s.Source, mode),
		Exclude:       exclude.New(s.Exclude...),
		Mode:          mode,
		AppendModules: s.Append,
	}
	logger.Debug("Resolved settings",
		zap.String("source", opts.SourceRoot),
		zap.String("destination", opts.Destination),
		zap.Strings("exclude", opts.Exclude.Names()),
		zap.Stringer("mode", mode))

	fs := afero.NewOsFs()
	result, err := combine.New(fs, logger).Aggregate(opts)
	if err != nil {
		logger.Error("Failed to execute combine process", zap.Error(err))
		return fmt.Errorf("combine execution failed: %w", err)
	}

	result.LogSkipped(logger)

	if s.Report != "" {
		if err := combine.WriteReport(fs, s.Report, result); err != nil {
			logger.Error("Failed to write report", zap.String("report", s.Report), zap.Error(err))
			return err
		}
		logger.Info("Report written", zap.String("report", s.Report))
	}

	if s.Tree != "" {
		if err := afero.WriteFile(fs, s.Tree, []byte(result.Tree()), 0o644); err != nil {
			logger.Error("Failed to write tree", zap.String("tree", s.Tree), zap.Error(err))
			return fmt.Errorf("failed to write tree %s: %w", s.Tree, err)
		}
		logger.Info("Tree written", zap.String("tree", s.Tree))
	}
	return nil
}
