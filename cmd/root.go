package cmd

import (
	"strings"

	"projtext/pkg/combine"
	"projtext/pkg/exclude"
	"projtext/pkg/logging"
	"projtext/pkg/version"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// envPrefix namespaces environment overrides, e.g. PROJTEXT_SOURCE.
const envPrefix = "PROJTEXT"

// logger is built once flags are parsed; it discards output until then.
var logger = zap.NewNop()

// Logger returns the logger of the current invocation.
func Logger() *zap.Logger {
	return logger
}

// RootCmd is the base command when called without any subcommands.
var RootCmd = NewRootCmd()

// NewRootCmd builds the projtext command tree with its own viper instance.
func NewRootCmd() *cobra.Command {
	v := newConfig()

	root := &cobra.Command{
		Use:   "projtext",
		Short: "projtext saves a project's source files as plain text",
		Long: `projtext walks a source tree and copies every .ts, .java, .properties, .xml,
.py, .md and .sql file into plain-text output for review or archival.

By default each file becomes <name>.txt inside project_as_text/. With --single
everything goes into project_as_text.txt, one entry per file. Use the modules
subcommand to group files by top-level directory instead.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := logging.Setup(v.GetBool("debug"), version.AppName, version.Get().Version)
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := combine.PerFile
			if v.GetBool("single") {
				mode = combine.SingleFile
			}
			return runAggregate(v, mode)
		},
	}

	pf := root.PersistentFlags()
	pf.Bool("debug", false, "Enable debug logging")
	pf.StringP("source", "d", "", "Directory to save as text (default: current directory)")
	pf.StringSliceP("exclude", "x", exclude.DefaultNames, "Directory names to skip at any depth")
	pf.String("report", "", "Write a YAML report of the run to this file")
	pf.String("tree", "", "Write a tree of the copied files to this file")
	bindFlags(v, pf)

	root.Flags().BoolP("single", "s", false, "Save all files in a single text file")
	bindFlags(v, root.Flags())

	root.AddCommand(newModulesCmd(v), newVersionCmd())
	return root
}

// newConfig returns a viper instance reading PROJTEXT_* environment variables.
// No configuration file is consulted.
func newConfig() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	return v
}

// bindFlags makes every flag in fs readable through v under its own name.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) {
	fs.VisitAll(func(f *pflag.Flag) {
		// Lookup never fails for a flag handed to VisitAll.
		_ = v.BindPFlag(f.Name, f)
	})
}

// Execute runs the root command.
func Execute() error {
	return RootCmd.Execute()
}
