package cmd

import (
	"projtext/pkg/combine"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newModulesCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "modules",
		Short: "Save each top-level directory as one text file",
		Long: `Save files directly in the source directory as <name>.txt and every file
below a top-level directory into <directory>.txt, each entry preceded by its
relative path and followed by a "---" line. Output goes to project_as_text/.

Module files are rewritten on every run. With --append new entries are added
to whatever earlier runs left behind.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAggregate(v, combine.PerModule)
		},
	}

	cmd.Flags().Bool("append", false, "Append to module files from earlier runs instead of replacing them")
	bindFlags(v, cmd.Flags())
	return cmd
}
