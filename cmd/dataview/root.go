package main

import (
	"github.com/spf13/cobra"

	"github.com/dennysrmorales/data-pipeline-dashboard/internal/pkg/pkglog"
)

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "dataview",
		Short:         "Dataview pipeline CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			pkglog.InitLogging()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.AddCommand(newProcessCommand())
	rootCmd.AddCommand(newDatasetsCommand())

	return rootCmd
}
