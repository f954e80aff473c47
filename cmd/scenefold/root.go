package main

import (
	"github.com/spf13/cobra"

	"github.com/scenefold/scenefold/internal/logger"
)

type rootFlags struct {
	verbose bool
}

func (f *rootFlags) newLogger() (*logger.Logger, error) {
	level := "info"
	if f.verbose {
		level = "debug"
	}
	return logger.New(logger.Options{Level: level, HumanReadable: true})
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "scenefold",
		Short:         "Scenefold builds and renders declarative scene documents",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(newRunCmd(flags))
	cmd.AddCommand(newRenderCmd(flags))
	cmd.AddCommand(newServeCmd(flags))
	cmd.AddCommand(newImportCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}
