// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/colonyctl/cmd/colonyctl/handlers"
	"github.com/imamik/colonyctl/internal/config"
)

// Root returns the root command for the colonyctl CLI.
//
// Global flags are bound to a shared handlers.Options value that every
// subcommand passes to its handler.
func Root() *cobra.Command {
	opts := &handlers.Options{}

	cmd := &cobra.Command{
		Use:           "colonyctl",
		Short:         "Deploy and manage colony clusters from a shared node pool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", config.DefaultEnvFile, "Path to a .env file with COLONY_* settings (ignored if missing)")
	cmd.PersistentFlags().CountVarP(&opts.Verbosity, "verbose", "v", "Increase log verbosity (repeatable)")
	cmd.PersistentFlags().StringVarP(&opts.Output, "output", "o", handlers.OutputText, "Output format: text, json or yaml")

	cmd.AddCommand(Clusters(opts))
	cmd.AddCommand(Nodes(opts))
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}

// handlerOptions returns the global options with output bound to cmd.
func handlerOptions(cmd *cobra.Command, opts *handlers.Options) handlers.Options {
	o := *opts
	o.Out = cmd.OutOrStdout()
	return o
}
