package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/colonyctl/cmd/colonyctl/handlers"
)

// Nodes returns the nodes command group for scaling clusters.
func Nodes(opts *handlers.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "nodes",
		Aliases: []string{"node"},
		Short:   "Add nodes to or remove nodes from a READY cluster",
	}

	cmd.AddCommand(nodesAdd(opts))
	cmd.AddCommand(nodesRemove(opts))

	return cmd
}

func nodesAdd(opts *handlers.Options) *cobra.Command {
	var workers, controlPlanes []string

	cmd := &cobra.Command{
		Use:   "add CLUSTER_ID",
		Short: "Add pool nodes to a cluster",
		Long: `Add AVAILABLE pool nodes to a READY cluster.

Nodes that are not available are reported as issues and skipped.

Example:
  colonyctl nodes add cluster-1 -w node-4 -w node-5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.AddNodes(cmd.Context(), handlerOptions(cmd, opts), args[0], workers, controlPlanes)
		},
	}

	cmd.Flags().StringSliceVarP(&workers, "worker", "w", nil, "Pool node ID to add as a worker (repeatable)")
	cmd.Flags().StringSliceVarP(&controlPlanes, "control-plane", "c", nil, "Pool node ID to add as a control plane (repeatable)")

	return cmd
}

func nodesRemove(opts *handlers.Options) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove CLUSTER_ID NODE_ID...",
		Short: "Remove nodes from a cluster",
		Long: `Remove nodes from a READY cluster and release them to the pool.

Nodes the backend refuses to remove are reported as issues; the remaining
nodes are still removed.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.RemoveNodes(cmd.Context(), handlerOptions(cmd, opts), args[0], args[1:], yes)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
