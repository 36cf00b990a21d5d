package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/colonyctl/cmd/colonyctl/handlers"
)

// Clusters returns the clusters command group.
func Clusters(opts *handlers.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "clusters",
		Aliases: []string{"cluster"},
		Short:   "Create, inspect and delete clusters",
	}

	cmd.AddCommand(clustersList(opts))
	cmd.AddCommand(clustersGet(opts))
	cmd.AddCommand(clustersCreate(opts))
	cmd.AddCommand(clustersDelete(opts))
	cmd.AddCommand(clustersResources(opts))
	cmd.AddCommand(clustersKubeconfig(opts))
	cmd.AddCommand(clustersDashboard(opts))

	return cmd
}

func clustersList(opts *handlers.Options) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List clusters",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.ListClusters(cmd.Context(), handlerOptions(cmd, opts), status)
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Only list clusters in this status (PENDING, DEPLOYING, READY, FAILED, UNKNOWN)")

	return cmd
}

func clustersGet(opts *handlers.Options) *cobra.Command {
	var withNodes bool

	cmd := &cobra.Command{
		Use:   "get CLUSTER_ID",
		Short: "Show a cluster",
		Long: `Show a cluster.

With --nodes the cluster's member nodes are resolved against the node pool.
This requires the cluster to be READY; members missing from the pool are
reported as unresolved.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.GetCluster(cmd.Context(), handlerOptions(cmd, opts), args[0], withNodes)
		},
	}

	cmd.Flags().BoolVar(&withNodes, "nodes", false, "Include member nodes (cluster must be READY)")

	return cmd
}

func clustersCreate(opts *handlers.Options) *cobra.Command {
	var create handlers.CreateOptions

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Deploy a new cluster from pool nodes and imported servers",
		Long: `Deploy a new cluster.

Nodes are given as pool node IDs (--worker, --control-plane), in a request
file (-f), or discovered from Hetzner Cloud servers (--hcloud-selector).
Flags are merged over the request file.

Requested nodes that are unknown, already assigned, or still DISCOVERING when
the wait times out are reported as issues; the cluster is deployed with the
remaining nodes. The command fails only when no node could be used.

Request file (local path or s3://bucket/key):

  name: training
  type: REMOTE
  colony_id: colony-1
  features:
    multinode_training: true
    vpn: true
  workers:
    - 2f6c1a0e-node
    - hostname: gpu-02
      endpoint: 10.0.0.12
      username: root
      ssh_key_id: key-1
  control_plane:
    - 7d1e9b44-node

Examples:
  colonyctl clusters create --name training -w node-1 -w node-2 -c node-3
  colonyctl clusters create -f request.yaml --wait
  colonyctl clusters create --name gpu --hcloud-selector pool=gpu --ssh-key-id key-1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.CreateCluster(cmd.Context(), handlerOptions(cmd, opts), create)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&create.File, "file", "f", "", "Deploy request YAML (local path or s3://bucket/key)")
	f.StringVar(&create.Name, "name", "", "Cluster name")
	f.StringVar(&create.Type, "type", "", "Cluster type: REMOTE, ADOPTED, CLOUD or DOCKER (default REMOTE)")
	f.StringVar(&create.ColonyID, "colony", "", "Colony the cluster belongs to")
	f.DurationVar(&create.TTL, "ttl", 0, "Schedule the cluster for deletion after this duration")
	f.StringSliceVarP(&create.Workers, "worker", "w", nil, "Pool node ID to use as a worker (repeatable)")
	f.StringSliceVarP(&create.ControlPlanes, "control-plane", "c", nil, "Pool node ID to use as a control plane (repeatable)")
	f.BoolVar(&create.MultinodeTraining, "multinode-training", false, "Enable multinode training")
	f.BoolVar(&create.Telemetry, "telemetry", false, "Enable telemetry")
	f.BoolVar(&create.VPN, "vpn", false, "Enable VPN")
	f.BoolVar(&create.LLMInference, "llm-inference", false, "Prepare the cluster for LLM inference")
	f.StringVar(&create.HCloudSelector, "hcloud-selector", "", "Import running Hetzner Cloud servers matching this label selector")
	f.StringVar(&create.SSHUser, "ssh-user", "", "SSH user for imported servers (default root)")
	f.StringVar(&create.SSHKeyID, "ssh-key-id", "", "Backend SSH key ID for imported servers")
	f.StringVar(&create.SSHKeyFile, "ssh-key-file", "", "Private key file sent inline for imported servers")
	f.BoolVar(&create.Wait, "wait", false, "Wait until the cluster is READY")

	return cmd
}

func clustersDelete(opts *handlers.Options) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete CLUSTER_ID",
		Short: "Delete a cluster",
		Long: `Delete a cluster in any status. Its nodes are released back to the pool.

WARNING: This operation is irreversible.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.DeleteCluster(cmd.Context(), handlerOptions(cmd, opts), args[0], yes)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func clustersResources(opts *handlers.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "resources CLUSTER_ID",
		Short: "Show free and occupied resources per node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.ClusterResources(cmd.Context(), handlerOptions(cmd, opts), args[0])
		},
	}
}

func clustersKubeconfig(opts *handlers.Options) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "kubeconfig CLUSTER_ID",
		Short: "Print or export a cluster's kubeconfig",
		Long: `Print a cluster's kubeconfig, or write it to --export.

Exported kubeconfigs are validated first. Local files are written with 0600
permissions; s3://bucket/key targets require COLONY_S3_* settings.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.Kubeconfig(cmd.Context(), handlerOptions(cmd, opts), args[0], outputPath)
		},
	}

	cmd.Flags().StringVar(&outputPath, "export", "", "Write the kubeconfig to this path or s3://bucket/key")

	return cmd
}

func clustersDashboard(opts *handlers.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard CLUSTER_ID",
		Short: "Print a cluster's dashboard URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.Dashboard(cmd.Context(), handlerOptions(cmd, opts), args[0])
		},
	}
}
