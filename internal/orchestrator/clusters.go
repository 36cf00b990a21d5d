package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/imamik/colonyctl/internal/kubeconfig"
	"github.com/imamik/colonyctl/internal/model"
	"github.com/imamik/colonyctl/internal/util/poll"
)

// ListClusters returns all clusters, or those in status when it is non-empty.
func (s *Service) ListClusters(ctx context.Context, status model.ClusterStatus) ([]model.Cluster, error) {
	clusters, err := s.clusters.ListClusters(ctx, status)
	return clusters, opError(opList, err)
}

// GetCluster returns the cluster without applying the status gate.
func (s *Service) GetCluster(ctx context.Context, clusterID string) (*model.Cluster, error) {
	cluster, err := s.clusters.GetCluster(ctx, clusterID)
	return cluster, opError(opGet, err)
}

// DeleteCluster deletes a cluster in any status and returns its ID.
func (s *Service) DeleteCluster(ctx context.Context, clusterID string) (string, error) {
	id, err := s.clusters.DeleteCluster(ctx, clusterID)
	if err != nil {
		return "", opError(opDelete, err)
	}
	s.log.Info("cluster deleted", "clusterID", id)
	return id, nil
}

// GetClusterWithNodes loads a READY cluster with its member nodes resolved
// against the pool. Members missing from the pool are returned as loading
// issues.
func (s *Service) GetClusterWithNodes(ctx context.Context, clusterID string) (*model.ClusterWithNodes, []model.NodeLoadingIssue, error) {
	cluster, err := s.readyCluster(ctx, clusterID)
	if err != nil {
		return nil, nil, opError(opLoadNodes, err)
	}

	refs, err := s.clusters.GetClusterNodes(ctx, clusterID)
	if err != nil {
		return nil, nil, opError(opLoadNodes, fmt.Errorf("failed to get nodes of cluster %s: %w", clusterID, err))
	}
	pool, err := s.nodes.ListNodes(ctx)
	if err != nil {
		return nil, nil, opError(opLoadNodes, fmt.Errorf("failed to list nodes: %w", err))
	}

	nodes, issues := loadNodeRefs(pool, refs)
	return &model.ClusterWithNodes{Cluster: *cluster, Nodes: nodes}, issues, nil
}

func loadNodeRefs(pool []model.ClusterNode, refs []model.NodeRef) ([]model.AssignedClusterNode, []model.NodeLoadingIssue) {
	byID := indexNodes(pool)

	var (
		nodes  []model.AssignedClusterNode
		issues []model.NodeLoadingIssue
	)
	for _, ref := range refs {
		node, ok := byID[ref.NodeID]
		if !ok {
			issues = append(issues, model.NodeLoadingIssue{
				NodeID: ref.NodeID,
				Reason: fmt.Sprintf("node %s not found in node pool", ref.NodeID),
			})
			continue
		}
		nodes = append(nodes, node.Assign(ref.Role))
	}
	return nodes, issues
}

// GetClusterResources returns per-node resources of a READY cluster.
func (s *Service) GetClusterResources(ctx context.Context, clusterID string) ([]model.ClusterNodeResources, error) {
	if _, err := s.readyCluster(ctx, clusterID); err != nil {
		return nil, opError(opResources, err)
	}
	res, err := s.clusters.GetClusterResources(ctx, clusterID)
	return res, opError(opResources, err)
}

// GetKubeconfig returns the kubeconfig of a READY cluster.
func (s *Service) GetKubeconfig(ctx context.Context, clusterID string) (string, error) {
	if _, err := s.readyCluster(ctx, clusterID); err != nil {
		return "", opError(opKubeconfig, err)
	}
	cfg, err := s.clusters.GetKubeconfig(ctx, clusterID)
	return cfg, opError(opKubeconfig, err)
}

// ExportKubeconfig validates the kubeconfig of a READY cluster and writes
// it to path through the configured FileWriter.
func (s *Service) ExportKubeconfig(ctx context.Context, clusterID, path string) (*kubeconfig.Info, error) {
	if s.files == nil {
		return nil, opError(opExport, errors.New("no file writer configured"))
	}
	cfg, err := s.GetKubeconfig(ctx, clusterID)
	if err != nil {
		return nil, err
	}

	info, err := kubeconfig.Validate([]byte(cfg))
	if err != nil {
		return nil, opError(opExport, err)
	}
	if err := s.files.WriteFile(ctx, path, []byte(cfg)); err != nil {
		return nil, opError(opExport, fmt.Errorf("failed to write %s: %w", path, err))
	}

	s.log.Info("kubeconfig exported", "clusterID", clusterID, "path", path, "context", info.CurrentContext)
	return info, nil
}

// GetDashboardURL returns the dashboard URL of a READY cluster.
func (s *Service) GetDashboardURL(ctx context.Context, clusterID string) (string, error) {
	if _, err := s.readyCluster(ctx, clusterID); err != nil {
		return "", opError(opDashboard, err)
	}
	url, err := s.clusters.GetDashboardURL(ctx, clusterID)
	return url, opError(opDashboard, err)
}

// WaitForClusterReady polls until the cluster is READY. A FAILED cluster
// stops the wait immediately.
func (s *Service) WaitForClusterReady(ctx context.Context, clusterID string) (*model.Cluster, error) {
	fetch := func(ctx context.Context) (*model.Cluster, error) {
		c, err := s.clusters.GetCluster(ctx, clusterID)
		if err != nil {
			return nil, err
		}
		if c.Status == model.ClusterStatusFailed {
			return c, &ClusterStatusError{ClusterID: c.ID, Status: c.Status}
		}
		s.log.V(1).Info("cluster status", "clusterID", clusterID, "status", c.Status)
		return c, nil
	}
	ready := func(c *model.Cluster) bool {
		return c.Status == model.ClusterStatusReady
	}

	s.log.Info("waiting for cluster", "clusterID", clusterID, "timeout", s.timeouts.ClusterReady)
	cluster, err := poll.Until(ctx, fetch, ready,
		s.timeouts.ClusterReady, s.timeouts.ClusterReadyInterval,
		fmt.Sprintf("waiting for cluster %s to become READY", clusterID))
	if err != nil {
		return cluster, opError(opWaitReady, err)
	}
	return cluster, nil
}
