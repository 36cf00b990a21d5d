package orchestrator

import (
	"context"
	"fmt"

	"github.com/imamik/colonyctl/internal/model"
)

// checkClusterStatus allows operations only on READY clusters.
func checkClusterStatus(c *model.Cluster) error {
	if c.Status == model.ClusterStatusReady {
		return nil
	}
	return &ClusterStatusError{ClusterID: c.ID, Status: c.Status}
}

// readyCluster fetches the cluster and applies the status gate.
func (s *Service) readyCluster(ctx context.Context, clusterID string) (*model.Cluster, error) {
	cluster, err := s.clusters.GetCluster(ctx, clusterID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cluster %s: %w", clusterID, err)
	}
	if err := checkClusterStatus(cluster); err != nil {
		return nil, err
	}
	return cluster, nil
}
