package orchestrator

import (
	"context"
	"fmt"

	"github.com/imamik/colonyctl/internal/gateway"
	"github.com/imamik/colonyctl/internal/model"
)

const (
	scaleAdd    = "add"
	scaleRemove = "remove"
)

// AddNodes binds unassigned pool nodes to a READY cluster. Nodes that are
// not AVAILABLE or DISCOVERING are reported as issues; the remaining ones
// are added in a single call. Refs without a role join as workers.
func (s *Service) AddNodes(ctx context.Context, clusterID string, refs []model.NodeRef) (*model.ClusterScaleResult, error) {
	result, err := s.addNodes(ctx, clusterID, refs)
	if err != nil {
		s.metrics.recordScale(scaleAdd, outcomeError, 0)
		return nil, opError(opAddNodes, err)
	}
	s.metrics.recordScale(scaleAdd, outcomeOf(len(result.Nodes) > 0, len(result.Issues)), len(result.Issues))
	return result, nil
}

func (s *Service) addNodes(ctx context.Context, clusterID string, refs []model.NodeRef) (*model.ClusterScaleResult, error) {
	if _, err := s.readyCluster(ctx, clusterID); err != nil {
		return nil, err
	}

	pool, err := s.nodes.ListAvailableNodes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list available nodes: %w", err)
	}
	byID := indexNodes(pool)

	result := &model.ClusterScaleResult{}
	var valid []model.NodeRef
	for _, ref := range refs {
		node, ok := byID[ref.NodeID]
		if !ok || !node.IsUnassigned() {
			result.Issues = append(result.Issues, model.NodeValidationIssue{
				NodeID: ref.NodeID,
				Reason: fmt.Sprintf("node %s not found in available nodes", ref.NodeID),
			})
			continue
		}
		if ref.Role == "" {
			ref.Role = model.RoleWorker
		}
		valid = append(valid, ref)
	}

	if len(valid) == 0 {
		s.log.Info("no valid nodes to add", "clusterID", clusterID, "issues", len(result.Issues))
		return result, nil
	}

	added, err := s.clusters.AddNodesToCluster(ctx, model.AddNodesRequest{ClusterID: clusterID, Nodes: valid})
	if err != nil {
		return nil, fmt.Errorf("failed to add %d nodes to cluster %s: %w", len(valid), clusterID, err)
	}
	result.Nodes = added

	s.log.Info("nodes added", "clusterID", clusterID, "added", len(added), "issues", len(result.Issues))
	return result, nil
}

// RemoveNodes unbinds nodes from a READY cluster one at a time. A node the
// backend refuses to remove becomes an issue and does not stop the others;
// transport failures abort the whole operation.
func (s *Service) RemoveNodes(ctx context.Context, clusterID string, nodeIDs []string) (*model.ClusterScaleResult, error) {
	result, err := s.removeNodes(ctx, clusterID, nodeIDs)
	if err != nil {
		s.metrics.recordScale(scaleRemove, outcomeError, 0)
		return nil, opError(opRemoveNodes, err)
	}
	s.metrics.recordScale(scaleRemove, outcomeOf(len(result.Nodes) > 0, len(result.Issues)), len(result.Issues))
	return result, nil
}

func (s *Service) removeNodes(ctx context.Context, clusterID string, nodeIDs []string) (*model.ClusterScaleResult, error) {
	if _, err := s.readyCluster(ctx, clusterID); err != nil {
		return nil, err
	}

	result := &model.ClusterScaleResult{}
	for _, id := range nodeIDs {
		removed, err := s.clusters.RemoveNodeFromCluster(ctx, clusterID, id)
		switch {
		case gateway.IsCommandError(err):
			s.log.Info("node removal rejected", "clusterID", clusterID, "node", id, "error", err.Error())
			result.Issues = append(result.Issues, model.NodeValidationIssue{NodeID: id, Reason: err.Error()})
		case err != nil:
			return nil, fmt.Errorf("failed to remove node %s from cluster %s: %w", id, clusterID, err)
		case removed != id:
			result.Issues = append(result.Issues, model.NodeValidationIssue{
				NodeID: id,
				Reason: fmt.Sprintf("backend removed node %q instead of %s", removed, id),
			})
		default:
			result.Nodes = append(result.Nodes, model.NodeRef{NodeID: id})
		}
	}

	s.log.Info("nodes removed", "clusterID", clusterID, "removed", len(result.Nodes), "issues", len(result.Issues))
	return result, nil
}
