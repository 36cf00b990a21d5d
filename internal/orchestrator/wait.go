package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/imamik/colonyctl/internal/model"
	"github.com/imamik/colonyctl/internal/util/poll"
)

// waitForNodes polls the pool until none of ids is DISCOVERING, then
// classifies each one against a final listing. Timing out is not an error:
// nodes still DISCOVERING are reported as issues.
func (s *Service) waitForNodes(ctx context.Context, ids []string) ([]string, []model.NodeValidationIssue, error) {
	if len(ids) == 0 {
		return nil, nil, nil
	}

	start := time.Now()
	s.log.Info("waiting for discovering nodes", "nodes", ids, "timeout", s.timeouts.NodeWait)

	stillDiscovering := func(pool []model.ClusterNode) bool {
		byID := indexNodes(pool)
		for _, id := range ids {
			if n, ok := byID[id]; ok && n.Status == model.NodeStatusDiscovering {
				s.log.V(1).Info("node still discovering", "node", id)
				return false
			}
		}
		return true
	}

	_, err := poll.Until(ctx, s.nodes.ListNodes, stillDiscovering,
		s.timeouts.NodeWait, s.timeouts.NodeWaitInterval,
		fmt.Sprintf("waiting for %d discovering nodes", len(ids)))
	s.metrics.recordNodeWait(time.Since(start))
	switch {
	case poll.IsTimeout(err):
		s.log.Info("timed out waiting for nodes, continuing with final status", "error", err.Error())
	case err != nil:
		return nil, nil, fmt.Errorf("failed to poll node status: %w", err)
	}

	pool, err := s.nodes.ListNodes(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list nodes after polling: %w", err)
	}

	var (
		ready  []string
		issues []model.NodeValidationIssue
	)
	byID := indexNodes(pool)
	for _, id := range ids {
		node, ok := byID[id]
		switch {
		case !ok:
			issues = append(issues, model.NodeValidationIssue{
				NodeID: id,
				Reason: fmt.Sprintf("node %s not found after polling", id),
			})
		case node.Status == model.NodeStatusAvailable:
			ready = append(ready, id)
		case node.Status == model.NodeStatusDiscovering:
			issues = append(issues, model.NodeValidationIssue{
				NodeID: id,
				Reason: fmt.Sprintf("timed out waiting for node %s, still in DISCOVERING status", id),
			})
		default:
			issues = append(issues, model.NodeValidationIssue{
				NodeID: id,
				Reason: fmt.Sprintf("node %s has invalid status after polling: %s", id, node.Status),
			})
		}
	}
	return ready, issues, nil
}
