package orchestrator

import (
	"fmt"

	"github.com/imamik/colonyctl/internal/model"
)

// partitionRequests splits a role group into node IDs and specifications,
// preserving order within each. Duplicates are kept.
func partitionRequests(requests []model.NodeRequest) (ids []string, specs []model.NodeSpecification) {
	for _, r := range requests {
		switch r := r.(type) {
		case model.ExistingNode:
			ids = append(ids, r.ID)
		case model.NewNode:
			specs = append(specs, r.Spec)
		}
	}
	return ids, specs
}

// resolveNodeIDs classifies ids against a snapshot of the unassigned pool.
// AVAILABLE nodes are ready, DISCOVERING nodes need polling, and anything
// else becomes an issue. The result depends only on its inputs.
func resolveNodeIDs(pool []model.ClusterNode, ids []string) (ready, toPoll []string, issues []model.NodeValidationIssue) {
	byID := indexNodes(pool)

	for _, id := range ids {
		node, ok := byID[id]
		switch {
		case !ok:
			issues = append(issues, model.NodeValidationIssue{
				NodeID: id,
				Reason: fmt.Sprintf("node %s not found in available nodes", id),
			})
		case node.Status == model.NodeStatusAvailable:
			ready = append(ready, id)
		case node.Status == model.NodeStatusDiscovering:
			toPoll = append(toPoll, id)
		default:
			issues = append(issues, model.NodeValidationIssue{
				NodeID: id,
				Reason: fmt.Sprintf("node %s is not available (status: %s)", id, node.Status),
			})
		}
	}
	return ready, toPoll, issues
}

func indexNodes(nodes []model.ClusterNode) map[string]model.ClusterNode {
	byID := make(map[string]model.ClusterNode, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}
	return byID
}
