package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/imamik/colonyctl/internal/model"
)

// ErrNoNodesChanged is returned by AddNodes and RemoveNodes when no node
// could be added or removed.
var ErrNoNodesChanged = errors.New("no nodes were changed")

// AddNodes handles `nodes add`.
func AddNodes(ctx context.Context, opts Options, clusterID string, workers, controlPlanes []string) error {
	refs := make([]model.NodeRef, 0, len(workers)+len(controlPlanes))
	for _, id := range workers {
		refs = append(refs, model.NodeRef{NodeID: id, Role: model.RoleWorker})
	}
	for _, id := range controlPlanes {
		refs = append(refs, model.NodeRef{NodeID: id, Role: model.RoleControlPlane})
	}
	if len(refs) == 0 {
		return fmt.Errorf("at least one --worker or --control-plane node is required")
	}

	s, err := newSession("nodes add", opts)
	if err != nil {
		return err
	}
	defer s.finish(ctx)

	result, err := s.service.AddNodes(ctx, clusterID, refs)
	if err != nil {
		return clusterError(clusterID, err)
	}
	return s.emitScale("Added", clusterID, result)
}

// RemoveNodes handles `nodes remove`.
func RemoveNodes(ctx context.Context, opts Options, clusterID string, nodeIDs []string, yes bool) error {
	if len(nodeIDs) == 0 {
		return fmt.Errorf("at least one node ID is required")
	}
	if !yes {
		ok, err := confirmAction(ctx,
			fmt.Sprintf("Remove %d node(s) from cluster %s?", len(nodeIDs), clusterID),
			strings.Join(nodeIDs, ", "))
		if err != nil {
			return err
		}
		if !ok {
			return ErrAborted
		}
	}

	s, err := newSession("nodes remove", opts)
	if err != nil {
		return err
	}
	defer s.finish(ctx)

	result, err := s.service.RemoveNodes(ctx, clusterID, nodeIDs)
	if err != nil {
		return clusterError(clusterID, err)
	}
	return s.emitScale("Removed", clusterID, result)
}

func (s *session) emitScale(verb, clusterID string, result *model.ClusterScaleResult) error {
	if err := s.out.emit(result, func() string { return s.out.renderScaleResult(verb, clusterID, result) }); err != nil {
		return err
	}
	if result.IsFailure() {
		return fmt.Errorf("%w: %d node issue(s)", ErrNoNodesChanged, len(result.Issues))
	}
	return nil
}
