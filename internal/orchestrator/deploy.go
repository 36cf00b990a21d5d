package orchestrator

import (
	"context"
	"fmt"

	"github.com/imamik/colonyctl/internal/model"
	"github.com/imamik/colonyctl/internal/util/async"
	"github.com/imamik/colonyctl/internal/util/labels"
)

// groupPlan is the resolved outcome of one role group.
type groupPlan struct {
	role     model.NodeRole
	ids      []string
	imported []model.AssignedClusterNode
	issues   []model.NodeValidationIssue
}

func (p *groupPlan) nodeIDs() []string {
	ids := make([]string, 0, len(p.ids)+len(p.imported))
	ids = append(ids, p.ids...)
	for _, n := range p.imported {
		ids = append(ids, n.ID)
	}
	return ids
}

func (p *groupPlan) empty() bool {
	return len(p.ids) == 0 && len(p.imported) == 0
}

// DeployCluster resolves the requested nodes, creates and deploys a cluster
// with the usable ones and returns it with issues for the rest. If no node
// is usable the backend is never called and DeployedCluster is nil.
func (s *Service) DeployCluster(ctx context.Context, req *model.DeployClusterRequest) (*model.DeployClusterResult, error) {
	result, err := s.deployCluster(ctx, req)
	if err != nil {
		s.metrics.recordDeploy(outcomeError, 0)
		return nil, opError(opDeploy, err)
	}
	s.metrics.recordDeploy(outcomeOf(!result.IsFailure(), len(result.Issues)), len(result.Issues))
	return result, nil
}

func (s *Service) deployCluster(ctx context.Context, req *model.DeployClusterRequest) (*model.DeployClusterResult, error) {
	log := s.log.WithValues("cluster", req.Name)
	log.Info("deploying cluster",
		"workers", len(req.WorkerNodes), "controlPlanes", len(req.ControlPlaneNodes))

	pool, err := s.nodes.ListAvailableNodes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list available nodes: %w", err)
	}

	workers := &groupPlan{role: model.RoleWorker}
	controlPlanes := &groupPlan{role: model.RoleControlPlane}

	err = async.RunParallel(ctx, []async.Task{
		{Name: "resolve worker nodes", Func: func(ctx context.Context) error {
			return s.planGroup(ctx, pool, req.WorkerNodes, workers)
		}},
		{Name: "resolve control plane nodes", Func: func(ctx context.Context) error {
			return s.planGroup(ctx, pool, req.ControlPlaneNodes, controlPlanes)
		}},
	})
	if err != nil {
		return nil, err
	}

	issues := append(append([]model.NodeValidationIssue{}, workers.issues...), controlPlanes.issues...)

	if workers.empty() && controlPlanes.empty() {
		log.Info("no usable nodes, cluster not created", "issues", len(issues))
		return &model.DeployClusterResult{Issues: issues}, nil
	}

	params := model.CreateClusterParams{
		Name:            req.Name,
		Type:            req.Type,
		ColonyID:        req.ColonyID,
		ToBeDeletedAt:   req.ToBeDeletedAt,
		EnableVPN:       req.EnableVPN,
		EnableTelemetry: req.EnableTelemetry,
		Labels: labels.NewLabelBuilder().
			WithColony(req.ColonyID).
			WithMultinodeTraining(req.EnableMultinodeTraining).
			WithLLMInference(req.PrepareLLMInference).
			Build(),
		WorkerNodeIDs:   workers.nodeIDs(),
		ControlPlaneIDs: controlPlanes.nodeIDs(),
	}

	clusterID, err := s.clusters.CreateCluster(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to create cluster: %w", err)
	}
	log = log.WithValues("clusterID", clusterID)
	log.Info("cluster created", "workers", len(params.WorkerNodeIDs), "controlPlanes", len(params.ControlPlaneIDs))

	deployedID, err := s.clusters.DeployCluster(ctx, clusterID)
	if err != nil {
		return nil, &CreatedClusterError{ClusterID: clusterID, Err: fmt.Errorf("failed to deploy: %w", err)}
	}

	cluster, err := s.clusters.GetCluster(ctx, deployedID)
	if err != nil {
		return nil, &CreatedClusterError{ClusterID: clusterID, Err: fmt.Errorf("failed to fetch deployed cluster %s: %w", deployedID, err)}
	}

	nodes, attachIssues, err := s.attachNodes(ctx, workers, controlPlanes)
	if err != nil {
		return nil, &CreatedClusterError{ClusterID: clusterID, Err: err}
	}
	issues = append(issues, attachIssues...)

	log.Info("cluster deployed", "status", cluster.Status, "nodes", len(nodes), "issues", len(issues))
	return &model.DeployClusterResult{
		DeployedCluster: &model.ClusterWithNodes{Cluster: *cluster, Nodes: nodes},
		Issues:          issues,
	}, nil
}

// planGroup resolves, imports and waits for one role group, writing only to plan.
func (s *Service) planGroup(ctx context.Context, pool []model.ClusterNode, requests []model.NodeRequest, plan *groupPlan) error {
	ids, specs := partitionRequests(requests)

	ready, toPoll, issues := resolveNodeIDs(pool, ids)
	plan.issues = append(plan.issues, issues...)

	imported, importIssues, err := s.importNodes(ctx, specs, plan.role)
	if err != nil {
		return err
	}
	plan.imported = imported
	plan.issues = append(plan.issues, importIssues...)

	polled, waitIssues, err := s.waitForNodes(ctx, toPoll)
	if err != nil {
		return err
	}
	plan.issues = append(plan.issues, waitIssues...)

	plan.ids = append(ready, polled...)
	return nil
}

// attachNodes builds the deployed cluster's node list from a fresh pool
// listing plus the imported nodes.
func (s *Service) attachNodes(ctx context.Context, groups ...*groupPlan) ([]model.AssignedClusterNode, []model.NodeValidationIssue, error) {
	pool, err := s.nodes.ListNodes(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list nodes: %w", err)
	}
	byID := indexNodes(pool)

	var (
		nodes  []model.AssignedClusterNode
		issues []model.NodeValidationIssue
	)
	for _, g := range groups {
		for _, id := range g.ids {
			node, ok := byID[id]
			if !ok {
				issues = append(issues, model.NodeValidationIssue{
					NodeID: id,
					Reason: fmt.Sprintf("node %s not found in node pool after deployment", id),
				})
				continue
			}
			nodes = append(nodes, node.Assign(g.role))
		}
		nodes = append(nodes, g.imported...)
	}
	return nodes, issues, nil
}
