package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/imamik/colonyctl/internal/config"
	"github.com/imamik/colonyctl/internal/gateway"
	"github.com/imamik/colonyctl/internal/model"
)

// ErrNoClusterDeployed is returned by CreateCluster when every requested
// node was rejected. The issues are rendered before it is returned.
var ErrNoClusterDeployed = errors.New("no cluster was deployed")

// ErrClusterNotFound is returned when the backend does not know a cluster.
var ErrClusterNotFound = errors.New("cluster not found")

var clusterStatuses = []model.ClusterStatus{
	model.ClusterStatusPending,
	model.ClusterStatusDeploying,
	model.ClusterStatusReady,
	model.ClusterStatusFailed,
	model.ClusterStatusUnknown,
}

// ListClusters handles `clusters list`. An empty status lists every cluster.
func ListClusters(ctx context.Context, opts Options, status string) error {
	filter, err := parseClusterStatus(status)
	if err != nil {
		return err
	}

	s, err := newSession("clusters list", opts)
	if err != nil {
		return err
	}
	defer s.finish(ctx)

	clusters, err := s.service.ListClusters(ctx, filter)
	if err != nil {
		return err
	}
	if clusters == nil {
		clusters = []model.Cluster{}
	}
	return s.out.emit(clusters, func() string { return s.out.renderClusters(clusters) })
}

// GetCluster handles `clusters get`. With withNodes the cluster must be
// READY and its member nodes are resolved against the pool.
func GetCluster(ctx context.Context, opts Options, clusterID string, withNodes bool) error {
	s, err := newSession("clusters get", opts)
	if err != nil {
		return err
	}
	defer s.finish(ctx)

	if !withNodes {
		cluster, err := s.service.GetCluster(ctx, clusterID)
		if err != nil {
			return clusterError(clusterID, err)
		}
		return s.out.emit(cluster, func() string { return s.out.renderCluster(cluster) })
	}

	cluster, issues, err := s.service.GetClusterWithNodes(ctx, clusterID)
	if err != nil {
		return clusterError(clusterID, err)
	}
	view := struct {
		model.ClusterWithNodes `yaml:",inline"`
		LoadingIssues          []model.NodeLoadingIssue `json:"loading_issues,omitempty" yaml:"loading_issues,omitempty"`
	}{*cluster, issues}
	return s.out.emit(view, func() string { return s.out.renderClusterWithNodes(cluster, issues) })
}

// CreateOptions are the inputs of `clusters create`. Values from flags are
// merged over the request file when both are given.
type CreateOptions struct {
	// File is a YAML deploy request, local or s3://bucket/key.
	File string

	Name          string
	Type          string
	ColonyID      string
	TTL           time.Duration
	Workers       []string
	ControlPlanes []string

	MultinodeTraining bool
	Telemetry         bool
	VPN               bool
	LLMInference      bool

	// HCloudSelector imports running Hetzner Cloud servers matching this
	// label selector as new nodes.
	HCloudSelector string
	SSHUser        string
	SSHKeyID       string
	SSHKeyFile     string

	// Wait blocks until the deployed cluster is READY.
	Wait bool
}

// CreateCluster handles `clusters create`.
func CreateCluster(ctx context.Context, opts Options, create CreateOptions) error {
	s, err := newSession("clusters create", opts)
	if err != nil {
		return err
	}
	defer s.finish(ctx)

	req, err := s.buildRequest(ctx, create)
	if err != nil {
		return err
	}

	s.log.Info("deploying cluster", "name", req.Name, "type", req.Type,
		"workers", len(req.WorkerNodes), "controlPlanes", len(req.ControlPlaneNodes))

	result, err := s.service.DeployCluster(ctx, req)
	if err != nil {
		return err
	}

	var waitErr error
	if create.Wait && result.DeployedCluster != nil {
		s.log.Info("waiting for cluster to become ready", "clusterID", result.DeployedCluster.ID)
		cluster, err := s.service.WaitForClusterReady(ctx, result.DeployedCluster.ID)
		if err != nil {
			waitErr = err
		} else {
			result.DeployedCluster.Cluster = *cluster
		}
	}

	if err := s.out.emit(result, func() string { return s.out.renderDeployResult(result) }); err != nil {
		return err
	}
	if waitErr != nil {
		return waitErr
	}
	if result.IsFailure() {
		return fmt.Errorf("%w: %d node issue(s)", ErrNoClusterDeployed, len(result.Issues))
	}
	return nil
}

// buildRequest merges the request file, flags and discovered servers into a
// validated deploy request.
func (s *session) buildRequest(ctx context.Context, create CreateOptions) (*model.DeployClusterRequest, error) {
	req := &model.DeployClusterRequest{Type: model.ClusterTypeRemote}
	if create.File != "" {
		data, err := s.store.ReadFile(ctx, create.File)
		if err != nil {
			return nil, err
		}
		if req, err = config.DecodeRequest(data); err != nil {
			return nil, fmt.Errorf("invalid request file %s: %w", create.File, err)
		}
	}

	if create.Name != "" {
		req.Name = create.Name
	}
	if create.Type != "" {
		t, ok := model.ParseClusterType(strings.ToUpper(create.Type))
		if !ok {
			return nil, fmt.Errorf("unknown cluster type %q", create.Type)
		}
		req.Type = t
	}
	if create.ColonyID != "" {
		req.ColonyID = create.ColonyID
	}
	if create.TTL > 0 {
		deadline := time.Now().Add(create.TTL).UTC()
		req.ToBeDeletedAt = &deadline
	}
	req.EnableMultinodeTraining = req.EnableMultinodeTraining || create.MultinodeTraining
	req.EnableTelemetry = req.EnableTelemetry || create.Telemetry
	req.EnableVPN = req.EnableVPN || create.VPN
	req.PrepareLLMInference = req.PrepareLLMInference || create.LLMInference

	req.WorkerNodes = append(req.WorkerNodes, model.ExistingNodes(create.Workers...)...)
	req.ControlPlaneNodes = append(req.ControlPlaneNodes, model.ExistingNodes(create.ControlPlanes...)...)

	if create.HCloudSelector != "" {
		if err := s.addHCloudServers(ctx, req, create); err != nil {
			return nil, err
		}
	}

	if err := config.ValidateRequest(req); err != nil {
		return nil, fmt.Errorf("invalid deploy request: %w", err)
	}
	return req, nil
}

// DeleteCluster handles `clusters delete`.
func DeleteCluster(ctx context.Context, opts Options, clusterID string, yes bool) error {
	if !yes {
		ok, err := confirmAction(ctx,
			fmt.Sprintf("Delete cluster %s?", clusterID),
			"Its nodes are released back to the pool. This cannot be undone.")
		if err != nil {
			return err
		}
		if !ok {
			return ErrAborted
		}
	}

	s, err := newSession("clusters delete", opts)
	if err != nil {
		return err
	}
	defer s.finish(ctx)

	id, err := s.service.DeleteCluster(ctx, clusterID)
	if err != nil {
		return clusterError(clusterID, err)
	}
	view := map[string]string{"deleted_cluster_id": id}
	return s.out.emit(view, func() string {
		return s.out.render(okStyle, fmt.Sprintf("✓ Cluster %s deleted", id)) + "\n"
	})
}

// ClusterResources handles `clusters resources`.
func ClusterResources(ctx context.Context, opts Options, clusterID string) error {
	s, err := newSession("clusters resources", opts)
	if err != nil {
		return err
	}
	defer s.finish(ctx)

	resources, err := s.service.GetClusterResources(ctx, clusterID)
	if err != nil {
		return clusterError(clusterID, err)
	}
	if resources == nil {
		resources = []model.ClusterNodeResources{}
	}
	return s.out.emit(resources, func() string { return s.out.renderResources(clusterID, resources) })
}

// Kubeconfig handles `clusters kubeconfig`. Without outputPath the
// kubeconfig is printed; otherwise it is validated and written to the local
// path or s3:// URL.
func Kubeconfig(ctx context.Context, opts Options, clusterID, outputPath string) error {
	s, err := newSession("clusters kubeconfig", opts)
	if err != nil {
		return err
	}
	defer s.finish(ctx)

	if outputPath == "" {
		kubeconfig, err := s.service.GetKubeconfig(ctx, clusterID)
		if err != nil {
			return clusterError(clusterID, err)
		}
		view := map[string]string{"cluster_id": clusterID, "kubeconfig": kubeconfig}
		return s.out.emit(view, func() string {
			if strings.HasSuffix(kubeconfig, "\n") {
				return kubeconfig
			}
			return kubeconfig + "\n"
		})
	}

	info, err := s.service.ExportKubeconfig(ctx, clusterID, outputPath)
	if err != nil {
		return clusterError(clusterID, err)
	}
	view := map[string]string{
		"cluster_id": clusterID,
		"path":       outputPath,
		"context":    info.CurrentContext,
		"server":     info.Server,
	}
	return s.out.emit(view, func() string {
		return s.out.render(okStyle, fmt.Sprintf("✓ Kubeconfig for cluster %s written to %s", clusterID, outputPath)) + "\n" +
			fmt.Sprintf("  context: %s\n  server:  %s\n", info.CurrentContext, info.Server)
	})
}

// Dashboard handles `clusters dashboard`.
func Dashboard(ctx context.Context, opts Options, clusterID string) error {
	s, err := newSession("clusters dashboard", opts)
	if err != nil {
		return err
	}
	defer s.finish(ctx)

	url, err := s.service.GetDashboardURL(ctx, clusterID)
	if err != nil {
		return clusterError(clusterID, err)
	}
	view := map[string]string{"cluster_id": clusterID, "url": url}
	return s.out.emit(view, func() string { return url + "\n" })
}

// clusterError names the cluster when the backend reports it missing.
func clusterError(clusterID string, err error) error {
	if gateway.IsNotFound(err) {
		return fmt.Errorf("%w: %s", ErrClusterNotFound, clusterID)
	}
	return err
}

func parseClusterStatus(status string) (model.ClusterStatus, error) {
	if status == "" {
		return "", nil
	}
	want := model.ClusterStatus(strings.ToUpper(status))
	for _, st := range clusterStatuses {
		if st == want {
			return st, nil
		}
	}
	names := make([]string, len(clusterStatuses))
	for i, st := range clusterStatuses {
		names[i] = string(st)
	}
	return "", fmt.Errorf("unknown cluster status %q (valid: %s)", status, strings.Join(names, ", "))
}
