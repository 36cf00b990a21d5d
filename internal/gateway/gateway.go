// Package gateway defines the narrow ports the orchestrator consumes.
//
// Implementations live under internal/platform: the HTTP backend adapter
// implements [ClusterGateway] and [NodesProvider], and the files package
// implements [FileWriter]. Tests use the in-memory fakes from internal/testing.
package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/imamik/colonyctl/internal/model"
)

// ClusterGateway manages clusters and their membership on the backend.
type ClusterGateway interface {
	// ListClusters returns all clusters, or only those in status when it is non-empty.
	ListClusters(ctx context.Context, status model.ClusterStatus) ([]model.Cluster, error)
	GetCluster(ctx context.Context, clusterID string) (*model.Cluster, error)
	// CreateCluster creates a cluster and returns its ID.
	CreateCluster(ctx context.Context, params model.CreateClusterParams) (string, error)
	DeleteCluster(ctx context.Context, clusterID string) (string, error)
	// DeployCluster starts installation of a created cluster and returns its ID.
	DeployCluster(ctx context.Context, clusterID string) (string, error)

	GetClusterNodes(ctx context.Context, clusterID string) ([]model.NodeRef, error)
	AddNodesToCluster(ctx context.Context, req model.AddNodesRequest) ([]model.NodeRef, error)
	// RemoveNodeFromCluster unbinds one node and returns the removed node's ID.
	RemoveNodeFromCluster(ctx context.Context, clusterID, nodeID string) (string, error)

	GetClusterResources(ctx context.Context, clusterID string) ([]model.ClusterNodeResources, error)
	GetKubeconfig(ctx context.Context, clusterID string) (string, error)
	GetDashboardURL(ctx context.Context, clusterID string) (string, error)
}

// NodesProvider lists and imports nodes of the global node pool.
type NodesProvider interface {
	// ListAvailableNodes returns only unassigned nodes (AVAILABLE or DISCOVERING).
	ListAvailableNodes(ctx context.Context) ([]model.ClusterNode, error)
	// ListNodes returns every node in the pool regardless of status.
	ListNodes(ctx context.Context) ([]model.ClusterNode, error)
	// ImportNodes registers the given specifications in one call. When
	// waitForAvailable is set the provider blocks until the imported nodes
	// are ready or its own timeout elapses.
	ImportNodes(ctx context.Context, specs []model.NodeSpecification, waitForAvailable bool) (*model.ImportResult, error)
}

// FileWriter persists exported artifacts such as kubeconfigs.
type FileWriter interface {
	WriteFile(ctx context.Context, path string, content []byte) error
}

// CommandError is returned when the backend rejects a command.
type CommandError struct {
	Operation  string
	StatusCode int
	Message    string
}

func (e *CommandError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s rejected: %s", e.Operation, e.Message)
	}
	return fmt.Sprintf("%s rejected (HTTP %d): %s", e.Operation, e.StatusCode, e.Message)
}

// IsCommandError reports whether err is (or wraps) a *CommandError.
func IsCommandError(err error) bool {
	var cmdErr *CommandError
	return errors.As(err, &cmdErr)
}

// IsNotFound reports whether err is a CommandError for a missing resource.
func IsNotFound(err error) bool {
	var cmdErr *CommandError
	return errors.As(err, &cmdErr) && cmdErr.StatusCode == 404
}
