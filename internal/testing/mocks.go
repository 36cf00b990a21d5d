package testing

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/imamik/colonyctl/internal/gateway"
	"github.com/imamik/colonyctl/internal/model"
)

var (
	_ gateway.ClusterGateway = (*MockClusterGateway)(nil)
	_ gateway.NodesProvider  = (*MockNodesProvider)(nil)
	_ gateway.FileWriter     = (*MockFileWriter)(nil)
)

// MockClusterGateway is a testify mock of gateway.ClusterGateway.
// Use it where call order or arguments matter; prefer FakeBackend otherwise.
type MockClusterGateway struct {
	mock.Mock
}

func (m *MockClusterGateway) ListClusters(ctx context.Context, status model.ClusterStatus) ([]model.Cluster, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Cluster), args.Error(1)
}

func (m *MockClusterGateway) GetCluster(ctx context.Context, clusterID string) (*model.Cluster, error) {
	args := m.Called(ctx, clusterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Cluster), args.Error(1)
}

func (m *MockClusterGateway) CreateCluster(ctx context.Context, params model.CreateClusterParams) (string, error) {
	args := m.Called(ctx, params)
	return args.String(0), args.Error(1)
}

func (m *MockClusterGateway) DeleteCluster(ctx context.Context, clusterID string) (string, error) {
	args := m.Called(ctx, clusterID)
	return args.String(0), args.Error(1)
}

func (m *MockClusterGateway) DeployCluster(ctx context.Context, clusterID string) (string, error) {
	args := m.Called(ctx, clusterID)
	return args.String(0), args.Error(1)
}

func (m *MockClusterGateway) GetClusterNodes(ctx context.Context, clusterID string) ([]model.NodeRef, error) {
	args := m.Called(ctx, clusterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.NodeRef), args.Error(1)
}

func (m *MockClusterGateway) AddNodesToCluster(ctx context.Context, req model.AddNodesRequest) ([]model.NodeRef, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.NodeRef), args.Error(1)
}

func (m *MockClusterGateway) RemoveNodeFromCluster(ctx context.Context, clusterID, nodeID string) (string, error) {
	args := m.Called(ctx, clusterID, nodeID)
	return args.String(0), args.Error(1)
}

func (m *MockClusterGateway) GetClusterResources(ctx context.Context, clusterID string) ([]model.ClusterNodeResources, error) {
	args := m.Called(ctx, clusterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ClusterNodeResources), args.Error(1)
}

func (m *MockClusterGateway) GetKubeconfig(ctx context.Context, clusterID string) (string, error) {
	args := m.Called(ctx, clusterID)
	return args.String(0), args.Error(1)
}

func (m *MockClusterGateway) GetDashboardURL(ctx context.Context, clusterID string) (string, error) {
	args := m.Called(ctx, clusterID)
	return args.String(0), args.Error(1)
}

// MockNodesProvider is a testify mock of gateway.NodesProvider.
type MockNodesProvider struct {
	mock.Mock
}

func (m *MockNodesProvider) ListAvailableNodes(ctx context.Context) ([]model.ClusterNode, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ClusterNode), args.Error(1)
}

func (m *MockNodesProvider) ListNodes(ctx context.Context) ([]model.ClusterNode, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ClusterNode), args.Error(1)
}

func (m *MockNodesProvider) ImportNodes(ctx context.Context, specs []model.NodeSpecification, waitForAvailable bool) (*model.ImportResult, error) {
	args := m.Called(ctx, specs, waitForAvailable)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ImportResult), args.Error(1)
}

// MockFileWriter is a testify mock of gateway.FileWriter.
type MockFileWriter struct {
	mock.Mock
}

func (m *MockFileWriter) WriteFile(ctx context.Context, path string, content []byte) error {
	args := m.Called(ctx, path, content)
	return args.Error(0)
}
