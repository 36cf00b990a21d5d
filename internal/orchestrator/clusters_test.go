package orchestrator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/imamik/colonyctl/internal/gateway"
	"github.com/imamik/colonyctl/internal/model"
	colonytest "github.com/imamik/colonyctl/internal/testing"
)

const testKubeconfig = `apiVersion: v1
kind: Config
clusters:
- name: c1
  cluster:
    server: https://10.0.0.10:6443
contexts:
- name: admin@c1
  context:
    cluster: c1
    user: admin
current-context: admin@c1
users:
- name: admin
  user:
    token: abc
`

func TestGetClusterWithNodes_LoadingIssues(t *testing.T) {
	t.Parallel()
	backend := colonytest.NewPoolFixture().ReadyCluster("c1", "n1")
	backend.AddCluster(model.Cluster{ID: "c1", Status: model.ClusterStatusReady},
		model.NodeRef{NodeID: "n1", Role: model.RoleWorker},
		model.NodeRef{NodeID: "vanished", Role: model.RoleControlPlane},
	)
	svc := newFakeService(backend)

	cluster, issues, err := svc.GetClusterWithNodes(colonytest.TestContext(t), "c1")

	require.NoError(t, err)
	assert.Equal(t, []string{"n1"}, colonytest.AssignedIDs(cluster.Nodes))
	assert.Equal(t, model.RoleWorker, cluster.Nodes[0].Role)
	assert.Equal(t, []model.NodeLoadingIssue{
		{NodeID: "vanished", Reason: "node vanished not found in node pool"},
	}, issues)
}

func TestReads_StatusGate(t *testing.T) {
	t.Parallel()
	backend := colonytest.NewPoolFixture().Cluster("c1", model.ClusterStatusDeploying, "n1")
	svc := newFakeService(backend, WithFileWriter(&colonytest.MockFileWriter{}))
	ctx := colonytest.TestContext(t)

	_, _, err := svc.GetClusterWithNodes(ctx, "c1")
	assert.EqualError(t, err, "loading cluster nodes: cluster is still deploying")
	_, err = svc.GetClusterResources(ctx, "c1")
	assert.EqualError(t, err, "loading cluster resources: cluster is still deploying")
	_, err = svc.GetKubeconfig(ctx, "c1")
	assert.EqualError(t, err, "fetching kubeconfig: cluster is still deploying")
	_, err = svc.GetDashboardURL(ctx, "c1")
	assert.EqualError(t, err, "fetching dashboard URL: cluster is still deploying")
	_, err = svc.ExportKubeconfig(ctx, "c1", "/tmp/kubeconfig")
	assert.EqualError(t, err, "fetching kubeconfig: cluster is still deploying")

	assert.Zero(t, backend.Calls("GetClusterNodes"))
	assert.Zero(t, backend.Calls("GetKubeconfig"))
}

func TestGetCluster_NotFound(t *testing.T) {
	t.Parallel()
	svc := newFakeService(colonytest.NewFakeBackend())

	_, err := svc.GetCluster(colonytest.TestContext(t), "nope")

	require.Error(t, err)
	assert.True(t, gateway.IsNotFound(err))
	assert.Contains(t, err.Error(), "getting cluster: ")
}

func TestListAndDeleteClusters(t *testing.T) {
	t.Parallel()
	fixture := colonytest.NewPoolFixture()
	fixture.ReadyCluster("c1", "n1")
	backend := fixture.Cluster("c2", model.ClusterStatusFailed, "n2")
	svc := newFakeService(backend)
	ctx := colonytest.TestContext(t)

	all, err := svc.ListClusters(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	failed, err := svc.ListClusters(ctx, model.ClusterStatusFailed)
	require.NoError(t, err)
	require.Len(t, failed, 1)
	assert.Equal(t, "c2", failed[0].ID)

	id, err := svc.DeleteCluster(ctx, "c2")
	require.NoError(t, err, "delete is not gated on status")
	assert.Equal(t, "c2", id)

	available, err := backend.ListAvailableNodes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"n2"}, idsOf(available))
}

func TestExportKubeconfig(t *testing.T) {
	t.Parallel()
	backend := colonytest.NewPoolFixture().ReadyCluster("c1")
	backend.Kubeconfig = testKubeconfig
	files := &colonytest.MockFileWriter{}
	files.On("WriteFile", mock.Anything, "s3://bucket/c1.yaml", []byte(testKubeconfig)).Return(nil).Once()
	svc := newFakeService(backend, WithFileWriter(files))

	info, err := svc.ExportKubeconfig(colonytest.TestContext(t), "c1", "s3://bucket/c1.yaml")

	require.NoError(t, err)
	assert.Equal(t, "admin@c1", info.CurrentContext)
	assert.Equal(t, "https://10.0.0.10:6443", info.Server)
	files.AssertExpectations(t)
}

func TestExportKubeconfig_InvalidIsNotWritten(t *testing.T) {
	t.Parallel()
	backend := colonytest.NewPoolFixture().ReadyCluster("c1")
	backend.Kubeconfig = "apiVersion: v1\nkind: Config\n"
	files := &colonytest.MockFileWriter{}
	svc := newFakeService(backend, WithFileWriter(files))

	_, err := svc.ExportKubeconfig(colonytest.TestContext(t), "c1", "out.yaml")

	assert.EqualError(t, err, "exporting kubeconfig: kubeconfig has no current-context")
	files.AssertNotCalled(t, "WriteFile", mock.Anything, mock.Anything, mock.Anything)
}

func TestExportKubeconfig_WriteError(t *testing.T) {
	t.Parallel()
	backend := colonytest.NewPoolFixture().ReadyCluster("c1")
	backend.Kubeconfig = testKubeconfig
	files := &colonytest.MockFileWriter{}
	files.On("WriteFile", mock.Anything, "out.yaml", mock.Anything).Return(errors.New("permission denied"))
	svc := newFakeService(backend, WithFileWriter(files))

	_, err := svc.ExportKubeconfig(colonytest.TestContext(t), "c1", "out.yaml")

	assert.EqualError(t, err, "exporting kubeconfig: failed to write out.yaml: permission denied")
}

func TestExportKubeconfig_NoWriter(t *testing.T) {
	t.Parallel()
	svc := newFakeService(colonytest.NewPoolFixture().ReadyCluster("c1"))

	_, err := svc.ExportKubeconfig(colonytest.TestContext(t), "c1", "out.yaml")
	assert.EqualError(t, err, "exporting kubeconfig: no file writer configured")
}

func TestWaitForClusterReady(t *testing.T) {
	t.Parallel()
	clusters := &colonytest.MockClusterGateway{}
	clusters.On("GetCluster", mock.Anything, "c1").Return(&model.Cluster{ID: "c1", Status: model.ClusterStatusDeploying}, nil).Twice()
	clusters.On("GetCluster", mock.Anything, "c1").Return(&model.Cluster{ID: "c1", Status: model.ClusterStatusReady}, nil).Once()
	svc := New(clusters, &colonytest.MockNodesProvider{}, WithTimeouts(colonytest.FastTimeouts()))

	cluster, err := svc.WaitForClusterReady(colonytest.TestContext(t), "c1")

	require.NoError(t, err)
	assert.Equal(t, model.ClusterStatusReady, cluster.Status)
	clusters.AssertNumberOfCalls(t, "GetCluster", 3)
}

func TestWaitForClusterReady_FailedAborts(t *testing.T) {
	t.Parallel()
	clusters := &colonytest.MockClusterGateway{}
	clusters.On("GetCluster", mock.Anything, "c1").Return(&model.Cluster{ID: "c1", Status: model.ClusterStatusFailed}, nil)
	svc := New(clusters, &colonytest.MockNodesProvider{}, WithTimeouts(colonytest.FastTimeouts()))

	_, err := svc.WaitForClusterReady(colonytest.TestContext(t), "c1")

	var statusErr *ClusterStatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, "waiting for cluster: cluster deployment failed", err.Error())
	clusters.AssertNumberOfCalls(t, "GetCluster", 1)
}

func TestWaitForClusterReady_Timeout(t *testing.T) {
	t.Parallel()
	backend := colonytest.NewPoolFixture().Cluster("c1", model.ClusterStatusDeploying)
	svc := newFakeService(backend)

	ctx, cancel := context.WithCancel(colonytest.TestContext(t))
	defer cancel()
	cluster, err := svc.WaitForClusterReady(ctx, "c1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "waiting for cluster c1 to become READY")
	require.NotNil(t, cluster, "last observed state is returned")
	assert.Equal(t, model.ClusterStatusDeploying, cluster.Status)
}

func idsOf(nodes []model.ClusterNode) []string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}
