package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/colonyctl/internal/model"
)

func TestClient_ListAvailableNodesFiltersLocally(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /nodes", func(w http.ResponseWriter, r *http.Request) {
		assert.ElementsMatch(t, []string{"AVAILABLE", "DISCOVERING"}, r.URL.Query()["status"])
		writeJSON(w, http.StatusOK, []model.ClusterNode{
			{ID: "a", Status: model.NodeStatusAvailable},
			{ID: "b", Status: model.NodeStatusAdded},
			{ID: "c", Status: model.NodeStatusDiscovering},
		})
	})
	c := newTestClient(t, mux)

	nodes, err := c.ListAvailableNodes(context.Background())

	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.Equal(t, "a", nodes[0].ID)
	assert.Equal(t, "c", nodes[1].ID)
}

func TestClient_ImportNodesWithoutWait(t *testing.T) {
	t.Parallel()
	spec := model.NodeSpecification{Hostname: "gpu-01", Endpoint: "10.0.0.1", Username: "root", SSHKeyID: "k", Role: model.RoleWorker}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /nodes/import", func(w http.ResponseWriter, r *http.Request) {
		var body importRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []model.NodeSpecification{spec}, body.Nodes)
		writeJSON(w, http.StatusOK, model.ImportResult{
			Nodes: []model.AssignedClusterNode{{ClusterNode: model.ClusterNode{ID: "n1", Hostname: "gpu-01", Status: model.NodeStatusDiscovering}, Role: model.RoleWorker}},
		})
	})
	c := newTestClient(t, mux)

	result, err := c.ImportNodes(context.Background(), []model.NodeSpecification{spec}, false)

	require.NoError(t, err)
	require.Len(t, result.Nodes, 1)
	assert.Equal(t, model.NodeStatusDiscovering, result.Nodes[0].Status)
}

func TestClient_ImportNodesWaitsForAvailable(t *testing.T) {
	t.Parallel()
	specs := []model.NodeSpecification{
		{Hostname: "gpu-01", Endpoint: "10.0.0.1"},
		{Hostname: "gpu-02", Endpoint: "10.0.0.2"},
	}
	var listings atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("POST /nodes/import", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, model.ImportResult{
			Nodes: []model.AssignedClusterNode{
				{ClusterNode: model.ClusterNode{ID: "n1", Hostname: "gpu-01", Status: model.NodeStatusDiscovering}, Role: model.RoleWorker},
				{ClusterNode: model.ClusterNode{ID: "n2", Hostname: "gpu-02", Status: model.NodeStatusDiscovering}, Role: model.RoleWorker},
			},
		})
	})
	mux.HandleFunc("GET /nodes", func(w http.ResponseWriter, r *http.Request) {
		status := model.NodeStatusDiscovering
		if listings.Add(1) > 1 {
			status = model.NodeStatusAvailable
		}
		writeJSON(w, http.StatusOK, []model.ClusterNode{
			{ID: "n1", Hostname: "gpu-01", Status: status},
			{ID: "n2", Hostname: "gpu-02", Status: model.NodeStatusFailed},
		})
	})
	c := newTestClient(t, mux)

	result, err := c.ImportNodes(context.Background(), specs, true)

	require.NoError(t, err)
	require.Len(t, result.Nodes, 1)
	assert.Equal(t, "n1", result.Nodes[0].ID)
	assert.Equal(t, model.NodeStatusAvailable, result.Nodes[0].Status)
	assert.Equal(t, model.RoleWorker, result.Nodes[0].Role)
	require.Len(t, result.Issues, 1)
	assert.Equal(t, "gpu-02", result.Issues[0].Spec.Hostname)
	assert.Contains(t, result.Issues[0].Message, "did not become available (status: FAILED)")
}

func TestClient_ImportNodesTimeout(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /nodes/import", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, model.ImportResult{
			Nodes: []model.AssignedClusterNode{{ClusterNode: model.ClusterNode{ID: "n1", Hostname: "gpu-01"}}},
		})
	})
	mux.HandleFunc("GET /nodes", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []model.ClusterNode{{ID: "n1", Status: model.NodeStatusDiscovering}})
	})
	c := newTestClient(t, mux)

	result, err := c.ImportNodes(context.Background(), []model.NodeSpecification{{Hostname: "gpu-01"}}, true)

	require.NoError(t, err)
	assert.Empty(t, result.Nodes)
	require.Len(t, result.Issues, 1)
	assert.Contains(t, result.Issues[0].Message, "status: DISCOVERING")
}
