package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/imamik/colonyctl/internal/model"
)

type idResponse struct {
	ID string `json:"id"`
}

type removedNodeResponse struct {
	NodeID string `json:"node_id"`
}

type kubeconfigResponse struct {
	Kubeconfig string `json:"kubeconfig"`
}

type dashboardResponse struct {
	URL string `json:"url"`
}

func clusterPath(clusterID string, sub ...string) string {
	p := "/clusters/" + url.PathEscape(clusterID)
	for _, s := range sub {
		p += "/" + url.PathEscape(s)
	}
	return p
}

func (c *Client) ListClusters(ctx context.Context, status model.ClusterStatus) ([]model.Cluster, error) {
	path := "/clusters"
	if status != "" {
		path += "?" + url.Values{"status": {string(status)}}.Encode()
	}
	var clusters []model.Cluster
	if err := c.do(ctx, "list clusters", http.MethodGet, path, nil, &clusters); err != nil {
		return nil, err
	}
	return clusters, nil
}

func (c *Client) GetCluster(ctx context.Context, clusterID string) (*model.Cluster, error) {
	var cluster model.Cluster
	if err := c.do(ctx, "get cluster", http.MethodGet, clusterPath(clusterID), nil, &cluster); err != nil {
		return nil, err
	}
	return &cluster, nil
}

func (c *Client) CreateCluster(ctx context.Context, params model.CreateClusterParams) (string, error) {
	var resp idResponse
	if err := c.do(ctx, "create cluster", http.MethodPost, "/clusters", params, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

func (c *Client) DeleteCluster(ctx context.Context, clusterID string) (string, error) {
	var resp idResponse
	if err := c.do(ctx, "delete cluster", http.MethodDelete, clusterPath(clusterID), nil, &resp); err != nil {
		return "", err
	}
	if resp.ID == "" {
		resp.ID = clusterID
	}
	return resp.ID, nil
}

func (c *Client) DeployCluster(ctx context.Context, clusterID string) (string, error) {
	var resp idResponse
	if err := c.do(ctx, "deploy cluster", http.MethodPost, clusterPath(clusterID, "deploy"), nil, &resp); err != nil {
		return "", err
	}
	if resp.ID == "" {
		resp.ID = clusterID
	}
	return resp.ID, nil
}

func (c *Client) GetClusterNodes(ctx context.Context, clusterID string) ([]model.NodeRef, error) {
	var refs []model.NodeRef
	if err := c.do(ctx, "get cluster nodes", http.MethodGet, clusterPath(clusterID, "nodes"), nil, &refs); err != nil {
		return nil, err
	}
	return refs, nil
}

func (c *Client) AddNodesToCluster(ctx context.Context, req model.AddNodesRequest) ([]model.NodeRef, error) {
	var refs []model.NodeRef
	if err := c.do(ctx, "add nodes", http.MethodPost, clusterPath(req.ClusterID, "nodes"), req, &refs); err != nil {
		return nil, err
	}
	return refs, nil
}

func (c *Client) RemoveNodeFromCluster(ctx context.Context, clusterID, nodeID string) (string, error) {
	var resp removedNodeResponse
	if err := c.do(ctx, "remove node", http.MethodDelete, clusterPath(clusterID, "nodes", nodeID), nil, &resp); err != nil {
		return "", err
	}
	return resp.NodeID, nil
}

func (c *Client) GetClusterResources(ctx context.Context, clusterID string) ([]model.ClusterNodeResources, error) {
	var res []model.ClusterNodeResources
	if err := c.do(ctx, "get cluster resources", http.MethodGet, clusterPath(clusterID, "resources"), nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) GetKubeconfig(ctx context.Context, clusterID string) (string, error) {
	var resp kubeconfigResponse
	if err := c.do(ctx, "get kubeconfig", http.MethodGet, clusterPath(clusterID, "kubeconfig"), nil, &resp); err != nil {
		return "", err
	}
	return resp.Kubeconfig, nil
}

func (c *Client) GetDashboardURL(ctx context.Context, clusterID string) (string, error) {
	var resp dashboardResponse
	if err := c.do(ctx, "get dashboard url", http.MethodGet, clusterPath(clusterID, "dashboard"), nil, &resp); err != nil {
		return "", err
	}
	return resp.URL, nil
}
