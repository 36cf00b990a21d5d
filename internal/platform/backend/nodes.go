package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/imamik/colonyctl/internal/model"
	"github.com/imamik/colonyctl/internal/util/poll"
)

type importRequest struct {
	Nodes []model.NodeSpecification `json:"nodes"`
}

// ListAvailableNodes returns unassigned nodes. The server-side filter is
// re-applied locally so stale results never leak assigned nodes.
func (c *Client) ListAvailableNodes(ctx context.Context) ([]model.ClusterNode, error) {
	path := "/nodes?" + url.Values{"status": {string(model.NodeStatusAvailable), string(model.NodeStatusDiscovering)}}.Encode()
	var nodes []model.ClusterNode
	if err := c.do(ctx, "list available nodes", http.MethodGet, path, nil, &nodes); err != nil {
		return nil, err
	}

	out := nodes[:0]
	for _, n := range nodes {
		if n.IsUnassigned() {
			out = append(out, n)
		}
	}
	return out, nil
}

func (c *Client) ListNodes(ctx context.Context) ([]model.ClusterNode, error) {
	var nodes []model.ClusterNode
	if err := c.do(ctx, "list nodes", http.MethodGet, "/nodes", nil, &nodes); err != nil {
		return nil, err
	}
	return nodes, nil
}

// ImportNodes registers specs in one call. With waitForAvailable it then
// polls the pool until no imported node is DISCOVERING; nodes that do not
// end up AVAILABLE are moved from Nodes to Issues.
func (c *Client) ImportNodes(ctx context.Context, specs []model.NodeSpecification, waitForAvailable bool) (*model.ImportResult, error) {
	var result model.ImportResult
	if err := c.do(ctx, "import nodes", http.MethodPost, "/nodes/import", importRequest{Nodes: specs}, &result); err != nil {
		return nil, err
	}
	if !waitForAvailable || len(result.Nodes) == 0 {
		return &result, nil
	}
	return c.awaitImported(ctx, specs, &result)
}

func (c *Client) awaitImported(ctx context.Context, specs []model.NodeSpecification, result *model.ImportResult) (*model.ImportResult, error) {
	settled := func(pool []model.ClusterNode) bool {
		byID := make(map[string]model.NodeStatus, len(pool))
		for _, n := range pool {
			byID[n.ID] = n.Status
		}
		for _, n := range result.Nodes {
			if byID[n.ID] == model.NodeStatusDiscovering {
				return false
			}
		}
		return true
	}

	pool, err := poll.Until(ctx, c.ListNodes, settled,
		c.timeouts.NodeImport, c.timeouts.NodeImportInterval,
		fmt.Sprintf("waiting for %d imported nodes", len(result.Nodes)))
	if err != nil && !poll.IsTimeout(err) {
		return nil, fmt.Errorf("failed to wait for imported nodes: %w", err)
	}

	latest := make(map[string]model.ClusterNode, len(pool))
	for _, n := range pool {
		latest[n.ID] = n
	}

	out := &model.ImportResult{Issues: result.Issues}
	for i, imported := range result.Nodes {
		node, ok := latest[imported.ID]
		if ok && node.Status == model.NodeStatusAvailable {
			out.Nodes = append(out.Nodes, node.Assign(imported.Role))
			continue
		}
		status := model.NodeStatusUnknown
		if ok {
			status = node.Status
		}
		out.Issues = append(out.Issues, model.ImportIssue{
			Spec:    specFor(specs, imported, i),
			Message: fmt.Sprintf("imported node %s did not become available (status: %s)", imported.ID, status),
		})
	}
	return out, nil
}

// specFor finds the specification an imported node came from, by hostname
// first and by position otherwise.
func specFor(specs []model.NodeSpecification, node model.AssignedClusterNode, i int) model.NodeSpecification {
	for _, s := range specs {
		if s.Hostname == node.Hostname {
			return s
		}
	}
	if i < len(specs) {
		return specs[i]
	}
	return model.NodeSpecification{Hostname: node.Hostname, Endpoint: node.Endpoint, Username: node.Username}
}
