package testing

import (
	"context"
	"testing"
	"time"

	"github.com/imamik/colonyctl/internal/config"
	"github.com/imamik/colonyctl/internal/model"
)

// TestContext returns a context with a reasonable timeout for tests.
func TestContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// FastTimeouts returns timeouts short enough for polling tests.
func FastTimeouts() *config.Timeouts {
	return &config.Timeouts{
		NodeWait:             500 * time.Millisecond,
		NodeWaitInterval:     5 * time.Millisecond,
		NodeImport:           500 * time.Millisecond,
		NodeImportInterval:   5 * time.Millisecond,
		ClusterReady:         500 * time.Millisecond,
		ClusterReadyInterval: 5 * time.Millisecond,
		API:                  time.Second,
		RetryMaxAttempts:     2,
		RetryInitialDelay:    time.Millisecond,
	}
}

// Node returns a pool node with the given status and a hostname derived from id.
func Node(id string, status model.NodeStatus) model.ClusterNode {
	return model.ClusterNode{
		ID:       id,
		Hostname: id + ".colony.internal",
		Username: "root",
		Endpoint: "10.0.0.1",
		Status:   status,
		FreeResources: model.Resources{
			GPUType:   "H100",
			GPUVendor: "NVIDIA",
			GPUCount:  8,
			CPUCores:  64,
			MemoryGB:  512,
			StorageGB: 2048,
		},
	}
}

// Spec returns a node specification referencing a stored SSH key.
func Spec(hostname string) model.NodeSpecification {
	return model.NodeSpecification{
		Hostname: hostname,
		Endpoint: "10.0.1.1",
		Username: "root",
		SSHKeyID: "key-1",
	}
}

// AssignedIDs returns the IDs of nodes in order.
func AssignedIDs(nodes []model.AssignedClusterNode) []string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}

// RefIDs returns the node IDs of refs in order.
func RefIDs(refs []model.NodeRef) []string {
	ids := make([]string, len(refs))
	for i, r := range refs {
		ids[i] = r.NodeID
	}
	return ids
}
