package testing

import (
	"time"

	"github.com/imamik/colonyctl/internal/model"
)

// PoolFixture provides pre-configured backends for common scenarios.
type PoolFixture struct {
	backend *FakeBackend
}

// NewPoolFixture creates a fixture over an empty backend.
func NewPoolFixture() *PoolFixture {
	return &PoolFixture{backend: NewFakeBackend()}
}

// Backend returns the underlying FakeBackend for custom configuration.
func (f *PoolFixture) Backend() *FakeBackend {
	return f.backend
}

// Available adds AVAILABLE nodes. Returns the same backend for chaining.
func (f *PoolFixture) Available(ids ...string) *FakeBackend {
	for _, id := range ids {
		f.backend.AddNode(Node(id, model.NodeStatusAvailable))
	}
	return f.backend
}

// DiscoveringUntil adds a DISCOVERING node that becomes AVAILABLE once
// that many pool listings have been served.
func (f *PoolFixture) DiscoveringUntil(id string, listings int) *FakeBackend {
	f.backend.AddNode(Node(id, model.NodeStatusDiscovering))
	f.backend.TransitionAfter(id, listings, model.NodeStatusAvailable)
	return f.backend
}

// ReadyCluster adds a READY cluster whose members are AVAILABLE pool nodes
// turned ADDED.
func (f *PoolFixture) ReadyCluster(clusterID string, memberIDs ...string) *FakeBackend {
	return f.Cluster(clusterID, model.ClusterStatusReady, memberIDs...)
}

// Cluster adds a cluster in the given status with worker members.
func (f *PoolFixture) Cluster(clusterID string, status model.ClusterStatus, memberIDs ...string) *FakeBackend {
	refs := make([]model.NodeRef, 0, len(memberIDs))
	for _, id := range memberIDs {
		f.backend.AddNode(Node(id, model.NodeStatusAvailable))
		refs = append(refs, model.NodeRef{NodeID: id, Role: model.RoleWorker})
	}
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	f.backend.AddCluster(model.Cluster{
		ID:        clusterID,
		Name:      clusterID,
		Status:    status,
		Type:      model.ClusterTypeRemote,
		CreatedAt: now,
		UpdatedAt: now,
	}, refs...)
	return f.backend
}
