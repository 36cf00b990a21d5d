package testing

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/imamik/colonyctl/internal/gateway"
	"github.com/imamik/colonyctl/internal/model"
)

// FakeBackend is an in-memory implementation of gateway.ClusterGateway and
// gateway.NodesProvider. It is safe for concurrent use.
//
// Status transitions registered with TransitionAfter are applied lazily by
// pool listings, which makes DISCOVERING nodes that become AVAILABLE after a
// number of polls easy to express.
type FakeBackend struct {
	mu sync.Mutex

	nodes       []model.ClusterNode
	transitions map[string]transition
	listCalls   int

	clusters map[string]*model.Cluster
	members  map[string][]model.NodeRef
	nextID   int
	calls    map[string]int

	importBatches [][]model.NodeSpecification

	// DeployStatus is the cluster status after DeployCluster. Defaults to READY.
	DeployStatus model.ClusterStatus
	// Kubeconfig and DashboardURL are returned for every cluster.
	Kubeconfig   string
	DashboardURL string

	// ImportFunc overrides the default import behavior, which registers every
	// specification as a new AVAILABLE node.
	ImportFunc func(ctx context.Context, specs []model.NodeSpecification, waitForAvailable bool) (*model.ImportResult, error)
	// RemoveErrors makes RemoveNodeFromCluster fail for the given node IDs.
	RemoveErrors map[string]error
	// ListErr, CreateErr and DeployErr make the corresponding calls fail.
	ListErr   error
	CreateErr error
	DeployErr error
	// GetClusterErr makes GetCluster fail.
	GetClusterErr error

	// LastCreateParams records the most recent CreateCluster parameters.
	LastCreateParams *model.CreateClusterParams
}

// ImportBatches returns the specifications of every ImportNodes call, in
// call order.
func (f *FakeBackend) ImportBatches() [][]model.NodeSpecification {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.importBatches)
}

type transition struct {
	after  int
	status model.NodeStatus
}

var (
	_ gateway.ClusterGateway = (*FakeBackend)(nil)
	_ gateway.NodesProvider  = (*FakeBackend)(nil)
)

// NewFakeBackend returns an empty backend.
func NewFakeBackend() *FakeBackend {
	return &FakeBackend{
		transitions:  make(map[string]transition),
		clusters:     make(map[string]*model.Cluster),
		members:      make(map[string][]model.NodeRef),
		calls:        make(map[string]int),
		DeployStatus: model.ClusterStatusReady,
		Kubeconfig:   "apiVersion: v1\nkind: Config\n",
	}
}

// AddNode adds nodes to the pool.
func (f *FakeBackend) AddNode(nodes ...model.ClusterNode) *FakeBackend {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nodes = append(f.nodes, nodes...)
	return f
}

// TransitionAfter changes the status of nodeID once that many pool listings
// have been served.
func (f *FakeBackend) TransitionAfter(nodeID string, listings int, status model.NodeStatus) *FakeBackend {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.transitions[nodeID] = transition{after: listings, status: status}
	return f
}

// AddCluster registers an existing cluster with the given members.
func (f *FakeBackend) AddCluster(c model.Cluster, members ...model.NodeRef) *FakeBackend {
	f.mu.Lock()
	defer f.mu.Unlock()
	cluster := c
	f.clusters[c.ID] = &cluster
	f.members[c.ID] = append([]model.NodeRef(nil), members...)
	for _, m := range members {
		f.setStatusLocked(m.NodeID, model.NodeStatusAdded)
	}
	return f
}

// SetClusterStatus changes the status of an existing cluster.
func (f *FakeBackend) SetClusterStatus(clusterID string, status model.ClusterStatus) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.clusters[clusterID]; ok {
		c.Status = status
	}
}

// Calls returns how often the named method was invoked.
func (f *FakeBackend) Calls(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

// Members returns the current membership of a cluster.
func (f *FakeBackend) Members(clusterID string) []model.NodeRef {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.members[clusterID])
}

// NodesProvider

func (f *FakeBackend) ListAvailableNodes(_ context.Context) ([]model.ClusterNode, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["ListAvailableNodes"]++
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	f.advanceLocked()

	var out []model.ClusterNode
	for _, n := range f.nodes {
		if n.IsUnassigned() {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *FakeBackend) ListNodes(_ context.Context) ([]model.ClusterNode, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["ListNodes"]++
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	f.advanceLocked()
	return slices.Clone(f.nodes), nil
}

func (f *FakeBackend) ImportNodes(ctx context.Context, specs []model.NodeSpecification, waitForAvailable bool) (*model.ImportResult, error) {
	f.mu.Lock()
	f.calls["ImportNodes"]++
	f.importBatches = append(f.importBatches, slices.Clone(specs))
	importFunc := f.ImportFunc
	f.mu.Unlock()

	if importFunc != nil {
		result, err := importFunc(ctx, specs, waitForAvailable)
		if err != nil || result == nil {
			return result, err
		}
		f.AddNode(nodesOf(result.Nodes)...)
		return result, nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	result := &model.ImportResult{}
	for _, spec := range specs {
		f.nextID++
		node := model.ClusterNode{
			ID:       fmt.Sprintf("imported-%d", f.nextID),
			Hostname: spec.Hostname,
			Username: spec.Username,
			SSHKeyID: spec.SSHKeyID,
			Endpoint: spec.Endpoint,
			Status:   model.NodeStatusAvailable,
		}
		f.nodes = append(f.nodes, node)
		result.Nodes = append(result.Nodes, node.Assign(spec.Role))
	}
	return result, nil
}

// ClusterGateway

func (f *FakeBackend) ListClusters(_ context.Context, status model.ClusterStatus) ([]model.Cluster, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["ListClusters"]++

	var out []model.Cluster
	for _, c := range f.clusters {
		if status == "" || c.Status == status {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *FakeBackend) GetCluster(_ context.Context, clusterID string) (*model.Cluster, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["GetCluster"]++
	if f.GetClusterErr != nil {
		return nil, f.GetClusterErr
	}

	c, ok := f.clusters[clusterID]
	if !ok {
		return nil, notFound("get cluster", clusterID)
	}
	cluster := *c
	return &cluster, nil
}

func (f *FakeBackend) CreateCluster(_ context.Context, params model.CreateClusterParams) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["CreateCluster"]++
	if f.CreateErr != nil {
		return "", f.CreateErr
	}

	p := params
	f.LastCreateParams = &p

	f.nextID++
	id := fmt.Sprintf("cluster-%d", f.nextID)
	now := time.Now().UTC()
	f.clusters[id] = &model.Cluster{
		ID:            id,
		Name:          params.Name,
		Status:        model.ClusterStatusPending,
		Type:          params.Type,
		ColonyID:      params.ColonyID,
		ToBeDeletedAt: params.ToBeDeletedAt,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	var refs []model.NodeRef
	for _, n := range params.WorkerNodeIDs {
		refs = append(refs, model.NodeRef{NodeID: n, Role: model.RoleWorker})
	}
	for _, n := range params.ControlPlaneIDs {
		refs = append(refs, model.NodeRef{NodeID: n, Role: model.RoleControlPlane})
	}
	f.members[id] = refs
	for _, r := range refs {
		f.setStatusLocked(r.NodeID, model.NodeStatusAdded)
	}
	return id, nil
}

func (f *FakeBackend) DeleteCluster(_ context.Context, clusterID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["DeleteCluster"]++

	if _, ok := f.clusters[clusterID]; !ok {
		return "", notFound("delete cluster", clusterID)
	}
	for _, r := range f.members[clusterID] {
		f.setStatusLocked(r.NodeID, model.NodeStatusAvailable)
	}
	delete(f.clusters, clusterID)
	delete(f.members, clusterID)
	return clusterID, nil
}

func (f *FakeBackend) DeployCluster(_ context.Context, clusterID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["DeployCluster"]++
	if f.DeployErr != nil {
		return "", f.DeployErr
	}

	c, ok := f.clusters[clusterID]
	if !ok {
		return "", notFound("deploy cluster", clusterID)
	}
	c.Status = f.DeployStatus
	c.UpdatedAt = time.Now().UTC()
	return clusterID, nil
}

func (f *FakeBackend) GetClusterNodes(_ context.Context, clusterID string) ([]model.NodeRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["GetClusterNodes"]++

	if _, ok := f.clusters[clusterID]; !ok {
		return nil, notFound("get cluster nodes", clusterID)
	}
	return slices.Clone(f.members[clusterID]), nil
}

func (f *FakeBackend) AddNodesToCluster(_ context.Context, req model.AddNodesRequest) ([]model.NodeRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["AddNodesToCluster"]++

	if _, ok := f.clusters[req.ClusterID]; !ok {
		return nil, notFound("add nodes", req.ClusterID)
	}
	f.members[req.ClusterID] = append(f.members[req.ClusterID], req.Nodes...)
	for _, r := range req.Nodes {
		f.setStatusLocked(r.NodeID, model.NodeStatusAdded)
	}
	return slices.Clone(req.Nodes), nil
}

func (f *FakeBackend) RemoveNodeFromCluster(_ context.Context, clusterID, nodeID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["RemoveNodeFromCluster"]++

	if err, ok := f.RemoveErrors[nodeID]; ok {
		return "", err
	}
	refs := f.members[clusterID]
	idx := slices.IndexFunc(refs, func(r model.NodeRef) bool { return r.NodeID == nodeID })
	if idx < 0 {
		return "", &gateway.CommandError{
			Operation:  "remove node",
			StatusCode: 404,
			Message:    fmt.Sprintf("node %s is not a member of cluster %s", nodeID, clusterID),
		}
	}
	f.members[clusterID] = slices.Delete(refs, idx, idx+1)
	f.setStatusLocked(nodeID, model.NodeStatusAvailable)
	return nodeID, nil
}

func (f *FakeBackend) GetClusterResources(_ context.Context, clusterID string) ([]model.ClusterNodeResources, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["GetClusterResources"]++

	var out []model.ClusterNodeResources
	for _, r := range f.members[clusterID] {
		for _, n := range f.nodes {
			if n.ID == r.NodeID {
				out = append(out, model.ClusterNodeResources{
					NodeID:            n.ID,
					Hostname:          n.Hostname,
					Role:              r.Role,
					FreeResources:     n.FreeResources,
					OccupiedResources: n.OccupiedResources,
				})
			}
		}
	}
	return out, nil
}

func (f *FakeBackend) GetKubeconfig(_ context.Context, clusterID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["GetKubeconfig"]++
	if _, ok := f.clusters[clusterID]; !ok {
		return "", notFound("get kubeconfig", clusterID)
	}
	return f.Kubeconfig, nil
}

func (f *FakeBackend) GetDashboardURL(_ context.Context, clusterID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["GetDashboardURL"]++
	if _, ok := f.clusters[clusterID]; !ok {
		return "", notFound("get dashboard url", clusterID)
	}
	return f.DashboardURL, nil
}

// advanceLocked counts a pool listing and applies due transitions.
func (f *FakeBackend) advanceLocked() {
	f.listCalls++
	for id, t := range f.transitions {
		if f.listCalls > t.after {
			f.setStatusLocked(id, t.status)
			delete(f.transitions, id)
		}
	}
}

func (f *FakeBackend) setStatusLocked(nodeID string, status model.NodeStatus) {
	for i := range f.nodes {
		if f.nodes[i].ID == nodeID {
			f.nodes[i].Status = status
		}
	}
}

func nodesOf(assigned []model.AssignedClusterNode) []model.ClusterNode {
	out := make([]model.ClusterNode, len(assigned))
	for i, n := range assigned {
		out[i] = n.ClusterNode
	}
	return out
}

func notFound(op, clusterID string) error {
	return &gateway.CommandError{
		Operation:  op,
		StatusCode: 404,
		Message:    fmt.Sprintf("cluster %s not found", clusterID),
	}
}
