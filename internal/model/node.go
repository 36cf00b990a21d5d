package model

import "fmt"

// NodeStatus is the status of a node in the global node pool.
type NodeStatus string

// Node statuses. Only AVAILABLE and DISCOVERING nodes are unassigned.
const (
	NodeStatusAvailable   NodeStatus = "AVAILABLE"
	NodeStatusDiscovering NodeStatus = "DISCOVERING"
	NodeStatusAdded       NodeStatus = "ADDED"
	NodeStatusFailed      NodeStatus = "FAILED"
	NodeStatusUnknown     NodeStatus = "UNKNOWN"
)

// NodeRole is the role a node plays inside a cluster.
type NodeRole string

// Node roles.
const (
	RoleWorker       NodeRole = "WORKER"
	RoleControlPlane NodeRole = "CONTROL_PLANE"
)

// Resources is a snapshot of a node's hardware capacity.
type Resources struct {
	GPUType   string `json:"gpu_type,omitempty" yaml:"gpu_type,omitempty"`
	GPUVendor string `json:"gpu_vendor,omitempty" yaml:"gpu_vendor,omitempty"`
	GPUCount  int    `json:"gpu_count" yaml:"gpu_count"`
	CPUCores  int    `json:"cpu_cores" yaml:"cpu_cores"`
	MemoryGB  int    `json:"memory_gb" yaml:"memory_gb"`
	StorageGB int    `json:"storage_gb" yaml:"storage_gb"`
}

// ClusterNode is a node of the global pool, independent of cluster membership.
type ClusterNode struct {
	ID                string     `json:"id" yaml:"id"`
	Hostname          string     `json:"hostname" yaml:"hostname"`
	Username          string     `json:"username,omitempty" yaml:"username,omitempty"`
	SSHKeyID          string     `json:"ssh_key_id,omitempty" yaml:"ssh_key_id,omitempty"`
	Endpoint          string     `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	Status            NodeStatus `json:"status" yaml:"status"`
	FreeResources     Resources  `json:"free_resources" yaml:"free_resources"`
	OccupiedResources Resources  `json:"occupied_resources" yaml:"occupied_resources"`
}

// IsUnassigned reports whether the node may be offered for assignment.
func (n ClusterNode) IsUnassigned() bool {
	return n.Status == NodeStatusAvailable || n.Status == NodeStatusDiscovering
}

// AssignedClusterNode is a pool node bound to a cluster with a role.
type AssignedClusterNode struct {
	ClusterNode `yaml:",inline"`
	Role        NodeRole `json:"role" yaml:"role"`
}

// Assign binds n to role.
func (n ClusterNode) Assign(role NodeRole) AssignedClusterNode {
	return AssignedClusterNode{ClusterNode: n, Role: role}
}

// NodeRef is the backend's membership record linking a pool node to a cluster.
type NodeRef struct {
	NodeID string   `json:"node_id" yaml:"node_id"`
	Role   NodeRole `json:"role,omitempty" yaml:"role,omitempty"`
}

// ClusterNodeResources reports the resources of one cluster member.
type ClusterNodeResources struct {
	NodeID            string    `json:"node_id" yaml:"node_id"`
	Hostname          string    `json:"hostname,omitempty" yaml:"hostname,omitempty"`
	Role              NodeRole  `json:"role" yaml:"role"`
	FreeResources     Resources `json:"free_resources" yaml:"free_resources"`
	OccupiedResources Resources `json:"occupied_resources" yaml:"occupied_resources"`
}

// NodeSpecification describes infrastructure that is not yet registered in
// the node pool and should be imported as part of a request.
//
// Exactly one of SSHPrivateKey (inline key material) and SSHKeyID (a key
// already stored by the backend) is expected to be set.
type NodeSpecification struct {
	Hostname      string   `json:"hostname" yaml:"hostname"`
	Endpoint      string   `json:"endpoint" yaml:"endpoint"`
	Username      string   `json:"username" yaml:"username"`
	SSHKeyName    string   `json:"ssh_key_name,omitempty" yaml:"ssh_key_name,omitempty"`
	SSHPrivateKey string   `json:"ssh_private_key,omitempty" yaml:"ssh_private_key,omitempty"`
	SSHKeyID      string   `json:"ssh_key_id,omitempty" yaml:"ssh_key_id,omitempty"`
	Role          NodeRole `json:"role,omitempty" yaml:"role,omitempty"`
}

// String returns a representation of the specification without key material,
// suitable for issues and logs.
func (s NodeSpecification) String() string {
	key := "none"
	switch {
	case s.SSHKeyID != "":
		key = "id:" + s.SSHKeyID
	case s.SSHPrivateKey != "":
		key = "inline"
		if s.SSHKeyName != "" {
			key = "inline:" + s.SSHKeyName
		}
	}
	return fmt.Sprintf("%s@%s (endpoint=%s, key=%s)", s.Username, s.Hostname, s.Endpoint, key)
}

// ImportIssue is a provider's report that one specification could not be imported.
type ImportIssue struct {
	Spec    NodeSpecification `json:"node_spec"`
	Message string            `json:"message"`
}

// ImportResult is the outcome of a bulk node import.
type ImportResult struct {
	Nodes  []AssignedClusterNode `json:"nodes"`
	Issues []ImportIssue         `json:"issues"`
}
