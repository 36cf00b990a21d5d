package model

import "time"

// ClusterStatus is the backend lifecycle state of a cluster.
type ClusterStatus string

// Cluster statuses.
const (
	ClusterStatusPending   ClusterStatus = "PENDING"
	ClusterStatusDeploying ClusterStatus = "DEPLOYING"
	ClusterStatusReady     ClusterStatus = "READY"
	ClusterStatusFailed    ClusterStatus = "FAILED"
	ClusterStatusUnknown   ClusterStatus = "UNKNOWN"
)

// ClusterType describes where a cluster's nodes come from.
type ClusterType string

// Cluster types.
const (
	ClusterTypeRemote  ClusterType = "REMOTE"
	ClusterTypeAdopted ClusterType = "ADOPTED"
	ClusterTypeCloud   ClusterType = "CLOUD"
	ClusterTypeDocker  ClusterType = "DOCKER"
	ClusterTypeUnknown ClusterType = "UNKNOWN"
)

// ClusterTypes lists the types accepted in deploy requests.
var ClusterTypes = []ClusterType{
	ClusterTypeRemote,
	ClusterTypeAdopted,
	ClusterTypeCloud,
	ClusterTypeDocker,
}

// ParseClusterType returns the ClusterType named by s and whether it is one
// of the accepted types. Matching is case-sensitive.
func ParseClusterType(s string) (ClusterType, bool) {
	for _, t := range ClusterTypes {
		if string(t) == s {
			return t, true
		}
	}
	return ClusterTypeUnknown, false
}

// Cluster is the backend's record of a cluster.
type Cluster struct {
	ID            string        `json:"id" yaml:"id"`
	Name          string        `json:"name" yaml:"name"`
	Status        ClusterStatus `json:"status" yaml:"status"`
	Type          ClusterType   `json:"type" yaml:"type"`
	ColonyID      string        `json:"colony_id,omitempty" yaml:"colony_id,omitempty"`
	ToBeDeletedAt *time.Time    `json:"to_be_deleted_at,omitempty" yaml:"to_be_deleted_at,omitempty"`
	CreatedAt     time.Time     `json:"created_at" yaml:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at" yaml:"updated_at"`
}

// ClusterWithNodes is a cluster together with its resolved member nodes.
type ClusterWithNodes struct {
	Cluster `yaml:",inline"`
	Nodes   []AssignedClusterNode `json:"nodes" yaml:"nodes"`
}

// CreateClusterParams are the parameters the gateway needs to create a cluster.
type CreateClusterParams struct {
	Name            string            `json:"name"`
	Type            ClusterType       `json:"type"`
	ColonyID        string            `json:"colony_id,omitempty"`
	ToBeDeletedAt   *time.Time        `json:"to_be_deleted_at,omitempty"`
	EnableVPN       bool              `json:"enable_vpn"`
	EnableTelemetry bool              `json:"enable_telemetry"`
	Labels          map[string]string `json:"labels,omitempty"`
	WorkerNodeIDs   []string          `json:"worker_node_ids"`
	ControlPlaneIDs []string          `json:"control_plane_node_ids"`
}

// AddNodesRequest asks the backend to bind pool nodes to a cluster.
type AddNodesRequest struct {
	ClusterID string    `json:"-"`
	Nodes     []NodeRef `json:"nodes"`
}
