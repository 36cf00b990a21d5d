package model

import "time"

// NodeRequest is one entry of a role group in a deploy request: either an
// already-known pool node ([ExistingNode]) or infrastructure to import
// ([NewNode]). The interface is sealed; match it with a type switch.
type NodeRequest interface {
	isNodeRequest()
}

// ExistingNode refers to a node already registered in the pool.
type ExistingNode struct {
	ID string
}

// NewNode asks for a node to be imported from its specification.
type NewNode struct {
	Spec NodeSpecification
}

func (ExistingNode) isNodeRequest() {}
func (NewNode) isNodeRequest()      {}

// ExistingNodes wraps ids as ExistingNode requests.
func ExistingNodes(ids ...string) []NodeRequest {
	out := make([]NodeRequest, 0, len(ids))
	for _, id := range ids {
		out = append(out, ExistingNode{ID: id})
	}
	return out
}

// DeployClusterRequest is the declarative description of a cluster to create.
type DeployClusterRequest struct {
	Name              string
	Type              ClusterType
	ColonyID          string
	ToBeDeletedAt     *time.Time
	WorkerNodes       []NodeRequest
	ControlPlaneNodes []NodeRequest

	EnableMultinodeTraining bool
	EnableTelemetry         bool
	EnableVPN               bool
	PrepareLLMInference     bool
}
