package testing

import (
	"slices"

	"github.com/imamik/colonyctl/internal/model"
)

// RequestBuilder provides a fluent interface for constructing deploy requests.
// Each method returns a new builder (immutable) for chaining.
type RequestBuilder struct {
	req model.DeployClusterRequest
}

// NewRequestBuilder creates a RequestBuilder for a REMOTE cluster named "test-cluster".
func NewRequestBuilder() *RequestBuilder {
	return &RequestBuilder{
		req: model.DeployClusterRequest{
			Name: "test-cluster",
			Type: model.ClusterTypeRemote,
		},
	}
}

// WithName sets the cluster name.
func (b *RequestBuilder) WithName(name string) *RequestBuilder {
	nb := b.clone()
	nb.req.Name = name
	return nb
}

// WithColony sets the colony ID.
func (b *RequestBuilder) WithColony(id string) *RequestBuilder {
	nb := b.clone()
	nb.req.ColonyID = id
	return nb
}

// WithWorkerIDs appends existing worker nodes.
func (b *RequestBuilder) WithWorkerIDs(ids ...string) *RequestBuilder {
	nb := b.clone()
	nb.req.WorkerNodes = append(nb.req.WorkerNodes, model.ExistingNodes(ids...)...)
	return nb
}

// WithControlPlaneIDs appends existing control plane nodes.
func (b *RequestBuilder) WithControlPlaneIDs(ids ...string) *RequestBuilder {
	nb := b.clone()
	nb.req.ControlPlaneNodes = append(nb.req.ControlPlaneNodes, model.ExistingNodes(ids...)...)
	return nb
}

// WithWorkerSpecs appends worker nodes to import.
func (b *RequestBuilder) WithWorkerSpecs(specs ...model.NodeSpecification) *RequestBuilder {
	nb := b.clone()
	for _, s := range specs {
		nb.req.WorkerNodes = append(nb.req.WorkerNodes, model.NewNode{Spec: s})
	}
	return nb
}

// WithControlPlaneSpecs appends control plane nodes to import.
func (b *RequestBuilder) WithControlPlaneSpecs(specs ...model.NodeSpecification) *RequestBuilder {
	nb := b.clone()
	for _, s := range specs {
		nb.req.ControlPlaneNodes = append(nb.req.ControlPlaneNodes, model.NewNode{Spec: s})
	}
	return nb
}

// WithFeatures sets the multinode training and LLM inference flags.
func (b *RequestBuilder) WithFeatures(multinodeTraining, llmInference bool) *RequestBuilder {
	nb := b.clone()
	nb.req.EnableMultinodeTraining = multinodeTraining
	nb.req.PrepareLLMInference = llmInference
	return nb
}

// Build returns the constructed request.
func (b *RequestBuilder) Build() *model.DeployClusterRequest {
	req := b.clone().req
	return &req
}

func (b *RequestBuilder) clone() *RequestBuilder {
	req := b.req
	req.WorkerNodes = slices.Clone(b.req.WorkerNodes)
	req.ControlPlaneNodes = slices.Clone(b.req.ControlPlaneNodes)
	return &RequestBuilder{req: req}
}
