package model

import "fmt"

// NodeValidationIssue explains why a requested node was not used. NodeID is
// set for node-ID requests, NodeSpecRepr for specifications that could not
// be resolved to a node.
type NodeValidationIssue struct {
	NodeID       string `json:"node_id,omitempty" yaml:"node_id,omitempty"`
	NodeSpecRepr string `json:"node_spec_repr,omitempty" yaml:"node_spec_repr,omitempty"`
	Reason       string `json:"reason" yaml:"reason"`
}

// Subject returns the node ID or, failing that, the specification representation.
func (i NodeValidationIssue) Subject() string {
	if i.NodeID != "" {
		return i.NodeID
	}
	return i.NodeSpecRepr
}

func (i NodeValidationIssue) String() string {
	return fmt.Sprintf("%s: %s", i.Subject(), i.Reason)
}

// NodeLoadingIssue reports a cluster node reference that could not be
// resolved against the node pool.
type NodeLoadingIssue struct {
	NodeID string `json:"node_id" yaml:"node_id"`
	Reason string `json:"reason" yaml:"reason"`
}

// DeployClusterResult is the outcome of a deploy. DeployedCluster is set iff
// at least one node was usable; success versus partial success is derived
// from Issues alone.
type DeployClusterResult struct {
	DeployedCluster *ClusterWithNodes     `json:"deployed_cluster" yaml:"deployed_cluster"`
	Issues          []NodeValidationIssue `json:"issues" yaml:"issues"`
}

// IsSuccess reports a deployed cluster with no issues.
func (r *DeployClusterResult) IsSuccess() bool {
	return r.DeployedCluster != nil && len(r.Issues) == 0
}

// IsPartiallySuccessful reports a deployed cluster with at least one issue.
func (r *DeployClusterResult) IsPartiallySuccessful() bool {
	return r.DeployedCluster != nil && len(r.Issues) > 0
}

// IsFailure reports that no cluster was deployed.
func (r *DeployClusterResult) IsFailure() bool {
	return r.DeployedCluster == nil
}

// ClusterScaleResult is the outcome of adding nodes to or removing nodes from
// a cluster: the nodes that succeeded plus issues for those that did not.
type ClusterScaleResult struct {
	Nodes  []NodeRef             `json:"nodes" yaml:"nodes"`
	Issues []NodeValidationIssue `json:"issues" yaml:"issues"`
}

// IsSuccess reports at least one node changed and no issues.
func (r *ClusterScaleResult) IsSuccess() bool {
	return len(r.Nodes) > 0 && len(r.Issues) == 0
}

// IsPartiallySuccessful reports at least one node changed alongside issues.
func (r *ClusterScaleResult) IsPartiallySuccessful() bool {
	return len(r.Nodes) > 0 && len(r.Issues) > 0
}

// IsFailure reports that no node changed.
func (r *ClusterScaleResult) IsFailure() bool {
	return len(r.Nodes) == 0
}
