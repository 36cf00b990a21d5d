package orchestrator

import (
	"fmt"

	"github.com/imamik/colonyctl/internal/model"
)

// Operation names used in errors and metrics.
const (
	opDeploy      = "deploying cluster"
	opAddNodes    = "adding nodes"
	opRemoveNodes = "removing nodes"
	opLoadNodes   = "loading cluster nodes"
	opResources   = "loading cluster resources"
	opKubeconfig  = "fetching kubeconfig"
	opExport      = "exporting kubeconfig"
	opDashboard   = "fetching dashboard URL"
	opWaitReady   = "waiting for cluster"
	opList        = "listing clusters"
	opGet         = "getting cluster"
	opDelete      = "deleting cluster"
)

// Error is an operation-level failure. Per-node problems never produce an
// Error; they are reported as issues on the result instead.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func opError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}

// CreatedClusterError reports a failure after the backend created a cluster,
// so callers can clean up ClusterID.
type CreatedClusterError struct {
	ClusterID string
	Err       error
}

func (e *CreatedClusterError) Error() string {
	return fmt.Sprintf("cluster %s was created but %v", e.ClusterID, e.Err)
}

func (e *CreatedClusterError) Unwrap() error {
	return e.Err
}

// ClusterStatusError is returned when an operation requires a READY cluster.
type ClusterStatusError struct {
	ClusterID string
	Status    model.ClusterStatus
}

func (e *ClusterStatusError) Error() string {
	switch e.Status {
	case model.ClusterStatusDeploying:
		return "cluster is still deploying"
	case model.ClusterStatusFailed:
		return "cluster deployment failed"
	default:
		return fmt.Sprintf("cluster is in an unknown status: %s", e.Status)
	}
}
