// Package model defines the domain types shared by the orchestrator, the
// gateway adapters and the CLI.
//
// Clusters and pool nodes are owned by the backend; the types here are
// snapshots constructed fresh for each orchestration call. Partial outcomes
// are represented as data ([DeployClusterResult], [ClusterScaleResult]) with
// per-node issues instead of errors, so one bad node never aborts a request.
package model
