// Package orchestrator turns declarative cluster requests into node
// assignments and a running cluster on the backend.
//
// A [Service] resolves a mix of existing node IDs and new node
// specifications against the node pool, imports what is missing, waits for
// nodes still in DISCOVERING status, and then creates and deploys the
// cluster with whatever subset turned out to be usable. Problems with
// individual nodes are reported as issues on the result; only failures of
// the operation itself are returned as errors (see [Error]).
//
// The same engine backs scale-up ([Service.AddNodes]) and scale-down
// ([Service.RemoveNodes]), both guarded by the cluster status gate.
package orchestrator
