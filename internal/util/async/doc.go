// Package async provides utilities for parallel task execution with
// error collection.
//
// The [RunParallel] function executes independent operations concurrently,
// waits for all of them, and returns every error joined together. The
// orchestrator uses it to process the worker and control-plane role groups
// side by side.
package async
