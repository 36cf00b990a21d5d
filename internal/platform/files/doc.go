// Package files reads and writes artifacts at local paths or s3:// URLs.
//
// [Store] implements gateway.FileWriter for kubeconfig export and reads
// deploy request files for the CLI. Object storage is optional: without an
// object store, s3:// paths are rejected with [ErrObjectStoreUnavailable].
package files
