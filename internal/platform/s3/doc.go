// Package s3 provides a client for S3-compatible object storage such as
// Hetzner Object Storage.
//
// colonyctl uses it to export kubeconfigs to s3://bucket/key targets and to
// read deploy request files stored in a bucket. Buckets are created on demand
// when a write targets a bucket that does not exist yet.
package s3
