// Package backend implements the gateway ports over the cluster management
// backend's HTTP/JSON API.
//
// All calls carry the bearer token from the settings, are bounded by the API
// timeout and retried with exponential backoff on transport errors, 429 and
// 5xx responses. Any other non-2xx response is returned as a
// *gateway.CommandError without retrying.
package backend
