// Package retry provides exponential backoff for transient API failures.
//
// [WithExponentialBackoff] retries an operation with configurable attempts
// and delays. Errors marked with [Fatal] stop the loop immediately; errors
// built with [After] set the next delay, which the backend adapter uses for
// Retry-After on rate-limited responses.
package retry
