package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds all configurable timeout values.
// These values can be customized via environment variables.
type Timeouts struct {
	NodeWait             time.Duration // How long to wait for DISCOVERING nodes to become AVAILABLE
	NodeWaitInterval     time.Duration // Poll interval while waiting for nodes
	NodeImport           time.Duration // How long an import may block waiting for imported nodes
	NodeImportInterval   time.Duration // Poll interval while waiting for imported nodes
	ClusterReady         time.Duration // How long to wait for a deployed cluster to become READY
	ClusterReadyInterval time.Duration // Poll interval while waiting for a cluster
	API                  time.Duration // Per-request timeout for backend API calls
	RetryMaxAttempts     int           // Maximum number of retry attempts for transient API errors
	RetryInitialDelay    time.Duration // Initial delay between retries
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - COLONY_TIMEOUT_NODE_WAIT (default: 60s)
//   - COLONY_NODE_WAIT_INTERVAL (default: 3s)
//   - COLONY_TIMEOUT_NODE_IMPORT (default: 5m)
//   - COLONY_NODE_IMPORT_INTERVAL (default: 5s)
//   - COLONY_TIMEOUT_CLUSTER_READY (default: 30m)
//   - COLONY_CLUSTER_READY_INTERVAL (default: 10s)
//   - COLONY_TIMEOUT_API (default: 30s)
//   - COLONY_RETRY_MAX_ATTEMPTS (default: 3)
//   - COLONY_RETRY_INITIAL_DELAY (default: 1s)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		NodeWait:             parseDuration("COLONY_TIMEOUT_NODE_WAIT", 60*time.Second),
		NodeWaitInterval:     parseDuration("COLONY_NODE_WAIT_INTERVAL", 3*time.Second),
		NodeImport:           parseDuration("COLONY_TIMEOUT_NODE_IMPORT", 5*time.Minute),
		NodeImportInterval:   parseDuration("COLONY_NODE_IMPORT_INTERVAL", 5*time.Second),
		ClusterReady:         parseDuration("COLONY_TIMEOUT_CLUSTER_READY", 30*time.Minute),
		ClusterReadyInterval: parseDuration("COLONY_CLUSTER_READY_INTERVAL", 10*time.Second),
		API:                  parseDuration("COLONY_TIMEOUT_API", 30*time.Second),
		RetryMaxAttempts:     parseInt("COLONY_RETRY_MAX_ATTEMPTS", 3),
		RetryInitialDelay:    parseDuration("COLONY_RETRY_INITIAL_DELAY", 1*time.Second),
	}
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil || d < 0 {
		return defaultVal
	}

	return d
}

// parseInt parses an integer from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	i, err := strconv.Atoi(val)
	if err != nil || i < 0 {
		return defaultVal
	}

	return i
}
