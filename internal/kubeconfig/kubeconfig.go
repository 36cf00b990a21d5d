// Package kubeconfig validates kubeconfig documents returned by the backend
// before they are written anywhere.
package kubeconfig

import (
	"errors"
	"fmt"
	"strings"

	"k8s.io/client-go/tools/clientcmd"
)

// ErrEmpty is returned for blank kubeconfig content.
var ErrEmpty = errors.New("kubeconfig is empty")

// Info summarizes a validated kubeconfig.
type Info struct {
	CurrentContext string
	Cluster        string
	Server         string
}

// Validate parses data and checks that its current context resolves to a
// cluster with a server address.
func Validate(data []byte) (*Info, error) {
	if strings.TrimSpace(string(data)) == "" {
		return nil, ErrEmpty
	}

	cfg, err := clientcmd.Load(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse kubeconfig: %w", err)
	}

	current := cfg.CurrentContext
	if current == "" {
		return nil, fmt.Errorf("kubeconfig has no current-context")
	}
	kctx, ok := cfg.Contexts[current]
	if !ok {
		return nil, fmt.Errorf("kubeconfig current-context %q not found", current)
	}
	cluster, ok := cfg.Clusters[kctx.Cluster]
	if !ok {
		return nil, fmt.Errorf("kubeconfig context %q references unknown cluster %q", current, kctx.Cluster)
	}
	if cluster.Server == "" {
		return nil, fmt.Errorf("kubeconfig cluster %q has no server", kctx.Cluster)
	}

	return &Info{CurrentContext: current, Cluster: kctx.Cluster, Server: cluster.Server}, nil
}
