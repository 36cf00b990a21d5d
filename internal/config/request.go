package config

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/imamik/colonyctl/internal/model"
	"github.com/imamik/colonyctl/internal/util/sshkey"
)

// requestFile is the on-disk shape of a deploy request.
//
// Node entries are either a scalar node ID or a mapping describing a node
// to import:
//
//	workers:
//	  - 2f6c1a0e-node
//	  - hostname: gpu-02
//	    endpoint: 10.0.0.12
//	    username: root
//	    ssh_key_id: key-1
type requestFile struct {
	Name          string     `yaml:"name"`
	Type          string     `yaml:"type"`
	ColonyID      string     `yaml:"colony_id"`
	ToBeDeletedAt *time.Time `yaml:"to_be_deleted_at"`

	Features struct {
		MultinodeTraining bool `yaml:"multinode_training"`
		Telemetry         bool `yaml:"telemetry"`
		VPN               bool `yaml:"vpn"`
		LLMInference      bool `yaml:"llm_inference"`
	} `yaml:"features"`

	Workers      []yaml.Node `yaml:"workers"`
	ControlPlane []yaml.Node `yaml:"control_plane"`
}

// DecodeRequest parses a deploy request from YAML bytes without validating
// it, so callers can add nodes before calling ValidateRequest.
// Unset cluster types default to REMOTE.
func DecodeRequest(data []byte) (*model.DeployClusterRequest, error) {
	var raw requestFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	req := &model.DeployClusterRequest{
		Name:                    strings.TrimSpace(raw.Name),
		ColonyID:                raw.ColonyID,
		ToBeDeletedAt:           raw.ToBeDeletedAt,
		EnableMultinodeTraining: raw.Features.MultinodeTraining,
		EnableTelemetry:         raw.Features.Telemetry,
		EnableVPN:               raw.Features.VPN,
		PrepareLLMInference:     raw.Features.LLMInference,
	}

	typ := raw.Type
	if typ == "" {
		typ = string(model.ClusterTypeRemote)
	}
	var ok bool
	if req.Type, ok = model.ParseClusterType(strings.ToUpper(typ)); !ok {
		return nil, fmt.Errorf("unknown cluster type %q (valid: %s)", raw.Type, clusterTypeList())
	}

	var err error
	if req.WorkerNodes, err = decodeNodeEntries("workers", raw.Workers); err != nil {
		return nil, err
	}
	if req.ControlPlaneNodes, err = decodeNodeEntries("control_plane", raw.ControlPlane); err != nil {
		return nil, err
	}
	return req, nil
}

// ValidateRequest checks the parts of a request that can be verified
// without contacting the backend. Unknown node IDs and unreachable
// endpoints are reported later as per-node issues, not here.
func ValidateRequest(req *model.DeployClusterRequest) error {
	if req.Name == "" {
		return fmt.Errorf("name is required")
	}
	if _, ok := model.ParseClusterType(string(req.Type)); !ok {
		return fmt.Errorf("unknown cluster type %q", req.Type)
	}
	if len(req.WorkerNodes)+len(req.ControlPlaneNodes) == 0 {
		return fmt.Errorf("at least one worker or control plane node is required")
	}

	groups := []struct {
		name  string
		nodes []model.NodeRequest
	}{
		{"workers", req.WorkerNodes},
		{"control_plane", req.ControlPlaneNodes},
	}
	for _, g := range groups {
		for i, n := range g.nodes {
			if err := validateNodeRequest(n); err != nil {
				return fmt.Errorf("%s[%d]: %w", g.name, i, err)
			}
		}
	}
	return nil
}

func validateNodeRequest(n model.NodeRequest) error {
	switch n := n.(type) {
	case model.ExistingNode:
		if strings.TrimSpace(n.ID) == "" {
			return fmt.Errorf("node ID must not be empty")
		}
	case model.NewNode:
		if n.Spec.SSHPrivateKey != "" && n.Spec.SSHKeyID != "" {
			return fmt.Errorf("ssh_private_key and ssh_key_id are mutually exclusive")
		}
		if n.Spec.SSHPrivateKey != "" {
			if _, err := sshkey.Parse(n.Spec.SSHPrivateKey); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unsupported node request %T", n)
	}
	return nil
}

func decodeNodeEntries(field string, entries []yaml.Node) ([]model.NodeRequest, error) {
	out := make([]model.NodeRequest, 0, len(entries))
	for i := range entries {
		entry := &entries[i]
		switch entry.Kind {
		case yaml.ScalarNode:
			out = append(out, model.ExistingNode{ID: strings.TrimSpace(entry.Value)})
		case yaml.MappingNode:
			var spec model.NodeSpecification
			if err := entry.Decode(&spec); err != nil {
				return nil, fmt.Errorf("%s[%d]: %w", field, i, err)
			}
			out = append(out, model.NewNode{Spec: spec})
		default:
			return nil, fmt.Errorf("%s[%d] (line %d): expected a node ID or a node specification", field, i, entry.Line)
		}
	}
	return out, nil
}

func clusterTypeList() string {
	names := make([]string, len(model.ClusterTypes))
	for i, t := range model.ClusterTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
