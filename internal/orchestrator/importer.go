package orchestrator

import (
	"context"
	"fmt"
	"strings"

	"github.com/imamik/colonyctl/internal/model"
	"github.com/imamik/colonyctl/internal/util/sshkey"
)

// importNodes imports specs with the given role in a single provider call
// and waits for them to become available. Specifications that can be
// rejected locally never reach the provider.
func (s *Service) importNodes(ctx context.Context, specs []model.NodeSpecification, role model.NodeRole) ([]model.AssignedClusterNode, []model.NodeValidationIssue, error) {
	if len(specs) == 0 {
		return nil, nil, nil
	}

	var issues []model.NodeValidationIssue
	batch := make([]model.NodeSpecification, 0, len(specs))
	for _, spec := range specs {
		if reason := checkSpecification(spec); reason != "" {
			issues = append(issues, model.NodeValidationIssue{NodeSpecRepr: spec.String(), Reason: reason})
			continue
		}
		spec.Role = role
		batch = append(batch, spec)
	}

	if len(batch) == 0 {
		return nil, issues, nil
	}

	s.log.Info("importing nodes", "role", role, "count", len(batch))
	result, err := s.nodes.ImportNodes(ctx, batch, true)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to import %d %s nodes: %w", len(batch), roleName(role), err)
	}

	for _, issue := range result.Issues {
		issues = append(issues, model.NodeValidationIssue{
			NodeSpecRepr: issue.Spec.String(),
			Reason:       issue.Message,
		})
	}
	return result.Nodes, issues, nil
}

func checkSpecification(spec model.NodeSpecification) string {
	if strings.TrimSpace(spec.Hostname) == "" {
		return "node specification is missing a hostname"
	}
	if strings.TrimSpace(spec.Endpoint) == "" {
		return "node specification is missing an endpoint"
	}
	if spec.SSHPrivateKey != "" {
		if _, err := sshkey.Parse(spec.SSHPrivateKey); err != nil {
			return err.Error()
		}
	}
	return ""
}

func roleName(role model.NodeRole) string {
	return strings.ReplaceAll(strings.ToLower(string(role)), "_", " ")
}
