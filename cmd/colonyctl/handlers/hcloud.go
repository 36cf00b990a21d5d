package handlers

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/imamik/colonyctl/internal/model"
	"github.com/imamik/colonyctl/internal/platform/hcloud"
)

// addHCloudServers appends running Hetzner Cloud servers matching the
// selector to req as nodes to import. Servers labeled
// colonyctl.io/role=control-plane join the control plane group.
func (s *session) addHCloudServers(ctx context.Context, req *model.DeployClusterRequest, create CreateOptions) error {
	if s.settings.HCloudToken == "" {
		return fmt.Errorf("HCLOUD_TOKEN is required for --hcloud-selector")
	}
	selector, err := hcloud.ParseLabelSelector(create.HCloudSelector)
	if err != nil {
		return err
	}

	var sourceOpts []hcloud.NodeSourceOption
	if create.SSHUser != "" {
		sourceOpts = append(sourceOpts, hcloud.WithUsername(create.SSHUser))
	}
	switch {
	case create.SSHKeyID != "" && create.SSHKeyFile != "":
		return fmt.Errorf("--ssh-key-id and --ssh-key-file are mutually exclusive")
	case create.SSHKeyID != "":
		sourceOpts = append(sourceOpts, hcloud.WithSSHKeyID(create.SSHKeyID))
	case create.SSHKeyFile != "":
		material, err := s.store.ReadFile(ctx, create.SSHKeyFile)
		if err != nil {
			return err
		}
		sourceOpts = append(sourceOpts, hcloud.WithSSHPrivateKey(filepath.Base(create.SSHKeyFile), string(material)))
	default:
		return fmt.Errorf("--hcloud-selector requires --ssh-key-id or --ssh-key-file")
	}

	source := hcloud.NewNodeSource(newServerLister(s.settings.HCloudToken, s.timeouts), sourceOpts...)
	discovered, err := source.Discover(ctx, selector)
	if hcloud.IsRateLimited(err) {
		return fmt.Errorf("Hetzner Cloud API rate limit exceeded, retry in a minute: %w", err)
	}
	if err != nil {
		return fmt.Errorf("failed to discover Hetzner Cloud servers: %w", err)
	}
	for _, name := range discovered.Skipped {
		s.log.Info("skipping server that is not running or has no address", "server", name)
	}
	s.log.Info("discovered Hetzner Cloud servers", "selector", create.HCloudSelector,
		"workers", len(discovered.Workers), "controlPlanes", len(discovered.ControlPlanes))

	for _, spec := range discovered.Workers {
		req.WorkerNodes = append(req.WorkerNodes, model.NewNode{Spec: spec})
	}
	for _, spec := range discovered.ControlPlanes {
		req.ControlPlaneNodes = append(req.ControlPlaneNodes, model.NewNode{Spec: spec})
	}
	return nil
}
