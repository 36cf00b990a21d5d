package hcloud

import (
	"context"
	"sort"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"

	"github.com/imamik/colonyctl/internal/model"
)

// Server labels read by NodeSource.
const (
	LabelRole             = "colonyctl.io/role"
	RoleValueControlPlane = "control-plane"
)

// NodeSource builds node specifications from Hetzner Cloud servers.
type NodeSource struct {
	servers    ServerLister
	username   string
	sshKeyID   string
	sshKeyName string
	privateKey string
}

// NodeSourceOption configures a NodeSource.
type NodeSourceOption func(*NodeSource)

// WithUsername sets the SSH user for imported servers. Defaults to root.
func WithUsername(user string) NodeSourceOption {
	return func(s *NodeSource) {
		s.username = user
	}
}

// WithSSHKeyID references a key already stored by the backend.
func WithSSHKeyID(id string) NodeSourceOption {
	return func(s *NodeSource) {
		s.sshKeyID = id
	}
}

// WithSSHPrivateKey sends inline key material with every specification.
func WithSSHPrivateKey(name, material string) NodeSourceOption {
	return func(s *NodeSource) {
		s.sshKeyName = name
		s.privateKey = material
	}
}

// NewNodeSource creates a NodeSource over servers.
func NewNodeSource(servers ServerLister, opts ...NodeSourceOption) *NodeSource {
	s := &NodeSource{servers: servers, username: "root"}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Discovered holds the specifications built from matching servers, grouped
// by role, plus the names of servers that were skipped.
type Discovered struct {
	Workers       []model.NodeSpecification
	ControlPlanes []model.NodeSpecification
	// Skipped lists servers that are not running or have no reachable address.
	Skipped []string
}

// Discover lists servers matching selector and converts them.
func (s *NodeSource) Discover(ctx context.Context, selector map[string]string) (*Discovered, error) {
	servers, err := s.servers.GetServersByLabel(ctx, selector)
	if err != nil {
		return nil, err
	}
	sort.Slice(servers, func(i, j int) bool { return servers[i].Name < servers[j].Name })

	out := &Discovered{}
	for _, srv := range servers {
		endpoint := serverEndpoint(srv)
		if srv.Status != hcloud.ServerStatusRunning || endpoint == "" {
			out.Skipped = append(out.Skipped, srv.Name)
			continue
		}

		spec := model.NodeSpecification{
			Hostname:      srv.Name,
			Endpoint:      endpoint,
			Username:      s.username,
			SSHKeyID:      s.sshKeyID,
			SSHKeyName:    s.sshKeyName,
			SSHPrivateKey: s.privateKey,
		}
		if srv.Labels[LabelRole] == RoleValueControlPlane {
			spec.Role = model.RoleControlPlane
			out.ControlPlanes = append(out.ControlPlanes, spec)
			continue
		}
		spec.Role = model.RoleWorker
		out.Workers = append(out.Workers, spec)
	}
	return out, nil
}

// serverEndpoint prefers public IPv4, then public IPv6, then the first private IP.
func serverEndpoint(srv *hcloud.Server) string {
	if ip := srv.PublicNet.IPv4.IP; ip != nil && !ip.IsUnspecified() {
		return ip.String()
	}
	if ip := srv.PublicNet.IPv6.IP; ip != nil && !ip.IsUnspecified() {
		return ip.String()
	}
	for _, pn := range srv.PrivateNet {
		if pn.IP != nil {
			return pn.IP.String()
		}
	}
	return ""
}
