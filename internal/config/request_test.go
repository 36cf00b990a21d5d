package config

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/crypto/ssh"

	"github.com/imamik/colonyctl/internal/model"
)

func parseRequest(data []byte) (*model.DeployClusterRequest, error) {
	req, err := DecodeRequest(data)
	if err != nil {
		return nil, err
	}
	return req, ValidateRequest(req)
}

func newPrivateKey(t *testing.T) string {
	t.Helper()
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	block, err := ssh.MarshalPrivateKey(priv, "")
	require.NoError(t, err)
	return string(pem.EncodeToMemory(block))
}

func TestParseRequest_MixedEntries(t *testing.T) {
	t.Parallel()
	data := []byte(`
name: training-1
type: remote
colony_id: colony-7
features:
  multinode_training: true
  llm_inference: true
workers:
  - node-a
  - hostname: gpu-02
    endpoint: 10.0.0.12
    username: root
    ssh_key_id: key-1
control_plane:
  - node-b
`)

	req, err := parseRequest(data)
	require.NoError(t, err)

	assert.Equal(t, "training-1", req.Name)
	assert.Equal(t, model.ClusterTypeRemote, req.Type)
	assert.Equal(t, "colony-7", req.ColonyID)
	assert.True(t, req.EnableMultinodeTraining)
	assert.True(t, req.PrepareLLMInference)
	assert.False(t, req.EnableVPN)

	require.Len(t, req.WorkerNodes, 2)
	assert.Equal(t, model.ExistingNode{ID: "node-a"}, req.WorkerNodes[0])
	spec, ok := req.WorkerNodes[1].(model.NewNode)
	require.True(t, ok, "expected a NewNode, got %T", req.WorkerNodes[1])
	assert.Equal(t, "gpu-02", spec.Spec.Hostname)
	assert.Equal(t, "key-1", spec.Spec.SSHKeyID)

	assert.Equal(t, model.ExistingNodes("node-b"), req.ControlPlaneNodes)
}

func TestParseRequest_DefaultsToRemote(t *testing.T) {
	t.Parallel()
	req, err := parseRequest([]byte("name: c\nworkers: [n1]\n"))
	require.NoError(t, err)
	assert.Equal(t, model.ClusterTypeRemote, req.Type)
}

func TestParseRequest_InlineKeyIsParsed(t *testing.T) {
	t.Parallel()
	key := newPrivateKey(t)

	yamlDoc := "name: c\nworkers:\n  - hostname: h\n    endpoint: 10.0.0.1\n    username: root\n    ssh_private_key: |\n"
	for _, line := range strings.Split(strings.TrimSpace(key), "\n") {
		yamlDoc += "      " + line + "\n"
	}

	req, err := parseRequest([]byte(yamlDoc))
	require.NoError(t, err)
	require.Len(t, req.WorkerNodes, 1)
	assert.Contains(t, req.WorkerNodes[0].(model.NewNode).Spec.SSHPrivateKey, "OPENSSH PRIVATE KEY")
}

func TestParseRequest_Errors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"invalid yaml", "name: [", "failed to parse YAML"},
		{"missing name", "workers: [n1]", "name is required"},
		{"unknown type", "name: c\ntype: BAREMETAL\nworkers: [n1]", "unknown cluster type"},
		{"no nodes", "name: c", "at least one worker or control plane node"},
		{"empty id", "name: c\nworkers: ['  ']", "workers[0]: node ID must not be empty"},
		{"nested list", "name: c\nworkers:\n  - [a, b]", "expected a node ID or a node specification"},
		{"bad inline key", "name: c\ncontrol_plane:\n  - hostname: h\n    ssh_private_key: nope", "control_plane[0]: invalid ssh private key"},
		{"both keys", "name: c\nworkers:\n  - hostname: h\n    ssh_private_key: x\n    ssh_key_id: k", "mutually exclusive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := parseRequest([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDecodeRequest_SkipsValidation(t *testing.T) {
	t.Parallel()
	req, err := DecodeRequest([]byte("name: c\nfeatures:\n  vpn: true\n"))
	require.NoError(t, err)
	assert.Empty(t, req.WorkerNodes)
	assert.True(t, req.EnableVPN)

	req.WorkerNodes = model.ExistingNodes("n1")
	assert.NoError(t, ValidateRequest(req))

	_, err = parseRequest([]byte("name: c\n"))
	assert.ErrorContains(t, err, "at least one worker or control plane node is required")
}
