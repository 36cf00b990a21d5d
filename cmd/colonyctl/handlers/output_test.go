package handlers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/colonyctl/internal/model"
)

func TestNewPrinter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format  string
		want    string
		wantErr bool
	}{
		{format: "", want: OutputText},
		{format: OutputText, want: OutputText},
		{format: OutputJSON, want: OutputJSON},
		{format: OutputYAML, want: OutputYAML},
		{format: "table", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			t.Parallel()
			p, err := newPrinter(&bytes.Buffer{}, tt.format)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.format)
			assert.False(t, p.styled, "buffers are never styled")
		})
	}
}

func TestPrinter_Structured(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p, err := newPrinter(&buf, OutputYAML)
	require.NoError(t, err)

	require.NoError(t, p.emit(map[string]string{"url": "https://x"}, func() string { return "text" }))
	assert.Equal(t, "url: https://x\n", buf.String())
}

func TestRenderClusters(t *testing.T) {
	t.Parallel()
	p := &printer{format: OutputText}

	assert.Equal(t, "No clusters found.\n", p.renderClusters(nil))

	out := p.renderClusters([]model.Cluster{
		{ID: "c1", Name: "training", Status: model.ClusterStatusReady, Type: model.ClusterTypeRemote},
		{ID: "c2", Name: "inference", Status: model.ClusterStatusFailed, Type: model.ClusterTypeCloud, ColonyID: "colony-1"},
	})
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "STATUS")
	assert.Contains(t, lines[1], "training")
	assert.True(t, strings.HasSuffix(lines[1], " -"), "missing colony renders as a dash")
	assert.Contains(t, lines[2], "colony-1")
}

func TestRenderDeployResult(t *testing.T) {
	t.Parallel()
	p := &printer{format: OutputText}
	expires := time.Date(2026, 11, 1, 12, 0, 0, 0, time.UTC)

	partial := &model.DeployClusterResult{
		DeployedCluster: &model.ClusterWithNodes{
			Cluster: model.Cluster{ID: "c1", Name: "training", Status: model.ClusterStatusReady, ToBeDeletedAt: &expires},
			Nodes: []model.AssignedClusterNode{
				{ClusterNode: model.ClusterNode{ID: "n1", Hostname: "gpu-1", FreeResources: model.Resources{GPUCount: 8, GPUType: "H100"}}, Role: model.RoleWorker},
			},
		},
		Issues: []model.NodeValidationIssue{{NodeID: "n2", Reason: "node n2 is not available (status: FAILED)"}},
	}
	out := p.renderDeployResult(partial)
	assert.Contains(t, out, "Cluster deployed with issues")
	assert.Contains(t, out, "8x H100")
	assert.Contains(t, out, "Expires: 2026-11-01 12:00:00 UTC")
	assert.Contains(t, out, "n2: node n2 is not available (status: FAILED)")

	failed := &model.DeployClusterResult{
		Issues: []model.NodeValidationIssue{{NodeSpecRepr: "root@gpu-9", Reason: "missing endpoint"}},
	}
	out = p.renderDeployResult(failed)
	assert.Contains(t, out, "No cluster deployed")
	assert.Contains(t, out, "root@gpu-9: missing endpoint")
	assert.NotContains(t, out, "Nodes (")
}

func TestRenderScaleResult(t *testing.T) {
	t.Parallel()
	p := &printer{format: OutputText}

	out := p.renderScaleResult("Added", "c1", &model.ClusterScaleResult{
		Nodes: []model.NodeRef{{NodeID: "n1", Role: model.RoleControlPlane}, {NodeID: "n2"}},
	})
	assert.Contains(t, out, "Added 2 node(s) on cluster c1")
	assert.Contains(t, out, "n1 (CONTROL_PLANE)")
	assert.Contains(t, out, "  n2\n")
}
