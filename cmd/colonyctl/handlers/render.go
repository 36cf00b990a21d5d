package handlers

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/imamik/colonyctl/internal/model"
)

var (
	colorGreen  = lipgloss.Color("#22c55e")
	colorRed    = lipgloss.Color("#ef4444")
	colorYellow = lipgloss.Color("#eab308")
	colorBlue   = lipgloss.Color("#3b82f6")
	colorDim    = lipgloss.Color("#6b7280")
	colorWhite  = lipgloss.Color("#f9fafb")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBlue)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	okStyle = lipgloss.NewStyle().
		Foreground(colorGreen)

	warnStyle = lipgloss.NewStyle().
			Foreground(colorYellow)

	errStyle = lipgloss.NewStyle().
			Foreground(colorRed)
)

func (p *printer) render(style lipgloss.Style, s string) string {
	if !p.styled {
		return s
	}
	return style.Render(s)
}

func (p *printer) clusterStatus(status model.ClusterStatus, width int) string {
	text := fmt.Sprintf("%-*s", width, status)
	switch status {
	case model.ClusterStatusReady:
		return p.render(okStyle, text)
	case model.ClusterStatusFailed:
		return p.render(errStyle, text)
	case model.ClusterStatusPending, model.ClusterStatusDeploying:
		return p.render(warnStyle, text)
	default:
		return p.render(dimStyle, text)
	}
}

func (p *printer) title(b *strings.Builder, text string) {
	b.WriteString(p.render(titleStyle, text))
	b.WriteString("\n")
}

func (p *printer) section(b *strings.Builder, text string) {
	b.WriteString("\n")
	b.WriteString(p.render(sectionStyle, text))
	b.WriteString("\n")
	b.WriteString(p.render(dimStyle, strings.Repeat("─", 50)))
	b.WriteString("\n")
}

func (p *printer) renderClusters(clusters []model.Cluster) string {
	if len(clusters) == 0 {
		return "No clusters found.\n"
	}
	var b strings.Builder
	b.WriteString(p.render(dimStyle, fmt.Sprintf("%-38s %-24s %-10s %-8s %s", "ID", "NAME", "STATUS", "TYPE", "COLONY")))
	b.WriteString("\n")
	for _, c := range clusters {
		fmt.Fprintf(&b, "%-38s %-24s %s %-8s %s\n", c.ID, c.Name, p.clusterStatus(c.Status, 10), c.Type, orDash(c.ColonyID))
	}
	return b.String()
}

func (p *printer) renderCluster(c *model.Cluster) string {
	var b strings.Builder
	p.title(&b, fmt.Sprintf("Cluster %s", c.Name))
	fmt.Fprintf(&b, "  ID:      %s\n", c.ID)
	fmt.Fprintf(&b, "  Status:  %s\n", p.clusterStatus(c.Status, 0))
	fmt.Fprintf(&b, "  Type:    %s\n", c.Type)
	fmt.Fprintf(&b, "  Colony:  %s\n", orDash(c.ColonyID))
	if !c.CreatedAt.IsZero() {
		fmt.Fprintf(&b, "  Created: %s\n", c.CreatedAt.Format("2006-01-02 15:04:05 MST"))
	}
	if c.ToBeDeletedAt != nil {
		fmt.Fprintf(&b, "  Expires: %s\n", c.ToBeDeletedAt.Format("2006-01-02 15:04:05 MST"))
	}
	return b.String()
}

func (p *printer) renderNodes(b *strings.Builder, nodes []model.AssignedClusterNode) {
	p.section(b, fmt.Sprintf("Nodes (%d)", len(nodes)))
	if len(nodes) == 0 {
		b.WriteString("  none\n")
		return
	}
	b.WriteString(p.render(dimStyle, fmt.Sprintf("  %-24s %-28s %-14s %-16s %s", "ID", "HOSTNAME", "ROLE", "ENDPOINT", "GPUS")))
	b.WriteString("\n")
	for _, n := range nodes {
		fmt.Fprintf(b, "  %-24s %-28s %-14s %-16s %s\n", n.ID, n.Hostname, n.Role, orDash(n.Endpoint), gpuSummary(n.FreeResources))
	}
}

func (p *printer) renderClusterWithNodes(c *model.ClusterWithNodes, issues []model.NodeLoadingIssue) string {
	var b strings.Builder
	b.WriteString(p.renderCluster(&c.Cluster))
	p.renderNodes(&b, c.Nodes)
	if len(issues) > 0 {
		p.section(&b, fmt.Sprintf("Unresolved members (%d)", len(issues)))
		for _, issue := range issues {
			fmt.Fprintf(&b, "  %s %s: %s\n", p.render(warnStyle, "!"), issue.NodeID, issue.Reason)
		}
	}
	return b.String()
}

func (p *printer) renderIssues(b *strings.Builder, issues []model.NodeValidationIssue) {
	if len(issues) == 0 {
		return
	}
	p.section(b, fmt.Sprintf("Issues (%d)", len(issues)))
	for _, issue := range issues {
		fmt.Fprintf(b, "  %s %s: %s\n", p.render(errStyle, "✗"), issue.Subject(), issue.Reason)
	}
}

func (p *printer) renderDeployResult(result *model.DeployClusterResult) string {
	var b strings.Builder
	switch {
	case result.IsSuccess():
		b.WriteString(p.render(okStyle, "✓ Cluster deployed"))
	case result.IsPartiallySuccessful():
		b.WriteString(p.render(warnStyle, "! Cluster deployed with issues"))
	default:
		b.WriteString(p.render(errStyle, "✗ No cluster deployed: no requested node could be used"))
	}
	b.WriteString("\n\n")

	if c := result.DeployedCluster; c != nil {
		b.WriteString(p.renderCluster(&c.Cluster))
		p.renderNodes(&b, c.Nodes)
	}
	p.renderIssues(&b, result.Issues)
	return b.String()
}

func (p *printer) renderScaleResult(verb string, clusterID string, result *model.ClusterScaleResult) string {
	var b strings.Builder
	switch {
	case result.IsSuccess():
		b.WriteString(p.render(okStyle, fmt.Sprintf("✓ %s %d node(s) on cluster %s", verb, len(result.Nodes), clusterID)))
	case result.IsPartiallySuccessful():
		b.WriteString(p.render(warnStyle, fmt.Sprintf("! %s %d node(s) on cluster %s with issues", verb, len(result.Nodes), clusterID)))
	default:
		b.WriteString(p.render(errStyle, fmt.Sprintf("✗ No nodes changed on cluster %s", clusterID)))
	}
	b.WriteString("\n")

	for _, ref := range result.Nodes {
		if ref.Role != "" {
			fmt.Fprintf(&b, "  %s (%s)\n", ref.NodeID, ref.Role)
			continue
		}
		fmt.Fprintf(&b, "  %s\n", ref.NodeID)
	}
	p.renderIssues(&b, result.Issues)
	return b.String()
}

func (p *printer) renderResources(clusterID string, resources []model.ClusterNodeResources) string {
	var b strings.Builder
	p.title(&b, fmt.Sprintf("Resources of cluster %s", clusterID))
	if len(resources) == 0 {
		b.WriteString("  no nodes\n")
		return b.String()
	}
	b.WriteString(p.render(dimStyle, fmt.Sprintf("  %-24s %-14s %-18s %-18s %s", "NODE", "ROLE", "GPUS (FREE/USED)", "CPU (FREE/USED)", "MEMORY GB (FREE/USED)")))
	b.WriteString("\n")

	var free, used model.Resources
	for _, r := range resources {
		fmt.Fprintf(&b, "  %-24s %-14s %-18s %-18s %d/%d\n",
			r.NodeID, r.Role,
			fmt.Sprintf("%d/%d", r.FreeResources.GPUCount, r.OccupiedResources.GPUCount),
			fmt.Sprintf("%d/%d", r.FreeResources.CPUCores, r.OccupiedResources.CPUCores),
			r.FreeResources.MemoryGB, r.OccupiedResources.MemoryGB,
		)
		free = addResources(free, r.FreeResources)
		used = addResources(used, r.OccupiedResources)
	}
	b.WriteString(p.render(dimStyle, "  "+strings.Repeat("─", 50)))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %-24s %-14s %-18s %-18s %d/%d\n", "Total", "",
		fmt.Sprintf("%d/%d", free.GPUCount, used.GPUCount),
		fmt.Sprintf("%d/%d", free.CPUCores, used.CPUCores),
		free.MemoryGB, used.MemoryGB,
	)
	return b.String()
}

func addResources(a, b model.Resources) model.Resources {
	a.GPUCount += b.GPUCount
	a.CPUCores += b.CPUCores
	a.MemoryGB += b.MemoryGB
	a.StorageGB += b.StorageGB
	return a
}

func gpuSummary(r model.Resources) string {
	if r.GPUCount == 0 {
		return "-"
	}
	if r.GPUType == "" {
		return fmt.Sprintf("%d", r.GPUCount)
	}
	return fmt.Sprintf("%dx %s", r.GPUCount, r.GPUType)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
