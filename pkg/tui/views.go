package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/orglens/orglens/pkg/gateway"
	"github.com/orglens/orglens/pkg/ranking"
	"github.com/orglens/orglens/pkg/router"
	"github.com/orglens/orglens/pkg/session"
)

func (m Model) View() string {
	title := titleStyle.Render("OrgLens · " + router.Describe(m.route).Title)
	tabs := m.renderTabs()

	var body string
	switch m.route {
	case router.RouteGraph:
		body = m.renderGraph()
	case router.RoutePeople:
		body = m.renderPeople()
	case router.RouteRisks:
		body = m.renderRisks()
	case router.RouteTrends:
		body = m.renderTrends()
	case router.RouteDashboard:
		body = m.renderDashboard()
	case router.RouteChat:
		body = m.renderChat()
	}

	status := helpStyle.Render(m.statusLine())
	hints := helpStyle.Render(m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, title, tabs, contentStyle.Render(body), status, hints)
}

func (m Model) renderTabs() string {
	rendered := make([]string, 0, len(router.All()))
	for _, r := range router.All() {
		label := router.Describe(r).TabLabel
		if r == m.route {
			rendered = append(rendered, activeTabStyle.Render(label))
		} else {
			rendered = append(rendered, inactiveTabStyle.Render(label))
		}
	}
	return lipgloss.NewStyle().MarginLeft(2).Render(
		lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
}

func (m Model) statusLine() string {
	if m.snap == nil {
		return m.cfg.ServerURL
	}
	parts := []string{
		fmt.Sprintf("%d people / %d links", m.snap.NodeCount(), m.snap.EdgeCount()),
		fmt.Sprintf("zoom %.1fx", m.cam.zoom),
	}
	if w := weightSteps[m.weightIdx]; w > 0 {
		parts = append(parts, fmt.Sprintf("weight ≥ %.2f", w))
	}
	if id, ok := m.selection.SelectedID(); ok {
		if n, err := m.snap.Node(id); err == nil {
			parts = append(parts, "selected: "+n.Name)
		}
	}
	return strings.Join(parts, "  ·  ")
}

// renderGraph plots the filtered snapshot on a cell canvas through the
// camera. The detail panel, when open, sits to the right of the canvas.
func (m Model) renderGraph() string {
	if m.loadErr != nil {
		return errorStyle.Render("load failed: " + m.loadErr.Error())
	}
	if m.loading || m.snap == nil {
		return m.spin.View() + " loading communication graph..."
	}

	cols := maxInt(30, m.width-46)
	rows := maxInt(10, m.height-12)
	if m.detail.Status() == session.DetailIdle {
		cols = maxInt(30, m.width-10)
	}

	type cell struct {
		glyph string
		style lipgloss.Style
	}
	grid := make([][]*cell, rows)
	for i := range grid {
		grid[i] = make([]*cell, cols)
	}

	sub := m.snap.FilterByWeight(weightSteps[m.weightIdx])
	selected, _ := m.selection.SelectedID()
	highlighted, _ := m.selection.HighlightedID()

	for _, n := range sub.Nodes {
		pos, ok := m.positions[n.ID]
		if !ok {
			continue
		}
		col, row, visible := m.cam.project(pos, cols, rows)
		if !visible {
			continue
		}
		c := &cell{glyph: "●", style: tierStyle(m.people.Tier(n.ID))}
		switch n.ID {
		case selected:
			c.glyph = "◉"
		case highlighted:
			c.glyph = "◎"
		}
		// Selected and highlighted nodes win cell conflicts.
		if prev := grid[row][col]; prev == nil || c.glyph != "●" {
			grid[row][col] = c
		}
	}

	var b strings.Builder
	for _, row := range grid {
		for _, c := range row {
			if c == nil {
				b.WriteByte(' ')
				continue
			}
			b.WriteString(c.style.Render(c.glyph))
		}
		b.WriteByte('\n')
	}
	canvas := canvasStyle.Render(strings.TrimRight(b.String(), "\n"))

	var header string
	if m.searching {
		header = "search: " + m.searchInput.View()
	} else if q := searchSummary(m); q != "" {
		header = dimStyle.Render(q)
	} else {
		header = dimStyle.Render("/ to search, enter to select the hit, esc to clear")
	}

	left := lipgloss.JoinVertical(lipgloss.Left, header, canvas)
	if m.detail.Status() == session.DetailIdle {
		return left
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, left, m.renderDetail())
}

func searchSummary(m Model) string {
	q := m.selection.SearchQuery()
	if q == "" {
		return ""
	}
	if id, ok := m.selection.HighlightedID(); ok {
		if n, err := m.snap.Node(id); err == nil {
			return fmt.Sprintf("search %q → %s", q, n.Name)
		}
	}
	return fmt.Sprintf("search %q → no match", q)
}

func (m Model) renderDetail() string {
	switch m.detail.Status() {
	case session.DetailLoading:
		return panelStyle.Render(m.spin.View() + " loading profile...")
	case session.DetailFailed:
		return panelStyle.Render(errorStyle.Render("profile unavailable") + "\n\n" +
			dimStyle.Render("esc to close, enter to retry"))
	case session.DetailReady:
	default:
		return ""
	}

	p := m.detail.Panel()
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n%s\n", sectionStyle.Render(p.Name), dimStyle.Render(p.Email))
	tier := ranking.Tier(p.AlertTier)
	fmt.Fprintf(&b, "tier: %s", tierStyle(tier).Render(p.AlertTier))
	if p.Since != "" {
		fmt.Fprintf(&b, "  since %s", p.Since)
	}
	b.WriteString("\n\n")

	if p.RoleSnapshot != "" {
		b.WriteString(p.RoleSnapshot + "\n\n")
	}
	if len(p.Workstreams) > 0 {
		b.WriteString(sectionStyle.Render("Workstreams") + "\n")
		for _, w := range p.Workstreams {
			fmt.Fprintf(&b, "  %-20s %s %d%%\n", w.Label, bar(w.Percent, 10), w.Percent)
		}
		b.WriteString("\n")
	}

	b.WriteString(sectionStyle.Render("Volume") + "\n")
	fmt.Fprintf(&b, "  %.1f emails/day (%.0f%% in, %.0f%% out)\n", p.EmailsPerDay, p.InPct, p.OutPct)
	fmt.Fprintf(&b, "  median response %.1fh, after hours %s\n", p.MedianResponseHrs, p.AfterHoursActivity)
	if p.VolumeDeltaPct != 0 {
		fmt.Fprintf(&b, "  volume %+.0f%% vs prior period\n", p.VolumeDeltaPct)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "%s\n  #%d of %d comparable peers\n",
		sectionStyle.Render("Peer standing"), p.PeerRank, p.PeerTotal)
	if len(p.LikelyBackups) > 0 {
		fmt.Fprintf(&b, "  likely backups: %s\n", strings.Join(p.LikelyBackups, ", "))
	}
	for _, peer := range p.ComparablePeers {
		fmt.Fprintf(&b, "  %-20s similarity %.2f\n", peer.Name, peer.SimilarityScore)
	}

	return panelStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) renderPeople() string {
	if m.loadErr != nil {
		return errorStyle.Render("load failed: " + m.loadErr.Error())
	}
	if m.loading || m.people == nil {
		return m.spin.View() + " loading people..."
	}

	dir := "↓"
	if !m.people.Descending() {
		dir = "↑"
	}
	header := dimStyle.Render(fmt.Sprintf("sort: %s %s (1-7 to change)  ·  / to filter", m.people.SortKey(), dir))
	if m.filtering {
		header = "filter: " + m.filterInput.View()
	} else if m.filterInput.Value() != "" {
		header = dimStyle.Render(fmt.Sprintf("filter %q  ·  sort: %s %s", m.filterInput.Value(), m.people.SortKey(), dir))
	}

	left := lipgloss.JoinVertical(lipgloss.Left, header, m.peopleTable.View())
	if m.detail.Status() == session.DetailIdle {
		return left
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, left, m.renderDetail())
}

func (m Model) renderRisks() string {
	if m.risksLoading {
		return m.spin.View() + " loading risk summary..."
	}
	if m.risksErr != nil {
		return errorStyle.Render("risk summary unavailable: " + m.risksErr.Error())
	}
	if m.risks == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(sectionStyle.Render("High-risk people") + "\n")
	for _, n := range m.risks.HighRiskNodes {
		tier := m.riskTiers[n.ID]
		fmt.Fprintf(&b, "  %s %-22s %5.2f  %-14s %s (impact %.0f%%)\n",
			tierStyle(tier).Render("■"), n.Name, n.RiskScore,
			n.RiskLabel, n.KeyVulnerability, n.ImpactPct)
	}

	b.WriteString("\n" + sectionStyle.Render("Structural risks") + "\n")
	for _, r := range m.risks.StructuralRisks {
		sev := tierStyle(ranking.Tier(r.Severity))
		fmt.Fprintf(&b, "  %s %s\n    %s\n", sev.Render("["+r.Severity+"]"), r.Title, dimStyle.Render(r.Description))
	}

	b.WriteString("\n" + sectionStyle.Render("Top waste sources") + "\n")
	for _, w := range m.risks.WasteOffenders {
		fmt.Fprintf(&b, "  %-22s %5.2f  %s\n", w.Name, w.WasteScore, w.MainDriver)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderTrends() string {
	if m.trendsLoading {
		return m.spin.View() + " loading trends..."
	}
	if m.trendsErr != nil {
		return errorStyle.Render("trends unavailable: " + m.trendsErr.Error())
	}
	if m.trends == nil {
		return ""
	}

	section := func(title string, items []gateway.TrendItem) string {
		var b strings.Builder
		b.WriteString(sectionStyle.Render(title) + "\n")
		if len(items) == 0 {
			b.WriteString(dimStyle.Render("  nothing notable") + "\n")
		}
		for _, it := range items {
			delta := fmt.Sprintf("%+.0f%%", it.DeltaPct)
			style := tierStyles[ranking.TierHealthy]
			if it.DeltaPct < 0 {
				style = tierStyles[ranking.TierCritical]
			}
			fmt.Fprintf(&b, "  %-22s %-18s %8.2f  %s\n", it.PersonName, it.Metric, it.Value, style.Render(delta))
		}
		return b.String()
	}

	return strings.TrimRight(
		section("Structural shifts", m.trends.Structural)+"\n"+
			section("Communication shifts", m.trends.Communication)+"\n"+
			section("Emerging topics", m.trends.Emerging), "\n")
}

func (m Model) renderDashboard() string {
	if m.dashboardLoading {
		return m.spin.View() + " loading health overview..."
	}
	if m.dashboardErr != nil {
		return errorStyle.Render("overview unavailable: " + m.dashboardErr.Error())
	}
	if m.dashboard == nil {
		return ""
	}

	h := m.dashboard.Health
	health := boxStyle.Render(fmt.Sprintf(
		"%s\n\nscore  %.0f / 100\ngrade  %s",
		sectionStyle.Render("Org health"), h.HealthScore, h.Grade))

	sub := boxStyle.Render(fmt.Sprintf(
		"%s\n\nconnectivity  %s\nbottlenecks   %s\nsilos         %s\nefficiency    %s",
		sectionStyle.Render("Components"),
		bar(int(h.SubScores.Connectivity), 10),
		bar(int(h.SubScores.BottleneckRisk), 10),
		bar(int(h.SubScores.SiloScore), 10),
		bar(int(h.SubScores.Efficiency), 10)))

	stats := boxStyle.Render(fmt.Sprintf(
		"%s\n\n%d people, %d links\ndensity     %.3f\nclustering  %.3f\ncommunities %d (modularity %.2f)",
		sectionStyle.Render("Graph"),
		h.Stats.NodeCount, h.Stats.EdgeCount,
		h.Stats.Density, h.Stats.ClusteringCoefficient,
		h.Stats.CommunitiesCount, h.Stats.Modularity))

	var sb strings.Builder
	sb.WriteString(sectionStyle.Render("Sentiment") + "\n\n")
	for k, v := range m.dashboard.Sentiment {
		fmt.Fprintf(&sb, "%-12s %+.2f\n", k, v)
	}
	sentiment := boxStyle.Render(strings.TrimRight(sb.String(), "\n"))

	rows := []string{
		lipgloss.JoinHorizontal(lipgloss.Top, health, sub),
		lipgloss.JoinHorizontal(lipgloss.Top, stats, sentiment),
	}
	if row := lipgloss.JoinHorizontal(lipgloss.Top, m.renderConnectors(), m.renderCommunities()); strings.TrimSpace(row) != "" {
		rows = append(rows, row)
	}
	if row := lipgloss.JoinHorizontal(lipgloss.Top, m.renderCriticality(), m.renderWaste()); strings.TrimSpace(row) != "" {
		rows = append(rows, row)
	}
	boxes := lipgloss.JoinVertical(lipgloss.Left, rows...)
	if m.report == nil || len(m.report.Report) == 0 {
		return boxes
	}

	width := maxInt(40, m.width-12)
	var rb strings.Builder
	for _, sec := range m.report.Report {
		rb.WriteString(sectionStyle.Render(sec.Title) + "\n")
		rb.WriteString(lipgloss.NewStyle().Width(width).Render(sec.Content) + "\n\n")
	}
	return lipgloss.JoinVertical(lipgloss.Left, boxes, "", strings.TrimRight(rb.String(), "\n"))
}

// topN caps the dashboard ranking boxes.
const topN = 5

func (m Model) renderConnectors() string {
	if m.centrality == nil || len(m.centrality.Rankings) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Top connectors ("+m.centrality.Type+")") + "\n\n")
	for i, e := range m.centrality.Rankings {
		if i == topN {
			break
		}
		fmt.Fprintf(&b, "%-22s %.4f\n", e.Name, e.Score)
	}
	return boxStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) renderCommunities() string {
	if m.communities == nil || len(m.communities.Communities) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Communities") + "\n\n")
	fmt.Fprintf(&b, "%d groups, modularity %.2f\n", len(m.communities.Communities), m.communities.Modularity)
	for i, c := range m.communities.Communities {
		if i == topN {
			break
		}
		fmt.Fprintf(&b, "#%d  %d members, density %.2f\n", c.ID, c.Size, c.Density)
	}
	if len(m.communities.BridgeNodes) > 0 {
		fmt.Fprintf(&b, "bridges: %s\n", strings.Join(m.communities.BridgeNodes, ", "))
	}
	return boxStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) renderCriticality() string {
	if m.criticality == nil || len(m.criticality.Rankings) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Single points of failure") + "\n\n")
	for i, e := range m.criticality.Rankings {
		if i == topN {
			break
		}
		fmt.Fprintf(&b, "%-22s %.2f  impact %.0f%%\n", e.Name, e.DMSScore, e.ImpactPct)
	}
	return boxStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) renderWaste() string {
	if m.waste == nil || len(m.waste.People) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Communication waste") + "\n\n")
	for i, e := range m.waste.People {
		if i == topN {
			break
		}
		fmt.Fprintf(&b, "%-22s %.2f  broadcast %.0f%%\n", e.Name, e.WasteScore, e.BroadcastRatio*100)
	}
	return boxStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) renderChat() string {
	m.syncTranscript()
	prompt := "> " + m.chatInput.View()
	if m.chat.Streaming() {
		prompt = m.spin.View() + " assistant is replying..."
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.transcript.View(), "", prompt)
}

// syncTranscript rebuilds the viewport content from the conversation and
// keeps it scrolled to the newest turn.
func (m *Model) syncTranscript() {
	turns := m.chat.Turns()
	if len(turns) == 0 {
		m.transcript.SetContent(dimStyle.Render("Ask about bottlenecks, risks, or anyone in the graph."))
		return
	}

	width := maxInt(20, m.transcript.Width-4)
	var b strings.Builder
	for i, t := range turns {
		if i > 0 {
			b.WriteString("\n\n")
		}
		switch t.Role {
		case session.RoleUser:
			b.WriteString(userTurnStyle.Render("You") + "\n")
			b.WriteString(lipgloss.NewStyle().Width(width).Render(t.Content))
		default:
			b.WriteString(assistantTurnStyle.Render("Assistant") + "\n")
			content := t.Content
			if content == "" {
				content = m.spin.View()
			}
			b.WriteString(lipgloss.NewStyle().Width(width).Render(content))
		}
	}
	m.transcript.SetContent(b.String())
	m.transcript.GotoBottom()
}

func bar(pct, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := pct * width / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
