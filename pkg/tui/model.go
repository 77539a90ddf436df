// Package tui is the terminal shell over the interaction layer. It owns
// the bubbletea program: all state mutation happens in Update on the
// program goroutine, and every asynchronous result arrives as a message
// carrying the ticket or handle it was issued with.
package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/orglens/orglens/pkg/config"
	"github.com/orglens/orglens/pkg/gateway"
	"github.com/orglens/orglens/pkg/layout"
	"github.com/orglens/orglens/pkg/logging"
	"github.com/orglens/orglens/pkg/metrics"
	"github.com/orglens/orglens/pkg/ranking"
	"github.com/orglens/orglens/pkg/router"
	"github.com/orglens/orglens/pkg/session"
	"github.com/orglens/orglens/pkg/store"
)

// weightSteps are the min edge-weight filter settings the w key cycles
// through.
var weightSteps = []float64{0, 0.25, 0.5, 0.75}

// Model is the bubbletea application model.
type Model struct {
	cfg  *config.Config
	gw   Backend
	log  logging.Logger
	reg  *metrics.Registry
	keys keyMap
	help help.Model

	route  router.Route
	width  int
	height int

	loading bool
	loadErr error
	snap    *store.Snapshot

	selection *session.Selection
	detail    session.Detail
	chat      *session.Chat
	deepLink  string

	positions map[string]layout.Position
	cam       camera
	weightIdx int

	people       *ranking.View
	peopleTable  table.Model
	peopleRowIDs []string
	filterInput  textinput.Model
	filtering    bool

	searchInput textinput.Model
	searching   bool

	chatInput  textinput.Model
	transcript viewport.Model
	spin       spinner.Model

	risks        *gateway.RisksPayload
	riskTiers    map[string]ranking.Tier
	risksErr     error
	risksLoading bool

	trends        *gateway.TrendsPayload
	trendsErr     error
	trendsLoading bool

	dashboard        *gateway.OverviewPayload
	centrality       *gateway.CentralityPayload
	communities      *gateway.CommunitiesPayload
	criticality      *gateway.CriticalityPayload
	waste            *gateway.WastePayload
	report           *gateway.ReportPayload
	dashboardErr     error
	dashboardLoading bool
}

// New builds the model. start is the initial route and focus an optional
// node id to select once the snapshot has loaded.
func New(cfg *config.Config, gw Backend, log logging.Logger, reg *metrics.Registry, start router.Route, focus string) Model {
	si := textinput.New()
	si.Placeholder = "type a name"
	si.CharLimit = 64
	si.Width = 32

	fi := textinput.New()
	fi.Placeholder = "filter by name or email"
	fi.CharLimit = 64
	fi.Width = 32

	ci := textinput.New()
	ci.Placeholder = "ask about the organization"
	ci.CharLimit = 512
	ci.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF00FF"))

	columns := []table.Column{
		{Title: "Name", Width: 22},
		{Title: "Email", Width: 26},
		{Title: "Tier", Width: 8},
		{Title: "Criticality", Width: 11},
		{Title: "Waste", Width: 7},
		{Title: "Sent", Width: 6},
		{Title: "Recv", Width: 6},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#00FFFF")).
		BorderBottom(true).
		Bold(true)
	ts.Selected = ts.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#FF00FF")).
		Bold(true)
	t.SetStyles(ts)

	m := Model{
		cfg:         cfg,
		gw:          gw,
		log:         log.With(logging.Component("tui")),
		reg:         reg,
		keys:        keys,
		help:        help.New(),
		route:       start,
		loading:     true,
		chat:        session.NewChat(cfg.ChatFallback),
		deepLink:    focus,
		cam:         newCamera(),
		peopleTable: t,
		filterInput: fi,
		searchInput: si,
		chatInput:   ci,
		transcript:  viewport.New(80, 20),
		spin:        sp,
	}

	// The initial route's data fetch is issued from Init; flags are set
	// here so a tab round-trip does not double-fetch.
	switch start {
	case router.RouteRisks:
		m.risksLoading = true
	case router.RouteTrends:
		m.trendsLoading = true
	case router.RouteDashboard:
		m.dashboardLoading = true
	}
	return m
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{loadSnapshotCmd(m.gw), m.spin.Tick}
	switch m.route {
	case router.RouteRisks:
		cmds = append(cmds, fetchRisksCmd(m.gw))
	case router.RouteTrends:
		cmds = append(cmds, fetchTrendsCmd(m.gw))
	case router.RouteDashboard:
		cmds = append(cmds, fetchDashboardCmd(m.gw))
	case router.RouteChat:
		cmds = append(cmds, m.chatInput.Focus())
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.transcript.Width = maxInt(20, msg.Width-8)
		m.transcript.Height = maxInt(5, msg.Height-12)
		m.peopleTable.SetHeight(maxInt(6, msg.Height-14))
		m.syncTranscript()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case snapshotMsg:
		return m.applySnapshot(msg)

	case debounceMsg:
		if m.selection == nil {
			return m, nil
		}
		cam, ok := m.selection.ResolveSearch(msg.ticket)
		if !ok {
			return m, nil
		}
		m.reg.DebounceFires.Inc()
		return m.focusNode(cam)

	case detailMsg:
		if !m.detail.Commit(msg.ticket, msg.panel, msg.err) {
			m.reg.RecordStaleDrop("detail")
			return m, nil
		}
		if msg.err != nil {
			m.log.Warn("panel fetch failed", logging.NodeID(m.detail.NodeID()), logging.Error(msg.err))
		}
		return m, nil

	case chatOpenedMsg:
		if msg.err != nil {
			m.chat.Fail(msg.handle)
			m.syncTranscript()
			m.log.Warn("chat stream failed to open", logging.Error(msg.err))
			return m, nil
		}
		return m, pumpChatCmd(msg.stream, msg.handle)

	case chatChunkMsg:
		if err := m.chat.Append(msg.handle, msg.text); err != nil {
			m.reg.RecordStaleDrop("chat")
			msg.stream.Close()
			return m, nil
		}
		m.syncTranscript()
		return m, pumpChatCmd(msg.stream, msg.handle)

	case chatDoneMsg:
		msg.stream.Close()
		m.chat.Finish(msg.handle)
		m.syncTranscript()
		return m, nil

	case chatErrMsg:
		msg.stream.Close()
		m.chat.Fail(msg.handle)
		m.syncTranscript()
		m.log.Warn("chat stream interrupted", logging.Error(msg.err))
		return m, nil

	case risksMsg:
		m.risksLoading = false
		m.risks = msg.payload
		m.risksErr = msg.err
		if msg.err == nil {
			m.riskTiers = riskTiers(msg.payload, m.cfg.RiskTiers)
		}
		return m, nil

	case trendsMsg:
		m.trendsLoading = false
		m.trends = msg.payload
		m.trendsErr = msg.err
		return m, nil

	case dashboardMsg:
		m.dashboardLoading = false
		m.dashboard = msg.payload
		m.centrality = msg.centrality
		m.communities = msg.communities
		m.criticality = msg.criticality
		m.waste = msg.waste
		m.report = msg.report
		m.dashboardErr = msg.err
		if msg.sectionErr != nil {
			m.log.Debug("dashboard sections unavailable", logging.Error(msg.sectionErr))
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) applySnapshot(msg snapshotMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	if msg.err != nil {
		m.loadErr = msg.err
		m.log.Error("initial load failed", logging.Error(msg.err))
		return m, nil
	}

	m.snap = msg.snap
	m.selection = session.NewSelection(msg.snap)
	m.people = ranking.NewView(msg.people, ranking.Cuts{
		Critical: m.cfg.PeopleTiers.Critical,
		Warning:  m.cfg.PeopleTiers.Warning,
	})

	fd := layout.NewForceDirected(&layout.Config{
		Width:      1,
		Height:     1,
		Iterations: 80,
		Padding:    0.05,
		Seed:       42,
	})
	m.positions = fd.Compute(msg.snap.Nodes(), msg.snap.Edges())

	m.reg.SetSnapshotSize(msg.snap.NodeCount(), msg.snap.EdgeCount())
	m.refreshPeopleRows()
	m.log.Info("snapshot loaded",
		logging.Count(msg.snap.NodeCount()),
		logging.Int("edges", msg.snap.EdgeCount()))

	if m.deepLink != "" {
		target := m.deepLink
		m.deepLink = ""
		cam, ok := m.selection.ApplyDeepLink(target)
		if !ok {
			m.log.Warn("deep link target not applied", logging.NodeID(target))
			return m, nil
		}
		m.reg.DeepLinkApplied.Inc()
		return m.focusNode(cam)
	}
	return m, nil
}

// focusNode centers the camera per the command's kind. A direct selection
// also opens the detail panel for the node.
func (m Model) focusNode(cmd session.CameraCmd) (tea.Model, tea.Cmd) {
	zoom := m.cfg.SearchZoom
	if cmd.Kind == session.CenterSelect {
		zoom = m.cfg.SelectZoom
	}
	if pos, ok := m.positions[cmd.NodeID]; ok {
		m.cam.centerOn(pos, zoom)
	}

	if cmd.Kind != session.CenterSelect {
		return m, nil
	}
	m.reg.SelectionsTotal.Inc()
	t := m.detail.Open(cmd.NodeID)
	return m, fetchDetailCmd(m.gw, cmd.NodeID, t)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		return m.handleSearchKey(msg)
	}
	if m.filtering {
		return m.handleFilterKey(msg)
	}
	if m.route == router.RouteChat {
		return m.handleChatKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Tab):
		return m.setRoute(router.Next(m.route))
	case key.Matches(msg, m.keys.ShiftTab):
		return m.setRoute(router.Prev(m.route))
	}

	switch m.route {
	case router.RouteGraph:
		return m.handleGraphKey(msg)
	case router.RoutePeople:
		return m.handlePeopleKey(msg)
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.searching = false
		m.searchInput.Blur()
		m.selection.CancelSearch()
		return m, nil
	case "enter":
		m.searching = false
		m.searchInput.Blur()
		m.selection.CancelSearch()
		if id, ok := m.selection.HighlightedID(); ok {
			return m.selectNode(id)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	t := m.selection.SetSearchQuery(m.searchInput.Value())
	return m, tea.Batch(cmd, debounceCmd(m.cfg.SearchDebounce, t))
}

func (m Model) handleGraphKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.snap == nil {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		return m, m.searchInput.Focus()
	case key.Matches(msg, m.keys.Enter):
		if id, ok := m.selection.HighlightedID(); ok {
			return m.selectNode(id)
		}
		return m, nil
	case key.Matches(msg, m.keys.Escape):
		m.selection.ClearSelection()
		m.detail.Close()
		return m, nil
	case key.Matches(msg, m.keys.Up):
		m.cam.pan(0, -panStep)
	case key.Matches(msg, m.keys.Down):
		m.cam.pan(0, panStep)
	case key.Matches(msg, m.keys.Left):
		m.cam.pan(-panStep, 0)
	case key.Matches(msg, m.keys.Right):
		m.cam.pan(panStep, 0)
	case key.Matches(msg, m.keys.ZoomIn):
		m.cam.zoomBy(1.25)
	case key.Matches(msg, m.keys.ZoomOut):
		m.cam.zoomBy(0.8)
	case key.Matches(msg, m.keys.Weight):
		m.weightIdx = (m.weightIdx + 1) % len(weightSteps)
	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		return m, loadSnapshotCmd(m.gw)
	}
	return m, nil
}

func (m Model) handlePeopleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.people == nil {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Search):
		m.filtering = true
		return m, m.filterInput.Focus()
	case key.Matches(msg, m.keys.Enter):
		idx := m.peopleTable.Cursor()
		if idx < 0 || idx >= len(m.peopleRowIDs) {
			return m, nil
		}
		return m.selectNode(m.peopleRowIDs[idx])
	case key.Matches(msg, m.keys.Escape):
		m.selection.ClearSelection()
		m.detail.Close()
		return m, nil
	}

	if k, ok := sortKeyFor(msg.String()); ok {
		m.people.SetSort(k)
		m.refreshPeopleRows()
		return m, nil
	}

	var cmd tea.Cmd
	m.peopleTable, cmd = m.peopleTable.Update(msg)
	return m, cmd
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "enter":
		m.filtering = false
		m.filterInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.people.SetFilter(m.filterInput.Value())
	m.refreshPeopleRows()
	return m, cmd
}

func (m Model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "tab":
		return m.setRoute(router.Next(m.route))
	case "shift+tab":
		return m.setRoute(router.Prev(m.route))
	case "enter":
		text := m.chatInput.Value()
		handle, ok := m.chat.Send(text)
		if !ok {
			return m, nil
		}
		history := m.chat.History(handle)
		m.chatInput.Reset()
		m.syncTranscript()
		return m, openChatCmd(m.gw, text, history, handle)
	}

	var cmd tea.Cmd
	m.chatInput, cmd = m.chatInput.Update(msg)
	return m, cmd
}

// setRoute switches the active view. Transient input modes are torn down;
// a pending search debounce dies with its view.
func (m Model) setRoute(r router.Route) (tea.Model, tea.Cmd) {
	if m.searching {
		m.searching = false
		m.searchInput.Blur()
		if m.selection != nil {
			m.selection.CancelSearch()
		}
	}
	m.filtering = false
	m.filterInput.Blur()
	m.chatInput.Blur()

	m.route = r

	var cmds []tea.Cmd
	switch r {
	case router.RouteChat:
		cmds = append(cmds, m.chatInput.Focus())
	case router.RouteRisks:
		if m.risks == nil && !m.risksLoading {
			m.risksLoading = true
			cmds = append(cmds, fetchRisksCmd(m.gw))
		}
	case router.RouteTrends:
		if m.trends == nil && !m.trendsLoading {
			m.trendsLoading = true
			cmds = append(cmds, fetchTrendsCmd(m.gw))
		}
	case router.RouteDashboard:
		if m.dashboard == nil && !m.dashboardLoading {
			m.dashboardLoading = true
			cmds = append(cmds, fetchDashboardCmd(m.gw))
		}
	}
	return m, tea.Batch(cmds...)
}

func (m Model) selectNode(id string) (tea.Model, tea.Cmd) {
	cam, ok := m.selection.SelectNode(id)
	if !ok {
		return m, nil
	}
	return m.focusNode(cam)
}

func (m *Model) refreshPeopleRows() {
	people := m.people.Rows()
	rows := make([]table.Row, 0, len(people))
	ids := make([]string, 0, len(people))
	for _, p := range people {
		tier := m.people.Tier(p.ID)
		rows = append(rows, table.Row{
			p.Name,
			p.Email,
			string(tier),
			fmt.Sprintf("%.3f", p.DMSScore),
			fmt.Sprintf("%.2f", p.WasteScore),
			strconv.Itoa(p.TotalSent),
			strconv.Itoa(p.TotalReceived),
		})
		ids = append(ids, p.ID)
	}
	m.peopleTable.SetRows(rows)
	m.peopleRowIDs = ids
	if m.peopleTable.Cursor() >= len(rows) {
		m.peopleTable.SetCursor(0)
	}
}

func sortKeyFor(s string) (ranking.SortKey, bool) {
	switch s {
	case "1":
		return ranking.SortName, true
	case "2":
		return ranking.SortCriticality, true
	case "3":
		return ranking.SortWaste, true
	case "4":
		return ranking.SortPageRank, true
	case "5":
		return ranking.SortBetweenness, true
	case "6":
		return ranking.SortSent, true
	case "7":
		return ranking.SortReceived, true
	}
	return 0, false
}

// riskTiers buckets the high-risk listing with the risk view's cut points,
// which are deliberately tighter than the people view's.
func riskTiers(p *gateway.RisksPayload, cuts config.TierCuts) map[string]ranking.Tier {
	entries := make([]ranking.Scored, len(p.HighRiskNodes))
	for i, n := range p.HighRiskNodes {
		entries[i] = ranking.Scored{ID: n.ID, Score: n.RiskScore}
	}
	return ranking.AssignTiers(entries, ranking.Cuts{Critical: cuts.Critical, Warning: cuts.Warning})
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
