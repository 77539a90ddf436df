package tui

import (
	"context"
	"errors"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/orglens/orglens/pkg/flight"
	"github.com/orglens/orglens/pkg/gateway"
	"github.com/orglens/orglens/pkg/session"
	"github.com/orglens/orglens/pkg/store"
)

// Backend is the slice of the gateway client the shell consumes.
type Backend interface {
	store.Loader
	PersonPanel(ctx context.Context, id string) (*gateway.PersonPanel, error)
	Overview(ctx context.Context) (*gateway.OverviewPayload, error)
	Centrality(ctx context.Context, kind string) (*gateway.CentralityPayload, error)
	Communities(ctx context.Context) (*gateway.CommunitiesPayload, error)
	Criticality(ctx context.Context) (*gateway.CriticalityPayload, error)
	Waste(ctx context.Context) (*gateway.WastePayload, error)
	HealthReport(ctx context.Context) (*gateway.ReportPayload, error)
	Risks(ctx context.Context) (*gateway.RisksPayload, error)
	Trends(ctx context.Context) (*gateway.TrendsPayload, error)
	ChatStream(ctx context.Context, message string, history []gateway.ChatMessage) (*gateway.Stream, error)
}

func loadSnapshotCmd(gw Backend) tea.Cmd {
	return func() tea.Msg {
		snap, people, err := store.Load(context.Background(), gw)
		return snapshotMsg{snap: snap, people: people, err: err}
	}
}

// debounceCmd delivers the ticket after the quiet period. Every keystroke
// schedules a new timer with a fresh ticket; the controller ignores all but
// the latest, so at most one timer's delivery has any effect.
func debounceCmd(d time.Duration, t flight.Ticket) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return debounceMsg{ticket: t}
	})
}

func fetchDetailCmd(gw Backend, id string, t flight.Ticket) tea.Cmd {
	return func() tea.Msg {
		panel, err := gw.PersonPanel(context.Background(), id)
		return detailMsg{ticket: t, panel: panel, err: err}
	}
}

func openChatCmd(gw Backend, text string, history []gateway.ChatMessage, h session.TurnHandle) tea.Cmd {
	return func() tea.Msg {
		stream, err := gw.ChatStream(context.Background(), text, history)
		return chatOpenedMsg{handle: h, stream: stream, err: err}
	}
}

// pumpChatCmd reads one chunk. The update loop re-issues the pump after
// applying each chunk, so chunks land strictly in receipt order and only
// one read is outstanding at a time.
func pumpChatCmd(stream *gateway.Stream, h session.TurnHandle) tea.Cmd {
	return func() tea.Msg {
		text, err := stream.Next()
		if errors.Is(err, io.EOF) {
			return chatDoneMsg{handle: h, stream: stream}
		}
		if err != nil {
			return chatErrMsg{handle: h, stream: stream, err: err}
		}
		return chatChunkMsg{handle: h, stream: stream, text: text}
	}
}

func fetchRisksCmd(gw Backend) tea.Cmd {
	return func() tea.Msg {
		payload, err := gw.Risks(context.Background())
		return risksMsg{payload: payload, err: err}
	}
}

func fetchTrendsCmd(gw Backend) tea.Cmd {
	return func() tea.Msg {
		payload, err := gw.Trends(context.Background())
		return trendsMsg{payload: payload, err: err}
	}
}

// fetchDashboardCmd assembles the whole dashboard. Only the overview is
// required; the remaining sections are rendered when their fetch succeeds
// and skipped otherwise, so one flaky endpoint cannot take the view down.
func fetchDashboardCmd(gw Backend) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		payload, err := gw.Overview(ctx)
		if err != nil {
			return dashboardMsg{err: err}
		}

		msg := dashboardMsg{payload: payload}
		var errs []error
		appendErr := func(err error) {
			if err != nil {
				errs = append(errs, err)
			}
		}

		var cerr error
		msg.centrality, cerr = gw.Centrality(ctx, "pagerank")
		appendErr(cerr)
		msg.communities, cerr = gw.Communities(ctx)
		appendErr(cerr)
		msg.criticality, cerr = gw.Criticality(ctx)
		appendErr(cerr)
		msg.waste, cerr = gw.Waste(ctx)
		appendErr(cerr)
		msg.report, cerr = gw.HealthReport(ctx)
		appendErr(cerr)

		msg.sectionErr = errors.Join(errs...)
		return msg
	}
}
