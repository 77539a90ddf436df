package tui

import (
	"github.com/orglens/orglens/pkg/flight"
	"github.com/orglens/orglens/pkg/gateway"
	"github.com/orglens/orglens/pkg/session"
	"github.com/orglens/orglens/pkg/store"
)

// Every asynchronous result re-enters the update loop as one of these
// messages. Results racing against newer user intent carry a ticket or
// handle; the controllers decide whether the result still applies.

type snapshotMsg struct {
	snap   *store.Snapshot
	people []gateway.PersonSummary
	err    error
}

type debounceMsg struct {
	ticket flight.Ticket
}

type detailMsg struct {
	ticket flight.Ticket
	panel  *gateway.PersonPanel
	err    error
}

type chatOpenedMsg struct {
	handle session.TurnHandle
	stream *gateway.Stream
	err    error
}

type chatChunkMsg struct {
	handle session.TurnHandle
	stream *gateway.Stream
	text   string
}

type chatDoneMsg struct {
	handle session.TurnHandle
	stream *gateway.Stream
}

type chatErrMsg struct {
	handle session.TurnHandle
	stream *gateway.Stream
	err    error
}

type risksMsg struct {
	payload *gateway.RisksPayload
	err     error
}

type trendsMsg struct {
	payload *gateway.TrendsPayload
	err     error
}

type dashboardMsg struct {
	payload     *gateway.OverviewPayload
	centrality  *gateway.CentralityPayload
	communities *gateway.CommunitiesPayload
	criticality *gateway.CriticalityPayload
	waste       *gateway.WastePayload
	report      *gateway.ReportPayload
	sectionErr  error
	err         error
}
