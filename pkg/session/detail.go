package session

import (
	"github.com/orglens/orglens/pkg/flight"
	"github.com/orglens/orglens/pkg/gateway"
)

// DetailStatus is the per-node state of the detail panel.
type DetailStatus int

const (
	DetailIdle DetailStatus = iota
	DetailLoading
	DetailReady
	DetailFailed
)

// Detail owns the expanded record for whichever node is currently
// selected. Every fetch is tagged with a flight ticket; a result whose
// ticket is no longer current is discarded on arrival, so the slower of
// two racing fetches can never win.
type Detail struct {
	slot   flight.Slot
	nodeID string
	status DetailStatus
	panel  *gateway.PersonPanel
	err    error
}

// Open starts a fetch for nodeID, superseding any fetch still in flight.
// The caller performs the fetch and posts the result back with the ticket.
func (d *Detail) Open(nodeID string) flight.Ticket {
	d.nodeID = nodeID
	d.status = DetailLoading
	d.panel = nil
	d.err = nil
	return d.slot.Issue()
}

// Commit lands a fetch result. It reports false, changing nothing, when t
// was superseded by a later Open or Close; the stale result is simply
// ignored. On failure the panel stays empty; no partial data is kept.
func (d *Detail) Commit(t flight.Ticket, panel *gateway.PersonPanel, err error) bool {
	if !d.slot.Current(t) {
		return false
	}
	d.slot.Invalidate()

	if err != nil {
		d.status = DetailFailed
		d.panel = nil
		d.err = err
		return true
	}
	d.status = DetailReady
	d.panel = panel
	d.err = nil
	return true
}

// Close clears the panel. Any pending fetch becomes stale.
func (d *Detail) Close() {
	d.slot.Invalidate()
	d.nodeID = ""
	d.status = DetailIdle
	d.panel = nil
	d.err = nil
}

// NodeID returns the node the panel is showing or loading.
func (d *Detail) NodeID() string {
	return d.nodeID
}

// Status returns the panel state.
func (d *Detail) Status() DetailStatus {
	return d.status
}

// Panel returns the committed record, nil unless Status is DetailReady.
func (d *Detail) Panel() *gateway.PersonPanel {
	return d.panel
}

// Err returns the fetch error, nil unless Status is DetailFailed.
func (d *Detail) Err() error {
	return d.err
}
