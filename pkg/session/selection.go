// Package session implements the interaction controllers: resolving
// ambiguous, rapidly-changing user intent (typed search, clicks, deep
// links) into one consistent selection, fetching the expanded record for
// exactly one selected node, and driving the streaming conversation.
//
// The controllers are pure state machines owned by the event loop. All
// asynchronous results re-enter through flight tickets, so a stale result
// can never overwrite fresher state.
package session

import (
	"github.com/orglens/orglens/pkg/flight"
	"github.com/orglens/orglens/pkg/store"
)

// CenterKind distinguishes why the camera is being moved: a direct node
// selection zooms in harder than a search hit.
type CenterKind int

const (
	CenterSearch CenterKind = iota
	CenterSelect
)

// CameraCmd asks the viewport to center on a node.
type CameraCmd struct {
	NodeID string
	Kind   CenterKind
}

// Selection resolves search text, node clicks, and the deep-link target
// into a single authoritative selected node.
type Selection struct {
	snap *store.Snapshot

	searchQuery   string
	selectedID    string
	highlightedID string

	debounce flight.Slot

	deepLinkDone bool
	userActed    bool
}

// NewSelection creates a controller over the loaded snapshot.
func NewSelection(snap *store.Snapshot) *Selection {
	return &Selection{snap: snap}
}

// SetSearchQuery stores text immediately (the input echoes keystrokes with
// no latency) and returns a fresh debounce ticket. The caller schedules the
// debounce timer with the ticket; any earlier pending ticket is superseded,
// so only the most recent timer can fire.
func (s *Selection) SetSearchQuery(text string) flight.Ticket {
	s.searchQuery = text
	return s.debounce.Issue()
}

// ResolveSearch performs the deferred match-and-center. It no-ops unless t
// is the live debounce ticket, then matches the stored query
// case-insensitively against display names, first match in load order. No
// match is a no-op, not an error.
func (s *Selection) ResolveSearch(t flight.Ticket) (CameraCmd, bool) {
	if !s.debounce.Current(t) {
		return CameraCmd{}, false
	}
	s.debounce.Invalidate()

	match, ok := s.snap.SearchByName(s.searchQuery)
	if !ok {
		return CameraCmd{}, false
	}

	s.highlightedID = match.ID
	return CameraCmd{NodeID: match.ID, Kind: CenterSearch}, true
}

// SelectNode handles an explicit click on a rendered node: it overrides any
// pending search action and centers unconditionally with the stronger zoom.
func (s *Selection) SelectNode(id string) (CameraCmd, bool) {
	if !s.snap.Has(id) {
		return CameraCmd{}, false
	}

	s.selectedID = id
	s.highlightedID = ""
	s.userActed = true
	s.debounce.Invalidate()

	return CameraCmd{NodeID: id, Kind: CenterSelect}, true
}

// ClearSelection handles a background interaction: the selection becomes
// absent. The search query is untouched.
func (s *Selection) ClearSelection() {
	s.selectedID = ""
	s.userActed = true
}

// ApplyDeepLink applies the externally supplied target once, after the
// initial load. It behaves like SelectNode but loses to any user-initiated
// selection change that happened first, and never fires twice.
func (s *Selection) ApplyDeepLink(id string) (CameraCmd, bool) {
	if s.deepLinkDone || s.userActed {
		return CameraCmd{}, false
	}
	s.deepLinkDone = true

	if !s.snap.Has(id) {
		return CameraCmd{}, false
	}

	s.selectedID = id
	s.highlightedID = ""
	return CameraCmd{NodeID: id, Kind: CenterSelect}, true
}

// CancelSearch invalidates any pending debounce without touching the
// stored text. Called when the search box's view is torn down.
func (s *Selection) CancelSearch() {
	s.debounce.Invalidate()
}

// SearchQuery returns the stored search text.
func (s *Selection) SearchQuery() string {
	return s.searchQuery
}

// SelectedID returns the selected node id, if any.
func (s *Selection) SelectedID() (string, bool) {
	return s.selectedID, s.selectedID != ""
}

// HighlightedID returns the search-highlighted node id, if any.
func (s *Selection) HighlightedID() (string, bool) {
	return s.highlightedID, s.highlightedID != ""
}
