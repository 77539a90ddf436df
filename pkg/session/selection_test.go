package session

import (
	"testing"

	"github.com/orglens/orglens/pkg/gateway"
	"github.com/orglens/orglens/pkg/store"
)

func testSnap(t *testing.T) *store.Snapshot {
	t.Helper()

	snap, err := store.NewSnapshot([]gateway.Node{
		{ID: "pa", Name: "Phillip Allen"},
		{ID: "ja", Name: "John Arnold"},
		{ID: "km", Name: "Kay Mann"},
	}, nil)
	if err != nil {
		t.Fatalf("NewSnapshot: %v", err)
	}
	return snap
}

func TestSearchDebounceOnlyLastTicketFires(t *testing.T) {
	s := NewSelection(testSnap(t))

	// Three rapid keystrokes; each supersedes the previous window.
	t1 := s.SetSearchQuery("p")
	t2 := s.SetSearchQuery("ph")
	t3 := s.SetSearchQuery("kay")

	if _, ok := s.ResolveSearch(t1); ok {
		t.Error("first ticket should be stale")
	}
	if _, ok := s.ResolveSearch(t2); ok {
		t.Error("second ticket should be stale")
	}

	cmd, ok := s.ResolveSearch(t3)
	if !ok {
		t.Fatal("latest ticket should fire")
	}
	// The side effect reflects the final text, not an intermediate one.
	if cmd.NodeID != "km" {
		t.Errorf("centered on %s, want km", cmd.NodeID)
	}
	if cmd.Kind != CenterSearch {
		t.Errorf("kind = %v, want CenterSearch", cmd.Kind)
	}
	if hl, _ := s.HighlightedID(); hl != "km" {
		t.Errorf("highlighted = %s, want km", hl)
	}
}

func TestResolveSearchNoMatchIsNoop(t *testing.T) {
	s := NewSelection(testSnap(t))

	tk := s.SetSearchQuery("nobody by this name")
	if _, ok := s.ResolveSearch(tk); ok {
		t.Error("no match should not produce a camera command")
	}
	if _, ok := s.HighlightedID(); ok {
		t.Error("no match should not highlight")
	}
}

func TestSelectNodeOverridesPendingSearch(t *testing.T) {
	s := NewSelection(testSnap(t))

	pending := s.SetSearchQuery("allen")

	cmd, ok := s.SelectNode("ja")
	if !ok {
		t.Fatal("SelectNode should succeed")
	}
	if cmd.Kind != CenterSelect {
		t.Errorf("kind = %v, want the stronger CenterSelect", cmd.Kind)
	}

	// The pending debounce may not fire afterwards.
	if _, ok := s.ResolveSearch(pending); ok {
		t.Error("pending search should have been cancelled by the click")
	}

	// The query text itself survives the click.
	if s.SearchQuery() != "allen" {
		t.Errorf("searchQuery = %q, want allen", s.SearchQuery())
	}
}

func TestSelectNodeClearsHighlight(t *testing.T) {
	s := NewSelection(testSnap(t))

	tk := s.SetSearchQuery("mann")
	s.ResolveSearch(tk)
	if _, ok := s.HighlightedID(); !ok {
		t.Fatal("expected highlight from search")
	}

	s.SelectNode("pa")
	if _, ok := s.HighlightedID(); ok {
		t.Error("click should clear the search highlight")
	}
	if id, _ := s.SelectedID(); id != "pa" {
		t.Errorf("selected = %s, want pa", id)
	}
}

func TestSelectUnknownNode(t *testing.T) {
	s := NewSelection(testSnap(t))

	if _, ok := s.SelectNode("ghost"); ok {
		t.Error("selecting an unloaded node should fail")
	}
	if _, ok := s.SelectedID(); ok {
		t.Error("selection should remain absent")
	}
}

func TestClearSelection(t *testing.T) {
	s := NewSelection(testSnap(t))

	s.SetSearchQuery("query stays")
	s.SelectNode("pa")
	s.ClearSelection()

	if _, ok := s.SelectedID(); ok {
		t.Error("selection should be absent after clear")
	}
	if s.SearchQuery() != "query stays" {
		t.Error("ClearSelection must not touch the search query")
	}
}

func TestDeepLinkApplies(t *testing.T) {
	s := NewSelection(testSnap(t))

	cmd, ok := s.ApplyDeepLink("km")
	if !ok {
		t.Fatal("deep link should apply on an untouched session")
	}
	if cmd.NodeID != "km" || cmd.Kind != CenterSelect {
		t.Errorf("cmd = %+v", cmd)
	}
	if id, _ := s.SelectedID(); id != "km" {
		t.Errorf("selected = %s, want km", id)
	}
}

func TestDeepLinkLosesToUserSelection(t *testing.T) {
	s := NewSelection(testSnap(t))

	// The user selects X before the deep link to Y resolves.
	s.SelectNode("pa")

	if _, ok := s.ApplyDeepLink("km"); ok {
		t.Error("deep link must lose to a prior user selection")
	}
	if id, _ := s.SelectedID(); id != "pa" {
		t.Errorf("selected = %s, want the user's pa", id)
	}
}

func TestDeepLinkLosesToClear(t *testing.T) {
	s := NewSelection(testSnap(t))

	s.ClearSelection()

	if _, ok := s.ApplyDeepLink("km"); ok {
		t.Error("deep link must lose to any user-initiated selection change")
	}
}

func TestDeepLinkIsIdempotent(t *testing.T) {
	s := NewSelection(testSnap(t))

	if _, ok := s.ApplyDeepLink("km"); !ok {
		t.Fatal("first application should fire")
	}
	if _, ok := s.ApplyDeepLink("km"); ok {
		t.Error("deep link must not re-fire")
	}
	if _, ok := s.ApplyDeepLink("pa"); ok {
		t.Error("deep link must not re-fire for a different target either")
	}
}

func TestDeepLinkUnknownTargetConsumesTheLink(t *testing.T) {
	s := NewSelection(testSnap(t))

	if _, ok := s.ApplyDeepLink("ghost"); ok {
		t.Error("unknown target should not select")
	}
	// The link was still consumed; it may not fire later.
	if _, ok := s.ApplyDeepLink("km"); ok {
		t.Error("deep link is one-shot even when the target is unknown")
	}
}
