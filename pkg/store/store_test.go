package store

import (
	"context"
	"errors"
	"testing"

	"github.com/orglens/orglens/pkg/gateway"
)

func node(id, name string) gateway.Node {
	return gateway.Node{ID: id, Name: name, Email: id}
}

func edge(src, dst string, weight float64) gateway.Edge {
	return gateway.Edge{Source: src, Target: dst, Weight: weight}
}

func testSnapshot(t *testing.T, nodes []gateway.Node, edges []gateway.Edge) *Snapshot {
	t.Helper()

	snap, err := NewSnapshot(nodes, edges)
	if err != nil {
		t.Fatalf("NewSnapshot: %v", err)
	}
	return snap
}

func TestNewSnapshotRejectsDuplicateIDs(t *testing.T) {
	_, err := NewSnapshot([]gateway.Node{node("a", "A"), node("a", "A again")}, nil)
	if !errors.Is(err, ErrDuplicateNode) {
		t.Fatalf("err = %v, want ErrDuplicateNode", err)
	}
}

func TestNewSnapshotRejectsDanglingEdges(t *testing.T) {
	_, err := NewSnapshot([]gateway.Node{node("a", "A")}, []gateway.Edge{edge("a", "ghost", 0.5)})
	if !errors.Is(err, ErrDanglingEdge) {
		t.Fatalf("err = %v, want ErrDanglingEdge", err)
	}
}

func TestSearchByNameFirstMatchCaseInsensitive(t *testing.T) {
	snap := testSnapshot(t, []gateway.Node{
		node("a", "Phillip Allen"),
		node("b", "John Allen"),
		node("c", "Kay Mann"),
	}, nil)

	got, ok := snap.SearchByName("ALLEN")
	if !ok {
		t.Fatal("expected a match")
	}
	if got.ID != "a" {
		t.Errorf("matched %s, want first match a", got.ID)
	}

	if _, ok := snap.SearchByName("zzz"); ok {
		t.Error("expected no match")
	}
	if _, ok := snap.SearchByName("   "); ok {
		t.Error("whitespace query should not match")
	}
}

func TestFilterByWeightPrunesDisconnectedNodes(t *testing.T) {
	// Two nodes, one edge below the threshold: both nodes must disappear.
	snap := testSnapshot(t,
		[]gateway.Node{node("A", "Alice"), node("B", "Bob")},
		[]gateway.Edge{edge("A", "B", 0.5)},
	)

	sub := snap.FilterByWeight(0.6)
	if len(sub.Edges) != 0 {
		t.Errorf("edges = %d, want 0", len(sub.Edges))
	}
	if len(sub.Nodes) != 0 {
		t.Errorf("nodes = %d, want 0 (disconnected nodes pruned)", len(sub.Nodes))
	}
}

func TestFilterByWeightKeepsIncidentNodes(t *testing.T) {
	snap := testSnapshot(t,
		[]gateway.Node{node("a", "A"), node("b", "B"), node("c", "C")},
		[]gateway.Edge{edge("a", "b", 0.9), edge("b", "c", 0.1)},
	)

	sub := snap.FilterByWeight(0.5)
	if len(sub.Edges) != 1 {
		t.Fatalf("edges = %d, want 1", len(sub.Edges))
	}
	if len(sub.Nodes) != 2 {
		t.Fatalf("nodes = %d, want 2", len(sub.Nodes))
	}
	for _, n := range sub.Nodes {
		if n.ID == "c" {
			t.Error("node c should be pruned")
		}
	}
}

func TestNeighbors(t *testing.T) {
	snap := testSnapshot(t,
		[]gateway.Node{node("a", "A"), node("b", "B"), node("c", "C")},
		[]gateway.Edge{edge("a", "b", 0.5), edge("c", "a", 0.5), edge("a", "b", 0.2)},
	)

	got := snap.Neighbors("a")
	if len(got) != 2 || got[0] != "b" || got[1] != "c" {
		t.Errorf("Neighbors(a) = %v, want [b c]", got)
	}
	if got := snap.Neighbors("missing"); len(got) != 0 {
		t.Errorf("Neighbors(missing) = %v, want empty", got)
	}
}

type fakeLoader struct {
	graph     *gateway.GraphPayload
	people    *gateway.PeoplePayload
	graphErr  error
	peopleErr error
}

func (f *fakeLoader) Graph(ctx context.Context) (*gateway.GraphPayload, error) {
	return f.graph, f.graphErr
}

func (f *fakeLoader) People(ctx context.Context) (*gateway.PeoplePayload, error) {
	return f.people, f.peopleErr
}

func TestLoadSuccess(t *testing.T) {
	loader := &fakeLoader{
		graph: &gateway.GraphPayload{
			Nodes: []gateway.Node{node("a", "A")},
		},
		people: &gateway.PeoplePayload{
			People: []gateway.PersonSummary{{ID: "a", Name: "A", DMSScore: 0.4}},
		},
	}

	snap, people, err := Load(context.Background(), loader)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if snap.NodeCount() != 1 {
		t.Errorf("NodeCount = %d, want 1", snap.NodeCount())
	}
	if len(people) != 1 || people[0].DMSScore != 0.4 {
		t.Errorf("people = %+v", people)
	}
}

func TestLoadFailuresWrapErrLoadFailed(t *testing.T) {
	tests := []struct {
		name   string
		loader *fakeLoader
	}{
		{"graph request fails", &fakeLoader{graphErr: errors.New("conn refused")}},
		{"people request fails", &fakeLoader{
			graph:     &gateway.GraphPayload{Nodes: []gateway.Node{node("a", "A")}},
			peopleErr: errors.New("conn refused"),
		}},
		{"malformed graph", &fakeLoader{
			graph: &gateway.GraphPayload{Edges: []gateway.Edge{edge("x", "y", 1)}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Load(context.Background(), tt.loader)
			if !errors.Is(err, ErrLoadFailed) {
				t.Errorf("err = %v, want ErrLoadFailed", err)
			}
		})
	}
}
