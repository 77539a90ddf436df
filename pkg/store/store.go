// Package store holds the session's graph data: one immutable snapshot of
// nodes and edges, bulk-loaded once and replaced wholesale on reload. There
// is no incremental update path.
package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/orglens/orglens/pkg/gateway"
)

// Loader is the slice of the gateway the store needs.
type Loader interface {
	Graph(ctx context.Context) (*gateway.GraphPayload, error)
	People(ctx context.Context) (*gateway.PeoplePayload, error)
}

// Snapshot is the loaded graph. Immutable once built; node iteration order
// is load order, which makes first-match search deterministic.
type Snapshot struct {
	nodes []gateway.Node
	edges []gateway.Edge
	byID  map[string]int
}

// NewSnapshot validates and indexes the payload. Node ids must be unique
// and every edge endpoint must name a loaded node.
func NewSnapshot(nodes []gateway.Node, edges []gateway.Edge) (*Snapshot, error) {
	byID := make(map[string]int, len(nodes))
	for i, n := range nodes {
		if _, dup := byID[n.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateNode, n.ID)
		}
		byID[n.ID] = i
	}

	for _, e := range edges {
		if _, ok := byID[e.Source]; !ok {
			return nil, fmt.Errorf("%w: %s -> %s (source)", ErrDanglingEdge, e.Source, e.Target)
		}
		if _, ok := byID[e.Target]; !ok {
			return nil, fmt.Errorf("%w: %s -> %s (target)", ErrDanglingEdge, e.Source, e.Target)
		}
	}

	return &Snapshot{nodes: nodes, edges: edges, byID: byID}, nil
}

// Load performs the one-shot bulk load: the full graph plus the person
// summary list. Any request or validation failure is a LoadFailure; callers
// show an error state and may retry by calling Load again.
func Load(ctx context.Context, gw Loader) (*Snapshot, []gateway.PersonSummary, error) {
	graph, err := gw.Graph(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}

	snap, err := NewSnapshot(graph.Nodes, graph.Edges)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}

	people, err := gw.People(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}

	return snap, people.People, nil
}

// Nodes returns the node slice in load order. Callers must not modify it.
func (s *Snapshot) Nodes() []gateway.Node {
	return s.nodes
}

// Edges returns the edge slice. Callers must not modify it.
func (s *Snapshot) Edges() []gateway.Edge {
	return s.edges
}

// NodeCount returns the number of nodes.
func (s *Snapshot) NodeCount() int {
	return len(s.nodes)
}

// EdgeCount returns the number of edges.
func (s *Snapshot) EdgeCount() int {
	return len(s.edges)
}

// Node looks up a node by id.
func (s *Snapshot) Node(id string) (gateway.Node, error) {
	i, ok := s.byID[id]
	if !ok {
		return gateway.Node{}, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	return s.nodes[i], nil
}

// Has reports whether id names a loaded node.
func (s *Snapshot) Has(id string) bool {
	_, ok := s.byID[id]
	return ok
}

// SearchByName returns the first node, in load order, whose display name
// contains query case-insensitively. ok is false when nothing matches.
func (s *Snapshot) SearchByName(query string) (gateway.Node, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return gateway.Node{}, false
	}
	for _, n := range s.nodes {
		if strings.Contains(strings.ToLower(n.Name), q) {
			return n, true
		}
	}
	return gateway.Node{}, false
}

// Neighbors returns the ids of nodes sharing an edge with id, in edge
// order, without duplicates.
func (s *Snapshot) Neighbors(id string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range s.edges {
		var other string
		switch id {
		case e.Source:
			other = e.Target
		case e.Target:
			other = e.Source
		default:
			continue
		}
		if !seen[other] {
			seen[other] = true
			out = append(out, other)
		}
	}
	return out
}

// Subgraph is a filtered view over a snapshot. It preserves the
// referential invariant: only nodes incident to a surviving edge remain,
// so no rendered edge can dangle and no disconnected node lingers.
type Subgraph struct {
	Nodes []gateway.Node
	Edges []gateway.Edge
}

// FilterByWeight keeps edges with weight >= min and prunes every node left
// without an edge. Filtering everything yields an empty subgraph, not an
// error.
func (s *Snapshot) FilterByWeight(min float64) Subgraph {
	var edges []gateway.Edge
	keep := make(map[string]bool)
	for _, e := range s.edges {
		if e.Weight >= min {
			edges = append(edges, e)
			keep[e.Source] = true
			keep[e.Target] = true
		}
	}

	var nodes []gateway.Node
	for _, n := range s.nodes {
		if keep[n.ID] {
			nodes = append(nodes, n)
		}
	}

	return Subgraph{Nodes: nodes, Edges: edges}
}
