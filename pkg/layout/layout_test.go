package layout

import (
	"math"
	"testing"

	"github.com/orglens/orglens/pkg/gateway"
)

func testNodes(ids ...string) []gateway.Node {
	nodes := make([]gateway.Node, len(ids))
	for i, id := range ids {
		nodes[i] = gateway.Node{ID: id, Name: id}
	}
	return nodes
}

// TestForceDirected tests the force-directed layout algorithm
func TestForceDirected(t *testing.T) {
	nodes := testNodes("alice", "bob", "charlie")
	edges := []gateway.Edge{
		{Source: "alice", Target: "bob", Weight: 1.0},
		{Source: "bob", Target: "charlie", Weight: 1.0},
	}

	fd := NewForceDirected(&Config{
		Width:      80,
		Height:     40,
		Iterations: 50,
		Seed:       1,
	})

	positions := fd.Compute(nodes, edges)

	if len(positions) != 3 {
		t.Errorf("Expected 3 positions, got %d", len(positions))
	}

	for id, pos := range positions {
		if pos.X < 0 || pos.X > 80 {
			t.Errorf("Node %s X position %f out of bounds", id, pos.X)
		}
		if pos.Y < 0 || pos.Y > 40 {
			t.Errorf("Node %s Y position %f out of bounds", id, pos.Y)
		}
	}
}

func TestForceDirectedIsDeterministic(t *testing.T) {
	nodes := testNodes("a", "b", "c", "d")
	edges := []gateway.Edge{
		{Source: "a", Target: "b", Weight: 0.8},
		{Source: "c", Target: "d", Weight: 0.2},
	}

	cfg := &Config{Width: 100, Height: 100, Iterations: 30, Seed: 42}
	first := NewForceDirected(cfg).Compute(nodes, edges)
	second := NewForceDirected(cfg).Compute(nodes, edges)

	for id, pos := range first {
		if second[id] != pos {
			t.Errorf("Node %s moved between runs: %+v vs %+v", id, pos, second[id])
		}
	}
}

func TestForceDirectedEmptyAndSingle(t *testing.T) {
	fd := NewForceDirected(&Config{Width: 80, Height: 40})

	if got := fd.Compute(nil, nil); len(got) != 0 {
		t.Errorf("Empty graph should produce no positions, got %d", len(got))
	}

	positions := fd.Compute(testNodes("solo"), nil)
	pos, ok := positions["solo"]
	if !ok {
		t.Fatal("Single node should be positioned")
	}
	if pos.X != 40 || pos.Y != 20 {
		t.Errorf("Single node should be centered, got %+v", pos)
	}
}

// TestCircular tests the circular layout
func TestCircular(t *testing.T) {
	nodes := testNodes("a", "b", "c", "d")

	cl := NewCircular(&Config{Width: 100, Height: 100, Padding: 10})
	positions := cl.Compute(nodes, nil)

	if len(positions) != 4 {
		t.Fatalf("Expected 4 positions, got %d", len(positions))
	}

	// All nodes sit on the circle around the center
	radius := 40.0
	for id, pos := range positions {
		dx := pos.X - 50
		dy := pos.Y - 50
		dist := math.Sqrt(dx*dx + dy*dy)
		if math.Abs(dist-radius) > 0.001 {
			t.Errorf("Node %s at distance %f, want %f", id, dist, radius)
		}
	}
}
