package layout

import (
	"math"
	"math/rand"

	"github.com/orglens/orglens/pkg/gateway"
)

// ForceDirected implements force-directed graph layout with edge weight as
// spring strength: heavily-communicating pairs land closer together.
type ForceDirected struct {
	config *Config
}

// NewForceDirected creates a force-directed layout
func NewForceDirected(config *Config) *ForceDirected {
	if config.Iterations == 0 {
		config.Iterations = 50
	}
	if config.Padding == 0 {
		config.Padding = 2
	}
	return &ForceDirected{config: config}
}

// Compute positions nodes using force-directed iterations
func (fd *ForceDirected) Compute(nodes []gateway.Node, edges []gateway.Edge) map[string]Position {
	if len(nodes) == 0 {
		return make(map[string]Position)
	}

	// Single node - center it
	if len(nodes) == 1 {
		return map[string]Position{
			nodes[0].ID: {
				X: fd.config.Width / 2,
				Y: fd.config.Height / 2,
			},
		}
	}

	rng := rand.New(rand.NewSource(fd.config.Seed))

	// Initialize scattered positions
	positions := make(map[string]Position, len(nodes))
	for _, n := range nodes {
		positions[n.ID] = Position{
			X: rng.Float64()*(fd.config.Width-2*fd.config.Padding) + fd.config.Padding,
			Y: rng.Float64()*(fd.config.Height-2*fd.config.Padding) + fd.config.Padding,
		}
	}

	// Neighbor map with the strongest weight per pair
	neighbors := make(map[string]map[string]float64, len(nodes))
	for _, n := range nodes {
		neighbors[n.ID] = make(map[string]float64)
	}
	for _, e := range edges {
		if _, ok := positions[e.Source]; !ok {
			continue
		}
		if _, ok := positions[e.Target]; !ok {
			continue
		}
		w := math.Max(e.Weight, 0.05)
		if w > neighbors[e.Source][e.Target] {
			neighbors[e.Source][e.Target] = w
			neighbors[e.Target][e.Source] = w
		}
	}

	k := math.Sqrt((fd.config.Width * fd.config.Height) / float64(len(nodes))) // Optimal distance
	temperature := fd.config.Width / 10.0

	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}

	for iter := 0; iter < fd.config.Iterations; iter++ {
		forces := make(map[string]Position, len(ids))
		for _, id := range ids {
			forces[id] = Position{}
		}

		// Repulsion between all pairs
		for i, id1 := range ids {
			for j := i + 1; j < len(ids); j++ {
				id2 := ids[j]
				dx := positions[id1].X - positions[id2].X
				dy := positions[id1].Y - positions[id2].Y
				dist := math.Sqrt(dx*dx + dy*dy)

				if dist < 0.01 {
					dist = 0.01
				}

				force := (k * k) / dist
				fx := (dx / dist) * force
				fy := (dy / dist) * force

				forces[id1] = Position{X: forces[id1].X + fx, Y: forces[id1].Y + fy}
				forces[id2] = Position{X: forces[id2].X - fx, Y: forces[id2].Y - fy}
			}
		}

		// Attraction along edges, scaled by weight
		for _, id1 := range ids {
			for id2, w := range neighbors[id1] {
				dx := positions[id1].X - positions[id2].X
				dy := positions[id1].Y - positions[id2].Y
				dist := math.Sqrt(dx*dx + dy*dy)

				if dist < 0.01 {
					continue
				}

				force := (dist * dist) / k * w
				fx := (dx / dist) * force
				fy := (dy / dist) * force

				forces[id1] = Position{X: forces[id1].X - fx, Y: forces[id1].Y - fy}
			}
		}

		// Apply forces with cooling
		cool := 1.0 - float64(iter)/float64(fd.config.Iterations)
		for _, id := range ids {
			fx := forces[id].X
			fy := forces[id].Y
			force := math.Sqrt(fx*fx + fy*fy)

			if force > 0 {
				dx := (fx / force) * math.Min(force, temperature) * cool
				dy := (fy / force) * math.Min(force, temperature) * cool

				positions[id] = Position{X: positions[id].X + dx, Y: positions[id].Y + dy}
			}
		}

		temperature *= 0.95
	}

	return normalize(positions, fd.config.Width, fd.config.Height, fd.config.Padding)
}
