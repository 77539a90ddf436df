package layout

import (
	"math"

	"github.com/orglens/orglens/pkg/gateway"
)

// Circular arranges nodes evenly on a circle, in load order. Used as the
// cheap fallback for very large graphs where force iterations are too slow
// for interactive reload.
type Circular struct {
	config *Config
}

// NewCircular creates a circular layout
func NewCircular(config *Config) *Circular {
	if config.Padding == 0 {
		config.Padding = 2
	}
	return &Circular{config: config}
}

// Compute arranges nodes in a circle
func (cl *Circular) Compute(nodes []gateway.Node, edges []gateway.Edge) map[string]Position {
	positions := make(map[string]Position, len(nodes))

	if len(nodes) == 0 {
		return positions
	}

	centerX := cl.config.Width / 2
	centerY := cl.config.Height / 2
	radius := math.Min(centerX, centerY) - cl.config.Padding

	angleStep := 2 * math.Pi / float64(len(nodes))

	for i, n := range nodes {
		angle := float64(i) * angleStep
		positions[n.ID] = Position{
			X: centerX + radius*math.Cos(angle),
			Y: centerY + radius*math.Sin(angle),
		}
	}

	return positions
}
