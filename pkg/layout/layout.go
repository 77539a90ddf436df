// Package layout positions graph nodes on a normalized canvas. The
// algorithms here are standard, already-settled primitives; the camera in
// the TUI maps the resulting unit-box coordinates to terminal cells.
package layout

import (
	"github.com/orglens/orglens/pkg/gateway"
)

// Position is a 2D coordinate.
type Position struct {
	X float64
	Y float64
}

// Config configures layout parameters.
type Config struct {
	Width      float64 // Canvas width
	Height     float64 // Canvas height
	Iterations int     // Number of iterations for iterative algorithms
	Padding    float64 // Padding from edges
	Seed       int64   // Seed for the initial scatter; same seed, same layout
}

// Layout positions a set of nodes connected by the given edges.
type Layout interface {
	Compute(nodes []gateway.Node, edges []gateway.Edge) map[string]Position
}
