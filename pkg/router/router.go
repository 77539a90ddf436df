// Package router owns the route → view mapping. Titles, tab labels, and
// per-view tier cut points live in one table instead of being inferred
// from strings scattered around the UI.
package router

import (
	"fmt"
	"strings"

	"github.com/orglens/orglens/pkg/ranking"
)

// Route identifies one top-level view.
type Route int

const (
	RouteGraph Route = iota
	RoutePeople
	RouteRisks
	RouteTrends
	RouteDashboard
	RouteChat
)

// ViewDescriptor is everything the shell needs to present a route.
type ViewDescriptor struct {
	Title    string
	TabLabel string
	// TierCuts are the view's default percentile cut points, seeded into
	// the config defaults and overridable there. Views without tiering
	// leave them zero. The two tiered views use different cuts on
	// purpose.
	TierCuts ranking.Cuts
}

var descriptors = map[Route]ViewDescriptor{
	RouteGraph:     {Title: "Communication Graph", TabLabel: "Graph"},
	RoutePeople:    {Title: "People", TabLabel: "People", TierCuts: ranking.Cuts{Critical: 0.10, Warning: 0.30}},
	RouteRisks:     {Title: "Organizational Risks", TabLabel: "Risks", TierCuts: ranking.Cuts{Critical: 0.05, Warning: 0.15}},
	RouteTrends:    {Title: "Trends", TabLabel: "Trends"},
	RouteDashboard: {Title: "Health Dashboard", TabLabel: "Dashboard"},
	RouteChat:      {Title: "Assistant", TabLabel: "Chat"},
}

// All returns the routes in tab order.
func All() []Route {
	return []Route{RouteGraph, RoutePeople, RouteRisks, RouteTrends, RouteDashboard, RouteChat}
}

// Describe returns the descriptor for r.
func Describe(r Route) ViewDescriptor {
	return descriptors[r]
}

// Parse maps a --view flag value to a route.
func Parse(s string) (Route, error) {
	switch strings.ToLower(s) {
	case "graph", "g":
		return RouteGraph, nil
	case "people", "p":
		return RoutePeople, nil
	case "risks", "r":
		return RouteRisks, nil
	case "trends", "t":
		return RouteTrends, nil
	case "dashboard", "d":
		return RouteDashboard, nil
	case "chat", "c":
		return RouteChat, nil
	default:
		return 0, fmt.Errorf("unknown view %q (valid: graph, people, risks, trends, dashboard, chat)", s)
	}
}

// Next returns the route after r in tab order, wrapping around.
func Next(r Route) Route {
	all := All()
	for i, route := range all {
		if route == r {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

// Prev returns the route before r in tab order, wrapping around.
func Prev(r Route) Route {
	all := All()
	for i, route := range all {
		if route == r {
			return all[(i+len(all)-1)%len(all)]
		}
	}
	return all[0]
}
