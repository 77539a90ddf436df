// Package ranking derives the sortable, filterable, alert-tiered list
// views over the loaded person summaries. All scores are precomputed by
// the analytics service; this package only orders and buckets them.
package ranking

import (
	"sort"
	"strings"

	"github.com/orglens/orglens/pkg/gateway"
)

// Tier is a discrete alert bucket derived from score percentile rank.
type Tier string

const (
	TierCritical Tier = "critical"
	TierWarning  Tier = "warning"
	TierHealthy  Tier = "healthy"
)

// Cuts are the two percentile cut points partitioning tiers. An entity in
// the top Critical fraction of the descending score order is critical, in
// the top Warning fraction warning, otherwise healthy.
type Cuts struct {
	Critical float64
	Warning  float64
}

// Scored pairs an entity id with the score being tiered.
type Scored struct {
	ID    string
	Score float64
}

// AssignTiers buckets entities by percentile rank of their score. The rank
// of an entity is the count of strictly greater scores, so ties always land
// in the same tier. An empty input yields an empty map, never an error.
func AssignTiers(entries []Scored, cuts Cuts) map[string]Tier {
	tiers := make(map[string]Tier, len(entries))
	if len(entries) == 0 {
		return tiers
	}

	scores := make([]float64, len(entries))
	for i, e := range entries {
		scores[i] = e.Score
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(scores)))

	n := float64(len(scores))
	for _, e := range entries {
		greater := sort.Search(len(scores), func(i int) bool {
			return scores[i] <= e.Score
		})
		pct := float64(greater) / n
		switch {
		case pct < cuts.Critical:
			tiers[e.ID] = TierCritical
		case pct < cuts.Warning:
			tiers[e.ID] = TierWarning
		default:
			tiers[e.ID] = TierHealthy
		}
	}
	return tiers
}

// SortKey selects the active sort column.
type SortKey int

const (
	SortName SortKey = iota
	SortPageRank
	SortBetweenness
	SortEigenvector
	SortSent
	SortReceived
	SortSentiment
	SortCriticality
	SortWaste
)

// String returns the column label for the key.
func (k SortKey) String() string {
	switch k {
	case SortName:
		return "name"
	case SortPageRank:
		return "pagerank"
	case SortBetweenness:
		return "betweenness"
	case SortEigenvector:
		return "eigenvector"
	case SortSent:
		return "sent"
	case SortReceived:
		return "received"
	case SortSentiment:
		return "sentiment"
	case SortCriticality:
		return "criticality"
	case SortWaste:
		return "waste"
	default:
		return "unknown"
	}
}

func sortValue(p gateway.PersonSummary, k SortKey) float64 {
	switch k {
	case SortPageRank:
		return p.PageRank
	case SortBetweenness:
		return p.Betweenness
	case SortEigenvector:
		return p.Eigenvector
	case SortSent:
		return float64(p.TotalSent)
	case SortReceived:
		return float64(p.TotalReceived)
	case SortSentiment:
		return p.AvgSentSentiment
	case SortCriticality:
		return p.DMSScore
	case SortWaste:
		return p.WasteScore
	default:
		return 0
	}
}

// View is one list view: a filter, one active sort key with direction, and
// tier assignments recomputed whenever the underlying collection changes.
type View struct {
	all    []gateway.PersonSummary
	filter string
	key    SortKey
	desc   bool
	cuts   Cuts
	tiers  map[string]Tier
}

// NewView builds a view over people, tiered on the criticality score.
func NewView(people []gateway.PersonSummary, cuts Cuts) *View {
	v := &View{
		all:  people,
		key:  SortCriticality,
		desc: true,
		cuts: cuts,
	}
	v.retier()
	return v
}

// Replace swaps the underlying collection (after a reload) and recomputes
// tiers. Filter and sort state survive.
func (v *View) Replace(people []gateway.PersonSummary) {
	v.all = people
	v.retier()
}

func (v *View) retier() {
	entries := make([]Scored, len(v.all))
	for i, p := range v.all {
		entries[i] = Scored{ID: p.ID, Score: p.DMSScore}
	}
	v.tiers = AssignTiers(entries, v.cuts)
}

// SetFilter sets the free-text filter: case-insensitive substring over the
// display name and email.
func (v *View) SetFilter(q string) {
	v.filter = strings.ToLower(strings.TrimSpace(q))
}

// SetSort activates a sort key. Re-selecting the active key toggles the
// direction; switching keys starts descending (the interesting end for
// every score column).
func (v *View) SetSort(key SortKey) {
	if key == v.key {
		v.desc = !v.desc
		return
	}
	v.key = key
	v.desc = key != SortName
}

// SortKey returns the active key.
func (v *View) SortKey() SortKey {
	return v.key
}

// Descending reports the active direction.
func (v *View) Descending() bool {
	return v.desc
}

// Tier returns the alert tier for id. Unknown ids are healthy.
func (v *View) Tier(id string) Tier {
	if t, ok := v.tiers[id]; ok {
		return t
	}
	return TierHealthy
}

// Rows returns the filtered, sorted rows.
func (v *View) Rows() []gateway.PersonSummary {
	rows := make([]gateway.PersonSummary, 0, len(v.all))
	for _, p := range v.all {
		if v.filter != "" &&
			!strings.Contains(strings.ToLower(p.Name), v.filter) &&
			!strings.Contains(strings.ToLower(p.Email), v.filter) {
			continue
		}
		rows = append(rows, p)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if v.key == SortName {
			if v.desc {
				return rows[i].Name > rows[j].Name
			}
			return rows[i].Name < rows[j].Name
		}
		a, b := sortValue(rows[i], v.key), sortValue(rows[j], v.key)
		if v.desc {
			return a > b
		}
		return a < b
	})

	return rows
}
