package ranking

import (
	"testing"

	"github.com/orglens/orglens/pkg/gateway"
)

func person(id, name string, dms float64) gateway.PersonSummary {
	return gateway.PersonSummary{ID: id, Name: name, Email: id + "@corp.com", DMSScore: dms}
}

func TestAssignTiersBuckets(t *testing.T) {
	// 10 entities, 10%/30% cuts: 1 critical, 2 warning, 7 healthy.
	var entries []Scored
	for i := 0; i < 10; i++ {
		entries = append(entries, Scored{ID: string(rune('a' + i)), Score: float64(10 - i)})
	}

	tiers := AssignTiers(entries, Cuts{Critical: 0.10, Warning: 0.30})

	if tiers["a"] != TierCritical {
		t.Errorf("top score tier = %s, want critical", tiers["a"])
	}
	if tiers["b"] != TierWarning || tiers["c"] != TierWarning {
		t.Errorf("ranks 2-3 = %s/%s, want warning", tiers["b"], tiers["c"])
	}
	for _, id := range []string{"d", "e", "f", "g", "h", "i", "j"} {
		if tiers[id] != TierHealthy {
			t.Errorf("tier[%s] = %s, want healthy", id, tiers[id])
		}
	}
}

func TestAssignTiersEmptyInput(t *testing.T) {
	tiers := AssignTiers(nil, Cuts{Critical: 0.05, Warning: 0.15})
	if len(tiers) != 0 {
		t.Errorf("tiers = %v, want empty", tiers)
	}
}

func TestAssignTiersTiedScoresShareTier(t *testing.T) {
	entries := []Scored{
		{ID: "a", Score: 1.0},
		{ID: "b", Score: 0.5},
		{ID: "c", Score: 0.5},
		{ID: "d", Score: 0.5},
		{ID: "e", Score: 0.1},
	}
	tiers := AssignTiers(entries, Cuts{Critical: 0.30, Warning: 0.60})

	if tiers["b"] != tiers["c"] || tiers["c"] != tiers["d"] {
		t.Errorf("tied scores got different tiers: b=%s c=%s d=%s", tiers["b"], tiers["c"], tiers["d"])
	}
}

func TestViewFilter(t *testing.T) {
	v := NewView([]gateway.PersonSummary{
		person("pa", "Phillip Allen", 0.5),
		person("km", "Kay Mann", 0.3),
		person("ja", "John Arnold", 0.2),
	}, Cuts{Critical: 0.10, Warning: 0.30})

	v.SetFilter("mann")
	rows := v.Rows()
	if len(rows) != 1 || rows[0].ID != "km" {
		t.Errorf("rows = %+v, want only km", rows)
	}

	// Secondary identifier field (email) also matches.
	v.SetFilter("pa@corp.com")
	rows = v.Rows()
	if len(rows) != 1 || rows[0].ID != "pa" {
		t.Errorf("rows = %+v, want only pa", rows)
	}

	v.SetFilter("")
	if len(v.Rows()) != 3 {
		t.Errorf("cleared filter should show all rows")
	}
}

func TestViewSortToggle(t *testing.T) {
	v := NewView([]gateway.PersonSummary{
		person("a", "A", 0.1),
		person("b", "B", 0.9),
		person("c", "C", 0.5),
	}, Cuts{Critical: 0.10, Warning: 0.30})

	// Default: criticality descending.
	rows := v.Rows()
	if rows[0].ID != "b" || rows[2].ID != "a" {
		t.Errorf("default sort rows = %v", ids(rows))
	}

	// Same key toggles direction.
	v.SetSort(SortCriticality)
	rows = v.Rows()
	if rows[0].ID != "a" || rows[2].ID != "b" {
		t.Errorf("toggled sort rows = %v", ids(rows))
	}

	// Switching keys resets to descending.
	v.SetSort(SortName)
	if v.Descending() {
		t.Error("name sort should start ascending")
	}
	rows = v.Rows()
	if rows[0].ID != "a" {
		t.Errorf("name sort rows = %v", ids(rows))
	}
}

func TestViewReplaceRecomputesTiers(t *testing.T) {
	v := NewView([]gateway.PersonSummary{
		person("a", "A", 0.9),
		person("b", "B", 0.1),
	}, Cuts{Critical: 0.50, Warning: 0.80})

	if v.Tier("a") != TierCritical {
		t.Fatalf("Tier(a) = %s, want critical", v.Tier("a"))
	}

	// After reload, a's score collapses and b dominates.
	v.Replace([]gateway.PersonSummary{
		person("a", "A", 0.1),
		person("b", "B", 0.9),
	})
	if v.Tier("b") != TierCritical {
		t.Errorf("Tier(b) = %s, want critical after replace", v.Tier("b"))
	}
	if v.Tier("a") == TierCritical {
		t.Errorf("Tier(a) should no longer be critical")
	}
}

func TestViewEmptyCollection(t *testing.T) {
	v := NewView(nil, Cuts{Critical: 0.10, Warning: 0.30})
	if len(v.Rows()) != 0 {
		t.Error("empty view should have no rows")
	}
	if v.Tier("anyone") != TierHealthy {
		t.Error("unknown id should be healthy")
	}
}

func ids(rows []gateway.PersonSummary) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}
