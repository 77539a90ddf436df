package router

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  Route
	}{
		{"graph", RouteGraph},
		{"g", RouteGraph},
		{"PEOPLE", RoutePeople},
		{"risks", RouteRisks},
		{"t", RouteTrends},
		{"dashboard", RouteDashboard},
		{"chat", RouteChat},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}

	if _, err := Parse("nonsense"); err == nil {
		t.Error("Parse should reject unknown views")
	}
}

func TestDescriptorsComplete(t *testing.T) {
	for _, r := range All() {
		d := Describe(r)
		if d.Title == "" || d.TabLabel == "" {
			t.Errorf("route %v has incomplete descriptor %+v", r, d)
		}
	}
}

func TestTieredViewsDisagreeOnPurpose(t *testing.T) {
	people := Describe(RoutePeople).TierCuts
	risks := Describe(RouteRisks).TierCuts

	if people.Critical == 0 || risks.Critical == 0 {
		t.Fatal("both tiered views should carry cuts")
	}
	// The two views use different cut points; neither is authoritative.
	if people == risks {
		t.Error("people and risks cuts should remain distinct")
	}
}

func TestNextPrevWrap(t *testing.T) {
	all := All()
	if Next(all[len(all)-1]) != all[0] {
		t.Error("Next should wrap to the first route")
	}
	if Prev(all[0]) != all[len(all)-1] {
		t.Error("Prev should wrap to the last route")
	}
	for _, r := range all {
		if Prev(Next(r)) != r {
			t.Errorf("Prev(Next(%v)) != %v", r, r)
		}
	}
}
