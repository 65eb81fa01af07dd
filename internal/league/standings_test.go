package league

import "testing"

func TestEnrichStanding(t *testing.T) {
	s := EnrichStanding(RawStandingRow{
		Rank:           "1.",
		Team:           " SV Würzburg 05\n",
		Games:          "10",
		Wins:           "8",
		Losses:         "2",
		Goals:          "120:85",
		GoalDifference: "+35",
		Points:         "24",
	})

	if s.Team != "SV Würzburg 05" {
		t.Errorf("Team = %q", s.Team)
	}

	checks := []struct {
		name string
		got  *int
		want int
	}{
		{"RankNum", s.RankNum, 1},
		{"GamesNum", s.GamesNum, 10},
		{"WinsNum", s.WinsNum, 8},
		{"LossesNum", s.LossesNum, 2},
		{"PointsNum", s.PointsNum, 24},
		{"GoalsFor", s.GoalsFor, 120},
		{"GoalsAgainst", s.GoalsAgainst, 85},
		{"GoalDiff", s.GoalDiff, 35},
	}
	for _, c := range checks {
		if !equalIntPtr(c.got, intPtr(c.want)) {
			t.Errorf("%s = %s, want %d", c.name, fmtIntPtr(c.got), c.want)
		}
	}
}

func TestParseGoals(t *testing.T) {
	tests := []struct {
		in      string
		wantFor *int
		wantAg  *int
	}{
		{"120:85", intPtr(120), intPtr(85)},
		{"120 : 85", intPtr(120), intPtr(85)},
		{"120-85", intPtr(120), intPtr(85)},
		{"120/85", intPtr(120), intPtr(85)},
		{"0:0", intPtr(0), intPtr(0)},
		{"", nil, nil},
		{"n/a", nil, nil},
		{"120:85:3", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			f, a := parseGoals(tt.in)
			if !equalIntPtr(f, tt.wantFor) || !equalIntPtr(a, tt.wantAg) {
				t.Errorf("parseGoals(%q) = %s:%s, want %s:%s", tt.in,
					fmtIntPtr(f), fmtIntPtr(a), fmtIntPtr(tt.wantFor), fmtIntPtr(tt.wantAg))
			}
		})
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want *int
	}{
		{"3", intPtr(3)},
		{"3.", intPtr(3)},
		{"+12", intPtr(12)},
		{"-4", intPtr(-4)},
		{"−4", intPtr(-4)},
		{" 7 ", intPtr(7)},
		{"", nil},
		{"-", nil},
		{"abc", nil},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := parseNumber(tt.in); !equalIntPtr(got, tt.want) {
				t.Errorf("parseNumber(%q) = %s, want %s", tt.in, fmtIntPtr(got), fmtIntPtr(tt.want))
			}
		})
	}
}

func TestEnrichStanding_GoalDiffFallback(t *testing.T) {
	s := EnrichStanding(RawStandingRow{Team: "X", Goals: "unknown", GoalDifference: "−7"})

	if s.GoalsFor != nil || s.GoalsAgainst != nil {
		t.Error("goals should be nil when unreadable")
	}
	if !equalIntPtr(s.GoalDiff, intPtr(-7)) {
		t.Errorf("GoalDiff = %s, want -7", fmtIntPtr(s.GoalDiff))
	}
}

func TestEnrichStanding_GoalsWinOverDifferenceColumn(t *testing.T) {
	s := EnrichStanding(RawStandingRow{Goals: "50:60", GoalDifference: "+99"})
	if !equalIntPtr(s.GoalDiff, intPtr(-10)) {
		t.Errorf("GoalDiff = %s, want -10", fmtIntPtr(s.GoalDiff))
	}
}

func TestEnrichStandings_KeepsEveryRow(t *testing.T) {
	rows := []RawStandingRow{{Team: "A"}, {}, {Team: "B", Points: "x"}}
	got := EnrichStandings(rows)

	if len(got) != len(rows) {
		t.Fatalf("len = %d, want %d", len(got), len(rows))
	}
	if got[2].PointsNum != nil {
		t.Error("unreadable points should stay nil")
	}
}
