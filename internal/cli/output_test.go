package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/VincentSchmalor/WPAnalysis/internal/league"
)

func intPtr(v int) *int {
	return &v
}

func floatPtr(v float64) *float64 {
	return &v
}

func sampleGames() []league.EnrichedGame {
	played := league.EnrichedGame{
		HomeGoals:   intPtr(11),
		AwayGoals:   intPtr(6),
		KickoffText: "05.10.2024, 16:00",
		Status:      league.StatusPlayed,
	}
	played.Number = "1001"
	played.Home = "SV Würzburg 05"
	played.Away = "TV Aschaffenburg"
	played.Score = "11:6"
	played.QuarterText = "(3:2, 4:1, 2:3, 2:0)"
	played.Location = "Wolfgang-Adami-Halle"

	open := league.EnrichedGame{Status: league.StatusOpen}
	open.Number = "1004"
	open.Home = "TV Aschaffenburg"
	open.Away = "SV Würzburg 05"
	open.DateTime = "sometime"

	return []league.EnrichedGame{played, open}
}

func TestWriteSchedule_Text(t *testing.T) {
	games := sampleGames()
	result := &ScheduleResult{
		Games: games,
		Count: len(games),
		Anomalies: []league.Anomaly{
			{Game: "1004", Kind: league.AnomalyUnreadScore, Detail: "score cannot be read"},
		},
	}

	var buf bytes.Buffer
	if err := WriteSchedule(&buf, result, FormatText, false); err != nil {
		t.Fatalf("WriteSchedule failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{"KICKOFF", "05.10.2024, 16:00", "11:6", "sometime", "Total: 2 fixtures, 1 played"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "QUARTERS") || strings.Contains(out, "Anomalies") {
		t.Errorf("details should only be shown in verbose mode:\n%s", out)
	}

	buf.Reset()
	if err := WriteSchedule(&buf, result, FormatText, true); err != nil {
		t.Fatalf("WriteSchedule failed: %v", err)
	}
	out = buf.String()
	for _, want := range []string{"QUARTERS", "(3:2, 4:1, 2:3, 2:0)", "Wolfgang-Adami-Halle", "1004 (unreadable_score)"} {
		if !strings.Contains(out, want) {
			t.Errorf("verbose output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteSchedule_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSchedule(&buf, &ScheduleResult{}, FormatText, false); err != nil {
		t.Fatalf("WriteSchedule failed: %v", err)
	}
	if !strings.Contains(buf.String(), "No fixtures found.") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestWriteSchedule_JSON(t *testing.T) {
	fetched := time.Date(2024, 10, 12, 18, 0, 0, 0, time.UTC)
	games := sampleGames()
	result := &ScheduleResult{FetchedAt: fetched, Source: "http://example.test", Games: games, Count: len(games)}

	var buf bytes.Buffer
	if err := WriteSchedule(&buf, result, FormatJSON, false); err != nil {
		t.Fatalf("WriteSchedule failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded["count"] != float64(2) {
		t.Errorf("count = %v", decoded["count"])
	}
	if _, ok := decoded["anomalies"]; ok {
		t.Error("empty anomalies should be omitted")
	}
	if !strings.Contains(buf.String(), "\n  ") {
		t.Error("JSON output should be indented")
	}
}

func TestWriteStandings_Text(t *testing.T) {
	standings := []league.Standing{
		{RawStandingRow: league.RawStandingRow{
			Rank: "1.", Team: "SSV Schweinfurt", Games: "2", Wins: "2", Losses: "0",
			Goals: "18:16", GoalDifference: "+2", Points: "5",
		}},
	}

	var buf bytes.Buffer
	if err := WriteStandings(&buf, standings, FormatText); err != nil {
		t.Fatalf("WriteStandings failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "POINTS") || !strings.Contains(out, "SSV Schweinfurt") || !strings.Contains(out, "18:16") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestWriteStats_Text(t *testing.T) {
	stats := []league.TeamStats{
		{
			Team: "SV Würzburg 05", Played: 2, Wins: 1, ShootoutLosses: 1,
			GoalsFor: 20, GoalsAgainst: 16, GoalDifference: 4,
			AvgGoalsFor: floatPtr(10), AvgGoalsAgainst: floatPtr(8),
			Policy: league.ShootoutSeparate,
		},
		{Team: "Neuling", Policy: league.ShootoutSeparate},
	}

	var buf bytes.Buffer
	if err := WriteStats(&buf, stats, FormatText); err != nil {
		t.Fatalf("WriteStats failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{"20:16", "+4", "10.00", "8.00", "Shootout policy: separate"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	// a team without played games has no averages
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "Neuling") && !strings.HasSuffix(strings.TrimSpace(line), "-") {
			t.Errorf("expected '-' for missing averages: %q", line)
		}
	}
}

func TestWriteTeam_Text(t *testing.T) {
	games := sampleGames()
	result := &TeamResult{
		Team: "SV Würzburg 05",
		Stats: league.TeamStats{
			Team: "SV Würzburg 05", Games: 2, Played: 1, Open: 1, Wins: 1,
			GoalsFor: 11, GoalsAgainst: 6, GoalDifference: 5,
			QuarterDifference: [4]int{1, 3, -1, 2},
		},
		Games: []league.TeamGame{
			{EnrichedGame: games[0], Team: "SV Würzburg 05", Venue: league.VenueHome,
				OwnGoals: intPtr(11), OpponentGoals: intPtr(6), Outcome: league.OutcomeWin},
			{EnrichedGame: games[1], Team: "SV Würzburg 05", Venue: league.VenueAway,
				Outcome: league.OutcomeOpen},
		},
	}

	var buf bytes.Buffer
	if err := WriteTeam(&buf, result, FormatText); err != nil {
		t.Fatalf("WriteTeam failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Played: 1 of 2 (1 open)",
		"Quarter difference: +1 +3 -1 +2",
		"TV Aschaffenburg",
		"11:6",
		"Win",
		"Open",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteStats(&buf, nil, OutputFormat("xml")); err == nil {
		t.Error("expected error for unknown format")
	}
	if err := WriteTeam(&buf, &TeamResult{}, OutputFormat("xml")); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestSigned(t *testing.T) {
	tests := map[int]string{5: "+5", 0: "0", -3: "-3"}
	for in, want := range tests {
		if got := signed(in); got != want {
			t.Errorf("signed(%d) = %q, want %q", in, got, want)
		}
	}
}
