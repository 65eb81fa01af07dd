package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/VincentSchmalor/WPAnalysis/internal/league"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// ScheduleResult contains the fixtures to be output
type ScheduleResult struct {
	FetchedAt time.Time             `json:"fetched_at"`
	Source    string                `json:"source"`
	Team      string                `json:"team,omitempty"`
	Games     []league.EnrichedGame `json:"games"`
	Count     int                   `json:"count"`
	Anomalies []league.Anomaly      `json:"anomalies,omitempty"`
}

// TeamResult is one team's view and record
type TeamResult struct {
	FetchedAt time.Time         `json:"fetched_at"`
	Team      string            `json:"team"`
	Stats     league.TeamStats  `json:"stats"`
	Games     []league.TeamGame `json:"games"`
}

// WriteSchedule writes the fixtures in the specified format
func WriteSchedule(w io.Writer, result *ScheduleResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeScheduleText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteStandings writes the league table in the specified format
func WriteStandings(w io.Writer, standings []league.Standing, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, standings)
	case FormatText:
		return writeStandingsText(w, standings)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteStats writes the team records in the specified format
func WriteStats(w io.Writer, stats []league.TeamStats, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, stats)
	case FormatText:
		return writeStatsText(w, stats)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteTeam writes one team's fixtures and record in the specified format
func WriteTeam(w io.Writer, result *TeamResult, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeTeamText(w, result)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func writeScheduleText(w io.Writer, result *ScheduleResult, verbose bool) error {
	if result.Count == 0 {
		fmt.Fprintln(w, "No fixtures found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if verbose {
		fmt.Fprintln(tw, "NO\tKICKOFF\tHOME\tAWAY\tSCORE\tSTATUS\tQUARTERS\tLOCATION")
	} else {
		fmt.Fprintln(tw, "NO\tKICKOFF\tHOME\tAWAY\tSCORE\tSTATUS")
	}
	for _, g := range result.Games {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s",
			g.Number, kickoffText(g), g.Home, g.Away, orDash(g.Score), g.Status)
		if verbose {
			fmt.Fprintf(tw, "\t%s\t%s", orDash(g.QuarterText), orDash(g.Location))
		}
		fmt.Fprintln(tw)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	played := 0
	for _, g := range result.Games {
		if g.Status == league.StatusPlayed {
			played++
		}
	}
	fmt.Fprintf(w, "\nTotal: %d fixtures, %d played\n", result.Count, played)

	if verbose && len(result.Anomalies) > 0 {
		fmt.Fprintf(w, "\nAnomalies:\n")
		for _, a := range result.Anomalies {
			fmt.Fprintf(w, "  %s (%s): %s\n", a.Game, a.Kind, a.Detail)
		}
	}
	return nil
}

func writeStandingsText(w io.Writer, standings []league.Standing) error {
	if len(standings) == 0 {
		fmt.Fprintln(w, "No standings found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tTEAM\tGAMES\tW\tL\tGOALS\tDIFF\tPOINTS")
	for _, s := range standings {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			s.Rank, s.Team, s.Games, s.Wins, s.Losses, s.Goals, s.GoalDifference, s.Points)
	}
	return tw.Flush()
}

func writeStatsText(w io.Writer, stats []league.TeamStats) error {
	if len(stats) == 0 {
		fmt.Fprintln(w, "No teams found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TEAM\tPLAYED\tW\tSO-W\tSO-L\tL\tGOALS\tDIFF\tAVG FOR\tAVG AGAINST")
	for _, s := range stats {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d\t%d:%d\t%s\t%s\t%s\n",
			s.Team, s.Played, s.Wins, s.ShootoutWins, s.ShootoutLosses, s.Losses,
			s.GoalsFor, s.GoalsAgainst, signed(s.GoalDifference),
			formatAvg(s.AvgGoalsFor), formatAvg(s.AvgGoalsAgainst))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nShootout policy: %s\n", stats[0].Policy)
	return nil
}

func writeTeamText(w io.Writer, result *TeamResult) error {
	s := result.Stats
	fmt.Fprintf(w, "%s\n", result.Team)
	fmt.Fprintf(w, "  Played: %d of %d (%d open)\n", s.Played, s.Games, s.Open)
	fmt.Fprintf(w, "  Record: %d W, %d SO-W, %d SO-L, %d L\n", s.Wins, s.ShootoutWins, s.ShootoutLosses, s.Losses)
	fmt.Fprintf(w, "  Goals:  %d:%d (%s), avg %s:%s\n",
		s.GoalsFor, s.GoalsAgainst, signed(s.GoalDifference),
		formatAvg(s.AvgGoalsFor), formatAvg(s.AvgGoalsAgainst))

	quarters := make([]string, len(s.QuarterDifference))
	for i, d := range s.QuarterDifference {
		quarters[i] = signed(d)
	}
	fmt.Fprintf(w, "  Quarter difference: %s\n\n", strings.Join(quarters, " "))

	if len(result.Games) == 0 {
		fmt.Fprintln(w, "No fixtures found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NO\tKICKOFF\tVENUE\tOPPONENT\tGOALS\tOUTCOME")
	for _, g := range result.Games {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			g.Number, kickoffText(g.EnrichedGame), g.Venue, g.Opponent(),
			goalsText(g.OwnGoals, g.OpponentGoals), g.Outcome)
	}
	return tw.Flush()
}

// kickoffText falls back to the raw cell when the date could not be parsed.
func kickoffText(g league.EnrichedGame) string {
	if g.KickoffText != "" {
		return g.KickoffText
	}
	return orDash(g.DateTime)
}

func goalsText(own, opponent *int) string {
	if own == nil || opponent == nil {
		return "-"
	}
	return fmt.Sprintf("%d:%d", *own, *opponent)
}

func formatAvg(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

func signed(v int) string {
	if v > 0 {
		return "+" + strconv.Itoa(v)
	}
	return strconv.Itoa(v)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
