package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/VincentSchmalor/WPAnalysis/internal/calendar"
	"github.com/VincentSchmalor/WPAnalysis/internal/league"
	"github.com/VincentSchmalor/WPAnalysis/internal/logger"
)

func newScheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Print the league schedule",
		Args:  cobra.NoArgs,
		RunE:  runSchedule,
	}
	cmd.Flags().StringVar(&flagTeam, "team", "", "Only fixtures of this team")
	cmd.Flags().StringVar(&flagStatus, "status", "", "Only fixtures with this status: played or open")
	cmd.Flags().StringVar(&flagSort, "sort", "", "Sort order: date or number (default: page order)")
	return cmd
}

func runSchedule(cmd *cobra.Command, args []string) error {
	snap, format, err := prepare(cmd)
	if err != nil {
		return err
	}

	if flagTeam != "" && !snap.HasTeam(flagTeam) {
		return fmt.Errorf("unknown team: %q", flagTeam)
	}
	status, err := parseStatus(flagStatus)
	if err != nil {
		return err
	}

	games := filterGames(snap.Schedule, flagTeam, status)
	if err := sortGames(games, SortOrder(strings.ToLower(flagSort))); err != nil {
		return err
	}

	return WriteSchedule(cmd.OutOrStdout(), &ScheduleResult{
		FetchedAt: snap.FetchedAt,
		Source:    snap.Source,
		Team:      flagTeam,
		Games:     games,
		Count:     len(games),
		Anomalies: snap.Anomalies,
	}, format, flagVerbose)
}

func newStandingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "standings",
		Short: "Print the league table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, format, err := prepare(cmd)
			if err != nil {
				return err
			}
			return WriteStandings(cmd.OutOrStdout(), snap.Standings, format)
		},
	}
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print the derived record of every team",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, format, err := prepare(cmd)
			if err != nil {
				return err
			}

			stats := append([]league.TeamStats(nil), snap.Stats...)
			if err := sortStats(stats, SortOrder(strings.ToLower(flagSort))); err != nil {
				return err
			}
			return WriteStats(cmd.OutOrStdout(), stats, format)
		},
	}
	cmd.Flags().StringVar(&flagSort, "sort", "", "Sort order: name, wins, diff or goals (default: first appearance)")
	return cmd
}

func newTeamCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team NAME",
		Short: "Print one team's fixtures and record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, format, err := prepare(cmd)
			if err != nil {
				return err
			}

			team := args[0]
			games, ok := snap.TeamGames(team)
			if !ok {
				return fmt.Errorf("unknown team: %q", team)
			}
			stats, _ := snap.TeamStats(team)
			if err := sortTeamGames(games, SortOrder(strings.ToLower(flagSort))); err != nil {
				return err
			}

			return WriteTeam(cmd.OutOrStdout(), &TeamResult{
				FetchedAt: snap.FetchedAt,
				Team:      team,
				Stats:     stats,
				Games:     games,
			}, format)
		},
	}
	cmd.Flags().StringVar(&flagSort, "sort", "", "Sort order: date or number (default: page order)")
	return cmd
}

func newCalendarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar NAME",
		Short: "Export one team's fixtures as an iCalendar file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			snap, err := fetchSnapshot(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			team := args[0]
			games, ok := snap.TeamGames(team)
			if !ok {
				return fmt.Errorf("unknown team: %q", team)
			}
			ics := calendar.GenerateICS(team, games, snap.Source)

			if flagOutput == "" || flagOutput == "-" {
				_, err := fmt.Fprint(cmd.OutOrStdout(), ics)
				return err
			}
			if err := os.WriteFile(flagOutput, []byte(ics), 0o644); err != nil {
				return fmt.Errorf("writing calendar: %w", err)
			}
			logger.Info("calendar written", logger.Fields{"team": team, "path": flagOutput})
			return nil
		},
	}
	cmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Write the calendar to this file instead of stdout")
	return cmd
}

func parseStatus(s string) (league.Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", nil
	case "played":
		return league.StatusPlayed, nil
	case "open":
		return league.StatusOpen, nil
	default:
		return "", fmt.Errorf("invalid status: %s (must be 'played' or 'open')", s)
	}
}

// filterGames returns the fixtures involving team (any team when empty) with
// the given status (any status when empty). The result is a new slice.
func filterGames(games []league.EnrichedGame, team string, status league.Status) []league.EnrichedGame {
	out := make([]league.EnrichedGame, 0, len(games))
	for _, g := range games {
		if team != "" && g.Home != team && g.Away != team {
			continue
		}
		if status != "" && g.Status != status {
			continue
		}
		out = append(out, g)
	}
	return out
}
