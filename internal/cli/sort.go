package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/VincentSchmalor/WPAnalysis/internal/league"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortNone     SortOrder = ""
	SortByDate   SortOrder = "date"
	SortByNumber SortOrder = "number"
	SortByName   SortOrder = "name"
	SortByWins   SortOrder = "wins"
	SortByDiff   SortOrder = "diff"
	SortByGoals  SortOrder = "goals"
)

// sortGames sorts fixtures in place. SortNone keeps the page order.
func sortGames(games []league.EnrichedGame, order SortOrder) error {
	switch order {
	case SortNone:
	case SortByDate:
		sort.SliceStable(games, func(i, j int) bool {
			return compareByKickoff(games[i], games[j])
		})
	case SortByNumber:
		sort.SliceStable(games, func(i, j int) bool {
			return compareByNumber(games[i].Number, games[j].Number)
		})
	default:
		return fmt.Errorf("invalid sort order for fixtures: %s (must be 'date' or 'number')", order)
	}
	return nil
}

func sortTeamGames(games []league.TeamGame, order SortOrder) error {
	switch order {
	case SortNone:
	case SortByDate:
		sort.SliceStable(games, func(i, j int) bool {
			return compareByKickoff(games[i].EnrichedGame, games[j].EnrichedGame)
		})
	case SortByNumber:
		sort.SliceStable(games, func(i, j int) bool {
			return compareByNumber(games[i].Number, games[j].Number)
		})
	default:
		return fmt.Errorf("invalid sort order for fixtures: %s (must be 'date' or 'number')", order)
	}
	return nil
}

// sortStats sorts team records in place. Ties fall back to the team name.
func sortStats(stats []league.TeamStats, order SortOrder) error {
	var less func(a, b league.TeamStats) bool

	switch order {
	case SortNone:
		return nil
	case SortByName:
		less = func(a, b league.TeamStats) bool { return false }
	case SortByWins:
		less = func(a, b league.TeamStats) bool {
			if a.Wins != b.Wins {
				return a.Wins > b.Wins
			}
			return a.ShootoutWins > b.ShootoutWins
		}
	case SortByDiff:
		less = func(a, b league.TeamStats) bool { return a.GoalDifference > b.GoalDifference }
	case SortByGoals:
		less = func(a, b league.TeamStats) bool { return a.GoalsFor > b.GoalsFor }
	default:
		return fmt.Errorf("invalid sort order for stats: %s (must be 'name', 'wins', 'diff' or 'goals')", order)
	}

	sort.SliceStable(stats, func(i, j int) bool {
		if less(stats[i], stats[j]) {
			return true
		}
		if less(stats[j], stats[i]) {
			return false
		}
		return strings.ToLower(stats[i].Team) < strings.ToLower(stats[j].Team)
	})
	return nil
}

// compareByKickoff compares two fixtures by their kickoff
// Returns true if i should come before j
func compareByKickoff(i, j league.EnrichedGame) bool {
	// If both kickoffs are known, compare them
	if i.Kickoff != nil && j.Kickoff != nil {
		if !i.Kickoff.Equal(*j.Kickoff) {
			return i.Kickoff.Before(*j.Kickoff)
		}
		return compareByNumber(i.Number, j.Number)
	}

	// Fixtures without a kickoff go last
	if i.Kickoff != nil {
		return true
	}
	if j.Kickoff != nil {
		return false
	}

	return compareByNumber(i.Number, j.Number)
}

// compareByNumber orders numeric game numbers numerically and everything else
// after them, by text.
func compareByNumber(a, b string) bool {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)

	switch {
	case errA == nil && errB == nil:
		return na < nb
	case errA == nil:
		return true
	case errB == nil:
		return false
	default:
		return a < b
	}
}
