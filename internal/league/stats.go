package league

import (
	"fmt"
	"math"
	"strings"
)

// ShootoutPolicy decides whether shootout results count toward the headline
// Wins/Losses of a TeamStats record.
type ShootoutPolicy string

const (
	// ShootoutSeparate counts only regular wins and losses in Wins/Losses.
	ShootoutSeparate ShootoutPolicy = "separate"
	// ShootoutMerge adds shootout wins and losses to Wins/Losses.
	ShootoutMerge ShootoutPolicy = "merge"
)

// ParseShootoutPolicy accepts "separate" or "merge" (case-insensitive).
// An empty string selects ShootoutSeparate.
func ParseShootoutPolicy(s string) (ShootoutPolicy, error) {
	switch p := ShootoutPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return ShootoutSeparate, nil
	case ShootoutSeparate, ShootoutMerge:
		return p, nil
	default:
		return "", fmt.Errorf("unknown shootout policy: %q (must be 'separate' or 'merge')", s)
	}
}

// ComputeStats reduces one team's view to a TeamStats record. Missing goals
// are skipped in sums and averages, so an empty view yields zero totals and
// nil averages.
func ComputeStats(team string, games []TeamGame, policy ShootoutPolicy) TeamStats {
	if policy == "" {
		policy = ShootoutSeparate
	}

	stats := TeamStats{
		Team:   team,
		Games:  len(games),
		Policy: policy,
	}

	var (
		own, opp   []*int
		ownQ, oppQ [regularQuarters]int
	)

	for _, g := range games {
		switch g.Status {
		case StatusPlayed:
			stats.Played++
		case StatusOpen:
			stats.Open++
		}

		own = append(own, g.OwnGoals)
		opp = append(opp, g.OpponentGoals)

		for i := 0; i < regularQuarters; i++ {
			ownQ[i] += valueOrZero(g.OwnQuarters[i])
			oppQ[i] += valueOrZero(g.OpponentQuarters[i])
		}

		switch g.Outcome {
		case OutcomeWin:
			stats.Wins++
		case OutcomeLoss:
			stats.Losses++
		case OutcomeWinShootout:
			stats.ShootoutWins++
		case OutcomeLossShootout:
			stats.ShootoutLosses++
		}
	}

	if policy == ShootoutMerge {
		stats.Wins += stats.ShootoutWins
		stats.Losses += stats.ShootoutLosses
	}

	stats.GoalsFor = sumSkipNil(own)
	stats.GoalsAgainst = sumSkipNil(opp)
	stats.AvgGoalsFor = meanSkipNil(own)
	stats.AvgGoalsAgainst = meanSkipNil(opp)
	stats.GoalDifference = stats.GoalsFor - stats.GoalsAgainst
	for i := 0; i < regularQuarters; i++ {
		stats.QuarterDifference[i] = ownQ[i] - oppQ[i]
	}

	return stats
}

// ComputeAllStats returns one record per team, in the order of teams.
func ComputeAllStats(teams []string, views map[string][]TeamGame, policy ShootoutPolicy) []TeamStats {
	all := make([]TeamStats, 0, len(teams))
	for _, team := range teams {
		all = append(all, ComputeStats(team, views[team], policy))
	}
	return all
}

func valueOrZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func sumSkipNil(values []*int) int {
	total := 0
	for _, v := range values {
		total += valueOrZero(v)
	}
	return total
}

func meanSkipNil(values []*int) *float64 {
	total, n := 0, 0
	for _, v := range values {
		if v == nil {
			continue
		}
		total += *v
		n++
	}
	if n == 0 {
		return nil
	}

	// halves go to the even digit
	avg := math.RoundToEven(float64(total)/float64(n)*100) / 100
	return &avg
}
