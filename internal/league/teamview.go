package league

// Teams returns every name that appears as home or away side, in order of
// first appearance (home before away within a row).
func Teams(games []EnrichedGame) []string {
	seen := make(map[string]bool)
	teams := make([]string, 0)

	for _, g := range games {
		for _, name := range []string{g.Home, g.Away} {
			if seen[name] {
				continue
			}
			seen[name] = true
			teams = append(teams, name)
		}
	}

	return teams
}

// BuildTeamView returns the fixtures of team, reoriented to its side.
// The result never aliases games.
func BuildTeamView(games []EnrichedGame, team string) []TeamGame {
	view := make([]TeamGame, 0)
	for _, g := range games {
		if g.Home != team && g.Away != team {
			continue
		}
		view = append(view, orientGame(g, team))
	}
	return view
}

// BuildTeamViews builds one view per team in the schedule.
func BuildTeamViews(games []EnrichedGame) ([]string, map[string][]TeamGame) {
	teams := Teams(games)
	views := make(map[string][]TeamGame, len(teams))
	for _, team := range teams {
		views[team] = BuildTeamView(games, team)
	}
	return teams, views
}

// orientGame maps home/away onto own/opponent. A team listed on both sides
// is treated as the home side.
func orientGame(g EnrichedGame, team string) TeamGame {
	tg := TeamGame{
		EnrichedGame: g.Clone(),
		Team:         team,
		SelfPlay:     g.Home == g.Away,
	}

	if g.Home == team {
		tg.Venue = VenueHome
		tg.OwnGoals, tg.OpponentGoals = copyInt(g.HomeGoals), copyInt(g.AwayGoals)
		for i := 0; i < regularQuarters; i++ {
			tg.OwnQuarters[i] = copyInt(g.Quarters[i].Home)
			tg.OpponentQuarters[i] = copyInt(g.Quarters[i].Away)
		}
	} else {
		tg.Venue = VenueAway
		tg.OwnGoals, tg.OpponentGoals = copyInt(g.AwayGoals), copyInt(g.HomeGoals)
		for i := 0; i < regularQuarters; i++ {
			tg.OwnQuarters[i] = copyInt(g.Quarters[i].Away)
			tg.OpponentQuarters[i] = copyInt(g.Quarters[i].Home)
		}
	}

	tg.Outcome = classifyOutcome(tg.OwnGoals, tg.OpponentGoals, g.HasShootout())
	return tg
}

// classifyOutcome never yields a draw: a level score is treated as an
// unfinished game.
func classifyOutcome(own, opponent *int, shootout bool) Outcome {
	if own == nil || opponent == nil {
		return OutcomeOpen
	}

	switch {
	case *own > *opponent:
		if shootout {
			return OutcomeWinShootout
		}
		return OutcomeWin
	case *own < *opponent:
		if shootout {
			return OutcomeLossShootout
		}
		return OutcomeLoss
	default:
		return OutcomeOpen
	}
}
