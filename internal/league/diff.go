package league

import "fmt"

// NewResults returns the games of current that are played but were not yet
// played in previous. A nil or empty previous schedule yields no results, so
// the first load of a season does not report every past game.
func NewResults(previous, current []EnrichedGame) []EnrichedGame {
	results := make([]EnrichedGame, 0)
	if len(previous) == 0 {
		return results
	}

	before := make(map[string]Status, len(previous))
	for _, g := range previous {
		before[g.Key()] = g.Status
	}

	for _, g := range current {
		if g.Status != StatusPlayed {
			continue
		}
		if status, ok := before[g.Key()]; ok && status == StatusPlayed {
			continue
		}
		results = append(results, g.Clone())
	}

	return results
}

// AnomalyKind names a data problem found in an otherwise valid schedule
type AnomalyKind string

const (
	AnomalySelfPlay    AnomalyKind = "self_play"
	AnomalyLevelScore  AnomalyKind = "level_score"
	AnomalyUnreadScore AnomalyKind = "unreadable_score"
)

// Anomaly describes one fixture whose data looks wrong
type Anomaly struct {
	Game   string      `json:"game"`
	Kind   AnomalyKind `json:"kind"`
	Detail string      `json:"detail"`
}

// FindAnomalies reports fixtures that are kept in the pipeline but deserve a
// closer look: a team listed against itself, a played game with a level
// score, or a played game whose result cannot be read.
func FindAnomalies(games []EnrichedGame) []Anomaly {
	anomalies := make([]Anomaly, 0)

	for _, g := range games {
		if g.Home == g.Away {
			anomalies = append(anomalies, Anomaly{
				Game:   g.Key(),
				Kind:   AnomalySelfPlay,
				Detail: fmt.Sprintf("%q listed as home and away; oriented as home", g.Home),
			})
		}

		if g.Status != StatusPlayed {
			continue
		}

		switch {
		case g.HomeGoals == nil || g.AwayGoals == nil:
			anomalies = append(anomalies, Anomaly{
				Game:   g.Key(),
				Kind:   AnomalyUnreadScore,
				Detail: fmt.Sprintf("score %q has no readable result", g.Score),
			})
		case *g.HomeGoals == *g.AwayGoals:
			anomalies = append(anomalies, Anomaly{
				Game:   g.Key(),
				Kind:   AnomalyLevelScore,
				Detail: fmt.Sprintf("played game ended %d:%d; classified as open", *g.HomeGoals, *g.AwayGoals),
			})
		}
	}

	return anomalies
}
