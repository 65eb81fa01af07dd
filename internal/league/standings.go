package league

import (
	"regexp"
	"strconv"
	"strings"
)

var goalsPattern = regexp.MustCompile(`^(\d+)\s*[:\-/]\s*(\d+)$`)

// EnrichStandings parses the numeric columns of each standings row. Cells
// that cannot be read stay nil; no row is dropped.
func EnrichStandings(rows []RawStandingRow) []Standing {
	standings := make([]Standing, 0, len(rows))
	for _, row := range rows {
		standings = append(standings, EnrichStanding(row))
	}
	return standings
}

// EnrichStanding parses one standings row.
func EnrichStanding(row RawStandingRow) Standing {
	row = RawStandingRow{
		Rank:           CleanText(row.Rank),
		Team:           CleanText(row.Team),
		Games:          CleanText(row.Games),
		Wins:           CleanText(row.Wins),
		Losses:         CleanText(row.Losses),
		Goals:          CleanText(row.Goals),
		GoalDifference: CleanText(row.GoalDifference),
		Points:         CleanText(row.Points),
	}

	s := Standing{
		RawStandingRow: row,
		RankNum:        parseNumber(row.Rank),
		GamesNum:       parseNumber(row.Games),
		WinsNum:        parseNumber(row.Wins),
		LossesNum:      parseNumber(row.Losses),
		PointsNum:      parseNumber(row.Points),
	}

	s.GoalsFor, s.GoalsAgainst = parseGoals(row.Goals)
	if s.GoalsFor != nil && s.GoalsAgainst != nil {
		s.GoalDiff = intPtr(*s.GoalsFor - *s.GoalsAgainst)
	} else {
		s.GoalDiff = parseNumber(row.GoalDifference)
	}

	return s
}

// parseGoals reads "for:against" (also "for-against" or "for/against").
func parseGoals(text string) (goalsFor, goalsAgainst *int) {
	m := goalsPattern.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return nil, nil
	}
	f, errFor := strconv.Atoi(m[1])
	a, errAgainst := strconv.Atoi(m[2])
	if errFor != nil || errAgainst != nil {
		return nil, nil
	}
	return intPtr(f), intPtr(a)
}

// parseNumber reads integers such as "3", "3." (rank), "+12" or "−4".
func parseNumber(text string) *int {
	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, "−", "-")
	text = strings.TrimPrefix(text, "+")
	text = strings.TrimSuffix(text, ".")

	n, err := strconv.Atoi(text)
	if err != nil {
		return nil
	}
	return &n
}
