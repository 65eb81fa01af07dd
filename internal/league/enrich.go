package league

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// ScoreSeparator marks a reported result in the score cell.
	ScoreSeparator = ":"

	// ShootoutMarker is appended to the score of games decided by a shootout.
	ShootoutMarker = " n.EW"

	// KickoffLayout is the display format of EnrichedGame.KickoffText.
	KickoffLayout = "02.01.2006, 15:04"

	dateLayout = "2.1.06"
	timeLayout = "15:04"
)

var (
	quarterPattern = regexp.MustCompile(`(\d+):(\d+)`)
	scorePattern   = regexp.MustCompile(`(\d+)\s*:\s*(\d+)`)
	unitPattern    = regexp.MustCompile(`(?i)\s*uhr`)
)

// CleanText trims s and flattens non-breaking spaces and line breaks into
// plain spaces.
func CleanText(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.ReplaceAll(s, "\n", " ")
}

func cleanGameRow(r RawGameRow) RawGameRow {
	return RawGameRow{
		Number:      CleanText(r.Number),
		DateTime:    CleanText(r.DateTime),
		Home:        CleanText(r.Home),
		Away:        CleanText(r.Away),
		Location:    CleanText(r.Location),
		Score:       CleanText(r.Score),
		QuarterText: CleanText(r.QuarterText),
		ProtocolURL: CleanText(r.ProtocolURL),
	}
}

// ParseQuarters reads up to five "home:away" pairs. Missing periods stay nil.
func ParseQuarters(text string) [maxQuarters]QuarterScore {
	var quarters [maxQuarters]QuarterScore

	for i, pair := range quarterPattern.FindAllStringSubmatch(text, maxQuarters) {
		home, errHome := strconv.Atoi(pair[1])
		away, errAway := strconv.Atoi(pair[2])
		if errHome != nil || errAway != nil {
			continue
		}
		quarters[i] = QuarterScore{Home: intPtr(home), Away: intPtr(away)}
	}

	return quarters
}

// ParseScore extracts the final result from a score cell such as "11:6 n.EW".
// Both goals are nil when no result can be read (e.g. "-" for open games).
func ParseScore(score string) (home, away *int) {
	score = strings.ReplaceAll(score, ShootoutMarker, "")

	m := scorePattern.FindStringSubmatch(score)
	if m == nil {
		return nil, nil
	}

	h, errHome := strconv.Atoi(m[1])
	a, errAway := strconv.Atoi(m[2])
	if errHome != nil || errAway != nil {
		return nil, nil
	}
	return intPtr(h), intPtr(a)
}

// ParseKickoff splits a "date, time" cell like "12.10.24, 16:00 Uhr".
// date is set whenever the date part parses; kickoff additionally needs a
// valid time.
func ParseKickoff(raw string, loc *time.Location) (date, kickoff *time.Time) {
	if loc == nil {
		loc = time.UTC
	}

	datePart, timePart, hasTime := strings.Cut(raw, ",")

	d, err := time.ParseInLocation(dateLayout, strings.TrimSpace(datePart), loc)
	if err != nil {
		return nil, nil
	}
	date = &d

	if !hasTime {
		return date, nil
	}

	timePart = strings.TrimSpace(unitPattern.ReplaceAllString(strings.TrimSpace(timePart), ""))
	clock, err := time.Parse(timeLayout, timePart)
	if err != nil {
		return date, nil
	}

	k := time.Date(d.Year(), d.Month(), d.Day(), clock.Hour(), clock.Minute(), 0, 0, loc)
	return date, &k
}

// GameStatus reports Played when the score text carries a separator, even if
// the numbers themselves are unreadable.
func GameStatus(score string) Status {
	if strings.Contains(score, ScoreSeparator) {
		return StatusPlayed
	}
	return StatusOpen
}

// EnrichGame turns one scraped row into an EnrichedGame. It never fails:
// unreadable cells leave the derived fields nil.
func EnrichGame(row RawGameRow, loc *time.Location) EnrichedGame {
	g := EnrichedGame{RawGameRow: cleanGameRow(row)}

	g.Quarters = ParseQuarters(g.QuarterText)
	g.HomeGoals, g.AwayGoals = ParseScore(g.Score)

	date, kickoff := ParseKickoff(g.DateTime, loc)
	if kickoff != nil {
		g.Kickoff = kickoff
		g.KickoffText = kickoff.Format(KickoffLayout)
	}

	if date != nil {
		name := date.Weekday().String()
		weekend := date.Weekday() == time.Saturday || date.Weekday() == time.Sunday
		dayType := dayTypeWeekday
		if weekend {
			dayType = dayTypeWeekend
		}
		g.Weekday, g.Weekend, g.DayType = &name, &weekend, &dayType
	}

	g.Status = GameStatus(g.Score)
	return g
}

// EnrichSchedule enriches every row; the result has the same length and order
// as rows.
func EnrichSchedule(rows []RawGameRow, loc *time.Location) []EnrichedGame {
	games := make([]EnrichedGame, 0, len(rows))
	for _, row := range rows {
		games = append(games, EnrichGame(row, loc))
	}
	return games
}
