package league

import "time"

// Status of a fixture, derived from the raw score text
type Status string

const (
	StatusPlayed Status = "Played"
	StatusOpen   Status = "Open"
)

// Venue of a fixture from one team's point of view
type Venue string

const (
	VenueHome Venue = "Home"
	VenueAway Venue = "Away"
)

// Outcome of a fixture from one team's point of view
type Outcome string

const (
	OutcomeWin          Outcome = "Win"
	OutcomeWinShootout  Outcome = "Win-in-shootout"
	OutcomeLoss         Outcome = "Loss"
	OutcomeLossShootout Outcome = "Loss-in-shootout"
	OutcomeOpen         Outcome = "Open"
)

const (
	dayTypeWeekend = "Weekend"
	dayTypeWeekday = "Weekday"

	regularQuarters = 4
	maxQuarters     = 5
)

// RawGameRow is one fixture as scraped from the schedule table, cell by cell
type RawGameRow struct {
	Number      string `json:"number"`
	DateTime    string `json:"date_time"`
	Home        string `json:"home"`
	Away        string `json:"away"`
	Location    string `json:"location"`
	Score       string `json:"score"`
	QuarterText string `json:"quarter_text"`
	ProtocolURL string `json:"protocol_url"`
}

// RawStandingRow is one team entry as scraped from the standings table.
// The draws column of the page is never carried over.
type RawStandingRow struct {
	Rank           string `json:"rank"`
	Team           string `json:"team"`
	Games          string `json:"games"`
	Wins           string `json:"wins"`
	Losses         string `json:"losses"`
	Goals          string `json:"goals"`
	GoalDifference string `json:"goal_difference"`
	Points         string `json:"points"`
}

// RawTables holds both datasets extracted from one results page
type RawTables struct {
	Schedule  []RawGameRow     `json:"schedule"`
	Standings []RawStandingRow `json:"standings"`
}

// QuarterScore holds the goals of one period. Both sides are nil when the
// period was not played (or not reported).
type QuarterScore struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

// EnrichedGame is a cleaned fixture with parsed scores, kickoff and status
type EnrichedGame struct {
	RawGameRow

	// Quarters[4] is the shootout; it is only set when the page lists a fifth pair.
	Quarters  [maxQuarters]QuarterScore `json:"quarters"`
	HomeGoals *int                      `json:"home_goals"`
	AwayGoals *int                      `json:"away_goals"`

	Kickoff     *time.Time `json:"kickoff,omitempty"`
	KickoffText string     `json:"kickoff_text"`
	Weekday     *string    `json:"weekday"`
	Weekend     *bool      `json:"weekend"`
	DayType     *string    `json:"day_type"`
	Status      Status     `json:"status"`
}

// HasShootout reports whether a fifth score pair was recorded for either side.
func (g EnrichedGame) HasShootout() bool {
	q5 := g.Quarters[maxQuarters-1]
	return q5.Home != nil || q5.Away != nil
}

// Key identifies a fixture across refreshes. The game number is used when
// the page provides one.
func (g EnrichedGame) Key() string {
	if g.Number != "" {
		return g.Number
	}
	return g.Home + "|" + g.Away + "|" + g.DateTime
}

// Clone returns a deep copy that shares no pointers with g.
func (g EnrichedGame) Clone() EnrichedGame {
	c := g
	for i, q := range g.Quarters {
		c.Quarters[i] = QuarterScore{Home: copyInt(q.Home), Away: copyInt(q.Away)}
	}
	c.HomeGoals = copyInt(g.HomeGoals)
	c.AwayGoals = copyInt(g.AwayGoals)
	if g.Kickoff != nil {
		k := *g.Kickoff
		c.Kickoff = &k
	}
	c.Weekday = copyString(g.Weekday)
	c.DayType = copyString(g.DayType)
	if g.Weekend != nil {
		w := *g.Weekend
		c.Weekend = &w
	}
	return c
}

// TeamGame is a fixture seen from one team's side. It owns its data: changing
// a TeamGame never affects the schedule or another team's view.
type TeamGame struct {
	EnrichedGame

	Team             string                `json:"team"`
	Venue            Venue                 `json:"venue"`
	OwnGoals         *int                  `json:"own_goals"`
	OpponentGoals    *int                  `json:"opponent_goals"`
	OwnQuarters      [regularQuarters]*int `json:"own_quarters"`
	OpponentQuarters [regularQuarters]*int `json:"opponent_quarters"`
	Outcome          Outcome               `json:"outcome"`
	SelfPlay         bool                  `json:"self_play,omitempty"`
}

// Opponent returns the name of the other side.
func (tg TeamGame) Opponent() string {
	if tg.Venue == VenueHome {
		return tg.Away
	}
	return tg.Home
}

// Clone returns a deep copy that shares no pointers with tg.
func (tg TeamGame) Clone() TeamGame {
	c := tg
	c.EnrichedGame = tg.EnrichedGame.Clone()
	c.OwnGoals = copyInt(tg.OwnGoals)
	c.OpponentGoals = copyInt(tg.OpponentGoals)
	for i := range tg.OwnQuarters {
		c.OwnQuarters[i] = copyInt(tg.OwnQuarters[i])
		c.OpponentQuarters[i] = copyInt(tg.OpponentQuarters[i])
	}
	return c
}

// TeamStats is the aggregate record of one team's fixtures
type TeamStats struct {
	Team              string               `json:"team"`
	Games             int                  `json:"games"`
	Played            int                  `json:"played"`
	Open              int                  `json:"open"`
	GoalsFor          int                  `json:"goals_for"`
	GoalsAgainst      int                  `json:"goals_against"`
	AvgGoalsFor       *float64             `json:"avg_goals_for"`
	AvgGoalsAgainst   *float64             `json:"avg_goals_against"`
	GoalDifference    int                  `json:"goal_difference"`
	QuarterDifference [regularQuarters]int `json:"quarter_difference"`
	Wins              int                  `json:"wins"`
	Draws             int                  `json:"draws"`
	Losses            int                  `json:"losses"`
	ShootoutWins      int                  `json:"shootout_wins"`
	ShootoutLosses    int                  `json:"shootout_losses"`
	Policy            ShootoutPolicy       `json:"shootout_policy"`
}

// Standing is a standings row with its numeric columns parsed
type Standing struct {
	RawStandingRow

	RankNum      *int `json:"rank_num"`
	GamesNum     *int `json:"games_num"`
	WinsNum      *int `json:"wins_num"`
	LossesNum    *int `json:"losses_num"`
	PointsNum    *int `json:"points_num"`
	GoalsFor     *int `json:"goals_for"`
	GoalsAgainst *int `json:"goals_against"`
	GoalDiff     *int `json:"goal_diff"`
}

func intPtr(v int) *int {
	return &v
}

func copyInt(p *int) *int {
	if p == nil {
		return nil
	}
	return intPtr(*p)
}

func copyString(p *string) *string {
	if p == nil {
		return nil
	}
	s := *p
	return &s
}
