// Package snapshot holds the published state of the league: one immutable
// Snapshot built from a page fetch, swapped atomically on each refresh.
package snapshot

import (
	"sync/atomic"
	"time"

	"github.com/VincentSchmalor/WPAnalysis/internal/league"
)

// Snapshot is everything derived from one fetch of the league page. It is
// never modified after Build returns.
type Snapshot struct {
	FetchedAt time.Time             `json:"fetched_at"`
	Source    string                `json:"source"`
	Policy    league.ShootoutPolicy `json:"shootout_policy"`

	Schedule  []league.EnrichedGame `json:"schedule"`
	Standings []league.Standing     `json:"standings"`
	Teams     []string              `json:"teams"`
	Stats     []league.TeamStats    `json:"stats"`
	Anomalies []league.Anomaly      `json:"anomalies"`

	views map[string][]league.TeamGame
}

// Options control how raw tables are turned into a Snapshot.
type Options struct {
	Location *time.Location
	Policy   league.ShootoutPolicy
	Source   string

	// RefreshTimeout bounds a shared fetch; <= 0 uses DefaultRefreshTimeout.
	RefreshTimeout time.Duration
}

// Build runs the full pipeline: enrich, reorient per team, aggregate.
func Build(tables league.RawTables, opts Options, fetchedAt time.Time) *Snapshot {
	schedule := league.EnrichSchedule(tables.Schedule, opts.Location)
	teams, views := league.BuildTeamViews(schedule)

	policy := opts.Policy
	if policy == "" {
		policy = league.ShootoutSeparate
	}

	return &Snapshot{
		FetchedAt: fetchedAt,
		Source:    opts.Source,
		Policy:    policy,
		Schedule:  schedule,
		Standings: league.EnrichStandings(tables.Standings),
		Teams:     teams,
		Stats:     league.ComputeAllStats(teams, views, policy),
		Anomalies: league.FindAnomalies(schedule),
		views:     views,
	}
}

// HasTeam reports whether team appears in the schedule.
func (s *Snapshot) HasTeam(team string) bool {
	_, ok := s.views[team]
	return ok
}

// TeamGames returns a copy of team's view, so callers may sort or modify it.
func (s *Snapshot) TeamGames(team string) ([]league.TeamGame, bool) {
	view, ok := s.views[team]
	if !ok {
		return nil, false
	}
	games := make([]league.TeamGame, len(view))
	for i, tg := range view {
		games[i] = tg.Clone()
	}
	return games, true
}

// TeamStats returns the aggregate record of team.
func (s *Snapshot) TeamStats(team string) (league.TeamStats, bool) {
	for _, st := range s.Stats {
		if st.Team == team {
			return st, true
		}
	}
	return league.TeamStats{}, false
}

// Store publishes the current Snapshot to concurrent readers.
type Store struct {
	current atomic.Pointer[Snapshot]
}

// NewStore returns an empty store; Load returns nil until the first Swap.
func NewStore() *Store {
	return &Store{}
}

// Load returns the published snapshot or nil.
func (s *Store) Load() *Snapshot {
	return s.current.Load()
}

// Swap publishes next and returns the snapshot it replaced.
func (s *Store) Swap(next *Snapshot) *Snapshot {
	return s.current.Swap(next)
}
