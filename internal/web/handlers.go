package web

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/VincentSchmalor/WPAnalysis/internal/calendar"
	"github.com/VincentSchmalor/WPAnalysis/internal/league"
	"github.com/VincentSchmalor/WPAnalysis/internal/logger"
	"github.com/VincentSchmalor/WPAnalysis/internal/snapshot"
)

var errNoSnapshot = errors.New("league data not loaded yet")

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := map[string]interface{}{
		"status": "ok",
		"time":   s.now().Unix(),
	}

	snap := s.store.Load()
	if snap == nil {
		resp["status"] = "loading"
	} else {
		resp["fetched_at"] = snap.FetchedAt
		resp["games"] = len(snap.Schedule)
		resp["teams"] = len(snap.Teams)
	}
	if err := s.refresher.LastError(); err != nil {
		resp["last_error"] = err.Error()
	}
	resp["clients"] = s.hub.ClientCount()

	s.render.JSON(w, http.StatusOK, resp)
}

// handleSchedule returns the full schedule, or one team's view when the team
// query parameter is set.
func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.loadSnapshot(w)
	if !ok {
		return
	}

	if team := r.URL.Query().Get("team"); team != "" {
		games, found := snap.TeamGames(team)
		if !found {
			s.errorJSON(w, http.StatusNotFound, fmt.Errorf("unknown team: %q", team))
			return
		}
		s.render.JSON(w, http.StatusOK, games)
		return
	}

	s.render.JSON(w, http.StatusOK, snap.Schedule)
}

func (s *Server) handleStandings(w http.ResponseWriter, r *http.Request) {
	if snap, ok := s.loadSnapshot(w); ok {
		s.render.JSON(w, http.StatusOK, snap.Standings)
	}
}

func (s *Server) handleTeams(w http.ResponseWriter, r *http.Request) {
	if snap, ok := s.loadSnapshot(w); ok {
		s.render.JSON(w, http.StatusOK, snap.Teams)
	}
}

func (s *Server) handleAnomalies(w http.ResponseWriter, r *http.Request) {
	if snap, ok := s.loadSnapshot(w); ok {
		s.render.JSON(w, http.StatusOK, snap.Anomalies)
	}
}

// handleStats returns every team's record. A policy query parameter
// recomputes the records with another shootout policy.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.loadSnapshot(w)
	if !ok {
		return
	}

	stats, err := statsFor(snap, r.URL.Query().Get("policy"))
	if err != nil {
		s.errorJSON(w, http.StatusBadRequest, err)
		return
	}
	s.render.JSON(w, http.StatusOK, stats)
}

func (s *Server) handleTeamGames(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.loadSnapshot(w)
	if !ok {
		return
	}

	team := mux.Vars(r)["team"]
	games, found := snap.TeamGames(team)
	if !found {
		s.errorJSON(w, http.StatusNotFound, fmt.Errorf("unknown team: %q", team))
		return
	}
	s.render.JSON(w, http.StatusOK, games)
}

func (s *Server) handleTeamStats(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.loadSnapshot(w)
	if !ok {
		return
	}

	team := mux.Vars(r)["team"]
	if !snap.HasTeam(team) {
		s.errorJSON(w, http.StatusNotFound, fmt.Errorf("unknown team: %q", team))
		return
	}

	all, err := statsFor(snap, r.URL.Query().Get("policy"))
	if err != nil {
		s.errorJSON(w, http.StatusBadRequest, err)
		return
	}
	for _, st := range all {
		if st.Team == team {
			s.render.JSON(w, http.StatusOK, st)
			return
		}
	}
	s.errorJSON(w, http.StatusNotFound, fmt.Errorf("unknown team: %q", team))
}

func (s *Server) handleTeamCalendar(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.loadSnapshot(w)
	if !ok {
		return
	}

	team := mux.Vars(r)["team"]
	games, found := snap.TeamGames(team)
	if !found {
		s.errorJSON(w, http.StatusNotFound, fmt.Errorf("unknown team: %q", team))
		return
	}

	ics := calendar.GenerateICS(team, games, s.opts.PageURL)
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="calendar.ics"`)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(ics))
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	s.render.JSON(w, http.StatusOK, logger.GetMetricsSnapshot())
}

// handleRefresh triggers a fetch of the league page. Triggers closer together
// than MinRefreshInterval are rejected with 429.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if wait := s.claimRefresh(); wait > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
		s.errorJSON(w, http.StatusTooManyRequests, fmt.Errorf("refresh allowed again in %s", wait.Round(time.Second)))
		return
	}

	snap, err := s.refresher.Refresh(r.Context())
	if err != nil {
		s.errorJSON(w, http.StatusBadGateway, err)
		return
	}

	s.render.JSON(w, http.StatusOK, map[string]interface{}{
		"fetched_at": snap.FetchedAt,
		"games":      len(snap.Schedule),
		"standings":  len(snap.Standings),
		"teams":      len(snap.Teams),
	})
}

// claimRefresh records a trigger and returns zero, or returns how long the
// caller has to wait.
func (s *Server) claimRefresh() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if !s.lastTrigger.IsZero() {
		if wait := s.opts.MinRefreshInterval - now.Sub(s.lastTrigger); wait > 0 {
			return wait
		}
	}
	s.lastTrigger = now
	return 0
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", logger.Fields{"error": err.Error()})
		return
	}

	c := &client{
		hub:  s.hub,
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}
	if !s.hub.add(c) {
		conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}

type dashboardData struct {
	Snapshot *snapshot.Snapshot
	Team     string
	Games    []league.TeamGame
	Stats    *league.TeamStats
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	snap := s.store.Load()
	if snap == nil {
		s.render.HTML(w, http.StatusServiceUnavailable, "loading", nil)
		return
	}

	data := dashboardData{Snapshot: snap}
	if team := r.URL.Query().Get("team"); team != "" {
		games, found := snap.TeamGames(team)
		if !found {
			s.render.HTML(w, http.StatusNotFound, "404", fmt.Sprintf("unknown team: %s", team))
			return
		}
		stats, _ := snap.TeamStats(team)
		data.Team = team
		data.Games = games
		data.Stats = &stats
	}

	s.render.HTML(w, http.StatusOK, "dashboard", data)
}

// loadSnapshot returns the published snapshot or writes 503.
func (s *Server) loadSnapshot(w http.ResponseWriter) (*snapshot.Snapshot, bool) {
	snap := s.store.Load()
	if snap == nil {
		s.errorJSON(w, http.StatusServiceUnavailable, errNoSnapshot)
		return nil, false
	}
	return snap, true
}

func (s *Server) errorJSON(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		logger.IncrCounter("http.errors")
	}
	s.render.JSON(w, status, map[string]string{"error": err.Error()})
}

func statsFor(snap *snapshot.Snapshot, policyParam string) ([]league.TeamStats, error) {
	if policyParam == "" {
		return snap.Stats, nil
	}

	policy, err := league.ParseShootoutPolicy(policyParam)
	if err != nil {
		return nil, err
	}
	if policy == snap.Policy {
		return snap.Stats, nil
	}

	teams, views := league.BuildTeamViews(snap.Schedule)
	return league.ComputeAllStats(teams, views, policy), nil
}
