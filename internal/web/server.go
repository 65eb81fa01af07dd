package web

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"github.com/unrolled/render"

	"github.com/VincentSchmalor/WPAnalysis/internal/league"
	"github.com/VincentSchmalor/WPAnalysis/internal/logger"
	"github.com/VincentSchmalor/WPAnalysis/internal/snapshot"
)

//go:embed templates
var templates embed.FS

// Refresher loads a new snapshot on demand
type Refresher interface {
	Refresh(ctx context.Context) (*snapshot.Snapshot, error)
	// LastError is the error of the most recent refresh, nil after a success
	LastError() error
}

// Options configure the dashboard server
type Options struct {
	Addr               string
	AllowedOrigins     []string
	MinRefreshInterval time.Duration
	// PageURL resolves relative protocol links in calendar exports
	PageURL string
}

type Server struct {
	store      *snapshot.Store
	refresher  Refresher
	hub        *Hub
	render     *render.Render
	opts       Options
	httpServer *http.Server
	upgrader   websocket.Upgrader
	now        func() time.Time

	mu          sync.Mutex
	lastTrigger time.Time
}

func NewServer(store *snapshot.Store, refresher Refresher, hub *Hub, opts Options) *Server {
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}

	s := &Server{
		store:     store,
		refresher: refresher,
		hub:       hub,
		render:    newRender(),
		opts:      opts,
		now:       time.Now,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}

	s.httpServer = &http.Server{
		Addr:         opts.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the router wrapped with CORS.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	router.Use(requestLogger)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	api.HandleFunc("/schedule", s.handleSchedule).Methods(http.MethodGet)
	api.HandleFunc("/standings", s.handleStandings).Methods(http.MethodGet)
	api.HandleFunc("/teams", s.handleTeams).Methods(http.MethodGet)
	api.HandleFunc("/stats", s.handleStats).Methods(http.MethodGet)
	api.HandleFunc("/anomalies", s.handleAnomalies).Methods(http.MethodGet)
	api.HandleFunc("/teams/{team}/games", s.handleTeamGames).Methods(http.MethodGet)
	api.HandleFunc("/teams/{team}/stats", s.handleTeamStats).Methods(http.MethodGet)
	api.HandleFunc("/teams/{team}/calendar.ics", s.handleTeamCalendar).Methods(http.MethodGet)
	api.HandleFunc("/metrics", s.handleMetrics).Methods(http.MethodGet)
	api.HandleFunc("/refresh", s.handleRefresh).Methods(http.MethodPost)

	router.HandleFunc("/ws", s.handleWebSocket)
	router.HandleFunc("/", s.handleDashboard).Methods(http.MethodGet)

	c := cors.New(cors.Options{
		AllowedOrigins: s.opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	})

	return c.Handler(router)
}

// ListenAndServe blocks until the server stops. It returns nil after Shutdown.
func (s *Server) ListenAndServe() error {
	logger.Info("web server is listening", logger.Fields{"addr": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for active requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// SnapshotUpdated pushes a refresh notice to connected dashboards. It matches
// snapshot.UpdateFunc.
func (s *Server) SnapshotUpdated(snap *snapshot.Snapshot, results []league.EnrichedGame) {
	played := 0
	for _, g := range snap.Schedule {
		if g.Status == league.StatusPlayed {
			played++
		}
	}

	s.hub.Broadcast(&Message{
		Type:       "snapshot",
		FetchedAt:  snap.FetchedAt,
		Games:      len(snap.Schedule),
		Played:     played,
		NewResults: results,
	})
}

func newRender() *render.Render {
	return render.New(render.Options{
		Directory: "templates",
		Layout:    "layout",
		FileSystem: &render.EmbedFileSystem{
			FS: templates,
		},
		Funcs: []template.FuncMap{
			{
				"num":        numFormatter,
				"avg":        avgFormatter,
				"stamp":      stampFormatter,
				"rowClass":   outcomeClass,
				"diff":       diffFormatter,
				"pathEscape": url.PathEscape,
			},
		},
	})
}

// requestLogger counts requests and logs them at debug level
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)

		logger.IncrCounter("http.requests")
		logger.Debug("request served", logger.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"duration_ms": time.Since(start).Milliseconds(),
		})
	})
}
