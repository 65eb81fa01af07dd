package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/VincentSchmalor/WPAnalysis/internal/config"
	"github.com/VincentSchmalor/WPAnalysis/internal/league"
	"github.com/VincentSchmalor/WPAnalysis/internal/logger"
	"github.com/VincentSchmalor/WPAnalysis/internal/notifier"
	"github.com/VincentSchmalor/WPAnalysis/internal/scraper"
	"github.com/VincentSchmalor/WPAnalysis/internal/snapshot"
	"github.com/VincentSchmalor/WPAnalysis/internal/web"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard and JSON API",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	cmd.Flags().StringVar(&flagPort, "port", "", "Listen port (overrides WPA_PORT)")
	cmd.Flags().DurationVar(&flagRefreshInterval, "refresh-interval", 0, "Refresh the league data periodically; 0 disables (overrides WPA_REFRESH_INTERVAL)")
	cmd.Flags().StringVar(&flagNotify, "notify", "", "Announce new results: none, dry-run, twitter or telegram (overrides WPA_NOTIFY)")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	sc := scraper.New(cfg.LeagueURL, cfg.FetchTimeout)
	store := snapshot.NewStore()
	refresher := snapshot.NewRefresher(sc, store, snapshot.Options{
		Location:       loc,
		Policy:         cfg.ShootoutPolicy,
		Source:         sc.URL(),
		RefreshTimeout: cfg.FetchTimeout,
	})

	hub := web.NewHub()
	server := web.NewServer(store, refresher, hub, web.Options{
		Addr:               cfg.Addr(),
		AllowedOrigins:     cfg.AllowedOrigins,
		MinRefreshInterval: cfg.MinRefreshInterval,
		PageURL:            sc.URL(),
	})
	refresher.OnUpdate(server.SnapshotUpdated)

	queue, err := wireNotifier(cfg, refresher)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting wpanalysis", logger.Fields{
		"addr":             cfg.Addr(),
		"source":           sc.URL(),
		"refresh_interval": cfg.RefreshInterval.String(),
		"shootout_policy":  string(cfg.ShootoutPolicy),
		"notify":           cfg.Notify,
	})

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		hub.Run(ctx)
		return nil
	})

	if queue != nil {
		g.Go(func() error {
			queue.Run(ctx)
			return nil
		})
	}

	g.Go(func() error {
		// the dashboard shows a loading page until the first refresh succeeds
		if _, err := refresher.Refresh(ctx); err != nil {
			logger.Warn("initial refresh failed", logger.Fields{"error": err.Error()})
		}
		return refresher.Run(ctx, cfg.RefreshInterval)
	})

	g.Go(server.ListenAndServe)

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// wireNotifier queues new results for the configured notifier. The
// returned queue is nil when notifications are off; otherwise the caller
// must Run it.
func wireNotifier(cfg *config.Config, refresher *snapshot.Refresher) (*notifier.Queue, error) {
	n, err := notifier.New(cfg.Notify, os.Stdout)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, nil
	}

	queue := notifier.NewQueue(n, notifier.DefaultQueueSize)
	refresher.OnUpdate(func(snap *snapshot.Snapshot, results []league.EnrichedGame) {
		queue.Enqueue(results)
	})
	return queue, nil
}
